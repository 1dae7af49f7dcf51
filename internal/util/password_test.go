package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPassword(t *testing.T) {
	assert.Equal(t, "adminte", DefaultPassword("Test", "Admin"))
	assert.Equal(t, "doejo", DefaultPassword("John", "Doe"))
	// 名字不足两个字母时整个拼上
	assert.Equal(t, "lia", DefaultPassword("A", "Li"))
}

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)

	assert.True(t, CheckPassword(hashed, "secret123"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}

func TestGenerateStudentID(t *testing.T) {
	pattern := regexp.MustCompile(`^STA-\d{4}-\d{4}$`)
	for i := 0; i < 20; i++ {
		id := GenerateStudentID()
		assert.Regexp(t, pattern, id)
	}
}
