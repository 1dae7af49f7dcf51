package util

import (
	"testing"
	"time"

	"student_mgt_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars!"

func testStudent() *model.User {
	sid := "STA-2026-1234"
	u := &model.User{
		FirstName:        "John",
		LastName:         "Doe",
		StudentID:        &sid,
		Email:            "john@school.edu",
		EnrollmentStatus: model.Active,
	}
	u.ID = 7
	return u
}

func TestGenerateAndParseJWT(t *testing.T) {
	user := testStudent()

	token, err := GenerateJWT(user, false, true, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "STA-2026-1234", claims.StudentID)
	assert.Equal(t, "john@school.edu", claims.Email)
	assert.False(t, claims.IsAdministrator)
	assert.False(t, claims.SuperAdmin)
	assert.True(t, claims.Fresh)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateRefreshJWT(t *testing.T) {
	token, err := GenerateRefreshJWT(testStudent(), testSecret, 24*time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.False(t, claims.Fresh)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testStudent(), false, true, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret-key-32-chars-long!!")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testStudent(), false, true, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestSuperAdminClaim(t *testing.T) {
	admin := &model.User{Email: "superadmin@school.edu", IsAdmin: true, EnrollmentStatus: model.AdminSt}
	admin.ID = 1

	token, err := GenerateJWT(admin, true, true, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)

	assert.True(t, claims.IsAdministrator)
	assert.True(t, claims.SuperAdmin)
	assert.Empty(t, claims.StudentID)
}
