package util

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// DefaultPassword 生成初始密码：姓 + 名前两个字母，全小写。
// 首次登录后应通过 change_password 接口更换。
func DefaultPassword(firstName, lastName string) string {
	prefix := firstName
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return strings.ToLower(lastName + prefix)
}

// GenerateStudentID 生成 STA-<年份>-<四位随机数> 格式的学号。
// 分隔符用连字符，保证学号可以直接出现在 URL 路径段里。
func GenerateStudentID() string {
	return fmt.Sprintf("STA-%d-%d", time.Now().Year(), 1000+rand.Intn(9000))
}
