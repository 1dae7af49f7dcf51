package util

import (
	"errors"
	"time"

	"student_mgt_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

type Claims struct {
	UserID          uint   `json:"user_id"`
	StudentID       string `json:"student_id,omitempty"`
	Email           string `json:"email"`
	IsAdministrator bool   `json:"is_administrator"`
	SuperAdmin      bool   `json:"super_admin"`
	Fresh           bool   `json:"fresh"`
	TokenType       string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateJWT 签发访问令牌。super_admin 只在签发时刻计算，不落库。
func GenerateJWT(user *model.User, superAdmin, fresh bool, secret string, expiration time.Duration) (string, error) {
	return generateToken(user, superAdmin, fresh, TokenTypeAccess, secret, expiration)
}

// GenerateRefreshJWT 签发刷新令牌，刷新令牌不携带 fresh 标记
func GenerateRefreshJWT(user *model.User, secret string, expiration time.Duration) (string, error) {
	return generateToken(user, false, false, TokenTypeRefresh, secret, expiration)
}

func generateToken(user *model.User, superAdmin, fresh bool, tokenType, secret string, expiration time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:          user.ID,
		StudentID:       user.StudentNumber(),
		Email:           user.Email,
		IsAdministrator: user.IsAdmin,
		SuperAdmin:      superAdmin,
		Fresh:           fresh,
		TokenType:       tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

func GetUserFromContext(c *gin.Context) *Claims {
	user, exists := c.Get("user")
	if !exists {
		return nil
	}
	claims, ok := user.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
