package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"student_mgt_backend/internal/config"
	"student_mgt_backend/internal/model"
	"student_mgt_backend/internal/repository"
	"student_mgt_backend/internal/util"
	"student_mgt_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test-secret-key-at-least-32-chars!"

type authFixture struct {
	router    *gin.Engine
	cfg       *config.Config
	tokenRepo *repository.TokenRepository
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: testSecret, AccessExpireTime: time.Hour},
	}
	tokenRepo := repository.NewTokenRepository(db, nil)

	router := gin.New()
	auth := router.Group("/", AuthMiddleware(cfg, tokenRepo))
	auth.GET("/me", func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		util.Success(c, gin.H{"email": claims.Email})
	})
	auth.GET("/admin-only", AdminRequired(), func(c *gin.Context) {
		util.Success(c, nil)
	})
	auth.GET("/super-only", AdminRequired(), SuperAdminRequired(), func(c *gin.Context) {
		util.Success(c, nil)
	})
	auth.GET("/fresh-only", FreshRequired(), func(c *gin.Context) {
		util.Success(c, nil)
	})

	return &authFixture{router: router, cfg: cfg, tokenRepo: tokenRepo}
}

func (f *authFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func studentToken(t *testing.T, fresh bool) string {
	t.Helper()

	sid := "STA-2026-1234"
	user := &model.User{Email: "john@school.edu", StudentID: &sid, EnrollmentStatus: model.Active}
	user.ID = 1

	token, err := util.GenerateJWT(user, false, fresh, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func adminToken(t *testing.T, superAdmin bool) string {
	t.Helper()

	user := &model.User{Email: "admin@school.edu", IsAdmin: true, EnrollmentStatus: model.AdminSt}
	user.ID = 2

	token, err := util.GenerateJWT(user, superAdmin, true, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	f := newAuthFixture(t)

	w := f.get("/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	f := newAuthFixture(t)

	w := f.get("/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	f := newAuthFixture(t)

	w := f.get("/me", studentToken(t, true))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "john@school.edu")
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	f := newAuthFixture(t)

	sid := "STA-2026-1234"
	user := &model.User{Email: "john@school.edu", StudentID: &sid}
	user.ID = 1
	refresh, err := util.GenerateRefreshJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	w := f.get("/me", refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRevokedToken(t *testing.T) {
	f := newAuthFixture(t)

	token := studentToken(t, true)
	claims, err := util.ParseJWT(token, testSecret)
	require.NoError(t, err)
	require.NoError(t, f.tokenRepo.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

	w := f.get("/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has been revoked")
}

func TestAdminRequired(t *testing.T) {
	f := newAuthFixture(t)

	w := f.get("/admin-only", studentToken(t, true))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admins only!")

	w = f.get("/admin-only", adminToken(t, false))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSuperAdminRequired(t *testing.T) {
	f := newAuthFixture(t)

	w := f.get("/super-only", adminToken(t, false))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Super Admins only!")

	w = f.get("/super-only", adminToken(t, true))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFreshRequired(t *testing.T) {
	f := newAuthFixture(t)

	// 刷新得到的令牌不带 fresh 标记
	w := f.get("/fresh-only", studentToken(t, false))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Fresh token required")

	w = f.get("/fresh-only", studentToken(t, true))
	assert.Equal(t, http.StatusOK, w.Code)
}
