package middleware

import (
	"strings"

	"student_mgt_backend/internal/config"
	"student_mgt_backend/internal/repository"
	"student_mgt_backend/internal/util"
	"student_mgt_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 解析 Bearer 令牌：签名/有效期校验 -> 类型校验 -> 黑名单校验，
// 通过后把声明放进请求上下文
func AuthMiddleware(cfg *config.Config, tokenRepo *repository.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			monitoring.AuthRejections.WithLabelValues("missing").Inc()
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			monitoring.AuthRejections.WithLabelValues("invalid").Inc()
			util.Unauthorized(c)
			c.Abort()
			return
		}

		// 刷新令牌不能当访问令牌用
		if claims.TokenType != util.TokenTypeAccess {
			monitoring.AuthRejections.WithLabelValues("invalid").Inc()
			util.Unauthorized(c)
			c.Abort()
			return
		}

		revoked, err := tokenRepo.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}
		if revoked {
			monitoring.AuthRejections.WithLabelValues("revoked").Inc()
			util.UnauthorizedMsg(c, "Token has been revoked")
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// AdminRequired 仅放行携带 is_administrator 声明的请求
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !claims.IsAdministrator {
			monitoring.AuthRejections.WithLabelValues("forbidden").Inc()
			util.ForbiddenMsg(c, "Admins only!")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SuperAdminRequired 仅放行超级管理员，声明在签发时按配置邮箱派生
func SuperAdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !claims.SuperAdmin {
			monitoring.AuthRejections.WithLabelValues("forbidden").Inc()
			util.ForbiddenMsg(c, "Super Admins only!")
			c.Abort()
			return
		}
		c.Next()
	}
}

// FreshRequired 破坏性操作要求直接登录得到的令牌，刷新换来的不算
func FreshRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !claims.Fresh {
			monitoring.AuthRejections.WithLabelValues("stale").Inc()
			util.UnauthorizedMsg(c, "Fresh token required")
			c.Abort()
			return
		}
		c.Next()
	}
}
