package repository

import (
	"context"
	"time"

	"student_mgt_backend/internal/model"
	"student_mgt_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const revokedKeyPrefix = "revoked_jti:"

// TokenRepository 令牌黑名单。MySQL 是权威存储，Redis 只做快路径缓存，
// 缓存条目的 TTL 取令牌剩余有效期，到期自然消失。
type TokenRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewTokenRepository(db *gorm.DB, rdb *redis.Client) *TokenRepository {
	return &TokenRepository{DB: db, RDB: rdb}
}

func (r *TokenRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	token := &model.RevokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt,
		RevokedAt: time.Now(),
	}
	if err := r.DB.Create(token).Error; err != nil {
		return err
	}

	if r.RDB != nil {
		ttl := time.Until(expiresAt)
		if ttl > 0 {
			if err := r.RDB.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err(); err != nil {
				// 缓存写失败不影响黑名单本身，查库兜底
				logger.Log.Warn("failed to cache revoked jti", zap.Error(err))
			}
		}
	}
	return nil
}

func (r *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if r.RDB != nil {
		n, err := r.RDB.Exists(ctx, revokedKeyPrefix+jti).Result()
		if err == nil && n > 0 {
			return true, nil
		}
		if err != nil {
			logger.Log.Warn("revocation cache lookup failed", zap.Error(err))
		}
	}

	var count int64
	err := r.DB.Model(&model.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error
	return count > 0, err
}

// DeleteExpired 清理已过期的黑名单记录，由后台任务定时调用
func (r *TokenRepository) DeleteExpired() (int64, error) {
	res := r.DB.Unscoped().Where("expires_at < ?", time.Now()).Delete(&model.RevokedToken{})
	return res.RowsAffected, res.Error
}
