package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"student_mgt_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestTokenRepository(t *testing.T) *TokenRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewTokenRepository(db, nil)
}

func TestRevokeAndIsRevoked(t *testing.T) {
	repo := newTestTokenRepository(t)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestDeleteExpired(t *testing.T) {
	repo := newTestTokenRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Revoke(ctx, "expired", time.Now().Add(-time.Minute)))
	require.NoError(t, repo.Revoke(ctx, "live", time.Now().Add(time.Hour)))

	deleted, err := repo.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// 未过期的记录仍然生效
	revoked, err := repo.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, revoked)
}
