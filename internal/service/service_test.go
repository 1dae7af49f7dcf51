package service

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"student_mgt_backend/internal/config"
	"student_mgt_backend/internal/model"
	"student_mgt_backend/internal/repository"
	"student_mgt_backend/internal/util"
	"student_mgt_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库，表结构与生产迁移保持一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-at-least-32-chars!",
			AccessExpireTime:  time.Hour,
			RefreshExpireTime: 24 * time.Hour,
		},
		SuperAdmin: config.SuperAdminConfig{Email: "superadmin@school.edu"},
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db, nil)
	return NewAuthService(userRepo, tokenRepo, testConfig()), db
}

var studentIDSeq uint32

func seedStudent(t *testing.T, db *gorm.DB, firstName, lastName, email string) *model.User {
	t.Helper()

	hashed, err := util.HashPassword(util.DefaultPassword(firstName, lastName))
	require.NoError(t, err)

	// 顺序分配，避免随机学号在同一测试里撞号
	studentID := fmt.Sprintf("STA-2026-%04d", atomic.AddUint32(&studentIDSeq, 1))
	user := &model.User{
		FirstName:        firstName,
		LastName:         lastName,
		StudentID:        &studentID,
		Email:            email,
		Password:         hashed,
		EnrollmentStatus: model.Active,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, name, teacher string, unit int) *model.Course {
	t.Helper()

	course := &model.Course{Name: name, Teacher: teacher, Unit: unit}
	require.NoError(t, db.Create(course).Error)
	return course
}

func enrollStudent(t *testing.T, db *gorm.DB, student *model.User, course *model.Course) {
	t.Helper()
	require.NoError(t, db.Model(student).Association("Courses").Append(course))
}
