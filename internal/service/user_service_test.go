package service

import (
	"testing"

	"student_mgt_backend/internal/model"
	"student_mgt_backend/internal/repository"
	"student_mgt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestUserService(t *testing.T) (*UserService, *gorm.DB) {
	db := newTestDB(t)
	return NewUserService(repository.NewUserRepository(db)), db
}

func seedAdmin(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	admin := &model.User{
		FirstName:        "Test",
		LastName:         "Admin",
		Email:            email,
		Password:         "x",
		IsAdmin:          true,
		EnrollmentStatus: model.AdminSt,
	}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func TestListStudentsExcludesAdmins(t *testing.T) {
	svc, db := newTestUserService(t)

	seedStudent(t, db, "John", "Doe", "john@school.edu")
	seedStudent(t, db, "Jane", "Roe", "jane@school.edu")
	seedAdmin(t, db, "admin@school.edu")

	students, err := svc.ListStudents()
	require.NoError(t, err)
	assert.Len(t, students, 2)

	admins, err := svc.ListAdmins()
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestGetStudent(t *testing.T) {
	svc, db := newTestUserService(t)

	student := seedStudent(t, db, "John", "Doe", "john@school.edu")
	admin := seedAdmin(t, db, "admin@school.edu")

	got, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.Email, got.Email)

	// 管理员不算学生
	_, err = svc.GetStudent(admin.ID)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)

	_, err = svc.GetStudent(999)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestGetStudentByStudentID(t *testing.T) {
	svc, db := newTestUserService(t)

	student := seedStudent(t, db, "John", "Doe", "john@school.edu")

	got, err := svc.GetStudentByStudentID(*student.StudentID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, got.ID)

	_, err = svc.GetStudentByStudentID("STA-2026-0000")
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestChangeEnrollmentStatus(t *testing.T) {
	svc, db := newTestUserService(t)

	student := seedStudent(t, db, "John", "Doe", "john@school.edu")

	updated, err := svc.ChangeEnrollmentStatus(student.ID, model.Expelled)
	require.NoError(t, err)
	assert.Equal(t, model.Expelled, updated.EnrollmentStatus)

	var fresh model.User
	require.NoError(t, db.First(&fresh, student.ID).Error)
	assert.Equal(t, model.Expelled, fresh.EnrollmentStatus)
}

func TestDeleteStudent(t *testing.T) {
	svc, db := newTestUserService(t)

	student := seedStudent(t, db, "John", "Doe", "john@school.edu")
	admin := seedAdmin(t, db, "admin@school.edu")

	require.NoError(t, svc.DeleteStudent(student.ID))
	_, err := svc.GetStudent(student.ID)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)

	// 学生删除接口不能删管理员
	assert.ErrorIs(t, svc.DeleteStudent(admin.ID), util.ErrStudentNotFound)
}

func TestDeleteAdmin(t *testing.T) {
	svc, db := newTestUserService(t)

	student := seedStudent(t, db, "John", "Doe", "john@school.edu")
	admin := seedAdmin(t, db, "admin@school.edu")

	require.NoError(t, svc.DeleteAdmin(admin.ID))
	assert.ErrorIs(t, svc.DeleteAdmin(admin.ID), util.ErrUserNotFound)

	// 管理员删除接口不能删学生
	assert.ErrorIs(t, svc.DeleteAdmin(student.ID), util.ErrUserNotFound)
}
