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

func newTestScoreService(t *testing.T) (*ScoreService, *gorm.DB) {
	db := newTestDB(t)
	svc := NewScoreService(repository.NewScoreRepository(db), repository.NewUserRepository(db))
	return svc, db
}

func TestUploadScoreCreatesThenUpdates(t *testing.T) {
	svc, db := newTestScoreService(t)

	course := seedCourse(t, db, "Mathematics", "Dr. Smith", 3)
	student := seedStudent(t, db, "John", "Doe", "john@school.edu")
	enrollStudent(t, db, student, course)

	record, created, err := svc.UploadScore(course.ID, *student.StudentID, 82)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "A", record.Grade)

	// 重复录入覆盖原记录而不是新增一条
	record, created, err = svc.UploadScore(course.ID, *student.StudentID, 55)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "C", record.Grade)

	var count int64
	require.NoError(t, db.Model(&model.Score{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUploadScoreRequiresEnrollment(t *testing.T) {
	svc, db := newTestScoreService(t)

	course := seedCourse(t, db, "Mathematics", "Dr. Smith", 3)
	student := seedStudent(t, db, "John", "Doe", "john@school.edu")

	_, _, err := svc.UploadScore(course.ID, *student.StudentID, 82)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	_, _, err = svc.UploadScore(course.ID, "STA-2026-0000", 82)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestStudentScores(t *testing.T) {
	svc, db := newTestScoreService(t)

	math := seedCourse(t, db, "Mathematics", "Dr. Smith", 3)
	physics := seedCourse(t, db, "Physics", "Dr. Jones", 4)
	student := seedStudent(t, db, "John", "Doe", "john@school.edu")
	enrollStudent(t, db, student, math)
	enrollStudent(t, db, student, physics)

	_, _, err := svc.UploadScore(math.ID, *student.StudentID, 75)
	require.NoError(t, err)
	_, _, err = svc.UploadScore(physics.ID, *student.StudentID, 62)
	require.NoError(t, err)

	scores, err := svc.StudentScores(*student.StudentID)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	// 成绩单带课程信息
	assert.NotEmpty(t, scores[0].Course.Name)
}

func TestComputeCGPA(t *testing.T) {
	svc, db := newTestScoreService(t)

	// 1 学分 A(5) + 4 学分 C(3) -> (5+12)/5 = 3.4
	seminar := seedCourse(t, db, "Seminar", "Dr. Smith", 1)
	physics := seedCourse(t, db, "Physics", "Dr. Jones", 4)
	student := seedStudent(t, db, "John", "Doe", "john@school.edu")
	enrollStudent(t, db, student, seminar)
	enrollStudent(t, db, student, physics)

	_, _, err := svc.UploadScore(seminar.ID, *student.StudentID, 90)
	require.NoError(t, err)
	_, _, err = svc.UploadScore(physics.ID, *student.StudentID, 52)
	require.NoError(t, err)

	gpa, err := svc.ComputeCGPA(*student.StudentID)
	require.NoError(t, err)
	assert.Equal(t, 3.4, gpa)
}

func TestComputeCGPARounding(t *testing.T) {
	svc, db := newTestScoreService(t)

	// 3 学分 A(5) + 3 学分 B(4) + 3 学分 C(3) -> 12/3 课程 = 4.0
	// 换成 2/3/4 学分: (10+12+12)/9 = 3.777... -> 3.78
	a := seedCourse(t, db, "Algebra", "Dr. Smith", 2)
	b := seedCourse(t, db, "Biology", "Dr. Jones", 3)
	c := seedCourse(t, db, "Chemistry", "Dr. Brown", 4)
	student := seedStudent(t, db, "John", "Doe", "john@school.edu")
	for _, course := range []*model.Course{a, b, c} {
		enrollStudent(t, db, student, course)
	}

	_, _, err := svc.UploadScore(a.ID, *student.StudentID, 80)
	require.NoError(t, err)
	_, _, err = svc.UploadScore(b.ID, *student.StudentID, 65)
	require.NoError(t, err)
	_, _, err = svc.UploadScore(c.ID, *student.StudentID, 55)
	require.NoError(t, err)

	gpa, err := svc.ComputeCGPA(*student.StudentID)
	require.NoError(t, err)
	assert.Equal(t, 3.78, gpa)
}

func TestComputeCGPANoScores(t *testing.T) {
	svc, db := newTestScoreService(t)

	course := seedCourse(t, db, "Mathematics", "Dr. Smith", 3)
	student := seedStudent(t, db, "John", "Doe", "john@school.edu")
	enrollStudent(t, db, student, course)

	// 选了课但还没出成绩
	_, err := svc.ComputeCGPA(*student.StudentID)
	assert.ErrorIs(t, err, util.ErrNoScoresYet)

	_, err = svc.ComputeCGPA("STA-2026-0000")
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}
