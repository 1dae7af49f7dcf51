package repository

import (
	"student_mgt_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByStudentID(studentID string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("student_id = ?", studentID).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) Delete(user *model.User) error {
	return r.DB.Delete(user).Error
}

func (r *UserRepository) ListStudents() ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("is_admin = ?", false).Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) ListAdmins() ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("is_admin = ?", true).Order("id").Find(&users).Error
	return users, err
}

// ListCourses 学生当前选修的全部课程
func (r *UserRepository) ListCourses(user *model.User) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Model(user).Association("Courses").Find(&courses)
	return courses, err
}

// IsEnrolled 检查 (学生, 课程) 选课关系是否存在
func (r *UserRepository) IsEnrolled(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Table("user_course").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// Enroll 建立选课关系。关系是集合语义，重复选课不会产生第二条记录。
func (r *UserRepository) Enroll(user *model.User, course *model.Course) error {
	return r.DB.Model(user).Association("Courses").Append(course)
}
