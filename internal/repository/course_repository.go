package repository

import (
	"student_mgt_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByName(name string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("name = ?", name).First(&course).Error
	return &course, err
}

func (r *CourseRepository) List() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("id").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Delete(course *model.Course) error {
	return r.DB.Delete(course).Error
}

// ListStudents 选修某门课程的全部学生
func (r *CourseRepository) ListStudents(course *model.Course) ([]model.User, error) {
	var students []model.User
	err := r.DB.Model(course).Association("Users").Find(&students)
	return students, err
}
