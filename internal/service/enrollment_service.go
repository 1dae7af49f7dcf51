package service

import (
	"errors"

	"student_mgt_backend/internal/model"
	"student_mgt_backend/internal/repository"
	"student_mgt_backend/internal/util"

	"gorm.io/gorm"
)

// EnrollmentService 课程目录与选课关系
type EnrollmentService struct {
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
	DB         *gorm.DB
}

func NewEnrollmentService(courseRepo *repository.CourseRepository, userRepo *repository.UserRepository, db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{
		CourseRepo: courseRepo,
		UserRepo:   userRepo,
		DB:         db,
	}
}

func (s *EnrollmentService) CreateCourse(name, teacher string, unit int) (*model.Course, error) {
	_, err := s.CourseRepo.FindByName(name)
	if err == nil {
		return nil, util.ErrCourseExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	course := &model.Course{Name: name, Teacher: teacher, Unit: unit}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *EnrollmentService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *EnrollmentService) ListCourses() ([]model.Course, error) {
	return s.CourseRepo.List()
}

func (s *EnrollmentService) DeleteCourse(id uint) error {
	course, err := s.GetCourse(id)
	if err != nil {
		return err
	}
	return s.CourseRepo.Delete(course)
}

// ListCourseStudents 选修某课程的学生名单
func (s *EnrollmentService) ListCourseStudents(courseID uint) ([]model.User, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	return s.CourseRepo.ListStudents(course)
}

// ListStudentCourses 某学生选修的全部课程
func (s *EnrollmentService) ListStudentCourses(user *model.User) ([]model.Course, error) {
	return s.UserRepo.ListCourses(user)
}

// Enroll 学生选课。被开除的学生不允许选课；重复选课为空操作但仍然成功。
func (s *EnrollmentService) Enroll(courseID, studentPK uint) (*model.User, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	student, err := s.UserRepo.FindByID(studentPK)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}

	if student.EnrollmentStatus == model.Expelled {
		return nil, util.ErrStudentExpelled
	}

	enrolled, err := s.UserRepo.IsEnrolled(student.ID, course.ID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		if err := s.UserRepo.Enroll(student, course); err != nil {
			return nil, err
		}
	}
	return student, nil
}

// Unenroll 退课。选课关系和该课成绩必须一起消失，放在同一个事务里。
func (s *EnrollmentService) Unenroll(courseID, studentPK uint) error {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return err
	}

	student, err := s.UserRepo.FindByID(studentPK)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrStudentNotFound
	}
	if err != nil {
		return err
	}

	enrolled, err := s.UserRepo.IsEnrolled(student.ID, course.ID)
	if err != nil {
		return err
	}
	if !enrolled {
		return util.ErrNotEnrolled
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(student).Association("Courses").Delete(course); err != nil {
			return err
		}
		return tx.Unscoped().
			Where("user_id = ? AND course_id = ?", student.ID, course.ID).
			Delete(&model.Score{}).Error
	})
}
