package service

import (
	"errors"

	"student_mgt_backend/internal/model"
	"student_mgt_backend/internal/repository"
	"student_mgt_backend/internal/util"

	"gorm.io/gorm"
)

// UserService 学生与管理员账号的管理操作
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) ListStudents() ([]model.User, error) {
	return s.UserRepo.ListStudents()
}

func (s *UserService) ListAdmins() ([]model.User, error) {
	return s.UserRepo.ListAdmins()
}

func (s *UserService) GetStudent(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, util.ErrStudentNotFound
	}
	return user, nil
}

// GetStudentByStudentID 按学号查学生
func (s *UserService) GetStudentByStudentID(studentID string) (*model.User, error) {
	user, err := s.UserRepo.FindByStudentID(studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	return user, err
}

// ChangeEnrollmentStatus 管理员调整学籍状态（候补/在读/开除）
func (s *UserService) ChangeEnrollmentStatus(id uint, status model.EnrollmentStatus) (*model.User, error) {
	user, err := s.GetStudent(id)
	if err != nil {
		return nil, err
	}
	user.EnrollmentStatus = status
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteStudent(id uint) error {
	user, err := s.GetStudent(id)
	if err != nil {
		return err
	}
	return s.UserRepo.Delete(user)
}

func (s *UserService) DeleteAdmin(id uint) error {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		return util.ErrUserNotFound
	}
	return s.UserRepo.Delete(user)
}
