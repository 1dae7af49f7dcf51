package service

import (
	"context"
	"errors"
	"strings"

	"student_mgt_backend/internal/config"
	"student_mgt_backend/internal/model"
	"student_mgt_backend/internal/repository"
	"student_mgt_backend/internal/util"

	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo  *repository.UserRepository
	TokenRepo *repository.TokenRepository
	Cfg       *config.Config
}

// TokenPair 登录返回的令牌对
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func NewAuthService(userRepo *repository.UserRepository, tokenRepo *repository.TokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:  userRepo,
		TokenRepo: tokenRepo,
		Cfg:       cfg,
	}
}

// SignupAdmin 创建管理员账号，初始密码为默认生成规则
func (s *AuthService) SignupAdmin(firstName, lastName, email string) (*model.User, error) {
	if err := s.checkEmailFree(email); err != nil {
		return nil, err
	}

	hashed, err := util.HashPassword(util.DefaultPassword(firstName, lastName))
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		Password:         hashed,
		EnrollmentStatus: model.AdminSt,
		IsAdmin:          true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignupStudent 由管理员创建学生账号，分配学号并置为候补状态
func (s *AuthService) SignupStudent(firstName, lastName, email string) (*model.User, error) {
	if err := s.checkEmailFree(email); err != nil {
		return nil, err
	}

	hashed, err := util.HashPassword(util.DefaultPassword(firstName, lastName))
	if err != nil {
		return nil, err
	}

	studentID, err := s.freeStudentID()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:        firstName,
		LastName:         lastName,
		StudentID:        &studentID,
		Email:            email,
		Password:         hashed,
		EnrollmentStatus: model.Waitlist,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginAdmin 管理员用邮箱登录，签发新鲜访问令牌和刷新令牌
func (s *AuthService) LoginAdmin(email, password string) (*TokenPair, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return s.login(user, password)
}

// LoginStudent 学生用学号登录
func (s *AuthService) LoginStudent(studentID, password string) (*TokenPair, error) {
	user, err := s.UserRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return s.login(user, password)
}

func (s *AuthService) login(user *model.User, password string) (*TokenPair, error) {
	if !util.CheckPassword(user.Password, password) {
		return nil, util.ErrInvalidCredentials
	}

	access, err := util.GenerateJWT(user, s.isSuperAdmin(user), true, s.Cfg.JWT.Secret, s.Cfg.JWT.AccessExpireTime)
	if err != nil {
		return nil, err
	}
	refresh, err := util.GenerateRefreshJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.RefreshExpireTime)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh 用刷新令牌换取非新鲜的访问令牌，角色声明按用户当前状态重新派生
func (s *AuthService) Refresh(ctx context.Context, tokenString string) (string, error) {
	claims, err := util.ParseJWT(tokenString, s.Cfg.JWT.Secret)
	if err != nil {
		return "", err
	}
	if claims.TokenType != util.TokenTypeRefresh {
		return "", util.ErrWrongTokenType
	}

	revoked, err := s.TokenRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", util.ErrTokenRevoked
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(user, s.isSuperAdmin(user), false, s.Cfg.JWT.Secret, s.Cfg.JWT.AccessExpireTime)
}

// Logout 将当前访问令牌的标识加入黑名单
func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	return s.TokenRepo.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// ChangeAdminPassword 管理员修改默认生成的密码
func (s *AuthService) ChangeAdminPassword(email, password, newPassword, confirm string) (*model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return s.changePassword(user, password, newPassword, confirm)
}

// ChangeStudentPassword 学生修改默认生成的密码
func (s *AuthService) ChangeStudentPassword(studentID, password, newPassword, confirm string) (*model.User, error) {
	user, err := s.UserRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return s.changePassword(user, password, newPassword, confirm)
}

func (s *AuthService) changePassword(user *model.User, password, newPassword, confirm string) (*model.User, error) {
	if !util.CheckPassword(user.Password, password) {
		return nil, util.ErrInvalidCredentials
	}
	if newPassword != confirm {
		return nil, util.ErrPasswordMismatch
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	user.Password = hashed
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) checkEmailFree(email string) error {
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return util.ErrEmailRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// freeStudentID 随机生成学号，撞号则重试
func (s *AuthService) freeStudentID() (string, error) {
	for i := 0; i < 10; i++ {
		candidate := util.GenerateStudentID()
		_, err := s.UserRepo.FindByStudentID(candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not allocate a free student id")
}

// isSuperAdmin 只在签发令牌时比较配置的超管邮箱，不落库
func (s *AuthService) isSuperAdmin(user *model.User) bool {
	return user.IsAdmin && s.Cfg.SuperAdmin.Email != "" &&
		strings.EqualFold(user.Email, s.Cfg.SuperAdmin.Email)
}
