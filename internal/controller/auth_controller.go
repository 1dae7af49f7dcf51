package controller

import (
	"errors"
	"strings"

	"student_mgt_backend/internal/service"
	"student_mgt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// SignupRequest 注册请求（管理员和学生共用），初始密码按规则生成
// swagger:model SignupRequest
type SignupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// SignupAdmin godoc
// @Summary 注册管理员
// @Description 创建管理员账号，初始密码为 姓+名前两位 的小写形式
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body SignupRequest true "管理员注册信息"
// @Success 201 {object} util.Response{data=model.User} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /admin/signup [post]
func (c *AuthController) SignupAdmin(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.SignupAdmin(req.FirstName, req.LastName, req.Email)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, user)
}

// SignupStudent godoc
// @Summary 注册学生
// @Description 管理员创建学生账号，自动分配学号，初始状态为候补
// @Tags 认证
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SignupRequest true "学生注册信息"
// @Success 201 {object} util.Response{data=model.User} "创建成功"
// @Failure 403 {object} util.Response "仅限管理员"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /student/signup [post]
func (c *AuthController) SignupStudent(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.SignupStudent(req.FirstName, req.LastName, req.Email)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, user)
}

// swagger:model AdminLoginRequest
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// swagger:model StudentLoginRequest
type StudentLoginRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// LoginAdmin godoc
// @Summary 管理员登录
// @Description 验证邮箱和密码，签发新鲜访问令牌与刷新令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body AdminLoginRequest true "管理员登录凭据"
// @Success 200 {object} util.Response{data=service.TokenPair} "成功"
// @Failure 401 {object} util.Response "凭据无效"
// @Router /admin/login [post]
func (c *AuthController) LoginAdmin(ctx *gin.Context) {
	var req AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pair, err := c.AuthService.LoginAdmin(req.Email, req.Password)
	if err != nil {
		util.UnauthorizedMsg(ctx, "Invalid credentials")
		return
	}

	util.Success(ctx, pair)
}

// LoginStudent godoc
// @Summary 学生登录
// @Description 验证学号和密码，签发新鲜访问令牌与刷新令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body StudentLoginRequest true "学生登录凭据"
// @Success 200 {object} util.Response{data=service.TokenPair} "成功"
// @Failure 401 {object} util.Response "凭据无效"
// @Router /student/login [post]
func (c *AuthController) LoginStudent(ctx *gin.Context) {
	var req StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pair, err := c.AuthService.LoginStudent(req.StudentID, req.Password)
	if err != nil {
		util.UnauthorizedMsg(ctx, "Invalid credentials")
		return
	}

	util.Success(ctx, pair)
}

// Refresh godoc
// @Summary 刷新访问令牌
// @Description 用刷新令牌换取新的非新鲜访问令牌，角色声明按当前用户状态重新派生
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 401 {object} util.Response "令牌无效或已注销"
// @Router /refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	tokenString := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		util.Unauthorized(ctx)
		return
	}

	access, err := c.AuthService.Refresh(ctx.Request.Context(), tokenString)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"access_token": access})
}

// Logout godoc
// @Summary 退出登录
// @Description 将当前访问令牌加入黑名单，之后即使未过期也会被拒绝
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /logout [delete]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.AuthService.Logout(ctx.Request.Context(), claims); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "User successfully logged out"})
}

// swagger:model AdminChangePasswordRequest
type AdminChangePasswordRequest struct {
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required"`
	ConfirmNewPassword string `json:"confirm_new_password" binding:"required"`
}

// swagger:model StudentChangePasswordRequest
type StudentChangePasswordRequest struct {
	StudentID          string `json:"student_id" binding:"required"`
	Password           string `json:"password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required"`
	ConfirmNewPassword string `json:"confirm_new_password" binding:"required"`
}

// ChangeAdminPassword godoc
// @Summary 管理员修改密码
// @Description 校验旧密码后替换自动生成的初始密码
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body AdminChangePasswordRequest true "改密请求"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "两次输入的新密码不一致"
// @Failure 401 {object} util.Response "凭据无效"
// @Router /admin/change_password [put]
func (c *AuthController) ChangeAdminPassword(ctx *gin.Context) {
	var req AdminChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.ChangeAdminPassword(req.Email, req.Password, req.NewPassword, req.ConfirmNewPassword)
	if err != nil {
		c.handleChangePasswordError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// ChangeStudentPassword godoc
// @Summary 学生修改密码
// @Description 校验旧密码后替换自动生成的初始密码
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body StudentChangePasswordRequest true "改密请求"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "两次输入的新密码不一致"
// @Failure 401 {object} util.Response "凭据无效"
// @Router /student/change_password [put]
func (c *AuthController) ChangeStudentPassword(ctx *gin.Context) {
	var req StudentChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.ChangeStudentPassword(req.StudentID, req.Password, req.NewPassword, req.ConfirmNewPassword)
	if err != nil {
		c.handleChangePasswordError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

func (c *AuthController) handleChangePasswordError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidCredentials):
		util.UnauthorizedMsg(ctx, "Invalid credentials")
	case errors.Is(err, util.ErrPasswordMismatch):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
