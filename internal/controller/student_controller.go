package controller

import (
	"errors"

	"student_mgt_backend/internal/model"
	"student_mgt_backend/internal/service"
	"student_mgt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	UserService       *service.UserService
	EnrollmentService *service.EnrollmentService
	ScoreService      *service.ScoreService
}

func NewStudentController(userService *service.UserService, enrollmentService *service.EnrollmentService, scoreService *service.ScoreService) *StudentController {
	return &StudentController{
		UserService:       userService,
		EnrollmentService: enrollmentService,
		ScoreService:      scoreService,
	}
}

// ListStudents godoc
// @Summary 学生列表
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 403 {object} util.Response "仅限管理员"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.UserService.ListStudents()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// GetStudent godoc
// @Summary 按ID获取学生
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学生ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "学生不存在"
// @Router /students/{studentId} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.UserService.GetStudent(util.MustParseUint(ctx.Param("studentId")))
	if err != nil {
		c.handleStudentError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// ChangeEnrollmentStatusRequest 学籍状态变更
// swagger:model ChangeEnrollmentStatusRequest
type ChangeEnrollmentStatusRequest struct {
	EnrollmentStatus string `json:"enrollment_status" binding:"required"`
}

// ChangeEnrollmentStatus godoc
// @Summary 修改学籍状态
// @Description 管理员把学生置为在读/候补/开除
// @Tags 学生
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学生ID"
// @Param body body ChangeEnrollmentStatusRequest true "目标状态"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "未知的学籍状态"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /students/{studentId} [patch]
func (c *StudentController) ChangeEnrollmentStatus(ctx *gin.Context) {
	var req ChangeEnrollmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	status := model.EnrollmentStatus(req.EnrollmentStatus)
	if !status.Valid() {
		util.BadRequest(ctx, "unknown enrollment status")
		return
	}

	student, err := c.UserService.ChangeEnrollmentStatus(util.MustParseUint(ctx.Param("studentId")), status)
	if err != nil {
		c.handleStudentError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// DeleteStudent godoc
// @Summary 删除学生
// @Description 需要超级管理员权限和新鲜令牌
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学生ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "仅限超级管理员"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /students/{studentId} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.UserService.DeleteStudent(util.MustParseUint(ctx.Param("studentId"))); err != nil {
		c.handleStudentError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Student deleted"})
}

// GetScores godoc
// @Summary 学生成绩单
// @Description 管理员或学生本人查看各课程分数与等级
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path string true "学号"
// @Success 200 {object} util.Response{data=[]model.Score}
// @Failure 403 {object} util.Response "无权查看他人成绩"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /students/{studentId}/scores [get]
func (c *StudentController) GetScores(ctx *gin.Context) {
	studentID := ctx.Param("studentId")
	if !c.allowSelfOrAdmin(ctx, studentID) {
		return
	}

	scores, err := c.ScoreService.StudentScores(studentID)
	if err != nil {
		c.handleStudentError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// GetCGPA godoc
// @Summary 学生绩点
// @Description 按学分加权计算平均绩点；尚无成绩时返回提示而非数值
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path string true "学号"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response "无权查看他人绩点"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /students/{studentId}/cgpa [get]
func (c *StudentController) GetCGPA(ctx *gin.Context) {
	studentID := ctx.Param("studentId")
	if !c.allowSelfOrAdmin(ctx, studentID) {
		return
	}

	gpa, err := c.ScoreService.ComputeCGPA(studentID)
	if err != nil {
		if errors.Is(err, util.ErrNoScoresYet) {
			util.Success(ctx, gin.H{"message": "score not uploaded yet"})
			return
		}
		c.handleStudentError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"cgpa": gpa})
}

// GetCourses godoc
// @Summary 学生选课列表
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path string true "学号"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Failure 403 {object} util.Response "无权查看他人课表"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /courses/{studentId} [get]
func (c *StudentController) GetCourses(ctx *gin.Context) {
	studentID := ctx.Param("studentId")
	if !c.allowSelfOrAdmin(ctx, studentID) {
		return
	}

	student, err := c.UserService.GetStudentByStudentID(studentID)
	if err != nil {
		c.handleStudentError(ctx, err)
		return
	}

	courses, err := c.EnrollmentService.ListStudentCourses(student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// allowSelfOrAdmin 管理员放行，学生只能访问自己的资源
func (c *StudentController) allowSelfOrAdmin(ctx *gin.Context, studentID string) bool {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return false
	}
	if claims.IsAdministrator || claims.StudentID == studentID {
		return true
	}
	util.Forbidden(ctx)
	return false
}

func (c *StudentController) handleStudentError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrStudentNotFound) {
		util.NotFound(ctx, "Student not found")
		return
	}
	util.LogInternalError(ctx, err)
}
