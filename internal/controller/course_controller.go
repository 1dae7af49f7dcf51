package controller

import (
	"errors"

	"student_mgt_backend/internal/service"
	"student_mgt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	EnrollmentService *service.EnrollmentService
	ScoreService      *service.ScoreService
}

func NewCourseController(enrollmentService *service.EnrollmentService, scoreService *service.ScoreService) *CourseController {
	return &CourseController{
		EnrollmentService: enrollmentService,
		ScoreService:      scoreService,
	}
}

// CreateCourseRequest 建课请求
// swagger:model CreateCourseRequest
type CreateCourseRequest struct {
	Name    string `json:"name" binding:"required"`
	Teacher string `json:"teacher" binding:"required"`
	Unit    int    `json:"unit" binding:"required,min=1"`
}

// ListCourses godoc
// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /course [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.EnrollmentService.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 课程名唯一，创建后除删除外不可变更
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 409 {object} util.Response "课程名已存在"
// @Router /course [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.EnrollmentService.CreateCourse(req.Name, req.Teacher, req.Unit)
	if err != nil {
		if errors.Is(err, util.ErrCourseExists) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, course)
}

// GetCourse godoc
// @Summary 按ID获取课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /course/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.EnrollmentService.GetCourse(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.handleCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 需要超级管理员权限和新鲜令牌
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "仅限超级管理员"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /course/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.EnrollmentService.DeleteCourse(util.MustParseUint(ctx.Param("id"))); err != nil {
		c.handleCourseError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Course deleted"})
}

// ListCourseStudents godoc
// @Summary 课程学生名单
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /course/{id}/students [get]
func (c *CourseController) ListCourseStudents(ctx *gin.Context) {
	students, err := c.EnrollmentService.ListCourseStudents(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.handleCourseError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// Enroll godoc
// @Summary 学生选课
// @Description 被开除的学生不允许选课；重复选课不会产生重复关系
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "学生已被开除"
// @Failure 404 {object} util.Response "课程或学生不存在"
// @Router /course/{id}/enroll/{studentId} [put]
func (c *CourseController) Enroll(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	studentPK := util.MustParseUint(ctx.Param("studentId"))

	student, err := c.EnrollmentService.Enroll(courseID, studentPK)
	if err != nil {
		if errors.Is(err, util.ErrStudentExpelled) {
			util.BadRequest(ctx, err.Error())
			return
		}
		c.handleCourseError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// Unenroll godoc
// @Summary 学生退课
// @Description 移除选课关系并删除该课成绩，两者在同一事务内完成
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "学生未选该课程"
// @Failure 404 {object} util.Response "课程或学生不存在"
// @Router /course/{id}/unenroll/{studentId} [put]
func (c *CourseController) Unenroll(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	studentPK := util.MustParseUint(ctx.Param("studentId"))

	if err := c.EnrollmentService.Unenroll(courseID, studentPK); err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.BadRequest(ctx, err.Error())
			return
		}
		c.handleCourseError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Unenrolled student from course"})
}

// ScoreUploadRequest 成绩录入请求
// swagger:model ScoreUploadRequest
type ScoreUploadRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Score     *int   `json:"score" binding:"required,min=0,max=100"`
}

// UploadScore godoc
// @Summary 成绩录入
// @Description 等级由分数按固定分段推导；已有成绩则原地更新（200），否则新建（201）
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body ScoreUploadRequest true "学号与分数"
// @Success 200 {object} util.Response{data=model.Score} "成绩已更新"
// @Success 201 {object} util.Response{data=model.Score} "成绩已录入"
// @Failure 400 {object} util.Response "学生未选该课程"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /course/{id}/score-upload [put]
func (c *CourseController) UploadScore(ctx *gin.Context) {
	var req ScoreUploadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if _, err := c.EnrollmentService.GetCourse(courseID); err != nil {
		c.handleCourseError(ctx, err)
		return
	}

	score, created, err := c.ScoreService.UploadScore(courseID, req.StudentID, *req.Score)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound):
			util.NotFound(ctx, "Student not found")
		case errors.Is(err, util.ErrNotEnrolled):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if created {
		util.Created(ctx, score)
		return
	}
	util.Success(ctx, score)
}

func (c *CourseController) handleCourseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrStudentNotFound):
		util.NotFound(ctx, "Student not found")
	default:
		util.LogInternalError(ctx, err)
	}
}
