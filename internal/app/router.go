package app

import (
	"student_mgt_backend/docs"
	"student_mgt_backend/internal/config"
	"student_mgt_backend/internal/middleware"
	"student_mgt_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// 路由约定：/student 下是静态的认证类接口，带参数的学生资源挂在 /students 下，
// gin 的路由树不允许同一层级同时出现静态段和通配段
func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由（无需登录）
	router.GET("/health", c.health.HealthCheck)
	router.POST("/admin/signup", c.auth.SignupAdmin)
	router.POST("/admin/login", c.auth.LoginAdmin)
	router.POST("/student/login", c.auth.LoginStudent)

	// 改密接口凭据在请求体里，与登录同级，不挂认证中间件
	router.PUT("/admin/change_password", c.auth.ChangeAdminPassword)
	router.PUT("/student/change_password", c.auth.ChangeStudentPassword)

	// 刷新接口自行解析刷新令牌
	router.POST("/refresh", c.auth.Refresh)

	// 2. 需要访问令牌的路由
	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(cfg, repos.token))
	{
		auth.DELETE("/logout", c.auth.Logout)

		// 学生本人或管理员，按学号访问
		auth.GET("/students/:studentId/scores", c.student.GetScores)
		auth.GET("/students/:studentId/cgpa", c.student.GetCGPA)
		auth.GET("/courses/:studentId", c.student.GetCourses)

		// 3. 管理员接口
		admin := auth.Group("/")
		admin.Use(middleware.AdminRequired())
		{
			admin.POST("/student/signup", c.auth.SignupStudent)
			admin.GET("/admin", c.admin.ListAdmins)

			admin.GET("/students", c.student.ListStudents)
			admin.GET("/students/:studentId", c.student.GetStudent)
			admin.PATCH("/students/:studentId", c.student.ChangeEnrollmentStatus)

			admin.GET("/course", c.course.ListCourses)
			admin.POST("/course", c.course.CreateCourse)
			admin.GET("/course/:id", c.course.GetCourse)
			admin.GET("/course/:id/students", c.course.ListCourseStudents)
			admin.PUT("/course/:id/enroll/:studentId", c.course.Enroll)
			admin.PUT("/course/:id/unenroll/:studentId", c.course.Unenroll)
			admin.PUT("/course/:id/score-upload", c.course.UploadScore)

			// 4. 破坏性操作：超级管理员 + 新鲜令牌
			super := admin.Group("/")
			super.Use(middleware.SuperAdminRequired(), middleware.FreshRequired())
			{
				super.DELETE("/admins/:id", c.admin.DeleteAdmin)
				super.DELETE("/students/:studentId", c.student.DeleteStudent)
				super.DELETE("/course/:id", c.course.DeleteCourse)
			}
		}
	}
}
