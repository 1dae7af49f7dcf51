package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student_mgt_backend/internal/config"
	"student_mgt_backend/internal/controller"
	"student_mgt_backend/internal/repository"
	"student_mgt_backend/internal/service"
	"student_mgt_backend/pkg/database"
	"student_mgt_backend/pkg/logger"
	"student_mgt_backend/pkg/monitoring"
	"student_mgt_backend/pkg/security"
	"student_mgt_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	repos  *repositories
}

type repositories struct {
	user   *repository.UserRepository
	course *repository.CourseRepository
	score  *repository.ScoreRepository
	token  *repository.TokenRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	enrollment *service.EnrollmentService
	score      *service.ScoreService
}

type controllers struct {
	auth    *controller.AuthController
	admin   *controller.AdminController
	student *controller.StudentController
	course  *controller.CourseController
	health  *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:   repository.NewUserRepository(db),
		course: repository.NewCourseRepository(db),
		score:  repository.NewScoreRepository(db),
		token:  repository.NewTokenRepository(db, rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	return &services{
		auth:       service.NewAuthService(repos.user, repos.token, cfg),
		user:       service.NewUserService(repos.user),
		enrollment: service.NewEnrollmentService(repos.course, repos.user, db),
		score:      service.NewScoreService(repos.score, repos.user),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		admin:   controller.NewAdminController(s.user),
		student: controller.NewStudentController(s.user, s.enrollment, s.score),
		course:  controller.NewCourseController(s.enrollment, s.score),
		health:  controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 定时清理黑名单中已过期的令牌记录
func (a *App) startBackgroundTasks(repos *repositories) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			n, err := repos.token.DeleteExpired()
			if err != nil {
				logger.Log.Error("revoked token pruning error", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Log.Info("pruned expired revoked tokens", zap.Int64("count", n))
			}
		}
	}()
}

// ReloadConfig 应用可热更的配置段，其余配置段重启后生效
func (a *App) ReloadConfig(newCfg *config.Config) {
	a.Config.SuperAdmin = newCfg.SuperAdmin
	logger.Log.Info("config reloaded", zap.String("super_admin_email", newCfg.SuperAdmin.Email))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(ginMode(cfg.Server.Mode))

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	app.repos = repos
	services := app.initServices(repos, cfg, db)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("student-mgt", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	app.startBackgroundTasks(repos)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
