package app

import (
	"context"
	"coursehub_backend/internal/config"
	"coursehub_backend/internal/controller"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/service"
	"coursehub_backend/pkg/configwatcher"
	"coursehub_backend/pkg/database"
	"coursehub_backend/pkg/logger"
	"coursehub_backend/pkg/monitoring"
	"coursehub_backend/pkg/security"
	"coursehub_backend/pkg/tracing"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
	stopWatch       chan struct{}
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	purchase    *repository.PurchaseRepository
	progress    *repository.ProgressRepository
	review      *repository.ReviewRepository
	certificate *repository.CertificateRepository
}

type services struct {
	storage     *service.StorageService
	certificate *service.CertificateService
	progress    *service.ProgressService
	rating      *service.RatingService
	review      *service.ReviewService
	reconciler  *service.RatingReconciler
}

type controllers struct {
	progress    *controller.ProgressController
	review      *controller.ReviewController
	certificate *controller.CertificateController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		purchase:    repository.NewPurchaseRepository(db),
		progress:    repository.NewProgressRepository(db),
		review:      repository.NewReviewRepository(db, rdb, cfg.Redis.ReviewCacheTTL),
		certificate: repository.NewCertificateRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) (*services, error) {
	s := &services{}

	renderer, err := service.NewCertificateRenderer()
	if err != nil {
		return nil, err
	}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.certificate = service.NewCertificateService(s.storage, renderer, repos.certificate)
	s.progress = service.NewProgressService(
		db,
		repos.progress,
		repos.course,
		repos.user,
		repos.certificate,
		s.certificate,
	)
	s.rating = service.NewRatingService(repos.review, repos.course)
	s.review = service.NewReviewService(repos.review, repos.purchase, s.rating)
	s.reconciler = service.NewRatingReconciler(s.rating, cfg.Rating.ReconcileCron, logger.Log)

	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		progress:    controller.NewProgressController(s.progress, a.Config),
		review:      controller.NewReviewController(s.review),
		certificate: controller.NewCertificateController(s.certificate),
		health:      controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	app := &App{
		Config:    cfg,
		DB:        db,
		stopWatch: make(chan struct{}),
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(context.Background(), &cfg.Tracing)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	repos := app.initRepositories(db, rdb, cfg)
	services, err := app.initServices(repos, cfg, db)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg)
		logger.Log.Info("Config reloaded", zap.String("log_level", logger.Level().String()))
	})

	return app
}

func (a *App) startBackgroundTasks() {
	if err := a.services.reconciler.Start(); err != nil {
		logger.Log.Error("Failed to start rating reconciler", zap.Error(err))
	}

	go configwatcher.WatchConfig(filepath.Join(a.Config.Dir, "config.yaml"), func(cfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(cfg)
		}
	}, a.stopWatch)
}

func (a *App) Run() {
	a.startBackgroundTasks()

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	close(a.stopWatch)
	a.services.reconciler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
