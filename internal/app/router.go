package app

import (
	"coursehub_backend/docs"
	"coursehub_backend/internal/config"
	"coursehub_backend/internal/middleware"
	"coursehub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 证书文件，凭编号即可下载
	router.GET("/certificates/:file", c.certificate.Download)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerProgressRoutes(authGroup, c)
		a.registerReviewRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/reviews/:courseId", c.review.ListCourseReviews)
		public.GET("/certificates/:id", c.certificate.Verify)
	}
}

func (a *App) registerProgressRoutes(rg *gin.RouterGroup, c *controllers) {
	progress := rg.Group("/progress/:courseId")
	{
		progress.GET("", c.progress.GetProgress)
		progress.POST("/lecture/:lectureId/view", c.progress.RecordLectureViewed)
		progress.POST("/complete", c.progress.MarkCompleted)
		progress.POST("/incomplete", c.progress.MarkIncomplete)
	}
}

func (a *App) registerReviewRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/reviews/create", c.review.CreateReview)
	rg.PUT("/reviews/:id", c.review.UpdateReview)
	rg.DELETE("/reviews/:id", c.review.DeleteReview)
}
