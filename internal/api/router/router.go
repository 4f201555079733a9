package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/clipsight/clipsight/internal/api/handlers"
	"github.com/clipsight/clipsight/internal/api/middleware"
	"github.com/clipsight/clipsight/internal/config"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
}

func NewRouter(cfg *config.Config, videoHandler *handlers.VideoHandler, healthHandler *handlers.HealthHandler) *Router {
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health endpoints
	health := engine.Group("/")
	{
		health.GET("/health", healthHandler.Health)
		health.GET("/ready", healthHandler.Readiness)
		health.GET("/live", healthHandler.Liveness)
	}

	// Swagger documentation
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API endpoints with rate limiting
	api := engine.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(&cfg.API))
	{
		video := api.Group("/video")
		{
			video.POST("/analyze", videoHandler.AnalyzeVideo)  // /api/v1/video/analyze
			video.POST("/detect", videoHandler.DetectPlatform) // /api/v1/video/detect
			video.GET("/history", videoHandler.History)        // /api/v1/video/history
		}
	}

	return &Router{
		engine: engine,
		config: cfg,
	}
}

func (r *Router) Start() error {
	addr := r.config.Server.Host + ":" + r.config.Server.Port
	return r.engine.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
