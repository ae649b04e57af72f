package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shadematch/backend/config"
)

// SetupRouter creates and configures the Gin router. gatherer backs
// /metrics; nil leaves the endpoint out.
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// ClientIP reads X-Forwarded-For only from these peers
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	router.GET("/health", handler.HealthCheck)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/matches", handler.MatchFoundations)
		v1.GET("/shopping-link", handler.ShoppingLink)

		saved := v1.Group("/users/:userId/saved")
		{
			saved.GET("", handler.ListSaved)
			saved.POST("", handler.SaveFoundation)
			saved.DELETE("", handler.RemoveSaved)
		}
	}

	return router
}
