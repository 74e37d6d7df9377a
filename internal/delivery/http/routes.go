package http

import (
	"github.com/gin-gonic/gin"
	"github.com/visionscan/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", handler.CreateSession)
			sessions.GET("/:id", handler.GetSession)
			sessions.POST("/:id/status", handler.SetSessionStatus)
			sessions.POST("/:id/scan/detect-from-image", handler.DetectFromImage)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.POST("", handler.CreateInventory)
			inventory.GET("", handler.ListInventory)
			inventory.GET("/:id", handler.GetInventory)
			inventory.PUT("/:id", handler.UpdateInventory)
		}
	}

	return router
}
