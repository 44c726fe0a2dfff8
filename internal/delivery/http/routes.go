package http

import (
	"github.com/gin-gonic/gin"

	"github.com/puntoventa/backend/config"
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
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		interpret := v1.Group("/interpret")
		{
			interpret.POST("/document", handler.InterpretDocument)
			interpret.POST("/voice", handler.InterpretVoiceOrder)
		}

		products := v1.Group("/products")
		{
			products.POST("", handler.CreateProduct)
			products.GET("", handler.ListProducts)
			products.GET("/:id", handler.GetProduct)
			products.PUT("/:id", handler.UpdateProduct)
			products.DELETE("/:id", handler.DeleteProduct)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", handler.CreateSale)
			sales.GET("", handler.ListSales)
			sales.GET("/:id", handler.GetSale)
		}
	}

	return router
}
