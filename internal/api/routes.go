package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes sets up the page and API routes
func SetupRoutes(handler *Handler, logger logrus.FieldLogger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(Recovery())
	router.Use(RequestID())
	router.Use(CORS())
	router.Use(Logger(logger))

	// Health check
	router.GET("/health", handler.HealthCheck)

	// Page and HTMX fragments
	router.GET("/", handler.Index)
	router.GET("/repos", handler.ReposFragment)
	router.GET("/terminal/ws", handler.TerminalStream)
	router.POST("/contact", handler.Contact)

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/repos", handler.ListRepos)
		v1.GET("/profile", handler.GetProfile)
		v1.GET("/stats", handler.GetStats)
	}

	return router
}
