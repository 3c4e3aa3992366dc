package routes

import (
	"github.com/gin-gonic/gin"
	"general-transcriber/internal/api/middleware"
	"general-transcriber/internal/api/v1/handlers"
	"general-transcriber/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptService services.TranscriptService
	IsAdmin           middleware.AdminChecker
	TrustRoleHeader   bool
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	router.Use(middleware.Identity(container.IsAdmin, container.TrustRoleHeader))

	transcriptHandler := handlers.NewTranscriptHandler(container.TranscriptService)
	transcripts := router.Group("/transcripts")
	{
		transcripts.POST("", transcriptHandler.Upload)
		transcripts.GET("", transcriptHandler.List)
		transcripts.GET("/:id", transcriptHandler.Get)
		transcripts.GET("/:id/status", transcriptHandler.Status)
		transcripts.GET("/:id/download", transcriptHandler.Download)
		transcripts.POST("/:id/start", transcriptHandler.Start)
	}
}
