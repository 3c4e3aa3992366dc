package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"general-transcriber/internal/app/model"
)

// StructuredLogging provides structured logging middleware
func StructuredLogging(logger *slog.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID := ""
		if param.Keys != nil {
			if id, exists := param.Keys[RequestIDKey]; exists {
				requestID = id.(string)
			}
		}

		user := ""
		if viewer, ok := param.Keys[ViewerKey].(model.Viewer); ok {
			user = viewer.Email
		}

		// health checks and scrapes are noise
		if param.Path == "/health" || param.Path == "/metrics" {
			return ""
		}

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", param.Method,
			"path", param.Path,
			"status", param.StatusCode,
			"latency_ms", param.Latency.Milliseconds(),
			"client_ip", param.ClientIP,
			"user_agent", param.Request.UserAgent(),
			"user", user,
			"error", param.ErrorMessage,
		)

		return ""
	})
}