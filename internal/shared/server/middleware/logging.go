package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"saarthi-backend/internal/shared/telemetry"
)

// Context keys handlers set so the access log can attribute a request.
const (
	DocumentIDKey = "documentId"
	ArtifactKey   = "artifact"
	ModeKey       = "generationMode"
)

// ModeHeader tells clients which generation path produced an artifact.
const ModeHeader = "X-Generation-Mode"

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"document_id": c.GetString(DocumentIDKey),
			"artifact":    c.GetString(ArtifactKey),
			"mode":        c.GetString(ModeKey),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
