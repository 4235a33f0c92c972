package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"saarthi-backend/internal/shared/server/respond"
	"saarthi-backend/internal/shared/telemetry"
	"saarthi-backend/internal/shared/util"
)

const maxStackChars = 4000

// Recovery turns a handler panic into a 500 with the standard error body. The
// panic value is logged, never returned to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("http.panic", map[string]any{
				"request_id":  RequestIDFromContext(c),
				"document_id": c.GetString(DocumentIDKey),
				"artifact":    c.GetString(ArtifactKey),
				"panic":       telemetry.SanitizeError(fmt.Errorf("%v", rec)),
				"stack":       util.TruncateRunes(string(debug.Stack()), maxStackChars),
				"path":        c.Request.URL.Path,
				"method":      c.Request.Method,
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
