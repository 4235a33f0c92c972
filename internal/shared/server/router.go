package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"saarthi-backend/internal/chat"
	"saarthi-backend/internal/documents"
	"saarthi-backend/internal/quizzes"
	"saarthi-backend/internal/shared/config"
	"saarthi-backend/internal/shared/metrics"
	"saarthi-backend/internal/shared/server/middleware"
	"saarthi-backend/internal/shared/server/respond"
	"saarthi-backend/internal/summaries"
)

// GenerateGroup is the rate limit group for model-backed routes.
const GenerateGroup = "GENERATE"

// RouterDeps are the handlers and settings the router mounts.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	ChatHandler     *chat.Handler
	SummaryHandler  *summaries.Handler
	QuizHandler     *quizzes.Handler
	LiveGeneration  bool
	Limiter         *middleware.RateLimiter
}

var generateRoutes = map[string]bool{
	"/api/chat":      true,
	"/api/summarize": true,
	"/api/quiz":      true,
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: generationGroup,
			Limiter:  deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				GenerateGroup: middleware.PerMinute(deps.Config.RateLimitGeneratePerMin),
			},
		}),
	)

	mode := "mock"
	if deps.LiveGeneration {
		mode = "model"
	}
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"ok":       true,
			"mode":     mode,
			"provider": deps.Config.LLMProvider,
		})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}
	if deps.SummaryHandler != nil {
		deps.SummaryHandler.RegisterRoutes(api)
	}
	if deps.QuizHandler != nil {
		deps.QuizHandler.RegisterRoutes(api)
	}

	return r
}

func generationGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && generateRoutes[c.Request.URL.Path] {
		return GenerateGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":4000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
