package bootstrap

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"saarthi-backend/internal/chat"
	"saarthi-backend/internal/documents"
	"saarthi-backend/internal/generation"
	"saarthi-backend/internal/llm"
	"saarthi-backend/internal/llm/gemini"
	"saarthi-backend/internal/llm/openai"
	"saarthi-backend/internal/quizzes"
	"saarthi-backend/internal/shared/config"
	"saarthi-backend/internal/shared/server"
	"saarthi-backend/internal/shared/server/middleware"
	"saarthi-backend/internal/shared/storage/object"
	localstore "saarthi-backend/internal/shared/storage/object/local"
	"saarthi-backend/internal/shared/telemetry"
	"saarthi-backend/internal/summaries"
)

// App holds the process-lifetime state and the router built on it.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	Store            object.ObjectStore
	DocumentsRepo    documents.Repo
	QuizCache        quizzes.Cache
	Generation       *generation.Client
	DocumentsService *documents.Service
	ChatService      *chat.Service
	SummaryService   *summaries.Service
	QuizService      *quizzes.Service
	DocumentsHandler *documents.Handler
	ChatHandler      *chat.Handler
	SummaryHandler   *summaries.Handler
	QuizHandler      *quizzes.Handler
}

// Build wires every dependency once. Each call yields isolated stores, so
// tests can build as many apps as they need.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.UploadDir) == "" {
		cfg.UploadDir = "./uploads"
	}

	gen, err := BuildGeneration(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:        cfg,
		Store:         localstore.New(cfg.UploadDir),
		DocumentsRepo: documents.NewMemoryRepo(),
		QuizCache:     quizzes.NewMemoryCache(),
		Generation:    gen,
	}

	app.DocumentsService = documents.NewService(app.Store, app.DocumentsRepo)
	app.ChatService = chat.NewService(app.DocumentsService, gen)
	app.SummaryService = summaries.NewService(app.DocumentsService, gen)
	app.QuizService = quizzes.NewService(app.DocumentsService, gen, app.QuizCache)

	app.DocumentsHandler = documents.NewHandler(app.DocumentsService, cfg.MaxUploadBytes)
	app.ChatHandler = chat.NewHandler(app.ChatService)
	app.SummaryHandler = summaries.NewHandler(app.SummaryService)
	app.QuizHandler = quizzes.NewHandler(app.QuizService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		DocumentHandler: app.DocumentsHandler,
		ChatHandler:     app.ChatHandler,
		SummaryHandler:  app.SummaryHandler,
		QuizHandler:     app.QuizHandler,
		LiveGeneration:  gen.Live(),
		Limiter:         middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// BuildGeneration selects the generation strategy once for the process: the
// mock when forced or when no credential is configured, otherwise the
// configured provider's backend.
func BuildGeneration(cfg config.Config) (*generation.Client, error) {
	delays := generation.DefaultDelays
	if cfg.MockDelayDisabled {
		delays = generation.Delays{}
	}
	mock := generation.NewMock(delays)

	if cfg.MockMode || !cfg.ModelCredentialPresent() {
		telemetry.Info("generation.mode", map[string]any{
			"mode":       string(generation.ModeMock),
			"forced":     cfg.MockMode,
			"credential": cfg.ModelCredentialPresent(),
		})
		return generation.NewClient(nil, mock), nil
	}

	backend, err := buildBackend(cfg)
	if err != nil {
		return nil, err
	}
	telemetry.Info("generation.mode", map[string]any{
		"mode":     string(generation.ModeModel),
		"provider": backend.Name(),
		"model":    backend.Model(),
	})
	return generation.NewClient(generation.NewModel(backend), mock), nil
}

func buildBackend(cfg config.Config) (llm.Backend, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	case config.ProviderOpenAI, "":
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
