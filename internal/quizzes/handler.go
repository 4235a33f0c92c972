package quizzes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/documents"
	"saarthi-backend/internal/shared/server/middleware"
	"saarthi-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches quiz routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quiz", h.generate)
	rg.GET("/quiz/:fileId/export", h.export)
}

// generateRequest accepts both the nested options object and the older
// top-level difficulty/count fields.
type generateRequest struct {
	FileID       string                `json:"fileId"`
	Options      artifacts.QuizOptions `json:"options"`
	Difficulty   string                `json:"difficulty"`
	Count        int                   `json:"count"`
	NumQuestions int                   `json:"numQuestions"`
}

func (r generateRequest) quizOptions() artifacts.QuizOptions {
	opts := r.Options
	if strings.TrimSpace(string(opts.Difficulty)) == "" {
		opts.Difficulty = artifacts.Difficulty(r.Difficulty)
	}
	if opts.NumQuestions <= 0 {
		opts.NumQuestions = r.Count
	}
	if opts.NumQuestions <= 0 {
		opts.NumQuestions = r.NumQuestions
	}
	return opts.Normalize()
}

func (h *Handler) generate(c *gin.Context) {
	c.Set(middleware.ArtifactKey, string(artifacts.KindQuiz))

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.FileID = strings.TrimSpace(req.FileID)
	if req.FileID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileId is required", nil)
		return
	}
	c.Set(middleware.DocumentIDKey, req.FileID)

	quiz, mode, err := h.Svc.Generate(c.Request.Context(), req.FileID, req.quizOptions(), c.Query("mock") == "true")
	if err != nil {
		documents.RespondLookupError(c, err)
		return
	}

	c.Set(middleware.ModeKey, string(mode))
	c.Header(middleware.ModeHeader, string(mode))
	respond.OK(c, quiz)
}

func (h *Handler) export(c *gin.Context) {
	id := strings.TrimSpace(c.Param("fileId"))
	c.Set(middleware.DocumentIDKey, id)
	c.Set(middleware.ArtifactKey, string(artifacts.KindQuiz))

	format, ok := ParseFormat(c.DefaultQuery("format", "json"))
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "format must be json or csv", nil)
		return
	}

	quiz, err := h.Svc.Latest(id)
	if err != nil {
		if errors.Is(err, ErrNoQuiz) {
			respond.Error(c, http.StatusNotFound, "no_quiz", "No quiz available for this fileId. Generate a quiz first.", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to export quiz", nil)
		return
	}

	body, err := Export(quiz, format)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to export quiz", nil)
		return
	}

	respond.Attachment(c, fmt.Sprintf("quiz-%s.%s", id, format), format.ContentType(), body)
}
