package summaries

import (
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

// RegisterRoutes attaches summary routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summarize", h.summarize)
}

type summarizeRequest struct {
	FileID  string                   `json:"fileId"`
	Options artifacts.SummaryOptions `json:"options"`
}

func (h *Handler) summarize(c *gin.Context) {
	c.Set(middleware.ArtifactKey, string(artifacts.KindSummary))

	var req summarizeRequest
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

	summary, mode, err := h.Svc.Summarize(c.Request.Context(), req.FileID, req.Options, c.Query("mock") == "true")
	if err != nil {
		documents.RespondLookupError(c, err)
		return
	}

	c.Set(middleware.ModeKey, string(mode))
	c.Header(middleware.ModeHeader, string(mode))
	respond.OK(c, summary)
}
