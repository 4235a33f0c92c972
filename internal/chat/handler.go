package chat

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

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

type chatRequest struct {
	FileID  string `json:"fileId"`
	Message string `json:"message"`
}

func (h *Handler) chat(c *gin.Context) {
	c.Set(middleware.ArtifactKey, string(artifacts.KindChat))

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.FileID = strings.TrimSpace(req.FileID)
	if req.FileID == "" || strings.TrimSpace(req.Message) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileId and message are required", nil)
		return
	}
	c.Set(middleware.DocumentIDKey, req.FileID)

	reply, mode, err := h.Svc.Ask(c.Request.Context(), req.FileID, req.Message, c.Query("mock") == "true")
	if err != nil {
		documents.RespondLookupError(c, err)
		return
	}

	c.Set(middleware.ModeKey, string(mode))
	c.Header(middleware.ModeHeader, string(mode))
	respond.OK(c, reply)
}
