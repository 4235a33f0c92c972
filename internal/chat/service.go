package chat

import (
	"context"
	"fmt"
	"strings"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/documents"
	"saarthi-backend/internal/generation"
)

// Generator answers questions about a document.
type Generator interface {
	Chat(ctx context.Context, text, message string, forceMock bool) (artifacts.ChatReply, generation.Mode)
}

// Service answers questions grounded in uploaded documents. Replies are not stored.
type Service struct {
	Docs documents.TextSource
	Gen  Generator
}

// NewService constructs a Service.
func NewService(docs documents.TextSource, gen Generator) *Service {
	return &Service{Docs: docs, Gen: gen}
}

// Ask answers message using the document's text.
func (s *Service) Ask(ctx context.Context, documentID, message string, forceMock bool) (artifacts.ChatReply, generation.Mode, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return artifacts.ChatReply{}, "", fmt.Errorf("%w: message is required", documents.ErrInvalidInput)
	}
	text, err := s.Docs.TextFor(ctx, strings.TrimSpace(documentID))
	if err != nil {
		return artifacts.ChatReply{}, "", err
	}
	reply, mode := s.Gen.Chat(ctx, text, message, forceMock)
	return reply, mode, nil
}
