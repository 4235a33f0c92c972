package summaries

import (
	"context"
	"strings"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/documents"
	"saarthi-backend/internal/generation"
)

// Generator produces summaries.
type Generator interface {
	Summarize(ctx context.Context, text string, opts artifacts.SummaryOptions, forceMock bool) (artifacts.Summary, generation.Mode)
}

// Service summarizes uploaded documents.
type Service struct {
	Docs documents.TextSource
	Gen  Generator
}

// NewService constructs a Service.
func NewService(docs documents.TextSource, gen Generator) *Service {
	return &Service{Docs: docs, Gen: gen}
}

// Summarize loads the document text and summarizes it.
func (s *Service) Summarize(ctx context.Context, documentID string, opts artifacts.SummaryOptions, forceMock bool) (artifacts.Summary, generation.Mode, error) {
	text, err := s.Docs.TextFor(ctx, strings.TrimSpace(documentID))
	if err != nil {
		return artifacts.Summary{}, "", err
	}
	summary, mode := s.Gen.Summarize(ctx, text, opts.Normalize(), forceMock)
	return summary, mode, nil
}
