package quizzes

import (
	"context"
	"strings"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/documents"
	"saarthi-backend/internal/generation"
	"saarthi-backend/internal/shared/telemetry"
)

// Generator produces quizzes.
type Generator interface {
	Quiz(ctx context.Context, text string, opts artifacts.QuizOptions, forceMock bool) (artifacts.Quiz, generation.Mode)
}

// Service generates quizzes for documents and keeps the latest one per document.
type Service struct {
	Docs  documents.TextSource
	Gen   Generator
	Cache Cache
}

// NewService constructs a Service.
func NewService(docs documents.TextSource, gen Generator, cache Cache) *Service {
	return &Service{Docs: docs, Gen: gen, Cache: cache}
}

// Generate builds a quiz from the document text and caches it. Lookup and
// extraction failures are returned before any generation is attempted.
func (s *Service) Generate(ctx context.Context, documentID string, opts artifacts.QuizOptions, forceMock bool) (artifacts.Quiz, generation.Mode, error) {
	documentID = strings.TrimSpace(documentID)
	text, err := s.Docs.TextFor(ctx, documentID)
	if err != nil {
		return artifacts.Quiz{}, "", err
	}

	opts = opts.Normalize()
	quiz, mode := s.Gen.Quiz(ctx, text, opts, forceMock)
	s.Cache.Set(documentID, quiz)

	telemetry.Info("quiz.generated", map[string]any{
		"document_id": documentID,
		"questions":   len(quiz.Questions),
		"difficulty":  string(opts.Difficulty),
		"mode":        string(mode),
	})
	return quiz, mode, nil
}

// Latest returns the cached quiz for the document.
func (s *Service) Latest(documentID string) (artifacts.Quiz, error) {
	quiz, ok := s.Cache.Get(strings.TrimSpace(documentID))
	if !ok {
		return artifacts.Quiz{}, ErrNoQuiz
	}
	return quiz, nil
}
