// Package generation produces chat replies, summaries and quizzes from document
// text, either through a generative model or a deterministic mock.
package generation

import (
	"context"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/shared/util"
)

// ContextLimit bounds how much document text is sent with a prompt.
const ContextLimit = 8000

// Mode records which path produced an artifact.
type Mode string

const (
	ModeMock     Mode = "mock"
	ModeModel    Mode = "model"
	ModeFallback Mode = "fallback"
)

// Generator is a strategy for producing artifacts. Implementations never fail:
// degraded output is returned as a fallback value with ModeFallback.
type Generator interface {
	Chat(ctx context.Context, text, message string) (artifacts.ChatReply, Mode)
	Summarize(ctx context.Context, text string, opts artifacts.SummaryOptions) (artifacts.Summary, Mode)
	Quiz(ctx context.Context, text string, opts artifacts.QuizOptions) (artifacts.Quiz, Mode)
}

func truncateContext(text string) string {
	return util.TruncateRunes(text, ContextLimit)
}
