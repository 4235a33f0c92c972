package generation

import (
	"context"
	"fmt"
	"time"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/llm"
	"saarthi-backend/internal/shared/telemetry"
)

// Model generates artifacts through an llm.Backend and validates the output.
// Backend errors and invalid output degrade to fallback artifacts.
type Model struct {
	Backend llm.Backend
}

// NewModel wraps a backend.
func NewModel(backend llm.Backend) *Model {
	return &Model{Backend: backend}
}

// Chat implements Generator.
func (m *Model) Chat(ctx context.Context, text, message string) (artifacts.ChatReply, Mode) {
	raw, err := m.complete(ctx, artifacts.KindChat, llm.Request{
		Messages:    chatMessages(truncateContext(text), message),
		Temperature: chatTemperature,
	})
	if err != nil {
		logFallback(artifacts.KindChat, m.Backend, err)
		return artifacts.ChatReply{Reply: artifacts.ChatApology}, ModeFallback
	}
	res := artifacts.ParseChat(raw)
	if !res.Valid {
		logFallback(artifacts.KindChat, m.Backend, invalidOutput(res.Reason))
		return artifacts.ChatReply{Reply: artifacts.ChatApology}, ModeFallback
	}
	return res.Value, ModeModel
}

// Summarize implements Generator.
func (m *Model) Summarize(ctx context.Context, text string, opts artifacts.SummaryOptions) (artifacts.Summary, Mode) {
	opts = opts.Normalize()
	raw, err := m.complete(ctx, artifacts.KindSummary, llm.Request{
		Messages:    summaryMessages(truncateContext(text), opts),
		Temperature: summaryTemperature,
		JSON:        true,
	})
	if err != nil {
		logFallback(artifacts.KindSummary, m.Backend, err)
		return artifacts.FallbackSummary(), ModeFallback
	}
	res := artifacts.ParseSummary(raw)
	if !res.Valid {
		logFallback(artifacts.KindSummary, m.Backend, invalidOutput(res.Reason))
		return artifacts.FallbackSummary(), ModeFallback
	}
	return res.Value, ModeModel
}

// Quiz implements Generator.
func (m *Model) Quiz(ctx context.Context, text string, opts artifacts.QuizOptions) (artifacts.Quiz, Mode) {
	opts = opts.Normalize()
	raw, err := m.complete(ctx, artifacts.KindQuiz, llm.Request{
		Messages:    quizMessages(truncateContext(text), opts),
		Temperature: quizTemperature,
		JSON:        true,
	})
	if err != nil {
		logFallback(artifacts.KindQuiz, m.Backend, err)
		return artifacts.FallbackQuiz(opts.NumQuestions), ModeFallback
	}
	res := artifacts.ParseQuiz(raw, opts.NumQuestions)
	if !res.Valid {
		logFallback(artifacts.KindQuiz, m.Backend, invalidOutput(res.Reason))
		return artifacts.FallbackQuiz(opts.NumQuestions), ModeFallback
	}
	return res.Value, ModeModel
}

func (m *Model) complete(ctx context.Context, kind artifacts.Kind, req llm.Request) (string, error) {
	start := time.Now()
	resp, err := m.Backend.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	fields := map[string]any{
		"kind":        string(kind),
		"backend":     m.Backend.Name(),
		"model":       resp.Model,
		"prompt_hash": llm.PromptHash(req.Messages),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if resp.Usage != nil {
		fields["prompt_tokens"] = resp.Usage.PromptTokens
		fields["completion_tokens"] = resp.Usage.CompletionTokens
		fields["total_tokens"] = resp.Usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
	return resp.Content, nil
}

func logFallback(kind artifacts.Kind, backend llm.Backend, err error) {
	telemetry.Warn("generation.fallback", map[string]any{
		"kind":    string(kind),
		"backend": backend.Name(),
		"reason":  telemetry.SanitizeError(err),
	})
}

func invalidOutput(reason string) error {
	return fmt.Errorf("invalid model output: %s", reason)
}

var _ Generator = (*Model)(nil)
