package generation

import (
	"context"
	"time"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/shared/metrics"
)

// Client routes each request to the startup-selected generator, or to the mock
// generator when the caller forces mock mode.
type Client struct {
	primary Generator
	mock    Generator
}

// NewClient builds a client. A nil primary means the mock serves every request.
func NewClient(primary Generator, mock Generator) *Client {
	if mock == nil {
		mock = NewMock(DefaultDelays)
	}
	if primary == nil {
		primary = mock
	}
	return &Client{primary: primary, mock: mock}
}

// Live reports whether unforced requests reach a real model.
func (c *Client) Live() bool {
	_, isMock := c.primary.(*Mock)
	return !isMock
}

func (c *Client) pick(forceMock bool) Generator {
	if forceMock {
		return c.mock
	}
	return c.primary
}

// Chat answers a question about the document text.
func (c *Client) Chat(ctx context.Context, text, message string, forceMock bool) (artifacts.ChatReply, Mode) {
	start := time.Now()
	reply, mode := c.pick(forceMock).Chat(ctx, text, message)
	record(artifacts.KindChat, mode, start)
	return reply, mode
}

// Summarize produces a structured summary of the document text.
func (c *Client) Summarize(ctx context.Context, text string, opts artifacts.SummaryOptions, forceMock bool) (artifacts.Summary, Mode) {
	start := time.Now()
	summary, mode := c.pick(forceMock).Summarize(ctx, text, opts.Normalize())
	record(artifacts.KindSummary, mode, start)
	return summary, mode
}

// Quiz produces a multiple-choice quiz with a clamped question count.
func (c *Client) Quiz(ctx context.Context, text string, opts artifacts.QuizOptions, forceMock bool) (artifacts.Quiz, Mode) {
	start := time.Now()
	quiz, mode := c.pick(forceMock).Quiz(ctx, text, opts.Normalize())
	record(artifacts.KindQuiz, mode, start)
	return quiz, mode
}

func record(kind artifacts.Kind, mode Mode, start time.Time) {
	metrics.IncGeneration(string(kind), string(mode))
	metrics.ObserveGenerationDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
}
