package generation

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/shared/util"
)

// Delays are the synthetic latencies of the mock path.
type Delays struct {
	Chat    time.Duration
	Summary time.Duration
	Quiz    time.Duration
}

// DefaultDelays mirror typical model latency.
var DefaultDelays = Delays{
	Chat:    700 * time.Millisecond,
	Summary: 800 * time.Millisecond,
	Quiz:    800 * time.Millisecond,
}

const (
	emptyChatContext    = "Generic study document."
	emptySummaryContext = "This document contains educational content."
	defaultSentence     = "This section discusses a core concept relevant to the topic."
	mockExplanation     = "Because this aligns best with the statement in the text."
)

var mockKeyPoints = []string{
	"Identifies the main thesis and supporting evidence.",
	"Clarifies essential definitions and terminology.",
	"Highlights relationships and cause-effect chains.",
}

var difficultyVerbs = map[artifacts.Difficulty][]string{
	artifacts.DifficultyEasy:   {"identify", "recall", "define"},
	artifacts.DifficultyMedium: {"interpret", "analyze", "compare"},
	artifacts.DifficultyHard:   {"evaluate", "synthesize", "critique"},
}

// Mock derives artifacts from the document text without any external call.
type Mock struct {
	Delays Delays
}

// NewMock returns a mock generator with the given delays.
func NewMock(delays Delays) *Mock {
	return &Mock{Delays: delays}
}

// Chat implements Generator.
func (m *Mock) Chat(ctx context.Context, text, message string) (artifacts.ChatReply, Mode) {
	wait(ctx, m.Delays.Chat)
	base := truncateContext(text)
	if strings.TrimSpace(base) == "" {
		base = emptyChatContext
	}
	reply := fmt.Sprintf("Mock AI: Based on the document, here's a helpful pointer related to your question \"%s\": %s...",
		message, util.TruncateRunes(base, 220))
	return artifacts.ChatReply{Reply: reply}, ModeMock
}

// Summarize implements Generator.
func (m *Mock) Summarize(ctx context.Context, text string, opts artifacts.SummaryOptions) (artifacts.Summary, Mode) {
	opts = opts.Normalize()
	wait(ctx, m.Delays.Summary)
	base := strings.TrimSpace(util.TruncateRunes(text, 600))
	if base == "" {
		base = emptySummaryContext
	}
	depth := "concise"
	if opts.Length == artifacts.LengthDetailed {
		depth = "comprehensive"
	}
	return artifacts.Summary{
		SummaryShort: util.TruncateRunes(base, 180) + "...",
		SummaryLong: fmt.Sprintf("%s\n\nThis extended summary elaborates on key themes, definitions, and relationships to support deeper understanding and revision. It is intentionally %s and %s.",
			base, opts.Tone, depth),
		KeyPoints: append([]string(nil), mockKeyPoints...),
	}, ModeMock
}

// Quiz implements Generator. Questions cycle through the text's sentences.
func (m *Mock) Quiz(ctx context.Context, text string, opts artifacts.QuizOptions) (artifacts.Quiz, Mode) {
	opts = opts.Normalize()
	wait(ctx, m.Delays.Quiz)
	sentences := splitSentences(truncateContext(text))
	verbs := difficultyVerbs[opts.Difficulty]

	questions := make([]artifacts.Question, opts.NumQuestions)
	for i := range questions {
		sentence := defaultSentence
		if len(sentences) > 0 {
			sentence = sentences[i%len(sentences)]
		}
		questions[i] = artifacts.Question{
			ID:           fmt.Sprintf("q%d", i+1),
			Question:     fmt.Sprintf("Q%d: %s the idea: %s?", i+1, verbs[i%len(verbs)], util.TruncateRunes(sentence, 80)),
			Options:      artifacts.PlaceholderOptions(),
			CorrectIndex: i % artifacts.OptionsPerQuestion,
			Explanation:  mockExplanation,
		}
	}
	return artifacts.Quiz{Questions: questions}, ModeMock
}

// splitSentences flattens newlines and splits after '.', '!' or '?' followed by whitespace.
func splitSentences(text string) []string {
	flat := strings.Join(strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }), " ")
	var (
		out   []string
		start int
	)
	runes := []rune(flat)
	for i := 0; i < len(runes); i++ {
		if !strings.ContainsRune(".!?", runes[i]) {
			continue
		}
		if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

var _ Generator = (*Mock)(nil)
