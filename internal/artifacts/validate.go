package artifacts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result is the outcome of validating model output: either a valid value or a
// reason the output was rejected.
type Result[T any] struct {
	Value  T
	Valid  bool
	Reason string
}

// Valid wraps an accepted value.
func Valid[T any](v T) Result[T] {
	return Result[T]{Value: v, Valid: true}
}

// Invalid wraps a rejection reason.
func Invalid[T any](format string, args ...any) Result[T] {
	return Result[T]{Reason: fmt.Sprintf(format, args...)}
}

// ParseChat accepts any non-empty free text.
func ParseChat(raw string) Result[ChatReply] {
	reply := strings.TrimSpace(raw)
	if reply == "" {
		return Invalid[ChatReply]("empty reply")
	}
	return Valid(ChatReply{Reply: reply})
}

// ParseSummary decodes raw model output and validates it as a Summary.
func ParseSummary(raw string) Result[Summary] {
	obj, err := decodeObject(raw)
	if err != nil {
		return Invalid[Summary]("%v", err)
	}
	var s Summary
	if err := json.Unmarshal(obj, &s); err != nil {
		return Invalid[Summary]("decode summary: %v", err)
	}
	return ValidateSummary(s)
}

// ValidateSummary trims fields, drops blank key points and caps them at six.
func ValidateSummary(s Summary) Result[Summary] {
	s.SummaryShort = strings.TrimSpace(s.SummaryShort)
	s.SummaryLong = strings.TrimSpace(s.SummaryLong)
	if s.SummaryShort == "" {
		return Invalid[Summary]("missing summaryShort")
	}
	if s.SummaryLong == "" {
		return Invalid[Summary]("missing summaryLong")
	}
	points := make([]string, 0, len(s.KeyPoints))
	for _, p := range s.KeyPoints {
		if p = strings.TrimSpace(p); p != "" {
			points = append(points, p)
		}
	}
	if len(points) < MinKeyPoints {
		return Invalid[Summary]("keyPoints has %d items, need at least %d", len(points), MinKeyPoints)
	}
	if len(points) > MaxKeyPoints {
		points = points[:MaxKeyPoints]
	}
	s.KeyPoints = points
	return Valid(s)
}

type rawQuiz struct {
	Questions []json.RawMessage `json:"questions"`
}

// ParseQuiz decodes raw model output into a quiz of exactly n questions.
// Malformed questions are dropped individually.
func ParseQuiz(raw string, n int) Result[Quiz] {
	obj, err := decodeObject(raw)
	if err != nil {
		return Invalid[Quiz]("%v", err)
	}
	var rq rawQuiz
	if err := json.Unmarshal(obj, &rq); err != nil {
		return Invalid[Quiz]("decode quiz: %v", err)
	}
	if rq.Questions == nil {
		return Invalid[Quiz]("missing questions")
	}
	q := Quiz{Questions: make([]Question, 0, len(rq.Questions))}
	for _, item := range rq.Questions {
		var question Question
		if err := json.Unmarshal(item, &question); err != nil {
			continue
		}
		q.Questions = append(q.Questions, question)
	}
	return ValidateQuiz(q, n)
}

// ValidateQuiz drops malformed questions, trims the quiz to n questions and
// makes ids unique. Fewer than n well-formed questions is a rejection.
func ValidateQuiz(q Quiz, n int) Result[Quiz] {
	n = ClampQuestions(n)
	kept := make([]Question, 0, n)
	for _, question := range q.Questions {
		if len(kept) == n {
			break
		}
		if cleaned, ok := cleanQuestion(question); ok {
			kept = append(kept, cleaned)
		}
	}
	if len(kept) < n {
		return Invalid[Quiz]("only %d of %d questions are well-formed", len(kept), n)
	}
	assignIDs(kept)
	return Valid(Quiz{Questions: kept})
}

func cleanQuestion(q Question) (Question, bool) {
	q.ID = strings.TrimSpace(q.ID)
	q.Question = strings.TrimSpace(q.Question)
	q.Explanation = strings.TrimSpace(q.Explanation)
	if q.Question == "" || len(q.Options) != OptionsPerQuestion {
		return Question{}, false
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionsPerQuestion {
		return Question{}, false
	}
	options := make([]string, OptionsPerQuestion)
	for i, opt := range q.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return Question{}, false
		}
		options[i] = opt
	}
	q.Options = options
	return q, true
}

// assignIDs replaces missing or duplicate ids with q<position>.
func assignIDs(questions []Question) {
	seen := make(map[string]struct{}, len(questions))
	for i := range questions {
		id := questions[i].ID
		if _, dup := seen[id]; id == "" || dup {
			id = fmt.Sprintf("q%d", i+1)
			for suffix := 2; ; suffix++ {
				if _, taken := seen[id]; !taken {
					break
				}
				id = fmt.Sprintf("q%d-%d", i+1, suffix)
			}
		}
		seen[id] = struct{}{}
		questions[i].ID = id
	}
}

func decodeObject(raw string) ([]byte, error) {
	s := StripFences(raw)
	if s == "" {
		return nil, fmt.Errorf("empty output")
	}
	obj, ok := ExtractJSONObject(s)
	if !ok {
		return nil, fmt.Errorf("no JSON object in output")
	}
	return []byte(obj), nil
}
