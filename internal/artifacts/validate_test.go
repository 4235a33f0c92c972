package artifacts

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizJSON(t *testing.T, n int, mutate func(i int, q map[string]any)) string {
	t.Helper()
	questions := make([]map[string]any, n)
	for i := range questions {
		q := map[string]any{
			"id":           fmt.Sprintf("q%d", i+1),
			"question":     fmt.Sprintf("What is concept %d?", i+1),
			"options":      []string{"A", "B", "C", "D"},
			"correctIndex": i % 4,
			"explanation":  "Because.",
		}
		if mutate != nil {
			mutate(i, q)
		}
		questions[i] = q
	}
	raw, err := json.Marshal(map[string]any{"questions": questions})
	require.NoError(t, err)
	return string(raw)
}

func TestParseSummary(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		valid     bool
		keyPoints int
	}{
		{
			name:      "plain json",
			raw:       `{"summaryShort":"Short.","summaryLong":"Long.\n\nMore.","keyPoints":["a","b","c"]}`,
			valid:     true,
			keyPoints: 3,
		},
		{
			name:      "fenced with prose",
			raw:       "```json\nHere you go: {\"summaryShort\":\"S\",\"summaryLong\":\"L\",\"keyPoints\":[\"a\",\"b\",\"c\",\"d\"]}\n```",
			valid:     true,
			keyPoints: 4,
		},
		{
			name:      "too many key points are trimmed",
			raw:       `{"summaryShort":"S","summaryLong":"L","keyPoints":["1","2","3","4","5","6","7","8"]}`,
			valid:     true,
			keyPoints: 6,
		},
		{name: "too few key points", raw: `{"summaryShort":"S","summaryLong":"L","keyPoints":["a","  "]}`},
		{name: "missing long", raw: `{"summaryShort":"S","keyPoints":["a","b","c"]}`},
		{name: "keyPoints wrong type", raw: `{"summaryShort":"S","summaryLong":"L","keyPoints":"a, b, c"}`},
		{name: "not json", raw: "I cannot summarise this."},
		{name: "empty", raw: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseSummary(tt.raw)
			assert.Equal(t, tt.valid, res.Valid, "reason: %s", res.Reason)
			if tt.valid {
				assert.Len(t, res.Value.KeyPoints, tt.keyPoints)
				assert.NotEmpty(t, res.Value.SummaryShort)
				assert.NotEmpty(t, res.Value.SummaryLong)
			} else {
				assert.NotEmpty(t, res.Reason)
			}
		})
	}
}

func TestParseQuizTrimsToRequestedCount(t *testing.T) {
	res := ParseQuiz(quizJSON(t, 8, nil), 5)

	require.True(t, res.Valid, res.Reason)
	require.Len(t, res.Value.Questions, 5)
	assert.Equal(t, "q1", res.Value.Questions[0].ID)
}

func TestParseQuizDropsMalformedQuestions(t *testing.T) {
	raw := quizJSON(t, 10, func(i int, q map[string]any) {
		switch i {
		case 0:
			q["options"] = []string{"A", "B", "C"}
		case 1:
			q["correctIndex"] = 4
		case 2:
			q["question"] = "  "
		case 3:
			q["correctIndex"] = "two"
		}
	})

	res := ParseQuiz(raw, 7)
	require.False(t, res.Valid)
	assert.Contains(t, res.Reason, "6 of 7")

	res = ParseQuiz(raw, 5)
	require.True(t, res.Valid, res.Reason)
	require.Len(t, res.Value.Questions, 5)
	assert.Equal(t, "What is concept 5?", res.Value.Questions[0].Question)
}

func TestParseQuizReassignsMissingAndDuplicateIDs(t *testing.T) {
	raw := quizJSON(t, 5, func(i int, q map[string]any) {
		switch i {
		case 1:
			q["id"] = ""
		case 2, 3:
			q["id"] = "dup"
		}
	})

	res := ParseQuiz(raw, 5)
	require.True(t, res.Valid, res.Reason)

	seen := map[string]bool{}
	for _, q := range res.Value.Questions {
		assert.NotEmpty(t, q.ID)
		assert.False(t, seen[q.ID], "duplicate id %s", q.ID)
		seen[q.ID] = true
	}
	assert.Equal(t, "q2", res.Value.Questions[1].ID)
	assert.Equal(t, "dup", res.Value.Questions[2].ID)
	assert.Equal(t, "q4", res.Value.Questions[3].ID)
}

func TestParseQuizRejectsWrongShape(t *testing.T) {
	for _, raw := range []string{
		`{"questions":"none"}`,
		`{"items":[]}`,
		`[{"question":"x"}]`,
		"",
	} {
		res := ParseQuiz(raw, 5)
		assert.False(t, res.Valid, "expected %q to be rejected", raw)
	}
}

func TestParseChat(t *testing.T) {
	assert.False(t, ParseChat(" \n ").Valid)
	res := ParseChat("  The answer is ATP.  ")
	require.True(t, res.Valid)
	assert.Equal(t, "The answer is ATP.", res.Value.Reply)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences(`  {"a":1} `))
	assert.Equal(t, `{"a":1}`, StripFences("```json {\"a\":1}```"))
}

func TestExtractJSONObjectIgnoresBracesInStrings(t *testing.T) {
	obj, ok := ExtractJSONObject(`Sure! {"q":"use {braces} \"here\"","n":{"x":1}} trailing }`)
	require.True(t, ok)
	assert.Equal(t, `{"q":"use {braces} \"here\"","n":{"x":1}}`, obj)

	_, ok = ExtractJSONObject(`{"unterminated": true`)
	assert.False(t, ok)
}

func TestFallbacksSatisfyValidator(t *testing.T) {
	assert.True(t, ValidateSummary(FallbackSummary()).Valid)

	for _, n := range []int{-3, 0, 1, 5, 12, 20, 99} {
		q := FallbackQuiz(n)
		require.Len(t, q.Questions, ClampQuestions(n))
		res := ValidateQuiz(q, n)
		assert.True(t, res.Valid, "n=%d: %s", n, res.Reason)
	}
}

func TestQuizCloneIsDeep(t *testing.T) {
	q := FallbackQuiz(5)
	clone := q.Clone()
	clone.Questions[0].Options[0] = "changed"
	assert.Equal(t, "Option A", q.Questions[0].Options[0])
	assert.True(t, strings.HasPrefix(clone.Questions[1].Question, "Fallback question"))
}
