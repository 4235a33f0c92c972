package artifacts

import "strings"

const (
	MinQuestions       = 5
	MaxQuestions       = 20
	DefaultQuestions   = 10
	OptionsPerQuestion = 4

	MinKeyPoints = 3
	MaxKeyPoints = 6

	DefaultTone = "student-friendly"
)

// Difficulty controls quiz question depth.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps free input to a Difficulty. Unknown values become medium.
func ParseDifficulty(raw string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(raw))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// SummaryLength selects a concise or detailed summary.
type SummaryLength string

const (
	LengthShort    SummaryLength = "short"
	LengthDetailed SummaryLength = "detailed"
)

// ParseSummaryLength maps free input to a SummaryLength. Unknown values become short.
func ParseSummaryLength(raw string) SummaryLength {
	if SummaryLength(strings.ToLower(strings.TrimSpace(raw))) == LengthDetailed {
		return LengthDetailed
	}
	return LengthShort
}

// ClampQuestions applies the default for non-positive counts and clamps to [5, 20].
func ClampQuestions(n int) int {
	if n <= 0 {
		n = DefaultQuestions
	}
	if n < MinQuestions {
		return MinQuestions
	}
	if n > MaxQuestions {
		return MaxQuestions
	}
	return n
}

// SummaryOptions parameterises summary generation.
type SummaryOptions struct {
	Length SummaryLength `json:"length"`
	Tone   string        `json:"tone"`
}

// Normalize fills defaults.
func (o SummaryOptions) Normalize() SummaryOptions {
	o.Length = ParseSummaryLength(string(o.Length))
	o.Tone = strings.TrimSpace(o.Tone)
	if o.Tone == "" {
		o.Tone = DefaultTone
	}
	return o
}

// QuizOptions parameterises quiz generation.
type QuizOptions struct {
	NumQuestions int        `json:"numQuestions"`
	Difficulty   Difficulty `json:"difficulty"`
}

// Normalize clamps the question count and fills the default difficulty.
func (o QuizOptions) Normalize() QuizOptions {
	o.NumQuestions = ClampQuestions(o.NumQuestions)
	o.Difficulty = ParseDifficulty(string(o.Difficulty))
	return o
}
