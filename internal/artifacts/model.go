// Package artifacts defines the generated study artifacts, their option
// normalisation, the shape validator for model output, and fallback values.
package artifacts

// Kind names an artifact type.
type Kind string

const (
	KindChat    Kind = "chat"
	KindSummary Kind = "summary"
	KindQuiz    Kind = "quiz"
)

// ChatReply is a free-text answer grounded in a document.
type ChatReply struct {
	Reply string `json:"reply"`
}

// Summary is a structured document summary with 3 to 6 key points.
type Summary struct {
	SummaryShort string   `json:"summaryShort"`
	SummaryLong  string   `json:"summaryLong"`
	KeyPoints    []string `json:"keyPoints"`
}

// Question is one multiple-choice question with exactly four options.
type Question struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// Quiz is an ordered list of questions.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Clone returns a deep copy of the quiz.
func (q Quiz) Clone() Quiz {
	if q.Questions == nil {
		return Quiz{}
	}
	out := Quiz{Questions: make([]Question, len(q.Questions))}
	for i, question := range q.Questions {
		question.Options = append([]string(nil), question.Options...)
		out.Questions[i] = question
	}
	return out
}
