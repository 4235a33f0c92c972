package artifacts

import "fmt"

// ChatApology replaces an empty or failed chat generation.
const ChatApology = "Sorry, I could not generate a response."

// FallbackSummary is substituted when summary generation fails.
func FallbackSummary() Summary {
	return Summary{
		SummaryShort: "This is a short summary generated as a fallback.",
		SummaryLong:  "This is a detailed summary generated as a fallback due to parsing issues.",
		KeyPoints:    []string{"Key point 1", "Key point 2", "Key point 3"},
	}
}

// FallbackQuiz is substituted when quiz generation fails. The count honours the clamp.
func FallbackQuiz(n int) Quiz {
	n = ClampQuestions(n)
	questions := make([]Question, n)
	for i := range questions {
		questions[i] = Question{
			ID:           fmt.Sprintf("q%d", i+1),
			Question:     fmt.Sprintf("Fallback question %d", i+1),
			Options:      PlaceholderOptions(),
			CorrectIndex: 0,
			Explanation:  "Fallback explanation.",
		}
	}
	return Quiz{Questions: questions}
}

// PlaceholderOptions returns a fresh "Option A".."Option D" slice.
func PlaceholderOptions() []string {
	return []string{"Option A", "Option B", "Option C", "Option D"}
}
