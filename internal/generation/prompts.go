package generation

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/llm"
)

var (
	//go:embed prompts/chat.txt
	chatPrompt string
	//go:embed prompts/summary.txt
	summaryPrompt string
	//go:embed prompts/quiz.txt
	quizPrompt string
)

const (
	chatTemperature    = 0.3
	summaryTemperature = 0.3
	quizTemperature    = 0.5
)

func chatMessages(text, message string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: strings.TrimSpace(chatPrompt)},
		{Role: llm.RoleUser, Content: "Document context (truncated):\n" + text},
		{Role: llm.RoleUser, Content: "Question: " + message},
	}
}

func summaryMessages(text string, opts artifacts.SummaryOptions) []llm.Message {
	hint := "keep summaryLong to two short paragraphs"
	if opts.Length == artifacts.LengthDetailed {
		hint = "make summaryLong thorough, covering every major section"
	}
	system := strings.NewReplacer(
		"{{LENGTH}}", string(opts.Length),
		"{{LENGTH_HINT}}", hint,
		"{{TONE}}", opts.Tone,
	).Replace(summaryPrompt)
	return []llm.Message{
		{Role: llm.RoleSystem, Content: strings.TrimSpace(system)},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Summarize the following text. Options: length=%s, tone=%s. Text:\n\n%s", opts.Length, opts.Tone, text)},
	}
}

var difficultyHints = map[artifacts.Difficulty]string{
	artifacts.DifficultyEasy:   "recall of facts and definitions stated directly in the text",
	artifacts.DifficultyMedium: "interpretation and comparison of ideas in the text",
	artifacts.DifficultyHard:   "evaluation and synthesis across several parts of the text",
}

func quizMessages(text string, opts artifacts.QuizOptions) []llm.Message {
	system := strings.NewReplacer(
		"{{COUNT}}", strconv.Itoa(opts.NumQuestions),
		"{{DIFFICULTY}}", string(opts.Difficulty),
		"{{DIFFICULTY_HINT}}", difficultyHints[opts.Difficulty],
	).Replace(quizPrompt)
	return []llm.Message{
		{Role: llm.RoleSystem, Content: strings.TrimSpace(system)},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Create %d MCQs from the provided text at difficulty=%s. Text:\n\n%s", opts.NumQuestions, opts.Difficulty, text)},
	}
}
