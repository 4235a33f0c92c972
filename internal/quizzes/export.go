package quizzes

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"saarthi-backend/internal/artifacts"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var csvHeader = []string{"id", "question", "optionA", "optionB", "optionC", "optionD", "correctIndex", "explanation"}

// ParseFormat maps a query value to a Format. Empty means JSON.
func ParseFormat(raw string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, true
	case FormatCSV:
		return FormatCSV, true
	default:
		return "", false
	}
}

// ContentType returns the response media type for the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}

// Export encodes the quiz in the requested format.
func Export(quiz artifacts.Quiz, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return []byte(ToCSV(quiz)), nil
	case FormatJSON:
		return ToJSON(quiz)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// ToJSON renders the quiz as indented JSON.
func ToJSON(quiz artifacts.Quiz) ([]byte, error) {
	if quiz.Questions == nil {
		quiz.Questions = []artifacts.Question{}
	}
	return json.MarshalIndent(quiz, "", "  ")
}

// ToCSV renders one row per question with every field quoted.
func ToCSV(quiz artifacts.Quiz) string {
	var b strings.Builder
	writeCSVRow(&b, csvHeader)
	for _, q := range quiz.Questions {
		row := make([]string, 0, len(csvHeader))
		row = append(row, q.ID, q.Question)
		for i := 0; i < artifacts.OptionsPerQuestion; i++ {
			opt := ""
			if i < len(q.Options) {
				opt = q.Options[i]
			}
			row = append(row, opt)
		}
		row = append(row, strconv.Itoa(q.CorrectIndex), q.Explanation)
		writeCSVRow(&b, row)
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
