// Package extract turns uploaded study documents into plain text.
//
// Extraction never returns an error or panics past its boundary: every failure
// is reported as a Result with Success=false and a human-readable Reason.
package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"saarthi-backend/internal/shared/util"
)

// SnippetLength is the number of characters kept in Result.Snippet.
const SnippetLength = 300

// Failure reasons shared with callers.
const (
	ReasonUnsupported = "unsupported type"
	ReasonScanned     = "likely scanned or image-only PDF"
	ReasonEmpty       = "no extractable text"
)

// FailureClass groups failure reasons for metrics.
type FailureClass string

const (
	ClassNone        FailureClass = ""
	ClassUnsupported FailureClass = "unsupported"
	ClassScanned     FailureClass = "scanned"
	ClassEmpty       FailureClass = "empty"
	ClassError       FailureClass = "error"
)

// Result is the outcome of extracting one file.
type Result struct {
	Success bool         `json:"success"`
	Kind    Kind         `json:"kind"`
	Text    string       `json:"text"`
	Snippet string       `json:"snippet"`
	Reason  string       `json:"reason,omitempty"`
	Class   FailureClass `json:"-"`
}

// Extract reads the file at path and extracts its text according to the declared
// MIME type, falling back to the file extension and content sniffing.
func Extract(ctx context.Context, path string, declaredMime string) Result {
	if err := ctx.Err(); err != nil {
		return failure(KindUnknown, ClassError, err.Error())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return failure(KindUnknown, ClassError, fmt.Sprintf("read file: %v", err))
	}
	return ExtractBytes(ctx, data, declaredMime, path)
}

// ExtractBytes is Extract for an in-memory payload. fileName is only used for
// its extension.
func ExtractBytes(ctx context.Context, data []byte, declaredMime string, fileName string) (res Result) {
	kind := DetectKind(declaredMime, fileName, data)
	defer func() {
		if rec := recover(); rec != nil {
			res = failure(kind, ClassError, fmt.Sprintf("%s parser panic: %v", kind, rec))
		}
	}()

	if err := ctx.Err(); err != nil {
		return failure(kind, ClassError, err.Error())
	}

	var (
		text string
		err  error
	)
	switch kind {
	case KindPDF:
		return extractPDF(data)
	case KindDOCX:
		text, err = extractDOCX(data)
	case KindPPTX:
		text, err = extractPPTX(data)
	case KindText:
		text = string(data)
	default:
		return failure(kind, ClassUnsupported, ReasonUnsupported)
	}
	if err != nil {
		return failure(kind, ClassError, err.Error())
	}
	return finish(kind, text)
}

// finish applies the post-processing shared by every kind.
func finish(kind Kind, raw string) Result {
	text := clean(raw)
	if text == "" {
		return failure(kind, ClassEmpty, ReasonEmpty)
	}
	return Result{
		Success: true,
		Kind:    kind,
		Text:    text,
		Snippet: util.TruncateRunes(text, SnippetLength),
	}
}

func clean(raw string) string {
	text := strings.ReplaceAll(raw, "\x00", "")
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.TrimSpace(text)
}

func failure(kind Kind, class FailureClass, reason string) Result {
	return Result{Kind: kind, Reason: reason, Class: class}
}
