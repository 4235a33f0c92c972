package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// Role is a chat message author.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one prompt message.
type Message struct {
	Role    Role
	Content string
}

// Request is a single completion call.
type Request struct {
	Messages    []Message
	Temperature float32
	// JSON asks the backend for a JSON object response.
	JSON bool
}

// Usage reports token counts when the provider returns them.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the text a backend produced.
type Response struct {
	Content string
	Model   string
	Usage   *Usage
}

// Backend abstracts generative model providers.
type Backend interface {
	Name() string
	Model() string
	Complete(ctx context.Context, req Request) (Response, error)
}

// ErrEmptyContent is returned when a provider answers without text.
var ErrEmptyContent = errors.New("llm: empty response content")

// PromptHash returns a stable hash of the prompt messages, for logs.
func PromptHash(messages []Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
