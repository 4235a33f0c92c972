package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/documents"
	"saarthi-backend/internal/generation"
)

type stubTexts map[string]string

func (s stubTexts) TextFor(ctx context.Context, id string) (string, error) {
	text, ok := s[id]
	if !ok {
		return "", documents.ErrNotFound
	}
	if text == "" {
		return "", documents.ErrNoText
	}
	return text, nil
}

type recordingGenerator struct {
	calls  int
	forced bool
}

func (g *recordingGenerator) Chat(ctx context.Context, text, message string, forceMock bool) (artifacts.ChatReply, generation.Mode) {
	g.calls++
	g.forced = forceMock
	return artifacts.ChatReply{Reply: "answer to " + message}, generation.ModeModel
}

func newRouter(t *testing.T, texts stubTexts, gen Generator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(texts, gen)).RegisterRoutes(r.Group("/api"))
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestChatReturnsReply(t *testing.T) {
	gen := &recordingGenerator{}
	r := newRouter(t, stubTexts{"doc": "Mitochondria make ATP."}, gen)

	rec := post(r, "/api/chat?mock=true", `{"fileId":"doc","message":"What makes ATP?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var reply artifacts.ChatReply
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.Reply != "answer to What makes ATP?" {
		t.Fatalf("reply = %q", reply.Reply)
	}
	if !gen.forced {
		t.Fatalf("expected forced mock")
	}
}

func TestChatErrors(t *testing.T) {
	gen := &recordingGenerator{}
	r := newRouter(t, stubTexts{"scan": ""}, gen)

	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"missing message", `{"fileId":"scan"}`, http.StatusBadRequest, "fileId and message are required"},
		{"missing file id", `{"message":"hi"}`, http.StatusBadRequest, "fileId and message are required"},
		{"unknown document", `{"fileId":"ghost","message":"hi"}`, http.StatusNotFound, "File not found"},
		{"no text", `{"fileId":"scan","message":"hi"}`, http.StatusBadRequest, "No extractable text"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(r, "/api/chat", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if !strings.Contains(rec.Body.String(), tc.msg) {
				t.Fatalf("body = %s", rec.Body.String())
			}
		})
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times", gen.calls)
	}
}

func TestAskRequiresMessage(t *testing.T) {
	svc := NewService(stubTexts{"doc": "text"}, &recordingGenerator{})
	_, _, err := svc.Ask(context.Background(), "doc", "   ", false)
	if !errors.Is(err, documents.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMockChatIsStable(t *testing.T) {
	client := generation.NewClient(nil, generation.NewMock(generation.Delays{}))
	svc := NewService(stubTexts{"doc": "Mitochondria make ATP."}, client)

	first, mode, err := svc.Ask(context.Background(), "doc", "What makes ATP?", true)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	second, _, err := svc.Ask(context.Background(), "doc", "What makes ATP?", true)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if mode != generation.ModeMock {
		t.Fatalf("mode = %q", mode)
	}
	if first != second {
		t.Fatalf("mock replies differ: %q vs %q", first.Reply, second.Reply)
	}
}
