package generation

import (
	"context"
	"errors"
	"sync"

	"saarthi-backend/internal/llm"
)

// fakeBackend returns canned content or an error and records requests.
type fakeBackend struct {
	mu       sync.Mutex
	content  string
	err      error
	requests []llm.Request
}

func (f *fakeBackend) Name() string  { return "fake" }
func (f *fakeBackend) Model() string { return "fake-model" }

func (f *fakeBackend) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Content: f.content, Model: "fake-model"}, nil
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeBackend) last() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

var errBackendDown = errors.New("backend down\nwith detail")
