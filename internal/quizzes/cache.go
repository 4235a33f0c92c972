package quizzes

import (
	"sync"

	"saarthi-backend/internal/artifacts"
)

// Cache holds the most recent quiz per document id.
type Cache interface {
	Set(documentID string, quiz artifacts.Quiz)
	Get(documentID string) (artifacts.Quiz, bool)
}

// MemoryCache is a process-lifetime Cache. Values are copied on the way in and
// out so callers never share question slices.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]artifacts.Quiz
}

// NewMemoryCache constructs a MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]artifacts.Quiz)}
}

// Set replaces any quiz cached for documentID.
func (c *MemoryCache) Set(documentID string, quiz artifacts.Quiz) {
	stored := quiz.Clone()
	c.mu.Lock()
	c.data[documentID] = stored
	c.mu.Unlock()
}

// Get returns the cached quiz for documentID.
func (c *MemoryCache) Get(documentID string) (artifacts.Quiz, bool) {
	c.mu.RLock()
	quiz, ok := c.data[documentID]
	c.mu.RUnlock()
	if !ok {
		return artifacts.Quiz{}, false
	}
	return quiz.Clone(), true
}
