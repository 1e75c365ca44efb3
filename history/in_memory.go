package history

import (
	"context"
	"sync"
	"time"

	"github.com/Hugo9809/pdfcraft/core"
)

// InMemoryStore is a volatile HistoryStore keeping entries in a process local
// slice. Safe for concurrent access; suited for tests and demos.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []core.HistoryEntry // append order == processed order
}

// NewInMemoryStore constructs an empty in-memory history store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Add stores a copy of the entry and returns its assigned id.
func (s *InMemoryStore) Add(_ context.Context, entry core.HistoryEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = core.NewID()
	if entry.Processed.IsZero() {
		entry.Processed = time.Now().UTC()
	}
	s.entries = append(s.entries, entry)
	return entry.ID, nil
}

// List returns all entries, newest-processed-first.
func (s *InMemoryStore) List(_ context.Context) ([]core.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.HistoryEntry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

// Remove deletes the entry with the given id; a missing id is not an error.
func (s *InMemoryStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, entry := range s.entries {
		if entry.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// Clear removes all entries.
func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
