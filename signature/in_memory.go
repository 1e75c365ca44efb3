package signature

import (
	"context"
	"sync"
	"time"

	"github.com/Hugo9809/pdfcraft/core"
)

// InMemoryStore is a volatile SignatureStore implementation storing records
// in a process local slice. It is safe for concurrent access and best suited
// for tests or demos. Each returned record carries a copied payload to
// prevent external mutation of internal state.
type InMemoryStore struct {
	mu   sync.RWMutex
	sigs []core.Signature // append order == creation order
}

// NewInMemoryStore constructs an empty in-memory signature store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Save stores a copy of the record and returns its assigned id.
func (s *InMemoryStore) Save(_ context.Context, sig core.Signature) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig.ID = core.NewID()
	sig.Created = time.Now().UTC()
	payload := make([]byte, len(sig.Payload))
	copy(payload, sig.Payload)
	sig.Payload = payload
	s.sigs = append(s.sigs, sig)
	return sig.ID, nil
}

// GetAll returns copies of all records, newest-created-first.
func (s *InMemoryStore) GetAll(_ context.Context) ([]core.Signature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Signature, 0, len(s.sigs))
	for i := len(s.sigs) - 1; i >= 0; i-- {
		sig := s.sigs[i]
		payload := make([]byte, len(sig.Payload))
		copy(payload, sig.Payload)
		sig.Payload = payload
		out = append(out, sig)
	}
	return out, nil
}

// Delete removes the record with the given id; a missing id is not an error.
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sig := range s.sigs {
		if sig.ID == id {
			s.sigs = append(s.sigs[:i], s.sigs[i+1:]...)
			return nil
		}
	}
	return nil
}
