package filestore

import (
	"context"
	"sync"
	"time"

	"github.com/Hugo9809/pdfcraft/core"
)

// InMemoryStore is a trivial in-process FileStore implementation useful for
// tests, examples and single-process prototypes. It keeps all blobs in a map
// guarded by an RWMutex. Data is copied on save / retrieval to avoid
// accidental external mutation of internal buffers.
//
// This implementation is intentionally minimal; it does not enforce retention
// limits, size quotas, or eviction. For durable sessions, prefer DirStore.
type InMemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]memBlob
}

type memBlob struct {
	data    []byte
	mime    string
	modTime time.Time
}

// NewInMemoryStore returns an empty in-memory file store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{blobs: make(map[string]memBlob)}
}

// Supported always reports true for the in-memory backend.
func (s *InMemoryStore) Supported() bool { return true }

// Save stores (or overwrites) the blob for the given name. The input slice is
// copied before storage.
func (s *InMemoryStore) Save(_ context.Context, name string, file core.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(file.Data))
	copy(cp, file.Data)
	mime := file.Type
	if mime == "" {
		mime = core.DefaultMIMEType
	}
	s.blobs[name] = memBlob{data: cp, mime: mime, modTime: time.Now()}
	return nil
}

// Load returns a copy of the stored blob or core.ErrNotFound.
func (s *InMemoryStore) Load(_ context.Context, name string) (core.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[name]
	if !ok {
		return core.File{}, core.ErrNotFound
	}
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	return core.File{Name: name, Type: b.mime, Data: cp}, nil
}

// Delete removes the blob if present; a missing name is not an error.
func (s *InMemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, name)
	return nil
}

// List returns a snapshot of the stored blobs' metadata. The slice is safe
// for caller mutation.
func (s *InMemoryStore) List(_ context.Context) ([]core.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]core.FileInfo, 0, len(s.blobs))
	for name, b := range s.blobs {
		infos = append(infos, core.FileInfo{Name: name, Size: int64(len(b.data)), ModTime: b.modTime, Type: b.mime})
	}
	return infos, nil
}
