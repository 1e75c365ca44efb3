package viewer

import (
	"errors"
	"sync"

	"github.com/Hugo9809/pdfcraft/core"
)

// ErrRefReleased is returned when a ByteRef is used or released after its
// single release.
var ErrRefReleased = errors.New("viewer: byte reference already released")

// ByteRef is the ephemeral in-memory handle the embedded surface uses to
// address the current document bytes. Its sole owner is the tool view that
// created it, and it must be released exactly once, when replaced or
// when the owning view unmounts. A second release is a bug and reported as
// ErrRefReleased; never releasing keeps the bytes pinned for the page's
// lifetime.
type ByteRef struct {
	mu       sync.Mutex
	file     core.File
	released bool
}

// NewByteRef wraps the file's bytes in a releasable reference.
func NewByteRef(file core.File) *ByteRef {
	return &ByteRef{file: file}
}

// File returns the referenced file, or ErrRefReleased after release.
func (r *ByteRef) File() (core.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return core.File{}, ErrRefReleased
	}
	return r.file, nil
}

// Release frees the reference. The first call succeeds; every subsequent call
// returns ErrRefReleased.
func (r *ByteRef) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrRefReleased
	}
	r.released = true
	r.file = core.File{}
	return nil
}

// Released reports whether the reference has been released.
func (r *ByteRef) Released() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}
