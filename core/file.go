package core

import (
	"context"
	"time"
)

// DefaultMIMEType is assumed for stored blobs whose type was never recorded.
const DefaultMIMEType = "application/pdf"

// File is an in-memory document: raw bytes plus the display name and MIME
// type they travel with. The bytes are opaque to this subsystem; nothing
// here parses or mutates document content.
type File struct {
	Name string
	Type string
	Data []byte
}

// Size returns the byte length of the file contents.
func (f File) Size() int64 { return int64(len(f.Data)) }

// Clone returns a deep copy so callers can hold a File without aliasing the
// original buffer.
func (f File) Clone() File {
	cp := make([]byte, len(f.Data))
	copy(cp, f.Data)
	return File{Name: f.Name, Type: f.Type, Data: cp}
}

// FileInfo describes a stored blob without its contents, as reported by
// FileStore.List.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
	Type    string
}

// FileStore is durable, name-keyed byte-blob storage. Implementations must be
// safe for concurrent use.
//
// Contract:
//   - Save fully replaces any prior bytes at the name; a concurrent Load
//     observes either the old or the new contents, never a partial write.
//   - Load returns ErrNotFound for a name never written, deleted, or when
//     the backing capability is absent.
//   - Delete tolerates the name being already absent (returns nil).
//   - List is a finite snapshot at call time.
//   - Supported is a side-effect-free probe and never returns an error;
//     capability absence is expected on constrained environments.
type FileStore interface {
	Save(ctx context.Context, name string, file File) error
	Load(ctx context.Context, name string) (File, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]FileInfo, error)
	Supported() bool
}
