package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SignatureKind discriminates the payload encoding of a stored signature.
type SignatureKind string

const (
	// SignatureVector is a drawn signature stored as a vector path
	// description.
	SignatureVector SignatureKind = "vector"
	// SignatureRaster is an uploaded or rendered signature stored as an
	// encoded image.
	SignatureRaster SignatureKind = "raster"
)

// Signature is a user-created signature artifact. The ID is assigned by the
// store at creation time, never by the caller. Width and Height are optional
// rendering hints (zero means unset).
type Signature struct {
	ID      string
	Kind    SignatureKind
	Payload []byte
	Width   int
	Height  int
	Created time.Time
}

// SignatureStore persists signature artifacts in a transactional record
// store. Implementations must scope each operation to its own transaction and
// release the underlying connection on every exit path.
//
// Contract:
//   - Save assigns and returns a fresh id; the caller-provided ID field is
//     ignored.
//   - GetAll returns records ordered newest-created-first and performs no
//     mutation.
//   - Delete is idempotent on a missing id.
//
// Opening a store whose backing capability is unavailable fails with
// ErrUnsupported; per-operation failures are reported as StoreError.
type SignatureStore interface {
	Save(ctx context.Context, sig Signature) (string, error)
	GetAll(ctx context.Context) ([]Signature, error)
	Delete(ctx context.Context, id string) error
}

// NewID generates a new unique identifier for store-assigned record ids.
func NewID() string { return uuid.NewString() }
