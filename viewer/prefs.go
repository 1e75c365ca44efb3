package viewer

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// PrefStore is the surface's own origin-scoped preference blob: a single JSON
// document the surface reads during initialization. The host does not own
// this state; it may only merge flags into it before the surface starts.
type PrefStore interface {
	Get() (string, error)
	Set(blob string) error
}

// PrefFlags are the configuration flags the host pushes into the surface
// before it initializes: enable the tooling the host's workflows rely on and
// disable surface features that would conflict with the host's own save
// handling.
type PrefFlags struct {
	EnableSignatureTools  bool
	EnableAnnotationTools bool
	DisableNativeDownload bool
}

// Preference keys inside the surface's blob. These are the only keys the host
// touches; everything else in the blob is preserved as-is.
const (
	prefKeySignature = "tools.signature.enabled"
	prefKeyAnnotate  = "tools.annotate.enabled"
	prefKeyDownload  = "download.native.disabled"
	prefKeySaved     = "tools.signature.saved"
)

// SeedPreferences merges the flags into the surface's preference blob. This
// is a best-effort configuration push, not a protocol message: any failure
// (unreadable blob, malformed JSON, write rejection) makes it a silent no-op.
func SeedPreferences(store PrefStore, flags PrefFlags) {
	blob, err := store.Get()
	if err != nil {
		return
	}
	if blob != "" && !gjson.Valid(blob) {
		return
	}
	for key, val := range map[string]bool{
		prefKeySignature: flags.EnableSignatureTools,
		prefKeyAnnotate:  flags.EnableAnnotationTools,
		prefKeyDownload:  flags.DisableNativeDownload,
	} {
		next, err := sjson.Set(blob, key, val)
		if err != nil {
			return
		}
		blob = next
	}
	_ = store.Set(blob)
}

// SavedSignature is the shape of a signature pre-populated into the surface's
// preference state so its own signature picker shows previously created
// signatures immediately.
type SavedSignature struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// SeedSavedSignatures replaces the surface's saved-signature list, newest
// first. Best effort like SeedPreferences; a failure leaves the blob
// untouched.
func SeedSavedSignatures(store PrefStore, sigs []SavedSignature) {
	blob, err := store.Get()
	if err != nil {
		return
	}
	if blob != "" && !gjson.Valid(blob) {
		return
	}
	if sigs == nil {
		sigs = []SavedSignature{}
	}
	next, err := sjson.Set(blob, prefKeySaved, sigs)
	if err != nil {
		return
	}
	_ = store.Set(next)
}
