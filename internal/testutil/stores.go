package testutil

import (
	"sync"

	"github.com/Hugo9809/pdfcraft/viewer"
)

// MemPrefStore is an in-memory viewer.PrefStore with scriptable failures.
type MemPrefStore struct {
	mu     sync.Mutex
	blob   string
	getErr error
	setErr error
}

// NewMemPrefStore returns a store holding the given initial blob.
func NewMemPrefStore(blob string) *MemPrefStore {
	return &MemPrefStore{blob: blob}
}

// FailGet scripts Get to fail.
func (p *MemPrefStore) FailGet(err error) { p.mu.Lock(); p.getErr = err; p.mu.Unlock() }

// FailSet scripts Set to fail.
func (p *MemPrefStore) FailSet(err error) { p.mu.Lock(); p.setErr = err; p.mu.Unlock() }

// Get returns the current blob.
func (p *MemPrefStore) Get() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getErr != nil {
		return "", p.getErr
	}
	return p.blob, nil
}

// Set replaces the blob.
func (p *MemPrefStore) Set(blob string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.blob = blob
	return nil
}

// Blob returns the current blob without error scripting.
func (p *MemPrefStore) Blob() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.blob
}

// Download is one recorded download offer.
type Download struct {
	Filename string
	Data     []byte
}

// RecordingDownloader is a protocol.Downloader capturing every offer. It
// copies the bytes out of the transient ref during the call, as a compliant
// implementation must.
type RecordingDownloader struct {
	mu        sync.Mutex
	downloads []Download
	err       error
}

// NewRecordingDownloader returns an empty recorder.
func NewRecordingDownloader() *RecordingDownloader {
	return &RecordingDownloader{}
}

// Fail scripts subsequent offers to fail.
func (r *RecordingDownloader) Fail(err error) { r.mu.Lock(); r.err = err; r.mu.Unlock() }

// OfferDownload records the offer.
func (r *RecordingDownloader) OfferDownload(ref *viewer.ByteRef, filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	file, err := ref.File()
	if err != nil {
		return err
	}
	data := make([]byte, len(file.Data))
	copy(data, file.Data)
	r.downloads = append(r.downloads, Download{Filename: filename, Data: data})
	return nil
}

// Downloads returns a snapshot of recorded offers.
func (r *RecordingDownloader) Downloads() []Download {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Download, len(r.downloads))
	copy(out, r.downloads)
	return out
}
