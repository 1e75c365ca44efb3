package testutil

import (
	"sync"

	"github.com/Hugo9809/pdfcraft/viewer"
)

// FakeSurface is a scripted viewer.Surface. Tests emit envelopes with Emit,
// signal the outer load with MarkLoaded, and inspect envelopes the host
// posted with Posted.
type FakeSurface struct {
	mu         sync.Mutex
	msgs       chan []byte
	loaded     chan struct{}
	loadedOnce sync.Once
	dom        *FakeDOM
	posted     [][]byte
	ref        *viewer.ByteRef
}

// NewFakeSurface returns a surface with a buffered message stream and no DOM.
func NewFakeSurface() *FakeSurface {
	return &FakeSurface{msgs: make(chan []byte, 32), loaded: make(chan struct{})}
}

// Load records the byte reference the host pointed the surface at.
func (s *FakeSurface) Load(ref *viewer.ByteRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ref = ref
	return nil
}

// LoadedRef returns the last reference passed to Load.
func (s *FakeSurface) LoadedRef() *viewer.ByteRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ref
}

// Messages returns the surface-to-host stream.
func (s *FakeSurface) Messages() <-chan []byte { return s.msgs }

// Emit places a raw envelope on the surface-to-host stream.
func (s *FakeSurface) Emit(raw []byte) { s.msgs <- raw }

// CloseMessages ends the surface-to-host stream.
func (s *FakeSurface) CloseMessages() { close(s.msgs) }

// Post records an envelope the host sent into the surface.
func (s *FakeSurface) Post(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(raw))
	copy(cp, raw)
	s.posted = append(s.posted, cp)
	return nil
}

// Posted returns a snapshot of host-sent envelopes.
func (s *FakeSurface) Posted() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.posted))
	copy(out, s.posted)
	return out
}

// Loaded is closed by MarkLoaded.
func (s *FakeSurface) Loaded() <-chan struct{} { return s.loaded }

// MarkLoaded signals the outer load notification. Safe to call repeatedly.
func (s *FakeSurface) MarkLoaded() { s.loadedOnce.Do(func() { close(s.loaded) }) }

// SetDOM attaches (or detaches, with nil) the surface's patchable region.
func (s *FakeSurface) SetDOM(dom *FakeDOM) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dom = dom
}

// DOM returns the attached region, or nil before the surface exposes one.
func (s *FakeSurface) DOM() viewer.DOM {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dom == nil {
		return nil
	}
	return s.dom
}

// FakeDOM is a scripted viewer.DOM recording every patch operation.
type FakeDOM struct {
	mu        sync.Mutex
	ready     bool
	labels    map[string]bool
	controls  map[string]func()
	revealed  int
	hidden    []string
	inserts   int
	insertErr error
}

// NewFakeDOM returns a DOM whose toolbar is not yet ready and which carries
// the given native control labels.
func NewFakeDOM(labels ...string) *FakeDOM {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	return &FakeDOM{labels: set, controls: map[string]func(){}}
}

// SetToolbarReady scripts the toolbar's appearance.
func (d *FakeDOM) SetToolbarReady(ready bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ready = ready
}

// SetInsertErr makes subsequent inserts fail.
func (d *FakeDOM) SetInsertErr(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.insertErr = err
}

// ToolbarReady reports the scripted readiness.
func (d *FakeDOM) ToolbarReady() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready
}

// RevealExportControls counts reveal calls.
func (d *FakeDOM) RevealExportControls() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revealed++
}

// HideControlByLabel records the hide and reports whether the label existed.
func (d *FakeDOM) HideControlByLabel(label string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hidden = append(d.hidden, label)
	return d.labels[label]
}

// HasControl reports whether an injected control with the id exists.
func (d *FakeDOM) HasControl(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.controls[id]
	return ok
}

// InsertToolbarControl records the control and its callback.
func (d *FakeDOM) InsertToolbarControl(id, label string, onClick func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.insertErr != nil {
		return d.insertErr
	}
	d.controls[id] = onClick
	d.inserts++
	return nil
}

// Click invokes the injected control's callback, reporting whether it exists.
func (d *FakeDOM) Click(id string) bool {
	d.mu.Lock()
	onClick, ok := d.controls[id]
	d.mu.Unlock()
	if ok && onClick != nil {
		onClick()
	}
	return ok
}

// Revealed returns how often export controls were revealed.
func (d *FakeDOM) Revealed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revealed
}

// Hidden returns the labels hide was attempted for.
func (d *FakeDOM) Hidden() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.hidden))
	copy(out, d.hidden)
	return out
}

// Inserts returns the number of successful control insertions.
func (d *FakeDOM) Inserts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inserts
}
