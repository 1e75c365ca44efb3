package viewer

// Surface is the capability interface for the embedded rendering surface. The
// surface runs in an isolated context with no shared memory or call
// interface; all coordination happens through discrete best-effort messages
// and, after load, through the patchable DOM region.
type Surface interface {
	// Load points the surface at the current document bytes. The ref stays
	// owned by the caller; the surface must not release it.
	Load(ref *ByteRef) error

	// Messages is the stream of raw envelopes emitted by the surface. The
	// channel may carry unrelated traffic; receivers must validate each
	// envelope's kind before acting.
	Messages() <-chan []byte

	// Post sends a raw envelope into the surface's context. Delivery is
	// at-most-once with no acknowledgment; a surface that has not yet
	// initialized silently ignores it.
	Post(raw []byte) error

	// Loaded is closed when the surface's outer container has loaded. Inner
	// readiness (toolbar DOM) is still not observable at that point and must
	// be polled.
	Loaded() <-chan struct{}

	// DOM exposes the surface's patchable region. It may return nil before
	// the surface has loaded.
	DOM() DOM
}

// DOM is the patchable region inside the embedded surface. Patch operations
// address known anchors by id or visible label; nothing else about the
// surface's internals is assumed.
type DOM interface {
	// ToolbarReady reports whether the toolbar region exists yet.
	ToolbarReady() bool

	// RevealExportControls unhides the surface's native export controls.
	RevealExportControls()

	// HideControlByLabel hides the control whose visible label matches,
	// reporting whether one was found.
	HideControlByLabel(label string) bool

	// HasControl reports whether a control with the given id is present.
	HasControl(id string) bool

	// InsertToolbarControl adds a control to the toolbar region. The onClick
	// callback dispatches into host-level state; it must not assume any
	// cross-context call interface.
	InsertToolbarControl(id, label string, onClick func()) error
}
