package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Hugo9809/pdfcraft/core"
	"github.com/Hugo9809/pdfcraft/handoff"
	"github.com/Hugo9809/pdfcraft/logging"
	"github.com/Hugo9809/pdfcraft/viewer"
)

// State is the machine's position in the recovery flow.
type State int

const (
	// StateEmpty is the initial state and the state after a clear.
	StateEmpty State = iota
	// StateRestoring is transient while a snapshot load is in flight.
	StateRestoring
	// StateHandoffConsumed is transient after taking a matching handoff.
	StateHandoffConsumed
	// StateAwaitingUpload means no document could be recovered; the view
	// waits for a fresh upload.
	StateAwaitingUpload
	// StateReady means a working document is loaded.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateRestoring:
		return "Restoring"
	case StateHandoffConsumed:
		return "HandoffConsumed"
	case StateAwaitingUpload:
		return "AwaitingUpload"
	case StateReady:
		return "Ready"
	default:
		return "Unknown"
	}
}

// Options configures a Machine.
type Options struct {
	// Surface, when set, is pointed at the working document's byte
	// reference whenever one is adopted.
	Surface viewer.Surface
	// Logger receives background diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Machine is the session recovery state machine for one tool view. All
// methods are safe for concurrent use; storage calls are awaited before the
// corresponding state transition completes.
type Machine struct {
	tool    core.Tool
	files   core.FileStore
	slot    *handoff.Slot
	surface viewer.Surface
	logger  logging.Logger

	mu          sync.Mutex
	state       State
	doc         core.File
	displayName string
	ref         *viewer.ByteRef
}

// NewMachine builds a machine for the tool backed by the file store and the
// shared handoff slot.
func NewMachine(tool core.Tool, files core.FileStore, slot *handoff.Slot, optFns ...func(o *Options)) *Machine {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Machine{
		tool:    tool,
		files:   files,
		slot:    slot,
		surface: opts.Surface,
		logger:  logging.Ensure(opts.Logger),
		state:   StateEmpty,
	}
}

// Tool returns the tool this machine serves.
func (m *Machine) Tool() core.Tool { return m.tool }

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Active reports whether a working document is loaded. The backup protocol
// consults this so a clear is authoritative: backups arriving for an
// inactive session are dropped instead of resurrecting a deleted snapshot.
func (m *Machine) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateReady
}

// Document returns the working document, if one is loaded.
func (m *Machine) Document() (core.File, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReady {
		return core.File{}, false
	}
	return m.doc, true
}

// DisplayName returns the name shown for the working document.
func (m *Machine) DisplayName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.displayName
}

// Ref returns the current viewer byte reference, or nil when no document is
// loaded.
func (m *Machine) Ref() *viewer.ByteRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ref
}

// Mount runs the recovery decision for a freshly mounted view. A handoff
// destined for this tool wins and is consumed exactly once; otherwise the
// tool's snapshot is restored; otherwise the machine parks in
// AwaitingUpload. Mount on an already-mounted machine is a no-op returning
// the current state.
func (m *Machine) Mount(ctx context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateEmpty {
		return m.state
	}

	if pending, ok := m.slot.Consume(m.tool); ok {
		m.state = StateHandoffConsumed
		m.adoptLocked(pending.File, pending.DisplayName)
		// Fire-and-forget: a failed persist only forfeits a future resume.
		if err := m.files.Save(ctx, m.tool.SnapshotName(), pending.File); err != nil {
			m.logger.Warn("handoff snapshot persist failed, resume disabled",
				"tool", string(m.tool), "error", err)
		}
		m.state = StateReady
		return m.state
	}

	m.state = StateRestoring
	file, err := m.files.Load(ctx, m.tool.SnapshotName())
	if err != nil {
		// Fail open: never block the view waiting on storage.
		if !errors.Is(err, core.ErrNotFound) {
			m.logger.Warn("session restore failed", "tool", string(m.tool), "error", err)
		}
		m.state = StateAwaitingUpload
		return m.state
	}
	m.adoptLocked(file, m.displayNameFor(file))
	m.state = StateReady
	return m.state
}

// Upload adopts a freshly uploaded file from any state, discarding whatever
// was previously loaded and re-arming persistence under the same snapshot
// name.
func (m *Machine) Upload(ctx context.Context, file core.File) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adoptLocked(file, m.displayNameFor(file))
	if err := m.files.Save(ctx, m.tool.SnapshotName(), file); err != nil {
		m.logger.Warn("upload snapshot persist failed, resume disabled",
			"tool", string(m.tool), "error", err)
	}
	m.state = StateReady
	return m.state
}

// Clear deletes the tool's snapshot, releases the viewer reference and
// returns to Empty. An already-absent snapshot is success; the transition to
// Empty happens regardless of storage trouble so the clear stays
// authoritative. The returned error is for the user-initiated surface only.
func (m *Machine) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.files.Delete(ctx, m.tool.SnapshotName())
	if err != nil && errors.Is(err, core.ErrUnsupported) {
		err = nil
	}
	m.releaseRefLocked()
	m.doc = core.File{}
	m.displayName = ""
	m.state = StateEmpty
	return err
}

// Unmount releases the viewer reference without touching the snapshot, so a
// later mount can resume the session. Idempotent: unmount after clear (or a
// second unmount) is a no-op.
func (m *Machine) Unmount() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseRefLocked()
	m.doc = core.File{}
	m.displayName = ""
	m.state = StateEmpty
}

// adoptLocked makes file the working document, replacing (and releasing) any
// previous byte reference.
func (m *Machine) adoptLocked(file core.File, displayName string) {
	m.releaseRefLocked()
	m.doc = file
	m.displayName = displayName
	m.ref = viewer.NewByteRef(file)
	if m.surface != nil {
		if err := m.surface.Load(m.ref); err != nil {
			m.logger.Warn("surface load failed", "tool", string(m.tool), "error", err)
		}
	}
}

// releaseRefLocked releases the current reference at most once. Clearing the
// field keeps unmount-after-clear idempotent.
func (m *Machine) releaseRefLocked() {
	if m.ref == nil {
		return
	}
	if err := m.ref.Release(); err != nil && !errors.Is(err, viewer.ErrRefReleased) {
		m.logger.Warn("viewer ref release failed", "error", err)
	}
	m.ref = nil
}

func (m *Machine) displayNameFor(file core.File) string {
	if file.Name != "" {
		return file.Name
	}
	return m.tool.SnapshotName()
}
