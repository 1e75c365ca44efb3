// Package pdfcraft provides a high-level façade over the session, storage and
// viewer-integration layers enabling a host application to open PDF tools
// with durable local persistence. Most applications interact with this
// package by:
//  1. Creating a Workspace via New() (optionally overriding default
//     in-memory stores with durable ones)
//  2. Opening a tool view against an embedded rendering surface (OpenTool)
//  3. Re-opening previously processed files via the recent-file history
//     (RecordProcessed / OpenRecent)
//
// The façade wires the session recovery machine, the save/backup protocol
// bridge and the toolbar injector together while keeping setup concise. All
// defaults are safe for local development and testing; production hosts
// typically supply the directory-backed file store and the SQLite stores
// plus a structured logger.
package pdfcraft

import (
	"context"
	"encoding/base64"

	"github.com/Hugo9809/pdfcraft/core"
	"github.com/Hugo9809/pdfcraft/filestore"
	"github.com/Hugo9809/pdfcraft/handoff"
	"github.com/Hugo9809/pdfcraft/history"
	"github.com/Hugo9809/pdfcraft/logging"
	"github.com/Hugo9809/pdfcraft/protocol"
	"github.com/Hugo9809/pdfcraft/session"
	"github.com/Hugo9809/pdfcraft/signature"
	"github.com/Hugo9809/pdfcraft/viewer"
)

// Options configures the Workspace instance.
type Options struct {
	// Stores (defaults to in-memory implementations if not provided)
	FileStore      core.FileStore
	SignatureStore core.SignatureStore
	HistoryStore   core.HistoryStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Workspace aggregates the persistence layers and the process-wide handoff
// slot shared by all tool views.
type Workspace struct {
	files      core.FileStore
	signatures core.SignatureStore
	recent     core.HistoryStore
	slot       *handoff.Slot
	logger     logging.Logger
}

// New creates a Workspace with optional overrides. Any unset store is
// initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *Workspace {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.FileStore == nil {
		opts.FileStore = filestore.NewInMemoryStore()
	}
	if opts.SignatureStore == nil {
		opts.SignatureStore = signature.NewInMemoryStore()
	}
	if opts.HistoryStore == nil {
		opts.HistoryStore = history.NewInMemoryStore()
	}
	return &Workspace{
		files:      opts.FileStore,
		signatures: opts.SignatureStore,
		recent:     opts.HistoryStore,
		slot:       handoff.NewSlot(),
		logger:     logging.Ensure(opts.Logger),
	}
}

// Files returns the workspace's file store.
func (w *Workspace) Files() core.FileStore { return w.files }

// Signatures returns the workspace's signature store.
func (w *Workspace) Signatures() core.SignatureStore { return w.signatures }

// History returns the workspace's recent-file store.
func (w *Workspace) History() core.HistoryStore { return w.recent }

// Handoff returns the process-wide pending-file slot.
func (w *Workspace) Handoff() *handoff.Slot { return w.slot }

// ToolViewOptions configures OpenTool.
type ToolViewOptions struct {
	// Prefs, when set, receives the pre-seeded surface configuration
	// (tooling flags and saved signatures) before the surface initializes.
	Prefs viewer.PrefStore
	// Downloader receives finalized output for the user-visible download.
	Downloader protocol.Downloader
	// OnError is invoked once per failed user-initiated save.
	OnError func(err error)
	// OnSaved is invoked with the output name after a successful save.
	OnSaved func(name string)
	// FullscreenToggle is the host-level state change dispatched by the
	// injected toolbar control.
	FullscreenToggle func()
	// Injector tunes the DOM patch retry loop.
	Injector func(o *viewer.InjectorOptions)
}

// ToolView bundles the per-view session machine, protocol bridge and toolbar
// injector for one mounted tool.
type ToolView struct {
	Machine *session.Machine
	Bridge  *protocol.Bridge

	cancel context.CancelFunc
}

// OpenTool prepares and mounts a tool view against the surface: seeds the
// surface's preference state, runs the session recovery machine, and starts
// the protocol bridge and the injection loop. The returned view must be
// closed when the hosting view unmounts.
func (w *Workspace) OpenTool(ctx context.Context, tool core.Tool, surface viewer.Surface, optFns ...func(o *ToolViewOptions)) *ToolView {
	opts := ToolViewOptions{FullscreenToggle: func() {}}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Prefs != nil {
		viewer.SeedPreferences(opts.Prefs, viewer.PrefFlags{
			EnableSignatureTools:  true,
			EnableAnnotationTools: true,
			DisableNativeDownload: true,
		})
		w.seedSignatures(ctx, opts.Prefs)
	}

	machine := session.NewMachine(tool, w.files, w.slot, func(o *session.Options) {
		o.Surface = surface
		o.Logger = w.logger
	})
	machine.Mount(ctx)

	bridge := protocol.NewBridge(surface, w.files, tool, func(o *protocol.BridgeOptions) {
		o.SessionActive = machine.Active
		o.Downloader = opts.Downloader
		o.OnError = opts.OnError
		o.OnSaved = opts.OnSaved
		o.Logger = w.logger
	})

	injector := viewer.NewInjector(surface, opts.FullscreenToggle, func(o *viewer.InjectorOptions) {
		o.Logger = w.logger
		if opts.Injector != nil {
			opts.Injector(o)
		}
	})

	runCtx, cancel := context.WithCancel(ctx)
	go bridge.Run(runCtx)
	go injector.Run(runCtx)

	return &ToolView{Machine: machine, Bridge: bridge, cancel: cancel}
}

// Close stops the view's background tasks and releases the viewer reference
// while keeping the session snapshot for a later resume. Idempotent.
func (v *ToolView) Close() {
	v.cancel()
	v.Machine.Unmount()
}

// seedSignatures pre-populates the surface's saved-signature list, newest
// first, so its signature picker matches the artifact store. Best effort.
func (w *Workspace) seedSignatures(ctx context.Context, prefs viewer.PrefStore) {
	sigs, err := w.signatures.GetAll(ctx)
	if err != nil {
		w.logger.Warn("signature seed skipped", "error", err)
		return
	}
	saved := make([]viewer.SavedSignature, 0, len(sigs))
	for _, sig := range sigs {
		saved = append(saved, viewer.SavedSignature{
			ID:      sig.ID,
			Kind:    string(sig.Kind),
			Payload: base64.StdEncoding.EncodeToString(sig.Payload),
			Width:   sig.Width,
			Height:  sig.Height,
		})
	}
	viewer.SeedSavedSignatures(prefs, saved)
}

// RecordProcessed persists the finished file under a history storage name and
// writes the recent-file entry pointing at it. A blob persist failure still
// records the entry, just without a storage name, so the history list stays
// complete even when re-open is unavailable.
func (w *Workspace) RecordProcessed(ctx context.Context, file core.File, tool core.Tool) (core.HistoryEntry, error) {
	entry := core.HistoryEntry{
		Name:     file.Name,
		Size:     file.Size(),
		Tool:     tool,
		ToolName: tool.DisplayName(),
	}
	storageName := "history-" + core.NewID()
	if err := w.files.Save(ctx, storageName, file); err != nil {
		w.logger.Warn("history blob persist failed, entry will not re-open", "error", err)
	} else {
		entry.StorageName = storageName
	}
	id, err := w.recent.Add(ctx, entry)
	if err != nil {
		return core.HistoryEntry{}, err
	}
	entry.ID = id
	return entry, nil
}

// OpenRecent resolves a history entry for re-processing: on success the
// restored file (with the entry's recorded name) is placed in the handoff
// slot for the entry's destination tool. On resolution failure the
// destination is still returned so the caller navigates anyway and the tool
// falls back to its own session-restore or upload path. The returned tool is
// always the entry's destination.
func (w *Workspace) OpenRecent(ctx context.Context, entry core.HistoryEntry) core.Tool {
	if entry.StorageName == "" {
		return entry.Tool
	}
	file, err := w.files.Load(ctx, entry.StorageName)
	if err != nil {
		w.logger.Warn("history blob unresolvable, navigating without file",
			"entry", entry.ID, "storage_name", entry.StorageName, "error", err)
		return entry.Tool
	}
	file.Name = entry.Name
	w.slot.Set(file, entry.Tool, entry.Name)
	return entry.Tool
}
