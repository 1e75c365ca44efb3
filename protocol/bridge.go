package protocol

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hugo9809/pdfcraft/core"
	"github.com/Hugo9809/pdfcraft/logging"
	"github.com/Hugo9809/pdfcraft/viewer"
)

// Downloader offers bytes to the user as a file download. The ref handed in
// is transient: the bridge releases it once the offer returns, so
// implementations must not retain it.
type Downloader interface {
	OfferDownload(ref *viewer.ByteRef, filename string) error
}

// BridgeOptions configures a Bridge.
type BridgeOptions struct {
	// SessionActive gates backup writes. When it reports false (the session
	// was cleared) incoming backups are dropped so a late write cannot
	// resurrect a deleted session. Nil means always active.
	SessionActive func() bool

	// Downloader receives SaveData bytes for the user-visible download. Nil
	// skips the download step.
	Downloader Downloader

	// OnError is invoked once per failed user-initiated save with a single
	// human-readable error. Nil means errors are only logged.
	OnError func(err error)

	// OnSaved is invoked with the output name after a SaveData message was
	// fully handled. Nil skips the notification.
	OnSaved func(name string)

	// OutputName derives the file-store name for finalized output from the
	// surface-provided filename (may be empty). Defaults to a
	// timestamp-based name.
	OutputName func(filename string) string

	// Logger receives background diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Bridge is the host-side handler of the save/backup protocol for one tool
// view. Run consumes the surface's message stream until the context is
// cancelled; cancelling at unmount is what stops backup handling for a view
// that no longer owns its snapshot name.
type Bridge struct {
	surface viewer.Surface
	files   core.FileStore
	tool    core.Tool
	opts    BridgeOptions
	logger  logging.Logger
}

// NewBridge wires a bridge between the surface and the file store for the
// given tool.
func NewBridge(surface viewer.Surface, files core.FileStore, tool core.Tool, optFns ...func(o *BridgeOptions)) *Bridge {
	opts := BridgeOptions{
		OutputName: defaultOutputName,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.OutputName == nil {
		opts.OutputName = defaultOutputName
	}
	return &Bridge{surface: surface, files: files, tool: tool, opts: opts, logger: logging.Ensure(opts.Logger)}
}

func defaultOutputName(filename string) string {
	if filename != "" {
		return filename
	}
	return fmt.Sprintf("edited-%s.pdf", time.Now().UTC().Format("20060102-150405"))
}

// Run processes surface messages until ctx is cancelled or the stream closes.
func (b *Bridge) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-b.surface.Messages():
			if !ok {
				return
			}
			b.Handle(ctx, raw)
		}
	}
}

// Handle processes one raw envelope. Unknown or malformed envelopes are
// dropped without logging noise; known kinds are dispatched.
func (b *Bridge) Handle(ctx context.Context, raw []byte) {
	msg, err := Parse(raw)
	if err != nil {
		if errors.Is(err, ErrIgnored) {
			b.logger.Debug("unrelated message dropped")
		}
		return
	}
	switch msg.Kind {
	case KindSessionBackup:
		b.handleBackup(ctx, msg)
	case KindSaveData:
		b.handleSave(ctx, msg)
	}
}

// RequestSave posts a TriggerSave into the surface. No acknowledgment is
// awaited; the surface ignores it when not yet initialized, and repeated
// requests are harmless.
func (b *Bridge) RequestSave() {
	if err := b.surface.Post(EncodeTriggerSave()); err != nil {
		b.logger.Debug("trigger-save post failed", "error", err)
	}
}

// handleBackup persists a periodic session backup under the tool's snapshot
// name. Failures are logged, never surfaced and never retried inline: the
// surface's next backup is the retry.
func (b *Bridge) handleBackup(ctx context.Context, msg Message) {
	if b.opts.SessionActive != nil && !b.opts.SessionActive() {
		b.logger.Debug("backup after clear dropped", "tool", string(b.tool))
		return
	}
	snapshot := core.File{Name: b.tool.SnapshotName(), Type: core.DefaultMIMEType, Data: msg.Data}
	if err := b.files.Save(ctx, snapshot.Name, snapshot); err != nil {
		b.logger.Warn("session backup write failed", "tool", string(b.tool), "error", err)
	}
}

// handleSave persists finalized output, refreshes the session snapshot and
// offers the bytes as a download. Any step's failure surfaces one
// user-visible error and leaves the view in its last good state.
func (b *Bridge) handleSave(ctx context.Context, msg Message) {
	outputName := b.opts.OutputName(msg.Filename)
	file := core.File{Name: outputName, Type: core.DefaultMIMEType, Data: msg.Data}

	if err := b.files.Save(ctx, outputName, file); err != nil {
		b.fail(fmt.Errorf("saving %q: %w", outputName, err))
		return
	}
	if err := b.files.Save(ctx, b.tool.SnapshotName(), file); err != nil {
		b.fail(fmt.Errorf("updating session snapshot: %w", err))
		return
	}
	if b.opts.Downloader != nil {
		ref := viewer.NewByteRef(file)
		err := b.opts.Downloader.OfferDownload(ref, outputName)
		if relErr := ref.Release(); relErr != nil {
			b.logger.Warn("download ref double-released", "error", relErr)
		}
		if err != nil {
			b.fail(fmt.Errorf("offering download of %q: %w", outputName, err))
			return
		}
	}
	if b.opts.OnSaved != nil {
		b.opts.OnSaved(outputName)
	}
}

func (b *Bridge) fail(err error) {
	b.logger.Error("explicit save failed", "tool", string(b.tool), "error", err)
	if b.opts.OnError != nil {
		b.opts.OnError(err)
	}
}
