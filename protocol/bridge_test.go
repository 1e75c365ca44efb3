package protocol

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hugo9809/pdfcraft/core"
	"github.com/Hugo9809/pdfcraft/filestore"
	"github.com/Hugo9809/pdfcraft/handoff"
	"github.com/Hugo9809/pdfcraft/internal/testutil"
	"github.com/Hugo9809/pdfcraft/session"
)

func backupEnvelope(t *testing.T, data []byte) []byte {
	t.Helper()
	raw, err := Encode(Message{Kind: KindSessionBackup, Data: data})
	require.NoError(t, err)
	return raw
}

func saveEnvelope(t *testing.T, data []byte, filename string) []byte {
	t.Helper()
	raw, err := Encode(Message{Kind: KindSaveData, Data: data, Filename: filename})
	require.NoError(t, err)
	return raw
}

func TestBridge_BackupWritesSnapshot(t *testing.T) {
	surface := testutil.NewFakeSurface()
	files := filestore.NewInMemoryStore()
	bridge := NewBridge(surface, files, core.ToolSign)
	ctx := context.Background()

	bridge.Handle(ctx, backupEnvelope(t, []byte("autosaved")))

	snapshot, err := files.Load(ctx, core.ToolSign.SnapshotName())
	require.NoError(t, err)
	assert.Equal(t, []byte("autosaved"), snapshot.Data)
	assert.Equal(t, core.DefaultMIMEType, snapshot.Type)
}

func TestBridge_BackupAfterClearIsDropped(t *testing.T) {
	surface := testutil.NewFakeSurface()
	files := filestore.NewInMemoryStore()
	ctx := context.Background()

	machine := session.NewMachine(core.ToolSign, files, handoff.NewSlot())
	machine.Upload(ctx, core.File{Name: "doc.pdf", Data: []byte("v1")})

	bridge := NewBridge(surface, files, core.ToolSign, func(o *BridgeOptions) {
		o.SessionActive = machine.Active
	})

	// a backup while the session is live lands
	bridge.Handle(ctx, backupEnvelope(t, []byte("live backup")))
	_, err := files.Load(ctx, core.ToolSign.SnapshotName())
	require.NoError(t, err)

	// the clear is authoritative: a late backup must not resurrect it
	require.NoError(t, machine.Clear(ctx))
	bridge.Handle(ctx, backupEnvelope(t, []byte("stale backup")))

	_, err = files.Load(ctx, core.ToolSign.SnapshotName())
	assert.ErrorIs(t, err, core.ErrNotFound)

	// next mount still reaches AwaitingUpload
	assert.Equal(t, session.StateAwaitingUpload, machine.Mount(ctx))
}

func TestBridge_SaveDataPersistsDownloadsAndNotifies(t *testing.T) {
	surface := testutil.NewFakeSurface()
	files := filestore.NewInMemoryStore()
	downloader := testutil.NewRecordingDownloader()
	var savedName string
	bridge := NewBridge(surface, files, core.ToolEdit, func(o *BridgeOptions) {
		o.Downloader = downloader
		o.OnSaved = func(name string) { savedName = name }
	})
	ctx := context.Background()

	bridge.Handle(ctx, saveEnvelope(t, []byte("final bytes"), "annotated.pdf"))

	output, err := files.Load(ctx, "annotated.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("final bytes"), output.Data)

	snapshot, err := files.Load(ctx, core.ToolEdit.SnapshotName())
	require.NoError(t, err)
	assert.Equal(t, []byte("final bytes"), snapshot.Data)

	downloads := downloader.Downloads()
	require.Len(t, downloads, 1)
	assert.Equal(t, "annotated.pdf", downloads[0].Filename)
	assert.Equal(t, []byte("final bytes"), downloads[0].Data)
	assert.Equal(t, "annotated.pdf", savedName)
}

func TestBridge_SaveDataDerivesTimestampName(t *testing.T) {
	surface := testutil.NewFakeSurface()
	files := filestore.NewInMemoryStore()
	bridge := NewBridge(surface, files, core.ToolEdit, func(o *BridgeOptions) {
		o.OutputName = func(filename string) string {
			if filename == "" {
				return "edited-fixed.pdf"
			}
			return filename
		}
	})
	ctx := context.Background()

	bridge.Handle(ctx, saveEnvelope(t, []byte("x"), ""))

	_, err := files.Load(ctx, "edited-fixed.pdf")
	assert.NoError(t, err)
}

func TestBridge_SaveFailureSurfacesSingleError(t *testing.T) {
	surface := testutil.NewFakeSurface()
	files := filestore.NewInMemoryStore()
	downloader := testutil.NewRecordingDownloader()
	downloader.Fail(errors.New("popup blocked"))
	var errs []error
	bridge := NewBridge(surface, files, core.ToolEdit, func(o *BridgeOptions) {
		o.Downloader = downloader
		o.OnError = func(err error) { errs = append(errs, err) }
		o.OnSaved = func(string) { t.Fatal("OnSaved must not fire on failure") }
	})

	bridge.Handle(context.Background(), saveEnvelope(t, []byte("x"), "out.pdf"))

	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "out.pdf")
}

func TestBridge_RunConsumesStreamUntilCancel(t *testing.T) {
	surface := testutil.NewFakeSurface()
	files := filestore.NewInMemoryStore()
	bridge := NewBridge(surface, files, core.ToolSign)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		bridge.Run(ctx)
		close(done)
	}()

	surface.Emit(backupEnvelope(t, []byte("b1")))
	surface.Emit([]byte(`{"event":"unrelated"}`)) // must be dropped silently

	require.Eventually(t, func() bool {
		_, err := files.Load(context.Background(), core.ToolSign.SnapshotName())
		return err == nil
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bridge did not stop on cancel")
	}
}

func TestBridge_RequestSavePostsTriggerSave(t *testing.T) {
	surface := testutil.NewFakeSurface()
	bridge := NewBridge(surface, filestore.NewInMemoryStore(), core.ToolSign)

	bridge.RequestSave()
	bridge.RequestSave() // repeated sends are idempotent host-side

	posted := surface.Posted()
	require.Len(t, posted, 2)
	msg, err := Parse(posted[0])
	require.NoError(t, err)
	assert.Equal(t, KindTriggerSave, msg.Kind)
}
