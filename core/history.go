package core

import (
	"context"
	"time"
)

// HistoryEntry is the persisted, metadata-only record of a previously
// processed file. StorageName, when non-empty, points at a blob in the file
// store; consumers must tolerate the blob no longer resolving (the store may
// have been cleared) and degrade to navigation without a file.
type HistoryEntry struct {
	ID          string
	Name        string
	Size        int64
	Processed   time.Time
	Tool        Tool
	ToolName    string
	StorageName string
}

// HistoryStore persists recent-file entries. Entries are written whenever a
// tool finishes processing a file and read by the history view for re-open.
//
// Contract:
//   - Add assigns and returns a fresh id.
//   - List returns entries ordered newest-processed-first.
//   - Remove is idempotent on a missing id; Clear removes everything.
type HistoryStore interface {
	Add(ctx context.Context, entry HistoryEntry) (string, error)
	List(ctx context.Context) ([]HistoryEntry, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
