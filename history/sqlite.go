package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Hugo9809/pdfcraft/core"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore is a durable core.HistoryStore backed by SQLite. It follows the
// same transactional discipline as the signature store: one transaction per
// operation, committed or rolled back before the call returns.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates or opens the history database at the given path. Capability
// absence is reported as core.ErrUnsupported.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnsupported, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", core.ErrUnsupported, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, core.NewStoreError("open", fmt.Errorf("failed to execute %q: %w", pragma, err))
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, core.NewStoreError("open", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add inserts an entry and returns its store-assigned id. The Processed field
// defaults to now when unset.
func (s *SQLiteStore) Add(ctx context.Context, entry core.HistoryEntry) (string, error) {
	id := core.NewID()
	processed := entry.Processed
	if processed.IsZero() {
		processed = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", core.NewStoreError("add history entry", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO history (id, name, size, processed_at, tool, tool_name, storage_name) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, entry.Name, entry.Size, processed.UnixNano(), string(entry.Tool), entry.ToolName, entry.StorageName,
	)
	if err != nil {
		return "", core.NewStoreError("add history entry", err)
	}
	if err := tx.Commit(); err != nil {
		return "", core.NewStoreError("add history entry", err)
	}
	return id, nil
}

// List returns all entries ordered newest-processed-first.
func (s *SQLiteStore) List(ctx context.Context) ([]core.HistoryEntry, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, core.NewStoreError("list history", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT id, name, size, processed_at, tool, tool_name, storage_name FROM history ORDER BY processed_at DESC, rowid DESC`)
	if err != nil {
		return nil, core.NewStoreError("list history", err)
	}
	defer rows.Close()

	var entries []core.HistoryEntry
	for rows.Next() {
		var entry core.HistoryEntry
		var tool string
		var processedNanos int64
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Size, &processedNanos, &tool, &entry.ToolName, &entry.StorageName); err != nil {
			return nil, core.NewStoreError("list history", err)
		}
		entry.Tool = core.Tool(tool)
		entry.Processed = time.Unix(0, processedNanos).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStoreError("list history", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, core.NewStoreError("list history", err)
	}
	return entries, nil
}

// Remove deletes the entry with the given id; a missing id is not an error.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.NewStoreError("remove history entry", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id); err != nil {
		return core.NewStoreError("remove history entry", err)
	}
	if err := tx.Commit(); err != nil {
		return core.NewStoreError("remove history entry", err)
	}
	return nil
}

// Clear deletes all entries.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.NewStoreError("clear history", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return core.NewStoreError("clear history", err)
	}
	if err := tx.Commit(); err != nil {
		return core.NewStoreError("clear history", err)
	}
	return nil
}
