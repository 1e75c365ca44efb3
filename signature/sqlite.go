package signature

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

// SQLiteStore is a durable core.SignatureStore backed by SQLite. Every public
// operation runs inside its own transaction which is committed or rolled back
// before the call returns, so a failure never leaks a half-applied write or a
// held connection.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
type SQLiteStore struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path and applies the
// schema. A missing or unusable SQLite capability is reported as
// core.ErrUnsupported; schema application failures are StoreError.
// This function is idempotent - safe to call multiple times.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnsupported, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", core.ErrUnsupported, err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, core.NewStoreError("open", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, core.NewStoreError("open", err)
	}
	return &SQLiteStore{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection. Should be called when the store is no
// longer needed.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts a new signature record and returns its store-assigned id. The
// caller-provided ID and Created fields are ignored.
func (s *SQLiteStore) Save(ctx context.Context, sig core.Signature) (string, error) {
	id := core.NewID()
	created := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", core.NewStoreError("save signature", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO signatures (id, kind, payload, width, height, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(sig.Kind), sig.Payload, sig.Width, sig.Height, created.UnixNano(),
	)
	if err != nil {
		return "", core.NewStoreError("save signature", err)
	}
	if err := tx.Commit(); err != nil {
		return "", core.NewStoreError("save signature", err)
	}
	return id, nil
}

// GetAll returns every stored signature ordered newest-created-first.
func (s *SQLiteStore) GetAll(ctx context.Context) ([]core.Signature, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, core.NewStoreError("list signatures", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT id, kind, payload, width, height, created_at FROM signatures ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, core.NewStoreError("list signatures", err)
	}
	defer rows.Close()

	var sigs []core.Signature
	for rows.Next() {
		var sig core.Signature
		var kind string
		var createdNanos int64
		if err := rows.Scan(&sig.ID, &kind, &sig.Payload, &sig.Width, &sig.Height, &createdNanos); err != nil {
			return nil, core.NewStoreError("list signatures", err)
		}
		sig.Kind = core.SignatureKind(kind)
		sig.Created = time.Unix(0, createdNanos).UTC()
		sigs = append(sigs, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStoreError("list signatures", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, core.NewStoreError("list signatures", err)
	}
	return sigs, nil
}

// Delete removes the signature with the given id. A missing id is not an
// error.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.NewStoreError("delete signature", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM signatures WHERE id = ?`, id); err != nil {
		return core.NewStoreError("delete signature", err)
	}
	if err := tx.Commit(); err != nil {
		return core.NewStoreError("delete signature", err)
	}
	return nil
}
