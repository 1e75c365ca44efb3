// Package history contains concrete implementations of the
// core.HistoryStore: durable SQLite persistence of recent-file metadata and
// an in-memory backend for tests.
//
// History entries are metadata only. When an entry carries a storage name the
// referenced blob lives in the file store; consumers resolve it at read time
// and must tolerate the blob having been evicted since the entry was written.
package history
