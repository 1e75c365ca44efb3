// Package session implements the per-tool recovery state machine deciding,
// on mount, where the working document comes from: a pending handoff from
// another view, a previously auto-saved snapshot in the file store, or a
// fresh upload. Exactly one of those supplies the document per mount.
//
// The machine fails open: storage trouble during restore degrades to the
// upload path instead of blocking the view, and a cleared session stays
// cleared even when a stale backup write lands afterwards.
package session
