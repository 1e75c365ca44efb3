// Package handoff implements the single-slot pending-file transfer between
// independent tool views. One value is visible to an arbitrary future view
// without threading it through intermediate layers: the history view sets it,
// the destination tool consumes it exactly once on mount.
package handoff

import (
	"sync"

	"github.com/Hugo9809/pdfcraft/core"
)

// Pending is the transient record carried by the slot: the in-memory file,
// the tool it is destined for, and the name to display while loading.
type Pending struct {
	File        core.File
	Tool        core.Tool
	DisplayName string
}

// Slot holds at most one outstanding handoff for the process lifetime. It is
// safe for concurrent use.
//
// Contract:
//   - Set unconditionally replaces any existing handoff; a previous
//     unconsumed one is discarded.
//   - Consume returns and clears the handoff only when the stored destination
//     matches, so a re-render or a second reader never replays it. A
//     non-matching destination observes nothing and leaves the slot intact.
type Slot struct {
	mu      sync.Mutex
	pending *Pending
}

// NewSlot returns an empty handoff slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Set replaces any existing handoff with a new one destined for tool.
func (s *Slot) Set(file core.File, tool core.Tool, displayName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if displayName == "" {
		displayName = file.Name
	}
	s.pending = &Pending{File: file, Tool: tool, DisplayName: displayName}
}

// Consume atomically takes the handoff if it is destined for tool. The second
// return reports whether a handoff was taken.
func (s *Slot) Consume(tool core.Tool) (Pending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil || s.pending.Tool != tool {
		return Pending{}, false
	}
	p := *s.pending
	s.pending = nil
	return p, true
}

// Peek reports whether a handoff is outstanding and for which tool, without
// consuming it. Used by UI chrome to hint at an incoming file.
func (s *Slot) Peek() (core.Tool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return "", false
	}
	return s.pending.Tool, true
}
