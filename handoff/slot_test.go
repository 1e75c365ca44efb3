package handoff

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hugo9809/pdfcraft/core"
)

func TestSlot_ConsumeEmptyHasNoEffect(t *testing.T) {
	slot := NewSlot()
	_, ok := slot.Consume(core.ToolSign)
	assert.False(t, ok)
	_, ok = slot.Peek()
	assert.False(t, ok)
}

func TestSlot_NonMatchingToolLeavesHandoffIntact(t *testing.T) {
	slot := NewSlot()
	f := core.File{Name: "contract.pdf", Data: []byte("bytes")}
	slot.Set(f, core.ToolSign, "")

	_, ok := slot.Consume(core.ToolEdit)
	assert.False(t, ok)

	p, ok := slot.Consume(core.ToolSign)
	require.True(t, ok)
	assert.Equal(t, "contract.pdf", p.File.Name)
	assert.Equal(t, "contract.pdf", p.DisplayName) // falls back to file name

	_, ok = slot.Consume(core.ToolSign)
	assert.False(t, ok, "handoff must be consumed at most once")
}

func TestSlot_SetReplacesOutstandingHandoff(t *testing.T) {
	slot := NewSlot()
	slot.Set(core.File{Name: "old.pdf"}, core.ToolSign, "Old")
	slot.Set(core.File{Name: "new.pdf"}, core.ToolEdit, "New")

	_, ok := slot.Consume(core.ToolSign)
	assert.False(t, ok, "discarded handoff must not be consumable")

	p, ok := slot.Consume(core.ToolEdit)
	require.True(t, ok)
	assert.Equal(t, "new.pdf", p.File.Name)
	assert.Equal(t, "New", p.DisplayName)
}

func TestSlot_ConcurrentConsumersGetAtMostOne(t *testing.T) {
	slot := NewSlot()
	slot.Set(core.File{Name: "f.pdf"}, core.ToolSign, "")

	var wg sync.WaitGroup
	var mu sync.Mutex
	taken := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := slot.Consume(core.ToolSign); ok {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, taken)
}
