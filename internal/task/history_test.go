package task

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryUndoRedo(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	h := NewHistoryAt(fixedClock(now))

	before := []Task{{ID: "1", Text: "original", CreatedAt: now}}
	after := []Task{{ID: "1", Text: "edited", CreatedAt: now}}

	h.RecordBeforeMutation("edit", before)

	restored, action, ok := h.Undo(after)
	require.True(t, ok)
	assert.Equal(t, "edit", action)
	assert.Equal(t, before, restored)

	redone, _, ok := h.Redo(restored)
	require.True(t, ok)
	assert.Equal(t, after, redone)
}

func TestHistoryEmptyStacksAreNoOps(t *testing.T) {
	h := NewHistory()
	current := []Task{{ID: "1"}}

	_, _, ok := h.Undo(current)
	assert.False(t, ok)
	_, _, ok = h.Redo(current)
	assert.False(t, ok)
	assert.Equal(t, 0, h.UndoDepth())
	assert.Equal(t, 0, h.RedoDepth())
}

func TestHistorySnapshotsAreDeepCopies(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	h := NewHistoryAt(fixedClock(now))

	live := []Task{{ID: "1", Text: "before", CreatedAt: now}}
	h.RecordBeforeMutation("edit", live)

	// Mutating the live collection must not reach the recorded snapshot.
	live[0].Text = "after"

	restored, _, ok := h.Undo(live)
	require.True(t, ok)
	assert.Equal(t, "before", restored[0].Text)
}

func TestHistoryCap(t *testing.T) {
	h := NewHistory()
	for i := 0; i < MaxHistory+1; i++ {
		h.RecordBeforeMutation(fmt.Sprintf("edit-%d", i), []Task{{ID: fmt.Sprint(i)}})
	}
	assert.Equal(t, MaxHistory, h.UndoDepth())

	// Unwind everything: the oldest entry (edit-0) must be gone, so the
	// deepest restorable snapshot is the one recorded by edit-1.
	var last []Task
	for {
		restored, _, ok := h.Undo(nil)
		if !ok {
			break
		}
		last = restored
	}
	require.Len(t, last, 1)
	assert.Equal(t, "1", last[0].ID)
}

func TestHistoryMutationClearsRedo(t *testing.T) {
	h := NewHistory()
	h.RecordBeforeMutation("add", []Task{})
	_, _, ok := h.Undo([]Task{{ID: "1"}})
	require.True(t, ok)
	require.Equal(t, 1, h.RedoDepth())

	h.RecordBeforeMutation("add", []Task{})
	assert.Equal(t, 0, h.RedoDepth())

	_, _, ok = h.Redo(nil)
	assert.False(t, ok)
}
