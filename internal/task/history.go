package task

import "time"

// MaxHistory caps the undo stack; recording beyond it evicts the oldest
// snapshot.
const MaxHistory = 50

// HistoryEntry is a full deep copy of the task collection taken before a
// mutation, tagged with the action that caused it.
type HistoryEntry struct {
	Action string
	Tasks  []Task
	At     time.Time
}

// History keeps two LIFO stacks of collection snapshots. Snapshots are deep
// copies; the live collection is mutated in place after they are taken.
type History struct {
	undo []HistoryEntry
	redo []HistoryEntry
	now  func() time.Time
}

// NewHistory creates an empty history using the wall clock.
func NewHistory() *History {
	return &History{now: time.Now}
}

// NewHistoryAt creates an empty history with an injected clock, for tests.
func NewHistoryAt(now func() time.Time) *History {
	return &History{now: now}
}

// RecordBeforeMutation snapshots the pre-mutation collection onto the undo
// stack and clears the redo stack. Must be called before the mutation is
// applied.
func (h *History) RecordBeforeMutation(action string, current []Task) {
	h.undo = append(h.undo, HistoryEntry{
		Action: action,
		Tasks:  CloneTasks(current),
		At:     h.now(),
	})
	if len(h.undo) > MaxHistory {
		h.undo = h.undo[len(h.undo)-MaxHistory:]
	}
	h.redo = nil
}

// Undo pops the most recent snapshot, pushing the current live collection
// onto the redo stack. ok is false when there is nothing to undo; the
// caller treats that as an observable no-op, not an error.
func (h *History) Undo(current []Task) (restored []Task, action string, ok bool) {
	if len(h.undo) == 0 {
		return nil, "", false
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, HistoryEntry{
		Action: "restore",
		Tasks:  CloneTasks(current),
		At:     h.now(),
	})
	return top.Tasks, top.Action, true
}

// Redo is the inverse of Undo: it pops from the redo stack and pushes the
// current live collection back onto undo.
func (h *History) Redo(current []Task) (restored []Task, action string, ok bool) {
	if len(h.redo) == 0 {
		return nil, "", false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, HistoryEntry{
		Action: "undo",
		Tasks:  CloneTasks(current),
		At:     h.now(),
	})
	return top.Tasks, top.Action, true
}

// UndoDepth returns the number of undoable snapshots.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of redoable snapshots.
func (h *History) RedoDepth() int { return len(h.redo) }
