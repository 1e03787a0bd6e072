package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"taskdeck/internal/task"
)

// ImportTasks appends task records parsed from a JSON payload. The payload
// must decode to an array of task-like objects; anything else fails with
// task.ErrImportFormat and the store is untouched. Records with blank text
// are skipped; missing or colliding ids get fresh ones; priorities are
// clamped and the completed/completedAt invariant is repaired. Imported
// records go to the back of the sequence so existing tasks are never
// displaced.
func (a *App) ImportTasks(payload []byte) (Result, error) {
	var incoming []task.Task
	if err := json.Unmarshal(payload, &incoming); err != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
		err = fmt.Errorf("%w: %v", task.ErrImportFormat, err)
		return a.failure(err), err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	seen := map[string]bool{}
	accepted := make([]task.Task, 0, len(incoming))
	for _, t := range incoming {
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			continue
		}
		if t.Category == "" {
			t.Category = task.CategoryPersonal
		}
		if t.ID == "" || seen[t.ID] || a.store.Has(t.ID) {
			t.ID = uuid.NewString()
		}
		seen[t.ID] = true
		if t.CreatedAt.IsZero() {
			t.CreatedAt = a.now()
		}
		if t.Priority < 1 {
			t.Priority = task.Priority(t.Category, t.DueDate, t.CreatedAt)
		}
		if t.Priority > 5 {
			t.Priority = 5
		}
		if t.Completed && t.CompletedAt == nil {
			at := a.now()
			t.CompletedAt = &at
		}
		if !t.Completed {
			t.CompletedAt = nil
		}
		accepted = append(accepted, t)
	}

	if len(accepted) == 0 {
		return Result{View: a.viewLocked(), NoOp: true, Note: a.note("Nothing to import", SeverityInfo)}, nil
	}

	a.history.RecordBeforeMutation("import", a.store.All())
	a.store.Append(accepted)
	note := a.flushAfterMutation(fmt.Sprintf("Imported %d tasks", len(accepted)), SeveritySuccess)
	return Result{View: a.viewLocked(), Note: note}, nil
}
