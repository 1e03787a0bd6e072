package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store holds the canonical ordered task collection. New tasks are prepended
// so the sequence reads newest first. The store knows nothing about history
// or persistence; callers wrap mutations in whatever protocol they need.
//
// Store is not safe for concurrent use; the owning dispatcher serializes
// access.
type Store struct {
	tasks []Task
	now   func() time.Time
}

// NewStore creates an empty store using the wall clock.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// NewStoreAt creates an empty store with an injected clock, for tests.
func NewStoreAt(now func() time.Time) *Store {
	return &Store{now: now}
}

// Replace swaps the entire collection, e.g. after loading from storage or
// restoring a history snapshot. The store takes ownership of its own copy.
func (s *Store) Replace(tasks []Task) {
	s.tasks = CloneTasks(tasks)
}

// Add creates a task from trimmed text, assigns a fresh id, computes its
// priority, and prepends it. Empty text fails with ErrEmptyText.
func (s *Store) Add(text, category string, due *time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, fmt.Errorf("add: %w", ErrEmptyText)
	}
	if category == "" {
		category = CategoryPersonal
	}

	now := s.now()
	t := Task{
		ID:        uuid.NewString(),
		Text:      text,
		Category:  category,
		CreatedAt: now,
		Priority:  Priority(category, due, now),
	}
	if due != nil {
		d := *due
		t.DueDate = &d
	}

	s.tasks = append([]Task{t}, s.tasks...)
	return t.Clone(), nil
}

// Edit replaces a task's text. Unchanged text is a no-op and returns the
// task as-is; the caller can tell from Changed whether the mutation is
// history-worthy.
func (s *Store) Edit(id, text string) (t Task, changed bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false, fmt.Errorf("edit: %w", ErrEmptyText)
	}
	i := s.index(id)
	if i < 0 {
		return Task{}, false, fmt.Errorf("edit %s: %w", id, ErrNotFound)
	}
	if s.tasks[i].Text == text {
		return s.tasks[i].Clone(), false, nil
	}
	s.tasks[i].Text = text
	return s.tasks[i].Clone(), true, nil
}

// ToggleCompleted flips a task's completion state, stamping or clearing
// CompletedAt to keep it non-nil exactly when the task is completed.
func (s *Store) ToggleCompleted(id string) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("toggle %s: %w", id, ErrNotFound)
	}
	t := &s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		now := s.now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return t.Clone(), nil
}

// Remove deletes a task by id.
func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// ClearCompleted removes every completed task and reports how many went.
// Zero removals is a valid outcome, not an error.
func (s *Store) ClearCompleted() int {
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	return removed
}

// ClearAll empties the collection and reports how many tasks it held.
func (s *Store) ClearAll() int {
	n := len(s.tasks)
	s.tasks = nil
	return n
}

// Append adds already-constructed tasks to the back of the sequence,
// preserving their order. Used by import, which must not displace or
// overwrite existing tasks.
func (s *Store) Append(tasks []Task) {
	s.tasks = append(s.tasks, CloneTasks(tasks)...)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return s.tasks[i].Clone(), nil
}

// Has reports whether a task with the given id exists.
func (s *Store) Has(id string) bool {
	return s.index(id) >= 0
}

// All returns a deep snapshot of the collection in store order.
func (s *Store) All() []Task {
	return CloneTasks(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
