// Package task implements the task-state engine: the task record and its
// ordered in-memory store, the priority calculator, the filter/sort/search
// pipeline, and the snapshot-based undo/redo history.
package task

import "time"

// Well-known categories. The set is open: any non-empty string is accepted,
// these are just the values the front ends offer.
const (
	CategoryPersonal = "Personal"
	CategoryWork     = "Work"
	CategoryUrgent   = "Urgent"
	CategoryShopping = "Shopping"
	CategoryHealth   = "Health"
)

// Categories returns the well-known category names in display order.
func Categories() []string {
	return []string{CategoryPersonal, CategoryWork, CategoryUrgent, CategoryShopping, CategoryHealth}
}

// Task is a single user-tracked to-do item.
//
// ID is assigned once at creation and never changes. Priority is computed
// once at creation from category and due date and is not recomputed as the
// due date approaches; views derive overdue status from DueDate directly.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Priority    int        `json:"priority"`
}

// Overdue reports whether the task is past due and still pending at now.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && !t.Completed && t.DueDate.Before(now)
}

// Clone returns a deep copy. The pointer fields get fresh allocations so a
// snapshot survives in-place mutation of the original.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.CompletedAt != nil {
		d := *t.CompletedAt
		c.CompletedAt = &d
	}
	return c
}

// CloneTasks deep-copies a task sequence.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
