package task

import "errors"

var (
	// ErrEmptyText indicates task text that is empty after trimming.
	ErrEmptyText = errors.New("task text is empty")
	// ErrNotFound indicates an operation referencing a nonexistent task id.
	ErrNotFound = errors.New("task not found")
	// ErrImportFormat indicates an import payload that is not a task sequence.
	ErrImportFormat = errors.New("invalid import format")
	// ErrNoTasks indicates an export requested on an empty store.
	ErrNoTasks = errors.New("no tasks to export")
)
