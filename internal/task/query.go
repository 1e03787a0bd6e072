package task

import (
	"sort"
	"strings"
)

// Status filter values.
const (
	FilterAll       = "all"
	FilterPending   = "pending"
	FilterCompleted = "completed"
)

// Sort keys.
const (
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortDueDate      = "due-date"
	SortCategory     = "category"
	SortAlphabetical = "alphabetical"
)

// Query describes a derived view of the task collection: a search term, a
// status filter, a category filter, and a sort key. The zero value plus
// DefaultQuery's fields is "show everything, newest first".
type Query struct {
	Search   string
	Filter   string
	Category string
	Sort     string
}

// DefaultQuery is the view shown on startup.
func DefaultQuery() Query {
	return Query{Filter: FilterAll, Category: "all", Sort: SortNewest}
}

// ApplyQuery computes the view for q over tasks. It never mutates its input;
// the result is a fresh slice recomputed on every call.
func ApplyQuery(tasks []Task, q Query) []Task {
	out := make([]Task, 0, len(tasks))

	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, t := range tasks {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Text), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) {
			continue
		}
		switch q.Filter {
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterPending:
			if t.Completed {
				continue
			}
		}
		if q.Category != "" && q.Category != "all" && t.Category != q.Category {
			continue
		}
		out = append(out, t.Clone())
	}

	sortTasks(out, q.Sort)
	return out
}

func sortTasks(tasks []Task, key string) {
	switch key {
	case SortOldest:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		})
	case SortDueDate:
		// Tasks without a due date sort after every task that has one and
		// equal among themselves.
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	case SortCategory:
		sort.SliceStable(tasks, func(i, j int) bool {
			return strings.ToLower(tasks[i].Category) < strings.ToLower(tasks[j].Category)
		})
	case SortAlphabetical:
		sort.SliceStable(tasks, func(i, j int) bool {
			return strings.ToLower(tasks[i].Text) < strings.ToLower(tasks[j].Text)
		})
	default: // SortNewest
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

// ValidFilters returns the accepted status filter values.
func ValidFilters() []string {
	return []string{FilterAll, FilterPending, FilterCompleted}
}

// ValidSorts returns the accepted sort keys.
func ValidSorts() []string {
	return []string{SortNewest, SortOldest, SortDueDate, SortCategory, SortAlphabetical}
}
