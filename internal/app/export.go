package app

import (
	"fmt"
	"sort"
	"strings"

	"taskdeck/internal/task"
)

// ExportReport renders the whole collection as a plain-text report grouped
// by category, with completion and overdue markers and aggregate stats.
// An empty store fails with task.ErrNoTasks so callers skip writing a file.
func (a *App) ExportReport() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tasks := a.store.All()
	if len(tasks) == 0 {
		return "", task.ErrNoTasks
	}
	now := a.now()

	byCategory := map[string][]task.Task{}
	for _, t := range tasks {
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var total, completed, overdue int
	var b strings.Builder
	b.WriteString("Task Report\n")
	b.WriteString("Generated: " + now.Format("2006-01-02 15:04") + "\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	for _, c := range categories {
		b.WriteString(c + "\n")
		b.WriteString(strings.Repeat("-", len(c)) + "\n")
		for _, t := range byCategory[c] {
			total++
			mark := "[ ]"
			if t.Completed {
				completed++
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %s", mark, t.Text)
			if t.DueDate != nil {
				line += " (due " + t.DueDate.Format("2006-01-02") + ")"
			}
			if t.Overdue(now) {
				overdue++
				line += " OVERDUE"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	pending := total - completed
	pct := 0
	if total > 0 {
		pct = completed * 100 / total
	}
	b.WriteString(strings.Repeat("=", 40) + "\n")
	b.WriteString(fmt.Sprintf("Total: %d  Completed: %d  Pending: %d  Overdue: %d\n", total, completed, pending, overdue))
	b.WriteString(fmt.Sprintf("Completion: %d%%\n", pct))

	return b.String(), nil
}
