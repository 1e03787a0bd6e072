package task

import (
	"math"
	"time"
)

// Priority derives a task's urgency score from its category and due date at
// a reference instant. Base 1; Urgent +3, Work +2; a present due date adds
// +4 when overdue, +3 when due within a day, +2 when due within three days.
// The result is clamped to 5.
func Priority(category string, due *time.Time, now time.Time) int {
	p := 1

	switch category {
	case CategoryUrgent:
		p += 3
	case CategoryWork:
		p += 2
	}

	if due != nil {
		days := daysUntil(*due, now)
		switch {
		case days < 0:
			p += 4
		case days <= 1:
			p += 3
		case days <= 3:
			p += 2
		}
	}

	if p > 5 {
		p = 5
	}
	return p
}

// daysUntil is the whole-day ceiling difference between due and now.
// Negative means overdue.
func daysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}
