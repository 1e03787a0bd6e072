package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryFixture(t *testing.T) []Task {
	t.Helper()
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	day := func(n int) time.Time { return base.Add(time.Duration(n) * 24 * time.Hour) }
	duePtr := func(n int) *time.Time {
		d := day(n)
		return &d
	}
	done := day(2)

	return []Task{
		{ID: "1", Text: "write report", Category: CategoryWork, CreatedAt: day(3), DueDate: duePtr(5)},
		{ID: "2", Text: "buy groceries", Category: CategoryShopping, CreatedAt: day(2)},
		{ID: "3", Text: "call dentist", Category: CategoryHealth, CreatedAt: day(1), DueDate: duePtr(1), Completed: true, CompletedAt: &done},
		{ID: "4", Text: "fix bug", Category: CategoryWork, CreatedAt: day(0), DueDate: duePtr(2)},
	}
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestApplyQueryFilters(t *testing.T) {
	tasks := queryFixture(t)

	t.Run("completed filter keeps only completed", func(t *testing.T) {
		got := ApplyQuery(tasks, Query{Filter: FilterCompleted})
		require.Len(t, got, 1)
		assert.True(t, got[0].Completed)
	})

	t.Run("pending filter keeps only pending", func(t *testing.T) {
		got := ApplyQuery(tasks, Query{Filter: FilterPending})
		assert.ElementsMatch(t, []string{"1", "2", "4"}, ids(got))
	})

	t.Run("category filter is exact", func(t *testing.T) {
		got := ApplyQuery(tasks, Query{Filter: FilterAll, Category: CategoryWork})
		assert.ElementsMatch(t, []string{"1", "4"}, ids(got))
	})

	t.Run("all keeps everything", func(t *testing.T) {
		got := ApplyQuery(tasks, DefaultQuery())
		assert.Len(t, got, len(tasks))
	})

	t.Run("result is always a subset of the input", func(t *testing.T) {
		byID := map[string]bool{}
		for _, tk := range tasks {
			byID[tk.ID] = true
		}
		for _, q := range []Query{
			{Filter: FilterCompleted},
			{Filter: FilterPending, Category: CategoryWork},
			{Search: "b", Filter: FilterAll},
		} {
			for _, tk := range ApplyQuery(tasks, q) {
				assert.True(t, byID[tk.ID])
			}
		}
	})
}

func TestApplyQuerySearch(t *testing.T) {
	tasks := queryFixture(t)

	t.Run("matches text case-insensitively", func(t *testing.T) {
		got := ApplyQuery(tasks, Query{Search: "REPORT", Filter: FilterAll})
		assert.Equal(t, []string{"1"}, ids(got))
	})

	t.Run("matches category", func(t *testing.T) {
		got := ApplyQuery(tasks, Query{Search: "work", Filter: FilterAll})
		assert.ElementsMatch(t, []string{"1", "4"}, ids(got))
	})

	t.Run("blank search keeps everything", func(t *testing.T) {
		got := ApplyQuery(tasks, Query{Search: "   ", Filter: FilterAll})
		assert.Len(t, got, len(tasks))
	})
}

func TestApplyQuerySort(t *testing.T) {
	tasks := queryFixture(t)

	t.Run("newest is default", func(t *testing.T) {
		got := ApplyQuery(tasks, Query{Filter: FilterAll})
		assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
	})

	t.Run("oldest", func(t *testing.T) {
		got := ApplyQuery(tasks, Query{Filter: FilterAll, Sort: SortOldest})
		assert.Equal(t, []string{"4", "3", "2", "1"}, ids(got))
	})

	t.Run("due-date puts dateless tasks last", func(t *testing.T) {
		got := ApplyQuery(tasks, Query{Filter: FilterAll, Sort: SortDueDate})
		require.Equal(t, []string{"3", "4", "1", "2"}, ids(got))
		assert.Nil(t, got[len(got)-1].DueDate)
	})

	t.Run("category", func(t *testing.T) {
		got := ApplyQuery(tasks, Query{Filter: FilterAll, Sort: SortCategory})
		assert.Equal(t, []string{"3", "2", "1", "4"}, ids(got))
	})

	t.Run("alphabetical", func(t *testing.T) {
		got := ApplyQuery(tasks, Query{Filter: FilterAll, Sort: SortAlphabetical})
		assert.Equal(t, []string{"2", "3", "4", "1"}, ids(got))
	})
}

func TestApplyQueryDoesNotMutateInput(t *testing.T) {
	tasks := queryFixture(t)
	want := ids(tasks)

	ApplyQuery(tasks, Query{Filter: FilterAll, Sort: SortAlphabetical})
	assert.Equal(t, want, ids(tasks))

	got := ApplyQuery(tasks, Query{Filter: FilterAll})
	got[0].Text = "mutated"
	assert.Equal(t, "write report", tasks[0].Text)
}
