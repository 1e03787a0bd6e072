package app

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskdeck/internal/task"
)

func TestDebouncerOnlyLastCallbackFires(t *testing.T) {
	d := NewDebouncer()
	var got atomic.Int32

	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Schedule(30*time.Millisecond, func() { got.Store(v) })
	}

	assert.Eventually(t, func() bool { return got.Load() == 5 }, time.Second, 5*time.Millisecond)

	// Earlier callbacks stay cancelled.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(5), got.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer()
	var fired atomic.Bool

	d.Schedule(20*time.Millisecond, func() { fired.Store(true) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestDebouncerIdleStopIsSafe(t *testing.T) {
	d := NewDebouncer()
	d.Stop()
	d.Stop()
}

func TestSetSearchQueryDebouncedLastWriteWins(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.Add("apple pie", "", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Add("banana bread", "", nil); err != nil {
		t.Fatal(err)
	}

	views := make(chan int, 8)
	// Rapid keystrokes: only the final query may apply.
	for _, q := range []string{"a", "ap", "app", "apple"} {
		a.SetSearchQueryDebounced(q, 30*time.Millisecond, func(view []task.Task) {
			views <- len(view)
		})
	}

	select {
	case n := <-views:
		assert.Equal(t, 1, n)
		assert.Equal(t, "apple", a.Query().Search)
	case <-time.After(time.Second):
		t.Fatal("debounced search never delivered")
	}

	// No earlier query sneaks in afterwards.
	select {
	case <-views:
		t.Fatal("stale debounced query delivered")
	case <-time.After(60 * time.Millisecond):
	}
}
