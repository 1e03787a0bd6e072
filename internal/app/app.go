// Package app wires the task store, history, query state, and persistence
// gateway into the command set the front ends drive. Every mutating command
// follows the same protocol: snapshot history, mutate the store, flush to
// storage, report the refreshed view.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"taskdeck/internal/storage"
	"taskdeck/internal/task"
)

// Notification severities.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Notification is user-visible feedback about a command's outcome. The core
// produces text and severity; front ends decide how to render them.
type Notification struct {
	Message  string
	Severity string
}

// Result is what a command hands back to the presentation layer: the
// refreshed view, a notification, and whether the command was a no-op.
type Result struct {
	View []task.Task
	Note Notification
	NoOp bool
}

// App owns the in-memory application state. The mutex exists because the
// auto-save ticker runs on its own goroutine; all command handlers otherwise
// arrive from a single front-end loop.
type App struct {
	mu       sync.Mutex
	store    *task.Store
	history  *task.History
	gateway  *storage.Gateway
	settings storage.Settings
	query    task.Query

	debounce *Debouncer
	now      func() time.Time

	autosaveInterval time.Duration
	autosaveStop     chan struct{}
	autosaveDone     chan struct{}
}

// Options tunes an App. Zero values fall back to sane defaults.
type Options struct {
	AutoSaveInterval time.Duration
	Now              func() time.Time
	Filter           string
	Sort             string
}

// New builds an App over an opened gateway, loading persisted tasks and
// settings.
func New(gw *storage.Gateway, opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AutoSaveInterval <= 0 {
		opts.AutoSaveInterval = 30 * time.Second
	}

	a := &App{
		store:            task.NewStoreAt(opts.Now),
		history:          task.NewHistoryAt(opts.Now),
		gateway:          gw,
		settings:         gw.LoadSettings(),
		query:            task.DefaultQuery(),
		debounce:         NewDebouncer(),
		now:              opts.Now,
		autosaveInterval: opts.AutoSaveInterval,
	}
	if opts.Filter != "" {
		a.query.Filter = opts.Filter
	}
	if opts.Sort != "" {
		a.query.Sort = opts.Sort
	}
	a.store.Replace(gw.LoadTasks())
	return a
}

// Close stops the auto-save ticker, cancels pending debounced work, and
// flushes once more.
func (a *App) Close() {
	a.debounce.Stop()
	a.StopAutoSave()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.flushLocked()
}

// Settings returns the current preferences record.
func (a *App) Settings() storage.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// Query returns the current view criteria.
func (a *App) Query() task.Query {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.query
}

// HasVisited reports the first-run flag, setting it as a side effect so the
// welcome only ever shows once.
func (a *App) HasVisited() bool {
	visited := a.gateway.HasVisited()
	if !visited {
		a.gateway.MarkVisited()
	}
	return visited
}

// View recomputes the current derived view.
func (a *App) View() []task.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.viewLocked()
}

// Tasks returns a snapshot of the full collection in store order.
func (a *App) Tasks() []task.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.All()
}

// Add creates a task. Empty text fails with task.ErrEmptyText and leaves
// the store untouched.
func (a *App) Add(text, category string, due *time.Time) (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	before := a.store.All()
	t, err := a.store.Add(text, category, due)
	if err != nil {
		return a.failure(err), err
	}
	a.history.RecordBeforeMutation("add", before)
	note := a.flushAfterMutation(fmt.Sprintf("Added %q", t.Text), SeveritySuccess)
	return Result{View: a.viewLocked(), Note: note}, nil
}

// Edit replaces a task's text. Unchanged text is reported as a no-op and
// recorded nowhere.
func (a *App) Edit(id, text string) (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	before := a.store.All()
	t, changed, err := a.store.Edit(id, text)
	if err != nil {
		return a.failure(err), err
	}
	if !changed {
		return Result{View: a.viewLocked(), NoOp: true, Note: a.note("No changes", SeverityInfo)}, nil
	}
	a.history.RecordBeforeMutation("edit", before)
	note := a.flushAfterMutation(fmt.Sprintf("Updated %q", t.Text), SeveritySuccess)
	return Result{View: a.viewLocked(), Note: note}, nil
}

// ToggleCompleted flips a task's completion state.
func (a *App) ToggleCompleted(id string) (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	before := a.store.All()
	t, err := a.store.ToggleCompleted(id)
	if err != nil {
		return a.failure(err), err
	}
	a.history.RecordBeforeMutation("toggle", before)
	msg := fmt.Sprintf("Completed %q", t.Text)
	if !t.Completed {
		msg = fmt.Sprintf("Reopened %q", t.Text)
	}
	note := a.flushAfterMutation(msg, SeveritySuccess)
	return Result{View: a.viewLocked(), Note: note}, nil
}

// Remove deletes a task. Front ends confirm before calling; the core only
// sees the confirmed command.
func (a *App) Remove(id string) (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	before := a.store.All()
	if err := a.store.Remove(id); err != nil {
		return a.failure(err), err
	}
	a.history.RecordBeforeMutation("delete", before)
	note := a.flushAfterMutation("Task deleted", SeveritySuccess)
	return Result{View: a.viewLocked(), Note: note}, nil
}

// ClearCompleted removes every completed task. Removing nothing is a valid
// no-op command.
func (a *App) ClearCompleted() Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	before := a.store.All()
	removed := a.store.ClearCompleted()
	if removed == 0 {
		return Result{View: a.viewLocked(), NoOp: true, Note: a.note("No completed tasks", SeverityInfo)}
	}
	a.history.RecordBeforeMutation("clear-completed", before)
	note := a.flushAfterMutation(fmt.Sprintf("Cleared %d completed", removed), SeveritySuccess)
	return Result{View: a.viewLocked(), Note: note}
}

// ClearAll empties the collection.
func (a *App) ClearAll() Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	before := a.store.All()
	removed := a.store.ClearAll()
	if removed == 0 {
		return Result{View: a.viewLocked(), NoOp: true, Note: a.note("Nothing to clear", SeverityInfo)}
	}
	a.history.RecordBeforeMutation("clear-all", before)
	note := a.flushAfterMutation(fmt.Sprintf("Cleared %d tasks", removed), SeveritySuccess)
	return Result{View: a.viewLocked(), Note: note}
}

// Undo restores the collection to its most recent snapshot. An empty undo
// stack is an observable no-op, not an error.
func (a *App) Undo() Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	restored, action, ok := a.history.Undo(a.store.All())
	if !ok {
		return Result{View: a.viewLocked(), NoOp: true, Note: a.note("Nothing to undo", SeverityInfo)}
	}
	a.store.Replace(restored)
	note := a.flushAfterMutation(fmt.Sprintf("Undid %s", action), SeveritySuccess)
	return Result{View: a.viewLocked(), Note: note}
}

// Redo reverses the most recent undo.
func (a *App) Redo() Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	restored, _, ok := a.history.Redo(a.store.All())
	if !ok {
		return Result{View: a.viewLocked(), NoOp: true, Note: a.note("Nothing to redo", SeverityInfo)}
	}
	a.store.Replace(restored)
	note := a.flushAfterMutation("Redone", SeveritySuccess)
	return Result{View: a.viewLocked(), Note: note}
}

// SetFilter sets the status filter and returns the refreshed view.
func (a *App) SetFilter(filter string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.query.Filter = filter
	return Result{View: a.viewLocked()}
}

// SetCategory sets the category filter ("all" disables it).
func (a *App) SetCategory(category string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.query.Category = category
	return Result{View: a.viewLocked()}
}

// SetSort sets the sort key.
func (a *App) SetSort(sort string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.query.Sort = sort
	return Result{View: a.viewLocked()}
}

// SetSearchQuery applies a search term immediately.
func (a *App) SetSearchQuery(q string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.query.Search = q
	return Result{View: a.viewLocked()}
}

// SetSearchQueryDebounced schedules a search term to apply after the
// debounce window; a newer call replaces any pending one, so only the last
// keystroke's query survives. deliver receives the refreshed view on the
// debouncer's goroutine.
func (a *App) SetSearchQueryDebounced(q string, window time.Duration, deliver func([]task.Task)) {
	a.debounce.Schedule(window, func() {
		res := a.SetSearchQuery(q)
		if deliver != nil {
			deliver(res.View)
		}
	})
}

// ToggleTheme flips the theme, persisting both the settings blob and the
// independent theme key.
func (a *App) ToggleTheme() Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.settings.Theme == storage.ThemeDark {
		a.settings.Theme = storage.ThemeLight
	} else {
		a.settings.Theme = storage.ThemeDark
	}
	note := a.note(fmt.Sprintf("Theme: %s", a.settings.Theme), SeverityInfo)
	if err := a.gateway.SaveSettings(a.settings); err != nil {
		note = Notification{Message: persistWarning(err), Severity: SeverityWarning}
	}
	if err := a.gateway.SaveTheme(a.settings.Theme); err != nil {
		note = Notification{Message: persistWarning(err), Severity: SeverityWarning}
	}
	return Result{View: a.viewLocked(), Note: note}
}

// UpdateSettings replaces the preferences record and persists it.
func (a *App) UpdateSettings(s storage.Settings) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.settings = s
	note := a.note("Settings saved", SeveritySuccess)
	if err := a.gateway.SaveSettings(a.settings); err != nil {
		note = Notification{Message: persistWarning(err), Severity: SeverityWarning}
	}
	return Result{View: a.viewLocked(), Note: note}
}

// StartAutoSave launches the periodic flush ticker when the setting is
// enabled. Safe to call once after New.
func (a *App) StartAutoSave() {
	a.mu.Lock()
	enabled := a.settings.AutoSave
	interval := a.autosaveInterval
	a.mu.Unlock()
	if !enabled || a.autosaveStop != nil {
		return
	}

	a.autosaveStop = make(chan struct{})
	a.autosaveDone = make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(a.autosaveDone)
		for {
			select {
			case <-ticker.C:
				a.mu.Lock()
				a.flushLocked()
				a.mu.Unlock()
			case <-a.autosaveStop:
				return
			}
		}
	}()
}

// StopAutoSave halts the ticker goroutine if it is running.
func (a *App) StopAutoSave() {
	if a.autosaveStop == nil {
		return
	}
	close(a.autosaveStop)
	<-a.autosaveDone
	a.autosaveStop = nil
	a.autosaveDone = nil
}

func (a *App) viewLocked() []task.Task {
	return task.ApplyQuery(a.store.All(), a.query)
}

// flushAfterMutation persists the collection and folds a write failure into
// the returned notification. The in-memory store stays authoritative.
func (a *App) flushAfterMutation(okMsg, okSeverity string) Notification {
	if err := a.flushLocked(); err != nil {
		return Notification{Message: persistWarning(err), Severity: SeverityWarning}
	}
	return a.note(okMsg, okSeverity)
}

func (a *App) flushLocked() error {
	return a.gateway.SaveTasks(a.store.All())
}

func (a *App) failure(err error) Result {
	return Result{
		View: a.viewLocked(),
		Note: Notification{Message: userMessage(err), Severity: SeverityError},
	}
}

// note suppresses routine feedback when notifications are disabled; errors
// and warnings always get through.
func (a *App) note(msg, severity string) Notification {
	if !a.settings.Notifications && severity != SeverityError && severity != SeverityWarning {
		return Notification{}
	}
	return Notification{Message: msg, Severity: severity}
}

func persistWarning(err error) string {
	return fmt.Sprintf("Saved in memory only: %v", err)
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, task.ErrEmptyText):
		return "Task text cannot be empty"
	case errors.Is(err, task.ErrNotFound):
		return "Task not found"
	default:
		return err.Error()
	}
}
