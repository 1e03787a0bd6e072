// Package ui is the terminal presentation adapter. It renders the view the
// core computes and turns keystrokes into core commands; all task state
// lives behind the app package.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/app"
	"taskdeck/internal/config"
	"taskdeck/internal/storage"
	"taskdeck/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeSearch
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmClearDone
	confirmClearAll
)

// addState walks the add form one field at a time: text, category, due date.
type addState struct {
	text     string
	category string
	due      string
	index    int
}

var addFields = []string{"task text", "category", "due date (YYYY-MM-DD, empty for none)"}

// searchViewMsg carries a debounced search result back into the update loop.
type searchViewMsg []task.Task

type Model struct {
	app *app.App
	cfg config.Config

	tasks   []task.Task
	cursor  int
	mode    mode
	input   textinput.Model
	status  string
	statSev string

	confirm    confirmKind
	pendingDel *task.Task

	editID string
	add    *addState

	searchCh chan []task.Task
	styles   styles
	width    int
}

// Run starts the interactive program.
func Run(a *app.App, cfg config.Config, firstLaunch bool) error {
	ti := textinput.New()
	ti.Placeholder = "Task text"
	ti.CharLimit = 256
	ti.Width = 40

	status := "Press 'a' to add, space to toggle, 'd' to delete."
	if firstLaunch {
		status = "Welcome to taskdeck. Press 'a' to add your first task."
	}

	m := Model{
		app:      a,
		cfg:      cfg,
		tasks:    a.View(),
		status:   status,
		statSev:  app.SeverityInfo,
		input:    ti,
		mode:     modeList,
		searchCh: make(chan []task.Task, 1),
		styles:   newStyles(a.Settings().Theme),
	}
	m.cursor = clampCursor(0, len(m.tasks))

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return waitForSearch(m.searchCh)
}

// waitForSearch blocks on the debounce channel and resubscribes after every
// delivery, so only the surviving query's view reaches the update loop.
func waitForSearch(ch chan []task.Task) tea.Cmd {
	return func() tea.Msg {
		return searchViewMsg(<-ch)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchViewMsg:
		m.tasks = msg
		m.cursor = clampCursor(m.cursor, len(m.tasks))
		return m, waitForSearch(m.searchCh)
	case tea.KeyMsg:
		if m.confirm != confirmNone {
			return m.updateConfirm(msg.String())
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg.String(), msg)
		case modeEdit:
			return m.updateEditMode(msg.String(), msg)
		case modeSearch:
			return m.updateSearchMode(msg.String(), msg)
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m *Model) applyResult(res app.Result) {
	m.tasks = res.View
	m.cursor = clampCursor(m.cursor, len(m.tasks))
	if res.Note.Message != "" {
		m.status = res.Note.Message
		m.statSev = res.Note.Severity
	}
}

func (m *Model) setStatus(msg, severity string) {
	m.status = msg
	m.statSev = severity
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		m.app.Close()
		return m, tea.Quit
	case k.Down:
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case k.Up:
		if m.cursor > 0 {
			m.cursor--
		}
	case k.Add:
		m.mode = modeAdd
		m.add = &addState{category: defaultAddCategory(m.app.Query())}
		m.input.SetValue("")
		m.input.Placeholder = addFields[0]
		m.input.Focus()
		m.setStatus("Add: enter task text, Enter to advance, Esc to cancel", app.SeverityInfo)
	case k.Toggle:
		if t, ok := m.current(); ok {
			res, _ := m.app.ToggleCompleted(t.ID)
			m.applyResult(res)
		}
	case k.Delete:
		if t, ok := m.current(); ok {
			m.confirm = confirmDelete
			m.pendingDel = &t
			m.setStatus(fmt.Sprintf("Delete %q? y/n", t.Text), app.SeverityWarning)
		}
	case k.Edit:
		if t, ok := m.current(); ok {
			m.mode = modeEdit
			m.editID = t.ID
			m.input.SetValue(t.Text)
			m.input.Placeholder = "Task text"
			m.input.Focus()
			m.setStatus("Edit: Enter to save, Esc to cancel", app.SeverityInfo)
		}
	case k.Search:
		m.mode = modeSearch
		m.input.SetValue(m.app.Query().Search)
		m.input.Placeholder = "Search"
		m.input.Focus()
		m.setStatus("Search: type to filter, Enter or Esc to leave", app.SeverityInfo)
	case k.Undo:
		m.applyResult(m.app.Undo())
	case k.Redo:
		m.applyResult(m.app.Redo())
	case k.CycleFilter:
		q := m.app.Query()
		m.applyResult(m.app.SetFilter(cycle(task.ValidFilters(), q.Filter)))
		m.setStatus("Filter: "+m.app.Query().Filter, app.SeverityInfo)
	case k.CycleSort:
		q := m.app.Query()
		m.applyResult(m.app.SetSort(cycle(task.ValidSorts(), q.Sort)))
		m.setStatus("Sort: "+m.app.Query().Sort, app.SeverityInfo)
	case k.CycleCat:
		q := m.app.Query()
		cats := append([]string{"all"}, task.Categories()...)
		m.applyResult(m.app.SetCategory(cycle(cats, q.Category)))
		m.setStatus("Category: "+m.app.Query().Category, app.SeverityInfo)
	case k.ClearDone:
		m.confirm = confirmClearDone
		m.setStatus("Clear all completed tasks? y/n", app.SeverityWarning)
	case k.ClearAll:
		m.confirm = confirmClearAll
		m.setStatus("Clear ALL tasks? y/n", app.SeverityWarning)
	case k.ToggleTheme:
		res := m.app.ToggleTheme()
		m.styles = newStyles(m.app.Settings().Theme)
		m.applyResult(res)
	case k.ToggleView:
		s := m.app.Settings()
		if s.ViewMode == storage.ViewList {
			s.ViewMode = storage.ViewGrid
		} else {
			s.ViewMode = storage.ViewList
		}
		m.applyResult(m.app.UpdateSettings(s))
		m.setStatus("View: "+s.ViewMode, app.SeverityInfo)
	case k.ExportReport:
		m.exportReport()
	}
	return m, nil
}

func (m *Model) exportReport() {
	report, err := m.app.ExportReport()
	if err != nil {
		m.setStatus("No tasks to export", app.SeverityInfo)
		return
	}
	if err := os.WriteFile(m.cfg.ExportPath, []byte(report), 0o644); err != nil {
		m.setStatus(fmt.Sprintf("export failed: %v", err), app.SeverityError)
		return
	}
	m.setStatus("Exported to "+m.cfg.ExportPath, app.SeveritySuccess)
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.add = nil
		m.input.Blur()
		m.setStatus("Cancelled", app.SeverityInfo)
		return m, nil
	case m.cfg.Keys.Confirm:
		if m.add == nil {
			return m, nil
		}
		m.add.set(m.input.Value())
		if m.add.index < len(addFields)-1 {
			m.add.index++
			m.input.SetValue(m.add.get())
			m.input.Placeholder = addFields[m.add.index]
			m.setStatus(fmt.Sprintf("Add: %s (%d/%d)", addFields[m.add.index], m.add.index+1, len(addFields)), app.SeverityInfo)
			return m, nil
		}
		return m.finishAdd()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) finishAdd() (tea.Model, tea.Cmd) {
	due, err := parseDate(m.add.due)
	if err != nil {
		m.setStatus("due date invalid, expected YYYY-MM-DD", app.SeverityError)
		return m, nil
	}
	res, err := m.app.Add(m.add.text, strings.TrimSpace(m.add.category), due)
	m.applyResult(res)
	if err == nil {
		m.mode = modeList
		m.add = nil
		m.input.SetValue("")
		m.input.Blur()
		m.cursor = 0
	}
	return m, nil
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.editID = ""
		m.input.Blur()
		m.setStatus("Edit cancelled", app.SeverityInfo)
		return m, nil
	case m.cfg.Keys.Confirm:
		res, err := m.app.Edit(m.editID, m.input.Value())
		m.applyResult(res)
		if err == nil {
			m.mode = modeList
			m.editID = ""
			m.input.SetValue("")
			m.input.Blur()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, m.cfg.Keys.Confirm:
		m.mode = modeList
		m.input.Blur()
		q := m.app.Query().Search
		if q == "" {
			m.setStatus("Search cleared", app.SeverityInfo)
		} else {
			m.setStatus(fmt.Sprintf("Searching %q", q), app.SeverityInfo)
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		window := time.Duration(m.cfg.SearchDebounceMS) * time.Millisecond
		ch := m.searchCh
		m.app.SetSearchQueryDebounced(m.input.Value(), window, func(view []task.Task) {
			ch <- view
		})
		return m, cmd
	}
}

func (m Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.confirm = confirmNone
		m.pendingDel = nil
		m.setStatus("Cancelled", app.SeverityInfo)
		return m, nil
	case "y", "Y":
		kind := m.confirm
		m.confirm = confirmNone
		switch kind {
		case confirmDelete:
			if m.pendingDel != nil {
				res, _ := m.app.Remove(m.pendingDel.ID)
				m.applyResult(res)
			}
			m.pendingDel = nil
		case confirmClearDone:
			m.applyResult(m.app.ClearCompleted())
		case confirmClearAll:
			m.applyResult(m.app.ClearAll())
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	q := m.app.Query()
	title := fmt.Sprintf("taskdeck — %s / %s / %s", q.Filter, q.Category, q.Sort)
	if q.Search != "" {
		title += fmt.Sprintf(" / %q", q.Search)
	}
	b.WriteString(m.styles.title.Render(title))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(m.styles.muted.Render("No tasks match. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		now := time.Now()
		grid := m.app.Settings().ViewMode == storage.ViewGrid
		for i, t := range m.tasks {
			cursor := " "
			if m.cursor == i && m.mode == modeList {
				cursor = ">"
			}
			checkbox := "[ ]"
			if t.Completed {
				checkbox = "[x]"
			}

			line := fmt.Sprintf("%s %s %s", cursor, checkbox, t.Text)
			extras := make([]string, 0, 3)
			if !grid {
				extras = append(extras, t.Category)
				extras = append(extras, fmt.Sprintf("P%d", t.Priority))
				if t.DueDate != nil {
					extras = append(extras, "due "+t.DueDate.Format("2006-01-02"))
				}
			}
			if len(extras) > 0 {
				line += "  " + m.styles.muted.Render("["+strings.Join(extras, " | ")+"]")
			}

			switch {
			case t.Completed:
				line = m.styles.done.Render(line)
			case t.Overdue(now):
				line = m.styles.overdue.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.mode == modeAdd || m.mode == modeEdit || m.mode == modeSearch {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.severity(m.statSev).Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s toggle • %s delete • %s search • %s/%s/%s filter/sort/category • %s undo • %s redo • %s export • %s theme • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Delete, k.Search, k.CycleFilter, k.CycleSort, k.CycleCat, k.Undo, k.Redo, k.ExportReport, k.ToggleTheme, k.Quit)
}

func (m Model) current() (task.Task, bool) {
	if len(m.tasks) == 0 {
		return task.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (a *addState) get() string {
	switch a.index {
	case 0:
		return a.text
	case 1:
		return a.category
	default:
		return a.due
	}
}

func (a *addState) set(v string) {
	switch a.index {
	case 0:
		a.text = v
	case 1:
		a.category = v
	default:
		a.due = v
	}
}

func defaultAddCategory(q task.Query) string {
	if q.Category != "" && q.Category != "all" {
		return q.Category
	}
	return task.CategoryPersonal
}

func parseDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// cycle returns the element after cur, wrapping; unknown cur restarts at the
// front.
func cycle(values []string, cur string) string {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
