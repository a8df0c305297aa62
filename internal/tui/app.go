package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/todo/internal/app"
	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error
	form      *formState

	// State (slices - contain pointers)
	tasks      []*domain.Task
	categories []domain.Category

	// Components (structs with pointers)
	keys        KeyMap
	styles      Styles
	help        help.Model
	taskList    list.Model
	searchInput textinput.Model
	now         time.Time
	stats       domain.Stats

	// Status line
	notice       string
	lastReminder string

	// Filter state
	categoryFilter string // "" = all
	priorityFilter string // "" = all
	statusFilter   domain.StatusFilter
	confirmTaskID  domain.TaskID
	confirmText    string

	// Numeric state (smaller types last)
	sweepInterval time.Duration
	mode          Mode
	width         int
	height        int
	dark          bool
	filtered      bool
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	dark := c.AppConfig.TUI.Theme == "dark"
	var prefsErr error
	if c.Prefs != nil {
		prefs, err := c.Prefs.LoadPrefs()
		if err != nil {
			prefsErr = err
		} else {
			dark = prefs.Dark(dark)
		}
	}

	si := textinput.New()
	si.Placeholder = "Search tasks..."
	si.Prompt = "/ "
	si.CharLimit = 200

	m := &Model{
		container:     c,
		err:           prefsErr,
		categories:    c.Store.Categories(),
		keys:          DefaultKeyMap(),
		styles:        NewStyles(dark),
		help:          help.New(),
		searchInput:   si,
		now:           c.Clock.Now(),
		statusFilter:  domain.StatusAll,
		sweepInterval: c.AppConfig.Notify.Interval,
		mode:          ModeNormal,
		dark:          dark,
	}
	if m.sweepInterval <= 0 {
		m.sweepInterval = domain.DefaultSweepInterval
	}

	delegate := newTaskDelegate(&m.styles)
	taskList := list.New([]list.Item{}, delegate, 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(true)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()
	m.taskList = taskList

	return m
}

// Init initializes the model and returns the initial command.
// The first reminder sweep runs immediately.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadTasks(),
		m.checkReminders(),
		m.tick(),
		m.scheduleSweep(),
	)
}

// Run starts the interactive program and blocks until the user quits.
func Run(c *app.Container) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// listInput returns the current filter as use case input.
func (m *Model) listInput() usecase.ListTasksInput {
	return usecase.ListTasksInput{
		Search:   m.searchInput.Value(),
		Category: m.categoryFilter,
		Priority: m.priorityFilter,
		Status:   string(m.statusFilter),
	}
}

// loadTasks returns a command that queries the filtered task list.
func (m *Model) loadTasks() tea.Cmd {
	uc := m.container.ListTasksUseCase()
	in := m.listInput()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{
			Tasks:    out.Tasks,
			Stats:    out.Stats,
			Now:      out.Now,
			Input:    in,
			Filtered: out.Filtered,
		}
	}
}

// reloadTasks re-reads the snapshot, then queries the list.
func (m *Model) reloadTasks() tea.Cmd {
	c := m.container
	load := m.loadTasks()
	return func() tea.Msg {
		if err := c.Load(context.Background()); err != nil {
			return MsgError{Err: err}
		}
		return load()
	}
}

// toggleTask returns a command that flips completion of a task.
func (m *Model) toggleTask(id domain.TaskID) tea.Cmd {
	uc := m.container.ToggleTaskUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.ToggleTaskInput{Ref: string(id)})
		if err != nil {
			return MsgError{Err: err}
		}
		verb := "reopened"
		if out.Task.Completed {
			verb = "completed"
		}
		return MsgTaskChanged{Task: out.Task, Verb: verb, SaveErr: out.SaveErr}
	}
}

// deleteTask returns a command that deletes a task.
func (m *Model) deleteTask(id domain.TaskID) tea.Cmd {
	uc := m.container.DeleteTaskUseCase()
	load := m.loadTasks()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.DeleteTaskInput{Ref: string(id)})
		if errors.Is(err, domain.ErrTaskNotFound) {
			// Already gone, e.g. removed by another process: just refresh.
			return load()
		}
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{Task: out.Task, Verb: "deleted", SaveErr: out.SaveErr}
	}
}

// checkReminders returns a command that runs one reminder sweep.
func (m *Model) checkReminders() tea.Cmd {
	uc := m.container.CheckRemindersUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.CheckRemindersInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgRemindersChecked{Reminders: out.Reminders, SaveErr: out.SaveErr}
	}
}

// saveTheme returns a command that remembers the theme.
func (m *Model) saveTheme(dark bool) tea.Cmd {
	prefs := m.container.Prefs
	return func() tea.Msg {
		if prefs == nil {
			return MsgThemeSaved{}
		}
		return MsgThemeSaved{Err: prefs.SavePrefs(domain.Prefs{DarkMode: &dark})}
	}
}

// tick schedules the next clock refresh.
func (m *Model) tick() tea.Cmd {
	return tea.Tick(domain.DefaultTickInterval, func(time.Time) tea.Msg {
		return MsgTick{}
	})
}

// scheduleSweep schedules the next reminder sweep.
func (m *Model) scheduleSweep() tea.Cmd {
	return tea.Tick(m.sweepInterval, func(time.Time) tea.Msg {
		return MsgSweep{}
	})
}

// SelectedTask returns the currently selected task, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	if m.taskList.SelectedItem() == nil {
		return nil
	}
	if ti, ok := m.taskList.SelectedItem().(taskItem); ok {
		return ti.task
	}
	return nil
}

// updateTaskList updates the task list items from tasks, keeping the
// selection on the same task when it is still listed.
func (m *Model) updateTaskList() {
	var selectedID domain.TaskID
	if t := m.SelectedTask(); t != nil {
		selectedID = t.ID
	}

	items := make([]list.Item, 0, len(m.tasks))
	selected := -1
	for i, task := range m.tasks {
		items = append(items, taskItem{task: task, now: m.now})
		if task.ID == selectedID {
			selected = i
		}
	}
	m.taskList.SetItems(items)
	if selected >= 0 {
		m.taskList.Select(selected)
	}
}

// updateLayoutSizes resizes the list to the space left by header and bars.
func (m *Model) updateLayoutSizes() {
	// header(2) + filter bar + stats bar + status line + footer + spacing
	listHeight := m.height - 8
	if listHeight < 3 {
		listHeight = 3
	}
	m.taskList.SetSize(m.width, listHeight)
	m.searchInput.Width = m.width - 4
	m.help.Width = m.width
}

// cycleCategory advances the category filter: all, then each category.
func (m *Model) cycleCategory() {
	options := make([]string, 0, len(m.categories)+1)
	options = append(options, "")
	for _, c := range m.categories {
		options = append(options, string(c))
	}
	m.categoryFilter = nextOption(options, m.categoryFilter)
}

// cyclePriority advances the priority filter: all, high, medium, low.
func (m *Model) cyclePriority() {
	options := []string{""}
	for _, p := range domain.AllPriorities() {
		options = append(options, string(p))
	}
	m.priorityFilter = nextOption(options, m.priorityFilter)
}

// cycleStatus advances the status filter: all, pending, completed.
func (m *Model) cycleStatus() {
	all := domain.AllStatusFilters()
	options := make([]string, 0, len(all))
	for _, s := range all {
		options = append(options, string(s))
	}
	m.statusFilter = domain.StatusFilter(nextOption(options, string(m.statusFilter)))
}

func nextOption(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// filterActive reports whether the last loaded list was narrowed by a filter.
func (m *Model) filterActive() bool {
	return m.filtered
}
