package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/todo/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayoutSizes()
		if m.mode == ModeForm {
			return m.updateForm(msg)
		}
		return m, nil

	case MsgTasksLoaded:
		if msg.Input != m.listInput() {
			return m, nil // stale: the filter changed while the query ran
		}
		m.tasks = msg.Tasks
		m.filtered = msg.Filtered
		m.stats = msg.Stats
		m.now = msg.Now
		m.updateTaskList()
		return m, nil

	case MsgTaskChanged:
		m.mode = ModeNormal
		if msg.SaveErr != nil {
			m.err = fmt.Errorf("changes were not saved: %w", msg.SaveErr)
		}
		m.notice = fmt.Sprintf("Task %s", msg.Verb)
		if msg.Task != nil {
			m.notice = fmt.Sprintf("%s: %s", m.notice, singleLine(msg.Task.Text))
		}
		return m, m.loadTasks()

	case MsgRemindersChecked:
		if len(msg.Reminders) > 0 {
			last := msg.Reminders[len(msg.Reminders)-1]
			m.lastReminder = fmt.Sprintf("%s %s", m.now.Format("15:04"), last.Message())
		}
		if msg.SaveErr != nil {
			m.err = fmt.Errorf("reminder state was not saved: %w", msg.SaveErr)
		}
		return m, nil

	case MsgThemeSaved:
		if msg.Err != nil {
			m.err = fmt.Errorf("save theme: %w", msg.Err)
		}
		return m, nil

	case MsgError:
		m.err = msg.Err
		if m.mode == ModeConfirm {
			m.mode = ModeNormal
		}
		return m, nil

	case MsgTick:
		m.now = m.container.Clock.Now()
		m.updateTaskList()
		return m, m.tick()

	case MsgSweep:
		return m, tea.Batch(m.checkReminders(), m.scheduleSweep())
	}

	// huh and textinput rely on their own internal messages.
	switch m.mode {
	case ModeForm:
		return m.updateForm(msg)
	case ModeSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	case ModeNormal, ModeConfirm, ModeHelp:
	}
	return m, nil
}

// handleKeyMsg dispatches a key press to the handler of the current mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear error on any key press
	if m.err != nil && m.mode != ModeForm {
		m.err = nil
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeSearch:
		return m.handleSearchMode(msg)
	case ModeForm:
		return m.updateForm(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}

	return m, nil
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.PrevPage):
		m.taskList.Paginator.PrevPage()
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.taskList.Paginator.NextPage()
		return m, nil

	case key.Matches(msg, m.keys.New):
		return m, m.openNewForm()

	case key.Matches(msg, m.keys.Edit):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		return m, m.openEditForm(task)

	case key.Matches(msg, m.keys.Toggle):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		return m, m.toggleTask(task.ID)

	case key.Matches(msg, m.keys.Delete):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		m.confirmTaskID = task.ID
		m.confirmText = task.Text
		m.mode = ModeConfirm
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleCategory):
		m.cycleCategory()
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.CyclePriority):
		m.cyclePriority()
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.CycleStatus):
		m.cycleStatus()
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.ClearFilters):
		m.searchInput.Reset()
		m.categoryFilter = ""
		m.priorityFilter = ""
		m.statusFilter = domain.StatusAll
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.ToggleTheme):
		m.dark = !m.dark
		m.styles = NewStyles(m.dark)
		return m, m.saveTheme(m.dark)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadTasks()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil
	}

	return m, nil
}

// handleSearchMode handles keys while the search input has focus.
// The list is re-queried on every edit.
func (m *Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.searchInput.Reset()
		m.searchInput.Blur()
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.ApplySearch):
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		return m, tea.Batch(cmd, m.loadTasks())
	}
	return m, cmd
}

// handleConfirmMode handles keys in confirm mode.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CancelConfirm):
		m.mode = ModeNormal
		m.confirmTaskID = ""
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		id := m.confirmTaskID
		m.mode = ModeNormal
		m.confirmTaskID = ""
		return m, m.deleteTask(id)
	}

	return m, nil
}

// handleHelpMode handles keys in help mode.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		return m, nil
	}

	return m, nil
}
