package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/todo/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ModeHelp:
		return m.viewHelp()
	case ModeForm:
		return m.viewForm()
	case ModeNormal, ModeSearch, ModeConfirm:
	}
	return m.viewMain()
}

// viewMain renders the main task list view.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewFilterBar())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n")
	}

	if len(m.tasks) == 0 {
		b.WriteString(m.viewEmptyState())
	} else {
		b.WriteString(m.taskList.View())
	}
	b.WriteString("\n")

	if m.mode == ModeConfirm {
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
		b.WriteString("\n")
	}

	b.WriteString(m.viewStatsBar())
	b.WriteString("\n")
	b.WriteString(m.viewStatusLine())
	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return b.String()
}

// viewHeader renders the title with the live clock right-aligned.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("To-Do List")
	clock := m.styles.Clock.Render(m.now.Format("Mon Jan 2 2006  15:04:05"))

	headerWidth := m.width - 2
	spacing := headerWidth - lipgloss.Width(title) - lipgloss.Width(clock)
	if spacing < 1 {
		spacing = 1
	}

	return m.styles.Header.Render(title + strings.Repeat(" ", spacing) + clock)
}

// viewFilterBar renders the search input and the cycling filters.
func (m *Model) viewFilterBar() string {
	var search string
	switch {
	case m.mode == ModeSearch:
		search = m.searchInput.View()
	case m.searchInput.Value() != "":
		search = m.styles.FilterActive.Render("/ " + m.searchInput.Value())
	default:
		search = "/ search"
	}

	status := string(m.statusFilter)
	if status == "" {
		status = string(domain.StatusAll)
	}

	parts := []string{
		search,
		m.filterLabel("category", m.categoryFilter),
		m.filterLabel("priority", m.priorityFilter),
		m.filterLabel("status", status),
	}
	return m.styles.FilterBar.Render(strings.Join(parts, "   "))
}

func (m *Model) filterLabel(name, value string) string {
	if value == "" || value == domain.FilterAll {
		return name + ": all"
	}
	return name + ": " + m.styles.FilterActive.Render(value)
}

// viewEmptyState renders the placeholder shown when no task is listed.
func (m *Model) viewEmptyState() string {
	msg := "No tasks yet. Press n to add one."
	if m.stats.Total > 0 && m.filterActive() {
		msg = "No tasks match the filter. Press C to clear it."
	}
	return m.styles.TaskMeta.Padding(1, 2).Render(msg)
}

// viewStatsBar renders the collection counts.
func (m *Model) viewStatsBar() string {
	text := fmt.Sprintf("Total: %d   Completed: %d   Pending: %d",
		m.stats.Total, m.stats.Completed, m.stats.Pending)
	if m.filterActive() {
		text += fmt.Sprintf("   Showing: %d", len(m.tasks))
	}
	return m.styles.StatsBar.Render(text)
}

// viewStatusLine renders the last reminder or the last action.
func (m *Model) viewStatusLine() string {
	switch {
	case m.lastReminder != "":
		return m.styles.StatusLine.Render(m.lastReminder)
	case m.notice != "":
		return m.styles.NoticeMsg.Render(m.notice)
	}
	return ""
}

// viewConfirmDialog renders the delete confirmation dialog.
func (m *Model) viewConfirmDialog() string {
	color := m.styles.Palette.Error

	title := m.styles.DialogTitle.Foreground(color).Render("Delete this task?")
	target := m.styles.TaskText.Render(singleLine(m.confirmText))
	prompt := m.styles.TaskMeta.Render("This action cannot be undone.")

	yesBtn := m.styles.FilterActive.Render("[ y ] Delete")
	noBtn := m.styles.TaskMeta.Render("[ n ] Cancel")
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, yesBtn, "  ", noBtn)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		target,
		"",
		prompt,
		"",
		buttons,
	)

	return m.styles.Dialog.BorderForeground(color).Render(content)
}

// viewForm renders the add/edit form.
func (m *Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	return m.styles.Dialog.Render(m.form.form.View())
}

// viewFooter renders the key hints of the current mode.
func (m *Model) viewFooter() string {
	switch m.mode {
	case ModeNormal:
		return m.styles.Help.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	case ModeSearch:
		return m.styles.Help.Render("enter apply · esc clear")
	case ModeConfirm, ModeForm, ModeHelp:
		// Hints are shown in the dialogs/views themselves
		return ""
	}
	return ""
}

// viewHelp renders the help view.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")
	m.help.ShowAll = true
	body := m.help.View(m.keys)
	m.help.ShowAll = false
	hint := m.styles.TaskMeta.Render("Press ? or esc to close")
	return m.styles.Help.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint))
}
