package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/runoshun/todo/internal/domain"
)

// Column widths of the fixed part of a row.
const (
	priorityWidth = 6
	categoryWidth = 10
	dueWidth      = 13
	// cursor(2) + checkbox(3) + spaces between columns
	fixedWidth = 2 + 3 + 1 + priorityWidth + 1 + categoryWidth + 1 + dueWidth + 1
)

type taskItem struct {
	now  time.Time
	task *domain.Task
}

func (t taskItem) FilterValue() string {
	return t.task.Text
}

// singleLine replaces newline characters with spaces for single-line display.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// fit truncates or pads s to exactly width terminal cells.
func fit(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// dueLabel returns the due column text for a task.
func dueLabel(t *domain.Task, now time.Time) string {
	if !t.HasDueDate() {
		return ""
	}
	switch t.DueState(now) {
	case domain.DueOverdue:
		return t.DueDate.Display(now) + " !"
	case domain.DueToday:
		return "Today"
	default:
		if t.DueDate.Equal(domain.DateOf(now).AddDays(1)) {
			return "Tomorrow"
		}
		return t.DueDate.Display(now)
	}
}

type taskDelegate struct {
	styles *Styles
}

func newTaskDelegate(styles *Styles) taskDelegate {
	return taskDelegate{styles: styles}
}

func (d taskDelegate) Height() int {
	return 1
}

func (d taskDelegate) Spacing() int {
	return 0
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	selected := index == m.Index()

	cursor := "  "
	if selected {
		cursor = d.styles.SelectionCursor.Render("> ")
	}

	check := "[ ]"
	if task.Completed {
		check = d.styles.TaskMeta.Render("[x]")
	}

	priority := d.styles.PriorityStyle(task.Priority).Render(fit(task.Priority.Display(), priorityWidth))
	category := d.styles.TaskMeta.Render(fit(task.Category.Display(), categoryWidth))

	due := fit(dueLabel(task, ti.now), dueWidth)
	if task.HasDueDate() && !task.Completed {
		due = d.styles.DueStyle(task.DueState(ti.now)).Render(due)
	} else {
		due = d.styles.TaskMeta.Render(due)
	}

	maxTextLen := m.Width() - fixedWidth
	if maxTextLen < 10 {
		maxTextLen = 10
	}
	text := singleLine(task.Text)
	if runewidth.StringWidth(text) > maxTextLen {
		text = runewidth.Truncate(text, maxTextLen, "…")
	}

	textStyle := d.styles.TaskText
	switch {
	case task.Completed:
		textStyle = d.styles.TaskTextCompleted
	case selected:
		textStyle = d.styles.TaskTextSelected
	}

	_, _ = fmt.Fprintf(w, "%s%s %s %s %s %s", cursor, check, priority, category, due, textStyle.Render(text))
}
