package domain

import (
	"fmt"
	"time"
)

// DefaultReminderTitle is the notification title used when none is configured.
const DefaultReminderTitle = "To-Do List Reminder"

// ReminderKind tells which latch a reminder belongs to.
type ReminderKind string

// Reminder kinds.
const (
	ReminderDueToday    ReminderKind = "due_today"
	ReminderDueTomorrow ReminderKind = "due_tomorrow"
)

// Phrase returns the human-readable due state.
func (k ReminderKind) Phrase() string {
	switch k {
	case ReminderDueToday:
		return "due today"
	case ReminderDueTomorrow:
		return "due tomorrow"
	default:
		return string(k)
	}
}

// Reminder is one notification emitted by a sweep.
type Reminder struct {
	Task *Task
	Kind ReminderKind
}

// Message returns the notification body for the reminder.
func (r Reminder) Message() string {
	return fmt.Sprintf("Reminder: \"%s\" is %s!", r.Task.Text, r.Kind.Phrase())
}

// ReminderFor decides whether the task is owed a reminder at now.
// Completed and undated tasks never are. "Due today" takes precedence;
// each kind fires once until its latch is reset by an update.
func (t *Task) ReminderFor(now time.Time) (ReminderKind, bool) {
	if t.Completed || !t.HasDueDate() {
		return "", false
	}
	today := DateOf(now)
	switch {
	case t.DueDate.Equal(today):
		if !t.NotifiedToday {
			return ReminderDueToday, true
		}
	case t.DueDate.Equal(today.AddDays(1)):
		if !t.NotifiedTomorrow {
			return ReminderDueTomorrow, true
		}
	}
	return "", false
}

// MarkReminded sets the latch for kind.
func (t *Task) MarkReminded(kind ReminderKind) {
	switch kind {
	case ReminderDueToday:
		t.NotifiedToday = true
	case ReminderDueTomorrow:
		t.NotifiedTomorrow = true
	}
}
