// Package domain contains core business entities and interfaces.
package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// TaskID identifies a task. It is opaque to everything except the id generator.
type TaskID string

// String returns the id as a plain string.
func (id TaskID) String() string {
	return string(id)
}

// Short returns the abbreviated form used in listings.
func (id TaskID) Short() string {
	if len(id) <= ShortIDLength {
		return string(id)
	}
	return string(id[:ShortIDLength])
}

// LogTag returns the subject written into log lines for the id.
func (id TaskID) LogTag() string {
	if id == "" {
		return "global"
	}
	return "task-" + id.Short()
}

// ShortIDLength is the number of characters shown for abbreviated ids.
const ShortIDLength = 8

// UnmarshalJSON accepts both string ids and the numeric ids
// written by the browser version of the list.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*id = TaskID(n.String())
	return nil
}

// Task is a single to-do record.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt        time.Time `json:"createdAt" yaml:"createdAt"`               // Creation time (immutable)
	DueDate          *Date     `json:"dueDate" yaml:"dueDate,omitempty"`         // Optional due day
	ID               TaskID    `json:"id" yaml:"id"`                             // Unique id (immutable)
	Text             string    `json:"text" yaml:"text"`                         // Display text (non-empty)
	Category         Category  `json:"category" yaml:"category"`                 // Category from the configured set
	Priority         Priority  `json:"priority" yaml:"priority"`                 // low, medium or high
	Completed        bool      `json:"completed" yaml:"completed"`               // Completion flag
	NotifiedToday    bool      `json:"notifiedToday" yaml:"notifiedToday"`       // "due today" reminder already sent
	NotifiedTomorrow bool      `json:"notifiedTomorrow" yaml:"notifiedTomorrow"` // "due tomorrow" reminder already sent
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

// HasDueDate reports whether a due date is set.
func (t *Task) HasDueDate() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

// ResetReminders re-arms both reminder latches.
func (t *Task) ResetReminders() {
	t.NotifiedToday = false
	t.NotifiedTomorrow = false
}

// DueState returns how the due date relates to the calendar day of now.
func (t *Task) DueState(now time.Time) DueState {
	if !t.HasDueDate() {
		return DueNone
	}
	today := DateOf(now)
	switch {
	case t.DueDate.Before(today):
		return DueOverdue
	case t.DueDate.Equal(today):
		return DueToday
	default:
		return DueUpcoming
	}
}

// DueState classifies a due date for display.
type DueState string

// Due states.
const (
	DueNone     DueState = "none"
	DueOverdue  DueState = "overdue"
	DueToday    DueState = "today"
	DueUpcoming DueState = "upcoming"
)

// NormalizeText trims surrounding whitespace from task text.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}
