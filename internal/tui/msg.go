package tui

import (
	"time"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/usecase"
)

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when the filtered task list has been queried.
// Input is the filter the query ran with.
type MsgTasksLoaded struct {
	Now      time.Time
	Tasks    []*domain.Task
	Input    usecase.ListTasksInput
	Stats    domain.Stats
	Filtered bool
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskChanged is sent after a task was created, edited, toggled or deleted.
type MsgTaskChanged struct {
	SaveErr error
	Task    *domain.Task
	Verb    string // created, updated, completed, reopened, deleted
}

func (MsgTaskChanged) sealed() {}

// MsgRemindersChecked is sent after a reminder sweep.
type MsgRemindersChecked struct {
	SaveErr   error
	Reminders []domain.Reminder
}

func (MsgRemindersChecked) sealed() {}

// MsgThemeSaved is sent after the theme preference was written.
type MsgThemeSaved struct {
	Err error
}

func (MsgThemeSaved) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgTick is sent every second to refresh the clock.
type MsgTick struct{}

func (MsgTick) sealed() {}

// MsgSweep is sent on the reminder interval.
type MsgSweep struct{}

func (MsgSweep) sealed() {}
