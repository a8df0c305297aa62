package usecase

import (
	"context"

	"github.com/runoshun/todo/internal/domain"
)

// CheckRemindersInput contains the input for one reminder sweep.
type CheckRemindersInput struct{}

// CheckRemindersOutput lists the reminders that fired.
type CheckRemindersOutput struct {
	Reminders []domain.Reminder
	SaveErr   error // Non-nil if the latches could not be persisted
}

// CheckReminders runs one reminder sweep at the current time.
type CheckReminders struct {
	tasks TaskStore
	clock domain.Clock
}

// NewCheckReminders creates a new CheckReminders use case.
func NewCheckReminders(tasks TaskStore, clock domain.Clock) *CheckReminders {
	return &CheckReminders{
		tasks: tasks,
		clock: clock,
	}
}

// Execute evaluates due notifications.
func (uc *CheckReminders) Execute(ctx context.Context, _ CheckRemindersInput) (*CheckRemindersOutput, error) {
	reminders := uc.tasks.EvaluateDueNotifications(ctx, uc.clock.Now())
	out := &CheckRemindersOutput{Reminders: reminders}
	if len(reminders) > 0 {
		out.SaveErr = uc.tasks.SaveErr()
	}
	return out, nil
}
