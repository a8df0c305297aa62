package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/taskstore"
)

// EditTaskInput contains the parameters for editing a task.
// All fields except Ref are optional. Only non-nil fields are changed.
type EditTaskInput struct {
	Text     *string // New text (nil = no change)
	Due      *string // New due date, "none" clears it (nil = no change)
	Category *string // New category (nil = no change)
	Priority *string // New priority (nil = no change)
	Ref      string  // Task id or unique id prefix (required)
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task    *domain.Task // The updated task
	SaveErr error        // Non-nil if the change could not be persisted
}

// EditTask is the use case for editing an existing task.
// The given fields are merged into the current record and the whole record
// is written back, which re-arms both reminders.
type EditTask struct {
	tasks TaskStore
	clock domain.Clock
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(tasks TaskStore, clock domain.Clock) *EditTask {
	return &EditTask{
		tasks: tasks,
		clock: clock,
	}
}

// Execute edits a task with the given input.
func (uc *EditTask) Execute(ctx context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	if in.Text == nil && in.Due == nil && in.Category == nil && in.Priority == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	task, err := uc.tasks.Resolve(in.Ref)
	if err != nil {
		return nil, err
	}

	params := taskstore.UpdateParams{
		Text:     task.Text,
		DueDate:  task.DueDate,
		Category: task.Category,
		Priority: task.Priority,
	}
	if in.Text != nil {
		params.Text = *in.Text
	}
	if in.Due != nil {
		due, err := domain.ParseDueDate(*in.Due, uc.clock.Now())
		if err != nil {
			return nil, err
		}
		params.DueDate = due
	}
	if in.Category != nil {
		params.Category = domain.Category(*in.Category)
	}
	if in.Priority != nil {
		p, err := domain.ParsePriority(*in.Priority)
		if err != nil {
			return nil, err
		}
		params.Priority = p
	}

	updated, err := uc.tasks.Update(ctx, task.ID, params)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return &EditTaskOutput{Task: updated, SaveErr: uc.tasks.SaveErr()}, nil
}
