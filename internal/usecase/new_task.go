package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/taskstore"
)

// NewTaskInput contains the parameters for creating a new task.
type NewTaskInput struct {
	Text     string // Task text (required)
	Due      string // Due date: YYYY-MM-DD, today, tomorrow, +Nd (optional)
	Category string // Category (optional, empty = configured default)
	Priority string // Priority (optional, empty = configured default)
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task    *domain.Task // The created task
	SaveErr error        // Non-nil if the task could not be persisted
}

// NewTask is the use case for creating a new task.
type NewTask struct {
	tasks TaskStore
	clock domain.Clock
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(tasks TaskStore, clock domain.Clock) *NewTask {
	return &NewTask{
		tasks: tasks,
		clock: clock,
	}
}

// Execute creates a new task with the given input.
func (uc *NewTask) Execute(ctx context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	due, err := domain.ParseDueDate(in.Due, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	params := taskstore.CreateParams{
		Text:     in.Text,
		DueDate:  due,
		Category: domain.Category(in.Category),
	}
	if in.Priority != "" {
		p, err := domain.ParsePriority(in.Priority)
		if err != nil {
			return nil, err
		}
		params.Priority = p
	}

	task, err := uc.tasks.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return &NewTaskOutput{Task: task, SaveErr: uc.tasks.SaveErr()}, nil
}
