package usecase

import (
	"context"

	"github.com/runoshun/todo/internal/domain"
)

// ToggleTaskInput contains the parameters for toggling a task.
type ToggleTaskInput struct {
	Ref string // Task id or unique id prefix
}

// ToggleTaskOutput contains the result of toggling a task.
type ToggleTaskOutput struct {
	Task    *domain.Task // The task after the toggle
	SaveErr error        // Non-nil if the change could not be persisted
}

// ToggleTask flips a task between pending and completed.
type ToggleTask struct {
	tasks TaskStore
}

// NewToggleTask creates a new ToggleTask use case.
func NewToggleTask(tasks TaskStore) *ToggleTask {
	return &ToggleTask{tasks: tasks}
}

// Execute toggles the task.
func (uc *ToggleTask) Execute(ctx context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	task, err := uc.tasks.Resolve(in.Ref)
	if err != nil {
		return nil, err
	}
	task, err = uc.tasks.ToggleComplete(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	return &ToggleTaskOutput{Task: task, SaveErr: uc.tasks.SaveErr()}, nil
}
