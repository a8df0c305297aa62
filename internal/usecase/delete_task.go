package usecase

import (
	"context"

	"github.com/runoshun/todo/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	Ref string // Task id or unique id prefix
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task    *domain.Task // The removed task
	SaveErr error        // Non-nil if the change could not be persisted
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	tasks TaskStore
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks TaskStore) *DeleteTask {
	return &DeleteTask{tasks: tasks}
}

// Execute deletes the task. The reference must match a task so that a typo
// is reported instead of silently doing nothing.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	task, err := uc.tasks.Resolve(in.Ref)
	if err != nil {
		return nil, err
	}
	if err := uc.tasks.Delete(ctx, task.ID); err != nil {
		return nil, err
	}
	return &DeleteTaskOutput{Task: task, SaveErr: uc.tasks.SaveErr()}, nil
}
