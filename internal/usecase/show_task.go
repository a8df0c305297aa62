package usecase

import (
	"context"

	"github.com/runoshun/todo/internal/domain"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	Ref string // Task id or unique id prefix
}

// ShowTaskOutput contains the task and its derived display state.
type ShowTaskOutput struct {
	Task     *domain.Task
	DueState domain.DueState
}

// ShowTask is the use case for displaying one task.
type ShowTask struct {
	tasks TaskStore
	clock domain.Clock
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(tasks TaskStore, clock domain.Clock) *ShowTask {
	return &ShowTask{
		tasks: tasks,
		clock: clock,
	}
}

// Execute returns the task.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := uc.tasks.Resolve(in.Ref)
	if err != nil {
		return nil, err
	}
	return &ShowTaskOutput{
		Task:     task,
		DueState: task.DueState(uc.clock.Now()),
	}, nil
}
