// Package usecase contains application use cases.
package usecase

import (
	"context"
	"time"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/taskstore"
)

// TaskStore is the part of the Task Store the use cases drive.
type TaskStore interface {
	Create(ctx context.Context, p taskstore.CreateParams) (*domain.Task, error)
	Update(ctx context.Context, id domain.TaskID, p taskstore.UpdateParams) (*domain.Task, error)
	ToggleComplete(ctx context.Context, id domain.TaskID) (*domain.Task, error)
	Delete(ctx context.Context, id domain.TaskID) error
	Resolve(ref string) (*domain.Task, error)
	Query(f domain.Filter) []*domain.Task
	Stats() domain.Stats
	Categories() []domain.Category
	EvaluateDueNotifications(ctx context.Context, now time.Time) []domain.Reminder
	Import(ctx context.Context, tasks []*domain.Task, replace bool) (taskstore.ImportResult, error)
	Snapshot() ([]byte, error)
	SaveErr() error
}

// Ensure the Task Store satisfies TaskStore.
var _ TaskStore = (*taskstore.Store)(nil)
