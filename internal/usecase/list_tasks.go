package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/runoshun/todo/internal/domain"
)

// ListTasksInput contains the filter for listing tasks.
// Empty fields match everything.
type ListTasksInput struct {
	Search   string // Case-insensitive text substring
	Category string // Category name or "all"
	Priority string // Priority name or "all"
	Status   string // all, pending or completed
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Now      time.Time      // Reference time for due-state display
	Tasks    []*domain.Task // Matching tasks in display order
	Stats    domain.Stats   // Counts over the whole collection
	Filtered bool           // Whether any filter clause narrowed the list
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks TaskStore
	clock domain.Clock
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks TaskStore, clock domain.Clock) *ListTasks {
	return &ListTasks{
		tasks: tasks,
		clock: clock,
	}
}

// Execute returns the tasks matching the filter.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	filter, err := BuildFilter(in, uc.tasks.Categories())
	if err != nil {
		return nil, err
	}
	return &ListTasksOutput{
		Tasks:    uc.tasks.Query(filter),
		Stats:    uc.tasks.Stats(),
		Now:      uc.clock.Now(),
		Filtered: !filter.IsAll(),
	}, nil
}

// BuildFilter validates user input and turns it into a domain.Filter.
// The search text is kept as typed, surrounding spaces included.
func BuildFilter(in ListTasksInput, categories []domain.Category) (domain.Filter, error) {
	f := domain.AllFilter()
	f.Search = in.Search

	if !isAllValue(in.Category) {
		c, err := domain.ParseCategory(in.Category, categories)
		if err != nil {
			return f, err
		}
		f.Category = string(c)
	}
	if !isAllValue(in.Priority) {
		p, err := domain.ParsePriority(in.Priority)
		if err != nil {
			return f, err
		}
		f.Priority = string(p)
	}
	status, err := domain.ParseStatusFilter(in.Status)
	if err != nil {
		return f, err
	}
	f.Status = status
	return f, nil
}

func isAllValue(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, domain.FilterAll)
}
