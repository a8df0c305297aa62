package usecase

import (
	"context"

	"github.com/runoshun/todo/internal/domain"
)

// ShowStatsInput contains the input for ShowStats.
type ShowStatsInput struct{}

// CategoryCount is the number of tasks in one category.
type CategoryCount struct {
	Category domain.Category
	Total    int
	Pending  int
}

// ShowStatsOutput summarizes the collection.
type ShowStatsOutput struct {
	ByCategory []CategoryCount // One entry per configured category, in config order
	Stats      domain.Stats
	Overdue    int // Pending tasks whose due date has passed
	DueToday   int // Pending tasks due today
}

// ShowStats computes collection statistics.
type ShowStats struct {
	tasks TaskStore
	clock domain.Clock
}

// NewShowStats creates a new ShowStats use case.
func NewShowStats(tasks TaskStore, clock domain.Clock) *ShowStats {
	return &ShowStats{
		tasks: tasks,
		clock: clock,
	}
}

// Execute returns the statistics.
func (uc *ShowStats) Execute(_ context.Context, _ ShowStatsInput) (*ShowStatsOutput, error) {
	now := uc.clock.Now()
	out := &ShowStatsOutput{Stats: uc.tasks.Stats()}

	index := make(map[domain.Category]int)
	for _, c := range uc.tasks.Categories() {
		index[c] = len(out.ByCategory)
		out.ByCategory = append(out.ByCategory, CategoryCount{Category: c})
	}

	for _, t := range uc.tasks.Query(domain.AllFilter()) {
		i, ok := index[t.Category]
		if !ok {
			i = len(out.ByCategory)
			index[t.Category] = i
			out.ByCategory = append(out.ByCategory, CategoryCount{Category: t.Category})
		}
		out.ByCategory[i].Total++
		if t.Completed {
			continue
		}
		out.ByCategory[i].Pending++
		switch t.DueState(now) {
		case domain.DueOverdue:
			out.Overdue++
		case domain.DueToday:
			out.DueToday++
		}
	}
	return out, nil
}
