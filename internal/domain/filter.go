package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// FilterAll matches every value of a filter field.
const FilterAll = "all"

// StatusFilter selects tasks by completion state.
type StatusFilter string

// Status filters.
const (
	StatusAll       StatusFilter = FilterAll
	StatusCompleted StatusFilter = "completed"
	StatusPending   StatusFilter = "pending"
)

// AllStatusFilters returns the status filters in display order.
func AllStatusFilters() []StatusFilter {
	return []StatusFilter{StatusAll, StatusPending, StatusCompleted}
}

// ParseStatusFilter parses a status filter name.
func ParseStatusFilter(s string) (StatusFilter, error) {
	f := StatusFilter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return StatusAll, nil
	case StatusAll, StatusCompleted, StatusPending:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want all, completed or pending)", ErrInvalidStatus, s)
	}
}

// Filter specifies which tasks a query returns.
// Empty Category, Priority and Status fields behave like "all".
type Filter struct {
	Search   string       // Case-insensitive substring of the text
	Category string       // "all" or a category
	Priority string       // "all" or a priority
	Status   StatusFilter // all, completed or pending
}

// AllFilter returns a filter that matches every task.
func AllFilter() Filter {
	return Filter{Category: FilterAll, Priority: FilterAll, Status: StatusAll}
}

// IsAll reports whether the filter matches every task.
func (f Filter) IsAll() bool {
	return f.Search == "" && isAll(f.Category) && isAll(f.Priority) && isAll(string(f.Status))
}

// Matches reports whether the task satisfies every clause of the filter.
func (f Filter) Matches(t *Task) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Text), strings.ToLower(f.Search)) {
		return false
	}
	if !isAll(f.Category) && string(t.Category) != f.Category {
		return false
	}
	if !isAll(f.Priority) && string(t.Priority) != f.Priority {
		return false
	}
	switch f.Status {
	case StatusCompleted:
		return t.Completed
	case StatusPending:
		return !t.Completed
	default:
		return true
	}
}

func isAll(v string) bool {
	return v == "" || v == FilterAll
}

// CompareTasks orders tasks for display:
// pending before completed, then higher priority first, then
// earlier due date first with dated tasks before undated ones,
// then earlier creation time. The id breaks any remaining tie.
func CompareTasks(a, b *Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
		return c
	}
	aDue, bDue := a.HasDueDate(), b.HasDueDate()
	switch {
	case aDue && bDue:
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
	case aDue:
		return -1
	case bDue:
		return 1
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(string(a.ID), string(b.ID))
}

// SortTasks sorts tasks in place in display order.
func SortTasks(tasks []*Task) {
	slices.SortStableFunc(tasks, CompareTasks)
}

// Stats summarizes a collection.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// CountTasks computes Stats for tasks.
func CountTasks(tasks []*Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
