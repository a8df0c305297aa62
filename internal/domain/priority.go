package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Priority is the importance of a task. The order is high > medium > low.
type Priority string

// Priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities returns the priorities from highest to lowest.
func AllPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Rank returns a number that grows with importance. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

// Display returns the capitalized name.
func (p Priority) Display() string {
	return capitalize(string(p))
}

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q (want high, medium or low)", ErrInvalidPriority, s)
	}
	return p, nil
}

// Category groups tasks. The valid set comes from configuration.
type Category string

// Default categories.
const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryShopping Category = "shopping"
	CategoryOther    Category = "other"
)

// DefaultCategories returns the built-in category set.
func DefaultCategories() []Category {
	return []Category{CategoryPersonal, CategoryWork, CategoryShopping, CategoryOther}
}

// Display returns the capitalized name.
func (c Category) Display() string {
	return capitalize(string(c))
}

// ParseCategory parses a category name case-insensitively against the allowed set.
func ParseCategory(s string, allowed []Category) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(allowed, c) {
		names := make([]string, 0, len(allowed))
		for _, a := range allowed {
			names = append(names, string(a))
		}
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrInvalidCategory, s, strings.Join(names, ", "))
	}
	return c, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
