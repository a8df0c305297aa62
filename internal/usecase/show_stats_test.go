package usecase_test

import (
	"context"
	"testing"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowStats_Execute(t *testing.T) {
	f := newFixture(t)
	f.add(t, "Overdue", datePtr(f.today().AddDays(-2)), domain.CategoryWork, "")
	f.add(t, "Today", datePtr(f.today()), domain.CategoryWork, "")
	done := f.add(t, "Done", datePtr(f.today().AddDays(-5)), domain.CategoryShopping, "")
	_, err := f.store.ToggleComplete(context.Background(), done.ID)
	require.NoError(t, err)
	uc := usecase.NewShowStats(f.store, f.clock)

	out, err := uc.Execute(context.Background(), usecase.ShowStatsInput{})

	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Total: 3, Completed: 1, Pending: 2}, out.Stats)
	assert.Equal(t, 1, out.Overdue)
	assert.Equal(t, 1, out.DueToday)
	assert.Equal(t, []usecase.CategoryCount{
		{Category: domain.CategoryPersonal},
		{Category: domain.CategoryWork, Total: 2, Pending: 2},
		{Category: domain.CategoryShopping, Total: 1},
		{Category: domain.CategoryOther},
	}, out.ByCategory)
}
