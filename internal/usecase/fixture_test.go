package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/taskstore"
	"github.com/runoshun/todo/internal/testutil"
	"github.com/stretchr/testify/require"
)

// fixture wires a real Task Store to in-memory doubles.
type fixture struct {
	store    *taskstore.Store
	persist  *testutil.MockSnapshotStore
	notifier *testutil.MockNotifier
	clock    *testutil.MockClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		persist:  testutil.NewMockSnapshotStore(),
		notifier: &testutil.MockNotifier{},
		clock:    &testutil.MockClock{NowTime: time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)},
	}
	f.store = taskstore.New(taskstore.Deps{
		Persist:  f.persist,
		Notifier: f.notifier,
		Clock:    f.clock,
		IDs:      &testutil.SequenceIDs{},
	}, taskstore.DefaultOptions())
	require.NoError(t, f.store.Load(context.Background()))
	return f
}

func (f *fixture) add(t *testing.T, text string, due *domain.Date, category domain.Category, priority domain.Priority) *domain.Task {
	t.Helper()
	task, err := f.store.Create(context.Background(), taskstore.CreateParams{
		Text:     text,
		DueDate:  due,
		Category: category,
		Priority: priority,
	})
	require.NoError(t, err)
	return task
}

func (f *fixture) today() domain.Date {
	return domain.DateOf(f.clock.Now())
}

func datePtr(d domain.Date) *domain.Date {
	return &d
}

func strPtr(s string) *string {
	return &s
}
