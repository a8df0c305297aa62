package taskstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/testutil"
)

type fixture struct {
	store    *Store
	persist  *testutil.MockSnapshotStore
	notifier *testutil.MockNotifier
	clock    *testutil.MockClock
	logger   *testutil.MockLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		persist:  testutil.NewMockSnapshotStore(),
		notifier: &testutil.MockNotifier{},
		clock:    &testutil.MockClock{NowTime: time.Date(2026, time.October, 15, 9, 0, 0, 0, time.Local)},
		logger:   &testutil.MockLogger{},
	}
	f.store = New(Deps{
		Persist:  f.persist,
		Notifier: f.notifier,
		Clock:    f.clock,
		IDs:      &testutil.SequenceIDs{},
		Logger:   f.logger,
	}, DefaultOptions())
	require.NoError(t, f.store.Load(context.Background()))
	return f
}

func (f *fixture) day(offset int) *domain.Date {
	d := domain.DateOf(f.clock.NowTime).AddDays(offset)
	return &d
}

func (f *fixture) create(t *testing.T, p CreateParams) *domain.Task {
	t.Helper()
	task, err := f.store.Create(context.Background(), p)
	require.NoError(t, err)
	return task
}

func TestStore_Create(t *testing.T) {
	f := newFixture(t)

	task := f.create(t, CreateParams{Text: "  Buy milk  "})

	assert.Equal(t, domain.TaskID("id-1"), task.ID)
	assert.Equal(t, "Buy milk", task.Text)
	assert.Equal(t, domain.CategoryPersonal, task.Category)
	assert.Equal(t, domain.PriorityLow, task.Priority)
	assert.Equal(t, f.clock.NowTime, task.CreatedAt)
	assert.False(t, task.Completed)
	assert.False(t, task.NotifiedToday)
	assert.False(t, task.NotifiedTomorrow)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, 1, f.persist.SaveCount())

	got := f.store.Query(domain.AllFilter())
	require.Len(t, got, 1)
	assert.Equal(t, task, got[0])
}

func TestStore_CreateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateParams
		wantErr error
	}{
		{"empty text", CreateParams{Text: ""}, domain.ErrEmptyText},
		{"whitespace text", CreateParams{Text: " \t\n"}, domain.ErrEmptyText},
		{"unknown category", CreateParams{Text: "x", Category: "errands"}, domain.ErrInvalidCategory},
		{"unknown priority", CreateParams{Text: "x", Priority: "urgent"}, domain.ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.store.Create(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.store.Query(domain.AllFilter()))
			assert.Zero(t, f.persist.SaveCount())
		})
	}
}

func TestStore_CreateKeepsIDsUnique(t *testing.T) {
	f := newFixture(t)
	f.store.ids = &repeatingIDs{ids: []domain.TaskID{"dup", "dup", "dup", "other"}}

	a := f.create(t, CreateParams{Text: "a"})
	b := f.create(t, CreateParams{Text: "b"})

	assert.Equal(t, domain.TaskID("dup"), a.ID)
	assert.Equal(t, domain.TaskID("other"), b.ID)
}

func TestStore_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.create(t, CreateParams{Text: "Pay rent", DueDate: f.day(0)})

	f.store.EvaluateDueNotifications(ctx, f.clock.NowTime)
	_, err := f.store.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)

	updated, err := f.store.Update(ctx, task.ID, UpdateParams{
		Text:     "Pay rent early",
		DueDate:  f.day(0),
		Category: domain.CategoryWork,
		Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.Completed, "completion is kept")
	assert.Equal(t, "Pay rent early", updated.Text)
	assert.Equal(t, domain.CategoryWork, updated.Category)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	assert.False(t, updated.NotifiedToday)
	assert.False(t, updated.NotifiedTomorrow)
}

func TestStore_UpdateResetsLatchesWithoutDateChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.create(t, CreateParams{Text: "Call mom", DueDate: f.day(1)})

	require.Len(t, f.store.EvaluateDueNotifications(ctx, f.clock.NowTime), 1)
	got, err := f.store.Get(task.ID)
	require.NoError(t, err)
	require.True(t, got.NotifiedTomorrow)

	updated, err := f.store.Update(ctx, task.ID, UpdateParams{Text: "Call mom", DueDate: f.day(1)})
	require.NoError(t, err)
	assert.False(t, updated.NotifiedTomorrow)

	assert.Len(t, f.store.EvaluateDueNotifications(ctx, f.clock.NowTime), 1, "re-armed latch fires again")
}

func TestStore_UpdateNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.Update(context.Background(), "missing", UpdateParams{Text: "x"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Zero(t, f.persist.SaveCount())
}

func TestStore_ToggleCompleteTwiceRestores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.create(t, CreateParams{Text: "Water plants", DueDate: f.day(0), Priority: domain.PriorityMedium})
	f.store.EvaluateDueNotifications(ctx, f.clock.NowTime)
	before, err := f.store.Get(task.ID)
	require.NoError(t, err)

	once, err := f.store.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, once.Completed)
	assert.True(t, once.NotifiedToday, "latches untouched")

	twice, err := f.store.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, before, twice)
}

func TestStore_ToggleCompleteNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.ToggleComplete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep := f.create(t, CreateParams{Text: "keep"})
	drop := f.create(t, CreateParams{Text: "drop"})
	saves := f.persist.SaveCount()

	require.NoError(t, f.store.Delete(ctx, drop.ID))
	afterOnce := f.store.Query(domain.AllFilter())
	require.NoError(t, f.store.Delete(ctx, drop.ID))
	afterTwice := f.store.Query(domain.AllFilter())

	assert.Equal(t, afterOnce, afterTwice)
	require.Len(t, afterTwice, 1)
	assert.Equal(t, keep.ID, afterTwice[0].ID)
	assert.Equal(t, saves+1, f.persist.SaveCount(), "no save for a missing id")
}

func TestStore_QueryOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Inserted out of order on purpose.
	d := f.create(t, CreateParams{Text: "D", Priority: domain.PriorityHigh, DueDate: f.day(0)})
	c := f.create(t, CreateParams{Text: "C", Priority: domain.PriorityLow})
	b := f.create(t, CreateParams{Text: "B", Priority: domain.PriorityHigh, DueDate: f.day(2)})
	a := f.create(t, CreateParams{Text: "A", Priority: domain.PriorityHigh, DueDate: f.day(1)})
	_, err := f.store.ToggleComplete(ctx, d.ID)
	require.NoError(t, err)

	got := f.store.Query(domain.AllFilter())
	assert.Equal(t, []domain.TaskID{a.ID, b.ID, c.ID, d.ID}, taskIDs(got))
}

func TestStore_QueryReturnsCopies(t *testing.T) {
	f := newFixture(t)
	task := f.create(t, CreateParams{Text: "original"})

	got := f.store.Query(domain.AllFilter())
	got[0].Text = "mutated"

	again, err := f.store.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Text)
}

func TestStore_QueryFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.create(t, CreateParams{Text: "Buy Milk", Category: domain.CategoryShopping})
	report := f.create(t, CreateParams{Text: "Write report", Category: domain.CategoryWork})
	done := f.create(t, CreateParams{Text: "Send invoice", Category: domain.CategoryWork, Priority: domain.PriorityHigh})
	_, err := f.store.ToggleComplete(ctx, done.ID)
	require.NoError(t, err)

	t.Run("search is case-insensitive", func(t *testing.T) {
		got := f.store.Query(domain.Filter{Search: "milk"})
		assert.Equal(t, []domain.TaskID{milk.ID}, taskIDs(got))
	})

	t.Run("category and status combine", func(t *testing.T) {
		got := f.store.Query(domain.Filter{Category: "work", Status: domain.StatusPending})
		assert.Equal(t, []domain.TaskID{report.ID}, taskIDs(got))
	})

	t.Run("priority", func(t *testing.T) {
		got := f.store.Query(domain.Filter{Priority: "high"})
		assert.Equal(t, []domain.TaskID{done.ID}, taskIDs(got))
	})
}

func TestStore_Stats(t *testing.T) {
	f := newFixture(t)
	f.create(t, CreateParams{Text: "a"})
	b := f.create(t, CreateParams{Text: "b"})
	_, err := f.store.ToggleComplete(context.Background(), b.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.Stats{Total: 2, Completed: 1, Pending: 1}, f.store.Stats())
}

func TestStore_Resolve(t *testing.T) {
	f := newFixture(t)
	f.store.ids = &repeatingIDs{ids: []domain.TaskID{"abc123", "abd456", "xyz789"}}
	f.create(t, CreateParams{Text: "one"})
	f.create(t, CreateParams{Text: "two"})
	f.create(t, CreateParams{Text: "three"})

	got, err := f.store.Resolve("abd")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Text)

	got, err = f.store.Resolve("xyz789")
	require.NoError(t, err)
	assert.Equal(t, "three", got.Text)

	_, err = f.store.Resolve("ab")
	assert.ErrorIs(t, err, domain.ErrAmbiguousID)

	_, err = f.store.Resolve("q")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = f.store.Resolve("  ")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestStore_EvaluateDueNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := f.create(t, CreateParams{Text: "Pay rent", DueDate: f.day(0)})
	tomorrow := f.create(t, CreateParams{Text: "Call mom", DueDate: f.day(1)})
	f.create(t, CreateParams{Text: "Later", DueDate: f.day(2)})
	f.create(t, CreateParams{Text: "Overdue", DueDate: f.day(-1)})
	f.create(t, CreateParams{Text: "Undated"})
	done := f.create(t, CreateParams{Text: "Done already", DueDate: f.day(0)})
	_, err := f.store.ToggleComplete(ctx, done.ID)
	require.NoError(t, err)
	saves := f.persist.SaveCount()

	reminders := f.store.EvaluateDueNotifications(ctx, f.clock.NowTime)

	require.Len(t, reminders, 2)
	assert.Equal(t, today.ID, reminders[0].Task.ID)
	assert.Equal(t, domain.ReminderDueToday, reminders[0].Kind)
	assert.Equal(t, tomorrow.ID, reminders[1].Task.ID)
	assert.Equal(t, domain.ReminderDueTomorrow, reminders[1].Kind)
	assert.Equal(t, saves+1, f.persist.SaveCount(), "one save per sweep")

	assert.Equal(t, []testutil.Notification{
		{Title: "To-Do List Reminder", Body: `Reminder: "Pay rent" is due today!`},
		{Title: "To-Do List Reminder", Body: `Reminder: "Call mom" is due tomorrow!`},
	}, f.notifier.Messages())
}

func TestStore_EvaluateDueNotificationsIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, CreateParams{Text: "Pay rent", DueDate: f.day(0)})

	first := f.store.EvaluateDueNotifications(ctx, f.clock.NowTime)
	saves := f.persist.SaveCount()
	second := f.store.EvaluateDueNotifications(ctx, f.clock.NowTime)

	assert.Len(t, first, 1)
	assert.Empty(t, second)
	assert.Len(t, f.notifier.Messages(), 1)
	assert.Equal(t, saves, f.persist.SaveCount(), "nothing fired, nothing saved")
}

func TestStore_EvaluateDueNotificationsAcrossMidnight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, CreateParams{Text: "Dentist", DueDate: f.day(1)})

	day1 := f.store.EvaluateDueNotifications(ctx, f.clock.NowTime)
	day2 := f.store.EvaluateDueNotifications(ctx, f.clock.NowTime.Add(24*time.Hour))
	day2Again := f.store.EvaluateDueNotifications(ctx, f.clock.NowTime.Add(25*time.Hour))

	require.Len(t, day1, 1)
	assert.Equal(t, domain.ReminderDueTomorrow, day1[0].Kind)
	require.Len(t, day2, 1)
	assert.Equal(t, domain.ReminderDueToday, day2[0].Kind)
	assert.Empty(t, day2Again)
}

func TestStore_NotifierFailureStillLatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.notifier.Err = errors.New("permission denied")
	task := f.create(t, CreateParams{Text: "Pay rent", DueDate: f.day(0)})

	reminders := f.store.EvaluateDueNotifications(ctx, f.clock.NowTime)

	require.Len(t, reminders, 1)
	got, err := f.store.Get(task.ID)
	require.NoError(t, err)
	assert.True(t, got.NotifiedToday)
	assert.NoError(t, f.store.SaveErr())
	assert.Equal(t, 1, f.logger.Count("WARN"))
}

func TestStore_SaveFailureKeepsMemoryState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.persist.SaveErr = errors.New("disk full")

	task, err := f.store.Create(ctx, CreateParams{Text: "still here"})
	require.NoError(t, err)
	assert.Error(t, f.store.SaveErr())
	assert.Len(t, f.store.Query(domain.AllFilter()), 1)

	f.persist.SaveErr = nil
	_, err = f.store.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.NoError(t, f.store.SaveErr())

	decoded, err := Decode(f.persist.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.True(t, decoded[0].Completed)
}

func TestStore_LoadRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, CreateParams{Text: "Pay rent", DueDate: f.day(3), Category: domain.CategoryWork, Priority: domain.PriorityHigh})
	f.create(t, CreateParams{Text: "Buy milk"})
	want := f.store.Query(domain.AllFilter())

	reloaded := New(Deps{Persist: f.persist, Clock: f.clock}, DefaultOptions())
	require.NoError(t, reloaded.Load(ctx))

	got := reloaded.Query(domain.AllFilter())
	require.Len(t, got, 2)
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Text, got[i].Text)
		assert.Equal(t, want[i].DueDate, got[i].DueDate)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
	}
}

func TestStore_LoadEmptySnapshot(t *testing.T) {
	for _, data := range []string{"", "  ", "null", "[]", `{"version":1,"tasks":[]}`} {
		persist := testutil.NewMockSnapshotStore()
		persist.Data = []byte(data)
		store := New(Deps{Persist: persist}, DefaultOptions())

		require.NoError(t, store.Load(context.Background()), "snapshot %q", data)
		assert.Empty(t, store.Query(domain.AllFilter()))
	}
}

func TestStore_LoadCorruptSnapshotBlocksSaving(t *testing.T) {
	ctx := context.Background()
	persist := testutil.NewMockSnapshotStore()
	persist.Data = []byte("{not json")
	store := New(Deps{Persist: persist}, DefaultOptions())

	err := store.Load(ctx)
	require.ErrorIs(t, err, domain.ErrSnapshotCorrupt)
	assert.Empty(t, store.Query(domain.AllFilter()))

	_, err = store.Create(ctx, CreateParams{Text: "in memory only"})
	require.NoError(t, err)
	assert.ErrorIs(t, store.SaveErr(), domain.ErrSaveDisabled)
	assert.Equal(t, "{not json", string(persist.Data), "unreadable snapshot left alone")
	assert.Len(t, store.Query(domain.AllFilter()), 1)

	persist.Data = nil
	require.NoError(t, store.Load(ctx))
	_, err = store.Create(ctx, CreateParams{Text: "saved"})
	require.NoError(t, err)
	assert.NoError(t, store.SaveErr())
}

func TestStore_LoadReadError(t *testing.T) {
	persist := testutil.NewMockSnapshotStore()
	persist.LoadErr = errors.New("permission denied")
	store := New(Deps{Persist: persist}, DefaultOptions())

	assert.Error(t, store.Load(context.Background()))
	assert.Empty(t, store.Query(domain.AllFilter()))
}

func TestStore_LoadBrowserSnapshot(t *testing.T) {
	persist := testutil.NewMockSnapshotStore()
	persist.Data = []byte(`[
		{"id":1714557600000,"text":"Buy milk","completed":false,"createdAt":"2024-05-01T10:00:00.000Z","dueDate":"2024-05-02T00:00:00.000Z","category":"shopping","priority":"medium","notifiedToday":false,"notifiedTomorrow":true},
		{"id":1714557600000,"text":"Duplicate id","completed":true,"createdAt":"2024-05-01T11:00:00.000Z","dueDate":null},
		{"id":1714557700000,"text":"No extras","completed":false,"createdAt":"2024-05-01T12:00:00.000Z"}
	]`)
	logger := &testutil.MockLogger{}
	store := New(Deps{Persist: persist, IDs: &testutil.SequenceIDs{}, Logger: logger}, DefaultOptions())

	require.NoError(t, store.Load(context.Background()))

	milk, err := store.Get("1714557600000")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", milk.Text)
	assert.Equal(t, "2024-05-02", milk.DueDate.String())
	assert.True(t, milk.NotifiedTomorrow)
	assert.Equal(t, domain.PriorityMedium, milk.Priority)

	dup, err := store.Get("id-1")
	require.NoError(t, err)
	assert.Equal(t, "Duplicate id", dup.Text)
	assert.Equal(t, 1, logger.Count("WARN"))

	plain, err := store.Get("1714557700000")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryPersonal, plain.Category)
	assert.Equal(t, domain.PriorityLow, plain.Priority)
}

func TestStore_Import(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	existing := f.create(t, CreateParams{Text: "existing"})

	res, err := f.store.Import(ctx, []*domain.Task{
		{ID: existing.ID, Text: "collides", Category: domain.CategoryWork, Priority: domain.PriorityHigh},
		{ID: "fresh", Text: "new one"},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, ImportResult{Added: 2, Renamed: 1}, res)
	all := f.store.Query(domain.AllFilter())
	require.Len(t, all, 3)
	seen := map[domain.TaskID]bool{}
	for _, task := range all {
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
		assert.False(t, task.CreatedAt.IsZero())
	}
}

func TestStore_ImportReplace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, CreateParams{Text: "old"})

	res, err := f.store.Import(ctx, []*domain.Task{{ID: "x", Text: "new"}}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Added)
	all := f.store.Query(domain.AllFilter())
	require.Len(t, all, 1)
	assert.Equal(t, "new", all[0].Text)
}

func TestStore_ImportRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Import(ctx, []*domain.Task{{ID: "x", Text: "  "}}, true)
	assert.ErrorIs(t, err, domain.ErrEmptyText)

	_, err = f.store.Import(ctx, []*domain.Task{{ID: "x", Text: "ok", Category: "errands"}}, true)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	assert.Empty(t, f.store.Query(domain.AllFilter()), "nothing applied on error")
}

func TestStore_Snapshot(t *testing.T) {
	f := newFixture(t)
	f.create(t, CreateParams{Text: "Buy milk"})

	data, err := f.store.Snapshot()
	require.NoError(t, err)

	tasks, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Text)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	f := newFixture(t)
	f.store.ids = UUIDGenerator{}
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			f.store.EvaluateDueNotifications(ctx, f.clock.NowTime)
			f.store.Query(domain.AllFilter())
		}
	}()
	for i := 0; i < 50; i++ {
		_, err := f.store.Create(ctx, CreateParams{Text: "task", DueDate: f.day(i % 2)})
		require.NoError(t, err)
	}
	<-done

	assert.Equal(t, 50, f.store.Stats().Total)
}

// repeatingIDs returns ids from a fixed list, repeating the last one.
type repeatingIDs struct {
	ids []domain.TaskID
	i   int
}

func (r *repeatingIDs) NewID() domain.TaskID {
	id := r.ids[min(r.i, len(r.ids)-1)]
	r.i++
	return id
}

func taskIDs(tasks []*domain.Task) []domain.TaskID {
	out := make([]domain.TaskID, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
