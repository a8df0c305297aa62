package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/todo/internal/app"
	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/testutil"
	"github.com/runoshun/todo/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	container *app.Container
	persist   *testutil.MockSnapshotStore
	notifier  *testutil.MockNotifier
}

// newTestContainer creates a container with in-memory ports and a fixed clock.
func newTestContainer(t *testing.T) *testEnv {
	t.Helper()
	persist := testutil.NewMockSnapshotStore()
	notifier := &testutil.MockNotifier{}
	c := app.NewWithDeps(
		app.Config{DataDir: t.TempDir(), Stdout: &bytes.Buffer{}},
		nil,
		persist,
		notifier,
		&testutil.MockClock{NowTime: testNow},
		nil,
		nil,
	)
	c.ConfigManager = testutil.NewMockConfigManager()
	c.Prefs = &testutil.MockPrefsStore{}
	return &testEnv{container: c, persist: persist, notifier: notifier}
}

func (e *testEnv) add(t *testing.T, in usecase.NewTaskInput) *domain.Task {
	t.Helper()
	out, err := e.container.NewTaskUseCase().Execute(context.Background(), in)
	require.NoError(t, err)
	return out.Task
}

func TestNewAddCommand_CreatesTask(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	var buf bytes.Buffer

	cmd := newAddCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"Buy", "milk", "--due", "tomorrow", "-c", "shopping", "-p", "high"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Created task ")
	assert.Contains(t, buf.String(), ": Buy milk")

	tasks := env.container.Store.Query(domain.AllFilter())
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Text)
	assert.Equal(t, domain.CategoryShopping, tasks[0].Category)
	assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, "2026-05-02", tasks[0].DueDate.String())
	assert.Equal(t, 1, env.persist.SaveCount())
}

func TestNewAddCommand_InvalidPriority(t *testing.T) {
	env := newTestContainer(t)

	cmd := newAddCommand(env.container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"Buy milk", "--priority", "urgent"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	assert.Empty(t, env.container.Store.Query(domain.AllFilter()))
}

func TestNewAddCommand_RequiresText(t *testing.T) {
	env := newTestContainer(t)

	cmd := newAddCommand(env.container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
}

func TestNewAddCommand_SaveFailureWarns(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	env.persist.SaveErr = assert.AnError
	var out, errOut bytes.Buffer

	cmd := newAddCommand(env.container)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"Buy milk"})

	// Execute
	err := cmd.Execute()

	// Assert: the task exists for this run and the failure is reported
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Created task")
	assert.Contains(t, errOut.String(), "Warning: changes were not saved")
	assert.Len(t, env.container.Store.Query(domain.AllFilter()), 1)
}

func TestNewEditCommand_ChangesGivenFields(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	task := env.add(t, usecase.NewTaskInput{Text: "Pay rent", Due: "today", Category: "personal", Priority: "low"})
	var buf bytes.Buffer

	cmd := newEditCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{task.ID.Short(), "--text", "Pay rent in cash", "--due", "none"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Updated task "+task.ID.Short()+": Pay rent in cash")

	got, err := env.container.Store.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pay rent in cash", got.Text)
	assert.False(t, got.HasDueDate())
	assert.Equal(t, domain.CategoryPersonal, got.Category, "unchanged")
	assert.Equal(t, domain.PriorityLow, got.Priority, "unchanged")
}

func TestNewEditCommand_NoFields(t *testing.T) {
	env := newTestContainer(t)
	task := env.add(t, usecase.NewTaskInput{Text: "Pay rent"})

	cmd := newEditCommand(env.container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{task.ID.Short()})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
}

func TestNewEditCommand_EditorExcludesFieldFlags(t *testing.T) {
	env := newTestContainer(t)
	task := env.add(t, usecase.NewTaskInput{Text: "Pay rent"})

	cmd := newEditCommand(env.container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{task.ID.Short(), "--editor", "--text", "x"})

	assert.Error(t, cmd.Execute())
}

func TestNewEditCommand_Editor(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	task := env.add(t, usecase.NewTaskInput{Text: "Buy milk", Category: "shopping", Priority: "low"})
	editor := &testutil.MockEditor{
		EditFunc: func(path string) error {
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			edited := strings.Replace(string(content), "Buy milk", "Buy oat milk", 1)
			edited = strings.Replace(edited, "priority: low", "priority: high", 1)
			return os.WriteFile(path, []byte(edited), 0o600)
		},
	}
	env.container.Editor = editor
	var buf bytes.Buffer

	cmd := newEditCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{task.ID.Short(), "--editor"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.True(t, editor.Called)
	assert.Contains(t, buf.String(), "Updated task "+task.ID.Short()+": Buy oat milk")

	got, err := env.container.Store.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
}

func TestNewEditCommand_EditorUnchanged(t *testing.T) {
	env := newTestContainer(t)
	task := env.add(t, usecase.NewTaskInput{Text: "Buy milk"})
	env.container.Editor = &testutil.MockEditor{}
	var buf bytes.Buffer

	cmd := newEditCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{task.ID.Short(), "-e"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No changes to task "+task.ID.Short()+"\n", buf.String())
	assert.Equal(t, 1, env.persist.SaveCount(), "only the add was saved")
}

func TestNewToggleCommand(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	task := env.add(t, usecase.NewTaskInput{Text: "Buy milk"})

	// Execute: first toggle completes
	var buf bytes.Buffer
	cmd := newToggleCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{task.ID.Short()})
	require.NoError(t, cmd.Execute())

	// Assert
	assert.Equal(t, "Task "+task.ID.Short()+" is now completed: Buy milk\n", buf.String())
	got, err := env.container.Store.Get(task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	// Execute: second toggle reopens
	buf.Reset()
	cmd = newToggleCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{string(task.ID)})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "is now pending")
}

func TestNewRmCommand(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	task := env.add(t, usecase.NewTaskInput{Text: "Buy milk"})
	var buf bytes.Buffer

	cmd := newRmCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{task.ID.Short()})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Deleted task "+task.ID.Short()+": Buy milk\n", buf.String())
	_, err = env.container.Store.Get(task.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestNewRmCommand_NotFound(t *testing.T) {
	env := newTestContainer(t)

	cmd := newRmCommand(env.container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"ffffffff"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestNewListCommand_Table(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	env.add(t, usecase.NewTaskInput{Text: "Buy milk", Category: "shopping"})
	env.add(t, usecase.NewTaskInput{Text: "Pay rent", Due: "2026-04-28", Priority: "high"})
	done := env.add(t, usecase.NewTaskInput{Text: "Call mom"})
	_, err := env.container.ToggleTaskUseCase().Execute(context.Background(), usecase.ToggleTaskInput{Ref: string(done.ID)})
	require.NoError(t, err)
	var buf bytes.Buffer

	cmd := newListCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	// Execute
	err = cmd.Execute()

	// Assert
	require.NoError(t, err)
	output := buf.String()
	lines := strings.Split(output, "\n")
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "PRIORITY")
	assert.Contains(t, lines[0], "TEXT")
	assert.Contains(t, lines[1], "Pay rent", "pending high priority first")
	assert.Contains(t, lines[1], "Apr 28 !")
	assert.Contains(t, lines[2], "Buy milk")
	assert.Contains(t, lines[3], "[x]")
	assert.Contains(t, lines[3], "Call mom")
	assert.Contains(t, output, "Total: 3, Completed: 1, Pending: 2")
	assert.NotContains(t, output, "Showing")
}

func TestNewListCommand_Filters(t *testing.T) {
	env := newTestContainer(t)
	env.add(t, usecase.NewTaskInput{Text: "Buy milk", Category: "shopping"})
	env.add(t, usecase.NewTaskInput{Text: "Buy stamps", Category: "personal"})
	env.add(t, usecase.NewTaskInput{Text: "Write report", Category: "work"})
	var buf bytes.Buffer

	cmd := newListCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--search", "BUY", "--category", "shopping", "--status", "pending"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Buy milk")
	assert.NotContains(t, buf.String(), "Buy stamps")
	assert.NotContains(t, buf.String(), "Write report")
	assert.Contains(t, buf.String(), "Showing 1 of 3\n")
}

func TestNewListCommand_JSON(t *testing.T) {
	env := newTestContainer(t)
	task := env.add(t, usecase.NewTaskInput{Text: "Buy milk", Category: "shopping"})
	var buf bytes.Buffer

	cmd := newListCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--json"})

	require.NoError(t, cmd.Execute())

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, string(task.ID), got[0]["id"])
	assert.Equal(t, "Buy milk", got[0]["text"])
}

func TestNewListCommand_Empty(t *testing.T) {
	tests := []struct {
		name string
		seed bool
		args []string
		want string
	}{
		{"no tasks", false, nil, "No tasks yet. Add one with: todo add <text>\n"},
		{"no match", true, []string{"--status", "completed"}, "No tasks match the filter.\n"},
		{"filter on empty list", false, []string{"--search", "milk"}, "No tasks match the filter.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestContainer(t)
			if tt.seed {
				env.add(t, usecase.NewTaskInput{Text: "Buy milk"})
			}
			var buf bytes.Buffer

			cmd := newListCommand(env.container)
			cmd.SetOut(&buf)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNewListCommand_InvalidStatus(t *testing.T) {
	env := newTestContainer(t)

	cmd := newListCommand(env.container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--status", "archived"})

	assert.ErrorIs(t, cmd.Execute(), domain.ErrInvalidStatus)
}

func TestNewShowCommand(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	task := env.add(t, usecase.NewTaskInput{Text: "Pay rent", Due: "today", Category: "personal", Priority: "high"})
	var buf bytes.Buffer

	cmd := newShowCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{task.ID.Short()})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "ID:       "+string(task.ID))
	assert.Contains(t, output, "Text:     Pay rent")
	assert.Contains(t, output, "Status:   pending")
	assert.Contains(t, output, "Priority: High")
	assert.Contains(t, output, "Category: Personal")
	assert.Contains(t, output, "Due:      2026-05-01 (today)")
	assert.Contains(t, output, "Created:  2026-05-01 10:00")
}

func TestNewShowCommand_JSON(t *testing.T) {
	env := newTestContainer(t)
	task := env.add(t, usecase.NewTaskInput{Text: "Pay rent"})
	var buf bytes.Buffer

	cmd := newShowCommand(env.container)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{task.ID.Short(), "--json"})

	require.NoError(t, cmd.Execute())

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Pay rent", got["text"])
}

func TestNewStatsCommand(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	env.add(t, usecase.NewTaskInput{Text: "Buy milk", Category: "shopping", Due: "today"})
	env.add(t, usecase.NewTaskInput{Text: "Write report", Category: "work", Due: "2026-04-20"})
	var buf bytes.Buffer

	cmd := newStatsCommand(env.container)
	cmd.SetOut(&buf)

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "Total: 2, Completed: 0, Pending: 2")
	assert.Contains(t, output, "Overdue: 1, Due today: 1")
	assert.Contains(t, output, "CATEGORY")
	assert.Contains(t, output, "Shopping")
	assert.Contains(t, output, "Work")
}

func TestFormatDue(t *testing.T) {
	due := func(s string, completed bool) *domain.Task {
		d, err := domain.ParseDate(s)
		require.NoError(t, err)
		return &domain.Task{DueDate: &d, Completed: completed}
	}

	assert.Equal(t, "-", formatDue(&domain.Task{}, testNow))
	assert.Equal(t, "Apr 28 !", formatDue(due("2026-04-28", false), testNow))
	assert.Equal(t, "Apr 28", formatDue(due("2026-04-28", true), testNow))
	assert.Equal(t, "Jun 10", formatDue(due("2026-06-10", false), testNow))
}
