package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/usecase"
)

func TestOpenNewForm_DefaultsFromConfig(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Tasks.DefaultCategory = domain.CategoryWork
	cfg.Tasks.DefaultPriority = domain.PriorityMedium
	env := newTestEnv(t, cfg)
	m := env.start()

	m.Update(runes("n"))

	assert.Equal(t, ModeForm, m.mode)
	require.NotNil(t, m.form)
	assert.Empty(t, m.form.editingID)
	assert.Equal(t, &taskFields{Category: "work", Priority: "medium"}, m.form.fields)
	assert.NotEmpty(t, m.View())
}

func TestOpenEditForm_Prefilled(t *testing.T) {
	env := newTestEnv(t, nil)
	task := env.add(t, usecase.NewTaskInput{Text: "Pay rent", Due: "2026-05-03", Category: "other", Priority: "high"})
	m := env.start()
	run(t, m, m.loadTasks())

	m.Update(runes("e"))

	assert.Equal(t, ModeForm, m.mode)
	require.NotNil(t, m.form)
	assert.Equal(t, task.ID, m.form.editingID)
	assert.Equal(t, &taskFields{Text: "Pay rent", Due: "2026-05-03", Category: "other", Priority: "high"}, m.form.fields)
}

func TestSubmitForm_Create(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.start()

	next := run(t, m, m.submitForm(&formState{
		fields: &taskFields{Text: "  Buy milk  ", Due: "tomorrow", Category: "shopping", Priority: "high"},
	}))
	run(t, m, next)

	require.Len(t, m.tasks, 1)
	got := m.tasks[0]
	assert.Equal(t, "Buy milk", got.Text)
	assert.Equal(t, domain.CategoryShopping, got.Category)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2026-05-02", got.DueDate.String())
	assert.Equal(t, "Task created: Buy milk", m.notice)
}

func TestSubmitForm_EditClearsDueDate(t *testing.T) {
	env := newTestEnv(t, nil)
	task := env.add(t, usecase.NewTaskInput{Text: "Pay rent", Due: "today"})
	m := env.start()

	run(t, m, m.submitForm(&formState{
		fields:    &taskFields{Text: "Pay rent in cash", Category: "personal", Priority: "low"},
		editingID: task.ID,
	}))

	got, err := env.container.Store.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pay rent in cash", got.Text)
	assert.False(t, got.HasDueDate())
}

func TestSubmitForm_InvalidCategoryReportsError(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.start()

	run(t, m, m.submitForm(&formState{
		fields: &taskFields{Text: "Buy milk", Category: "groceries", Priority: "low"},
	}))

	assert.ErrorIs(t, m.err, domain.ErrInvalidCategory)
	assert.Empty(t, env.container.Store.Query(domain.AllFilter()))
}

func TestFormValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.start()

	assert.Error(t, validateText("   "))
	assert.NoError(t, validateText("Buy milk"))

	assert.NoError(t, m.validateDue(""))
	assert.NoError(t, m.validateDue("+3d"))
	assert.ErrorIs(t, m.validateDue("next week"), domain.ErrInvalidDate)
}

func TestFormWidth(t *testing.T) {
	m := &Model{width: 200}
	assert.Equal(t, 80, m.formWidth())

	m.width = 20
	assert.Equal(t, 30, m.formWidth())

	m.width = 60
	assert.Equal(t, 56, m.formWidth())
}
