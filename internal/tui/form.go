package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/usecase"
)

// taskFields holds the values bound to the add/edit form.
type taskFields struct {
	Text     string
	Due      string
	Category string
	Priority string
}

// formState is an open add/edit form. An empty editing id means add.
type formState struct {
	form      *huh.Form
	fields    *taskFields
	editingID domain.TaskID
}

// newFields returns form values for a new task.
func (m *Model) newFields() *taskFields {
	cfg := m.container.AppConfig.Tasks
	return &taskFields{
		Category: string(cfg.DefaultCategory),
		Priority: string(cfg.DefaultPriority),
	}
}

// fieldsFor returns form values pre-filled from a task.
func fieldsFor(t *domain.Task) *taskFields {
	f := &taskFields{
		Text:     t.Text,
		Category: string(t.Category),
		Priority: string(t.Priority),
	}
	if t.HasDueDate() {
		f.Due = t.DueDate.String()
	}
	return f
}

// buildTaskForm creates the huh form bound to fields.
func (m *Model) buildTaskForm(title string, fields *taskFields) *huh.Form {
	categories := make([]huh.Option[string], 0, len(m.categories))
	for _, c := range m.categories {
		categories = append(categories, huh.NewOption(c.Display(), string(c)))
	}
	priorities := make([]huh.Option[string], 0, 3)
	for _, p := range domain.AllPriorities() {
		priorities = append(priorities, huh.NewOption(p.Display(), string(p)))
	}

	keymap := huh.NewDefaultKeyMap()
	keymap.Quit = key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("What needs to be done?").
				CharLimit(500).
				Value(&fields.Text).
				Validate(validateText),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, today, tomorrow or +Nd. Leave empty for none.").
				Value(&fields.Due).
				Validate(m.validateDue),
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(&fields.Category),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorities...).
				Value(&fields.Priority),
		),
	).WithKeyMap(keymap).WithWidth(m.formWidth()).WithShowHelp(true)
}

func validateText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("text is required")
	}
	return nil
}

func (m *Model) validateDue(s string) error {
	_, err := domain.ParseDueDate(s, m.container.Clock.Now())
	return err
}

func (m *Model) formWidth() int {
	w := m.width - 4
	if w > 80 {
		w = 80
	}
	if w < 30 {
		w = 30
	}
	return w
}

// openNewForm shows the form for a new task.
func (m *Model) openNewForm() tea.Cmd {
	fields := m.newFields()
	m.form = &formState{
		form:   m.buildTaskForm("New task", fields),
		fields: fields,
	}
	m.mode = ModeForm
	return m.form.form.Init()
}

// openEditForm shows the form pre-filled with task.
func (m *Model) openEditForm(task *domain.Task) tea.Cmd {
	fields := fieldsFor(task)
	m.form = &formState{
		form:      m.buildTaskForm("Edit task", fields),
		fields:    fields,
		editingID: task.ID,
	}
	m.mode = ModeForm
	return m.form.form.Init()
}

// updateForm forwards msg to the open form and submits it when completed.
func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = ModeNormal
		return m, nil
	}

	mdl, cmd := m.form.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form.form = f
	}

	switch m.form.form.State {
	case huh.StateCompleted:
		submit := m.submitForm(m.form)
		m.form = nil
		m.mode = ModeNormal
		return m, submit
	case huh.StateAborted:
		m.form = nil
		m.mode = ModeNormal
		return m, nil
	case huh.StateNormal:
	}

	return m, cmd
}

// submitForm returns a command that creates or updates the task.
func (m *Model) submitForm(fs *formState) tea.Cmd {
	f := *fs.fields
	if fs.editingID == "" {
		uc := m.container.NewTaskUseCase()
		return func() tea.Msg {
			out, err := uc.Execute(context.Background(), usecase.NewTaskInput{
				Text:     f.Text,
				Due:      f.Due,
				Category: f.Category,
				Priority: f.Priority,
			})
			if err != nil {
				return MsgError{Err: err}
			}
			return MsgTaskChanged{Task: out.Task, Verb: "created", SaveErr: out.SaveErr}
		}
	}

	uc := m.container.EditTaskUseCase()
	id := fs.editingID
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.EditTaskInput{
			Ref:      string(id),
			Text:     &f.Text,
			Due:      &f.Due,
			Category: &f.Category,
			Priority: &f.Priority,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{Task: out.Task, Verb: "updated", SaveErr: out.SaveErr}
	}
}
