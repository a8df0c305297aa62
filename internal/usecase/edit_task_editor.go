package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/taskstore"
	"gopkg.in/yaml.v3"
)

// taskDocument is the frontmatter of the file opened in the editor.
type taskDocument struct {
	Due      string `yaml:"due"`
	Category string `yaml:"category"`
	Priority string `yaml:"priority"`
}

// RenderTaskDocument renders a task as YAML frontmatter followed by its text.
func RenderTaskDocument(t *domain.Task) (string, error) {
	doc := taskDocument{
		Category: string(t.Category),
		Priority: string(t.Priority),
	}
	if t.HasDueDate() {
		doc.Due = t.DueDate.String()
	}
	front, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return "---\n" + string(front) + "---\n\n" + t.Text + "\n", nil
}

// ParseTaskDocument parses an edited document into update parameters.
// Relative due dates are resolved against now.
func ParseTaskDocument(content string, now time.Time) (taskstore.UpdateParams, error) {
	var params taskstore.UpdateParams

	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return params, errors.New("invalid frontmatter: missing opening ---")
	}
	lines := strings.Split(content[len("---\n"):], "\n")
	endIdx := -1
	for i, line := range lines {
		if line == "---" {
			endIdx = i
			break
		}
	}
	if endIdx == -1 {
		return params, errors.New("invalid frontmatter: missing closing ---")
	}

	var doc taskDocument
	front := strings.Join(lines[:endIdx], "\n")
	if err := yaml.Unmarshal([]byte(front), &doc); err != nil {
		return params, fmt.Errorf("invalid frontmatter: %w", err)
	}

	params.Text = strings.TrimSpace(strings.Join(lines[endIdx+1:], "\n"))
	if params.Text == "" {
		return params, domain.ErrEmptyText
	}
	params.Category = domain.Category(doc.Category)
	if doc.Priority != "" {
		p, err := domain.ParsePriority(doc.Priority)
		if err != nil {
			return params, err
		}
		params.Priority = p
	}
	due, err := domain.ParseDueDate(doc.Due, now)
	if err != nil {
		return params, err
	}
	params.DueDate = due
	return params, nil
}

// EditTaskInEditorInput contains the parameters for editing a task in $EDITOR.
type EditTaskInEditorInput struct {
	Ref string // Task id or unique id prefix (required)
}

// EditTaskInEditorOutput contains the result of an editor session.
type EditTaskInEditorOutput struct {
	Task    *domain.Task // The task after the edit
	SaveErr error        // Non-nil if the change could not be persisted
	Changed bool         // False if the file was saved unchanged
}

// EditTaskInEditor opens a task in the user's editor and applies the result.
type EditTaskInEditor struct {
	tasks  TaskStore
	editor domain.Editor
	clock  domain.Clock
}

// NewEditTaskInEditor creates a new EditTaskInEditor use case.
func NewEditTaskInEditor(tasks TaskStore, editor domain.Editor, clock domain.Clock) *EditTaskInEditor {
	return &EditTaskInEditor{
		tasks:  tasks,
		editor: editor,
		clock:  clock,
	}
}

// Execute writes the task to a temporary file, waits for the editor and
// applies the edited document.
func (uc *EditTaskInEditor) Execute(ctx context.Context, in EditTaskInEditorInput) (*EditTaskInEditorOutput, error) {
	task, err := uc.tasks.Resolve(in.Ref)
	if err != nil {
		return nil, err
	}

	original, err := RenderTaskDocument(task)
	if err != nil {
		return nil, fmt.Errorf("render task: %w", err)
	}

	f, err := os.CreateTemp("", "todo-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()
	if _, err := f.WriteString(original); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := uc.editor.Edit(ctx, path); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}
	if string(edited) == original {
		return &EditTaskInEditorOutput{Task: task}, nil
	}

	params, err := ParseTaskDocument(string(edited), uc.clock.Now())
	if err != nil {
		return nil, err
	}
	updated, err := uc.tasks.Update(ctx, task.ID, params)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return &EditTaskInEditorOutput{Task: updated, SaveErr: uc.tasks.SaveErr(), Changed: true}, nil
}
