package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/taskstore"
	"gopkg.in/yaml.v3"
)

// ImportTasksInput contains the parameters for importing tasks.
type ImportTasksInput struct {
	Format  string // json, yaml, or empty to detect from the content
	Data    []byte
	Replace bool // Discard the current collection first
}

// ImportTasksOutput reports what was imported.
type ImportTasksOutput struct {
	SaveErr error
	Added   int
	Renamed int // Tasks whose id collided and were re-keyed
}

// ImportTasks adds tasks from a JSON snapshot, a bare JSON array written by
// the browser version, or a YAML export.
type ImportTasks struct {
	tasks TaskStore
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(tasks TaskStore) *ImportTasks {
	return &ImportTasks{tasks: tasks}
}

// Execute decodes and imports the data.
func (uc *ImportTasks) Execute(ctx context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	format := strings.ToLower(in.Format)
	if format == "" {
		format = detectFormat(in.Data)
	}

	var tasks []*domain.Task
	switch format {
	case FormatJSON:
		decoded, err := taskstore.Decode(in.Data)
		if err != nil {
			return nil, err
		}
		tasks = decoded
	case FormatYAML, "yml":
		decoded, err := decodeYAML(in.Data)
		if err != nil {
			return nil, err
		}
		tasks = decoded
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, in.Format)
	}

	res, err := uc.tasks.Import(ctx, tasks, in.Replace)
	if err != nil {
		return nil, err
	}
	return &ImportTasksOutput{
		Added:   res.Added,
		Renamed: res.Renamed,
		SaveErr: uc.tasks.SaveErr(),
	}, nil
}

func detectFormat(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// decodeYAML accepts a YAML export or a bare list of tasks.
func decodeYAML(data []byte) ([]*domain.Task, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var tasks []*domain.Task
		if err := root.Decode(&tasks); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
		}
		return tasks, nil
	}

	var doc yamlExport
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	if doc.Version > taskstore.SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", domain.ErrSnapshotCorrupt, doc.Version)
	}
	return doc.Tasks, nil
}
