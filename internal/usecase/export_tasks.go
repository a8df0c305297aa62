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

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// yamlExport is the document written by a YAML export.
type yamlExport struct {
	Tasks   []*domain.Task `yaml:"tasks"`
	Version int            `yaml:"version"`
}

// ExportTasksInput contains the parameters for exporting tasks.
type ExportTasksInput struct {
	Format string // json (default) or yaml
}

// ExportTasksOutput contains the encoded collection.
type ExportTasksOutput struct {
	Data  []byte
	Count int
}

// ExportTasks encodes the whole collection.
type ExportTasks struct {
	tasks TaskStore
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(tasks TaskStore) *ExportTasks {
	return &ExportTasks{tasks: tasks}
}

// Execute encodes the collection in the requested format.
func (uc *ExportTasks) Execute(_ context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	all := uc.tasks.Query(domain.AllFilter())

	switch strings.ToLower(in.Format) {
	case "", FormatJSON:
		data, err := uc.tasks.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("encode snapshot: %w", err)
		}
		return &ExportTasksOutput{Data: data, Count: len(all)}, nil
	case FormatYAML, "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(yamlExport{Version: taskstore.SnapshotVersion, Tasks: all}); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return &ExportTasksOutput{Data: buf.Bytes(), Count: len(all)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, in.Format)
	}
}
