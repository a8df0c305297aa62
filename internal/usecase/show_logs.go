package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/todo/internal/domain"
)

// ShowLogsInput contains the parameters for showing logs.
type ShowLogsInput struct {
	Ref   string // Task id or prefix; empty shows every entry
	Lines int    // Number of lines to display from the end (0 = all)
}

// ShowLogsOutput contains the log content.
type ShowLogsOutput struct {
	LogPath string // Path to the log file
	Content string // Selected lines
}

// ShowLogs is the use case for viewing the log file.
type ShowLogs struct {
	tasks   TaskStore
	dataDir string
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(tasks TaskStore, dataDir string) *ShowLogs {
	return &ShowLogs{
		tasks:   tasks,
		dataDir: dataDir,
	}
}

// Execute reads the log file, optionally keeping only one task's lines.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	var tag string
	if in.Ref != "" {
		task, err := uc.tasks.Resolve(in.Ref)
		if err != nil {
			return nil, err
		}
		tag = "[" + task.ID.LogTag() + "]"
	}

	logPath := domain.GlobalLogPath(uc.dataDir)
	content, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", domain.ErrNoLogFile, logPath)
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	if tag != "" {
		kept := lines[:0]
		for _, line := range lines {
			if strings.Contains(line, tag) {
				kept = append(kept, line)
			}
		}
		lines = kept
	}
	if in.Lines > 0 && len(lines) > in.Lines {
		lines = lines[len(lines)-in.Lines:]
	}

	result := strings.Join(lines, "\n")
	if result != "" {
		result += "\n"
	}
	return &ShowLogsOutput{
		LogPath: logPath,
		Content: result,
	}, nil
}
