// Package executor provides command execution functionality.
package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/runoshun/todo/internal/domain"
)

// Client implements domain.CommandExecutor interface.
type Client struct{}

// NewClient creates a new command executor client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*Client)(nil)

// Execute runs the command and returns its combined output.
func (c *Client) Execute(ctx context.Context, cmd *domain.ExecCommand) ([]byte, error) {
	// #nosec G204 - cmd.Program and cmd.Args come from configuration or use case code
	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	return execCmd.CombinedOutput()
}

// ExecuteInteractive runs a command with stdin/stdout/stderr connected to the terminal.
func (c *Client) ExecuteInteractive(ctx context.Context, cmd *domain.ExecCommand) error {
	// #nosec G204 - cmd.Program and cmd.Args come from configuration or use case code
	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	execCmd.Stdin = os.Stdin
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	return execCmd.Run()
}

// Editor opens files in $VISUAL or $EDITOR (vi if neither is set).
type Editor struct {
	exec   domain.CommandExecutor
	getenv func(string) string
}

// NewEditor creates an Editor running through exec.
func NewEditor(exec domain.CommandExecutor) *Editor {
	return &Editor{exec: exec, getenv: os.Getenv}
}

// Ensure Editor implements domain.Editor interface.
var _ domain.Editor = (*Editor)(nil)

// Program returns the editor command line.
func (e *Editor) Program() string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if v := e.getenv(name); v != "" {
			return v
		}
	}
	return "vi"
}

// Edit runs the editor on path and waits for it to exit.
// The editor value may carry flags, e.g. "code --wait".
func (e *Editor) Edit(ctx context.Context, path string) error {
	cmd := domain.NewShellCommand(e.Program()+` "$1"`, "", path)
	if err := e.exec.ExecuteInteractive(ctx, cmd); err != nil {
		return fmt.Errorf("run editor %q: %w", e.Program(), err)
	}
	return nil
}
