// Package notify implements reminder delivery backends.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/todo/internal/domain"
)

// Multi delivers to every backend in order. Each backend is tried even if
// an earlier one fails; the failures are joined.
type Multi []domain.Notifier

// Ensure Multi implements domain.Notifier.
var _ domain.Notifier = Multi(nil)

// Notify sends the message to all backends.
func (m Multi) Notify(ctx context.Context, title, body string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log writes reminders to the application log.
type Log struct {
	logger domain.Logger
}

// NewLog returns a Log backend.
func NewLog(logger domain.Logger) *Log {
	return &Log{logger: logger}
}

// Notify logs the message at info level.
func (l *Log) Notify(_ context.Context, title, body string) error {
	l.logger.Info("", "notify", title+": "+body)
	return nil
}

// Command runs an external program with the title and body as arguments,
// e.g. notify-send.
type Command struct {
	exec    domain.CommandExecutor
	program string
}

// NewCommand returns a Command backend. program may include flags.
func NewCommand(exec domain.CommandExecutor, program string) *Command {
	return &Command{exec: exec, program: program}
}

// Notify runs the program.
func (c *Command) Notify(ctx context.Context, title, body string) error {
	cmd := domain.NewShellCommand(c.program+` "$1" "$2"`, "", title, body)
	out, err := c.exec.Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("notify command %q: %w: %s", c.program, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Deps holds what the backends may need.
type Deps struct {
	Out    io.Writer
	Exec   domain.CommandExecutor
	Logger domain.Logger
}

// Build assembles the configured backends into one Notifier.
func Build(cfg domain.NotifyConfig, deps Deps) (domain.Notifier, error) {
	var out Multi
	for _, name := range cfg.Backends {
		switch name {
		case domain.NotifyTerminal:
			w := deps.Out
			if w == nil {
				w = os.Stdout
			}
			out = append(out, NewTerminal(w))
		case domain.NotifyCommand:
			program := cfg.Command
			if program == "" {
				program = domain.DefaultNotifyCommand
			}
			out = append(out, NewCommand(deps.Exec, program))
		case domain.NotifyMaildir:
			if cfg.Maildir == "" {
				return nil, fmt.Errorf("notify backend %q needs [notify] maildir", name)
			}
			out = append(out, NewMaildir(expandHome(cfg.Maildir)))
		case domain.NotifyLog:
			out = append(out, NewLog(deps.Logger))
		default:
			return nil, fmt.Errorf("%w: notify backend %q", domain.ErrUnknownBackend, name)
		}
	}
	return out, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
