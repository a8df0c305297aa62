package domain

import (
	"context"
	"time"
)

// SnapshotStore persists the serialized task collection as one opaque blob.
type SnapshotStore interface {
	// Load returns the last saved snapshot, or nil if nothing was saved yet.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snapshot []byte) error
}

// SnapshotRevision describes one stored version of the snapshot.
type SnapshotRevision struct {
	SavedAt time.Time
	ID      string // Commit hash or row revision; empty for plain files
	Size    int64  // Stored size in bytes
}

// SnapshotInspector is implemented by stores that can describe what they hold.
type SnapshotInspector interface {
	// Revisions returns up to limit stored versions, newest first.
	// A limit of 0 means all. Nothing saved yet yields an empty slice.
	Revisions(ctx context.Context, limit int) ([]SnapshotRevision, error)
}

// Notifier delivers a message to the user, best effort.
// Callers log returned errors and otherwise ignore them.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// IDGenerator produces new task ids.
type IDGenerator interface {
	NewID() TaskID
}

// Logger provides task-aware logging.
type Logger interface {
	Info(taskID TaskID, category, msg string)
	Debug(taskID TaskID, category, msg string)
	Warn(taskID TaskID, category, msg string)
	Error(taskID TaskID, category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

// Info discards the entry.
func (NopLogger) Info(TaskID, string, string) {}

// Debug discards the entry.
func (NopLogger) Debug(TaskID, string, string) {}

// Warn discards the entry.
func (NopLogger) Warn(TaskID, string, string) {}

// Error discards the entry.
func (NopLogger) Error(TaskID, string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the configuration merged over the defaults.
	Load() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// ConfigInfo returns information about the config file.
	ConfigInfo() ConfigInfo

	// InitConfig writes a config file rendered from cfg.
	InitConfig(cfg *Config) error
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// PrefsStore keeps presentation preferences of the interactive view.
type PrefsStore interface {
	LoadPrefs() (Prefs, error)
	SavePrefs(p Prefs) error
}

// Prefs holds presentation state that survives restarts.
// A nil field has never been set and defers to configuration.
type Prefs struct {
	DarkMode *bool `toml:"dark_mode,omitempty"`
}

// Dark returns the remembered theme, or fallback if none was remembered.
func (p Prefs) Dark(fallback bool) bool {
	if p.DarkMode == nil {
		return fallback
	}
	return *p.DarkMode
}

// Editor opens a file in the user's editor and waits for it to exit.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// CommandExecutor runs external programs.
type CommandExecutor interface {
	// Execute runs the command and returns its combined output.
	Execute(ctx context.Context, cmd *ExecCommand) ([]byte, error)

	// ExecuteInteractive runs the command attached to the terminal.
	ExecuteInteractive(ctx context.Context, cmd *ExecCommand) error
}
