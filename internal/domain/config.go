package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"

// Default configuration values.
const (
	DefaultLogLevel      = "info"
	DefaultStoreBackend  = BackendJSON
	DefaultSweepInterval = 60 * time.Second
	DefaultTickInterval  = time.Second
	DefaultNotifyCommand = "notify-send"
	DefaultGitRef        = "refs/todo/snapshot"
)

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendGit    = "git"
)

// Notification backends.
const (
	NotifyTerminal = "terminal"
	NotifyCommand  = "command"
	NotifyMaildir  = "maildir"
	NotifyLog      = "log"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Store    StoreConfig  `toml:"store"`
	Tasks    TasksConfig  `toml:"tasks"`
	Notify   NotifyConfig `toml:"notify"`
	Log      LogConfig    `toml:"log"`
	TUI      TUIConfig    `toml:"tui"`
}

// StoreConfig holds settings from the [store] section.
type StoreConfig struct {
	Backend string `toml:"backend,omitempty"`  // json (default), sqlite or git
	Path    string `toml:"path,omitempty"`     // File path for json/sqlite, repository path for git
	GitRef  string `toml:"git_ref,omitempty"`  // Ref holding the snapshot blob (git backend)
	Encrypt bool   `toml:"encrypt,omitempty"`  // Seal snapshots with AES-256-GCM
	KeyName string `toml:"key_name,omitempty"` // Keyring entry holding the encryption key
}

// TasksConfig holds settings from the [tasks] section.
type TasksConfig struct {
	Categories      []Category `toml:"categories,omitempty"`
	DefaultCategory Category   `toml:"default_category,omitempty"`
	DefaultPriority Priority   `toml:"default_priority,omitempty"`
}

// NotifyConfig holds settings from the [notify] section.
type NotifyConfig struct {
	Backends []string      `toml:"backends,omitempty"` // terminal, command, maildir, log
	Command  string        `toml:"command,omitempty"`  // Program run by the command backend
	Maildir  string        `toml:"maildir,omitempty"`  // Maildir root for the maildir backend
	Title    string        `toml:"title,omitempty"`    // Notification title
	Interval time.Duration `toml:"interval,omitempty"` // Sweep interval
}

// LogConfig holds settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// TUIConfig holds settings from the [tui] section.
type TUIConfig struct {
	Theme string `toml:"theme,omitempty"` // dark or light; the toggle in the view is remembered separately
}

// NewDefaultConfig returns the configuration used when no file exists.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: DefaultStoreBackend,
			GitRef:  DefaultGitRef,
			KeyName: "snapshot-key",
		},
		Tasks: TasksConfig{
			Categories:      DefaultCategories(),
			DefaultCategory: CategoryPersonal,
			DefaultPriority: PriorityLow,
		},
		Notify: NotifyConfig{
			Backends: []string{NotifyTerminal},
			Command:  DefaultNotifyCommand,
			Title:    DefaultReminderTitle,
			Interval: DefaultSweepInterval,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		TUI: TUIConfig{
			Theme: "light",
		},
	}
}

// Validate checks cross-field constraints and fills derived defaults.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite, BackendGit:
	default:
		return fmt.Errorf("%w: store backend %q", ErrUnknownBackend, c.Store.Backend)
	}
	for _, b := range c.Notify.Backends {
		switch b {
		case NotifyTerminal, NotifyCommand, NotifyMaildir, NotifyLog:
		default:
			return fmt.Errorf("%w: notify backend %q", ErrUnknownBackend, b)
		}
	}
	if len(c.Tasks.Categories) == 0 {
		c.Tasks.Categories = DefaultCategories()
	}
	for i, cat := range c.Tasks.Categories {
		c.Tasks.Categories[i] = Category(strings.ToLower(string(cat)))
	}
	if c.Tasks.DefaultCategory == "" {
		c.Tasks.DefaultCategory = c.Tasks.Categories[0]
	}
	cat, err := ParseCategory(string(c.Tasks.DefaultCategory), c.Tasks.Categories)
	if err != nil {
		return fmt.Errorf("default_category: %w", err)
	}
	c.Tasks.DefaultCategory = cat
	if c.Tasks.DefaultPriority == "" {
		c.Tasks.DefaultPriority = PriorityLow
	}
	prio, err := ParsePriority(string(c.Tasks.DefaultPriority))
	if err != nil {
		return fmt.Errorf("default_priority: %w", err)
	}
	c.Tasks.DefaultPriority = prio
	if c.Notify.Interval <= 0 {
		c.Notify.Interval = DefaultSweepInterval
	}
	return nil
}

// templateData holds all data for rendering the config template.
type templateData struct {
	Backend    string
	GitRef     string
	Categories string
	Category   string
	Priority   string
	Notify     string
	Command    string
	Title      string
	Interval   string
	LogLevel   string
	Theme      string
}

// RenderConfigTemplate renders a commented config file from cfg.
func RenderConfigTemplate(cfg *Config) string {
	cats := make([]string, 0, len(cfg.Tasks.Categories))
	for _, c := range cfg.Tasks.Categories {
		cats = append(cats, fmt.Sprintf("%q", c))
	}
	backends := make([]string, 0, len(cfg.Notify.Backends))
	for _, b := range cfg.Notify.Backends {
		backends = append(backends, fmt.Sprintf("%q", b))
	}
	data := templateData{
		Backend:    cfg.Store.Backend,
		GitRef:     cfg.Store.GitRef,
		Categories: strings.Join(cats, ", "),
		Category:   string(cfg.Tasks.DefaultCategory),
		Priority:   string(cfg.Tasks.DefaultPriority),
		Notify:     strings.Join(backends, ", "),
		Command:    cfg.Notify.Command,
		Title:      cfg.Notify.Title,
		Interval:   cfg.Notify.Interval.String(),
		LogLevel:   cfg.Log.Level,
		Theme:      cfg.TUI.Theme,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Should never happen with valid data
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
