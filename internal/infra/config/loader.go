// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/todo/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from a TOML file.
type Loader struct {
	path string // Path to config.toml
}

// NewLoader creates a Loader reading path.
// An empty path selects config.toml in the default config directory.
func NewLoader(path string) *Loader {
	if path == "" {
		path = DefaultPath()
	}
	return &Loader{path: path}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	dir := domain.DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, domain.ConfigFileName)
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the file's settings merged over the defaults.
// A missing file yields the defaults.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()
	if l.path == "" {
		return base, nil
	}

	override, err := loadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := mergeConfigs(base, override)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	return cfg, nil
}

// loadFile loads a single config file.
func loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*domain.Config, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return convertRawToDomainConfig(raw)
}

// convertRawToDomainConfig walks the raw TOML map so that unknown keys
// become warnings instead of being silently dropped.
func convertRawToDomainConfig(raw map[string]any) (*domain.Config, error) {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					if s, ok := v.(string); ok {
						res.Store.Backend = s
					}
				case "path":
					if s, ok := v.(string); ok {
						res.Store.Path = s
					}
				case "git_ref":
					if s, ok := v.(string); ok {
						res.Store.GitRef = s
					}
				case "encrypt":
					if b, ok := v.(bool); ok {
						res.Store.Encrypt = b
					}
				case "key_name":
					if s, ok := v.(string); ok {
						res.Store.KeyName = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
				}
			}
		case "tasks":
			for k, v := range m {
				switch k {
				case "categories":
					for _, c := range stringList(v) {
						res.Tasks.Categories = append(res.Tasks.Categories, domain.Category(c))
					}
				case "default_category":
					if s, ok := v.(string); ok {
						res.Tasks.DefaultCategory = domain.Category(s)
					}
				case "default_priority":
					if s, ok := v.(string); ok {
						res.Tasks.DefaultPriority = domain.Priority(s)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [tasks]: %s", k))
				}
			}
		case "notify":
			for k, v := range m {
				switch k {
				case "backends":
					res.Notify.Backends = stringList(v)
				case "command":
					if s, ok := v.(string); ok {
						res.Notify.Command = s
					}
				case "maildir":
					if s, ok := v.(string); ok {
						res.Notify.Maildir = s
					}
				case "title":
					if s, ok := v.(string); ok {
						res.Notify.Title = s
					}
				case "interval":
					d, err := parseInterval(v)
					if err != nil {
						return nil, fmt.Errorf("[notify] interval: %w", err)
					}
					res.Notify.Interval = d
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [notify]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "tui":
			for k, v := range m {
				switch k {
				case "theme":
					if s, ok := v.(string); ok {
						res.TUI.Theme = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [tui]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res, nil
}

// stringList accepts a TOML array of strings or a single string.
func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// parseInterval accepts a duration string ("90s", "2m") or whole seconds.
func parseInterval(v any) (time.Duration, error) {
	var d time.Duration
	switch t := v.(type) {
	case string:
		parsed, err := time.ParseDuration(t)
		if err != nil {
			return 0, err
		}
		d = parsed
	case int64:
		d = time.Duration(t) * time.Second
	case float64:
		d = time.Duration(t * float64(time.Second))
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Store:  base.Store,
		Tasks:  base.Tasks,
		Notify: base.Notify,
		Log:    base.Log,
		TUI:    base.TUI,
	}
	if len(base.Warnings)+len(override.Warnings) > 0 {
		result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)
	}
	result.Tasks.Categories = append([]domain.Category(nil), base.Tasks.Categories...)
	result.Notify.Backends = append([]string(nil), base.Notify.Backends...)

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Store.GitRef != "" {
		result.Store.GitRef = override.Store.GitRef
	}
	if override.Store.Encrypt {
		result.Store.Encrypt = true
	}
	if override.Store.KeyName != "" {
		result.Store.KeyName = override.Store.KeyName
	}

	if len(override.Tasks.Categories) > 0 {
		result.Tasks.Categories = override.Tasks.Categories
		// A new category list invalidates the inherited default.
		result.Tasks.DefaultCategory = ""
	}
	if override.Tasks.DefaultCategory != "" {
		result.Tasks.DefaultCategory = override.Tasks.DefaultCategory
	}
	if override.Tasks.DefaultPriority != "" {
		result.Tasks.DefaultPriority = override.Tasks.DefaultPriority
	}

	if override.Notify.Backends != nil {
		result.Notify.Backends = override.Notify.Backends
	}
	if override.Notify.Command != "" {
		result.Notify.Command = override.Notify.Command
	}
	if override.Notify.Maildir != "" {
		result.Notify.Maildir = override.Notify.Maildir
	}
	if override.Notify.Title != "" {
		result.Notify.Title = override.Notify.Title
	}
	if override.Notify.Interval != 0 {
		result.Notify.Interval = override.Notify.Interval
	}

	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.TUI.Theme != "" {
		result.TUI.Theme = override.TUI.Theme
	}

	return result
}
