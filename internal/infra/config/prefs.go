package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/todo/internal/domain"
)

// Ensure PrefsFile implements domain.PrefsStore.
var _ domain.PrefsStore = (*PrefsFile)(nil)

// PrefsFile stores view preferences in a small TOML file.
type PrefsFile struct {
	path string
}

// NewPrefsFile creates a PrefsFile at path.
func NewPrefsFile(path string) *PrefsFile {
	return &PrefsFile{path: path}
}

// LoadPrefs reads the preferences. A missing file yields the zero value.
func (p *PrefsFile) LoadPrefs() (domain.Prefs, error) {
	var prefs domain.Prefs
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, err
	}
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return domain.Prefs{}, fmt.Errorf("parse %s: %w", p.path, err)
	}
	return prefs, nil
}

// SavePrefs writes the preferences.
func (p *PrefsFile) SavePrefs(prefs domain.Prefs) error {
	data, err := toml.Marshal(prefs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0600)
}
