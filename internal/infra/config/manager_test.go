package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/todo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), domain.ConfigFileName)
		configContent := "[log]\nlevel = \"debug\""
		require.NoError(t, os.WriteFile(path, []byte(configContent), 0644))

		info := NewManager(path).ConfigInfo()

		assert.Equal(t, path, info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), domain.ConfigFileName)

		info := NewManager(path).ConfigInfo()

		assert.Equal(t, path, info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_InitConfig(t *testing.T) {
	t.Run("creates file and parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", domain.ConfigFileName)
		cfg := domain.NewDefaultConfig()

		require.NoError(t, NewManager(path).InitConfig(cfg))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, domain.RenderConfigTemplate(cfg), string(content))
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), domain.ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("keep"), 0644))

		err := NewManager(path).InitConfig(domain.NewDefaultConfig())
		assert.ErrorIs(t, err, domain.ErrConfigExists)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "keep", string(content))
	})
}

func TestPrefsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "prefs.toml")
	prefs := NewPrefsFile(path)

	got, err := prefs.LoadPrefs()
	require.NoError(t, err)
	assert.Nil(t, got.DarkMode)
	assert.True(t, got.Dark(true))

	dark := false
	require.NoError(t, prefs.SavePrefs(domain.Prefs{DarkMode: &dark}))

	got, err = NewPrefsFile(path).LoadPrefs()
	require.NoError(t, err)
	require.NotNil(t, got.DarkMode)
	assert.False(t, got.Dark(true))
}

func TestPrefsFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("dark_mode = maybe"), 0644))

	_, err := NewPrefsFile(path).LoadPrefs()
	assert.Error(t, err)
}
