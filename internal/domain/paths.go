package domain

import (
	"os"
	"path/filepath"
)

// AppName names the config and data directories.
const AppName = "todo"

// DataDirEnv overrides the data directory.
const DataDirEnv = "TODO_DATA_DIR"

// DefaultDataDir returns $TODO_DATA_DIR, else $XDG_DATA_HOME/todo,
// else ~/.local/share/todo. It returns "" if no home directory is known.
func DefaultDataDir() string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/todo, else ~/.config/todo.
func DefaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName)
}

// JSONStorePath returns the path of the JSON snapshot file.
func JSONStorePath(dataDir string) string {
	return filepath.Join(dataDir, "tasks.json")
}

// SQLiteStorePath returns the path of the SQLite database.
func SQLiteStorePath(dataDir string) string {
	return filepath.Join(dataDir, "tasks.db")
}

// GlobalLogPath returns the path to the log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "todo.log")
}

// PrefsPath returns the path to the view preference file.
func PrefsPath(dataDir string) string {
	return filepath.Join(dataDir, "prefs.toml")
}

// GitStorePath returns the path of the bare repository used by the git backend.
func GitStorePath(dataDir string) string {
	return filepath.Join(dataDir, "snapshots.git")
}

// Location returns where the configured backend keeps the snapshot:
// the explicit path if set, otherwise the backend's file under dataDir.
// It returns "" for an unknown backend.
func (sc StoreConfig) Location(dataDir string) string {
	if sc.Path != "" {
		return sc.Path
	}
	switch sc.Backend {
	case BackendJSON:
		return JSONStorePath(dataDir)
	case BackendSQLite:
		return SQLiteStorePath(dataDir)
	case BackendGit:
		return GitStorePath(dataDir)
	default:
		return ""
	}
}
