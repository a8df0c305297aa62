package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFileName is the dotenv file read from the config directory.
const EnvFileName = "env"

// EnvPath returns the env file that sits next to configPath.
func EnvPath(configPath string) string {
	if configPath == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(configPath), EnvFileName)
}

// LoadEnvFile sets variables from a dotenv file, such as TODO_DATA_DIR or
// TODO_ENCRYPTION_KEY. Variables already set in the environment win.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
