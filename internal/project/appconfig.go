package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// HomeEnv names the environment variable that relocates the config directory.
const HomeEnv = "BOARDPLACER_HOME"

// DefaultConfigDir returns $BOARDPLACER_HOME when set, else ~/.boardplacer.
// The library, settings and app config files default to this directory.
func DefaultConfigDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".boardplacer")
}

// DefaultConfigPath returns config.json in the config directory.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig writes the app config after tidying its recent projects.
func SaveAppConfig(path string, config model.AppConfig) error {
	config.Normalize()
	if err := writeJSON(path, config); err != nil {
		return fmt.Errorf("failed to save app config %s: %w", path, err)
	}
	return nil
}

// LoadAppConfig reads the app config. A missing file yields the defaults;
// fields absent from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if err := readJSON(path, &config); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, fmt.Errorf("failed to load app config %s: %w", path, err)
	}
	config.Normalize()
	return config, nil
}
