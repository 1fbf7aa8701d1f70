package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/BoardPlacer/internal/model"
)

// DefaultSettingsPath returns ~/.boardplacer/settings.toml.
func DefaultSettingsPath() string {
	return filepath.Join(DefaultConfigDir(), "settings.toml")
}

// SaveSettings writes placement settings as TOML.
func SaveSettings(path string, settings model.PlacementSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(settings); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return f.Close()
}

// LoadSettings reads placement settings from a TOML file. Keys missing
// from the file keep their default values, and a missing file yields the
// defaults. The result is validated.
func LoadSettings(path string) (model.PlacementSettings, error) {
	settings := model.DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return model.PlacementSettings{}, err
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return model.PlacementSettings{}, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return model.PlacementSettings{}, err
	}
	return settings, nil
}
