package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// DefaultLibraryPath returns the default file path for the component library.
// This is located at ~/.boardplacer/library.json.
func DefaultLibraryPath() string {
	return filepath.Join(DefaultConfigDir(), "library.json")
}

// SaveLibrary writes the component library to a JSON file.
func SaveLibrary(path string, lib model.Library) error {
	if err := writeJSON(path, lib); err != nil {
		return fmt.Errorf("failed to save library %s: %w", path, err)
	}
	return nil
}

// LoadLibrary reads a component library from a JSON file.
// If the file does not exist, returns the built-in library.
func LoadLibrary(path string) (model.Library, error) {
	var lib model.Library
	if err := readJSON(path, &lib); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultLibrary(), nil
		}
		return model.Library{}, fmt.Errorf("failed to load library %s: %w", path, err)
	}
	if lib.Parts == nil {
		lib.Parts = []model.LibraryPart{}
	}
	for i := range lib.Parts {
		if lib.Parts[i].Pins == nil {
			lib.Parts[i].Pins = []model.Pin{}
		}
	}
	return lib, nil
}

// ResolveLibraryPath picks the library file: an explicit path wins, then
// the app config, then the default location.
func ResolveLibraryPath(explicit string, config model.AppConfig) string {
	switch {
	case explicit != "":
		return explicit
	case config.LibraryPath != "":
		return config.LibraryPath
	default:
		return DefaultLibraryPath()
	}
}
