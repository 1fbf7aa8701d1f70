package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

func TestSaveAndLoadLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")

	lib := model.NewLibrary()
	part := model.NewLibraryPart("TO220", "TO-220 regulator", model.CategoryImported, "regulator",
		[]model.Pin{{Name: "IN", X: -25}, {Name: "GND"}, {Name: "OUT", X: 25}})
	part.Width, part.Height = 100, 160
	lib.Add(part)

	if err := SaveLibrary(path, lib); err != nil {
		t.Fatalf("SaveLibrary error: %v", err)
	}

	loaded, err := LoadLibrary(path)
	if err != nil {
		t.Fatalf("LoadLibrary error: %v", err)
	}
	got := loaded.Find("to220")
	if got == nil {
		t.Fatal("expected part to220 after reload")
	}
	if len(got.Pins) != 3 || got.Pins[2].Name != "OUT" {
		t.Errorf("pins not preserved: %+v", got.Pins)
	}
	if got.Width != 100 || got.Height != 160 {
		t.Errorf("expected 100x160 footprint, got %gx%g", got.Width, got.Height)
	}
}

func TestLoadLibrary_NotFound(t *testing.T) {
	lib, err := LoadLibrary(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if lib.Find("resistor") == nil {
		t.Error("expected the built-in library for a missing file")
	}
}

func TestLoadLibrary_NilSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	if err := os.WriteFile(path, []byte(`{"parts":[{"key":"tp","type":"testpoint","pins":null}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadLibrary(path)
	if err != nil {
		t.Fatalf("LoadLibrary error: %v", err)
	}
	if lib.Parts[0].Pins == nil {
		t.Error("pins should not be nil after load")
	}
}

func TestResolveLibraryPath(t *testing.T) {
	cfg := model.DefaultAppConfig()
	if got := ResolveLibraryPath("", cfg); got != DefaultLibraryPath() {
		t.Errorf("expected default path, got %s", got)
	}
	cfg.LibraryPath = "/cfg/lib.json"
	if got := ResolveLibraryPath("", cfg); got != "/cfg/lib.json" {
		t.Errorf("expected config path, got %s", got)
	}
	if got := ResolveLibraryPath("/flag/lib.json", cfg); got != "/flag/lib.json" {
		t.Errorf("expected explicit path, got %s", got)
	}
}
