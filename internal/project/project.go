package project

import (
	"fmt"
	"time"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// SaveProject writes a project as indented JSON and stamps UpdatedAt.
func SaveProject(path string, proj *model.Project) error {
	proj.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := writeJSON(path, proj); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProject reads a project file. Settings absent from the file keep
// their defaults.
func LoadProject(path string) (model.Project, error) {
	proj := model.Project{Settings: model.DefaultSettings()}
	if err := readJSON(path, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	if proj.Design.Components == nil {
		proj.Design.Components = []model.Component{}
	}
	if proj.Design.Nets == nil {
		proj.Design.Nets = []model.Net{}
	}
	for i := range proj.Design.Components {
		if proj.Design.Components[i].Pins == nil {
			proj.Design.Components[i].Pins = []model.Pin{}
		}
	}
	if proj.Design.Name == "" {
		proj.Design.Name = proj.Name
	}
	return proj, nil
}
