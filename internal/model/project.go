package model

import (
	"time"

	"github.com/google/uuid"
)

// Project is the saved unit of work: a design, the settings it was placed
// with and the most recent layout.
type Project struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
	Design    Design            `json:"design"`
	Settings  PlacementSettings `json:"settings"`
	Result    *LayoutResult     `json:"result,omitempty"`
}

// NewProject creates an empty project with default settings.
func NewProject(name string) Project {
	now := time.Now().UTC().Format(time.RFC3339)
	return Project{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Design: Design{
			Name:       name,
			Components: []Component{},
			Nets:       []Net{},
		},
		Settings: DefaultSettings(),
	}
}
