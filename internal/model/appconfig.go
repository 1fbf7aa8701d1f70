package model

// maxRecentProjects caps the recent project list.
const maxRecentProjects = 10

// AppConfig holds application-wide preferences.
type AppConfig struct {
	SettingsPath   string   `json:"settings_path"` // TOML placement settings applied when a project has none
	LibraryPath    string   `json:"library_path"`  // Component library, empty = default location
	LogLevel       string   `json:"log_level"`     // "debug", "info", "warn", "error"
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		LogLevel:       "info",
		RecentProjects: []string{},
	}
}

// AddRecentProject moves path to the front of the recent list.
func (c *AppConfig) AddRecentProject(path string) {
	c.RecentProjects = append([]string{path}, c.RecentProjects...)
	c.Normalize()
}

// Normalize fills an empty log level and drops blank and repeated recent
// projects, keeping the first maxRecentProjects.
func (c *AppConfig) Normalize() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	recent := make([]string, 0, len(c.RecentProjects))
	seen := make(map[string]bool, len(c.RecentProjects))
	for _, p := range c.RecentProjects {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		recent = append(recent, p)
		if len(recent) == maxRecentProjects {
			break
		}
	}
	c.RecentProjects = recent
}
