package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/piwi3910/BoardPlacer/internal/project"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version.
// main calls it with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globals holds the persistent flags and the app config loaded before every
// command runs.
type globals struct {
	verbose    bool
	library    string
	configPath string
	config     model.AppConfig
}

// libraryPath resolves the component library file from the flag and config.
func (g *globals) libraryPath() string {
	return project.ResolveLibraryPath(g.library, g.config)
}

func (g *globals) loadLibrary() (model.Library, error) {
	return project.LoadLibrary(g.libraryPath())
}

func (g *globals) saveConfig() error {
	return project.SaveAppConfig(g.configPath, g.config)
}

// newProject creates a project with the settings file named in the app
// config, or the defaults when there is none.
func (g *globals) newProject(name string) (model.Project, error) {
	proj := model.NewProject(name)
	if g.config.SettingsPath == "" {
		return proj, nil
	}
	settings, err := project.LoadSettings(g.config.SettingsPath)
	if err != nil {
		return model.Project{}, err
	}
	proj.Settings = settings
	return proj, nil
}

// Execute runs the boardplacer CLI under ctx.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:          "boardplacer",
		Short:        "BoardPlacer lays out schematic footprints by connectivity",
		Long:         `BoardPlacer places circuit components on a grid one at a time, putting each part next to the parts it is most connected to and turning it to shorten the wires.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := project.LoadAppConfig(g.configPath)
			if err != nil {
				return err
			}
			g.config = config

			level := parseLevel(config.LogLevel)
			if g.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("boardplacer %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&g.library, "library", "", "component library file (default from app config)")
	root.PersistentFlags().StringVar(&g.configPath, "app-config", project.DefaultConfigPath(), "application config file")

	root.AddCommand(newDemoCmd(g))
	root.AddCommand(newPlaceCmd(g))
	root.AddCommand(newImportCmd(g))
	root.AddCommand(newCompareCmd(g))
	root.AddCommand(newLibraryCmd(g))
	root.AddCommand(newConfigCmd(g))
	root.AddCommand(newBackupCmd(g))

	return root
}
