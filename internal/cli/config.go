package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/piwi3910/BoardPlacer/internal/project"
	"github.com/spf13/cobra"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the application config and placement settings",
	}
	cmd.AddCommand(newConfigInitCmd(g))
	cmd.AddCommand(newConfigShowCmd(g))
	return cmd
}

func newConfigInitCmd(g *globals) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [settings.toml]",
		Short: "Write default placement settings and register them in the app config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := project.DefaultSettingsPath()
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := project.SaveSettings(path, model.DefaultSettings()); err != nil {
				return err
			}
			g.config.SettingsPath = path
			if err := g.saveConfig(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Wrote default settings")
			printFile(w, path)
			printFile(w, g.configPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")
	return cmd
}

func newConfigShowCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the app config and the effective placement settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := model.DefaultSettings()
			if g.config.SettingsPath != "" {
				s, err := project.LoadSettings(g.config.SettingsPath)
				if err != nil {
					return err
				}
				settings = s
			}

			w := cmd.OutOrStdout()
			printTitle(w, g.configPath)
			printKeyValue(w, "Settings", orDefault(g.config.SettingsPath))
			printKeyValue(w, "Library", g.libraryPath())
			printKeyValue(w, "Log level", g.config.LogLevel)
			printKeyValue(w, "Recent projects", orDefault(strings.Join(g.config.RecentProjects, ", ")))
			fmt.Fprintln(w)
			printTitle(w, "Placement settings")
			return toml.NewEncoder(w).Encode(settings)
		},
	}
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}
