package cli

import (
	"github.com/piwi3910/BoardPlacer/internal/project"
	"github.com/spf13/cobra"
)

func newBackupCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up or restore the app config and component library",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write the app config and library to one JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := g.loadLibrary()
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], g.config, lib); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported %d library parts", len(lib.Parts))
			printFile(cmd.OutOrStdout(), args[0])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Restore the app config and library from a backup",
		Long: `Restore the app config and library from a backup. The library is written to
the path the restored config names, or the --library path when given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			g.config = data.Config
			if err := g.saveConfig(); err != nil {
				return err
			}
			path := g.libraryPath()
			if err := project.SaveLibrary(path, data.Library); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Restored backup from %s (%d library parts)", data.CreatedAt, len(data.Library.Parts))
			printFile(w, g.configPath)
			printFile(w, path)
			return nil
		},
	})
	return cmd
}
