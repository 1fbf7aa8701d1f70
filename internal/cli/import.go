package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BoardPlacer/internal/importer"
	"github.com/piwi3910/BoardPlacer/internal/project"
	"github.com/spf13/cobra"
)

// importOpts holds the flags shared by the import subcommands.
type importOpts struct {
	output string
	name   string
}

func newImportCmd(g *globals) *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create a project from a netlist or component tables",
		Long: `Create a project from a KiCad netlist or from component and net tables.

Examples:
  boardplacer import kicad amp.net -o amp.json
  boardplacer import table --components parts.csv --nets nets.csv -o amp.json
  boardplacer import table --components bom.xlsx -o bom.json`,
	}

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "project file to write")
	cmd.PersistentFlags().StringVarP(&opts.name, "name", "n", "", "design name (default: input file name)")
	_ = cmd.MarkPersistentFlagRequired("output")

	cmd.AddCommand(newImportKiCadCmd(g, &opts))
	cmd.AddCommand(newImportTableCmd(g, &opts))
	return cmd
}

func newImportKiCadCmd(g *globals, opts *importOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "kicad <netlist>",
		Short: "Import a KiCad s-expression netlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := g.loadLibrary()
			if err != nil {
				return err
			}
			result := importer.ImportKiCad(args[0], lib)
			return saveImport(cmd.Context(), g, result, nameOr(opts.name, args[0]), opts.output, cmd.OutOrStdout())
		},
	}
}

func newImportTableCmd(g *globals, opts *importOpts) *cobra.Command {
	var components, nets string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Import CSV or XLSX component and net tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := g.loadLibrary()
			if err != nil {
				return err
			}
			result := importer.ImportTable(components, nets, lib)
			return saveImport(cmd.Context(), g, result, nameOr(opts.name, components), opts.output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&components, "components", "", "component table (CSV or XLSX)")
	cmd.Flags().StringVar(&nets, "nets", "", "net table (CSV or XLSX)")
	_ = cmd.MarkFlagRequired("components")
	return cmd
}

// saveImport logs the importer findings and writes the design as a new
// project. It fails only when nothing could be imported.
func saveImport(ctx context.Context, g *globals, result importer.ImportResult, name, output string, w io.Writer) error {
	logger := loggerFromContext(ctx)
	for _, msg := range result.Warnings {
		logger.Warn(msg)
	}
	for _, msg := range result.Errors {
		logger.Error(msg)
	}
	if len(result.Components) == 0 {
		return fmt.Errorf("no components imported (%d errors)", len(result.Errors))
	}

	proj, err := g.newProject(name)
	if err != nil {
		return err
	}
	proj.Design = result.Design(name)
	if err := project.SaveProject(output, &proj); err != nil {
		return err
	}

	printSuccess(w, "Imported %d components and %d nets", len(result.Components), len(result.Nets))
	if n := len(result.Errors); n > 0 {
		printWarning(w, "%d rows skipped, see log", n)
	}
	printFile(w, output)
	return nil
}

// nameOr returns name, or the base of path without its extension.
func nameOr(name, path string) string {
	if name != "" {
		return name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
