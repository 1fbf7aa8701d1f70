package cli

import (
	"fmt"

	"github.com/piwi3910/BoardPlacer/internal/importer"
	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/piwi3910/BoardPlacer/internal/project"
	"github.com/spf13/cobra"
)

func newLibraryCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the component library",
	}
	cmd.AddCommand(newLibraryListCmd(g))
	cmd.AddCommand(newLibraryImportDXFCmd(g))
	return cmd
}

func newLibraryListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List library parts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := g.loadLibrary()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(lib.Parts))
			for _, p := range lib.Parts {
				w, h := partSize(p)
				rows = append(rows, []string{
					p.Key, p.Name, p.Category, p.Type,
					fmt.Sprintf("%d", len(p.Pins)),
					fmt.Sprintf("%.0f x %.0f", w, h),
				})
			}
			out := cmd.OutOrStdout()
			printTitle(out, g.libraryPath())
			fmt.Fprintln(out, renderTable([]string{"Key", "Name", "Category", "Type", "Pins", "Size"}, rows))
			return nil
		},
	}
}

// partSize returns the footprint a part produces: its fixed size when set,
// otherwise the size derived from its type and pins.
func partSize(p model.LibraryPart) (float64, float64) {
	w, h := model.EstimateFootprint(p.Type, p.Pins)
	if p.Width > 0 {
		w = p.Width
	}
	if p.Height > 0 {
		h = p.Height
	}
	return w, h
}

func newLibraryImportDXFCmd(g *globals) *cobra.Command {
	var key, typ string

	cmd := &cobra.Command{
		Use:   "import-dxf <file>",
		Short: "Add a DXF footprint drawing to the library",
		Long: `Add the footprint drawn in a DXF file to the library under --key. The
largest closed shape sets the footprint size and small circles inside it
become pins. With --type naming a library part, the new part takes its type,
and its pins too when the drawing has none.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			lib, err := g.loadLibrary()
			if err != nil {
				return err
			}

			result := importer.ImportDXF(args[0])
			for _, msg := range result.Warnings {
				logger.Warn(msg)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("DXF import failed: %s", result.Errors[0])
			}

			part := result.Parts[0]
			part.Key = key
			part.Name = key
			if base := lib.Find(typ); base != nil {
				part.Type = base.Type
				if len(part.Pins) == 0 {
					part.Pins = append([]model.Pin(nil), base.Pins...)
				}
			} else if typ != "" {
				part.Type = typ
			}
			lib.Add(part)
			out := cmd.OutOrStdout()
			printSuccess(out, "Added %s (%.1f x %.1f, %d pins)", part.Key, part.Width, part.Height, len(part.Pins))

			path := g.libraryPath()
			if err := project.SaveLibrary(path, lib); err != nil {
				return err
			}
			printFile(out, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "library key for the imported footprint")
	cmd.Flags().StringVar(&typ, "type", "", "library part or component type to copy pins from")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
