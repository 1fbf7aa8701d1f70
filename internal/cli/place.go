package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BoardPlacer/internal/engine"
	"github.com/piwi3910/BoardPlacer/internal/export"
	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/piwi3910/BoardPlacer/internal/project"
	"github.com/spf13/cobra"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	settings string // TOML settings overriding the project's own
	output   string // project file to write (input file if empty)
	pdf      string
	labels   string
	xlsx     string
	csv      string
	dxf      string
}

func newPlaceCmd(g *globals) *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place <project>",
		Short: "Place a project's components and export the layout",
		Long: `Place every component of a project on the grid, write the layout back to the
project and export it to the requested formats.

Examples:
  boardplacer place amp.json
  boardplacer place amp.json -c tight.toml -o amp-tight.json --pdf amp.pdf --xlsx amp.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlace(cmd.Context(), g, args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.settings, "config", "c", "", "placement settings TOML (overrides the project settings)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "project file to write (default: overwrite input)")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write a PDF layout report")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write a PDF sheet of QR placement labels")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write an XLSX placement workbook")
	cmd.Flags().StringVar(&opts.csv, "csv", "", "write a CSV placement table")
	cmd.Flags().StringVar(&opts.dxf, "dxf", "", "write a DXF layout drawing")
	return cmd
}

// loadProjectSettings loads a project and applies a settings override.
func loadProjectSettings(path, settingsPath string) (model.Project, error) {
	proj, err := project.LoadProject(path)
	if err != nil {
		return model.Project{}, err
	}
	if settingsPath != "" {
		settings, err := project.LoadSettings(settingsPath)
		if err != nil {
			return model.Project{}, err
		}
		proj.Settings = settings
	}
	return proj, nil
}

func runPlace(ctx context.Context, g *globals, path string, opts placeOpts, w io.Writer) error {
	logger := loggerFromContext(ctx)

	proj, err := loadProjectSettings(path, opts.settings)
	if err != nil {
		return err
	}

	placer := engine.New(proj.Settings)
	placer.Logger = logger.WithPrefix("placer")

	prog := newProgress(logger)
	result, err := placer.RunContext(ctx, proj.Design)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d of %d components", result.Summary.Placed, result.Summary.TotalComponents))

	proj.Design.ApplyLayout(result)
	proj.Result = &result

	out := opts.output
	if out == "" {
		out = path
	}
	if err := project.SaveProject(out, &proj); err != nil {
		return err
	}

	printTitle(w, proj.Design.Name)
	printSummary(w, result)
	if len(result.Summary.UnplacedIDs) > 0 {
		printWarning(w, "Unplaced: %s", strings.Join(unplacedRefs(proj.Design, result), ", "))
	}
	printSuccess(w, "Saved project")
	printFile(w, out)

	if err := runExports(opts, proj.Design, result, w); err != nil {
		return err
	}

	if abs, err := filepath.Abs(out); err == nil {
		g.config.AddRecentProject(abs)
		if err := g.saveConfig(); err != nil {
			logger.Warn("could not update recent projects", "err", err)
		}
	}
	return nil
}

// runExports writes every export format that has a path.
func runExports(opts placeOpts, design model.Design, result model.LayoutResult, w io.Writer) error {
	exports := []struct {
		name  string
		path  string
		write func(string) error
	}{
		{"PDF report", opts.pdf, func(p string) error { return export.ExportPDF(p, design, result) }},
		{"labels", opts.labels, func(p string) error { return export.ExportLabels(p, result) }},
		{"XLSX", opts.xlsx, func(p string) error { return export.ExportXLSX(p, result) }},
		{"CSV", opts.csv, func(p string) error { return export.ExportCSV(p, result) }},
		{"DXF", opts.dxf, func(p string) error { return export.ExportDXF(p, design, result) }},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path); err != nil {
			return fmt.Errorf("failed to export %s: %w", e.name, err)
		}
		printSuccess(w, "Exported %s", e.name)
		printFile(w, e.path)
	}
	return nil
}

func printSummary(w io.Writer, result model.LayoutResult) {
	sum := result.Summary
	printKeyValue(w, "Grid", fmt.Sprintf("%d x %d cells of %.0f", result.Grid.Columns, result.Grid.Rows, result.Grid.CellSize))
	printKeyValue(w, "Placed", fmt.Sprintf("%d / %d", sum.Placed, sum.TotalComponents))
	if sum.Deferred > 0 {
		printKeyValue(w, "Deferred", fmt.Sprintf("%d", sum.Deferred))
	}
	printKeyValue(w, "Connections", fmt.Sprintf("%d", sum.TotalConnections))
	if sum.IgnoredNets > 0 {
		printKeyValue(w, "Ignored nets", fmt.Sprintf("%d", sum.IgnoredNets))
	}
	printKeyValue(w, "Wire length (cells)", fmt.Sprintf("%.1f", sum.EstimatedWireLength))
	printKeyValue(w, "Pin wire length", fmt.Sprintf("%.1f", sum.PinWireLength))
	printKeyValue(w, "Longest link (cells)", fmt.Sprintf("%.1f", sum.LongestLink))
	printKeyValue(w, "Score", fmt.Sprintf("%.4f", sum.Score))
	steps := fmt.Sprintf("%d", sum.Steps)
	if sum.BudgetExhausted {
		steps += " (budget exhausted)"
	}
	printKeyValue(w, "Steps", steps)
}

// unplacedRefs maps the summary's unplaced ids to reference designators.
func unplacedRefs(design model.Design, result model.LayoutResult) []string {
	refs := make([]string, 0, len(result.Summary.UnplacedIDs))
	for _, id := range result.Summary.UnplacedIDs {
		if c := design.FindComponent(id); c != nil {
			refs = append(refs, c.Ref)
			continue
		}
		refs = append(refs, id)
	}
	return refs
}
