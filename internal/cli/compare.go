package cli

import (
	"fmt"

	"github.com/piwi3910/BoardPlacer/internal/engine"
	"github.com/spf13/cobra"
)

func newCompareCmd(g *globals) *cobra.Command {
	var settingsPath string

	cmd := &cobra.Command{
		Use:   "compare <project>",
		Short: "Compare layouts under variants of the placement heuristics",
		Long: `Place the project once per heuristic variant (current settings, no pin
directionality, no alignment penalty, wider frontier, single-weight power
nets) and print the headline numbers side by side. The project file is not
modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			proj, err := loadProjectSettings(args[0], settingsPath)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			scenarios := engine.BuildDefaultScenarios(proj.Settings)
			results := engine.CompareScenarios(scenarios, proj.Design)
			prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				if r.Err != nil {
					rows = append(rows, []string{r.Scenario.Name, "error", "", "", "", r.Err.Error()})
					continue
				}
				rows = append(rows, []string{
					r.Scenario.Name,
					fmt.Sprintf("%d", r.PlacedCount),
					fmt.Sprintf("%d", r.UnplacedCount),
					fmt.Sprintf("%.1f", r.WireLength),
					fmt.Sprintf("%.1f", r.PinWireLength),
					fmt.Sprintf("%.4f", r.Score),
				})
			}

			w := cmd.OutOrStdout()
			printTitle(w, proj.Design.Name)
			fmt.Fprintln(w, renderTable(
				[]string{"Scenario", "Placed", "Unplaced", "Wire", "Pin Wire", "Score"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&settingsPath, "config", "c", "", "placement settings TOML (overrides the project settings)")
	return cmd
}
