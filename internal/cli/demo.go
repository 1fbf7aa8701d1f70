package cli

import (
	"fmt"

	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/piwi3910/BoardPlacer/internal/project"
	"github.com/spf13/cobra"
)

// demoNets wires a single-transistor common-emitter amplifier:
// from ref, from pin, to ref, to pin.
var demoNets = [][4]string{
	{"VCC", "1", "R1", "1"},
	{"VCC", "1", "R3", "1"},
	{"R1", "2", "Q1", "B"},
	{"R2", "1", "Q1", "B"},
	{"C1", "2", "Q1", "B"},
	{"R3", "2", "Q1", "C"},
	{"C2", "1", "Q1", "C"},
	{"R4", "1", "Q1", "E"},
	{"C3", "1", "Q1", "E"},
	{"R2", "2", "GND", "1"},
	{"R4", "2", "GND", "1"},
	{"C3", "2", "GND", "1"},
	{"C2", "2", "D1", "A"},
	{"D1", "K", "GND", "1"},
}

// demoDesign builds the amplifier from library parts.
func demoDesign(lib model.Library) (model.Design, error) {
	parts := []struct{ ref, key string }{
		{"Q1", "transistor_npn"},
		{"R1", "resistor"},
		{"R2", "resistor"},
		{"R3", "resistor"},
		{"R4", "resistor"},
		{"C1", "capacitor"},
		{"C2", "capacitor_polarized"},
		{"C3", "capacitor_polarized"},
		{"D1", "led"},
		{"VCC", "vcc"},
		{"GND", "gnd"},
	}

	d := model.Design{Name: "Common Emitter Amplifier"}
	for _, p := range parts {
		part := lib.Find(p.key)
		if part == nil {
			generic := model.GenericPart(p.key)
			part = &generic
		}
		d.AddComponent(part.NewComponent(p.ref))
	}
	for i, n := range demoNets {
		if _, err := d.Connect(fmt.Sprintf("N%d", i+1), n[0], n[1], n[2], n[3]); err != nil {
			return model.Design{}, fmt.Errorf("demo net %d: %w", i+1, err)
		}
	}
	return d, nil
}

func newDemoCmd(g *globals) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write a sample amplifier project",
		Long: `Write a sample common-emitter amplifier project that can be placed right away.

Example:
  boardplacer demo -o amp.json
  boardplacer place amp.json --pdf amp.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := g.loadLibrary()
			if err != nil {
				return err
			}
			design, err := demoDesign(lib)
			if err != nil {
				return err
			}
			proj, err := g.newProject(design.Name)
			if err != nil {
				return err
			}
			proj.Design = design
			if err := project.SaveProject(output, &proj); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Wrote demo project with %d components and %d nets", len(design.Components), len(design.Nets))
			printFile(w, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "project file to write")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
