package engine

import (
	"fmt"
	"testing"

	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/stretchr/testify/require"
)

// resistorDesign returns a design of n library resistors R1..Rn.
func resistorDesign(n int) model.Design {
	lib := model.DefaultLibrary()
	d := model.Design{Name: "test"}
	for i := 1; i <= n; i++ {
		d.AddComponent(lib.Find("resistor").NewComponent(fmt.Sprintf("R%d", i)))
	}
	return d
}

func connect(t *testing.T, d *model.Design, fromRef, fromPin, toRef, toPin string) {
	t.Helper()
	_, err := d.Connect("", fromRef, fromPin, toRef, toPin)
	require.NoError(t, err)
}

// chainDesign wires R1-R2-R3-R4 in series and leaves R5 unconnected.
func chainDesign(t *testing.T) model.Design {
	d := resistorDesign(5)
	connect(t, &d, "R1", "2", "R2", "1")
	connect(t, &d, "R2", "2", "R3", "1")
	connect(t, &d, "R3", "2", "R4", "1")
	return d
}

// mixedDesign is a small amplifier stage with parts of different sizes.
func mixedDesign(t *testing.T) model.Design {
	lib := model.DefaultLibrary()
	d := model.Design{Name: "amp"}
	d.AddComponent(lib.Find("transistor_npn").NewComponent("Q1"))
	d.AddComponent(lib.Find("resistor").NewComponent("R1"))
	d.AddComponent(lib.Find("resistor").NewComponent("R2"))
	d.AddComponent(lib.Find("resistor").NewComponent("R3"))
	d.AddComponent(lib.Find("capacitor").NewComponent("C1"))
	d.AddComponent(lib.Find("led").NewComponent("D1"))
	d.AddComponent(lib.Find("vcc").NewComponent("VCC"))
	d.AddComponent(lib.Find("gnd").NewComponent("GND"))
	connect(t, &d, "VCC", "1", "R1", "1")
	connect(t, &d, "R1", "2", "Q1", "B")
	connect(t, &d, "R2", "1", "Q1", "B")
	connect(t, &d, "R2", "2", "GND", "1")
	connect(t, &d, "VCC", "1", "R3", "1")
	connect(t, &d, "R3", "2", "D1", "A")
	connect(t, &d, "D1", "K", "Q1", "C")
	connect(t, &d, "Q1", "E", "GND", "1")
	connect(t, &d, "C1", "1", "Q1", "B")
	return d
}

func newTestSession(t *testing.T, d model.Design) *Session {
	t.Helper()
	s, err := NewSession(d, model.DefaultSettings())
	require.NoError(t, err)
	return s
}
