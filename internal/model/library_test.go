package model

import "testing"

func TestDefaultLibraryContents(t *testing.T) {
	lib := DefaultLibrary()
	for _, key := range []string{"resistor", "capacitor", "capacitor_polarized", "diode", "led", "transistor_npn", "transistor_pnp", "vcc", "gnd"} {
		if lib.Find(key) == nil {
			t.Errorf("expected built-in part %q", key)
		}
	}
	q := lib.Find("transistor_npn")
	if len(q.Pins) != 3 || q.Pins[1].Name != "B" {
		t.Errorf("unexpected transistor pins %+v", q.Pins)
	}
	if lib.Find("gnd").Category != CategoryPower {
		t.Error("gnd should be a power part")
	}
}

func TestLibraryAddReplacesByKey(t *testing.T) {
	lib := NewLibrary()
	lib.Add(NewLibraryPart("Relay", "Relay", CategoryGeneric, "relay", nil))
	p := NewLibraryPart("relay", "Relay v2", CategoryGeneric, "relay", nil)
	lib.Add(p)

	if len(lib.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(lib.Parts))
	}
	if lib.Find("RELAY").Name != "Relay v2" {
		t.Errorf("expected replaced part, got %q", lib.Find("relay").Name)
	}
	if !lib.Remove("relay") || len(lib.Parts) != 0 {
		t.Error("expected relay to be removed")
	}
	if lib.Remove("relay") {
		t.Error("second remove should report false")
	}
}

func TestLibraryPartNewComponent(t *testing.T) {
	lib := DefaultLibrary()
	c := lib.Find("resistor").NewComponent("R7")
	if c.Ref != "R7" || c.Type != "resistor" {
		t.Errorf("unexpected component %+v", c)
	}
	if c.Width != 140 || c.Height != 40 {
		t.Errorf("expected 140x40 footprint, got %vx%v", c.Width, c.Height)
	}

	fixed := NewLibraryPart("so8", "SO-8", CategoryImported, "ic", nil)
	fixed.Width, fixed.Height = 200, 150
	ic := fixed.NewComponent("U1")
	if ic.Width != 200 || ic.Height != 150 {
		t.Errorf("expected fixed footprint 200x150, got %vx%v", ic.Width, ic.Height)
	}
}

func TestGenericPart(t *testing.T) {
	p := GenericPart("Relay")
	if p.Key != "relay" || len(p.Pins) != 2 {
		t.Errorf("unexpected generic part %+v", p)
	}
}
