package model

import "fmt"

// Design is the component and net list handed to the placer.
type Design struct {
	Name       string      `json:"name"`
	Components []Component `json:"components"`
	Nets       []Net       `json:"nets"`
}

// FindComponent returns a pointer to the component with the given ID, or nil.
func (d *Design) FindComponent(id string) *Component {
	for i := range d.Components {
		if d.Components[i].ID == id {
			return &d.Components[i]
		}
	}
	return nil
}

// FindByRef returns a pointer to the component with the given reference
// designator, or nil.
func (d *Design) FindByRef(ref string) *Component {
	for i := range d.Components {
		if d.Components[i].Ref == ref {
			return &d.Components[i]
		}
	}
	return nil
}

// AddComponent appends a component, deriving its footprint if missing.
func (d *Design) AddComponent(c Component) {
	c.EnsureFootprint()
	d.Components = append(d.Components, c)
}

// RemoveComponent removes a component by ID. Nets that referenced it are
// left in place and are ignored by the placer. Returns true if found.
func (d *Design) RemoveComponent(id string) bool {
	for i, c := range d.Components {
		if c.ID == id {
			d.Components = append(d.Components[:i], d.Components[i+1:]...)
			return true
		}
	}
	return false
}

// Connect adds a net between two pins addressed by reference designator and
// pin name.
func (d *Design) Connect(name, fromRef, fromPin, toRef, toPin string) (Net, error) {
	from, err := d.pinRef(fromRef, fromPin)
	if err != nil {
		return Net{}, err
	}
	to, err := d.pinRef(toRef, toPin)
	if err != nil {
		return Net{}, err
	}
	n := NewNet(name, from, to)
	d.Nets = append(d.Nets, n)
	return n, nil
}

func (d *Design) pinRef(ref, pin string) (PinRef, error) {
	c := d.FindByRef(ref)
	if c == nil {
		return PinRef{}, fmt.Errorf("unknown component %q", ref)
	}
	idx := c.PinIndex(pin)
	if idx < 0 {
		return PinRef{}, fmt.Errorf("component %s has no pin %q", ref, pin)
	}
	return PinRef{Component: c.ID, Pin: idx}, nil
}

// ApplyLayout copies rotations and placements from a layout result onto the
// design's components. Components missing from the result lose any previous
// placement.
func (d *Design) ApplyLayout(result LayoutResult) {
	for i := range d.Components {
		c := &d.Components[i]
		p := result.FindPlacement(c.ID)
		if p == nil {
			c.Placement = nil
			continue
		}
		c.Rotation = p.Rotation
		c.Placement = &Placement{
			Col:       p.Origin.Col,
			Row:       p.Origin.Row,
			CellsWide: p.CellsWide,
			CellsHigh: p.CellsHigh,
			Center:    p.Center,
		}
	}
}
