package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

var (
	// ErrAlreadyPlaced is returned when placing a component that is on the grid.
	ErrAlreadyPlaced = errors.New("component already placed")
	// ErrNotPlaced is returned when removing a component that is not on the grid.
	ErrNotPlaced = errors.New("component not placed")
	// ErrDoesNotFit is returned when a footprint would overlap or leave the grid.
	ErrDoesNotFit = errors.New("footprint does not fit")
)

// slot is the placement state of one component.
type slot struct {
	placed    bool
	origin    model.Cell
	cellsWide int
	cellsHigh int
	rotation  model.Rotation
	phase     model.Phase
}

// Session owns the grid, the weight table and the per-component placement
// state for one placement run. Components are addressed by their index in
// the design's component list.
type Session struct {
	settings   model.PlacementSettings
	components []model.Component
	ids        []string
	normals    [][]model.Point2D
	conn       *Connectivity
	grid       *Grid
	slots      []slot
	history    *History
}

// NewSession prepares a session for a design. Components without a
// footprint get one from the size table.
func NewSession(design model.Design, settings model.PlacementSettings) (*Session, error) {
	if len(design.Components) == 0 {
		return nil, ErrNothingToPlace
	}

	components := make([]model.Component, len(design.Components))
	ids := make([]string, len(design.Components))
	normals := make([][]model.Point2D, len(design.Components))
	slots := make([]slot, len(design.Components))
	for i, c := range design.Components {
		c.EnsureFootprint()
		c.Rotation = c.Rotation.Normalize()
		components[i] = c
		ids[i] = c.ID
		normals[i] = make([]model.Point2D, len(c.Pins))
		for p := range c.Pins {
			normals[i][p] = PinNormal(c.Pins, p)
		}
		slots[i] = slot{rotation: c.Rotation}
	}

	grid, err := BuildGrid(components, settings)
	if err != nil {
		return nil, err
	}

	return &Session{
		settings:   settings,
		components: components,
		ids:        ids,
		normals:    normals,
		conn:       BuildConnectivity(components, design.Nets, settings.PowerNetWeight),
		grid:       grid,
		slots:      slots,
		history:    NewHistory(),
	}, nil
}

// Len returns the number of components.
func (s *Session) Len() int { return len(s.components) }

// Component returns component i as the session sees it.
func (s *Session) Component(i int) model.Component { return s.components[i] }

// Grid returns the session grid.
func (s *Session) Grid() *Grid { return s.grid }

// Connectivity returns the session weight table.
func (s *Session) Connectivity() *Connectivity { return s.conn }

// History returns the session's placement journal.
func (s *Session) History() *History { return s.history }

// IsPlaced reports whether component i is on the grid.
func (s *Session) IsPlaced(i int) bool { return s.slots[i].placed }

// Rotation returns component i's current rotation.
func (s *Session) Rotation(i int) model.Rotation { return s.slots[i].rotation }

// Origin returns the top-left cell of a placed component.
func (s *Session) Origin(i int) (model.Cell, bool) {
	return s.slots[i].origin, s.slots[i].placed
}

// Footprint returns component i's size in cells at rotation rot.
func (s *Session) Footprint(i int, rot model.Rotation) (w, h int) {
	c := s.components[i]
	return FootprintCells(c.Width, c.Height, s.grid.CellSize, rot)
}

// Fits reports whether component i could be placed at cell with rotation rot.
func (s *Session) Fits(i int, cell model.Cell, rot model.Rotation) bool {
	w, h := s.Footprint(i, rot)
	return s.grid.Fits(cell.Col, cell.Row, w, h)
}

// Place commits component i at cell with rotation rot. It fails without
// side effects if the component is already placed or does not fit.
func (s *Session) Place(i int, cell model.Cell, rot model.Rotation, phase model.Phase) error {
	if err := s.place(i, cell, rot, phase); err != nil {
		return err
	}
	s.history.push(operation{kind: opPlace, index: i, cell: cell, rotation: rot, phase: phase})
	return nil
}

func (s *Session) place(i int, cell model.Cell, rot model.Rotation, phase model.Phase) error {
	if s.slots[i].placed {
		return fmt.Errorf("%w: %s", ErrAlreadyPlaced, s.components[i].Ref)
	}
	rot = rot.Normalize()
	w, h := s.Footprint(i, rot)
	if !s.grid.Fits(cell.Col, cell.Row, w, h) {
		return fmt.Errorf("%w: %s at (%d,%d)", ErrDoesNotFit, s.components[i].Ref, cell.Col, cell.Row)
	}
	s.grid.fill(cell.Col, cell.Row, w, h, i)
	s.slots[i] = slot{
		placed:    true,
		origin:    cell,
		cellsWide: w,
		cellsHigh: h,
		rotation:  rot,
		phase:     phase,
	}
	return nil
}

// Remove takes component i off the grid. The component keeps its rotation.
func (s *Session) Remove(i int) error {
	prev := s.slots[i]
	if err := s.remove(i); err != nil {
		return err
	}
	s.history.push(operation{kind: opRemove, index: i, cell: prev.origin, rotation: prev.rotation, phase: prev.phase})
	return nil
}

func (s *Session) remove(i int) error {
	st := s.slots[i]
	if !st.placed {
		return fmt.Errorf("%w: %s", ErrNotPlaced, s.components[i].Ref)
	}
	s.grid.fill(st.origin.Col, st.origin.Row, st.cellsWide, st.cellsHigh, freeCell)
	s.slots[i] = slot{rotation: st.rotation}
	return nil
}

// Undo reverts the most recent Place or Remove. Returns false if the
// journal is empty.
func (s *Session) Undo() (bool, error) {
	op, ok := s.history.undo()
	if !ok {
		return false, nil
	}
	return true, s.apply(op.inverse())
}

// Redo reapplies the most recently undone operation.
func (s *Session) Redo() (bool, error) {
	op, ok := s.history.redo()
	if !ok {
		return false, nil
	}
	return true, s.apply(op)
}

func (s *Session) apply(op operation) error {
	if op.kind == opRemove {
		return s.remove(op.index)
	}
	return s.place(op.index, op.cell, op.rotation, op.phase)
}

// Center returns the pixel center of a placed component.
func (s *Session) Center(i int) (model.Point2D, bool) {
	st := s.slots[i]
	if !st.placed {
		return model.Point2D{}, false
	}
	return s.grid.FootprintCenter(st.origin, st.cellsWide, st.cellsHigh), true
}

// PinPosition returns the absolute coordinate of pin p on a placed component.
func (s *Session) PinPosition(i, p int) (model.Point2D, bool) {
	center, ok := s.Center(i)
	if !ok {
		return model.Point2D{}, false
	}
	return translate(center, model.RotateOffset(pinOffset(s.components[i], p), s.slots[i].rotation)), true
}

// candidatePin returns where pin p of component i would sit if the
// component were placed at cell with rotation rot.
func (s *Session) candidatePin(i, p int, cell model.Cell, rot model.Rotation) model.Point2D {
	w, h := s.Footprint(i, rot)
	center := s.grid.FootprintCenter(cell, w, h)
	return translate(center, model.RotateOffset(pinOffset(s.components[i], p), rot))
}

// pinNormal returns the outward normal of pin p under component i's
// current rotation.
func (s *Session) pinNormal(i, p int) model.Point2D {
	return model.RotateOffset(s.normals[i][p], s.slots[i].rotation)
}

func pinOffset(c model.Component, p int) model.Point2D {
	return model.Point2D{X: c.Pins[p].X, Y: c.Pins[p].Y}
}

// Unplaced returns the indices of components not on the grid, in order.
func (s *Session) Unplaced() []int {
	var out []int
	for i, st := range s.slots {
		if !st.placed {
			out = append(out, i)
		}
	}
	return out
}

// PlacedCount returns how many components are on the grid.
func (s *Session) PlacedCount() int {
	n := 0
	for _, st := range s.slots {
		if st.placed {
			n++
		}
	}
	return n
}

// Placements reports every placed component in component order.
func (s *Session) Placements() []model.ComponentPlacement {
	var out []model.ComponentPlacement
	for i, st := range s.slots {
		if !st.placed {
			continue
		}
		c := s.components[i]
		center, _ := s.Center(i)
		pins := make([]model.Point2D, len(c.Pins))
		for p := range c.Pins {
			pins[p], _ = s.PinPosition(i, p)
		}
		out = append(out, model.ComponentPlacement{
			ComponentID: c.ID,
			Ref:         c.Ref,
			Type:        c.Type,
			Origin:      st.origin,
			CellsWide:   st.cellsWide,
			CellsHigh:   st.cellsHigh,
			Rotation:    st.rotation,
			Center:      center,
			Pins:        pins,
			Phase:       st.phase,
		})
	}
	return out
}

// Occupancy maps every cell to the covering component ID.
func (s *Session) Occupancy() [][]string {
	return s.grid.Occupancy(s.ids)
}
