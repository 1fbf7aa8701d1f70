package model

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// Rotation is a component orientation in degrees: 0, 90, 180 or 270.
type Rotation int

const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

// Rotations lists the four orientations in search order.
var Rotations = []Rotation{Rot0, Rot90, Rot180, Rot270}

// Normalize folds any multiple of 90 into the range [0, 360).
func (r Rotation) Normalize() Rotation {
	n := int(r) % 360
	if n < 0 {
		n += 360
	}
	return Rotation(n)
}

// Add returns the rotation turned further by delta.
func (r Rotation) Add(delta Rotation) Rotation {
	return (r + delta).Normalize()
}

// Valid reports whether r is a quarter turn.
func (r Rotation) Valid() bool {
	return int(r)%90 == 0
}

// IsVertical reports whether the footprint is turned on its side.
func (r Rotation) IsVertical() bool {
	n := r.Normalize()
	return n == Rot90 || n == Rot270
}

func (r Rotation) String() string {
	switch r.Normalize() {
	case Rot90:
		return "90"
	case Rot180:
		return "180"
	case Rot270:
		return "270"
	default:
		return "0"
	}
}

// Point2D represents a 2D coordinate in length units.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Pin is a connection point on a component. X and Y are relative to the
// component center in its unrotated orientation; they never change when the
// component turns.
type Pin struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Placement records where a component ended up after a layout run.
type Placement struct {
	Col       int     `json:"col"`
	Row       int     `json:"row"`
	CellsWide int     `json:"cells_wide"`
	CellsHigh int     `json:"cells_high"`
	Center    Point2D `json:"center"`
}

// Component is a part on the board.
type Component struct {
	ID        string     `json:"id"`
	Ref       string     `json:"ref"`
	Type      string     `json:"type"`
	Value     string     `json:"value,omitempty"`
	Width     float64    `json:"width"`  // unrotated footprint width
	Height    float64    `json:"height"` // unrotated footprint height
	Pins      []Pin      `json:"pins"`
	Rotation  Rotation   `json:"rotation"`
	Placement *Placement `json:"placement,omitempty"`
}

// NewComponent creates a component with a fresh ID and a footprint derived
// from its type and pins.
func NewComponent(ref, typ string, pins []Pin) Component {
	w, h := EstimateFootprint(typ, pins)
	return Component{
		ID:     uuid.New().String()[:8],
		Ref:    ref,
		Type:   typ,
		Width:  w,
		Height: h,
		Pins:   copyPins(pins),
	}
}

// EnsureFootprint fills in a missing width or height from the size table.
func (c *Component) EnsureFootprint() {
	if c.Width > 0 && c.Height > 0 {
		return
	}
	w, h := EstimateFootprint(c.Type, c.Pins)
	if c.Width <= 0 {
		c.Width = w
	}
	if c.Height <= 0 {
		c.Height = h
	}
}

// Rotate turns the component by delta. Rotating by 0 is a no-op and four
// quarter turns restore the original orientation.
func (c *Component) Rotate(delta Rotation) {
	c.Rotation = c.Rotation.Add(delta)
}

// OrientedPins returns the pin offsets from the center under the current
// rotation, rounded to whole units.
func (c Component) OrientedPins() []Point2D {
	out := make([]Point2D, len(c.Pins))
	for i, p := range c.Pins {
		out[i] = RotateOffset(Point2D{X: p.X, Y: p.Y}, c.Rotation)
	}
	return out
}

// PinsAt returns absolute pin coordinates for the component centered at center.
func (c Component) PinsAt(center Point2D) []Point2D {
	out := c.OrientedPins()
	for i := range out {
		out[i].X += center.X
		out[i].Y += center.Y
	}
	return out
}

// PinIndex returns the index of the pin with the given name, or -1.
func (c Component) PinIndex(name string) int {
	for i, p := range c.Pins {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}

// IsPower reports whether nets touching this component count double.
func (c Component) IsPower() bool {
	return IsPowerType(c.Type)
}

// IsPowerType classifies a component type tag as a power symbol.
func IsPowerType(typ string) bool {
	t := strings.ToLower(strings.TrimSpace(typ))
	if strings.Contains(t, "power") {
		return true
	}
	return t == "vcc" || t == "gnd"
}

// RotateOffset rotates a center-relative offset by r and rounds the result.
// Quarter turns are applied exactly so no error accumulates.
func RotateOffset(p Point2D, r Rotation) Point2D {
	var x, y float64
	switch r.Normalize() {
	case Rot90:
		x, y = -p.Y, p.X
	case Rot180:
		x, y = -p.X, -p.Y
	case Rot270:
		x, y = p.Y, -p.X
	default:
		x, y = p.X, p.Y
	}
	return Point2D{X: roundUnit(x), Y: roundUnit(y)}
}

// roundUnit rounds to whole units and clears negative zero.
func roundUnit(v float64) float64 {
	r := math.Round(v)
	if r == 0 {
		return 0
	}
	return r
}

func copyPins(pins []Pin) []Pin {
	if pins == nil {
		return []Pin{}
	}
	out := make([]Pin, len(pins))
	copy(out, pins)
	return out
}

// PinRef addresses one pin on one component.
type PinRef struct {
	Component string `json:"component"`
	Pin       int    `json:"pin"`
}

// Net is a wire between two pins.
type Net struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	From PinRef `json:"from"`
	To   PinRef `json:"to"`
}

// NewNet creates a net with a fresh ID.
func NewNet(name string, from, to PinRef) Net {
	return Net{
		ID:   uuid.New().String()[:8],
		Name: name,
		From: from,
		To:   to,
	}
}
