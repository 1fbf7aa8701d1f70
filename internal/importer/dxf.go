package importer

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

const (
	// padRatio is the largest pad diameter relative to the body's shorter side.
	padRatio = 0.25
	// arcSegments approximates ARC entities and polyline bulges.
	arcSegments = 24
	// joinTolerance is the widest gap between edge ends that still closes a shape.
	joinTolerance = 0.01
)

type edge struct {
	a, b model.Point2D
}

// pad is a CIRCLE entity that may mark a pin.
type pad struct {
	at     model.Point2D
	radius float64
}

// footprintSketch gathers the geometry of a footprint drawing. Coordinates
// are in drawing space, Y up.
type footprintSketch struct {
	shapes   []model.Outline
	edges    []edge
	pads     []pad
	warnings []string
}

func (s *footprintSketch) add(ent entity.Entity) {
	switch e := ent.(type) {
	case *entity.LwPolyline:
		shape := polylineShape(e)
		if len(shape) < 3 {
			s.warnings = append(s.warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			return
		}
		s.shapes = append(s.shapes, shape)
	case *entity.Circle:
		s.pads = append(s.pads, pad{at: model.Point2D{X: e.Center[0], Y: e.Center[1]}, radius: e.Radius})
	case *entity.Arc:
		pts := sampleArc(model.Point2D{X: e.Center[0], Y: e.Center[1]}, e.Radius,
			e.Angle[0]*math.Pi/180, sweepRadians(e.Angle[0], e.Angle[1]))
		for i := 1; i < len(pts); i++ {
			s.edges = append(s.edges, edge{pts[i-1], pts[i]})
		}
	case *entity.Line:
		s.edges = append(s.edges, edge{
			a: model.Point2D{X: e.Start[0], Y: e.Start[1]},
			b: model.Point2D{X: e.End[0], Y: e.End[1]},
		})
	}
}

// ImportDXF reads one footprint from a DXF drawing. The closed shape with
// the largest area is the body; it fixes the part's width, height and
// outline. Circles inside the body that are small next to it become pins,
// numbered top to bottom and left to right. A drawing made of circles only
// uses its largest circle as the body. Pin offsets and the outline are
// relative to the body center with Y pointing down, like the layout.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	d, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}
	entities := d.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var sk footprintSketch
	for _, ent := range entities {
		sk.add(ent)
	}
	sk.shapes = append(sk.shapes, joinEdges(sk.edges, joinTolerance)...)
	result.Warnings = append(result.Warnings, sk.warnings...)

	body, pads, ok := sk.body()
	if !ok {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}
	min, max := body.BoundingBox()
	width, height := max.X-min.X, max.Y-min.Y
	if width < joinTolerance || height < joinTolerance {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Footprint body is degenerate (%.2f x %.2f)", width, height))
		return result
	}
	if extra := len(sk.shapes) - 1; extra > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Ignored %d closed shapes besides the footprint body", extra))
	}

	center := model.Point2D{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2}
	limit := padRatio * math.Min(width, height)
	var pins []pad
	for _, p := range pads {
		inside := p.at.X > min.X && p.at.X < max.X && p.at.Y > min.Y && p.at.Y < max.Y
		if !inside || 2*p.radius > limit {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Ignored circle at (%.2f, %.2f): not a pad of the body", p.at.X, p.at.Y))
			continue
		}
		pins = append(pins, p)
	}
	sort.SliceStable(pins, func(i, j int) bool {
		if math.Abs(pins[i].at.Y-pins[j].at.Y) > joinTolerance {
			return pins[i].at.Y > pins[j].at.Y
		}
		return pins[i].at.X < pins[j].at.X
	})

	modelPins := make([]model.Pin, len(pins))
	for i, p := range pins {
		off := toLayout(p.at, center)
		modelPins[i] = model.Pin{Name: strconv.Itoa(i + 1), X: off.X, Y: off.Y}
	}
	outline := make(model.Outline, len(body))
	for i, pt := range body {
		outline[i] = toLayout(pt, center)
	}

	key := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	part := model.NewLibraryPart(key, key, model.CategoryImported, "generic", modelPins)
	part.Width, part.Height = width, height
	part.Outline = outline
	result.Parts = append(result.Parts, part)
	return result
}

// body picks the largest closed shape and returns the circles left to be
// read as pads.
func (s *footprintSketch) body() (model.Outline, []pad, bool) {
	if len(s.shapes) > 0 {
		best := 0
		for i := range s.shapes {
			if area(s.shapes[i]) > area(s.shapes[best]) {
				best = i
			}
		}
		s.shapes[0], s.shapes[best] = s.shapes[best], s.shapes[0]
		return s.shapes[0], s.pads, true
	}
	if len(s.pads) == 0 {
		return nil, nil, false
	}
	best := 0
	for i, p := range s.pads {
		if p.radius > s.pads[best].radius {
			best = i
		}
	}
	rest := append(append([]pad(nil), s.pads[:best]...), s.pads[best+1:]...)
	b := s.pads[best]
	s.shapes = []model.Outline{sampleArc(b.at, b.radius, 0, 2*math.Pi)[:arcSegments]}
	return s.shapes[0], rest, true
}

// toLayout expresses a drawing point relative to center with Y flipped.
func toLayout(p, center model.Point2D) model.Point2D {
	return model.Point2D{X: round2(p.X - center.X), Y: round2(center.Y - p.Y)}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// polylineShape expands bulged polyline segments into arc points.
func polylineShape(lw *entity.LwPolyline) model.Outline {
	var shape model.Outline
	n := len(lw.Vertices)
	for i, v := range lw.Vertices {
		p := model.Point2D{X: v[0], Y: v[1]}
		shape = append(shape, p)
		if i >= len(lw.Bulges) || math.Abs(lw.Bulges[i]) < 1e-9 || (i == n-1 && !lw.Closed) {
			continue
		}
		w := lw.Vertices[(i+1)%n]
		arc := bulgePoints(p, model.Point2D{X: w[0], Y: w[1]}, lw.Bulges[i])
		shape = append(shape, arc[1:len(arc)-1]...)
	}
	return shape
}

// bulgePoints samples the arc from p to q described by a DXF bulge, the
// tangent of a quarter of the included angle. Positive bulges turn
// counter-clockwise. The result starts at p and ends at q.
func bulgePoints(p, q model.Point2D, bulge float64) []model.Point2D {
	dx, dy := q.X-p.X, q.Y-p.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return []model.Point2D{p, q}
	}
	// Offset of the arc center from the chord midpoint along its left normal.
	off := chord * (1 - bulge*bulge) / (4 * bulge)
	c := model.Point2D{
		X: (p.X+q.X)/2 - dy/chord*off,
		Y: (p.Y+q.Y)/2 + dx/chord*off,
	}
	start := math.Atan2(p.Y-c.Y, p.X-c.X)
	pts := sampleArc(c, math.Hypot(p.X-c.X, p.Y-c.Y), start, 4*math.Atan(bulge))
	pts[0], pts[len(pts)-1] = p, q
	return pts
}

// sampleArc returns arcSegments+1 points from start through start+sweep.
func sampleArc(c model.Point2D, r, start, sweep float64) []model.Point2D {
	pts := make([]model.Point2D, arcSegments+1)
	for i := range pts {
		a := start + sweep*float64(i)/arcSegments
		pts[i] = model.Point2D{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return pts
}

// sweepRadians is the counter-clockwise sweep of a DXF arc from fromDeg to toDeg.
func sweepRadians(fromDeg, toDeg float64) float64 {
	sweep := math.Mod(toDeg-fromDeg, 360)
	if sweep <= 0 {
		sweep += 360
	}
	return sweep * math.Pi / 180
}

// joinEdges walks connected edges into closed shapes. Chains that do not
// close on themselves are dropped.
func joinEdges(edges []edge, tol float64) []model.Outline {
	near := func(a, b model.Point2D) bool {
		return math.Hypot(a.X-b.X, a.Y-b.Y) <= tol
	}

	rest := append([]edge(nil), edges...)
	var shapes []model.Outline
	for len(rest) > 0 {
		chain := []model.Point2D{rest[0].a, rest[0].b}
		rest = rest[1:]
		for grown := true; grown && len(rest) > 0; {
			grown = false
			tail := chain[len(chain)-1]
			for i, e := range rest {
				var next model.Point2D
				switch {
				case near(tail, e.a):
					next = e.b
				case near(tail, e.b):
					next = e.a
				default:
					continue
				}
				chain = append(chain, next)
				rest = append(rest[:i], rest[i+1:]...)
				grown = true
				break
			}
		}
		if len(chain) > 3 && near(chain[0], chain[len(chain)-1]) {
			shapes = append(shapes, model.Outline(chain[:len(chain)-1]))
		}
	}
	return shapes
}

// area is the absolute shoelace area of a polygon.
func area(o model.Outline) float64 {
	var sum float64
	for i := range o {
		j := (i + 1) % len(o)
		sum += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return math.Abs(sum) / 2
}
