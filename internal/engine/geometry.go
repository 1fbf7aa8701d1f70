package engine

import (
	"math"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// FootprintCells converts a footprint in length units to whole cells,
// swapping the sides for vertical rotations. Each side is at least one cell.
func FootprintCells(width, height, cellSize float64, rot model.Rotation) (w, h int) {
	w = max(1, int(math.Ceil(width/cellSize)))
	h = max(1, int(math.Ceil(height/cellSize)))
	if rot.IsVertical() {
		return h, w
	}
	return w, h
}

// PinNormal returns the outward unit normal of pin idx in the component's
// unrotated frame. The normal points away from the nearest edge of the pin
// bounding box, edges checked left, right, top, bottom. An axis along which
// all pins line up has no edges. When no edge exists the pin's dominant
// offset from the center is used; a pin on the center has no normal.
func PinNormal(pins []model.Pin, idx int) model.Point2D {
	p := pins[idx]
	minX, minY := p.X, p.Y
	maxX, maxY := p.X, p.Y
	for _, q := range pins {
		minX = math.Min(minX, q.X)
		minY = math.Min(minY, q.Y)
		maxX = math.Max(maxX, q.X)
		maxY = math.Max(maxY, q.Y)
	}

	type edge struct {
		dist   float64
		normal model.Point2D
	}
	var edges []edge
	if maxX > minX {
		edges = append(edges,
			edge{p.X - minX, model.Point2D{X: -1}},
			edge{maxX - p.X, model.Point2D{X: 1}})
	}
	if maxY > minY {
		edges = append(edges,
			edge{p.Y - minY, model.Point2D{Y: -1}},
			edge{maxY - p.Y, model.Point2D{Y: 1}})
	}
	if len(edges) > 0 {
		best := edges[0]
		for _, e := range edges[1:] {
			if e.dist < best.dist {
				best = e
			}
		}
		return best.normal
	}

	switch {
	case p.X == 0 && p.Y == 0:
		return model.Point2D{}
	case math.Abs(p.X) >= math.Abs(p.Y):
		return model.Point2D{X: sign(p.X)}
	default:
		return model.Point2D{Y: sign(p.Y)}
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func manhattan(a, b model.Point2D) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

func translate(p, by model.Point2D) model.Point2D {
	return model.Point2D{X: p.X + by.X, Y: p.Y + by.Y}
}
