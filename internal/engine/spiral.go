package engine

import (
	"math"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// SpiralSearch looks for a free origin for a w×h footprint. It walks rings
// of growing radius around the grid center, up to and including the larger
// grid dimension, sampling every angleStep degrees, then falls back to a row-major scan. The returned method tells
// which stage found the cell.
func SpiralSearch(g *Grid, w, h int, angleStep float64) (model.Cell, model.Method, bool) {
	center := g.Center()
	maxRadius := max(g.Cols, g.Rows)
	for radius := 0; radius <= maxRadius; radius++ {
		for angle := 0.0; angle < 360; angle += angleStep {
			rad := angle * math.Pi / 180
			col := center.Col + int(math.Round(float64(radius)*math.Cos(rad)))
			row := center.Row + int(math.Round(float64(radius)*math.Sin(rad)))
			if g.Fits(col, row, w, h) {
				return model.Cell{Col: col, Row: row}, model.MethodSpiral, true
			}
		}
	}

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.Fits(col, row, w, h) {
				return model.Cell{Col: col, Row: row}, model.MethodScan, true
			}
		}
	}
	return model.Cell{}, "", false
}
