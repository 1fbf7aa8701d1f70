package engine

import (
	"errors"
	"math"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// ErrNothingToPlace is returned when a design has no components.
var ErrNothingToPlace = errors.New("nothing to place")

const freeCell = -1

// Grid is the placement grid. Each cell holds the arena index of the
// component covering it, or -1.
type Grid struct {
	Cols     int
	Rows     int
	CellSize float64
	OriginX  float64
	OriginY  float64
	cells    []int
}

// BuildGrid sizes a cell from the smallest footprint and allocates enough
// cells for every footprint plus slack.
func BuildGrid(components []model.Component, s model.PlacementSettings) (*Grid, error) {
	if len(components) == 0 {
		return nil, ErrNothingToPlace
	}

	smallest := math.Inf(1)
	for _, c := range components {
		smallest = math.Min(smallest, math.Max(c.Width, c.Height))
	}
	cellSize := math.Max(s.MinCellSize, smallest+s.CellMargin)

	needed := 0
	for _, c := range components {
		w, h := FootprintCells(c.Width, c.Height, cellSize, model.Rot0)
		needed += w * h
	}

	side := int(math.Ceil(math.Sqrt(float64(needed) * s.GridSlack)))
	g := &Grid{
		Cols:     max(s.MinColumns, side),
		Rows:     max(s.MinRows, side),
		CellSize: cellSize,
		OriginX:  s.OriginX,
		OriginY:  s.OriginY,
	}
	g.cells = make([]int, g.Cols*g.Rows)
	g.Clear()
	return g, nil
}

// CellsNeeded returns the total footprint area of components in cells.
func (g *Grid) CellsNeeded(components []model.Component) int {
	needed := 0
	for _, c := range components {
		w, h := FootprintCells(c.Width, c.Height, g.CellSize, model.Rot0)
		needed += w * h
	}
	return needed
}

// Clear frees every cell without resizing.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = freeCell
	}
}

// InBounds reports whether (col, row) lies on the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.Cols && row < g.Rows
}

// Owner returns the arena index covering a cell, or -1 for free or
// out-of-range cells.
func (g *Grid) Owner(col, row int) int {
	if !g.InBounds(col, row) {
		return freeCell
	}
	return g.cells[row*g.Cols+col]
}

// IsFree reports whether a cell is on the grid and unoccupied.
func (g *Grid) IsFree(col, row int) bool {
	return g.InBounds(col, row) && g.cells[row*g.Cols+col] == freeCell
}

// Fits reports whether a w×h footprint with its top-left at (col, row)
// lies on the grid over free cells only.
func (g *Grid) Fits(col, row, w, h int) bool {
	if !g.InBounds(col, row) || !g.InBounds(col+w-1, row+h-1) {
		return false
	}
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			if g.cells[r*g.Cols+c] != freeCell {
				return false
			}
		}
	}
	return true
}

func (g *Grid) fill(col, row, w, h, owner int) {
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			g.cells[r*g.Cols+c] = owner
		}
	}
}

// Center returns the middle cell of the grid.
func (g *Grid) Center() model.Cell {
	return model.Cell{Col: g.Cols / 2, Row: g.Rows / 2}
}

// CellOrigin returns the pixel position of a cell's top-left corner.
func (g *Grid) CellOrigin(c model.Cell) model.Point2D {
	return g.Info().CellOrigin(c)
}

// FootprintCenter returns the pixel center of a w×h footprint at origin c.
func (g *Grid) FootprintCenter(c model.Cell, w, h int) model.Point2D {
	o := g.CellOrigin(c)
	return model.Point2D{
		X: o.X + float64(w)*g.CellSize/2,
		Y: o.Y + float64(h)*g.CellSize/2,
	}
}

// FreeCells lists unoccupied cells in row-major order.
func (g *Grid) FreeCells() []model.Cell {
	var out []model.Cell
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.cells[r*g.Cols+c] == freeCell {
				out = append(out, model.Cell{Col: c, Row: r})
			}
		}
	}
	return out
}

// Info describes the grid geometry.
func (g *Grid) Info() model.GridInfo {
	return model.GridInfo{
		Columns:  g.Cols,
		Rows:     g.Rows,
		CellSize: g.CellSize,
		OriginX:  g.OriginX,
		OriginY:  g.OriginY,
	}
}

// Occupancy maps every cell to the ID of the covering component, [row][col].
func (g *Grid) Occupancy(ids []string) [][]string {
	out := make([][]string, g.Rows)
	for r := range out {
		out[r] = make([]string, g.Cols)
		for c := range out[r] {
			if owner := g.cells[r*g.Cols+c]; owner != freeCell {
				out[r][c] = ids[owner]
			}
		}
	}
	return out
}
