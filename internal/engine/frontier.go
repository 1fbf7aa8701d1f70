package engine

import "github.com/piwi3910/BoardPlacer/internal/model"

// Frontier returns the free cells within a Chebyshev radius of any occupied
// cell, in row-major order. If there are none it returns every free cell.
func Frontier(g *Grid, radius int) []model.Cell {
	mark := make([]bool, len(g.cells))
	found := false
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.cells[row*g.Cols+col] == freeCell {
				continue
			}
			for dr := -radius; dr <= radius; dr++ {
				for dc := -radius; dc <= radius; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					r, c := row+dr, col+dc
					if g.IsFree(c, r) {
						mark[r*g.Cols+c] = true
						found = true
					}
				}
			}
		}
	}
	if !found {
		return g.FreeCells()
	}

	var out []model.Cell
	for i, m := range mark {
		if m {
			out = append(out, model.Cell{Col: i % g.Cols, Row: i / g.Cols})
		}
	}
	return out
}
