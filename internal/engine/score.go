package engine

import (
	"math"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// JScore ranks unplaced component i for placement: its weight to placed
// components minus its weight to the other unplaced ones.
func (s *Session) JScore(i int) float64 {
	var score float64
	for j := range s.components {
		if j == i {
			continue
		}
		w := s.conn.Weight(i, j)
		if s.slots[j].placed {
			score += w
		} else {
			score -= w
		}
	}
	return score
}

// FScore estimates the wiring cost of placing component i at cell with
// rotation rot: the average over nets to placed neighbors of
// weight × (pin distance × direction factor + alignment penalty). With no
// placed neighbor the result is the isolated score.
func (s *Session) FScore(i int, cell model.Cell, rot model.Rotation) float64 {
	twoTerminal := len(s.components[i].Pins) == 2
	var total float64
	count := 0

	for j := range s.components {
		if j == i || !s.slots[j].placed {
			continue
		}
		weight := s.conn.Weight(i, j)
		if weight <= 0 {
			continue
		}
		for _, l := range s.conn.Between(i, j) {
			own := s.candidatePin(i, l.pinA, cell, rot)
			other, _ := s.PinPosition(j, l.pinB)

			d := manhattan(own, other) * s.directionFactor(own, other, s.pinNormal(j, l.pinB))
			if twoTerminal && !alignedWith(own, other, rot) {
				d += s.settings.AlignmentPenalty
			}
			total += weight * d
			count++
		}
	}

	if count == 0 {
		return s.settings.IsolatedScore
	}
	return total / float64(count)
}

// directionFactor scales a pin distance by whether own lies in front of,
// behind, or beside the neighbor pin facing along normal.
func (s *Session) directionFactor(own, other, normal model.Point2D) float64 {
	dot := (own.X-other.X)*normal.X + (own.Y-other.Y)*normal.Y
	switch {
	case dot > 0:
		return s.settings.FrontFactor
	case dot < 0:
		return s.settings.BehindFactor
	default:
		return s.settings.PerpendicularFactor
	}
}

// alignedWith reports whether a two-terminal part at rotation rot lies
// along the dominant axis of the net between a and b.
func alignedWith(a, b model.Point2D, rot model.Rotation) bool {
	horizontalNet := math.Abs(a.X-b.X) >= math.Abs(a.Y-b.Y)
	return horizontalNet != rot.IsVertical()
}

// CompletionScore rates cell as an origin for component i in the completion
// pass: the sum over placed neighbors of weight / (distance + 1), distance
// being the center-to-center Manhattan distance in cells at the current
// rotation.
func (s *Session) CompletionScore(i int, cell model.Cell) float64 {
	w, h := s.Footprint(i, s.slots[i].rotation)
	cx := float64(cell.Col) + float64(w)/2
	cy := float64(cell.Row) + float64(h)/2

	var score float64
	for j, st := range s.slots {
		if j == i || !st.placed {
			continue
		}
		weight := s.conn.Weight(i, j)
		if weight <= 0 {
			continue
		}
		ox := float64(st.origin.Col) + float64(st.cellsWide)/2
		oy := float64(st.origin.Row) + float64(st.cellsHigh)/2
		dist := math.Abs(cx-ox) + math.Abs(cy-oy)
		score += weight / (dist + 1)
	}
	return score
}
