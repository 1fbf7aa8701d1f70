package engine

import (
	"math"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// summarize computes the reporting metrics for the current session state.
// The wire estimates are independent of the F-score used while placing.
func (r *run) summarize() model.Summary {
	s := r.session
	sum := model.Summary{
		TotalComponents:  s.Len(),
		Placed:           s.PlacedCount(),
		UnplacedIDs:      []string{},
		TotalConnections: s.conn.TotalConnections(),
		IgnoredNets:      s.conn.Ignored(),
		Steps:            r.iterSteps,
		BudgetExhausted:  r.exhausted,
	}
	for _, i := range s.Unplaced() {
		sum.UnplacedIDs = append(sum.UnplacedIDs, s.components[i].ID)
	}
	sum.Unplaced = len(sum.UnplacedIDs)
	for _, d := range r.deferred {
		if d {
			sum.Deferred++
		}
	}

	var totalWeight float64
	for i := 0; i < s.Len(); i++ {
		for j := i + 1; j < s.Len(); j++ {
			w := s.conn.Weight(i, j)
			if w <= 0 {
				continue
			}
			totalWeight += w
			if !s.IsPlaced(i) || !s.IsPlaced(j) {
				continue
			}
			oi, _ := s.Origin(i)
			oj, _ := s.Origin(j)
			sum.EstimatedWireLength += w * float64(abs(oi.Col-oj.Col)+abs(oi.Row-oj.Row))
			sum.LongestLink = math.Max(sum.LongestLink, s.centerDistance(i, j))
			for _, l := range s.conn.Between(i, j) {
				a, _ := s.PinPosition(i, l.pinA)
				b, _ := s.PinPosition(j, l.pinB)
				sum.PinWireLength += w * manhattan(a, b)
			}
		}
	}

	diag := float64(s.grid.Cols + s.grid.Rows)
	if totalWeight > 0 && diag > 0 {
		sum.Score = r.settings.PairLengthWeight*sum.EstimatedWireLength/(totalWeight*diag) +
			r.settings.LongestLinkWeight*sum.LongestLink/diag
	}
	return sum
}

// centerDistance is the Manhattan distance in cells between the centers of
// two placed components.
func (s *Session) centerDistance(i, j int) float64 {
	a, b := s.slots[i], s.slots[j]
	ax := float64(a.origin.Col) + float64(a.cellsWide)/2
	ay := float64(a.origin.Row) + float64(a.cellsHigh)/2
	bx := float64(b.origin.Col) + float64(b.cellsWide)/2
	by := float64(b.origin.Row) + float64(b.cellsHigh)/2
	return math.Abs(ax-bx) + math.Abs(ay-by)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
