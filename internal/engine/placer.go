package engine

import (
	"context"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/piwi3910/BoardPlacer/internal/model"
)

// Placer runs the connectivity-driven sequential placement.
type Placer struct {
	Settings model.PlacementSettings
	Logger   *log.Logger // nil discards output
}

func New(settings model.PlacementSettings) *Placer {
	return &Placer{Settings: settings}
}

// Run places every component of the design and reports the layout.
// It returns ErrNothingToPlace for an empty design and a wrapped
// model.ErrInvalidSettings for unusable settings; every other problem is
// reported in the result summary.
func (p *Placer) Run(design model.Design) (model.LayoutResult, error) {
	return p.RunContext(context.Background(), design)
}

// RunContext is Run with cancellation checked between placement steps.
// On cancellation it returns the layout reached so far with ctx.Err().
func (p *Placer) RunContext(ctx context.Context, design model.Design) (model.LayoutResult, error) {
	if err := p.Settings.Validate(); err != nil {
		return model.LayoutResult{}, err
	}
	session, err := NewSession(design, p.Settings)
	if err != nil {
		return model.LayoutResult{}, err
	}

	r := &run{
		session:  session,
		settings: p.Settings,
		logger:   p.logger(),
		deferred: make([]bool, session.Len()),
	}
	r.logger.Debug("grid ready", "columns", session.grid.Cols, "rows", session.grid.Rows, "cell", session.grid.CellSize)

	r.seed()
	err = r.iterate(ctx)
	if err == nil {
		err = r.complete(ctx)
	}
	result := r.result()
	r.logger.Debug("placement done",
		"placed", result.Summary.Placed,
		"unplaced", result.Summary.Unplaced,
		"wire", result.Summary.EstimatedWireLength)
	return result, err
}

func (p *Placer) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.New(io.Discard)
}

// run holds the mutable state of one RunContext call.
type run struct {
	session   *Session
	settings  model.PlacementSettings
	logger    *log.Logger
	deferred  []bool
	steps     []model.StepRecord
	iterSteps int
	exhausted bool
}

// seed places the most connected component at the grid center, or as close
// as the spiral search gets.
func (r *run) seed() {
	s := r.session
	best := 0
	for i := 1; i < s.Len(); i++ {
		if s.conn.Total(i) > s.conn.Total(best) {
			best = i
		}
	}

	rot := s.Rotation(best)
	cell, method := s.grid.Center(), model.MethodCenter
	if !s.Fits(best, cell, rot) {
		w, h := s.Footprint(best, rot)
		var ok bool
		cell, method, ok = SpiralSearch(s.grid, w, h, r.settings.SpiralAngleStep)
		if !ok {
			r.logger.Warn("seed component does not fit", "ref", s.components[best].Ref)
			return
		}
	}
	r.commit(best, cell, rot, model.PhaseSeeding, method, 0, 0)
}

// iterate repeatedly picks the best-connected unplaced component and the
// frontier cell and rotation with the lowest F-score for it.
func (r *run) iterate(ctx context.Context) error {
	s := r.session
	budget := r.settings.StepBudgetFactor * s.Len()

	for r.iterSteps = 0; r.iterSteps < budget; r.iterSteps++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		next, jScore, ok := r.selectNext()
		if !ok {
			return nil
		}
		frontier := Frontier(s.grid, r.settings.FrontierRadius)
		if len(frontier) == 0 {
			return nil
		}

		cell, rot, fScore, found := r.bestCandidate(next, frontier)
		if found {
			r.commit(next, cell, rot, model.PhaseIterating, model.MethodFrontier, jScore, fScore)
			continue
		}

		rot = s.Rotation(next)
		w, h := s.Footprint(next, rot)
		cell, method, ok := SpiralSearch(s.grid, w, h, r.settings.SpiralAngleStep)
		if !ok {
			r.deferred[next] = true
			r.logger.Warn("deferring component", "ref", s.components[next].Ref)
			continue
		}
		r.commit(next, cell, rot, model.PhaseIterating, method, jScore, s.FScore(next, cell, rot))
	}

	if _, _, ok := r.selectNext(); ok {
		r.exhausted = true
		r.logger.Debug("step budget exhausted", "budget", budget)
	}
	return nil
}

// selectNext returns the unplaced, non-deferred component with the highest
// J-score. The first maximum in component order wins.
func (r *run) selectNext() (int, float64, bool) {
	s := r.session
	best, bestScore := -1, 0.0
	for i := 0; i < s.Len(); i++ {
		if s.IsPlaced(i) || r.deferred[i] {
			continue
		}
		score := s.JScore(i)
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, bestScore, best >= 0
}

// bestCandidate scans frontier cells and rotations for the lowest F-score.
// The first minimum in frontier order, then rotation order, wins.
func (r *run) bestCandidate(i int, frontier []model.Cell) (model.Cell, model.Rotation, float64, bool) {
	s := r.session
	var (
		bestCell  model.Cell
		bestRot   model.Rotation
		bestScore float64
		found     bool
	)
	for _, cell := range frontier {
		for _, rot := range model.Rotations {
			if !s.Fits(i, cell, rot) {
				continue
			}
			score := s.FScore(i, cell, rot)
			if !found || score < bestScore {
				bestCell, bestRot, bestScore, found = cell, rot, score, true
			}
		}
	}
	return bestCell, bestRot, bestScore, found
}

// complete places the leftovers by descending total weight, each at the
// free origin that is closest to its placed neighbors. Rotation is kept.
func (r *run) complete(ctx context.Context) error {
	s := r.session
	remaining := s.Unplaced()
	sort.SliceStable(remaining, func(a, b int) bool {
		return s.conn.Total(remaining[a]) > s.conn.Total(remaining[b])
	})

	for _, i := range remaining {
		if err := ctx.Err(); err != nil {
			return err
		}
		rot := s.Rotation(i)
		var (
			bestCell  model.Cell
			bestScore float64
			found     bool
		)
		for row := 0; row < s.grid.Rows; row++ {
			for col := 0; col < s.grid.Cols; col++ {
				cell := model.Cell{Col: col, Row: row}
				if !s.Fits(i, cell, rot) {
					continue
				}
				score := s.CompletionScore(i, cell)
				if !found || score > bestScore {
					bestCell, bestScore, found = cell, score, true
				}
			}
		}
		if !found {
			r.logger.Warn("no room for component", "ref", s.components[i].Ref)
			continue
		}
		r.commit(i, bestCell, rot, model.PhaseCompleting, model.MethodGreedy, 0, bestScore)
	}
	return nil
}

func (r *run) commit(i int, cell model.Cell, rot model.Rotation, phase model.Phase, method model.Method, jScore, score float64) {
	s := r.session
	if err := s.Place(i, cell, rot, phase); err != nil {
		// Callers only commit cells that passed Fits.
		r.logger.Error("placement rejected", "err", err)
		return
	}
	c := s.components[i]
	r.steps = append(r.steps, model.StepRecord{
		Step:        len(r.steps) + 1,
		Phase:       phase,
		ComponentID: c.ID,
		Ref:         c.Ref,
		Origin:      cell,
		Rotation:    rot,
		Method:      method,
		JScore:      jScore,
		Score:       score,
	})
	r.logger.Debug("placed", "ref", c.Ref, "phase", phase, "col", cell.Col, "row", cell.Row,
		"rotation", rot, "method", method, "j", jScore, "score", score)
}

func (r *run) result() model.LayoutResult {
	s := r.session
	return model.LayoutResult{
		Grid:       s.grid.Info(),
		Placements: s.Placements(),
		Occupancy:  s.Occupancy(),
		Steps:      r.steps,
		Summary:    r.summarize(),
	}
}
