package model

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is returned by PlacementSettings.Validate.
var ErrInvalidSettings = errors.New("invalid placement settings")

// PlacementSettings holds the grid sizing and scoring constants used by the placer.
type PlacementSettings struct {
	// Grid sizing
	MinCellSize float64 `json:"min_cell_size" toml:"min_cell_size"` // Smallest allowed cell edge
	CellMargin  float64 `json:"cell_margin" toml:"cell_margin"`     // Added to the smallest footprint side
	GridSlack   float64 `json:"grid_slack" toml:"grid_slack"`       // Multiplier on the needed cell count
	MinColumns  int     `json:"min_columns" toml:"min_columns"`
	MinRows     int     `json:"min_rows" toml:"min_rows"`
	OriginX     float64 `json:"origin_x" toml:"origin_x"` // Pixel position of cell (0,0)
	OriginY     float64 `json:"origin_y" toml:"origin_y"`

	// Search
	FrontierRadius   int     `json:"frontier_radius" toml:"frontier_radius"`       // Chebyshev radius around occupied cells
	StepBudgetFactor int     `json:"step_budget_factor" toml:"step_budget_factor"` // Iteration steps per component
	SpiralAngleStep  float64 `json:"spiral_angle_step" toml:"spiral_angle_step"`   // Degrees between spiral samples

	// Scoring
	PowerNetWeight      int     `json:"power_net_weight" toml:"power_net_weight"`
	FrontFactor         float64 `json:"front_factor" toml:"front_factor"`                 // Neighbor pin in front of the placed pin
	BehindFactor        float64 `json:"behind_factor" toml:"behind_factor"`               // Neighbor pin behind the placed pin
	PerpendicularFactor float64 `json:"perpendicular_factor" toml:"perpendicular_factor"` // Neither in front nor behind
	AlignmentPenalty    float64 `json:"alignment_penalty" toml:"alignment_penalty"`       // Two-pin part turned across its net
	IsolatedScore       float64 `json:"isolated_score" toml:"isolated_score"`             // Score with no placed neighbors

	// Reporting
	PairLengthWeight  float64 `json:"pair_length_weight" toml:"pair_length_weight"`
	LongestLinkWeight float64 `json:"longest_link_weight" toml:"longest_link_weight"`
}

// DefaultSettings returns the standard placement constants.
func DefaultSettings() PlacementSettings {
	return PlacementSettings{
		MinCellSize:         40,
		CellMargin:          20,
		GridSlack:           1.2,
		MinColumns:          8,
		MinRows:             6,
		OriginX:             100,
		OriginY:             100,
		FrontierRadius:      3,
		StepBudgetFactor:    3,
		SpiralAngleStep:     45,
		PowerNetWeight:      2,
		FrontFactor:         0.5,
		BehindFactor:        2.0,
		PerpendicularFactor: 1.2,
		AlignmentPenalty:    200,
		IsolatedScore:       1000,
		PairLengthWeight:    1.0,
		LongestLinkWeight:   0.3,
	}
}

// Validate checks that the settings can drive a placement run.
func (s PlacementSettings) Validate() error {
	switch {
	case s.MinCellSize <= 0:
		return fmt.Errorf("%w: min_cell_size must be positive", ErrInvalidSettings)
	case s.CellMargin < 0:
		return fmt.Errorf("%w: cell_margin must not be negative", ErrInvalidSettings)
	case s.GridSlack < 1:
		return fmt.Errorf("%w: grid_slack must be at least 1", ErrInvalidSettings)
	case s.MinColumns < 1 || s.MinRows < 1:
		return fmt.Errorf("%w: min_columns and min_rows must be positive", ErrInvalidSettings)
	case s.FrontierRadius < 1:
		return fmt.Errorf("%w: frontier_radius must be positive", ErrInvalidSettings)
	case s.StepBudgetFactor < 0:
		return fmt.Errorf("%w: step_budget_factor must not be negative", ErrInvalidSettings)
	case s.SpiralAngleStep <= 0 || s.SpiralAngleStep > 360:
		return fmt.Errorf("%w: spiral_angle_step must be in (0, 360]", ErrInvalidSettings)
	case s.PowerNetWeight < 1:
		return fmt.Errorf("%w: power_net_weight must be at least 1", ErrInvalidSettings)
	case s.FrontFactor <= 0 || s.BehindFactor <= 0 || s.PerpendicularFactor <= 0:
		return fmt.Errorf("%w: direction factors must be positive", ErrInvalidSettings)
	case s.AlignmentPenalty < 0:
		return fmt.Errorf("%w: alignment_penalty must not be negative", ErrInvalidSettings)
	case s.IsolatedScore <= 0:
		return fmt.Errorf("%w: isolated_score must be positive", ErrInvalidSettings)
	}
	return nil
}
