package engine

import (
	"fmt"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PlacementSettings
}

// ComparisonResult holds the layout and headline numbers for one scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.LayoutResult
	Err           error
	PlacedCount   int
	UnplacedCount int
	WireLength    float64
	PinWireLength float64
	Score         float64
}

// CompareScenarios places the design once per scenario and returns the
// results in scenario order. This shows how much each heuristic constant
// contributes to the final layout.
func CompareScenarios(scenarios []ComparisonScenario, design model.Design) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Settings).Run(design)
		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			Err:           err,
			PlacedCount:   result.Summary.Placed,
			UnplacedCount: result.Summary.Unplaced,
			WireLength:    result.Summary.EstimatedWireLength,
			PinWireLength: result.Summary.PinWireLength,
			Score:         result.Summary.Score,
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if variants of the given settings,
// each switching off or widening one heuristic.
func BuildDefaultScenarios(base model.PlacementSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Scenario: ignore which side of a pin the neighbor sits on
	flat := base
	flat.FrontFactor, flat.BehindFactor, flat.PerpendicularFactor = 1, 1, 1
	scenarios = append(scenarios, ComparisonScenario{
		Name:     "No Pin Directionality",
		Settings: flat,
	})

	// Scenario: let two-pin parts turn freely
	if base.AlignmentPenalty > 0 {
		free := base
		free.AlignmentPenalty = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Alignment Penalty",
			Settings: free,
		})
	}

	// Scenario: look further from placed parts
	wide := base
	wide.FrontierRadius = base.FrontierRadius + 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Frontier Radius %d", wide.FrontierRadius),
		Settings: wide,
	})

	// Scenario: power nets count like signal nets
	if base.PowerNetWeight > 1 {
		flatPower := base
		flatPower.PowerNetWeight = 1
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Power Nets Single Weight",
			Settings: flatPower,
		})
	}

	return scenarios
}
