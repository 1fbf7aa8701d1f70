package engine

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_TwoConnectedResistors(t *testing.T) {
	d := resistorDesign(2)
	connect(t, &d, "R1", "2", "R2", "1")

	result, err := New(model.DefaultSettings()).Run(d)
	require.NoError(t, err)

	assert.Equal(t, 8, result.Grid.Columns)
	assert.Equal(t, 6, result.Grid.Rows)
	require.Len(t, result.Steps, 2)

	seed := result.Steps[0]
	assert.Equal(t, "R1", seed.Ref)
	assert.Equal(t, model.PhaseSeeding, seed.Phase)
	assert.Equal(t, model.MethodCenter, seed.Method)
	assert.Equal(t, model.Cell{Col: 4, Row: 3}, seed.Origin)

	next := result.Steps[1]
	assert.Equal(t, "R2", next.Ref)
	assert.Equal(t, model.PhaseIterating, next.Phase)
	assert.Equal(t, model.MethodFrontier, next.Method)
	assert.Equal(t, model.Cell{Col: 5, Row: 3}, next.Origin)
	assert.Equal(t, model.Rot0, next.Rotation)
	assert.InDelta(t, 30.0, next.Score, 1e-9)
	assert.Equal(t, 1.0, next.JScore)

	p := result.FindPlacement(d.Components[0].ID)
	require.NotNil(t, p)
	assert.Equal(t, model.Point2D{X: 820, Y: 660}, p.Center)

	sum := result.Summary
	assert.Equal(t, 2, sum.Placed)
	assert.Equal(t, 0, sum.Unplaced)
	assert.Equal(t, 1, sum.TotalConnections)
	assert.Equal(t, 1, sum.Steps)
	assert.False(t, sum.BudgetExhausted)
	assert.InDelta(t, 1.0, sum.EstimatedWireLength, 1e-9)
	assert.InDelta(t, 60.0, sum.PinWireLength, 1e-9)
	assert.InDelta(t, 1.0, sum.LongestLink, 1e-9)
	assert.InDelta(t, 1.3/14, sum.Score, 1e-9)
}

func TestRun_PowerNetCountsOnce(t *testing.T) {
	lib := model.DefaultLibrary()
	d := resistorDesign(1)
	d.AddComponent(lib.Find("vcc").NewComponent("VCC"))
	connect(t, &d, "R1", "1", "VCC", "1")

	result, err := New(model.DefaultSettings()).Run(d)
	require.NoError(t, err)

	sum := result.Summary
	assert.Equal(t, 2, sum.Placed)
	assert.Equal(t, 1, sum.TotalConnections)
	assert.Equal(t, 2.0, result.Steps[1].JScore, "power net weighs double in selection")
}

func TestRun_ChainOrderAndIsolatedComponent(t *testing.T) {
	d := chainDesign(t)

	result, err := New(model.DefaultSettings()).Run(d)
	require.NoError(t, err)

	var refs []string
	for _, s := range result.Steps {
		refs = append(refs, s.Ref)
	}
	assert.Equal(t, []string{"R2", "R1", "R3", "R4", "R5"}, refs)

	last := result.Steps[4]
	assert.Equal(t, model.PhaseIterating, last.Phase)
	assert.Equal(t, model.MethodFrontier, last.Method)
	assert.Equal(t, 1000.0, last.Score)

	assert.Equal(t, 5, result.Summary.Placed)
	assert.Equal(t, 4, result.Summary.Steps)
	assert.Equal(t, 3, result.Summary.TotalConnections)
}

func TestRun_ManyComponentsGrowGrid(t *testing.T) {
	d := resistorDesign(60)

	result, err := New(model.DefaultSettings()).Run(d)
	require.NoError(t, err)

	assert.Equal(t, 9, result.Grid.Columns)
	assert.Equal(t, 9, result.Grid.Rows)
	assert.Equal(t, 60, result.Summary.Placed)
	assertLayoutConsistent(t, d, result)
}

func TestRun_ZeroBudgetCompletesEverything(t *testing.T) {
	settings := model.DefaultSettings()
	settings.StepBudgetFactor = 0
	d := chainDesign(t)

	result, err := New(settings).Run(d)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Summary.Placed)
	assert.True(t, result.Summary.BudgetExhausted)
	assert.Equal(t, 0, result.Summary.Steps)
	require.Len(t, result.Steps, 5)
	assert.Equal(t, "R2", result.Steps[0].Ref)
	for _, s := range result.Steps[1:] {
		assert.Equal(t, model.PhaseCompleting, s.Phase)
		assert.Equal(t, model.MethodGreedy, s.Method)
	}
	assert.Equal(t, "R5", result.Steps[4].Ref, "unconnected parts complete last")
	assert.Equal(t, model.Cell{Col: 0, Row: 0}, result.Steps[4].Origin)
	assertLayoutConsistent(t, d, result)
}

func TestRun_OversizedComponentStaysUnplaced(t *testing.T) {
	long := model.NewComponent("J1", "connector", nil)
	long.Width, long.Height = 700, 40
	small := model.NewComponent("D1", "led", nil)
	d := model.Design{Components: []model.Component{long, small}}

	result, err := New(model.DefaultSettings()).Run(d)
	require.NoError(t, err)

	sum := result.Summary
	assert.Equal(t, 1, sum.Placed)
	assert.Equal(t, 1, sum.Unplaced)
	assert.Equal(t, []string{long.ID}, sum.UnplacedIDs)
	assert.Equal(t, 1, sum.Deferred)

	require.Len(t, result.Steps, 1)
	assert.Equal(t, "D1", result.Steps[0].Ref)
	assert.Equal(t, model.Cell{Col: 0, Row: 0}, result.Steps[0].Origin)
	assert.Nil(t, result.FindPlacement(long.ID))
}

func TestRun_LayoutInvariants(t *testing.T) {
	d := mixedDesign(t)

	result, err := New(model.DefaultSettings()).Run(d)
	require.NoError(t, err)

	assert.Equal(t, len(d.Components), result.Summary.Placed)
	assertLayoutConsistent(t, d, result)
	for _, s := range result.Steps {
		assert.True(t, s.Rotation.Valid())
	}
}

func TestRun_Deterministic(t *testing.T) {
	d := mixedDesign(t)
	p := New(model.DefaultSettings())

	first, err := p.Run(d)
	require.NoError(t, err)
	second, err := p.Run(d)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_DoesNotModifyDesign(t *testing.T) {
	d := mixedDesign(t)
	_, err := New(model.DefaultSettings()).Run(d)
	require.NoError(t, err)
	for _, c := range d.Components {
		assert.Nil(t, c.Placement)
		assert.Equal(t, model.Rot0, c.Rotation)
	}
}

func TestRun_SeedKeepsRotation(t *testing.T) {
	d := resistorDesign(1)
	d.Components[0].Rotation = model.Rot90

	result, err := New(model.DefaultSettings()).Run(d)
	require.NoError(t, err)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, model.Rot90, result.Placements[0].Rotation)
}

func TestRun_IgnoresDanglingNets(t *testing.T) {
	d := chainDesign(t)
	d.RemoveComponent(d.Components[0].ID)

	result, err := New(model.DefaultSettings()).Run(d)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.IgnoredNets)
	assert.Equal(t, 4, result.Summary.Placed)
}

func TestRun_Errors(t *testing.T) {
	_, err := New(model.DefaultSettings()).Run(model.Design{})
	assert.ErrorIs(t, err, ErrNothingToPlace)

	settings := model.DefaultSettings()
	settings.FrontierRadius = 0
	_, err = New(settings).Run(resistorDesign(2))
	assert.ErrorIs(t, err, model.ErrInvalidSettings)
}

func TestRunContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(model.DefaultSettings()).RunContext(ctx, chainDesign(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, result.Summary.Placed, "seed runs before the first check")
}

func TestRun_LogsSteps(t *testing.T) {
	var buf bytes.Buffer
	p := New(model.DefaultSettings())
	p.Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	_, err := p.Run(chainDesign(t))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "placed")
	assert.Contains(t, buf.String(), "ref=R5")
}

// assertLayoutConsistent checks that placements never overlap, stay on the
// grid and cover exactly their footprint.
func assertLayoutConsistent(t *testing.T, d model.Design, result model.LayoutResult) {
	t.Helper()
	grid := result.Grid
	covered := 0
	for _, p := range result.Placements {
		c := d.FindComponent(p.ComponentID)
		require.NotNil(t, c, p.Ref)

		w, h := FootprintCells(c.Width, c.Height, grid.CellSize, p.Rotation)
		assert.Equal(t, w, p.CellsWide, p.Ref)
		assert.Equal(t, h, p.CellsHigh, p.Ref)

		for _, cell := range p.Cells() {
			require.True(t, cell.Col >= 0 && cell.Col < grid.Columns, p.Ref)
			require.True(t, cell.Row >= 0 && cell.Row < grid.Rows, p.Ref)
			assert.Equal(t, p.ComponentID, result.Occupancy[cell.Row][cell.Col], p.Ref)
		}
		covered += w * h
	}

	occupied := 0
	for _, row := range result.Occupancy {
		for _, id := range row {
			if id != "" {
				occupied++
			}
		}
	}
	assert.Equal(t, covered, occupied, "no two footprints share a cell")
}
