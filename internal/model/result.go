package model

// Phase names a stage of the placement run.
type Phase string

const (
	PhaseSeeding    Phase = "seeding"
	PhaseIterating  Phase = "iterating"
	PhaseCompleting Phase = "completing"
	PhaseDone       Phase = "done"
)

// Method records how a placement cell was found.
type Method string

const (
	MethodCenter   Method = "center"   // Grid center during seeding
	MethodFrontier Method = "frontier" // Best F-score over the frontier
	MethodSpiral   Method = "spiral"   // Spiral ring search
	MethodScan     Method = "scan"     // Linear scan after the spiral gave up
	MethodGreedy   Method = "greedy"   // Completion pass
)

// Cell is a grid coordinate.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// GridInfo describes the grid a layout was computed on.
type GridInfo struct {
	Columns  int     `json:"columns"`
	Rows     int     `json:"rows"`
	CellSize float64 `json:"cell_size"`
	OriginX  float64 `json:"origin_x"`
	OriginY  float64 `json:"origin_y"`
}

// CellOrigin returns the pixel position of a cell's top-left corner.
func (g GridInfo) CellOrigin(c Cell) Point2D {
	return Point2D{
		X: g.OriginX + float64(c.Col)*g.CellSize,
		Y: g.OriginY + float64(c.Row)*g.CellSize,
	}
}

// Width returns the grid width in length units.
func (g GridInfo) Width() float64 { return float64(g.Columns) * g.CellSize }

// Height returns the grid height in length units.
func (g GridInfo) Height() float64 { return float64(g.Rows) * g.CellSize }

// ComponentPlacement is the final state of one placed component.
type ComponentPlacement struct {
	ComponentID string    `json:"component_id"`
	Ref         string    `json:"ref"`
	Type        string    `json:"type"`
	Origin      Cell      `json:"origin"`
	CellsWide   int       `json:"cells_wide"`
	CellsHigh   int       `json:"cells_high"`
	Rotation    Rotation  `json:"rotation"`
	Center      Point2D   `json:"center"`
	Pins        []Point2D `json:"pins"`
	Phase       Phase     `json:"phase"`
}

// Cells lists every grid cell covered by the placement.
func (p ComponentPlacement) Cells() []Cell {
	cells := make([]Cell, 0, p.CellsWide*p.CellsHigh)
	for r := 0; r < p.CellsHigh; r++ {
		for c := 0; c < p.CellsWide; c++ {
			cells = append(cells, Cell{Col: p.Origin.Col + c, Row: p.Origin.Row + r})
		}
	}
	return cells
}

// StepRecord logs one committed placement.
type StepRecord struct {
	Step        int      `json:"step"`
	Phase       Phase    `json:"phase"`
	ComponentID string   `json:"component_id"`
	Ref         string   `json:"ref"`
	Origin      Cell     `json:"origin"`
	Rotation    Rotation `json:"rotation"`
	Method      Method   `json:"method"`
	JScore      float64  `json:"j_score"`
	Score       float64  `json:"score"` // F-score, or the greedy score in the completion pass
}

// Summary aggregates the outcome of a placement run.
type Summary struct {
	TotalComponents     int      `json:"total_components"`
	Placed              int      `json:"placed"`
	Unplaced            int      `json:"unplaced"`
	UnplacedIDs         []string `json:"unplaced_ids"`
	Deferred            int      `json:"deferred"`
	TotalConnections    int      `json:"total_connections"`
	IgnoredNets         int      `json:"ignored_nets"`
	EstimatedWireLength float64  `json:"estimated_wire_length"` // cells x weight
	PinWireLength       float64  `json:"pin_wire_length"`       // length units x weight
	LongestLink         float64  `json:"longest_link"`          // cells
	Score               float64  `json:"score"`
	Steps               int      `json:"steps"`
	BudgetExhausted     bool     `json:"budget_exhausted"`
}

// LayoutResult is everything a placement run produces.
type LayoutResult struct {
	Grid       GridInfo             `json:"grid"`
	Placements []ComponentPlacement `json:"placements"`
	Occupancy  [][]string           `json:"occupancy"` // [row][col] component ID or ""
	Steps      []StepRecord         `json:"steps"`
	Summary    Summary              `json:"summary"`
}

// FindPlacement returns the placement for a component ID, or nil.
func (r *LayoutResult) FindPlacement(id string) *ComponentPlacement {
	for i := range r.Placements {
		if r.Placements[i].ComponentID == id {
			return &r.Placements[i]
		}
	}
	return nil
}
