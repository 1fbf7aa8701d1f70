package export

import (
	"fmt"

	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerGrid       = "GRID"
	LayerFootprints = "FOOTPRINTS"
	LayerPins       = "PINS"
	LayerNets       = "NETS"
	LayerRefs       = "REFS"
)

// dxfWriter flips layout coordinates, whose Y axis points down, into the
// Y-up space of a DXF drawing.
type dxfWriter struct {
	d    *drawing.Drawing
	grid model.GridInfo
}

func (w dxfWriter) flip(p model.Point2D) (float64, float64) {
	return p.X - w.grid.OriginX, w.grid.Height() - (p.Y - w.grid.OriginY)
}

func (w dxfWriter) line(a, b model.Point2D) error {
	x1, y1 := w.flip(a)
	x2, y2 := w.flip(b)
	_, err := w.d.Line(x1, y1, 0, x2, y2, 0)
	return err
}

func (w dxfWriter) rect(corner model.Point2D, width, height float64) error {
	pts := []model.Point2D{
		corner,
		{X: corner.X + width, Y: corner.Y},
		{X: corner.X + width, Y: corner.Y + height},
		{X: corner.X, Y: corner.Y + height},
	}
	for i := range pts {
		if err := w.line(pts[i], pts[(i+1)%len(pts)]); err != nil {
			return err
		}
	}
	return nil
}

// ExportDXF writes the grid, footprint outlines, pins, nets and reference
// designators on separate layers.
func ExportDXF(path string, design model.Design, result model.LayoutResult) error {
	if len(result.Placements) == 0 {
		return ErrNothingPlaced
	}

	w := dxfWriter{d: dxf.NewDrawing(), grid: result.Grid}
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerGrid, color.White},
		{LayerFootprints, color.Green},
		{LayerPins, color.Yellow},
		{LayerNets, color.Red},
		{LayerRefs, color.Cyan},
	}
	for _, l := range layers {
		if _, err := w.d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	if err := writeDXFEntities(w, design, result); err != nil {
		return fmt.Errorf("failed to write DXF entities: %w", err)
	}
	if err := w.d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF %s: %w", path, err)
	}
	return nil
}

func writeDXFEntities(w dxfWriter, design model.Design, result model.LayoutResult) error {
	grid := result.Grid

	if err := w.d.ChangeLayer(LayerGrid); err != nil {
		return err
	}
	for c := 0; c <= grid.Columns; c++ {
		top := grid.CellOrigin(model.Cell{Col: c})
		bottom := grid.CellOrigin(model.Cell{Col: c, Row: grid.Rows})
		if err := w.line(top, bottom); err != nil {
			return err
		}
	}
	for r := 0; r <= grid.Rows; r++ {
		left := grid.CellOrigin(model.Cell{Row: r})
		right := grid.CellOrigin(model.Cell{Col: grid.Columns, Row: r})
		if err := w.line(left, right); err != nil {
			return err
		}
	}

	if err := w.d.ChangeLayer(LayerFootprints); err != nil {
		return err
	}
	for _, p := range result.Placements {
		corner, fw, fh := footprintRect(design, grid, p)
		if err := w.rect(corner, fw, fh); err != nil {
			return err
		}
	}

	pinRadius := grid.CellSize * 0.05
	if err := w.d.ChangeLayer(LayerPins); err != nil {
		return err
	}
	for _, p := range result.Placements {
		for _, pin := range p.Pins {
			x, y := w.flip(pin)
			if _, err := w.d.Circle(x, y, 0, pinRadius); err != nil {
				return err
			}
		}
	}

	if err := w.d.ChangeLayer(LayerNets); err != nil {
		return err
	}
	for _, n := range design.Nets {
		a, okA := netEnd(result, n.From)
		b, okB := netEnd(result, n.To)
		if !okA || !okB {
			continue
		}
		if err := w.line(a, b); err != nil {
			return err
		}
	}

	textHeight := grid.CellSize * 0.2
	if err := w.d.ChangeLayer(LayerRefs); err != nil {
		return err
	}
	for _, p := range result.Placements {
		x, y := w.flip(p.Center)
		if _, err := w.d.Text(p.Ref, x, y, 0, textHeight); err != nil {
			return err
		}
	}
	return nil
}
