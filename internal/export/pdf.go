// Package export writes placement results to PDF, label sheet, spreadsheet
// and drawing formats.
package export

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoardPlacer/internal/model"
)

// ErrNothingPlaced is returned by every exporter when the result holds no
// placements.
var ErrNothingPlaced = errors.New("no placed components to export")

// partColor represents an RGB color for a placed component.
type partColor struct {
	R, G, B int
}

// partColors is the fill cycle for component footprints.
var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders the layout on one page, scaled to fit, followed by a
// summary page. The design supplies footprint sizes and nets; placements
// without a matching component are drawn by their cell extent.
func ExportPDF(path string, design model.Design, result model.LayoutResult) error {
	if len(result.Placements) == 0 {
		return ErrNothingPlaced
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, design, result)

	pdf.AddPage()
	renderSummaryPage(pdf, design, result)

	return pdf.OutputFileAndClose(path)
}

// pageTransform maps layout coordinates onto the drawing area of the page.
type pageTransform struct {
	scale   float64
	offsetX float64
	offsetY float64
	grid    model.GridInfo
}

func (t pageTransform) point(p model.Point2D) (float64, float64) {
	return t.offsetX + (p.X-t.grid.OriginX)*t.scale, t.offsetY + (p.Y-t.grid.OriginY)*t.scale
}

// renderLayoutPage draws the grid, footprints, pins and nets on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, design model.Design, result model.LayoutResult) {
	grid := result.Grid
	sum := result.Summary

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := designTitle(design)
	title += fmt.Sprintf(" (%d x %d cells of %.0f)", grid.Columns, grid.Rows, grid.CellSize)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Placed: %d/%d | Wire length: %.0f cells | Pin wire: %.0f | Longest link: %.1f | Score: %.3f",
		sum.Placed, sum.TotalComponents, sum.EstimatedWireLength, sum.PinWireLength, sum.LongestLink, sum.Score)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	if grid.Width() <= 0 || grid.Height() <= 0 {
		return
	}

	scale := math.Min(drawWidth/grid.Width(), drawHeight/grid.Height())
	canvasW := grid.Width() * scale
	canvasH := grid.Height() * scale

	t := pageTransform{
		scale:   scale,
		offsetX: marginLeft + (drawWidth-canvasW)/2,
		offsetY: drawAreaTop,
		grid:    grid,
	}

	// Board background
	pdf.SetFillColor(235, 245, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(t.offsetX, t.offsetY, canvasW, canvasH, "FD")

	drawGridLines(pdf, t, canvasW, canvasH)

	colors := make(map[string]partColor, len(result.Placements))
	for i, p := range result.Placements {
		col := partColors[i%len(partColors)]
		colors[p.ComponentID] = col
		drawFootprint(pdf, t, design, p, col)
	}

	drawNets(pdf, t, design, result)

	for _, p := range result.Placements {
		drawPins(pdf, t, p)
	}

	drawGridAnnotations(pdf, grid, t.offsetX, t.offsetY, canvasW, canvasH)
	drawComponentLegend(pdf, result.Placements, colors, t.offsetY+canvasH+5)
}

// drawGridLines draws the cell boundaries in a light gray.
func drawGridLines(pdf *fpdf.Fpdf, t pageTransform, canvasW, canvasH float64) {
	pdf.SetDrawColor(200, 210, 200)
	pdf.SetLineWidth(0.1)
	step := t.grid.CellSize * t.scale
	for c := 1; c < t.grid.Columns; c++ {
		x := t.offsetX + float64(c)*step
		pdf.Line(x, t.offsetY, x, t.offsetY+canvasH)
	}
	for r := 1; r < t.grid.Rows; r++ {
		y := t.offsetY + float64(r)*step
		pdf.Line(t.offsetX, y, t.offsetX+canvasW, y)
	}
}

// footprintRect returns the top-left corner and size of a placement's actual
// footprint in layout coordinates.
func footprintRect(design model.Design, grid model.GridInfo, p model.ComponentPlacement) (model.Point2D, float64, float64) {
	if c := design.FindComponent(p.ComponentID); c != nil && c.Width > 0 && c.Height > 0 {
		w, h := c.Width, c.Height
		if p.Rotation.IsVertical() {
			w, h = h, w
		}
		return model.Point2D{X: p.Center.X - w/2, Y: p.Center.Y - h/2}, w, h
	}
	return grid.CellOrigin(p.Origin), float64(p.CellsWide) * grid.CellSize, float64(p.CellsHigh) * grid.CellSize
}

// drawFootprint fills the occupied cells faintly and the footprint itself in
// the component color, then writes the reference in the middle.
func drawFootprint(pdf *fpdf.Fpdf, t pageTransform, design model.Design, p model.ComponentPlacement, col partColor) {
	cx, cy := t.point(t.grid.CellOrigin(p.Origin))
	cw := float64(p.CellsWide) * t.grid.CellSize * t.scale
	ch := float64(p.CellsHigh) * t.grid.CellSize * t.scale
	pdf.SetFillColor(lighten(col.R), lighten(col.G), lighten(col.B))
	pdf.Rect(cx, cy, cw, ch, "F")

	corner, w, h := footprintRect(design, t.grid, p)
	px, py := t.point(corner)
	pw, ph := w*t.scale, h*t.scale

	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	pdf.Rect(px, py, pw, ph, "FD")

	if pw > 6 && ph > 3 {
		pdf.SetFont("Helvetica", "B", labelFontSize(pw, ph))
		pdf.SetTextColor(0, 0, 0)
		labelW := pdf.GetStringWidth(p.Ref)
		if labelW < pw-1 {
			pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
			pdf.CellFormat(labelW, 4, p.Ref, "", 0, "C", false, 0, "")
		}
	}
}

// drawPins marks each pin with a small circle; the first pin is filled.
func drawPins(pdf *fpdf.Fpdf, t pageTransform, p model.ComponentPlacement) {
	r := math.Max(0.4, math.Min(1.2, t.grid.CellSize*t.scale*0.06))
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.15)
	for i, pin := range p.Pins {
		x, y := t.point(pin)
		if i == 0 {
			pdf.SetFillColor(0, 0, 0)
			pdf.Circle(x, y, r, "FD")
			continue
		}
		pdf.SetFillColor(255, 255, 255)
		pdf.Circle(x, y, r, "FD")
	}
}

// drawNets draws a straight line for every net whose two ends are placed.
func drawNets(pdf *fpdf.Fpdf, t pageTransform, design model.Design, result model.LayoutResult) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.2)
	for _, n := range design.Nets {
		a, okA := netEnd(result, n.From)
		b, okB := netEnd(result, n.To)
		if !okA || !okB {
			continue
		}
		x1, y1 := t.point(a)
		x2, y2 := t.point(b)
		pdf.Line(x1, y1, x2, y2)
	}
}

// netEnd resolves a pin reference to its placed position.
func netEnd(result model.LayoutResult, ref model.PinRef) (model.Point2D, bool) {
	p := result.FindPlacement(ref.Component)
	if p == nil || ref.Pin < 0 || ref.Pin >= len(p.Pins) {
		return model.Point2D{}, false
	}
	return p.Pins[ref.Pin], true
}

// drawGridAnnotations labels the board size outside the drawing.
func drawGridAnnotations(pdf *fpdf.Fpdf, grid model.GridInfo, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f (%d cols)", grid.Width(), grid.Columns)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f (%d rows)", grid.Height(), grid.Rows)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawComponentLegend renders a compact legend of placed components below the board.
func drawComponentLegend(pdf *fpdf.Fpdf, placements []model.ComponentPlacement, colors map[string]partColor, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY+4)
	pdf.CellFormat(30, 4, "Components:", "", 0, "L", false, 0, "")
	startY += 4

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, p := range placements {
		col := colors[p.ComponentID]
		label := fmt.Sprintf("%s %s (%d,%d)", p.Ref, p.Type, p.Origin.Col, p.Origin.Row)
		if p.Rotation != model.Rot0 {
			label += " " + p.Rotation.String()
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY > pageHeight-marginBottom-4 {
			break
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the run metrics, the grid and the unplaced list.
func renderSummaryPage(pdf *fpdf.Fpdf, design model.Design, result model.LayoutResult) {
	sum := result.Summary

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Placement Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	y = renderItems(pdf, y, []summaryItem{
		{"Components", fmt.Sprintf("%d", sum.TotalComponents)},
		{"Placed", fmt.Sprintf("%d", sum.Placed)},
		{"Unplaced", fmt.Sprintf("%d", sum.Unplaced)},
		{"Deferred", fmt.Sprintf("%d", sum.Deferred)},
		{"Connections", fmt.Sprintf("%d", sum.TotalConnections)},
		{"Ignored Nets", fmt.Sprintf("%d", sum.IgnoredNets)},
		{"Wire Length (cells)", fmt.Sprintf("%.1f", sum.EstimatedWireLength)},
		{"Pin Wire Length", fmt.Sprintf("%.1f", sum.PinWireLength)},
		{"Longest Link (cells)", fmt.Sprintf("%.1f", sum.LongestLink)},
		{"Layout Score", fmt.Sprintf("%.4f", sum.Score)},
		{"Iteration Steps", stepsLabel(sum)},
	})

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Grid", "", 0, "L", false, 0, "")
	y += 9

	grid := result.Grid
	y = renderItems(pdf, y, []summaryItem{
		{"Cells", fmt.Sprintf("%d x %d", grid.Columns, grid.Rows)},
		{"Cell Size", fmt.Sprintf("%.1f", grid.CellSize)},
		{"Origin", fmt.Sprintf("(%.0f, %.0f)", grid.OriginX, grid.OriginY)},
		{"Board", fmt.Sprintf("%.0f x %.0f", grid.Width(), grid.Height())},
	})

	if len(sum.UnplacedIDs) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Components", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		refs := make([]string, 0, len(sum.UnplacedIDs))
		for _, id := range sum.UnplacedIDs {
			if c := design.FindComponent(id); c != nil {
				refs = append(refs, fmt.Sprintf("%s (%s, %.0f x %.0f)", c.Ref, c.Type, c.Width, c.Height))
				continue
			}
			refs = append(refs, id)
		}
		pdf.SetXY(marginLeft+5, y)
		pdf.MultiCell(pageWidth-marginLeft-marginRight-5, 5, strings.Join(refs, ", "), "", "L", false)
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BoardPlacer - Connectivity Driven Footprint Placement", "", 0, "C", false, 0, "")
}

type summaryItem struct {
	label string
	value string
}

// renderItems writes label/value rows starting at y and returns the next free y.
func renderItems(pdf *fpdf.Fpdf, y float64, items []summaryItem) float64 {
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 6
	}
	return y
}

func stepsLabel(sum model.Summary) string {
	if sum.BudgetExhausted {
		return fmt.Sprintf("%d (budget exhausted)", sum.Steps)
	}
	return fmt.Sprintf("%d", sum.Steps)
}

func designTitle(design model.Design) string {
	if design.Name == "" {
		return "Board Layout"
	}
	return design.Name
}

// lighten moves a color channel three quarters of the way to white.
func lighten(c int) int {
	return c + (255-c)*3/4
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 20:
		return 8
	case minDim > 10:
		return 7
	default:
		return 6
	}
}
