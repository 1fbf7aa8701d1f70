package export

import (
	"fmt"

	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names used by ExportXLSX.
const (
	SheetPlacement = "Placement"
	SheetSummary   = "Summary"
	SheetUnplaced  = "Unplaced"
)

// PlacementHeader is the header row shared by the spreadsheet and CSV exports.
var PlacementHeader = []string{
	"Ref", "Type", "Col", "Row", "X", "Y", "Rotation", "Cells Wide", "Cells High", "Phase",
}

// ExportXLSX writes the placements, the summary and the unplaced component
// IDs to an Excel workbook with one sheet each.
func ExportXLSX(path string, result model.LayoutResult) error {
	if len(result.Placements) == 0 {
		return ErrNothingPlaced
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPlacement); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetSummary, SheetUnplaced} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := [][]interface{}{toRow(PlacementHeader)}
	for _, p := range result.Placements {
		rows = append(rows, []interface{}{
			p.Ref, p.Type, p.Origin.Col, p.Origin.Row, p.Center.X, p.Center.Y,
			int(p.Rotation), p.CellsWide, p.CellsHigh, string(p.Phase),
		})
	}
	if err := writeRows(f, SheetPlacement, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetPlacement, "A1", "J1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(SheetPlacement, "A", "J", 12); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := writeRows(f, SheetSummary, summaryRows(result)); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	unplaced := [][]interface{}{{"Component ID"}}
	for _, id := range result.Summary.UnplacedIDs {
		unplaced = append(unplaced, []interface{}{id})
	}
	if err := writeRows(f, SheetUnplaced, unplaced); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetUnplaced, "A1", "A1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// summaryRows lays out the run metrics and grid as label/value pairs.
func summaryRows(result model.LayoutResult) [][]interface{} {
	sum := result.Summary
	grid := result.Grid
	return [][]interface{}{
		{"Metric", "Value"},
		{"Total Components", sum.TotalComponents},
		{"Placed", sum.Placed},
		{"Unplaced", sum.Unplaced},
		{"Deferred", sum.Deferred},
		{"Total Connections", sum.TotalConnections},
		{"Ignored Nets", sum.IgnoredNets},
		{"Estimated Wire Length", sum.EstimatedWireLength},
		{"Pin Wire Length", sum.PinWireLength},
		{"Longest Link", sum.LongestLink},
		{"Score", sum.Score},
		{"Steps", sum.Steps},
		{"Budget Exhausted", sum.BudgetExhausted},
		{"Grid Columns", grid.Columns},
		{"Grid Rows", grid.Rows},
		{"Cell Size", grid.CellSize},
	}
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
