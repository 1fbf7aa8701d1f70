// Package importer reads component and net lists from CSV, Excel and KiCad
// netlist files, and footprint outlines from DXF drawings. Table imports
// detect the delimiter and map columns from case-insensitive header names.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Nets refer to
// components by ID; for net tables those are the IDs of the design the nets
// were resolved against.
type ImportResult struct {
	Components []model.Component
	Nets       []model.Net
	Parts      []model.LibraryPart
	Errors     []string
	Warnings   []string
}

// Design bundles the imported components and nets.
func (r ImportResult) Design(name string) model.Design {
	d := model.Design{Name: name, Components: r.Components, Nets: r.Nets}
	if d.Components == nil {
		d.Components = []model.Component{}
	}
	if d.Nets == nil {
		d.Nets = []model.Net{}
	}
	return d
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// detectColumns matches a header row against alias lists and returns the
// column index per role (-1 when absent) and whether any header was found.
func detectColumns(row []string, aliases map[string][]string) (map[string]int, bool) {
	mapping := make(map[string]int, len(aliases))
	for role := range aliases {
		mapping[role] = -1
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, names := range aliases {
			for _, alias := range names {
				if normalized == alias {
					isHeader = true
					if mapping[role] == -1 {
						mapping[role] = i
					}
				}
			}
		}
	}
	return mapping, isHeader
}

// positional builds a mapping from a fixed column order.
func positional(roles ...string) map[string]int {
	mapping := make(map[string]int, len(roles))
	for i, role := range roles {
		mapping[role] = i
	}
	return mapping
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// readCSV reads every record of a CSV file with an auto-detected delimiter.
func readCSV(path string) ([][]string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("Cannot open file: %v", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, fmt.Errorf("File is empty")
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readRecords(bytes.NewReader(data), delimiter)
	return records, warnings, err
}

func readRecords(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Cannot read CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("File is empty")
	}
	return records, nil
}

// readExcel returns the rows of the first sheet of an Excel workbook.
func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("Cannot read Excel data: %v", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Sheet is empty")
	}
	return rows, nil
}

// isExcel reports whether path names an Excel workbook.
func isExcel(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return true
	}
	return false
}

// readTable reads a CSV or Excel file depending on its extension. The row
// label prefix matches how users count rows in that format.
func readTable(path string) (rows [][]string, prefix string, warnings []string, err error) {
	if isExcel(path) {
		rows, err = readExcel(path)
		return rows, "Row", nil, err
	}
	rows, warnings, err = readCSV(path)
	return rows, "Line", warnings, err
}

// ImportTable reads a component table and, when netsPath is not empty, a
// net table resolved against the imported components. CSV and Excel files
// are told apart by extension.
func ImportTable(componentsPath, netsPath string, lib model.Library) ImportResult {
	result := ImportComponents(componentsPath, lib)
	if netsPath == "" || len(result.Components) == 0 {
		return result
	}

	nets := ImportNets(netsPath, result.Design(""))
	result.Nets = nets.Nets
	result.Errors = append(result.Errors, nets.Errors...)
	result.Warnings = append(result.Warnings, nets.Warnings...)
	return result
}
