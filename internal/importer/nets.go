package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// netAliases maps net column roles to their accepted header names.
var netAliases = map[string][]string{
	"name":     {"net", "name", "net name", "signal"},
	"from":     {"from", "source", "start", "pin a", "a"},
	"to":       {"to", "target", "dest", "destination", "end", "pin b", "b"},
	"from_pin": {"from pin", "from_pin", "frompin"},
	"to_pin":   {"to pin", "to_pin", "topin"},
}

// ImportNets imports a net table from a CSV or Excel file, resolving pins
// against the components of design.
func ImportNets(path string, design model.Design) ImportResult {
	rows, prefix, warnings, err := readTable(path)
	if err != nil {
		return ImportResult{Errors: []string{err.Error()}}
	}
	return netsFromRows(rows, prefix, warnings, design)
}

// ImportNetsFromReader imports a net table from a CSV reader with a known
// delimiter.
func ImportNetsFromReader(r io.Reader, delimiter rune, design model.Design) ImportResult {
	rows, err := readRecords(r, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{err.Error()}}
	}
	return netsFromRows(rows, "Line", nil, design)
}

func netsFromRows(rows [][]string, rowPrefix string, warnings []string, design model.Design) ImportResult {
	result := ImportResult{Warnings: warnings}

	mapping, hasHeader := detectColumns(rows[0], netAliases)
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping["from"] == -1 || mapping["to"] == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: From, To")
			return result
		}
	} else {
		mapping = positional("from", "to", "name")
		mapping["from_pin"], mapping["to_pin"] = -1, -1
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		from, err := resolveEndpoint(&design, getCell(row, mapping["from"]), getCell(row, mapping["from_pin"]))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowLabel, err))
			continue
		}
		to, err := resolveEndpoint(&design, getCell(row, mapping["to"]), getCell(row, mapping["to_pin"]))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowLabel, err))
			continue
		}
		if from.Component == to.Component {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Net connects a component to itself, skipping", rowLabel))
			continue
		}

		result.Nets = append(result.Nets, model.NewNet(getCell(row, mapping["name"]), from, to))
	}

	return result
}

// resolveEndpoint turns "R1.2", "R1:2" or a ref plus separate pin into a
// pin reference.
func resolveEndpoint(d *model.Design, ref, pin string) (model.PinRef, error) {
	if ref == "" {
		return model.PinRef{}, fmt.Errorf("missing endpoint")
	}
	if pin == "" {
		i := strings.LastIndexAny(ref, ".:")
		if i <= 0 || i == len(ref)-1 {
			return model.PinRef{}, fmt.Errorf("endpoint '%s' has no pin", ref)
		}
		ref, pin = ref[:i], ref[i+1:]
	}
	return resolvePin(d, strings.TrimSpace(ref), strings.TrimSpace(pin))
}

// resolvePin finds a pin by name, then by 1-based number.
func resolvePin(d *model.Design, ref, pin string, alternatives ...string) (model.PinRef, error) {
	c := d.FindByRef(ref)
	if c == nil {
		return model.PinRef{}, fmt.Errorf("unknown component '%s'", ref)
	}
	for _, name := range append([]string{pin}, alternatives...) {
		if name == "" {
			continue
		}
		if idx := c.PinIndex(name); idx >= 0 {
			return model.PinRef{Component: c.ID, Pin: idx}, nil
		}
	}
	if n, err := strconv.Atoi(pin); err == nil && n >= 1 && n <= len(c.Pins) {
		return model.PinRef{Component: c.ID, Pin: n - 1}, nil
	}
	return model.PinRef{}, fmt.Errorf("component %s has no pin '%s'", ref, pin)
}
