package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// componentAliases maps component column roles to their accepted header
// names (all lowercase).
var componentAliases = map[string][]string{
	"ref":      {"ref", "reference", "designator", "refdes", "ref des", "id"},
	"type":     {"type", "kind", "part", "component", "footprint", "package"},
	"value":    {"value", "val"},
	"width":    {"width", "w"},
	"height":   {"height", "h"},
	"rotation": {"rotation", "rot", "angle", "orientation"},
}

// ImportComponents imports a component table from a CSV or Excel file.
func ImportComponents(path string, lib model.Library) ImportResult {
	rows, prefix, warnings, err := readTable(path)
	if err != nil {
		return ImportResult{Errors: []string{err.Error()}}
	}
	return componentsFromRows(rows, prefix, warnings, lib)
}

// ImportComponentsFromReader imports a component table from a CSV reader
// with a known delimiter.
func ImportComponentsFromReader(r io.Reader, delimiter rune, lib model.Library) ImportResult {
	rows, err := readRecords(r, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{err.Error()}}
	}
	return componentsFromRows(rows, "Line", nil, lib)
}

func componentsFromRows(rows [][]string, rowPrefix string, warnings []string, lib model.Library) ImportResult {
	result := ImportResult{Warnings: warnings}

	mapping, hasHeader := detectColumns(rows[0], componentAliases)
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping["ref"] == -1 {
			missing = append(missing, "Ref")
		}
		if mapping["type"] == -1 {
			missing = append(missing, "Type")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		mapping = positional("ref", "type", "value", "width", "height", "rotation")
	}

	seen := make(map[string]bool)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		c, errMsg, warning := parseComponentRow(row, mapping, rowLabel, lib)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if seen[c.Ref] {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate reference '%s'", rowLabel, c.Ref))
			continue
		}
		seen[c.Ref] = true
		result.Components = append(result.Components, c)
	}

	return result
}

// parseComponentRow builds a component from one table row. Returns the
// component, any error message, and any warning message.
func parseComponentRow(row []string, mapping map[string]int, rowLabel string, lib model.Library) (model.Component, string, string) {
	ref := getCell(row, mapping["ref"])
	if ref == "" {
		return model.Component{}, fmt.Sprintf("%s: Missing reference", rowLabel), ""
	}
	typ := strings.ToLower(getCell(row, mapping["type"]))
	if typ == "" {
		return model.Component{}, fmt.Sprintf("%s: Missing type for %s", rowLabel, ref), ""
	}

	var warnings []string
	part := lib.Find(typ)
	if part == nil {
		generic := model.GenericPart(typ)
		part = &generic
		warnings = append(warnings, fmt.Sprintf("%s: Unknown type '%s', using a two-pin default", rowLabel, typ))
	}
	c := part.NewComponent(ref)
	c.Value = getCell(row, mapping["value"])

	for _, dim := range []struct {
		role string
		name string
		dst  *float64
	}{
		{"width", "width", &c.Width},
		{"height", "height", &c.Height},
	} {
		s := getCell(row, mapping[dim.role])
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Component{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, dim.name, s), ""
		}
		if v <= 0 {
			return model.Component{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel), ""
		}
		*dim.dst = v
	}

	if s := getCell(row, mapping["rotation"]); s != "" {
		rot, ok := parseRotation(s)
		if ok {
			c.Rotation = rot
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown rotation '%s', defaulting to 0", rowLabel, s))
		}
	}

	return c, "", strings.Join(warnings, "; ")
}

// parseRotation accepts a quarter-turn angle in degrees, with or without a
// trailing degree sign.
func parseRotation(s string) (model.Rotation, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "°")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != float64(int(v)) {
		return model.Rot0, false
	}
	r := model.Rotation(int(v))
	if !r.Valid() {
		return model.Rot0, false
	}
	return r.Normalize(), true
}
