package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Ref,Type,Value\nR1,resistor,10k\nD1,led,red\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Ref;Type;Value\nR1;resistor;10k\nD1;led;red\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Ref\tType\tValue\nR1\tresistor\t10k\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Ref|Type|Value\nR1|resistor|10k\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── Component Table Tests ─────────────────────────────────

func TestImportComponentsFromReader_WithHeaders(t *testing.T) {
	data := "Ref,Type,Value,Width,Height,Rotation\n" +
		"R1,Resistor,10k,,,90\n" +
		"U1,opamp,TL072,200,120,\n"
	result := ImportComponentsFromReader(strings.NewReader(data), ',', model.DefaultLibrary())

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(result.Components))
	}

	r1 := result.Components[0]
	if r1.Ref != "R1" || r1.Type != "resistor" || r1.Value != "10k" {
		t.Errorf("unexpected R1: %+v", r1)
	}
	if r1.Width != 140 || r1.Height != 40 {
		t.Errorf("expected library footprint 140x40, got %gx%g", r1.Width, r1.Height)
	}
	if r1.Rotation != model.Rot90 {
		t.Errorf("expected rotation 90, got %v", r1.Rotation)
	}
	if len(r1.Pins) != 2 || r1.Pins[1].Name != "2" {
		t.Errorf("expected library pins, got %+v", r1.Pins)
	}

	u1 := result.Components[1]
	if u1.Width != 200 || u1.Height != 120 {
		t.Errorf("expected explicit footprint 200x120, got %gx%g", u1.Width, u1.Height)
	}
	if len(u1.Pins) != 2 {
		t.Errorf("expected two-pin default for unknown type, got %d pins", len(u1.Pins))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unknown type 'opamp'") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown type warning, got %v", result.Warnings)
	}
}

func TestImportComponentsFromReader_WithoutHeaders(t *testing.T) {
	data := "R1,resistor,1k\nC1,capacitor,100n\n"
	result := ImportComponentsFromReader(strings.NewReader(data), ',', model.DefaultLibrary())

	if len(result.Components) != 2 {
		t.Fatalf("expected 2 components, got %d (errors: %v)", len(result.Components), result.Errors)
	}
	if result.Components[1].Value != "100n" {
		t.Errorf("expected value 100n, got %q", result.Components[1].Value)
	}
}

func TestImportComponentsFromReader_ReorderedColumns(t *testing.T) {
	data := "Value;Designator;Kind\n220R;R7;resistor\n"
	result := ImportComponentsFromReader(strings.NewReader(data), ';', model.DefaultLibrary())

	if len(result.Components) != 1 {
		t.Fatalf("expected 1 component, got %d (errors: %v)", len(result.Components), result.Errors)
	}
	c := result.Components[0]
	if c.Ref != "R7" || c.Value != "220R" || c.Type != "resistor" {
		t.Errorf("unexpected component %+v", c)
	}
}

func TestImportComponentsFromReader_RowErrors(t *testing.T) {
	data := "Ref,Type,Width\n" +
		",resistor,\n" +
		"R2,,\n" +
		"R3,resistor,abc\n" +
		"R4,resistor,-5\n" +
		"R5,resistor,\n" +
		"R5,resistor,\n"
	result := ImportComponentsFromReader(strings.NewReader(data), ',', model.DefaultLibrary())

	if len(result.Components) != 1 {
		t.Errorf("expected 1 valid component, got %d", len(result.Components))
	}
	if len(result.Errors) != 5 {
		t.Errorf("expected 5 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(strings.Join(result.Errors, "\n"), "Duplicate reference 'R5'") {
		t.Errorf("expected duplicate reference error, got %v", result.Errors)
	}
}

func TestImportComponentsFromReader_MissingRequiredColumn(t *testing.T) {
	data := "Value,Width\n10k,100\n"
	result := ImportComponentsFromReader(strings.NewReader(data), ',', model.DefaultLibrary())

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Ref, Type") {
		t.Errorf("expected missing column error, got %v", result.Errors)
	}
}

func TestImportComponentsFromReader_Empty(t *testing.T) {
	result := ImportComponentsFromReader(strings.NewReader(""), ',', model.DefaultLibrary())
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestParseRotation(t *testing.T) {
	tests := []struct {
		input string
		want  model.Rotation
		ok    bool
	}{
		{"0", model.Rot0, true},
		{"90", model.Rot90, true},
		{"180°", model.Rot180, true},
		{"-90", model.Rot270, true},
		{"450", model.Rot90, true},
		{"45", model.Rot0, false},
		{"12.5", model.Rot0, false},
		{"left", model.Rot0, false},
	}
	for _, tt := range tests {
		got, ok := parseRotation(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseRotation(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestImportComponentsFromReader_BadRotationWarns(t *testing.T) {
	data := "Ref,Type,Rotation\nR1,resistor,45\n"
	result := ImportComponentsFromReader(strings.NewReader(data), ',', model.DefaultLibrary())

	if len(result.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(result.Components))
	}
	if result.Components[0].Rotation != model.Rot0 {
		t.Errorf("expected rotation 0, got %v", result.Components[0].Rotation)
	}
	if !strings.Contains(strings.Join(result.Warnings, "\n"), "Unknown rotation") {
		t.Errorf("expected rotation warning, got %v", result.Warnings)
	}
}

// ─── Net Table Tests ───────────────────────────────────────

func netTestDesign(t *testing.T) model.Design {
	t.Helper()
	data := "Ref,Type\nR1,resistor\nD1,led\nQ1,transistor_npn\n"
	result := ImportComponentsFromReader(strings.NewReader(data), ',', model.DefaultLibrary())
	if len(result.Errors) > 0 {
		t.Fatalf("component import failed: %v", result.Errors)
	}
	return result.Design("test")
}

func TestImportNetsFromReader_DottedEndpoints(t *testing.T) {
	d := netTestDesign(t)
	data := "From,To,Net\nR1.2,D1.A,LED_A\nD1:K,Q1:C,LED_K\n"
	result := ImportNetsFromReader(strings.NewReader(data), ',', d)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Nets) != 2 {
		t.Fatalf("expected 2 nets, got %d", len(result.Nets))
	}

	n := result.Nets[0]
	if n.Name != "LED_A" {
		t.Errorf("expected net name LED_A, got %q", n.Name)
	}
	if n.From.Component != d.Components[0].ID || n.From.Pin != 1 {
		t.Errorf("unexpected from endpoint %+v", n.From)
	}
	if n.To.Component != d.Components[1].ID || n.To.Pin != 0 {
		t.Errorf("unexpected to endpoint %+v", n.To)
	}
	if result.Nets[1].To.Pin != 2 {
		t.Errorf("expected Q1 collector at index 2, got %d", result.Nets[1].To.Pin)
	}
}

func TestImportNetsFromReader_SeparatePinColumns(t *testing.T) {
	d := netTestDesign(t)
	data := "From,From Pin,To,To Pin\nR1,1,Q1,B\n"
	result := ImportNetsFromReader(strings.NewReader(data), ',', d)

	if len(result.Nets) != 1 {
		t.Fatalf("expected 1 net, got %d (errors: %v)", len(result.Nets), result.Errors)
	}
	if result.Nets[0].From.Pin != 0 || result.Nets[0].To.Pin != 1 {
		t.Errorf("unexpected endpoints %+v", result.Nets[0])
	}
}

func TestImportNetsFromReader_PinNumberFallback(t *testing.T) {
	d := netTestDesign(t)
	result := ImportNetsFromReader(strings.NewReader("R1.1,D1.2\n"), ',', d)

	if len(result.Nets) != 1 {
		t.Fatalf("expected 1 net, got %d (errors: %v)", len(result.Nets), result.Errors)
	}
	if result.Nets[0].To.Pin != 1 {
		t.Errorf("expected D1 pin 2 to resolve to index 1, got %d", result.Nets[0].To.Pin)
	}
}

func TestImportNetsFromReader_RowErrors(t *testing.T) {
	d := netTestDesign(t)
	data := "From,To\n" +
		"X9.1,R1.1\n" +
		"R1.7,D1.A\n" +
		"R1,D1.A\n" +
		"R1.1,R1.2\n" +
		"R1.2,D1.A\n"
	result := ImportNetsFromReader(strings.NewReader(data), ',', d)

	if len(result.Nets) != 1 {
		t.Errorf("expected 1 valid net, got %d", len(result.Nets))
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(strings.Join(result.Warnings, "\n"), "to itself") {
		t.Errorf("expected self-connection warning, got %v", result.Warnings)
	}
}

func TestImportNetsFromReader_MissingColumns(t *testing.T) {
	result := ImportNetsFromReader(strings.NewReader("Net,From\nA,R1.1\n"), ',', netTestDesign(t))
	if len(result.Errors) == 0 {
		t.Error("expected missing column error")
	}
}

// ─── File Import Tests ─────────────────────────────────────

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestImportTable_CSVFiles(t *testing.T) {
	comps := writeFile(t, "parts.csv", "Ref;Type;Value\nR1;resistor;1k\nD1;led;green\n")
	nets := writeFile(t, "nets.csv", "From,To\nR1.2,D1.A\n")

	result := ImportTable(comps, nets, model.DefaultLibrary())

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Components) != 2 || len(result.Nets) != 1 {
		t.Fatalf("expected 2 components and 1 net, got %d and %d", len(result.Components), len(result.Nets))
	}
	if !strings.Contains(strings.Join(result.Warnings, "\n"), "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}

	d := result.Design("led")
	if d.Nets[0].From.Component != d.Components[0].ID {
		t.Error("nets must reference the imported component IDs")
	}
}

func TestImportTable_ComponentsOnly(t *testing.T) {
	comps := writeFile(t, "parts.csv", "R1,resistor\n")
	result := ImportTable(comps, "", model.DefaultLibrary())
	if len(result.Components) != 1 || len(result.Nets) != 0 {
		t.Errorf("expected 1 component and no nets, got %d and %d", len(result.Components), len(result.Nets))
	}
}

func TestImportComponents_FileNotFound(t *testing.T) {
	result := ImportComponents("/nonexistent/parts.csv", model.DefaultLibrary())
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportComponents_EmptyFile(t *testing.T) {
	result := ImportComponents(writeFile(t, "empty.csv", "  \n"), model.DefaultLibrary())
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, name string, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportComponents_Excel(t *testing.T) {
	path := createTestExcel(t, "parts.xlsx", [][]interface{}{
		{"Ref", "Type", "Value", "Width", "Height"},
		{"R1", "resistor", "10k", 150, 50},
		{"VCC", "vcc", "", nil, nil},
	})

	result := ImportComponents(path, model.DefaultLibrary())

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(result.Components))
	}
	if result.Components[0].Width != 150 {
		t.Errorf("expected width 150, got %f", result.Components[0].Width)
	}
	if !result.Components[1].IsPower() {
		t.Error("expected VCC to be a power component")
	}
}

func TestImportTable_Excel(t *testing.T) {
	comps := createTestExcel(t, "parts.xlsx", [][]interface{}{
		{"R1", "resistor"},
		{"R2", "resistor"},
	})
	nets := createTestExcel(t, "nets.xlsx", [][]interface{}{
		{"Net", "From", "To"},
		{"MID", "R1.2", "R2.1"},
	})

	result := ImportTable(comps, nets, model.DefaultLibrary())
	if len(result.Nets) != 1 {
		t.Fatalf("expected 1 net, got %d (errors: %v)", len(result.Nets), result.Errors)
	}
	if result.Nets[0].Name != "MID" {
		t.Errorf("expected net MID, got %q", result.Nets[0].Name)
	}
}

func TestImportComponents_ExcelNotFound(t *testing.T) {
	result := ImportComponents("/nonexistent/file.xlsx", model.DefaultLibrary())
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}
