package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

// ExportCSV writes one row per placement under PlacementHeader.
func ExportCSV(path string, result model.LayoutResult) error {
	if len(result.Placements) == 0 {
		return ErrNothingPlaced
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(PlacementHeader); err != nil {
		return err
	}
	for _, p := range result.Placements {
		record := []string{
			p.Ref,
			p.Type,
			strconv.Itoa(p.Origin.Col),
			strconv.Itoa(p.Origin.Row),
			formatFloat(p.Center.X),
			formatFloat(p.Center.Y),
			strconv.Itoa(int(p.Rotation)),
			strconv.Itoa(p.CellsWide),
			strconv.Itoa(p.CellsHigh),
			string(p.Phase),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
