package model

import (
	"math"
	"strings"
)

// FootprintMargin is the clearance added around the pin span when a
// footprint is derived from pin positions.
const FootprintMargin = 40.0

// Size is a width/height pair in length units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultSize is used for types missing from the size table.
var DefaultSize = Size{Width: 60, Height: 60}

// defaultSizes maps a lowercase type tag to its base footprint.
var defaultSizes = map[string]Size{
	"resistor":            {Width: 80, Height: 30},
	"capacitor":           {Width: 60, Height: 40},
	"capacitor_polarized": {Width: 60, Height: 50},
	"diode":               {Width: 70, Height: 40},
	"led":                 {Width: 50, Height: 50},
	"transistor_npn":      {Width: 80, Height: 100},
	"transistor_pnp":      {Width: 80, Height: 100},
	"vcc":                 {Width: 40, Height: 50},
	"gnd":                 {Width: 40, Height: 50},
}

// BaseSize returns the table footprint for a component type.
func BaseSize(typ string) Size {
	if s, ok := defaultSizes[strings.ToLower(strings.TrimSpace(typ))]; ok {
		return s
	}
	return DefaultSize
}

// EstimateFootprint derives a footprint from the type table and the pin
// span. The pin bounding box always includes the component center.
func EstimateFootprint(typ string, pins []Pin) (width, height float64) {
	base := BaseSize(typ)
	if len(pins) == 0 {
		return base.Width, base.Height
	}

	var minX, minY, maxX, maxY float64
	for _, p := range pins {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	width = math.Max(base.Width, maxX-minX+FootprintMargin)
	height = math.Max(base.Height, maxY-minY+FootprintMargin)
	return width, height
}
