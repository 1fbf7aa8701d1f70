package model

import (
	"strings"

	"github.com/google/uuid"
)

// Library part categories.
const (
	CategoryPassive  = "passive"
	CategorySemi     = "semiconductor"
	CategoryPower    = "power"
	CategoryImported = "imported"
	CategoryGeneric  = "generic"
)

// LibraryPart is a reusable component definition: a type tag, pins and an
// optional fixed footprint.
type LibraryPart struct {
	ID       string  `json:"id"`
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Width    float64 `json:"width,omitempty"`  // 0 = derive from pins
	Height   float64 `json:"height,omitempty"` // 0 = derive from pins
	Pins     []Pin   `json:"pins"`
	Outline  Outline `json:"outline,omitempty"`
}

// NewLibraryPart creates a library part with a generated ID.
func NewLibraryPart(key, name, category, typ string, pins []Pin) LibraryPart {
	return LibraryPart{
		ID:       uuid.New().String()[:8],
		Key:      strings.ToLower(key),
		Name:     name,
		Category: category,
		Type:     typ,
		Pins:     copyPins(pins),
	}
}

// NewComponent instantiates the part as a design component.
func (p LibraryPart) NewComponent(ref string) Component {
	c := NewComponent(ref, p.Type, p.Pins)
	if p.Width > 0 {
		c.Width = p.Width
	}
	if p.Height > 0 {
		c.Height = p.Height
	}
	return c
}

// Library holds the component definitions available to importers.
type Library struct {
	Parts []LibraryPart `json:"parts"`
}

// NewLibrary creates an empty library.
func NewLibrary() Library {
	return Library{Parts: []LibraryPart{}}
}

// Add inserts a part, replacing any existing part with the same key.
func (l *Library) Add(p LibraryPart) {
	p.Key = strings.ToLower(p.Key)
	for i := range l.Parts {
		if l.Parts[i].Key == p.Key {
			l.Parts[i] = p
			return
		}
	}
	l.Parts = append(l.Parts, p)
}

// Remove removes a part by key. Returns true if found and removed.
func (l *Library) Remove(key string) bool {
	key = strings.ToLower(key)
	for i, p := range l.Parts {
		if p.Key == key {
			l.Parts = append(l.Parts[:i], l.Parts[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns a pointer to the part with the given key, or nil.
func (l *Library) Find(key string) *LibraryPart {
	key = strings.ToLower(strings.TrimSpace(key))
	for i := range l.Parts {
		if l.Parts[i].Key == key {
			return &l.Parts[i]
		}
	}
	return nil
}

// Keys returns every part key in library order.
func (l *Library) Keys() []string {
	keys := make([]string, len(l.Parts))
	for i, p := range l.Parts {
		keys[i] = p.Key
	}
	return keys
}

// twoPinGeneric is used for types the library does not know.
var twoPinGeneric = []Pin{{Name: "1", X: -50, Y: 0}, {Name: "2", X: 50, Y: 0}}

// GenericPart returns a two-pin part for an unknown type tag.
func GenericPart(typ string) LibraryPart {
	return NewLibraryPart(typ, typ, CategoryGeneric, typ, twoPinGeneric)
}

// DefaultLibrary returns the built-in schematic parts. Pin positions are
// relative to the symbol center.
func DefaultLibrary() Library {
	twoPin := []Pin{{Name: "1", X: -50, Y: 0}, {Name: "2", X: 50, Y: 0}}
	anodeCathode := []Pin{{Name: "A", X: -50, Y: 0}, {Name: "K", X: 50, Y: 0}}
	transistor := []Pin{{Name: "E", X: 0, Y: -50}, {Name: "B", X: -20, Y: 50}, {Name: "C", X: 20, Y: 50}}
	supply := []Pin{{Name: "1", X: 0, Y: -25}}

	lib := NewLibrary()
	lib.Add(NewLibraryPart("resistor", "Resistor", CategoryPassive, "resistor", twoPin))
	lib.Add(NewLibraryPart("capacitor", "Capacitor", CategoryPassive, "capacitor", twoPin))
	lib.Add(NewLibraryPart("capacitor_polarized", "Polarized Capacitor", CategoryPassive, "capacitor_polarized", twoPin))
	lib.Add(NewLibraryPart("diode", "Diode", CategorySemi, "diode", anodeCathode))
	lib.Add(NewLibraryPart("led", "LED", CategorySemi, "led", anodeCathode))
	lib.Add(NewLibraryPart("transistor_npn", "NPN Transistor", CategorySemi, "transistor_npn", transistor))
	lib.Add(NewLibraryPart("transistor_pnp", "PNP Transistor", CategorySemi, "transistor_pnp", transistor))
	lib.Add(NewLibraryPart("vcc", "VCC", CategoryPower, "vcc", supply))
	lib.Add(NewLibraryPart("gnd", "GND", CategoryPower, "gnd", supply))
	return lib
}
