package importer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/piwi3910/BoardPlacer/internal/model"
)

// sexprLexer tokenizes KiCad s-expressions.
var sexprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Symbol", Pattern: `[^\s()"]+`},
})

// sexpr is either an atom or a parenthesized list.
type sexpr struct {
	Pos lexer.Position

	Atom *string  `parser:"  @(String | Symbol)"`
	List []*sexpr `parser:"| \"(\" @@* \")\""`
}

// head returns the leading atom of a list, or "".
func (s *sexpr) head() string {
	if len(s.List) == 0 || s.List[0].Atom == nil {
		return ""
	}
	return *s.List[0].Atom
}

// children returns the sub-lists whose head is name.
func (s *sexpr) children(name string) []*sexpr {
	var out []*sexpr
	for _, c := range s.List {
		if c.head() == name {
			out = append(out, c)
		}
	}
	return out
}

func (s *sexpr) child(name string) *sexpr {
	for _, c := range s.List {
		if c.head() == name {
			return c
		}
	}
	return nil
}

// value returns the first atom after the head of the named child,
// as in (ref "R1").
func (s *sexpr) value(name string) string {
	c := s.child(name)
	if c == nil || len(c.List) < 2 || c.List[1].Atom == nil {
		return ""
	}
	return *c.List[1].Atom
}

// Netlist is the part of a KiCad netlist export the importer uses.
type Netlist struct {
	Components []NetlistComponent
	Nets       []NetlistNet
}

type NetlistComponent struct {
	Ref   string
	Value string
	Lib   string
	Part  string
}

type NetlistNet struct {
	Code  string
	Name  string
	Nodes []NetlistNode
}

type NetlistNode struct {
	Ref      string
	Pin      string
	Function string
}

// KiCadParser parses KiCad netlist exports (.net).
type KiCadParser struct {
	parser *participle.Parser[sexpr]
}

// NewKiCadParser creates a new netlist parser instance.
func NewKiCadParser() (*KiCadParser, error) {
	parser, err := participle.Build[sexpr](
		participle.Lexer(sexprLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &KiCadParser{parser: parser}, nil
}

// Parse parses a netlist from a reader.
func (p *KiCadParser) Parse(r io.Reader) (*Netlist, error) {
	root, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return toNetlist(root)
}

// ParseString parses a netlist from a string.
func (p *KiCadParser) ParseString(input string) (*Netlist, error) {
	root, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return toNetlist(root)
}

// ParseFile parses a netlist from a file path.
func (p *KiCadParser) ParseFile(filename string) (*Netlist, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

func toNetlist(root *sexpr) (*Netlist, error) {
	if root.head() != "export" {
		return nil, fmt.Errorf("not a KiCad netlist: expected (export ...) at %s", root.Pos)
	}

	nl := &Netlist{}
	if comps := root.child("components"); comps != nil {
		for _, c := range comps.children("comp") {
			nc := NetlistComponent{Ref: c.value("ref"), Value: c.value("value")}
			if src := c.child("libsource"); src != nil {
				nc.Lib = src.value("lib")
				nc.Part = src.value("part")
			}
			nl.Components = append(nl.Components, nc)
		}
	}
	if nets := root.child("nets"); nets != nil {
		for _, n := range nets.children("net") {
			nn := NetlistNet{Code: n.value("code"), Name: n.value("name")}
			for _, node := range n.children("node") {
				nn.Nodes = append(nn.Nodes, NetlistNode{
					Ref:      node.value("ref"),
					Pin:      node.value("pin"),
					Function: node.value("pinfunction"),
				})
			}
			nl.Nets = append(nl.Nets, nn)
		}
	}
	return nl, nil
}

// kicadType maps a KiCad library symbol to a library type, or "" when the
// symbol is unknown.
func kicadType(lib, part string) string {
	p := strings.ToLower(part)
	if strings.EqualFold(lib, "power") {
		switch {
		case strings.Contains(p, "gnd"):
			return "gnd"
		default:
			return "vcc"
		}
	}
	switch {
	case p == "r" || strings.HasPrefix(p, "r_"):
		return "resistor"
	case p == "cp" || strings.HasPrefix(p, "cp_") || strings.HasPrefix(p, "c_polarized"):
		return "capacitor_polarized"
	case p == "c" || strings.HasPrefix(p, "c_"):
		return "capacitor"
	case p == "led" || strings.HasPrefix(p, "led_"):
		return "led"
	case p == "d" || strings.HasPrefix(p, "d_"):
		return "diode"
	case strings.HasPrefix(p, "q_npn"):
		return "transistor_npn"
	case strings.HasPrefix(p, "q_pnp"):
		return "transistor_pnp"
	}
	return ""
}

// synthPinPitch is the spacing of synthesized pins in both directions.
const synthPinPitch = 20.0

// synthesizePins lays out named pins in two columns, the first half on the
// left, top to bottom.
func synthesizePins(names []string) []model.Pin {
	sort.SliceStable(names, func(i, j int) bool { return pinLess(names[i], names[j]) })
	perColumn := (len(names) + 1) / 2
	pins := make([]model.Pin, len(names))
	for i, name := range names {
		col, row := i/perColumn, i%perColumn
		pins[i] = model.Pin{
			Name: name,
			X:    (float64(col) - 0.5) * synthPinPitch,
			Y:    (float64(row) - float64(perColumn-1)/2) * synthPinPitch,
		}
	}
	return pins
}

// pinLess orders pin names numerically when both are numbers.
func pinLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

// ImportKiCad imports components and nets from a KiCad netlist file.
func ImportKiCad(path string, lib model.Library) ImportResult {
	file, err := os.Open(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer file.Close()
	return ImportKiCadFromReader(file, lib)
}

// ImportKiCadFromReader imports components and nets from a KiCad netlist.
// A net with n nodes becomes one pin-to-pin net per node pair.
func ImportKiCadFromReader(r io.Reader, lib model.Library) ImportResult {
	result := ImportResult{}

	parser, err := NewKiCadParser()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	nl, err := parser.Parse(r)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if len(nl.Components) == 0 {
		result.Errors = append(result.Errors, "Netlist has no components")
		return result
	}

	// Pin names the nets use, per component, for parts without a library entry.
	used := make(map[string][]string)
	seenPin := make(map[string]bool)
	for _, n := range nl.Nets {
		for _, node := range n.Nodes {
			key := node.Ref + "\x00" + node.Pin
			if node.Pin == "" || seenPin[key] {
				continue
			}
			seenPin[key] = true
			used[node.Ref] = append(used[node.Ref], node.Pin)
		}
	}

	design := model.Design{}
	for _, nc := range nl.Components {
		if nc.Ref == "" {
			result.Warnings = append(result.Warnings, "Skipped component without a reference")
			continue
		}
		if design.FindByRef(nc.Ref) != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate reference '%s'", nc.Ref))
			continue
		}

		var c model.Component
		if typ := kicadType(nc.Lib, nc.Part); typ != "" && lib.Find(typ) != nil {
			c = lib.Find(typ).NewComponent(nc.Ref)
		} else {
			typ = strings.ToLower(nc.Part)
			if typ == "" {
				typ = "generic"
			}
			c = model.NewComponent(nc.Ref, typ, synthesizePins(used[nc.Ref]))
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: Unknown part '%s:%s', synthesized %d pins", nc.Ref, nc.Lib, nc.Part, len(c.Pins)))
		}
		c.Value = nc.Value
		design.AddComponent(c)
	}

	for _, n := range nl.Nets {
		var refs []model.PinRef
		for _, node := range n.Nodes {
			pr, err := resolvePin(&design, node.Ref, node.Pin, node.Function)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Net %s: %v", n.Name, err))
				continue
			}
			refs = append(refs, pr)
		}
		for i := 0; i < len(refs); i++ {
			for j := i + 1; j < len(refs); j++ {
				if refs[i].Component == refs[j].Component {
					continue
				}
				design.Nets = append(design.Nets, model.NewNet(n.Name, refs[i], refs[j]))
			}
		}
	}

	result.Components = design.Components
	result.Nets = design.Nets
	return result
}
