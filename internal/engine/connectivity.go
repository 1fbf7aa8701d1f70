package engine

import (
	"github.com/piwi3910/BoardPlacer/internal/model"
	"gonum.org/v1/gonum/mat"
)

// link is a net resolved to component arena indices.
type link struct {
	a, pinA int
	b, pinB int
}

// reversed returns the link seen from its other end.
func (l link) reversed() link {
	return link{a: l.b, pinA: l.pinB, b: l.a, pinB: l.pinA}
}

// Connectivity is the symmetric component-to-component weight table.
// Weights count nets between two components; nets touching a power
// component count PowerNetWeight times.
type Connectivity struct {
	n       int
	weights *mat.SymDense // nil when there are no components
	totals  []float64
	links   []link
	pairs   map[[2]int][]int // (low, high) index pair -> positions in links
	ignored int
}

// BuildConnectivity derives the weight table from scratch. Nets that point
// at unknown components, out-of-range pins, or back at their own component
// are counted as ignored and carry no weight.
func BuildConnectivity(components []model.Component, nets []model.Net, powerWeight int) *Connectivity {
	n := len(components)
	c := &Connectivity{
		n:      n,
		totals: make([]float64, n),
		pairs:  make(map[[2]int][]int),
	}
	if n == 0 {
		c.ignored = len(nets)
		return c
	}
	c.weights = mat.NewSymDense(n, nil)

	index := make(map[string]int, n)
	for i, comp := range components {
		if _, dup := index[comp.ID]; !dup {
			index[comp.ID] = i
		}
	}

	for _, net := range nets {
		a, okA := index[net.From.Component]
		b, okB := index[net.To.Component]
		if !okA || !okB || a == b {
			c.ignored++
			continue
		}
		if !validPin(components[a], net.From.Pin) || !validPin(components[b], net.To.Pin) {
			c.ignored++
			continue
		}

		w := 1.0
		if components[a].IsPower() || components[b].IsPower() {
			w = float64(powerWeight)
		}
		c.weights.SetSym(a, b, c.weights.At(a, b)+w)
		c.totals[a] += w
		c.totals[b] += w

		l := link{a: a, pinA: net.From.Pin, b: b, pinB: net.To.Pin}
		key := pairKey(a, b)
		c.pairs[key] = append(c.pairs[key], len(c.links))
		c.links = append(c.links, l)
	}
	return c
}

func validPin(c model.Component, pin int) bool {
	return pin >= 0 && pin < len(c.Pins)
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Len returns the number of components in the table.
func (c *Connectivity) Len() int { return c.n }

// Weight returns the connection weight between components i and j.
func (c *Connectivity) Weight(i, j int) float64 {
	if c.weights == nil || i == j {
		return 0
	}
	return c.weights.At(i, j)
}

// Total returns the sum of component i's row.
func (c *Connectivity) Total(i int) float64 {
	return c.totals[i]
}

// Between returns the nets joining i and j, oriented so pinA belongs to i.
func (c *Connectivity) Between(i, j int) []link {
	idx := c.pairs[pairKey(i, j)]
	out := make([]link, 0, len(idx))
	for _, k := range idx {
		l := c.links[k]
		if l.a != i {
			l = l.reversed()
		}
		out = append(out, l)
	}
	return out
}

// TotalConnections returns the number of resolved nets. Power nets count
// once here even though they weigh more in the table.
func (c *Connectivity) TotalConnections() int {
	return len(c.links)
}

// Ignored returns the number of malformed nets skipped while building.
func (c *Connectivity) Ignored() int { return c.ignored }
