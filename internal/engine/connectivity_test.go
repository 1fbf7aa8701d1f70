package engine

import (
	"testing"

	"github.com/piwi3910/BoardPlacer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConnectivity_CountsNets(t *testing.T) {
	d := resistorDesign(3)
	connect(t, &d, "R1", "2", "R2", "1")
	connect(t, &d, "R1", "1", "R2", "2")
	connect(t, &d, "R2", "2", "R3", "1")

	c := BuildConnectivity(d.Components, d.Nets, 2)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2.0, c.Weight(0, 1))
	assert.Equal(t, 2.0, c.Weight(1, 0), "table must be symmetric")
	assert.Equal(t, 1.0, c.Weight(1, 2))
	assert.Equal(t, 0.0, c.Weight(0, 2))
	assert.Equal(t, 0.0, c.Weight(1, 1), "self weight is zero")
	assert.Equal(t, 2.0, c.Total(0))
	assert.Equal(t, 3.0, c.Total(1))
	assert.Equal(t, 3, c.TotalConnections())
	assert.Equal(t, 0, c.Ignored())
}

func TestBuildConnectivity_PowerNetsCountDouble(t *testing.T) {
	lib := model.DefaultLibrary()
	d := resistorDesign(2)
	d.AddComponent(lib.Find("vcc").NewComponent("VCC"))
	connect(t, &d, "VCC", "1", "R1", "1")
	connect(t, &d, "R1", "2", "R2", "1")

	c := BuildConnectivity(d.Components, d.Nets, 2)

	assert.Equal(t, 2.0, c.Weight(0, 2))
	assert.Equal(t, 1.0, c.Weight(0, 1))
	assert.Equal(t, 2, c.TotalConnections(), "power nets count once")
}

func TestBuildConnectivity_IgnoresMalformedNets(t *testing.T) {
	d := resistorDesign(2)
	r1, r2 := d.Components[0].ID, d.Components[1].ID
	d.Nets = []model.Net{
		model.NewNet("ok", model.PinRef{Component: r1, Pin: 1}, model.PinRef{Component: r2, Pin: 0}),
		model.NewNet("missing", model.PinRef{Component: "gone", Pin: 0}, model.PinRef{Component: r2, Pin: 0}),
		model.NewNet("bad pin", model.PinRef{Component: r1, Pin: 5}, model.PinRef{Component: r2, Pin: 0}),
		model.NewNet("negative pin", model.PinRef{Component: r1, Pin: -1}, model.PinRef{Component: r2, Pin: 0}),
		model.NewNet("self", model.PinRef{Component: r1, Pin: 0}, model.PinRef{Component: r1, Pin: 1}),
	}

	c := BuildConnectivity(d.Components, d.Nets, 2)

	assert.Equal(t, 1.0, c.Weight(0, 1))
	assert.Equal(t, 4, c.Ignored())
}

func TestBuildConnectivity_EmptyNetList(t *testing.T) {
	d := resistorDesign(3)
	c := BuildConnectivity(d.Components, nil, 2)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, 0.0, c.Weight(i, j))
		}
	}
	assert.Equal(t, 0, c.TotalConnections())
}

func TestBuildConnectivity_NoComponents(t *testing.T) {
	c := BuildConnectivity(nil, []model.Net{{}}, 2)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.TotalConnections())
	assert.Equal(t, 1, c.Ignored())
}

func TestConnectivityBetween_OrientsLinks(t *testing.T) {
	d := resistorDesign(2)
	connect(t, &d, "R1", "2", "R2", "1")
	c := BuildConnectivity(d.Components, d.Nets, 2)

	fromR2 := c.Between(1, 0)
	require.Len(t, fromR2, 1)
	assert.Equal(t, 1, fromR2[0].a)
	assert.Equal(t, 0, fromR2[0].pinA, "R2 pin 1 is index 0")
	assert.Equal(t, 0, fromR2[0].b)
	assert.Equal(t, 1, fromR2[0].pinB, "R1 pin 2 is index 1")

	assert.Empty(t, c.Between(0, 0))
}

func TestBuildConnectivity_DuplicateIDsResolveToFirst(t *testing.T) {
	d := resistorDesign(3)
	d.Components[2].ID = d.Components[0].ID
	connect(t, &d, "R1", "2", "R2", "1")

	c := BuildConnectivity(d.Components, d.Nets, 2)
	assert.Equal(t, 1.0, c.Weight(0, 1))
	assert.Equal(t, 0.0, c.Weight(2, 1))
}
