package thermal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpiro/idf-reader/internal/model"
)

func TestCompositeOf_TwoLayerStack(t *testing.T) {
	layers := []model.Material{
		{
			ID:           "Concrete",
			Thickness:    model.Some(0.10),
			Conductivity: model.Some(0.5),
			Density:      model.Some(2000),
		},
		{
			ID:           "Insulation",
			Thickness:    model.Some(0.05),
			Conductivity: model.Some(0.04),
			Density:      model.Some(30),
		},
	}

	c := CompositeOf(layers)
	assert.InDelta(t, 0.15, c.Thickness, 1e-9)
	assert.InDelta(t, 201.5, c.Mass, 1e-9)
	assert.InDelta(t, 1.45, c.Resistance, 1e-9)

	u, ok := c.UValue().Value()
	require.True(t, ok)
	assert.InDelta(t, 1/1.45, u, 1e-9)
}

func TestCompositeOf_MasslessLayer(t *testing.T) {
	layers := []model.Material{
		{ID: "AirGap", Thickness: model.Some(0.02)},
		{
			ID:           "Board",
			Thickness:    model.Some(0.01),
			Conductivity: model.Some(0.25),
			Density:      model.Some(700),
		},
	}

	c := CompositeOf(layers)
	assert.InDelta(t, 0.03, c.Thickness, 1e-9)
	assert.InDelta(t, 7.0, c.Mass, 1e-9)
	assert.InDelta(t, 0.04, c.Resistance, 1e-9,
		"a layer without conductivity adds no resistance")
}

func TestCompositeOf_PassThroughFirstPresent(t *testing.T) {
	layers := []model.Material{
		{ID: "Render", Thickness: model.Some(0.02)},
		{ID: "Brick", Thickness: model.Some(0.1), SolarAbsorptance: model.Some(0.7), SpecificHeat: model.Some(840)},
		{ID: "Plaster", Thickness: model.Some(0.01), SolarAbsorptance: model.Some(0.4), SpecificHeat: model.Some(1000)},
	}

	c := CompositeOf(layers)
	assert.InDelta(t, 0.7, c.SolarAbsorptance.Or(0), 1e-9)
	assert.InDelta(t, 840, c.SpecificHeat.Or(0), 1e-9)
}

func TestCompositeOf_ReversedOrderChangesPassThrough(t *testing.T) {
	layers := []model.Material{
		{ID: "Outer", Thickness: model.Some(0.02), SolarAbsorptance: model.Some(0.9)},
		{ID: "Inner", Thickness: model.Some(0.02), SolarAbsorptance: model.Some(0.3)},
	}
	reversed := []model.Material{layers[1], layers[0]}

	assert.InDelta(t, 0.9, CompositeOf(layers).SolarAbsorptance.Or(0), 1e-9)
	assert.InDelta(t, 0.3, CompositeOf(reversed).SolarAbsorptance.Or(0), 1e-9)
}

func TestCompositeOf_Empty(t *testing.T) {
	c := CompositeOf(nil)
	assert.Zero(t, c.Thickness)
	assert.Zero(t, c.Mass)
	assert.Zero(t, c.Resistance)
	assert.False(t, c.SolarAbsorptance.Present())
	assert.False(t, c.UValue().Present(), "zero resistance yields no U-value")
}
