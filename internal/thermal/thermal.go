// Package thermal computes per-construction composite properties from
// ordered material layers.
package thermal

import (
	"github.com/danielpiro/idf-reader/internal/model"
)

// Composite holds the derived properties of a layered construction.
//
// Resistance sums per-layer thickness over conductivity; the division
// happens per layer because conductivity differs between layers. Layers
// without conductivity (framing-only, massless entries) contribute zero
// resistance but still count toward thickness and mass.
//
// SolarAbsorptance and SpecificHeat are pass-through properties taken from
// the first layer, in declared order, that defines them — the layer nearest
// the exposed face. When no layer defines the property it stays absent;
// it is never coerced to zero.
type Composite struct {
	Thickness        float64
	Mass             float64
	Resistance       float64
	SolarAbsorptance model.Optional
	SpecificHeat     model.Optional
}

// UValue returns the overall heat transfer coefficient (1/R). Absent when
// the composite resistance is zero, which would otherwise read as an
// infinite conductance.
func (c Composite) UValue() model.Optional {
	if c.Resistance <= 0 {
		return model.None()
	}
	return model.Some(1 / c.Resistance)
}

// CompositeOf walks the resolved layers of a construction in declared
// (outside-to-inside) order and accumulates the composite properties.
// Reversing the layer order changes the pass-through properties.
func CompositeOf(layers []model.Material) Composite {
	var out Composite
	for _, layer := range layers {
		thickness := layer.Thickness.Or(0)
		out.Thickness += thickness
		out.Mass += layer.Density.Or(0) * thickness

		if k, ok := layer.Conductivity.Value(); ok && k > 0 {
			out.Resistance += thickness / k
		}

		if !out.SolarAbsorptance.Present() && layer.SolarAbsorptance.Present() {
			out.SolarAbsorptance = layer.SolarAbsorptance
		}
		if !out.SpecificHeat.Present() && layer.SpecificHeat.Present() {
			out.SpecificHeat = layer.SpecificHeat
		}
	}
	return out
}
