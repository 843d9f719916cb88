// Package resolve turns string-identifier cross references between entities
// into records. Resolution is a pure lookup against the cache; unresolved
// references are soft failures recorded as diagnostics, never a crash.
package resolve

import (
	"context"

	"github.com/danielpiro/idf-reader/internal/diag"
	"github.com/danielpiro/idf-reader/internal/metrics"
	"github.com/danielpiro/idf-reader/internal/model"
	"github.com/danielpiro/idf-reader/internal/modelcache"
)

// Relation labels used in diagnostics and metrics.
const (
	relationSurfaceZone         = "surface-zone"
	relationSurfaceConstruction = "surface-construction"
	relationConstructionLayer   = "construction-layer"
	relationLoadSchedule        = "load-schedule"
)

// Resolver resolves cross-entity references through the cache. It performs
// no caching of its own; the cache already memoizes.
type Resolver struct {
	cache   *modelcache.Cache
	diags   *diag.Collector
	metrics *metrics.Recorder
}

// New returns a resolver recording unresolved references into diags.
func New(cache *modelcache.Cache, diags *diag.Collector, rec *metrics.Recorder) *Resolver {
	return &Resolver{cache: cache, diags: diags, metrics: rec}
}

// SurfaceZone resolves a surface's owning zone. ok is false when the zone
// ID does not name a known zone; a warning diagnostic is recorded and the
// caller must exclude the surface from zone aggregation.
func (r *Resolver) SurfaceZone(s model.Surface) (model.Zone, bool) {
	z, ok := r.cache.Zone(s.ZoneID)
	if !ok {
		r.metrics.ResolveMiss(relationSurfaceZone)
		r.diags.Warnf(diag.CodeUnresolvedZone, s.ID,
			"zone %q not found; surface excluded from zone aggregation", s.ZoneID)
	}
	return z, ok
}

// SurfaceConstruction resolves a surface's construction. ok is false when
// the reference is dangling; the surface stays in geometry-only
// aggregation but is excluded from thermal aggregation.
func (r *Resolver) SurfaceConstruction(s model.Surface) (model.Construction, bool) {
	c, ok := r.cache.Construction(s.ConstructionID)
	if !ok {
		r.metrics.ResolveMiss(relationSurfaceConstruction)
		r.diags.Warnf(diag.CodeUnresolvedConstruction, s.ID,
			"construction %q not found; surface excluded from thermal aggregation", s.ConstructionID)
	}
	return c, ok
}

// ConstructionLayers resolves a construction's material layers in declared
// order. Unresolved layers are skipped with a diagnostic each; the
// returned slice keeps the order of the layers that did resolve.
func (r *Resolver) ConstructionLayers(c model.Construction) []model.Material {
	layers := make([]model.Material, 0, len(c.LayerIDs))
	for _, layerID := range c.LayerIDs {
		m, ok := r.cache.Material(layerID)
		if !ok {
			r.metrics.ResolveMiss(relationConstructionLayer)
			r.diags.Warnf(diag.CodeUnresolvedLayer, c.ID,
				"material layer %q not found; layer skipped", layerID)
			continue
		}
		layers = append(layers, m)
	}
	return layers
}

// LoadSchedules resolves the schedules a load references, ensuring the
// schedules section is available. Unresolved references are skipped with a
// diagnostic each.
func (r *Resolver) LoadSchedules(ctx context.Context, l model.Load) ([]model.Schedule, error) {
	out := make([]model.Schedule, 0, len(l.ScheduleIDs))
	for _, scheduleID := range l.ScheduleIDs {
		sc, ok, err := r.cache.Schedule(ctx, scheduleID)
		if err != nil {
			return nil, err
		}
		if !ok {
			r.metrics.ResolveMiss(relationLoadSchedule)
			r.diags.Warnf(diag.CodeUnresolvedSchedule, l.ID,
				"schedule %q not found; reference skipped", scheduleID)
			continue
		}
		out = append(out, sc)
	}
	return out, nil
}
