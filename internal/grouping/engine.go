// Package grouping organizes zones into the building-area / zone /
// construction hierarchy used by the area reports, and routes zones
// matching the storage naming convention into a segregated collection.
package grouping

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/danielpiro/idf-reader/internal/diag"
	"github.com/danielpiro/idf-reader/internal/geometry"
	"github.com/danielpiro/idf-reader/internal/model"
	"github.com/danielpiro/idf-reader/internal/modelcache"
	"github.com/danielpiro/idf-reader/internal/resolve"
	"github.com/danielpiro/idf-reader/internal/thermal"
)

// Engine builds grouping snapshots on demand. Results are pure functions
// of the immutable cache, so rebuilding is always safe.
type Engine struct {
	cache    *modelcache.Cache
	resolver *resolve.Resolver
	diags    *diag.Collector
	log      zerolog.Logger
}

// NewEngine returns a grouping engine over the cache. Diagnostics produced
// while building go to diags.
func NewEngine(cache *modelcache.Cache, resolver *resolve.Resolver, diags *diag.Collector, log zerolog.Logger) *Engine {
	return &Engine{cache: cache, resolver: resolver, diags: diags, log: log}
}

// BuildAreaGroups produces an AreaGroup for every non-storage zone, keyed
// by the area identifier extracted from the zone ID. Zones matching no
// area pattern land in the Unassigned bucket with a diagnostic. The caller
// may cancel between zones: groups built so far are kept and the partial
// result is returned alongside ctx.Err().
func (e *Engine) BuildAreaGroups(ctx context.Context) (Result, error) {
	e.reportOrphanSurfaces()

	hvac, err := e.hvacSet(ctx)
	if err != nil {
		return Result{}, err
	}

	var result Result
	areaIndex := make(map[string]int)

	for _, zone := range e.cache.Zones() {
		if cancelErr := ctx.Err(); cancelErr != nil {
			e.log.Warn().Int("areas_built", len(result.Areas)).
				Msg("area grouping cancelled; returning groups built so far")
			return result, cancelErr
		}

		if IsStorageZone(zone.ID) {
			continue
		}

		areaID, ok := ExtractAreaID(zone.ID)
		if !ok {
			result.Unassigned = append(result.Unassigned, zone.ID)
			e.diags.Warnf(diag.CodeUnassignedArea, zone.ID,
				"zone ID matches no area-extraction pattern; placed in unassigned bucket")
			continue
		}

		zg := e.buildZoneGroup(zone, areaID, hvac[zone.ID])

		idx, exists := areaIndex[areaID]
		if !exists {
			idx = len(result.Areas)
			areaIndex[areaID] = idx
			result.Areas = append(result.Areas, AreaGroup{AreaID: areaID})
		}
		result.Areas[idx].Zones = append(result.Areas[idx].Zones, zg)
	}

	e.log.Info().Int("areas", len(result.Areas)).
		Int("unassigned", len(result.Unassigned)).
		Msg("area groups built")
	return result, nil
}

// BuildStorageGroups produces the segregated mapping for zones matching
// the storage convention. Its output is disjoint from BuildAreaGroups.
func (e *Engine) BuildStorageGroups(ctx context.Context) (StorageResult, error) {
	hvac, err := e.hvacSet(ctx)
	if err != nil {
		return StorageResult{}, err
	}

	var result StorageResult
	for _, zone := range e.cache.Zones() {
		if !IsStorageZone(zone.ID) {
			continue
		}
		result.Zones = append(result.Zones, e.buildZoneGroup(zone, "", hvac[zone.ID]))
	}
	return result, nil
}

// hvacSet returns the HVAC-serviced zones as a membership set.
func (e *Engine) hvacSet(ctx context.Context) (map[string]bool, error) {
	ids, err := e.cache.HVACZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading HVAC zone index: %w", err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// reportOrphanSurfaces records a diagnostic for every surface whose zone
// reference does not resolve. Such surfaces are excluded from all
// aggregation, never silently included.
func (e *Engine) reportOrphanSurfaces() {
	for _, surface := range e.cache.Surfaces() {
		_, _ = e.resolver.SurfaceZone(surface)
	}
}

// buildZoneGroup assembles one zone's construction groups. Surfaces with
// degenerate geometry are excluded with a diagnostic; surfaces whose
// construction does not resolve contribute geometry (floor area) but no
// construction entry.
func (e *Engine) buildZoneGroup(zone model.Zone, areaID string, hvac bool) ZoneGroup {
	zg := ZoneGroup{
		ZoneID:     zone.ID,
		AreaID:     areaID,
		Multiplier: zone.EffectiveMultiplier(),
	}
	constructionIndex := make(map[string]int)

	var floorArea float64
	for _, surfaceID := range e.cache.SurfacesOfZone(zone.ID) {
		surface, ok := e.cache.Surface(surfaceID)
		if !ok {
			continue
		}

		area, areaErr := geometry.PolygonArea(surface.Vertices)
		if areaErr != nil {
			e.diags.Warnf(diag.CodeDegenerateGeometry, surface.ID,
				"surface has %d vertices yielding no usable area; excluded from aggregation",
				len(surface.Vertices))
			continue
		}

		if geometry.Classify(surface.Type) == geometry.RoleFloor {
			floorArea += area
		}

		construction, ok := e.resolver.SurfaceConstruction(surface)
		if !ok {
			continue
		}

		layers := e.resolver.ConstructionLayers(construction)
		uValue := thermal.CompositeOf(layers).UValue().Or(0)

		element := Element{
			SurfaceID:   surface.ID,
			ZoneID:      zone.ID,
			ElementType: geometry.ElementType(surface.Type, surface.Boundary, hvac),
			Area:        area,
			UValue:      uValue,
			AreaUValue:  area * uValue,
		}

		idx, exists := constructionIndex[construction.ID]
		if !exists {
			idx = len(zg.Constructions)
			constructionIndex[construction.ID] = idx
			zg.Constructions = append(zg.Constructions, ConstructionGroup{
				ConstructionID: construction.ID,
			})
		}
		group := &zg.Constructions[idx]
		group.Elements = append(group.Elements, element)
		group.TotalArea += element.Area
		group.TotalAreaUValue += element.AreaUValue
	}

	// Declared floor area wins; the summed floor-surface area covers
	// zones whose source record says "auto".
	zg.FloorArea = zone.FloorArea.Or(floorArea)
	return zg
}
