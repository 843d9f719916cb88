// Package model defines the typed entity records produced by the external
// source parser and the RecordStore that holds them for a batch run.
// Identifiers are case-preserving strings, unique within their entity type.
// Cross-entity references are plain string IDs; navigation between entities
// goes through the resolver, never through embedded pointers.
package model

// Vertex is a point of a surface's 3-D vertex loop.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SurfaceType classifies a surface's geometric role in its zone.
type SurfaceType string

// Surface types recognized by the source format.
const (
	SurfaceWall    SurfaceType = "wall"
	SurfaceFloor   SurfaceType = "floor"
	SurfaceCeiling SurfaceType = "ceiling"
	SurfaceRoof    SurfaceType = "roof"
)

// BoundaryCondition describes what lies on the far side of a surface.
type BoundaryCondition string

// Boundary conditions recognized by the source format. Anything else maps
// to BoundaryOther.
const (
	BoundaryOutdoors BoundaryCondition = "outdoors"
	BoundaryGround   BoundaryCondition = "ground"
	BoundaryInternal BoundaryCondition = "internal-surface"
	BoundaryOther    BoundaryCondition = "other"
)

// Zone is a thermally-distinct enclosed space.
type Zone struct {
	ID         string   `json:"id"`
	FloorArea  Optional `json:"floor_area"`
	Volume     Optional `json:"volume"`
	Multiplier int      `json:"multiplier"`
}

// EffectiveMultiplier returns the zone multiplier, defaulting to 1 when the
// source omitted it or carried a non-positive value.
func (z Zone) EffectiveMultiplier() int {
	if z.Multiplier < 1 {
		return 1
	}
	return z.Multiplier
}

// Surface is a bounding element of a zone. Vertices form a closed planar
// loop; order is as declared in the source.
type Surface struct {
	ID             string            `json:"id"`
	ZoneID         string            `json:"zone_id"`
	Type           SurfaceType       `json:"surface_type"`
	Boundary       BoundaryCondition `json:"boundary_condition"`
	ConstructionID string            `json:"construction_id"`
	Vertices       []Vertex          `json:"vertices"`
}

// Material is a single physical layer. Fields a material kind omits (for
// example glazing entries without density) are absent, not zero.
type Material struct {
	ID               string   `json:"id"`
	Thickness        Optional `json:"thickness"`
	Conductivity     Optional `json:"conductivity"`
	Density          Optional `json:"density"`
	SpecificHeat     Optional `json:"specific_heat"`
	SolarAbsorptance Optional `json:"solar_absorptance"`
}

// Construction is an ordered stack of material layers, outside to inside.
// Layer order is significant: reversing it changes composite properties.
type Construction struct {
	ID       string   `json:"id"`
	LayerIDs []string `json:"layers"`
}

// Schedule is a named rule-based time-varying value definition. Rules are
// opaque tokens; the engine only compares and filters them.
type Schedule struct {
	ID        string   `json:"id"`
	TypeLabel string   `json:"type"`
	Rules     []string `json:"rules"`
}

// LoadKind distinguishes internal load categories.
type LoadKind string

// Load kinds recognized by the source format.
const (
	LoadPeople       LoadKind = "people"
	LoadLights       LoadKind = "lights"
	LoadEquipment    LoadKind = "equipment"
	LoadInfiltration LoadKind = "infiltration"
)

// Load is an internal load (people, lights, equipment, infiltration)
// attached to a zone and driven by one or more schedules.
type Load struct {
	ID          string   `json:"id"`
	ZoneID      string   `json:"zone_id"`
	Kind        LoadKind `json:"kind"`
	Method      string   `json:"calculation_method"`
	Magnitude   float64  `json:"magnitude"`
	ScheduleIDs []string `json:"schedules"`
}

// WindowSystem is a fenestration surface hosted on a base surface. Its zone
// is reached through the base surface, matching the source format.
type WindowSystem struct {
	ID             string   `json:"id"`
	BaseSurfaceID  string   `json:"base_surface_id"`
	ConstructionID string   `json:"construction_id"`
	Vertices       []Vertex `json:"vertices"`
}

// Dataset is the input contract from the external record parser: all records
// of a batch run, grouped by entity type, in source order.
type Dataset struct {
	Zones         []Zone         `json:"zones"`
	Surfaces      []Surface      `json:"surfaces"`
	Constructions []Construction `json:"constructions"`
	Materials     []Material     `json:"materials"`
	Schedules     []Schedule     `json:"schedules"`
	Loads         []Load         `json:"loads"`
	Windows       []WindowSystem `json:"windows"`
}

// Empty reports whether the dataset carries no primary records at all.
// An empty dataset is a fatal input condition for the cache.
func (d Dataset) Empty() bool {
	return len(d.Zones) == 0 && len(d.Surfaces) == 0 &&
		len(d.Constructions) == 0 && len(d.Materials) == 0
}
