package grouping

// Element is one surface's contribution to a construction group.
type Element struct {
	SurfaceID   string
	ZoneID      string
	ElementType string
	Area        float64
	UValue      float64
	AreaUValue  float64
}

// ConstructionGroup merges all surfaces of a zone that share a
// construction: one entry per construction ID with running totals, not one
// entry per surface.
type ConstructionGroup struct {
	ConstructionID string
	Elements       []Element
	// TotalArea is the summed element area.
	TotalArea float64
	// TotalAreaUValue sums area times U-value per element, so the
	// area-weighted average U-value is TotalAreaUValue / TotalArea.
	TotalAreaUValue float64
}

// ZoneGroup is one zone's slice of an area group.
type ZoneGroup struct {
	ZoneID     string
	AreaID     string
	FloorArea  float64
	Multiplier int
	// Constructions is ordered by first appearance of each construction.
	Constructions []ConstructionGroup
}

// AreaGroup collects the zones of one building area, in zone source order.
type AreaGroup struct {
	AreaID string
	Zones  []ZoneGroup
}

// Result is the outcome of an area-grouping build: the groups and the zone
// IDs that matched no area-extraction pattern. Entity-level problems found
// along the way go to the engine's diag.Collector. It is an immutable
// snapshot; it does not track later cache queries.
type Result struct {
	Areas      []AreaGroup
	Unassigned []string
}

// StorageResult is the outcome of a storage-grouping build, structurally a
// flat list of zone groups.
type StorageResult struct {
	Zones []ZoneGroup
}
