package grouping

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpiro/idf-reader/internal/diag"
	"github.com/danielpiro/idf-reader/internal/model"
	"github.com/danielpiro/idf-reader/internal/modelcache"
	"github.com/danielpiro/idf-reader/internal/resolve"
)

func horizontalRect(w, d float64) []model.Vertex {
	return []model.Vertex{
		{X: 0, Y: 0, Z: 0},
		{X: w, Y: 0, Z: 0},
		{X: w, Y: d, Z: 0},
		{X: 0, Y: d, Z: 0},
	}
}

func verticalRect(w, h float64) []model.Vertex {
	return []model.Vertex{
		{X: 0, Y: 0, Z: 0},
		{X: w, Y: 0, Z: 0},
		{X: w, Y: 0, Z: h},
		{X: 0, Y: 0, Z: h},
	}
}

func buildingDataset() model.Dataset {
	return model.Dataset{
		Zones: []model.Zone{
			{ID: "01:01XLIVING"},
			{ID: "01:01XBEDROOM", FloorArea: model.Some(12), Multiplier: 2},
			{ID: "01:02XKITCHEN"},
			{ID: "00XB1:STORAGE"},
			{ID: "PLENUM"},
		},
		Surfaces: []model.Surface{
			{ID: "LIVING-FLOOR", ZoneID: "01:01XLIVING", Type: model.SurfaceFloor,
				Boundary: model.BoundaryGround, ConstructionID: "ExtWall",
				Vertices: horizontalRect(10, 10)},
			{ID: "LIVING-WALL", ZoneID: "01:01XLIVING", Type: model.SurfaceWall,
				Boundary: model.BoundaryOutdoors, ConstructionID: "ExtWall",
				Vertices: verticalRect(10, 3)},
			{ID: "LIVING-DEGEN", ZoneID: "01:01XLIVING", Type: model.SurfaceWall,
				Boundary: model.BoundaryOutdoors, ConstructionID: "ExtWall",
				Vertices: []model.Vertex{{X: 0}, {X: 1}}},
			{ID: "LIVING-NOCON", ZoneID: "01:01XLIVING", Type: model.SurfaceFloor,
				Boundary: model.BoundaryInternal, ConstructionID: "Missing",
				Vertices: horizontalRect(2, 2)},
			{ID: "ORPHAN-WALL", ZoneID: "GHOST", Type: model.SurfaceWall,
				Boundary: model.BoundaryOutdoors, ConstructionID: "ExtWall",
				Vertices: verticalRect(2, 2)},
			{ID: "BEDROOM-FLOOR", ZoneID: "01:01XBEDROOM", Type: model.SurfaceFloor,
				Boundary: model.BoundaryInternal, ConstructionID: "ExtWall",
				Vertices: horizontalRect(3, 3)},
			{ID: "KITCHEN-FLOOR", ZoneID: "01:02XKITCHEN", Type: model.SurfaceFloor,
				Boundary: model.BoundaryGround, ConstructionID: "ExtWall",
				Vertices: horizontalRect(2, 5)},
			{ID: "STORE-FLOOR", ZoneID: "00XB1:STORAGE", Type: model.SurfaceFloor,
				Boundary: model.BoundaryGround, ConstructionID: "ExtWall",
				Vertices: horizontalRect(4, 4)},
		},
		Constructions: []model.Construction{
			{ID: "ExtWall", LayerIDs: []string{"Concrete", "Insulation"}},
		},
		Materials: []model.Material{
			{ID: "Concrete", Thickness: model.Some(0.10),
				Conductivity: model.Some(0.5), Density: model.Some(2000)},
			{ID: "Insulation", Thickness: model.Some(0.05),
				Conductivity: model.Some(0.04), Density: model.Some(30)},
		},
		Schedules: []model.Schedule{
			{ID: "01:01XLIVING Heating Schedule", TypeLabel: "Temperature"},
		},
	}
}

func newTestEngine(t *testing.T, ds model.Dataset) (*Engine, *diag.Collector) {
	t.Helper()
	cache := modelcache.New()
	require.NoError(t, cache.Load(ds))
	diags := diag.NewCollector()
	resolver := resolve.New(cache, diags, nil)
	return NewEngine(cache, resolver, diags, zerolog.Nop()), diags
}

func TestBuildAreaGroups_Hierarchy(t *testing.T) {
	engine, _ := newTestEngine(t, buildingDataset())
	result, err := engine.BuildAreaGroups(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Areas, 2)
	assert.Equal(t, "01", result.Areas[0].AreaID)
	assert.Equal(t, "02", result.Areas[1].AreaID)

	require.Len(t, result.Areas[0].Zones, 2)
	assert.Equal(t, "01:01XLIVING", result.Areas[0].Zones[0].ZoneID)
	assert.Equal(t, "01:01XBEDROOM", result.Areas[0].Zones[1].ZoneID)
	require.Len(t, result.Areas[1].Zones, 1)
	assert.Equal(t, "01:02XKITCHEN", result.Areas[1].Zones[0].ZoneID)
}

func TestBuildAreaGroups_ConstructionTotals(t *testing.T) {
	engine, _ := newTestEngine(t, buildingDataset())
	result, err := engine.BuildAreaGroups(context.Background())
	require.NoError(t, err)

	living := result.Areas[0].Zones[0]
	require.Len(t, living.Constructions, 1, "surfaces sharing a construction merge into one group")

	cg := living.Constructions[0]
	assert.Equal(t, "ExtWall", cg.ConstructionID)
	require.Len(t, cg.Elements, 2)
	assert.InDelta(t, 130.0, cg.TotalArea, 1e-9)

	u := 1 / 1.45
	assert.InDelta(t, 130.0*u, cg.TotalAreaUValue, 1e-9)
	assert.InDelta(t, u, cg.TotalAreaUValue/cg.TotalArea, 1e-9)
}

func TestBuildAreaGroups_ElementTypesUseHVACState(t *testing.T) {
	engine, _ := newTestEngine(t, buildingDataset())
	result, err := engine.BuildAreaGroups(context.Background())
	require.NoError(t, err)

	living := result.Areas[0].Zones[0]
	types := map[string]string{}
	for _, el := range living.Constructions[0].Elements {
		types[el.SurfaceID] = el.ElementType
	}
	assert.Equal(t, "Ground floor", types["LIVING-FLOOR"])
	assert.Equal(t, "External wall", types["LIVING-WALL"])

	// The bedroom has no heating/cooling schedule, so its internal floor is
	// a separation floor rather than an intermediate one.
	bedroom := result.Areas[0].Zones[1]
	require.Len(t, bedroom.Constructions, 1)
	assert.Equal(t, "Separation floor", bedroom.Constructions[0].Elements[0].ElementType)
}

func TestBuildAreaGroups_FloorArea(t *testing.T) {
	engine, _ := newTestEngine(t, buildingDataset())
	result, err := engine.BuildAreaGroups(context.Background())
	require.NoError(t, err)

	living := result.Areas[0].Zones[0]
	assert.InDelta(t, 104.0, living.FloorArea, 1e-9,
		"absent declared area falls back to summed floor surfaces, including geometry-only ones")

	bedroom := result.Areas[0].Zones[1]
	assert.InDelta(t, 12.0, bedroom.FloorArea, 1e-9, "declared floor area wins over geometry")
	assert.Equal(t, 2, bedroom.Multiplier)
}

func TestBuildAreaGroups_StorageZonesExcluded(t *testing.T) {
	engine, _ := newTestEngine(t, buildingDataset())
	result, err := engine.BuildAreaGroups(context.Background())
	require.NoError(t, err)

	for _, area := range result.Areas {
		for _, zg := range area.Zones {
			assert.False(t, IsStorageZone(zg.ZoneID))
		}
	}
	assert.NotContains(t, result.Unassigned, "00XB1:STORAGE")
}

func TestBuildAreaGroups_UnassignedBucket(t *testing.T) {
	engine, diags := newTestEngine(t, buildingDataset())
	result, err := engine.BuildAreaGroups(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"PLENUM"}, result.Unassigned)

	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.CodeUnassignedArea && d.Subject == "PLENUM" {
			found = true
		}
	}
	assert.True(t, found, "unassigned zones carry a diagnostic")
}

func TestBuildAreaGroups_OrphanSurfaceWarned(t *testing.T) {
	engine, diags := newTestEngine(t, buildingDataset())
	_, err := engine.BuildAreaGroups(context.Background())
	require.NoError(t, err, "an orphan surface never aborts the batch")

	var orphaned []string
	for _, d := range diags.Items() {
		if d.Code == diag.CodeUnresolvedZone {
			orphaned = append(orphaned, d.Subject)
		}
	}
	assert.Equal(t, []string{"ORPHAN-WALL"}, orphaned)
}

func TestBuildAreaGroups_DegenerateSurfaceExcluded(t *testing.T) {
	engine, diags := newTestEngine(t, buildingDataset())
	result, err := engine.BuildAreaGroups(context.Background())
	require.NoError(t, err)

	living := result.Areas[0].Zones[0]
	for _, cg := range living.Constructions {
		for _, el := range cg.Elements {
			assert.NotEqual(t, "LIVING-DEGEN", el.SurfaceID)
		}
	}

	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.CodeDegenerateGeometry && d.Subject == "LIVING-DEGEN" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuildAreaGroups_UnresolvedConstructionKeepsGeometry(t *testing.T) {
	engine, diags := newTestEngine(t, buildingDataset())
	result, err := engine.BuildAreaGroups(context.Background())
	require.NoError(t, err)

	living := result.Areas[0].Zones[0]
	for _, cg := range living.Constructions {
		assert.NotEqual(t, "Missing", cg.ConstructionID)
	}

	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.CodeUnresolvedConstruction && d.Subject == "LIVING-NOCON" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuildAreaGroups_CanceledBeforeBuild(t *testing.T) {
	engine, _ := newTestEngine(t, buildingDataset())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.BuildAreaGroups(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

// countdownCtx reports cancellation after a fixed number of Err checks, so a
// build can be interrupted between zones rather than before it starts.
type countdownCtx struct {
	context.Context
	mu        sync.Mutex
	remaining int
}

func (c *countdownCtx) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining <= 0 {
		return context.Canceled
	}
	c.remaining--
	return nil
}

func TestBuildAreaGroups_CanceledMidBuildKeepsPartialResult(t *testing.T) {
	engine, _ := newTestEngine(t, buildingDataset())

	// One Err check loading the HVAC index, one passing the first zone into
	// the build; the check before the second zone trips.
	ctx := &countdownCtx{Context: context.Background(), remaining: 2}

	result, err := engine.BuildAreaGroups(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Len(t, result.Areas, 1, "groups built before cancellation are kept")
	assert.Equal(t, "01", result.Areas[0].AreaID)
	require.Len(t, result.Areas[0].Zones, 1)
	assert.Equal(t, "01:01XLIVING", result.Areas[0].Zones[0].ZoneID)
	assert.NotEmpty(t, result.Areas[0].Zones[0].Constructions)
}

func TestBuildStorageGroups(t *testing.T) {
	engine, _ := newTestEngine(t, buildingDataset())
	result, err := engine.BuildStorageGroups(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Zones, 1)
	zg := result.Zones[0]
	assert.Equal(t, "00XB1:STORAGE", zg.ZoneID)
	assert.Empty(t, zg.AreaID)
	assert.InDelta(t, 16.0, zg.FloorArea, 1e-9)
}

func TestBuildStorageGroups_NoMatches(t *testing.T) {
	ds := buildingDataset()
	ds.Zones = []model.Zone{{ID: "01:01XLIVING"}}
	engine, _ := newTestEngine(t, ds)

	result, err := engine.BuildStorageGroups(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Zones)
}
