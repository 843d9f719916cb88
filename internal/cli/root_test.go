package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpiro/idf-reader/internal/config"
	"github.com/danielpiro/idf-reader/internal/metrics"
	"github.com/danielpiro/idf-reader/internal/model"
)

func writeDataset(t *testing.T, ds model.Dataset) string {
	t.Helper()
	data, err := json.Marshal(ds)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func sampleDataset() model.Dataset {
	return model.Dataset{
		Zones: []model.Zone{
			{ID: "01:01XLIVING", FloorArea: model.Some(40)},
			{ID: "PLENUM"},
		},
		Surfaces: []model.Surface{
			{ID: "LIVING-FLOOR", ZoneID: "01:01XLIVING", Type: model.SurfaceFloor,
				Boundary: model.BoundaryGround, ConstructionID: "Slab",
				Vertices: []model.Vertex{
					{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 5}, {X: 0, Y: 5},
				}},
		},
		Constructions: []model.Construction{
			{ID: "Slab", LayerIDs: []string{"Concrete"}},
		},
		Materials: []model.Material{
			{ID: "Concrete", Thickness: model.Some(0.2),
				Conductivity: model.Some(1.0), Density: model.Some(2200)},
		},
		Schedules: []model.Schedule{
			{ID: "Ventilation", TypeLabel: "Temperature", Rules: []string{"Through: 12/31"}},
			{ID: "Occupancy", TypeLabel: "Fraction", Rules: []string{"Through: 12/31"}},
		},
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInspectCommand(t *testing.T) {
	path := writeDataset(t, sampleDataset())

	out, err := runCommand(t, "inspect", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Zones:         2")
	assert.Contains(t, out, "Surfaces:      1")
	assert.Contains(t, out, "zones           loaded")
	assert.Contains(t, out, "schedules       unloaded")
}

func TestInspectCommand_AllSections(t *testing.T) {
	path := writeDataset(t, sampleDataset())

	out, err := runCommand(t, "inspect", "--input", path, "--all-sections")
	require.NoError(t, err)
	assert.Contains(t, out, "schedules       loaded")
	assert.Contains(t, out, "windows         loaded")
}

func TestInspectCommand_EmptyDataset(t *testing.T) {
	path := writeDataset(t, model.Dataset{})

	_, err := runCommand(t, "inspect", "--input", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no primary records")
}

func TestAreasCommand(t *testing.T) {
	path := writeDataset(t, sampleDataset())

	out, err := runCommand(t, "areas", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, out, "AREA 01")
	assert.Contains(t, out, "zone 01:01XLIVING")
	assert.Contains(t, out, "construction Slab")
	assert.Contains(t, out, "UNASSIGNED ZONES")
	assert.Contains(t, out, "PLENUM")
	assert.Contains(t, out, "WARNINGS")
	assert.Contains(t, out, "unassigned-area")
}

func TestConsumptionCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2023_model.csv"),
		[]byte("usage,1,2,3,4,5,6,7,8\nGround Floor,18,19,20,21,22,23,24,25\n"), 0o644))

	out, err := runCommand(t, "consumption",
		"--edition", "2023", "--location", "Ground Floor", "--zone", "5",
		"--tables", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "22")
}

func TestConsumptionCommand_NotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2017_model.csv"),
		[]byte("usage,A,B,C,D\nRoof,1,2,3,4\n"), 0o644))

	_, err := runCommand(t, "consumption",
		"--edition", "2017", "--location", "Basement", "--zone", "A",
		"--tables", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSchedulesCommand(t *testing.T) {
	path := writeDataset(t, sampleDataset())

	out, err := runCommand(t, "schedules", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 2 schedules kept")
	assert.Contains(t, out, "Ventilation")
	assert.NotContains(t, out, "Occupancy")
}

func TestExecuteAreas_RecordsResolveMisses(t *testing.T) {
	ds := sampleDataset()
	ds.Surfaces = append(ds.Surfaces, model.Surface{
		ID: "ORPHAN-WALL", ZoneID: "GHOST", Type: model.SurfaceWall,
		Boundary: model.BoundaryOutdoors, ConstructionID: "Slab",
		Vertices: []model.Vertex{
			{X: 0, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 3}, {X: 0, Y: 0, Z: 3},
		},
	})
	path := writeDataset(t, ds)

	reg := prometheus.NewRegistry()
	a := &app{
		cfg:     config.Default(),
		log:     zerolog.Nop(),
		metrics: metrics.NewRecorder(reg),
	}

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetContext(context.Background())

	require.NoError(t, executeAreas(cmd, a, areasParams{inputPath: path}))

	n, err := testutil.GatherAndCount(reg, "idfreader_resolve_misses_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "the orphan surface's failed zone resolution is counted")
}

func TestReadDataset_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := readDataset(path)
	require.Error(t, err)
}
