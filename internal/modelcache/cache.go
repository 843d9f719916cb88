// Package modelcache provides the typed, indexed entity cache over a
// RecordStore. Primary sections (zones, surfaces, constructions, materials)
// are populated eagerly when the dataset is loaded; secondary sections
// (schedules, loads, windows) are populated on first access. After Load the
// cache is read-only apart from its internal memoization.
package modelcache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/danielpiro/idf-reader/internal/metrics"
	"github.com/danielpiro/idf-reader/internal/model"
)

// Cache errors.
var (
	// ErrEmptyDataset is fatal: the raw source produced no primary records.
	ErrEmptyDataset = errors.New("dataset has no primary records")
	// ErrNotLoaded is returned by accessors before Load has run.
	ErrNotLoaded = errors.New("cache not loaded")
	// ErrSectionUnknown marks a caller-contract violation: the requested
	// section name does not exist.
	ErrSectionUnknown = errors.New("unknown cache section")
)

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the cache logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Cache) { c.log = l }
}

// WithMetrics sets the metrics recorder. Nil is valid and records nothing.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Cache) { c.metrics = r }
}

// Cache is the entity cache for one batch run.
type Cache struct {
	store   *model.RecordStore
	dataset model.Dataset
	log     zerolog.Logger
	metrics *metrics.Recorder

	mu     sync.RWMutex
	states map[string]SectionState
	loaded bool

	// group collapses duplicate lazy-section loads to a single execution.
	group singleflight.Group

	// zoneSurfaces maps zone ID to the IDs of surfaces that reference it,
	// in surface source order. The reverse direction (surface to zone) is
	// the surface record's ZoneID field; consistency between the two is the
	// resolver's job at read time.
	zoneSurfaces map[string][]string

	// hvacZones lists zones referenced by a heating/cooling temperature
	// schedule, in zone source order. Built with the schedules section.
	hvacZones []string
}

// New returns an unloaded cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		store:        model.NewRecordStore(),
		log:          zerolog.Nop(),
		states:       make(map[string]SectionState),
		zoneSurfaces: make(map[string][]string),
	}
	for _, s := range primarySections {
		c.states[s] = SectionUnloaded
	}
	for _, s := range secondarySections {
		c.states[s] = SectionUnloaded
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load populates the primary sections from the dataset. It is fatal for the
// dataset to be empty. Load must be called exactly once per batch run;
// calling it again on a loaded cache is a no-op.
func (c *Cache) Load(ds model.Dataset) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return nil
	}
	if ds.Empty() {
		return ErrEmptyDataset
	}
	c.dataset = ds

	for _, z := range ds.Zones {
		c.store.PutZone(z)
	}
	c.states[SectionZones] = SectionLoaded

	for _, sf := range ds.Surfaces {
		c.store.PutSurface(sf)
		c.zoneSurfaces[sf.ZoneID] = append(c.zoneSurfaces[sf.ZoneID], sf.ID)
	}
	c.states[SectionSurfaces] = SectionLoaded

	for _, con := range ds.Constructions {
		c.store.PutConstruction(con)
	}
	c.states[SectionConstructions] = SectionLoaded

	for _, m := range ds.Materials {
		c.store.PutMaterial(m)
	}
	c.states[SectionMaterials] = SectionLoaded

	for _, s := range primarySections {
		c.metrics.SectionLoaded(s)
	}

	c.loaded = true
	c.log.Info().
		Int("zones", c.store.ZoneCount()).
		Int("surfaces", c.store.SurfaceCount()).
		Int("constructions", c.store.ConstructionCount()).
		Int("materials", c.store.MaterialCount()).
		Msg("primary cache sections loaded")
	return nil
}

// EnsureSection populates a secondary section exactly once. Repeated and
// concurrent requests for the same section collapse to a single load.
// Requesting a primary section is a no-op once Load has run. Requesting a
// name that is not a section is a programming error and fails loudly.
func (c *Cache) EnsureSection(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if isPrimary(name) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		if !c.loaded {
			return fmt.Errorf("section %s: %w", name, ErrNotLoaded)
		}
		return nil
	}
	if !isSecondary(name) {
		return fmt.Errorf("section %q: %w", name, ErrSectionUnknown)
	}

	c.mu.RLock()
	state := c.states[name]
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		return fmt.Errorf("section %s: %w", name, ErrNotLoaded)
	}
	if state == SectionLoaded {
		return nil
	}

	_, err, _ := c.group.Do(name, func() (any, error) {
		c.mu.Lock()
		if c.states[name] == SectionLoaded {
			c.mu.Unlock()
			return nil, nil
		}
		c.states[name] = SectionLoading
		c.mu.Unlock()

		c.loadSecondary(name)

		c.mu.Lock()
		c.states[name] = SectionLoaded
		c.mu.Unlock()

		c.metrics.SectionLoaded(name)
		c.log.Debug().Str("section", name).Msg("secondary cache section loaded")
		return nil, nil
	})
	return err
}

// loadSecondary copies one secondary record type from the retained dataset
// into the store. Called at most once per section.
func (c *Cache) loadSecondary(name string) {
	switch name {
	case SectionSchedules:
		for _, sc := range c.dataset.Schedules {
			c.store.PutSchedule(sc)
		}
		c.buildHVACZones()
	case SectionLoads:
		for _, l := range c.dataset.Loads {
			c.store.PutLoad(l)
		}
	case SectionWindows:
		for _, w := range c.dataset.Windows {
			c.store.PutWindow(w)
		}
	}
}

// Status reports the state of every section.
func (c *Cache) Status() map[string]SectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]SectionState, len(c.states))
	for k, v := range c.states {
		out[k] = v
	}
	return out
}

// Zone returns the zone with the given ID. Absence is not an error; the
// caller decides whether it matters.
func (c *Cache) Zone(id string) (model.Zone, bool) { return c.store.Zone(id) }

// Zones returns all zones in source order.
func (c *Cache) Zones() []model.Zone { return c.store.Zones() }

// Surface returns the surface with the given ID.
func (c *Cache) Surface(id string) (model.Surface, bool) { return c.store.Surface(id) }

// Surfaces returns all surfaces in source order.
func (c *Cache) Surfaces() []model.Surface { return c.store.Surfaces() }

// SurfacesOfZone returns the IDs of surfaces referencing the zone, in
// source order. Unknown zones yield nil.
func (c *Cache) SurfacesOfZone(zoneID string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := c.zoneSurfaces[zoneID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Construction returns the construction with the given ID.
func (c *Cache) Construction(id string) (model.Construction, bool) { return c.store.Construction(id) }

// Constructions returns all constructions in source order.
func (c *Cache) Constructions() []model.Construction { return c.store.Constructions() }

// Material returns the material with the given ID.
func (c *Cache) Material(id string) (model.Material, bool) { return c.store.Material(id) }

// Materials returns all materials in source order.
func (c *Cache) Materials() []model.Material { return c.store.Materials() }

// Schedules returns all schedules, loading the section on first access.
func (c *Cache) Schedules(ctx context.Context) ([]model.Schedule, error) {
	if err := c.EnsureSection(ctx, SectionSchedules); err != nil {
		return nil, err
	}
	return c.store.Schedules(), nil
}

// Schedule returns one schedule, loading the section on first access.
func (c *Cache) Schedule(ctx context.Context, id string) (model.Schedule, bool, error) {
	if err := c.EnsureSection(ctx, SectionSchedules); err != nil {
		return model.Schedule{}, false, err
	}
	sc, ok := c.store.Schedule(id)
	return sc, ok, nil
}

// Loads returns all load records, loading the section on first access.
func (c *Cache) Loads(ctx context.Context) ([]model.Load, error) {
	if err := c.EnsureSection(ctx, SectionLoads); err != nil {
		return nil, err
	}
	return c.store.Loads(), nil
}

// Windows returns all window systems, loading the section on first access.
func (c *Cache) Windows(ctx context.Context) ([]model.WindowSystem, error) {
	if err := c.EnsureSection(ctx, SectionWindows); err != nil {
		return nil, err
	}
	return c.store.Windows(), nil
}

// HVACZones returns the IDs of zones referenced by a heating or cooling
// temperature schedule, loading the schedules section on first access.
func (c *Cache) HVACZones(ctx context.Context) ([]string, error) {
	if err := c.EnsureSection(ctx, SectionSchedules); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.hvacZones))
	copy(out, c.hvacZones)
	return out, nil
}

// buildHVACZones scans schedules for heating/cooling temperature schedules
// and marks the zones their names reference. A schedule indicates HVAC
// service when its type label mentions temperature (but not setpoint) and
// its name mentions heating or cooling.
func (c *Cache) buildHVACZones() {
	var indicators []string
	for _, sc := range c.dataset.Schedules {
		name := strings.ToLower(sc.ID)
		label := strings.ToLower(sc.TypeLabel)
		if strings.Contains(label, "temperature") &&
			!strings.Contains(label, "setpoint") &&
			(strings.Contains(name, "heating") || strings.Contains(name, "cooling")) {
			indicators = append(indicators, sc.ID)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.hvacZones = c.hvacZones[:0]
	for _, z := range c.store.Zones() {
		for _, scheduleID := range indicators {
			if strings.Contains(scheduleID, z.ID) {
				c.hvacZones = append(c.hvacZones, z.ID)
				break
			}
		}
	}
}
