package model

// collection is an insertion-ordered set of records keyed by ID. A duplicate
// ID replaces the stored record but keeps its original position.
type collection[T any] struct {
	order []string
	byID  map[string]T
}

func newCollection[T any]() collection[T] {
	return collection[T]{byID: make(map[string]T)}
}

func (c *collection[T]) put(id string, rec T) {
	if _, exists := c.byID[id]; !exists {
		c.order = append(c.order, id)
	}
	c.byID[id] = rec
}

func (c *collection[T]) get(id string) (T, bool) {
	rec, ok := c.byID[id]
	return rec, ok
}

func (c *collection[T]) all() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *collection[T]) size() int {
	return len(c.order)
}

// RecordStore is the arena holding all raw records of a batch run, indexed
// by stable string keys with source order preserved. It carries no derived
// logic; derived views live in the cache and the engines above it.
type RecordStore struct {
	zones         collection[Zone]
	surfaces      collection[Surface]
	constructions collection[Construction]
	materials     collection[Material]
	schedules     collection[Schedule]
	loads         collection[Load]
	windows       collection[WindowSystem]
}

// NewRecordStore returns an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		zones:         newCollection[Zone](),
		surfaces:      newCollection[Surface](),
		constructions: newCollection[Construction](),
		materials:     newCollection[Material](),
		schedules:     newCollection[Schedule](),
		loads:         newCollection[Load](),
		windows:       newCollection[WindowSystem](),
	}
}

// PutZone stores a zone record.
func (s *RecordStore) PutZone(z Zone) { s.zones.put(z.ID, z) }

// Zone returns the zone with the given ID.
func (s *RecordStore) Zone(id string) (Zone, bool) { return s.zones.get(id) }

// Zones returns all zones in source order.
func (s *RecordStore) Zones() []Zone { return s.zones.all() }

// ZoneCount returns the number of stored zones.
func (s *RecordStore) ZoneCount() int { return s.zones.size() }

// PutSurface stores a surface record.
func (s *RecordStore) PutSurface(sf Surface) { s.surfaces.put(sf.ID, sf) }

// Surface returns the surface with the given ID.
func (s *RecordStore) Surface(id string) (Surface, bool) { return s.surfaces.get(id) }

// Surfaces returns all surfaces in source order.
func (s *RecordStore) Surfaces() []Surface { return s.surfaces.all() }

// SurfaceCount returns the number of stored surfaces.
func (s *RecordStore) SurfaceCount() int { return s.surfaces.size() }

// PutConstruction stores a construction record. Layer order is kept verbatim.
func (s *RecordStore) PutConstruction(c Construction) { s.constructions.put(c.ID, c) }

// Construction returns the construction with the given ID.
func (s *RecordStore) Construction(id string) (Construction, bool) { return s.constructions.get(id) }

// Constructions returns all constructions in source order.
func (s *RecordStore) Constructions() []Construction { return s.constructions.all() }

// ConstructionCount returns the number of stored constructions.
func (s *RecordStore) ConstructionCount() int { return s.constructions.size() }

// PutMaterial stores a material record.
func (s *RecordStore) PutMaterial(m Material) { s.materials.put(m.ID, m) }

// Material returns the material with the given ID.
func (s *RecordStore) Material(id string) (Material, bool) { return s.materials.get(id) }

// Materials returns all materials in source order.
func (s *RecordStore) Materials() []Material { return s.materials.all() }

// MaterialCount returns the number of stored materials.
func (s *RecordStore) MaterialCount() int { return s.materials.size() }

// PutSchedule stores a schedule record.
func (s *RecordStore) PutSchedule(sc Schedule) { s.schedules.put(sc.ID, sc) }

// Schedule returns the schedule with the given ID.
func (s *RecordStore) Schedule(id string) (Schedule, bool) { return s.schedules.get(id) }

// Schedules returns all schedules in source order.
func (s *RecordStore) Schedules() []Schedule { return s.schedules.all() }

// ScheduleCount returns the number of stored schedules.
func (s *RecordStore) ScheduleCount() int { return s.schedules.size() }

// PutLoad stores a load record.
func (s *RecordStore) PutLoad(l Load) { s.loads.put(l.ID, l) }

// Load returns the load with the given ID.
func (s *RecordStore) Load(id string) (Load, bool) { return s.loads.get(id) }

// Loads returns all loads in source order.
func (s *RecordStore) Loads() []Load { return s.loads.all() }

// LoadCount returns the number of stored loads.
func (s *RecordStore) LoadCount() int { return s.loads.size() }

// PutWindow stores a window system record.
func (s *RecordStore) PutWindow(w WindowSystem) { s.windows.put(w.ID, w) }

// Window returns the window system with the given ID.
func (s *RecordStore) Window(id string) (WindowSystem, bool) { return s.windows.get(id) }

// Windows returns all window systems in source order.
func (s *RecordStore) Windows() []WindowSystem { return s.windows.all() }

// WindowCount returns the number of stored window systems.
func (s *RecordStore) WindowCount() int { return s.windows.size() }
