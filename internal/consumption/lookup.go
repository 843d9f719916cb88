package consumption

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/danielpiro/idf-reader/internal/metrics"
)

// tableFiles names each edition's CSV file inside the tables directory.
var tableFiles = map[Edition]string{
	Edition2017:   "2017_model.csv",
	Edition2023:   "2023_model.csv",
	EditionOffice: "office_model.csv",
}

// loadConcurrency bounds parallel table reads in LoadDir.
const loadConcurrency = 3

// TableSet holds the loaded reference tables for all editions and serves
// lookups. It is stateless beyond the immutable tables.
type TableSet struct {
	mu      sync.RWMutex
	tables  map[Edition]*Table
	log     zerolog.Logger
	metrics *metrics.Recorder
}

// Option configures a TableSet.
type Option func(*TableSet)

// WithLogger sets the lookup logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *TableSet) { s.log = l }
}

// WithMetrics sets the metrics recorder. Nil is valid.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *TableSet) { s.metrics = r }
}

// NewTableSet returns an empty table set.
func NewTableSet(opts ...Option) *TableSet {
	s := &TableSet{
		tables: make(map[Edition]*Table),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadDir reads every edition table found in dir. Editions whose file is
// absent are skipped; looking one up later yields ErrEditionUnknown.
// Tables are read concurrently.
func (s *TableSet) LoadDir(ctx context.Context, dir string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)

	for edition, file := range tableFiles {
		edition, file := edition, file
		g.Go(func() error {
			path := filepath.Join(dir, file)
			t, err := ReadTableFile(edition, path)
			if err != nil {
				s.log.Debug().Str("edition", string(edition)).Err(err).
					Msg("reference table not loaded")
				return nil
			}
			s.mu.Lock()
			s.tables[edition] = t
			s.mu.Unlock()
			s.log.Info().Str("edition", string(edition)).
				Int("rows", len(t.rows)).Msg("reference table loaded")
			return nil
		})
	}
	return g.Wait()
}

// Add installs a table for an edition, replacing any previous one.
func (s *TableSet) Add(edition Edition, t *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[edition] = t
}

// validZone reports whether the climate zone key is in the edition's fixed
// column set: letters A-D for 2017 and office, codes 1-8 for 2023.
func validZone(edition Edition, zone string) bool {
	valid := climateZones2017
	if edition == Edition2023 {
		valid = climateZones2023
	}
	for _, z := range valid {
		if strings.EqualFold(zone, z) {
			return true
		}
	}
	return false
}

// Lookup returns the consumption figure for the given standard edition,
// usage-location row, and climate-zone column. A missing row or column is
// ErrNotFound, never zero; an edition without a loaded table is
// ErrEditionUnknown; a climate zone outside the edition's fixed set is
// ErrClimateZoneInvalid.
func (s *TableSet) Lookup(edition Edition, usageLocation, climateZone string) (float64, error) {
	s.mu.RLock()
	t, ok := s.tables[edition]
	s.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("edition %q: %w", edition, ErrEditionUnknown)
	}
	if !validZone(edition, climateZone) {
		return 0, fmt.Errorf("climate zone %q for edition %s: %w", climateZone, edition, ErrClimateZoneInvalid)
	}

	v, err := t.lookup(usageLocation, climateZone)
	if err != nil {
		s.metrics.LookupFailure()
		return 0, err
	}
	return v, nil
}
