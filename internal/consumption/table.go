// Package consumption maps compliance-table keys (standard edition,
// usage-location descriptor, climate zone) to precomputed energy
// consumption figures loaded from CSV reference tables.
package consumption

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Lookup errors. ErrNotFound is a distinct outcome, never a zero default:
// callers must be able to tell "legitimately zero" from "lookup failed".
var (
	ErrEditionUnknown     = errors.New("unknown standard edition")
	ErrClimateZoneInvalid = errors.New("invalid climate zone")
	ErrNotFound           = errors.New("consumption value not found")
	ErrEmptyTable         = errors.New("reference table is empty")
)

// Edition selects one of the fixed reference tables.
type Edition string

// Known standard editions.
const (
	Edition2017   Edition = "2017"
	Edition2023   Edition = "2023"
	EditionOffice Edition = "office"
)

// ParseEdition maps a free-form edition descriptor (for example
// "ISO_TYPE_2017_A" or "Office 2011") to its reference table.
func ParseEdition(s string) (Edition, error) {
	switch {
	case strings.Contains(s, "2017"):
		return Edition2017, nil
	case strings.Contains(s, "2023"):
		return Edition2023, nil
	case strings.Contains(strings.ToLower(s), "office"):
		return EditionOffice, nil
	default:
		return "", fmt.Errorf("edition %q: %w", s, ErrEditionUnknown)
	}
}

// climateZones2017 are the column keys for the 2017 and office tables.
var climateZones2017 = []string{"A", "B", "C", "D"}

// climateZones2023 are the column keys for the 2023 table.
var climateZones2023 = []string{"1", "2", "3", "4", "5", "6", "7", "8"}

// normalizeKey prepares a usage-location descriptor for exact row matching.
// NFC normalization keeps composed and decomposed forms of the same text
// (the source tables carry Hebrew descriptors) from missing each other.
func normalizeKey(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Table is one edition's reference table: rows keyed by usage-location
// descriptor, columns keyed by climate zone.
type Table struct {
	edition Edition
	columns map[string]int
	rows    map[string][]float64
}

// ReadTable parses a reference table from CSV. The first column holds the
// usage-location row keys; the remaining header cells are climate-zone
// column keys.
func ReadTable(edition Edition, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTable
		}
		return nil, fmt.Errorf("reading table header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("table header needs a row-key column and at least one climate column: %w", ErrEmptyTable)
	}

	t := &Table{
		edition: edition,
		columns: make(map[string]int, len(header)-1),
		rows:    make(map[string][]float64),
	}
	for i, col := range header[1:] {
		t.columns[strings.ToUpper(strings.TrimSpace(col))] = i
	}

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("reading table row: %w", readErr)
		}
		if len(record) < 2 {
			continue
		}
		key := normalizeKey(record[0])
		values := make([]float64, len(record)-1)
		for i, cell := range record[1:] {
			v, parseErr := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if parseErr != nil {
				return nil, fmt.Errorf("row %q column %d: parsing %q: %w", key, i+1, cell, parseErr)
			}
			values[i] = v
		}
		t.rows[key] = values
	}

	if len(t.rows) == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// ReadTableFile parses a reference table from a CSV file on disk.
func ReadTableFile(edition Edition, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference table: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadTable(edition, f)
}

// lookup returns the value for a row/column pair.
func (t *Table) lookup(usageLocation, climateZone string) (float64, error) {
	row, ok := t.rows[normalizeKey(usageLocation)]
	if !ok {
		return 0, fmt.Errorf("usage location %q in %s table: %w", usageLocation, t.edition, ErrNotFound)
	}
	col, ok := t.columns[strings.ToUpper(strings.TrimSpace(climateZone))]
	if !ok || col >= len(row) {
		return 0, fmt.Errorf("climate zone %q in %s table: %w", climateZone, t.edition, ErrNotFound)
	}
	return row[col], nil
}
