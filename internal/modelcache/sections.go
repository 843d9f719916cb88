package modelcache

import "fmt"

// SectionState tracks the lifecycle of one cache section. Modeling the
// state explicitly (rather than a boolean) keeps lazy loading idempotent
// and re-entrancy observable.
type SectionState int

const (
	// SectionUnloaded means the section has never been populated.
	SectionUnloaded SectionState = iota
	// SectionLoading means a load is in progress.
	SectionLoading
	// SectionLoaded means the section is populated and immutable.
	SectionLoaded
)

// String returns the lowercase label for a SectionState.
func (s SectionState) String() string {
	switch s {
	case SectionUnloaded:
		return "unloaded"
	case SectionLoading:
		return "loading"
	case SectionLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Section names. The primary sections are populated eagerly by Load; the
// secondary sections are populated on first access.
const (
	SectionZones         = "zones"
	SectionSurfaces      = "surfaces"
	SectionConstructions = "constructions"
	SectionMaterials     = "materials"
	SectionSchedules     = "schedules"
	SectionLoads         = "loads"
	SectionWindows       = "windows"
)

// primarySections are loaded eagerly, in this order.
var primarySections = []string{
	SectionZones, SectionSurfaces, SectionConstructions, SectionMaterials,
}

// secondarySections are loaded lazily, on first access.
var secondarySections = []string{
	SectionSchedules, SectionLoads, SectionWindows,
}

func isPrimary(name string) bool {
	for _, s := range primarySections {
		if s == name {
			return true
		}
	}
	return false
}

func isSecondary(name string) bool {
	for _, s := range secondarySections {
		if s == name {
			return true
		}
	}
	return false
}
