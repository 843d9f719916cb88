// Package metrics exposes Prometheus counters for cache, resolver, and
// lookup activity. A nil *Recorder is valid and records nothing, so the
// engine runs unchanged in hosts without a metrics pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the engine's counters.
type Recorder struct {
	sectionLoads   *prometheus.CounterVec
	resolveMisses  *prometheus.CounterVec
	lookupFailures prometheus.Counter
}

// NewRecorder registers the engine counters with reg and returns a Recorder.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		sectionLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idfreader",
			Subsystem: "cache",
			Name:      "section_loads_total",
			Help:      "Cache section loads, by section name.",
		}, []string{"section"}),
		resolveMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idfreader",
			Subsystem: "resolve",
			Name:      "misses_total",
			Help:      "Unresolved cross-entity references, by relation.",
		}, []string{"relation"}),
		lookupFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "idfreader",
			Subsystem: "consumption",
			Name:      "lookup_failures_total",
			Help:      "Consumption table lookups with no matching row or column.",
		}),
	}
}

// SectionLoaded counts one load of the named cache section.
func (r *Recorder) SectionLoaded(section string) {
	if r == nil {
		return
	}
	r.sectionLoads.WithLabelValues(section).Inc()
}

// ResolveMiss counts one unresolved reference for the named relation.
func (r *Recorder) ResolveMiss(relation string) {
	if r == nil {
		return
	}
	r.resolveMisses.WithLabelValues(relation).Inc()
}

// LookupFailure counts one failed consumption lookup.
func (r *Recorder) LookupFailure() {
	if r == nil {
		return
	}
	r.lookupFailures.Inc()
}
