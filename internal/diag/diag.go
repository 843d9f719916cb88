// Package diag collects entity-level diagnostics produced while building
// derived views of the model. A diagnostic excludes the offending entity
// from the relevant aggregation; it never aborts the batch.
package diag

import (
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
)

// Severity ranks a diagnostic.
type Severity int

const (
	// SeverityWarning marks a recoverable, entity-level condition.
	SeverityWarning Severity = iota
	// SeverityError marks a condition the caller should surface prominently.
	SeverityError
)

// String returns the lowercase label for a Severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Code identifies the class of a diagnostic.
type Code string

// Diagnostic codes emitted by the engine.
const (
	CodeUnresolvedZone         Code = "unresolved-zone"
	CodeUnresolvedConstruction Code = "unresolved-construction"
	CodeUnresolvedLayer        Code = "unresolved-layer"
	CodeUnresolvedSchedule     Code = "unresolved-schedule"
	CodeDegenerateGeometry     Code = "degenerate-geometry"
	CodeUnassignedArea         Code = "unassigned-area"
)

// Diagnostic is one recorded condition. ID is a ULID, unique and sortable
// by emission time within a batch run.
type Diagnostic struct {
	ID       ulid.ULID
	Severity Severity
	Code     Code
	Subject  string
	Message  string
}

// String renders the diagnostic for the warnings section of a report.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s %s: %s", d.Severity, d.Code, d.Subject, d.Message)
}

// New builds a diagnostic with a fresh ULID.
func New(sev Severity, code Code, subject, message string) Diagnostic {
	return Diagnostic{
		ID:       ulid.Make(),
		Severity: sev,
		Code:     code,
		Subject:  subject,
		Message:  message,
	}
}

// Collector accumulates diagnostics. Safe for use from a multi-threaded
// host, though the engine itself is single-threaded.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Warnf records a warning-severity diagnostic built from a format string.
func (c *Collector) Warnf(code Code, subject, format string, args ...any) Diagnostic {
	d := New(SeverityWarning, code, subject, fmt.Sprintf(format, args...))
	c.Add(d)
	return d
}

// Items returns a snapshot copy of the recorded diagnostics.
func (c *Collector) Items() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
