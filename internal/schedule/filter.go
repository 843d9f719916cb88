// Package schedule filters operationally uninteresting schedule
// definitions and deduplicates schedules that reduce to the same rule
// content.
package schedule

import (
	"strings"

	"github.com/danielpiro/idf-reader/internal/model"
)

// basicTypeDenylist lists generic schedule-type labels that carry no
// reporting value. Matching is a case-insensitive substring test.
var basicTypeDenylist = []string{
	"on/off",
	"fraction",
	"availability",
	"activity",
	"control type",
	"any number",
}

// setpointPrefixes and setpointSuffixes define the two-part setpoint test:
// the combined name+type text must contain a prefix token AND a suffix
// token. Either alone is not enough — "Heating Schedule" is an operating
// schedule, not a setpoint.
var (
	setpointPrefixes = []string{"heating", "cooling"}
	setpointSuffixes = []string{"setpoint", "sp"}
)

// IsBasicType reports whether the type label names a generic on/off-style
// schedule that should be excluded from schedule reporting.
func IsBasicType(typeLabel string) bool {
	lowered := strings.ToLower(typeLabel)
	for _, deny := range basicTypeDenylist {
		if strings.Contains(lowered, deny) {
			return true
		}
	}
	return false
}

// IsSetpointSchedule reports whether the schedule is a heating/cooling
// setpoint definition. Both a prefix token (heating, cooling) and a suffix
// token (sp, setpoint) must appear in the lowercased name+type text.
func IsSetpointSchedule(name, typeLabel string) bool {
	combined := strings.ToLower(name + " " + typeLabel)

	hasPrefix := false
	for _, p := range setpointPrefixes {
		if strings.Contains(combined, p) {
			hasPrefix = true
			break
		}
	}
	if !hasPrefix {
		return false
	}
	for _, s := range setpointSuffixes {
		if containsToken(combined, s) {
			return true
		}
	}
	return false
}

// containsToken matches tok as a whole word within text, so that "sp" hits
// "heating sp schedule" but not "heating splash schedule". Multi-character
// tokens like "setpoint" also match as plain substrings of larger words
// ("heatingsetpoint").
func containsToken(text, tok string) bool {
	if len(tok) > 2 && strings.Contains(text, tok) {
		return true
	}
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == ':'
	}) {
		if field == tok {
			return true
		}
	}
	return false
}

// Dedupe filters out basic-type and setpoint schedules, then collapses
// schedules with identical rule-token tuples to one representative each.
// Rule tuples are compared by full equality, not by name; the first
// schedule encountered for a tuple keeps its name and type metadata.
// Source order is preserved among representatives.
func Dedupe(schedules []model.Schedule) []model.Schedule {
	seen := make(map[string]struct{}, len(schedules))
	out := make([]model.Schedule, 0, len(schedules))
	for _, sc := range schedules {
		if IsBasicType(sc.TypeLabel) || IsSetpointSchedule(sc.ID, sc.TypeLabel) {
			continue
		}
		key := ruleKey(sc.Rules)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, sc)
	}
	return out
}

// ruleKey builds a collision-safe key from an ordered rule tuple. The unit
// separator cannot appear in source rule tokens.
func ruleKey(rules []string) string {
	return strings.Join(rules, "\x1f")
}
