package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Time constants for rule expansion.
const (
	minutesPerHour = 60
	hoursPerDay    = 24
	minutesPerDay  = hoursPerDay * minutesPerHour
)

// defaultValue fills hours not covered by any time-value pair.
const defaultValue = "0"

// TimeValue is one "Until: HH:MM, value" rule pair.
type TimeValue struct {
	// End is the exclusive end time in "HH:MM" form; "24:00" means end of day.
	End string
	// Value is the raw schedule value for the span.
	Value string
}

// timeToMinutes converts "HH:MM" to minutes since midnight. "24:00" maps to
// the full day. Malformed input maps to 0, matching the tolerant handling
// of the source format.
func timeToMinutes(t string) int {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	if hours == hoursPerDay && minutes == 0 {
		return minutesPerDay
	}
	if hours < 0 {
		hours = 0
	} else if hours > hoursPerDay-1 {
		hours = hoursPerDay - 1
	}
	if minutes < 0 {
		minutes = 0
	} else if minutes > minutesPerHour-1 {
		minutes = minutesPerHour - 1
	}
	return hours*minutesPerHour + minutes
}

// ExpandDay expands ordered time-value pairs into a 24-slot hourly array.
// Pairs are applied in end-time order; spans that end before the running
// position are skipped. Hours past the last pair are filled with the last
// pair's value, and a day with no pairs is all defaultValue.
func ExpandDay(pairs []TimeValue) []string {
	hourly := make([]string, hoursPerDay)
	if len(pairs) == 0 {
		for i := range hourly {
			hourly[i] = defaultValue
		}
		return hourly
	}

	filled := make([]bool, hoursPerDay)
	current := 0
	for _, pair := range pairs {
		end := timeToMinutes(pair.End)
		if end <= current {
			continue
		}
		startHour := current / minutesPerHour
		endHour := end / minutesPerHour
		if endHour > hoursPerDay {
			endHour = hoursPerDay
		}
		for h := startHour; h < endHour; h++ {
			hourly[h] = NormalizeValue(pair.Value)
			filled[h] = true
		}
		current = end
		if current >= minutesPerDay {
			break
		}
	}

	fill := NormalizeValue(pairs[len(pairs)-1].Value)
	for i := range hourly {
		if !filled[i] {
			hourly[i] = fill
		}
	}
	return hourly
}

// NormalizeValue formats rule values consistently: integral numbers lose
// their fraction, other numbers keep two decimals, non-numeric tokens pass
// through unchanged.
func NormalizeValue(v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return defaultValue
	}
	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return trimmed
	}
	if num == float64(int64(num)) {
		return strconv.FormatInt(int64(num), 10)
	}
	return fmt.Sprintf("%.2f", num)
}
