package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Optional is a numeric field that may legitimately be absent in the source
// data. Absence is distinct from zero: a glazing material without a density
// is "unavailable", not massless by declaration.
type Optional struct {
	value   float64
	present bool
}

// Some returns an Optional holding v.
func Some(v float64) Optional {
	return Optional{value: v, present: true}
}

// None returns an absent Optional.
func None() Optional {
	return Optional{}
}

// Value returns the held value and whether it is present.
func (o Optional) Value() (float64, bool) {
	return o.value, o.present
}

// Present reports whether a value was provided.
func (o Optional) Present() bool {
	return o.present
}

// Or returns the held value, or def when absent.
func (o Optional) Or(def float64) float64 {
	if o.present {
		return o.value
	}
	return def
}

// String renders the value or "absent" for diagnostics and logs.
func (o Optional) String() string {
	if !o.present {
		return "absent"
	}
	return fmt.Sprintf("%g", o.value)
}

// MarshalJSON implements json.Marshaler. Absent values serialize as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON implements json.Unmarshaler. Numbers become present values;
// null, empty string, and the literal "auto" (used by the source format for
// autocalculated fields) become absent.
func (o *Optional) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = None()
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("parsing optional value: %w", err)
		}
		if s == "" || s == "auto" || s == "autocalculate" {
			*o = None()
			return nil
		}
		var v float64
		if _, err := fmt.Sscanf(s, "%g", &v); err != nil {
			return fmt.Errorf("parsing optional value %q: %w", s, err)
		}
		*o = Some(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return fmt.Errorf("parsing optional value: %w", err)
	}
	*o = Some(v)
	return nil
}
