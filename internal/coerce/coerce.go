// Package coerce converts loosely-typed decoder fields into Go scalars.
// Every function is total: values that cannot be converted yield the supplied
// default instead of an error.
package coerce

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Int converts v to an int. Floats are truncated, numeric strings are parsed.
func Int(v any, def int) int {
	if isMissing(v) {
		return def
	}
	if n, err := cast.ToIntE(v); err == nil {
		return n
	}
	// "12.0" style strings are not accepted by ToIntE.
	if f, err := cast.ToFloat64E(v); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return def
}

// Float converts v to a float64.
func Float(v any, def float64) float64 {
	if isMissing(v) {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return def
	}
	return f
}

// String converts v to a string. nil yields def.
func String(v any, def string) string {
	if v == nil {
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return s
}

// Bool converts v to a bool. Only booleans and numbers are accepted;
// strings and other types yield def.
func Bool(v any, def bool) bool {
	switch b := v.(type) {
	case nil:
		return def
	case bool:
		return b
	case string:
		return def
	}
	if isMissing(v) {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// ID converts v to an entity identifier. Empty strings and the "0" sentinel
// mean no entity and report ok == false.
func ID(v any) (id string, ok bool) {
	id = strings.TrimSpace(String(v, ""))
	if IsAbsentID(id) {
		return "", false
	}
	return id, true
}

// IsAbsentID reports whether id denotes an unknown entity.
func IsAbsentID(id string) bool {
	return id == "" || id == "0"
}

// isMissing reports nil and NaN values.
func isMissing(v any) bool {
	switch f := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(f)
	case float32:
		return math.IsNaN(float64(f))
	}
	return false
}
