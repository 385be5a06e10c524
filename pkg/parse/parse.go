// Package parse provides the canonical parse-with-default coercions for
// loosely-typed values read back from storage. Older persisted records may
// hold numbers as strings or omit fields entirely; every malformed field has
// exactly one recovery value instead of ad hoc coercion at each call site.
package parse

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Float coerces v to a float64, returning def when it cannot.
func Float(v any, def float64) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f
		}
	}
	return def
}

// Int coerces v to an int, returning def when it cannot. Fractional values
// are truncated.
func Int(v any, def int) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		if f, err := x.Float64(); err == nil {
			return int(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return i
		}
	}
	return def
}

// String coerces v to a string, returning def for non-string values.
func String(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}
