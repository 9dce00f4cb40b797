// Package normalize maps loosely typed Noa API payloads into the
// stable view models the rest of the gateway consumes. Sparse or
// malformed fields degrade to zero values; nothing here returns an
// error for a structurally valid payload.
package normalize

import (
	"strconv"
	"strings"
)

// coerceString renders an id-like value as a string. JSON numbers
// decode as float64; integral values must not pick up a ".0" suffix,
// because ids are compared as strings across collections.
func coerceString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	default:
		return ""
	}
}

// coerceNumberString renders a numeric-or-absent field as a string,
// falling back to def when the value is missing or not a number.
func coerceNumberString(v any, def string) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case string:
		if strings.TrimSpace(x) != "" {
			return x
		}

		return def
	default:
		return def
	}
}

// coerceAmount reads a paid-amount field as minor units; non-numeric
// values count as 0 in aggregates.
func coerceAmount(v any) int64 {
	switch x := v.(type) {
	case float64:
		return int64(x)
	case int64:
		return x
	case int:
		return int64(x)
	case string:
		n, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(x), ",", ""), 10, 64)
		if err != nil {
			return 0
		}

		return n
	default:
		return 0
	}
}
