package dbms

import (
	"fmt"
	"strings"
)

// compareValues orders two stored values from the same column domain.
// Numbers compare numerically (int64 and float64 mix freely), strings
// lexicographically. Returns -1, 0, or 1, or an error when the values
// are not comparable.
func compareValues(a, b any) (int, error) {
	if af, ok := asFloat(a); ok {
		bf, ok := asFloat(b)
		if !ok {
			return 0, fmt.Errorf("cannot compare %T with %T", a, b)
		}

		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, fmt.Errorf("cannot compare %T with %T", a, b)
		}

		return strings.Compare(as, bs), nil
	}

	return 0, fmt.Errorf("cannot compare %T values", a)
}

// asFloat widens any numeric value to float64 for comparison.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
