package sourcegraph

import (
	"fmt"
	"strconv"
	"strings"
)

// The graph's scalar values arrive loosely typed (JSON numbers, YAML ints,
// stringly-typed flags, real bools). These helpers fold them into the types
// the extraction stages work with.

// String renders a scalar as a string; nil yields "".
func String(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}

// Float parses a scalar as a float64, reporting whether it carried a number.
func Float(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int parses a scalar as an int, reporting whether it carried a number.
func Int(value any) (int, bool) {
	f, ok := Float(value)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Bool interprets a scalar as a boolean flag. Unparseable strings count as
// true when non-empty, matching the permissive host conventions.
func Bool(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return parsed
		}
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
