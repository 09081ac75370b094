package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SafeInt converts an API-supplied value to an integer.
// Strings, json.Number and Go numeric types are accepted; nil or anything
// that does not parse as a base-10 integer yields 0.
func SafeInt(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case *string:
		if x == nil {
			return 0
		}
		return SafeInt(*x)
	case json.Number:
		return SafeInt(string(x))
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint32:
		return int64(x)
	case float64:
		return int64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		return 0
	}
}
