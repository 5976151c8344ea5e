// Package coerce turns loosely typed sheet cell values into Go values.
// Every function is total: bad input maps to a zero value or nil, never an
// error or a panic.
package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numberPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// String stringifies and trims a cell value. nil becomes "".
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// Number returns numeric cells as-is and parses strings as floating point,
// accepting a leading numeric prefix ("4.5 stars" is 4.5). Anything that
// does not parse, and NaN or infinities, become 0.
func Number(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil, bool:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		f = parseFloat(x.String())
	case string:
		f = parseFloat(x)
	default:
		f = parseFloat(fmt.Sprint(x))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	prefix := numberPrefix.FindString(s)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return f
}
