package products

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a loosely typed numeric field. It accepts a JSON number, a
// numeric string or null, and remembers whether a value was supplied at all.
// Anything else decodes without error but fails to parse later.
type Number struct {
	raw     string
	present bool
}

// NumberOf returns a present Number holding v.
func NumberOf(v float64) Number {
	return Number{raw: strconv.FormatFloat(v, 'f', -1, 64), present: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			raw = s
		}
	}
	*n = Number{raw: strings.TrimSpace(raw), present: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if f, ok := n.Float(); ok {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return []byte("null"), nil
}

// Present reports whether the field was supplied with a non-null value.
func (n Number) Present() bool {
	return n.present
}

// Float parses the value as a finite float64.
func (n Number) Float() (float64, bool) {
	if !n.present || n.raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int parses the value and truncates any fraction toward zero.
func (n Number) Int() (int, bool) {
	f, ok := n.Float()
	if !ok {
		return 0, false
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
