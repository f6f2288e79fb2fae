package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Number is a JSON field that accepts a number or a numeric string.
// Decoding never fails: values that are neither are kept as invalid and
// reported by the "finite" rule.
type Number struct {
	value float64
	set   bool
	valid bool
}

// NewNumber returns a set, valid Number.
func NewNumber(v float64) Number {
	return Number{value: v, set: true, valid: true}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	n.set = true
	n.valid = false

	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		n.value, n.valid = v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		n.value, n.valid = f, true
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set || !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// IsSet reports whether the field was present and not null.
func (n Number) IsSet() bool { return n.set }

func (n Number) Float() float64 { return n.value }

func (n Number) Int() int { return int(n.value) }

// FloatPtr returns nil when the field was absent.
func (n Number) FloatPtr() *float64 {
	if !n.set {
		return nil
	}
	v := n.value
	return &v
}

// IntPtr returns nil when the field was absent.
func (n Number) IntPtr() *int {
	if !n.set {
		return nil
	}
	v := int(n.value)
	return &v
}

// numberValue exposes a Number to the validator: nil when absent, otherwise
// a pointer to its value, NaN when it was not numeric.
func numberValue(field reflect.Value) any {
	n, ok := field.Interface().(Number)
	if !ok || !n.set {
		return nil
	}
	v := n.value
	if !n.valid {
		v = math.NaN()
	}
	return &v
}
