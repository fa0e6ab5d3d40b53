package amw

import (
	"fmt"
	"strings"
)

// The parser produces values of type any, holding one of:
//
//	nil            null
//	bool           boolean
//	int64          signed integer
//	uint64         unsigned integer
//	float64        floating point
//	string         string
//	DateTime       date-time
//	Timestamp      timestamp
//	[]any          ordered sequence
//	*Mapping       mapping from string-like keys to values
//
// This mirrors the way the teacher format represents its own dynamically
// typed values (null -> nil, array -> []any, object -> map[string]any) but
// widens the numeric and temporal kinds so all nine value kinds named in
// the data model are distinguishable with a plain type switch.

// DateTime is an ISO-like date-time value with optional fractional seconds
// and an optional GMT offset.
type DateTime struct {
	Year, Month, Day          int
	Hour, Minute, Second      int
	Nanosecond                uint32
	HasOffset                 bool
	GMTOffsetMinutes          int // signed minutes; meaningful only if HasOffset
}

// String renders the date-time in the same layout the parser accepts.
func (dt DateTime) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d-%02d-%02dT%02d:%02d:%02d", dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
	if dt.Nanosecond != 0 {
		frac := fmt.Sprintf("%09d", dt.Nanosecond)
		frac = strings.TrimRight(frac, "0")
		b.WriteByte('.')
		b.WriteString(frac)
	}
	if dt.HasOffset {
		if dt.GMTOffsetMinutes == 0 {
			b.WriteByte('Z')
		} else {
			sign := byte('+')
			off := dt.GMTOffsetMinutes
			if off < 0 {
				sign = '-'
				off = -off
			}
			fmt.Fprintf(&b, "%c%02d:%02d", sign, off/60, off%60)
		}
	}
	return b.String()
}

// Timestamp is a seconds-since-epoch value with an optional nanosecond
// fraction.
type Timestamp struct {
	Seconds     uint64
	Nanoseconds uint32
}

func (ts Timestamp) String() string {
	if ts.Nanoseconds == 0 {
		return fmt.Sprintf("%d", ts.Seconds)
	}
	frac := strings.TrimRight(fmt.Sprintf("%09d", ts.Nanoseconds), "0")
	return fmt.Sprintf("%d.%s", ts.Seconds, frac)
}

// Mapping is an insertion-ordered map from a value to a value. Set does not
// check key types; the keys the parser produces are the scalars parse_value
// can return when asked for a map key: nil (the null keyword), string,
// bool, int64, uint64, float64. All of these are comparable Go values, so a
// native map can index them directly.
type Mapping struct {
	order []any
	vals  map[any]any
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{vals: make(map[any]any)}
}

// Set inserts or updates key with value. Later calls with an
// already-present key overwrite the value but keep the key's original
// position, matching the teacher format's map semantics and spec.md's
// "later keys overwrite earlier" rule.
func (m *Mapping) Set(key, value any) {
	if _, ok := m.vals[key]; !ok {
		m.order = append(m.order, key)
	}
	m.vals[key] = value
}

// Get returns the value for key and whether it was present.
func (m *Mapping) Get(key any) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key any) bool {
	_, ok := m.vals[key]
	return ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.order)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []any {
	out := make([]any, len(m.order))
	copy(out, m.order)
	return out
}

// Range calls f for every entry in insertion order, stopping early if f
// returns false.
func (m *Mapping) Range(f func(key, value any) bool) {
	for _, k := range m.order {
		if !f(k, m.vals[k]) {
			return
		}
	}
}

// Equal reports whether m and other contain the same entries in the same
// order with deeply-equal values. Used by the tests that parse the same
// input twice.
func (m *Mapping) Equal(other *Mapping) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.order) != len(other.order) {
		return false
	}
	for i, k := range m.order {
		if other.order[i] != k {
			return false
		}
		if !ValuesEqual(m.vals[k], other.vals[k]) {
			return false
		}
	}
	return true
}

// ValuesEqual compares two values for deep equality, treating NaN as equal
// to itself. The parser has no nan keyword and never produces NaN itself;
// the case matters only for values built by callers.
func ValuesEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !ValuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		bv, ok := b.(*Mapping)
		if !ok {
			return false
		}
		return av.Equal(bv)
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		if av != av && bv != bv { // both NaN
			return true
		}
		return av == bv
	default:
		return a == b
	}
}
