package indicators

// Value is an optional indicator reading. A value inside an indicator's
// warm-up period is absent (OK == false), which is distinct from a
// computed zero. Absent values are excluded from scoring and consolidation.
type Value struct {
	V  float64
	OK bool
}

// Defined wraps a computed float into a present Value.
func Defined(v float64) Value {
	return Value{V: v, OK: true}
}

// Undefined is the warm-up sentinel.
func Undefined() Value {
	return Value{}
}

// Series is a sequence of optional values aligned 1:1 with the bars of the
// price series it was computed from.
type Series []Value

// At returns the value at index i. Out-of-range indexes report absent
// instead of panicking, so callers can probe lookback positions freely.
func (s Series) At(i int) (float64, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i].V, s[i].OK
}

// Last returns the value at the latest bar.
func (s Series) Last() (float64, bool) {
	return s.At(len(s) - 1)
}

// DefinedFrom returns the index of the first defined value, or -1 if the
// series is entirely undefined.
func (s Series) DefinedFrom() int {
	for i := range s {
		if s[i].OK {
			return i
		}
	}
	return -1
}

// undefinedSeries allocates a series of n absent values.
func undefinedSeries(n int) Series {
	return make(Series, n)
}
