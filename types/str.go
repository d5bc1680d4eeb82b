package types

import "strconv"

// StrValue is a string constant
type StrValue struct {
	val string
}

// NewStr creates a new string value
func NewStr(s string) StrValue {
	return StrValue{val: s}
}

// Kind returns KindString
func (s StrValue) Kind() ValueKind { return KindString }

// Value returns the underlying Go string
func (s StrValue) Value() string { return s.val }

// ByteAt returns character i as an 8-bit value, or nil when out of range
func (s StrValue) ByteAt(i int) Value {
	if i < 0 || i >= len(s.val) {
		return nil
	}
	return NewInt(8, true, int64(s.val[i]))
}

// WithByte returns a copy with character i replaced. Writes outside the
// string, and writes of the zero byte, are ignored.
func (s StrValue) WithByte(i int, b byte) StrValue {
	if i < 0 || i >= len(s.val) || b == 0 {
		return s
	}
	buf := []byte(s.val)
	buf[i] = b
	return StrValue{val: string(buf)}
}

// Slice returns characters [lower, upper] clamped to the string
func (s StrValue) Slice(lower, upper int32) StrValue {
	if lower < 0 {
		lower = 0
	}
	if int(upper) >= len(s.val) {
		upper = int32(len(s.val)) - 1
	}
	if upper < lower {
		return StrValue{}
	}
	return StrValue{val: s.val[lower : upper+1]}
}

// String returns the quoted literal
func (s StrValue) String() string {
	return strconv.Quote(s.val)
}

// Equal compares strings exactly
func (s StrValue) Equal(other Value) bool {
	o, ok := other.(StrValue)
	return ok && o.val == s.val
}
