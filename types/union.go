package types

import "fmt"

// UnionValue holds the value of an unpacked union together with the index
// of the member that was last written, if any.
type UnionValue struct {
	active    int
	hasActive bool
	value     Value
}

// NewUnion creates a union whose member at index active holds v
func NewUnion(active int, v Value) UnionValue {
	return UnionValue{active: active, hasActive: true, value: v}
}

// NewInactiveUnion creates a union with no active member
func NewInactiveUnion() UnionValue {
	return UnionValue{value: UnsetValue{}}
}

// Kind returns KindUnion
func (u UnionValue) Kind() ValueKind { return KindUnion }

// ActiveMember returns the index of the active member
func (u UnionValue) ActiveMember() (int, bool) { return u.active, u.hasActive }

// Value returns the stored value of the active member
func (u UnionValue) Value() Value { return u.value }

// String returns a tagged representation
func (u UnionValue) String() string {
	if !u.hasActive {
		return "union{}"
	}
	return fmt.Sprintf("union{%d: %s}", u.active, u.value)
}

// Equal compares the active member and its value
func (u UnionValue) Equal(other Value) bool {
	o, ok := other.(UnionValue)
	if !ok || o.hasActive != u.hasActive {
		return false
	}
	if !u.hasActive {
		return true
	}
	return o.active == u.active && u.value.Equal(o.value)
}
