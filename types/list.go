package types

import "strings"

// ListValue is an ordered sequence of values: the contents of unpacked
// arrays, unpacked structs, dynamic arrays and queues. Updates are
// copy-on-write.
type ListValue struct {
	elements []Value
	queue    bool
}

// NewList creates a list holding elements
func NewList(elements []Value) ListValue {
	return ListValue{elements: elements}
}

// NewQueue creates a queue holding elements
func NewQueue(elements []Value) ListValue {
	return ListValue{elements: elements, queue: true}
}

// Kind returns KindList
func (l ListValue) Kind() ValueKind { return KindList }

// IsQueue reports whether the list is a queue
func (l ListValue) IsQueue() bool { return l.queue }

// Len returns the number of elements
func (l ListValue) Len() int { return len(l.elements) }

// At returns element i (0-based), or nil when out of range
func (l ListValue) At(i int) Value {
	if i < 0 || i >= len(l.elements) {
		return nil
	}
	return l.elements[i]
}

// Elements returns the underlying elements; callers must not modify them
func (l ListValue) Elements() []Value { return l.elements }

// With returns a copy of the list with element i replaced.
// Out of range indices leave the list unchanged.
func (l ListValue) With(i int, v Value) ListValue {
	if i < 0 || i >= len(l.elements) {
		return l
	}
	elems := make([]Value, len(l.elements))
	copy(elems, l.elements)
	elems[i] = v
	return ListValue{elements: elems, queue: l.queue}
}

// MaxSelectElements bounds the number of elements a single range select
// may produce.
const MaxSelectElements = 1 << 20

// Slice returns elements [lower, upper]. Slots outside the list are
// filled with def. Selections wider than MaxSelectElements are truncated.
func (l ListValue) Slice(lower, upper int32, def Value) ListValue {
	if upper < lower {
		return ListValue{elements: []Value{}, queue: l.queue}
	}
	last := min(int64(upper), int64(lower)+MaxSelectElements-1)
	elems := make([]Value, 0, last-int64(lower)+1)
	for i := int64(lower); i <= last; i++ {
		if v := l.At(int(i)); v != nil {
			elems = append(elems, v)
		} else {
			elems = append(elems, def)
		}
	}
	return ListValue{elements: elems, queue: l.queue}
}

// String returns the assignment pattern representation
func (l ListValue) String() string {
	parts := make([]string, len(l.elements))
	for i, e := range l.elements {
		if e == nil {
			parts[i] = "<nil>"
		} else {
			parts[i] = e.String()
		}
	}
	if l.queue {
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "'{" + strings.Join(parts, ", ") + "}"
}

// Equal compares element-wise
func (l ListValue) Equal(other Value) bool {
	o, ok := other.(ListValue)
	if !ok || len(o.elements) != len(l.elements) {
		return false
	}
	for i := range l.elements {
		a, b := l.elements[i], o.elements[i]
		if a == nil || b == nil {
			if a != b {
				return false
			}
			continue
		}
		if !a.Equal(b) {
			return false
		}
	}
	return true
}
