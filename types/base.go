package types

// ValueKind identifies the variant held by a constant Value
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindList
	KindMap
	KindUnion
	KindString
	KindUnset
)

// String returns the name of the value kind
func (k ValueKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindUnion:
		return "union"
	case KindString:
		return "string"
	case KindUnset:
		return "unset"
	default:
		return "unknown"
	}
}

// Value is the interface all constant values implement.
// A nil Value means no value was produced; evaluation failed and the
// reason has already been diagnosed.
type Value interface {
	Kind() ValueKind
	String() string   // literal representation
	Equal(Value) bool // deep equality
}

// UnsetValue is the value of things that have no bits of their own,
// such as null class handles and events.
type UnsetValue struct{}

// Kind returns KindUnset
func (UnsetValue) Kind() ValueKind { return KindUnset }

// String returns the literal representation
func (UnsetValue) String() string { return "unset" }

// Equal reports whether other is also unset
func (UnsetValue) Equal(other Value) bool {
	_, ok := other.(UnsetValue)
	return ok
}

// IsQueue reports whether v holds a queue
func IsQueue(v Value) bool {
	l, ok := v.(ListValue)
	return ok && l.queue
}

// Size returns the number of elements or characters in a container value,
// or -1 if v is not a container.
func Size(v Value) int {
	switch c := v.(type) {
	case ListValue:
		return c.Len()
	case MapValue:
		return c.Len()
	case StrValue:
		return len(c.val)
	default:
		return -1
	}
}

// Slice extracts [lower, upper] from an integer (as bits), a list (as
// elements, filling out-of-range slots with def) or a string (as bytes).
func Slice(v Value, upper, lower int32, def Value) Value {
	switch c := v.(type) {
	case IntValue:
		return c.Slice(upper, lower)
	case ListValue:
		return c.Slice(lower, upper, def)
	case StrValue:
		return c.Slice(lower, upper)
	default:
		return nil
	}
}
