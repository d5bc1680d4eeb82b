package types

import (
	"fmt"
	"strings"
)

// MapValue holds the contents of an associative array: key/value pairs in
// insertion order plus an optional user-declared default. Updates are
// copy-on-write.
type MapValue struct {
	keys   []Value
	index  map[string]int // key hash -> position in keys/vals
	vals   []Value
	defval Value
}

// keyHash converts a key to a string usable as a Go map key. Integer keys
// hash by numeric value so that keys of different widths still match.
func keyHash(v Value) string {
	switch k := v.(type) {
	case IntValue:
		return fmt.Sprintf("i:%s:%s", k.signedBig().String(), unknownBits(k).String())
	case StrValue:
		return "s:" + k.val
	default:
		return fmt.Sprintf("%T:%s", v, v.String())
	}
}

// NewMap creates an empty associative array value
func NewMap() MapValue {
	return MapValue{index: map[string]int{}}
}

// NewMapWithDefault creates an empty map whose missing keys read as def
func NewMapWithDefault(def Value) MapValue {
	return MapValue{index: map[string]int{}, defval: def}
}

// Kind returns KindMap
func (m MapValue) Kind() ValueKind { return KindMap }

// Len returns the number of entries
func (m MapValue) Len() int { return len(m.keys) }

// Default returns the user-declared default, or nil
func (m MapValue) Default() Value { return m.defval }

// Get looks up a key
func (m MapValue) Get(key Value) (Value, bool) {
	if i, ok := m.index[keyHash(key)]; ok {
		return m.vals[i], true
	}
	return nil, false
}

// Set returns a copy of the map with key bound to v
func (m MapValue) Set(key, v Value) MapValue {
	r := MapValue{
		keys:   append([]Value(nil), m.keys...),
		vals:   append([]Value(nil), m.vals...),
		index:  make(map[string]int, len(m.index)+1),
		defval: m.defval,
	}
	for h, i := range m.index {
		r.index[h] = i
	}
	h := keyHash(key)
	if i, ok := r.index[h]; ok {
		r.vals[i] = v
		return r
	}
	r.index[h] = len(r.keys)
	r.keys = append(r.keys, key)
	r.vals = append(r.vals, v)
	return r
}

// Pairs returns the entries in insertion order
func (m MapValue) Pairs() [][2]Value {
	pairs := make([][2]Value, len(m.keys))
	for i := range m.keys {
		pairs[i] = [2]Value{m.keys[i], m.vals[i]}
	}
	return pairs
}

// String returns the assignment pattern representation
func (m MapValue) String() string {
	parts := make([]string, 0, len(m.keys)+1)
	for i, k := range m.keys {
		parts = append(parts, k.String()+": "+m.vals[i].String())
	}
	if m.defval != nil {
		parts = append(parts, "default: "+m.defval.String())
	}
	return "'{" + strings.Join(parts, ", ") + "}"
}

// Equal compares entries regardless of insertion order
func (m MapValue) Equal(other Value) bool {
	o, ok := other.(MapValue)
	if !ok || len(o.keys) != len(m.keys) {
		return false
	}
	if (m.defval == nil) != (o.defval == nil) {
		return false
	}
	if m.defval != nil && !m.defval.Equal(o.defval) {
		return false
	}
	for i, k := range m.keys {
		v, found := o.Get(k)
		if !found || !v.Equal(m.vals[i]) {
			return false
		}
	}
	return true
}
