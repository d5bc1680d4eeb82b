package eval

import "hdlc/types"

type stepKind uint8

const (
	stepBitSlice stepKind = iota
	stepIndex
	stepArraySlice
	stepLookup
)

// step narrows the location addressed by an LValue. def is returned when
// a read misses: an index out of bounds, an inactive union member or an
// absent associative key.
type step struct {
	kind  stepKind
	rng   types.ConstantRange
	index int32
	key   types.Value
	def   types.Value
}

// LValue addresses a location inside a root storage slot through a chain
// of narrowing steps. Steps are only ever appended. A nil *LValue means
// the location could not be resolved; callers propagate it without
// reporting again.
type LValue struct {
	root  *types.Value
	steps []step
}

// NewLValue creates an LValue for a whole storage slot
func NewLValue(root *types.Value) *LValue {
	if root == nil {
		return nil
	}
	return &LValue{root: root}
}

// AddBitSlice narrows to bits [r.Upper():r.Lower()] of an integer
func (lv *LValue) AddBitSlice(r types.ConstantRange) {
	lv.steps = append(lv.steps, step{kind: stepBitSlice, rng: r})
}

// AddIndex narrows to element i of an array, struct, union or string
func (lv *LValue) AddIndex(i int32, def types.Value) {
	lv.steps = append(lv.steps, step{kind: stepIndex, index: i, def: def})
}

// AddArraySlice narrows to elements [r.Lower(), r.Upper()] of an array
func (lv *LValue) AddArraySlice(r types.ConstantRange, def types.Value) {
	lv.steps = append(lv.steps, step{kind: stepArraySlice, rng: r, def: def})
}

// AddArrayLookup narrows to the entry for key of an associative array
func (lv *LValue) AddArrayLookup(key, def types.Value) {
	lv.steps = append(lv.steps, step{kind: stepLookup, key: key, def: def})
}

// Load materializes the current value of the location
func (lv *LValue) Load() types.Value {
	v := *lv.root
	for _, s := range lv.steps {
		if v = readStep(v, s); v == nil {
			return nil
		}
	}
	return v
}

// Resolve returns the value addressed by the element steps, ignoring any
// trailing bit slices. It is used to inspect union discriminants.
func (lv *LValue) Resolve() types.Value {
	n := len(lv.steps)
	for n > 0 && lv.steps[n-1].kind == stepBitSlice {
		n--
	}
	v := *lv.root
	for _, s := range lv.steps[:n] {
		if v = readStep(v, s); v == nil {
			return nil
		}
	}
	return v
}

// Store writes v to the location. Writes that fall outside a container
// are dropped; writing through a union member makes it active.
func (lv *LValue) Store(v types.Value) {
	if nv := writeSteps(*lv.root, lv.steps, v); nv != nil {
		*lv.root = nv
	}
}

func readStep(v types.Value, s step) types.Value {
	switch s.kind {
	case stepBitSlice:
		iv, ok := v.(types.IntValue)
		if !ok {
			return nil
		}
		return iv.Slice(s.rng.Upper(), s.rng.Lower())

	case stepIndex:
		var e types.Value
		switch c := v.(type) {
		case types.ListValue:
			e = c.At(int(s.index))
		case types.StrValue:
			e = c.ByteAt(int(s.index))
		case types.UnionValue:
			if active, ok := c.ActiveMember(); ok && active == int(s.index) {
				e = c.Value()
			}
		default:
			return nil
		}
		if e == nil {
			return s.def
		}
		return e

	case stepArraySlice:
		return types.Slice(v, s.rng.Upper(), s.rng.Lower(), s.def)

	case stepLookup:
		m, ok := v.(types.MapValue)
		if !ok {
			return nil
		}
		if e, ok := m.Get(s.key); ok {
			return e
		}
		if d := m.Default(); d != nil {
			return d
		}
		return s.def
	}
	return nil
}

// writeSteps rebuilds cur with v stored at the location named by steps.
// It returns nil when the write is dropped.
func writeSteps(cur types.Value, steps []step, v types.Value) types.Value {
	if len(steps) == 0 {
		return v
	}
	s, rest := steps[0], steps[1:]

	switch s.kind {
	case stepBitSlice:
		iv, ok := cur.(types.IntValue)
		if !ok {
			return nil
		}
		upper, lower := s.rng.Upper(), s.rng.Lower()
		inner, ok := writeSteps(iv.Slice(upper, lower), rest, v).(types.IntValue)
		if !ok {
			return nil
		}
		return iv.SetSlice(upper, lower, inner)

	case stepIndex:
		i := int(s.index)
		switch c := cur.(type) {
		case types.ListValue:
			e := c.At(i)
			if e == nil {
				return nil
			}
			nv := writeSteps(e, rest, v)
			if nv == nil {
				return nil
			}
			return c.With(i, nv)
		case types.StrValue:
			b := c.ByteAt(i)
			if b == nil {
				return nil
			}
			nv, ok := writeSteps(b, rest, v).(types.IntValue)
			if !ok {
				return nil
			}
			ch, ok := nv.Resize(8, false).AsInt64()
			if !ok {
				return nil
			}
			return c.WithByte(i, byte(ch))
		case types.UnionValue:
			member := s.def
			if active, ok := c.ActiveMember(); ok && active == i {
				member = c.Value()
			}
			if member == nil {
				member = types.UnsetValue{}
			}
			nv := writeSteps(member, rest, v)
			if nv == nil {
				return nil
			}
			return types.NewUnion(i, nv)
		}
		return nil

	case stepArraySlice:
		l, ok := cur.(types.ListValue)
		if !ok {
			return nil
		}
		lower, upper := s.rng.Lower(), s.rng.Upper()
		sub, ok := writeSteps(l.Slice(lower, upper, s.def), rest, v).(types.ListValue)
		if !ok {
			return nil
		}
		out := l
		for k := int64(lower); k <= int64(upper); k++ {
			e := sub.At(int(k - int64(lower)))
			if e == nil {
				break
			}
			out = out.With(int(k), e)
		}
		return out

	case stepLookup:
		m, ok := cur.(types.MapValue)
		if !ok {
			return nil
		}
		e, found := m.Get(s.key)
		if !found {
			e = m.Default()
			if e == nil {
				e = s.def
			}
		}
		nv := writeSteps(e, rest, v)
		if nv == nil {
			return nil
		}
		return m.Set(s.key, nv)
	}
	return nil
}
