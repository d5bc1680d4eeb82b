package eval

import (
	"testing"

	"github.com/nalgeon/be"

	"hdlc/types"
)

func ints(vals ...int64) []types.Value {
	out := make([]types.Value, len(vals))
	for i, v := range vals {
		out[i] = types.NewInt(32, true, v)
	}
	return out
}

func TestLValueBitSlice(t *testing.T) {
	root := types.Value(types.NewInt(8, false, 0))
	lv := NewLValue(&root)
	lv.AddBitSlice(types.ConstantRange{Left: 5, Right: 2})

	lv.Store(types.NewInt(4, false, 0xF))
	be.True(t, root.Equal(types.NewInt(8, false, 0x3C)))
	be.True(t, lv.Load().Equal(types.NewInt(4, false, 0xF)))

	// nested slices are relative to the outer slice
	lv.AddBitSlice(types.ConstantRange{Left: 0, Right: 0})
	lv.Store(types.NewInt(1, false, 0))
	be.True(t, root.Equal(types.NewInt(8, false, 0x38)))
}

func TestLValueIndex(t *testing.T) {
	def := types.NewInt(32, true, 0)
	tests := []struct {
		name  string
		index int32
		want  types.Value
		after types.Value
	}{
		{"in range", 1, types.NewInt(32, true, 20), types.NewQueue(ints(10, 7, 30))},
		{"at size", 3, def, types.NewQueue(ints(10, 20, 30))},
		{"negative", -1, def, types.NewQueue(ints(10, 20, 30))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := types.Value(types.NewQueue(ints(10, 20, 30)))
			lv := NewLValue(&root)
			lv.AddIndex(tt.index, def)
			be.True(t, lv.Load().Equal(tt.want))
			lv.Store(types.NewInt(32, true, 7))
			be.True(t, root.Equal(tt.after))
		})
	}
}

func TestLValueUnionIndex(t *testing.T) {
	root := types.Value(types.NewUnion(0, types.NewInt(32, true, 5)))
	lv := NewLValue(&root)
	lv.AddIndex(1, types.NewInt(8, true, 0))

	be.True(t, lv.Load().Equal(types.NewInt(8, true, 0)))
	lv.Store(types.NewInt(8, true, 3))

	u := root.(types.UnionValue)
	active, ok := u.ActiveMember()
	be.True(t, ok)
	be.Equal(t, active, 1)
	be.True(t, u.Value().Equal(types.NewInt(8, true, 3)))
}

func TestLValueArraySlice(t *testing.T) {
	def := types.NewInt(32, true, 0)
	root := types.Value(types.NewList(ints(1, 2, 3, 4)))
	lv := NewLValue(&root)
	lv.AddArraySlice(types.ConstantRange{Left: 2, Right: 5}, def)

	be.True(t, lv.Load().Equal(types.NewList(ints(3, 4, 0, 0))))
	lv.Store(types.NewList(ints(8, 9, 10, 11)))
	be.True(t, root.Equal(types.NewList(ints(1, 2, 8, 9))))
}

func TestLValueLookup(t *testing.T) {
	key := types.NewStr("a")
	root := types.Value(types.NewMapWithDefault(types.NewInt(32, true, -1)))
	lv := NewLValue(&root)
	lv.AddArrayLookup(key, types.NewInt(32, true, 0))

	be.True(t, lv.Load().Equal(types.NewInt(32, true, -1)))
	lv.Store(types.NewInt(32, true, 4))
	got, ok := root.(types.MapValue).Get(key)
	be.True(t, ok)
	be.True(t, got.Equal(types.NewInt(32, true, 4)))
}

func TestLValueStringIndex(t *testing.T) {
	root := types.Value(types.NewStr("abc"))
	lv := NewLValue(&root)
	lv.AddIndex(1, types.NewInt(8, true, 0))
	be.True(t, lv.Load().Equal(types.NewInt(8, true, 'b')))

	lv.Store(types.NewInt(8, true, 'z'))
	be.True(t, root.Equal(types.NewStr("azc")))
}

func TestLValueResolve(t *testing.T) {
	inner := types.NewUnion(1, types.NewInt(4, false, 9))
	root := types.Value(types.NewList([]types.Value{inner}))
	lv := NewLValue(&root)
	lv.AddIndex(0, nil)
	lv.AddBitSlice(types.ConstantRange{Left: 1, Right: 0})

	be.True(t, lv.Resolve().Equal(inner))
	be.True(t, NewLValue(nil) == nil)
}

func TestEnvironmentNesting(t *testing.T) {
	outer := NewEnvironment()
	inner := NewNestedEnvironment(outer)
	a := newVar("a")
	outer.Define(a, types.NewInt(32, true, 1))

	inner.Set(a, types.NewInt(32, true, 2))
	v, ok := outer.Get(a)
	be.True(t, ok)
	be.True(t, v.Equal(types.NewInt(32, true, 2)))

	_, ok = outer.Get(newVar("b"))
	be.True(t, !ok)
}
