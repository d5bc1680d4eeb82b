package binding

import (
	"testing"

	"github.com/nalgeon/be"

	"hdlc/symbols"
	"hdlc/types"
)

func TestTranslateUnionMember(t *testing.T) {
	i32 := func(v int64) types.Value { return types.NewInt(32, true, v) }
	b8 := func(v int64) types.Value { return types.NewInt(8, true, v) }

	from := symbols.NewUnpackedStruct("", []symbols.FieldSpec{
		{Name: "a", Type: symbols.Int},
		{Name: "b", Type: symbols.Int},
		{Name: "c", Type: symbols.Byte},
	})
	v := types.NewList([]types.Value{i32(1), i32(2), b8(3)})

	tests := []struct {
		name string
		to   *symbols.Type
		want types.Value
	}{
		{
			"prefix",
			symbols.NewUnpackedStruct("", []symbols.FieldSpec{{Name: "x", Type: symbols.Int}}),
			types.NewList([]types.Value{i32(1)}),
		},
		{
			"same shape",
			symbols.NewUnpackedStruct("", []symbols.FieldSpec{
				{Name: "x", Type: symbols.Int},
				{Name: "y", Type: symbols.Int},
				{Name: "z", Type: symbols.Byte},
			}),
			v,
		},
		{
			"fields regrouped as array",
			symbols.NewUnpackedStruct("", []symbols.FieldSpec{
				{Name: "pair", Type: symbols.NewFixedUnpackedArray(symbols.Int, types.ConstantRange{Left: 0, Right: 1})},
			}),
			nil,
		},
		{
			"leaf type differs",
			symbols.NewUnpackedStruct("", []symbols.FieldSpec{{Name: "x", Type: symbols.Byte}}),
			nil,
		},
		{
			"longer than source",
			symbols.NewUnpackedStruct("", []symbols.FieldSpec{
				{Name: "x", Type: symbols.Int},
				{Name: "y", Type: symbols.Int},
				{Name: "z", Type: symbols.Byte},
				{Name: "w", Type: symbols.Byte},
			}),
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateUnionMember(from, v, tt.to)
			if tt.want == nil {
				be.True(t, got == nil)
				return
			}
			be.True(t, got != nil)
			be.True(t, got.Equal(tt.want))
		})
	}

	t.Run("matching arrays", func(t *testing.T) {
		pair := symbols.NewFixedUnpackedArray(symbols.Int, types.ConstantRange{Left: 0, Right: 1})
		src := symbols.NewUnpackedStruct("", []symbols.FieldSpec{{Name: "p", Type: pair}, {Name: "c", Type: symbols.Byte}})
		dst := symbols.NewUnpackedStruct("", []symbols.FieldSpec{{Name: "q", Type: pair}})
		arr := types.NewList([]types.Value{i32(1), i32(2)})

		got := translateUnionMember(src, types.NewList([]types.Value{arr, b8(3)}), dst)
		be.True(t, got != nil)
		be.True(t, got.Equal(types.NewList([]types.Value{arr})))

		// an array is one leaf, so it does not line up with separate fields
		be.True(t, translateUnionMember(dst, types.NewList([]types.Value{arr}), from) == nil)
	})

	t.Run("scalar", func(t *testing.T) {
		got := translateUnionMember(symbols.Int, i32(5), symbols.Int)
		be.True(t, got.Equal(i32(5)))
	})
}

func TestFlattenLeaves(t *testing.T) {
	inner := symbols.NewUnpackedStruct("", []symbols.FieldSpec{
		{Name: "p", Type: symbols.Int},
		{Name: "q", Type: symbols.Byte},
	})
	outer := symbols.NewUnpackedStruct("", []symbols.FieldSpec{
		{Name: "a", Type: inner},
		{Name: "b", Type: symbols.Int},
	})
	v := types.NewList([]types.Value{
		types.NewList([]types.Value{types.NewInt(32, true, 1), types.NewInt(8, true, 2)}),
		types.NewInt(32, true, 3),
	})

	leaves := flattenLeaves(outer, v)
	be.Equal(t, len(leaves), 3)
	be.True(t, leaves[0].typ == symbols.Int)
	be.True(t, leaves[1].typ == symbols.Byte)
	be.True(t, leaves[2].val.Equal(types.NewInt(32, true, 3)))
}
