package symbols

import (
	"testing"

	"github.com/nalgeon/be"

	"hdlc/types"
)

func TestPackedStructOffsets(t *testing.T) {
	s := NewPackedStruct("pkt", []FieldSpec{
		{Name: "hdr", Type: NewPackedArray(Logic, types.ConstantRange{Left: 3, Right: 0}, false)},
		{Name: "flag", Type: Bit},
		{Name: "body", Type: Byte},
	}, false)

	be.Equal(t, s.BitWidth(), uint32(13))
	be.True(t, s.IsFourState())
	be.True(t, s.IsIntegral())

	tests := []struct {
		name   string
		offset uint32
	}{
		{"hdr", 9},
		{"flag", 8},
		{"body", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := s.Scope().Find(tt.name)
			be.True(t, f != nil)
			be.Equal(t, f.Offset, tt.offset)
			be.Equal(t, f.Kind, FieldSymbol)
		})
	}
}

func TestPackedUnionWidth(t *testing.T) {
	untagged := NewPackedUnion("u", []FieldSpec{{Name: "a", Type: Int}, {Name: "b", Type: Int}}, false)
	be.Equal(t, untagged.BitWidth(), uint32(32))
	be.Equal(t, untagged.TagBits(), uint32(0))

	tagged := NewPackedUnion("t", []FieldSpec{
		{Name: "a", Type: Int},
		{Name: "b", Type: ShortInt},
		{Name: "c", Type: Byte},
	}, true)
	be.Equal(t, tagged.TagBits(), uint32(2))
	be.Equal(t, tagged.BitWidth(), uint32(34))
	be.True(t, tagged.IsTaggedUnion())
	be.Equal(t, tagged.Scope().Find("c").Offset, uint32(2))
}

func TestFixedRange(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
		want types.ConstantRange
	}{
		{"int", Int, types.ConstantRange{Left: 31, Right: 0}},
		{"logic", Logic, types.ConstantRange{Left: 0, Right: 0}},
		{"packed", NewPackedArray(Bit, types.ConstantRange{Left: 0, Right: 7}, false), types.ConstantRange{Left: 0, Right: 7}},
		{"unpacked", NewFixedUnpackedArray(Int, types.ConstantRange{Left: 3, Right: 0}), types.ConstantRange{Left: 3, Right: 0}},
		{"alias", NewAlias("word", NewPackedArray(Logic, types.ConstantRange{Left: 15, Right: 0}, false)), types.ConstantRange{Left: 15, Right: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.True(t, tt.typ.HasFixedRange())
			be.Equal(t, tt.typ.FixedRange(), tt.want)
		})
	}

	be.True(t, !NewDynamicArray(Int).HasFixedRange())
	be.True(t, !NewQueue(Int, 0).HasFixedRange())
	be.True(t, !String.HasFixedRange())
}

func TestDefaultValue(t *testing.T) {
	arr := NewFixedUnpackedArray(Bit, types.ConstantRange{Left: 0, Right: 2})
	be.True(t, arr.DefaultValue().Equal(types.NewList([]types.Value{
		types.NewInt(1, false, 0), types.NewInt(1, false, 0), types.NewInt(1, false, 0),
	})))
	be.True(t, Logic.DefaultValue().Equal(types.NewBits("x")))
	be.True(t, Int.DefaultValue().Equal(types.NewInt(32, true, 0)))
	be.True(t, NewQueue(Int, 0).DefaultValue().Equal(types.NewQueue(nil)))
	be.True(t, String.DefaultValue().Equal(types.NewStr("")))

	u := NewUnpackedUnion("u", []FieldSpec{{Name: "a", Type: Int}, {Name: "b", Type: Byte}}, false)
	be.True(t, u.DefaultValue().Equal(types.NewUnion(0, types.NewInt(32, true, 0))))

	tu := NewUnpackedUnion("tu", []FieldSpec{{Name: "a", Type: Int}}, true)
	_, active := tu.DefaultValue().(types.UnionValue).ActiveMember()
	be.True(t, !active)
}

func TestIsEquivalent(t *testing.T) {
	word := NewPackedArray(Bit, types.ConstantRange{Left: 31, Right: 0}, true)
	tests := []struct {
		name string
		a, b *Type
		want bool
	}{
		{"same", Int, Int, true},
		{"int and signed bit vector", Int, word, true},
		{"int and integer", Int, Integer, false},
		{"alias", NewAlias("myint", Int), Int, true},
		{"queues", NewQueue(Int, 0), NewQueue(NewAlias("i", Int), 0), true},
		{"queue and dynamic", NewQueue(Int, 0), NewDynamicArray(Int), false},
		{"distinct structs", NewUnpackedStruct("a", nil), NewUnpackedStruct("a", nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.a.IsEquivalent(tt.b), tt.want)
		})
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  *Type
		want string
	}{
		{NewPackedArray(Logic, types.ConstantRange{Left: 7, Right: 0}, false), "logic[7:0]"},
		{NewFixedUnpackedArray(NewPackedArray(Bit, types.ConstantRange{Left: 7, Right: 0}, false), types.ConstantRange{Left: 0, Right: 3}), "bit[7:0]$[0:3]"},
		{NewQueue(Int, 0), "int$[$]"},
		{NewDynamicArray(Int), "int$[]"},
		{NewAssociativeArray(Int, String), "int$[string]"},
		{NewAssociativeArray(Byte, nil), "byte$[*]"},
		{NewAlias("word", Int), "word"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			be.Equal(t, tt.typ.String(), tt.want)
		})
	}
}

func TestScopeLookup(t *testing.T) {
	unit := NewScope(ScopeCompilationUnit, "$unit", nil)
	unit.Add(&Symbol{Kind: VariableSymbol, Name: "a", Type: Int})
	proc := NewScope(ScopeProcedural, "blk", unit)
	proc.Add(&Symbol{Kind: VariableSymbol, Name: "b", Type: Int})

	be.True(t, proc.Find("a") == nil)
	be.True(t, proc.Lookup("a") != nil)
	be.Equal(t, proc.Lookup("b").Parent, proc)
	be.True(t, proc.IsWithin(unit))
	be.True(t, !unit.IsWithin(proc))
}

func TestEnumValues(t *testing.T) {
	e := NewEnum("color", NewPackedArray(Logic, types.ConstantRange{Left: 1, Right: 0}, false), []EnumMember{
		{Name: "RED", Value: 0}, {Name: "GREEN", Value: 1}, {Name: "BLUE", Value: 2},
	})
	be.Equal(t, e.BitWidth(), uint32(2))
	be.Equal(t, len(e.EnumValues()), 3)
	blue := e.EnumValues()[2]
	be.Equal(t, blue.Kind, EnumValueSymbol)
	be.True(t, blue.Value.Equal(types.NewLogic(2, false, 2)))
}
