package elab

import (
	"hdlc/binding"
	"hdlc/symbols"
	"hdlc/syntax"
	"hdlc/types"
)

// constInt evaluates a dimension bound or enum value
func (d *Design) constInt(scope *symbols.Scope, e syntax.Expr) (int32, error) {
	bc := d.bc.InScope(scope).With(binding.NonProcedural)
	v, ok := bc.EvalInteger(binding.Bind(bc, e))
	if !ok {
		return 0, errorAt(e, "%s is not a constant integer", syntax.Format(e))
	}
	return v, nil
}

func (d *Design) constRange(scope *symbols.Scope, dim *syntax.Dimension) (types.ConstantRange, error) {
	left, err := d.constInt(scope, dim.Left)
	if err != nil {
		return types.ConstantRange{}, err
	}
	if dim.Kind == syntax.DimSize {
		if left <= 0 {
			return types.ConstantRange{}, errorAt(dim, "array size must be positive")
		}
		return types.ConstantRange{Left: 0, Right: left - 1}, nil
	}
	right, err := d.constInt(scope, dim.Right)
	if err != nil {
		return types.ConstantRange{}, err
	}
	return types.ConstantRange{Left: left, Right: right}, nil
}

func (d *Design) resolveType(scope *symbols.Scope, dt syntax.DataType) (*symbols.Type, error) {
	switch n := dt.(type) {
	case *syntax.BuiltinType:
		return d.resolveBuiltin(scope, n)

	case *syntax.NamedType:
		t, ok := d.types[n.Name]
		if !ok {
			return nil, errorAt(n, "unknown type '%s'", n.Name)
		}
		return d.applyPackedDims(scope, t, n.Packed, false)

	case *syntax.StructType:
		return d.resolveStruct(scope, n)

	case *syntax.EnumType:
		return d.resolveEnum(scope, n)
	}
	return nil, errorAt(dt, "unsupported type")
}

func (d *Design) resolveBuiltin(scope *symbols.Scope, n *syntax.BuiltinType) (*symbols.Type, error) {
	var t *symbols.Type
	switch n.Keyword {
	case syntax.TOKEN_LOGIC, syntax.TOKEN_REG:
		t = symbols.Logic
	case syntax.TOKEN_BIT:
		t = symbols.Bit
	case syntax.TOKEN_BYTE:
		t = symbols.Byte
	case syntax.TOKEN_SHORTINT:
		t = symbols.ShortInt
	case syntax.TOKEN_INT:
		t = symbols.Int
	case syntax.TOKEN_LONGINT:
		t = symbols.LongInt
	case syntax.TOKEN_INTEGER:
		t = symbols.Integer
	case syntax.TOKEN_STRING_KW:
		t = symbols.String
	case syntax.TOKEN_EVENT:
		t = symbols.Event
	case syntax.TOKEN_VOID:
		t = symbols.Void
	default:
		return nil, errorAt(n, "unsupported type keyword")
	}

	signed := t.IsSigned()
	switch n.Signing {
	case syntax.SigningSigned:
		signed = true
	case syntax.SigningUnsigned:
		signed = false
	}

	if len(n.Packed) == 0 {
		if signed == t.IsSigned() || !t.IsIntegral() {
			return t, nil
		}
		// int unsigned and friends become plain vectors of the same shape
		elem := symbols.Bit
		if t.IsFourState() {
			elem = symbols.Logic
		}
		return symbols.NewPackedArray(elem, types.ConstantRange{Left: int32(t.BitWidth()) - 1, Right: 0}, signed), nil
	}
	return d.applyPackedDims(scope, t, n.Packed, signed)
}

// applyPackedDims wraps t in packed dimensions; the last dimension
// varies fastest.
func (d *Design) applyPackedDims(scope *symbols.Scope, t *symbols.Type, dims []*syntax.Dimension, signed bool) (*symbols.Type, error) {
	if len(dims) > 0 && !t.IsIntegral() {
		return nil, errorAt(dims[0], "packed dimensions require an integral type, not %s", t)
	}
	for i := len(dims) - 1; i >= 0; i-- {
		r, err := d.constRange(scope, dims[i])
		if err != nil {
			return nil, err
		}
		t = symbols.NewPackedArray(t, r, signed && i == 0)
	}
	return t, nil
}

// applyUnpackedDims wraps t in unpacked dimensions; the last dimension
// varies fastest.
func (d *Design) applyUnpackedDims(scope *symbols.Scope, t *symbols.Type, dims []*syntax.Dimension) (*symbols.Type, error) {
	for i := len(dims) - 1; i >= 0; i-- {
		dim := dims[i]
		switch dim.Kind {
		case syntax.DimRange, syntax.DimSize:
			r, err := d.constRange(scope, dim)
			if err != nil {
				return nil, err
			}
			t = symbols.NewFixedUnpackedArray(t, r)
		case syntax.DimDynamic:
			t = symbols.NewDynamicArray(t)
		case syntax.DimQueue:
			var bound int32
			if dim.Left != nil {
				b, err := d.constInt(scope, dim.Left)
				if err != nil {
					return nil, err
				}
				bound = b
			}
			t = symbols.NewQueue(t, uint32(max(bound, 0)))
		case syntax.DimAssoc:
			index, err := d.resolveType(scope, dim.Index)
			if err != nil {
				return nil, err
			}
			t = symbols.NewAssociativeArray(t, index)
		case syntax.DimWildcard:
			t = symbols.NewAssociativeArray(t, nil)
		}
	}
	return t, nil
}

func (d *Design) resolveStruct(scope *symbols.Scope, n *syntax.StructType) (*symbols.Type, error) {
	var specs []symbols.FieldSpec
	for _, m := range n.Members {
		mt, err := d.resolveType(scope, m.Type)
		if err != nil {
			return nil, err
		}
		for _, decl := range m.Declarators {
			ft, err := d.applyUnpackedDims(scope, mt, decl.Dims)
			if err != nil {
				return nil, err
			}
			if n.Packed && !ft.IsIntegral() {
				return nil, errorAt(decl, "packed member %s must be integral", decl.Name)
			}
			specs = append(specs, symbols.FieldSpec{Name: decl.Name, Type: ft})
		}
	}

	var t *symbols.Type
	switch {
	case n.Packed && n.Union:
		t = symbols.NewPackedUnion("", specs, n.Tagged)
	case n.Packed:
		t = symbols.NewPackedStruct("", specs, n.Signing == syntax.SigningSigned)
	case n.Union:
		t = symbols.NewUnpackedUnion("", specs, n.Tagged)
	default:
		if len(n.Dims) > 0 {
			return nil, errorAt(n, "packed dimensions on an unpacked struct")
		}
		t = symbols.NewUnpackedStruct("", specs)
	}
	return d.applyPackedDims(scope, t, n.Dims, false)
}

// resolveEnum builds the enum type and declares its enumerators in scope.
// Values without an initializer follow the previous one.
func (d *Design) resolveEnum(scope *symbols.Scope, n *syntax.EnumType) (*symbols.Type, error) {
	base := symbols.Int
	if n.Base != nil {
		b, err := d.resolveType(scope, n.Base)
		if err != nil {
			return nil, err
		}
		if !b.IsIntegral() {
			return nil, errorAt(n.Base, "enum base type %s is not integral", b)
		}
		base = b
	}

	var members []symbols.EnumMember
	next := int64(0)
	for _, item := range n.Items {
		if item.Value != nil {
			v, err := d.constInt(scope, item.Value)
			if err != nil {
				return nil, err
			}
			next = int64(v)
		}
		members = append(members, symbols.EnumMember{Name: item.Name, Value: next})
		next++
	}

	t := symbols.NewEnum("", base, members)
	for i, v := range t.EnumValues() {
		v.Loc = locOf(n.Items[i])
		scope.Add(v)
	}
	return d.applyPackedDims(scope, t, n.Dims, false)
}
