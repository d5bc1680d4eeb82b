package binding

import (
	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/syntax"
	"hdlc/types"
)

// AssignmentPattern is '{...} bound against a target type. Elements are
// held in storage order: struct field ordinals, or array slots counted
// from the left bound. Packed targets concatenate their elements.
type AssignmentPattern struct {
	exprBase
	Elements []Expression

	// Associative targets only
	Keys    []Expression
	Default Expression
}

func newPattern(target *symbols.Type, rng diag.Range) *AssignmentPattern {
	e := &AssignmentPattern{}
	e.kind = AssignmentPatternKind
	e.typ = target
	e.rng = rng
	return e
}

func bindAssignmentPattern(bc *Context, target *symbols.Type, n *syntax.AssignPatternExpr) Expression {
	rng := rangeOf(n)
	t := target.Canonical()
	switch {
	case t.IsAssociativeArray():
		return bindAssociativePattern(bc, target, n)
	case t.IsStruct():
		var elemTypes []*symbols.Type
		for _, f := range t.Fields() {
			elemTypes = append(elemTypes, f.Type)
		}
		return bindSlotPattern(bc, target, n, elemTypes, func(key syntax.Expr) int {
			id, ok := key.(*syntax.IdentifierExpr)
			if !ok {
				return -1
			}
			for i, f := range t.Fields() {
				if f.Name == id.Name {
					return i
				}
			}
			return -1
		})
	case t.IsFixedUnpackedArray() || t.IsPackedArray():
		r := t.FixedRange()
		elemTypes := make([]*symbols.Type, r.Width())
		for i := range elemTypes {
			elemTypes[i] = t.ArrayElementType()
		}
		storage := r.Reverse()
		if t.IsPackedArray() {
			storage = r
		}
		return bindSlotPattern(bc, target, n, elemTypes, func(key syntax.Expr) int {
			idx, ok := bc.EvalInteger(Bind(bc, key))
			if !ok || !r.ContainsPoint(idx) {
				return -1
			}
			if t.IsPackedArray() {
				// packed elements concatenate most significant first
				return int(r.Width()) - 1 - int(storage.TranslateIndex(idx))
			}
			return int(storage.TranslateIndex(idx))
		})
	case t.IsDynamicArray() || t.IsQueue():
		e := newPattern(target, rng)
		for _, item := range n.Items {
			if item.Key != nil || item.Default {
				bc.AddDiag(diag.BadAssignment, rng).Arg("pattern").Arg(target)
				return badExprAt(nil, rng)
			}
			el := BindRValue(bc, t.ArrayElementType(), item.Value)
			if el.Bad() {
				return badExprAt(nil, rng)
			}
			e.Elements = append(e.Elements, el)
		}
		return e
	}

	bc.AddDiag(diag.BadAssignment, rng).Arg("pattern").Arg(target)
	return badExprAt(nil, rng)
}

// bindSlotPattern fills a fixed number of slots from positional, keyed
// and default items. slotOf maps a key to its slot or -1.
func bindSlotPattern(bc *Context, target *symbols.Type, n *syntax.AssignPatternExpr,
	elemTypes []*symbols.Type, slotOf func(syntax.Expr) int) Expression {

	rng := rangeOf(n)
	slots := make([]syntax.Expr, len(elemTypes))
	var def syntax.Expr
	positional := 0
	for _, item := range n.Items {
		switch {
		case item.Default:
			def = item.Value
		case item.Key != nil:
			i := slotOf(item.Key)
			if i < 0 {
				bc.AddDiag(diag.BadAssignment, rangeOf(item.Key)).Arg(syntax.Format(item.Key)).Arg(target)
				return badExprAt(nil, rng)
			}
			slots[i] = item.Value
		default:
			if positional < len(slots) {
				slots[positional] = item.Value
			}
			positional++
		}
	}
	if positional > 0 && positional != len(slots) {
		bc.AddDiag(diag.BadAssignment, rng).Arg("pattern").Arg(target)
		return badExprAt(nil, rng)
	}

	e := newPattern(target, rng)
	for i, s := range slots {
		if s == nil {
			s = def
		}
		if s == nil {
			bc.AddDiag(diag.BadAssignment, rng).Arg("pattern").Arg(target)
			return badExprAt(nil, rng)
		}
		el := BindRValue(bc, elemTypes[i], s)
		if el.Bad() {
			return badExprAt(nil, rng)
		}
		e.Elements = append(e.Elements, el)
	}
	return e
}

func bindAssociativePattern(bc *Context, target *symbols.Type, n *syntax.AssignPatternExpr) Expression {
	rng := rangeOf(n)
	t := target.Canonical()
	e := newPattern(target, rng)
	for _, item := range n.Items {
		value := BindRValue(bc, t.ArrayElementType(), item.Value)
		if value.Bad() {
			return badExprAt(nil, rng)
		}
		if item.Default {
			e.Default = value
			continue
		}
		if item.Key == nil {
			bc.AddDiag(diag.BadAssignment, rng).Arg("pattern").Arg(target)
			return badExprAt(nil, rng)
		}

		var key Expression
		if it := t.AssociativeIndexType(); it != nil {
			key = BindRValue(bc, it, item.Key)
		} else {
			key = Bind(bc, item.Key)
			if !bc.RequireIntegral(key) {
				return badExprAt(nil, rng)
			}
		}
		if key.Bad() {
			return badExprAt(nil, rng)
		}
		e.Keys = append(e.Keys, key)
		e.Elements = append(e.Elements, value)
	}
	return e
}

func (e *AssignmentPattern) Eval(ctx *eval.Context) types.Value {
	values := make([]types.Value, len(e.Elements))
	for i, el := range e.Elements {
		if values[i] = el.Eval(ctx); values[i] == nil {
			return nil
		}
	}

	t := e.typ.Canonical()
	switch {
	case t.IsAssociativeArray():
		m := types.NewMap()
		if e.Default != nil {
			d := e.Default.Eval(ctx)
			if d == nil {
				return nil
			}
			m = types.NewMapWithDefault(d)
		}
		for i, k := range e.Keys {
			key := k.Eval(ctx)
			if key == nil {
				return nil
			}
			m = m.Set(key, values[i])
		}
		return m

	case t.IsIntegral():
		parts := make([]types.IntValue, len(values))
		for i, v := range values {
			parts[i] = v.(types.IntValue)
		}
		return convertInt(types.Concat(parts...), e.typ)

	case t.IsQueue():
		return types.NewQueue(values)
	}
	return types.NewList(values)
}
