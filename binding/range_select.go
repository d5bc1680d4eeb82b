package binding

import (
	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/syntax"
	"hdlc/trace"
	"hdlc/types"
)

// RangeSelectExpression is value[left:right], value[left+:right] or
// value[left-:right]. For the indexed forms right is the width.
type RangeSelectExpression struct {
	exprBase
	SelectionKind syntax.RangeKind
	Value         Expression
	Left          Expression
	Right         Expression
}

// BindRangeSelect binds a part select over an already bound value
func BindRangeSelect(bc *Context, value Expression, n *syntax.RangeExpr) Expression {
	rng := rangeOf(n)
	if !value.Bad() && value.Type().IsAssociativeArray() {
		bc.AddDiag(diag.RangeSelectAssociative, rng)
		return badExprAt(nil, rng)
	}

	// Queue bounds need not be constant and may use $.
	isQueue := value.Type().IsQueue()
	sub := bc.Without(AllowUnbounded)
	if isQueue {
		sub = bc.With(AllowUnbounded)
	}
	left := Bind(sub, n.Left)
	right := Bind(sub, n.Right)

	e := &RangeSelectExpression{SelectionKind: n.Kind, Value: value, Left: left, Right: right}
	e.kind = RangeSelectKind
	e.typ = symbols.Error
	e.rng = rng

	if value.Bad() || left.Bad() || right.Bad() {
		return badExpr(e)
	}
	if !left.Type().IsUnbounded() && !bc.RequireIntegral(left) {
		return badExpr(e)
	}
	if !right.Type().IsUnbounded() && !bc.RequireIntegral(right) {
		return badExpr(e)
	}

	valueType := value.Type().Canonical()
	elementType := indexedType(bc, value.Type(), rng, true)
	if elementType.IsError() {
		return badExpr(e)
	}

	checkForVectoredSelect(bc, value, rng)

	if !valueType.HasFixedRange() && !bc.IsProcedural() {
		bc.AddDiag(diag.DynamicNotProcedural, rng)
		return badExpr(e)
	}

	if isQueue {
		e.typ = symbols.NewQueue(elementType, 0)
		return e
	}

	rv, ok := bc.EvalInteger(right)
	if !ok {
		return badExpr(e)
	}

	errorRange := spanning(left.Range(), right.Range())
	if !valueType.HasFixedRange() {
		// Dynamic arrays only allow ascending selections.
		if n.Kind == syntax.RangeSimple {
			lv, ok := bc.EvalInteger(left)
			if !ok {
				return badExpr(e)
			}
			sel := types.ConstantRange{Left: lv, Right: rv}
			if sel.IsLittleEndian() && sel.Width() > 1 {
				bc.AddDiag(diag.SelectEndianDynamic, errorRange).Arg(sel.Left).Arg(sel.Right).Arg(value.Type())
				return badExpr(e)
			}
		} else if !bc.RequireGtZero(rv, right.Range()) {
			return badExpr(e)
		}
		e.typ = symbols.NewDynamicArray(elementType)
		return e
	}

	valueRange := valueType.FixedRange()
	validateRange := func(sel types.ConstantRange) bool {
		if !valueRange.ContainsPoint(sel.Left) || !valueRange.ContainsPoint(sel.Right) {
			bc.AddDiag(diag.BadRangeExpression, errorRange).Arg(sel.Left).Arg(sel.Right).Arg(value.Type())
			return false
		}
		return true
	}

	var sel types.ConstantRange
	up := n.Kind == syntax.RangeIndexedUp
	if n.Kind == syntax.RangeSimple {
		lv, ok := bc.EvalInteger(left)
		if !ok {
			return badExpr(e)
		}
		sel = types.ConstantRange{Left: lv, Right: rv}
		if sel.IsLittleEndian() != valueRange.IsLittleEndian() && sel.Width() > 1 {
			bc.AddDiag(diag.SelectEndianMismatch, errorRange).Arg(value.Type())
			return badExpr(e)
		}
		if !bc.InUnevaluatedBranch() && !validateRange(sel) {
			return badExpr(e)
		}
	} else {
		if !bc.RequireGtZero(rv, right.Range()) {
			return badExpr(e)
		}
		if uint32(rv) > valueRange.Width() {
			bc.AddDiag(diag.RangeWidthTooLarge, right.Range()).Arg(rv).Arg(value.Type())
			return badExpr(e)
		}

		var cl types.Value
		if !bc.InUnevaluatedBranch() {
			cl = TryEval(left)
		}
		if cl != nil {
			idx, ok := asInt32(cl)
			if !ok {
				bc.AddDiag(diag.IndexValueInvalid, left.Range()).Arg(cl).Arg(value.Type())
				return badExpr(e)
			}
			sel = types.IndexedRange(idx, rv, valueRange.IsLittleEndian(), up)
			if !validateRange(sel) {
				return badExpr(e)
			}
		} else {
			// Without a constant start the width is still known; anchor
			// the type at the bound the selection grows away from.
			l := valueRange.Upper()
			if up {
				l = valueRange.Lower()
			}
			sel = types.IndexedRange(l, rv, valueRange.IsLittleEndian(), up)
		}
	}

	e.typ = sliceType(valueType, elementType, sel)
	return e
}

func sliceType(valueType, elementType *symbols.Type, sel types.ConstantRange) *symbols.Type {
	if valueType.IsUnpackedArray() {
		return symbols.NewFixedUnpackedArray(elementType, sel)
	}
	return symbols.NewPackedArray(elementType, sel, false)
}

// RangeSelectFromConstant builds value[r.Left:r.Right] for a fixed-range
// value. r must lie within the value's range in the same direction.
func RangeSelectFromConstant(value Expression, r types.ConstantRange) Expression {
	left := newIntegerLiteral(types.NewInt(32, true, int64(r.Left)), value.Range())
	right := newIntegerLiteral(types.NewInt(32, true, int64(r.Right)), value.Range())
	e := &RangeSelectExpression{SelectionKind: syntax.RangeSimple, Value: value, Left: left, Right: right}
	e.kind = RangeSelectKind
	e.typ = symbols.Error
	e.rng = value.Range()
	if value.Bad() || !value.Type().HasFixedRange() {
		return badExpr(e)
	}

	bc := &Context{diags: &diag.Diagnostics{}}
	elementType := indexedType(bc, value.Type(), e.rng, true)
	if elementType.IsError() {
		return badExpr(e)
	}
	e.typ = sliceType(value.Type().Canonical(), elementType, r)
	return e
}

// IsConstantSelect reports whether both bounds fold over a fixed range
func (e *RangeSelectExpression) IsConstantSelect(ctx *eval.Context) bool {
	return e.Value.Type().HasFixedRange() && e.Left.Eval(ctx) != nil && e.Right.Eval(ctx) != nil
}

// evalRange resolves the bounds against the current container value val,
// which may be nil when the container was not loaded. Fixed ranges come
// back as storage positions, as in ElementSelectExpression.evalIndex.
func (e *RangeSelectExpression) evalRange(ctx *eval.Context, val types.Value) (types.ConstantRange, bool) {
	var cl, cr types.Value
	func() {
		if types.IsQueue(val) {
			defer ctx.PushQueueTarget(val)()
		}
		cl = e.Left.Eval(ctx)
		cr = e.Right.Eval(ctx)
	}()
	if cl == nil || cr == nil {
		return types.ConstantRange{}, false
	}

	valueType := e.Value.Type().Canonical()
	up := e.SelectionKind == syntax.RangeIndexedUp
	if valueType.HasFixedRange() {
		valueRange := valueType.FixedRange()
		var result types.ConstantRange
		if e.SelectionKind == syntax.RangeSimple {
			result = e.typ.FixedRange()
		} else {
			l, ok := asInt32(cl)
			if !ok {
				ctx.AddDiag(diag.ConstEvalArrayIndexInvalid, e.rng).Arg(cl).Arg(e.Value.Type())
				return types.ConstantRange{}, false
			}
			w, _ := asInt32(cr)
			result = types.IndexedRange(l, w, valueRange.IsLittleEndian(), up)
		}

		if !valueRange.ContainsPoint(result.Left) || !valueRange.ContainsPoint(result.Right) {
			ctx.AddDiag(diag.ConstEvalPartSelectInvalid, e.rng).Arg(result.Left).Arg(result.Right).Arg(e.Value.Type())
			return types.ConstantRange{}, false
		}

		if !valueType.IsPackedArray() {
			if valueType.IsUnpackedArray() {
				valueRange = valueRange.Reverse()
			}
			return types.ConstantRange{
				Left:  valueRange.TranslateIndex(result.Left),
				Right: valueRange.TranslateIndex(result.Right),
			}, true
		}

		// Packed elements may be wider than one bit.
		width := int32(valueType.ArrayElementType().BitWidth())
		return types.ConstantRange{
			Left:  valueRange.TranslateIndex(result.Left)*width + width - 1,
			Right: valueRange.TranslateIndex(result.Right) * width,
		}, true
	}

	l, ok := asInt32(cl)
	if !ok {
		ctx.AddDiag(diag.ConstEvalArrayIndexInvalid, e.rng).Arg(cl).Arg(e.Value.Type())
		return types.ConstantRange{}, false
	}
	r, ok := asInt32(cr)
	if !ok {
		ctx.AddDiag(diag.ConstEvalArrayIndexInvalid, e.rng).Arg(cr).Arg(e.Value.Type())
		return types.ConstantRange{}, false
	}

	result := types.ConstantRange{Left: l, Right: r}
	if e.SelectionKind != syntax.RangeSimple {
		result = types.IndexedRange(l, r, false, up)
	}

	// Out of bounds selections of dynamic arrays and queues are allowed;
	// the missing slots read as defaults.
	if result.Width() > types.MaxSelectElements {
		ctx.AddDiag(diag.ConstEvalDynamicArrayRange, e.rng).
			Arg(result.Left).Arg(result.Right).Arg(e.Value.Type()).Arg(types.Size(val))
		return types.ConstantRange{}, false
	}
	if val != nil {
		size := types.Size(val)
		if result.Lower() < 0 || int(result.Upper()) >= size {
			ctx.AddDiag(diag.ConstEvalDynamicArrayRange, e.rng).
				Arg(result.Left).Arg(result.Right).Arg(e.Value.Type()).Arg(size)
		}
	}
	return result, true
}

// queueRangeReversed reports a descending queue selection, which selects
// nothing.
func (e *RangeSelectExpression) queueRangeReversed(ctx *eval.Context, r types.ConstantRange) bool {
	if !e.Value.Type().IsQueue() || !r.IsLittleEndian() || r.Left == r.Right {
		return false
	}
	ctx.AddDiag(diag.ConstEvalQueueRange, e.rng).Arg(r.Left).Arg(r.Right)
	return true
}

func (e *RangeSelectExpression) Eval(ctx *eval.Context) types.Value {
	cv := e.Value.Eval(ctx)
	if cv == nil {
		return nil
	}
	r, ok := e.evalRange(ctx, cv)
	if !ok {
		return nil
	}

	var result types.Value
	switch {
	case e.Value.Type().HasFixedRange():
		result = types.Slice(cv, r.Upper(), r.Lower(), nil)
	case e.queueRangeReversed(ctx, r):
		result = e.Value.Type().DefaultValue()
	default:
		result = types.Slice(cv, r.Upper(), r.Lower(), e.typ.ArrayElementType().DefaultValue())
	}

	if trace.IsEnabled() {
		trace.Select(Describe(e), result)
	}
	return result
}

func (e *RangeSelectExpression) EvalLValue(ctx *eval.Context) *eval.LValue {
	lv := e.Value.EvalLValue(ctx)
	if lv == nil {
		return nil
	}

	valueType := e.Value.Type().Canonical()
	var loaded types.Value
	if !valueType.HasFixedRange() {
		loaded = lv.Load()
	}

	r, ok := e.evalRange(ctx, loaded)
	if !ok {
		return nil
	}

	switch {
	case valueType.IsIntegral():
		lv.AddBitSlice(r)
	case valueType.HasFixedRange():
		lv.AddArraySlice(r, nil)
	case e.queueRangeReversed(ctx, r):
		return nil
	default:
		lv.AddArraySlice(r, e.typ.ArrayElementType().DefaultValue())
	}
	return lv
}

func (e *RangeSelectExpression) RequireLValue(bc *Context, prefix Expression) bool {
	return requireSelectLValue(bc, e, e.Value, prefix)
}

func (e *RangeSelectExpression) SymbolReference() *symbols.Symbol {
	return e.Value.SymbolReference()
}
