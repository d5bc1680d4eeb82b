package binding

import (
	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/syntax"
	"hdlc/trace"
	"hdlc/types"
)

// ElementSelectExpression is value[selector]
type ElementSelectExpression struct {
	exprBase
	Value    Expression
	Selector Expression
}

// noElement is the index evalIndex returns for a dynamic container
// access that is out of bounds. Reads through it yield the result type's
// default and writes through it are dropped.
var noElement = types.ConstantRange{Left: -1, Right: -1}

// indexedType computes the type of one element selected from valueType.
// Strings yield bytes unless a range is being selected.
func indexedType(bc *Context, valueType *symbols.Type, rng diag.Range, isRange bool) *symbols.Type {
	ct := valueType.Canonical()
	switch {
	case ct.IsArray():
		return ct.ArrayElementType()
	case ct.IsString() && !isRange:
		return symbols.Byte
	case !ct.IsIntegral():
		if !ct.IsError() {
			bc.AddDiag(diag.BadIndexExpression, rng).Arg(valueType)
		}
		return symbols.Error
	case ct.IsScalar():
		bc.AddDiag(diag.CannotIndexScalar, rng)
		return symbols.Error
	case ct.IsFourState():
		return symbols.Logic
	default:
		return symbols.Bit
	}
}

// checkForVectoredSelect warns about selecting from a net declared
// vectored, which promises the net is only used as a whole.
func checkForVectoredSelect(bc *Context, value Expression, rng diag.Range) {
	nv, ok := value.(*NamedValue)
	if !ok || nv.Symbol.Kind != symbols.NetSymbol || !nv.Symbol.Vectored {
		return
	}
	bc.AddDiag(diag.SelectOfVectoredNet, rng).Note(diag.NoteDeclarationHere, nv.Symbol.Loc)
}

// BindElementSelect binds value[index]. value has already been bound
// self-determined; rng covers the whole select.
func BindElementSelect(bc *Context, value Expression, index syntax.Expr, rng diag.Range) Expression {
	if value.Bad() {
		return badExpr(value)
	}

	checkForVectoredSelect(bc, value, rng)
	resultType := indexedType(bc, value.Type(), rng, false)

	valueType := value.Type().Canonical()
	var selector Expression
	if it := valueType.AssociativeIndexType(); valueType.IsAssociativeArray() && it != nil {
		selector = BindRValue(bc, it, index)
	} else {
		sub := bc.Without(AllowUnbounded)
		if valueType.IsQueue() {
			sub = bc.With(AllowUnbounded)
		}
		selector = Bind(sub, index)
		if !selector.Bad() && !selector.Type().IsUnbounded() && !bc.RequireIntegral(selector) {
			return badExprAt(value, rng)
		}
	}

	e := &ElementSelectExpression{Value: value, Selector: selector}
	e.kind = ElementSelectKind
	e.typ = resultType
	e.rng = rng
	if selector.Bad() || resultType.IsError() {
		return badExpr(e)
	}

	// A constant index into a fixed range is checked here, once, so that
	// evaluation never sees it out of bounds.
	if valueType.HasFixedRange() && !bc.InUnevaluatedBranch() {
		if cv := TryEval(selector); cv != nil {
			idx, ok := asInt32(cv)
			if !ok || !valueType.FixedRange().ContainsPoint(idx) {
				bc.AddDiag(diag.IndexValueInvalid, selector.Range()).Arg(cv).Arg(value.Type())
				return badExpr(e)
			}
		}
	} else if !valueType.HasFixedRange() && !bc.IsProcedural() {
		bc.AddDiag(diag.DynamicNotProcedural, rng)
		return badExpr(e)
	}
	return e
}

// ElementSelectFromConstant builds value[index] for a literal index,
// bypassing syntax. The index must already be known to be in range.
func ElementSelectFromConstant(value Expression, index int32) Expression {
	if value.Bad() {
		return badExpr(value)
	}
	sel := newIntegerLiteral(types.NewInt(32, true, int64(index)), value.Range())
	e := &ElementSelectExpression{Value: value, Selector: sel}
	e.kind = ElementSelectKind
	e.rng = value.Range()

	bc := &Context{diags: &diag.Diagnostics{}}
	e.typ = indexedType(bc, value.Type(), e.rng, false)
	if e.typ.IsError() {
		return badExpr(e)
	}
	return e
}

// IsConstantSelect reports whether the select addresses a location fixed
// at compile time: a fixed-range base and a selector that folds.
func (e *ElementSelectExpression) IsConstantSelect(ctx *eval.Context) bool {
	if !e.Value.Type().HasFixedRange() {
		return false
	}
	return e.Selector.Eval(ctx) != nil
}

// evalIndex resolves the selector against the current container value
// val, which may be nil when the container was not loaded. Fixed ranges
// come back as storage positions: bit offsets for integral bases and
// element slots for unpacked arrays. Associative arrays return the key.
func (e *ElementSelectExpression) evalIndex(ctx *eval.Context, val types.Value) (types.ConstantRange, types.Value, bool) {
	var cs types.Value
	func() {
		if types.IsQueue(val) {
			defer ctx.PushQueueTarget(val)()
		}
		cs = e.Selector.Eval(ctx)
	}()
	if cs == nil {
		return types.ConstantRange{}, nil, false
	}

	valueType := e.Value.Type().Canonical()
	if valueType.HasFixedRange() {
		valueRange := valueType.FixedRange()
		idx, ok := asInt32(cs)
		if !ok || !valueRange.ContainsPoint(idx) {
			ctx.AddDiag(diag.ConstEvalArrayIndexInvalid, e.rng).Arg(cs).Arg(e.Value.Type())
			return types.ConstantRange{}, nil, false
		}

		if !valueType.IsPackedArray() {
			// unpacked arrays are stored left bound first
			if valueType.IsUnpackedArray() {
				valueRange = valueRange.Reverse()
			}
			i := valueRange.TranslateIndex(idx)
			return types.ConstantRange{Left: i, Right: i}, nil, true
		}

		width := int32(e.typ.BitWidth())
		i := valueRange.TranslateIndex(idx) * width
		return types.ConstantRange{Left: i + width - 1, Right: i}, nil, true
	}

	if valueType.IsAssociativeArray() {
		if iv, ok := cs.(types.IntValue); ok && iv.HasUnknown() {
			ctx.AddDiag(diag.ConstEvalAssociativeIndexInvalid, e.rng).Arg(cs)
			return types.ConstantRange{}, nil, false
		}
		return types.ConstantRange{}, cs, true
	}

	idx, ok := asInt32(cs)
	if !ok {
		ctx.AddDiag(diag.ConstEvalArrayIndexInvalid, e.rng).Arg(cs).Arg(e.Value.Type())
		return types.ConstantRange{}, nil, false
	}
	if val == nil {
		return types.ConstantRange{Left: idx, Right: idx}, nil, true
	}

	size := types.Size(val)
	if idx < 0 || int(idx) >= size {
		if valueType.IsString() {
			ctx.AddDiag(diag.ConstEvalStringIndexInvalid, e.rng).Arg(cs).Arg(size)
		} else {
			ctx.AddDiag(diag.ConstEvalDynamicArrayIndex, e.rng).Arg(cs).Arg(e.Value.Type()).Arg(size)
		}
		return noElement, nil, true
	}
	return types.ConstantRange{Left: idx, Right: idx}, nil, true
}

func (e *ElementSelectExpression) Eval(ctx *eval.Context) types.Value {
	cv := e.Value.Eval(ctx)
	if cv == nil {
		return nil
	}
	r, key, ok := e.evalIndex(ctx, cv)
	if !ok {
		return nil
	}

	result := e.read(ctx, cv, r, key)
	if trace.IsEnabled() {
		trace.Select(Describe(e), result)
	}
	return result
}

func (e *ElementSelectExpression) read(ctx *eval.Context, cv types.Value, r types.ConstantRange, key types.Value) types.Value {
	valueType := e.Value.Type().Canonical()
	switch c := cv.(type) {
	case types.IntValue:
		return c.Slice(r.Left, r.Right)

	case types.MapValue:
		if v, found := c.Get(key); found {
			return v
		}
		if d := c.Default(); d != nil {
			return d
		}
		ctx.AddDiag(diag.ConstEvalAssociativeElementNotFound, e.rng).Arg(key)
		return e.typ.DefaultValue()

	case types.ListValue:
		if r == noElement && !valueType.HasFixedRange() {
			return e.typ.DefaultValue()
		}
		return c.At(int(r.Left))

	case types.StrValue:
		if r == noElement {
			return e.typ.DefaultValue()
		}
		return c.ByteAt(int(r.Left))
	}
	return nil
}

func (e *ElementSelectExpression) EvalLValue(ctx *eval.Context) *eval.LValue {
	lv := e.Value.EvalLValue(ctx)
	if lv == nil {
		return nil
	}

	valueType := e.Value.Type().Canonical()
	var loaded types.Value
	if !valueType.HasFixedRange() {
		loaded = lv.Load()
	}

	r, key, ok := e.evalIndex(ctx, loaded)
	if !ok {
		return nil
	}

	switch {
	case valueType.IsIntegral():
		lv.AddBitSlice(r)
	case valueType.IsAssociativeArray():
		lv.AddArrayLookup(key, e.typ.DefaultValue())
	default:
		lv.AddIndex(r.Left, e.typ.DefaultValue())
	}
	return lv
}

func (e *ElementSelectExpression) RequireLValue(bc *Context, prefix Expression) bool {
	return requireSelectLValue(bc, e, e.Value, prefix)
}

func (e *ElementSelectExpression) SymbolReference() *symbols.Symbol {
	return e.Value.SymbolReference()
}
