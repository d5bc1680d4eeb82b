package binding

import (
	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/syntax"
	"hdlc/types"
)

// UnaryExpression is a unary plus or minus
type UnaryExpression struct {
	exprBase
	Op      syntax.TokenType
	Operand Expression
}

func bindUnary(bc *Context, n *syntax.UnaryExpr) Expression {
	operand := Bind(bc, n.Operand)
	if operand.Bad() {
		return badExpr(operand)
	}
	if !operand.Type().IsUnbounded() && !bc.RequireIntegral(operand) {
		return badExpr(operand)
	}

	e := &UnaryExpression{Op: n.Operator, Operand: operand}
	e.kind = UnaryKind
	e.typ = arithmeticType(operand.Type(), operand.Type())
	e.rng = rangeOf(n)
	return e
}

func (e *UnaryExpression) Eval(ctx *eval.Context) types.Value {
	v, ok := e.Operand.Eval(ctx).(types.IntValue)
	if !ok {
		return nil
	}
	if e.Op == syntax.TOKEN_MINUS {
		v = types.NewInt(v.Width(), v.IsSigned(), 0).Sub(v)
	}
	return convertInt(v, e.typ)
}

// BinaryExpression is +, - or * over integral operands. In a queue
// selector either side may be $.
type BinaryExpression struct {
	exprBase
	Op    syntax.TokenType
	Left  Expression
	Right Expression
}

func bindBinary(bc *Context, n *syntax.BinaryExpr) Expression {
	lhs := Bind(bc, n.Left)
	rhs := Bind(bc, n.Right)
	if lhs.Bad() || rhs.Bad() {
		return badExprAt(nil, rangeOf(n))
	}

	operandOK := func(e Expression) bool {
		return e.Type().IsIntegral() || e.Type().IsUnbounded()
	}
	if !operandOK(lhs) || !operandOK(rhs) {
		bc.AddDiag(diag.BadBinaryExpression, rangeOf(n)).Arg(lhs.Type()).Arg(rhs.Type())
		return badExprAt(nil, rangeOf(n))
	}

	e := &BinaryExpression{Op: n.Operator, Left: lhs, Right: rhs}
	e.kind = BinaryKind
	e.typ = arithmeticType(lhs.Type(), rhs.Type())
	e.rng = rangeOf(n)
	return e
}

func (e *BinaryExpression) Eval(ctx *eval.Context) types.Value {
	l, ok := e.Left.Eval(ctx).(types.IntValue)
	if !ok {
		return nil
	}
	r, ok := e.Right.Eval(ctx).(types.IntValue)
	if !ok {
		return nil
	}

	var v types.IntValue
	switch e.Op {
	case syntax.TOKEN_PLUS:
		v = l.Add(r)
	case syntax.TOKEN_MINUS:
		v = l.Sub(r)
	default:
		v = l.Mul(r)
	}
	return convertInt(v, e.typ)
}

// arithmeticType is the type of a context-free arithmetic result: the
// wider operand width, signed only when both are, four-state when
// either is. $ counts as int.
func arithmeticType(a, b *symbols.Type) *symbols.Type {
	if a.IsUnbounded() {
		a = symbols.Int
	}
	if b.IsUnbounded() {
		b = symbols.Int
	}
	return vectorType(max(a.BitWidth(), b.BitWidth()), a.IsSigned() && b.IsSigned(), a.IsFourState() || b.IsFourState())
}

// ConcatenationExpression is {a, b, ...} over integral operands
type ConcatenationExpression struct {
	exprBase
	Operands []Expression
}

func bindConcatenation(bc *Context, n *syntax.ConcatExpr) Expression {
	operands, typ, ok := bindConcatOperands(bc, n.Elements)
	if !ok {
		return badExprAt(nil, rangeOf(n))
	}
	e := &ConcatenationExpression{Operands: operands}
	e.kind = ConcatenationKind
	e.typ = typ
	e.rng = rangeOf(n)
	return e
}

func bindConcatOperands(bc *Context, elems []syntax.Expr) ([]Expression, *symbols.Type, bool) {
	var width uint32
	fourState := false
	ok := true
	operands := make([]Expression, 0, len(elems))
	for _, el := range elems {
		op := Bind(bc, el)
		if !bc.RequireIntegral(op) {
			ok = false
			continue
		}
		width += op.Type().BitWidth()
		fourState = fourState || op.Type().IsFourState()
		operands = append(operands, op)
	}
	if !ok || width == 0 {
		return nil, nil, false
	}
	return operands, vectorType(width, false, fourState), true
}

func evalConcat(ctx *eval.Context, operands []Expression) (types.IntValue, bool) {
	parts := make([]types.IntValue, len(operands))
	for i, op := range operands {
		v, ok := op.Eval(ctx).(types.IntValue)
		if !ok {
			return types.IntValue{}, false
		}
		parts[i] = v
	}
	return types.Concat(parts...), true
}

func (e *ConcatenationExpression) Eval(ctx *eval.Context) types.Value {
	v, ok := evalConcat(ctx, e.Operands)
	if !ok {
		return nil
	}
	return v
}

// RequireLValue checks every operand; a concatenation is assignable when
// all of its parts are.
func (e *ConcatenationExpression) RequireLValue(bc *Context, prefix Expression) bool {
	ok := true
	for _, op := range e.Operands {
		if !op.RequireLValue(bc, nil) {
			ok = false
		}
	}
	return ok
}

// StreamingConcatenation is {>>{...}} or {<<n{...}}. Right-to-left
// streams reverse the order of n-bit slices, one bit by default.
type StreamingConcatenation struct {
	exprBase
	LeftToRight bool
	SliceSize   int32
	Operands    []Expression
}

func bindStreaming(bc *Context, n *syntax.StreamExpr) Expression {
	size := int32(1)
	if n.SliceSize != nil {
		sz := Bind(bc, n.SliceSize)
		v, ok := bc.EvalInteger(sz)
		if !ok || !bc.RequireGtZero(v, sz.Range()) {
			return badExprAt(nil, rangeOf(n))
		}
		size = v
	}

	operands, typ, ok := bindConcatOperands(bc, n.Elements)
	if !ok {
		return badExprAt(nil, rangeOf(n))
	}
	e := &StreamingConcatenation{LeftToRight: n.LeftToRight, SliceSize: size, Operands: operands}
	e.kind = StreamingConcatenationKind
	e.typ = typ
	e.rng = rangeOf(n)
	return e
}

func (e *StreamingConcatenation) Eval(ctx *eval.Context) types.Value {
	v, ok := evalConcat(ctx, e.Operands)
	if !ok {
		return nil
	}
	if e.LeftToRight {
		return v
	}

	var slices []types.IntValue
	for hi := int32(v.Width()) - 1; hi >= 0; hi -= e.SliceSize {
		lo := max(hi-e.SliceSize+1, 0)
		slices = append(slices, v.Slice(hi, lo))
	}
	for i, j := 0, len(slices)-1; i < j; i, j = i+1, j-1 {
		slices[i], slices[j] = slices[j], slices[i]
	}
	return types.Concat(slices...)
}

func (e *StreamingConcatenation) RequireLValue(bc *Context, prefix Expression) bool {
	ok := true
	for _, op := range e.Operands {
		if !op.RequireLValue(bc, nil) {
			ok = false
		}
	}
	return ok
}

// ConversionExpression converts its operand to an assignment target type
type ConversionExpression struct {
	exprBase
	Operand Expression
}

// convertAssignment checks that e can be assigned to target and wraps
// it in a conversion when the types are not equivalent.
func convertAssignment(bc *Context, e Expression, target *symbols.Type) Expression {
	if e.Bad() || target.IsError() {
		return badExpr(e)
	}
	if e.Type().IsEquivalent(target) {
		return e
	}
	if !e.Type().IsIntegral() || !target.IsIntegral() {
		bc.AddDiag(diag.BadAssignment, e.Range()).Arg(e.Type()).Arg(target)
		return badExpr(e)
	}

	c := &ConversionExpression{Operand: e}
	c.kind = ConversionKind
	c.typ = target
	c.rng = e.Range()
	return c
}

func (e *ConversionExpression) Eval(ctx *eval.Context) types.Value {
	v := e.Operand.Eval(ctx)
	if iv, ok := v.(types.IntValue); ok {
		return convertInt(iv, e.typ)
	}
	return v
}

// convertInt resizes v to the width of t, extending according to v's
// own signedness, and takes on t's signedness and state. Unknown bits
// become zero in two-state targets.
func convertInt(v types.IntValue, t *symbols.Type) types.IntValue {
	w := t.BitWidth()
	if w == 0 {
		return v
	}
	r := v.Resize(w, v.IsSigned())
	if t.IsFourState() {
		return types.NewLogic(w, t.IsSigned(), 0).SetSlice(int32(w)-1, 0, r)
	}
	return types.NewInt(w, t.IsSigned(), 0).SetSlice(int32(w)-1, 0, r)
}
