package binding

import (
	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/types"
)

// ExpressionKind identifies the concrete node behind an Expression
type ExpressionKind int

const (
	InvalidKind ExpressionKind = iota
	IntegerLiteralKind
	StringLiteralKind
	UnboundedLiteralKind
	NamedValueKind
	UnaryKind
	BinaryKind
	ConcatenationKind
	StreamingConcatenationKind
	ConversionKind
	AssignmentPatternKind
	ElementSelectKind
	RangeSelectKind
	MemberAccessKind
	CallKind
)

// String returns the kind name
func (k ExpressionKind) String() string {
	switch k {
	case InvalidKind:
		return "Invalid"
	case IntegerLiteralKind:
		return "IntegerLiteral"
	case StringLiteralKind:
		return "StringLiteral"
	case UnboundedLiteralKind:
		return "UnboundedLiteral"
	case NamedValueKind:
		return "NamedValue"
	case UnaryKind:
		return "Unary"
	case BinaryKind:
		return "Binary"
	case ConcatenationKind:
		return "Concatenation"
	case StreamingConcatenationKind:
		return "StreamingConcatenation"
	case ConversionKind:
		return "Conversion"
	case AssignmentPatternKind:
		return "AssignmentPattern"
	case ElementSelectKind:
		return "ElementSelect"
	case RangeSelectKind:
		return "RangeSelect"
	case MemberAccessKind:
		return "MemberAccess"
	case CallKind:
		return "Call"
	default:
		return "Unknown"
	}
}

// Expression is a bound, immutable expression node. Nodes never hold
// evaluation state; everything mutable lives in the eval.Context passed
// to Eval and EvalLValue, so a node may be evaluated any number of times.
type Expression interface {
	Kind() ExpressionKind
	Type() *symbols.Type
	Range() diag.Range
	Bad() bool

	// Eval computes the constant value, or nil when evaluation failed
	// and the failure has been diagnosed in ctx.
	Eval(ctx *eval.Context) types.Value

	// EvalLValue resolves the storage location the expression names,
	// or nil when it cannot be resolved.
	EvalLValue(ctx *eval.Context) *eval.LValue

	// RequireLValue checks that the expression may be assigned and
	// registers the driver. prefix is the longest static prefix found
	// so far by an enclosing select, or nil.
	RequireLValue(bc *Context, prefix Expression) bool

	// SymbolReference returns the symbol the expression ultimately
	// names, if any.
	SymbolReference() *symbols.Symbol
}

type exprBase struct {
	kind ExpressionKind
	typ  *symbols.Type
	rng  diag.Range
}

func (e *exprBase) Kind() ExpressionKind { return e.kind }
func (e *exprBase) Type() *symbols.Type  { return e.typ }
func (e *exprBase) Range() diag.Range    { return e.rng }
func (e *exprBase) Bad() bool            { return e.kind == InvalidKind || e.typ.IsError() }

func (e *exprBase) EvalLValue(ctx *eval.Context) *eval.LValue {
	ctx.AddDiag(diag.ConstEvalNotConstant, e.rng)
	return nil
}

func (e *exprBase) RequireLValue(bc *Context, prefix Expression) bool {
	bc.AddDiag(diag.ExpressionNotAssignable, e.rng)
	return false
}

func (e *exprBase) SymbolReference() *symbols.Symbol { return nil }

// InvalidExpression stands in for anything that failed to bind. It
// keeps the partially bound child, if there was one, for inspection.
type InvalidExpression struct {
	exprBase
	Child Expression
}

func (e *InvalidExpression) Eval(ctx *eval.Context) types.Value { return nil }

func (e *InvalidExpression) EvalLValue(ctx *eval.Context) *eval.LValue { return nil }

func (e *InvalidExpression) RequireLValue(bc *Context, prefix Expression) bool { return false }

// badExpr wraps child in an InvalidExpression. No diagnostic is issued;
// the caller has already reported why binding failed.
func badExpr(child Expression) Expression {
	e := &InvalidExpression{Child: child}
	e.kind = InvalidKind
	e.typ = symbols.Error
	if child != nil {
		e.rng = child.Range()
	}
	return e
}

func badExprAt(child Expression, rng diag.Range) Expression {
	e := badExpr(child)
	e.(*InvalidExpression).rng = rng
	return e
}

// spanning returns the range from the start of a to the end of b
func spanning(a, b diag.Range) diag.Range {
	return diag.Range{Start: a.Start, End: b.End}
}

func asInt32(v types.Value) (int32, bool) {
	iv, ok := v.(types.IntValue)
	if !ok {
		return 0, false
	}
	return iv.AsInt32()
}
