package binding

import (
	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/types"
)

// IntegerLiteral is a sized or unsized integer constant
type IntegerLiteral struct {
	exprBase
	Value types.IntValue
}

func newIntegerLiteral(v types.IntValue, rng diag.Range) *IntegerLiteral {
	e := &IntegerLiteral{Value: v}
	e.kind = IntegerLiteralKind
	e.typ = typeOfInt(v)
	e.rng = rng
	return e
}

func (e *IntegerLiteral) Eval(ctx *eval.Context) types.Value { return e.Value }

// StringLiteral is a quoted string
type StringLiteral struct {
	exprBase
	Value string
}

func (e *StringLiteral) Eval(ctx *eval.Context) types.Value { return types.NewStr(e.Value) }

// UnboundedLiteral is $, the last index of the queue being selected from
type UnboundedLiteral struct {
	exprBase
}

func (e *UnboundedLiteral) Eval(ctx *eval.Context) types.Value {
	target := ctx.QueueTarget()
	if target == nil {
		ctx.AddDiag(diag.ConstEvalNoQueueTarget, e.rng)
		return nil
	}
	return types.NewInt(32, true, int64(types.Size(target)-1))
}

// NamedValue is a reference to a declared value symbol
type NamedValue struct {
	exprBase
	Symbol *symbols.Symbol
}

func newNamedValue(sym *symbols.Symbol, rng diag.Range) *NamedValue {
	e := &NamedValue{Symbol: sym}
	e.kind = NamedValueKind
	e.typ = sym.Type
	if e.typ == nil {
		e.typ = symbols.Void
	}
	e.rng = rng
	return e
}

func (e *NamedValue) SymbolReference() *symbols.Symbol { return e.Symbol }

func (e *NamedValue) Eval(ctx *eval.Context) types.Value {
	sym := e.Symbol
	switch sym.Kind {
	case symbols.ParameterSymbol, symbols.EnumValueSymbol:
		return sym.Value
	case symbols.IteratorSymbol:
		v, _, ok := ctx.Iterator(sym)
		if !ok {
			ctx.AddDiag(diag.ConstEvalNotConstant, e.rng)
			return nil
		}
		return v
	case symbols.CoverpointSymbol, symbols.CoverCrossSymbol:
		ctx.AddDiag(diag.ConstEvalNotConstant, e.rng)
		return nil
	}

	slot := ctx.Slot(sym)
	if slot == nil {
		ctx.AddDiag(diag.ConstEvalNonConstVariable, e.rng).Arg(sym.Name)
		return nil
	}
	return *slot
}

func (e *NamedValue) EvalLValue(ctx *eval.Context) *eval.LValue {
	lv := eval.NewLValue(ctx.Slot(e.Symbol))
	if lv == nil {
		ctx.AddDiag(diag.ConstEvalNonConstVariable, e.rng).Arg(e.Symbol.Name)
	}
	return lv
}

func (e *NamedValue) RequireLValue(bc *Context, prefix Expression) bool {
	sym := e.Symbol
	switch sym.Kind {
	case symbols.ModportPortSymbol:
		return true
	case symbols.NetSymbol:
		if bc.IsProcedural() {
			bc.AddDiag(diag.ProceduralNetAssign, e.rng).Arg(sym.Name).Note(diag.NoteDeclarationHere, sym.Loc)
			return false
		}
	case symbols.VariableSymbol, symbols.FieldSymbol, symbols.ClassPropertySymbol:
	default:
		bc.AddDiag(diag.ExpressionNotAssignable, e.rng).Note(diag.NoteDeclarationHere, sym.Loc)
		return false
	}

	if prefix == nil {
		prefix = e
	}
	bc.Drivers.Add(bc, sym, prefix)
	return checkVariableAssignment(bc, sym, e.rng)
}

// checkVariableAssignment rejects writes to const variables
func checkVariableAssignment(bc *Context, sym *symbols.Symbol, rng diag.Range) bool {
	if sym.Const {
		bc.AddDiag(diag.AssignmentToConst, rng).Arg(sym.Name).Note(diag.NoteDeclarationHere, sym.Loc)
		return false
	}
	return true
}

// typeOfInt picks the type a literal of this shape has: int for plain
// decimals, otherwise a bit or logic vector of the literal's width.
func typeOfInt(v types.IntValue) *symbols.Type {
	return vectorType(v.Width(), v.IsSigned(), v.IsFourState())
}

// vectorType returns int or integer when the shape matches, or a simple
// packed vector otherwise.
func vectorType(width uint32, signed, fourState bool) *symbols.Type {
	if width == 32 && signed {
		if fourState {
			return symbols.Integer
		}
		return symbols.Int
	}
	if width == 1 && !signed {
		if fourState {
			return symbols.Logic
		}
		return symbols.Bit
	}
	elem := symbols.Bit
	if fourState {
		elem = symbols.Logic
	}
	return symbols.NewPackedArray(elem, types.ConstantRange{Left: int32(width) - 1, Right: 0}, signed)
}
