package binding

import (
	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/syntax"
	"hdlc/trace"
	"hdlc/types"
)

// Eval evaluates e as a constant and keeps whatever the evaluation
// reports. A nil result means e is not constant here.
func (c *Context) Eval(e Expression) types.Value {
	if e.Bad() {
		return nil
	}
	ctx := eval.NewContext(nil)
	v := e.Eval(ctx)
	*c.diags = append(*c.diags, ctx.Diags()...)
	return v
}

// requireSelectLValue is the lvalue check shared by element and range
// selects. Outside procedural code the selectors must be constant and the
// select becomes the longest static prefix; inside, a select stays part
// of the prefix only while it is constant.
func requireSelectLValue(bc *Context, sel, value Expression, prefix Expression) bool {
	switch value.Kind() {
	case ConcatenationKind, StreamingConcatenationKind:
		bc.AddDiag(diag.ExpressionNotAssignable, sel.Range())
		return false
	}

	if nv, ok := value.(*NamedValue); ok {
		sym := nv.Symbol
		if sym.Kind == symbols.NetSymbol && sym.UserDefinedNetType {
			bc.AddDiag(diag.UserDefPartialDriver, sel.Range()).Arg(sym.Name)
			return false
		}
	}

	if !bc.IsProcedural() {
		if !selectorsConstant(bc, sel) {
			return false
		}
		if prefix == nil {
			prefix = sel
		}
	} else {
		ctx := eval.NewContext(nil)
		ctx.CacheResults = true
		if isConstantSelect(ctx, sel) {
			if prefix == nil {
				prefix = sel
			}
		} else {
			prefix = nil
		}
	}
	return value.RequireLValue(bc, prefix)
}

func selectorsConstant(bc *Context, sel Expression) bool {
	switch s := sel.(type) {
	case *ElementSelectExpression:
		return bc.Eval(s.Selector) != nil
	case *RangeSelectExpression:
		l := bc.Eval(s.Left)
		r := bc.Eval(s.Right)
		return l != nil && r != nil
	}
	return true
}

func isConstantSelect(ctx *eval.Context, sel Expression) bool {
	switch s := sel.(type) {
	case *ElementSelectExpression:
		return s.IsConstantSelect(ctx)
	case *RangeSelectExpression:
		return s.IsConstantSelect(ctx)
	}
	return false
}

// Assignment is a bound target = value
type Assignment struct {
	Target Expression
	Source Expression
	Range  diag.Range
}

// BindAssignment binds both sides of stmt and checks that the target is
// assignable. The result is nil when either side failed.
func BindAssignment(bc *Context, stmt *syntax.AssignStmt) *Assignment {
	target := Bind(bc, stmt.Target)
	if target.Bad() {
		return nil
	}
	if !target.RequireLValue(bc, nil) {
		return nil
	}
	source := BindRValue(bc, target.Type(), stmt.Value)
	if source.Bad() {
		return nil
	}
	return &Assignment{Target: target, Source: source, Range: rangeOf(stmt)}
}

// Execute evaluates the source and stores it through the target. It
// reports whether the store happened; writes that land outside a dynamic
// container are dropped silently by the LValue.
func (a *Assignment) Execute(ctx *eval.Context) bool {
	v := a.Source.Eval(ctx)
	if v == nil {
		return false
	}
	lv := a.Target.EvalLValue(ctx)
	if lv == nil {
		return false
	}
	lv.Store(v)
	if trace.IsEnabled() {
		trace.Store(Describe(a.Target), v)
	}
	return true
}
