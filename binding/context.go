package binding

import (
	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/types"
)

// Flags alter how expressions bind in a particular position
type Flags uint16

const (
	// NonProcedural marks continuous assignments, parameter values and
	// other places evaluated outside procedural code.
	NonProcedural Flags = 1 << iota

	// AssertionExpr marks expressions inside assertions
	AssertionExpr

	// UnevaluatedBranch marks the dead arm of a constant conditional;
	// static bounds checks are skipped there.
	UnevaluatedBranch

	// AllowUnbounded permits the $ literal, and arithmetic on it, in a
	// queue selector.
	AllowUnbounded
)

// Context carries what binding needs to know about the surrounding code:
// the lookup scope, positional flags, where diagnostics go, the driver
// tracker and the built-in method catalog.
type Context struct {
	Scope   *symbols.Scope
	Flags   Flags
	Drivers *DriverTracker
	Methods MethodResolver

	diags *diag.Diagnostics
}

// NewContext creates a bind context for expressions in scope
func NewContext(scope *symbols.Scope, flags Flags) *Context {
	return &Context{
		Scope:   scope,
		Flags:   flags,
		Drivers: NewDriverTracker(),
		Methods: DefaultMethods(),
		diags:   &diag.Diagnostics{},
	}
}

// With returns a copy of the context with extra flags set. Diagnostics
// and drivers are shared with the original.
func (c *Context) With(flags Flags) *Context {
	cp := *c
	cp.Flags |= flags
	return &cp
}

// Without returns a copy of the context with flags cleared
func (c *Context) Without(flags Flags) *Context {
	cp := *c
	cp.Flags &^= flags
	return &cp
}

// InScope returns a copy of the context that looks names up in scope
func (c *Context) InScope(scope *symbols.Scope) *Context {
	cp := *c
	cp.Scope = scope
	return &cp
}

func (c *Context) Has(f Flags) bool { return c.Flags&f != 0 }

// IsProcedural reports whether the expression sits in procedural code
func (c *Context) IsProcedural() bool { return !c.Has(NonProcedural) }

// InUnevaluatedBranch reports whether static bounds checks are suppressed
func (c *Context) InUnevaluatedBranch() bool { return c.Has(UnevaluatedBranch) }

// AddDiag records a diagnostic
func (c *Context) AddDiag(code diag.Code, r diag.Range) *diag.Diagnostic {
	return c.diags.Add(code, r)
}

// Diags returns everything reported through this context so far
func (c *Context) Diags() diag.Diagnostics { return *c.diags }

// TryEval evaluates e speculatively. Nothing is reported; a nil result
// means e is not a constant.
func TryEval(e Expression) types.Value {
	if e.Bad() {
		return nil
	}
	ctx := eval.NewContext(nil)
	ctx.CacheResults = true
	return e.Eval(ctx)
}

// EvalInteger evaluates e as a constant 32-bit integer, reporting
// ExpressionNotConstant when it does not fold.
func (c *Context) EvalInteger(e Expression) (int32, bool) {
	if e.Bad() {
		return 0, false
	}
	v := TryEval(e)
	if v == nil {
		c.AddDiag(diag.ExpressionNotConstant, e.Range())
		return 0, false
	}
	n, ok := asInt32(v)
	if !ok {
		c.AddDiag(diag.ExpressionNotConstant, e.Range())
		return 0, false
	}
	return n, true
}

// RequireIntegral reports ExprMustBeIntegral unless e has an integral type
func (c *Context) RequireIntegral(e Expression) bool {
	if e.Bad() {
		return false
	}
	if !e.Type().IsIntegral() {
		c.AddDiag(diag.ExprMustBeIntegral, e.Range()).Arg(e.Type())
		return false
	}
	return true
}

// RequireGtZero reports ValueMustBePositive unless v > 0
func (c *Context) RequireGtZero(v int32, r diag.Range) bool {
	if v <= 0 {
		c.AddDiag(diag.ValueMustBePositive, r)
		return false
	}
	return true
}
