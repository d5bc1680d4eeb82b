package binding_test

import (
	"testing"

	"github.com/nalgeon/be"

	"hdlc/binding"
	"hdlc/diag"
	"hdlc/elab"
	"hdlc/syntax"
	"hdlc/types"
)

type fixture struct {
	t *testing.T
	d *elab.Design
}

func newFixture(t *testing.T, src string) *fixture {
	t.Helper()
	d, err := elab.Elaborate(src)
	be.Err(t, err, nil)
	return &fixture{t: t, d: d}
}

// bind binds text in the root scope
func (f *fixture) bind(text string, flags binding.Flags) (binding.Expression, diag.Diagnostics) {
	f.t.Helper()
	expr, err := syntax.ParseExpr(text)
	be.Err(f.t, err, nil)
	bc := f.d.Context(f.d.Root, flags)
	return binding.Bind(bc, expr), bc.Diags()
}

// eval binds text procedurally and evaluates it against the design
func (f *fixture) eval(text string) (types.Value, diag.Diagnostics) {
	f.t.Helper()
	e, diags := f.bind(text, 0)
	ctx := f.d.EvalContext()
	v := e.Eval(ctx)
	return v, append(diags, ctx.Diags()...)
}

// exec runs an assignment in the root scope
func (f *fixture) exec(text string, flags binding.Flags) (diag.Diagnostics, bool) {
	f.t.Helper()
	stmt, err := syntax.ParseAssignment(text)
	be.Err(f.t, err, nil)
	return f.d.Execute(f.d.Root, flags, stmt)
}

func (f *fixture) value(name string) types.Value {
	f.t.Helper()
	v, ok := f.d.Value(name)
	be.True(f.t, ok)
	return v
}

func ints(vals ...int64) []types.Value {
	list := make([]types.Value, len(vals))
	for i, v := range vals {
		list[i] = types.NewInt(32, true, v)
	}
	return list
}

func int32v(v int64) types.Value { return types.NewInt(32, true, v) }
