package eval

import (
	"testing"

	"github.com/nalgeon/be"

	"hdlc/diag"
	"hdlc/symbols"
	"hdlc/types"
)

func newVar(name string) *symbols.Symbol {
	return &symbols.Symbol{Kind: symbols.VariableSymbol, Name: name, Type: symbols.Int}
}

func TestQueueTargetNesting(t *testing.T) {
	ctx := NewContext(nil)
	outer := types.NewQueue(ints(1, 2, 3))
	inner := types.NewQueue(ints(4))

	release := ctx.PushQueueTarget(outer)
	func() {
		defer ctx.PushQueueTarget(inner)()
		be.True(t, ctx.QueueTarget().Equal(inner))
	}()
	be.True(t, ctx.QueueTarget().Equal(outer))
	release()
	be.True(t, ctx.QueueTarget() == nil)
}

func TestIteratorBinding(t *testing.T) {
	ctx := NewContext(nil)
	it := &symbols.Symbol{Kind: symbols.IteratorSymbol, Name: "item"}

	release := ctx.PushIterator(it, types.NewInt(32, true, 9), 2)
	v, idx, ok := ctx.Iterator(it)
	be.True(t, ok)
	be.Equal(t, idx, 2)
	be.True(t, v.Equal(types.NewInt(32, true, 9)))

	release()
	_, _, ok = ctx.Iterator(it)
	be.True(t, !ok)
}

func TestContextStorage(t *testing.T) {
	a := newVar("a")
	scratch := NewContext(nil)
	be.True(t, scratch.Slot(a) == nil)

	env := NewEnvironment()
	env.Define(a, types.NewInt(32, true, 3))
	ctx := NewContext(env)
	slot := ctx.Slot(a)
	be.True(t, slot != nil)
	be.True(t, (*slot).Equal(types.NewInt(32, true, 3)))
}

func TestContextDiags(t *testing.T) {
	ctx := NewContext(nil)
	ctx.AddDiag(diag.ConstEvalQueueRange, diag.Range{}).Arg(2).Arg(1)
	ctx.AddDiag(diag.ConstEvalDynamicArrayIndex, diag.Range{})
	be.Equal(t, len(ctx.Diags()), 2)
	be.True(t, ctx.Diags().Has(diag.ConstEvalQueueRange))
}
