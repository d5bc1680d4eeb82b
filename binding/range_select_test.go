package binding_test

import (
	"fmt"
	"testing"

	"github.com/nalgeon/be"

	"hdlc/binding"
	"hdlc/diag"
	"hdlc/types"
)

const rangeDecls = `
logic [7:0] v = 8'hA5;
logic [0:7] a = 8'hA5;
logic [3:0][7:0] pk = 32'h44332211;
int arr [0:3] = '{10, 20, 30, 40};
int rev [3:0] = '{10, 20, 30, 40};
int dyn [] = '{1, 2, 3};
int q [$] = '{1, 2, 3};
int aa [int];
int i = 2;
int far = 6;
`

func TestSimpleRangeSelect(t *testing.T) {
	f := newFixture(t, rangeDecls)
	tests := []struct {
		expr string
		typ  string
		want types.Value
	}{
		{"v[3:0]", "logic[3:0]", types.NewInt(4, false, 0x5)},
		{"v[7:4]", "logic[7:4]", types.NewInt(4, false, 0xA)},
		{"v[5:2]", "logic[5:2]", types.NewInt(4, false, 0x9)},
		{"v[3:3]", "logic[3:3]", types.NewInt(1, false, 0)},
		{"a[0:3]", "logic[0:3]", types.NewInt(4, false, 0xA)},
		{"pk[1:0]", "logic[7:0][1:0]", types.NewInt(16, false, 0x2211)},
		{"arr[1:2]", "int$[1:2]", types.NewList(ints(20, 30))},
		{"rev[2:1]", "int$[2:1]", types.NewList(ints(20, 30))},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, diags := f.bind(tt.expr, 0)
			be.Equal(t, len(diags), 0)
			be.Equal(t, e.Kind(), binding.RangeSelectKind)
			be.Equal(t, e.Type().String(), tt.typ)

			v, diags := f.eval(tt.expr)
			be.Equal(t, len(diags), 0)
			be.True(t, v.Equal(tt.want))
		})
	}
}

func TestIndexedRangeMatchesSimple(t *testing.T) {
	f := newFixture(t, rangeDecls)
	type pair struct{ indexed, simple string }
	var pairs []pair
	for lo := 0; lo < 8; lo++ {
		for w := 1; lo+w <= 8; w++ {
			// descending v: lo+:w is [lo+w-1:lo], (lo+w-1)-:w is the same
			pairs = append(pairs,
				pair{fmt.Sprintf("v[%d+:%d]", lo, w), fmt.Sprintf("v[%d:%d]", lo+w-1, lo)},
				pair{fmt.Sprintf("v[%d-:%d]", lo+w-1, w), fmt.Sprintf("v[%d:%d]", lo+w-1, lo)},
				// ascending a: lo+:w is [lo:lo+w-1]
				pair{fmt.Sprintf("a[%d+:%d]", lo, w), fmt.Sprintf("a[%d:%d]", lo, lo+w-1)},
				pair{fmt.Sprintf("a[%d-:%d]", lo+w-1, w), fmt.Sprintf("a[%d:%d]", lo, lo+w-1)},
			)
		}
	}
	for _, p := range pairs {
		t.Run(p.indexed, func(t *testing.T) {
			ie, diags := f.bind(p.indexed, 0)
			be.Equal(t, len(diags), 0)
			se, diags := f.bind(p.simple, 0)
			be.Equal(t, len(diags), 0)
			be.Equal(t, ie.Type().String(), se.Type().String())

			iv, _ := f.eval(p.indexed)
			sv, _ := f.eval(p.simple)
			be.True(t, iv.Equal(sv))
		})
	}
}

func TestIndexedRangeRuntimeStart(t *testing.T) {
	f := newFixture(t, rangeDecls)

	e, diags := f.bind("v[i+:4]", 0)
	be.Equal(t, len(diags), 0)
	be.Equal(t, e.Type().BitWidth(), uint32(4))

	v, diags := f.eval("v[i+:4]")
	be.Equal(t, len(diags), 0)
	be.True(t, v.Equal(types.NewInt(4, false, 0x9)))

	v, diags = f.eval("v[far+:4]")
	be.True(t, v == nil)
	be.True(t, diags.Has(diag.ConstEvalPartSelectInvalid))

	v, _ = f.eval("arr[i-:2]")
	be.True(t, v.Equal(types.NewList(ints(20, 30))))
}

func TestRangeSelectBindErrors(t *testing.T) {
	f := newFixture(t, rangeDecls)
	tests := []struct {
		name  string
		expr  string
		flags binding.Flags
		code  diag.Code
	}{
		{"endian mismatch", "v[2:5]", 0, diag.SelectEndianMismatch},
		{"ascending endian mismatch", "a[5:2]", 0, diag.SelectEndianMismatch},
		{"out of range", "v[8:1]", 0, diag.BadRangeExpression},
		{"unpacked out of range", "arr[2:4]", 0, diag.BadRangeExpression},
		{"width too large", "v[0+:9]", 0, diag.RangeWidthTooLarge},
		{"zero width", "v[0+:0]", 0, diag.ValueMustBePositive},
		{"indexed out of range", "v[6+:4]", 0, diag.BadRangeExpression},
		{"variable width", "v[0+:i]", 0, diag.ExpressionNotConstant},
		{"variable bound", "v[i:0]", 0, diag.ExpressionNotConstant},
		{"associative", "aa[1:2]", 0, diag.RangeSelectAssociative},
		{"descending dynamic", "dyn[2:1]", 0, diag.SelectEndianDynamic},
		{"dynamic outside procedural", "dyn[0:1]", binding.NonProcedural, diag.DynamicNotProcedural},
		{"unbounded outside queue", "dyn[0:$]", 0, diag.UnboundedNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, diags := f.bind(tt.expr, tt.flags)
			be.True(t, e.Bad())
			be.True(t, diags.Has(tt.code))
		})
	}

	// a single element never has a direction
	e, diags := f.bind("v[3:3]", 0)
	be.True(t, !e.Bad())
	be.Equal(t, len(diags), 0)
}

func TestDynamicRangeSelect(t *testing.T) {
	f := newFixture(t, rangeDecls)

	e, diags := f.bind("dyn[1:2]", 0)
	be.Equal(t, len(diags), 0)
	be.Equal(t, e.Type().String(), "int$[]")

	v, diags := f.eval("dyn[1:2]")
	be.Equal(t, len(diags), 0)
	be.True(t, v.Equal(types.NewList(ints(2, 3))))

	v, diags = f.eval("dyn[0+:2]")
	be.Equal(t, len(diags), 0)
	be.True(t, v.Equal(types.NewList(ints(1, 2))))

	v, diags = f.eval("dyn[1:4]")
	be.True(t, v.Equal(types.NewList(ints(2, 3, 0, 0))))
	be.Equal(t, diags.Count(diag.ConstEvalDynamicArrayRange), 1)
}

func TestDynamicRangeSelectTooWide(t *testing.T) {
	f := newFixture(t, rangeDecls)
	for _, expr := range []string{"dyn[0:2147483647]", "dyn[5+:2147483647]", "q[0:2147483647]"} {
		t.Run(expr, func(t *testing.T) {
			e, diags := f.bind(expr, 0)
			be.True(t, !e.Bad())
			be.Equal(t, len(diags), 0)

			v, diags := f.eval(expr)
			be.True(t, v == nil)
			be.True(t, diags.Has(diag.ConstEvalDynamicArrayRange))
		})
	}

	t.Run("write", func(t *testing.T) {
		f := newFixture(t, rangeDecls)
		diags, ok := f.exec("dyn[0:2147483647] = '{7, 8};", 0)
		be.True(t, !ok)
		be.True(t, diags.Has(diag.ConstEvalDynamicArrayRange))
		be.True(t, f.value("dyn").Equal(types.NewList(ints(1, 2, 3))))
	})
}

func TestQueueRangeSelect(t *testing.T) {
	f := newFixture(t, rangeDecls)
	tests := []struct {
		expr string
		want []types.Value
		code diag.Code
	}{
		{"q[1:$]", ints(2, 3), diag.Unknown},
		{"q[0:$ - 1]", ints(1, 2), diag.Unknown},
		{"q[i:i]", ints(3), diag.Unknown},
		{"q[0:5]", ints(1, 2, 3, 0, 0, 0), diag.ConstEvalDynamicArrayRange},
		{"q[1:5]", ints(2, 3, 0, 0, 0), diag.ConstEvalDynamicArrayRange},
		{"q[2:1]", ints(), diag.ConstEvalQueueRange},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, diags := f.bind(tt.expr, 0)
			be.Equal(t, len(diags), 0)
			be.Equal(t, e.Type().String(), "int$[$]")

			v, diags := f.eval(tt.expr)
			be.True(t, v.Equal(types.NewQueue(tt.want)))
			if tt.code == diag.Unknown {
				be.Equal(t, len(diags), 0)
			} else {
				be.True(t, diags.Has(tt.code))
			}
		})
	}
}

func TestRangeSelectWrite(t *testing.T) {
	tests := []struct {
		name   string
		stmt   string
		target string
		want   types.Value
	}{
		{"packed", "v[3:0] = 4'h0;", "v", types.NewInt(8, false, 0xA0)},
		{"indexed packed", "v[4+:4] = 4'h3;", "v", types.NewInt(8, false, 0x35)},
		{"packed array", "pk[2:1] = 16'hbeef;", "pk", types.NewInt(32, false, 0x44beef11)},
		{"unpacked", "arr[1:2] = '{7, 8};", "arr", types.NewList(ints(10, 7, 8, 40))},
		{"descending unpacked", "rev[1:0] = '{7, 8};", "rev", types.NewList(ints(10, 20, 7, 8))},
		{"queue", "q[0:1] = '{5, 6};", "q", types.NewList(ints(5, 6, 3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, rangeDecls)
			diags, ok := f.exec(tt.stmt, 0)
			be.True(t, ok)
			be.True(t, !diags.HasErrors())
			be.True(t, f.value(tt.target).Equal(tt.want))
		})
	}
}
