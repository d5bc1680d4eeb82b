package binding_test

import (
	"fmt"
	"testing"

	"github.com/nalgeon/be"

	"hdlc/binding"
	"hdlc/diag"
	"hdlc/types"
)

const selectDecls = `
logic [7:0] v = 8'hA5;
logic [0:7] a = 8'hA5;
logic [3:0][7:0] pk = 32'h44332211;
logic s;
int arr [0:3] = '{10, 20, 30, 40};
int rev [3:0] = '{10, 20, 30, 40};
int dyn [] = '{1, 2};
int q [$] = '{1, 2, 3};
int p [$] = '{0, 1};
int empty [$];
int aa [string] = '{"one": 1, default: -1};
int bb [string] = '{"one": 1};
int ai [integer];
string str = "hello";
int i = 2;
typedef struct { int a; byte b; } ab_t;
ab_t st;
wire vectored [7:0] w;
`

func TestPackedBitSelect(t *testing.T) {
	f := newFixture(t, selectDecls)
	for i := 0; i < 8; i++ {
		want := int64(0xA5>>i) & 1
		t.Run(fmt.Sprintf("v[%d]", i), func(t *testing.T) {
			v, diags := f.eval(fmt.Sprintf("v[%d]", i))
			be.Equal(t, len(diags), 0)
			be.True(t, v.Equal(types.NewInt(1, false, want)))
		})
	}

	// a is declared ascending, so a[0] is the most significant bit
	tests := []struct {
		expr string
		want int64
	}{
		{"a[0]", 1},
		{"a[1]", 0},
		{"a[5]", 1},
		{"a[7]", 1},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, _ := f.eval(tt.expr)
			be.True(t, v.Equal(types.NewInt(1, false, tt.want)))
		})
	}
}

func TestPackedBitWrite(t *testing.T) {
	for i := 0; i < 8; i++ {
		t.Run(fmt.Sprintf("v[%d]", i), func(t *testing.T) {
			f := newFixture(t, selectDecls)
			diags, ok := f.exec(fmt.Sprintf("v[%d] = 1'b1;", i), 0)
			be.True(t, ok)
			be.True(t, !diags.HasErrors())
			be.True(t, f.value("v").Equal(types.NewInt(8, false, 0xA5|1<<i)))

			got, _ := f.eval(fmt.Sprintf("v[%d]", i))
			be.True(t, got.Equal(types.NewInt(1, false, 1)))
		})
	}
}

func TestPackedArrayElements(t *testing.T) {
	f := newFixture(t, selectDecls)
	tests := []struct {
		expr string
		want int64
	}{
		{"pk[0]", 0x11},
		{"pk[1]", 0x22},
		{"pk[3]", 0x44},
		{"pk[2][0]", 1},
		{"pk[2][1]", 1},
		{"pk[2][2]", 0},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, _ := f.bind(tt.expr, 0)
			v, diags := f.eval(tt.expr)
			be.Equal(t, len(diags), 0)
			be.True(t, v.Equal(types.NewInt(e.Type().BitWidth(), false, tt.want)))
		})
	}

	_, ok := f.exec("pk[2] = 8'hff;", 0)
	be.True(t, ok)
	be.True(t, f.value("pk").Equal(types.NewInt(32, false, 0x44ff2211)))
}

func TestUnpackedStorageOrder(t *testing.T) {
	f := newFixture(t, selectDecls)

	// the left bound is stored first in both directions
	be.True(t, f.value("arr").Equal(types.NewList(ints(10, 20, 30, 40))))
	be.True(t, f.value("rev").Equal(types.NewList(ints(10, 20, 30, 40))))

	tests := []struct {
		expr string
		want int64
	}{
		{"arr[0]", 10},
		{"arr[3]", 40},
		{"rev[3]", 10},
		{"rev[0]", 40},
		{"rev[i]", 20},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, diags := f.eval(tt.expr)
			be.Equal(t, len(diags), 0)
			be.True(t, v.Equal(int32v(tt.want)))
		})
	}

	_, ok := f.exec("rev[0] = 7;", 0)
	be.True(t, ok)
	be.True(t, f.value("rev").Equal(types.NewList(ints(10, 20, 30, 7))))
}

func TestAssociativeSelect(t *testing.T) {
	f := newFixture(t, selectDecls)

	t.Run("present", func(t *testing.T) {
		v, diags := f.eval(`aa["one"]`)
		be.Equal(t, len(diags), 0)
		be.True(t, v.Equal(int32v(1)))
	})
	t.Run("missing with default", func(t *testing.T) {
		v, diags := f.eval(`aa["two"]`)
		be.Equal(t, len(diags), 0)
		be.True(t, v.Equal(int32v(-1)))
	})
	t.Run("missing without default", func(t *testing.T) {
		v, diags := f.eval(`bb["two"]`)
		be.Equal(t, diags.Count(diag.ConstEvalAssociativeElementNotFound), 1)
		be.Equal(t, len(diags), 1)
		be.True(t, v.Equal(int32v(0)))
	})
	t.Run("unknown key", func(t *testing.T) {
		v, diags := f.eval("ai['x]")
		be.True(t, v == nil)
		be.True(t, diags.Has(diag.ConstEvalAssociativeIndexInvalid))
	})
	t.Run("write inserts", func(t *testing.T) {
		_, ok := f.exec(`bb["two"] = 2;`, 0)
		be.True(t, ok)
		v, diags := f.eval(`bb["two"]`)
		be.Equal(t, len(diags), 0)
		be.True(t, v.Equal(int32v(2)))
	})
}

func TestDynamicSelectOutOfBounds(t *testing.T) {
	tests := []struct {
		name   string
		read   string
		write  string
		target string
		want   []types.Value
	}{
		{"dynamic array", "dyn[2]", "dyn[2] = 9;", "dyn", ints(1, 2)},
		{"queue", "q[3]", "q[3] = 9;", "q", ints(1, 2, 3)},
		{"negative", "q[-1]", "q[-1] = 9;", "q", ints(1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, selectDecls)
			v, diags := f.eval(tt.read)
			be.True(t, v.Equal(int32v(0)))
			be.Equal(t, diags.Count(diag.ConstEvalDynamicArrayIndex), 1)

			diags, ok := f.exec(tt.write, 0)
			be.True(t, ok)
			be.True(t, !diags.HasErrors())
			be.True(t, f.value(tt.target).Equal(types.NewList(tt.want)))
		})
	}
}

func TestQueueUnbounded(t *testing.T) {
	f := newFixture(t, selectDecls)
	tests := []struct {
		expr string
		want int64
	}{
		{"q[$]", 3},
		{"q[$ - 1]", 2},
		{"q[p[$]]", 2},
		{"q[p[$] + $ - 2]", 2},
		{"q[$ - p[$]]", 2},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, diags := f.eval(tt.expr)
			be.Equal(t, len(diags), 0)
			be.True(t, v.Equal(int32v(tt.want)))
		})
	}

	t.Run("empty queue", func(t *testing.T) {
		v, diags := f.eval("empty[$]")
		be.True(t, v.Equal(int32v(0)))
		be.Equal(t, diags.Count(diag.ConstEvalDynamicArrayIndex), 1)
	})
	t.Run("write last", func(t *testing.T) {
		_, ok := f.exec("q[$] = 7;", 0)
		be.True(t, ok)
		be.True(t, f.value("q").Equal(types.NewList(ints(1, 2, 7))))
	})
	t.Run("outside a queue", func(t *testing.T) {
		_, diags := f.bind("arr[$]", 0)
		be.True(t, diags.Has(diag.UnboundedNotAllowed))
	})
}

func TestStringSelect(t *testing.T) {
	f := newFixture(t, selectDecls)

	v, diags := f.eval("str[1]")
	be.Equal(t, len(diags), 0)
	be.True(t, v.Equal(types.NewInt(8, true, 'e')))

	v, diags = f.eval("str[9]")
	be.True(t, v.Equal(types.NewInt(8, true, 0)))
	be.True(t, diags.Has(diag.ConstEvalStringIndexInvalid))

	_, ok := f.exec("str[0] = 8'h6a;", 0)
	be.True(t, ok)
	be.True(t, f.value("str").Equal(types.NewStr("jello")))
}

func TestElementSelectBindErrors(t *testing.T) {
	f := newFixture(t, selectDecls)
	tests := []struct {
		name  string
		expr  string
		flags binding.Flags
		code  diag.Code
	}{
		{"constant index out of range", "arr[4]", 0, diag.IndexValueInvalid},
		{"packed index out of range", "v[8]", 0, diag.IndexValueInvalid},
		{"scalar", "s[0]", 0, diag.CannotIndexScalar},
		{"struct", "st[0]", 0, diag.BadIndexExpression},
		{"non-integral selector", "arr[str]", 0, diag.ExprMustBeIntegral},
		{"dynamic outside procedural", "dyn[0]", binding.NonProcedural, diag.DynamicNotProcedural},
		{"queue outside procedural", "q[0]", binding.NonProcedural, diag.DynamicNotProcedural},
		{"undeclared", "nope[0]", 0, diag.UndeclaredIdentifier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, diags := f.bind(tt.expr, tt.flags)
			be.True(t, e.Bad())
			be.True(t, diags.Has(tt.code))
		})
	}
}

func TestElementSelectWarnings(t *testing.T) {
	f := newFixture(t, selectDecls)

	e, diags := f.bind("w[0]", 0)
	be.True(t, !e.Bad())
	be.Equal(t, diags.Codes(), []diag.Code{diag.SelectOfVectoredNet})
	be.Equal(t, len(diags[0].Notes), 1)

	// the runtime index is checked at evaluation instead
	e, diags = f.bind("arr[i]", 0)
	be.True(t, !e.Bad())
	be.Equal(t, len(diags), 0)
}

func TestElementSelectTypes(t *testing.T) {
	f := newFixture(t, selectDecls)
	tests := []struct {
		expr string
		want string
	}{
		{"v[0]", "logic"},
		{"pk[1]", "logic[7:0]"},
		{"arr[1]", "int"},
		{"q[0]", "int"},
		{`aa["x"]`, "int"},
		{"str[0]", "byte"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, diags := f.bind(tt.expr, 0)
			be.Equal(t, len(diags), 0)
			be.Equal(t, e.Kind(), binding.ElementSelectKind)
			be.Equal(t, e.Type().String(), tt.want)
		})
	}
}
