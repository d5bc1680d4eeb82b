package binding_test

import (
	"testing"

	"github.com/nalgeon/be"

	"hdlc/binding"
	"hdlc/diag"
	"hdlc/types"
)

const methodDecls = `
string str = "Hello";
int q [$] = '{1, 2, 3};
int arr [0:2] = '{4, 5, 6};
string names [$] = '{"a", "b"};
int aa [string] = '{"one": 1, "two": 2};
typedef enum { A, B = 5, C } abc_t;
abc_t e = B;
event ev;
class Base;
  rand bit [3:0] r;
  int data;
endclass
Base obj;
`

func TestBuiltinMethods(t *testing.T) {
	f := newFixture(t, methodDecls)
	tests := []struct {
		expr string
		want types.Value
	}{
		{"str.len", int32v(5)},
		{"str.len()", int32v(5)},
		{"str.toupper()", types.NewStr("HELLO")},
		{"str.tolower()", types.NewStr("hello")},
		{"str.getc(1)", types.NewInt(8, true, 'e')},
		{"str.getc(10)", types.NewInt(8, true, 0)},
		{"q.size()", int32v(3)},
		{"q.sum", int32v(6)},
		{"arr.sum()", int32v(15)},
		{"q.sum with (item * 2)", int32v(12)},
		{"q.sum with (item.index)", int32v(3)},
		{"aa.num()", int32v(2)},
		{`aa.exists("one")`, int32v(1)},
		{`aa.exists("zz")`, int32v(0)},
		{"e.name", types.NewStr("B")},
		{"e.first", int32v(0)},
		{"e.last", int32v(6)},
		{"e.num", int32v(3)},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, diags := f.bind(tt.expr, 0)
			be.Equal(t, len(diags), 0)
			be.Equal(t, e.Kind(), binding.CallKind)

			v, diags := f.eval(tt.expr)
			be.Equal(t, len(diags), 0)
			be.True(t, v.Equal(tt.want))
		})
	}
}

func TestNonConstantMethods(t *testing.T) {
	f := newFixture(t, methodDecls)
	tests := []struct {
		expr string
		typ  string
	}{
		{"obj.r.rand_mode()", "int"},
		{"ev.triggered", "bit"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, diags := f.bind(tt.expr, 0)
			be.Equal(t, len(diags), 0)
			be.Equal(t, e.Type().String(), tt.typ)

			v, diags := f.eval(tt.expr)
			be.True(t, v == nil)
			be.True(t, diags.Has(diag.ConstEvalNotConstant))
		})
	}
}

func TestMethodErrors(t *testing.T) {
	f := newFixture(t, methodDecls)
	tests := []struct {
		name string
		expr string
		code diag.Code
	}{
		{"unknown method", "str.foo", diag.UnknownSystemMethod},
		{"too many arguments", "q.size(1)", diag.TooManyArguments},
		{"too few arguments", "str.getc()", diag.TooFewArguments},
		{"sum of strings", "names.sum", diag.ExprMustBeIntegral},
		{"rand_mode on plain property", "obj.data.rand_mode()", diag.InvalidMemberAccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, diags := f.bind(tt.expr, 0)
			be.True(t, e.Bad())
			be.True(t, diags.Has(tt.code))
		})
	}

	t.Run("with clause not accepted", func(t *testing.T) {
		e, diags := f.bind("str.len with (1)", 0)
		be.True(t, !e.Bad())
		be.Equal(t, diags.Codes(), []diag.Code{diag.UnexpectedWithClause})
	})
}
