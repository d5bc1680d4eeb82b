package binding_test

import (
	"testing"

	"github.com/nalgeon/be"

	"hdlc/binding"
	"hdlc/diag"
	"hdlc/types"
)

const memberDecls = `
typedef struct packed { logic [3:0] hi; bit lo; } pair_t;
pair_t pp = 5'b10101;
typedef struct { int a; byte b; } ab_t;
ab_t st = '{5, 7};
typedef union { struct { int a; byte b; } x; struct { int a; } y; struct { byte c; } z; struct { int p [0:1]; } w; struct { int a; int b; } ab; } u_t;
u_t u;
typedef union tagged { int a; byte b; } tu_t;
tu_t tu;
typedef union packed tagged { bit [7:0] a; bit [7:0] b; } pu_t;
pu_t pu = 9'h12A;
typedef union packed { bit [7:0] m; bit [7:0] n; } plain_t;
plain_t pl = 8'h5A;
typedef struct { pu_t pu; int n; } wrap_t;
wrap_t wrap;
logic [7:0] v;
class Base;
  local int secret;
  rand bit [3:0] r;
  static int count = 3;
  int data;
  typedef int int_t;
  function int get(int a, int b);
    return a + b;
  endfunction
  static function void reset();
  endfunction
  constraint c { r < 4; }
endclass
class Derived extends Base;
endclass
Base obj;
Derived dobj;
int data;
covergroup cg_t;
  cp: coverpoint data { bins lo = {[0:3]}; }
endgroup
cg_t cg;
`

func TestPackedStructMembers(t *testing.T) {
	f := newFixture(t, memberDecls)

	v, diags := f.eval("pp.hi")
	be.Equal(t, len(diags), 0)
	be.True(t, v.Equal(types.NewInt(4, false, 0xA)))

	v, _ = f.eval("pp.lo")
	be.True(t, v.Equal(types.NewInt(1, false, 1)))

	e, _ := f.bind("pp.hi", 0)
	be.Equal(t, e.Kind(), binding.MemberAccessKind)
	be.Equal(t, e.Type().String(), "logic[3:0]")

	tests := []struct {
		stmt string
		want int64
	}{
		{"pp.lo = 1'b0;", 0x14},
		{"pp.hi = 4'h3;", 0x07},
	}
	for _, tt := range tests {
		t.Run(tt.stmt, func(t *testing.T) {
			f := newFixture(t, memberDecls)
			_, ok := f.exec(tt.stmt, 0)
			be.True(t, ok)
			be.True(t, f.value("pp").Equal(types.NewInt(5, false, tt.want)))
		})
	}
}

func TestUnpackedStructMembers(t *testing.T) {
	f := newFixture(t, memberDecls)

	v, diags := f.eval("st.b")
	be.Equal(t, len(diags), 0)
	be.True(t, v.Equal(types.NewInt(8, true, 7)))

	_, ok := f.exec("st.a = 9;", 0)
	be.True(t, ok)
	be.True(t, f.value("st").Equal(types.NewList([]types.Value{int32v(9), types.NewInt(8, true, 7)})))
}

func TestUntaggedUnionMembers(t *testing.T) {
	f := newFixture(t, memberDecls)

	_, ok := f.exec("u.x = '{5, 7};", 0)
	be.True(t, ok)

	t.Run("active member", func(t *testing.T) {
		v, diags := f.eval("u.x.b")
		be.Equal(t, len(diags), 0)
		be.True(t, v.Equal(types.NewInt(8, true, 7)))
	})
	t.Run("common initial sequence", func(t *testing.T) {
		v, diags := f.eval("u.y")
		be.Equal(t, len(diags), 0)
		be.True(t, v.Equal(types.NewList(ints(5))))
	})
	t.Run("divergent member reads default", func(t *testing.T) {
		v, diags := f.eval("u.z")
		be.Equal(t, len(diags), 0)
		be.True(t, v.Equal(types.NewList([]types.Value{types.NewInt(8, true, 0)})))
	})
	t.Run("array does not match separate fields", func(t *testing.T) {
		f := newFixture(t, memberDecls)
		_, ok := f.exec("u.ab = '{5, 7};", 0)
		be.True(t, ok)
		v, diags := f.eval("u.w")
		be.Equal(t, len(diags), 0)
		be.True(t, v.Equal(types.NewList([]types.Value{types.NewList(ints(0, 0))})))
	})
	t.Run("write switches member", func(t *testing.T) {
		_, ok := f.exec("u.y.a = 9;", 0)
		be.True(t, ok)
		v, _ := f.eval("u.y.a")
		be.True(t, v.Equal(int32v(9)))

		// x is longer than y, so it no longer shares a full sequence
		v, _ = f.eval("u.x")
		be.True(t, v.Equal(types.NewList([]types.Value{int32v(0), types.NewInt(8, true, 0)})))
	})
}

func TestTaggedUnionMembers(t *testing.T) {
	f := newFixture(t, memberDecls)

	v, diags := f.eval("tu.a")
	be.True(t, v == nil)
	be.True(t, diags.Has(diag.ConstEvalTaggedUnion))

	diags, ok := f.exec("tu.a = 1;", 0)
	be.True(t, !ok)
	be.True(t, diags.Has(diag.ConstEvalTaggedUnion))
}

func TestPackedUnionMembers(t *testing.T) {
	t.Run("tag selects member", func(t *testing.T) {
		f := newFixture(t, memberDecls)
		v, diags := f.eval("pu.b")
		be.Equal(t, len(diags), 0)
		be.True(t, v.Equal(types.NewInt(8, false, 0x2A)))

		v, diags = f.eval("pu.a")
		be.True(t, v == nil)
		be.True(t, diags.Has(diag.ConstEvalTaggedUnion))
	})
	t.Run("write active member", func(t *testing.T) {
		f := newFixture(t, memberDecls)
		_, ok := f.exec("pu.b = 8'h11;", 0)
		be.True(t, ok)
		be.True(t, f.value("pu").Equal(types.NewInt(9, false, 0x111)))

		diags, ok := f.exec("pu.a = 8'h00;", 0)
		be.True(t, !ok)
		be.True(t, diags.Has(diag.ConstEvalTaggedUnion))
	})
	t.Run("untagged members alias", func(t *testing.T) {
		f := newFixture(t, memberDecls)
		m, _ := f.eval("pl.m")
		n, _ := f.eval("pl.n")
		be.True(t, m.Equal(types.NewInt(8, false, 0x5A)))
		be.True(t, n.Equal(m))
	})
}

func TestPackedUnionChainedSelects(t *testing.T) {
	tests := []struct {
		name string
		stmt string
		ok   bool
		want int64
	}{
		{"range of active member", "pu.b[3:0] = 4'h1;", true, 0x121},
		{"bit of active member", "pu.b[0] = 1'b1;", true, 0x12B},
		{"range of inactive member", "pu.a[3:0] = 4'h1;", false, 0x12A},
		{"bit of inactive member", "pu.a[0] = 1'b1;", false, 0x12A},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, memberDecls)
			diags, ok := f.exec(tt.stmt, 0)
			be.Equal(t, ok, tt.ok)
			be.Equal(t, diags.Has(diag.ConstEvalTaggedUnion), !tt.ok)
			be.True(t, f.value("pu").Equal(types.NewInt(9, false, tt.want)))
		})
	}

	t.Run("read through active member", func(t *testing.T) {
		f := newFixture(t, memberDecls)
		v, diags := f.eval("pu.b[3:0]")
		be.Equal(t, len(diags), 0)
		be.True(t, v.Equal(types.NewInt(4, false, 0xA)))

		v, diags = f.eval("pu.a[0]")
		be.True(t, v == nil)
		be.True(t, diags.Has(diag.ConstEvalTaggedUnion))
	})

	t.Run("inside a struct", func(t *testing.T) {
		f := newFixture(t, memberDecls)
		_, ok := f.exec("wrap.pu = 9'h12A;", 0)
		be.True(t, ok)

		diags, ok := f.exec("wrap.pu.a[0] = 1'b1;", 0)
		be.True(t, !ok)
		be.True(t, diags.Has(diag.ConstEvalTaggedUnion))
		v, _ := f.eval("wrap.pu")
		be.True(t, v.Equal(types.NewInt(9, false, 0x12A)))

		_, ok = f.exec("wrap.pu.b[0] = 1'b1;", 0)
		be.True(t, ok)
		v, _ = f.eval("wrap.pu")
		be.True(t, v.Equal(types.NewInt(9, false, 0x12B)))
	})
}

func TestValueMemberOffset(t *testing.T) {
	f := newFixture(t, memberDecls)
	opt := f.d.Lookup("cg").Type.Scope().Find("option")
	be.True(t, opt != nil)
	// only fields carry a meaningful offset
	opt.Offset = 7

	e, diags := f.bind("cg.option", 0)
	be.Equal(t, len(diags), 0)
	ma, ok := e.(*binding.MemberAccessExpression)
	be.True(t, ok)
	be.Equal(t, ma.Offset, uint32(0))
}

func TestClassMembers(t *testing.T) {
	f := newFixture(t, memberDecls)
	tests := []struct {
		name string
		expr string
		kind binding.ExpressionKind
		typ  string
	}{
		{"property", "obj.data", binding.MemberAccessKind, "int"},
		{"inherited property", "dobj.data", binding.MemberAccessKind, "int"},
		{"method", "obj.get(1, 2)", binding.CallKind, "int"},
		{"constraint", "obj.c", binding.MemberAccessKind, "void"},
		{"coverpoint", "cg.cp", binding.MemberAccessKind, "void"},
		{"coverpoint option", "cg.cp.option.weight", binding.MemberAccessKind, "int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, diags := f.bind(tt.expr, 0)
			be.Equal(t, len(diags), 0)
			be.Equal(t, e.Kind(), tt.kind)
			be.Equal(t, e.Type().String(), tt.typ)
		})
	}

	// static members have no object to wait for
	for _, expr := range []string{"obj.count", "obj.reset()"} {
		t.Run(expr, func(t *testing.T) {
			e, diags := f.bind(expr, binding.NonProcedural)
			be.True(t, !e.Bad())
			be.Equal(t, len(diags), 0)
		})
	}

	t.Run("object members do not fold", func(t *testing.T) {
		v, diags := f.eval("obj.data")
		be.True(t, v == nil)
		be.True(t, diags.Has(diag.ConstEvalNotConstant))
	})
}

func TestMemberAccessErrors(t *testing.T) {
	f := newFixture(t, memberDecls)
	tests := []struct {
		name  string
		expr  string
		flags binding.Flags
		code  diag.Code
	}{
		{"unknown field", "st.c", 0, diag.UnknownMember},
		{"unknown property", "obj.nope", 0, diag.UnknownMember},
		{"vector", "v.foo", 0, diag.InvalidMemberAccess},
		{"property outside procedural", "obj.data", binding.NonProcedural, diag.DynamicNotProcedural},
		{"method outside procedural", "obj.get(1, 2)", binding.NonProcedural, diag.DynamicNotProcedural},
		{"property in assertion", "obj.data", binding.AssertionExpr, diag.ClassMemberInAssertion},
		{"coverpoint outside procedural", "cg.cp", binding.NonProcedural, diag.DynamicNotProcedural},
		{"called property", "obj.data()", 0, diag.ExpressionNotCallable},
		{"missing arguments", "obj.get(1)", 0, diag.TooFewArguments},
		{"class typedef", "obj.int_t", 0, diag.InvalidClassAccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, diags := f.bind(tt.expr, tt.flags)
			be.True(t, e.Bad())
			be.True(t, diags.Has(tt.code))
		})
	}

	t.Run("local property", func(t *testing.T) {
		e, diags := f.bind("obj.secret", 0)
		be.True(t, !e.Bad())
		be.Equal(t, e.Kind(), binding.MemberAccessKind)
		be.Equal(t, e.Type().String(), "int")
		be.Equal(t, diags.Codes(), []diag.Code{diag.LocalMemberAccess})
		be.Equal(t, len(diags[0].Notes), 1)
	})
	t.Run("with clause on a field", func(t *testing.T) {
		e, diags := f.bind("st.a with (1)", 0)
		be.True(t, !e.Bad())
		be.Equal(t, diags.Codes(), []diag.Code{diag.UnexpectedWithClause})
	})
}
