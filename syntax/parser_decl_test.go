package syntax

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseSourceDeclarations(t *testing.T) {
	src := `
typedef struct packed { logic [3:0] hi; bit lo; } pair_t;
typedef union tagged { int a; byte b; } tu_t;
typedef enum logic [1:0] { RED, GREEN = 2 } color_t;
logic [7:0] v = 8'hA5;
bit [7:0] arr [0:3];
int q[$] = '{1, 2};
int aa[string];
const int K = 3;
wire vectored [7:0] w;
nettype logic [3:0] mynet with resolve;
mynet n;
parameter int P = 4, Q = 5;
localparam W = 8;
`
	decls, err := ParseSource(src)
	be.Err(t, err, nil)
	be.Equal(t, len(decls), 13)

	st := decls[0].(*TypedefDecl).Type.(*StructType)
	be.True(t, st.Packed)
	be.True(t, !st.Union)
	be.Equal(t, len(st.Members), 2)

	un := decls[1].(*TypedefDecl).Type.(*StructType)
	be.True(t, un.Union)
	be.True(t, un.Tagged)

	en := decls[2].(*TypedefDecl).Type.(*EnumType)
	be.Equal(t, len(en.Items), 2)
	be.True(t, en.Items[1].Value != nil)

	v := decls[3].(*VarDecl)
	be.Equal(t, v.Declarators[0].Name, "v")
	be.True(t, v.Declarators[0].Init != nil)

	arr := decls[4].(*VarDecl).Declarators[0]
	be.Equal(t, arr.Dims[0].Kind, DimRange)

	q := decls[5].(*VarDecl).Declarators[0]
	be.Equal(t, q.Dims[0].Kind, DimQueue)
	be.True(t, q.Init.(*AssignPatternExpr) != nil)

	aa := decls[6].(*VarDecl).Declarators[0]
	be.Equal(t, aa.Dims[0].Kind, DimAssoc)

	be.True(t, decls[7].(*VarDecl).Qualifiers.Const)

	w := decls[8].(*NetDecl)
	be.True(t, w.Vectored)
	be.Equal(t, w.Type.(*BuiltinType).Keyword, TOKEN_LOGIC)

	nt := decls[9].(*NettypeDecl)
	be.Equal(t, nt.Name, "mynet")
	be.Equal(t, nt.Resolver, "resolve")

	be.Equal(t, decls[10].(*VarDecl).Type.(*NamedType).Name, "mynet")
	be.Equal(t, len(decls[11].(*ParamDecl).Declarators), 2)
	lp := decls[12].(*ParamDecl)
	be.True(t, lp.Local)
	be.True(t, lp.Type == nil)
}

func TestParseClassAndCovergroup(t *testing.T) {
	src := `
class Base;
  local int secret;
  rand bit [3:0] r;
  static int count;
  int data;
  function int get(int a, int b);
    return a + b;
  endfunction
  static function void reset();
  endfunction
  constraint c { r < 4; { r != 1; } }
endclass
class Derived extends Base;
endclass
covergroup cg_t;
  option.per_instance = 1;
  cp: coverpoint data { bins lo = {[0:3]}; bins hi = {[4:7]}; }
  cx: cross cp, cp;
endgroup
Base obj = new;
`
	decls, err := ParseSource(src)
	be.Err(t, err, nil)
	be.Equal(t, len(decls), 4)

	base := decls[0].(*ClassDecl)
	be.Equal(t, base.Name, "Base")
	be.Equal(t, len(base.Items), 7)
	be.True(t, base.Items[0].(*VarDecl).Qualifiers.Local)
	be.True(t, base.Items[1].(*VarDecl).Qualifiers.Rand)
	be.True(t, base.Items[2].(*VarDecl).Qualifiers.Static)
	fn := base.Items[4].(*FunctionDecl)
	be.Equal(t, fn.Name, "get")
	be.Equal(t, len(fn.Args), 2)
	be.True(t, base.Items[5].(*FunctionDecl).Qualifiers.Static)
	be.Equal(t, base.Items[6].(*ConstraintDecl).Name, "c")

	be.Equal(t, decls[1].(*ClassDecl).Extends, "Base")

	cg := decls[2].(*CovergroupDecl)
	be.Equal(t, len(cg.Items), 3)
	be.Equal(t, cg.Items[0].(*OptionDecl).Name, "per_instance")
	cp := cg.Items[1].(*CoverpointDecl)
	be.Equal(t, len(cp.Bins), 2)
	be.Equal(t, cp.Bins[1].Name, "hi")
	be.Equal(t, cg.Items[2].(*CrossDecl).Targets, []string{"cp", "cp"})

	_, isNew := decls[3].(*VarDecl).Declarators[0].Init.(*NewExpr)
	be.True(t, isNew)
}

func TestParseSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"missing semicolon", "int a\nint b;", 2},
		{"bad type", "+ x;", 1},
		{"unterminated class", "class C;\nint a;\n", 3},
		{"parameter without value", "parameter P;", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource(tt.src)
			be.Err(t, err)
			be.Equal(t, err.(*ParseError).Pos.Line, tt.line)
		})
	}
}
