// Package elab turns parsed declarations into symbols, types and initial
// storage so that select expressions can be bound and evaluated against
// them.
package elab

import (
	"fmt"

	"hdlc/binding"
	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/syntax"
	"hdlc/types"
)

// Error is a declaration that cannot be elaborated
type Error struct {
	Pos syntax.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func errorAt(n syntax.Node, format string, args ...any) *Error {
	return &Error{Pos: n.Position(), Msg: fmt.Sprintf(format, args...)}
}

func locOf(n syntax.Node) diag.Range {
	return diag.Range{Start: n.Position().Offset, End: n.End()}
}

// Design is an elaborated compilation unit: its root scope, the storage
// of every variable and net, and the driver tracker shared by all
// assignments bound against it.
type Design struct {
	Root    *symbols.Scope
	Env     *eval.Environment
	Drivers *binding.DriverTracker

	// Diags holds diagnostics raised while binding initializers
	Diags diag.Diagnostics

	types    map[string]*symbols.Type
	nettypes map[string]*symbols.Type
	scopes   map[string]*symbols.Scope
	bc       *binding.Context
}

// Elaborate parses and elaborates src
func Elaborate(src string) (*Design, error) {
	decls, err := syntax.ParseSource(src)
	if err != nil {
		return nil, fmt.Errorf("parse declarations: %w", err)
	}
	return ElaborateDecls(decls)
}

// ElaborateDecls elaborates already parsed declarations in order
func ElaborateDecls(decls []syntax.Decl) (*Design, error) {
	d := &Design{
		Root:     symbols.NewScope(symbols.ScopeCompilationUnit, "$unit", nil),
		Env:      eval.NewEnvironment(),
		Drivers:  binding.NewDriverTracker(),
		types:    map[string]*symbols.Type{},
		nettypes: map[string]*symbols.Type{},
		scopes:   map[string]*symbols.Scope{},
	}
	d.bc = d.Context(d.Root, 0)

	for _, decl := range decls {
		if err := d.declare(d.Root, decl); err != nil {
			return nil, err
		}
	}
	d.Diags = d.bc.Diags()
	return d, nil
}

// Context creates a bind context in scope that registers drivers with
// the design
func (d *Design) Context(scope *symbols.Scope, flags binding.Flags) *binding.Context {
	bc := binding.NewContext(scope, flags)
	bc.Drivers = d.Drivers
	return bc
}

// EvalContext creates an evaluation context over the design's storage
func (d *Design) EvalContext() *eval.Context {
	return eval.NewContext(d.Env)
}

// Scope returns the member scope of a class or covergroup declared with
// name, or the root scope for an empty name.
func (d *Design) Scope(name string) (*symbols.Scope, bool) {
	if name == "" {
		return d.Root, true
	}
	sc, ok := d.scopes[name]
	return sc, ok
}

// Lookup finds a symbol declared in the root scope
func (d *Design) Lookup(name string) *symbols.Symbol {
	return d.Root.Find(name)
}

// Value returns the current value stored for the named variable or net
func (d *Design) Value(name string) (types.Value, bool) {
	sym := d.Lookup(name)
	if sym == nil {
		return nil, false
	}
	return d.Env.Get(sym)
}

// Execute binds and runs target = value in scope. It returns every
// diagnostic raised along the way; ok reports whether the store happened.
func (d *Design) Execute(scope *symbols.Scope, flags binding.Flags, stmt *syntax.AssignStmt) (diag.Diagnostics, bool) {
	bc := d.Context(scope, flags)
	a := binding.BindAssignment(bc, stmt)
	if a == nil {
		return bc.Diags(), false
	}
	ctx := d.EvalContext()
	ok := a.Execute(ctx)
	return append(bc.Diags(), ctx.Diags()...), ok
}

func (d *Design) declare(scope *symbols.Scope, decl syntax.Decl) error {
	switch n := decl.(type) {
	case *syntax.TypedefDecl:
		t, err := d.resolveType(scope, n.Type)
		if err != nil {
			return err
		}
		if t, err = d.applyUnpackedDims(scope, t, n.Dims); err != nil {
			return err
		}
		d.types[n.Name] = symbols.NewAlias(n.Name, t)
		scope.Add(&symbols.Symbol{Kind: symbols.TypeAliasSymbol, Name: n.Name, Loc: locOf(n), Type: d.types[n.Name]})
		return nil

	case *syntax.NettypeDecl:
		t, err := d.resolveType(scope, n.Type)
		if err != nil {
			return err
		}
		d.nettypes[n.Name] = t
		return nil

	case *syntax.ParamDecl:
		return d.declareParams(scope, n)

	case *syntax.VarDecl:
		return d.declareVars(scope, n)

	case *syntax.NetDecl:
		return d.declareNets(scope, n)

	case *syntax.ClassDecl:
		return d.declareClass(scope, n)

	case *syntax.CovergroupDecl:
		return d.declareCovergroup(scope, n)

	case *syntax.FunctionDecl:
		sym, err := d.subroutine(scope, n)
		if err != nil {
			return err
		}
		scope.Add(sym)
		return nil
	}
	return errorAt(decl, "declaration not allowed here")
}

func (d *Design) declareParams(scope *symbols.Scope, n *syntax.ParamDecl) error {
	var declared *symbols.Type
	if n.Type != nil {
		t, err := d.resolveType(scope, n.Type)
		if err != nil {
			return err
		}
		declared = t
	}

	bc := d.bc.InScope(scope).With(binding.NonProcedural)
	for _, decl := range n.Declarators {
		var init binding.Expression
		if declared != nil {
			init = binding.BindRValue(bc, declared, decl.Init)
		} else {
			init = binding.Bind(bc, decl.Init)
		}
		v := bc.Eval(init)
		if v == nil {
			return errorAt(decl, "parameter %s is not constant", decl.Name)
		}
		t := declared
		if t == nil {
			t = init.Type()
		}
		scope.Add(&symbols.Symbol{Kind: symbols.ParameterSymbol, Name: decl.Name, Loc: locOf(decl), Type: t, Value: v})
	}
	return nil
}

func (d *Design) declareVars(scope *symbols.Scope, n *syntax.VarDecl) error {
	if named, ok := n.Type.(*syntax.NamedType); ok {
		if nt, ok := d.nettypes[named.Name]; ok {
			return d.declareUserNets(scope, n, nt)
		}
	}

	base, err := d.resolveType(scope, n.Type)
	if err != nil {
		return err
	}
	for _, decl := range n.Declarators {
		t, err := d.applyUnpackedDims(scope, base, decl.Dims)
		if err != nil {
			return err
		}
		sym := &symbols.Symbol{Kind: symbols.VariableSymbol, Name: decl.Name, Loc: locOf(decl), Type: t, Const: n.Qualifiers.Const}
		if n.Qualifiers.Automatic {
			sym.Lifetime = symbols.Automatic
		}
		scope.Add(sym)
		if err := d.initialize(scope, sym, decl); err != nil {
			return err
		}
	}
	return nil
}

// declareUserNets declares nets of a user-defined nettype. They share the
// nettype's data type and cannot be partially driven.
func (d *Design) declareUserNets(scope *symbols.Scope, n *syntax.VarDecl, nt *symbols.Type) error {
	for _, decl := range n.Declarators {
		t, err := d.applyUnpackedDims(scope, nt, decl.Dims)
		if err != nil {
			return err
		}
		sym := scope.Add(&symbols.Symbol{Kind: symbols.NetSymbol, Name: decl.Name, Loc: locOf(decl), Type: t, UserDefinedNetType: true})
		d.Env.Define(sym, t.DefaultValue())
	}
	return nil
}

func (d *Design) declareNets(scope *symbols.Scope, n *syntax.NetDecl) error {
	base := symbols.Logic
	if n.Type != nil {
		t, err := d.resolveType(scope, n.Type)
		if err != nil {
			return err
		}
		base = t
	}
	if !base.IsIntegral() {
		return errorAt(n, "net type %s is not integral", base)
	}
	for _, decl := range n.Declarators {
		t, err := d.applyUnpackedDims(scope, base, decl.Dims)
		if err != nil {
			return err
		}
		sym := &symbols.Symbol{Kind: symbols.NetSymbol, Name: decl.Name, Loc: locOf(decl), Type: t, Vectored: n.Vectored}
		scope.Add(sym)
		if err := d.initialize(scope, sym, decl); err != nil {
			return err
		}
	}
	return nil
}

// initialize stores the default value of sym, or its initializer when
// one is given. Initializers may use assignment patterns.
func (d *Design) initialize(scope *symbols.Scope, sym *symbols.Symbol, decl *syntax.Declarator) error {
	d.Env.Define(sym, sym.Type.DefaultValue())
	if decl.Init == nil {
		return nil
	}

	bc := d.bc.InScope(scope)
	init := binding.BindRValue(bc, sym.Type, decl.Init)
	if init.Bad() {
		return errorAt(decl, "invalid initializer for %s", sym.Name)
	}
	ctx := d.EvalContext()
	v := init.Eval(ctx)
	if v == nil {
		return errorAt(decl, "initializer for %s is not constant", sym.Name)
	}
	d.Env.Set(sym, v)
	return nil
}
