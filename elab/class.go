package elab

import (
	"hdlc/symbols"
	"hdlc/syntax"
)

func visibility(q syntax.Qualifiers) symbols.Visibility {
	switch {
	case q.Local:
		return symbols.Local
	case q.Protected:
		return symbols.Protected
	}
	return symbols.Public
}

func randMode(q syntax.Qualifiers) symbols.RandMode {
	switch {
	case q.RandC:
		return symbols.RandC
	case q.Rand:
		return symbols.Rand
	}
	return symbols.RandNone
}

func (d *Design) declareClass(scope *symbols.Scope, n *syntax.ClassDecl) error {
	var base *symbols.Type
	if n.Extends != "" {
		b, ok := d.types[n.Extends]
		if !ok || !b.IsClass() {
			return errorAt(n, "base class '%s' is not a declared class", n.Extends)
		}
		base = b
	}

	t := symbols.NewClass(n.Name, base)
	cls := t.Scope()
	cls.Parent = scope
	d.types[n.Name] = t
	d.scopes[n.Name] = cls
	scope.Add(&symbols.Symbol{Kind: symbols.TypeAliasSymbol, Name: n.Name, Loc: locOf(n), Type: t})

	for _, item := range n.Items {
		switch it := item.(type) {
		case *syntax.VarDecl:
			if err := d.declareProperties(cls, it); err != nil {
				return err
			}
		case *syntax.FunctionDecl:
			sym, err := d.subroutine(cls, it)
			if err != nil {
				return err
			}
			cls.Add(sym)
		case *syntax.ConstraintDecl:
			cls.Add(&symbols.Symbol{Kind: symbols.ConstraintBlockSymbol, Name: it.Name, Loc: locOf(it), Type: symbols.Void})
		default:
			if err := d.declare(cls, item); err != nil {
				return err
			}
		}
	}
	return nil
}

// declareProperties declares class properties. Properties are per object
// unless declared static; static ones get storage of their own.
func (d *Design) declareProperties(cls *symbols.Scope, n *syntax.VarDecl) error {
	base, err := d.resolveType(cls, n.Type)
	if err != nil {
		return err
	}
	for _, decl := range n.Declarators {
		t, err := d.applyUnpackedDims(cls, base, decl.Dims)
		if err != nil {
			return err
		}
		sym := &symbols.Symbol{
			Kind:     symbols.ClassPropertySymbol,
			Name:     decl.Name,
			Loc:      locOf(decl),
			Type:     t,
			Lifetime: symbols.Automatic,
			Rand:     randMode(n.Qualifiers),
			Vis:      visibility(n.Qualifiers),
			Const:    n.Qualifiers.Const,
		}
		cls.Add(sym)
		if n.Qualifiers.Static {
			sym.Lifetime = symbols.Static
			if err := d.initialize(cls, sym, decl); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Design) subroutine(scope *symbols.Scope, n *syntax.FunctionDecl) (*symbols.Symbol, error) {
	sym := &symbols.Symbol{
		Kind:   symbols.SubroutineSymbol,
		Name:   n.Name,
		Loc:    locOf(n),
		Type:   symbols.Void,
		Static: n.Qualifiers.Static || scope.Kind != symbols.ScopeClass,
		Vis:    visibility(n.Qualifiers),
	}
	if n.ReturnType != nil {
		t, err := d.resolveType(scope, n.ReturnType)
		if err != nil {
			return nil, err
		}
		sym.Type = t
	}
	for _, a := range n.Args {
		t, err := d.resolveType(scope, a.Type)
		if err != nil {
			return nil, err
		}
		sym.Args = append(sym.Args, &symbols.Symbol{Kind: symbols.VariableSymbol, Name: a.Name, Loc: locOf(a), Type: t, Lifetime: symbols.Automatic})
	}
	return sym, nil
}
