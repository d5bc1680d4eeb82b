package elab

import (
	"hdlc/binding"
	"hdlc/symbols"
	"hdlc/syntax"
)

// immutableOptions may only be set from inside the covergroup body
var immutableOptions = map[string]bool{
	"per_instance":      true,
	"get_inst_coverage": true,
}

// optionStruct builds the type of the option member of a covergroup,
// coverpoint or cross. Each owner gets its own type so that an option
// field can tell which construct it belongs to.
func optionStruct(owner *symbols.Scope) *symbols.Type {
	specs := []symbols.FieldSpec{
		{Name: "weight", Type: symbols.Int},
		{Name: "goal", Type: symbols.Int},
		{Name: "name", Type: symbols.String},
		{Name: "comment", Type: symbols.String},
		{Name: "at_least", Type: symbols.Int},
		{Name: "auto_bin_max", Type: symbols.Int},
	}
	if owner.Kind == symbols.ScopeCovergroup {
		specs = append(specs,
			symbols.FieldSpec{Name: "per_instance", Type: symbols.Bit},
			symbols.FieldSpec{Name: "get_inst_coverage", Type: symbols.Bit})
	}

	t := symbols.NewUnpackedStruct("option_t", specs)
	t.Scope().Parent = owner
	for _, f := range t.Fields() {
		f.ImmutableCoverageOption = immutableOptions[f.Name]
	}
	return t
}

func (d *Design) declareOption(owner *symbols.Scope, loc syntax.Node) *symbols.Symbol {
	sym := owner.Add(&symbols.Symbol{Kind: symbols.VariableSymbol, Name: "option", Loc: locOf(loc), Type: optionStruct(owner)})
	d.Env.Define(sym, sym.Type.DefaultValue())
	return sym
}

func (d *Design) declareCovergroup(scope *symbols.Scope, n *syntax.CovergroupDecl) error {
	t := symbols.NewCovergroup(n.Name)
	cg := t.Scope()
	cg.Parent = scope
	d.types[n.Name] = t
	d.scopes[n.Name] = cg
	scope.Add(&symbols.Symbol{Kind: symbols.TypeAliasSymbol, Name: n.Name, Loc: locOf(n), Type: t})
	d.declareOption(cg, n)

	for _, item := range n.Items {
		switch it := item.(type) {
		case *syntax.OptionDecl:
			if err := d.setOption(cg, it); err != nil {
				return err
			}

		case *syntax.CoverpointDecl:
			if e := binding.Bind(d.bc.InScope(cg), it.Expr); e.Bad() {
				return errorAt(it.Expr, "invalid coverpoint expression %s", syntax.Format(it.Expr))
			}
			members := symbols.NewScope(symbols.ScopeCoverpoint, it.Name, cg)
			cg.Add(&symbols.Symbol{Kind: symbols.CoverpointSymbol, Name: it.Name, Loc: locOf(it), Members: members})
			d.declareOption(members, it)
			for _, b := range it.Bins {
				members.Add(&symbols.Symbol{Kind: symbols.CoverageBinSymbol, Name: b.Name, Loc: locOf(b), Type: symbols.Void})
			}

		case *syntax.CrossDecl:
			for _, target := range it.Targets {
				if sym := cg.Find(target); sym == nil || sym.Kind != symbols.CoverpointSymbol {
					return errorAt(it, "cross target '%s' is not a coverpoint of %s", target, n.Name)
				}
			}
			members := symbols.NewScope(symbols.ScopeCoverCross, it.Name, cg)
			cg.Add(&symbols.Symbol{Kind: symbols.CoverCrossSymbol, Name: it.Name, Loc: locOf(it), Members: members})
			d.declareOption(members, it)

		default:
			return errorAt(item, "declaration not allowed in a covergroup")
		}
	}
	return nil
}

// setOption runs option.name = value inside the covergroup body, where
// every option is writable.
func (d *Design) setOption(cg *symbols.Scope, n *syntax.OptionDecl) error {
	target := &syntax.MemberExpr{
		Span:    n.Span,
		Base:    &syntax.IdentifierExpr{Span: syntax.Span{Pos: n.Pos, EndOff: n.Pos.Offset + len("option")}, Name: "option"},
		Name:    n.Name,
		NamePos: n.Pos,
	}
	stmt := &syntax.AssignStmt{Span: n.Span, Target: target, Value: n.Value}
	diags, ok := d.Execute(cg, 0, stmt)
	if !ok {
		msg := "cannot be set"
		if len(diags) > 0 {
			msg = diags[0].Message()
		}
		return errorAt(n, "option.%s: %s", n.Name, msg)
	}
	return nil
}
