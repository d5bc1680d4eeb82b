package binding

import (
	"hdlc/diag"
	"hdlc/symbols"
	"hdlc/syntax"
)

// rangeOf converts a syntax node's extent to a diagnostic range
func rangeOf(n syntax.Node) diag.Range {
	return diag.Range{Start: n.Position().Offset, End: n.End()}
}

// Bind binds a self-determined expression. Failures are reported to bc
// and produce an InvalidExpression; Bind itself never fails.
func Bind(bc *Context, expr syntax.Expr) Expression {
	switch n := expr.(type) {
	case *syntax.IdentifierExpr:
		return bindName(bc, n)

	case *syntax.LiteralExpr:
		return newIntegerLiteral(n.Value, rangeOf(n))

	case *syntax.StringExpr:
		e := &StringLiteral{Value: n.Value}
		e.kind = StringLiteralKind
		e.typ = symbols.String
		e.rng = rangeOf(n)
		return e

	case *syntax.UnboundedExpr:
		e := &UnboundedLiteral{}
		e.kind = UnboundedLiteralKind
		e.typ = symbols.Unbounded
		e.rng = rangeOf(n)
		if !bc.Has(AllowUnbounded) {
			bc.AddDiag(diag.UnboundedNotAllowed, e.rng)
			return badExpr(e)
		}
		return e

	case *syntax.NewExpr:
		bc.AddDiag(diag.NotAValue, rangeOf(n)).Arg("new")
		return badExprAt(nil, rangeOf(n))

	case *syntax.UnaryExpr:
		return bindUnary(bc, n)

	case *syntax.BinaryExpr:
		return bindBinary(bc, n)

	case *syntax.ParenExpr:
		return Bind(bc, n.Expr)

	case *syntax.ConcatExpr:
		return bindConcatenation(bc, n)

	case *syntax.StreamExpr:
		return bindStreaming(bc, n)

	case *syntax.AssignPatternExpr:
		bc.AddDiag(diag.AssignmentPatternNoContext, rangeOf(n))
		return badExprAt(nil, rangeOf(n))

	case *syntax.IndexExpr:
		value := Bind(bc.Without(AllowUnbounded), n.Base)
		return BindElementSelect(bc, value, n.Index, rangeOf(n))

	case *syntax.RangeExpr:
		value := Bind(bc.Without(AllowUnbounded), n.Base)
		return BindRangeSelect(bc, value, n)

	case *syntax.MemberExpr:
		return BindMemberAccess(bc, n, nil)

	case *syntax.CallExpr:
		return bindCall(bc, n)
	}

	bc.AddDiag(diag.NotAValue, rangeOf(expr)).Arg(syntax.Format(expr))
	return badExprAt(nil, rangeOf(expr))
}

// BindRValue binds expr as the source of an assignment to target,
// inserting a conversion when the types differ. Assignment patterns take
// their shape from target.
func BindRValue(bc *Context, target *symbols.Type, expr syntax.Expr) Expression {
	if p, ok := expr.(*syntax.AssignPatternExpr); ok {
		return bindAssignmentPattern(bc, target, p)
	}
	return convertAssignment(bc, Bind(bc, expr), target)
}

func bindName(bc *Context, n *syntax.IdentifierExpr) Expression {
	rng := rangeOf(n)
	sym := bc.Scope.Lookup(n.Name)
	if sym == nil {
		bc.AddDiag(diag.UndeclaredIdentifier, rng).Arg(n.Name)
		return badExprAt(nil, rng)
	}

	switch {
	case sym.Kind == symbols.SubroutineSymbol:
		return newSubroutineCall(bc, sym, nil, nil, nil, rng)
	case sym.Kind == symbols.CoverpointSymbol, sym.Kind == symbols.CoverCrossSymbol:
		return newNamedValue(sym, rng)
	case !sym.IsValue():
		bc.AddDiag(diag.NotAValue, rng).Arg(n.Name).Note(diag.NoteDeclarationHere, sym.Loc)
		return badExprAt(nil, rng)
	}

	if sym.Kind == symbols.ClassPropertySymbol {
		ensureVisible(bc, sym, rng)
	}
	return newNamedValue(sym, rng)
}

func bindCall(bc *Context, n *syntax.CallExpr) Expression {
	switch callee := n.Callee.(type) {
	case *syntax.MemberExpr:
		return BindMemberAccess(bc, callee, n)
	case *syntax.IdentifierExpr:
		if sym := bc.Scope.Lookup(callee.Name); sym != nil && sym.Kind == symbols.SubroutineSymbol {
			return newSubroutineCall(bc, sym, nil, n.Args, n.With, rangeOf(n))
		}
	}

	callee := Bind(bc, n.Callee)
	if callee.Bad() {
		return badExpr(callee)
	}
	bc.AddDiag(diag.ExpressionNotCallable, rangeOf(n))
	return badExprAt(callee, rangeOf(n))
}
