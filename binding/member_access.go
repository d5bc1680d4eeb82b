package binding

import (
	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/syntax"
	"hdlc/trace"
	"hdlc/types"
)

// MemberAccessExpression is value.member. Offset is a bit offset within
// packed values and an ordinal within unpacked ones.
type MemberAccessExpression struct {
	exprBase
	Value  Expression
	Member *symbols.Symbol
	Offset uint32
}

// MemberSelector names the member being accessed
type MemberSelector struct {
	Name      string
	NameRange diag.Range
}

func newMemberAccess(value Expression, member *symbols.Symbol, offset uint32, rng diag.Range) *MemberAccessExpression {
	e := &MemberAccessExpression{Value: value, Member: member, Offset: offset}
	e.kind = MemberAccessKind
	e.typ = member.Type
	if e.typ == nil {
		e.typ = symbols.Void
	}
	e.rng = rng
	return e
}

// BindMemberAccess binds n, which is the callee of call when call is not
// nil. A call whose callee turns out not to be a subroutine or method is
// rejected.
func BindMemberAccess(bc *Context, n *syntax.MemberExpr, call *syntax.CallExpr) Expression {
	value := Bind(bc.Without(AllowUnbounded), n.Base)
	rng := rangeOf(n)
	if call != nil {
		rng = rangeOf(call)
	}
	sel := MemberSelector{
		Name:      n.Name,
		NameRange: diag.Range{Start: n.NamePos.Offset, End: n.NamePos.Offset + len(n.Name)},
	}

	result := MemberAccessFromSelector(bc, value, sel, call, rng)
	if call == nil || result.Bad() || result.Kind() == CallKind {
		return result
	}
	if call.Parens {
		bc.AddDiag(diag.ExpressionNotCallable, rng)
		return badExpr(result)
	}
	if call.With != nil {
		bc.AddDiag(diag.UnexpectedWithClause, rangeOf(call.With))
	}
	return result
}

// MemberAccessFromSelector resolves sel against value: a struct, union,
// class or covergroup member, a coverpoint member, or a built-in method.
func MemberAccessFromSelector(bc *Context, value Expression, sel MemberSelector, call *syntax.CallExpr, rng diag.Range) Expression {
	if value.Bad() {
		return badExpr(value)
	}
	if sel.Name == "" {
		return badExprAt(value, rng)
	}

	if nv, ok := value.(*NamedValue); ok && nv.Symbol.Kind == symbols.IteratorSymbol {
		if e, ok := tryBindSpecialMethod(bc, value, sel.Name, call, rng); ok {
			return e
		}
	}

	t := value.Type().Canonical()
	var scope *symbols.Scope
	switch {
	case t.IsStruct(), t.IsUnion():
		scope = t.Scope()
	case t.IsClass():
		if base := t.BaseClass(); base != nil && base.IsError() {
			return badExprAt(value, rng)
		}
		scope = t.Scope()
	case t.IsCovergroup():
		scope = t.Scope()
	case t.IsEnum(), t.IsString(), t.IsFixedUnpackedArray(), t.IsDynamicArray(),
		t.IsAssociativeArray(), t.IsQueue(), t.IsEvent(), t.IsSequence():
		if e, ok := tryBindSpecialMethod(bc, value, sel.Name, call, rng); ok {
			return e
		}
		if m := bc.Methods.SystemMethod(t, sel.Name); m != nil {
			return bindMethodCall(bc, m, value, call, rng)
		}
		bc.AddDiag(diag.UnknownSystemMethod, sel.NameRange).Arg(sel.Name).Arg(value.Type())
		return badExprAt(value, rng)
	case t.IsVoid():
		if sym := value.SymbolReference(); sym != nil &&
			(sym.Kind == symbols.CoverpointSymbol || sym.Kind == symbols.CoverCrossSymbol) {
			scope = sym.Members
		}
	}

	if scope == nil {
		if e, ok := tryBindSpecialMethod(bc, value, sel.Name, call, rng); ok {
			return e
		}
		bc.AddDiag(diag.InvalidMemberAccess, sel.NameRange).Arg(sel.Name).Arg(value.Type())
		return badExprAt(value, rng)
	}

	member := findMember(scope, sel.Name)
	if member == nil {
		if e, ok := tryBindSpecialMethod(bc, value, sel.Name, call, rng); ok {
			return e
		}
		bc.AddDiag(diag.UnknownMember, sel.NameRange).Arg(sel.Name).Arg(value.Type())
		return badExprAt(value, rng)
	}

	switch member.Kind {
	case symbols.FieldSymbol:
		return newMemberAccess(value, member, member.Offset, rng)

	case symbols.ClassPropertySymbol:
		ensureVisible(bc, member, sel.NameRange)
		if member.Lifetime == symbols.Automatic && !checkAutomaticMember(bc, rng) {
			return badExprAt(value, rng)
		}
		return newMemberAccess(value, member, 0, rng)

	case symbols.SubroutineSymbol:
		ensureVisible(bc, member, sel.NameRange)
		if !member.Static && !checkAutomaticMember(bc, rng) {
			return badExprAt(value, rng)
		}
		var args []syntax.Expr
		var with syntax.Expr
		if call != nil {
			args, with = call.Args, call.With
		}
		return newSubroutineCall(bc, member, value, args, with, rng)

	case symbols.ConstraintBlockSymbol, symbols.CoverpointSymbol, symbols.CoverCrossSymbol, symbols.CoverageBinSymbol:
		if !bc.IsProcedural() {
			bc.AddDiag(diag.DynamicNotProcedural, rng)
			return badExprAt(value, rng)
		}
		e := newMemberAccess(value, member, 0, rng)
		e.typ = symbols.Void
		return e

	case symbols.EnumValueSymbol:
		return newNamedValue(member, rng)
	}

	if member.IsValue() {
		return newMemberAccess(value, member, 0, rng)
	}
	bc.AddDiag(diag.InvalidClassAccess, sel.NameRange).Arg(sel.Name).Arg(value.Type())
	return badExprAt(value, rng)
}

// checkAutomaticMember rejects per-object members where no object exists:
// outside procedural code and inside assertions.
func checkAutomaticMember(bc *Context, rng diag.Range) bool {
	if !bc.IsProcedural() {
		bc.AddDiag(diag.DynamicNotProcedural, rng)
		return false
	}
	if bc.Has(AssertionExpr) {
		bc.AddDiag(diag.ClassMemberInAssertion, rng)
		return false
	}
	return true
}

// findMember looks name up in scope and, for classes, in each base class
func findMember(scope *symbols.Scope, name string) *symbols.Symbol {
	if m := scope.Find(name); m != nil {
		return m
	}
	if scope.Type == nil || !scope.Type.IsClass() {
		return nil
	}
	for base := scope.Type.BaseClass(); base != nil && base.IsClass(); base = base.BaseClass() {
		if m := base.Scope().Find(name); m != nil {
			return m
		}
	}
	return nil
}

// tryBindSpecialMethod binds a method that belongs to the symbol value
// refers to rather than to its type: rand_mode on rand properties and
// index on iterators.
func tryBindSpecialMethod(bc *Context, value Expression, name string, call *syntax.CallExpr, rng diag.Range) (Expression, bool) {
	sym := value.SymbolReference()
	if sym == nil {
		return nil, false
	}

	var m *Method
	if name == "rand_mode" {
		if sym.Rand == symbols.RandNone {
			return nil, false
		}
		m = bc.Methods.BuiltinMethod(symbols.ClassPropertySymbol, name)
	} else {
		m = bc.Methods.BuiltinMethod(sym.Kind, name)
	}
	if m == nil {
		return nil, false
	}
	return bindMethodCall(bc, m, value, call, rng), true
}

func (e *MemberAccessExpression) SymbolReference() *symbols.Symbol { return e.Member }

// notConstant reports members that only exist at run time
func (e *MemberAccessExpression) notConstant() bool {
	vt := e.Value.Type()
	return vt.IsClass() || vt.IsCovergroup() || e.typ.IsVoid()
}

func (e *MemberAccessExpression) Eval(ctx *eval.Context) types.Value {
	if e.notConstant() {
		ctx.AddDiag(diag.ConstEvalNotConstant, e.rng)
		return nil
	}
	cv := e.Value.Eval(ctx)
	if cv == nil {
		return nil
	}

	valueType := e.Value.Type().Canonical()
	var result types.Value
	switch {
	case valueType.IsUnpackedStruct():
		list, ok := cv.(types.ListValue)
		if !ok {
			return nil
		}
		result = list.At(int(e.Offset))

	case valueType.IsUnpackedUnion():
		u, ok := cv.(types.UnionValue)
		if !ok {
			return nil
		}
		if result = e.readUnion(ctx, valueType, u); result == nil {
			return nil
		}

	default:
		iv, ok := cv.(types.IntValue)
		if !ok {
			return nil
		}
		if valueType.IsPackedUnion() {
			if !e.checkPackedUnionTag(ctx, valueType, iv) {
				return nil
			}
			result = iv.Slice(int32(e.typ.BitWidth())-1, 0)
		} else {
			off := int32(e.Offset)
			result = iv.Slice(int32(e.typ.BitWidth())+off-1, off)
		}
	}

	if trace.IsEnabled() {
		trace.Select(Describe(e), result)
	}
	return result
}

// readUnion reads a member of an unpacked union. Untagged unions allow
// reading an inactive member through its common initial sequence with
// the active one.
func (e *MemberAccessExpression) readUnion(ctx *eval.Context, unionType *symbols.Type, u types.UnionValue) types.Value {
	active, ok := u.ActiveMember()
	if ok && active == int(e.Offset) {
		return u.Value()
	}
	if unionType.IsTaggedUnion() {
		ctx.AddDiag(diag.ConstEvalTaggedUnion, e.rng).Arg(e.Member.Name)
		return nil
	}
	if ok && active < len(unionType.Fields()) {
		if v := translateUnionMember(unionType.Fields()[active].Type, u.Value(), e.typ); v != nil {
			return v
		}
	}
	return e.typ.DefaultValue()
}

// checkPackedUnionTag verifies that the tag bits of a tagged packed
// union select this member.
func (e *MemberAccessExpression) checkPackedUnionTag(ctx *eval.Context, unionType *symbols.Type, v types.IntValue) bool {
	if !unionType.IsTaggedUnion() || unionType.TagBits() == 0 {
		return true
	}
	w := int32(unionType.BitWidth())
	tag, ok := v.Slice(w-1, w-int32(unionType.TagBits())).AsInt32()
	if !ok || tag != int32(e.Offset) {
		ctx.AddDiag(diag.ConstEvalTaggedUnion, e.rng).Arg(e.Member.Name)
		return false
	}
	return true
}

func (e *MemberAccessExpression) EvalLValue(ctx *eval.Context) *eval.LValue {
	if e.notConstant() {
		ctx.AddDiag(diag.ConstEvalNotConstant, e.rng)
		return nil
	}
	lv := e.Value.EvalLValue(ctx)
	if lv == nil {
		return nil
	}

	valueType := e.Value.Type().Canonical()
	switch {
	case valueType.IsUnpackedStruct():
		lv.AddIndex(int32(e.Offset), nil)

	case valueType.IsUnpackedUnion():
		if valueType.IsTaggedUnion() {
			u, ok := lv.Resolve().(types.UnionValue)
			active, has := u.ActiveMember()
			if !ok || !has || active != int(e.Offset) {
				ctx.AddDiag(diag.ConstEvalTaggedUnion, e.rng).Arg(e.Member.Name)
				return nil
			}
		}
		lv.AddIndex(int32(e.Offset), e.typ.DefaultValue())

	case valueType.IsPackedUnion():
		iv, ok := lv.Load().(types.IntValue)
		if !ok || !e.checkPackedUnionTag(ctx, valueType, iv) {
			return nil
		}
		lv.AddBitSlice(e.SelectRange())

	default:
		lv.AddBitSlice(e.SelectRange())
	}
	return lv
}

// SelectRange is the storage range this member occupies within its
// container, in the units the container uses for its LValue steps.
func (e *MemberAccessExpression) SelectRange() types.ConstantRange {
	valueType := e.Value.Type().Canonical()
	off := int32(e.Offset)
	switch {
	case valueType.IsUnpackedStruct():
		return types.ConstantRange{Left: off, Right: off}
	case valueType.IsUnpackedUnion():
		return types.ConstantRange{}
	case valueType.IsPackedUnion():
		return types.ConstantRange{Left: int32(e.typ.BitWidth()) - 1, Right: 0}
	}
	return types.ConstantRange{Left: int32(e.typ.BitWidth()) + off - 1, Right: off}
}

func (e *MemberAccessExpression) RequireLValue(bc *Context, prefix Expression) bool {
	if !e.Value.Type().IsClass() {
		if e.Member.ImmutableCoverageOption && !isWithinCovergroup(e.Member, bc.Scope) {
			bc.AddDiag(diag.CoverOptionImmutable, e.rng).Arg(e.Member.Name)
			return false
		}
		if sym := e.Value.SymbolReference(); sym != nil && sym.Kind == symbols.NetSymbol && sym.UserDefinedNetType {
			bc.AddDiag(diag.UserDefPartialDriver, e.rng).Arg(sym.Name)
		}
		if prefix == nil {
			prefix = e
		}
		return e.Value.RequireLValue(bc, prefix)
	}

	switch {
	case e.Member.IsVariable():
		if prefix == nil {
			prefix = e
		}
		bc.Drivers.Add(bc, e.Member, prefix)
		return checkVariableAssignment(bc, e.Member, e.rng)
	case e.Member.Kind == symbols.ModportPortSymbol:
		return true
	}
	bc.AddDiag(diag.ExpressionNotAssignable, e.rng).Note(diag.NoteDeclarationHere, e.Member.Loc)
	return false
}

// isWithinCovergroup reports whether scope is the covergroup, coverpoint
// or cross that owns the coverage option member.
func isWithinCovergroup(member *symbols.Symbol, scope *symbols.Scope) bool {
	for sc := member.Parent; sc != nil; sc = sc.Parent {
		switch sc.Kind {
		case symbols.ScopeCovergroup, symbols.ScopeCoverpoint, symbols.ScopeCoverCross:
			return sc == scope
		}
	}
	return false
}
