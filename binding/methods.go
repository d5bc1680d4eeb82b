package binding

import (
	"strings"

	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/syntax"
	"hdlc/types"
)

// Method describes a built-in method: either one attached to a kind of
// symbol (iterator index, rand_mode) or a system method of a type.
type Method struct {
	Name      string
	MinArgs   int
	MaxArgs   int
	AllowWith bool

	// NonConstant methods depend on simulation state and never fold
	NonConstant bool

	// ArgTypes gives the formal type of each argument for a receiver of
	// type recv. A nil entry accepts any integral value.
	ArgTypes func(recv *symbols.Type) []*symbols.Type

	// Result computes the return type; with is the bound with clause or
	// nil.
	Result func(recv *symbols.Type, with Expression) *symbols.Type

	Eval func(ctx *eval.Context, c *CallExpression) types.Value
}

// MethodResolver finds built-in methods by name
type MethodResolver interface {
	// BuiltinMethod returns a method available on every symbol of kind
	BuiltinMethod(kind symbols.SymbolKind, name string) *Method

	// SystemMethod returns a method of the type t
	SystemMethod(t *symbols.Type, name string) *Method
}

type methodCatalog struct {
	builtin map[symbols.SymbolKind]map[string]*Method
	system  map[symbols.TypeKind]map[string]*Method
}

func (c *methodCatalog) BuiltinMethod(kind symbols.SymbolKind, name string) *Method {
	return c.builtin[kind][name]
}

func (c *methodCatalog) SystemMethod(t *symbols.Type, name string) *Method {
	return c.system[t.Canonical().Kind][name]
}

func resultOf(t *symbols.Type) func(*symbols.Type, Expression) *symbols.Type {
	return func(*symbols.Type, Expression) *symbols.Type { return t }
}

func receiverType(recv *symbols.Type, _ Expression) *symbols.Type { return recv }

var defaultCatalog = newDefaultCatalog()

// DefaultMethods returns the standard built-in method catalog
func DefaultMethods() MethodResolver { return defaultCatalog }

func newDefaultCatalog() *methodCatalog {
	c := &methodCatalog{
		builtin: map[symbols.SymbolKind]map[string]*Method{},
		system:  map[symbols.TypeKind]map[string]*Method{},
	}

	c.builtin[symbols.IteratorSymbol] = map[string]*Method{
		"index": {Name: "index", Result: resultOf(symbols.Int), Eval: evalIteratorIndex},
	}
	c.builtin[symbols.ClassPropertySymbol] = map[string]*Method{
		"rand_mode": {Name: "rand_mode", MaxArgs: 1, NonConstant: true, Result: resultOf(symbols.Int)},
	}

	c.system[symbols.StringType] = map[string]*Method{
		"len":     {Name: "len", Result: resultOf(symbols.Int), Eval: evalStringLen},
		"toupper": {Name: "toupper", Result: resultOf(symbols.String), Eval: evalStringCase(strings.ToUpper)},
		"tolower": {Name: "tolower", Result: resultOf(symbols.String), Eval: evalStringCase(strings.ToLower)},
		"getc": {
			Name: "getc", MinArgs: 1, MaxArgs: 1,
			ArgTypes: func(*symbols.Type) []*symbols.Type { return []*symbols.Type{symbols.Int} },
			Result:   resultOf(symbols.Byte),
			Eval:     evalStringGetc,
		},
	}

	arrayMethods := map[string]*Method{
		"size": {Name: "size", Result: resultOf(symbols.Int), Eval: evalSize},
		"sum": {
			Name: "sum", AllowWith: true,
			Result: func(recv *symbols.Type, with Expression) *symbols.Type {
				if with != nil {
					return with.Type()
				}
				return recv.ArrayElementType()
			},
			Eval: evalArraySum,
		},
	}
	c.system[symbols.FixedUnpackedArrayType] = arrayMethods
	c.system[symbols.DynamicArrayType] = arrayMethods
	c.system[symbols.QueueType] = arrayMethods

	c.system[symbols.AssociativeArrayType] = map[string]*Method{
		"num":  {Name: "num", Result: resultOf(symbols.Int), Eval: evalSize},
		"size": {Name: "size", Result: resultOf(symbols.Int), Eval: evalSize},
		"exists": {
			Name: "exists", MinArgs: 1, MaxArgs: 1,
			ArgTypes: func(recv *symbols.Type) []*symbols.Type {
				return []*symbols.Type{recv.AssociativeIndexType()}
			},
			Result: resultOf(symbols.Int),
			Eval:   evalExists,
		},
	}

	c.system[symbols.EnumType] = map[string]*Method{
		"first": {Name: "first", Result: receiverType, Eval: evalEnumEnd(true)},
		"last":  {Name: "last", Result: receiverType, Eval: evalEnumEnd(false)},
		"name":  {Name: "name", Result: resultOf(symbols.String), Eval: evalEnumName},
		"num":   {Name: "num", Result: resultOf(symbols.Int), Eval: evalEnumNum},
	}

	c.system[symbols.EventType] = map[string]*Method{
		"triggered": {Name: "triggered", NonConstant: true, Result: resultOf(symbols.Bit)},
	}
	return c
}

// CallExpression is a call of a user subroutine or a built-in method.
// Receiver is nil for a free subroutine.
type CallExpression struct {
	exprBase
	Subroutine *symbols.Symbol
	Method     *Method
	Receiver   Expression
	Args       []Expression

	// With and Iterator are set for methods taking a with clause; the
	// clause is bound with Iterator in scope as "item".
	With     Expression
	Iterator *symbols.Symbol
}

// Name returns the called subroutine or method name
func (e *CallExpression) Name() string {
	if e.Subroutine != nil {
		return e.Subroutine.Name
	}
	return e.Method.Name
}

func checkArgCount(bc *Context, name string, lo, hi, have int, rng diag.Range) bool {
	if have < lo {
		bc.AddDiag(diag.TooFewArguments, rng).Arg(name).Arg(lo).Arg(have)
		return false
	}
	if have > hi {
		bc.AddDiag(diag.TooManyArguments, rng).Arg(name).Arg(hi).Arg(have)
		return false
	}
	return true
}

// newSubroutineCall binds a call of a user subroutine. receiver is the
// object for method calls and nil otherwise.
func newSubroutineCall(bc *Context, sub *symbols.Symbol, receiver Expression,
	args []syntax.Expr, with syntax.Expr, rng diag.Range) Expression {

	if !checkArgCount(bc, sub.Name, len(sub.Args), len(sub.Args), len(args), rng) {
		return badExprAt(receiver, rng)
	}

	e := &CallExpression{Subroutine: sub, Receiver: receiver}
	e.kind = CallKind
	e.typ = sub.Type
	if e.typ == nil {
		e.typ = symbols.Void
	}
	e.rng = rng

	for i, a := range args {
		arg := BindRValue(bc, sub.Args[i].Type, a)
		if arg.Bad() {
			return badExpr(e)
		}
		e.Args = append(e.Args, arg)
	}
	if with != nil {
		bc.AddDiag(diag.UnexpectedWithClause, rangeOf(with))
	}
	return e
}

// bindMethodCall binds a built-in method call on receiver. call is nil
// when the method is named without parentheses.
func bindMethodCall(bc *Context, m *Method, receiver Expression, call *syntax.CallExpr, rng diag.Range) Expression {
	var args []syntax.Expr
	var with syntax.Expr
	if call != nil {
		args = call.Args
		with = call.With
	}
	if !checkArgCount(bc, m.Name, m.MinArgs, m.MaxArgs, len(args), rng) {
		return badExprAt(receiver, rng)
	}

	recvType := receiver.Type()
	e := &CallExpression{Method: m, Receiver: receiver}
	e.kind = CallKind
	e.rng = rng

	var formals []*symbols.Type
	if m.ArgTypes != nil {
		formals = m.ArgTypes(recvType)
	}
	for i, a := range args {
		var arg Expression
		if i < len(formals) && formals[i] != nil {
			arg = BindRValue(bc, formals[i], a)
		} else {
			arg = Bind(bc, a)
			if !bc.RequireIntegral(arg) {
				return badExprAt(receiver, rng)
			}
		}
		if arg.Bad() {
			return badExprAt(receiver, rng)
		}
		e.Args = append(e.Args, arg)
	}

	if with != nil {
		if !m.AllowWith {
			bc.AddDiag(diag.UnexpectedWithClause, rangeOf(with))
		} else {
			scope := symbols.NewScope(symbols.ScopeProcedural, m.Name, bc.Scope)
			e.Iterator = scope.Add(&symbols.Symbol{
				Kind: symbols.IteratorSymbol,
				Name: "item",
				Type: recvType.ArrayElementType(),
			})
			e.With = Bind(bc.InScope(scope), with)
			if !bc.RequireIntegral(e.With) {
				return badExprAt(receiver, rng)
			}
		}
	}

	e.typ = m.Result(recvType, e.With)
	if m.Name == "sum" && !e.typ.IsIntegral() {
		bc.AddDiag(diag.ExprMustBeIntegral, rng).Arg(e.typ)
		return badExprAt(receiver, rng)
	}
	return e
}

func (e *CallExpression) Eval(ctx *eval.Context) types.Value {
	if e.Subroutine != nil || e.Method.NonConstant || e.Method.Eval == nil {
		ctx.AddDiag(diag.ConstEvalNotConstant, e.rng)
		return nil
	}
	return e.Method.Eval(ctx, e)
}

func (e *CallExpression) SymbolReference() *symbols.Symbol {
	return e.Subroutine
}

// evalArgs evaluates the receiver followed by every argument
func (e *CallExpression) evalArgs(ctx *eval.Context) (types.Value, []types.Value, bool) {
	recv := e.Receiver.Eval(ctx)
	if recv == nil {
		return nil, nil, false
	}
	args := make([]types.Value, len(e.Args))
	for i, a := range e.Args {
		if args[i] = a.Eval(ctx); args[i] == nil {
			return nil, nil, false
		}
	}
	return recv, args, true
}

func evalIteratorIndex(ctx *eval.Context, c *CallExpression) types.Value {
	_, idx, ok := ctx.Iterator(c.Receiver.SymbolReference())
	if !ok {
		ctx.AddDiag(diag.ConstEvalNotConstant, c.rng)
		return nil
	}
	return types.NewInt(32, true, int64(idx))
}

func evalStringLen(ctx *eval.Context, c *CallExpression) types.Value {
	recv, _, ok := c.evalArgs(ctx)
	if !ok {
		return nil
	}
	return types.NewInt(32, true, int64(types.Size(recv)))
}

func evalStringCase(conv func(string) string) func(*eval.Context, *CallExpression) types.Value {
	return func(ctx *eval.Context, c *CallExpression) types.Value {
		recv, _, ok := c.evalArgs(ctx)
		if !ok {
			return nil
		}
		s, ok := recv.(types.StrValue)
		if !ok {
			return nil
		}
		return types.NewStr(conv(s.Value()))
	}
}

func evalStringGetc(ctx *eval.Context, c *CallExpression) types.Value {
	recv, args, ok := c.evalArgs(ctx)
	if !ok {
		return nil
	}
	s, ok := recv.(types.StrValue)
	if !ok {
		return nil
	}
	idx, ok := asInt32(args[0])
	if !ok || idx < 0 || int(idx) >= types.Size(s) {
		return types.NewInt(8, true, 0)
	}
	return s.ByteAt(int(idx))
}

func evalSize(ctx *eval.Context, c *CallExpression) types.Value {
	recv, _, ok := c.evalArgs(ctx)
	if !ok {
		return nil
	}
	return types.NewInt(32, true, int64(types.Size(recv)))
}

func evalArraySum(ctx *eval.Context, c *CallExpression) types.Value {
	recv, _, ok := c.evalArgs(ctx)
	if !ok {
		return nil
	}
	list, ok := recv.(types.ListValue)
	if !ok {
		return nil
	}

	sum := convertInt(types.NewInt(32, true, 0), c.typ)
	for i, el := range list.Elements() {
		v := el
		if c.With != nil {
			release := ctx.PushIterator(c.Iterator, el, i)
			v = c.With.Eval(ctx)
			release()
		}
		iv, ok := v.(types.IntValue)
		if !ok {
			return nil
		}
		sum = convertInt(sum.Add(convertInt(iv, c.typ)), c.typ)
	}
	return sum
}

func evalExists(ctx *eval.Context, c *CallExpression) types.Value {
	recv, args, ok := c.evalArgs(ctx)
	if !ok {
		return nil
	}
	m, ok := recv.(types.MapValue)
	if !ok {
		return nil
	}
	if _, found := m.Get(args[0]); found {
		return types.NewInt(32, true, 1)
	}
	return types.NewInt(32, true, 0)
}

func evalEnumEnd(first bool) func(*eval.Context, *CallExpression) types.Value {
	return func(ctx *eval.Context, c *CallExpression) types.Value {
		values := c.Receiver.Type().EnumValues()
		if len(values) == 0 {
			return c.typ.DefaultValue()
		}
		if first {
			return values[0].Value
		}
		return values[len(values)-1].Value
	}
}

func evalEnumName(ctx *eval.Context, c *CallExpression) types.Value {
	recv, _, ok := c.evalArgs(ctx)
	if !ok {
		return nil
	}
	for _, v := range c.Receiver.Type().EnumValues() {
		if v.Value.Equal(recv) {
			return types.NewStr(v.Name)
		}
	}
	return types.NewStr("")
}

func evalEnumNum(ctx *eval.Context, c *CallExpression) types.Value {
	return types.NewInt(32, true, int64(len(c.Receiver.Type().EnumValues())))
}

// ensureVisible reports LocalMemberAccess when sym is a local or
// protected class member referenced from outside where it is visible.
func ensureVisible(bc *Context, sym *symbols.Symbol, rng diag.Range) {
	if sym.Vis == symbols.Public {
		return
	}
	owner := sym.ClassScope()
	if owner == nil {
		return
	}

	for sc := bc.Scope; sc != nil; sc = sc.Parent {
		if sc.Kind != symbols.ScopeClass {
			continue
		}
		if sc == owner {
			return
		}
		if sym.Vis == symbols.Protected && derivesFrom(sc.Type, owner) {
			return
		}
	}
	bc.AddDiag(diag.LocalMemberAccess, rng).Arg(sym.Name).Arg(owner.Name).
		Note(diag.NoteDeclarationHere, sym.Loc)
}

func derivesFrom(cls *symbols.Type, owner *symbols.Scope) bool {
	for t := cls; t != nil && t.IsClass(); t = t.BaseClass() {
		if t.Scope() == owner {
			return true
		}
	}
	return false
}
