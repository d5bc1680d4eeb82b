package syntax

import "hdlc/types"

// Node is the base interface for all syntax nodes
type Node interface {
	Position() Position
	End() int
}

// Expr represents an expression node
type Expr interface {
	Node
	exprNode()
}

// Span records where a node starts and the offset just past its end
type Span struct {
	Pos    Position
	EndOff int
}

func (s Span) Position() Position { return s.Pos }
func (s Span) End() int           { return s.EndOff }

// IdentifierExpr is a simple name reference
type IdentifierExpr struct {
	Span
	Name string
}

// LiteralExpr is an integer literal
type LiteralExpr struct {
	Span
	Text  string
	Value types.IntValue
}

// StringExpr is a string literal
type StringExpr struct {
	Span
	Value string
}

// UnboundedExpr is the $ sentinel
type UnboundedExpr struct {
	Span
}

// NewExpr is a class or covergroup constructor call
type NewExpr struct {
	Span
}

// UnaryExpr represents a unary + or -
type UnaryExpr struct {
	Span
	Operator TokenType
	Operand  Expr
}

// BinaryExpr represents a binary operation
type BinaryExpr struct {
	Span
	Left     Expr
	Operator TokenType
	Right    Expr
}

// ParenExpr represents a parenthesized expression
type ParenExpr struct {
	Span
	Expr Expr
}

// ConcatExpr is {a, b, ...}
type ConcatExpr struct {
	Span
	Elements []Expr
}

// StreamExpr is {>>{a, b}} or {<<{a, b}}
type StreamExpr struct {
	Span
	LeftToRight bool
	SliceSize   Expr
	Elements    []Expr
}

// PatternItem is one entry of an assignment pattern. Key is nil for
// positional entries; Default marks the default: entry.
type PatternItem struct {
	Key     Expr
	Default bool
	Value   Expr
}

// AssignPatternExpr is '{...}
type AssignPatternExpr struct {
	Span
	Items []PatternItem
}

// IndexExpr is an element select base[index]
type IndexExpr struct {
	Span
	Base  Expr
	Index Expr
}

// RangeKind distinguishes the three part-select forms
type RangeKind int

const (
	RangeSimple      RangeKind = iota // [a:b]
	RangeIndexedUp                    // [a+:w]
	RangeIndexedDown                  // [a-:w]
)

// RangeExpr is a part select base[left:right], base[left+:right] or
// base[left-:right]
type RangeExpr struct {
	Span
	Base  Expr
	Kind  RangeKind
	Left  Expr
	Right Expr
}

// MemberExpr is base.name
type MemberExpr struct {
	Span
	Base    Expr
	Name    string
	NamePos Position
}

// CallExpr is callee(args) with an optional with clause. Parens is
// false for a bare method name followed by a with clause.
type CallExpr struct {
	Span
	Callee Expr
	Args   []Expr
	Parens bool
	With   Expr
}

func (*IdentifierExpr) exprNode()    {}
func (*LiteralExpr) exprNode()       {}
func (*StringExpr) exprNode()        {}
func (*UnboundedExpr) exprNode()     {}
func (*NewExpr) exprNode()           {}
func (*UnaryExpr) exprNode()         {}
func (*BinaryExpr) exprNode()        {}
func (*ParenExpr) exprNode()         {}
func (*ConcatExpr) exprNode()        {}
func (*StreamExpr) exprNode()        {}
func (*AssignPatternExpr) exprNode() {}
func (*IndexExpr) exprNode()         {}
func (*RangeExpr) exprNode()         {}
func (*MemberExpr) exprNode()        {}
func (*CallExpr) exprNode()          {}

// AssignStmt is target = value, the statement form the engine evaluates
// writes through
type AssignStmt struct {
	Span
	Target Expr
	Value  Expr
}
