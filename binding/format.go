package binding

import (
	"strconv"
	"strings"

	"hdlc/syntax"
	"hdlc/types"
)

// Describe renders a bound expression as source-like text for traces
// and test output
func Describe(e Expression) string {
	switch n := e.(type) {
	case *IntegerLiteral:
		if n.Value.Width() == 32 && n.Value.IsSigned() {
			if v, ok := n.Value.AsInt64(); ok {
				return strconv.FormatInt(v, 10)
			}
		}
		return n.Value.String()
	case *StringLiteral:
		return strconv.Quote(n.Value)
	case *UnboundedLiteral:
		return "$"
	case *NamedValue:
		return n.Symbol.Name
	case *UnaryExpression:
		return "-" + Describe(n.Operand)
	case *BinaryExpression:
		op := "*"
		switch n.Op {
		case syntax.TOKEN_PLUS:
			op = "+"
		case syntax.TOKEN_MINUS:
			op = "-"
		}
		return Describe(n.Left) + " " + op + " " + Describe(n.Right)
	case *ConversionExpression:
		return Describe(n.Operand)
	case *ConcatenationExpression:
		return "{" + describeList(n.Operands) + "}"
	case *StreamingConcatenation:
		op := "<<"
		if n.LeftToRight {
			op = ">>"
		}
		if n.SliceSize != 1 {
			op += strconv.Itoa(int(n.SliceSize))
		}
		return "{" + op + "{" + describeList(n.Operands) + "}}"
	case *AssignmentPattern:
		return "'{" + describeList(n.Elements) + "}"
	case *ElementSelectExpression:
		return Describe(n.Value) + "[" + Describe(n.Selector) + "]"
	case *RangeSelectExpression:
		sep := ":"
		switch n.SelectionKind {
		case syntax.RangeIndexedUp:
			sep = "+:"
		case syntax.RangeIndexedDown:
			sep = "-:"
		}
		return Describe(n.Value) + "[" + Describe(n.Left) + sep + Describe(n.Right) + "]"
	case *MemberAccessExpression:
		return Describe(n.Value) + "." + n.Member.Name
	case *CallExpression:
		s := n.Name()
		if n.Receiver != nil {
			s = Describe(n.Receiver) + "." + s
		}
		s += "(" + describeList(n.Args) + ")"
		if n.With != nil {
			s += " with (" + Describe(n.With) + ")"
		}
		return s
	}
	return "<invalid>"
}

func describeList(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = Describe(e)
	}
	return strings.Join(parts, ", ")
}

// DescribeValue renders a constant for traces and test output; nil is
// shown as the absence of a value.
func DescribeValue(v types.Value) string {
	if v == nil {
		return "<no value>"
	}
	return v.String()
}
