package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Format converts an expression back to source text
func Format(expr Expr) string {
	return formatExpr(expr, precedenceLowest)
}

func formatExpr(expr Expr, parentPrecedence int) string {
	switch e := expr.(type) {
	case *IdentifierExpr:
		return e.Name

	case *LiteralExpr:
		return e.Text

	case *StringExpr:
		return strconv.Quote(e.Value)

	case *UnboundedExpr:
		return "$"

	case *NewExpr:
		return "new"

	case *UnaryExpr:
		return formatOp(e.Operator) + formatExpr(e.Operand, precedenceUnary)

	case *BinaryExpr:
		prec := binaryPrecedence(e.Operator)
		left := formatExpr(e.Left, prec)
		right := formatExpr(e.Right, prec+1)
		result := left + " " + formatOp(e.Operator) + " " + right
		if prec < parentPrecedence {
			return "(" + result + ")"
		}
		return result

	case *ParenExpr:
		return "(" + formatExpr(e.Expr, precedenceLowest) + ")"

	case *ConcatExpr:
		return "{" + formatList(e.Elements) + "}"

	case *StreamExpr:
		op := "<<"
		if e.LeftToRight {
			op = ">>"
		}
		if e.SliceSize != nil {
			op += formatExpr(e.SliceSize, precedenceLowest)
		}
		return "{" + op + "{" + formatList(e.Elements) + "}}"

	case *AssignPatternExpr:
		var items []string
		for _, it := range e.Items {
			v := formatExpr(it.Value, precedenceLowest)
			switch {
			case it.Default:
				items = append(items, "default: "+v)
			case it.Key != nil:
				items = append(items, formatExpr(it.Key, precedenceLowest)+": "+v)
			default:
				items = append(items, v)
			}
		}
		return "'{" + strings.Join(items, ", ") + "}"

	case *IndexExpr:
		return formatExpr(e.Base, precedencePostfix) + "[" + formatExpr(e.Index, precedenceLowest) + "]"

	case *RangeExpr:
		sep := ":"
		switch e.Kind {
		case RangeIndexedUp:
			sep = "+:"
		case RangeIndexedDown:
			sep = "-:"
		}
		return formatExpr(e.Base, precedencePostfix) + "[" + formatExpr(e.Left, precedenceLowest) + sep +
			formatExpr(e.Right, precedenceLowest) + "]"

	case *MemberExpr:
		return formatExpr(e.Base, precedencePostfix) + "." + e.Name

	case *CallExpr:
		s := formatExpr(e.Callee, precedencePostfix)
		if e.Parens {
			s += "(" + formatList(e.Args) + ")"
		}
		if e.With != nil {
			s += " with (" + formatExpr(e.With, precedenceLowest) + ")"
		}
		return s

	default:
		return fmt.Sprintf("<unknown expr: %T>", expr)
	}
}

func formatOp(op TokenType) string {
	switch op {
	case TOKEN_PLUS:
		return "+"
	case TOKEN_MINUS:
		return "-"
	case TOKEN_STAR:
		return "*"
	default:
		return "<unknown op>"
	}
}

func formatList(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = formatExpr(e, precedenceLowest)
	}
	return strings.Join(parts, ", ")
}
