package syntax

import (
	"fmt"

	"hdlc/types"
)

// Operator precedence levels (higher = tighter binding)
const (
	precedenceLowest = iota
	precedenceAdditive // + -
	precedenceMultiply // *
	precedenceUnary    // - +
	precedencePostfix  // [] . ()
)

// ParseError is a syntax error with its source position
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Parser parses expressions and declarations
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
	prevEnd int // end offset of the last consumed token
}

// NewParser creates a new Parser instance
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	p.nextToken()
	p.nextToken()
	return p
}

// ParseExpr parses input as a single expression
func ParseExpr(input string) (Expr, error) {
	p := NewParser(input)
	expr, err := p.ParseExpression(precedenceLowest)
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_EOF {
		return nil, p.errorf("unexpected %s after expression", p.current.Type)
	}
	return expr, nil
}

// ParseAssignment parses input as target = value with an optional
// trailing semicolon
func ParseAssignment(input string) (*AssignStmt, error) {
	p := NewParser(input)
	start := p.current.Position
	target, err := p.ParseExpression(precedenceLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.ParseExpression(precedenceLowest)
	if err != nil {
		return nil, err
	}
	stmt := &AssignStmt{Span: p.span(start), Target: target, Value: value}
	if p.current.Type == TOKEN_SEMICOLON {
		p.nextToken()
	}
	if p.current.Type != TOKEN_EOF {
		return nil, p.errorf("unexpected %s after assignment", p.current.Type)
	}
	return stmt, nil
}

func (p *Parser) nextToken() {
	if p.current.Type != TOKEN_EOF || p.current.Value != "" {
		p.prevEnd = p.current.End()
	}
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Pos: p.current.Position, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(t TokenType) (Token, error) {
	tok := p.current
	if tok.Type != t {
		return tok, p.errorf("expected '%s', found '%s'", t, describe(tok))
	}
	p.nextToken()
	return tok, nil
}

func describe(tok Token) string {
	if tok.Type == TOKEN_EOF {
		return "end of input"
	}
	return tok.Value
}

func (p *Parser) span(start Position) Span {
	return Span{Pos: start, EndOff: p.prevEnd}
}

// ParseExpression parses an expression using precedence climbing
func (p *Parser) ParseExpression(precedence int) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	left, err = p.parsePostfix(left)
	if err != nil {
		return nil, err
	}

	for {
		prec := binaryPrecedence(p.current.Type)
		if prec == precedenceLowest || prec <= precedence {
			return left, nil
		}
		op := p.current.Type
		p.nextToken()
		right, err := p.ParseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Span:     Span{Pos: left.Position(), EndOff: p.prevEnd},
			Left:     left,
			Operator: op,
			Right:    right,
		}
	}
}

func binaryPrecedence(op TokenType) int {
	switch op {
	case TOKEN_PLUS, TOKEN_MINUS:
		return precedenceAdditive
	case TOKEN_STAR:
		return precedenceMultiply
	default:
		return precedenceLowest
	}
}

func (p *Parser) parsePrefix() (Expr, error) {
	start := p.current.Position
	switch p.current.Type {
	case TOKEN_IDENTIFIER:
		name := p.current.Value
		p.nextToken()
		return &IdentifierExpr{Span: p.span(start), Name: name}, nil

	case TOKEN_NUMBER:
		text := p.current.Value
		v, err := types.ParseLiteral(text)
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		p.nextToken()
		return &LiteralExpr{Span: p.span(start), Text: text, Value: v}, nil

	case TOKEN_STRING:
		s := p.current.Literal
		p.nextToken()
		return &StringExpr{Span: p.span(start), Value: s}, nil

	case TOKEN_DOLLAR:
		p.nextToken()
		return &UnboundedExpr{Span: p.span(start)}, nil

	case TOKEN_NEW:
		p.nextToken()
		if p.current.Type == TOKEN_LPAREN && p.peek.Type == TOKEN_RPAREN {
			p.nextToken()
			p.nextToken()
		}
		return &NewExpr{Span: p.span(start)}, nil

	case TOKEN_MINUS, TOKEN_PLUS:
		op := p.current.Type
		p.nextToken()
		operand, err := p.ParseExpression(precedenceUnary)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Span: p.span(start), Operator: op, Operand: operand}, nil

	case TOKEN_LPAREN:
		p.nextToken()
		inner, err := p.ParseExpression(precedenceLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return &ParenExpr{Span: p.span(start), Expr: inner}, nil

	case TOKEN_LBRACE:
		return p.parseConcatenation()

	case TOKEN_TICK_LBRACE:
		return p.parseAssignPattern()

	default:
		return nil, p.errorf("unexpected '%s' in expression", describe(p.current))
	}
}

func (p *Parser) parsePostfix(left Expr) (Expr, error) {
	for {
		switch p.current.Type {
		case TOKEN_LBRACKET:
			p.nextToken()
			sel, err := p.parseSelect(left)
			if err != nil {
				return nil, err
			}
			left = sel

		case TOKEN_DOT:
			p.nextToken()
			if p.current.Type != TOKEN_IDENTIFIER {
				return nil, p.errorf("expected member name after '.'")
			}
			left = &MemberExpr{
				Span:    Span{Pos: left.Position(), EndOff: p.current.End()},
				Base:    left,
				Name:    p.current.Value,
				NamePos: p.current.Position,
			}
			p.nextToken()

		case TOKEN_LPAREN:
			switch left.(type) {
			case *IdentifierExpr, *MemberExpr:
			default:
				return left, nil
			}
			p.nextToken()
			args, err := p.parseExprList(TOKEN_RPAREN)
			if err != nil {
				return nil, err
			}
			left = &CallExpr{Span: Span{Pos: left.Position(), EndOff: p.prevEnd}, Callee: left, Args: args, Parens: true}

		case TOKEN_WITH:
			call, ok := left.(*CallExpr)
			if !ok {
				call = &CallExpr{Callee: left}
			}
			p.nextToken()
			if _, err := p.expect(TOKEN_LPAREN); err != nil {
				return nil, err
			}
			with, err := p.ParseExpression(precedenceLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TOKEN_RPAREN); err != nil {
				return nil, err
			}
			call.With = with
			call.Span = Span{Pos: left.Position(), EndOff: p.prevEnd}
			left = call

		default:
			return left, nil
		}
	}
}

// parseSelect parses the bracketed part of base[...] after '['
func (p *Parser) parseSelect(base Expr) (Expr, error) {
	first, err := p.ParseExpression(precedenceLowest)
	if err != nil {
		return nil, err
	}

	kind := RangeSimple
	switch p.current.Type {
	case TOKEN_RBRACKET:
		p.nextToken()
		return &IndexExpr{Span: Span{Pos: base.Position(), EndOff: p.prevEnd}, Base: base, Index: first}, nil
	case TOKEN_COLON:
	case TOKEN_PLUSCOLON:
		kind = RangeIndexedUp
	case TOKEN_MINUSCOLON:
		kind = RangeIndexedDown
	default:
		return nil, p.errorf("expected ']' or range separator, found '%s'", describe(p.current))
	}
	p.nextToken()

	second, err := p.ParseExpression(precedenceLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_RBRACKET); err != nil {
		return nil, err
	}
	return &RangeExpr{
		Span:  Span{Pos: base.Position(), EndOff: p.prevEnd},
		Base:  base,
		Kind:  kind,
		Left:  first,
		Right: second,
	}, nil
}

// parseExprList parses comma separated expressions up to and including
// the closing token
func (p *Parser) parseExprList(closing TokenType) ([]Expr, error) {
	var list []Expr
	if p.current.Type == closing {
		p.nextToken()
		return list, nil
	}
	for {
		e, err := p.ParseExpression(precedenceLowest)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken()
	}
	if _, err := p.expect(closing); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parseConcatenation() (Expr, error) {
	start := p.current.Position
	p.nextToken() // consume '{'

	if p.current.Type == TOKEN_LSHIFT || p.current.Type == TOKEN_RSHIFT {
		ltr := p.current.Type == TOKEN_RSHIFT
		p.nextToken()
		var size Expr
		if p.current.Type != TOKEN_LBRACE {
			var err error
			if size, err = p.ParseExpression(precedenceLowest); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(TOKEN_LBRACE); err != nil {
			return nil, err
		}
		elems, err := p.parseExprList(TOKEN_RBRACE)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_RBRACE); err != nil {
			return nil, err
		}
		return &StreamExpr{Span: p.span(start), LeftToRight: ltr, SliceSize: size, Elements: elems}, nil
	}

	elems, err := p.parseExprList(TOKEN_RBRACE)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, &ParseError{Pos: start, Msg: "empty concatenation"}
	}
	return &ConcatExpr{Span: p.span(start), Elements: elems}, nil
}

func (p *Parser) parseAssignPattern() (Expr, error) {
	start := p.current.Position
	p.nextToken() // consume '{

	pat := &AssignPatternExpr{}
	for p.current.Type != TOKEN_RBRACE {
		var item PatternItem
		if p.current.Type == TOKEN_DEFAULT {
			p.nextToken()
			if _, err := p.expect(TOKEN_COLON); err != nil {
				return nil, err
			}
			item.Default = true
		}
		v, err := p.ParseExpression(precedenceLowest)
		if err != nil {
			return nil, err
		}
		if !item.Default && p.current.Type == TOKEN_COLON {
			p.nextToken()
			item.Key = v
			if v, err = p.ParseExpression(precedenceLowest); err != nil {
				return nil, err
			}
		}
		item.Value = v
		pat.Items = append(pat.Items, item)
		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken()
	}
	if _, err := p.expect(TOKEN_RBRACE); err != nil {
		return nil, err
	}
	pat.Span = p.span(start)
	return pat, nil
}
