package syntax

import (
	"strings"
	"unicode"
)

// Lexer tokenizes source text
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

// NewLexer creates a new Lexer instance
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipTrivia skips whitespace and // or /* */ comments
func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipTrivia()
	tok := Token{Position: l.pos()}

	single := func(t TokenType) Token {
		tok.Type = t
		tok.Value = string(l.ch)
		l.readChar()
		return tok
	}
	double := func(t TokenType) Token {
		tok.Type = t
		tok.Value = l.input[l.position : l.position+2]
		l.readChar()
		l.readChar()
		return tok
	}

	switch l.ch {
	case 0:
		tok.Type = TOKEN_EOF
		return tok
	case '+':
		if l.peekChar() == ':' {
			return double(TOKEN_PLUSCOLON)
		}
		return single(TOKEN_PLUS)
	case '-':
		if l.peekChar() == ':' {
			return double(TOKEN_MINUSCOLON)
		}
		return single(TOKEN_MINUS)
	case '*':
		return single(TOKEN_STAR)
	case '=':
		return single(TOKEN_ASSIGN)
	case '<':
		if l.peekChar() == '<' {
			return double(TOKEN_LSHIFT)
		}
		return single(TOKEN_ILLEGAL)
	case '>':
		if l.peekChar() == '>' {
			return double(TOKEN_RSHIFT)
		}
		return single(TOKEN_ILLEGAL)
	case '(':
		return single(TOKEN_LPAREN)
	case ')':
		return single(TOKEN_RPAREN)
	case '{':
		return single(TOKEN_LBRACE)
	case '}':
		return single(TOKEN_RBRACE)
	case '[':
		return single(TOKEN_LBRACKET)
	case ']':
		return single(TOKEN_RBRACKET)
	case ',':
		return single(TOKEN_COMMA)
	case ';':
		return single(TOKEN_SEMICOLON)
	case '.':
		return single(TOKEN_DOT)
	case ':':
		return single(TOKEN_COLON)
	case '$':
		return single(TOKEN_DOLLAR)
	case '"':
		return l.readString()
	case '\'':
		if l.peekChar() == '{' {
			return double(TOKEN_TICK_LBRACE)
		}
		return l.readNumber()
	}

	if isDigit(l.ch) {
		return l.readNumber()
	}
	if isLetter(l.ch) {
		start := l.position
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '$' {
			l.readChar()
		}
		tok.Value = l.input[start:l.position]
		tok.Type = LookupKeyword(tok.Value)
		return tok
	}
	return single(TOKEN_ILLEGAL)
}

// readNumber reads a decimal or based literal: 42, 8'hA5, 'd3, 4'sb10xz, '1
func (l *Lexer) readNumber() Token {
	tok := Token{Type: TOKEN_NUMBER, Position: l.pos()}
	start := l.position
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	if l.ch == '\'' {
		l.readChar()
		if l.ch == 's' || l.ch == 'S' {
			l.readChar()
		}
		if strings.IndexByte("bBoOdDhH", l.ch) >= 0 && l.ch != 0 {
			l.readChar()
		}
		for isDigit(l.ch) || isLetter(l.ch) || l.ch == '?' {
			l.readChar()
		}
	}
	tok.Value = l.input[start:l.position]
	if tok.Value == "'" {
		tok.Type = TOKEN_ILLEGAL
	}
	return tok
}

func (l *Lexer) readString() Token {
	tok := Token{Type: TOKEN_STRING, Position: l.pos()}
	start := l.position
	l.readChar() // skip opening "

	var result []byte
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case '"':
				result = append(result, '"')
			case '\\':
				result = append(result, '\\')
			default:
				result = append(result, '\\', l.ch)
			}
		} else {
			result = append(result, l.ch)
		}
		l.readChar()
	}
	if l.ch != '"' {
		tok.Type = TOKEN_ILLEGAL
	} else {
		l.readChar()
	}
	tok.Value = l.input[start:l.position]
	tok.Literal = string(result)
	return tok
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
