package syntax

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestLexerTokens(t *testing.T) {
	input := `q[$] v[3+:2] s.f '{1, default: 0} {>>{a}} 8'hA5 '1 "hi\n" // comment
	logic /* block */ x`

	want := []struct {
		typ   TokenType
		value string
	}{
		{TOKEN_IDENTIFIER, "q"},
		{TOKEN_LBRACKET, "["},
		{TOKEN_DOLLAR, "$"},
		{TOKEN_RBRACKET, "]"},
		{TOKEN_IDENTIFIER, "v"},
		{TOKEN_LBRACKET, "["},
		{TOKEN_NUMBER, "3"},
		{TOKEN_PLUSCOLON, "+:"},
		{TOKEN_NUMBER, "2"},
		{TOKEN_RBRACKET, "]"},
		{TOKEN_IDENTIFIER, "s"},
		{TOKEN_DOT, "."},
		{TOKEN_IDENTIFIER, "f"},
		{TOKEN_TICK_LBRACE, "'{"},
		{TOKEN_NUMBER, "1"},
		{TOKEN_COMMA, ","},
		{TOKEN_DEFAULT, "default"},
		{TOKEN_COLON, ":"},
		{TOKEN_NUMBER, "0"},
		{TOKEN_RBRACE, "}"},
		{TOKEN_LBRACE, "{"},
		{TOKEN_RSHIFT, ">>"},
		{TOKEN_LBRACE, "{"},
		{TOKEN_IDENTIFIER, "a"},
		{TOKEN_RBRACE, "}"},
		{TOKEN_RBRACE, "}"},
		{TOKEN_NUMBER, "8'hA5"},
		{TOKEN_NUMBER, "'1"},
		{TOKEN_STRING, `"hi\n"`},
		{TOKEN_LOGIC, "logic"},
		{TOKEN_IDENTIFIER, "x"},
		{TOKEN_EOF, ""},
	}

	l := NewLexer(input)
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.typ || tok.Value != w.value {
			t.Fatalf("token %d: got %s %q, want %s %q", i, tok.Type, tok.Value, w.typ, w.value)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	l := NewLexer("a\n  bb[1]")
	a := l.NextToken()
	be.Equal(t, a.Position, Position{Line: 1, Column: 1, Offset: 0})
	bb := l.NextToken()
	be.Equal(t, bb.Position, Position{Line: 2, Column: 3, Offset: 4})
	be.Equal(t, bb.End(), 6)
}

func TestLexerStringLiteral(t *testing.T) {
	tok := NewLexer(`"a\"b\tc"`).NextToken()
	be.Equal(t, tok.Type, TOKEN_STRING)
	be.Equal(t, tok.Literal, "a\"b\tc")

	tok = NewLexer(`"open`).NextToken()
	be.Equal(t, tok.Type, TOKEN_ILLEGAL)
}

func TestKeywords(t *testing.T) {
	be.Equal(t, LookupKeyword("struct"), TOKEN_STRUCT)
	be.Equal(t, LookupKeyword("option"), TOKEN_IDENTIFIER)
	be.True(t, TOKEN_ENDGROUP.IsKeyword())
	be.True(t, !TOKEN_DOLLAR.IsKeyword())
	be.Equal(t, TOKEN_TAGGED.String(), "tagged")
	be.Equal(t, TOKEN_PLUSCOLON.String(), "+:")
}
