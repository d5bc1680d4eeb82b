package syntax

import "fmt"

// TokenType represents different types of lexical tokens
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_NUMBER // 42, 8'hA5, '1
	TOKEN_STRING // "hello"

	TOKEN_IDENTIFIER

	// Operators
	TOKEN_PLUS        // +
	TOKEN_MINUS       // -
	TOKEN_STAR        // *
	TOKEN_ASSIGN      // =
	TOKEN_PLUSCOLON   // +:
	TOKEN_MINUSCOLON  // -:
	TOKEN_LSHIFT      // <<
	TOKEN_RSHIFT      // >>
	TOKEN_TICK_LBRACE // '{

	// Delimiters
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_DOT       // .
	TOKEN_COLON     // :
	TOKEN_DOLLAR    // $

	// Keywords
	keywordStart
	TOKEN_TYPEDEF
	TOKEN_STRUCT
	TOKEN_UNION
	TOKEN_PACKED
	TOKEN_TAGGED
	TOKEN_ENUM
	TOKEN_SIGNED
	TOKEN_UNSIGNED
	TOKEN_LOGIC
	TOKEN_BIT
	TOKEN_REG
	TOKEN_BYTE
	TOKEN_SHORTINT
	TOKEN_INT
	TOKEN_LONGINT
	TOKEN_INTEGER
	TOKEN_STRING_KW
	TOKEN_EVENT
	TOKEN_VOID
	TOKEN_WIRE
	TOKEN_TRI
	TOKEN_VECTORED
	TOKEN_SCALARED
	TOKEN_NETTYPE
	TOKEN_PARAMETER
	TOKEN_LOCALPARAM
	TOKEN_CONST
	TOKEN_STATIC
	TOKEN_AUTOMATIC
	TOKEN_CLASS
	TOKEN_EXTENDS
	TOKEN_ENDCLASS
	TOKEN_LOCAL
	TOKEN_PROTECTED
	TOKEN_RAND
	TOKEN_RANDC
	TOKEN_FUNCTION
	TOKEN_ENDFUNCTION
	TOKEN_CONSTRAINT
	TOKEN_COVERGROUP
	TOKEN_ENDGROUP
	TOKEN_COVERPOINT
	TOKEN_CROSS
	TOKEN_BINS
	TOKEN_WITH
	TOKEN_NEW
	TOKEN_DEFAULT
	keywordEnd
)

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Value    string
	Literal  string // decoded string value for TOKEN_STRING
	Position Position
}

// End returns the offset just past the token
func (t Token) End() int {
	return t.Position.Offset + len(t.Value)
}

var tokenNames = map[TokenType]string{
	TOKEN_EOF:         "EOF",
	TOKEN_ILLEGAL:     "ILLEGAL",
	TOKEN_NUMBER:      "NUMBER",
	TOKEN_STRING:      "STRING",
	TOKEN_IDENTIFIER:  "IDENTIFIER",
	TOKEN_PLUS:        "+",
	TOKEN_MINUS:       "-",
	TOKEN_STAR:        "*",
	TOKEN_ASSIGN:      "=",
	TOKEN_PLUSCOLON:   "+:",
	TOKEN_MINUSCOLON:  "-:",
	TOKEN_LSHIFT:      "<<",
	TOKEN_RSHIFT:      ">>",
	TOKEN_TICK_LBRACE: "'{",
	TOKEN_LPAREN:      "(",
	TOKEN_RPAREN:      ")",
	TOKEN_LBRACE:      "{",
	TOKEN_RBRACE:      "}",
	TOKEN_LBRACKET:    "[",
	TOKEN_RBRACKET:    "]",
	TOKEN_COMMA:       ",",
	TOKEN_SEMICOLON:   ";",
	TOKEN_DOT:         ".",
	TOKEN_COLON:       ":",
	TOKEN_DOLLAR:      "$",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	for kw, tt := range keywords {
		if tt == t {
			return kw
		}
	}
	return "UNKNOWN"
}

// IsKeyword reports whether the token is a reserved word
func (t TokenType) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

var keywords = map[string]TokenType{
	"typedef":     TOKEN_TYPEDEF,
	"struct":      TOKEN_STRUCT,
	"union":       TOKEN_UNION,
	"packed":      TOKEN_PACKED,
	"tagged":      TOKEN_TAGGED,
	"enum":        TOKEN_ENUM,
	"signed":      TOKEN_SIGNED,
	"unsigned":    TOKEN_UNSIGNED,
	"logic":       TOKEN_LOGIC,
	"bit":         TOKEN_BIT,
	"reg":         TOKEN_REG,
	"byte":        TOKEN_BYTE,
	"shortint":    TOKEN_SHORTINT,
	"int":         TOKEN_INT,
	"longint":     TOKEN_LONGINT,
	"integer":     TOKEN_INTEGER,
	"string":      TOKEN_STRING_KW,
	"event":       TOKEN_EVENT,
	"void":        TOKEN_VOID,
	"wire":        TOKEN_WIRE,
	"tri":         TOKEN_TRI,
	"vectored":    TOKEN_VECTORED,
	"scalared":    TOKEN_SCALARED,
	"nettype":     TOKEN_NETTYPE,
	"parameter":   TOKEN_PARAMETER,
	"localparam":  TOKEN_LOCALPARAM,
	"const":       TOKEN_CONST,
	"static":      TOKEN_STATIC,
	"automatic":   TOKEN_AUTOMATIC,
	"class":       TOKEN_CLASS,
	"extends":     TOKEN_EXTENDS,
	"endclass":    TOKEN_ENDCLASS,
	"local":       TOKEN_LOCAL,
	"protected":   TOKEN_PROTECTED,
	"rand":        TOKEN_RAND,
	"randc":       TOKEN_RANDC,
	"function":    TOKEN_FUNCTION,
	"endfunction": TOKEN_ENDFUNCTION,
	"constraint":  TOKEN_CONSTRAINT,
	"covergroup":  TOKEN_COVERGROUP,
	"endgroup":    TOKEN_ENDGROUP,
	"coverpoint":  TOKEN_COVERPOINT,
	"cross":       TOKEN_CROSS,
	"bins":        TOKEN_BINS,
	"with":        TOKEN_WITH,
	"new":         TOKEN_NEW,
	"default":     TOKEN_DEFAULT,
}

// LookupKeyword checks if an identifier is a keyword
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENTIFIER
}
