package syntax

// DataType is a type reference in a declaration
type DataType interface {
	Node
	typeNode()
}

// Signing is an explicit signed/unsigned qualifier
type Signing int

const (
	SigningDefault Signing = iota
	SigningSigned
	SigningUnsigned
)

// DimKind classifies a declared dimension
type DimKind int

const (
	DimRange    DimKind = iota // [l:r]
	DimSize                    // [n]
	DimDynamic                 // []
	DimQueue                   // [$] or [$:max]
	DimAssoc                   // [type]
	DimWildcard                // [*]
)

// Dimension is one packed or unpacked dimension
type Dimension struct {
	Span
	Kind  DimKind
	Left  Expr // range left, size, or queue bound
	Right Expr
	Index DataType
}

// BuiltinType is a keyword type such as logic, int or string
type BuiltinType struct {
	Span
	Keyword TokenType
	Signing Signing
	Packed  []*Dimension
}

// NamedType refers to a typedef, class, covergroup or nettype by name
type NamedType struct {
	Span
	Name   string
	Packed []*Dimension
}

// StructType is an inline struct or union body
type StructType struct {
	Span
	Union   bool
	Packed  bool
	Tagged  bool
	Signing Signing
	Members []*MemberDecl
	Dims    []*Dimension
}

// EnumItem is one enumerator with an optional explicit value
type EnumItem struct {
	Span
	Name  string
	Value Expr
}

// EnumType is an inline enum body
type EnumType struct {
	Span
	Base  DataType
	Items []*EnumItem
	Dims  []*Dimension
}

func (*BuiltinType) typeNode() {}
func (*NamedType) typeNode()   {}
func (*StructType) typeNode()  {}
func (*EnumType) typeNode()    {}

// Declarator names one declared entity with its unpacked dimensions and
// optional initializer
type Declarator struct {
	Span
	Name string
	Dims []*Dimension
	Init Expr
}

// Qualifiers collects the leading keywords of a declaration
type Qualifiers struct {
	Const     bool
	Static    bool
	Automatic bool
	Local     bool
	Protected bool
	Rand      bool
	RandC     bool
}

// MemberDecl is a struct or union member declaration
type MemberDecl struct {
	Span
	Qualifiers  Qualifiers
	Type        DataType
	Declarators []*Declarator
}

// Decl represents a declaration
type Decl interface {
	Node
	declNode()
}

// TypedefDecl is typedef <type> name [dims];
type TypedefDecl struct {
	Span
	Type DataType
	Name string
	Dims []*Dimension
}

// VarDecl declares variables. Elaboration turns it into nets when Type
// names a user-defined nettype.
type VarDecl struct {
	Span
	Qualifiers  Qualifiers
	Type        DataType
	Declarators []*Declarator
}

// NetDecl is wire/tri [vectored|scalared] <type> names;
type NetDecl struct {
	Span
	NetKind     TokenType
	Vectored    bool
	Type        DataType // nil means logic
	Declarators []*Declarator
}

// NettypeDecl is nettype <type> name [with resolver];
type NettypeDecl struct {
	Span
	Type     DataType
	Name     string
	Resolver string
}

// ParamDecl is parameter/localparam [type] name = value, ...;
type ParamDecl struct {
	Span
	Local       bool
	Type        DataType
	Declarators []*Declarator
}

// ArgDecl is a subroutine formal argument
type ArgDecl struct {
	Span
	Type DataType
	Name string
}

// FunctionDecl is a function prototype; bodies are skipped
type FunctionDecl struct {
	Span
	Qualifiers Qualifiers
	ReturnType DataType
	Name       string
	Args       []*ArgDecl
}

// ConstraintDecl is a named constraint block; bodies are skipped
type ConstraintDecl struct {
	Span
	Name string
}

// ClassDecl is class name [extends base]; items endclass
type ClassDecl struct {
	Span
	Name    string
	Extends string
	Items   []Decl
}

// BinsDecl is a named coverage bin; value sets are skipped
type BinsDecl struct {
	Span
	Name string
}

// CoverpointDecl is label: coverpoint expr [{ bins }]
type CoverpointDecl struct {
	Span
	Name string
	Expr Expr
	Bins []*BinsDecl
}

// CrossDecl is label: cross a, b
type CrossDecl struct {
	Span
	Name    string
	Targets []string
}

// OptionDecl is option.name = value inside a covergroup
type OptionDecl struct {
	Span
	Name  string
	Value Expr
}

// CovergroupDecl is covergroup name; items endgroup
type CovergroupDecl struct {
	Span
	Name  string
	Items []Decl
}

func (*TypedefDecl) declNode()    {}
func (*VarDecl) declNode()        {}
func (*NetDecl) declNode()        {}
func (*NettypeDecl) declNode()    {}
func (*ParamDecl) declNode()      {}
func (*FunctionDecl) declNode()   {}
func (*ConstraintDecl) declNode() {}
func (*ClassDecl) declNode()      {}
func (*CoverpointDecl) declNode() {}
func (*CrossDecl) declNode()      {}
func (*OptionDecl) declNode()     {}
func (*CovergroupDecl) declNode() {}
