package symbols

import (
	"hdlc/diag"
	"hdlc/types"
)

// SymbolKind classifies named entities
type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	NetSymbol
	ParameterSymbol
	FieldSymbol
	ClassPropertySymbol
	SubroutineSymbol
	ConstraintBlockSymbol
	CoverpointSymbol
	CoverCrossSymbol
	CoverageBinSymbol
	EnumValueSymbol
	IteratorSymbol
	ModportPortSymbol
	TypeAliasSymbol
	CovergroupSymbol
)

// String returns the kind name
func (k SymbolKind) String() string {
	switch k {
	case VariableSymbol:
		return "variable"
	case NetSymbol:
		return "net"
	case ParameterSymbol:
		return "parameter"
	case FieldSymbol:
		return "field"
	case ClassPropertySymbol:
		return "class property"
	case SubroutineSymbol:
		return "subroutine"
	case ConstraintBlockSymbol:
		return "constraint"
	case CoverpointSymbol:
		return "coverpoint"
	case CoverCrossSymbol:
		return "cross"
	case CoverageBinSymbol:
		return "bin"
	case EnumValueSymbol:
		return "enum value"
	case IteratorSymbol:
		return "iterator"
	case ModportPortSymbol:
		return "modport port"
	case TypeAliasSymbol:
		return "typedef"
	case CovergroupSymbol:
		return "covergroup"
	default:
		return "unknown"
	}
}

// Lifetime of a variable or class property
type Lifetime int

const (
	Static Lifetime = iota
	Automatic
)

// RandMode of a class property
type RandMode int

const (
	RandNone RandMode = iota
	Rand
	RandC
)

// Visibility of a class member
type Visibility int

const (
	Public Visibility = iota
	Protected
	Local
)

// Symbol is a named entity: a declaration, a struct field, a class member
// or a coverage construct.
type Symbol struct {
	Kind     SymbolKind
	Name     string
	Loc      diag.Range
	Type     *Type
	Offset   uint32 // bit offset for packed fields, ordinal otherwise
	Lifetime Lifetime
	Static   bool // static subroutine
	Rand     RandMode
	Vis      Visibility
	Const    bool

	// ImmutableCoverageOption marks coverage options that may only be
	// changed from within their covergroup.
	ImmutableCoverageOption bool

	// Net properties
	Vectored           bool
	UserDefinedNetType bool

	Value   types.Value // parameter and enum value constants
	Args    []*Symbol   // subroutine formal arguments
	Members *Scope      // nested scope for coverpoints and crosses
	Parent  *Scope
}

// IsValue reports whether the symbol can be referenced as a value
func (s *Symbol) IsValue() bool {
	switch s.Kind {
	case VariableSymbol, NetSymbol, ParameterSymbol, FieldSymbol, ClassPropertySymbol,
		EnumValueSymbol, IteratorSymbol, ModportPortSymbol:
		return true
	default:
		return false
	}
}

// IsVariable reports whether the symbol holds variable storage
func (s *Symbol) IsVariable() bool {
	switch s.Kind {
	case VariableSymbol, FieldSymbol, ClassPropertySymbol:
		return true
	default:
		return false
	}
}

// ClassScope returns the class scope that declares this symbol, if any
func (s *Symbol) ClassScope() *Scope {
	for sc := s.Parent; sc != nil; sc = sc.Parent {
		if sc.Kind == ScopeClass {
			return sc
		}
	}
	return nil
}
