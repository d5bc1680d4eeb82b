package symbols

// ScopeKind identifies what kind of construct owns a scope
type ScopeKind int

const (
	ScopeCompilationUnit ScopeKind = iota
	ScopeProcedural
	ScopeStruct
	ScopeClass
	ScopeCovergroup
	ScopeCoverpoint
	ScopeCoverCross
)

// Scope is a named collection of member symbols with an optional parent
type Scope struct {
	Kind   ScopeKind
	Name   string
	Parent *Scope
	Type   *Type // owning type for struct, class and covergroup scopes

	members []*Symbol
	byName  map[string]*Symbol
}

// NewScope creates an empty scope
func NewScope(kind ScopeKind, name string, parent *Scope) *Scope {
	return &Scope{Kind: kind, Name: name, Parent: parent, byName: map[string]*Symbol{}}
}

// Add inserts sym as a member and makes this scope its parent. A later
// symbol with the same name shadows the earlier one for lookups.
func (s *Scope) Add(sym *Symbol) *Symbol {
	sym.Parent = s
	s.members = append(s.members, sym)
	s.byName[sym.Name] = sym
	return sym
}

// Find looks up a direct member by name
func (s *Scope) Find(name string) *Symbol {
	if s == nil {
		return nil
	}
	return s.byName[name]
}

// Lookup searches this scope and then each parent in turn
func (s *Scope) Lookup(name string) *Symbol {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym := sc.byName[name]; sym != nil {
			return sym
		}
	}
	return nil
}

// Members returns the members in declaration order
func (s *Scope) Members() []*Symbol {
	return s.members
}

// IsWithin reports whether s is other or nested inside it
func (s *Scope) IsWithin(other *Scope) bool {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc == other {
			return true
		}
	}
	return false
}

// IsProceduralBlock reports whether the scope kind only appears inside
// procedural code
func (s *Scope) IsProceduralBlock() bool {
	return s != nil && s.Kind == ScopeProcedural
}
