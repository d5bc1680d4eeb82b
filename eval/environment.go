package eval

import (
	"hdlc/symbols"
	"hdlc/types"
)

// Environment holds variable storage with lexical nesting. Each slot is
// boxed so that an LValue can keep a stable root pointer.
type Environment struct {
	vars   map[*symbols.Symbol]*types.Value
	parent *Environment
}

// NewEnvironment creates a new environment with no parent
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[*symbols.Symbol]*types.Value)}
}

// NewNestedEnvironment creates a new environment with a parent scope
func NewNestedEnvironment(parent *Environment) *Environment {
	return &Environment{vars: make(map[*symbols.Symbol]*types.Value), parent: parent}
}

// Slot looks up the storage for sym, searching parent scopes
func (e *Environment) Slot(sym *symbols.Symbol) *types.Value {
	for env := e; env != nil; env = env.parent {
		if slot, ok := env.vars[sym]; ok {
			return slot
		}
	}
	return nil
}

// Get returns the stored value of sym
func (e *Environment) Get(sym *symbols.Symbol) (types.Value, bool) {
	slot := e.Slot(sym)
	if slot == nil {
		return nil, false
	}
	return *slot, true
}

// Define creates storage for sym in the current scope
func (e *Environment) Define(sym *symbols.Symbol, value types.Value) {
	v := value
	e.vars[sym] = &v
}

// Set assigns to existing storage, or defines it in the current scope
func (e *Environment) Set(sym *symbols.Symbol, value types.Value) {
	if slot := e.Slot(sym); slot != nil {
		*slot = value
		return
	}
	e.Define(sym, value)
}
