package eval

import (
	"hdlc/diag"
	"hdlc/symbols"
	"hdlc/trace"
	"hdlc/types"
)

type iteratorFrame struct {
	value types.Value
	index int
}

// Context carries the mutable state of one evaluation: variable storage,
// accumulated diagnostics, the current queue target for $ and iterator
// bindings. Bound expressions never hold evaluation state themselves.
type Context struct {
	// CacheResults marks a speculative evaluation whose diagnostics are
	// thrown away.
	CacheResults bool

	env         *Environment
	diags       diag.Diagnostics
	queueTarget types.Value
	iterators   map[*symbols.Symbol]iteratorFrame
}

// NewContext creates an evaluation context over env. A nil env means no
// variable has a value, so only constants evaluate.
func NewContext(env *Environment) *Context {
	return &Context{env: env}
}

// Env returns the variable storage, which may be nil
func (c *Context) Env() *Environment { return c.env }

// Slot returns the storage box for sym, or nil when it has none
func (c *Context) Slot(sym *symbols.Symbol) *types.Value {
	if c.env == nil {
		return nil
	}
	return c.env.Slot(sym)
}

// AddDiag records a diagnostic raised during evaluation
func (c *Context) AddDiag(code diag.Code, r diag.Range) *diag.Diagnostic {
	d := c.diags.Add(code, r)
	if !c.CacheResults {
		trace.Diagnostic(d)
	}
	return d
}

// Diags returns the diagnostics raised so far
func (c *Context) Diags() diag.Diagnostics { return c.diags }

// QueueTarget returns the queue that $ currently refers to, or nil
func (c *Context) QueueTarget() types.Value { return c.queueTarget }

// PushQueueTarget makes v the target of $ and returns a function that
// restores the previous target. Callers defer the release so that the
// previous target is restored on every path.
func (c *Context) PushQueueTarget(v types.Value) (release func()) {
	prev := c.queueTarget
	c.queueTarget = v
	return func() { c.queueTarget = prev }
}

// PushIterator binds an array iterator to the current element and index
func (c *Context) PushIterator(sym *symbols.Symbol, value types.Value, index int) (release func()) {
	if c.iterators == nil {
		c.iterators = make(map[*symbols.Symbol]iteratorFrame)
	}
	prev, had := c.iterators[sym]
	c.iterators[sym] = iteratorFrame{value: value, index: index}
	return func() {
		if had {
			c.iterators[sym] = prev
		} else {
			delete(c.iterators, sym)
		}
	}
}

// Iterator returns the element and index an iterator is bound to
func (c *Context) Iterator(sym *symbols.Symbol) (types.Value, int, bool) {
	f, ok := c.iterators[sym]
	return f.value, f.index, ok
}
