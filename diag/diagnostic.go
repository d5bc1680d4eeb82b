package diag

import (
	"fmt"
	"strings"
)

// Range is a span of byte offsets into the source text
type Range struct {
	Start int
	End   int
}

// Diagnostic is a single reported problem. Operands are attached with Arg
// and secondary notes with Note, builder style.
type Diagnostic struct {
	Code  Code
	Range Range
	Args  []any
	Notes []*Diagnostic
}

// Arg attaches an operand (value, type, name, bound) to the diagnostic
func (d *Diagnostic) Arg(v any) *Diagnostic {
	d.Args = append(d.Args, v)
	return d
}

// Note attaches a secondary note at r
func (d *Diagnostic) Note(code Code, r Range) *Diagnostic {
	d.Notes = append(d.Notes, &Diagnostic{Code: code, Range: r})
	return d
}

// Severity returns the severity of the diagnostic's code
func (d *Diagnostic) Severity() Severity {
	return d.Code.Severity()
}

// Message formats the human-readable message
func (d *Diagnostic) Message() string {
	tmpl := codeTable[Unknown].message
	if d.Code >= 0 && d.Code < numCodes {
		tmpl = codeTable[d.Code].message
	}
	if !strings.Contains(tmpl, "%") {
		return tmpl
	}
	return fmt.Sprintf(tmpl, d.Args...)
}

// String returns "severity: Code: message"
func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity(), d.Code, d.Message())
}

// Diagnostics accumulates reported problems. Adding a diagnostic never
// interrupts control flow.
type Diagnostics []*Diagnostic

// Add records a new diagnostic and returns it for attaching operands
func (ds *Diagnostics) Add(code Code, r Range) *Diagnostic {
	d := &Diagnostic{Code: code, Range: r}
	*ds = append(*ds, d)
	return d
}

// Count returns how many diagnostics with the given code were reported
func (ds Diagnostics) Count(code Code) int {
	n := 0
	for _, d := range ds {
		if d.Code == code {
			n++
		}
	}
	return n
}

// Has reports whether a diagnostic with the given code was reported
func (ds Diagnostics) Has(code Code) bool {
	return ds.Count(code) > 0
}

// HasErrors reports whether any error-severity diagnostic was reported
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity() == SeverityError {
			return true
		}
	}
	return false
}

// Codes returns the codes in report order
func (ds Diagnostics) Codes() []Code {
	codes := make([]Code, len(ds))
	for i, d := range ds {
		codes[i] = d.Code
	}
	return codes
}
