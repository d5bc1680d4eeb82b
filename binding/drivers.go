package binding

import (
	"hdlc/diag"
	"hdlc/eval"
	"hdlc/symbols"
	"hdlc/types"
)

// Driver records one place that assigns a symbol. Path holds the storage
// range selected at each level below the symbol, outermost first; an
// empty path drives the whole symbol.
type Driver struct {
	Path       []types.ConstantRange
	Procedural bool
	Range      diag.Range
}

// DriverTracker collects drivers per symbol and reports conflicting
// continuous and procedural assignments as they are added.
type DriverTracker struct {
	drivers map[*symbols.Symbol][]Driver
}

// NewDriverTracker creates an empty tracker
func NewDriverTracker() *DriverTracker {
	return &DriverTracker{drivers: map[*symbols.Symbol][]Driver{}}
}

// Drivers returns the drivers registered for sym so far
func (t *DriverTracker) Drivers(sym *symbols.Symbol) []Driver {
	if t == nil {
		return nil
	}
	return t.drivers[sym]
}

// Add registers prefix as a driver of sym. prefix is the longest static
// prefix of the assigned expression. Nets may have any number of drivers.
func (t *DriverTracker) Add(bc *Context, sym *symbols.Symbol, prefix Expression) {
	if t == nil || sym == nil || prefix == nil {
		return
	}

	d := Driver{Path: staticPath(prefix), Procedural: bc.IsProcedural(), Range: prefix.Range()}
	if sym.Kind != symbols.NetSymbol {
		for _, prev := range t.drivers[sym] {
			if !pathsOverlap(prev.Path, d.Path) {
				continue
			}
			if !prev.Procedural && !d.Procedural {
				bc.AddDiag(diag.MultipleContinuousDrivers, d.Range).Arg(sym.Name).
					Note(diag.NotePreviousDriver, prev.Range)
				break
			}
			if prev.Procedural != d.Procedural {
				bc.AddDiag(diag.MixedVarAssigns, d.Range).Arg(sym.Name).
					Note(diag.NotePreviousDriver, prev.Range)
				break
			}
		}
	}
	t.drivers[sym] = append(t.drivers[sym], d)
}

// staticPath walks from the outermost select in prefix down to the
// symbol. A level that does not fold widens the driver to everything
// below the levels collected so far.
func staticPath(prefix Expression) []types.ConstantRange {
	ctx := eval.NewContext(nil)
	ctx.CacheResults = true

	var path []types.ConstantRange
	for e := prefix; e != nil; {
		switch s := e.(type) {
		case *ElementSelectExpression:
			r, key, ok := s.evalIndex(ctx, nil)
			if !ok || key != nil {
				path = nil
			} else {
				path = append([]types.ConstantRange{r}, path...)
			}
			e = s.Value
		case *RangeSelectExpression:
			r, ok := s.evalRange(ctx, nil)
			if !ok {
				path = nil
			} else {
				path = append([]types.ConstantRange{r}, path...)
			}
			e = s.Value
		case *MemberAccessExpression:
			if s.Value.Type().IsClass() {
				return path
			}
			path = append([]types.ConstantRange{s.SelectRange()}, path...)
			e = s.Value
		default:
			return path
		}
	}
	return path
}

// pathsOverlap compares two driver paths level by level. Identical
// ranges defer to the next level; a path that ends first covers all of
// the other.
func pathsOverlap(a, b []types.ConstantRange) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i].Overlaps(b[i])
		}
	}
	return true
}
