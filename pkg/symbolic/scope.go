package symbolic

import (
	"math"
	"sort"
)

// Undefined marks a symbol that is declared in a scope but has no known
// value. It shadows any value the symbol has in an enclosing scope.
var Undefined = math.NaN()

// SymbolMap maps symbol names to numeric values for one graph level
type SymbolMap map[string]float64

// Lookup returns the value of name if it is present and defined
func (m SymbolMap) Lookup(name string) (float64, bool) {
	v, ok := m[name]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Has reports whether name is declared, defined or not
func (m SymbolMap) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// Clone returns a shallow copy
func (m SymbolMap) Clone() SymbolMap {
	out := make(SymbolMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge copies every symbol of parent that m does not already declare.
// Values already in m win; parent values are only a fallback.
func (m SymbolMap) Merge(parent SymbolMap) SymbolMap {
	for k, v := range parent {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	return m
}

// Missing returns, sorted, the names that have no defined value in m
func (m SymbolMap) Missing(names []string) []string {
	missing := make([]string, 0)
	for _, name := range names {
		if _, ok := m.Lookup(name); !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Names returns all declared names in sorted order
func (m SymbolMap) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether both maps declare the same names with the same
// values. Undefined entries compare equal to each other.
func (m SymbolMap) Equal(o SymbolMap) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		w, ok := o[k]
		if !ok {
			return false
		}
		if math.IsNaN(v) != math.IsNaN(w) {
			return false
		}
		if !math.IsNaN(v) && v != w {
			return false
		}
	}
	return true
}
