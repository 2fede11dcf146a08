package analysis

import (
	"sort"

	"github.com/dekarrin/elops/internal/grammar"
	"github.com/dekarrin/elops/internal/util"
)

// SymbolSet is a set of interned symbol handles. All FIRST, FOLLOW, and
// PREDICT sets are SymbolSets containing only terminals once analysis
// completes.
type SymbolSet = util.KeySet[grammar.SymbolID]

// unionInto inserts every element of src into dst and reports whether dst
// gained at least one element. Every fixpoint loop in this package terminates
// when a full pass over the productions produces no growth.
func unionInto(dst, src SymbolSet) bool {
	grew := false
	for el := range src {
		if !dst.Has(el) {
			dst.Add(el)
			grew = true
		}
	}
	return grew
}

// removeFrom removes el from set and reports whether it was present.
func removeFrom(set SymbolSet, el grammar.SymbolID) bool {
	if !set.Has(el) {
		return false
	}
	set.Remove(el)
	return true
}

// Names resolves a SymbolSet to its symbol names, sorted, for reporting.
func Names(st *grammar.SymbolTable, set SymbolSet) []string {
	names := make([]string, 0, set.Len())
	for id := range set {
		names = append(names, st.ByID(id).Name)
	}
	sort.Strings(names)
	return names
}
