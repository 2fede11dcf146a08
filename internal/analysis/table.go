package analysis

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/elops/internal/grammar"
	"github.com/dekarrin/elops/internal/util"
)

// LL1Table is the (Nonterminal x Terminal) -> {production ids} projection of
// a finished analysis. Row order is lhs first-occurrence over the production
// list; column order is terminal first-occurrence over the right-hand sides,
// except that the EOF terminal trades places with the last column so that it
// is always rightmost (or is appended last when no rhs uses it). A cell
// holding more than one production id is an LL(1) conflict.
type LL1Table struct {
	st    *grammar.SymbolTable
	nts   []grammar.SymbolID
	terms []grammar.SymbolID
	cells util.Matrix2[grammar.SymbolID, grammar.SymbolID, util.KeySet[int]]
}

// project builds the table from a grammar context whose analyzer has
// completed the PREDICT stage.
func project(gc *grammar.Context, a *Analyzer) *LL1Table {
	t := &LL1Table{
		st:    gc.Symbols,
		cells: util.NewMatrix2[grammar.SymbolID, grammar.SymbolID, util.KeySet[int]](),
	}

	// Terminal columns in first-occurrence order, skipping nonterminals and
	// the epsilon terminal.
	assigned := util.NewKeySet[grammar.SymbolID]()
	eofCol := -1
	for _, p := range gc.Prods.Productions() {
		for _, symID := range p.RHS {
			sym := gc.Symbols.ByID(symID)
			if sym.IsNonterminal() || sym.IsEpsilon() {
				continue
			}
			if !assigned.Has(symID) {
				if sym.IsEof() {
					eofCol = len(t.terms)
				}
				t.terms = append(t.terms, symID)
				assigned.Add(symID)
			}
		}
	}

	// FOLLOW seeding can put $ into PREDICT sets without $ ever occurring on
	// an rhs; give it the final column rather than dropping its cells.
	if eof := gc.Symbols.Lookup(grammar.EofName); eof != nil && !assigned.Has(eof.ID) {
		t.terms = append(t.terms, eof.ID)
		assigned.Add(eof.ID)
	} else if eofCol >= 0 && eofCol != len(t.terms)-1 {
		last := len(t.terms) - 1
		t.terms[eofCol], t.terms[last] = t.terms[last], t.terms[eofCol]
	}

	// Nonterminal rows by lhs first-occurrence.
	seenNT := util.NewKeySet[grammar.SymbolID]()
	for _, p := range gc.Prods.Productions() {
		if !seenNT.Has(p.LHS) {
			t.nts = append(t.nts, p.LHS)
			seenNT.Add(p.LHS)
		}
	}

	// Cell population from the PREDICT sets.
	for _, p := range gc.Prods.Productions() {
		for termID := range a.Predict(p.ID) {
			set := util.NewKeySet[int]()
			if cur := t.cells.Get(p.LHS, termID); cur != nil {
				set = *cur
			}
			set.Add(p.ID)
			t.cells.Set(p.LHS, termID, set)
		}
	}

	return t
}

// NonTerminals returns the row headers in order.
func (t *LL1Table) NonTerminals() []grammar.SymbolID {
	out := make([]grammar.SymbolID, len(t.nts))
	copy(out, t.nts)
	return out
}

// Terminals returns the column headers in order; the EOF terminal, when
// present, is always last.
func (t *LL1Table) Terminals() []grammar.SymbolID {
	out := make([]grammar.SymbolID, len(t.terms))
	copy(out, t.terms)
	return out
}

// NonTerminalNames returns the row headers as symbol names, in row order.
func (t *LL1Table) NonTerminalNames() []string {
	names := make([]string, len(t.nts))
	for i := range t.nts {
		names[i] = t.st.ByID(t.nts[i]).Name
	}
	return names
}

// TerminalNames returns the column headers as symbol names, in column order.
func (t *LL1Table) TerminalNames() []string {
	names := make([]string, len(t.terms))
	for i := range t.terms {
		names[i] = t.st.ByID(t.terms[i]).Name
	}
	return names
}

// Get returns the production ids in cell (nt, term), ascending. An empty
// cell returns nil.
func (t *LL1Table) Get(nt, term grammar.SymbolID) []int {
	cell := t.cells.Get(nt, term)
	if cell == nil {
		return nil
	}

	ids := (*cell).Elements()
	sort.Ints(ids)
	return ids
}

// CellString renders a cell's production ids space-separated, ascending; an
// empty cell renders as the empty string.
func (t *LL1Table) CellString(nt, term grammar.SymbolID) string {
	ids := t.Get(nt, term)

	var sb strings.Builder
	for i := range ids {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(strconv.Itoa(ids[i]))
	}
	return sb.String()
}

// HasConflict returns whether any cell holds more than one production id.
func (t *LL1Table) HasConflict() bool {
	for _, nt := range t.nts {
		for _, term := range t.terms {
			cell := t.cells.Get(nt, term)
			if cell != nil && (*cell).Len() > 1 {
				return true
			}
		}
	}
	return false
}

// String renders the whole table as a bordered text grid. Two runs over the
// same grammar produce identical output.
func (t *LL1Table) String() string {
	data := [][]string{}

	topRow := []string{""}
	topRow = append(topRow, t.TerminalNames()...)
	data = append(data, topRow)

	for _, nt := range t.nts {
		dataRow := []string{t.st.ByID(nt).Name}
		for _, term := range t.terms {
			dataRow = append(dataRow, t.CellString(nt, term))
		}
		data = append(data, dataRow)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableBorders: true,
		}).
		String()
}
