package grammar

import "strings"

// Production is a single rewrite rule A -> X1 X2 ... Xn. The RHS may be
// empty, and an RHS consisting solely of the epsilon terminal is the
// ε-production. Productions are immutable after ingestion.
type Production struct {
	// ID is the production's position in declaration order, starting at 0.
	// Production 0 is the start production.
	ID int

	// LHS is the left-hand nonterminal.
	LHS SymbolID

	// RHS is the ordered right-hand symbol sequence.
	RHS []SymbolID
}

// Equal returns whether the production is equal to another value. It will not
// be equal if the other value cannot be cast to Production or *Production.
// IDs are not compared; two copies of the same rule at different positions
// are equal.
func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		otherPtr, ok := o.(*Production)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if p.LHS != other.LHS {
		return false
	}
	if len(p.RHS) != len(other.RHS) {
		return false
	}
	for i := range p.RHS {
		if p.RHS[i] != other.RHS[i] {
			return false
		}
	}

	return true
}

// ProductionTable is the ordered sequence of a grammar's productions. IDs are
// dense, 0..N-1, matching iteration order; the first production is the start
// production.
type ProductionTable struct {
	prods []Production

	// cached for aligned formatting; computed on first use.
	maxLHSWidth int
}

// NewProductionTable constructs a table from productions in declaration
// order, assigning IDs by position. Any pre-set IDs are overwritten.
func NewProductionTable(prods []Production) *ProductionTable {
	pt := &ProductionTable{
		prods: make([]Production, len(prods)),
	}
	copy(pt.prods, prods)
	for i := range pt.prods {
		pt.prods[i].ID = i
	}
	return pt
}

// Get returns the production with the given id. Panics if the id was never
// assigned.
func (pt *ProductionTable) Get(id int) Production {
	return pt.prods[id]
}

// Len returns the number of productions.
func (pt *ProductionTable) Len() int {
	return len(pt.prods)
}

// Productions returns the productions in id order. The returned slice is the
// table's backing store; callers must not modify it.
func (pt *ProductionTable) Productions() []Production {
	return pt.prods
}

// maxWidthOfLHS returns the widest left-hand symbol name in the table, used
// to align the arrows when formatting productions as a block.
func (pt *ProductionTable) maxWidthOfLHS(st *SymbolTable) int {
	if pt.maxLHSWidth == 0 {
		for _, p := range pt.prods {
			size := len(st.ByID(p.LHS).Name)
			if pt.maxLHSWidth < size {
				pt.maxLHSWidth = size
			}
		}
	}
	return pt.maxLHSWidth
}

// Format renders a production as "A -> X Y Z" using names from st. If
// alignArrow is set, the left-hand name is padded so that arrows line up
// across the whole table.
func (pt *ProductionTable) Format(st *SymbolTable, p Production, alignArrow bool) string {
	var sb strings.Builder

	lhsName := st.ByID(p.LHS).Name
	sb.WriteString(lhsName)
	if alignArrow {
		max := pt.maxWidthOfLHS(st)
		sb.WriteString(strings.Repeat(" ", max-len(lhsName)))
	}
	sb.WriteString(" ->")
	for _, symID := range p.RHS {
		sb.WriteRune(' ')
		sb.WriteString(st.ByID(symID).Name)
	}

	return sb.String()
}
