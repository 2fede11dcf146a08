package grammar

import (
	"fmt"

	"github.com/dekarrin/elops/internal/elerrors"
)

// Context is the grammar as a whole: <N, T, P, S> where N and T live in the
// symbol table, P is the production table, and S is implicit - the start
// production is always production 0.
type Context struct {
	Symbols *SymbolTable
	Prods   *ProductionTable
}

// NewContext bundles a symbol table and production table into a grammar
// context.
func NewContext(st *SymbolTable, pt *ProductionTable) *Context {
	return &Context{Symbols: st, Prods: pt}
}

// Start returns the start production. Callers must have checked Validate
// first; an empty grammar panics here.
func (gc *Context) Start() Production {
	return gc.Prods.Get(0)
}

// Validate checks the structural preconditions the analyzer relies on: at
// least one production exists, and every symbol referenced by a production
// has been classified as terminal or nonterminal. A failure here with a
// correct front end is a bug in the caller.
func (gc *Context) Validate() error {
	if gc.Prods == nil || gc.Prods.Len() < 1 {
		return elerrors.New("no productions defined in grammar", elerrors.ErrEmptyGrammar)
	}

	for _, p := range gc.Prods.Productions() {
		lhs := gc.Symbols.ByID(p.LHS)
		if lhs.Kind != Nonterminal {
			return elerrors.New(
				fmt.Sprintf("left-hand symbol %q of production %d is %s, not nonterminal", lhs.Name, p.ID, lhs.Kind),
				elerrors.ErrUnclassifiedSymbol,
			)
		}
		for _, symID := range p.RHS {
			sym := gc.Symbols.ByID(symID)
			if sym.Kind == Unknown {
				return elerrors.New(
					fmt.Sprintf("symbol %q in production %d was never classified", sym.Name, p.ID),
					elerrors.ErrUnclassifiedSymbol,
				)
			}
		}
	}

	return nil
}
