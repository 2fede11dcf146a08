// Package grammar defines the entities a context-free grammar is made of:
// interned symbols, productions, and the grammar context that owns both. The
// entities are structurally immutable once ingestion finishes; analysis
// results are kept separately by the analysis package, keyed by the integer
// handles defined here.
package grammar

import (
	"fmt"

	"github.com/dekarrin/elops/internal/util"
)

// Reserved symbol names recognized by the grammar notation.
const (
	// StartName is the reserved name for the start production's left-hand
	// symbol.
	StartName = "Start"

	// EpsilonName is the reserved name of the empty-string terminal.
	EpsilonName = "epsilon"

	// EofName is the reserved name of the end-of-input terminal.
	EofName = "$"

	// alienName is the name of the sentinel terminal that belongs to no
	// grammar. It contains characters no grammar symbol may use, so it can
	// never collide with an interned name.
	alienName = "<- alien ->"
)

// Kind classifies a symbol. A symbol's kind is decided in three phases: it is
// created as Unknown by interning; the lexer promotes it to a terminal
// variant when it appears as a literal token; the parser promotes it to
// Nonterminal when it appears as a production's left-hand symbol. Any symbol
// still Unknown after ingestion is treated as Terminal.
type Kind int

const (
	Unknown Kind = iota

	// Nonterminal sorts below every terminal variant; IsTerminal relies on
	// the order.
	Nonterminal
	Terminal
	TerminalEof
	TerminalEpsilon
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Nonterminal:
		return "nonterminal"
	case Terminal:
		return "terminal"
	case TerminalEof:
		return "terminalEof"
	case TerminalEpsilon:
		return "terminalEpsilon"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsTerminal returns whether the kind is any of the terminal variants.
func (k Kind) IsTerminal() bool {
	return k > Nonterminal
}

// SymbolID is a stable integer handle for an interned symbol. IDs index the
// symbol table's arena; set membership and equality are integer comparisons.
type SymbolID int

const (
	// NoSymbol is the zero-value-adjacent sentinel for "no such symbol".
	NoSymbol SymbolID = -1

	// alienID is the fixed handle of the alien sentinel terminal. It is
	// never a valid arena index.
	alienID SymbolID = -2
)

// Symbol is a single interned grammar symbol (aka token). Symbols are unique
// per name within a SymbolTable; comparing IDs is comparing symbols.
type Symbol struct {
	ID   SymbolID
	Name string
	Kind Kind
}

func (sym *Symbol) IsTerminal() bool    { return sym.Kind.IsTerminal() }
func (sym *Symbol) IsNonterminal() bool { return !sym.Kind.IsTerminal() }
func (sym *Symbol) IsEof() bool         { return sym.Kind == TerminalEof }
func (sym *Symbol) IsEpsilon() bool     { return sym.Kind == TerminalEpsilon }
func (sym *Symbol) IsAlien() bool       { return sym.ID == alienID }

// IsStart returns whether the symbol has the reserved start name.
func (sym *Symbol) IsStart() bool { return sym.Name == StartName }

func (sym *Symbol) String() string {
	return sym.Name
}

// SymbolTable interns symbols by name and owns their lifetime. All symbols
// are singletons within a table, so no duplicated symbol exists; a symbol's
// ID is the index it was interned at.
type SymbolTable struct {
	byName map[string]SymbolID
	syms   []*Symbol
	alien  *Symbol
}

// NewSymbolTable creates an empty symbol table. The alien sentinel is created
// immediately; it is not part of the table's iteration and can never be
// interned over.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byName: map[string]SymbolID{},
		alien:  &Symbol{ID: alienID, Name: alienName, Kind: Terminal},
	}
}

// Intern returns the unique symbol for the given name, creating it with
// Unknown kind on first sight. It never returns nil.
//
// Empty names are not allowed and attempting to intern one panics.
func (st *SymbolTable) Intern(name string) *Symbol {
	if name == "" {
		panic("empty symbol name not allowed")
	}

	if id, ok := st.byName[name]; ok {
		return st.syms[id]
	}

	sym := &Symbol{
		ID:   SymbolID(len(st.syms)),
		Name: name,
		Kind: Unknown,
	}
	st.syms = append(st.syms, sym)
	st.byName[name] = sym.ID

	return sym
}

// Lookup returns the symbol interned under name, or nil if no symbol with
// that name exists. Unlike Intern it never creates.
func (st *SymbolTable) Lookup(name string) *Symbol {
	id, ok := st.byName[name]
	if !ok {
		return nil
	}
	return st.syms[id]
}

// ByID returns the symbol with the given handle. The alien sentinel is
// reachable through its own handle. Panics on a handle that was never issued.
func (st *SymbolTable) ByID(id SymbolID) *Symbol {
	if id == alienID {
		return st.alien
	}
	if id < 0 || int(id) >= len(st.syms) {
		panic(fmt.Sprintf("no symbol with ID %d", int(id)))
	}
	return st.syms[id]
}

// Alien returns the sentinel terminal which doesn't belong to any grammar.
// It seeds FIRST of a synthetic terminal in set algebra and must never appear
// in final output.
func (st *SymbolTable) Alien() *Symbol {
	return st.alien
}

// Len returns the number of interned symbols, not counting the alien
// sentinel.
func (st *SymbolTable) Len() int {
	return len(st.syms)
}

// Names returns all interned names in a deterministic (alphabetical) order
// for reporting. The analysis itself must not depend on this order.
func (st *SymbolTable) Names() []string {
	return util.OrderedKeys(st.byName)
}

// Symbols returns all interned symbols ordered by name, for reporting.
func (st *SymbolTable) Symbols() []*Symbol {
	names := st.Names()
	syms := make([]*Symbol, len(names))
	for i := range names {
		syms[i] = st.syms[st.byName[names[i]]]
	}
	return syms
}
