package bnf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/elops/internal/elerrors"
	"github.com/dekarrin/elops/internal/grammar"
)

// Parse reads grammar text from r and builds the grammar context. Symbol
// kinds are assigned in three phases: interning creates symbols as Unknown,
// literal tokens and the reserved epsilon/$ names promote to terminal
// variants at lex time, every production's left-hand symbol is promoted to
// Nonterminal, and anything still Unknown at the end is a plain terminal.
func Parse(r io.Reader) (*grammar.Context, error) {
	st := grammar.NewSymbolTable()
	var prods []grammar.Production

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		toks, err := lexLine(scanner.Text(), lineNo)
		if err != nil {
			return nil, err
		}
		if len(toks) == 0 {
			continue
		}

		p, err := parseProduction(st, toks)
		if err != nil {
			return nil, err
		}
		p.ID = len(prods)
		prods = append(prods, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, elerrors.New("read grammar text", err, elerrors.ErrIO)
	}

	if len(prods) == 0 {
		return nil, elerrors.New("no productions defined in grammar", elerrors.ErrEmptyGrammar)
	}

	// third phase: whatever no rule ever produces from is a terminal.
	for _, sym := range st.Symbols() {
		if sym.Kind == grammar.Unknown {
			sym.Kind = grammar.Terminal
		}
	}

	gc := grammar.NewContext(st, grammar.NewProductionTable(prods))
	return gc, nil
}

// ParseString is a convenience wrapper around Parse for in-memory grammar
// text.
func ParseString(s string) (*grammar.Context, error) {
	return Parse(strings.NewReader(s))
}

func parseProduction(st *grammar.SymbolTable, toks []token) (grammar.Production, error) {
	if len(toks) < 2 || toks[1].kind != tokenArrow {
		return grammar.Production{}, elerrors.New(
			fmt.Sprintf("line %d: not a rule of form 'LHS -> SYMBOL SYMBOL ...'", toks[0].line),
			elerrors.ErrGrammarSyntax,
		)
	}

	if toks[0].kind != tokenName {
		return grammar.Production{}, elerrors.New(
			fmt.Sprintf("line %d: left-hand side must be a plain symbol name, not a literal", toks[0].line),
			elerrors.ErrGrammarSyntax,
		)
	}
	lhsName := toks[0].text
	if lhsName == grammar.EpsilonName || lhsName == grammar.EofName {
		return grammar.Production{}, elerrors.New(
			fmt.Sprintf("line %d: reserved terminal %q cannot be a left-hand side", toks[0].line, lhsName),
			elerrors.ErrGrammarSyntax,
		)
	}

	lhs := st.Intern(lhsName)
	if lhs.Kind.IsTerminal() {
		return grammar.Production{}, elerrors.New(
			fmt.Sprintf("line %d: %q is already a terminal and cannot produce anything", toks[0].line, lhsName),
			elerrors.ErrGrammarSyntax,
		)
	}
	lhs.Kind = grammar.Nonterminal

	rhs := make([]grammar.SymbolID, 0, len(toks)-2)
	for _, tok := range toks[2:] {
		if tok.kind == tokenArrow {
			return grammar.Production{}, elerrors.New(
				fmt.Sprintf("line %d: unexpected second '->'", tok.line),
				elerrors.ErrGrammarSyntax,
			)
		}

		sym := st.Intern(tok.text)
		if err := promote(sym, tok); err != nil {
			return grammar.Production{}, err
		}
		rhs = append(rhs, sym.ID)
	}

	return grammar.Production{LHS: lhs.ID, RHS: rhs}, nil
}

// promote applies the lexer phase of kind assignment to an rhs symbol. The
// reserved names always get their terminal variant; quoted literals become
// plain terminals; bare names stay as they are until the third phase.
func promote(sym *grammar.Symbol, tok token) error {
	var want grammar.Kind
	switch {
	case sym.Name == grammar.EpsilonName:
		want = grammar.TerminalEpsilon
	case sym.Name == grammar.EofName:
		want = grammar.TerminalEof
	case tok.kind == tokenLiteral:
		want = grammar.Terminal
	default:
		return nil
	}

	if sym.Kind == grammar.Nonterminal {
		return elerrors.New(
			fmt.Sprintf("line %d: %q is already a nonterminal and cannot be a literal terminal", tok.line, sym.Name),
			elerrors.ErrGrammarSyntax,
		)
	}
	sym.Kind = want
	return nil
}
