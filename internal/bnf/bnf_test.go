package bnf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/elops/internal/elerrors"
	"github.com/dekarrin/elops/internal/grammar"
)

func Test_Parse_BalancedParens(t *testing.T) {
	assert := assert.New(t)

	gc, err := ParseString(`
S -> ( S ) S
S -> "epsilon"
`)
	assert.NoError(err)

	assert.Equal(2, gc.Prods.Len())

	s := gc.Symbols.Lookup("S")
	assert.NotNil(s)
	assert.Equal(grammar.Nonterminal, s.Kind)

	open := gc.Symbols.Lookup("(")
	assert.NotNil(open)
	assert.Equal(grammar.Terminal, open.Kind)

	eps := gc.Symbols.Lookup("epsilon")
	assert.NotNil(eps)
	assert.Equal(grammar.TerminalEpsilon, eps.Kind)

	// declaration order, start production first
	start := gc.Start()
	assert.Equal(0, start.ID)
	assert.Equal(s.ID, start.LHS)
	assert.Len(start.RHS, 4)
}

func Test_Parse_KindPromotion(t *testing.T) {
	testCases := []struct {
		name    string
		grammar string
		symbol  string
		expect  grammar.Kind
	}{
		{
			name:    "lhs becomes nonterminal",
			grammar: "S -> a\n",
			symbol:  "S",
			expect:  grammar.Nonterminal,
		},
		{
			name:    "rhs-only unknown becomes terminal",
			grammar: "S -> a\n",
			symbol:  "a",
			expect:  grammar.Terminal,
		},
		{
			name:    "rhs nonterminal promoted by later lhs",
			grammar: "S -> A\nA -> a\n",
			symbol:  "A",
			expect:  grammar.Nonterminal,
		},
		{
			name:    "quoted literal is a terminal immediately",
			grammar: "S -> \"if\" S\nS -> a\n",
			symbol:  "if",
			expect:  grammar.Terminal,
		},
		{
			name:    "bare epsilon",
			grammar: "S -> epsilon\n",
			symbol:  "epsilon",
			expect:  grammar.TerminalEpsilon,
		},
		{
			name:    "explicit eof",
			grammar: "S -> a $\n",
			symbol:  "$",
			expect:  grammar.TerminalEof,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			gc, err := ParseString(tc.grammar)
			assert.NoError(err)

			sym := gc.Symbols.Lookup(tc.symbol)
			assert.NotNil(sym)
			assert.Equal(tc.expect, sym.Kind)
		})
	}
}

func Test_Parse_CommentsAndBlanksSkipped(t *testing.T) {
	assert := assert.New(t)

	gc, err := ParseString(`
# the whole grammar is one rule
S -> a   # trailing comment

`)
	assert.NoError(err)
	assert.Equal(1, gc.Prods.Len())
}

func Test_Parse_EmptyRHSAllowed(t *testing.T) {
	assert := assert.New(t)

	gc, err := ParseString("S ->\n")
	assert.NoError(err)
	assert.Equal(1, gc.Prods.Len())
	assert.Len(gc.Start().RHS, 0)
}

func Test_Parse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		grammar string
		kind    error
	}{
		{
			name:    "empty text",
			grammar: "",
			kind:    elerrors.ErrEmptyGrammar,
		},
		{
			name:    "only comments",
			grammar: "# nothing here\n",
			kind:    elerrors.ErrEmptyGrammar,
		},
		{
			name:    "missing arrow",
			grammar: "S a b\n",
			kind:    elerrors.ErrGrammarSyntax,
		},
		{
			name:    "second arrow",
			grammar: "S -> a -> b\n",
			kind:    elerrors.ErrGrammarSyntax,
		},
		{
			name:    "literal lhs",
			grammar: "\"S\" -> a\n",
			kind:    elerrors.ErrGrammarSyntax,
		},
		{
			name:    "epsilon as lhs",
			grammar: "epsilon -> a\n",
			kind:    elerrors.ErrGrammarSyntax,
		},
		{
			name:    "eof as lhs",
			grammar: "$ -> a\n",
			kind:    elerrors.ErrGrammarSyntax,
		},
		{
			name:    "unterminated literal",
			grammar: "S -> \"a\n",
			kind:    elerrors.ErrGrammarSyntax,
		},
		{
			name:    "empty literal",
			grammar: "S -> \"\"\n",
			kind:    elerrors.ErrGrammarSyntax,
		},
		{
			name:    "terminal redeclared as lhs",
			grammar: "S -> \"b\"\nb -> x\n",
			kind:    elerrors.ErrGrammarSyntax,
		},
		{
			name:    "nonterminal used as literal",
			grammar: "S -> A\nA -> x\nB -> \"A\"\n",
			kind:    elerrors.ErrGrammarSyntax,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := ParseString(tc.grammar)
			assert.ErrorIs(err, tc.kind)
		})
	}
}

func Test_Parse_DeclarationOrderIsKept(t *testing.T) {
	assert := assert.New(t)

	gc, err := ParseString(`
E -> T
T -> F
F -> id
`)
	assert.NoError(err)

	assert.Equal(3, gc.Prods.Len())
	for i := 0; i < 3; i++ {
		assert.Equal(i, gc.Prods.Get(i).ID)
	}
	assert.Equal(gc.Symbols.Lookup("E").ID, gc.Prods.Get(0).LHS)
	assert.Equal(gc.Symbols.Lookup("T").ID, gc.Prods.Get(1).LHS)
	assert.Equal(gc.Symbols.Lookup("F").ID, gc.Prods.Get(2).LHS)
}
