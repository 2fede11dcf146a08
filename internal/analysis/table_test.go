package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LL1Table_RowAndColumnOrder(t *testing.T) {
	assert := assert.New(t)

	_, a := mustAnalyze(t, testGrammarArith)
	table := a.Table()

	// rows by lhs first-occurrence
	assert.Equal([]string{"E", "E'", "T", "T'", "F"}, table.NonTerminalNames())

	// columns by rhs first-occurrence; $ never occurs on an rhs here, so it
	// is appended last
	assert.Equal([]string{"+", "*", "(", ")", "id", "$"}, table.TerminalNames())
}

func Test_LL1Table_EofColumnIsLast(t *testing.T) {
	testCases := []struct {
		name    string
		grammar string
		expect  []string
	}{
		{
			name:    "explicit $ before other terminals",
			grammar: "S -> a B $\nB -> b\n",
			expect:  []string{"a", "b", "$"},
		},
		{
			name:    "explicit $ already last",
			grammar: "S -> a b $\n",
			expect:  []string{"a", "b", "$"},
		},
		{
			name:    "no explicit $",
			grammar: testGrammarParens,
			expect:  []string{"(", ")", "$"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, a := mustAnalyze(t, tc.grammar)

			termNames := a.Table().TerminalNames()
			assert.Equal(tc.expect, termNames)
			assert.Equal("$", termNames[len(termNames)-1])
		})
	}
}

func Test_LL1Table_Cells(t *testing.T) {
	assert := assert.New(t)

	gc, a := mustAnalyze(t, testGrammarParens)
	table := a.Table()

	s := symID(t, gc, "S")
	open := symID(t, gc, "(")
	closed := symID(t, gc, ")")
	eof := symID(t, gc, "$")

	assert.Equal([]int{0}, table.Get(s, open))
	assert.Equal([]int{1}, table.Get(s, closed))
	assert.Equal([]int{1}, table.Get(s, eof))
	assert.False(table.HasConflict())
}

func Test_LL1Table_ConflictCellHoldsBothIds(t *testing.T) {
	assert := assert.New(t)

	gc, a := mustAnalyze(t, testGrammarDanglingElse)
	table := a.Table()

	b := symID(t, gc, "B")
	bTerm := symID(t, gc, "b")

	assert.Equal([]int{1, 2}, table.Get(b, bTerm))
	assert.True(table.HasConflict())
	assert.Equal("1 2", table.CellString(b, bTerm))
}

func Test_LL1Table_EmptyCell(t *testing.T) {
	assert := assert.New(t)

	gc, a := mustAnalyze(t, testGrammarParens)
	table := a.Table()

	s := symID(t, gc, "S")
	assert.Nil(table.Get(s, gc.Symbols.Alien().ID))
	assert.Equal("", table.CellString(s, gc.Symbols.Alien().ID))
}

func Test_LL1Table_DeterministicAcrossRuns(t *testing.T) {
	assert := assert.New(t)

	_, a1 := mustAnalyze(t, testGrammarArith)
	_, a2 := mustAnalyze(t, testGrammarArith)

	t1 := a1.Table()
	t2 := a2.Table()

	assert.Equal(t1.NonTerminalNames(), t2.NonTerminalNames())
	assert.Equal(t1.TerminalNames(), t2.TerminalNames())
	assert.Equal(t1.String(), t2.String())
}
