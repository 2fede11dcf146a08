// Package elops analyzes context-free grammars for predictive parsing. It
// reads a grammar in a simple line-oriented notation and computes, for every
// production, the FIRST, FOLLOW, and PREDICT sets, an LL(1) parsing table,
// and whether the grammar is LL(1).
//
// This package is the facade over the front end and the analysis engine; the
// cmd/elops CLI and the analysis server are thin layers over it.
package elops

import (
	"io"
	"os"
	"strings"

	"github.com/dekarrin/elops/internal/analysis"
	"github.com/dekarrin/elops/internal/bnf"
	"github.com/dekarrin/elops/internal/elerrors"
	"github.com/dekarrin/elops/internal/grammar"
	"github.com/dekarrin/elops/internal/render"
)

// Result bundles a parsed grammar with its finished analysis. Create one
// with Analyze or its convenience variants; every accessor on the contained
// analyzer is valid.
type Result struct {
	Grammar  *grammar.Context
	Analysis *analysis.Analyzer
}

// Analyze reads grammar text from r, parses it, and runs the full analysis
// pipeline. Errors from the front end carry the GrammarSyntax or
// EmptyGrammar kinds; structural precondition violations carry
// UnclassifiedSymbol. A non-LL(1) grammar is not an error; check
// Result.Analysis.IsLL1.
func Analyze(r io.Reader) (*Result, error) {
	gc, err := bnf.Parse(r)
	if err != nil {
		return nil, err
	}

	a, err := analysis.New(gc)
	if err != nil {
		return nil, err
	}
	if err := a.Analyze(); err != nil {
		return nil, err
	}

	return &Result{Grammar: gc, Analysis: a}, nil
}

// AnalyzeString analyzes in-memory grammar text.
func AnalyzeString(text string) (*Result, error) {
	return Analyze(strings.NewReader(text))
}

// AnalyzeFile analyzes the grammar in the named file.
func AnalyzeFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, elerrors.New("open grammar file", err, elerrors.ErrIO)
	}
	defer f.Close()

	return Analyze(f)
}

// RenderHTML renders the result as a standalone HTML document.
func (res *Result) RenderHTML(opts render.Options) string {
	return render.HTML(res.Grammar, res.Analysis, opts)
}

// RenderText renders the result as bordered text tables.
func (res *Result) RenderText(opts render.Options) string {
	return render.Text(res.Grammar, res.Analysis, opts)
}
