// Package bnf is the front end for the grammar notation: a line-oriented
// lexer and parser that turn grammar text into a grammar.Context. Each
// production is one line of the form
//
//	LHS -> SYM1 SYM2 ...
//
// Blank lines are skipped and # starts a comment running to end of line.
// Double-quoted tokens are literals and are promoted to terminals at lex
// time; the reserved names epsilon and $ denote the empty-string and
// end-of-input terminals whether quoted or bare. Productions keep
// declaration order and the first one is the start production.
package bnf

import (
	"fmt"

	"github.com/dekarrin/elops/internal/elerrors"
)

type tokenKind int

const (
	tokenName tokenKind = iota
	tokenLiteral
	tokenArrow
)

type token struct {
	kind tokenKind
	text string
	line int
}

// lexLine tokenizes one line of grammar text. Comments and trailing blanks
// produce no tokens; a blank line returns an empty slice.
func lexLine(line string, lineNo int) ([]token, error) {
	var toks []token

	i := 0
	for i < len(line) {
		ch := line[i]

		if ch == ' ' || ch == '\t' || ch == '\r' {
			i++
			continue
		}

		if ch == '#' {
			break
		}

		if ch == '"' {
			end := i + 1
			for end < len(line) && line[end] != '"' {
				end++
			}
			if end >= len(line) {
				return nil, elerrors.New(
					fmt.Sprintf("line %d: unterminated quoted literal", lineNo),
					elerrors.ErrGrammarSyntax,
				)
			}
			text := line[i+1 : end]
			if text == "" {
				return nil, elerrors.New(
					fmt.Sprintf("line %d: empty quoted literal", lineNo),
					elerrors.ErrGrammarSyntax,
				)
			}
			toks = append(toks, token{kind: tokenLiteral, text: text, line: lineNo})
			i = end + 1
			continue
		}

		end := i
		for end < len(line) && line[end] != ' ' && line[end] != '\t' && line[end] != '\r' && line[end] != '#' && line[end] != '"' {
			end++
		}
		text := line[i:end]
		if text == "->" {
			toks = append(toks, token{kind: tokenArrow, text: text, line: lineNo})
		} else {
			toks = append(toks, token{kind: tokenName, text: text, line: lineNo})
		}
		i = end
	}

	return toks, nil
}
