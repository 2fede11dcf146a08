// Package analysis implements the grammar-analysis engine: nullability,
// FIRST, FOLLOW, and PREDICT set computation over a grammar context, the
// LL(1) validity check, and projection of the results into an LL(1) parsing
// table.
//
// The engines run as a fixed pipeline - nullability, then FIRST, then
// FOLLOW, then PREDICT, then validation and table projection. FOLLOW depends
// on FIRST, PREDICT on both, and the LL(1) verdict on PREDICT, so the order
// is load-bearing. Each fixpoint is monotone: sets only grow and flags only
// flip false to true, so every pass is bounded and the pipeline always
// terminates.
package analysis

import (
	"github.com/dekarrin/elops/internal/grammar"
	"github.com/dekarrin/elops/internal/util"
)

// Stage tracks how far the analysis pipeline has run. Stages are strictly
// ordered; reentering a completed stage is a no-op.
type Stage int

const (
	StageBuilt Stage = iota
	StageNullabilityDone
	StageFirstDone
	StageFollowDone
	StagePredictDone
	StageTableReady
)

// Analyzer computes predictive-parsing sets for a grammar context. The
// context's symbols and productions are read-mostly; the analyzer keeps all
// computed attributes (nullability, FIRST, FOLLOW, per-production sets) in
// its own tables keyed by symbol and production id, so the grammar entities
// stay immutable.
//
// Create one with New and call Analyze before using any accessor. Analyze is
// idempotent.
type Analyzer struct {
	gc    *grammar.Context
	stage Stage

	// nullable holds every symbol known to derive ε. The epsilon terminal is
	// nullable by kind and is not stored here.
	nullable SymbolSet

	first  map[grammar.SymbolID]SymbolSet
	follow map[grammar.SymbolID]SymbolSet

	rhsFirst    []SymbolSet
	rhsPredict  []SymbolSet
	rhsNullable []bool

	// conflict is the id of the first production whose PREDICT set overlaps
	// an earlier same-lhs production's, or -1.
	conflict int

	table *LL1Table
}

// New creates an Analyzer for the given grammar context. The context must
// satisfy the structural preconditions (at least one production, all symbols
// classified); a violation is returned as an error and the analyzer is not
// created.
func New(gc *grammar.Context) (*Analyzer, error) {
	if err := gc.Validate(); err != nil {
		return nil, err
	}

	n := gc.Prods.Len()
	a := &Analyzer{
		gc:          gc,
		stage:       StageBuilt,
		nullable:    util.NewKeySet[grammar.SymbolID](),
		first:       map[grammar.SymbolID]SymbolSet{},
		follow:      map[grammar.SymbolID]SymbolSet{},
		rhsFirst:    make([]SymbolSet, n),
		rhsPredict:  make([]SymbolSet, n),
		rhsNullable: make([]bool, n),
		conflict:    -1,
	}

	return a, nil
}

// Analyze runs the full pipeline. Calling it again after it has completed
// has no effect; all sets and flags keep their values.
func (a *Analyzer) Analyze() error {
	if a.stage >= StageTableReady {
		return nil
	}

	// The start production's FOLLOW seed. Interning here picks up the EOF
	// terminal even when the grammar author never wrote $ explicitly.
	eof := a.gc.Symbols.Intern(grammar.EofName)
	if eof.Kind == grammar.Unknown {
		eof.Kind = grammar.TerminalEof
	}

	if a.stage < StageNullabilityDone {
		a.buildNullability()
		a.stage = StageNullabilityDone
	}
	if a.stage < StageFirstDone {
		a.buildFirst()
		a.stage = StageFirstDone
	}
	if a.stage < StageFollowDone {
		a.buildFollow(eof.ID)
		a.stage = StageFollowDone
	}
	if a.stage < StagePredictDone {
		a.buildPredict()
		a.purgeEpsilon()
		a.validate()
		a.stage = StagePredictDone
	}

	a.table = project(a.gc, a)
	a.stage = StageTableReady

	return nil
}

// symbolNullable reports whether a single symbol derives ε: the epsilon
// terminal does by kind, nonterminals do when a pass has marked them.
func (a *Analyzer) symbolNullable(id grammar.SymbolID) bool {
	if a.gc.Symbols.ByID(id).IsEpsilon() {
		return true
	}
	return a.nullable.Has(id)
}

// seqNullable reports whether every symbol of the sequence is nullable or
// the epsilon terminal; the empty sequence trivially is.
func (a *Analyzer) seqNullable(seq []grammar.SymbolID) bool {
	for _, id := range seq {
		if !a.symbolNullable(id) {
			return false
		}
	}
	return true
}

// buildNullability marks which nonterminals derive ε and records the
// per-production rhs flag. Flags only flip false to true, so the loop is
// bounded by the count of nonterminals.
func (a *Analyzer) buildNullability() {
	hasChange := true
	for hasChange {
		hasChange = false
		for _, p := range a.gc.Prods.Productions() {
			if a.seqNullable(p.RHS) {
				a.rhsNullable[p.ID] = true
				if !a.nullable.Has(p.LHS) {
					a.nullable.Add(p.LHS)
					hasChange = true
				}
			}
		}
	}
}

// buildFirst computes FIRST for every symbol. Terminals start with
// themselves (the alien sentinel included); nonterminals accumulate the
// FIRST of their productions' right-hand sides to fixpoint.
func (a *Analyzer) buildFirst() {
	for _, sym := range a.gc.Symbols.Symbols() {
		set := util.NewKeySet[grammar.SymbolID]()
		if sym.IsTerminal() {
			set.Add(sym.ID)
		}
		a.first[sym.ID] = set
	}
	alien := a.gc.Symbols.Alien()
	a.first[alien.ID] = util.KeySetOf([]grammar.SymbolID{alien.ID})

	hasChange := true
	for hasChange {
		hasChange = false
		for _, p := range a.gc.Prods.Productions() {
			tempSet := a.firstOfSeq(p.RHS)
			if unionInto(a.first[p.LHS], tempSet) {
				hasChange = true
			}
		}
	}
}

// firstOfSeq computes FIRST of a symbol sequence by
// union-to-first-non-nullable: each symbol's FIRST joins the accumulator,
// and the walk stops at the first symbol that cannot derive ε.
func (a *Analyzer) firstOfSeq(seq []grammar.SymbolID) SymbolSet {
	set := util.NewKeySet[grammar.SymbolID]()

	for _, id := range seq {
		unionInto(set, a.first[id])
		if !a.symbolNullable(id) {
			break
		}
	}

	return set
}

// buildFollow propagates FOLLOW across every production to fixpoint. The
// start production's lhs is seeded with the EOF terminal before the first
// pass.
func (a *Analyzer) buildFollow(eofID grammar.SymbolID) {
	for _, sym := range a.gc.Symbols.Symbols() {
		a.follow[sym.ID] = util.NewKeySet[grammar.SymbolID]()
	}
	if _, ok := a.follow[eofID]; !ok {
		a.follow[eofID] = util.NewKeySet[grammar.SymbolID]()
	}
	a.follow[a.gc.Start().LHS].Add(eofID)

	hasChange := true
	for hasChange {
		hasChange = false
		for _, p := range a.gc.Prods.Productions() {
			// FIRST of the suffix after each nonterminal position joins that
			// nonterminal's FOLLOW.
			for i := 0; i < len(p.RHS)-1; i++ {
				if a.gc.Symbols.ByID(p.RHS[i]).IsNonterminal() {
					tempSet := a.firstOfSeq(p.RHS[i+1:])
					if unionInto(a.follow[p.RHS[i]], tempSet) {
						hasChange = true
					}
				}
			}

			// FOLLOW(lhs) flows into every nonterminal of the tail-nullable
			// suffix, walking right to left until a symbol that cannot
			// derive ε is crossed.
			for i := len(p.RHS) - 1; i >= 0; i-- {
				if a.gc.Symbols.ByID(p.RHS[i]).IsNonterminal() {
					if unionInto(a.follow[p.RHS[i]], a.follow[p.LHS]) {
						hasChange = true
					}
				}
				if !a.symbolNullable(p.RHS[i]) {
					break
				}
			}
		}
	}
}

// buildPredict fills the per-production rhs-FIRST and PREDICT sets. No
// fixpoint; FIRST and FOLLOW are already final.
func (a *Analyzer) buildPredict() {
	for _, p := range a.gc.Prods.Productions() {
		a.rhsFirst[p.ID] = a.firstOfSeq(p.RHS)
		a.rhsPredict[p.ID] = a.rhsFirst[p.ID].Copy()
		if a.rhsNullable[p.ID] {
			unionInto(a.rhsPredict[p.ID], a.follow[p.LHS])
		}
	}
}

// purgeEpsilon removes the epsilon terminal from every FIRST, FOLLOW,
// rhs-FIRST, and rhs-PREDICT set so downstream consumers see only real
// terminals. Nullability stays recorded out-of-band in the nullable flags.
func (a *Analyzer) purgeEpsilon() {
	eps := a.gc.Symbols.Lookup(grammar.EpsilonName)
	if eps == nil {
		return
	}

	for id := range a.first {
		removeFrom(a.first[id], eps.ID)
	}
	for id := range a.follow {
		removeFrom(a.follow[id], eps.ID)
	}
	for _, p := range a.gc.Prods.Productions() {
		removeFrom(a.rhsFirst[p.ID], eps.ID)
		removeFrom(a.rhsPredict[p.ID], eps.ID)
	}
}

// validate checks pairwise disjointness of PREDICT sets across productions
// sharing an lhs, by accumulating each lhs's union in id order. The first
// overlap records the offending (later) production and the grammar is not
// LL(1). The verdict is informational; the table is still produced.
func (a *Analyzer) validate() {
	accumulated := map[grammar.SymbolID]SymbolSet{}

	for _, p := range a.gc.Prods.Productions() {
		acc, ok := accumulated[p.LHS]
		if !ok {
			acc = util.NewKeySet[grammar.SymbolID]()
			accumulated[p.LHS] = acc
		}

		if !acc.DisjointWith(a.rhsPredict[p.ID]) {
			a.conflict = p.ID
			return
		}
		unionInto(acc, a.rhsPredict[p.ID])
	}
}

// IsLL1 returns whether the analyzed grammar is LL(1): for every
// nonterminal, the PREDICT sets of its productions are pairwise disjoint.
// Valid only after Analyze.
func (a *Analyzer) IsLL1() bool {
	return a.stage >= StagePredictDone && a.conflict < 0
}

// Conflict returns the id of the first production found to overlap an
// earlier same-lhs production's PREDICT set. ok is false if the grammar is
// LL(1).
func (a *Analyzer) Conflict() (pid int, ok bool) {
	if a.conflict < 0 {
		return 0, false
	}
	return a.conflict, true
}

// Stage returns how far the pipeline has run.
func (a *Analyzer) Stage() Stage {
	return a.stage
}

// Nullable returns whether the given symbol derives ε. Meaningful for
// nonterminals; the epsilon terminal answers true, all other terminals
// false.
func (a *Analyzer) Nullable(id grammar.SymbolID) bool {
	return a.symbolNullable(id)
}

// RHSNullable returns whether the right-hand side of production pid derives
// ε.
func (a *Analyzer) RHSNullable(pid int) bool {
	return a.rhsNullable[pid]
}

// First returns FIRST of the given symbol. For a terminal t this is {t}.
// The returned set is the analyzer's own; callers must not modify it.
func (a *Analyzer) First(id grammar.SymbolID) SymbolSet {
	return a.first[id]
}

// Follow returns FOLLOW of the given nonterminal. FOLLOW of a terminal is
// unused and empty.
func (a *Analyzer) Follow(id grammar.SymbolID) SymbolSet {
	return a.follow[id]
}

// Predict returns PREDICT of production pid: FIRST(rhs), plus FOLLOW(lhs)
// when the rhs derives ε.
func (a *Analyzer) Predict(pid int) SymbolSet {
	return a.rhsPredict[pid]
}

// RHSFirst returns FIRST of production pid's right-hand side.
func (a *Analyzer) RHSFirst(pid int) SymbolSet {
	return a.rhsFirst[pid]
}

// Table returns the LL(1) parsing table. Valid only after Analyze.
func (a *Analyzer) Table() *LL1Table {
	return a.table
}
