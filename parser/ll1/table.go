// Package ll1 implements a table-driven LL(1) predictive parser: a table
// builder over a normalized grammar.Grammar and a stack-driven recognizer
// that emits a step-by-step trace rather than building an AST -- the LL(1)
// parser is the teaching/diagnostic driver, matching the original's
// LL1Parser::parse. The SLR(1) driver in parser/slr is the one that builds
// the AST.
package ll1

import (
	"github.com/kestrel-lang/cfront/grammar"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace { return tracing.Select("cfront.parser.ll1") }

// key identifies one predictive-table cell.
type key struct {
	NonTerminal grammar.Symbol
	Terminal    grammar.Symbol
}

// Table is the LL(1) predictive parse table, M[A,a] -> production.
type Table map[key]grammar.Production

// Lookup returns the production registered for M[nonTerminal, terminal], if
// any.
func (t Table) Lookup(nonTerminal, terminal grammar.Symbol) (grammar.Production, bool) {
	p, ok := t[key{nonTerminal, terminal}]
	return p, ok
}

// BuildTable computes M for every production of g: for A -> alpha, every
// terminal in FIRST(alpha)\{epsilon} gets M[A,a] := A->alpha; if alpha is
// nullable, every terminal in FOLLOW(A) also gets that entry. Overlap -- a
// latent conflict HasBackTracking should already have warned about -- is
// resolved last-writer-wins, unlike the SLR(1) conflict policy, which keeps
// the first registered reduce instead.
func BuildTable(g *grammar.Grammar) Table {
	table := make(Table)
	for _, prod := range g.LiveProductions() {
		firstAlpha := g.FirstOfSequence(prod.Body)
		for _, a := range firstAlpha.Slice() {
			if a.IsEpsilon() {
				continue
			}
			table[key{prod.Head, a}] = prod
		}
		if firstAlpha.Contains(grammar.Eps()) {
			for _, b := range g.Follow(prod.Head).Slice() {
				table[key{prod.Head, b}] = prod
			}
		}
	}
	tracer().Debugf("LL(1) table built: %d entries over %d live productions", len(table), len(g.LiveProductions()))
	return table
}
