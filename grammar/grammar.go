package grammar

import (
	"fmt"
	"io"
	"sort"

	"github.com/kestrel-lang/cfront/ast"
	"github.com/kestrel-lang/cfront/lexer"
)

// sentinelID marks a production as superseded: it remains in Productions
// (so earlier-computed production ids stay stable) but is skipped by every
// later pass, exactly as the original invalidates-then-compacts scheme does.
const sentinelID = -1

// Grammar owns the production vector, the derived terminal/non-terminal name
// sets, the start symbol, the lexer-token-to-terminal map, and (once
// computed) the FIRST/FOLLOW maps.
type Grammar struct {
	Start       Symbol
	Productions []Production

	byHead       map[string][]int // head name -> production ids, in add order
	nonTermOrder []string         // non-terminal names in first-seen order
	terminals    map[string]bool
	nonTerminals map[string]bool
	tokenMap     map[lexer.Key]Symbol

	first  map[Symbol]SymbolSet
	follow map[Symbol]SymbolSet
}

// New creates an empty grammar with the given start non-terminal.
func New(start string) *Grammar {
	return &Grammar{
		Start:        NT(start),
		byHead:       make(map[string][]int),
		terminals:    make(map[string]bool),
		nonTerminals: make(map[string]bool),
		tokenMap:     make(map[lexer.Key]Symbol),
	}
}

// AddProduction registers head -> body with the given semantic-action
// builder and returns the new Production's id. body must not be empty;
// epsilon productions must spell Eps() explicitly as their sole body
// symbol, matching the original's "empty body is illegal" rule.
func (g *Grammar) AddProduction(head string, body []Symbol, build ast.Builder) int {
	if len(body) == 0 {
		panic(fmt.Sprintf("grammar: production for %q has an empty body; spell epsilon explicitly", head))
	}
	id := len(g.Productions)
	p := Production{ID: id, Head: NT(head), Body: body, Build: build}
	g.Productions = append(g.Productions, p)
	if _, seen := g.byHead[head]; !seen {
		g.nonTermOrder = append(g.nonTermOrder, head)
	}
	g.byHead[head] = append(g.byHead[head], id)
	g.nonTerminals[head] = true
	for _, sym := range body {
		if sym.IsTerminal() {
			g.terminals[sym.Name] = true
		} else if sym.IsNonTerminal() {
			g.nonTerminals[sym.Name] = true
		}
	}
	return id
}

// MapToken registers the grammar terminal a lexer token of the given
// (Type, Category) identity maps to.
func (g *Grammar) MapToken(key lexer.Key, terminal Symbol) {
	g.tokenMap[key] = terminal
}

// TerminalFor looks up the grammar terminal for a token's (Type, Category)
// identity. ok is false if the token has no mapping, matching the original
// LL1Parser::parse's "token not in grammar terminal set" error path.
func (g *Grammar) TerminalFor(key lexer.Key) (Symbol, bool) {
	sym, ok := g.tokenMap[key]
	return sym, ok
}

// productionIDs returns the ids of every production (including superseded
// ones) currently registered for head, in registration order. IDs, not
// pointers, are the safe way to reference a Production across a call that
// may append to g.Productions and reallocate its backing array.
func (g *Grammar) productionIDs(head string) []int {
	return append([]int(nil), g.byHead[head]...)
}

// liveProductionIDs is productionIDs filtered to non-superseded entries.
func (g *Grammar) liveProductionIDs(head string) []int {
	var out []int
	for _, id := range g.byHead[head] {
		if g.Productions[id].ID != sentinelID {
			out = append(out, id)
		}
	}
	return out
}

// liveProductionsOf returns copies of the non-superseded productions
// registered for head. Safe to read from across later mutation of g, since
// Production (and the func value in Build) are copied by value.
func (g *Grammar) liveProductionsOf(head string) []Production {
	ids := g.liveProductionIDs(head)
	out := make([]Production, len(ids))
	for i, id := range ids {
		out[i] = g.Productions[id]
	}
	return out
}

// Clone returns a deep-enough copy of g (productions and index maps are
// copied; Builders, being funcs, are shared by reference) suitable for
// destructive normalization without disturbing the original -- the SLR(1)
// table builder needs the un-normalized, naturally left-recursive grammar,
// while the LL(1) table builder needs a normalized copy.
func (g *Grammar) Clone() *Grammar {
	clone := &Grammar{
		Start:        g.Start,
		Productions:  append([]Production(nil), g.Productions...),
		byHead:       make(map[string][]int, len(g.byHead)),
		nonTermOrder: append([]string(nil), g.nonTermOrder...),
		terminals:    make(map[string]bool, len(g.terminals)),
		nonTerminals: make(map[string]bool, len(g.nonTerminals)),
		tokenMap:     make(map[lexer.Key]Symbol, len(g.tokenMap)),
	}
	for k, v := range g.byHead {
		clone.byHead[k] = append([]int(nil), v...)
	}
	for k, v := range g.terminals {
		clone.terminals[k] = v
	}
	for k, v := range g.nonTerminals {
		clone.nonTerminals[k] = v
	}
	for k, v := range g.tokenMap {
		clone.tokenMap[k] = v
	}
	return clone
}

// --- FIRST -----------------------------------------------------------------

// ComputeFirstSets computes FIRST(X) for every terminal and non-terminal by
// fixpoint iteration: terminal seeding, then a "longest nullable prefix"
// sweep over every production body, repeated until no set grows.
func (g *Grammar) ComputeFirstSets() {
	g.first = make(map[Symbol]SymbolSet)
	for name := range g.terminals {
		t := T(name)
		g.first[t] = SymbolSet{t: struct{}{}}
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.nonTermOrder {
			k := NT(nt)
			if g.first[k] == nil {
				g.first[k] = newSymbolSet()
			}
			for _, p := range g.liveProductionsOf(nt) {
				if p.IsEpsilon() {
					if g.first[k].Add(Eps()) {
						changed = true
					}
					continue
				}
				allNullable := true
				for _, yi := range p.Body {
					firstYi := g.first[yi]
					if firstYi == nil {
						firstYi = newSymbolSet()
					}
					if g.first[k].AddAllExcept(firstYi, Eps()) {
						changed = true
					}
					if !firstYi.Contains(Eps()) {
						allNullable = false
						break
					}
				}
				if allNullable {
					if g.first[k].Add(Eps()) {
						changed = true
					}
				}
			}
		}
	}
}

// FirstOfSequence is FIRST extended to a symbol sequence: the union of
// FIRST(Yi)\{epsilon} over the longest nullable prefix, plus epsilon itself
// if the whole sequence is nullable (including the empty sequence, whose
// FIRST is {epsilon} by convention). This is the operation the LL(1) table
// builder and FOLLOW computation both invoke.
func (g *Grammar) FirstOfSequence(seq []Symbol) SymbolSet {
	result := newSymbolSet()
	if len(seq) == 1 && seq[0].IsEpsilon() {
		result.Add(Eps())
		return result
	}
	if len(seq) == 0 {
		result.Add(Eps())
		return result
	}
	allNullable := true
	for _, yi := range seq {
		firstYi := g.first[yi]
		if firstYi == nil {
			firstYi = newSymbolSet()
		}
		result.AddAllExcept(firstYi, Eps())
		if !firstYi.Contains(Eps()) {
			allNullable = false
			break
		}
	}
	if allNullable {
		result.Add(Eps())
	}
	return result
}

// --- FOLLOW ------------------------------------------------------------------
//
// The algorithm below is the standard FOLLOW fixpoint.

// ComputeFollowSets computes FOLLOW(A) for every non-terminal A by fixpoint
// iteration. Must run after ComputeFirstSets.
func (g *Grammar) ComputeFollowSets() {
	g.follow = make(map[Symbol]SymbolSet)
	for nt := range g.nonTerminals {
		g.follow[NT(nt)] = newSymbolSet()
	}
	g.follow[g.Start].Add(EndSym())

	changed := true
	for changed {
		changed = false
		for i := range g.Productions {
			p := &g.Productions[i]
			if p.ID == sentinelID || p.IsEpsilon() {
				continue
			}
			for i, b := range p.Body {
				if !b.IsNonTerminal() {
					continue
				}
				beta := p.Body[i+1:]
				firstBeta := g.FirstOfSequence(beta)
				if g.follow[b] == nil {
					g.follow[b] = newSymbolSet()
				}
				if g.follow[b].AddAllExcept(firstBeta, Eps()) {
					changed = true
				}
				if len(beta) == 0 || firstBeta.Contains(Eps()) {
					if g.follow[b].AddAll(g.follow[p.Head]) {
						changed = true
					}
				}
			}
		}
	}
}

// Follow returns FOLLOW(nt), or an empty set if nt has none registered.
func (g *Grammar) Follow(nt Symbol) SymbolSet {
	if s, ok := g.follow[nt]; ok {
		return s
	}
	return newSymbolSet()
}

// First returns FIRST(sym) for a terminal or non-terminal, or an empty set.
func (g *Grammar) First(sym Symbol) SymbolSet {
	if s, ok := g.first[sym]; ok {
		return s
	}
	return newSymbolSet()
}

// --- Conflict diagnosis ------------------------------------------------------

// Conflict describes one LL(1) table ambiguity found by HasBackTracking.
type Conflict struct {
	NonTerminal Symbol
	Kind        string // "FIRST/FIRST" or "FIRST/FOLLOW"
	Symbol      Symbol // the terminal both alternates would claim
}

// HasBackTracking enumerates every non-terminal with two or more alternates
// and reports FIRST/FIRST conflicts (alternates whose FIRST sets overlap on
// a real terminal) and FIRST/FOLLOW conflicts (an epsilon-producing
// alternate whose head's FOLLOW set overlaps another alternate's FIRST
// set). It writes a human-readable report to w and returns whether any
// conflict was found, matching the original's has_back_tracing(ostream&)
// signature and its use as a pre-flight warning before LL(1) parsing.
func (g *Grammar) HasBackTracking(w io.Writer) bool {
	found := false
	for _, nt := range g.nonTermOrder {
		prods := g.liveProductionsOf(nt)
		if len(prods) < 2 {
			continue
		}
		firsts := make([]SymbolSet, len(prods))
		for i, p := range prods {
			firsts[i] = g.FirstOfSequence(p.Body)
		}
		for i := 0; i < len(prods); i++ {
			for j := i + 1; j < len(prods); j++ {
				for sym := range firsts[i] {
					if sym.IsEpsilon() {
						continue
					}
					if firsts[j].Contains(sym) {
						fmt.Fprintf(w, "FIRST/FIRST conflict in %s on %s: %s vs %s\n",
							nt, sym, prods[i], prods[j])
						found = true
					}
				}
			}
		}
		for i, p := range prods {
			if !firsts[i].Contains(Eps()) {
				continue
			}
			followA := g.Follow(NT(nt))
			for j, q := range prods {
				if i == j {
					continue
				}
				for sym := range followA {
					if sym.IsEpsilon() {
						continue
					}
					if firsts[j].Contains(sym) {
						fmt.Fprintf(w, "FIRST/FOLLOW conflict in %s on %s: %s vs %s\n",
							nt, sym, p, q)
						found = true
					}
				}
			}
		}
	}
	return found
}

// --- Reachability compaction --------------------------------------------------

// compactUnreachable drops every non-terminal (and its productions) not
// reachable from the start symbol. Called after left-recursion elimination,
// which can strand non-terminals once their only references were rewritten
// away.
func (g *Grammar) compactUnreachable() {
	reachable := map[string]bool{g.Start.Name: true}
	queue := []string{g.Start.Name}
	for len(queue) > 0 {
		nt := queue[0]
		queue = queue[1:]
		for _, p := range g.liveProductionsOf(nt) {
			for _, sym := range p.Body {
				if sym.IsNonTerminal() && !reachable[sym.Name] {
					reachable[sym.Name] = true
					queue = append(queue, sym.Name)
				}
			}
		}
	}

	var keptOrder []string
	for _, nt := range g.nonTermOrder {
		if !reachable[nt] {
			delete(g.byHead, nt)
			delete(g.nonTerminals, nt)
			continue
		}
		keptOrder = append(keptOrder, nt)
	}
	g.nonTermOrder = keptOrder

	for i := range g.Productions {
		p := &g.Productions[i]
		if p.ID == sentinelID {
			continue
		}
		if !reachable[p.Head.Name] {
			p.ID = sentinelID
		}
	}
}

// sortedNonTerminals is a small helper used by tests and diagnostics to get
// a stable ordering independent of Go's randomized map iteration.
func (g *Grammar) sortedNonTerminals() []string {
	out := append([]string(nil), g.nonTermOrder...)
	sort.Strings(out)
	return out
}

// LiveProductions returns copies of every non-superseded production in the
// grammar, in registration order. The table builders in parser/ll1 and
// parser/slr iterate this instead of Productions directly so they never see
// a production a normalization pass has invalidated.
func (g *Grammar) LiveProductions() []Production {
	out := make([]Production, 0, len(g.Productions))
	for _, p := range g.Productions {
		if p.ID != sentinelID {
			out = append(out, p)
		}
	}
	return out
}

// ProductionsFor returns the live productions registered for the given
// non-terminal head, exported for the SLR(1) item-set closure (which needs
// "every production of B" while expanding an item with the dot before B).
func (g *Grammar) ProductionsFor(head string) []Production {
	return g.liveProductionsOf(head)
}

// Terminals returns every terminal symbol registered in the grammar, sorted
// by name for a deterministic iteration order.
func (g *Grammar) Terminals() []Symbol {
	names := make([]string, 0, len(g.terminals))
	for name := range g.terminals {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Symbol, len(names))
	for i, name := range names {
		out[i] = T(name)
	}
	return out
}

// NonTerminals returns every non-terminal name in the grammar, in
// first-registered order (the order Paull's algorithm depends on).
func (g *Grammar) NonTerminals() []string {
	return append([]string(nil), g.nonTermOrder...)
}

// ProductionByID looks up a live production by its ID, as referenced from an
// SLR(1) reduce action or an LL(1) table entry.
func (g *Grammar) ProductionByID(id int) (Production, bool) {
	if id < 0 || id >= len(g.Productions) {
		return Production{}, false
	}
	p := g.Productions[id]
	if p.ID == sentinelID {
		return Production{}, false
	}
	return p, true
}
