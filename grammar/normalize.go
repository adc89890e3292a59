package grammar

import (
	"github.com/kestrel-lang/cfront"
	"github.com/kestrel-lang/cfront/ast"
)

// NormalizeLL1 rewrites g in place so that no non-terminal has direct or
// indirect left recursion and no two alternates of the same non-terminal
// share a FIRST prefix of length 1. It runs two ordered passes:
//
//  1. Left-recursion elimination (Paull's algorithm): indirect recursion is
//     removed by substitution over a fixed non-terminal ordering, then
//     immediate recursion is removed per non-terminal by introducing a
//     primed non-terminal.
//  2. Left factoring, preceded by an unreachable-prefix substitution that
//     inlines A -> B gamma productions. Repeated, together with another
//     left-recursion sweep, until a full pass makes no change.
//
// Every synthesized production carries a Builder assembled from the
// original productions' Builders via ast.ContinuationValue, so semantic
// actions still run correctly over the rewritten grammar shape; see
// DESIGN.md for how the composition works.
func (g *Grammar) NormalizeLL1() {
	g.eliminateLeftRecursion()
	for {
		changed := g.leftFactorSweep()
		changed = g.eliminateLeftRecursion() || changed
		if !changed {
			break
		}
	}
	g.compactUnreachable()
}

// primeName returns base with enough trailing apostrophes appended to name
// a non-terminal that doesn't already exist.
func (g *Grammar) primeName(base string) string {
	name := base
	for {
		name += "'"
		if !g.nonTerminals[name] {
			return name
		}
	}
}

// eliminateLeftRecursion runs one full Paull's-algorithm sweep over the
// non-terminals in their first-seen order and reports whether anything
// changed.
func (g *Grammar) eliminateLeftRecursion() bool {
	order := append([]string(nil), g.nonTermOrder...)
	changed := false
	for i, ai := range order {
		for j := 0; j < i; j++ {
			if g.substituteHead(ai, order[j]) {
				changed = true
			}
		}
		if g.eliminateImmediateLeftRecursion(ai) {
			changed = true
		}
	}
	return changed
}

// substituteHead replaces every live production Ai -> Aj gamma with
// Ai -> delta gamma for each live alternate Aj -> delta, per Paull's
// indirect-recursion substitution step.
func (g *Grammar) substituteHead(ai, aj string) bool {
	changed := false
	for _, id := range g.liveProductionIDs(ai) {
		p := g.Productions[id]
		if p.IsEpsilon() || len(p.Body) == 0 || p.Body[0] != NT(aj) {
			continue
		}
		gamma := p.Body[1:]
		for _, q := range g.liveProductionsOf(aj) {
			g.AddProduction(ai, substitutedBody(q, gamma), substitutedBuilder(q, p, symbolArity(q)))
		}
		g.Productions[id].ID = sentinelID
		changed = true
	}
	return changed
}

// symbolArity is the number of rhs Values a production's Build expects.
func symbolArity(p Production) int {
	if p.IsEpsilon() {
		return 0
	}
	return len(p.Body)
}

func substitutedBody(inlined Production, tail []Symbol) []Symbol {
	var body []Symbol
	if !inlined.IsEpsilon() {
		body = append(body, inlined.Body...)
	}
	body = append(body, tail...)
	if len(body) == 0 {
		body = []Symbol{Eps()}
	}
	return body
}

// substitutedBuilder composes inlined's Build (applied to the inlined
// production's own share of the rewritten rhs) with outer's Build (applied
// to the inlined production's result plus whatever followed it in outer's
// original body).
func substitutedBuilder(inlined, outer Production, inlinedArity int) ast.Builder {
	return func(loc cfront.Location, rhs []ast.Value) ast.Value {
		innerVal := inlined.Build(loc, rhs[:inlinedArity])
		rest := rhs[inlinedArity:]
		combined := append([]ast.Value{innerVal}, rest...)
		return outer.Build(loc, combined)
	}
}

// eliminateImmediateLeftRecursion rewrites A -> A alpha | beta alternates
// (any number of each) into A -> beta A' and A' -> alpha A' | epsilon,
// using a continuation-passing Builder composition so the rewritten
// productions still compute the same AST the original left-recursive
// production would have built by left-associative folding.
func (g *Grammar) eliminateImmediateLeftRecursion(a string) bool {
	self := NT(a)
	var recursive, base []Production
	for _, p := range g.liveProductionsOf(a) {
		if !p.IsEpsilon() && len(p.Body) > 0 && p.Body[0] == self {
			recursive = append(recursive, p)
		} else {
			base = append(base, p)
		}
	}
	if len(recursive) == 0 {
		return false
	}
	for _, id := range g.liveProductionIDs(a) {
		g.Productions[id].ID = sentinelID
	}

	primed := g.primeName(a)
	for _, p := range recursive {
		alpha := p.Body[1:]
		body := append(append([]Symbol(nil), alpha...), NT(primed))
		g.AddProduction(primed, body, recursiveStepBuilder(p, len(alpha)))
	}
	g.AddProduction(primed, []Symbol{Eps()}, func(cfront.Location, []ast.Value) ast.Value {
		return ast.ContinuationValue(func(prefix []ast.Value) ast.Value { return prefix[0] })
	})
	for _, p := range base {
		arity := symbolArity(p)
		body := append(append([]Symbol(nil), p.Body...), NT(primed))
		if p.IsEpsilon() {
			body = []Symbol{NT(primed)}
		}
		g.AddProduction(a, body, baseStepBuilder(p, arity))
	}
	return true
}

// recursiveStepBuilder builds the Value for "A' -> alpha A'": it returns a
// continuation that, given the accumulator built so far, folds in alpha via
// the original recursive production's Build and then hands the result to
// the inner A' continuation.
func recursiveStepBuilder(original Production, alphaArity int) ast.Builder {
	return func(loc cfront.Location, rhs []ast.Value) ast.Value {
		alphaVals := rhs[:alphaArity]
		innerCont := rhs[alphaArity].AsContinuation()
		return ast.ContinuationValue(func(prefix []ast.Value) ast.Value {
			combined := append(append([]ast.Value(nil), prefix[0]), alphaVals...)
			folded := original.Build(loc, combined)
			return innerCont([]ast.Value{folded})
		})
	}
}

// baseStepBuilder builds the Value for "A -> beta A'": it runs the original
// base alternate's Build over beta's own Values, then feeds the result into
// the A' continuation to complete any pending left folds.
func baseStepBuilder(original Production, betaArity int) ast.Builder {
	return func(loc cfront.Location, rhs []ast.Value) ast.Value {
		betaVals := rhs[:betaArity]
		cont := rhs[betaArity].AsContinuation()
		base := original.Build(loc, betaVals)
		return cont([]ast.Value{base})
	}
}

// leftFactorSweep runs one unreachable-prefix-substitution-then-left-factor
// round over every non-terminal and reports whether anything changed.
func (g *Grammar) leftFactorSweep() bool {
	changed := false
	for _, nt := range append([]string(nil), g.nonTermOrder...) {
		if g.unreachablePrefixSubstitution(nt) {
			changed = true
		}
	}
	for _, nt := range append([]string(nil), g.nonTermOrder...) {
		if g.leftFactorNonTerminal(nt) {
			changed = true
		}
	}
	return changed
}

// unreachablePrefixSubstitution inlines every live A -> B gamma production
// (B a non-terminal other than A, with at least one live alternate) into
// one A -> delta_i gamma production per alternate delta_i of B, exposing
// terminal-starting alternates for left-factoring to compare.
func (g *Grammar) unreachablePrefixSubstitution(a string) bool {
	changed := false
	for _, id := range g.liveProductionIDs(a) {
		p := g.Productions[id]
		if p.IsEpsilon() || len(p.Body) == 0 {
			continue
		}
		head := p.Body[0]
		if !head.IsNonTerminal() || head.Name == a {
			continue
		}
		alts := g.liveProductionsOf(head.Name)
		if len(alts) == 0 {
			continue
		}
		gamma := p.Body[1:]
		for _, q := range alts {
			g.AddProduction(a, substitutedBody(q, gamma), substitutedBuilder(q, p, symbolArity(q)))
		}
		g.Productions[id].ID = sentinelID
		changed = true
	}
	return changed
}

// leftFactorNonTerminal groups a's live alternates by their longest common
// prefix and, for any group with more than one member, factors the prefix
// out through a fresh primed non-terminal.
func (g *Grammar) leftFactorNonTerminal(a string) bool {
	prods := g.liveProductionsOf(a)
	if len(prods) < 2 {
		return false
	}
	groups := make(map[Symbol][]Production)
	var order []Symbol
	for _, p := range prods {
		if p.IsEpsilon() || len(p.Body) == 0 {
			continue
		}
		first := p.Body[0]
		if _, seen := groups[first]; !seen {
			order = append(order, first)
		}
		groups[first] = append(groups[first], p)
	}

	changed := false
	for _, first := range order {
		group := groups[first]
		if len(group) < 2 {
			continue
		}
		prefixLen := commonPrefixLen(group)
		if prefixLen == 0 {
			continue
		}
		primed := g.primeName(a)
		for _, member := range group {
			g.Productions[member.ID].ID = sentinelID
		}
		for _, member := range group {
			suffix := member.Body[prefixLen:]
			suffixBody := suffix
			if len(suffixBody) == 0 {
				suffixBody = []Symbol{Eps()}
			}
			g.AddProduction(primed, suffixBody, leftFactorSuffixBuilder(member, prefixLen))
		}
		g.AddProduction(a, append(append([]Symbol(nil), group[0].Body[:prefixLen]...), NT(primed)),
			leftFactorPrefixBuilder(prefixLen))
		changed = true
	}
	return changed
}

// leftFactorSuffixBuilder builds the Value for "A' -> suffix": a
// continuation that, once handed the factored-out prefix Values, calls the
// original alternate's Build over prefix+suffix combined.
func leftFactorSuffixBuilder(original Production, prefixLen int) ast.Builder {
	suffixArity := symbolArity(original) - prefixLen
	return func(loc cfront.Location, rhs []ast.Value) ast.Value {
		suffixVals := rhs[:suffixArity]
		return ast.ContinuationValue(func(prefix []ast.Value) ast.Value {
			combined := append(append([]ast.Value(nil), prefix...), suffixVals...)
			return original.Build(loc, combined)
		})
	}
}

// leftFactorPrefixBuilder builds the Value for "A -> prefix A'": it hands
// the shared-prefix Values to the A' continuation to complete the original
// alternate's construction.
func leftFactorPrefixBuilder(prefixLen int) ast.Builder {
	return func(loc cfront.Location, rhs []ast.Value) ast.Value {
		prefixVals := rhs[:prefixLen]
		cont := rhs[prefixLen].AsContinuation()
		return cont(prefixVals)
	}
}

func commonPrefixLen(group []Production) int {
	minLen := len(group[0].Body)
	for _, p := range group[1:] {
		if len(p.Body) < minLen {
			minLen = len(p.Body)
		}
	}
	for l := 0; l < minLen; l++ {
		sym := group[0].Body[l]
		for _, p := range group[1:] {
			if p.Body[l] != sym {
				return l
			}
		}
	}
	return minLen
}
