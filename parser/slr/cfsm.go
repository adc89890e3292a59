package slr

import (
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/kestrel-lang/cfront/grammar"
)

// State is one node of the canonical LR(0) finite-state machine: a
// canonicalized set of items plus whether it is the CFSM's unique
// accepting state (the one state containing the completed augmented-start
// item). Items are stored in a gods treeset so two states with the same
// items in a different discovery order still compare equal.
type State struct {
	ID     int
	Items  *treeset.Set
	Accept bool
}

// edge is one labeled transition of the CFSM, kept in an arraylist in
// discovery order for deterministic dumping -- mirroring lr/tables.go's
// cfsmEdge/allEdges.
type edge struct {
	From  int
	To    int
	Label grammar.Symbol
}

// CFSM is the canonical finite-state machine of LR(0) item sets: states
// (one per canonical item set), the GOTO transitions between them, and the
// start state S0.
type CFSM struct {
	g      *grammar.Grammar
	states []*State
	edges  *arraylist.List
	byKey  map[string]int
	S0     *State
}

func newItemSet(items ...Item) *treeset.Set {
	set := treeset.NewWith(itemComparator)
	for _, it := range items {
		set.Add(it)
	}
	return set
}

// itemSetKey canonicalizes a treeset of items into a stable hash: sort by
// (production id, dot) -- already the treeset's natural order, so Values()
// is already sorted -- then hash the (id, dot) pairs with structhash, the
// same structhash-backed dedup automata/dfa.go's subsetKey uses for NFA
// subset construction.
func itemSetKey(items *treeset.Set) string {
	type pair struct{ ProdID, Dot int }
	pairs := make([]pair, 0, items.Size())
	for _, v := range items.Values() {
		it := v.(Item)
		pairs = append(pairs, pair{it.Prod.ID, it.Dot})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].ProdID != pairs[j].ProdID {
			return pairs[i].ProdID < pairs[j].ProdID
		}
		return pairs[i].Dot < pairs[j].Dot
	})
	h, err := structhash.Hash(pairs, 1)
	if err != nil {
		panic(err)
	}
	return h
}

// closure expands a seed item set in place to its LR(0) closure: for every
// item with the dot before a non-terminal B, add every production of B at
// dot 0 -- pre-advancing straight to the completed item when that
// production's body is purely epsilon, so an epsilon reduction can fire
// without a separate shift step.
func closure(g *grammar.Grammar, items *treeset.Set) {
	queue := make([]Item, 0, items.Size())
	for _, v := range items.Values() {
		queue = append(queue, v.(Item))
	}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		B := it.DotSymbol()
		if !B.IsNonTerminal() {
			continue
		}
		for _, prod := range g.ProductionsFor(B.Name) {
			dot := 0
			if prod.IsEpsilon() {
				dot = len(prod.Body)
			}
			cand := Item{Prod: prod, Dot: dot}
			if items.Contains(cand) {
				continue
			}
			items.Add(cand)
			queue = append(queue, cand)
		}
	}
}

// gotoSet computes the kernel of GOTO(items, X): every item [A -> alpha . X
// beta] in items advanced past X. The caller takes its closure to get the
// full GOTO state.
func gotoSet(items *treeset.Set, x grammar.Symbol) *treeset.Set {
	kernel := treeset.NewWith(itemComparator)
	for _, v := range items.Values() {
		it := v.(Item)
		if it.DotSymbol() == x {
			kernel.Add(it.Advance())
		}
	}
	return kernel
}

// addState interns items as a CFSM state, returning the existing state if
// an equal item set (by itemSetKey) was already registered.
func (c *CFSM) addState(items *treeset.Set) (*State, bool) {
	key := itemSetKey(items)
	if id, ok := c.byKey[key]; ok {
		return c.states[id], false
	}
	s := &State{ID: len(c.states), Items: items}
	c.states = append(c.states, s)
	c.byKey[key] = s.ID
	return s, true
}

// BuildCFSM constructs the canonical LR(0) finite-state machine for g's
// augmented grammar: g itself is treated as already augmented (its own
// Start symbol is the augmented start, production 0 the sole S' -> S
// production any grammar built via grammar.New/AddProduction naturally
// has as its first registered production for the start symbol). States
// and edges are discovered by an explicit BFS worklist over the symbols
// each item set can shift on, backed by treeset/arraylist storage so
// iteration order stays deterministic across builds.
func BuildCFSM(g *grammar.Grammar) *CFSM {
	c := &CFSM{g: g, edges: arraylist.New(), byKey: make(map[string]int)}

	seed := newItemSet(Item{Prod: g.LiveProductions()[0], Dot: 0})
	closure(g, seed)
	s0, _ := c.addState(seed)
	c.S0 = s0

	markAccepting(c, s0, g)

	queue := []int{s0.ID}
	for len(queue) > 0 {
		kID := queue[0]
		queue = queue[1:]
		I := c.states[kID]

		symbols := map[grammar.Symbol]bool{}
		for _, v := range I.Items.Values() {
			it := v.(Item)
			x := it.DotSymbol()
			if !x.IsEpsilon() {
				symbols[x] = true
			}
		}
		var ordered []grammar.Symbol
		for x := range symbols {
			ordered = append(ordered, x)
		}
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

		for _, x := range ordered {
			kernel := gotoSet(I.Items, x)
			closure(g, kernel)
			j, isNew := c.addState(kernel)
			markAccepting(c, j, g)
			c.edges.Add(edge{From: kID, To: j.ID, Label: x})
			if isNew {
				queue = append(queue, j.ID)
			}
		}
	}
	tracer().Debugf("CFSM built: %d states, %d edges", len(c.states), c.edges.Size())
	return c
}

// markAccepting flags s if it contains the completed augmented-start item.
func markAccepting(c *CFSM, s *State, g *grammar.Grammar) {
	start := g.LiveProductions()[0]
	for _, v := range s.Items.Values() {
		it := v.(Item)
		if it.Prod.ID == start.ID && it.IsComplete() {
			s.Accept = true
			return
		}
	}
}

// States returns every CFSM state, indexed by its ID.
func (c *CFSM) States() []*State { return c.states }

// Edges returns every GOTO edge, in discovery order.
func (c *CFSM) Edges() []edge {
	out := make([]edge, c.edges.Size())
	for i, v := range c.edges.Values() {
		out[i] = v.(edge)
	}
	return out
}
