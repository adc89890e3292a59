package automata

import (
	"sort"

	"github.com/cnf/structhash"
)

// DFAEdge is a single labeled transition out of a DFA state.
type DFAEdge struct {
	Sym Sym
	To  int
}

// DFAState is one state of a DFA: at most one out-edge per symbol, plus
// accepting information inherited from the NFA subset it was built from.
type DFAState struct {
	Edges    []DFAEdge
	Token    int
	Priority int
}

// DFA is a deterministic finite automaton built from an NFA via subset
// construction, and minimized once via Hopcroft's algorithm.
type DFA struct {
	states []DFAState
	start  int
}

func (d *DFA) NewState() int {
	d.states = append(d.states, DFAState{Token: -1, Priority: maxInt})
	return len(d.states) - 1
}

func (d *DFA) StartState() int          { return d.start }
func (d *DFA) States() []DFAState       { return d.states }
func (d *DFA) NumStates() int           { return len(d.states) }
func (d *DFA) State(i int) DFAState     { return d.states[i] }

// AddEdge adds (or overwrites) the transition for sym from u.
func (d *DFA) AddEdge(u, v int, sym Sym) {
	st := &d.states[u]
	for i, e := range st.Edges {
		if e.Sym == sym {
			st.Edges[i].To = v
			return
		}
	}
	st.Edges = append(st.Edges, DFAEdge{Sym: sym, To: v})
}

// Transition returns the target state reached from state via sym, falling
// back to an Any-labeled edge when no literal edge for sym exists (and sym
// itself is not Any) -- so a DFA built from a pattern containing '.' will
// match any concrete byte that has no more specific rule. Returns -1 on a
// dead transition.
func (d *DFA) Transition(state int, sym Sym) int {
	anyTarget := -1
	for _, e := range d.states[state].Edges {
		if e.Sym == sym {
			return e.To
		}
		if sym != Any && e.Sym == Any {
			anyTarget = e.To
		}
	}
	return anyTarget
}

func subsetKey(subset []int) string {
	sorted := append([]int(nil), subset...)
	sort.Ints(sorted)
	h, err := structhash.Hash(sorted, 1)
	if err != nil {
		// structhash only fails on unsupported reflect kinds, which []int
		// never is; this branch exists for defensive completeness only.
		panic(err)
	}
	return h
}

// NewDFA performs subset construction over nfa, producing an equivalent
// (unminimized) DFA. The start state is the epsilon-closure of the NFA's
// start; every subsequently explored subset is hashed via structhash for
// dedup rather than compared vector-by-vector.
func NewDFA(nfa *NFA) *DFA {
	d := &DFA{}
	if nfa.NumStates() == 0 {
		d.start = 0
		return d
	}

	startSet := nfa.EpsilonClosure([]int{nfa.StartState()})
	subsetOf := map[int][]int{}
	idOf := map[string]int{}

	d.start = d.NewState()
	subsetOf[d.start] = startSet
	idOf[subsetKey(startSet)] = d.start
	tok, pr := nfa.ComputingAccept(startSet)
	d.states[d.start].Token, d.states[d.start].Priority = tok, pr

	queue := []int{d.start}
	for len(queue) > 0 {
		from := queue[0]
		queue = queue[1:]
		subset := subsetOf[from]
		for _, sym := range nfa.CollectSymbols(subset) {
			moved := nfa.Move(subset, sym)
			if len(moved) == 0 {
				continue
			}
			closure := nfa.EpsilonClosure(moved)
			key := subsetKey(closure)
			to, ok := idOf[key]
			if !ok {
				to = d.NewState()
				subsetOf[to] = closure
				idOf[key] = to
				tok, pr := nfa.ComputingAccept(closure)
				d.states[to].Token, d.states[to].Priority = tok, pr
				queue = append(queue, to)
			}
			d.AddEdge(from, to, sym)
		}
	}
	tracer().Debugf("subset construction: %d NFA states -> %d DFA states", nfa.NumStates(), d.NumStates())
	return d
}

// --- Hopcroft minimization ----------------------------------------------

type dfaGroup struct {
	states   []int
	accept   bool
	token    int
	priority int
	valid    bool
}

type dfaPartition struct {
	groups      []dfaGroup
	stateToGrp  []int
}

func newPartition(n int) *dfaPartition {
	sg := make([]int, n)
	for i := range sg {
		sg[i] = -1
	}
	return &dfaPartition{stateToGrp: sg}
}

func (p *dfaPartition) addGroup(states []int, accept bool, token, priority int) int {
	gid := len(p.groups)
	for _, s := range states {
		p.stateToGrp[s] = gid
	}
	p.groups = append(p.groups, dfaGroup{states: states, accept: accept, token: token, priority: priority, valid: true})
	return gid
}

// split divides group gid by membership in "in": the states also present in
// "in" stay in gid's old spot and the rest move to a new group,
// returning the new group's id, or -1 if the split is a no-op (gid is
// invalid, or "in" does not properly divide it).
func (p *dfaPartition) split(gid int, in []int) int {
	old := &p.groups[gid]
	if !old.valid {
		return -1
	}
	inSet := make(map[int]bool, len(in))
	for _, s := range in {
		inSet[s] = true
	}
	var inter, diff []int
	for _, s := range old.states {
		if inSet[s] {
			inter = append(inter, s)
		} else {
			diff = append(diff, s)
		}
	}
	if len(inter) == 0 || len(diff) == 0 {
		return -1
	}
	old.states = inter
	for _, s := range inter {
		p.stateToGrp[s] = gid
	}
	newGid := p.addGroup(diff, old.accept, old.token, old.priority)
	return newGid
}

func (p *dfaPartition) find(state int) int { return p.stateToGrp[state] }

type revEdge struct {
	sym  Sym
	from int
}

func (d *DFA) reachableFrom(start int) []bool {
	reachable := make([]bool, d.NumStates())
	var stack []int
	reachable[start] = true
	stack = append(stack, start)
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range d.states[u].Edges {
			if !reachable[e.To] {
				reachable[e.To] = true
				stack = append(stack, e.To)
			}
		}
	}
	return reachable
}

func (d *DFA) buildReverseEdges(reachable []bool) [][]revEdge {
	rev := make([][]revEdge, d.NumStates())
	for from, st := range d.states {
		if !reachable[from] {
			continue
		}
		for _, e := range st.Edges {
			if !reachable[e.To] {
				continue
			}
			rev[e.To] = append(rev[e.To], revEdge{sym: e.Sym, from: from})
		}
	}
	return rev
}

func (d *DFA) collectAlphabet() []Sym {
	seen := map[Sym]bool{}
	var alphabet []Sym
	for _, st := range d.states {
		for _, e := range st.Edges {
			if !seen[e.Sym] {
				seen[e.Sym] = true
				alphabet = append(alphabet, e.Sym)
			}
		}
	}
	return alphabet
}

func findPredecessors(group dfaGroup, sym Sym, rev [][]revEdge) []int {
	seen := map[int]bool{}
	var preds []int
	for _, q := range group.states {
		if q < 0 || q >= len(rev) {
			continue
		}
		for _, e := range rev[q] {
			if e.sym == sym && !seen[e.from] {
				seen[e.from] = true
				preds = append(preds, e.from)
			}
		}
	}
	return preds
}

// Minimize returns a new, minimized DFA equivalent to d, via Hopcroft's
// algorithm: states are first partitioned by (accepting?, token, priority),
// then repeatedly split using a worklist over a reverse-edge index built
// once up front (never recomputed per iteration, so the algorithm stays
// near-linear). Unreachable states are dropped as a side effect.
func (d *DFA) Minimize() *DFA {
	reachable := d.reachableFrom(d.start)
	rev := d.buildReverseEdges(reachable)
	alphabet := d.collectAlphabet()

	p := newPartition(d.NumStates())

	var unaccepted []int
	for i, st := range d.states {
		if reachable[i] && st.Token < 0 {
			unaccepted = append(unaccepted, i)
		}
	}
	var worklist []int
	if len(unaccepted) > 0 {
		worklist = append(worklist, p.addGroup(unaccepted, false, -1, -1))
	}

	type acceptKey struct{ token, priority int }
	acceptGid := map[acceptKey]int{}
	for i, st := range d.states {
		if !reachable[i] || st.Token < 0 {
			continue
		}
		k := acceptKey{st.Token, st.Priority}
		if gid, ok := acceptGid[k]; ok {
			p.groups[gid].states = append(p.groups[gid].states, i)
			p.stateToGrp[i] = gid
		} else {
			gid := p.addGroup([]int{i}, true, st.Token, st.Priority)
			acceptGid[k] = gid
			worklist = append(worklist, gid)
		}
	}

	for i := 0; i < len(worklist); i++ {
		splitter := worklist[i]
		A := p.groups[splitter]
		for _, sym := range alphabet {
			X := findPredecessors(A, sym, rev)
			if len(X) == 0 {
				continue
			}
			for k := 0; k < len(p.groups); k++ {
				if !p.groups[k].valid {
					continue
				}
				if newGid := p.split(k, X); newGid >= 0 {
					worklist = append(worklist, newGid)
				}
			}
		}
	}

	min := &DFA{}
	for _, g := range p.groups {
		if !g.valid {
			continue
		}
		ns := min.NewState()
		min.states[ns].Token = g.token
		min.states[ns].Priority = g.priority
	}
	min.start = p.find(d.start)

	for i, st := range d.states {
		if !reachable[i] {
			continue
		}
		fromGid := p.find(i)
		for _, e := range st.Edges {
			if !reachable[e.To] {
				continue
			}
			min.AddEdge(fromGid, p.find(e.To), e.Sym)
		}
	}
	tracer().Debugf("DFA minimized: %d states -> %d states", d.NumStates(), min.NumStates())
	return min
}
