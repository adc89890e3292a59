package automata

import "sort"

// NFAEdge is a single labeled transition out of an NFA state.
type NFAEdge struct {
	Sym Sym
	To  int
}

// NFAState is one state of an NFA: a set of out-edges, plus accepting
// information. A non-accepting state has Token < 0.
type NFAState struct {
	Edges    []NFAEdge
	Token    int
	Priority int
}

// NFA is a non-deterministic finite automaton over byte symbols (plus Eps
// and Any), built by Thompson construction from one or more regex
// fragments and unioned into a single automaton per lexer instance.
type NFA struct {
	states []NFAState
	start  int
}

// NewNFA returns an empty NFA with no states and no start state set.
func NewNFA() *NFA {
	return &NFA{}
}

// NewState appends a fresh, non-accepting state and returns its id.
func (n *NFA) NewState() int {
	n.states = append(n.states, NFAState{Token: -1, Priority: maxInt})
	return len(n.states) - 1
}

// AddEdge adds a transition from -> to labeled sym.
func (n *NFA) AddEdge(from, to int, sym Sym) {
	n.states[from].Edges = append(n.states[from].Edges, NFAEdge{Sym: sym, To: to})
}

// SetAccept marks state as accepting for token at priority, but only if
// priority improves (is numerically lower than) any priority already
// recorded -- ties are resolved by keeping the first (lowest-priority-value)
// assignment, mirroring rule-index-as-priority semantics.
func (n *NFA) SetAccept(state, token, priority int) {
	st := &n.states[state]
	if st.Priority > priority {
		st.Token = token
		st.Priority = priority
	}
}

// StartState returns the designated start state id.
func (n *NFA) StartState() int { return n.start }

// SetStart designates state as the NFA's start state.
func (n *NFA) SetStart(state int) { n.start = state }

// NumStates returns the number of states.
func (n *NFA) NumStates() int { return len(n.states) }

// States exposes the underlying state slice for read-only inspection.
func (n *NFA) States() []NFAState { return n.states }

const maxInt = int(^uint(0) >> 1)

// UnionMany merges a list of independently constructed rule NFAs into a
// single NFA reachable from one fresh start state via epsilon edges, one
// per input NFA, in order. An empty input list yields a single dead state
// accepting nothing.
func UnionMany(subs []*NFA) *NFA {
	out := NewNFA()
	if len(subs) == 0 {
		out.SetStart(out.NewState())
		return out
	}
	out.SetStart(out.NewState())
	for _, sub := range subs {
		if sub.NumStates() == 0 || sub.StartState() < 0 {
			continue
		}
		base := out.NumStates()
		for _, st := range sub.states {
			remapped := make([]NFAEdge, len(st.Edges))
			for i, e := range st.Edges {
				remapped[i] = NFAEdge{Sym: e.Sym, To: e.To + base}
			}
			out.states = append(out.states, NFAState{
				Edges:    remapped,
				Token:    st.Token,
				Priority: st.Priority,
			})
		}
		out.AddEdge(out.StartState(), base+sub.StartState(), Eps)
	}
	return out
}

// EpsilonClosure returns the sorted, deduplicated set of states reachable
// from any state in set via zero or more epsilon edges (set itself is
// included).
func (n *NFA) EpsilonClosure(set []int) []int {
	seen := make(map[int]bool, len(set))
	res := make([]int, 0, len(set))
	stack := make([]int, 0, len(set))
	for _, s := range set {
		if !seen[s] {
			seen[s] = true
			res = append(res, s)
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range n.states[s].Edges {
			if e.Sym == Eps && !seen[e.To] {
				seen[e.To] = true
				res = append(res, e.To)
				stack = append(stack, e.To)
			}
		}
	}
	sort.Ints(res)
	return res
}

// Move returns the sorted, deduplicated set of states reachable from any
// state in states via a single edge labeled target.
func (n *NFA) Move(states []int, target Sym) []int {
	seen := map[int]bool{}
	var res []int
	for _, s := range states {
		for _, e := range n.states[s].Edges {
			if e.Sym == target && !seen[e.To] {
				seen[e.To] = true
				res = append(res, e.To)
			}
		}
	}
	sort.Ints(res)
	return res
}

// CollectSymbols returns the distinct non-epsilon symbols labeling an
// out-edge of any state in set.
func (n *NFA) CollectSymbols(set []int) []Sym {
	seen := map[Sym]bool{}
	var res []Sym
	for _, s := range set {
		for _, e := range n.states[s].Edges {
			if e.Sym != Eps && !seen[e.Sym] {
				seen[e.Sym] = true
				res = append(res, e.Sym)
			}
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// ComputingAccept returns the (token, priority) pair for the best (lowest
// priority value) accepting state among set, or (-1, maxInt) if none of
// set accepts.
func (n *NFA) ComputingAccept(set []int) (token, priority int) {
	token, priority = -1, maxInt
	for _, s := range set {
		st := n.states[s]
		if st.Token >= 0 && st.Priority < priority {
			token, priority = st.Token, st.Priority
		}
	}
	return
}
