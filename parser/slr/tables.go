package slr

import (
	"fmt"

	"github.com/kestrel-lang/cfront/grammar"
)

// ActionKind discriminates the three things ACTION[state,terminal] can hold.
type ActionKind int

const (
	Shift ActionKind = iota
	Reduce
	AcceptAction
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	default:
		return "accept"
	}
}

// Action is one ACTION table cell: a shift target state, a reduce's
// production id, or the (target-less) accept.
type Action struct {
	Kind   ActionKind
	Target int
}

type actionKey struct {
	State    int
	Terminal grammar.Symbol
}

type gotoKey struct {
	State       int
	NonTerminal grammar.Symbol
}

// Tables holds the computed ACTION and GOTO tables plus every reduce/reduce
// conflict encountered while building them (shift/reduce conflicts resolve
// silently in favor of shift and are never recorded here).
type Tables struct {
	action    map[actionKey]Action
	gotoT     map[gotoKey]int
	Conflicts []string
}

func (t *Tables) setShift(state int, a grammar.Symbol, to int) {
	t.action[actionKey{state, a}] = Action{Kind: Shift, Target: to}
}

func (t *Tables) setAccept(state int) {
	t.action[actionKey{state, grammar.EndSym()}] = Action{Kind: AcceptAction}
}

// setReduce resolves a conflicting write to an ACTION cell: a shift already
// occupying the cell wins silently (the dangling-else policy -- must not
// warn); an accept already there is kept the same way; a reduce already
// there (a genuine reduce/reduce conflict) is kept as the first-registered
// one, and the attempted overwrite is recorded as a warning. See DESIGN.md
// for why this deliberately differs from an unconditional last-write-wins
// policy.
func (t *Tables) setReduce(state int, a grammar.Symbol, prodID int) {
	key := actionKey{state, a}
	existing, ok := t.action[key]
	if !ok {
		t.action[key] = Action{Kind: Reduce, Target: prodID}
		return
	}
	switch existing.Kind {
	case Shift, AcceptAction:
		return
	case Reduce:
		t.Conflicts = append(t.Conflicts,
			fmt.Sprintf("reduce/reduce conflict in state %d on %s: keeping production %d over %d",
				state, a, existing.Target, prodID))
	}
}

// Action looks up ACTION[state, terminal].
func (t *Tables) Action(state int, terminal grammar.Symbol) (Action, bool) {
	a, ok := t.action[actionKey{state, terminal}]
	return a, ok
}

// Goto looks up GOTO[state, nonTerminal].
func (t *Tables) Goto(state int, nonTerminal grammar.Symbol) (int, bool) {
	s, ok := t.gotoT[gotoKey{state, nonTerminal}]
	return s, ok
}

// BuildTables computes the ACTION and GOTO tables for cfsm over g:
// GOTO entries come straight from the CFSM's non-terminal-labeled edges;
// shift entries from its terminal-labeled edges; reduce/accept entries from
// every complete item in every state, with accept reserved for the
// completed augmented-start production (id 0, per BuildCFSM's convention).
// Shifts are written before reduces so the conflict policy above can tell a
// shift/reduce conflict from a reduce/reduce one.
func BuildTables(g *grammar.Grammar, cfsm *CFSM) *Tables {
	t := &Tables{action: make(map[actionKey]Action), gotoT: make(map[gotoKey]int)}

	for _, e := range cfsm.Edges() {
		if e.Label.IsNonTerminal() {
			t.gotoT[gotoKey{e.From, e.Label}] = e.To
		}
	}
	for _, e := range cfsm.Edges() {
		if e.Label.IsTerminal() {
			t.setShift(e.From, e.Label, e.To)
		}
	}

	startProdID := g.LiveProductions()[0].ID
	for _, s := range cfsm.States() {
		for _, v := range s.Items.Values() {
			it := v.(Item)
			if !it.IsComplete() {
				continue
			}
			if it.Prod.ID == startProdID {
				t.setAccept(s.ID)
				continue
			}
			for _, a := range g.Follow(it.Prod.Head).Slice() {
				t.setReduce(s.ID, a, it.Prod.ID)
			}
		}
	}

	for _, c := range t.Conflicts {
		tracer().Errorf("%s", c)
	}
	tracer().Debugf("SLR(1) tables built: %d action cells, %d goto cells, %d conflicts",
		len(t.action), len(t.gotoT), len(t.Conflicts))
	return t
}
