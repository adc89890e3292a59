package automata

// Sym is an edge label in an NFA or DFA. Ordinary symbols are byte values in
// [0,255]; Eps and Any are two reserved out-of-band values.
type Sym int32

const (
	// Eps labels an epsilon-edge: it is traversable without consuming input.
	Eps Sym = -1
	// Any labels an edge matching any single input byte, including '\n'.
	// At match time a concrete byte matches Any only when no literal edge
	// for that byte fires from the same state -- see DFA.Transition.
	Any Sym = -2
)
