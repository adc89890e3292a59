/*
Package automata implements the automata kernel underlying the lexer: NFA
construction via Thompson's construction, subset construction from NFA to
DFA, and Hopcroft-style DFA minimization.

Every rule pattern compiles to its own small NFA fragment; the lexer unions
all rule NFAs into a single NFA, converts it to a DFA via subset
construction, and minimizes the DFA once at construction time. None of this
is rebuilt per scan.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package automata

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfront.automata'.
func tracer() tracing.Trace {
	return tracing.Select("cfront.automata")
}
