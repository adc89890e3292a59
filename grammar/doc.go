/*
Package grammar describes the C-subset context-free grammar: its symbols,
productions, derived FIRST/FOLLOW sets, and the two normalization passes
(left-recursion elimination and left-factoring) needed before the grammar
can drive an LL(1) table. The grammar is also consumed directly, without
normalization, by the SLR(1) table builder in package parser/slr.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfront.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("cfront.grammar")
}
