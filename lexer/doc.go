/*
Package lexer turns a source buffer into a stream of Tokens. It composes a
fixed, ordered rule table (package automata regex fragments) into one
master NFA, converts that to a DFA, and minimizes it once at construction.
Scanning then runs DFA maximal-munch over the source; a single
post-processing pass retypes certain keyword tokens to disambiguate
function-declaration syntax from variable-declaration syntax.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lexer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfront.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("cfront.lexer")
}
