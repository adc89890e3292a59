/*
Package ast defines the abstract syntax tree for the C subset and the
semantic-value plumbing used to build it during parsing.

Every grammar production that carries semantic content is paired with a
builder function here: the production's right-hand side symbols arrive as a
slice of Values (one per RHS symbol), and the builder returns a single Value
that becomes the semantic value of the reduced left-hand symbol. The SLR(1)
driver in package parser/slr invokes them on each reduction; the LL(1)
driver in package parser/ll1 is a recognizer and builds no values.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ast

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfront.ast'.
func tracer() tracing.Trace {
	return tracing.Select("cfront.ast")
}
