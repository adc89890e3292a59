package grammar

import (
	"strings"

	"github.com/kestrel-lang/cfront/ast"
)

// Production is a single grammar rule: Head -> Body. An empty Body is
// illegal; epsilon productions must spell Eps() explicitly in Body, mirroring
// the original requirement that epsilon never be represented by a bare empty
// slice at the call site.
type Production struct {
	ID    int
	Head  Symbol
	Body  []Symbol
	Build ast.Builder
}

// IsEpsilon reports whether this production's body is exactly {Eps()}.
func (p Production) IsEpsilon() bool {
	return len(p.Body) == 1 && p.Body[0].IsEpsilon()
}

func (p Production) String() string {
	var b strings.Builder
	b.WriteString(p.Head.Name)
	b.WriteString(" ->")
	if p.IsEpsilon() {
		b.WriteString(" {")
		b.WriteString(EPS)
		b.WriteString("}")
		return b.String()
	}
	for _, sym := range p.Body {
		b.WriteString(" ")
		b.WriteString(sym.Name)
	}
	return b.String()
}
