package slr

import (
	"strings"

	"github.com/kestrel-lang/cfront/grammar"
)

// Item is an LR(0) item: a production with a dot position marking how much
// of its body has been recognized. Kept as a value type (a Production copy,
// not a pointer) since grammar.Production is itself a small, copy-cheap
// value.
type Item struct {
	Prod grammar.Production
	Dot  int
}

// DotSymbol returns the symbol immediately after the dot, or Eps() if the
// dot has reached (or passed) the end of the body.
func (it Item) DotSymbol() grammar.Symbol {
	if it.Dot >= len(it.Prod.Body) {
		return grammar.Eps()
	}
	return it.Prod.Body[it.Dot]
}

// Advance returns the item with the dot moved one symbol to the right.
func (it Item) Advance() Item { return Item{Prod: it.Prod, Dot: it.Dot + 1} }

// IsComplete reports whether the dot has reached the end of the body --
// true, in particular, for an epsilon production's single Eps() item
// wherever the closure step pre-advances it past that symbol.
func (it Item) IsComplete() bool { return it.Dot >= len(it.Prod.Body) }

func (it Item) String() string {
	var b strings.Builder
	b.WriteString(it.Prod.Head.Name)
	b.WriteString(" -> ")
	for i, sym := range it.Prod.Body {
		if i == it.Dot {
			b.WriteString(". ")
		}
		b.WriteString(sym.Name)
		b.WriteString(" ")
	}
	if it.Dot >= len(it.Prod.Body) {
		b.WriteString(".")
	}
	return b.String()
}

// itemLess orders items by (production id, dot position), giving every
// item set a single canonical sorted form before it is hashed into a key.
func itemLess(a, b Item) bool {
	if a.Prod.ID != b.Prod.ID {
		return a.Prod.ID < b.Prod.ID
	}
	return a.Dot < b.Dot
}

// itemComparator adapts itemLess to the three-way comparator gods'
// treeset.Set requires.
func itemComparator(x, y interface{}) int {
	a, b := x.(Item), y.(Item)
	switch {
	case a.Prod.ID != b.Prod.ID:
		return a.Prod.ID - b.Prod.ID
	case a.Dot != b.Dot:
		return a.Dot - b.Dot
	default:
		return 0
	}
}
