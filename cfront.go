package cfront

import "fmt"

// TokType is a category type for a token's coarse kind. We do not define any
// constants here; lexer defines the closed enumeration used throughout the
// pipeline.
type TokType int

// Token is a general purpose interface for terminals flowing between lexer,
// grammar and parsers. Concrete tokens (package lexer) carry a type, a
// category, a location and a lexeme.
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
}

// --- Locations ---------------------------------------------------------

// Location is a 1-based line/column position in a source buffer.
type Location struct {
	Line, Col int
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Line, l.Col)
}

// IsZero reports whether l is the zero Location, used for synthetic nodes
// that have no source position (e.g. the implicit return inserted by the
// lowering pass).
func (l Location) IsZero() bool {
	return l.Line == 0 && l.Col == 0
}

// --- Spans ------------------------------------------------------------

// Span captures a run of byte offsets in the input: a start position and
// the position just behind the end.
type Span [2]uint64 // (x…y)

func (s Span) From() uint64 { return s[0] }
func (s Span) To() uint64   { return s[1] }
func (s Span) Len() uint64  { return s[1] - s[0] }

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend grows s so that it also covers other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
