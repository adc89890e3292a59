package ir

// Kind is the closed set of value types the IR can carry. Float exists only
// so a float-typed global or local slot can be declared and printed; no
// instruction ever computes over a Float value (see package lower's
// ErrFloatUnsupported).
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindInt
	KindFloat
)

// Type is a value's IR type. There are no aggregate or pointer types:
// address slots (Alloca, GlobalVariable) carry the type of the value they
// hold, not a separate pointer-to-T type, since this IR has no use for
// pointer arithmetic or aliasing beyond simple load/store.
type Type struct {
	Kind Kind
}

func VoidType() Type  { return Type{Kind: KindVoid} }
func BoolType() Type  { return Type{Kind: KindBool} }
func IntType() Type   { return Type{Kind: KindInt} }
func FloatType() Type { return Type{Kind: KindFloat} }

func (t Type) String() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindBool:
		return "i1"
	case KindInt:
		return "i32"
	case KindFloat:
		return "float"
	default:
		return "?"
	}
}
