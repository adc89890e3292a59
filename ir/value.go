package ir

import "strconv"

// Value is implemented by everything that produces or names a typed SSA
// value: constants, global variables, function parameters, and every
// instruction.
type Value interface {
	Name() string
	Type() Type
}

// ConstantInt is a compile-time-known i1 or i32 value.
type ConstantInt struct {
	val int64
	typ Type
}

func NewConstantInt(v int64, typ Type) *ConstantInt { return &ConstantInt{val: v, typ: typ} }
func NewConstantBool(v bool) *ConstantInt {
	if v {
		return &ConstantInt{val: 1, typ: BoolType()}
	}
	return &ConstantInt{val: 0, typ: BoolType()}
}

func (c *ConstantInt) IntValue() int64 { return c.val }
func (c *ConstantInt) Type() Type      { return c.typ }
func (c *ConstantInt) Name() string    { return strconv.FormatInt(c.val, 10) }

// ConstantFloat is a compile-time-known float value. It is never an operand
// of any instruction -- only a global's zero-initializer can carry one --
// since float lowering raises before any arithmetic touches it.
type ConstantFloat struct {
	val float64
}

func NewConstantFloat(v float64) *ConstantFloat { return &ConstantFloat{val: v} }
func (c *ConstantFloat) FloatValue() float64    { return c.val }
func (c *ConstantFloat) Type() Type             { return FloatType() }
func (c *ConstantFloat) Name() string           { return strconv.FormatFloat(c.val, 'g', -1, 64) }

// GlobalVariable is a module-level named storage slot with a fixed
// initializer. Its Type is the type of the value it stores, not a pointer
// type -- load/store treat it exactly like an Alloca's address.
type GlobalVariable struct {
	GlobalName string
	ValueType  Type
	IsConstant bool
	Init       Value
}

func (g *GlobalVariable) Name() string { return "@" + g.GlobalName }
func (g *GlobalVariable) Type() Type   { return g.ValueType }

// Argument is one incoming formal parameter of a function.
type Argument struct {
	ArgName string
	ArgType Type
	Index   int
}

func (a *Argument) Name() string { return "%" + a.ArgName }
func (a *Argument) Type() Type   { return a.ArgType }
