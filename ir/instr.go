package ir

// Instruction is any value produced (or side effect performed) inside a
// basic block. Store, conditional branch, branch and return carry no
// result a caller would ever reference, but still implement Value with a
// VoidType so every element of a BasicBlock's instruction list has a
// uniform type.
type Instruction interface {
	Value
	isInstruction()
}

// terminator is implemented by the three instructions that may legally end
// a basic block: conditional branch, branch, and return.
type terminator interface {
	isTerminator()
}

// IsTerminator reports whether instr ends its basic block.
func IsTerminator(instr Instruction) bool {
	_, ok := instr.(terminator)
	return ok
}

type valueID struct{ id string }

func (v valueID) Name() string { return "%" + v.id }

// BasicOp is the closed set of integer arithmetic opcodes.
type BasicOp int

const (
	OpAdd BasicOp = iota
	OpSub
	OpMul
	OpSDiv
	OpSRem
)

func (op BasicOp) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpSDiv:
		return "sdiv"
	case OpSRem:
		return "srem"
	default:
		return "?"
	}
}

// ICmpPred is the closed set of integer comparison predicates.
type ICmpPred int

const (
	PredLT ICmpPred = iota
	PredGT
	PredLE
	PredGE
	PredEQ
	PredNE
)

func (p ICmpPred) String() string {
	switch p {
	case PredLT:
		return "slt"
	case PredGT:
		return "sgt"
	case PredLE:
		return "sle"
	case PredGE:
		return "sge"
	case PredEQ:
		return "eq"
	case PredNE:
		return "ne"
	default:
		return "?"
	}
}

// AllocaInst reserves a named, typed address slot; it is emitted into
// whichever block the builder is positioned at. Its Type is the element type it holds, not a
// pointer type.
type AllocaInst struct {
	valueID
	ElemType Type
}

func (*AllocaInst) isInstruction() {}
func (a *AllocaInst) Type() Type   { return a.ElemType }

// LoadInst reads the current value stored at Addr (an *AllocaInst or
// *GlobalVariable).
type LoadInst struct {
	valueID
	Addr Value
}

func (*LoadInst) isInstruction() {}
func (l *LoadInst) Type() Type   { return l.Addr.Type() }

// StoreInst writes Val into Addr. It produces no usable value.
type StoreInst struct {
	Val, Addr Value
}

func (*StoreInst) isInstruction() {}
func (*StoreInst) Name() string   { return "" }
func (*StoreInst) Type() Type     { return VoidType() }

// BinaryInst applies an integer arithmetic opcode to two i32 operands,
// producing an i32 result.
type BinaryInst struct {
	valueID
	Op       BasicOp
	LHS, RHS Value
}

func (*BinaryInst) isInstruction() {}
func (*BinaryInst) Type() Type     { return IntType() }

// ICmpInst compares two i32 operands, producing an i1 result.
type ICmpInst struct {
	valueID
	Pred     ICmpPred
	LHS, RHS Value
}

func (*ICmpInst) isInstruction() {}
func (*ICmpInst) Type() Type     { return BoolType() }

// ZExtInst zero-extends an i1 operand to i32.
type ZExtInst struct {
	valueID
	Val Value
}

func (*ZExtInst) isInstruction() {}
func (*ZExtInst) Type() Type     { return IntType() }

// PhiPair is one (value, predecessor-block) incoming edge of a PhiInst.
type PhiPair struct {
	Val   Value
	Block *BasicBlock
}

// PhiInst selects among its incoming values based on which predecessor
// block control arrived from. It is always inserted at the very start of
// its block, ahead of any other instruction.
type PhiInst struct {
	valueID
	ValueType Type
	Incoming  []PhiPair
}

func (*PhiInst) isInstruction() {}
func (p *PhiInst) Type() Type   { return p.ValueType }

func (p *PhiInst) AddIncoming(val Value, block *BasicBlock) {
	p.Incoming = append(p.Incoming, PhiPair{Val: val, Block: block})
}

// CallInst invokes Callee with Args, producing a result of Callee's return
// type (VoidType if Callee is void).
type CallInst struct {
	valueID
	Callee *Function
	Args   []Value
}

func (*CallInst) isInstruction() {}
func (c *CallInst) Type() Type   { return c.Callee.RetType }

// CondBrInst branches to True when Cond is nonzero, else to False. It
// terminates its basic block.
type CondBrInst struct {
	Cond        Value
	True, False *BasicBlock
}

func (*CondBrInst) isInstruction() {}
func (*CondBrInst) isTerminator()  {}
func (*CondBrInst) Name() string   { return "" }
func (*CondBrInst) Type() Type     { return VoidType() }

// BrInst unconditionally branches to Target. It terminates its basic block.
type BrInst struct {
	Target *BasicBlock
}

func (*BrInst) isInstruction() {}
func (*BrInst) isTerminator()  {}
func (*BrInst) Name() string   { return "" }
func (*BrInst) Type() Type     { return VoidType() }

// RetInst returns from the enclosing function, with Val (nil for a void
// return). It terminates its basic block.
type RetInst struct {
	Val Value
}

func (*RetInst) isInstruction() {}
func (*RetInst) isTerminator()  {}
func (*RetInst) Name() string   { return "" }
func (*RetInst) Type() Type     { return VoidType() }
