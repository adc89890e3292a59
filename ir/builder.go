package ir

// Builder emits instructions at a single, movable insertion point -- one
// basic block at a time -- a cursor-style builder object threaded through
// code generation rather than passing a block explicitly to every call.
type Builder struct {
	block *BasicBlock
}

// NewBuilder creates a builder whose initial insertion point is bb.
func NewBuilder(bb *BasicBlock) *Builder { return &Builder{block: bb} }

// SetInsertPoint moves the builder's insertion point to bb.
func (b *Builder) SetInsertPoint(bb *BasicBlock) { b.block = bb }

// InsertBlock returns the block instructions are currently appended to.
func (b *Builder) InsertBlock() *BasicBlock { return b.block }

func (b *Builder) emit(instr Instruction) Instruction {
	b.block.Append(instr)
	return instr
}

func (b *Builder) CreateAlloca(elemType Type) *AllocaInst {
	instr := &AllocaInst{valueID: valueID{b.block.fn.nextValueName()}, ElemType: elemType}
	b.emit(instr)
	return instr
}

func (b *Builder) CreateLoad(addr Value) *LoadInst {
	instr := &LoadInst{valueID: valueID{b.block.fn.nextValueName()}, Addr: addr}
	b.emit(instr)
	return instr
}

func (b *Builder) CreateStore(val, addr Value) *StoreInst {
	instr := &StoreInst{Val: val, Addr: addr}
	b.emit(instr)
	return instr
}

func (b *Builder) createBinary(op BasicOp, lhs, rhs Value) *BinaryInst {
	instr := &BinaryInst{valueID: valueID{b.block.fn.nextValueName()}, Op: op, LHS: lhs, RHS: rhs}
	b.emit(instr)
	return instr
}

func (b *Builder) CreateAdd(lhs, rhs Value) *BinaryInst  { return b.createBinary(OpAdd, lhs, rhs) }
func (b *Builder) CreateSub(lhs, rhs Value) *BinaryInst  { return b.createBinary(OpSub, lhs, rhs) }
func (b *Builder) CreateMul(lhs, rhs Value) *BinaryInst  { return b.createBinary(OpMul, lhs, rhs) }
func (b *Builder) CreateSDiv(lhs, rhs Value) *BinaryInst { return b.createBinary(OpSDiv, lhs, rhs) }
func (b *Builder) CreateSRem(lhs, rhs Value) *BinaryInst { return b.createBinary(OpSRem, lhs, rhs) }

func (b *Builder) createICmp(pred ICmpPred, lhs, rhs Value) *ICmpInst {
	instr := &ICmpInst{valueID: valueID{b.block.fn.nextValueName()}, Pred: pred, LHS: lhs, RHS: rhs}
	b.emit(instr)
	return instr
}

func (b *Builder) CreateICmpLT(lhs, rhs Value) *ICmpInst { return b.createICmp(PredLT, lhs, rhs) }
func (b *Builder) CreateICmpGT(lhs, rhs Value) *ICmpInst { return b.createICmp(PredGT, lhs, rhs) }
func (b *Builder) CreateICmpLE(lhs, rhs Value) *ICmpInst { return b.createICmp(PredLE, lhs, rhs) }
func (b *Builder) CreateICmpGE(lhs, rhs Value) *ICmpInst { return b.createICmp(PredGE, lhs, rhs) }
func (b *Builder) CreateICmpEQ(lhs, rhs Value) *ICmpInst { return b.createICmp(PredEQ, lhs, rhs) }
func (b *Builder) CreateICmpNE(lhs, rhs Value) *ICmpInst { return b.createICmp(PredNE, lhs, rhs) }

func (b *Builder) CreateZExt(val Value) *ZExtInst {
	instr := &ZExtInst{valueID: valueID{b.block.fn.nextValueName()}, Val: val}
	b.emit(instr)
	return instr
}

func (b *Builder) CreateCall(callee *Function, args []Value) *CallInst {
	instr := &CallInst{valueID: valueID{b.block.fn.nextValueName()}, Callee: callee, Args: args}
	b.emit(instr)
	return instr
}

func (b *Builder) CreateCondBr(cond Value, trueBlock, falseBlock *BasicBlock) *CondBrInst {
	instr := &CondBrInst{Cond: cond, True: trueBlock, False: falseBlock}
	b.emit(instr)
	return instr
}

func (b *Builder) CreateBr(target *BasicBlock) *BrInst {
	instr := &BrInst{Target: target}
	b.emit(instr)
	return instr
}

func (b *Builder) CreateRet(val Value) *RetInst {
	instr := &RetInst{Val: val}
	b.emit(instr)
	return instr
}

func (b *Builder) CreateVoidRet() *RetInst {
	instr := &RetInst{}
	b.emit(instr)
	return instr
}

// CreatePhi creates a phi node of the given type with no incoming edges yet
// and inserts it at the very start of the current block, ahead of any
// instruction already there.
func (b *Builder) CreatePhi(typ Type) *PhiInst {
	instr := &PhiInst{valueID: valueID{b.block.fn.nextValueName()}, ValueType: typ}
	b.block.Prepend(instr)
	return instr
}
