package ir

import "testing"

func TestBuildAddAndPrint(t *testing.T) {
	m := NewModule("test")
	fn := m.CreateFunction("main", IntType(), nil, nil)
	entry := fn.CreateBlock("entry")
	b := NewBuilder(entry)

	a := b.CreateAlloca(IntType())
	b.CreateStore(NewConstantInt(1, IntType()), a)
	loaded := b.CreateLoad(a)
	sum := b.CreateAdd(loaded, NewConstantInt(2, IntType()))
	b.CreateRet(sum)

	if !entry.HasTerminator() {
		t.Fatalf("expected entry block to have a terminator")
	}
	out := m.String()
	if out == "" {
		t.Fatalf("expected non-empty IR text")
	}
}

func TestPhiCollectsIncomingPairs(t *testing.T) {
	m := NewModule("test")
	fn := m.CreateFunction("f", BoolType(), nil, nil)
	merge := fn.CreateBlock("merge")
	rhs := fn.CreateBlock("rhs")
	b := NewBuilder(merge)
	phi := b.CreatePhi(BoolType())
	phi.AddIncoming(NewConstantBool(false), merge)
	phi.AddIncoming(NewConstantBool(true), rhs)
	if len(phi.Incoming) != 2 {
		t.Fatalf("expected 2 incoming pairs, got %d", len(phi.Incoming))
	}
	if merge.Instrs[0] != Instruction(phi) {
		t.Fatalf("expected phi to be the first instruction in its block")
	}
}

func TestBlockWithoutTerminatorReportsNone(t *testing.T) {
	m := NewModule("test")
	fn := m.CreateFunction("f", VoidType(), nil, nil)
	entry := fn.CreateBlock("entry")
	b := NewBuilder(entry)
	b.CreateAlloca(IntType())
	if entry.HasTerminator() {
		t.Fatalf("expected no terminator before a Ret/Br is emitted")
	}
}
