package lower

import (
	"testing"

	"github.com/kestrel-lang/cfront"
	"github.com/kestrel-lang/cfront/ast"
	"github.com/kestrel-lang/cfront/grammar"
	"github.com/kestrel-lang/cfront/ir"
	"github.com/kestrel-lang/cfront/lexer"
	"github.com/kestrel-lang/cfront/parser/slr"
)

func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	lx, err := lexer.New()
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	tokens := lx.Tokenize(source)

	g := grammar.NewCGrammar()
	g.ComputeFirstSets()
	g.ComputeFollowSets()
	p := slr.NewParser(g)

	_, ok, root, perr := p.Parse(tokens)
	if !ok {
		t.Fatalf("parse failed for %q: %v", source, perr)
	}
	prog := root.AsProgram()
	if prog == nil {
		t.Fatalf("expected a Program root for %q", source)
	}
	return prog
}

func TestLowerArithmeticFunction(t *testing.T) {
	prog := parseProgram(t, "int main() { int a = 1 + 2 * 3; return a; }")
	module, err := Lower(prog)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if len(module.Functions) != 1 {
		t.Fatalf("expected one function, got %d", len(module.Functions))
	}
	fn := module.Functions[0]
	if len(fn.Blocks) == 0 {
		t.Fatalf("expected at least one basic block")
	}
	for _, bb := range fn.Blocks {
		if !bb.HasTerminator() {
			t.Fatalf("block %s missing a terminator", bb.BlockName)
		}
	}
}

func TestLowerConstAssignmentRejected(t *testing.T) {
	prog := parseProgram(t, "const int K = 5; int main(){ K = 6; return 0; }")
	_, err := Lower(prog)
	if err == nil {
		t.Fatalf("expected a LoweringError for assignment to a const binding")
	}
	if err.Kind != cfront.LoweringError {
		t.Fatalf("expected LoweringError, got %v", err.Kind)
	}
}

func TestLowerGlobalConstantFold(t *testing.T) {
	prog := parseProgram(t, "const int K = 1 + 2 * 3; int main(){ return K; }")
	module, err := Lower(prog)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if len(module.Globals) != 1 {
		t.Fatalf("expected one global, got %d", len(module.Globals))
	}
	g := module.Globals[0]
	ci, ok := g.Init.(*ir.ConstantInt)
	if !ok {
		t.Fatalf("expected the folded initializer to be a ConstantInt, got %T", g.Init)
	}
	if ci.IntValue() != 7 {
		t.Fatalf("expected folded value 7, got %d", ci.IntValue())
	}
}

func TestLowerShortCircuitEmitsPhi(t *testing.T) {
	prog := parseProgram(t, "int main() { int a = 1; int b = 0; if (a && b) return 1; return 0; }")
	module, err := Lower(prog)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	found := false
	for _, bb := range module.Functions[0].Blocks {
		for _, instr := range bb.Instrs {
			if _, ok := instr.(*ir.PhiInst); ok {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a phi instruction from the short-circuit &&")
	}
}

func TestLowerFloatLiteralRejected(t *testing.T) {
	prog := parseProgram(t, "int main(){ float x = 1.0; return 0; }")
	_, err := Lower(prog)
	if err == nil {
		t.Fatalf("expected a LoweringError for a float literal reaching codegen")
	}
	if err.Msg != ErrFloatUnsupported {
		t.Fatalf("expected message %q, got %q", ErrFloatUnsupported, err.Msg)
	}
}

func TestLowerUninitializedFloatDeclSucceeds(t *testing.T) {
	prog := parseProgram(t, "int main(){ float x; return 0; }")
	if _, err := Lower(prog); err != nil {
		t.Fatalf("expected an uninitialized float declaration to lower without error, got %v", err)
	}
}

func TestLowerMissingReturnGetsImplicitZero(t *testing.T) {
	prog := parseProgram(t, "int main() { int a = 1; }")
	module, err := Lower(prog)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	fn := module.Functions[0]
	last := fn.Blocks[len(fn.Blocks)-1]
	ret, ok := last.Terminator().(*ir.RetInst)
	if !ok {
		t.Fatalf("expected the implicit terminator to be a Ret, got %T", last.Terminator())
	}
	if ret.Val == nil {
		t.Fatalf("expected an implicit zero return value for a non-void function")
	}
}
