package slr

import (
	"testing"

	"github.com/kestrel-lang/cfront/ast"
	"github.com/kestrel-lang/cfront/grammar"
	"github.com/kestrel-lang/cfront/lexer"
)

func lexTokens(t *testing.T, source string) []lexer.Token {
	t.Helper()
	lx, err := lexer.New()
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	return lx.Tokenize(source)
}

// cGrammar returns the natural, un-normalized C grammar -- SLR(1)
// construction works directly on the left-recursive productions and must
// not receive an LL(1)-normalized copy.
func cGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.NewCGrammar()
	g.ComputeFirstSets()
	g.ComputeFollowSets()
	return g
}

func TestParseAcceptsSimpleFunction(t *testing.T) {
	g := cGrammar(t)
	p := NewParser(g)

	tokens := lexTokens(t, "int main() { return 0; }")
	trace, ok, root, err := p.Parse(tokens)
	if !ok {
		t.Fatalf("expected accept, got error %v; trace:\n%v", err, trace)
	}
	if last := trace[len(trace)-1]; last.Action != AcceptStep {
		t.Fatalf("expected final step to be accept, got %s", last.Action)
	}
	if root.Kind != ast.KindProgram {
		t.Fatalf("expected a Program root, got kind %v", root.Kind)
	}
	prog := root.AsProgram()
	if prog == nil {
		t.Fatalf("expected a non-nil *ast.Program")
	}
	if len(prog.Functions) != 1 {
		t.Fatalf("expected exactly one function, got %d", len(prog.Functions))
	}
}

func TestParseAcceptsMultipleFunctionsAndGlobals(t *testing.T) {
	g := cGrammar(t)
	p := NewParser(g)

	tokens := lexTokens(t, "int g; int add(int a, int b) { return a + b; } int main() { return add(1, 2); }")
	_, ok, root, err := p.Parse(tokens)
	if !ok {
		t.Fatalf("expected accept, got error %v", err)
	}
	prog := root.AsProgram()
	if prog == nil {
		t.Fatalf("expected a non-nil *ast.Program")
	}
	if len(prog.Globals) != 1 {
		t.Fatalf("expected one global declaration, got %d", len(prog.Globals))
	}
	if len(prog.Functions) != 2 {
		t.Fatalf("expected two functions, got %d", len(prog.Functions))
	}
}

func TestParseRejectsInvalidToken(t *testing.T) {
	g := cGrammar(t)
	p := NewParser(g)

	tokens := lexTokens(t, "int main() { return @; }")
	_, ok, _, err := p.Parse(tokens)
	if ok {
		t.Fatalf("expected rejection of an Invalid token")
	}
	if err == nil {
		t.Fatalf("expected a located ParseError")
	}
}

func TestParseRejectsStructuralMismatch(t *testing.T) {
	g := cGrammar(t)
	p := NewParser(g)

	tokens := lexTokens(t, "int main() { return 0; ")
	_, ok, _, err := p.Parse(tokens)
	if ok {
		t.Fatalf("expected rejection of a structurally incomplete program")
	}
	if err == nil {
		t.Fatalf("expected a ParseError")
	}
}

// TestDanglingElseShiftsIntoInnerIf exercises the shift/reduce conflict
// policy: at the point where the parser has just seen "if (c1) if (c2) s1"
// and the lookahead is "else", the table must choose shift (extending the
// inner if) over reduce (closing the outer if), so the else attaches to the
// innermost dangling if, per the resolution wired into Tables.setReduce.
func TestDanglingElseShiftsIntoInnerIf(t *testing.T) {
	g := cGrammar(t)
	p := NewParser(g)

	tokens := lexTokens(t, "int main() { if (1) if (2) return 1; else return 2; }")
	_, ok, root, err := p.Parse(tokens)
	if !ok {
		t.Fatalf("expected accept, got error %v", err)
	}
	prog := root.AsProgram()
	if prog == nil || len(prog.Functions) != 1 {
		t.Fatalf("expected one function")
	}
	body := prog.Functions[0].Body
	if body == nil || len(body.Items) == 0 {
		t.Fatalf("expected a non-empty function body")
	}
	outer, ok := body.Items[0].Stmt.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected the outer statement to be an if, got %T", body.Items[0].Stmt)
	}
	inner, ok := outer.ThenBranch.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected the outer if's then-branch to be the inner if, got %T", outer.ThenBranch)
	}
	if inner.ElseBranch == nil {
		t.Fatalf("expected the else to attach to the inner if")
	}
	if outer.ElseBranch != nil {
		t.Fatalf("expected the outer if to have no else of its own")
	}
}

func TestConflictsEmptyForCGrammarDespiteDanglingElse(t *testing.T) {
	g := cGrammar(t)
	p := NewParser(g)
	for _, c := range p.Conflicts() {
		t.Logf("conflict: %s", c)
	}
	// The C grammar's only ambiguity is dangling-else, a shift/reduce
	// conflict, which setReduce resolves silently -- so a well-formed
	// grammar must report zero reduce/reduce conflicts.
	if len(p.Conflicts()) != 0 {
		t.Fatalf("expected no reduce/reduce conflicts in the C grammar, got %v", p.Conflicts())
	}
}

func TestBuildCFSMIsDeterministic(t *testing.T) {
	g1 := cGrammar(t)
	g2 := cGrammar(t)
	c1 := BuildCFSM(g1)
	c2 := BuildCFSM(g2)
	if len(c1.States()) != len(c2.States()) {
		t.Fatalf("expected a stable CFSM state count, got %d and %d", len(c1.States()), len(c2.States()))
	}
	if len(c1.Edges()) != len(c2.Edges()) {
		t.Fatalf("expected a stable CFSM edge count, got %d and %d", len(c1.Edges()), len(c2.Edges()))
	}
}
