package grammar

import (
	"bytes"
	"testing"

	"github.com/kestrel-lang/cfront"
	"github.com/kestrel-lang/cfront/ast"
	"github.com/kestrel-lang/cfront/lexer"
)

func numLeaf(n int) ast.Value {
	return ast.ExprValue(&ast.LiteralInt{Value: n})
}

func addBinary(loc cfront.Location, rhs []ast.Value) ast.Value {
	return ast.ExprValue(&ast.BinaryExpr{Op: ast.Add, LHS: rhs[0].AsExpr(), RHS: rhs[2].AsExpr()})
}

func litOf(v ast.Value) int {
	lit, ok := v.AsExpr().(*ast.LiteralInt)
	if !ok {
		return -1
	}
	return lit.Value
}

func addExprString(v ast.Value, depth int) string {
	if depth > 8 {
		return "..."
	}
	switch e := v.AsExpr().(type) {
	case *ast.LiteralInt:
		return "n"
	case *ast.BinaryExpr:
		return "(" + addExprString(ast.ExprValue(e.LHS), depth+1) + "+" + addExprString(ast.ExprValue(e.RHS), depth+1) + ")"
	default:
		return "?"
	}
}

func TestAddProductionPanicsOnEmptyBody(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on empty production body")
		}
	}()
	g := New("S")
	g.AddProduction("S", nil, ast.BuildSingleForward)
}

// buildArithGrammar builds a minimal left-recursive sum grammar:
//
//	E -> E '+' T | T
//	T -> 'num'
func buildArithGrammar() *Grammar {
	g := New("E")
	g.AddProduction("E", []Symbol{NT("E"), T("+"), NT("T")}, addBinary)
	g.AddProduction("E", []Symbol{NT("T")}, ast.BuildSingleForward)
	g.AddProduction("T", []Symbol{T("num")}, ast.BuildSingleForward)
	return g
}

func TestFirstAndFollowSets(t *testing.T) {
	g := buildArithGrammar()
	g.ComputeFirstSets()
	g.ComputeFollowSets()

	if !g.First(NT("E")).Contains(T("num")) {
		t.Fatalf("expected FIRST(E) to contain num, got %v", g.First(NT("E")))
	}
	if !g.First(NT("T")).Contains(T("num")) {
		t.Fatalf("expected FIRST(T) to contain num")
	}
	follow := g.Follow(NT("E"))
	if !follow.Contains(EndSym()) {
		t.Fatalf("expected FOLLOW(E) to contain $, got %v", follow)
	}
	followT := g.Follow(NT("T"))
	if !followT.Contains(T("+")) || !followT.Contains(EndSym()) {
		t.Fatalf("expected FOLLOW(T) = {+, $}, got %v", followT)
	}
}

func TestHasBackTrackingCleanGrammarReportsNone(t *testing.T) {
	// A left-recursive alternate's FIRST set always contains its base
	// case's FIRST set, so buildArithGrammar's E is exactly the kind of
	// grammar HasBackTracking is meant to flag. A genuinely LL(1)-clean
	// grammar needs disjoint-by-construction alternates instead.
	g := New("S")
	g.AddProduction("S", []Symbol{T("a"), NT("A")}, ast.BuildSingleForward)
	g.AddProduction("S", []Symbol{T("b"), NT("B")}, ast.BuildSingleForward)
	g.AddProduction("A", []Symbol{T("x")}, ast.BuildSingleForward)
	g.AddProduction("B", []Symbol{T("y")}, ast.BuildSingleForward)
	g.ComputeFirstSets()
	g.ComputeFollowSets()

	var buf bytes.Buffer
	if g.HasBackTracking(&buf) {
		t.Fatalf("expected no conflicts in a well-formed grammar, got:\n%s", buf.String())
	}
}

func TestHasBackTrackingDetectsLeftRecursiveOverlap(t *testing.T) {
	g := buildArithGrammar()
	g.ComputeFirstSets()
	g.ComputeFollowSets()
	var buf bytes.Buffer
	if !g.HasBackTracking(&buf) {
		t.Fatalf("expected the left-recursive E alternates to be flagged")
	}
}

func TestHasBackTrackingDetectsFirstFirstConflict(t *testing.T) {
	// S -> 'a' X | 'a' Y   -- both alternates start with 'a'.
	g := New("S")
	g.AddProduction("S", []Symbol{T("a"), NT("X")}, ast.BuildSingleForward)
	g.AddProduction("S", []Symbol{T("a"), NT("Y")}, ast.BuildSingleForward)
	g.AddProduction("X", []Symbol{T("x")}, ast.BuildSingleForward)
	g.AddProduction("Y", []Symbol{T("y")}, ast.BuildSingleForward)
	g.ComputeFirstSets()
	g.ComputeFollowSets()

	var buf bytes.Buffer
	if !g.HasBackTracking(&buf) {
		t.Fatalf("expected a FIRST/FIRST conflict to be reported")
	}
}

// TestNormalizeLL1EliminatesLeftRecursionAndPreservesSemantics drives the
// rewritten grammar's productions by hand (without a parser driver)
// to confirm the continuation-passing builder composition reconstructs the
// exact left-associative AST a left-recursive parse of "1+2+3" would have
// built.
func TestNormalizeLL1EliminatesLeftRecursionAndPreservesSemantics(t *testing.T) {
	g := buildArithGrammar()
	g.NormalizeLL1()

	eProds := g.liveProductionsOf("E")
	if len(eProds) != 1 {
		t.Fatalf("expected exactly one live E production after normalization, got %d", len(eProds))
	}
	eProd := eProds[0]
	// T leads E's rewritten base production, so the unreachable-prefix
	// substitution step inlines it: E's final production consumes the
	// 'num' terminal directly rather than going through a T step.
	if len(eProd.Body) != 2 || eProd.Body[0] != T("num") || !eProd.Body[1].IsNonTerminal() {
		t.Fatalf("expected E -> 'num' E', got %s", eProd)
	}
	primed := eProd.Body[1].Name

	primedProds := g.liveProductionsOf(primed)
	if len(primedProds) != 2 {
		t.Fatalf("expected exactly two live %s productions, got %d", primed, len(primedProds))
	}
	var recProd, epsProd Production
	for _, p := range primedProds {
		if p.IsEpsilon() {
			epsProd = p
		} else {
			recProd = p
		}
	}
	// Here T sits mid-body (after '+'), not leading, so it survives the
	// substitution step and stays reachable through this production.
	if len(recProd.Body) != 3 || recProd.Body[0] != T("+") || recProd.Body[1].Name != "T" {
		t.Fatalf("expected %s -> '+' T %s, got %s", primed, primed, recProd)
	}

	tProds := g.liveProductionsOf("T")
	if len(tProds) != 1 {
		t.Fatalf("expected exactly one live T production, got %d", len(tProds))
	}
	tProd := tProds[0]

	loc := cfront.Location{}
	buildT := func(n int) ast.Value { return tProd.Build(loc, []ast.Value{numLeaf(n)}) }

	t3 := buildT(3)
	ePrimeEps := epsProd.Build(loc, nil)
	ePrime3 := recProd.Build(loc, []ast.Value{{}, t3, ePrimeEps})

	t2 := buildT(2)
	ePrime2 := recProd.Build(loc, []ast.Value{{}, t2, ePrime3})

	result := eProd.Build(loc, []ast.Value{numLeaf(1), ePrime2})

	got := addExprString(result, 0)
	want := "((n+n)+n)"
	if got != want {
		t.Fatalf("expected left-associative fold %s, got %s", want, got)
	}

	bin, ok := result.AsExpr().(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected top-level BinaryExpr, got %T", result.AsExpr())
	}
	if litOf(ast.ExprValue(bin.RHS)) != 3 {
		t.Fatalf("expected rightmost operand 3, got %v", bin.RHS)
	}
	innerBin, ok := bin.LHS.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected nested BinaryExpr on the left, got %T", bin.LHS)
	}
	if litOf(ast.ExprValue(innerBin.LHS)) != 1 || litOf(ast.ExprValue(innerBin.RHS)) != 2 {
		t.Fatalf("expected innermost operands 1 and 2, got %v and %v", innerBin.LHS, innerBin.RHS)
	}
}

func TestNormalizeLL1OnCGrammarProducesNoDirectLeftRecursion(t *testing.T) {
	g := NewCGrammar()
	clone := g.Clone()
	clone.NormalizeLL1()
	clone.ComputeFirstSets()
	clone.ComputeFollowSets()

	for _, nt := range clone.sortedNonTerminals() {
		for _, p := range clone.liveProductionsOf(nt) {
			if len(p.Body) > 0 && p.Body[0] == NT(nt) {
				t.Fatalf("production %s retains direct left recursion after normalization", p)
			}
		}
	}
}

func TestTerminalForMapsMainAndIdentifierToTheSameTerminal(t *testing.T) {
	g := NewCGrammar()
	identTerm, ok := g.TerminalFor(lexer.Key{Type: lexer.Identifier, Category: lexer.CatIdentifier})
	if !ok {
		t.Fatalf("expected Identifier token to be mapped")
	}
	mainTerm, ok := g.TerminalFor(lexer.Key{Type: lexer.KwMain, Category: lexer.CatKeyword})
	if !ok {
		t.Fatalf("expected KwMain token to be mapped")
	}
	if identTerm != T("Ident") || mainTerm != T("Ident") {
		t.Fatalf("expected both Identifier and KwMain to map to terminal Ident, got %s and %s", identTerm, mainTerm)
	}
}
