package ll1

import (
	"testing"

	"github.com/kestrel-lang/cfront/grammar"
	"github.com/kestrel-lang/cfront/lexer"
)

func normalizedCGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.NewCGrammar().Clone()
	g.NormalizeLL1()
	g.ComputeFirstSets()
	g.ComputeFollowSets()
	return g
}

func lexTokens(t *testing.T, source string) []lexer.Token {
	t.Helper()
	lx, err := lexer.New()
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	return lx.Tokenize(source)
}

func TestParseAcceptsSimpleFunction(t *testing.T) {
	g := normalizedCGrammar(t)
	p := NewParser(g)

	tokens := lexTokens(t, "int main() { return 0; }")
	trace, ok, err := p.Parse(tokens)
	if !ok {
		t.Fatalf("expected accept, got error %v; trace:\n%v", err, trace)
	}
	last := trace[len(trace)-1]
	if last.Action != Accept {
		t.Fatalf("expected final step to be Accept, got %s", last.Action)
	}
}

func TestParseRejectsInvalidToken(t *testing.T) {
	g := normalizedCGrammar(t)
	p := NewParser(g)

	tokens := lexTokens(t, "int main() { return @; }")
	_, ok, err := p.Parse(tokens)
	if ok {
		t.Fatalf("expected rejection of an Invalid token")
	}
	if err == nil {
		t.Fatalf("expected a located ParseError")
	}
}

func TestParseRejectsStructuralMismatch(t *testing.T) {
	g := normalizedCGrammar(t)
	p := NewParser(g)

	// Missing closing brace: the predictive table runs out of input where
	// it expects '}'.
	tokens := lexTokens(t, "int main() { return 0; ")
	_, ok, err := p.Parse(tokens)
	if ok {
		t.Fatalf("expected rejection of a structurally incomplete program")
	}
	if err == nil {
		t.Fatalf("expected a ParseError")
	}
}

func TestBuildTableHasEntryForEveryFirstTerminal(t *testing.T) {
	g := normalizedCGrammar(t)
	table := BuildTable(g)
	if len(table) == 0 {
		t.Fatalf("expected a non-empty predictive table")
	}
	// Normalization inlines CompUnit's alternates into Program; M[Program, a]
	// must exist for every non-epsilon terminal in FIRST(Program).
	first := g.First(grammar.NT("Program"))
	for _, a := range first.Slice() {
		if a.IsEpsilon() {
			continue
		}
		if _, ok := table.Lookup(grammar.NT("Program"), a); !ok {
			t.Fatalf("missing M[Program,%s]", a)
		}
	}
}
