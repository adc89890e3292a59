package automata

import "testing"

func compileOne(t *testing.T, pattern string, token int) *NFA {
	t.Helper()
	re := &Regex{Pattern: pattern}
	nfa, err := re.Compile(token, 0)
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return nfa
}

func scan(d *DFA, input string) (matched string, token int) {
	state := d.StartState()
	lastAccept := -1
	lastLen := 0
	for i := 0; i < len(input); i++ {
		next := d.Transition(state, Sym(input[i]))
		if next < 0 {
			break
		}
		state = next
		if d.State(state).Token >= 0 {
			lastAccept = d.State(state).Token
			lastLen = i + 1
		}
	}
	if lastAccept < 0 {
		return "", -1
	}
	return input[:lastLen], lastAccept
}

func TestRegexLiteralAndConcat(t *testing.T) {
	nfa := compileOne(t, "ab", 0)
	d := NewDFA(nfa).Minimize()
	if m, tok := scan(d, "ab"); m != "ab" || tok != 0 {
		t.Fatalf("got %q/%d", m, tok)
	}
}

func TestRegexAlternation(t *testing.T) {
	nfa := compileOne(t, "cat|dog", 0)
	d := NewDFA(nfa).Minimize()
	if m, _ := scan(d, "dog"); m != "dog" {
		t.Fatalf("got %q", m)
	}
	if m, _ := scan(d, "cat"); m != "cat" {
		t.Fatalf("got %q", m)
	}
}

func TestRegexStarPlus(t *testing.T) {
	nfa := compileOne(t, "a*b+", 0)
	d := NewDFA(nfa).Minimize()
	if m, _ := scan(d, "aaabbb"); m != "aaabbb" {
		t.Fatalf("got %q", m)
	}
	if m, _ := scan(d, "b"); m != "b" {
		t.Fatalf("got %q", m)
	}
	if m, tok := scan(d, "aaa"); tok >= 0 {
		t.Fatalf("expected no match for 'aaa', got %q", m)
	}
}

func TestRegexAnyDot(t *testing.T) {
	nfa := compileOne(t, ".", 0)
	d := NewDFA(nfa).Minimize()
	if m, _ := scan(d, "\n"); m != "\n" {
		t.Fatalf(". should match newline, got %q", m)
	}
}

func TestRegexCaseInsensitive(t *testing.T) {
	nfa := compileOne(t, "?i:if", 0)
	d := NewDFA(nfa).Minimize()
	for _, s := range []string{"if", "IF", "If", "iF"} {
		if m, _ := scan(d, s); m != s {
			t.Fatalf("case-insensitive match failed for %q, got %q", s, m)
		}
	}
}

func TestRegexMalformedPattern(t *testing.T) {
	for _, pattern := range []string{"(a", "a|", "a\\"} {
		re := &Regex{Pattern: pattern}
		if _, err := re.Compile(0, 0); err == nil {
			t.Fatalf("expected PatternError for %q", pattern)
		}
	}
}

func TestUnionManyPriority(t *testing.T) {
	// Two overlapping rules; earlier (lower index/priority) rule wins ties.
	kwNFA, _ := (&Regex{Pattern: "if"}).Compile(0, 0)
	idNFA, _ := (&Regex{Pattern: "if"}).Compile(1, 1)
	merged := UnionMany([]*NFA{kwNFA, idNFA})
	d := NewDFA(merged).Minimize()
	if _, tok := scan(d, "if"); tok != 0 {
		t.Fatalf("expected rule 0 (keyword) to win on tie, got token %d", tok)
	}
}

func TestUnionManyEmpty(t *testing.T) {
	n := UnionMany(nil)
	if n.NumStates() != 1 {
		t.Fatalf("expected single dead state, got %d", n.NumStates())
	}
}

func TestMinimizeDoesNotGrowStateCount(t *testing.T) {
	// Subset construction already merges the two "a" branches of "a|a"
	// (2 DFA states); minimization must not add states on top of that.
	nfa := compileOne(t, "a|a", 0)
	d := NewDFA(nfa)
	min := d.Minimize()
	if min.NumStates() > d.NumStates() {
		t.Fatalf("minimization should not grow state count: %d -> %d", d.NumStates(), min.NumStates())
	}
}
