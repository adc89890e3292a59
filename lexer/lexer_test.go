package lexer

import "testing"

func mustLexer(t *testing.T) *Lexer {
	t.Helper()
	l, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func typesOf(tokens []Token) []TokType {
	out := make([]TokType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestTokenizeEmptyInput(t *testing.T) {
	l := mustLexer(t)
	tokens := l.Tokenize("")
	if len(tokens) != 1 || tokens[0].Type != EOF {
		t.Fatalf("expected single EOF token, got %v", typesOf(tokens))
	}
}

func TestTokenizeWhitespaceOnly(t *testing.T) {
	l := mustLexer(t)
	tokens := l.Tokenize("   \t\n  ")
	if len(tokens) != 1 || tokens[0].Type != EOF {
		t.Fatalf("expected single EOF token, got %v", typesOf(tokens))
	}
}

func TestTokenizeLoneInvalidChar(t *testing.T) {
	l := mustLexer(t)
	tokens := l.Tokenize("@")
	if len(tokens) != 2 || tokens[0].Type != Invalid || tokens[0].Text != "@" || tokens[1].Type != EOF {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
}

func TestTokenizeKeywordsCaseInsensitive(t *testing.T) {
	l := mustLexer(t)
	tokens := l.Tokenize("INT Int iNt")
	for _, tok := range tokens[:3] {
		if tok.Type != KwInt {
			t.Fatalf("expected KwInt, got %v for %q", tok.Type, tok.Text)
		}
	}
}

func TestTokenizeOperators(t *testing.T) {
	l := mustLexer(t)
	tokens := l.Tokenize("== <= >= != && || + - * / % = > <")
	want := []TokType{OpEqual, OpLessEqual, OpGreaterEqual, OpNotEqual, OpAnd, OpOr,
		OpPlus, OpMinus, OpMultiply, OpDivide, OpMod, OpAssign, OpGreater, OpLess, EOF}
	got := typesOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at %d: got %v want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestTokenizeFloatVsInt(t *testing.T) {
	l := mustLexer(t)
	tokens := l.Tokenize("3.14 42 .5 5.")
	want := []TokType{LiteralFloat, LiteralInt, LiteralFloat, LiteralFloat, EOF}
	got := typesOf(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at %d: got %v want %v (full %v)", i, got[i], want[i], got)
		}
	}
}

func TestPostProcessFuncDefInt(t *testing.T) {
	l := mustLexer(t)
	tokens := l.Tokenize("int main() { int a = 1; return a; }")
	if tokens[0].Type != FuncDefInt {
		t.Fatalf("expected first 'int' to become FuncDefInt, got %v", tokens[0].Type)
	}
	// the 'int' inside the body declaring 'a' must remain KwInt.
	found := false
	for _, tok := range tokens {
		if tok.Type == KwInt {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a remaining KwInt for the local declaration")
	}
}

func TestPostProcessDoesNotFireInsideBraces(t *testing.T) {
	l := mustLexer(t)
	// 'int' followed by ident then '(' but nested one level deep inside a
	// preceding function's braces.
	tokens := l.Tokenize("int f() { int g(int x); }")
	// f() at depth 0 becomes FuncDefInt; the nested 'int g(' is inside braces
	// (depth 1) so it must stay KwInt, and 'int x' is a plain declaration.
	if tokens[0].Type != FuncDefInt {
		t.Fatalf("expected leading int to become FuncDefInt, got %v", tokens[0].Type)
	}
	for _, tok := range tokens[1:] {
		if tok.Type == FuncDefInt {
			t.Fatalf("did not expect a second FuncDefInt inside braces: %+v", tokens)
		}
	}
}

func TestAdvanceTabStops(t *testing.T) {
	row, col := advance(1, 1, "\t")
	if row != 1 || col != 5 {
		t.Fatalf("tab from col 1 should land on col 5, got (%d,%d)", row, col)
	}
	row, col = advance(1, 5, "\t")
	if col != 9 {
		t.Fatalf("tab from col 5 should land on col 9, got %d", col)
	}
	row, col = advance(1, 1, "ab\n")
	if row != 2 || col != 1 {
		t.Fatalf("newline should advance row and reset column, got (%d,%d)", row, col)
	}
}
