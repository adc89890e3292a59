package lexer

import (
	"github.com/kestrel-lang/cfront"
	"github.com/kestrel-lang/cfront/automata"
)

// Lexer holds the compiled rule table: a single minimized DFA built once at
// construction, and the ordered rule metadata needed to map an accepting
// DFA state back to a (TokType, Category) pair.
type Lexer struct {
	dfa   *automata.DFA
	rules []rule
}

// New compiles the fixed rule table into a master NFA, converts it to a
// DFA, and minimizes the DFA -- once. A malformed rule pattern returns a
// *cfront.Error of kind PatternError; this can only happen if the rule
// table itself is broken, since every pattern here is a compile-time
// constant.
func New() (*Lexer, error) {
	subs := make([]*automata.NFA, len(rules))
	for i, r := range rules {
		nfa, err := (&automata.Regex{Pattern: r.pattern}).Compile(i, i)
		if err != nil {
			return nil, err
		}
		subs[i] = nfa
	}
	master := automata.UnionMany(subs)
	dfa := automata.NewDFA(master).Minimize()
	tracer().Debugf("lexer DFA built: %d rules, %d states", len(rules), dfa.NumStates())
	return &Lexer{dfa: dfa, rules: rules}, nil
}

// Tokenize runs DFA maximal-munch over source, producing a token per match
// (an Invalid token of length one on a dead transition with no prior
// accept), dropping Spacer tokens, applying the FuncDef post-process pass,
// and terminating the stream with a single EOF token. The lexer never
// fails: malformed input surfaces as Invalid tokens, never a returned
// error, per the error handling policy.
func (l *Lexer) Tokenize(source string) []Token {
	var tokens []Token
	row, col := 1, 1
	pos := 0
	for pos < len(source) {
		state := l.dfa.StartState()
		cursor := pos
		lastAcceptState := -1
		lastAcceptPos := pos
		if l.dfa.State(state).Token >= 0 {
			lastAcceptState = state
			lastAcceptPos = cursor
		}
		for cursor < len(source) && state >= 0 {
			next := l.dfa.Transition(state, automata.Sym(source[cursor]))
			if next < 0 {
				break
			}
			state = next
			cursor++
			if l.dfa.State(state).Token >= 0 {
				lastAcceptState = state
				lastAcceptPos = cursor
			}
		}

		var tok Token
		if lastAcceptState >= 0 && lastAcceptPos > pos {
			ruleIdx := l.dfa.State(lastAcceptState).Token
			r := l.rules[ruleIdx]
			text := source[pos:lastAcceptPos]
			tok = Token{Type: r.typ, Category: r.category, Loc: cfront.Location{Line: row, Col: col}, Text: text,
				span: cfront.Span{uint64(pos), uint64(lastAcceptPos)}}
			pos = lastAcceptPos
		} else {
			text := source[pos : pos+1]
			tok = Token{Type: Invalid, Category: CatInvalid, Loc: cfront.Location{Line: row, Col: col}, Text: text,
				span: cfront.Span{uint64(pos), uint64(pos + 1)}}
			tracer().Errorf("lex error: unexpected byte %q at %s", text, tok.Loc)
			pos++
		}
		row, col = advance(row, col, tok.Text)
		tokens = append(tokens, tok)
	}
	tokens = optimize(tokens)
	tokens = append(tokens, Token{Type: EOF, Category: CatEnd, Loc: cfront.Location{Line: row, Col: col}})
	return PostProcess(tokens)
}

// advance updates (row, col) by scanning text one byte at a time: '\n'
// advances the row and resets the column; '\r' resets the column without
// advancing the row; '\t' rounds the column up to the next multiple-of-4
// tab stop; any other byte advances the column by one.
func advance(row, col int, text string) (int, int) {
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '\n':
			row++
			col = 1
		case '\r':
			col = 1
		case '\t':
			const tabWidth = 4
			offset := tabWidth - ((col - 1) % tabWidth)
			col += offset
		default:
			col++
		}
	}
	return row, col
}

// optimize drops every Spacer-category token produced by the whitespace and
// newline rules.
func optimize(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Category != catSpacer {
			out = append(out, t)
		}
	}
	return out
}

// PostProcess retypes a top-level KwInt/KwFloat token immediately followed
// by an Identifier (or KwMain) and then '(' into FuncDefInt/FuncDefFloat, tracking
// brace-nesting depth in a single left-to-right pass. This disambiguates
// function-return-type occurrences from variable-declaration occurrences
// without a context-aware grammar.
func PostProcess(tokens []Token) []Token {
	adjusted := make([]Token, len(tokens))
	copy(adjusted, tokens)
	depth := 0
	for i := range adjusted {
		switch adjusted[i].Type {
		case SepLBrace:
			depth++
		case SepRBrace:
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && (adjusted[i].Type == KwInt || adjusted[i].Type == KwFloat) &&
			i+2 < len(adjusted) &&
			(adjusted[i+1].Type == Identifier || adjusted[i+1].Type == KwMain) &&
			adjusted[i+2].Type == SepLParen {
			if adjusted[i].Type == KwInt {
				adjusted[i].Type = FuncDefInt
			} else {
				adjusted[i].Type = FuncDefFloat
			}
			adjusted[i].Category = CatFuncDef
		}
	}
	return adjusted
}
