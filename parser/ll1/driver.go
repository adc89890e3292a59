package ll1

import (
	"fmt"

	"github.com/kestrel-lang/cfront"
	"github.com/kestrel-lang/cfront/grammar"
	"github.com/kestrel-lang/cfront/lexer"
)

// ActionKind classifies one step of the LL(1) recognizer's trace.
type ActionKind int

const (
	Move ActionKind = iota
	Reduction
	Accept
	ErrorAction
)

func (k ActionKind) String() string {
	switch k {
	case Move:
		return "move"
	case Reduction:
		return "reduction"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Step is one line of the parse trace: the stack-top symbol, the lookahead
// terminal, and the action taken. String renders it as
// "<index>\t<top-symbol>#<lookahead>\t<action>".
type Step struct {
	Index     int
	Top       grammar.Symbol
	Lookahead grammar.Symbol
	Action    ActionKind
}

func (s Step) String() string {
	return fmt.Sprintf("%d\t%s#%s\t%s", s.Index, s.Top, s.Lookahead, s.Action)
}

// Parser is a stack-driven LL(1) recognizer. It does not build an AST: it
// is purely a recognizer/teaching driver that emits a
// move/reduction/accept/error trace; AST construction is the SLR(1)
// driver's job.
type Parser struct {
	g     *grammar.Grammar
	table Table
}

// NewParser builds the predictive table for g (which must already be
// LL(1)-normalized and have FIRST/FOLLOW computed) and returns a ready
// Parser.
func NewParser(g *grammar.Grammar) *Parser {
	return &Parser{g: g, table: BuildTable(g)}
}

// Parse runs the stack-driven LL(1) recognition loop over tokens (which
// must already end with an EOF token, as lexer.Tokenize guarantees) and
// returns the full trace plus whether the input was accepted. On the first
// error it stops and returns the trace up to and including the failing
// step, without attempting any recovery.
func (p *Parser) Parse(tokens []lexer.Token) ([]Step, bool, *cfront.Error) {
	stack := []grammar.Symbol{grammar.EndSym(), p.g.Start}
	curr := 0
	var trace []Step

	for len(stack) > 0 {
		X := stack[len(stack)-1]
		if curr >= len(tokens) {
			return trace, false, cfront.NewError(cfront.ParseError, cfront.Location{}, "unexpected end of input")
		}
		tok := tokens[curr]

		a, ok := p.g.TerminalFor(tok.Key())
		if !ok {
			trace = append(trace, Step{len(trace), X, grammar.T(tok.Lexeme()), ErrorAction})
			tracer().Errorf("token not in grammar terminal set: %s", tok)
			return trace, false, cfront.NewError(cfront.ParseError, tok.Loc, "token not in grammar terminal set: %s", tok.Lexeme())
		}

		if X.IsEnd() && a.IsEnd() {
			trace = append(trace, Step{len(trace), X, a, Accept})
			return trace, true, nil
		}

		switch {
		case X.IsTerminal():
			if X == a {
				trace = append(trace, Step{len(trace), X, a, Move})
				stack = stack[:len(stack)-1]
				curr++
			} else {
				trace = append(trace, Step{len(trace), X, a, ErrorAction})
				tracer().Errorf("expected terminal %s, got %s", X, a)
				return trace, false, cfront.NewError(cfront.ParseError, tok.Loc, "expected %s, got %s", X, a)
			}
		case X.IsNonTerminal():
			prod, ok := p.table.Lookup(X, a)
			if !ok {
				trace = append(trace, Step{len(trace), X, a, ErrorAction})
				tracer().Errorf("no production for M[%s,%s]", X, a)
				return trace, false, cfront.NewError(cfront.ParseError, tok.Loc, "no production for M[%s,%s]", X, a)
			}
			trace = append(trace, Step{len(trace), X, a, Reduction})
			stack = stack[:len(stack)-1]
			for i := len(prod.Body) - 1; i >= 0; i-- {
				sym := prod.Body[i]
				if sym.IsEpsilon() {
					continue
				}
				stack = append(stack, sym)
			}
		case X.IsEpsilon():
			stack = stack[:len(stack)-1]
		}
	}
	return trace, false, cfront.NewError(cfront.ParseError, cfront.Location{}, "parse stack exhausted without accepting")
}
