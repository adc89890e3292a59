package slr

import (
	"fmt"
	"strconv"

	"github.com/kestrel-lang/cfront"
	"github.com/kestrel-lang/cfront/ast"
	"github.com/kestrel-lang/cfront/grammar"
	"github.com/kestrel-lang/cfront/lexer"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace { return tracing.Select("cfront.parser.slr") }

// ActionTraceKind names the trace step vocabulary shared with parser/ll1's
// text format.
type ActionTraceKind int

const (
	MoveStep ActionTraceKind = iota
	ReductionStep
	AcceptStep
	ErrorStep
)

func (k ActionTraceKind) String() string {
	switch k {
	case MoveStep:
		return "move"
	case ReductionStep:
		return "reduction"
	case AcceptStep:
		return "accept"
	default:
		return "error"
	}
}

// Step is one line of the shift-reduce trace: "<index>\t<top-symbol>#<lookahead>\t<action>".
type Step struct {
	Index     int
	Top       grammar.Symbol
	Lookahead grammar.Symbol
	Action    ActionTraceKind
}

func (s Step) String() string {
	return fmt.Sprintf("%d\t%s#%s\t%s", s.Index, s.Top, s.Lookahead, s.Action)
}

// stackItem pairs a CFSM state with the grammar symbol that was shifted or
// reduced to reach it and the semantic value built for that symbol.
type stackItem struct {
	State int
	Sym   grammar.Symbol
	Loc   cfront.Location
	Value ast.Value
}

// Parser is a canonical SLR(1) shift-reduce parser: it builds the CFSM and
// ACTION/GOTO tables once at construction, then drives them over a token
// stream, invoking each reduced production's semantic action to build an
// AST in lock-step with recognition.
type Parser struct {
	g     *grammar.Grammar
	cfsm  *CFSM
	table *Tables
}

// NewParser builds the CFSM and tables for g (the grammar's natural,
// un-normalized left-recursive form -- SLR(1) construction does not need
// and must not receive an LL(1)-normalized grammar).
func NewParser(g *grammar.Grammar) *Parser {
	cfsm := BuildCFSM(g)
	table := BuildTables(g, cfsm)
	return &Parser{g: g, cfsm: cfsm, table: table}
}

// Conflicts returns every reduce/reduce conflict warning recorded while
// building the tables.
func (p *Parser) Conflicts() []string { return p.table.Conflicts }

// terminalValue is the fixed token-to-semantic-value mapping applied on
// every shift: int/float literals carry their parsed
// numeric value, identifiers (and the main keyword, which the grammar maps
// to the same Ident terminal) carry their lexeme, type keywords carry a
// BasicType, and every other terminal carries no payload.
func terminalValue(tok lexer.Token) ast.Value {
	switch tok.Type {
	case lexer.LiteralInt:
		n, _ := strconv.Atoi(tok.Text)
		return ast.IntValue(n)
	case lexer.LiteralFloat:
		f, _ := strconv.ParseFloat(tok.Text, 64)
		return ast.FloatValue(f)
	case lexer.Identifier, lexer.KwMain:
		return ast.StringValue(tok.Text)
	case lexer.KwInt, lexer.FuncDefInt:
		return ast.BasicTypeValue(ast.Int)
	case lexer.KwFloat, lexer.FuncDefFloat:
		return ast.BasicTypeValue(ast.Float)
	case lexer.KwVoid:
		return ast.BasicTypeValue(ast.Void)
	default:
		return ast.Value{}
	}
}

// Parse drives tokens (which must already end with an EOF token) through
// the ACTION/GOTO tables, building an AST as it reduces. It returns the
// step trace, whether the input was accepted, the root ast.Value (valid
// only when accepted and the final value is a Program), and the first
// fatal error encountered -- parsing stops at the first error, returning
// the partial trace gathered so far.
func (p *Parser) Parse(tokens []lexer.Token) ([]Step, bool, ast.Value, *cfront.Error) {
	stack := []stackItem{{State: p.cfsm.S0.ID}}
	curr := 0
	var trace []Step

	for {
		top := stack[len(stack)-1]
		if curr >= len(tokens) {
			return trace, false, ast.Value{}, cfront.NewError(cfront.ParseError, cfront.Location{}, "unexpected end of input")
		}
		tok := tokens[curr]

		a, ok := p.g.TerminalFor(tok.Key())
		if !ok {
			trace = append(trace, Step{len(trace), top.Sym, grammar.T(tok.Lexeme()), ErrorStep})
			tracer().Errorf("token not in grammar terminal set: %s", tok)
			return trace, false, ast.Value{}, cfront.NewError(cfront.ParseError, tok.Loc, "token not in grammar terminal set: %s", tok.Lexeme())
		}

		action, ok := p.table.Action(top.State, a)
		if !ok {
			trace = append(trace, Step{len(trace), top.Sym, a, ErrorStep})
			tracer().Errorf("no ACTION[%d,%s]", top.State, a)
			return trace, false, ast.Value{}, cfront.NewError(cfront.ParseError, tok.Loc, "no action for state %d on %s", top.State, a)
		}

		switch action.Kind {
		case Shift:
			trace = append(trace, Step{len(trace), top.Sym, a, MoveStep})
			stack = append(stack, stackItem{State: action.Target, Sym: a, Loc: tok.Loc, Value: terminalValue(tok)})
			curr++
		case Reduce:
			prod, ok := p.g.ProductionByID(action.Target)
			if !ok {
				return trace, false, ast.Value{}, cfront.NewError(cfront.ParseError, tok.Loc, "dangling reduce to production %d", action.Target)
			}
			trace = append(trace, Step{len(trace), top.Sym, a, ReductionStep})
			popCount := 0
			for _, sym := range prod.Body {
				if !sym.IsEpsilon() {
					popCount++
				}
			}
			rhs := make([]ast.Value, popCount)
			loc := tok.Loc
			if popCount > 0 {
				popped := stack[len(stack)-popCount:]
				loc = popped[0].Loc
				for i, it := range popped {
					rhs[i] = it.Value
				}
				stack = stack[:len(stack)-popCount]
			}
			newValue := prod.Build(loc, rhs)
			newTop := stack[len(stack)-1]
			target, ok := p.table.Goto(newTop.State, prod.Head)
			if !ok {
				return trace, false, ast.Value{}, cfront.NewError(cfront.ParseError, loc, "no GOTO[%d,%s]", newTop.State, prod.Head)
			}
			stack = append(stack, stackItem{State: target, Sym: prod.Head, Loc: loc, Value: newValue})
		case AcceptAction:
			trace = append(trace, Step{len(trace), top.Sym, a, AcceptStep})
			// The augmented start production (id 0) is never itself
			// reduced -- its cell holds accept, not reduce -- so the
			// value on top of the stack is whatever its body's own
			// reduction left there. Only surface it as the root if it
			// is in fact a Program handle.
			root := stack[len(stack)-1].Value
			if root.Kind != ast.KindProgram {
				root = ast.Value{}
			}
			return trace, true, root, nil
		}
	}
}
