package automata

import (
	"strings"
	"unicode"

	"github.com/kestrel-lang/cfront"
)

// Regex is a compiled-at-construction-time rule pattern. The grammar is:
//
//	alt    := concat ('|' concat)*
//	concat := repeat+
//	repeat := atom ('*'|'+')*
//	atom   := '(' alt ')' | '.' | '\' CHAR | CHAR
//
// A leading "?i:" prefix enables ASCII case-insensitivity: every literal
// letter compiles to two parallel edges, one per case. '.' compiles to an
// Any edge, matching any single byte including '\n' -- there is no dotall
// distinction.
type Regex struct {
	Pattern string
}

type nfaFrag struct {
	start, accept int
}

func (f nfaFrag) invalid() bool { return f.start < 0 || f.accept < 0 }

var invalidFrag = nfaFrag{-1, -1}

type regexParser struct {
	pattern     string
	pos         int
	insensitive bool
	nfa         *NFA
}

func (p *regexParser) atEnd() bool { return p.pos >= len(p.pattern) }

func (p *regexParser) curr() byte {
	if p.atEnd() {
		return 0
	}
	return p.pattern[p.pos]
}

func (p *regexParser) consume() byte {
	c := p.curr()
	p.pos++
	return c
}

func (p *regexParser) emptyFragment() nfaFrag {
	return nfaFrag{p.nfa.NewState(), p.nfa.NewState()}
}

// Compile builds an NFA fragment for the pattern, accepting at token with
// priority. It returns a *cfront.Error of kind PatternError on a malformed
// pattern (unmatched paren, empty alternative, trailing backslash, or
// trailing unconsumed input).
func (r *Regex) Compile(token, priority int) (*NFA, error) {
	pattern := r.Pattern
	insensitive := false
	if strings.HasPrefix(pattern, "?i:") {
		insensitive = true
		pattern = pattern[3:]
	}
	p := &regexParser{pattern: pattern, insensitive: insensitive, nfa: NewNFA()}
	frag := p.parseAlt()
	if frag.invalid() || !p.atEnd() {
		return nil, cfront.NewError(cfront.PatternError, cfront.Location{}, "invalid regex pattern: %q", r.Pattern)
	}
	p.nfa.SetStart(frag.start)
	p.nfa.SetAccept(frag.accept, token, priority)
	return p.nfa, nil
}

func (p *regexParser) parseAlt() nfaFrag {
	first := p.parseConcat()
	if first.invalid() {
		return invalidFrag
	}
	branches := []nfaFrag{first}
	for p.curr() == '|' {
		p.consume()
		next := p.parseConcat()
		if next.invalid() {
			return invalidFrag
		}
		branches = append(branches, next)
	}
	if len(branches) == 1 {
		return branches[0]
	}
	out := p.emptyFragment()
	for _, frag := range branches {
		p.nfa.AddEdge(out.start, frag.start, Eps)
		p.nfa.AddEdge(frag.accept, out.accept, Eps)
	}
	return out
}

func (p *regexParser) parseConcat() nfaFrag {
	var frags []nfaFrag
	for {
		frag := p.parseRepeat()
		if frag.invalid() {
			break
		}
		frags = append(frags, frag)
	}
	if len(frags) == 0 {
		return invalidFrag
	}
	for i := 1; i < len(frags); i++ {
		p.nfa.AddEdge(frags[i-1].accept, frags[i].start, Eps)
	}
	return nfaFrag{frags[0].start, frags[len(frags)-1].accept}
}

func (p *regexParser) parseRepeat() nfaFrag {
	f := p.parseAtom()
	if f.invalid() {
		return f
	}
	for {
		c := p.curr()
		if c != '*' && c != '+' {
			break
		}
		p.consume()
		res := p.emptyFragment()
		p.nfa.AddEdge(res.start, f.start, Eps)
		p.nfa.AddEdge(f.accept, res.accept, Eps)
		p.nfa.AddEdge(f.accept, f.start, Eps)
		if c == '*' {
			p.nfa.AddEdge(res.start, res.accept, Eps)
		}
		f = res
	}
	return f
}

func (p *regexParser) addLiteralEdge(f nfaFrag, c byte) {
	if p.insensitive && isASCIILetter(c) {
		p.nfa.AddEdge(f.start, f.accept, Sym(toLowerASCII(c)))
		p.nfa.AddEdge(f.start, f.accept, Sym(toUpperASCII(c)))
	} else {
		p.nfa.AddEdge(f.start, f.accept, Sym(c))
	}
}

func (p *regexParser) parseAtom() nfaFrag {
	if p.atEnd() {
		return invalidFrag
	}
	c := p.curr()
	if c == '|' || c == ')' {
		return invalidFrag
	}
	if c == '(' {
		start := p.pos
		p.consume()
		f := p.parseAlt()
		if f.invalid() || p.atEnd() || p.curr() != ')' {
			p.pos = start
			return invalidFrag
		}
		p.consume()
		return f
	}
	if c == '.' {
		p.consume()
		f := p.emptyFragment()
		p.nfa.AddEdge(f.start, f.accept, Any)
		return f
	}
	if c == '\\' {
		if p.pos+1 >= len(p.pattern) {
			return invalidFrag
		}
		p.consume()
		c = p.consume()
		f := p.emptyFragment()
		p.addLiteralEdge(f, c)
		return f
	}
	p.consume()
	f := p.emptyFragment()
	p.addLiteralEdge(f, c)
	return f
}

func isASCIILetter(c byte) bool {
	return unicode.IsLetter(rune(c)) && c < unicode.MaxASCII
}

func toLowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func toUpperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
