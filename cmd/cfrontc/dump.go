package main

import (
	"github.com/pterm/pterm"

	"github.com/kestrel-lang/cfront/lexer"
	"github.com/kestrel-lang/cfront/parser/slr"
)

// dumpTokens prints one line per token. pterm only adds a section header
// and color; the line text itself is Token.String() so the format stays
// stable whether or not a terminal supports color.
func dumpTokens(tokens []lexer.Token) {
	pterm.DefaultSection.Println("tokens")
	for _, tok := range tokens {
		if tok.Type == lexer.Invalid {
			pterm.Error.Println(tok.String())
			continue
		}
		pterm.DefaultBasicText.Println(tok.String())
	}
}

// dumpParseTrace prints one line per parse step. A step whose action is
// ErrorStep is rendered in pterm's error style so a failing run's trace
// highlights exactly where the driver gave up.
func dumpParseTrace(trace []slr.Step) {
	pterm.DefaultSection.Println("parse trace")
	for _, step := range trace {
		if step.Action == slr.ErrorStep {
			pterm.Error.Println(step.String())
			continue
		}
		pterm.DefaultBasicText.Println(step.String())
	}
}
