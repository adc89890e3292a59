package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/kestrel-lang/cfront/grammar"
	"github.com/kestrel-lang/cfront/lexer"
	"github.com/kestrel-lang/cfront/lower"
	"github.com/kestrel-lang/cfront/parser/slr"
)

// runRepl is a thin, genuinely optional debug shell: each line is wrapped
// in a throwaway main function, compiled end to end, and the resulting IR
// (or the first error) is printed. It has no bearing on the file-mode
// pipeline in runCompile and exists purely to give a quick way to probe how
// one statement lowers without hand-assembling a whole source file.
func runRepl() error {
	rl, err := readline.New("cfront> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	lx, err := lexer.New()
	if err != nil {
		return err
	}

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		replEval(lx, line)
	}
}

func replEval(lx *lexer.Lexer, line string) {
	source := fmt.Sprintf("int main() { %s }", line)
	tokens := lx.Tokenize(source)

	g := grammar.NewCGrammar()
	g.ComputeFirstSets()
	g.ComputeFollowSets()
	p := slr.NewParser(g)

	_, ok, root, perr := p.Parse(tokens)
	if !ok {
		if perr != nil {
			fmt.Println(perr)
		} else {
			fmt.Println("parse failed")
		}
		return
	}
	prog := root.AsProgram()
	if prog == nil {
		fmt.Println("parse succeeded without producing a program")
		return
	}
	module, lerr := lower.Lower(prog)
	if lerr != nil {
		fmt.Println(lerr)
		return
	}
	fmt.Print(module.String())
}
