package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrel-lang/cfront/grammar"
	"github.com/kestrel-lang/cfront/lexer"
	"github.com/kestrel-lang/cfront/lower"
	"github.com/kestrel-lang/cfront/parser/slr"
)

var flags = struct {
	output     *string
	printIR    *bool
	dumpTokens *bool
	dumpParse  *bool
	lexOnly    *bool
	parseOnly  *bool
	repl       *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "cfrontc [options] <source-file>",
	Short: "Compile a C-subset source file to SSA-style IR",
	Long: `cfrontc tokenizes, parses and lowers a small C-subset source file.

With no path, or a path of "-", the source is read from stdin. By default the
resulting IR module is printed to stdout; -o writes it to a file instead.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runCompile,
}

func init() {
	flags.output = rootCmd.Flags().StringP("output", "o", "", "write the IR module to this file instead of stdout")
	flags.printIR = rootCmd.Flags().BoolP("print-ir", "S", false, "print the IR module to stdout (default when -o is not given)")
	flags.dumpTokens = rootCmd.Flags().Bool("dump-tokens", false, "print the token stream")
	flags.dumpParse = rootCmd.Flags().Bool("dump-parse", false, "print the SLR(1) parse trace")
	flags.lexOnly = rootCmd.Flags().Bool("lex-only", false, "tokenize only, do not parse or lower")
	flags.parseOnly = rootCmd.Flags().Bool("gtrace-only", false, "parse and print the trace, do not emit IR")
	flags.repl = rootCmd.Flags().Bool("repl", false, "enter an interactive line-at-a-time debug shell")
}

// Execute runs the root command, recovering a panic into a returned error so
// a programmer mistake surfaces the same way any other failure does: one
// line on stderr and exit code 1, never a raw stack trace to the user.
func Execute() (retErr error) {
	defer func() {
		if v := recover(); v != nil {
			retErr = fmt.Errorf("an unexpected error occurred: %v", v)
		}
	}()
	return rootCmd.Execute()
}

func runCompile(cmd *cobra.Command, args []string) error {
	if *flags.repl {
		return runRepl()
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	source, err := readSource(path)
	if err != nil {
		return fmt.Errorf("cannot read source: %w", err)
	}

	lx, lexErr := lexer.New()
	if lexErr != nil {
		return lexErr
	}
	tokens := lx.Tokenize(source)
	if *flags.dumpTokens {
		dumpTokens(tokens)
	}
	if *flags.lexOnly {
		return nil
	}

	g := grammar.NewCGrammar()
	g.ComputeFirstSets()
	g.ComputeFollowSets()
	p := slr.NewParser(g)

	trace, ok, root, perr := p.Parse(tokens)
	if *flags.dumpParse {
		dumpParseTrace(trace)
	}
	if !ok {
		if perr != nil {
			return perr
		}
		return fmt.Errorf("parse failed")
	}
	if *flags.parseOnly {
		return nil
	}

	prog := root.AsProgram()
	if prog == nil {
		return fmt.Errorf("parse succeeded without producing a program")
	}

	module, lowerErr := lower.Lower(prog)
	if lowerErr != nil {
		return lowerErr
	}

	return emitIR(module.String())
}

func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func emitIR(text string) error {
	toStdout := *flags.printIR || *flags.output == ""
	if *flags.output != "" {
		if err := os.WriteFile(*flags.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("cannot write %s: %w", *flags.output, err)
		}
	}
	if toStdout {
		fmt.Print(text)
	}
	return nil
}
