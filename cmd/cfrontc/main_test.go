package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetFlags restores every flag to its zero value between tests, since
// flags is a package-level var shared by the single cobra command.
func resetFlags(t *testing.T) {
	t.Helper()
	output, printIR, dumpTokens, dumpParse, lexOnly, parseOnly, repl := "", false, false, false, false, false, false
	flags.output = &output
	flags.printIR = &printIR
	flags.dumpTokens = &dumpTokens
	flags.dumpParse = &dumpParse
	flags.lexOnly = &lexOnly
	flags.parseOnly = &parseOnly
	flags.repl = &repl
}

func writeTempSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, "input.c")
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	runErr := fn()
	w.Close()
	os.Stdout = old
	out, _ := io.ReadAll(r)
	r.Close()
	return string(out), runErr
}

func TestRunCompilePrintsIRByDefault(t *testing.T) {
	resetFlags(t)
	filename := writeTempSource(t, "int main() { int a = 1 + 2 * 3; return a; }")

	out, err := captureStdout(t, func() error {
		return runCompile(nil, []string{filename})
	})
	if err != nil {
		t.Fatalf("runCompile: %v", err)
	}
	if !strings.Contains(out, "define i32 @main()") {
		t.Fatalf("expected the IR dump to define main, got:\n%s", out)
	}
}

func TestRunCompileDumpTokens(t *testing.T) {
	resetFlags(t)
	*flags.dumpTokens = true
	*flags.lexOnly = true
	filename := writeTempSource(t, "int main() { return 0; }")

	out, err := captureStdout(t, func() error {
		return runCompile(nil, []string{filename})
	})
	if err != nil {
		t.Fatalf("runCompile: %v", err)
	}
	if !strings.Contains(out, "Token(Type::FuncDefInt") {
		t.Fatalf("expected a token dump line, got:\n%s", out)
	}
}

func TestRunCompileWritesOutputFile(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.ir")
	*flags.output = outPath
	filename := writeTempSource(t, "int main() { return 0; }")

	if _, err := captureStdout(t, func() error {
		return runCompile(nil, []string{filename})
	}); err != nil {
		t.Fatalf("runCompile: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if !strings.Contains(string(data), "define i32 @main()") {
		t.Fatalf("expected the output file to contain IR, got:\n%s", data)
	}
}

func TestRunCompileReportsLexErrorAsParseFailure(t *testing.T) {
	resetFlags(t)
	filename := writeTempSource(t, "int main(){ return @; }")

	_, err := captureStdout(t, func() error {
		return runCompile(nil, []string{filename})
	})
	if err == nil {
		t.Fatalf("expected a ParseError for the invalid '@' token")
	}
}

func TestRunCompileReportsLoweringError(t *testing.T) {
	resetFlags(t)
	filename := writeTempSource(t, "const int K = 5; int main(){ K = 6; return 0; }")

	_, err := captureStdout(t, func() error {
		return runCompile(nil, []string{filename})
	})
	if err == nil {
		t.Fatalf("expected a LoweringError for assignment to a const binding")
	}
}
