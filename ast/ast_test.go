package ast

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kestrel-lang/cfront"
)

func TestBuildVarDeclChain(t *testing.T) {
	// int a, b = 2;
	defA := BuildVarDefUninit(cfront.Location{}, []Value{StringValue("a")})
	defB := BuildVarDefInit(cfront.Location{}, []Value{StringValue("b"), {}, ExprValue(&LiteralInt{Value: 2})})
	list := BuildDefListItem(cfront.Location{}, []Value{defA})
	list = BuildDefListAppend(cfront.Location{}, []Value{list, {}, defB})

	decl := BuildVarDecl(cfront.Location{}, []Value{BasicTypeValue(Int), list}).AsDecl().(*VarDecl)
	if decl.IsConst {
		t.Fatalf("expected non-const decl")
	}
	if len(decl.Items) != 2 || decl.Items[0].Name != "a" || decl.Items[1].Name != "b" {
		t.Fatalf("unexpected items: %+v", decl.Items)
	}
	if decl.Items[0].Value != nil {
		t.Fatalf("expected a to be uninitialized")
	}
	lit, ok := decl.Items[1].Value.(*LiteralInt)
	if !ok || lit.Value != 2 {
		t.Fatalf("expected b = 2, got %+v", decl.Items[1].Value)
	}
}

func TestBuildFuncDefAndCall(t *testing.T) {
	// int add(int x, int y) { return x + y; }
	p1 := BuildFuncFParam(cfront.Location{}, []Value{BasicTypeValue(Int), StringValue("x")})
	p2 := BuildFuncFParam(cfront.Location{}, []Value{BasicTypeValue(Int), StringValue("y")})
	params := BuildFuncFParamsItem(cfront.Location{}, []Value{p1})
	params = BuildFuncFParamsAppend(cfront.Location{}, []Value{params, {}, p2})

	x := BuildExpLVal(cfront.Location{}, []Value{StringValue("x")})
	y := BuildExpLVal(cfront.Location{}, []Value{StringValue("y")})
	sum := BuildBinaryAdd(cfront.Location{}, []Value{x, {}, y})
	ret := BuildStmtReturn(cfront.Location{}, []Value{{}, sum})
	item := BuildBlockItemStmt(cfront.Location{}, []Value{ret})
	block := BuildBlockItemListItem(cfront.Location{}, []Value{item})
	block = BuildBlock(cfront.Location{}, []Value{{}, block, {}})

	fn := BuildFuncDef(cfront.Location{}, []Value{BasicTypeValue(Int), StringValue("add"), {}, params, {}, block}).
		AsFunc()
	if fn.Name != "add" || fn.Type != Int || len(fn.Params) != 2 {
		t.Fatalf("unexpected func: %+v", fn)
	}
	if len(fn.Body.Items) != 1 {
		t.Fatalf("expected one block item, got %d", len(fn.Body.Items))
	}

	// add(1, 2)
	arg1 := BuildFuncRParamsItem(cfront.Location{}, []Value{ExprValue(&LiteralInt{Value: 1})})
	arg2 := BuildFuncRParamsItem(cfront.Location{}, []Value{ExprValue(&LiteralInt{Value: 2})})
	args := BuildFuncRParamsAppend(cfront.Location{}, []Value{arg1, {}, arg2})
	call := BuildExpCall(cfront.Location{}, []Value{StringValue("add"), {}, args, {}}).AsExpr().(*CallExpr)
	if call.Callee != "add" || len(call.Args) != 2 {
		t.Fatalf("unexpected call: %+v", call)
	}
}

func TestBuildProgramGlobalsAndFunctions(t *testing.T) {
	decl := BuildVarDecl(cfront.Location{}, []Value{
		BasicTypeValue(Int),
		VarInitsValue([]VarInit{{Name: "g"}}),
	})
	prog := BuildCompUnitListItem(cfront.Location{}, []Value{decl}).AsProgram()
	if len(prog.Globals) != 1 || len(prog.Functions) != 0 {
		t.Fatalf("unexpected program: %+v", prog)
	}

	fn := FuncValue(&FuncDef{Name: "main", Type: Void, Body: &BlockStmt{}})
	progVal := BuildCompUnitListAppend(cfront.Location{}, []Value{ProgramValue(prog), fn})
	prog = progVal.AsProgram()
	if len(prog.Functions) != 1 || prog.Functions[0].Name != "main" {
		t.Fatalf("expected main appended, got %+v", prog.Functions)
	}
}

func TestPrintProducesIndentedTree(t *testing.T) {
	prog := &Program{
		Functions: []*FuncDef{{
			Name: "main",
			Type: Int,
			Body: &BlockStmt{Items: []BlockItem{
				{Stmt: &ReturnStmt{Value: &LiteralInt{Value: 0}}},
			}},
		}},
	}
	var buf bytes.Buffer
	Print(prog, &buf)
	out := buf.String()
	if !strings.Contains(out, "FuncDef int main") {
		t.Fatalf("expected FuncDef header, got:\n%s", out)
	}
	if !strings.Contains(out, "ReturnStmt") || !strings.Contains(out, "Int 0") {
		t.Fatalf("expected return/int nodes, got:\n%s", out)
	}
}
