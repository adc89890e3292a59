package ast

import "github.com/kestrel-lang/cfront"

// Builder constructs the semantic Value of a production's left-hand symbol
// from the Values of its right-hand side, in order. loc is the source
// location of the production's first right-hand symbol, used to stamp the
// node being built (for an empty RHS the SLR(1) driver passes the location
// of the current lookahead token). One Builder is registered per grammar production; see package
// grammar's production table for the wiring.
type Builder func(loc cfront.Location, rhs []Value) Value

func mk(l cfront.Location) base { return base{Loc: l} }

// BuildSingleForward implements X -> Y productions that carry no semantic
// action of their own: the single child's Value passes through unchanged.
func BuildSingleForward(_ cfront.Location, rhs []Value) Value { return rhs[0] }

// --- Types -----------------------------------------------------------------

func BuildTypeInt(cfront.Location, []Value) Value   { return BasicTypeValue(Int) }
func BuildTypeFloat(cfront.Location, []Value) Value { return BasicTypeValue(Float) }
func BuildTypeVoid(cfront.Location, []Value) Value  { return BasicTypeValue(Void) }

// --- Program -----------------------------------------------------------------

func addToProgram(prog *Program, item Value) {
	switch item.Kind {
	case KindDecl:
		prog.Globals = append(prog.Globals, item.AsDecl())
	case KindFunc:
		prog.Functions = append(prog.Functions, item.AsFunc())
	}
}

// BuildCompUnitListItem starts a new Program from the first top-level
// declaration or function definition.
func BuildCompUnitListItem(_ cfront.Location, rhs []Value) Value {
	prog := &Program{}
	addToProgram(prog, rhs[0])
	return ProgramValue(prog)
}

// BuildCompUnitListAppend folds one more top-level item into an
// already-started Program.
func BuildCompUnitListAppend(_ cfront.Location, rhs []Value) Value {
	prog := rhs[0].AsProgram()
	addToProgram(prog, rhs[1])
	return ProgramValue(prog)
}

// --- Declarations ------------------------------------------------------------

// BuildConstDecl builds 'const' Type ConstDefList ';'.
func BuildConstDecl(loc cfront.Location, rhs []Value) Value {
	return DeclValue(&VarDecl{
		base:    mk(loc),
		IsConst: true,
		Type:    rhs[1].AsBasicType(),
		Items:   rhs[2].AsVarInits(),
	})
}

// BuildVarDecl builds Type VarDefList ';'.
func BuildVarDecl(loc cfront.Location, rhs []Value) Value {
	return DeclValue(&VarDecl{
		base:  mk(loc),
		Type:  rhs[0].AsBasicType(),
		Items: rhs[1].AsVarInits(),
	})
}

func BuildDefListItem(_ cfront.Location, rhs []Value) Value { return rhs[0] }

// BuildDefListAppend implements DefList -> DefList ',' Def by concatenating
// the single-element VarInit slice produced for Def onto the running list.
func BuildDefListAppend(_ cfront.Location, rhs []Value) Value {
	list := rhs[0].AsVarInits()
	list = append(list, rhs[2].AsVarInits()...)
	return VarInitsValue(list)
}

func BuildConstDef(_ cfront.Location, rhs []Value) Value {
	return VarInitsValue([]VarInit{{Name: rhs[0].AsString(), Value: rhs[2].AsExpr()}})
}

func BuildVarDefUninit(_ cfront.Location, rhs []Value) Value {
	return VarInitsValue([]VarInit{{Name: rhs[0].AsString()}})
}

func BuildVarDefInit(_ cfront.Location, rhs []Value) Value {
	return VarInitsValue([]VarInit{{Name: rhs[0].AsString(), Value: rhs[2].AsExpr()}})
}

// --- Functions ---------------------------------------------------------------

// BuildFuncDef builds Type Ident '(' FuncFParams ')' Block.
func BuildFuncDef(loc cfront.Location, rhs []Value) Value {
	return FuncValue(&FuncDef{
		base:   mk(loc),
		Type:   rhs[0].AsBasicType(),
		Name:   rhs[1].AsString(),
		Params: rhs[3].AsParams(),
		Body:   rhs[5].AsBlock(),
	})
}

// BuildFuncDefNoParams builds Type Ident '(' ')' Block.
func BuildFuncDefNoParams(loc cfront.Location, rhs []Value) Value {
	return FuncValue(&FuncDef{
		base: mk(loc),
		Type: rhs[0].AsBasicType(),
		Name: rhs[1].AsString(),
		Body: rhs[4].AsBlock(),
	})
}

func BuildFuncFParamsItem(_ cfront.Location, rhs []Value) Value { return rhs[0] }

func BuildFuncFParamsAppend(_ cfront.Location, rhs []Value) Value {
	list := rhs[0].AsParams()
	list = append(list, rhs[2].AsParams()...)
	return ParamsValue(list)
}

func BuildFuncFParam(_ cfront.Location, rhs []Value) Value {
	return ParamsValue([]Param{{Type: rhs[0].AsBasicType(), Name: rhs[1].AsString()}})
}

// --- Blocks ------------------------------------------------------------------
//
// Strategy: a BlockItemList under construction is carried around as a
// *BlockStmt, since the Value union has no bare "list of BlockItem" slot of
// its own.

// BuildBlock builds '{' BlockItemList '}'.
func BuildBlock(_ cfront.Location, rhs []Value) Value { return rhs[1] }

func BuildBlockEmpty(loc cfront.Location, _ []Value) Value {
	return BlockValue(&BlockStmt{base: mk(loc)})
}

func BuildBlockItemListItem(loc cfront.Location, rhs []Value) Value {
	return BlockValue(&BlockStmt{base: mk(loc), Items: []BlockItem{rhs[0].AsBlockItem()}})
}

func BuildBlockItemListAppend(_ cfront.Location, rhs []Value) Value {
	block := rhs[0].AsBlock()
	block.Items = append(block.Items, rhs[1].AsBlockItem())
	return BlockValue(block)
}

func BuildBlockItemDecl(_ cfront.Location, rhs []Value) Value {
	return BlockItemValue(BlockItem{Decl: rhs[0].AsDecl()})
}

func BuildBlockItemStmt(_ cfront.Location, rhs []Value) Value {
	return BlockItemValue(BlockItem{Stmt: rhs[0].AsStmt()})
}

// --- Statements --------------------------------------------------------------

func BuildStmtAssign(loc cfront.Location, rhs []Value) Value {
	return StmtValue(&AssignStmt{base: mk(loc), Target: rhs[0].AsString(), Expr: rhs[2].AsExpr()})
}

func BuildStmtExp(loc cfront.Location, rhs []Value) Value {
	return StmtValue(&ExprStmt{base: mk(loc), Expr: rhs[0].AsExpr()})
}

func BuildStmtEmpty(loc cfront.Location, _ []Value) Value {
	return StmtValue(&EmptyStmt{base: mk(loc)})
}

// BuildStmtIf builds 'if' '(' Exp ')' Stmt.
func BuildStmtIf(loc cfront.Location, rhs []Value) Value {
	return StmtValue(&IfStmt{base: mk(loc), Condition: rhs[2].AsExpr(), ThenBranch: rhs[4].AsStmt()})
}

// BuildStmtIfElse builds 'if' '(' Exp ')' Stmt 'else' Stmt.
func BuildStmtIfElse(loc cfront.Location, rhs []Value) Value {
	return StmtValue(&IfStmt{
		base:       mk(loc),
		Condition:  rhs[2].AsExpr(),
		ThenBranch: rhs[4].AsStmt(),
		ElseBranch: rhs[6].AsStmt(),
	})
}

func BuildStmtReturn(loc cfront.Location, rhs []Value) Value {
	return StmtValue(&ReturnStmt{base: mk(loc), Value: rhs[1].AsExpr()})
}

func BuildStmtReturnVoid(loc cfront.Location, _ []Value) Value {
	return StmtValue(&ReturnStmt{base: mk(loc)})
}

// --- Expressions -------------------------------------------------------------

func BuildExpInt(loc cfront.Location, rhs []Value) Value {
	return ExprValue(&LiteralInt{base: mk(loc), Value: rhs[0].AsInt()})
}

func BuildExpFloat(loc cfront.Location, rhs []Value) Value {
	return ExprValue(&LiteralFloat{base: mk(loc), Value: rhs[0].AsFloat()})
}

func BuildLValIdent(_ cfront.Location, rhs []Value) Value { return rhs[0] }

func BuildExpLVal(loc cfront.Location, rhs []Value) Value {
	return ExprValue(&IdentifierExpr{base: mk(loc), Name: rhs[0].AsString()})
}

// BuildFuncRParamsItem wraps a bare argument expression in a VarInit with an
// empty Name, reusing the VarInit-slice shape used for definition lists so
// call arguments thread through the same append-list productions.
func BuildFuncRParamsItem(_ cfront.Location, rhs []Value) Value {
	return VarInitsValue([]VarInit{{Value: rhs[0].AsExpr()}})
}

func BuildFuncRParamsAppend(_ cfront.Location, rhs []Value) Value {
	list := rhs[0].AsVarInits()
	list = append(list, rhs[2].AsVarInits()...)
	return VarInitsValue(list)
}

func BuildExpCall(loc cfront.Location, rhs []Value) Value {
	call := &CallExpr{base: mk(loc), Callee: rhs[0].AsString()}
	if rhs[2].Kind == KindVarInits {
		for _, w := range rhs[2].AsVarInits() {
			call.Args = append(call.Args, w.Value)
		}
	}
	return ExprValue(call)
}

func BuildExpCallVoid(loc cfront.Location, rhs []Value) Value {
	return ExprValue(&CallExpr{base: mk(loc), Callee: rhs[0].AsString()})
}

func BuildUnaryOpPositive(cfront.Location, []Value) Value { return UnaryOpValue(Positive) }
func BuildUnaryOpNegative(cfront.Location, []Value) Value { return UnaryOpValue(Negative) }
func BuildUnaryOpNot(cfront.Location, []Value) Value      { return UnaryOpValue(LogicalNot) }

func BuildUnaryExp(loc cfront.Location, rhs []Value) Value {
	return ExprValue(&UnaryExpr{base: mk(loc), Op: rhs[0].AsUnaryOp(), Operand: rhs[1].AsExpr()})
}

func makeBinary(loc cfront.Location, op BinaryOp, rhs []Value) Value {
	return ExprValue(&BinaryExpr{base: mk(loc), Op: op, LHS: rhs[0].AsExpr(), RHS: rhs[2].AsExpr()})
}

func BuildBinaryAdd(loc cfront.Location, rhs []Value) Value { return makeBinary(loc, Add, rhs) }
func BuildBinarySub(loc cfront.Location, rhs []Value) Value { return makeBinary(loc, Sub, rhs) }
func BuildBinaryMul(loc cfront.Location, rhs []Value) Value { return makeBinary(loc, Mul, rhs) }
func BuildBinaryDiv(loc cfront.Location, rhs []Value) Value { return makeBinary(loc, Div, rhs) }
func BuildBinaryMod(loc cfront.Location, rhs []Value) Value { return makeBinary(loc, Mod, rhs) }
func BuildBinaryLt(loc cfront.Location, rhs []Value) Value  { return makeBinary(loc, Lt, rhs) }
func BuildBinaryGt(loc cfront.Location, rhs []Value) Value  { return makeBinary(loc, Gt, rhs) }
func BuildBinaryLe(loc cfront.Location, rhs []Value) Value  { return makeBinary(loc, Le, rhs) }
func BuildBinaryGe(loc cfront.Location, rhs []Value) Value  { return makeBinary(loc, Ge, rhs) }
func BuildBinaryEq(loc cfront.Location, rhs []Value) Value  { return makeBinary(loc, Eq, rhs) }
func BuildBinaryNeq(loc cfront.Location, rhs []Value) Value { return makeBinary(loc, Neq, rhs) }
func BuildBinaryAnd(loc cfront.Location, rhs []Value) Value { return makeBinary(loc, And, rhs) }
func BuildBinaryOr(loc cfront.Location, rhs []Value) Value  { return makeBinary(loc, Or, rhs) }
