package grammar

import (
	"github.com/kestrel-lang/cfront"
	"github.com/kestrel-lang/cfront/ast"
)

// NewCGrammar builds the complete C-subset grammar, with every production's
// semantic action wired to the matching Build* function in package ast.
func NewCGrammar() *Grammar {
	g := New("Program")

	// Program -> CompUnit
	g.AddProduction("Program", []Symbol{NT("CompUnit")}, ast.BuildSingleForward)

	// CompUnit -> epsilon | CompUnitList
	g.AddProduction("CompUnit", []Symbol{Eps()}, func(cfront.Location, []ast.Value) ast.Value {
		return ast.ProgramValue(&ast.Program{})
	})
	g.AddProduction("CompUnit", []Symbol{NT("CompUnitList")}, ast.BuildSingleForward)
	g.AddProduction("CompUnitList", []Symbol{NT("CompUnitItem")}, ast.BuildCompUnitListItem)
	g.AddProduction("CompUnitList", []Symbol{NT("CompUnitList"), NT("CompUnitItem")}, ast.BuildCompUnitListAppend)
	g.AddProduction("CompUnitItem", []Symbol{NT("Decl")}, ast.BuildSingleForward)
	g.AddProduction("CompUnitItem", []Symbol{NT("FuncDef")}, ast.BuildSingleForward)

	// Decl -> ConstDecl | VarDecl
	g.AddProduction("Decl", []Symbol{NT("ConstDecl")}, ast.BuildSingleForward)
	g.AddProduction("Decl", []Symbol{NT("VarDecl")}, ast.BuildSingleForward)

	// ConstDecl -> 'const' BType ConstDefList ';'
	g.AddProduction("ConstDecl", []Symbol{T("const"), NT("BType"), NT("ConstDefList"), T(";")}, ast.BuildConstDecl)
	g.AddProduction("ConstDefList", []Symbol{NT("ConstDef")}, ast.BuildDefListItem)
	g.AddProduction("ConstDefList", []Symbol{NT("ConstDefList"), T(","), NT("ConstDef")}, ast.BuildDefListAppend)

	// BType -> 'int' | 'float'
	g.AddProduction("BType", []Symbol{T("int")}, ast.BuildTypeInt)
	g.AddProduction("BType", []Symbol{T("float")}, ast.BuildTypeFloat)

	// ConstDef -> Ident '=' ConstInitVal
	g.AddProduction("ConstDef", []Symbol{T("Ident"), T("="), NT("ConstInitVal")}, ast.BuildConstDef)
	g.AddProduction("ConstInitVal", []Symbol{NT("ConstExp")}, ast.BuildSingleForward)

	// VarDecl -> BType VarDefList ';'
	g.AddProduction("VarDecl", []Symbol{NT("BType"), NT("VarDefList"), T(";")}, ast.BuildVarDecl)
	g.AddProduction("VarDefList", []Symbol{NT("VarDef")}, ast.BuildDefListItem)
	g.AddProduction("VarDefList", []Symbol{NT("VarDefList"), T(","), NT("VarDef")}, ast.BuildDefListAppend)

	// VarDef -> Ident | Ident '=' InitVal
	g.AddProduction("VarDef", []Symbol{T("Ident")}, ast.BuildVarDefUninit)
	g.AddProduction("VarDef", []Symbol{T("Ident"), T("="), NT("InitVal")}, ast.BuildVarDefInit)
	g.AddProduction("InitVal", []Symbol{NT("Exp")}, ast.BuildSingleForward)

	// FuncDef -> FuncType Ident '(' ')' Block | FuncType Ident '(' FuncFParams ')' Block
	g.AddProduction("FuncDef", []Symbol{NT("FuncType"), T("Ident"), T("("), T(")"), NT("Block")}, ast.BuildFuncDefNoParams)
	g.AddProduction("FuncDef", []Symbol{NT("FuncType"), T("Ident"), T("("), NT("FuncFParams"), T(")"), NT("Block")}, ast.BuildFuncDef)

	// FuncType -> 'void' | func_int | func_float
	g.AddProduction("FuncType", []Symbol{T("void")}, ast.BuildTypeVoid)
	g.AddProduction("FuncType", []Symbol{T("func_int")}, ast.BuildTypeInt)
	g.AddProduction("FuncType", []Symbol{T("func_float")}, ast.BuildTypeFloat)

	// FuncFParams -> FuncFParam (',' FuncFParam)*
	g.AddProduction("FuncFParams", []Symbol{NT("FuncFParam")}, ast.BuildFuncFParamsItem)
	g.AddProduction("FuncFParams", []Symbol{NT("FuncFParams"), T(","), NT("FuncFParam")}, ast.BuildFuncFParamsAppend)
	g.AddProduction("FuncFParam", []Symbol{NT("BType"), T("Ident")}, ast.BuildFuncFParam)

	// Block -> '{' '}' | '{' BlockItemList '}'
	g.AddProduction("Block", []Symbol{T("{"), T("}")}, ast.BuildBlockEmpty)
	g.AddProduction("Block", []Symbol{T("{"), NT("BlockItemList"), T("}")}, ast.BuildBlock)
	g.AddProduction("BlockItemList", []Symbol{NT("BlockItem")}, ast.BuildBlockItemListItem)
	g.AddProduction("BlockItemList", []Symbol{NT("BlockItemList"), NT("BlockItem")}, ast.BuildBlockItemListAppend)

	// BlockItem -> Decl | Stmt
	g.AddProduction("BlockItem", []Symbol{NT("Decl")}, ast.BuildBlockItemDecl)
	g.AddProduction("BlockItem", []Symbol{NT("Stmt")}, ast.BuildBlockItemStmt)

	// Stmt rules
	g.AddProduction("Stmt", []Symbol{NT("LVal"), T("="), NT("Exp"), T(";")}, ast.BuildStmtAssign)
	g.AddProduction("Stmt", []Symbol{NT("Exp"), T(";")}, ast.BuildStmtExp)
	g.AddProduction("Stmt", []Symbol{T(";")}, ast.BuildStmtEmpty)
	g.AddProduction("Stmt", []Symbol{NT("Block")}, ast.BuildSingleForward)
	g.AddProduction("Stmt", []Symbol{T("if"), T("("), NT("Cond"), T(")"), NT("Stmt")}, ast.BuildStmtIf)
	g.AddProduction("Stmt", []Symbol{T("if"), T("("), NT("Cond"), T(")"), NT("Stmt"), T("else"), NT("Stmt")}, ast.BuildStmtIfElse)
	g.AddProduction("Stmt", []Symbol{T("return"), NT("Exp"), T(";")}, ast.BuildStmtReturn)
	g.AddProduction("Stmt", []Symbol{T("return"), T(";")}, ast.BuildStmtReturnVoid)

	// Exp -> LOrExp, Cond -> LOrExp
	g.AddProduction("Exp", []Symbol{NT("LOrExp")}, ast.BuildSingleForward)
	g.AddProduction("Cond", []Symbol{NT("LOrExp")}, ast.BuildSingleForward)

	// LVal -> Ident
	g.AddProduction("LVal", []Symbol{T("Ident")}, ast.BuildLValIdent)

	// PrimaryExp -> '(' Exp ')' | LVal | Number
	g.AddProduction("PrimaryExp", []Symbol{T("("), NT("Exp"), T(")")}, func(_ cfront.Location, rhs []ast.Value) ast.Value {
		return rhs[1]
	})
	g.AddProduction("PrimaryExp", []Symbol{NT("LVal")}, ast.BuildExpLVal)
	g.AddProduction("PrimaryExp", []Symbol{NT("Number")}, ast.BuildSingleForward)

	// Number -> IntConst | FloatConst
	g.AddProduction("Number", []Symbol{NT("IntConst")}, ast.BuildExpInt)
	g.AddProduction("Number", []Symbol{NT("FloatConst")}, ast.BuildExpFloat)

	// UnaryExp -> PrimaryExp | Ident '(' FuncRParamsOpt ')' | UnaryOp UnaryExp
	g.AddProduction("UnaryExp", []Symbol{NT("PrimaryExp")}, ast.BuildSingleForward)
	g.AddProduction("UnaryExp", []Symbol{T("Ident"), T("("), NT("FuncRParamsOpt"), T(")")}, ast.BuildExpCall)
	g.AddProduction("UnaryExp", []Symbol{NT("UnaryOp"), NT("UnaryExp")}, ast.BuildUnaryExp)

	// FuncRParamsOpt -> epsilon | FuncRParams
	g.AddProduction("FuncRParamsOpt", []Symbol{Eps()}, func(cfront.Location, []ast.Value) ast.Value {
		return ast.VarInitsValue(nil)
	})
	g.AddProduction("FuncRParamsOpt", []Symbol{NT("FuncRParams")}, ast.BuildSingleForward)

	// UnaryOp -> '+' | '-' | '!'
	g.AddProduction("UnaryOp", []Symbol{T("+")}, ast.BuildUnaryOpPositive)
	g.AddProduction("UnaryOp", []Symbol{T("-")}, ast.BuildUnaryOpNegative)
	g.AddProduction("UnaryOp", []Symbol{T("!")}, ast.BuildUnaryOpNot)

	// FuncRParams -> FuncRParam (',' FuncRParam)*
	g.AddProduction("FuncRParams", []Symbol{NT("FuncRParam")}, ast.BuildFuncRParamsItem)
	g.AddProduction("FuncRParams", []Symbol{NT("FuncRParams"), T(","), NT("FuncRParam")}, ast.BuildFuncRParamsAppend)
	g.AddProduction("FuncRParam", []Symbol{NT("Exp")}, ast.BuildSingleForward)

	// MulExp -> UnaryExp | MulExp ('*'|'/'|'%') UnaryExp
	g.AddProduction("MulExp", []Symbol{NT("UnaryExp")}, ast.BuildSingleForward)
	g.AddProduction("MulExp", []Symbol{NT("MulExp"), T("*"), NT("UnaryExp")}, ast.BuildBinaryMul)
	g.AddProduction("MulExp", []Symbol{NT("MulExp"), T("/"), NT("UnaryExp")}, ast.BuildBinaryDiv)
	g.AddProduction("MulExp", []Symbol{NT("MulExp"), T("%"), NT("UnaryExp")}, ast.BuildBinaryMod)

	// AddExp -> MulExp | AddExp ('+'|'-') MulExp
	g.AddProduction("AddExp", []Symbol{NT("MulExp")}, ast.BuildSingleForward)
	g.AddProduction("AddExp", []Symbol{NT("AddExp"), T("+"), NT("MulExp")}, ast.BuildBinaryAdd)
	g.AddProduction("AddExp", []Symbol{NT("AddExp"), T("-"), NT("MulExp")}, ast.BuildBinarySub)

	// RelExp -> AddExp | RelExp ('<'|'>'|'<='|'>=') AddExp
	g.AddProduction("RelExp", []Symbol{NT("AddExp")}, ast.BuildSingleForward)
	g.AddProduction("RelExp", []Symbol{NT("RelExp"), T("<"), NT("AddExp")}, ast.BuildBinaryLt)
	g.AddProduction("RelExp", []Symbol{NT("RelExp"), T(">"), NT("AddExp")}, ast.BuildBinaryGt)
	g.AddProduction("RelExp", []Symbol{NT("RelExp"), T("<="), NT("AddExp")}, ast.BuildBinaryLe)
	g.AddProduction("RelExp", []Symbol{NT("RelExp"), T(">="), NT("AddExp")}, ast.BuildBinaryGe)

	// EqExp -> RelExp | EqExp ('=='|'!=') RelExp
	g.AddProduction("EqExp", []Symbol{NT("RelExp")}, ast.BuildSingleForward)
	g.AddProduction("EqExp", []Symbol{NT("EqExp"), T("=="), NT("RelExp")}, ast.BuildBinaryEq)
	g.AddProduction("EqExp", []Symbol{NT("EqExp"), T("!="), NT("RelExp")}, ast.BuildBinaryNeq)

	// LAndExp -> EqExp | LAndExp '&&' EqExp
	g.AddProduction("LAndExp", []Symbol{NT("EqExp")}, ast.BuildSingleForward)
	g.AddProduction("LAndExp", []Symbol{NT("LAndExp"), T("&&"), NT("EqExp")}, ast.BuildBinaryAnd)

	// LOrExp -> LAndExp | LOrExp '||' LAndExp
	g.AddProduction("LOrExp", []Symbol{NT("LAndExp")}, ast.BuildSingleForward)
	g.AddProduction("LOrExp", []Symbol{NT("LOrExp"), T("||"), NT("LAndExp")}, ast.BuildBinaryOr)

	// ConstExp -> AddExp
	g.AddProduction("ConstExp", []Symbol{NT("AddExp")}, ast.BuildSingleForward)

	// IntConst -> LiteralInt, FloatConst -> LiteralFloat
	g.AddProduction("IntConst", []Symbol{T("LiteralInt")}, ast.BuildSingleForward)
	g.AddProduction("FloatConst", []Symbol{T("LiteralFloat")}, ast.BuildSingleForward)

	mapCTokens(g)
	g.ComputeFirstSets()
	g.ComputeFollowSets()
	return g
}
