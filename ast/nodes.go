package ast

import "github.com/kestrel-lang/cfront"

// Node is implemented by every AST node.
type Node interface {
	Pos() cfront.Location
}

// Expr is any node producing a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node with statement semantics.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is any node introducing a name at global or block scope.
type Decl interface {
	Node
	declNode()
}

type base struct {
	Loc cfront.Location
}

func (b base) Pos() cfront.Location { return b.Loc }

// --- Expressions --------------------------------------------------------

// LiteralInt is an integer literal.
type LiteralInt struct {
	base
	Value int
}

// LiteralFloat is a floating-point literal.
type LiteralFloat struct {
	base
	Value float64
}

// IdentifierExpr references a variable or parameter by name.
type IdentifierExpr struct {
	base
	Name string
}

// UnaryExpr applies a prefix operator to a single operand.
type UnaryExpr struct {
	base
	Op      UnaryOp
	Operand Expr
}

// BinaryExpr applies an infix operator to two operands.
type BinaryExpr struct {
	base
	Op       BinaryOp
	LHS, RHS Expr
}

// CallExpr invokes a function by name with zero or more argument
// expressions. The C subset has no first-class functions, so the callee is
// resolved by name rather than by a callee expression.
type CallExpr struct {
	base
	Callee string
	Args   []Expr
}

func (*LiteralInt) exprNode()     {}
func (*LiteralFloat) exprNode()   {}
func (*IdentifierExpr) exprNode() {}
func (*UnaryExpr) exprNode()      {}
func (*BinaryExpr) exprNode()     {}
func (*CallExpr) exprNode()       {}

// --- Statements ----------------------------------------------------------

// EmptyStmt is a lone ';'.
type EmptyStmt struct{ base }

// ExprStmt evaluates an expression and discards its result.
type ExprStmt struct {
	base
	Expr Expr
}

// AssignStmt stores the value of Expr into the variable named Target.
type AssignStmt struct {
	base
	Target string
	Expr   Expr
}

// ReturnStmt returns from the enclosing function. Value is nil for a bare
// 'return;' in a void function.
type ReturnStmt struct {
	base
	Value Expr
}

// IfStmt is a conditional with an optional else branch.
type IfStmt struct {
	base
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt // nil if there is no else clause
}

// BlockItem is either a Decl or a Stmt; exactly one of the two fields is
// non-nil. Kept as a discriminated struct (rather than an interface) since
// block bodies are built incrementally by the parser one item at a time and
// need to distinguish declarations from statements when a lowering pass
// opens a new scope.
type BlockItem struct {
	Decl Decl
	Stmt Stmt
}

// IsDecl reports whether this item wraps a declaration.
func (b BlockItem) IsDecl() bool { return b.Decl != nil }

// BlockStmt is a brace-delimited sequence of declarations and statements
// introducing a new lexical scope.
type BlockStmt struct {
	base
	Items []BlockItem
}

func (*EmptyStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()   {}
func (*AssignStmt) stmtNode() {}
func (*ReturnStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*BlockStmt) stmtNode()  {}

// --- Declarations ----------------------------------------------------------

// VarInit pairs a declared name with an optional initializer expression.
// Value is nil for an uninitialized variable declaration. The same shape is
// reused, with Name left empty, to carry a bare call-argument expression
// through the FuncRParams production family.
type VarInit struct {
	Name  string
	Value Expr
}

// VarDecl declares one or more variables (or, if IsConst, constants) of a
// single BasicType.
type VarDecl struct {
	base
	IsConst bool
	Type    BasicType
	Items   []VarInit
}

func (*VarDecl) declNode() {}

// --- Functions and the top-level program ---------------------------------

// Param is one formal parameter of a function definition.
type Param struct {
	Type BasicType
	Name string
}

// FuncDef is a complete function definition: return type, name, formal
// parameters and body.
type FuncDef struct {
	base
	Type   BasicType
	Name   string
	Params []Param
	Body   *BlockStmt
}

// Program is the root of the tree: global declarations and function
// definitions in source order, kept in two separate slices as in the
// grammar's CompUnit alternation.
type Program struct {
	Globals   []Decl
	Functions []*FuncDef
}
