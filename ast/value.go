package ast

// ValueKind discriminates the payload a Value carries. Mirrors the
// alternatives of the original grammar's tagged semantic-value union, minus
// the empty/monostate case: a Value with no meaningful payload simply isn't
// produced by any builder.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
	KindBasicType
	KindUnaryOp
	KindBlockItem
	KindVarInits
	KindParams
	KindExpr
	KindStmt
	KindDecl
	KindBlock
	KindFunc
	KindProgram

	// KindContinuation is synthetic: it is never produced by a
	// grammar_rules.cpp-grounded builder. It is the payload Grammar's LL(1)
	// normalization pass uses to stitch an original production's Builder
	// back together after that production has been rewritten (by
	// left-recursion elimination or left-factoring) into a shape whose
	// right-hand side no longer matches what the original Builder expects.
	KindContinuation
)

// ContFunc receives the Values of the symbols that preceded a rewritten
// production's tail in the original, un-rewritten production, and produces
// that production's original result.
type ContFunc func(prefix []Value) Value

// Value is the semantic value attached to a grammar symbol as it is shifted
// or reduced. A parser driver collects the Values of a production's
// right-hand side into a slice and passes it to that production's Builder;
// the Builder returns a single Value for the reduced left-hand symbol. Using
// one struct with a Kind tag rather than Go's interface{} lets a Builder
// check Kind before reading the payload, as BuildExpCall does. The As*
// accessors themselves do not check Kind: on a mismatch they return the
// zero value of the requested payload.
type Value struct {
	Kind ValueKind

	str       string
	i         int
	f         float64
	basicType BasicType
	unaryOp   UnaryOp
	blockItem BlockItem
	varInits  []VarInit
	params    []Param
	expr      Expr
	stmt      Stmt
	decl      Decl
	block     *BlockStmt
	fn        *FuncDef
	program   *Program
	cont      ContFunc
}

func StringValue(s string) Value        { return Value{Kind: KindString, str: s} }
func IntValue(i int) Value              { return Value{Kind: KindInt, i: i} }
func FloatValue(f float64) Value        { return Value{Kind: KindFloat, f: f} }
func BasicTypeValue(t BasicType) Value  { return Value{Kind: KindBasicType, basicType: t} }
func UnaryOpValue(o UnaryOp) Value      { return Value{Kind: KindUnaryOp, unaryOp: o} }
func BlockItemValue(b BlockItem) Value  { return Value{Kind: KindBlockItem, blockItem: b} }
func VarInitsValue(v []VarInit) Value   { return Value{Kind: KindVarInits, varInits: v} }
func ParamsValue(p []Param) Value       { return Value{Kind: KindParams, params: p} }
func ExprValue(e Expr) Value            { return Value{Kind: KindExpr, expr: e} }
func StmtValue(s Stmt) Value            { return Value{Kind: KindStmt, stmt: s} }
func DeclValue(d Decl) Value            { return Value{Kind: KindDecl, decl: d} }
func BlockValue(b *BlockStmt) Value     { return Value{Kind: KindBlock, block: b} }
func FuncValue(f *FuncDef) Value        { return Value{Kind: KindFunc, fn: f} }
func ProgramValue(p *Program) Value     { return Value{Kind: KindProgram, program: p} }
func ContinuationValue(c ContFunc) Value { return Value{Kind: KindContinuation, cont: c} }

func (v Value) AsString() string       { return v.str }
func (v Value) AsInt() int             { return v.i }
func (v Value) AsFloat() float64       { return v.f }
func (v Value) AsBasicType() BasicType { return v.basicType }
func (v Value) AsUnaryOp() UnaryOp     { return v.unaryOp }
func (v Value) AsBlockItem() BlockItem { return v.blockItem }
func (v Value) AsVarInits() []VarInit  { return v.varInits }
func (v Value) AsParams() []Param      { return v.params }
func (v Value) AsExpr() Expr           { return v.expr }
func (v Value) AsStmt() Stmt           { return v.stmt }
func (v Value) AsDecl() Decl           { return v.decl }
func (v Value) AsBlock() *BlockStmt    { return v.block }
func (v Value) AsFunc() *FuncDef       { return v.fn }
func (v Value) AsProgram() *Program    { return v.program }
func (v Value) AsContinuation() ContFunc { return v.cont }
