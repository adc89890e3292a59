package lower

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/kestrel-lang/cfront"
	"github.com/kestrel-lang/cfront/ast"
	"github.com/kestrel-lang/cfront/ir"
)

func tracer() tracing.Trace { return tracing.Select("cfront.lower") }

// ErrFloatUnsupported is the fixed diagnostic text for every lowering
// failure caused by a float value actually reaching IR codegen -- a float
// literal, or any conversion into a float-typed binding. Declaring a
// float-typed global or local with no initializer never triggers this: the
// type is representable, only computation over it is not.
var ErrFloatUnsupported = "float lowering is not supported"

func floatError(loc cfront.Location) *cfront.Error {
	return cfront.NewError(cfront.LoweringError, loc, "%s", ErrFloatUnsupported)
}

// Binding pairs a declared name with the address it was allocated at, its
// declared type, and whether it is const and/or global.
type Binding struct {
	Address  ir.Value
	Type     ast.BasicType
	IsConst  bool
	IsGlobal bool
}

// FunctionInfo records a declared function's IR handle and signature.
type FunctionInfo struct {
	Function   *ir.Function
	ReturnType ast.BasicType
	ParamTypes []ast.BasicType
}

// scope is one lexical nesting level of variable bindings, chained to its
// parent -- the same shape as runtime.Scope/ScopeTree, specialized to hold
// Bindings instead of Tags; lowering has no use for a scope's name, only
// its nesting, so there is no ScopeTree-style name bookkeeping here.
type scope struct {
	parent *scope
	vars   map[string]Binding
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]Binding)}
}

func (s *scope) bind(name string, b Binding) { s.vars[name] = b }

func (s *scope) lookup(name string) (Binding, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.vars[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Context drives one compilation's worth of IR construction: the module
// under construction, the builder's current insertion point, the active
// scope chain, and the function declaration table.
type Context struct {
	Module  *ir.Module
	builder *ir.Builder

	CurrentFunction   *ir.Function
	CurrentReturnType ast.BasicType
	hasReturnType     bool

	top       *scope
	functions map[string]*FunctionInfo
}

// NewContext creates a context around a fresh module named name, with the
// outermost (global) scope already pushed.
func NewContext(name string) *Context {
	return &Context{
		Module:    ir.NewModule(name),
		top:       newScope(nil),
		functions: make(map[string]*FunctionInfo),
	}
}

// PushScope opens a new, innermost lexical scope.
func (c *Context) PushScope() { c.top = newScope(c.top) }

// PopScope closes the innermost lexical scope.
func (c *Context) PopScope() {
	if c.top == nil {
		panic("lower: attempted to pop an empty scope stack")
	}
	c.top = c.top.parent
}

// Bind introduces name into the innermost scope.
func (c *Context) Bind(name string, b Binding) { c.top.bind(name, b) }

// Lookup resolves name starting from the innermost scope outward.
func (c *Context) Lookup(name string) (Binding, bool) { return c.top.lookup(name) }

// SetInsertPoint moves (or, on first use, creates) the builder's insertion
// point to block.
func (c *Context) SetInsertPoint(block *ir.BasicBlock) {
	if c.builder == nil {
		c.builder = ir.NewBuilder(block)
		return
	}
	c.builder.SetInsertPoint(block)
}

// Builder returns the context's current instruction builder.
func (c *Context) Builder() *ir.Builder { return c.builder }

// ToIRType maps a declared BasicType to the IR type that represents it.
func (c *Context) ToIRType(t ast.BasicType) ir.Type {
	switch t {
	case ast.Int:
		return ir.IntType()
	case ast.Float:
		return ir.FloatType()
	default:
		return ir.VoidType()
	}
}

// DeclareFunction registers def's signature if it hasn't been seen before,
// returning the (possibly pre-existing) FunctionInfo either way: a second
// declaration of the same name is idempotent.
func (c *Context) DeclareFunction(def *ast.FuncDef) *FunctionInfo {
	if info, ok := c.functions[def.Name]; ok {
		return info
	}
	paramTypes := make([]ast.BasicType, len(def.Params))
	irParamTypes := make([]ir.Type, len(def.Params))
	paramNames := make([]string, len(def.Params))
	for i, p := range def.Params {
		paramTypes[i] = p.Type
		irParamTypes[i] = c.ToIRType(p.Type)
		paramNames[i] = p.Name
	}
	fn := c.Module.CreateFunction(def.Name, c.ToIRType(def.Type), paramNames, irParamTypes)
	info := &FunctionInfo{Function: fn, ReturnType: def.Type, ParamTypes: paramTypes}
	c.functions[def.Name] = info
	return info
}

// FindFunction looks up a previously declared function's info by name.
func (c *Context) FindFunction(name string) (*FunctionInfo, bool) {
	info, ok := c.functions[name]
	return info, ok
}

func (c *Context) MakeInt(v int) *ir.ConstantInt   { return ir.NewConstantInt(int64(v), ir.IntType()) }
func (c *Context) MakeBool(v bool) *ir.ConstantInt { return ir.NewConstantBool(v) }

// AsBool converts val to i1: a bool value passes through, an int value is
// compared against zero.
func (c *Context) AsBool(val ir.Value, loc cfront.Location) (ir.Value, *cfront.Error) {
	switch val.Type().Kind {
	case ir.KindBool:
		return val, nil
	case ir.KindInt:
		return c.builder.CreateICmpNE(val, c.MakeInt(0)), nil
	default:
		return nil, cfront.NewError(cfront.LoweringError, loc, "cannot convert %s to bool", val.Type())
	}
}

// AsInt converts val to i32: an int value passes through, a bool value is
// zero-extended.
func (c *Context) AsInt(val ir.Value, loc cfront.Location) (ir.Value, *cfront.Error) {
	switch val.Type().Kind {
	case ir.KindInt:
		return val, nil
	case ir.KindBool:
		return c.builder.CreateZExt(val), nil
	default:
		return nil, cfront.NewError(cfront.LoweringError, loc, "cannot convert %s to int", val.Type())
	}
}

// Convert applies the implicit-conversion rules so val can be stored into,
// returned as, or passed as an argument of the given target type.
// Converting to Float always fails here, at the point a float value would
// actually reach IR codegen: floats parse and build AST nodes fine, only
// lowering raises.
func (c *Context) Convert(val ir.Value, target ast.BasicType, loc cfront.Location) (ir.Value, *cfront.Error) {
	switch target {
	case ast.Int:
		return c.AsInt(val, loc)
	case ast.Void:
		if val != nil {
			return nil, cfront.NewError(cfront.LoweringError, loc, "cannot use a value where void is expected")
		}
		return nil, nil
	case ast.Float:
		return nil, floatError(loc)
	default:
		return nil, cfront.NewError(cfront.LoweringError, loc, "unknown target type")
	}
}

// CreateBlock creates a new basic block in the function currently being
// lowered.
func (c *Context) CreateBlock(base string) *ir.BasicBlock {
	if c.CurrentFunction == nil {
		panic("lower: CreateBlock called without an active function")
	}
	return c.CurrentFunction.CreateBlock(base)
}
