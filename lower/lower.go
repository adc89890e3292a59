package lower

import (
	"github.com/kestrel-lang/cfront"
	"github.com/kestrel-lang/cfront/ast"
	"github.com/kestrel-lang/cfront/ir"
)

// Lower walks program and returns the IR module it lowers to: global
// variables first (constant-folded initializers), then every function
// forward-declared, then every function body lowered.
func Lower(program *ast.Program) (*ir.Module, *cfront.Error) {
	ctx := NewContext("cfront")

	for _, decl := range program.Globals {
		varDecl, ok := decl.(*ast.VarDecl)
		if !ok {
			continue
		}
		if err := lowerGlobalDecl(ctx, varDecl); err != nil {
			return nil, err
		}
	}

	for _, fn := range program.Functions {
		ctx.DeclareFunction(fn)
	}
	for _, fn := range program.Functions {
		if err := lowerFuncDef(ctx, fn); err != nil {
			return nil, err
		}
	}

	tracer().Debugf("lowered %d global(s) and %d function(s)", len(program.Globals), len(program.Functions))
	return ctx.Module, nil
}

func zeroValue(irType ir.Type) ir.Value {
	switch irType.Kind {
	case ir.KindFloat:
		return ir.NewConstantFloat(0)
	case ir.KindBool:
		return ir.NewConstantBool(false)
	default:
		return ir.NewConstantInt(0, ir.IntType())
	}
}

func lowerGlobalDecl(ctx *Context, decl *ast.VarDecl) *cfront.Error {
	irType := ctx.ToIRType(decl.Type)
	for _, item := range decl.Items {
		var initializer ir.Value
		if item.Value != nil {
			folded, ok := evalIntConstant(item.Value)
			if !ok {
				return cfront.NewError(cfront.LoweringError, decl.Pos(),
					"global initializer must be constant: %s", item.Name)
			}
			initializer = ctx.MakeInt(folded)
		} else {
			initializer = zeroValue(irType)
		}
		global := ctx.Module.CreateGlobal(item.Name, irType, decl.IsConst, initializer)
		ctx.Bind(item.Name, Binding{Address: global, Type: decl.Type, IsConst: decl.IsConst, IsGlobal: true})
	}
	return nil
}

func lowerLocalDecl(ctx *Context, decl *ast.VarDecl) *cfront.Error {
	irType := ctx.ToIRType(decl.Type)
	for _, item := range decl.Items {
		alloc := ctx.Builder().CreateAlloca(irType)
		ctx.Bind(item.Name, Binding{Address: alloc, Type: decl.Type, IsConst: decl.IsConst})
		if item.Value == nil {
			continue
		}
		val, err := lowerExpr(ctx, item.Value)
		if err != nil {
			return err
		}
		converted, err := ctx.Convert(val, decl.Type, item.Value.Pos())
		if err != nil {
			return err
		}
		ctx.Builder().CreateStore(converted, alloc)
	}
	return nil
}

func lowerFuncDef(ctx *Context, def *ast.FuncDef) *cfront.Error {
	info := ctx.DeclareFunction(def)
	fn := info.Function

	prevFunction, prevReturnType, prevHasReturn := ctx.CurrentFunction, ctx.CurrentReturnType, ctx.hasReturnType
	ctx.CurrentFunction = fn
	ctx.CurrentReturnType = def.Type
	ctx.hasReturnType = true
	defer func() {
		ctx.CurrentFunction = prevFunction
		ctx.CurrentReturnType = prevReturnType
		ctx.hasReturnType = prevHasReturn
	}()

	ctx.PushScope()
	defer ctx.PopScope()

	entry := ctx.CreateBlock("entry")
	ctx.SetInsertPoint(entry)

	for i, param := range def.Params {
		alloc := ctx.Builder().CreateAlloca(ctx.ToIRType(param.Type))
		ctx.Bind(param.Name, Binding{Address: alloc, Type: param.Type})
		ctx.Builder().CreateStore(fn.Args[i], alloc)
	}

	if def.Body != nil {
		if err := lowerBlock(ctx, def.Body); err != nil {
			return err
		}
	}

	tail := ctx.Builder().InsertBlock()
	if tail != nil && !tail.HasTerminator() {
		if def.Type == ast.Void {
			ctx.Builder().CreateVoidRet()
		} else {
			ctx.Builder().CreateRet(ctx.MakeInt(0))
		}
	}
	return nil
}

func lowerBlock(ctx *Context, block *ast.BlockStmt) *cfront.Error {
	ctx.PushScope()
	defer ctx.PopScope()

	for _, item := range block.Items {
		if item.IsDecl() {
			decl, ok := item.Decl.(*ast.VarDecl)
			if !ok {
				continue
			}
			if err := lowerLocalDecl(ctx, decl); err != nil {
				return err
			}
			continue
		}
		if item.Stmt == nil {
			continue
		}
		if err := lowerStmt(ctx, item.Stmt); err != nil {
			return err
		}
	}
	return nil
}

func lowerStmt(ctx *Context, stmt ast.Stmt) *cfront.Error {
	switch s := stmt.(type) {
	case *ast.EmptyStmt:
		return nil
	case *ast.ExprStmt:
		if s.Expr == nil {
			return nil
		}
		_, err := lowerExpr(ctx, s.Expr)
		return err
	case *ast.AssignStmt:
		return lowerAssign(ctx, s)
	case *ast.ReturnStmt:
		return lowerReturn(ctx, s)
	case *ast.IfStmt:
		return lowerIf(ctx, s)
	case *ast.BlockStmt:
		return lowerBlock(ctx, s)
	default:
		return cfront.NewError(cfront.LoweringError, stmt.Pos(), "unsupported statement %T", stmt)
	}
}

func lowerAssign(ctx *Context, s *ast.AssignStmt) *cfront.Error {
	binding, ok := ctx.Lookup(s.Target)
	if !ok {
		return cfront.NewError(cfront.LoweringError, s.Pos(), "assignment to undefined variable: %s", s.Target)
	}
	if binding.IsConst {
		return cfront.NewError(cfront.LoweringError, s.Pos(), "assignment to const variable: %s", s.Target)
	}
	val, err := lowerExpr(ctx, s.Expr)
	if err != nil {
		return err
	}
	converted, err := ctx.Convert(val, binding.Type, s.Pos())
	if err != nil {
		return err
	}
	ctx.Builder().CreateStore(converted, binding.Address)
	return nil
}

func lowerReturn(ctx *Context, s *ast.ReturnStmt) *cfront.Error {
	if !ctx.hasReturnType {
		return cfront.NewError(cfront.LoweringError, s.Pos(), "return used outside of a function")
	}
	if ctx.CurrentReturnType == ast.Void {
		ctx.Builder().CreateVoidRet()
		return nil
	}
	if s.Value == nil {
		ctx.Builder().CreateRet(ctx.MakeInt(0))
		return nil
	}
	val, err := lowerExpr(ctx, s.Value)
	if err != nil {
		return err
	}
	converted, err := ctx.Convert(val, ctx.CurrentReturnType, s.Pos())
	if err != nil {
		return err
	}
	ctx.Builder().CreateRet(converted)
	return nil
}

func lowerIf(ctx *Context, s *ast.IfStmt) *cfront.Error {
	condVal, err := lowerExpr(ctx, s.Condition)
	if err != nil {
		return err
	}
	cond, err := ctx.AsBool(condVal, s.Condition.Pos())
	if err != nil {
		return err
	}

	thenBB := ctx.CreateBlock("if.then")
	mergeBB := ctx.CreateBlock("if.end")
	elseBB := mergeBB
	if s.ElseBranch != nil {
		elseBB = ctx.CreateBlock("if.else")
	}
	ctx.Builder().CreateCondBr(cond, thenBB, elseBB)

	ctx.SetInsertPoint(thenBB)
	if err := lowerStmt(ctx, s.ThenBranch); err != nil {
		return err
	}
	if !ctx.Builder().InsertBlock().HasTerminator() {
		ctx.Builder().CreateBr(mergeBB)
	}

	if s.ElseBranch != nil {
		ctx.SetInsertPoint(elseBB)
		if err := lowerStmt(ctx, s.ElseBranch); err != nil {
			return err
		}
		if !ctx.Builder().InsertBlock().HasTerminator() {
			ctx.Builder().CreateBr(mergeBB)
		}
	}

	ctx.SetInsertPoint(mergeBB)
	return nil
}

func lowerExpr(ctx *Context, expr ast.Expr) (ir.Value, *cfront.Error) {
	switch e := expr.(type) {
	case *ast.LiteralInt:
		return ctx.MakeInt(e.Value), nil
	case *ast.LiteralFloat:
		return nil, floatError(e.Pos())
	case *ast.IdentifierExpr:
		binding, ok := ctx.Lookup(e.Name)
		if !ok {
			return nil, cfront.NewError(cfront.LoweringError, e.Pos(), "undefined identifier: %s", e.Name)
		}
		return ctx.Builder().CreateLoad(binding.Address), nil
	case *ast.UnaryExpr:
		return lowerUnary(ctx, e)
	case *ast.BinaryExpr:
		return lowerBinary(ctx, e)
	case *ast.CallExpr:
		return lowerCall(ctx, e)
	default:
		return nil, cfront.NewError(cfront.LoweringError, expr.Pos(), "unsupported expression %T", expr)
	}
}

func lowerUnary(ctx *Context, e *ast.UnaryExpr) (ir.Value, *cfront.Error) {
	val, err := lowerExpr(ctx, e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.Positive:
		return ctx.AsInt(val, e.Pos())
	case ast.Negative:
		iv, err := ctx.AsInt(val, e.Pos())
		if err != nil {
			return nil, err
		}
		return ctx.Builder().CreateSub(ctx.MakeInt(0), iv), nil
	case ast.LogicalNot:
		cond, err := ctx.AsBool(val, e.Pos())
		if err != nil {
			return nil, err
		}
		return ctx.Builder().CreateICmpEQ(cond, ctx.MakeBool(false)), nil
	default:
		return nil, cfront.NewError(cfront.LoweringError, e.Pos(), "unhandled unary operator")
	}
}

func lowerBinary(ctx *Context, e *ast.BinaryExpr) (ir.Value, *cfront.Error) {
	if e.Op == ast.And || e.Op == ast.Or {
		return lowerShortCircuit(ctx, e)
	}

	lhsVal, err := lowerExpr(ctx, e.LHS)
	if err != nil {
		return nil, err
	}
	rhsVal, err := lowerExpr(ctx, e.RHS)
	if err != nil {
		return nil, err
	}
	lhs, err := ctx.AsInt(lhsVal, e.Pos())
	if err != nil {
		return nil, err
	}
	rhs, err := ctx.AsInt(rhsVal, e.Pos())
	if err != nil {
		return nil, err
	}

	b := ctx.Builder()
	switch e.Op {
	case ast.Add:
		return b.CreateAdd(lhs, rhs), nil
	case ast.Sub:
		return b.CreateSub(lhs, rhs), nil
	case ast.Mul:
		return b.CreateMul(lhs, rhs), nil
	case ast.Div:
		return b.CreateSDiv(lhs, rhs), nil
	case ast.Mod:
		return b.CreateSRem(lhs, rhs), nil
	case ast.Lt:
		return b.CreateICmpLT(lhs, rhs), nil
	case ast.Gt:
		return b.CreateICmpGT(lhs, rhs), nil
	case ast.Le:
		return b.CreateICmpLE(lhs, rhs), nil
	case ast.Ge:
		return b.CreateICmpGE(lhs, rhs), nil
	case ast.Eq:
		return b.CreateICmpEQ(lhs, rhs), nil
	case ast.Neq:
		return b.CreateICmpNE(lhs, rhs), nil
	default:
		return nil, cfront.NewError(cfront.LoweringError, e.Pos(), "unhandled binary operator")
	}
}

// lowerShortCircuit lowers a short-circuit && or || expression: a
// conditional branch on the LHS into a freshly created rhs block or
// straight to merge, then a phi in merge selecting between the RHS's value
// and the short-circuited constant.
func lowerShortCircuit(ctx *Context, e *ast.BinaryExpr) (ir.Value, *cfront.Error) {
	lhsVal, err := lowerExpr(ctx, e.LHS)
	if err != nil {
		return nil, err
	}
	lhsCond, err := ctx.AsBool(lhsVal, e.Pos())
	if err != nil {
		return nil, err
	}
	originBlock := ctx.Builder().InsertBlock()

	base := "or"
	if e.Op == ast.And {
		base = "and"
	}
	rhsBB := ctx.CreateBlock(base + ".rhs")
	mergeBB := ctx.CreateBlock(base + ".merge")

	if e.Op == ast.And {
		ctx.Builder().CreateCondBr(lhsCond, rhsBB, mergeBB)
	} else {
		ctx.Builder().CreateCondBr(lhsCond, mergeBB, rhsBB)
	}

	ctx.SetInsertPoint(rhsBB)
	rhsVal, err := lowerExpr(ctx, e.RHS)
	if err != nil {
		return nil, err
	}
	rhsCond, err := ctx.AsBool(rhsVal, e.Pos())
	if err != nil {
		return nil, err
	}
	ctx.Builder().CreateBr(mergeBB)
	rhsEnd := ctx.Builder().InsertBlock()

	ctx.SetInsertPoint(mergeBB)
	phi := ctx.Builder().CreatePhi(ir.BoolType())
	if e.Op == ast.And {
		phi.AddIncoming(rhsCond, rhsEnd)
		phi.AddIncoming(ctx.MakeBool(false), originBlock)
	} else {
		phi.AddIncoming(ctx.MakeBool(true), originBlock)
		phi.AddIncoming(rhsCond, rhsEnd)
	}
	return phi, nil
}

func lowerCall(ctx *Context, e *ast.CallExpr) (ir.Value, *cfront.Error) {
	info, ok := ctx.FindFunction(e.Callee)
	if !ok {
		return nil, cfront.NewError(cfront.LoweringError, e.Pos(), "unknown function: %s", e.Callee)
	}
	if len(info.ParamTypes) != len(e.Args) {
		return nil, cfront.NewError(cfront.LoweringError, e.Pos(), "argument count mismatch for %s", e.Callee)
	}
	args := make([]ir.Value, len(e.Args))
	for i, argExpr := range e.Args {
		val, err := lowerExpr(ctx, argExpr)
		if err != nil {
			return nil, err
		}
		converted, err := ctx.Convert(val, info.ParamTypes[i], argExpr.Pos())
		if err != nil {
			return nil, err
		}
		args[i] = converted
	}
	return ctx.Builder().CreateCall(info.Function, args), nil
}
