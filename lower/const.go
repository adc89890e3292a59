package lower

import "github.com/kestrel-lang/cfront/ast"

// evalIntConstant attempts to fold expr to a compile-time integer, for
// global-initializer constant folding. Division and modulus by zero fold
// to 0 rather than failing the fold. A float literal anywhere in expr
// always fails the fold; this function never handles LiteralFloat.
func evalIntConstant(expr ast.Expr) (int, bool) {
	switch e := expr.(type) {
	case *ast.LiteralInt:
		return e.Value, true
	case *ast.UnaryExpr:
		inner, ok := evalIntConstant(e.Operand)
		if !ok {
			return 0, false
		}
		switch e.Op {
		case ast.Positive:
			return inner, true
		case ast.Negative:
			return -inner, true
		case ast.LogicalNot:
			return boolToInt(inner == 0), true
		}
		return 0, false
	case *ast.BinaryExpr:
		lhs, ok := evalIntConstant(e.LHS)
		if !ok {
			return 0, false
		}
		rhs, ok := evalIntConstant(e.RHS)
		if !ok {
			return 0, false
		}
		return evalBinaryConstant(e.Op, lhs, rhs)
	default:
		return 0, false
	}
}

func evalBinaryConstant(op ast.BinaryOp, lhs, rhs int) (int, bool) {
	switch op {
	case ast.Add:
		return lhs + rhs, true
	case ast.Sub:
		return lhs - rhs, true
	case ast.Mul:
		return lhs * rhs, true
	case ast.Div:
		if rhs == 0 {
			return 0, true
		}
		return lhs / rhs, true
	case ast.Mod:
		if rhs == 0 {
			return 0, true
		}
		return lhs % rhs, true
	case ast.Lt:
		return boolToInt(lhs < rhs), true
	case ast.Gt:
		return boolToInt(lhs > rhs), true
	case ast.Le:
		return boolToInt(lhs <= rhs), true
	case ast.Ge:
		return boolToInt(lhs >= rhs), true
	case ast.Eq:
		return boolToInt(lhs == rhs), true
	case ast.Neq:
		return boolToInt(lhs != rhs), true
	case ast.And:
		return boolToInt(lhs != 0 && rhs != 0), true
	case ast.Or:
		return boolToInt(lhs != 0 || rhs != 0), true
	default:
		return 0, false
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
