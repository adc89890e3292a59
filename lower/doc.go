// Package lower walks an ast.Program and emits an ir.Module: global
// variables with folded initializers, forward-declared functions, and each
// function body lowered to basic blocks and instructions. The walk is a set
// of standalone lowerX functions over a single mutable Context, rather than
// a method per AST node.
package lower
