package ast

import (
	"fmt"
	"io"
	"strings"
)

// Print writes a deterministic, indented textual rendering of prog to w.
// This is deliberately not JSON/S-expression output -- it is meant for
// human debugging, not machine consumption. No cfrontc flag prints it;
// --dump-parse prints the parse trace.
func Print(prog *Program, w io.Writer) {
	p := &printer{w: w}
	p.program(prog)
}

type printer struct {
	w     io.Writer
	depth int
}

func (p *printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth), fmt.Sprintf(format, args...))
}

func (p *printer) indent(f func()) {
	p.depth++
	f()
	p.depth--
}

func (p *printer) program(prog *Program) {
	p.line("Program")
	p.indent(func() {
		for _, d := range prog.Globals {
			p.decl(d)
		}
		for _, fn := range prog.Functions {
			p.funcDef(fn)
		}
	})
}

func (p *printer) funcDef(fn *FuncDef) {
	p.line("FuncDef %s %s", fn.Type, fn.Name)
	p.indent(func() {
		for _, param := range fn.Params {
			p.line("Param %s %s", param.Type, param.Name)
		}
		p.block(fn.Body)
	})
}

func (p *printer) decl(d Decl) {
	switch v := d.(type) {
	case *VarDecl:
		kw := "var"
		if v.IsConst {
			kw = "const"
		}
		p.line("%s %s", kw, v.Type)
		p.indent(func() {
			for _, item := range v.Items {
				if item.Value != nil {
					p.line("%s =", item.Name)
					p.indent(func() { p.expr(item.Value) })
				} else {
					p.line("%s", item.Name)
				}
			}
		})
	default:
		p.line("<decl %T>", d)
	}
}

func (p *printer) block(b *BlockStmt) {
	p.line("Block")
	p.indent(func() {
		for _, item := range b.Items {
			if item.IsDecl() {
				p.decl(item.Decl)
			} else {
				p.stmt(item.Stmt)
			}
		}
	})
}

func (p *printer) stmt(s Stmt) {
	switch v := s.(type) {
	case *EmptyStmt:
		p.line("EmptyStmt")
	case *ExprStmt:
		p.line("ExprStmt")
		p.indent(func() { p.expr(v.Expr) })
	case *AssignStmt:
		p.line("AssignStmt %s =", v.Target)
		p.indent(func() { p.expr(v.Expr) })
	case *ReturnStmt:
		p.line("ReturnStmt")
		if v.Value != nil {
			p.indent(func() { p.expr(v.Value) })
		}
	case *IfStmt:
		p.line("IfStmt")
		p.indent(func() {
			p.line("cond:")
			p.indent(func() { p.expr(v.Condition) })
			p.line("then:")
			p.indent(func() { p.stmt(v.ThenBranch) })
			if v.ElseBranch != nil {
				p.line("else:")
				p.indent(func() { p.stmt(v.ElseBranch) })
			}
		})
	case *BlockStmt:
		p.block(v)
	default:
		p.line("<stmt %T>", s)
	}
}

func (p *printer) expr(e Expr) {
	switch v := e.(type) {
	case *LiteralInt:
		p.line("Int %d", v.Value)
	case *LiteralFloat:
		p.line("Float %g", v.Value)
	case *IdentifierExpr:
		p.line("Ident %s", v.Name)
	case *UnaryExpr:
		p.line("Unary %s", v.Op)
		p.indent(func() { p.expr(v.Operand) })
	case *BinaryExpr:
		p.line("Binary %s", v.Op)
		p.indent(func() {
			p.expr(v.LHS)
			p.expr(v.RHS)
		})
	case *CallExpr:
		p.line("Call %s", v.Callee)
		p.indent(func() {
			for _, arg := range v.Args {
				p.expr(arg)
			}
		})
	default:
		p.line("<expr %T>", e)
	}
}
