package ir

import (
	"fmt"
	"strings"
)

// String renders the module as a deterministic, LLVM-flavored text dump:
// stable across runs for identical inputs. It is the only supported
// serialization; there is no separate binary form.
func (m *Module) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "; module %s\n", m.ModuleName)
	for _, g := range m.Globals {
		kind := "global"
		if g.IsConstant {
			kind = "constant"
		}
		fmt.Fprintf(&b, "%s = %s %s %s\n", g.Name(), kind, g.ValueType, valueText(g.Init))
	}
	for _, fn := range m.Functions {
		writeFunction(&b, fn)
	}
	return b.String()
}

func writeFunction(b *strings.Builder, fn *Function) {
	params := make([]string, len(fn.Args))
	for i, a := range fn.Args {
		params[i] = fmt.Sprintf("%s %s", a.ArgType, a.Name())
	}
	if len(fn.Blocks) == 0 {
		fmt.Fprintf(b, "declare %s %s(%s)\n", fn.RetType, fn.Name(), strings.Join(params, ", "))
		return
	}
	fmt.Fprintf(b, "define %s %s(%s) {\n", fn.RetType, fn.Name(), strings.Join(params, ", "))
	for _, bb := range fn.Blocks {
		fmt.Fprintf(b, "%s:\n", bb.BlockName)
		for _, instr := range bb.Instrs {
			fmt.Fprintf(b, "  %s\n", instrText(instr))
		}
	}
	fmt.Fprintln(b, "}")
}

func valueText(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.Name()
}

func instrText(instr Instruction) string {
	switch i := instr.(type) {
	case *AllocaInst:
		return fmt.Sprintf("%s = alloca %s", i.Name(), i.ElemType)
	case *LoadInst:
		return fmt.Sprintf("%s = load %s, %s", i.Name(), i.Addr.Type(), valueText(i.Addr))
	case *StoreInst:
		return fmt.Sprintf("store %s %s, %s", i.Val.Type(), valueText(i.Val), valueText(i.Addr))
	case *BinaryInst:
		return fmt.Sprintf("%s = %s i32 %s, %s", i.Name(), i.Op, valueText(i.LHS), valueText(i.RHS))
	case *ICmpInst:
		return fmt.Sprintf("%s = icmp %s %s %s, %s", i.Name(), i.Pred, i.LHS.Type(), valueText(i.LHS), valueText(i.RHS))
	case *ZExtInst:
		return fmt.Sprintf("%s = zext i1 %s to i32", i.Name(), valueText(i.Val))
	case *PhiInst:
		pairs := make([]string, len(i.Incoming))
		for j, p := range i.Incoming {
			pairs[j] = fmt.Sprintf("[ %s, %s ]", valueText(p.Val), p.Block.Name())
		}
		return fmt.Sprintf("%s = phi %s %s", i.Name(), i.ValueType, strings.Join(pairs, ", "))
	case *CallInst:
		args := make([]string, len(i.Args))
		for j, a := range i.Args {
			args[j] = valueText(a)
		}
		return fmt.Sprintf("%s = call %s %s(%s)", i.Name(), i.Callee.RetType, i.Callee.Name(), strings.Join(args, ", "))
	case *CondBrInst:
		return fmt.Sprintf("br i1 %s, label %s, label %s", valueText(i.Cond), i.True.Name(), i.False.Name())
	case *BrInst:
		return fmt.Sprintf("br label %s", i.Target.Name())
	case *RetInst:
		if i.Val == nil {
			return "ret void"
		}
		return fmt.Sprintf("ret %s %s", i.Val.Type(), valueText(i.Val))
	default:
		return fmt.Sprintf("<unknown instruction %T>", instr)
	}
}
