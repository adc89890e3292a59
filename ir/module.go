package ir

// Module is the root container produced by one compilation: every global
// variable and function declared or defined during lowering, in
// declaration order.
type Module struct {
	ModuleName string
	Globals    []*GlobalVariable
	Functions  []*Function

	fnByName map[string]*Function
}

// NewModule creates an empty module named name.
func NewModule(name string) *Module {
	return &Module{ModuleName: name, fnByName: make(map[string]*Function)}
}

// CreateGlobal declares a new module-level storage slot.
func (m *Module) CreateGlobal(name string, typ Type, isConst bool, init Value) *GlobalVariable {
	g := &GlobalVariable{GlobalName: name, ValueType: typ, IsConstant: isConst, Init: init}
	m.Globals = append(m.Globals, g)
	return g
}

// CreateFunction declares a new function with the given name, return type
// and parameter names/types. It does not create any blocks; the caller
// adds an entry block once it starts lowering the body.
func (m *Module) CreateFunction(name string, retType Type, paramNames []string, paramTypes []Type) *Function {
	fn := &Function{FuncName: name, RetType: retType}
	for i, pt := range paramTypes {
		fn.Args = append(fn.Args, &Argument{ArgName: paramNames[i], ArgType: pt, Index: i})
	}
	m.Functions = append(m.Functions, fn)
	m.fnByName[name] = fn
	return fn
}

// FindFunction looks up a previously declared function by name.
func (m *Module) FindFunction(name string) *Function {
	return m.fnByName[name]
}
