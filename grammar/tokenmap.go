package grammar

import "github.com/kestrel-lang/cfront/lexer"

// mapCTokens registers the lexer.Key -> Symbol mapping for the C-subset
// grammar. KwMain maps to the same terminal as a plain Identifier (main is a
// distinct token type but not a distinct grammar terminal), and
// FuncDefInt/FuncDefFloat (produced by lexer.PostProcess) map to two distinct
// terminals rather than one generic function-defining keyword.
func mapCTokens(g *Grammar) {
	kw := func(t lexer.TokType, terminal string) {
		g.MapToken(lexer.Key{Type: t, Category: lexer.CatKeyword}, T(terminal))
	}
	op := func(t lexer.TokType, terminal string) {
		g.MapToken(lexer.Key{Type: t, Category: lexer.CatOperator}, T(terminal))
	}
	sep := func(t lexer.TokType, terminal string) {
		g.MapToken(lexer.Key{Type: t, Category: lexer.CatSeparator}, T(terminal))
	}

	kw(lexer.KwInt, "int")
	kw(lexer.KwVoid, "void")
	kw(lexer.KwReturn, "return")
	kw(lexer.KwFloat, "float")
	kw(lexer.KwIf, "if")
	kw(lexer.KwElse, "else")
	kw(lexer.KwConst, "const")
	// main is lexed as its own token type so PostProcess can recognize a
	// function definition, but the grammar never distinguishes it from a
	// plain identifier.
	g.MapToken(lexer.Key{Type: lexer.KwMain, Category: lexer.CatKeyword}, T("Ident"))

	g.MapToken(lexer.Key{Type: lexer.FuncDefInt, Category: lexer.CatFuncDef}, T("func_int"))
	g.MapToken(lexer.Key{Type: lexer.FuncDefFloat, Category: lexer.CatFuncDef}, T("func_float"))

	op(lexer.OpEqual, "==")
	op(lexer.OpLessEqual, "<=")
	op(lexer.OpGreaterEqual, ">=")
	op(lexer.OpNotEqual, "!=")
	op(lexer.OpAnd, "&&")
	op(lexer.OpOr, "||")
	op(lexer.OpPlus, "+")
	op(lexer.OpMinus, "-")
	op(lexer.OpMultiply, "*")
	op(lexer.OpDivide, "/")
	op(lexer.OpMod, "%")
	op(lexer.OpAssign, "=")
	op(lexer.OpGreater, ">")
	op(lexer.OpLess, "<")
	// UnaryOp applications of + and - reuse the same operator terminals
	// used by AddExp; the grammar disambiguates by production context
	// (UnaryExp vs AddExp), not by token identity. '!' appears only in
	// UnaryOp.
	op(lexer.OpNot, "!")

	sep(lexer.SepLParen, "(")
	sep(lexer.SepRParen, ")")
	sep(lexer.SepLBrace, "{")
	sep(lexer.SepRBrace, "}")
	sep(lexer.SepComma, ",")
	sep(lexer.SepSemicolon, ";")

	// LiteralInt/LiteralFloat are both lexer token types and grammar terminal
	// names; IntConst/FloatConst are the non-terminals that forward them
	// (IntConst -> LiteralInt, FloatConst -> LiteralFloat) into Number.
	//
	// An Identifier token maps directly to terminal "Ident" -- the same
	// terminal every production (ConstDef, VarDef, FuncDef, FuncFParam,
	// LVal, the call form of UnaryExp) spells as T("Ident").
	g.MapToken(lexer.Key{Type: lexer.LiteralInt, Category: lexer.CatIntLiteral}, T("LiteralInt"))
	g.MapToken(lexer.Key{Type: lexer.LiteralFloat, Category: lexer.CatFloatLiteral}, T("LiteralFloat"))
	g.MapToken(lexer.Key{Type: lexer.Identifier, Category: lexer.CatIdentifier}, T("Ident"))
	g.MapToken(lexer.Key{Type: lexer.EOF, Category: lexer.CatEnd}, EndSym())
}
