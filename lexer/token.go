package lexer

import (
	"fmt"

	"github.com/kestrel-lang/cfront"
)

// TokType is the closed enumeration of token types.
type TokType int

const (
	Invalid TokType = iota
	EOF

	KwInt
	KwVoid
	KwReturn
	KwMain
	KwFloat
	KwIf
	KwElse
	KwConst

	// FuncDefInt and FuncDefFloat are not produced directly by the DFA.
	// PostProcess retypes a top-level KwInt/KwFloat token followed by an
	// identifier (or KwMain) and then '(' into one of these, so the
	// grammar can map a function's return-type keyword to its own
	// terminal independent of a variable declaration's type keyword.
	FuncDefInt
	FuncDefFloat

	OpEqual
	OpLessEqual
	OpGreaterEqual
	OpNotEqual
	OpAnd
	OpOr
	OpNot
	OpPlus
	OpMinus
	OpMultiply
	OpDivide
	OpMod
	OpAssign
	OpGreater
	OpLess

	SepLParen
	SepRParen
	SepLBrace
	SepRBrace
	SepComma
	SepSemicolon

	LiteralInt
	LiteralFloat

	Identifier

	// spacer is an internal-only type for whitespace/newline rules; optimize
	// drops every token of category Spacer before the stream is handed to a
	// parser.
	spacer
)

var tokTypeNames = map[TokType]string{
	Invalid: "Invalid", EOF: "EOF",
	KwInt: "KwInt", KwVoid: "KwVoid", KwReturn: "KwReturn", KwMain: "KwMain",
	KwFloat: "KwFloat", KwIf: "KwIf", KwElse: "KwElse", KwConst: "KwConst",
	FuncDefInt: "FuncDefInt", FuncDefFloat: "FuncDefFloat",
	OpEqual:    "OpEqual", OpLessEqual: "OpLessEqual", OpGreaterEqual: "OpGreaterEqual",
	OpNotEqual: "OpNotEqual", OpAnd: "OpAnd", OpOr: "OpOr", OpNot: "OpNot", OpPlus: "OpPlus",
	OpMinus: "OpMinus", OpMultiply: "OpMultiply", OpDivide: "OpDivide", OpMod: "OpMod",
	OpAssign: "OpAssign", OpGreater: "OpGreater", OpLess: "OpLess",
	SepLParen: "SepLParen", SepRParen: "SepRParen", SepLBrace: "SepLBrace",
	SepRBrace: "SepRBrace", SepComma: "SepComma", SepSemicolon: "SepSemicolon",
	LiteralInt: "LiteralInt", LiteralFloat: "LiteralFloat", Identifier: "Identifier",
	spacer: "Spacer",
}

func (t TokType) String() string {
	if s, ok := tokTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokType(%d)", int(t))
}

// Category is the coarser grouping used for grammar mapping.
type Category int

const (
	CatInvalid Category = iota
	CatKeyword
	CatOperator
	CatSeparator
	CatIdentifier
	CatIntLiteral
	CatFloatLiteral
	CatEnd
	CatFuncDef
	catSpacer
)

var categoryNames = map[Category]string{
	CatInvalid: "Invalid", CatKeyword: "Keyword", CatOperator: "Operator",
	CatSeparator: "Separator", CatIdentifier: "Identifier", CatIntLiteral: "IntLiteral",
	CatFloatLiteral: "FloatLiteral", CatEnd: "End", CatFuncDef: "FuncDef",
	catSpacer: "Spacer",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Key identifies a token for grammar terminal-mapping purposes: equality is
// on (Type, Category) only, per the data model -- the lexeme is payload,
// not identity.
type Key struct {
	Type     TokType
	Category Category
}

// Token is the concrete token type produced by Lexer.Tokenize. It
// implements cfront.Token.
type Token struct {
	Type     TokType
	Category Category
	Loc      cfront.Location
	Text     string
	span     cfront.Span
}

var _ cfront.Token = Token{}

func (t Token) TokType() cfront.TokType { return cfront.TokType(t.Type) }
func (t Token) Span() cfront.Span       { return t.span }

// Lexeme returns the raw source text this token was scanned from.
func (t Token) Lexeme() string { return t.Text }

// Key returns the (Type, Category) identity used for table lookups.
func (t Token) Key() Key { return Key{Type: t.Type, Category: t.Category} }

func (t Token) String() string {
	return fmt.Sprintf("%s\tToken(Type::%s, Category::%s, Location%s)", t.Text, t.Type, t.Category, t.Loc)
}
