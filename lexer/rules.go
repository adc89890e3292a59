package lexer

// rule is one entry in the ordered rule table: pattern, the TokType and
// Category it produces on a match. Rule index doubles as priority: on a
// tie between two rules that accept at the same DFA state, the
// lower-indexed (earlier) rule wins.
type rule struct {
	pattern  string
	typ      TokType
	category Category
}

const (
	ruleDigits  = "0|1|2|3|4|5|6|7|8|9"
	ruleCaps    = "A|B|C|D|E|F|G|H|I|J|K|L|M|N|O|P|Q|R|S|T|U|V|W|X|Y|Z"
	ruleLowers  = "a|b|c|d|e|f|g|h|i|j|k|l|m|n|o|p|q|r|s|t|u|v|w|x|y|z"
	ruleIDStart = ruleCaps + "|" + ruleLowers + "|_"
	ruleIDChar  = ruleCaps + "|" + ruleLowers + "|" + ruleDigits + "|_"
	ruleFloat   = "((" + ruleDigits + ")+\\.(" + ruleDigits + ")*|(" + ruleDigits + ")*\\.(" + ruleDigits + ")+)"
)

// rules is the bit-stable lexer rule table.
var rules = []rule{
	{"( |\t)+", spacer, catSpacer},
	{"\r\n", spacer, catSpacer},
	{"\n", spacer, catSpacer},
	{"\r", spacer, catSpacer},

	// keywords, case-insensitive
	{"?i:int", KwInt, CatKeyword},
	{"?i:void", KwVoid, CatKeyword},
	{"?i:return", KwReturn, CatKeyword},
	{"?i:main", KwMain, CatKeyword},
	{"?i:float", KwFloat, CatKeyword},
	{"?i:if", KwIf, CatKeyword},
	{"?i:else", KwElse, CatKeyword},
	{"?i:const", KwConst, CatKeyword},

	// operators: multi-char before their single-char prefixes
	{"==", OpEqual, CatOperator},
	{"<=", OpLessEqual, CatOperator},
	{">=", OpGreaterEqual, CatOperator},
	{"!=", OpNotEqual, CatOperator},
	{"&&", OpAnd, CatOperator},
	{"\\|\\|", OpOr, CatOperator},
	{"!", OpNot, CatOperator},
	{"\\+", OpPlus, CatOperator},
	{"-", OpMinus, CatOperator},
	{"\\*", OpMultiply, CatOperator},
	{"/", OpDivide, CatOperator},
	{"%", OpMod, CatOperator},
	{"=", OpAssign, CatOperator},
	{">", OpGreater, CatOperator},
	{"<", OpLess, CatOperator},

	// separators
	{"\\(", SepLParen, CatSeparator},
	{"\\)", SepRParen, CatSeparator},
	{"\\{", SepLBrace, CatSeparator},
	{"\\}", SepRBrace, CatSeparator},
	{",", SepComma, CatSeparator},
	{";", SepSemicolon, CatSeparator},

	// literals and identifiers
	{ruleFloat, LiteralFloat, CatFloatLiteral},
	{"(" + ruleDigits + ")+", LiteralInt, CatIntLiteral},
	{"(" + ruleIDStart + ")(" + ruleIDChar + ")*", Identifier, CatIdentifier},

	// catch-all
	{".", Invalid, CatInvalid},
}
