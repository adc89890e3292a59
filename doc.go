/*
Package cfront is the front end of a small compiler for a C-subset source
language: integer/float scalars, const and mutable variable declarations,
functions with value parameters, blocks, assignment, if/else, return, and
the usual arithmetic, relational, equality, and short-circuit boolean
operators.

From a text buffer the pipeline produces a token stream, an abstract syntax
tree, and an SSA-style intermediate representation suitable for a separate
back end. Package structure:

■ automata: NFA/DFA construction, subset construction, Hopcroft minimization.

■ lexer: rule table, DFA-driven maximal-munch scanning, token stream post-processing.

■ grammar: production store, symbol identity, FIRST/FOLLOW, LL(1) normalization.

■ parser/ll1: predictive table-driven parser.

■ parser/slr: canonical SLR(1) shift-reduce parser that builds the AST.

■ ast: the abstract syntax tree node types and the per-production AST builders.

■ ir: a minimal SSA-style value/instruction/block/function/module container.

■ lower: AST-to-IR lowering with lexical scoping and constant folding.

■ cmd/cfrontc: the command line driver.

The base package contains data types used throughout all the other
packages: token spans, locations, and the front end's error taxonomy.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package cfront
