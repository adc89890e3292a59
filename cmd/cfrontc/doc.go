// Command cfrontc compiles a single C-subset source file to IR: lex, parse
// with the SLR(1) driver, lower the resulting AST, and print or write the
// IR module. See the root command's usage text for flags.
package main
