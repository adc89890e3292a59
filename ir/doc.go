// Package ir implements a minimal, LLVM-flavored SSA intermediate
// representation: typed values, instructions, basic blocks, functions and a
// module, plus a builder that appends instructions at a movable insertion
// point, structured as an idiomatic Go value/interface hierarchy
// (Module/Function/BasicBlock/Builder/Constant/GlobalVariable/Instruction).
package ir
