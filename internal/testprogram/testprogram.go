// Package testprogram stands in for the parser front end spec.md
// explicitly leaves unbuilt (§1, §9): it hand-constructs a small, fixed
// set of IR containers directly through the ir package's typed
// constructors, the way a real parser's code generator would emit them
// one expression/statement at a time. cmd/acc uses it to drive
// -Sir/-S end to end with no tokenizer or grammar in the repository.
//
// Every value here is a compile-time literal: this package never
// constructs a real function parameter (there is no parameter/argument
// node in spec.md's opcode catalog -- IR values arise only from alloca,
// literals and computed results), so every branch condition is provably
// constant and the optimizer's constant-folding and dead-block pruning
// passes are expected to collapse these containers substantially at any
// -O level above zero. That is intentional: the point is to exercise
// every stage of the pipeline (build, optimize, lower, regalloc, emit)
// on a container whose result is easy to hand-verify, not to model a
// realistic compilation unit.
package testprogram

import (
	"github.com/accgo/acc/ctype"
	"github.com/accgo/acc/ir"
)

// Build returns the fixed set of containers a compilation of this
// package's one synthetic input "file" produces.
func Build() []*ir.Container {
	return []*ir.Container{
		buildSign(),
		buildExternDecl(),
	}
}

// buildSign constructs the equivalent of:
//
//	int sign(void) {
//	    if (7 > 0)
//	        return 1;
//	    if (7 < 0)
//	        return -1;
//	    return 0;
//	}
//
// exercising nested compares/splits and (after optimization) full
// constant folding and dead-block pruning down to a single literal
// return. Every block has at most one predecessor, so no phi is built.
func buildSign() *ir.Container {
	c := ir.NewContainer("sign", ir.Global, &ctype.Func{Ret: ctype.Int})

	entry := c.Entry
	positive := c.NewBlock(entry)
	nonPositive := c.NewBlock(positive)
	negative := c.NewBlock(nonPositive)
	zero := c.NewBlock(negative)

	x := ir.NewIntLiteral(ctype.Int, 7, 32)
	zeroLit := ir.NewIntLiteral(ctype.Int, 0, 32)

	gtZero := ir.CmpGt(entry, x, zeroLit)
	ir.Split(entry, gtZero, positive, nonPositive)

	ir.Ret(positive, ir.NewIntLiteral(ctype.Int, 1, 32))

	ltZero := ir.CmpLt(nonPositive, x, zeroLit)
	ir.Split(nonPositive, ltZero, negative, zero)

	ir.Ret(negative, ir.NewIntLiteral(ctype.Int, -1, 32))

	ir.Ret(zero, ir.NewIntLiteral(ctype.Int, 0, 32))

	return c
}

// buildExternDecl constructs a bodiless declaration, exercising the
// emitter's "extern" directive path (spec.md §4.6).
func buildExternDecl() *ir.Container {
	return ir.NewContainer("helper", ir.Extern, &ctype.Func{Ret: ctype.Int, Params: []ctype.Type{ctype.Int}})
}
