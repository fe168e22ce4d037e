// Package analyze implements the three dataflow analyses of spec.md
// §4.2: use counts, value lifetimes (with end-markers), and alloca
// promotability.
//
// Grounded line-for-line on
// _examples/original_source/src/itm/analyze.c.
package analyze

import "github.com/accgo/acc/ir"

// Kind is a bitmask selecting which analyses to run, matching
// original_source/include/acc/itm/analyze.h's enum analysis.
type Kind int

const (
	Used Kind = 1 << iota
	Lifetime
	Phiable
)

// Run executes the selected analyses over every block in c's lexical
// chain, writing results as tags on c.Tags. Each analysis clears its own
// tag family first, so Run is idempotent: running it twice yields
// identical tags (spec.md §8 "Round-trip / idempotence").
func Run(c *ir.Container, a Kind) {
	if a&Used != 0 {
		c.Tags.ClearName(ir.TagUsed)
		runUsed(c)
	}
	if a&Lifetime != 0 {
		c.Tags.ClearName(ir.TagEndlife)
		runLifetime(c)
	}
	if a&Phiable != 0 {
		c.Tags.ClearName(ir.TagPhiable)
		runPhiable(c)
	}
}

// runUsed walks every instruction in lexical order, tagging each non-void
// value with a use count: one increment per operand slot (including phi
// value sources) that references it.
//
// Grounded on analyze.c's a_used.
func runUsed(c *ir.Container) {
	for _, b := range c.LexicalBlocks() {
		for i := b.First; i != nil; i = i.Next {
			if i.Result != nil && i.Result.String() != "void" {
				if c.Tags.Get(i, ir.TagUsed) == nil {
					c.Tags.Set(i, &ir.Tag{Name: ir.TagUsed, Kind: ir.TagInt})
				}
			}
			for _, op := range i.Operands {
				c.Tags.IncUsed(op)
			}
			for _, arg := range i.PhiArgs {
				c.Tags.IncUsed(arg.Val)
			}
		}
	}
}
