package optimize

import "github.com/accgo/acc/ir"

// Prune removes every non-entry block with no predecessors, repeating until
// a full sweep removes nothing (spec.md §4.3 "Dead-block pruning"). Blocks
// that are unreachable but still feed each other through a cycle keep their
// predecessors and are not removed.
//
// Grounded on original_source/src/itm/opt.c's o_prune/rmfromphi.
func Prune(c *ir.Container) {
	for {
		dead := deadBlocks(c)
		if len(dead) == 0 {
			return
		}
		for _, b := range dead {
			unlink(c, b)
		}
	}
}

func deadBlocks(c *ir.Container) []*ir.Block {
	var dead []*ir.Block
	for _, b := range c.LexicalBlocks() {
		if b == c.Entry {
			continue
		}
		if len(b.Preds) == 0 {
			dead = append(dead, b)
		}
	}
	return dead
}

// unlink removes b from every successor's predecessor set (pruning its
// phis as it goes) and from the lexical chain.
func unlink(c *ir.Container, b *ir.Block) {
	for _, s := range b.Succs {
		for _, phi := range s.Phis() {
			removeFromPhi(c, b, phi)
		}
		s.RemovePred(b)
	}
	b.Succs = nil

	c.UnlinkBlock(b)
}

// removeFromPhi drops whichBlock's source operand from phi, collapsing
// the phi to its sole remaining source if that leaves only one.
func removeFromPhi(c *ir.Container, whichBlock *ir.Block, phi *ir.Instr) {
	for n, arg := range phi.PhiArgs {
		if arg.Pred == whichBlock {
			phi.PhiArgs = append(phi.PhiArgs[:n], phi.PhiArgs[n+1:]...)
			break
		}
	}
	if len(phi.PhiArgs) == 1 {
		ir.Replace(c, phi, phi.PhiArgs[0].Val)
	}
}
