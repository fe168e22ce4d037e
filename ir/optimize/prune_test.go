package optimize

import (
	"testing"

	"github.com/accgo/acc/ctype"
	"github.com/accgo/acc/ir"
)

func TestPruneRemovesBlockWithNoPredecessors(t *testing.T) {
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})
	ir.Ret(c.Entry, intLit(1))
	orphan := c.NewBlock(c.Entry)
	ir.Ret(orphan, intLit(2))

	Prune(c)

	for _, b := range c.LexicalBlocks() {
		if b == orphan {
			t.Fatal("want the unreachable block pruned")
		}
	}
}

func TestPruneLeavesReachableBlocksAlone(t *testing.T) {
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})
	target := c.NewBlock(c.Entry)
	ir.Jmp(c.Entry, target)
	ir.Ret(target, intLit(1))

	Prune(c)

	found := false
	for _, b := range c.LexicalBlocks() {
		if b == target {
			found = true
		}
	}
	if !found {
		t.Fatal("want the reachable target block kept")
	}
}

func TestPruneCollapsesPhiToSoleSourceWhenAPredecessorDies(t *testing.T) {
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})
	live := c.NewBlock(c.Entry)
	dead := c.NewBlock(live)
	merge := c.NewBlock(dead)

	ir.Jmp(c.Entry, live)
	ir.Jmp(live, merge)
	// dead has no predecessor at all -- still feeds the merge phi.
	dead.AddSucc(merge)
	phi := ir.Phi(merge, ctype.Int)
	phi.AddArg(live, intLit(1))
	phi.AddArg(dead, intLit(2))
	ret := ir.Ret(merge, phi)

	Prune(c)

	if !sameIntLiteral(ret.Operands[0], 1) {
		t.Errorf("want the phi collapsed to its sole surviving source (1), got %v", ret.Operands[0])
	}
}

func sameIntLiteral(v ir.Value, want int64) bool {
	lit, ok := v.(*ir.Literal)
	return ok && int64(lit.U64) == want
}
