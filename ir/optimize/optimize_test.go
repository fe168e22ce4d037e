package optimize

import (
	"testing"

	"github.com/accgo/acc/ctype"
	"github.com/accgo/acc/ir"
)

func TestRunAtLevelZeroIsANoOp(t *testing.T) {
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})
	add := ir.Add(c.Entry, intLit(2), intLit(3))
	ir.Ret(c.Entry, add)

	Run(c, 0)

	found := false
	for _, i := range c.Entry.Instrs() {
		if i == add {
			found = true
		}
	}
	if !found {
		t.Fatal("want -O0 to leave the container untouched")
	}
}

// TestRunCollapsesAConstantIfToASingleLiteralReturn exercises the fixpoint
// loop end to end: fold the compare, fold the branch it feeds, prune the
// block that falls dead, and arrive at one block returning a literal.
func TestRunCollapsesAConstantIfToASingleLiteralReturn(t *testing.T) {
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})
	positive := c.NewBlock(c.Entry)
	nonPositive := c.NewBlock(positive)

	cmp := ir.CmpGt(c.Entry, intLit(7), intLit(0))
	ir.Split(c.Entry, cmp, positive, nonPositive)
	ir.Ret(positive, intLit(1))
	ir.Ret(nonPositive, intLit(-1))

	Run(c, 1)

	blocks := c.LexicalBlocks()
	if len(blocks) != 1 {
		t.Fatalf("want pruning to collapse to a single block, got %d", len(blocks))
	}
	ret := blocks[0].Last
	if ret == nil || ret.Op != ir.OpRet {
		t.Fatalf("want the surviving block to end in a ret, got %v", ret)
	}
	lit, ok := ret.Operands[0].(*ir.Literal)
	if !ok {
		t.Fatalf("want the ret operand folded to a literal, got %T", ret.Operands[0])
	}
	if lit.U64 != 1 {
		t.Errorf("want 7 > 0 to take the positive branch (literal 1), got %d", lit.U64)
	}
}

func TestRunPromotesBeforeFolding(t *testing.T) {
	arena := ctype.NewArena()
	ptrTy := arena.Pointer(ctype.Int, 64)
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})

	slot := ir.Alloca(c.Entry, ctype.Int, ptrTy)
	ir.Store(c.Entry, intLit(4), slot)
	load := ir.Load(c.Entry, slot)
	add := ir.Add(c.Entry, load, intLit(1))
	ret := ir.Ret(c.Entry, add)

	Run(c, 1)

	lit, ok := ret.Operands[0].(*ir.Literal)
	if !ok {
		t.Fatalf("want the promoted-then-folded value to be a literal, got %T", ret.Operands[0])
	}
	if lit.U64 != 5 {
		t.Errorf("want 4+1 folded to 5, got %d", lit.U64)
	}
}
