package analyze

import (
	"testing"

	"github.com/accgo/acc/ctype"
	"github.com/accgo/acc/ir"
)

func intLit(v int64) *ir.Literal { return ir.NewIntLiteral(ctype.Int, v, 32) }

func TestRunUsedCountsEachOperandSlot(t *testing.T) {
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})
	one := intLit(1)
	add := ir.Add(c.Entry, one, one)
	ir.Ret(c.Entry, add)

	Run(c, Used)

	if got := c.Tags.Used(one); got != 2 {
		t.Errorf("want literal used twice (both operand slots), got %d", got)
	}
	if got := c.Tags.Used(add); got != 1 {
		t.Errorf("want add used once (by ret), got %d", got)
	}
}

func TestRunUsedIsIdempotent(t *testing.T) {
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})
	one := intLit(1)
	ir.Ret(c.Entry, one)

	Run(c, Used)
	Run(c, Used)

	if got := c.Tags.Used(one); got != 1 {
		t.Errorf("want a second Run to produce the same count, not accumulate: got %d", got)
	}
}

func TestRunUsedCountsPhiSources(t *testing.T) {
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})
	pred := c.NewBlock(c.Entry)
	one := intLit(1)
	phi := ir.Phi(c.Entry, ctype.Int)
	phi.AddArg(pred, one)
	ir.Ret(c.Entry, phi)

	Run(c, Used)

	if got := c.Tags.Used(one); got != 1 {
		t.Errorf("want the phi's source value counted as used, got %d", got)
	}
}

func TestRunPhiableMarksOnlyNonEscapingAllocas(t *testing.T) {
	arena := ctype.NewArena()
	ptrTy := arena.Pointer(ctype.Int, 64)
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})

	promotable := ir.Alloca(c.Entry, ctype.Int, ptrTy)
	ir.Store(c.Entry, intLit(1), promotable)
	loaded := ir.Load(c.Entry, promotable)

	escaping := ir.Alloca(c.Entry, ctype.Int, ptrTy)
	// Using the escaping alloca's pointer as a stored *value* (not the
	// pointer operand) counts as an escape.
	other := ir.Alloca(c.Entry, ctype.Int, ptrTy)
	ir.Store(c.Entry, escaping, other)

	ir.Ret(c.Entry, loaded)

	Run(c, Phiable)

	if !c.Tags.Phiable(promotable) {
		t.Error("want the load/store-only alloca marked phiable")
	}
	if c.Tags.Phiable(escaping) {
		t.Error("want the alloca stored as a value (not a pointer) to NOT be marked phiable")
	}
}

func TestRunLifetimeTagsEndAtLastLocalUse(t *testing.T) {
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})
	one := intLit(1)
	add := ir.Add(c.Entry, one, one)
	sub := ir.Sub(c.Entry, add, one)
	ir.Ret(c.Entry, sub)

	Run(c, Lifetime)

	// `add` is last used by `sub`; its lifetime should end there.
	end := c.Tags.Endlife(sub)
	found := false
	for _, v := range end {
		if v == ir.Value(add) {
			found = true
		}
	}
	if !found {
		t.Errorf("want add's lifetime to end at sub, got endlife(sub)=%v", end)
	}
}

func TestRunLifetimeCrossesBlockBoundaryToDeadSuccessor(t *testing.T) {
	c := ir.NewContainer("f", ir.Global, &ctype.Func{Ret: ctype.Int})
	one := intLit(1)
	val := ir.Add(c.Entry, one, one)

	live := c.NewBlock(c.Entry)
	dead := c.NewBlock(live)
	ir.Split(c.Entry, one, live, dead)
	ir.Ret(live, val)
	ir.Ret(dead, one)

	Run(c, Lifetime)

	// val is alive into `live` (used by its ret) but not into `dead`; its
	// lifetime should end at dead's first instruction.
	end := c.Tags.Endlife(dead.First)
	found := false
	for _, v := range end {
		if v == ir.Value(val) {
			found = true
		}
	}
	if !found {
		t.Errorf("want val's lifetime to end at dead's entry, got endlife=%v", end)
	}
}
