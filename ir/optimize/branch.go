package optimize

import "github.com/accgo/acc/ir"

// foldBranches rewrites every split whose condition folded to a literal
// boolean into an unconditional jump to the taken target, detaching the
// untaken edge (phi sources included) so a later Prune sweep can remove
// any block that fell dead as a result.
//
// Fold's fixpoint loop only ever replaces a split's condition operand
// in place (it never touches the terminator's own shape, matching
// spec.md §4.3's listing of Fold/Promote/Prune as the only three passes);
// without this step a split left holding a literal condition has no
// flag-pseudo-register for target/x86's lowering to pin, since lowering
// only recognizes an actual compare instruction as a split's condition.
// Folding the branch itself closes that gap the same way a real backend
// treats `if (constant)`.
func foldBranches(c *ir.Container) bool {
	changed := false
	for _, b := range c.LexicalBlocks() {
		i := b.Last
		if i == nil || i.Op != ir.OpSplit {
			continue
		}
		lit, ok := i.Operands[0].(*ir.Literal)
		if !ok {
			continue
		}

		taken, dropped := i.Targets[0], i.Targets[1]
		if lit.IsZero() {
			taken, dropped = dropped, taken
		}

		for _, phi := range dropped.Phis() {
			removeFromPhi(c, b, phi)
		}
		dropped.RemovePred(b)

		i.Op = ir.OpJmp
		i.Operands = nil
		i.Targets = []*ir.Block{taken}
		for n, s := range b.Succs {
			if s == dropped {
				b.Succs = append(b.Succs[:n], b.Succs[n+1:]...)
				break
			}
		}
		changed = true
	}
	return changed
}
