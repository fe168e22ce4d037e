package ir

// This file holds the instruction-removal / value-replacement operations
// the optimizer uses to rewrite IR while preserving SSA well-formedness,
// grounded on original_source/src/itm/opt.c's itm_remi/itm_replocc/
// itm_repli (referenced there but defined in src/itm.c).

// ReplaceOccurrences rewrites every operand slot referencing `old` (within
// the given container) to reference `with` instead -- arithmetic
// operands, phi source values, split conditions, ret/store values. Block
// targets are never rewritten by this call (those are structural, not
// SSA-value references).
func ReplaceOccurrences(c *Container, old, with Value) {
	for _, b := range c.blocks {
		for i := b.First; i != nil; i = i.Next {
			for n, op := range i.Operands {
				if op == old {
					i.Operands[n] = with
				}
			}
			for n, arg := range i.PhiArgs {
				if arg.Val == old {
					i.PhiArgs[n].Val = with
				}
			}
		}
	}
}

// Remove unlinks instr from its block's instruction list. The caller is
// responsible for having already redirected any remaining references to
// it (e.g. via ReplaceOccurrences).
func Remove(instr *Instr) {
	instr.Block.remove(instr)
}

// Replace rewrites every occurrence of instr with `with` across the whole
// container, then removes instr -- original_source's itm_repli.
func Replace(c *Container, instr *Instr, with Value) {
	ReplaceOccurrences(c, instr, with)
	Remove(instr)
}
