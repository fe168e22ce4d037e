package analyze

import "github.com/accgo/acc/ir"

// runPhiable marks each alloca slot as promotable (TagPhiable) iff its
// address never escapes: it is only ever consumed by load, or as the
// pointer (not value) operand of store.
//
// Grounded on original_source/src/itm/analyze.c's a_phiable/isreferenced.
func runPhiable(c *ir.Container) {
	for _, b := range c.LexicalBlocks() {
		for i := b.First; i != nil; i = i.Next {
			if i.Op != ir.OpAlloca {
				continue
			}
			if !escapes(c, i) {
				c.Tags.SetPhiable(i)
			}
		}
	}
}

// escapes reports whether alloca's result is ever used as anything other
// than load's pointer operand or store's pointer (second) operand.
func escapes(c *ir.Container, alloca *ir.Instr) bool {
	for _, b := range c.LexicalBlocks() {
		for i := b.First; i != nil; i = i.Next {
			switch i.Op {
			case ir.OpLoad:
				if len(i.Operands) > 0 && i.Operands[0] == ir.Value(alloca) {
					continue
				}
			case ir.OpStore:
				// Operands are [value, pointer]; only the pointer slot is
				// a non-escaping use.
				for n, op := range i.Operands {
					if op == ir.Value(alloca) && n != len(i.Operands)-1 {
						return true
					}
				}
				continue
			}
			for _, op := range i.Operands {
				if op == ir.Value(alloca) {
					return true
				}
			}
			for _, arg := range i.PhiArgs {
				if arg.Val == ir.Value(alloca) {
					return true
				}
			}
		}
	}
	return false
}
