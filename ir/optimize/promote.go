package optimize

import "github.com/accgo/acc/ir"

// promoKey memoizes one phi-per-(block,slot) during tracing, breaking
// cycles through loops the way original_source's opt.c's `dict` parallel
// list does.
type promoKey struct {
	block *ir.Block
	ptr   ir.Value
}

// Promote rewrites every load of a promotable (non-escaping) alloca slot
// with the value traced back to its last store, per spec.md §4.3 "SSA
// promotion", then deletes the now-dead store/load/alloca instructions.
//
// Grounded on original_source/src/itm/opt.c's o_phiable/traceload/
// remphiables.
func Promote(c *ir.Container) {
	memo := make(map[promoKey]ir.Value)

	for _, b := range c.LexicalBlocks() {
		for i := b.First; i != nil; i = i.Next {
			if i.Op != ir.OpLoad {
				continue
			}
			ptr := i.Operands[0]
			if !c.Tags.Phiable(ptr) {
				continue
			}
			repl := traceLoad(c, i, i, memo)
			ir.ReplaceOccurrences(c, i, repl)
		}
	}

	removePhiableAccesses(c)
}

// traceLoad resolves the value a load of ld's slot sees at program point
// at, per spec.md §4.3's five-step trace procedure.
func traceLoad(c *ir.Container, ld, at *ir.Instr, memo map[promoKey]ir.Value) ir.Value {
	ptr := ld.Operands[0]

	if at != ld {
		if at.Op == ir.OpStore && at.Operands[1] == ptr {
			return at.Operands[0]
		}
		if at.Op == ir.OpLoad && at.Operands[0] == ptr {
			repl := traceLoad(c, at, at, memo)
			ir.ReplaceOccurrences(c, at, repl)
			return repl
		}
	}

	if at.Prev != nil && at.Prev.Op != ir.OpPhi {
		return traceLoad(c, ld, at.Prev, memo)
	}

	block := at.Block
	switch len(block.Preds) {
	case 0:
		return ir.NewUndef(ld.Result)
	case 1:
		return traceLoad(c, ld, block.Preds[0].Last, memo)
	}

	key := promoKey{block, ptr}
	if v, ok := memo[key]; ok {
		return v
	}

	phi := ir.Phi(block, ld.Result)
	memo[key] = phi
	for _, p := range block.Preds {
		phi.AddArg(p, traceLoad(c, ld, p.Last, memo))
	}
	return phi
}

// removePhiableAccesses deletes every store/load of a promotable slot,
// then every promotable alloca itself -- original_source's remphiables,
// split into two passes so a store's disappearance never shifts which
// instruction a concurrent load scan would have visited.
func removePhiableAccesses(c *ir.Container) {
	var dead []*ir.Instr
	for _, b := range c.LexicalBlocks() {
		for i := b.First; i != nil; i = i.Next {
			switch i.Op {
			case ir.OpStore:
				if c.Tags.Phiable(i.Operands[1]) {
					dead = append(dead, i)
				}
			case ir.OpLoad:
				if c.Tags.Phiable(i.Operands[0]) {
					dead = append(dead, i)
				}
			}
		}
	}
	for _, i := range dead {
		ir.Remove(i)
	}

	dead = dead[:0]
	for _, b := range c.LexicalBlocks() {
		for i := b.First; i != nil; i = i.Next {
			if i.Op == ir.OpAlloca && c.Tags.Phiable(i) {
				dead = append(dead, i)
			}
		}
	}
	for _, i := range dead {
		ir.Remove(i)
	}
}
