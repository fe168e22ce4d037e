package analyze

import "github.com/accgo/acc/ir"

// runLifetime computes, for every non-void, non-alloca instruction, the
// set of program points where its value's lifetime ends (spec.md §4.2
// "Lifetimes"), tagging each such point's first non-phi instruction (or,
// for a purely local value, its last local use) with TagEndlife.
//
// Grounded on original_source/src/itm/analyze.c's a_lifetime/lifetime,
// following spec.md's plain-English restatement of the algorithm rather
// than the C's exact loop mechanics (see DESIGN.md): a value is alive-in
// at a block iff used in that block, supplied to a phi there, or
// alive-out; alive-out iff some successor is alive-in. Recursion is
// memoized per defining value via a visited-block set, matching the
// original's per-instruction `done` list.
func runLifetime(c *ir.Container) {
	for _, b := range c.LexicalBlocks() {
		for i := b.First; i != nil; i = i.Next {
			if i.Op == ir.OpAlloca || isVoid(i.Result) {
				continue
			}
			visited := make(map[*ir.Block]bool)
			aliveIn(c, i, b, visited)
		}
	}
}

func isVoid(t interface{ String() string }) bool {
	return t == nil || t.String() == "void"
}

func aliveIn(c *ir.Container, v ir.Value, block *ir.Block, visited map[*ir.Block]bool) bool {
	if visited[block] {
		return false
	}
	visited[block] = true

	localUsed, lastUse := scanLocalUse(block, v)
	phiUsed := phiUsesValue(block, v)

	var aliveOut bool
	var deadSuccs []*ir.Block
	for _, s := range block.Succs {
		if aliveIn(c, v, s, visited) {
			aliveOut = true
		} else {
			deadSuccs = append(deadSuccs, s)
		}
	}

	if aliveOut {
		for _, s := range deadSuccs {
			if first := s.FirstNonPhi(); first != nil {
				c.Tags.AddEndlife(first, v)
			}
		}
	}

	if localUsed && !aliveOut {
		c.Tags.AddEndlife(lastUse, v)
	}

	return localUsed || phiUsed || aliveOut
}

// scanLocalUse scans block's non-phi instructions from the tail backward,
// returning the last (closest to the end) instruction that either uses v
// as an operand or -- for a value with no consumer at all in this block --
// is v's own definition site, matching original_source's `bi == instr`
// self-match (an unused value still ends its lifetime at its own def).
func scanLocalUse(block *ir.Block, v ir.Value) (bool, *ir.Instr) {
	for bi := block.Last; bi != nil && bi.Op != ir.OpPhi; bi = bi.Prev {
		if ir.Value(bi) == v {
			return true, bi
		}
		for _, op := range bi.Operands {
			if op == v {
				return true, bi
			}
		}
	}
	return false, nil
}

// phiUsesValue reports whether any phi at the head of block lists v as
// one of its source values.
func phiUsesValue(block *ir.Block, v ir.Value) bool {
	for _, phi := range block.Phis() {
		for _, arg := range phi.PhiArgs {
			if arg.Val == v {
				return true
			}
		}
	}
	return false
}
