package ir

// Block is a CFG node: an ordered list of instructions, predecessor/
// successor edges forming the control-flow graph, and lex-prev/lex-next
// neighbors forming the lexical chain used for ordered traversal and
// fall-through.
//
// Grounded on original_source/include/acc/itm.h's struct itm_block
// (lexnext/lexprev, previous/next edge lists, first/last instruction).
type Block struct {
	id int

	Container *Container

	First, Last *Instr

	Preds, Succs []*Block
	LexPrev, LexNext *Block

	// Label is the emitted text label for this block ("" until assigned
	// by the emitter; the IR printer uses %N instead; the entry block's label is the
	// container's external symbol, every other block gets ".L<n>").
	Label string
}

// ID returns this block's stable arena-assigned number (%N in dumps,
// independent of the emitted label).
func (b *Block) ID() int { return b.id }

// append adds instr at the tail of b's instruction list.
func (b *Block) append(instr *Instr) {
	instr.Block = b
	instr.Prev = b.Last
	instr.Next = nil
	if b.Last != nil {
		b.Last.Next = instr
	} else {
		b.First = instr
	}
	b.Last = instr
}

// insertAfter inserts instr immediately after at (at must belong to b, or
// at may be nil to insert at the head).
func (b *Block) insertAfter(at *Instr, instr *Instr) {
	instr.Block = b
	if at == nil {
		instr.Prev = nil
		instr.Next = b.First
		if b.First != nil {
			b.First.Prev = instr
		} else {
			b.Last = instr
		}
		b.First = instr
		return
	}
	instr.Prev = at
	instr.Next = at.Next
	if at.Next != nil {
		at.Next.Prev = instr
	} else {
		b.Last = instr
	}
	at.Next = instr
}

// remove unlinks instr from b's instruction list.
func (b *Block) remove(instr *Instr) {
	if instr.Prev != nil {
		instr.Prev.Next = instr.Next
	} else {
		b.First = instr.Next
	}
	if instr.Next != nil {
		instr.Next.Prev = instr.Prev
	} else {
		b.Last = instr.Prev
	}
	instr.Prev, instr.Next, instr.Block = nil, nil, nil
}

// lastAlloca returns the last itm_alloca in the entry-block's alloca run,
// or nil if none, so a new alloca can be appended right after it (keeping
// the "alloca*; phi*; any*" placement invariant at block head).
func (b *Block) lastAlloca() *Instr {
	var last *Instr
	for i := b.First; i != nil && i.Op == OpAlloca; i = i.Next {
		last = i
	}
	return last
}

// lastPhi returns the instruction a new phi is inserted after: the last
// OpPhi in b's phi run at the block head, or, when b has no phi yet, the
// last alloca of the entry block's alloca run, or nil.
func (b *Block) lastPhi() *Instr {
	var last *Instr
	start := b.First
	if b == b.Container.Entry {
		for start != nil && start.Op == OpAlloca {
			last = start
			start = start.Next
		}
	}
	for i := start; i != nil && i.Op == OpPhi; i = i.Next {
		last = i
	}
	return last
}

// AddSucc links b -> s as a CFG edge (and s's predecessor set
// symmetrically).
func (b *Block) AddSucc(s *Block) {
	b.Succs = append(b.Succs, s)
	s.Preds = append(s.Preds, b)
}

// RemovePred removes p from b's predecessor set (used by dead-block
// pruning); it does not touch p's successor set, since the caller is
// unlinking an already-dead block wholesale.
func (b *Block) RemovePred(p *Block) {
	for i, x := range b.Preds {
		if x == p {
			b.Preds = append(b.Preds[:i], b.Preds[i+1:]...)
			return
		}
	}
}

// phiStart returns the first instruction of b's phi run (skipping the
// entry block's alloca run first, if applicable).
func (b *Block) phiStart() *Instr {
	i := b.First
	if b == b.Container.Entry {
		for i != nil && i.Op == OpAlloca {
			i = i.Next
		}
	}
	return i
}

// Phis returns b's phi instructions, in order.
func (b *Block) Phis() []*Instr {
	var out []*Instr
	for i := b.phiStart(); i != nil && i.Op == OpPhi; i = i.Next {
		out = append(out, i)
	}
	return out
}

// FirstNonPhi returns the first instruction of b that is not part of the
// alloca/phi head run, or nil if b contains only alloca/phi instructions.
func (b *Block) FirstNonPhi() *Instr {
	i := b.phiStart()
	for i != nil && i.Op == OpPhi {
		i = i.Next
	}
	return i
}

// Instrs returns b's instructions in order, as a slice (convenience for
// analyses/tests; the canonical representation remains the linked list).
func (b *Block) Instrs() []*Instr {
	var out []*Instr
	for i := b.First; i != nil; i = i.Next {
		out = append(out, i)
	}
	return out
}
