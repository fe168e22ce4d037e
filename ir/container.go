package ir

import "github.com/accgo/acc/ctype"

// Linkage is a Container's external visibility.
type Linkage int

const (
	Global Linkage = iota
	Static
	Extern
)

func (l Linkage) String() string {
	switch l {
	case Global:
		return "global"
	case Static:
		return "static"
	default:
		return "extern"
	}
}

// Container is a named top-level entity (function or global) owning all
// IR produced into it: an entry block (or none, for extern), a literal
// pool, and the arena of blocks/instructions reachable from that entry.
//
// Grounded on spec.md §3 "Container" and
// original_source/src/intermediate.c's container construction.
type Container struct {
	Name    string
	Linkage Linkage
	Type    ctype.Type // function type, or the global's value type

	Entry *Block

	Tags *Tags

	blocks       []*Block
	literalPool  map[literalKey]*Literal
	nextBlockID  int
	nextInstrID  int
}

type literalKey struct {
	ty  ctype.Type
	u64 uint64
}

// NewContainer creates an empty container. For Extern linkage, call no
// further block-construction methods; Entry stays nil.
func NewContainer(name string, linkage Linkage, ty ctype.Type) *Container {
	c := &Container{
		Name:        name,
		Linkage:     linkage,
		Type:        ty,
		Tags:        NewTags(),
		literalPool: make(map[literalKey]*Literal),
	}
	if linkage != Extern {
		c.Entry = c.NewBlock(nil)
	}
	return c
}

// NewBlock allocates a new block in this container, linked into the
// lexical chain immediately after `before` (nil means "at the end").
func (c *Container) NewBlock(before *Block) *Block {
	b := &Block{id: c.nextBlockID, Container: c}
	c.nextBlockID++

	if before == nil {
		// append at tail of lexical chain
		last := c.firstLexical()
		for last != nil && last.LexNext != nil {
			last = last.LexNext
		}
		if last != nil {
			last.LexNext = b
			b.LexPrev = last
		}
	} else {
		b.LexPrev = before
		b.LexNext = before.LexNext
		if before.LexNext != nil {
			before.LexNext.LexPrev = b
		}
		before.LexNext = b
	}
	c.blocks = append(c.blocks, b)
	return b
}

// Blocks returns every block owned by this container, in arena
// (construction) order -- not necessarily lexical order; use
// LexicalBlocks for that.
func (c *Container) Blocks() []*Block {
	return c.blocks
}

// LexicalBlocks walks the lexical chain from the entry block, returning
// blocks in the order the emitter and IR dump traverse them.
func (c *Container) LexicalBlocks() []*Block {
	var out []*Block
	for b := c.firstLexical(); b != nil; b = b.LexNext {
		out = append(out, b)
	}
	return out
}

func (c *Container) firstLexical() *Block {
	b := c.Entry
	if b == nil && len(c.blocks) > 0 {
		b = c.blocks[0]
	}
	for b != nil && b.LexPrev != nil {
		b = b.LexPrev
	}
	return b
}

// UnlinkBlock removes b from the lexical chain and the owned-blocks
// arena (used by dead-block pruning). It does not touch CFG edges --
// callers must have already cleared those.
func (c *Container) UnlinkBlock(b *Block) {
	if b.LexPrev != nil {
		b.LexPrev.LexNext = b.LexNext
	}
	if b.LexNext != nil {
		b.LexNext.LexPrev = b.LexPrev
	}
	for i, x := range c.blocks {
		if x == b {
			c.blocks = append(c.blocks[:i], c.blocks[i+1:]...)
			break
		}
	}
}

// Intern returns the pool's shared *Literal equal to the given integer
// literal, allocating it on first use (spec.md §3 "a pool of owned literal
// constants").
func (c *Container) Intern(ty ctype.Type, u64 uint64) *Literal {
	k := literalKey{ty, u64}
	if lit, ok := c.literalPool[k]; ok {
		return lit
	}
	lit := &Literal{Ty: ty, U64: u64}
	c.literalPool[k] = lit
	return lit
}

// newInstrID assigns the next arena-stable instruction number.
func (c *Container) newInstrID() int {
	id := c.nextInstrID
	c.nextInstrID++
	return id
}
