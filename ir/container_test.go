package ir

import (
	"testing"

	"github.com/accgo/acc/ctype"
)

func TestNewContainerGivesDefinedLinkageAnEntryBlock(t *testing.T) {
	c := NewContainer("f", Global, &ctype.Func{Ret: ctype.Int})
	if c.Entry == nil {
		t.Fatal("want a non-nil entry block for Global linkage")
	}
	if got := len(c.LexicalBlocks()); got != 1 {
		t.Fatalf("want 1 lexical block, got %d", got)
	}
}

func TestNewContainerExternHasNoEntry(t *testing.T) {
	c := NewContainer("f", Extern, &ctype.Func{Ret: ctype.Int})
	if c.Entry != nil {
		t.Fatal("want a nil entry block for Extern linkage")
	}
	if got := len(c.Blocks()); got != 0 {
		t.Fatalf("want 0 blocks, got %d", got)
	}
}

func TestNewBlockAppendsToLexicalChain(t *testing.T) {
	c := NewContainer("f", Global, &ctype.Func{Ret: ctype.Int})
	b1 := c.NewBlock(c.Entry)
	b2 := c.NewBlock(b1)

	got := c.LexicalBlocks()
	want := []*Block{c.Entry, b1, b2}
	if len(got) != len(want) {
		t.Fatalf("want %d lexical blocks, got %d", len(want), len(got))
	}
	for i, b := range want {
		if got[i] != b {
			t.Errorf("lexical position %d: want block %d, got %d", i, b.ID(), got[i].ID())
		}
	}
}

func TestNewBlockInsertsMidChainWhenBeforeGiven(t *testing.T) {
	c := NewContainer("f", Global, &ctype.Func{Ret: ctype.Int})
	tail := c.NewBlock(c.Entry)
	mid := c.NewBlock(c.Entry)

	got := c.LexicalBlocks()
	want := []*Block{c.Entry, mid, tail}
	for i, b := range want {
		if got[i] != b {
			t.Errorf("lexical position %d: want block %d, got %d", i, b.ID(), got[i].ID())
		}
	}
}

func TestUnlinkBlockRemovesFromArenaAndChain(t *testing.T) {
	c := NewContainer("f", Global, &ctype.Func{Ret: ctype.Int})
	b1 := c.NewBlock(c.Entry)
	b2 := c.NewBlock(b1)

	c.UnlinkBlock(b1)

	if got := len(c.Blocks()); got != 2 {
		t.Fatalf("want 2 remaining blocks in arena, got %d", got)
	}
	if c.Entry.LexNext != b2 {
		t.Fatal("want entry's LexNext to skip the unlinked block")
	}
	if b2.LexPrev != c.Entry {
		t.Fatal("want b2's LexPrev to skip the unlinked block")
	}
}

func TestInternReturnsSameLiteralForSameKey(t *testing.T) {
	c := NewContainer("f", Global, &ctype.Func{Ret: ctype.Int})
	a := c.Intern(ctype.Int, 7)
	b := c.Intern(ctype.Int, 7)
	if a != b {
		t.Fatal("want Intern to return the same *Literal for the same (type, value) key")
	}
	other := c.Intern(ctype.Int, 8)
	if other == a {
		t.Fatal("want a distinct *Literal for a distinct value")
	}
}

func TestInstrIDsAreStableAndIncreasing(t *testing.T) {
	c := NewContainer("f", Global, &ctype.Func{Ret: ctype.Int})
	lit := testIntLit(7)
	i1 := Add(c.Entry, lit, lit)
	i2 := Sub(c.Entry, lit, lit)
	if i1.ID() >= i2.ID() {
		t.Errorf("want increasing instruction IDs, got %d then %d", i1.ID(), i2.ID())
	}
}

// testIntLit is a small shared helper for the ir package's tests.
func testIntLit(v int64) *Literal {
	return NewIntLiteral(ctype.Int, v, 32)
}
