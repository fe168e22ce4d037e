package ir

import (
	"testing"

	"github.com/accgo/acc/ctype"
)

func TestReplaceOccurrencesRewritesOperandsAndPhiArgs(t *testing.T) {
	c := NewContainer("f", Global, &ctype.Func{Ret: ctype.Int})
	pred := c.NewBlock(c.Entry)
	old := testIntLit(1)
	with := testIntLit(2)

	user := Add(c.Entry, old, old)
	phi := Phi(c.Entry, ctype.Int)
	phi.AddArg(pred, old)

	ReplaceOccurrences(c, old, with)

	if user.Operands[0] != with || user.Operands[1] != with {
		t.Fatalf("want both operand slots rewritten, got %v", user.Operands)
	}
	got, _ := phi.ArgFor(pred)
	if got != with {
		t.Fatalf("want the phi source rewritten, got %v", got)
	}
}

func TestRemoveUnlinksFromBlock(t *testing.T) {
	c := NewContainer("f", Global, &ctype.Func{Ret: ctype.Int})
	lit := testIntLit(1)
	i1 := Add(c.Entry, lit, lit)
	i2 := Sub(c.Entry, lit, lit)

	Remove(i1)

	got := c.Entry.Instrs()
	if len(got) != 1 || got[0] != i2 {
		t.Fatalf("want only i2 remaining, got %v", got)
	}
}

func TestReplaceRewritesThenRemoves(t *testing.T) {
	c := NewContainer("f", Global, &ctype.Func{Ret: ctype.Int})
	lit := testIntLit(1)
	toReplace := Add(c.Entry, lit, lit)
	user := Sub(c.Entry, toReplace, lit)

	with := testIntLit(3)
	Replace(c, toReplace, with)

	if user.Operands[0] != with {
		t.Fatalf("want user's operand rewritten to `with`, got %v", user.Operands[0])
	}
	got := c.Entry.Instrs()
	for _, i := range got {
		if i == toReplace {
			t.Fatal("want the replaced instruction removed from its block")
		}
	}
}
