package ir

import "github.com/accgo/acc/ctype"

// This file is the typed constructor surface (spec.md's "C3 IR builder"):
// one function per opcode, each wiring the new instruction into its
// block's instruction list and enforcing the two placement invariants:
// alloca is hoisted to the entry block's alloca run, phi is hoisted to its
// block's phi run.
//
// Grounded on original_source/include/acc/itm.h's itm_add/itm_sub/...
// family, each of which takes the block to build into as its first
// argument rather than a stateful cursor -- this package keeps that shape.

func newInstr(op Opcode, result ctype.Type, operands ...Value) *Instr {
	return &Instr{Op: op, Result: result, Operands: operands}
}

// place appends instr according to op's placement rule, returning instr.
func place(b *Block, instr *Instr) *Instr {
	instr.id = b.Container.newInstrID()
	switch instr.Op {
	case OpAlloca:
		entry := b.Container.Entry
		entry.insertAfter(entry.lastAlloca(), instr)
	case OpPhi:
		b.insertAfter(b.lastPhi(), instr)
	default:
		b.append(instr)
	}
	return instr
}

func binop(b *Block, op Opcode, l, r Value) *Instr {
	return place(b, newInstr(op, l.Type(), l, r))
}

func Add(b *Block, l, r Value) *Instr    { return binop(b, OpAdd, l, r) }
func Sub(b *Block, l, r Value) *Instr    { return binop(b, OpSub, l, r) }
func Mul(b *Block, l, r Value) *Instr    { return binop(b, OpMul, l, r) }
func IMul(b *Block, l, r Value) *Instr   { return binop(b, OpIMul, l, r) }
func Div(b *Block, l, r Value) *Instr    { return binop(b, OpDiv, l, r) }
func IDiv(b *Block, l, r Value) *Instr   { return binop(b, OpIDiv, l, r) }
func Rem(b *Block, l, r Value) *Instr    { return binop(b, OpRem, l, r) }
func Shl(b *Block, l, r Value) *Instr    { return binop(b, OpShl, l, r) }
func Shr(b *Block, l, r Value) *Instr    { return binop(b, OpShr, l, r) }
func Sal(b *Block, l, r Value) *Instr    { return binop(b, OpSal, l, r) }
func Sar(b *Block, l, r Value) *Instr    { return binop(b, OpSar, l, r) }
func And(b *Block, l, r Value) *Instr    { return binop(b, OpAnd, l, r) }
func Or(b *Block, l, r Value) *Instr     { return binop(b, OpOr, l, r) }
func Xor(b *Block, l, r Value) *Instr    { return binop(b, OpXor, l, r) }

func cmp(b *Block, op Opcode, l, r Value) *Instr {
	return place(b, newInstr(op, ctype.Bool, l, r))
}

func CmpEq(b *Block, l, r Value) *Instr   { return cmp(b, OpCmpEq, l, r) }
func CmpNeq(b *Block, l, r Value) *Instr  { return cmp(b, OpCmpNeq, l, r) }
func CmpLt(b *Block, l, r Value) *Instr   { return cmp(b, OpCmpLt, l, r) }
func CmpLte(b *Block, l, r Value) *Instr  { return cmp(b, OpCmpLte, l, r) }
func CmpGt(b *Block, l, r Value) *Instr   { return cmp(b, OpCmpGt, l, r) }
func CmpGte(b *Block, l, r Value) *Instr  { return cmp(b, OpCmpGte, l, r) }

func cast(b *Block, op Opcode, l Value, to ctype.Type) *Instr {
	i := newInstr(op, to, l)
	i.TypeOperand = to
	return place(b, i)
}

func Bitcast(b *Block, l Value, to ctype.Type) *Instr { return cast(b, OpBitcast, l, to) }
func Trunc(b *Block, l Value, to ctype.Type) *Instr   { return cast(b, OpTrunc, l, to) }
func Zext(b *Block, l Value, to ctype.Type) *Instr    { return cast(b, OpZext, l, to) }
func Sext(b *Block, l Value, to ctype.Type) *Instr    { return cast(b, OpSext, l, to) }
func Itof(b *Block, l Value, to ctype.Type) *Instr    { return cast(b, OpItof, l, to) }
func Ftoi(b *Block, l Value, to ctype.Type) *Instr    { return cast(b, OpFtoi, l, to) }
func Ftrunc(b *Block, l Value, to ctype.Type) *Instr  { return cast(b, OpFtrunc, l, to) }
func Fext(b *Block, l Value, to ctype.Type) *Instr    { return cast(b, OpFext, l, to) }

// Cast picks the opcode by kind rather than syntax, per spec.md §4.1
// "Casts selected by kind, not syntax".
func Cast(b *Block, arena *ctype.Arena, cpuBits int, l Value, to ctype.Type) *Instr {
	from := l.Type()
	fromFloat := ctype.Has(from, ctype.Floating)
	toFloat := ctype.Has(to, ctype.Floating)

	switch {
	case fromFloat && !toFloat:
		return Ftoi(b, l, to)
	case !fromFloat && toFloat:
		return Itof(b, l, to)
	case fromFloat && toFloat:
		if sizeOf(to) > sizeOf(from) {
			return Fext(b, l, to)
		}
		if sizeOf(to) < sizeOf(from) {
			return Ftrunc(b, l, to)
		}
		return Bitcast(b, l, to)
	default:
		fw, tw := bitsOf(from, cpuBits), bitsOf(to, cpuBits)
		switch {
		case tw < fw:
			return Trunc(b, l, to)
		case tw > fw:
			if ctype.Has(from, ctype.Signed) {
				return Sext(b, l, to)
			}
			return Zext(b, l, to)
		default:
			return Bitcast(b, l, to)
		}
	}
}

func sizeOf(t ctype.Type) int { return t.Size() }

func bitsOf(t ctype.Type, cpuBits int) int {
	if _, ok := t.(*ctype.Pointer); ok {
		return cpuBits
	}
	s := t.Size()
	if s < 0 {
		return cpuBits
	}
	return s * 8
}

// Getptr offsets pointer p by scaled index idx.
func Getptr(b *Block, p Value, idx Value) *Instr {
	return place(b, newInstr(OpGetptr, p.Type(), p, idx))
}

// Deepptr indexes into the pointee's k-th field/element; resultTy must be
// the pointer-to-member type the caller derived from the pointee's kind
// (pointer->pointee; record->k-th field; array->element), per spec.md
// §4.1 "Memory".
func Deepptr(b *Block, p Value, k Value, resultTy ctype.Type) *Instr {
	i := newInstr(OpDeepptr, resultTy, p, k)
	return place(b, i)
}

// Alloca reserves a stack slot of type ty, producing a pointer to it.
// Always hoisted to the entry block regardless of which block b names.
func Alloca(b *Block, ty ctype.Type, ptrTy ctype.Type) *Instr {
	i := newInstr(OpAlloca, ptrTy)
	i.TypeOperand = ty
	return place(b, i)
}

func Load(b *Block, p Value) *Instr {
	pt := p.Type()
	ptr, ok := ctype.Unqualify(pt).(*ctype.Pointer)
	var elem ctype.Type = ctype.Void
	if ok {
		elem = ptr.Elem
	}
	return place(b, newInstr(OpLoad, elem, p))
}

func Store(b *Block, v, p Value) *Instr {
	return place(b, newInstr(OpStore, ctype.Void, v, p))
}

// Phi creates a phi node with no operands yet (use AddArg to fill them);
// it is hoisted to the head of b per the placement invariant.
func Phi(b *Block, ty ctype.Type) *Instr {
	i := newInstr(OpPhi, ty)
	return place(b, i)
}

// AddArg appends one (predecessor, value) source pair to a phi.
func (i *Instr) AddArg(pred *Block, v Value) {
	i.PhiArgs = append(i.PhiArgs, PhiArg{Pred: pred, Val: v})
}

// ArgFor returns the value a phi receives from pred, if any.
func (i *Instr) ArgFor(pred *Block) (Value, bool) {
	for _, a := range i.PhiArgs {
		if a.Pred == pred {
			return a.Val, true
		}
	}
	return nil, false
}

func Jmp(b *Block, to *Block) *Instr {
	i := newInstr(OpJmp, ctype.Void)
	i.Targets = []*Block{to}
	b.AddSucc(to)
	return place(b, i)
}

func Split(b *Block, cond Value, t, f *Block) *Instr {
	i := newInstr(OpSplit, ctype.Void, cond)
	i.Targets = []*Block{t, f}
	b.AddSucc(t)
	b.AddSucc(f)
	return place(b, i)
}

func Ret(b *Block, v Value) *Instr {
	return place(b, newInstr(OpRet, ctype.Void, v))
}

func Leave(b *Block) *Instr {
	return place(b, newInstr(OpLeave, ctype.Void))
}

// Mov and Clobb are introduced only by target lowering (spec.md §4.1
// "Helper"); constructed here so lowering stays a thin IR-to-IR pass with
// no private instruction-building logic of its own.
func Mov(b *Block, v Value) *Instr {
	return place(b, newInstr(OpMov, v.Type(), v))
}

// InsertMovAfter builds a mov of v and inserts it into b immediately
// after at (at may be nil for "at the block head", subject to the
// phi/alloca placement rules of whatever block it lands in -- lowering
// always targets ordinary instruction positions, never a phi/alloca
// run). b is required explicitly rather than read off at.Block because
// at is nil exactly when lowering targets a block's first instruction.
func InsertMovAfter(b *Block, at *Instr, v Value) *Instr {
	mv := newInstr(OpMov, v.Type(), v)
	mv.id = b.Container.newInstrID()
	b.insertAfter(at, mv)
	return mv
}

// ClobbAfter builds an explicit clobber of a location; it carries no operand or
// meaningful result type beyond void, and is placed immediately after at.
func ClobbAfter(at *Instr) *Instr {
	b := at.Block
	cl := newInstr(OpClobb, ctype.Void)
	cl.id = b.Container.newInstrID()
	b.insertAfter(at, cl)
	return cl
}
