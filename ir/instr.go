package ir

import (
	"fmt"

	"github.com/accgo/acc/ctype"
)

// PhiArg pairs one predecessor block with the value it supplies to a phi.
type PhiArg struct {
	Pred *Block
	Val  Value
}

// Instr is a typed SSA value produced by an opcode applied to operand
// values; its identity IS the value (other code references it by
// pointer). Grounded on original_source/include/acc/itm.h's struct
// itm_instr.
type Instr struct {
	id int // arena-assigned %N, stable for the life of the container

	Op     Opcode
	Result ctype.Type // ctype.Void for void-producing instructions

	Operands    []Value    // ordered value operands (not used by phi; see PhiArgs)
	TypeOperand ctype.Type // set for casts and alloca
	PhiArgs     []PhiArg   // set for phi only

	Targets []*Block // jmp: [target]; split: [true, false]

	Prev, Next *Instr
	Block      *Block
}

func (i *Instr) Type() ctype.Type { return i.Result }

func (i *Instr) Operand() string {
	return fmt.Sprintf("%s %%%d", i.Result, i.id)
}

// ID returns this instruction's stable arena-assigned number, used for
// %N printing and as a map key substitute where a deterministic ordinal
// is useful (e.g. test assertions).
func (i *Instr) ID() int { return i.id }

// IsTerminator reports whether i may only appear as the last instruction
// of its block.
func (i *Instr) IsTerminator() bool { return i.Op.IsTerminator() }

// String renders the %N form.
func (i *Instr) String() string { return fmt.Sprintf("%%%d", i.id) }
