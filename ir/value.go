package ir

import (
	"fmt"
	"math"

	"github.com/accgo/acc/ctype"
)

// Value is any SSA value an instruction operand can reference: an Instr
// (whose identity IS the instruction), a Literal constant, or Undef.
//
// Grounded on _examples/original_source/include/acc/itm.h's itm_expr base
// and the ITME_LITERAL/ITME_INSTRUCTION variant split.
type Value interface {
	Type() ctype.Type
	// Operand renders v the way an operand is printed in the IR text
	// form: "T %N" for an instruction, "T literal" for a constant.
	Operand() string
}

// Literal is an inline constant: integer (up to 64 bits), float, or
// double, selected by the result type.
type Literal struct {
	Ty  ctype.Type
	U64 uint64  // integer payload, reinterpreted per Ty's width/signedness
	F32 float32 // valid when Ty == ctype.Float
	F64 float64 // valid when Ty == ctype.Double
}

func (l *Literal) Type() ctype.Type { return l.Ty }

func (l *Literal) Operand() string {
	return fmt.Sprintf("%s %s", l.Ty, l.String())
}

func (l *Literal) String() string {
	switch l.Ty {
	case ctype.Float:
		return fmt.Sprintf("%g", l.F32)
	case ctype.Double:
		return fmt.Sprintf("%g", l.F64)
	default:
		if ctype.Has(l.Ty, ctype.Signed) {
			return fmt.Sprintf("%d", int64(l.U64))
		}
		return fmt.Sprintf("%d", l.U64)
	}
}

// IsZero reports whether l is the integer or floating literal zero,
// used by the emitter's "xor dst,dst" / "test l,l" special cases.
func (l *Literal) IsZero() bool {
	switch l.Ty {
	case ctype.Float:
		return l.F32 == 0
	case ctype.Double:
		return l.F64 == 0
	default:
		return l.U64 == 0
	}
}

// IsOne reports whether l is the integer literal one, used by the
// emitter's inc/dec special case.
func (l *Literal) IsOne() bool {
	if ctype.Has(l.Ty, ctype.Floating) {
		return false
	}
	return l.U64 == 1
}

// NewIntLiteral builds an integer literal of type ty, truncated to ty's
// bit width.
func NewIntLiteral(ty ctype.Type, v int64, bits int) *Literal {
	lit := &Literal{Ty: ty, U64: uint64(v)}
	if bits > 0 && bits < 64 {
		mask := uint64(1)<<uint(bits) - 1
		lit.U64 &= mask
		if ctype.Has(ty, ctype.Signed) && lit.U64&(1<<uint(bits-1)) != 0 {
			// sign-extend the stored bit pattern for display purposes
			lit.U64 |= ^mask
		}
	}
	return lit
}

// NewFloatLiteral builds a float (single precision) literal.
func NewFloatLiteral(v float32) *Literal {
	return &Literal{Ty: ctype.Float, F32: v}
}

// NewDoubleLiteral builds a double precision literal.
func NewDoubleLiteral(v float64) *Literal {
	return &Literal{Ty: ctype.Double, F64: v}
}

// Bits returns l's raw bit pattern: the IEEE encoding for a float or
// double literal, the integer payload otherwise; used by bitcast folding.
func (l *Literal) Bits() uint64 {
	switch l.Ty {
	case ctype.Float:
		return uint64(math.Float32bits(l.F32))
	case ctype.Double:
		return math.Float64bits(l.F64)
	default:
		return l.U64
	}
}

// Undef is an explicit "undefined value" placeholder used during SSA
// construction (spec.md §3 "Literal / Undef").
type Undef struct {
	Ty ctype.Type
}

func (u *Undef) Type() ctype.Type { return u.Ty }
func (u *Undef) Operand() string  { return fmt.Sprintf("%s undef", u.Ty) }

// NewUndef constructs an Undef value of type ty.
func NewUndef(ty ctype.Type) *Undef {
	return &Undef{Ty: ty}
}

// IsConst reports whether v is a Literal or Undef (an evaluable operand
// for constant folding).
func IsConst(v Value) bool {
	switch v.(type) {
	case *Literal, *Undef:
		return true
	default:
		return false
	}
}
