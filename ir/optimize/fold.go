package optimize

import (
	"math"

	"github.com/accgo/acc/ctype"
	"github.com/accgo/acc/ir"
)

// Fold performs constant folding (spec.md §4.3 "Constant folding"): every
// instruction whose operands are all literal (or undef) is evaluated and
// every occurrence of its result replaced by the literal. Fold also covers
// comparison opcodes, folding literal-operand comparisons to a boolean
// literal -- a SPEC_FULL.md addition grounded on
// original_source/src/itm/opt.c's o_cfld, whose itm_eval call is also
// responsible for folding compares (the itm_eval definition itself wasn't
// among the retrieved original sources, so its compare-folding behavior is
// inferred from o_cfld's single uniform call site and reimplemented here
// directly rather than guessed at blindly).
//
// Fold is a fixpoint pass: it repeats until a full sweep performs no
// rewrites, matching spec.md §8's "second pass performs no rewrites"
// invariant.
func Fold(c *ir.Container) {
	for {
		changed := false
		for _, b := range c.LexicalBlocks() {
			for i := b.First; i != nil; {
				next := i.Next
				if repl, ok := evalConst(c, i); ok {
					ir.ReplaceOccurrences(c, i, repl)
					ir.Remove(i)
					changed = true
				}
				i = next
			}
		}
		if !changed {
			return
		}
	}
}

func allConst(i *ir.Instr) bool {
	if i.Op.IsTerminator() || i.Op == ir.OpPhi || i.Op == ir.OpAlloca ||
		i.Op == ir.OpLoad || i.Op == ir.OpStore || i.Op == ir.OpClobb {
		return false
	}
	if len(i.Operands) == 0 {
		return false
	}
	for _, op := range i.Operands {
		if !ir.IsConst(op) {
			return false
		}
	}
	return true
}

// evalConst evaluates i if all of its operands are constant, returning the
// replacement literal/undef and true.
func evalConst(c *ir.Container, i *ir.Instr) (ir.Value, bool) {
	if !allConst(i) {
		return nil, false
	}

	for _, op := range i.Operands {
		if _, ok := op.(*ir.Undef); ok {
			return ir.NewUndef(i.Result), true
		}
	}

	if i.Op.IsCast() {
		return evalCast(i), true
	}
	if i.Op.IsCompare() {
		return evalCompare(i), true
	}
	return evalArith(i)
}

func isFloaty(ty ctype.Type) bool { return ctype.Has(ty, ctype.Floating) }

func evalArith(i *ir.Instr) (ir.Value, bool) {
	l := i.Operands[0].(*ir.Literal)
	r := i.Operands[1].(*ir.Literal)

	if isFloaty(i.Result) {
		lv, rv := floatVal(l), floatVal(r)
		var res float64
		switch i.Op {
		case ir.OpAdd:
			res = lv + rv
		case ir.OpSub:
			res = lv - rv
		case ir.OpMul, ir.OpIMul:
			res = lv * rv
		case ir.OpDiv, ir.OpIDiv:
			if rv == 0 {
				return nil, false
			}
			res = lv / rv
		default:
			return nil, false
		}
		return newFloatLiteral(i.Result, res), true
	}

	signed := ctype.Has(i.Result, ctype.Signed)
	bits := literalBits(i.Result)
	lv, rv := l.U64, r.U64
	var res uint64
	switch i.Op {
	case ir.OpAdd:
		res = lv + rv
	case ir.OpSub:
		res = lv - rv
	case ir.OpMul:
		res = lv * rv
	case ir.OpIMul:
		res = uint64(int64(lv) * int64(rv))
	case ir.OpDiv:
		if rv == 0 {
			return nil, false
		}
		res = lv / rv
	case ir.OpIDiv:
		if rv == 0 {
			return nil, false
		}
		res = uint64(int64(lv) / int64(rv))
	case ir.OpRem:
		if rv == 0 {
			return nil, false
		}
		if signed {
			res = uint64(int64(lv) % int64(rv))
		} else {
			res = lv % rv
		}
	case ir.OpShl, ir.OpSal:
		res = lv << (rv & 63)
	case ir.OpShr:
		res = lv >> (rv & 63)
	case ir.OpSar:
		res = uint64(int64(lv) >> (rv & 63))
	case ir.OpAnd:
		res = lv & rv
	case ir.OpOr:
		res = lv | rv
	case ir.OpXor:
		res = lv ^ rv
	default:
		return nil, false
	}
	return ir.NewIntLiteral(i.Result, int64(res), bits), true
}

func evalCompare(i *ir.Instr) ir.Value {
	l := i.Operands[0].(*ir.Literal)
	r := i.Operands[1].(*ir.Literal)

	var lt, eq bool
	if isFloaty(l.Ty) {
		lv, rv := floatVal(l), floatVal(r)
		lt, eq = lv < rv, lv == rv
	} else if ctype.Has(l.Ty, ctype.Signed) {
		lt, eq = int64(l.U64) < int64(r.U64), l.U64 == r.U64
	} else {
		lt, eq = l.U64 < r.U64, l.U64 == r.U64
	}

	var result bool
	switch i.Op {
	case ir.OpCmpEq:
		result = eq
	case ir.OpCmpNeq:
		result = !eq
	case ir.OpCmpLt:
		result = lt
	case ir.OpCmpLte:
		result = lt || eq
	case ir.OpCmpGt:
		result = !lt && !eq
	case ir.OpCmpGte:
		result = !lt
	}
	if result {
		return ir.NewIntLiteral(ctype.Bool, 1, 1)
	}
	return ir.NewIntLiteral(ctype.Bool, 0, 1)
}

func evalCast(i *ir.Instr) ir.Value {
	l := i.Operands[0].(*ir.Literal)
	to := i.Result

	switch i.Op {
	case ir.OpItof:
		var v float64
		if ctype.Has(l.Ty, ctype.Signed) {
			v = float64(int64(l.U64))
		} else {
			v = float64(l.U64)
		}
		return newFloatLiteral(to, v)
	case ir.OpFtoi:
		return ir.NewIntLiteral(to, int64(floatVal(l)), literalBits(to))
	case ir.OpFext, ir.OpFtrunc:
		return newFloatLiteral(to, floatVal(l))
	case ir.OpBitcast:
		if isFloaty(to) && !isFloaty(l.Ty) {
			return newFloatLiteral(to, floatFromBits(to, l.U64))
		}
		if !isFloaty(to) && isFloaty(l.Ty) {
			return ir.NewIntLiteral(to, int64(l.Bits()), literalBits(to))
		}
		return ir.NewIntLiteral(to, int64(l.U64), literalBits(to))
	default: // Trunc, Zext, Sext
		return ir.NewIntLiteral(to, int64(l.U64), literalBits(to))
	}
}

func literalBits(ty ctype.Type) int {
	s := ty.Size()
	if s <= 0 {
		return 64
	}
	return s * 8
}

func floatVal(l *ir.Literal) float64 {
	switch l.Ty {
	case ctype.Float:
		return float64(l.F32)
	case ctype.Double:
		return l.F64
	default:
		if ctype.Has(l.Ty, ctype.Signed) {
			return float64(int64(l.U64))
		}
		return float64(l.U64)
	}
}

func floatFromBits(to ctype.Type, bits uint64) float64 {
	if to == ctype.Float {
		return float64(math.Float32frombits(uint32(bits)))
	}
	return math.Float64frombits(bits)
}

func newFloatLiteral(ty ctype.Type, v float64) *ir.Literal {
	if ty == ctype.Float {
		return ir.NewFloatLiteral(float32(v))
	}
	return ir.NewDoubleLiteral(v)
}
