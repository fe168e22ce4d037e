package ir

import (
	"fmt"
	"io"
	"strings"
)

// Fprint renders c in the IR text form of spec.md §6: one
// "linkage T id { ... }" header, then each block as "%N:" followed by
// tab-indented instructions. Tags (if non-nil) are rendered as trailing
// "#name(payload)" annotations, matching original_source's debug dump
// style of interleaving tag state with instruction text.
func Fprint(w io.Writer, c *Container, tags *Tags) error {
	if _, err := fmt.Fprintf(w, "%s %s %s {\n", c.Linkage, c.Type, c.Name); err != nil {
		return err
	}
	for _, b := range c.LexicalBlocks() {
		if _, err := fmt.Fprintf(w, "%%%d:\n", b.id); err != nil {
			return err
		}
		for i := b.First; i != nil; i = i.Next {
			if err := fprintInstr(w, i, tags); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "}\n")
	return err
}

func fprintInstr(w io.Writer, i *Instr, tags *Tags) error {
	var b strings.Builder
	b.WriteByte('\t')
	if i.Result != nil && i.Result.String() != "void" {
		fmt.Fprintf(&b, "%%%d = %s ", i.id, i.Result)
	}
	b.WriteString(i.Op.String())

	var operands []string
	if i.Op == OpPhi {
		for _, a := range i.PhiArgs {
			operands = append(operands, fmt.Sprintf("%%%d: %s", a.Pred.id, a.Val.Operand()))
		}
	} else {
		for _, op := range i.Operands {
			operands = append(operands, op.Operand())
		}
		for _, t := range i.Targets {
			operands = append(operands, fmt.Sprintf("%%%d", t.id))
		}
	}
	if len(operands) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(operands, ", "))
	}
	if i.TypeOperand != nil {
		fmt.Fprintf(&b, ", %s", i.TypeOperand)
	}

	if tags != nil {
		writeTags(&b, tags, i)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTags(b *strings.Builder, tags *Tags, v Value) {
	for _, name := range []string{TagUsed, TagEndlife, TagPhiable, TagLoc, TagLocHint} {
		tag := tags.Get(v, name)
		if tag == nil {
			continue
		}
		switch tag.Kind {
		case TagNone:
			fmt.Fprintf(b, " #%s", name)
		case TagInt:
			fmt.Fprintf(b, " #%s(%d)", name, tag.I)
		case TagList:
			parts := make([]string, len(tag.List))
			for n, v := range tag.List {
				parts[n] = v.Operand()
			}
			fmt.Fprintf(b, " #%s(%s)", name, strings.Join(parts, ", "))
		case TagPtr:
			if s, ok := tag.Ptr.(fmt.Stringer); ok {
				fmt.Fprintf(b, " #%s(%s)", name, s.String())
			} else {
				fmt.Fprintf(b, " #%s(%v)", name, tag.Ptr)
			}
		}
	}
}
