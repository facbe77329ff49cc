package isa

import "strings"

// Instruction is a single VM operation or directive (spec.md §6.2).
// Instructions and directives are not distinguished by type, only by
// OpCode, matching the teacher's `ir/block.go` unified Statement shape.
type Instruction struct {
	Op       OpCode
	Size     Size
	Operands []Operand

	// Comment, if non-empty, is attached verbatim to the instruction for
	// the assembler's listing output.
	Comment string
}

// Instr builds an instruction with the given opcode and operands.
func Instr(op OpCode, operands ...Operand) Instruction {
	return Instruction{Op: op, Operands: operands}
}

// InstrSized builds a sized instruction (most arithmetic/move forms carry
// an explicit operand size per spec.md §6.2).
func InstrSized(op OpCode, size Size, operands ...Operand) Instruction {
	return Instruction{Op: op, Size: size, Operands: operands}
}

func (i Instruction) String() string {
	sb := strings.Builder{}
	sb.WriteString(i.Op.String())

	if i.Size != SizeNone {
		sb.WriteByte(' ')
		sb.WriteString(i.Size.String())
	}

	for idx, o := range i.Operands {
		if idx == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(o.String())
	}

	if i.Comment != "" {
		sb.WriteString("  ; ")
		sb.WriteString(i.Comment)
	}

	return sb.String()
}

// JumpTarget returns the label this instruction branches to, if any.
func (i Instruction) JumpTarget() (string, bool) {
	switch i.Op {
	case OpJumpDirect, OpBZ, OpBNZ, OpCall:
		for _, o := range i.Operands {
			if o.Kind == OperandNamed && o.RefKind == RefLabel {
				return o.Name, true
			}
		}
	}
	return "", false
}
