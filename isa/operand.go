package isa

import "fmt"

// Size is an operand width, per spec.md §6.2.
type Size int

const (
	SizeNone Size = iota
	SizeByte
	SizeWord
	SizeDword
	SizeQword
)

func (s Size) String() string {
	switch s {
	case SizeByte:
		return "byte"
	case SizeWord:
		return "word"
	case SizeDword:
		return "dword"
	case SizeQword:
		return "qword"
	default:
		return ""
	}
}

// SizeForBytes returns the narrowest operand Size that holds n bytes,
// rounding up. Composite operands whose natural size isn't a power of two
// (e.g. a 3-byte struct) still round to the next representable size.
func SizeForBytes(n int) Size {
	switch {
	case n <= 1:
		return SizeByte
	case n <= 2:
		return SizeWord
	case n <= 4:
		return SizeDword
	default:
		return SizeQword
	}
}

// RefKind distinguishes the three ways a named reference can resolve
// (spec.md §6.2).
type RefKind int

const (
	RefLocal RefKind = iota
	RefLabel
	RefOffset
)

// OperandKind tags the variant held by an Operand.
type OperandKind int

const (
	OperandImmediate OperandKind = iota
	OperandRegister
	OperandNamed
	OperandIndirect
)

// Operand is a single instruction operand: a sized immediate, a VM
// register, a named reference (local/label/offset), or an indirect
// reference through an address register plus a byte displacement.
type Operand struct {
	Kind OperandKind
	Size Size

	// Valid when Kind == OperandImmediate.
	Immediate uint64

	// Valid when Kind == OperandRegister or OperandIndirect.
	Register Register

	// Valid when Kind == OperandNamed.
	RefKind    RefKind
	Name       string
	ByteOffset int
}

// Register identifies one of the VM's value/address registers by class and
// index (spec.md §3.5 "two logical registers").
type Register struct {
	Class RegisterClass
	Index int
}

// RegisterClass distinguishes value registers from address registers.
type RegisterClass int

const (
	RegValue RegisterClass = iota
	RegAddress
)

func (r Register) String() string {
	if r.Class == RegAddress {
		return fmt.Sprintf("%%a%d", r.Index)
	}
	return fmt.Sprintf("%%v%d", r.Index)
}

// Imm builds an immediate operand.
func Imm(size Size, value uint64) Operand {
	return Operand{Kind: OperandImmediate, Size: size, Immediate: value}
}

// Reg builds a register operand.
func Reg(size Size, r Register) Operand {
	return Operand{Kind: OperandRegister, Size: size, Register: r}
}

// Local builds a named reference to a stack-frame local.
func Local(size Size, name string) Operand {
	return Operand{Kind: OperandNamed, Size: size, RefKind: RefLocal, Name: name}
}

// Label builds a named reference to a label (a jump target or data symbol).
func Label(name string) Operand {
	return Operand{Kind: OperandNamed, RefKind: RefLabel, Name: name}
}

// Offset builds a named reference to a label plus a byte offset, used for
// struct field addressing (spec.md §4.5.2 "Assignment").
func Offset(size Size, name string, byteOffset int) Operand {
	return Operand{Kind: OperandNamed, Size: size, RefKind: RefOffset, Name: name, ByteOffset: byteOffset}
}

// Indirect builds a reference through an address register plus a byte
// displacement, used when a base address is only known at run time: a
// pointer dereference, an array-element address, or a field reached
// through an AccessPointer composite (spec.md §4.5.2, §6.4).
func Indirect(size Size, r Register, byteOffset int) Operand {
	return Operand{Kind: OperandIndirect, Size: size, Register: r, ByteOffset: byteOffset}
}

func (o Operand) String() string {
	switch o.Kind {
	case OperandImmediate:
		return fmt.Sprintf("%d", o.Immediate)
	case OperandRegister:
		return o.Register.String()
	case OperandIndirect:
		if o.ByteOffset != 0 {
			return fmt.Sprintf("[%s+%d]", o.Register.String(), o.ByteOffset)
		}
		return fmt.Sprintf("[%s]", o.Register.String())
	case OperandNamed:
		if o.RefKind == RefOffset {
			return fmt.Sprintf("%s+%d", o.Name, o.ByteOffset)
		}
		return o.Name
	default:
		return "?"
	}
}
