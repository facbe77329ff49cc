package emit

import (
	"basecodec/elements"
	"basecodec/isa"
	"basecodec/report"
)

// emitIntrinsicExpr lowers a recognised compiler builtin to its VM
// instruction(s) (spec.md §4.5.2 "Intrinsics"). size_of/type_of are
// resolved directly here rather than assumed already folded, since their
// operand type is fully known at this point regardless.
func (e *Emitter) emitIntrinsicExpr(p *elements.IntrinsicCall) isa.Operand {
	switch p.Kind {
	case elements.IntrinsicAddressOf:
		addr, t := e.addressOf(p.Args[0])
		return e.materializeAddress(addr, isa.SizeForBytes(t.Size()))

	case elements.IntrinsicAlloc:
		plan := e.curPlanner()
		reg := plan.ActivateTemp(isa.RegAddress)
		size := isa.Imm(isa.SizeQword, uint64(p.TypeArg.Size()))
		e.emit(isa.InstrSized(isa.OpAlloc, isa.SizeQword, isa.Reg(isa.SizeQword, reg), size))
		return isa.Reg(isa.SizeQword, reg)

	case elements.IntrinsicFree:
		e.emit(isa.Instr(isa.OpFree, e.emitExpr(p.Args[0])))
		return isa.Imm(isa.SizeNone, 0)

	case elements.IntrinsicFill:
		base := e.emitExpr(p.Args[0])
		value := e.emitExpr(p.Args[1])
		length := e.emitExpr(p.Args[2])
		e.emit(isa.Instr(isa.OpFill, base, value, length))
		return isa.Imm(isa.SizeNone, 0)

	case elements.IntrinsicCopy:
		dst := e.emitExpr(p.Args[0])
		src := e.emitExpr(p.Args[1])
		length := e.emitExpr(p.Args[2])
		e.emit(isa.Instr(isa.OpCopy, dst, src, length))
		return isa.Imm(isa.SizeNone, 0)

	case elements.IntrinsicSizeOf:
		return isa.Imm(isa.SizeQword, uint64(p.TypeArg.Size()))

	case elements.IntrinsicTypeOf:
		// Type values have no byte representation at runtime beyond an
		// opaque placeholder (spec.md §3.2 "type-literal").
		return isa.Imm(isa.SizeQword, 0)

	case elements.IntrinsicRange:
		report.ReportICE("emit: range only appears inside a for-loop header, never as a bare expression")
	}

	report.ReportICE("emit: unhandled intrinsic kind %d", p.Kind)
	return isa.Operand{}
}

// materializeAddress renders an already-resolved address operand as a
// register-held pointer value: a named (local/label) location has its
// address computed fresh, while an indirect reference whose displacement
// is already zero is already exactly that register.
func (e *Emitter) materializeAddress(addr isa.Operand, size isa.Size) isa.Operand {
	plan := e.curPlanner()

	if addr.Kind == isa.OperandIndirect {
		if addr.ByteOffset == 0 {
			return isa.Reg(isa.SizeQword, addr.Register)
		}
		reg := plan.ActivateTemp(isa.RegAddress)
		e.emit(isa.InstrSized(isa.OpAdd, isa.SizeQword, isa.Reg(isa.SizeQword, reg), isa.Reg(isa.SizeQword, addr.Register), isa.Imm(isa.SizeQword, uint64(addr.ByteOffset))))
		return isa.Reg(isa.SizeQword, reg)
	}

	reg := plan.ActivateTemp(isa.RegAddress)
	e.emit(isa.InstrSized(isa.OpMove, isa.SizeQword, isa.Reg(isa.SizeQword, reg), addr))
	return isa.Reg(isa.SizeQword, reg)
}
