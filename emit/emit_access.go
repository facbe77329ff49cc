package emit

import (
	"basecodec/elements"
	"basecodec/isa"
	"basecodec/report"
	"basecodec/types"
)

// addressOf lowers an lvalue expression to the address at which its value
// lives, paired with the static type found there. Member-access and
// subscript chains accumulate into a single Offset/Indirect operand
// without ever materialising an intermediate address register, unless
// the chain actually crosses a pointer (spec.md §4.5.2 "Member-access
// yields a pair (base_address, byte_offset) which the assignment
// consumes without materialising a temporary").
func (e *Emitter) addressOf(id elements.ID) (isa.Operand, types.Type) {
	switch p := e.Elems.Get(id).Payload.(type) {
	case *elements.IdentifierRef:
		_, v := e.plannerFor(p.Decl)
		if v == nil {
			report.ReportICE("emit: address-of an unplanned variable (decl %d)", p.Decl)
		}
		return e.locationOf(v), v.Type

	case *elements.MemberAccess:
		return e.memberAddress(p)

	case *elements.Subscript:
		return e.subscriptAddress(p)

	default:
		report.ReportICE("emit: expression %T has no assignable address", p)
		return isa.Operand{}, nil
	}
}

// memberAddress resolves `base.field` to its address, dereferencing base
// once if its static type is a pointer (spec.md §4.3 "member-access ...
// dereferencing a pointer once if necessary").
func (e *Emitter) memberAddress(p *elements.MemberAccess) (isa.Operand, types.Type) {
	baseAddr, baseType := e.addressOf(p.Base)

	composite, needsDeref := compositeOf(baseType)
	field, ok := composite.GetField(p.Field)
	if !ok {
		report.ReportICE("emit: %q is not a field of %s", p.Field, composite.Repr())
	}
	fieldSize := isa.SizeForBytes(field.Size)

	if needsDeref {
		reg := e.loadPointerValue(baseAddr)
		return isa.Indirect(fieldSize, reg, field.StartOffset), field.Type
	}

	return addOffset(baseAddr, fieldSize, field.StartOffset), field.Type
}

// subscriptAddress resolves `base[index]` to the address of one array
// element: the array header's `data` pointer is loaded, then advanced by
// index*elem_size (spec.md §4.3, §6.4's array representation).
func (e *Emitter) subscriptAddress(p *elements.Subscript) (isa.Operand, types.Type) {
	baseType := e.typeOf(p.Base)
	arr, ok := baseType.(*types.ArrayType)
	if !ok {
		report.ReportICE("emit: subscript base is not an array (%s)", baseType.Repr())
	}

	dataAddr, _ := e.memberAddress(&elements.MemberAccess{Base: p.Base, Field: "data", Type: arr.Elem})
	base := e.loadPointerValue(dataAddr)

	plan := e.curPlanner()
	elemSize := arr.Elem.Size()
	index := e.emitExpr(p.Index)

	offsetReg := plan.ActivateTemp(isa.RegValue)
	e.emit(isa.InstrSized(isa.OpMul, isa.SizeQword, isa.Reg(isa.SizeQword, offsetReg), index, isa.Imm(isa.SizeQword, uint64(elemSize))))

	addrReg := plan.ActivateTemp(isa.RegAddress)
	e.emit(isa.InstrSized(isa.OpAdd, isa.SizeQword, isa.Reg(isa.SizeQword, addrReg), isa.Reg(isa.SizeQword, base), isa.Reg(isa.SizeQword, offsetReg)))
	plan.DeactivateTemp(isa.RegValue)

	return isa.Indirect(isa.SizeForBytes(arr.Elem.Size()), addrReg, 0), arr.Elem
}

// emitMemberAccess lowers a member-access used as a value: the field's
// address is computed, then loaded.
func (e *Emitter) emitMemberAccess(p *elements.MemberAccess) isa.Operand {
	addr, fieldType := e.memberAddress(p)
	return e.loadFrom(addr, fieldType)
}

// emitSubscript lowers a subscript used as a value: the element's address
// is computed, then loaded.
func (e *Emitter) emitSubscript(p *elements.Subscript) isa.Operand {
	addr, elemType := e.subscriptAddress(p)
	return e.loadFrom(addr, elemType)
}

// loadFrom emits a load of t's value from addr into a fresh value
// register.
func (e *Emitter) loadFrom(addr isa.Operand, t types.Type) isa.Operand {
	size := isa.SizeForBytes(t.Size())
	reg := e.curPlanner().ActivateTemp(isa.RegValue)
	e.emit(isa.InstrSized(isa.OpLoad, size, isa.Reg(size, reg), addr))
	return isa.Reg(size, reg)
}

// loadPointerValue emits a load of the pointer bytes stored at addr into
// a fresh address register, used whenever a chain needs to follow a
// runtime pointer rather than a compile-time-known offset.
func (e *Emitter) loadPointerValue(addr isa.Operand) isa.Register {
	reg := e.curPlanner().ActivateTemp(isa.RegAddress)
	e.emit(isa.InstrSized(isa.OpLoad, isa.SizeQword, isa.Reg(isa.SizeQword, reg), addr))
	return reg
}

// addOffset folds an extra byte offset into an already-resolved address
// operand, whether it is a named (local/label) reference or an indirect
// register reference.
func addOffset(addr isa.Operand, size isa.Size, extra int) isa.Operand {
	switch addr.Kind {
	case isa.OperandIndirect:
		return isa.Indirect(size, addr.Register, addr.ByteOffset+extra)
	default:
		return isa.Offset(size, addr.Name, addr.ByteOffset+extra)
	}
}

// compositeOf resolves t to the composite type whose fields are being
// accessed, dereferencing one level of pointer indirection if t is a
// pointer (spec.md §4.3).
func compositeOf(t types.Type) (*types.CompositeType, bool) {
	if pt, ok := t.(*types.PointerType); ok {
		ct, ok := pt.Elem.(*types.CompositeType)
		if !ok {
			report.ReportICE("emit: member access through a pointer to non-composite %s", pt.Elem.Repr())
		}
		return ct, true
	}
	ct, ok := t.(*types.CompositeType)
	if !ok {
		report.ReportICE("emit: member access on non-composite %s", t.Repr())
	}
	return ct, false
}
