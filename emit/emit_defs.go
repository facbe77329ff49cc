package emit

import (
	"math"

	"basecodec/elements"
	"basecodec/intern"
	"basecodec/isa"
	"basecodec/types"
)

// emitModuleVariable plans and emits storage for one module-level
// declaration: a literal initializer is baked directly into its section,
// an absent initializer reserves zeroed storage in bss, and a
// non-constant initializer reserves storage here but defers its
// assignment to the synthesized module-init procedure (spec.md §6.4).
func (e *Emitter) emitModuleVariable(declID elements.ID, decl *elements.Declaration) {
	v := e.modPlan.PlanModuleVariable(declID)
	e.openBlock(v.Label, v.Section)

	if align := v.Type.Align(); align > 1 {
		e.emit(isa.Instr(isa.OpAlign, isa.Imm(isa.SizeNone, uint64(align))))
	}

	if decl.Init == 0 {
		e.emit(e.reserveDirective(v.Type.Size()))
		return
	}

	if instr, ok := e.literalDirective(e.Elems.Get(decl.Init).Payload, v.Type); ok {
		e.emit(instr)
		e.modPlan.ClearPendingInit(v)
		return
	}

	// Non-constant initializer: reserve the storage now, assign it once
	// every global has a home (flushDeferredInits).
	e.emit(e.reserveDirective(v.Type.Size()))
	e.deferredInits = append(e.deferredInits, declID)
}

// reserveDirective picks the narrowest reserve-N directive that covers n
// bytes of zeroed storage (spec.md §6.3 "bss").
func (e *Emitter) reserveDirective(n int) isa.Instruction {
	if n <= 0 {
		n = 1
	}
	size := isa.SizeForBytes(n)
	op := isa.OpReserveByte
	switch size {
	case isa.SizeWord:
		op = isa.OpReserveWord
	case isa.SizeDword:
		op = isa.OpReserveDword
	case isa.SizeQword:
		op = isa.OpReserveQword
	}
	return isa.Instr(op, isa.Imm(isa.SizeNone, uint64(n)))
}

// literalDirective renders a literal payload as an immediate data
// directive sized to t, or reports ok=false if payload isn't a literal
// the directive set can represent directly (spec.md §6.3 "ro_data/data").
func (e *Emitter) literalDirective(payload any, t types.Type) (isa.Instruction, bool) {
	switch p := payload.(type) {
	case *elements.IntegerLiteral:
		v := p.Value
		if p.Negative {
			v = uint64(-int64(p.Value))
		}
		return isa.Instr(e.bytesDirectiveFor(t.Size()), isa.Imm(isa.SizeForBytes(t.Size()), v)), true

	case *elements.FloatLiteral:
		if ft, ok := t.(types.FloatType); ok && ft.Bits == 32 {
			return isa.Instr(isa.OpDwords, isa.Imm(isa.SizeDword, uint64(math.Float32bits(float32(p.Value))))), true
		}
		return isa.Instr(isa.OpQwords, isa.Imm(isa.SizeQword, math.Float64bits(p.Value))), true

	case *elements.BoolLiteral:
		v := uint64(0)
		if p.Value {
			v = 1
		}
		return isa.Instr(isa.OpBytes, isa.Imm(isa.SizeByte, v)), true

	case *elements.CharLiteral:
		return isa.Instr(isa.OpDwords, isa.Imm(isa.SizeDword, uint64(p.Value))), true

	case *elements.StringLiteral:
		return isa.Instr(isa.OpString, isa.Label(intern.DataLabel(intern.ID(p.Intern)))), true
	}

	return isa.Instruction{}, false
}

func (e *Emitter) bytesDirectiveFor(n int) isa.OpCode {
	switch isa.SizeForBytes(n) {
	case isa.SizeByte:
		return isa.OpBytes
	case isa.SizeWord:
		return isa.OpWords
	case isa.SizeDword:
		return isa.OpDwords
	default:
		return isa.OpQwords
	}
}

// flushDeferredInits emits a synthetic `_module_init` text block that
// assigns every module variable whose initializer wasn't a compile-time
// constant (spec.md §6.4; grounded on the teacher's
// `Generator.globalInits`/`initFunc` pattern in `generate/generator.go`,
// which generates a package init function for exactly the same reason).
// The block ends in rts; the emitter emits no `_start` block and no call
// to `_module_init`, so nothing in the emitted program invokes it.
func (e *Emitter) flushDeferredInits() {
	if len(e.deferredInits) == 0 {
		return
	}

	e.openBlock("_module_init", isa.SectionText)

	for _, declID := range e.deferredInits {
		decl := e.Elems.Get(declID).Payload.(*elements.Declaration)
		v := e.modPlan.Lookup(declID)
		value := e.emitExpr(decl.Init)
		e.emit(isa.InstrSized(isa.OpStore, isa.SizeForBytes(v.Type.Size()), isa.Label(v.Label), value))
		e.modPlan.ClearPendingInit(v)
	}

	e.emit(isa.Instr(isa.OpRts))
}
