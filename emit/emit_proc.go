package emit

import (
	"basecodec/elements"
	"basecodec/isa"
	"basecodec/report"
	"basecodec/types"
	"basecodec/varplan"
)

// procLabel names a procedure instance's entry block.
func procLabel(symbol string) string { return "_proc_" + symbol }

// emitProcedure emits one procedure's prologue, body, and epilogue
// (spec.md §4.5.1 step 6). Foreign instances have no body: they exist
// only so call sites can resolve their ExternalName, so emission is a
// no-op here.
func (e *Emitter) emitProcedure(id elements.ID, proc *elements.ProcedureInstance) {
	if proc.Foreign {
		return
	}

	savedPlan, savedProc := e.plan, e.currentProc
	e.plan = varplan.New(e.Elems)
	e.currentProc = proc.Type
	e.deferred = nil
	defer func() { e.plan, e.currentProc = savedPlan, savedProc }()

	e.openBlock(procLabel(proc.Symbol.String()), isa.SectionText)

	for _, paramID := range proc.Params {
		field := e.Elems.Get(paramID).Payload.(*elements.Field)
		v := e.plan.PlanLocal(paramID, field.Name, field.Type, false)
		e.declareLocal(v)
	}

	if proc.Body != 0 {
		e.emitBlock(proc.Body)
	}

	if !e.cur.Terminated() {
		e.flushDefers()
		e.emit(isa.Instr(isa.OpRts))
	}
}

// declareLocal emits the frame-layout directives that tell the assembler
// where a local's storage lives (spec.md §6.2's OpLocal/OpFrameOffset
// directive pair).
func (e *Emitter) declareLocal(v *varplan.Variable) {
	e.emit(isa.Instr(isa.OpLocal, isa.Label(localName(v))))
	e.emit(isa.Instr(isa.OpFrameOffset, isa.Label(localName(v)), isa.Imm(isa.SizeNone, uint64(v.FrameOffset))))
}

// emitCall lowers a procedure call to its prologue/invoke/epilogue triple
// (spec.md §4.5.2 "Procedure call"). Arguments are pushed right to left;
// the callee, if it returns a value, pushes that value itself immediately
// before its own rts (see emitReturn), so the only thing the call site
// does afterward is pop it into a fresh value register.
func (e *Emitter) emitCall(p *elements.ProcedureCall) isa.Operand {
	calleeID, proc := e.resolveCallee(p.Callee)
	argList := e.Elems.Get(p.Args).Payload.(*elements.ArgumentList)

	plan := e.curPlanner()

	// pushedSizes records the slot size of each argument in argument order
	// (index i is argument i; arguments are pushed from the last one, so
	// index 0 ends up the topmost slot) so the discard loop below pops
	// exactly what each argument actually occupied.
	pushedSizes := make([]isa.Size, len(argList.Args))
	for i := len(argList.Args) - 1; i >= 0; i-- {
		argType := e.typeOf(argList.Args[i])
		if isComposite(argType) {
			// Composite arguments round up to a qword slot: rather than
			// copy the struct's bytes onto the stack, push the address
			// of its storage (spec.md §4.5.2 "composite arguments round
			// up to 8 bytes").
			addr, _ := e.addressOf(argList.Args[i])
			ptr := e.materializeAddress(addr, isa.SizeQword)
			e.emit(isa.Instr(isa.OpPush, ptr))
			pushedSizes[i] = isa.SizeQword
			continue
		}
		arg := e.emitExpr(argList.Args[i])
		size := isa.SizeForBytes(argType.Size())
		e.emit(isa.InstrSized(isa.OpPush, size, arg))
		pushedSizes[i] = size
	}

	hasResult := proc.Results != nil && len(proc.Results.Fields) > 0

	if proc.Foreign {
		sig := isa.Imm(isa.SizeNone, uint64(len(argList.Args)))
		e.emit(isa.Instr(isa.OpCallForeign, isa.Label(e.calleeName(calleeID)), sig))
	} else {
		e.emit(isa.Instr(isa.OpCall, isa.Label(procLabel(e.calleeName(calleeID)))))
	}

	var result isa.Operand
	if hasResult {
		resultType := proc.Results.Fields[0].Type
		size := isa.SizeForBytes(resultType.Size())
		reg := plan.ActivateTemp(isa.RegValue)
		e.emit(isa.InstrSized(isa.OpPop, size, isa.Reg(size, reg)))
		result = isa.Reg(size, reg)
	} else {
		result = isa.Imm(isa.SizeNone, 0)
	}

	for _, size := range pushedSizes {
		discard := plan.ActivateTemp(isa.RegValue)
		e.emit(isa.InstrSized(isa.OpPop, size, isa.Reg(size, discard)))
		plan.DeactivateTemp(isa.RegValue)
	}

	return result
}

// resolveCallee follows an IdentifierRef/SymbolElement callee through to
// its ProcedureInstance payload, so emitCall can read its signature and
// foreign marker without depending on the scope manager.
func (e *Emitter) resolveCallee(id elements.ID) (elements.ID, *types.ProcType) {
	switch p := e.Elems.Get(id).Payload.(type) {
	case *elements.IdentifierRef:
		return e.resolveCallee(p.Decl)
	case *elements.SymbolElement:
		return e.resolveCallee(p.Target)
	case *elements.ProcedureInstance:
		return id, p.Type
	}
	report.ReportICE("emit: call target %d is not a procedure", id)
	return 0, nil
}

func (e *Emitter) calleeName(id elements.ID) string {
	switch p := e.Elems.Get(id).Payload.(type) {
	case *elements.ProcedureInstance:
		if p.Foreign {
			return p.ExternalName
		}
		return p.Symbol.String()
	}
	report.ReportICE("emit: callee %d has no name", id)
	return ""
}
