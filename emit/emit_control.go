package emit

import (
	"basecodec/common"
	"basecodec/elements"
	"basecodec/isa"
	"basecodec/report"
	"basecodec/types"
)

// emitIf lowers a (possibly chained) conditional: the predicate branches
// past the then-block on zero, the then-block jumps to the shared exit
// unless it already terminated itself, and the else-branch (nested If or
// plain Block) falls straight through into that same exit block
// (spec.md §4.5.2 "If", §4.5.3 block-pointer-swap).
func (e *Emitter) emitIf(p *elements.If) {
	falseLabel := e.newLabel("if_else")
	exitLabel := e.newLabel("if_exit")

	cond := e.emitExpr(p.Cond)
	e.emit(isa.Instr(isa.OpBZ, cond, isa.Label(falseLabel)))

	e.openBlock(e.newLabel("if_then"), isa.SectionText)
	e.emitStmt(p.Then)
	if !e.cur.Terminated() {
		e.emit(isa.Instr(isa.OpJumpDirect, isa.Label(exitLabel)))
	}

	e.openBlock(falseLabel, isa.SectionText)
	if p.Else != 0 {
		e.emitStmt(p.Else)
	}

	e.openBlock(exitLabel, isa.SectionText)
}

// emitWhile lowers `while cond { body }`: the predicate is re-checked by
// falling back into its own block from the bottom of the body, so
// break/continue only ever need to know two labels (spec.md §4.5.2
// "While").
func (e *Emitter) emitWhile(p *elements.While) {
	predLabel := e.newLabel("while_cond")
	exitLabel := e.newLabel("while_exit")

	e.openBlock(predLabel, isa.SectionText)
	cond := e.emitExpr(p.Cond)
	e.emit(isa.Instr(isa.OpBZ, cond, isa.Label(exitLabel)))

	e.loopStack = append(e.loopStack, loopTargets{breakLabel: exitLabel, continueLabel: predLabel})
	e.openBlock(e.newLabel("while_body"), isa.SectionText)
	e.emitStmt(p.Body)
	e.loopStack = e.loopStack[:len(e.loopStack)-1]

	if !e.cur.Terminated() {
		e.emit(isa.Instr(isa.OpJumpDirect, isa.Label(predLabel)))
	}

	e.openBlock(exitLabel, isa.SectionText)
}

// emitFor lowers the structured `for x in range(start, stop, step, dir,
// kind)` form the evaluator has already desugared into a For element
// (spec.md §4.4, §4.5.2 "For"). The induction variable is stored once at
// entry, re-tested against stop before every iteration with the
// comparison the direction/inclusivity pair implies, and advanced by
// step (added going up, subtracted going down) in its own block so
// `continue` can jump straight to the step rather than re-running the
// full body.
func (e *Emitter) emitFor(p *elements.For) {
	decl := e.Elems.Get(p.InductionVar).Payload.(*elements.Declaration)
	v := e.plan.PlanDeclaration(p.InductionVar, decl.Type)
	e.declareLocal(v)
	e.storeVariable(p.InductionVar, decl.Type, e.emitExpr(p.Start))

	predLabel := e.newLabel("for_cond")
	stepLabel := e.newLabel("for_step")
	exitLabel := e.newLabel("for_exit")

	e.openBlock(predLabel, isa.SectionText)
	cur := e.loadVariable(p.InductionVar, decl.Type)
	stop := e.emitExpr(p.Stop)
	size := isa.SizeForBytes(decl.Type.Size())
	e.emit(isa.InstrSized(isa.OpCmp, size, cur, stop))

	plan := e.curPlanner()
	setOp := comparisonSet[forComparisonOp(decl.Type, p.Descending, p.Inclusive)]
	condReg := plan.ActivateTemp(isa.RegValue)
	e.emit(isa.InstrSized(setOp, isa.SizeByte, isa.Reg(isa.SizeByte, condReg)))
	e.emit(isa.Instr(isa.OpBZ, isa.Reg(isa.SizeByte, condReg), isa.Label(exitLabel)))

	e.loopStack = append(e.loopStack, loopTargets{breakLabel: exitLabel, continueLabel: stepLabel})
	e.openBlock(e.newLabel("for_body"), isa.SectionText)
	e.emitStmt(p.Body)
	e.loopStack = e.loopStack[:len(e.loopStack)-1]

	if !e.cur.Terminated() {
		e.emit(isa.Instr(isa.OpJumpDirect, isa.Label(stepLabel)))
	}

	e.openBlock(stepLabel, isa.SectionText)
	stepOp := isa.OpAdd
	if p.Descending {
		stepOp = isa.OpSub
	}
	stepVal := e.emitExpr(p.Step)
	before := e.loadVariable(p.InductionVar, decl.Type)
	next := plan.ActivateTemp(isa.RegValue)
	e.emit(isa.InstrSized(stepOp, size, isa.Reg(size, next), before, stepVal))
	e.storeVariable(p.InductionVar, decl.Type, isa.Reg(size, next))
	e.emit(isa.Instr(isa.OpJumpDirect, isa.Label(predLabel)))

	e.openBlock(exitLabel, isa.SectionText)
}

// forComparisonOp picks the loop-continuation test a direction/kind pair
// implies (spec.md §4.5.2: `<` ascending-exclusive, `<=` ascending-
// inclusive, `>` descending-exclusive, `>=` descending-inclusive),
// signed or unsigned per the induction variable's own type.
func forComparisonOp(t types.Type, descending, inclusive bool) common.OperatorID {
	signed := true
	if it, ok := t.(types.IntegerType); ok {
		signed = it.Signed
	}

	switch {
	case !descending && !inclusive:
		if signed {
			return common.OpIDSLt
		}
		return common.OpIDULt
	case !descending && inclusive:
		if signed {
			return common.OpIDSLtEq
		}
		return common.OpIDULtEq
	case descending && !inclusive:
		if signed {
			return common.OpIDSGt
		}
		return common.OpIDUGt
	default:
		if signed {
			return common.OpIDSGtEq
		}
		return common.OpIDUGtEq
	}
}

// emitSwitch lowers a scrutinee compared against each case in turn
// (spec.md §4.5.2 "Switch/case"): a mismatch branches forward to the
// next case's predicate (or straight to a default body, or the exit),
// a match falls through into the case's own body block, and a body
// exits to the switch's exit label unless it ends in `fallthrough`, in
// which case it jumps into the next case's body instead.
func (e *Emitter) emitSwitch(p *elements.Switch) {
	exitLabel := e.newLabel("switch_exit")

	bodyLabels := make([]string, len(p.Cases))
	predLabels := make([]string, len(p.Cases))
	for i := range p.Cases {
		bodyLabels[i] = e.newLabel("case_body")
		predLabels[i] = e.newLabel("case_pred")
	}

	for i, caseID := range p.Cases {
		c := e.Elems.Get(caseID).Payload.(*elements.Case)

		mismatchTarget := exitLabel
		if i+1 < len(p.Cases) {
			next := e.Elems.Get(p.Cases[i+1]).Payload.(*elements.Case)
			if next.IsDefault {
				mismatchTarget = bodyLabels[i+1]
			} else {
				mismatchTarget = predLabels[i+1]
			}
		}

		if !c.IsDefault {
			scrutType := e.typeOf(p.Scrutinee)
			scrut := e.emitExpr(p.Scrutinee)
			caseVal := e.emitExpr(c.Expr)
			size := isa.SizeForBytes(scrutType.Size())
			e.emit(isa.InstrSized(isa.OpCmp, size, scrut, caseVal))

			plan := e.curPlanner()
			reg := plan.ActivateTemp(isa.RegValue)
			e.emit(isa.InstrSized(isa.OpSetNZ, isa.SizeByte, isa.Reg(isa.SizeByte, reg)))
			e.emit(isa.Instr(isa.OpBNZ, isa.Reg(isa.SizeByte, reg), isa.Label(mismatchTarget)))
		}

		e.openBlock(bodyLabels[i], isa.SectionText)
		e.emitStmt(c.Body)

		if !e.cur.Terminated() {
			if c.Fallthrough && i+1 < len(p.Cases) {
				e.emit(isa.Instr(isa.OpJumpDirect, isa.Label(bodyLabels[i+1])))
			} else {
				e.emit(isa.Instr(isa.OpJumpDirect, isa.Label(exitLabel)))
			}
		}

		if !c.IsDefault && i+1 < len(p.Cases) {
			next := e.Elems.Get(p.Cases[i+1]).Payload.(*elements.Case)
			if !next.IsDefault {
				e.openBlock(predLabels[i+1], isa.SectionText)
			}
		}
	}

	e.openBlock(exitLabel, isa.SectionText)
}

// emitBreak and emitContinue jump to the innermost enclosing loop's exit
// or back-edge label. An empty loop stack here is an internal invariant
// violation: the evaluator already rejects a break/continue outside any
// loop with CodeNoExitLabel before emission ever starts.
func (e *Emitter) emitBreak(p *elements.Break) {
	if len(e.loopStack) == 0 {
		report.ReportICE("emit: break with no enclosing loop on the stack")
	}
	top := e.loopStack[len(e.loopStack)-1]
	e.emit(isa.Instr(isa.OpJumpDirect, isa.Label(top.breakLabel)))
}

func (e *Emitter) emitContinue(p *elements.Continue) {
	if len(e.loopStack) == 0 {
		report.ReportICE("emit: continue with no enclosing loop on the stack")
	}
	top := e.loopStack[len(e.loopStack)-1]
	e.emit(isa.Instr(isa.OpJumpDirect, isa.Label(top.continueLabel)))
}

// emitReturn pushes the result (if any) onto the stack for the call site
// to pop, flushes pending defers, and returns (spec.md §4.5.2 "Return").
// The value is pushed before the defers run so a defer's own expression
// evaluation can't disturb it.
func (e *Emitter) emitReturn(p *elements.Return) {
	if p.Value != 0 && e.currentProc != nil && e.currentProc.Results != nil && len(e.currentProc.Results.Fields) > 0 {
		resultType := e.currentProc.Results.Fields[0].Type
		value := e.emitExpr(p.Value)
		size := isa.SizeForBytes(resultType.Size())
		e.emit(isa.InstrSized(isa.OpPush, size, value))
	}
	e.flushDefers()
	e.emit(isa.Instr(isa.OpRts))
}
