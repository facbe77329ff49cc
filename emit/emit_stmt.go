package emit

import (
	"basecodec/elements"
	"basecodec/isa"
	"basecodec/report"
	"basecodec/types"
)

// emitBlock lowers a Block element's statements in order onto the
// current block pointer (spec.md §4.5.3).
func (e *Emitter) emitBlock(id elements.ID) {
	b := e.Elems.Get(id).Payload.(*elements.Block)
	for _, stmtID := range b.Stmts {
		if e.cur.Terminated() {
			return
		}
		e.emitStmt(stmtID)
	}
}

// emitStmt lowers one statement-level element (spec.md §4.4, §4.5.2).
func (e *Emitter) emitStmt(id elements.ID) {
	switch p := e.Elems.Get(id).Payload.(type) {
	case *elements.Statement:
		e.emitStmt(p.Inner)

	case *elements.ExpressionStmt:
		e.emitExpr(p.Expr)

	case *elements.Declaration:
		e.emitLocalDeclaration(id, p)

	case *elements.Assignment:
		e.emitAssignment(p)

	case *elements.Block:
		e.emitBlock(id)

	case *elements.If:
		e.emitIf(p)

	case *elements.While:
		e.emitWhile(p)

	case *elements.For:
		e.emitFor(p)

	case *elements.Switch:
		e.emitSwitch(p)

	case *elements.Break:
		e.emitBreak(p)

	case *elements.Continue:
		e.emitContinue(p)

	case *elements.Return:
		e.emitReturn(p)

	case *elements.Defer:
		e.deferred = append(e.deferred, p.Expr)

	case *elements.With:
		e.emitWith(p)

	case *elements.Fallthrough:
		// Consumed directly by the enclosing Case's lowering; a bare
		// fallthrough reaching here outside a switch case is a user error
		// caught earlier in evaluation, not an emitter concern.

	case *elements.Label:
		// Labels mark jump targets referenced by LabelRef; nothing to
		// lower on their own.

	case *elements.RawBlock:
		e.emit(isa.Instr(isa.OpNop, isa.Label(p.Text)))

	default:
		report.ReportICE("emit: unhandled statement payload %T", p)
	}
}

// emitLocalDeclaration plans a procedure-local variable at the point it's
// declared, so frame offsets follow declaration order (spec.md §6.4),
// then emits its frame-layout directives and, if present, its
// initializer.
func (e *Emitter) emitLocalDeclaration(declID elements.ID, decl *elements.Declaration) {
	v := e.plan.PlanDeclaration(declID, decl.Type)
	e.declareLocal(v)

	if decl.Init == 0 {
		return
	}

	value := e.emitExpr(decl.Init)
	e.storeVariable(declID, decl.Type, value)
	e.plan.ClearPendingInit(v)
}

// emitAssignment lowers `target = value`: the target must resolve to an
// address, the value to an operand of matching or compatible shape
// (spec.md §4.5.2 "Assignment"). Composite-to-composite assignment emits
// a byte-wise copy instead of a scalar store.
func (e *Emitter) emitAssignment(p *elements.Assignment) {
	targetAddr, targetType := e.addressOf(p.Target)

	if isComposite(targetType) {
		srcAddr, _ := e.addressOf(p.Value)
		e.emit(isa.Instr(isa.OpCopy, targetAddr, srcAddr, isa.Imm(isa.SizeNone, uint64(targetType.Size()))))
		return
	}

	value := e.emitExpr(p.Value)
	size := isa.SizeForBytes(targetType.Size())
	e.emit(isa.InstrSized(isa.OpStore, size, targetAddr, value))
}

// emitWith binds the resource expression as the implicit member-access
// base for its body (spec.md §4.4 "with x { ... }"); the binding itself
// is just a local declaration under the hood, already wired by the
// evaluator, so emission is no different from any other block.
func (e *Emitter) emitWith(p *elements.With) {
	if p.Binding != 0 {
		e.emitStmt(p.Binding)
	}
	e.emitBlock(p.Body)
}

// flushDefers emits every pending deferred expression in reverse
// declaration order and clears the list (spec.md §3.4 "Lifecycle").
func (e *Emitter) flushDefers() {
	for i := len(e.deferred) - 1; i >= 0; i-- {
		e.emitExpr(e.deferred[i])
	}
	e.deferred = nil
}

// isComposite reports whether t's assignment semantics require a
// byte-wise copy rather than a scalar store (spec.md §4.5.2).
func isComposite(t types.Type) bool {
	_, ok := t.(*types.CompositeType)
	return ok
}
