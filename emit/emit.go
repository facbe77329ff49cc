// Package emit lowers a fully resolved and folded element tree to the
// `isa` basic-block grammar (spec.md §4.5, §6.2). It is grounded on the
// teacher's `generate/generator.go` + `generate/gen_*.go` block-pointer
// style, retargeted from `github.com/llir/llvm/ir.Block` to this
// module's `isa.Block`: the emitter keeps one "current block" pointer
// that control-flow constructs swap out and restore around their
// branches, exactly the way `genIfExpr`/`genWhileExpr` swap
// `g.block` (spec.md §4.5.3).
package emit

import (
	"fmt"

	"basecodec/elements"
	"basecodec/intern"
	"basecodec/isa"
	"basecodec/report"
	"basecodec/types"
	"basecodec/varplan"
)

// Emitter walks a resolved element tree and produces the ordered list of
// isa.Blocks that make up the emitted program (spec.md §4.5.1).
type Emitter struct {
	Elems    *elements.Map
	Registry *types.Registry
	Intern   *intern.Table
	Sink     *report.Sink

	modPlan *varplan.Planner // module-level variables, planned once and shared
	plan    *varplan.Planner // current procedure's frame; nil at module scope

	// currentProc is the signature of the procedure currently being
	// emitted, used by emitReturn to find the result slot's type; nil at
	// module scope.
	currentProc *types.ProcType

	blocks       []*isa.Block
	cur          *isa.Block
	labelCounter int

	// loopStack tracks the break/continue targets of enclosing loops, so
	// deeply nested jumps don't need to thread labels through every
	// statement-emission call (spec.md §4.5.2 "break/continue").
	loopStack []loopTargets

	// deferredInits holds module variables whose initializer is not a
	// literal and so must be assigned at program start rather than baked
	// into ro_data/data directly (spec.md §6.4).
	deferredInits []elements.ID

	// deferred holds the current procedure's pending `defer expr`
	// statements in source order; they fire in reverse at every return
	// path (spec.md §3.4 "Lifecycle", §4.4 "defer expr ... is not
	// evaluated in place").
	deferred []elements.ID
}

type loopTargets struct {
	breakLabel, continueLabel string
}

// New creates an emitter over an already inferred and folded element map.
func New(elems *elements.Map, reg *types.Registry, interns *intern.Table, sink *report.Sink) *Emitter {
	return &Emitter{
		Elems:    elems,
		Registry: reg,
		Intern:   interns,
		Sink:     sink,
		modPlan:  varplan.New(elems),
	}
}

// EmitProgram lowers every module reachable from programID and returns
// the finished, CFG-linked block list (spec.md §4.5.1, §6.2). Module
// variables are planned and emitted before any procedure body, so a
// procedure may reference a global declared later in source order
// (spec.md §3.4 "globals are visible program-wide").
func (e *Emitter) EmitProgram(programID elements.ID) []*isa.Block {
	prog := e.Elems.Get(programID).Payload.(*elements.Program)

	for _, modID := range prog.Modules {
		e.collectVariables(modID)
	}
	e.flushDeferredInits()

	for _, modID := range prog.Modules {
		e.collectProcedures(modID)
	}

	isa.BuildCFG(e.blocks)
	return e.blocks
}

func (e *Emitter) collectVariables(modID elements.ID) {
	mod := e.Elems.Get(modID).Payload.(*elements.Module)
	for _, itemID := range mod.Items {
		e.forEachDeclaration(itemID, e.emitModuleVariable)
	}
}

func (e *Emitter) collectProcedures(modID elements.ID) {
	mod := e.Elems.Get(modID).Payload.(*elements.Module)
	for _, itemID := range mod.Items {
		e.forEachProcedure(itemID, e.emitProcedure)
	}
}

// forEachDeclaration and forEachProcedure walk through the Statement/
// Namespace wrapper kinds the evaluator may interpose around a top-level
// item to reach the Declaration/ProcedureInstance payload underneath.
func (e *Emitter) forEachDeclaration(id elements.ID, fn func(elements.ID, *elements.Declaration)) {
	switch p := e.Elems.Get(id).Payload.(type) {
	case *elements.Declaration:
		fn(id, p)
	case *elements.Statement:
		e.forEachDeclaration(p.Inner, fn)
	case *elements.Namespace:
		for _, child := range p.Items {
			e.forEachDeclaration(child, fn)
		}
	}
}

func (e *Emitter) forEachProcedure(id elements.ID, fn func(elements.ID, *elements.ProcedureInstance)) {
	switch p := e.Elems.Get(id).Payload.(type) {
	case *elements.ProcedureInstance:
		fn(id, p)
	case *elements.Statement:
		e.forEachProcedure(p.Inner, fn)
	case *elements.Namespace:
		for _, child := range p.Items {
			e.forEachProcedure(child, fn)
		}
	}
}

// -----------------------------------------------------------------------------
// Block-pointer management (spec.md §4.5.3).

// openBlock starts a new block, appends it to the program's block list,
// and makes it current.
func (e *Emitter) openBlock(label string, section isa.Section) *isa.Block {
	b := isa.NewBlock(label, section)
	e.blocks = append(e.blocks, b)
	e.cur = b
	return b
}

// emit appends instr to the current block. Appending to a terminated
// block is an internal invariant violation: every control-flow helper in
// this package is responsible for opening a fresh block immediately
// after closing one (spec.md §4.5.3).
func (e *Emitter) emit(instr isa.Instruction) {
	if e.cur == nil {
		report.ReportICE("emit: no open block")
	}
	if e.cur.Terminated() {
		report.ReportICE("emit: attempt to append to terminated block %q", e.cur.Label)
	}
	e.cur.Emit(instr)
}

// newLabel synthesises a fresh, unique block label for a synthetic
// control-flow target, of the form `_<role>_<n>` where n is a monotonic
// emitter-local counter (e.g. `_while_exit_3`). The id of the element
// that owns the block is not part of the label.
func (e *Emitter) newLabel(role string) string {
	e.labelCounter++
	return fmt.Sprintf("_%s_%d", role, e.labelCounter)
}
