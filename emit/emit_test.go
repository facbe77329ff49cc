package emit

import (
	"testing"

	"basecodec/common"
	"basecodec/elements"
	"basecodec/intern"
	"basecodec/isa"
	"basecodec/report"
	"basecodec/types"
	"basecodec/vm"
)

// newTestEmitter builds a fresh Emitter over an empty element map, the
// same scaffolding varplan's tests use for isolated unit exercises.
func newTestEmitter() (*Emitter, *elements.Map, *elements.Builder) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)
	reg := types.NewRegistry()
	return New(m, reg, intern.NewTable(), report.NewSink()), m, b
}

// buildProgram wraps a single procedure in a Program/Module pair the way
// EmitProgram expects to walk it.
func buildProgram(m *elements.Map, progID, modID, procID elements.ID) {
	mod := m.Get(modID).Payload.(*elements.Module)
	mod.Items = append(mod.Items, procID)
	m.AddChild(modID, procID)
}

func countOp(blocks []*isa.Block, op isa.OpCode) int {
	n := 0
	for _, blk := range blocks {
		for _, in := range blk.Instrs {
			if in.Op == op {
				n++
			}
		}
	}
	return n
}

func TestEmitIfBranchesToSharedExit(t *testing.T) {
	e, m, b := newTestEmitter()
	progID := b.Program(1)
	modID := b.Module(progID, 0, 1, "main")

	cond := b.BoolLiteral(0, 1, true)
	thenBlock := b.Block(0, 1, 0)
	elseBlock := b.Block(0, 1, 0)
	ifID := b.If(0, 1, cond, thenBlock, elseBlock)

	bodyBlock := b.Block(0, 1, 0)
	b.AddStmt(bodyBlock, ifID)

	procID := b.ProcedureInstance(0, 1, elements.ProcedureInstance{
		Symbol: common.NewSymbol("test_if"),
		Type:   &types.ProcType{},
		Body:   bodyBlock,
	})
	buildProgram(m, progID, modID, procID)

	blocks := e.EmitProgram(progID)

	if countOp(blocks, isa.OpBZ) != 1 {
		t.Fatalf("expected exactly one branch-if-zero for the predicate, got %d", countOp(blocks, isa.OpBZ))
	}
	if len(blocks) < 4 {
		t.Fatalf("expected at least proc/then/else/exit blocks, got %d", len(blocks))
	}
	last := blocks[len(blocks)-1]
	if !last.Terminated() {
		t.Fatalf("expected the exit block to end with the procedure's implicit rts, got state %v", last.State())
	}
}

func TestEmitWhileBreakJumpsToExitWithoutBackEdge(t *testing.T) {
	e, m, b := newTestEmitter()
	progID := b.Program(1)
	modID := b.Module(progID, 0, 1, "main")

	cond := b.BoolLiteral(0, 1, true)
	body := b.Block(0, 1, 0)
	breakStmt := b.Break(0, 1, "")
	b.AddStmt(body, breakStmt)
	whileID := b.While(0, 1, cond, body)

	procBody := b.Block(0, 1, 0)
	b.AddStmt(procBody, whileID)

	procID := b.ProcedureInstance(0, 1, elements.ProcedureInstance{
		Symbol: common.NewSymbol("test_while"),
		Type:   &types.ProcType{},
		Body:   procBody,
	})
	buildProgram(m, progID, modID, procID)

	blocks := e.EmitProgram(progID)

	labels := map[string]bool{}
	for _, blk := range blocks {
		labels[blk.Label] = true
	}

	breakJumps := 0
	for _, blk := range blocks {
		for _, in := range blk.Instrs {
			if in.Op != isa.OpJumpDirect {
				continue
			}
			if !labels[in.Operands[0].Name] {
				t.Fatalf("jump target %q doesn't name any emitted block", in.Operands[0].Name)
			}
			breakJumps++
		}
	}
	if breakJumps == 0 {
		t.Fatalf("expected the break statement to lower to an unconditional jump to the loop's exit label")
	}

	// The body block ends with the break's jump, not a back-edge to the
	// predicate: it should already be terminated, so the emitter must not
	// have appended its own loop-back jump after it.
	bodyBlock := blocks[2]
	if len(bodyBlock.Instrs) != 1 || bodyBlock.Instrs[0].Op != isa.OpJumpDirect {
		t.Fatalf("expected the while body to contain exactly the break's jump, got %+v", bodyBlock.Instrs)
	}
}

func TestEmitBreakWithNoEnclosingLoopReportsICE(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a break with no enclosing loop to panic via ReportICE")
		}
	}()

	e, _, _ := newTestEmitter()
	e.openBlock("orphan", isa.SectionText)
	e.emitBreak(&elements.Break{})
}

func TestEmitForChoosesAscendingExclusiveComparison(t *testing.T) {
	e, m, b := newTestEmitter()
	progID := b.Program(1)
	modID := b.Module(progID, 0, 1, "main")

	inductionDecl := b.Declaration(0, 1, common.NewSymbol("i"), types.S32, true, 0, false)
	start := b.IntegerLiteral(0, 1, 0, false, types.S32)
	stop := b.IntegerLiteral(0, 1, 10, false, types.S32)
	step := b.IntegerLiteral(0, 1, 1, false, types.S32)
	body := b.Block(0, 1, 0)

	forID := b.For(0, 1, elements.For{
		InductionVar: inductionDecl,
		Start:        start,
		Stop:         stop,
		Step:         step,
		Descending:   false,
		Inclusive:    false,
		Body:         body,
	})

	procBody := b.Block(0, 1, 0)
	b.AddStmt(procBody, forID)

	procID := b.ProcedureInstance(0, 1, elements.ProcedureInstance{
		Symbol: common.NewSymbol("test_for"),
		Type:   &types.ProcType{},
		Body:   procBody,
	})
	buildProgram(m, progID, modID, procID)

	blocks := e.EmitProgram(progID)

	if countOp(blocks, isa.OpSetL) != 1 {
		t.Fatalf("ascending exclusive range should lower to a single signed less-than test, got %d OpSetL", countOp(blocks, isa.OpSetL))
	}
}

func TestEmitSwitchFallthroughJumpsToNextCaseBody(t *testing.T) {
	e, m, b := newTestEmitter()
	progID := b.Program(1)
	modID := b.Module(progID, 0, 1, "main")

	scrutinee := b.IntegerLiteral(0, 1, 1, false, types.S32)
	switchID := b.Switch(0, 1, scrutinee)

	firstBody := b.Block(0, 1, 0)
	b.AddCase(0, 1, switchID, elements.Case{
		Expr:        b.IntegerLiteral(0, 1, 1, false, types.S32),
		Body:        firstBody,
		Fallthrough: true,
	})
	secondBody := b.Block(0, 1, 0)
	b.AddCase(0, 1, switchID, elements.Case{
		Expr: b.IntegerLiteral(0, 1, 2, false, types.S32),
		Body: secondBody,
	})

	procBody := b.Block(0, 1, 0)
	b.AddStmt(procBody, switchID)

	procID := b.ProcedureInstance(0, 1, elements.ProcedureInstance{
		Symbol: common.NewSymbol("test_switch"),
		Type:   &types.ProcType{},
		Body:   procBody,
	})
	buildProgram(m, progID, modID, procID)

	blocks := e.EmitProgram(progID)

	if countOp(blocks, isa.OpCmp) != 2 {
		t.Fatalf("expected one scrutinee comparison per non-default case, got %d", countOp(blocks, isa.OpCmp))
	}
}

func TestEmitReturnStoresResultAndFlushesDefers(t *testing.T) {
	e, m, b := newTestEmitter()
	progID := b.Program(1)
	modID := b.Module(progID, 0, 1, "main")

	deferredExpr := b.IntegerLiteral(0, 1, 0, false, types.U32)
	deferStmt := b.Defer(0, 1, deferredExpr)

	retVal := b.IntegerLiteral(0, 1, 42, false, types.U32)
	retStmt := b.Return(0, 1, retVal)

	procBody := b.Block(0, 1, 0)
	b.AddStmt(procBody, deferStmt)
	b.AddStmt(procBody, retStmt)

	procID := b.ProcedureInstance(0, 1, elements.ProcedureInstance{
		Symbol: common.NewSymbol("test_return"),
		Type: &types.ProcType{
			Results: &types.FieldMap{Fields: []types.Field{{Name: "_", Type: types.U32, Size: 4}}},
		},
		Body: procBody,
	})
	buildProgram(m, progID, modID, procID)

	blocks := e.EmitProgram(progID)

	if countOp(blocks, isa.OpRts) != 1 {
		t.Fatalf("expected exactly one return instruction, got %d", countOp(blocks, isa.OpRts))
	}
	if countOp(blocks, isa.OpPush) == 0 {
		t.Fatalf("expected the result to be pushed for the caller before rts")
	}

	last := blocks[len(blocks)-1]
	foundRts := false
	for _, in := range last.Instrs {
		if in.Op == isa.OpRts {
			foundRts = true
		}
	}
	if !foundRts {
		t.Fatalf("rts should be emitted in the last block for an explicit return")
	}
}

// TestEmitAndRunProcedureReturnsPushedResult exercises the calling
// convention end to end with the vm fixture: a procedure that returns a
// literal must leave that literal in the caller's hands, not zero.
func TestEmitAndRunProcedureReturnsPushedResult(t *testing.T) {
	e, m, b := newTestEmitter()
	progID := b.Program(1)
	modID := b.Module(progID, 0, 1, "main")

	retVal := b.IntegerLiteral(0, 1, 42, false, types.U32)
	retStmt := b.Return(0, 1, retVal)
	procBody := b.Block(0, 1, 0)
	b.AddStmt(procBody, retStmt)

	procID := b.ProcedureInstance(0, 1, elements.ProcedureInstance{
		Symbol: common.NewSymbol("answer"),
		Type: &types.ProcType{
			Results: &types.FieldMap{Fields: []types.Field{{Name: "_", Type: types.U32, Size: 4}}},
		},
		Body: procBody,
	})
	buildProgram(m, progID, modID, procID)

	blocks := e.EmitProgram(progID)

	machine := vm.New(blocks, nil)
	got, err := machine.Run(procLabel("answer"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}
