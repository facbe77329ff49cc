package vm

import (
	"testing"

	"basecodec/isa"
)

func TestRunAddsTwoImmediatesAndReturns(t *testing.T) {
	entry := isa.NewBlock("entry", isa.SectionText)
	v0 := isa.Reg(isa.SizeDword, isa.Register{Class: isa.RegValue, Index: 0})
	entry.Emit(isa.InstrSized(isa.OpAdd, isa.SizeDword, v0, isa.Imm(isa.SizeDword, 2), isa.Imm(isa.SizeDword, 40)))
	entry.Emit(isa.Instr(isa.OpRts))

	m := New([]*isa.Block{entry}, nil)
	got, err := m.Run("entry")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestRunBranchesOnZeroFlag(t *testing.T) {
	entry := isa.NewBlock("entry", isa.SectionText)
	cond := isa.Reg(isa.SizeByte, isa.Register{Class: isa.RegValue, Index: 1})
	entry.Emit(isa.Instr(isa.OpMove, cond, isa.Imm(isa.SizeByte, 0)))
	entry.Emit(isa.Instr(isa.OpBZ, cond, isa.Label("else_branch")))

	then := isa.NewBlock("then_branch", isa.SectionText)
	v0 := isa.Reg(isa.SizeDword, isa.Register{Class: isa.RegValue, Index: 0})
	then.Emit(isa.Instr(isa.OpMove, v0, isa.Imm(isa.SizeDword, 1)))
	then.Emit(isa.Instr(isa.OpRts))

	els := isa.NewBlock("else_branch", isa.SectionText)
	els.Emit(isa.Instr(isa.OpMove, v0, isa.Imm(isa.SizeDword, 2)))
	els.Emit(isa.Instr(isa.OpRts))

	entry.Emit(isa.Instr(isa.OpJumpDirect, isa.Label("then_branch")))

	m := New([]*isa.Block{entry, then, els}, nil)
	got, err := m.Run("entry")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 2 {
		t.Fatalf("a zero predicate should take the else branch: got %d, want 2", got)
	}
}

func TestRunCallForeignInvokesHostFunction(t *testing.T) {
	entry := isa.NewBlock("entry", isa.SectionText)
	entry.Emit(isa.Instr(isa.OpPush, isa.Imm(isa.SizeDword, 7)))
	entry.Emit(isa.Instr(isa.OpPush, isa.Imm(isa.SizeDword, 35)))
	entry.Emit(isa.Instr(isa.OpCallForeign, isa.Label("host_add"), isa.Imm(isa.SizeNone, 2)))
	entry.Emit(isa.Instr(isa.OpRts))

	foreign := map[string]ForeignFunc{
		"host_add": func(args []uint64) uint64 { return args[0] + args[1] },
	}

	m := New([]*isa.Block{entry}, foreign)
	got, err := m.Run("entry")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestRunNestedCallReturnsToCaller(t *testing.T) {
	caller := isa.NewBlock("caller", isa.SectionText)
	caller.Emit(isa.Instr(isa.OpCall, isa.Label("callee")))
	v0 := isa.Reg(isa.SizeDword, isa.Register{Class: isa.RegValue, Index: 0})
	caller.Emit(isa.Instr(isa.OpAdd, v0, v0, isa.Imm(isa.SizeDword, 1)))
	caller.Emit(isa.Instr(isa.OpRts))

	callee := isa.NewBlock("callee", isa.SectionText)
	callee.Emit(isa.Instr(isa.OpMove, v0, isa.Imm(isa.SizeDword, 41)))
	callee.Emit(isa.Instr(isa.OpRts))

	m := New([]*isa.Block{caller, callee}, nil)
	got, err := m.Run("caller")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42 (41 from callee + 1 in caller)", got)
	}
}
