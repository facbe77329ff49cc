package isa

import "testing"

func TestInstructionString(t *testing.T) {
	instr := InstrSized(OpAdd, SizeDword, Reg(SizeDword, Register{Class: RegValue, Index: 0}), Imm(SizeDword, 4))
	want := "add dword %v0, 4"
	if got := instr.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestOpCodeIsTerminator(t *testing.T) {
	for _, op := range []OpCode{OpJumpDirect, OpBZ, OpBNZ, OpRts, OpExit} {
		if !op.IsTerminator() {
			t.Errorf("%s should be a terminator", op)
		}
	}
	for _, op := range []OpCode{OpAdd, OpMove, OpCall} {
		if op.IsTerminator() {
			t.Errorf("%s should not be a terminator", op)
		}
	}
}

func TestBuildCFGStraightLine(t *testing.T) {
	entry := NewBlock("entry", SectionText)
	entry.Emit(Instr(OpNop))
	exit := NewBlock("exit", SectionText)
	exit.Emit(Instr(OpRts))

	blocks := []*Block{entry, exit}
	BuildCFG(blocks)

	if len(entry.Succs) != 1 || entry.Succs[0] != "exit" {
		t.Fatalf("entry.Succs = %v, want [exit]", entry.Succs)
	}
	if len(exit.Preds) != 1 || exit.Preds[0] != "entry" {
		t.Fatalf("exit.Preds = %v, want [entry]", exit.Preds)
	}
	if len(exit.Succs) != 0 {
		t.Fatalf("exit.Succs = %v, want none (terminated by return)", exit.Succs)
	}
}

func TestBuildCFGConditionalBranch(t *testing.T) {
	pred := NewBlock("id_entry", SectionText)
	pred.Emit(Instr(OpCmp, Reg(SizeDword, Register{}), Imm(SizeDword, 0)))
	pred.Emit(Instr(OpBZ, Label("id_false")))

	trueBlk := NewBlock("id_true", SectionText)
	trueBlk.Emit(Instr(OpJumpDirect, Label("id_exit")))

	falseBlk := NewBlock("id_false", SectionText)

	exitBlk := NewBlock("id_exit", SectionText)
	exitBlk.Emit(Instr(OpRts))

	blocks := []*Block{pred, trueBlk, falseBlk, exitBlk}
	BuildCFG(blocks)

	if len(pred.Succs) != 2 {
		t.Fatalf("pred.Succs = %v, want 2 edges (branch target + fallthrough)", pred.Succs)
	}
	if pred.Succs[0] != "id_false" || pred.Succs[1] != "id_true" {
		t.Fatalf("pred.Succs = %v, want [id_false id_true]", pred.Succs)
	}

	// Every block's successors must list it as a predecessor (spec.md §8.1).
	for i, b := range blocks {
		for _, succLabel := range b.Succs {
			for _, other := range blocks {
				if other.Label != succLabel {
					continue
				}
				found := false
				for _, p := range other.Preds {
					if p == b.Label {
						found = true
					}
				}
				if !found {
					t.Errorf("block %d (%s): successor %s does not list it as predecessor", i, b.Label, succLabel)
				}
			}
		}
	}
}

func TestSizeForBytes(t *testing.T) {
	tests := []struct {
		n    int
		want Size
	}{
		{0, SizeByte},
		{1, SizeByte},
		{2, SizeWord},
		{3, SizeDword},
		{4, SizeDword},
		{5, SizeQword},
		{8, SizeQword},
	}

	for _, tt := range tests {
		if got := SizeForBytes(tt.n); got != tt.want {
			t.Errorf("SizeForBytes(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}
