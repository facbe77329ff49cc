package varplan

import (
	"testing"

	"basecodec/common"
	"basecodec/elements"
	"basecodec/isa"
	"basecodec/types"
)

func newDecl(m *elements.Map, b *elements.Builder, name string, t types.Type, typeKnown bool, init elements.ID, isConst bool) elements.ID {
	return b.Declaration(0, 0, common.NewSymbol(name), t, typeKnown, init, isConst)
}

func TestPlanModuleVariableBucketsBySection(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)
	p := New(m)

	lit := b.IntegerLiteral(0, 0, 1, false, types.U32)
	constDecl := newDecl(m, b, "k", types.U32, true, lit, true)
	dataDecl := newDecl(m, b, "counter", types.U32, true, lit, false)
	bssDecl := newDecl(m, b, "buf", types.U32, true, 0, false)

	if v := p.PlanModuleVariable(constDecl); v.Section != isa.SectionROData {
		t.Fatalf("const with initializer should live in ro_data, got %v", v.Section)
	}
	if v := p.PlanModuleVariable(dataDecl); v.Section != isa.SectionData {
		t.Fatalf("initialized mutable global should live in data, got %v", v.Section)
	}
	if v := p.PlanModuleVariable(bssDecl); v.Section != isa.SectionBSS {
		t.Fatalf("uninitialized global should live in bss, got %v", v.Section)
	}
}

func TestPlanModuleVariableIsIdempotent(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)
	p := New(m)

	decl := newDecl(m, b, "x", types.U32, true, 0, false)
	first := p.PlanModuleVariable(decl)
	second := p.PlanModuleVariable(decl)
	if first != second {
		t.Fatalf("planning the same declaration twice should return the same Variable")
	}
}

func TestPlanLocalAlignsFrameOffsets(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)
	p := New(m)

	byteDecl := newDecl(m, b, "flag", types.BoolType{}, true, 0, false)
	wordDecl := newDecl(m, b, "count", types.U32, true, 0, false)

	bv := p.PlanDeclaration(byteDecl, types.BoolType{})
	wv := p.PlanDeclaration(wordDecl, types.U32)

	if bv.FrameOffset != 0 {
		t.Fatalf("first local should sit at offset 0, got %d", bv.FrameOffset)
	}
	if wv.FrameOffset%types.U32.Align() != 0 {
		t.Fatalf("u32 local should be aligned, got offset %d", wv.FrameOffset)
	}
	if wv.FrameOffset <= bv.FrameOffset {
		t.Fatalf("second local should be laid out after the first: %d <= %d", wv.FrameOffset, bv.FrameOffset)
	}
}

func TestActivateAssignsDistinctRegistersPerClass(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)
	p := New(m)

	decl1 := newDecl(m, b, "a", types.U32, true, 0, false)
	decl2 := newDecl(m, b, "b", types.U32, true, 0, false)
	v1 := p.PlanDeclaration(decl1, types.U32)
	v2 := p.PlanDeclaration(decl2, types.U32)

	r1 := p.Activate(v1, isa.RegValue)
	r2 := p.Activate(v2, isa.RegValue)
	if r1.Index == r2.Index {
		t.Fatalf("two concurrently active variables should not share a register index")
	}
	if v1.ValueReg == nil || v1.ValueReg.Index != r1.Index {
		t.Fatalf("activation should record the assigned register on the Variable")
	}
}

func TestDeactivateFreesRegisterForReuse(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)
	p := New(m)

	decl1 := newDecl(m, b, "a", types.U32, true, 0, false)
	decl2 := newDecl(m, b, "b", types.U32, true, 0, false)
	v1 := p.PlanDeclaration(decl1, types.U32)
	v2 := p.PlanDeclaration(decl2, types.U32)

	r1 := p.Activate(v1, isa.RegValue)
	p.Deactivate(v1, isa.RegValue)
	if v1.ValueReg != nil {
		t.Fatalf("deactivated variable should have a nil ValueReg")
	}
	r2 := p.Activate(v2, isa.RegValue)
	if r2.Index != r1.Index {
		t.Fatalf("freed register index should be reused, got %d want %d", r2.Index, r1.Index)
	}
}

func TestUsageFlagsResetOnReactivation(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)
	p := New(m)

	decl := newDecl(m, b, "a", types.U32, true, 0, false)
	v := p.PlanDeclaration(decl, types.U32)

	p.Activate(v, isa.RegValue)
	p.MarkRead(v)
	p.MarkWritten(v)
	if !v.Read || !v.Written {
		t.Fatalf("Mark* calls should set their respective flags")
	}

	p.Deactivate(v, isa.RegValue)
	p.Activate(v, isa.RegValue)
	if v.Read || v.Written {
		t.Fatalf("reactivation should clear stale usage flags")
	}
}

func TestPlanFieldSharesParentBaseAddress(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)
	p := New(m)

	parentDecl := newDecl(m, b, "s", types.U32, true, 0, false)
	fieldDecl := newDecl(m, b, "s.x", types.U32, true, 0, false)

	parent := p.PlanDeclaration(parentDecl, types.U32)
	_ = parent
	field := p.PlanField(fieldDecl, parentDecl, types.U32)

	if field.Parent != parentDecl {
		t.Fatalf("field should record its parent declaration id")
	}
	if field.FrameOffset != 0 {
		t.Fatalf("a field has no independent frame slot, got offset %d", field.FrameOffset)
	}
}
