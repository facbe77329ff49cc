package elements

import (
	"testing"

	"basecodec/common"
	"basecodec/types"
)

func TestBuilderIntegerLiteralRoundTrips(t *testing.T) {
	m := NewMap()
	b := NewBuilder(m)

	id := b.IntegerLiteral(0, 0, 42, false, types.U32)
	e := m.Get(id)
	if e.Kind != KindIntegerLiteral {
		t.Fatalf("Kind = %v, want integer_literal", e.Kind)
	}
	lit := e.Payload.(*IntegerLiteral)
	if lit.Value != 42 || lit.Negative {
		t.Errorf("payload = %+v, want Value=42 Negative=false", lit)
	}
}

func TestLookupUnknownIDIsFatal(t *testing.T) {
	m := NewMap()
	defer func() {
		if recover() == nil {
			t.Fatal("Get on unknown id should panic (fatal programming error, spec.md §4.1)")
		}
	}()
	m.Get(999)
}

func TestBinaryOpOwnsOperands(t *testing.T) {
	m := NewMap()
	b := NewBuilder(m)

	lhs := b.IntegerLiteral(0, 0, 1, false, types.U8)
	rhs := b.IntegerLiteral(0, 0, 2, false, types.U8)
	binID := b.BinaryOp(0, 0, common.OpIDIAdd, lhs, rhs)

	bin := m.Get(binID)
	if len(bin.Children) != 2 || bin.Children[0] != lhs || bin.Children[1] != rhs {
		t.Errorf("Children = %v, want [%d %d]", bin.Children, lhs, rhs)
	}
}

func TestByKindFindsAllStringLiterals(t *testing.T) {
	m := NewMap()
	b := NewBuilder(m)

	b.StringLiteral(0, 0, "a", 0)
	b.StringLiteral(0, 0, "b", 1)
	b.IntegerLiteral(0, 0, 1, false, types.U8)

	ids := m.ByKind(KindStringLiteral)
	if len(ids) != 2 {
		t.Fatalf("ByKind(string_literal) = %v, want 2 entries", ids)
	}
}

func TestDeclarationIndexedBySymbol(t *testing.T) {
	m := NewMap()
	b := NewBuilder(m)

	sym := common.NewSymbol("x")
	declID := b.Declaration(0, 0, sym, types.S32, true, 0, false)

	found := m.LookupSymbol(sym)
	if len(found) != 1 || found[0] != declID {
		t.Errorf("LookupSymbol(x) = %v, want [%d]", found, declID)
	}
}

func TestRemoveDetachesSyntheticHelperWithoutLeakingSiblings(t *testing.T) {
	m := NewMap()
	b := NewBuilder(m)

	before := m.Len()

	lhs := b.IdentifierRef(0, 0, common.NewSymbol("i"))
	one := b.IntegerLiteral(0, 0, 1, false, types.U32)
	synthetic := b.SyntheticBinaryOp(0, 0, common.OpIDIAdd, lhs, one)

	if !m.Get(synthetic).NonOwning {
		t.Fatalf("synthetic binary op should be marked NonOwning")
	}

	m.Remove(synthetic)

	if m.Len() != before {
		t.Errorf("Len() after remove = %d, want %d (spec.md §7: map size unchanged after synthetic helper removal)", m.Len(), before)
	}
}

func TestRemoveCascadesToOwnedChildren(t *testing.T) {
	m := NewMap()
	b := NewBuilder(m)

	lhs := b.IntegerLiteral(0, 0, 1, false, types.U8)
	rhs := b.IntegerLiteral(0, 0, 2, false, types.U8)
	binID := b.BinaryOp(0, 0, common.OpIDIAdd, lhs, rhs)

	m.Remove(binID)

	if _, ok := m.TryGet(lhs); ok {
		t.Errorf("lhs should have been removed along with its owning binary op")
	}
	if _, ok := m.TryGet(rhs); ok {
		t.Errorf("rhs should have been removed along with its owning binary op")
	}
}

func TestIfChainNesting(t *testing.T) {
	m := NewMap()
	b := NewBuilder(m)

	cond1 := b.BoolLiteral(0, 0, true)
	then1 := b.Block(0, 0, 1)
	cond2 := b.BoolLiteral(0, 0, false)
	then2 := b.Block(0, 0, 2)
	elseBlock := b.Block(0, 0, 3)

	innerIf := b.If(0, 0, cond2, then2, elseBlock)
	outerIf := b.If(0, 0, cond1, then1, innerIf)

	outer := m.Get(outerIf).Payload.(*If)
	if outer.Else != innerIf {
		t.Errorf("outer.Else = %d, want %d (nested if per spec.md §4.4)", outer.Else, innerIf)
	}
}
