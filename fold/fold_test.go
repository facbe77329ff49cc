package fold

import (
	"testing"

	"basecodec/common"
	"basecodec/elements"
	"basecodec/report"
	"basecodec/testhelp"
	"basecodec/types"
)

func TestFoldIntegerArithmetic(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)

	lhs := b.IntegerLiteral(0, 0, 2, false, types.U8)
	rhs := b.IntegerLiteral(0, 0, 3, false, types.U8)
	sum := b.BinaryOp(0, 0, common.OpIDIAdd, lhs, rhs)

	f := New(m, report.NewSink())
	if !f.Fold(sum) {
		t.Fatalf("expected constant fold to succeed")
	}

	lit, ok := m.Get(sum).Payload.(*elements.IntegerLiteral)
	if !ok {
		t.Fatalf("folded element should be an IntegerLiteral, got %T", m.Get(sum).Payload)
	}
	if lit.Value != 5 {
		t.Fatalf("2+3 should fold to 5, got %d", lit.Value)
	}
}

func TestFoldDetachesOperandsFromMap(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)

	before := m.Len()
	lhs := b.IntegerLiteral(0, 0, 10, false, types.U8)
	rhs := b.IntegerLiteral(0, 0, 4, false, types.U8)
	diff := b.BinaryOp(0, 0, common.OpIDISub, lhs, rhs)

	f := New(m, report.NewSink())
	f.Fold(diff)

	if m.Len() != before+1 {
		t.Fatalf("folding should leave only the rewritten node live, got %d new elements, want 1", m.Len()-before)
	}
}

func TestFoldNestedExpression(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)

	a := b.IntegerLiteral(0, 0, 1, false, types.U8)
	c := b.IntegerLiteral(0, 0, 2, false, types.U8)
	inner := b.BinaryOp(0, 0, common.OpIDIAdd, a, c) // 1 + 2
	d := b.IntegerLiteral(0, 0, 4, false, types.U8)
	outer := b.BinaryOp(0, 0, common.OpIDIMul, inner, d) // (1+2) * 4

	f := New(m, report.NewSink())
	if !f.Fold(outer) {
		t.Fatalf("nested constant expression should fold")
	}
	lit := m.Get(outer).Payload.(*elements.IntegerLiteral)
	if lit.Value != 12 {
		t.Fatalf("(1+2)*4 should fold to 12, got %d", lit.Value)
	}
}

func TestFoldStopsAtNonLiteralOperand(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)

	ident := b.IdentifierRef(0, 0, common.NewSymbol("x"))
	lit := b.IntegerLiteral(0, 0, 1, false, types.U8)
	sum := b.BinaryOp(0, 0, common.OpIDIAdd, ident, lit)

	f := New(m, report.NewSink())
	if f.Fold(sum) {
		t.Fatalf("folding a non-constant operand should not succeed")
	}
	if _, ok := m.Get(sum).Payload.(*elements.BinaryOp); !ok {
		t.Fatalf("unfoldable BinaryOp should be left unchanged")
	}
}

func TestFoldUnaryNegation(t *testing.T) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)

	lit := b.IntegerLiteral(0, 0, 7, false, types.U8)
	neg := b.UnaryOp(0, 0, common.OpIDINeg, lit)

	f := New(m, report.NewSink())
	if !f.Fold(neg) {
		t.Fatalf("expected negation to fold")
	}
	folded := m.Get(neg).Payload.(*elements.IntegerLiteral)
	want := &elements.IntegerLiteral{Value: 7, Negative: true, Type: types.U8}
	if !folded.Negative || folded.Value != 7 {
		t.Fatalf("-7 should fold to Negative IntegerLiteral{7}:\n%s", testhelp.Diff(want, folded))
	}
}
