package infer

import (
	"testing"

	"basecodec/common"
	"basecodec/elements"
	"basecodec/report"
	"basecodec/scope"
	"basecodec/types"
)

func newChecker() (*Checker, *elements.Map, *elements.Builder, *scope.Manager) {
	m := elements.NewMap()
	b := elements.NewBuilder(m)
	scopes := scope.NewManager()
	reg := types.NewRegistry()
	sink := report.NewSink()
	return NewChecker(m, reg, scopes, sink), m, b, scopes
}

func TestInferIntegerLiteralPicksNarrowestUnsigned(t *testing.T) {
	c, m, b, _ := newChecker()
	id := b.IntegerLiteral(0, 0, 5, false, types.UnknownType{})
	// The literal's Type field starts unknown in this test to exercise
	// inference; normally the evaluator fills a concrete guess immediately.
	got, ok := c.infer(m.Get(id))
	if !ok || !types.Equals(got, types.U8) {
		t.Fatalf("infer(5) = %v ok=%v, want u8", got, ok)
	}
}

func TestInferRelationalReturnsBool(t *testing.T) {
	c, m, b, _ := newChecker()
	lhs := b.IntegerLiteral(0, 0, 1, false, types.U32)
	rhs := b.IntegerLiteral(0, 0, 2, false, types.U32)
	binID := b.BinaryOp(0, 0, common.OpIDSLt, lhs, rhs)

	got, ok := c.infer(m.Get(binID))
	if !ok || !types.Equals(got, types.BoolType{}) {
		t.Fatalf("infer(a < b) = %v ok=%v, want bool", got, ok)
	}
}

func TestInferArithmeticTakesLHSType(t *testing.T) {
	c, m, b, _ := newChecker()
	lhs := b.IntegerLiteral(0, 0, 1, false, types.U64)
	rhs := b.IntegerLiteral(0, 0, 2, false, types.U8)
	binID := b.BinaryOp(0, 0, common.OpIDIAdd, lhs, rhs)

	got, ok := c.infer(m.Get(binID))
	if !ok || !types.Equals(got, types.U64) {
		t.Fatalf("infer(a + b) = %v ok=%v, want u64 (lhs type)", got, ok)
	}
}

func TestInferMemberAccessDereferencesPointerOnce(t *testing.T) {
	c, m, b, scopes := newChecker()

	point := types.NewComposite(types.CompositeStruct, "point")
	point.Fields.Append("x", types.S32)

	symbol := common.NewSymbol("p")
	declID := b.Declaration(elements.ScopeID(scopes.Root()), 0, symbol, c.Registry.PointerTo(point), true, 0, false)

	baseRef := b.IdentifierRef(elements.ScopeID(scopes.Root()), 0, symbol)
	m.Get(baseRef).Payload.(*elements.IdentifierRef).Decl = declID
	m.Get(baseRef).Payload.(*elements.IdentifierRef).Type = c.Registry.PointerTo(point)

	accessID := b.MemberAccess(elements.ScopeID(scopes.Root()), 0, baseRef, "x")
	got, ok := c.infer(m.Get(accessID))
	if !ok || !types.Equals(got, types.S32) {
		t.Fatalf("infer(p.x) = %v ok=%v, want s32", got, ok)
	}
}

func TestAttemptRefResolvesAgainstScope(t *testing.T) {
	c, m, b, scopes := newChecker()

	symbol := common.NewSymbol("count")
	declID := b.Declaration(elements.ScopeID(scopes.Root()), 0, symbol, types.U32, true, 0, false)
	scopes.Define(scopes.Root(), "count", declID)

	refID := b.IdentifierRef(elements.ScopeID(scopes.Root()), 0, symbol)

	if !c.AttemptRef(refID) {
		t.Fatalf("AttemptRef should resolve `count` against the root scope")
	}
	ref := m.Get(refID).Payload.(*elements.IdentifierRef)
	if ref.Decl != declID {
		t.Errorf("ref.Decl = %d, want %d", ref.Decl, declID)
	}
	if !types.Equals(ref.Type, types.U32) {
		t.Errorf("ref.Type = %v, want u32", ref.Type)
	}
}

func TestAttemptRefFailsWhenUndeclared(t *testing.T) {
	c, _, b, scopes := newChecker()
	refID := b.IdentifierRef(elements.ScopeID(scopes.Root()), 0, common.NewSymbol("ghost"))
	if c.AttemptRef(refID) {
		t.Fatalf("AttemptRef should fail for an undeclared symbol")
	}
}
