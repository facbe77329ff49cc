// Package fold constant-folds element subtrees composed entirely of
// literal operands, rewriting them in place to a single literal element
// so the emitter never has to special-case a binary/unary op whose value
// is already known at compile time (spec.md §4.5.2/§7). It is grounded on
// `common/operator.go`'s dispatch-by-operator-id convention: folding
// switches on the same `common.OperatorID` space the emitter's opcode
// table switches on, just evaluated in Go rather than lowered to VM
// instructions.
package fold

import (
	"basecodec/common"
	"basecodec/elements"
	"basecodec/report"
	"basecodec/types"
)

// Folder constant-folds elements in place against a shared map.
type Folder struct {
	Elems *elements.Map
	Sink  *report.Sink
}

// New creates a folder over elems.
func New(elems *elements.Map, sink *report.Sink) *Folder {
	return &Folder{Elems: elems, Sink: sink}
}

// FoldAll folds every BinaryOp and UnaryOp element reachable from ids,
// in an arbitrary but deterministic order (spec.md §5 "Ordering
// guarantees" — emission is deterministic by insertion order, so folding
// walks ids in the caller-supplied order, typically ByKind's order).
func (f *Folder) FoldAll(ids []elements.ID) {
	for _, id := range ids {
		f.Fold(id)
	}
}

// Fold recursively folds id's owned children first (so nested constant
// expressions collapse bottom-up), then attempts to fold id itself. It
// returns true if id now holds a literal payload (either because it
// already did, or because folding succeeded).
func (f *Folder) Fold(id elements.ID) bool {
	if id == 0 {
		return false
	}
	e := f.Elems.Get(id)

	switch p := e.Payload.(type) {
	case *elements.IntegerLiteral, *elements.FloatLiteral, *elements.BoolLiteral, *elements.CharLiteral:
		return true

	case *elements.UnaryOp:
		if !f.Fold(p.Operand) {
			return false
		}
		return f.foldUnary(e, p)

	case *elements.BinaryOp:
		lhsOK := f.Fold(p.LHS)
		rhsOK := f.Fold(p.RHS)
		if !lhsOK || !rhsOK {
			return false
		}
		return f.foldBinary(e, p)
	}

	return false
}

func (f *Folder) foldUnary(e *elements.Element, p *elements.UnaryOp) bool {
	switch p.Op {
	case common.OpIDINeg:
		lit, ok := f.Elems.Get(p.Operand).Payload.(*elements.IntegerLiteral)
		if !ok {
			return false
		}
		e.Payload = &elements.IntegerLiteral{Value: lit.Value, Negative: !lit.Negative, Type: p.Type}
	case common.OpIDFNeg:
		lit, ok := f.Elems.Get(p.Operand).Payload.(*elements.FloatLiteral)
		if !ok {
			return false
		}
		e.Payload = &elements.FloatLiteral{Value: -lit.Value, Type: p.Type}
	case common.OpIDBWCompl:
		lit, ok := f.Elems.Get(p.Operand).Payload.(*elements.IntegerLiteral)
		if !ok {
			return false
		}
		e.Payload = &elements.IntegerLiteral{Value: ^lit.Value, Type: p.Type}
	case common.OpIDLNot:
		lit, ok := f.Elems.Get(p.Operand).Payload.(*elements.BoolLiteral)
		if !ok {
			return false
		}
		e.Payload = &elements.BoolLiteral{Value: !lit.Value}
	default:
		return false
	}

	e.Kind = kindOf(e.Payload)
	f.detach(e, p.Operand)
	e.Children = nil
	return true
}

func (f *Folder) foldBinary(e *elements.Element, p *elements.BinaryOp) bool {
	lhsEl, rhsEl := f.Elems.Get(p.LHS), f.Elems.Get(p.RHS)

	if result, ok := foldIntegerPair(p.Op, lhsEl.Payload, rhsEl.Payload, p.Type); ok {
		e.Payload = result
	} else if result, ok := foldFloatPair(p.Op, lhsEl.Payload, rhsEl.Payload, p.Type); ok {
		e.Payload = result
	} else if result, ok := foldBoolPair(p.Op, lhsEl.Payload, rhsEl.Payload); ok {
		e.Payload = result
	} else {
		return false
	}

	e.Kind = kindOf(e.Payload)
	f.detach(e, p.LHS)
	f.detach(e, p.RHS)
	e.Children = nil
	return true
}

func foldIntegerPair(op common.OperatorID, a, b any, t types.Type) (any, bool) {
	lhs, ok1 := a.(*elements.IntegerLiteral)
	rhs, ok2 := b.(*elements.IntegerLiteral)
	if !ok1 || !ok2 {
		return nil, false
	}

	lv, rv := signedValue(lhs), signedValue(rhs)
	switch op {
	case common.OpIDIAdd:
		return intLiteral(lv+rv, t), true
	case common.OpIDISub:
		return intLiteral(lv-rv, t), true
	case common.OpIDIMul:
		return intLiteral(lv*rv, t), true
	case common.OpIDSDiv:
		if rv == 0 {
			return nil, false
		}
		return intLiteral(lv/rv, t), true
	case common.OpIDUDiv:
		if rhs.Value == 0 {
			return nil, false
		}
		return &elements.IntegerLiteral{Value: lhs.Value / rhs.Value, Type: t}, true
	case common.OpIDSMod:
		if rv == 0 {
			return nil, false
		}
		return intLiteral(lv%rv, t), true
	case common.OpIDUMod:
		if rhs.Value == 0 {
			return nil, false
		}
		return &elements.IntegerLiteral{Value: lhs.Value % rhs.Value, Type: t}, true
	case common.OpIDBWAnd:
		return &elements.IntegerLiteral{Value: lhs.Value & rhs.Value, Type: t}, true
	case common.OpIDBWOr:
		return &elements.IntegerLiteral{Value: lhs.Value | rhs.Value, Type: t}, true
	case common.OpIDBWXor:
		return &elements.IntegerLiteral{Value: lhs.Value ^ rhs.Value, Type: t}, true
	case common.OpIDBWShl:
		return &elements.IntegerLiteral{Value: lhs.Value << rhs.Value, Type: t}, true
	case common.OpIDBWShr:
		return &elements.IntegerLiteral{Value: lhs.Value >> rhs.Value, Type: t}, true
	case common.OpIDEq:
		return &elements.BoolLiteral{Value: lhs.Value == rhs.Value}, true
	case common.OpIDNeq:
		return &elements.BoolLiteral{Value: lhs.Value != rhs.Value}, true
	case common.OpIDSLt:
		return &elements.BoolLiteral{Value: lv < rv}, true
	case common.OpIDULt:
		return &elements.BoolLiteral{Value: lhs.Value < rhs.Value}, true
	case common.OpIDSGt:
		return &elements.BoolLiteral{Value: lv > rv}, true
	case common.OpIDUGt:
		return &elements.BoolLiteral{Value: lhs.Value > rhs.Value}, true
	case common.OpIDSLtEq:
		return &elements.BoolLiteral{Value: lv <= rv}, true
	case common.OpIDULtEq:
		return &elements.BoolLiteral{Value: lhs.Value <= rhs.Value}, true
	case common.OpIDSGtEq:
		return &elements.BoolLiteral{Value: lv >= rv}, true
	case common.OpIDUGtEq:
		return &elements.BoolLiteral{Value: lhs.Value >= rhs.Value}, true
	}
	return nil, false
}

func foldFloatPair(op common.OperatorID, a, b any, t types.Type) (any, bool) {
	lhs, ok1 := a.(*elements.FloatLiteral)
	rhs, ok2 := b.(*elements.FloatLiteral)
	if !ok1 || !ok2 {
		return nil, false
	}

	switch op {
	case common.OpIDFAdd:
		return &elements.FloatLiteral{Value: lhs.Value + rhs.Value, Type: t}, true
	case common.OpIDFSub:
		return &elements.FloatLiteral{Value: lhs.Value - rhs.Value, Type: t}, true
	case common.OpIDFMul:
		return &elements.FloatLiteral{Value: lhs.Value * rhs.Value, Type: t}, true
	case common.OpIDFDiv:
		if rhs.Value == 0 {
			return nil, false
		}
		return &elements.FloatLiteral{Value: lhs.Value / rhs.Value, Type: t}, true
	case common.OpIDFLt:
		return &elements.BoolLiteral{Value: lhs.Value < rhs.Value}, true
	case common.OpIDFGt:
		return &elements.BoolLiteral{Value: lhs.Value > rhs.Value}, true
	case common.OpIDFLtEq:
		return &elements.BoolLiteral{Value: lhs.Value <= rhs.Value}, true
	case common.OpIDFGtEq:
		return &elements.BoolLiteral{Value: lhs.Value >= rhs.Value}, true
	case common.OpIDEq:
		return &elements.BoolLiteral{Value: lhs.Value == rhs.Value}, true
	case common.OpIDNeq:
		return &elements.BoolLiteral{Value: lhs.Value != rhs.Value}, true
	}
	return nil, false
}

func foldBoolPair(op common.OperatorID, a, b any) (any, bool) {
	lhs, ok1 := a.(*elements.BoolLiteral)
	rhs, ok2 := b.(*elements.BoolLiteral)
	if !ok1 || !ok2 {
		return nil, false
	}

	switch op {
	case common.OpIDLAnd:
		return &elements.BoolLiteral{Value: lhs.Value && rhs.Value}, true
	case common.OpIDLOr:
		return &elements.BoolLiteral{Value: lhs.Value || rhs.Value}, true
	case common.OpIDEq:
		return &elements.BoolLiteral{Value: lhs.Value == rhs.Value}, true
	case common.OpIDNeq:
		return &elements.BoolLiteral{Value: lhs.Value != rhs.Value}, true
	}
	return nil, false
}

// signedValue reinterprets an IntegerLiteral's bit pattern as a signed
// int64, honoring the syntactic negation flag recorded at parse time.
func signedValue(lit *elements.IntegerLiteral) int64 {
	v := int64(lit.Value)
	if lit.Negative {
		return -v
	}
	return v
}

func intLiteral(v int64, t types.Type) *elements.IntegerLiteral {
	if v < 0 {
		return &elements.IntegerLiteral{Value: uint64(-v), Negative: true, Type: t}
	}
	return &elements.IntegerLiteral{Value: uint64(v), Type: t}
}

func kindOf(payload any) elements.Kind {
	switch payload.(type) {
	case *elements.IntegerLiteral:
		return elements.KindIntegerLiteral
	case *elements.FloatLiteral:
		return elements.KindFloatLiteral
	case *elements.BoolLiteral:
		return elements.KindBoolLiteral
	}
	return elements.KindInvalid
}

// detach removes a now-unreferenced literal operand from the element map,
// mirroring spec.md §4.5.2's synthetic-binary-operator cleanup: once an
// operand's value has been folded into its parent, the operand element
// itself no longer serves any purpose.
func (f *Folder) detach(parent *elements.Element, child elements.ID) {
	if child == 0 || child == parent.ID {
		return
	}
	f.Elems.Remove(child)
}
