// Package infer implements type inference and checking: per-element-kind
// rules that fill inferred-type slots, driven to a fixpoint by package
// scope's two work-queues (spec.md §4.3). It is grounded on the
// fixpoint-loop shape of the teacher's `typing/solver.go` and the
// overload/operand-checking idiom of `walk/type_check.go`'s
// `mustFindOverload`/`checkOperApp`, but drops the teacher's `DataType`/
// `equiv` type-variable unification machinery entirely: Basecode's type
// system is nominal/structural, not Hindley-Milner, so `types.Equals`/
// `types.Accepts` replace `typing.Unify`.
package infer

import (
	"basecodec/common"
	"basecodec/elements"
	"basecodec/report"
	"basecodec/scope"
	"basecodec/types"
)

// Checker walks elements and fills their inferred-type slots (spec.md
// §4.3 "Type inference is rule-based per element kind").
type Checker struct {
	Elems    *elements.Map
	Registry *types.Registry
	Scopes   *scope.Manager
	Sink     *report.Sink
}

// NewChecker creates an inference checker sharing the element map,
// type registry, and scope manager built by earlier phases.
func NewChecker(elems *elements.Map, reg *types.Registry, scopes *scope.Manager, sink *report.Sink) *Checker {
	return &Checker{Elems: elems, Registry: reg, Scopes: scopes, Sink: sink}
}

// AttemptType is a scope.AttemptFunc for the unknown-types queue: it
// tries to infer id's type, returning true on success.
func (c *Checker) AttemptType(id elements.ID) bool {
	e := c.Elems.Get(id)
	t, ok := c.infer(e)
	if !ok {
		return false
	}
	c.setType(e, t)
	return true
}

// AttemptRef is a scope.AttemptFunc for the unresolved-refs queue: it
// tries to resolve an IdentifierRef against its enclosing scope.
func (c *Checker) AttemptRef(id elements.ID) bool {
	e := c.Elems.Get(id)
	ref, ok := e.Payload.(*elements.IdentifierRef)
	if !ok {
		return true // not actually a ref; drop it from the queue
	}

	matches, found := c.Scopes.Lookup(scope.ID(e.ParentScope), ref.Symbol.Name)
	if !found {
		return false
	}

	decl := matches[0]
	ref.Decl = decl
	if t, ok := c.typeOfDecl(decl); ok {
		ref.Type = t
		return true
	}
	return false
}

// infer applies the per-kind rule table of spec.md §4.3. It returns
// (type, false) when the element's inputs aren't resolved yet (the
// caller re-enqueues it).
func (c *Checker) infer(e *elements.Element) (types.Type, bool) {
	switch p := e.Payload.(type) {
	case *elements.IntegerLiteral:
		if p.Negative {
			return types.NarrowestSignedFor(p.Value), true
		}
		return types.NarrowestUnsignedFor(p.Value), true

	case *elements.FloatLiteral:
		return types.F64, true

	case *elements.StringLiteral:
		t, _ := c.Registry.Lookup(common.NewSymbol("string"))
		return t, true

	case *elements.BoolLiteral:
		return types.BoolType{}, true

	case *elements.CharLiteral:
		return types.RuneType{}, true

	case *elements.IdentifierRef:
		return c.typeOfDecl(p.Decl)

	case *elements.UnaryOp:
		return c.typeOf(p.Operand)

	case *elements.BinaryOp:
		return c.inferBinary(p)

	case *elements.MemberAccess:
		return c.inferMemberAccess(p)

	case *elements.Subscript:
		return c.inferSubscript(p)

	case *elements.Cast:
		return p.Target, true
	case *elements.Transmute:
		return p.Target, true

	case *elements.IntrinsicCall:
		return p.Type, p.Type.Kind() != types.KindUnknown

	case *elements.ProcedureCall:
		return c.inferCall(p)

	case *elements.Declaration:
		if p.Init == 0 {
			return types.UnknownType{}, false
		}
		return c.typeOf(p.Init)
	}

	return types.UnknownType{}, false
}

func (c *Checker) inferBinary(p *elements.BinaryOp) (types.Type, bool) {
	lhs, lhsOK := c.typeOf(p.LHS)
	rhs, rhsOK := c.typeOf(p.RHS)
	if !lhsOK || !rhsOK {
		return types.UnknownType{}, false
	}

	switch p.Op {
	case common.OpIDEq, common.OpIDNeq,
		common.OpIDSLt, common.OpIDULt, common.OpIDFLt,
		common.OpIDSGt, common.OpIDUGt, common.OpIDFGt,
		common.OpIDSLtEq, common.OpIDULtEq, common.OpIDFLtEq,
		common.OpIDSGtEq, common.OpIDUGtEq, common.OpIDFGtEq,
		common.OpIDLAnd, common.OpIDLOr:
		// Relational/logical returns bool (spec.md §4.3).
		return types.BoolType{}, true
	default:
		// Binary arithmetic takes the lhs type (spec.md §4.3).
		_ = rhs
		return lhs, true
	}
}

func (c *Checker) inferMemberAccess(p *elements.MemberAccess) (types.Type, bool) {
	baseType, ok := c.typeOf(p.Base)
	if !ok {
		return types.UnknownType{}, false
	}

	// Dereference a pointer once if necessary (spec.md §4.3
	// "member-access returns the field type of the composite base
	// (dereferencing a pointer once if necessary)").
	if pt, isPtr := baseType.(*types.PointerType); isPtr {
		baseType = pt.Elem
	}

	ct, isComposite := baseType.(*types.CompositeType)
	if !isComposite {
		return types.UnknownType{}, false
	}

	field, ok := ct.GetField(p.Field)
	if !ok {
		// TODO: thread the MemberAccess element's own span through so this
		// carries a real source location instead of none.
		c.Sink.Error(report.CodeUnknownField, nil, "%s has no field %q", ct.Symbol, p.Field)
		return types.UnknownType{}, true
	}
	return field.Type, true
}

func (c *Checker) inferSubscript(p *elements.Subscript) (types.Type, bool) {
	baseType, ok := c.typeOf(p.Base)
	if !ok {
		return types.UnknownType{}, false
	}
	if at, isArray := baseType.(*types.ArrayType); isArray {
		return at.Elem, true
	}
	if pt, isPtr := baseType.(*types.PointerType); isPtr {
		return pt.Elem, true
	}
	return types.UnknownType{}, false
}

func (c *Checker) inferCall(p *elements.ProcedureCall) (types.Type, bool) {
	calleeType, ok := c.typeOf(p.Callee)
	if !ok {
		return types.UnknownType{}, false
	}
	pt, isProc := calleeType.(*types.ProcType)
	if !isProc {
		return types.UnknownType{}, false
	}
	if pt.Results == nil || pt.Results.Arity() == 0 {
		return types.U0, true
	}
	return pt.Results.Fields[0].Type, true
}

// typeOf returns the already-inferred type of id's element, or
// (unknown, false) if it hasn't been filled in yet.
func (c *Checker) typeOf(id elements.ID) (types.Type, bool) {
	e, ok := c.Elems.TryGet(id)
	if !ok {
		return types.UnknownType{}, false
	}
	t := typeSlot(e)
	if t == nil || t.Kind() == types.KindUnknown {
		return types.UnknownType{}, false
	}
	return t, true
}

// typeOfDecl returns a declaration's resolved type.
func (c *Checker) typeOfDecl(id elements.ID) (types.Type, bool) {
	e, ok := c.Elems.TryGet(id)
	if !ok {
		return types.UnknownType{}, false
	}
	decl, ok := e.Payload.(*elements.Declaration)
	if !ok {
		return c.typeOf(id)
	}
	if !decl.TypeKnown || decl.Type == nil || decl.Type.Kind() == types.KindUnknown {
		return types.UnknownType{}, false
	}
	return decl.Type, true
}

// setType writes t into e's kind-specific type slot.
func (c *Checker) setType(e *elements.Element, t types.Type) {
	switch p := e.Payload.(type) {
	case *elements.IdentifierRef:
		p.Type = t
	case *elements.UnaryOp:
		p.Type = t
	case *elements.BinaryOp:
		p.Type = t
	case *elements.MemberAccess:
		p.Type = t
	case *elements.Subscript:
		p.Type = t
	case *elements.ProcedureCall:
		p.Type = t
	case *elements.Declaration:
		p.Type = t
		p.TypeKnown = true
	}
}

// typeSlot reads e's kind-specific type slot without attempting
// inference.
func typeSlot(e *elements.Element) types.Type {
	switch p := e.Payload.(type) {
	case *elements.IntegerLiteral:
		return p.Type
	case *elements.FloatLiteral:
		return p.Type
	case *elements.BoolLiteral:
		return types.BoolType{}
	case *elements.CharLiteral:
		return types.RuneType{}
	case *elements.IdentifierRef:
		return p.Type
	case *elements.UnaryOp:
		return p.Type
	case *elements.BinaryOp:
		return p.Type
	case *elements.MemberAccess:
		return p.Type
	case *elements.Subscript:
		return p.Type
	case *elements.ProcedureCall:
		return p.Type
	case *elements.Declaration:
		if p.TypeKnown {
			return p.Type
		}
		return types.UnknownType{}
	case *elements.Cast:
		return p.Target
	case *elements.Transmute:
		return p.Target
	case *elements.IntrinsicCall:
		return p.Type
	}
	return types.UnknownType{}
}
