package evaluator

import (
	"basecodec/ast"
	"basecodec/elements"
	"basecodec/report"
	"basecodec/scope"
	"basecodec/types"
)

// evalIntrinsic folds a by-name compiler builtin into an IntrinsicCall
// element, validating arity against the fixed shape each intrinsic
// expects (spec.md §4.4 "Intrinsics are recognised by name ... arity and
// argument kinds are validated at this stage").
func (e *Evaluator) evalIntrinsic(s scope.ID, n *ast.Node) elements.ID {
	p := n.Payload.(ast.IntrinsicPayload)

	switch p.Name {
	case "address_of":
		e.arity(n, 1, p.Name)
		operand := e.evalExpr(s, n.Child(0))
		id := e.Builder.Intrinsic(elements.ScopeID(s), e.module, elements.IntrinsicAddressOf,
			[]elements.ID{operand}, nil, types.UnknownType{})
		e.Queues.EnqueueUnknownType(id)
		return e.finish(id, n)

	case "alloc":
		e.arity(n, 1, p.Name)
		elemType, ok := e.resolveType(n.Child(0))
		result := types.Type(types.UnknownType{})
		id := e.Builder.Intrinsic(elements.ScopeID(s), e.module, elements.IntrinsicAlloc,
			nil, elemType, result)
		if ok {
			id = e.setIntrinsicResult(id, e.Registry.PointerTo(elemType))
		} else {
			e.Queues.EnqueueUnknownType(id)
		}
		return e.finish(id, n)

	case "free":
		e.arity(n, 1, p.Name)
		arg := e.evalExpr(s, n.Child(0))
		id := e.Builder.Intrinsic(elements.ScopeID(s), e.module, elements.IntrinsicFree,
			[]elements.ID{arg}, nil, types.U0)
		return e.finish(id, n)

	case "fill":
		e.arity(n, 3, p.Name)
		args := e.evalExprList(s, n, 0, 3)
		id := e.Builder.Intrinsic(elements.ScopeID(s), e.module, elements.IntrinsicFill, args, nil, types.U0)
		return e.finish(id, n)

	case "copy":
		e.arity(n, 3, p.Name)
		args := e.evalExprList(s, n, 0, 3)
		id := e.Builder.Intrinsic(elements.ScopeID(s), e.module, elements.IntrinsicCopy, args, nil, types.U0)
		return e.finish(id, n)

	case "size_of":
		e.arity(n, 1, p.Name)
		argType, ok := e.resolveType(n.Child(0))
		if !ok {
			e.errorf(report.CodeIntrinsicArity, n.Span, "size_of argument type is not yet resolved")
		}
		id := e.Builder.Intrinsic(elements.ScopeID(s), e.module, elements.IntrinsicSizeOf, nil, argType, types.U64)
		return e.finish(id, n)

	case "type_of":
		e.arity(n, 1, p.Name)
		argType, ok := e.resolveType(n.Child(0))
		if !ok {
			e.errorf(report.CodeIntrinsicArity, n.Span, "type_of argument type is not yet resolved")
		}
		id := e.Builder.Intrinsic(elements.ScopeID(s), e.module, elements.IntrinsicTypeOf, nil, argType, types.TypeMetaType{})
		return e.finish(id, n)

	case "range":
		if len(n.Children) < 2 || len(n.Children) > 3 {
			e.errorf(report.CodeIntrinsicArity, n.Span, "range expects 2 or 3 arguments, got %d", len(n.Children))
		}
		args := e.evalExprList(s, n, 0, len(n.Children))
		id := e.Builder.Intrinsic(elements.ScopeID(s), e.module, elements.IntrinsicRange, args, nil, types.UnknownType{})
		return e.finish(id, n)
	}

	e.errorf(report.CodeUnresolvedSymbol, n.Span, "unrecognised intrinsic %q", p.Name)
	return 0
}

func (e *Evaluator) arity(n *ast.Node, want int, name string) {
	if len(n.Children) != want {
		e.errorf(report.CodeIntrinsicArity, n.Span, "%s expects %d argument(s), got %d", name, want, len(n.Children))
	}
}

func (e *Evaluator) evalExprList(s scope.ID, n *ast.Node, from, to int) []elements.ID {
	out := make([]elements.ID, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, e.evalExpr(s, n.Child(i)))
	}
	return out
}

// setIntrinsicResult overwrites a just-built IntrinsicCall's result type
// once it's known immediately (e.g. alloc's pointer-to-element-type),
// sparing the resolution queue a needless round trip.
func (e *Evaluator) setIntrinsicResult(id elements.ID, t types.Type) elements.ID {
	call := e.Elems.Get(id).Payload.(*elements.IntrinsicCall)
	call.Type = t
	return id
}
