package evaluator

import (
	"basecodec/ast"
	"basecodec/common"
	"basecodec/types"
)

// resolveType folds a KindTypeExpr node into a concrete types.Type using
// the shared registry, returning (type, false) when the name isn't
// registered yet (the caller enqueues the owning declaration onto the
// unknown-types queue instead of failing outright, per spec.md §4.4).
func (e *Evaluator) resolveType(n *ast.Node) (types.Type, bool) {
	if n == nil {
		return types.U0, true
	}

	p := n.Payload.(ast.TypeExprPayload)
	switch p.Kind {
	case "named":
		return e.Registry.Lookup(common.NewSymbol(p.Name))
	case "pointer":
		elemType, ok := e.resolveType(p.Elem)
		if !ok {
			return types.UnknownType{}, false
		}
		return e.Registry.PointerTo(elemType), true
	case "array":
		elemType, ok := e.resolveType(p.Elem)
		if !ok {
			return types.UnknownType{}, false
		}
		return e.Registry.ArrayOf(elemType), true
	default:
		return types.UnknownType{}, false
	}
}
