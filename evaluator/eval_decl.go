package evaluator

import (
	"basecodec/ast"
	"basecodec/common"
	"basecodec/elements"
	"basecodec/scope"
	"basecodec/types"
)

// evalDeclaration folds `name[:type][=init]` into a Declaration element,
// enqueueing it onto the unknown-types queue when the annotation is
// absent (spec.md §4.4 "if type is absent, the identifier enters the
// unknown types queue; its type is inferred from its initializer").
func (e *Evaluator) evalDeclaration(s scope.ID, n *ast.Node) elements.ID {
	p := n.Payload.(ast.DeclarationPayload)
	symbol := common.NewSymbol(p.Name)

	var initID elements.ID
	if initNode := n.Child(0); initNode != nil {
		initID = e.evalExpr(s, initNode)
	}

	declType, typeKnown := types.Type(types.UnknownType{}), false
	if p.Type != nil {
		declType, typeKnown = e.resolveType(p.Type)
	}

	id := e.Builder.Declaration(elements.ScopeID(s), e.module, symbol, declType, typeKnown, initID, p.IsConst)
	e.Scopes.Define(s, p.Name, id)
	if !typeKnown {
		e.Queues.EnqueueUnknownType(id)
	}
	return e.finish(id, n)
}
