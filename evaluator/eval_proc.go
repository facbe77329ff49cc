package evaluator

import (
	"basecodec/ast"
	"basecodec/common"
	"basecodec/elements"
	"basecodec/scope"
	"basecodec/types"
)

// evalProcDef folds a procedure definition into a ProcedureInstance
// element: its signature is registered in the enclosing scope before the
// body is evaluated so recursive and mutually-recursive calls resolve
// against it, and the body is evaluated in a fresh stack-frame scope
// (spec.md §3.4 "stack-frame flag", §4.5.2 "prologue/invoke/epilogue").
func (e *Evaluator) evalProcDef(s scope.ID, n *ast.Node) elements.ID {
	p := n.Payload.(ast.ProcDefPayload)
	symbol := common.NewSymbol(p.Name)

	params := types.NewFieldMap()
	results := types.NewFieldMap()
	if rt, ok := e.resolveType(p.ReturnType); ok && rt != types.U0 {
		results.Append("", rt)
	}

	var paramNodes []*ast.Node
	var bodyNode *ast.Node
	for _, child := range n.Children {
		if child.Kind == ast.KindParam {
			paramNodes = append(paramNodes, child)
			continue
		}
		bodyNode = child
	}

	for _, pn := range paramNodes {
		pp := pn.Payload.(ast.ParamPayload)
		pt, _ := e.resolveType(pp.Type)
		params.Append(pp.Name, pt)
	}

	procType := e.Registry.ProcTypeOf(params, results, p.Foreign)

	frameScope := e.Scopes.Open(s, true)
	paramIDs := make([]elements.ID, 0, len(paramNodes))
	for _, pn := range paramNodes {
		pp := pn.Payload.(ast.ParamPayload)
		pt, ok := e.resolveType(pp.Type)
		fieldID := e.Builder.Field(elements.ScopeID(frameScope), e.module, pp.Name, pt)
		e.Scopes.Define(frameScope, pp.Name, fieldID)
		if !ok {
			e.Queues.EnqueueUnknownType(fieldID)
		}
		paramIDs = append(paramIDs, fieldID)
	}

	var bodyID elements.ID
	if !p.Foreign && bodyNode != nil {
		bodyID = e.evalBlock(frameScope, bodyNode)
	}

	id := e.Builder.ProcedureInstance(elements.ScopeID(s), e.module, elements.ProcedureInstance{
		Symbol:       symbol,
		Type:         procType,
		Params:       paramIDs,
		Body:         bodyID,
		Foreign:      p.Foreign,
		ExternalName: p.ExternalName,
		Variadic:     p.Variadic,
	})
	e.Scopes.Define(s, p.Name, id)
	return e.finish(id, n)
}
