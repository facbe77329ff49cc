package evaluator

import (
	"basecodec/ast"
	"basecodec/elements"
	"basecodec/scope"
)

// evalImport folds an `import` clause into an Import element. Module
// resolution and symbol visibility across modules are handled by the
// caller driving EvalModule over the program's module set, not here.
func (e *Evaluator) evalImport(s scope.ID, n *ast.Node) elements.ID {
	p := n.Payload.(ast.ImportPayload)
	id := e.Builder.Import(elements.ScopeID(s), e.module, p.Path, p.Alias)
	return e.finish(id, n)
}
