// Package evaluator folds the AST into elements by dispatching on AST
// node kind, attaching source locations and owned-children lists
// (spec.md §4.4). It is grounded on the teacher's `walk/walker.go` +
// `walk/walk_*.go` family: the push/pop local-scope-stack idiom and the
// panic-based `error`/recoverable `recError` split carry over directly,
// generalized from Chai's expression-oriented grammar (every construct
// is an expression with a type) to Basecode's statement/declaration
// grammar (if/while/for/switch are control constructs, not expressions
// that yield a value).
package evaluator

import (
	"basecodec/ast"
	"basecodec/elements"
	"basecodec/report"
	"basecodec/scope"
	"basecodec/types"
)

// Evaluator threads the shared builder, element map, scope manager, and
// type registry through recursive AST evaluation, plus the two
// resolution work-queues later phases will drain to a fixpoint (spec.md
// §4.2, §4.4).
type Evaluator struct {
	Builder  *elements.Builder
	Elems    *elements.Map
	Scopes   *scope.Manager
	Registry *types.Registry
	Queues   *scope.Queues
	Sink     *report.Sink

	// pendingComments/pendingAttributes are attached to the next
	// non-comment element the evaluator constructs (spec.md §4.4
	// "threads an evaluator context carrying: pending comments to
	// attach to the next non-comment element, pending attributes").
	pendingComments   []string
	pendingAttributes []string

	// loopDepth tracks nesting so break/continue outside a loop can be
	// reported, mirroring the teacher's Walker.loopDepth.
	loopDepth int

	module elements.ModuleID
}

// New creates an evaluator over a freshly built element map/scope
// manager/type registry.
func New(b *elements.Builder, scopes *scope.Manager, reg *types.Registry, sink *report.Sink) *Evaluator {
	return &Evaluator{
		Builder:  b,
		Elems:    b.Map,
		Scopes:   scopes,
		Registry: reg,
		Queues:   scope.NewQueues(),
		Sink:     sink,
	}
}

// EvalModule folds one parsed source file's top-level node into a
// Module element under programID (spec.md §4.4 "construct ... recursively
// evaluating children in their correct scope").
func (e *Evaluator) EvalModule(programID elements.ID, modScope scope.ID, mod elements.ModuleID, n *ast.Node) elements.ID {
	e.module = mod
	modID := e.Builder.Module(programID, elements.ScopeID(modScope), mod, pathOf(n))
	for _, child := range n.Children {
		itemID := e.evalTopLevel(modScope, child)
		if itemID != 0 {
			mp := e.Elems.Get(modID).Payload.(*elements.Module)
			mp.Items = append(mp.Items, itemID)
			e.Elems.AddChild(modID, itemID)
		}
	}
	return modID
}

func pathOf(n *ast.Node) string {
	if p, ok := n.Payload.(ast.IdentifierPayload); ok {
		return p.Name
	}
	return ""
}

// evalTopLevel dispatches a module-level declaration: a procedure
// definition, a global variable declaration, a composite type
// definition, or an import. Each top-level item is individually
// recovered so one malformed declaration doesn't abort the rest of the
// module (spec.md §7 "Phases continue processing siblings after an
// error to collect as many diagnostics as possible").
func (e *Evaluator) evalTopLevel(s scope.ID, n *ast.Node) (id elements.ID) {
	defer e.Sink.Catch()

	switch n.Kind {
	case ast.KindProcDef:
		return e.evalProcDef(s, n)
	case ast.KindDeclaration:
		return e.evalDeclaration(s, n)
	case ast.KindImport:
		return e.evalImport(s, n)
	case ast.KindDirective:
		e.attachDirective(n)
		return 0
	default:
		return e.evalStmt(s, n)
	}
}

// errorf raises a recoverable compile error at span, unwound by the
// nearest deferred Sink.Catch (spec.md §4.4's evaluator context; grounded
// on the teacher's Walker.error, which panics a *CompileError caught at
// the definition-walking boundary).
func (e *Evaluator) errorf(code report.Code, span report.TextSpan, format string, args ...any) {
	panic(report.Raise(code, &span, format, args...))
}

func (e *Evaluator) attachDirective(n *ast.Node) {
	p := n.Payload.(ast.DirectiveAttributePayload)
	e.pendingAttributes = append(e.pendingAttributes, p.Name)
}

func (e *Evaluator) takePendingAttributes() []string {
	a := e.pendingAttributes
	e.pendingAttributes = nil
	return a
}

func (e *Evaluator) takePendingComments() []string {
	c := e.pendingComments
	e.pendingComments = nil
	return c
}

// finish stamps location/comments/attributes onto a freshly constructed
// element id and returns it, mirroring the evaluator-context threading
// of spec.md §4.4.
func (e *Evaluator) finish(id elements.ID, n *ast.Node) elements.ID {
	e.Elems.SetLocation(id, n.Span)
	if cs := e.takePendingComments(); len(cs) > 0 {
		e.Elems.SetComments(id, cs)
	}
	if len(n.Attributes) > 0 {
		e.Elems.SetAttributes(id, n.Attributes)
	} else if as := e.takePendingAttributes(); len(as) > 0 {
		e.Elems.SetAttributes(id, as)
	}
	return id
}
