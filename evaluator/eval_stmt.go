package evaluator

import (
	"basecodec/ast"
	"basecodec/common"
	"basecodec/elements"
	"basecodec/report"
	"basecodec/scope"
	"basecodec/types"
)

// evalStmt dispatches a statement-position AST node, folding control
// constructs into their element shape (spec.md §4.4): `if/elif/else`
// folds into nested If elements, `for x in range(...)` lowers to a
// structured For element, `switch/case/fallthrough` keeps the
// scrutinee on Switch with Case children.
func (e *Evaluator) evalStmt(s scope.ID, n *ast.Node) elements.ID {
	switch n.Kind {
	case ast.KindBlock:
		return e.evalBlock(s, n)

	case ast.KindStatement:
		return e.evalStmt(s, n.Child(0))

	case ast.KindDeclaration:
		return e.evalDeclaration(s, n)

	case ast.KindImport:
		return e.evalImport(s, n)

	case ast.KindDirective:
		e.attachDirective(n)
		return 0

	case ast.KindIf:
		cond := e.evalExpr(s, n.Child(0))
		then := e.evalBlock(e.Scopes.Open(s, false), n.Child(1))
		var els elements.ID
		if elseNode := n.Child(2); elseNode != nil {
			if elseNode.Kind == ast.KindIf {
				els = e.evalStmt(s, elseNode)
			} else {
				els = e.evalBlock(e.Scopes.Open(s, false), elseNode)
			}
		}
		id := e.Builder.If(elements.ScopeID(s), e.module, cond, then, els)
		return e.finish(id, n)

	case ast.KindWhile:
		loopScope := e.Scopes.Open(s, false)
		cond := e.evalExpr(s, n.Child(0))
		e.loopDepth++
		body := e.evalBlock(loopScope, n.Child(1))
		e.loopDepth--
		id := e.Builder.While(elements.ScopeID(s), e.module, cond, body)
		return e.finish(id, n)

	case ast.KindFor:
		return e.evalFor(s, n)

	case ast.KindSwitch:
		return e.evalSwitch(s, n)

	case ast.KindBreak:
		p := n.Payload.(ast.BreakContinuePayload)
		if e.loopDepth == 0 && p.Label == "" {
			e.errorf(report.CodeNoExitLabel, n.Span, "break outside a loop")
		}
		id := e.Builder.Break(elements.ScopeID(s), e.module, p.Label)
		return e.finish(id, n)

	case ast.KindContinue:
		p := n.Payload.(ast.BreakContinuePayload)
		if e.loopDepth == 0 && p.Label == "" {
			e.errorf(report.CodeNoExitLabel, n.Span, "continue outside a loop")
		}
		id := e.Builder.Continue(elements.ScopeID(s), e.module, p.Label)
		return e.finish(id, n)

	case ast.KindReturn:
		var value elements.ID
		if vn := n.Child(0); vn != nil {
			value = e.evalExpr(s, vn)
		}
		id := e.Builder.Return(elements.ScopeID(s), e.module, value)
		return e.finish(id, n)

	case ast.KindDefer:
		expr := e.evalExpr(s, n.Child(0))
		id := e.Builder.Defer(elements.ScopeID(s), e.module, expr)
		e.Scopes.Get(s).PushDefer(id)
		return e.finish(id, n)

	case ast.KindWith:
		binding := e.evalDeclaration(s, n.Child(0))
		body := e.evalBlock(e.Scopes.Open(s, false), n.Child(1))
		id := e.Builder.With(elements.ScopeID(s), e.module, binding, body)
		return e.finish(id, n)

	case ast.KindFallthrough:
		id := e.Builder.Fallthrough(elements.ScopeID(s), e.module)
		return e.finish(id, n)

	case ast.KindLabel:
		p := n.Payload.(ast.IdentifierPayload)
		id := e.Builder.Label(elements.ScopeID(s), e.module, p.Name)
		e.Scopes.Get(s).DefineLabel(p.Name, id)
		return e.finish(id, n)

	case ast.KindExpressionStmt:
		expr := e.evalExpr(s, n.Child(0))
		id := e.Builder.ExpressionStmt(elements.ScopeID(s), e.module, expr)
		return e.finish(id, n)
	}

	// Anything else in statement position is an expression evaluated for
	// its side effects (assignment, a bare call, an intrinsic).
	expr := e.evalExpr(s, n)
	id := e.Builder.ExpressionStmt(elements.ScopeID(s), e.module, expr)
	return id
}

// evalBlock opens (or reuses, for caller-opened frame scopes) a scope
// for n's statement list and folds each child statement in turn, each
// individually recovered so one malformed statement doesn't abort its
// siblings (spec.md §7).
func (e *Evaluator) evalBlock(blockScope scope.ID, n *ast.Node) elements.ID {
	id := e.Builder.Block(elements.ScopeID(blockScope), e.module, elements.ScopeID(blockScope))
	for _, child := range n.Children {
		stmtID := e.evalBlockStmt(blockScope, child)
		if stmtID != 0 {
			e.Builder.AddStmt(id, stmtID)
		}
	}
	return e.finish(id, n)
}

func (e *Evaluator) evalBlockStmt(s scope.ID, n *ast.Node) (id elements.ID) {
	defer e.Sink.Catch()
	return e.evalStmt(s, n)
}

// evalFor lowers `for x in range(start, stop[, step])` into a structured
// For element; the induction variable is declared in a fresh scope so it
// is visible only to the loop body (spec.md §4.4).
func (e *Evaluator) evalFor(s scope.ID, n *ast.Node) elements.ID {
	p := n.Payload.(ast.ForPayload)
	loopScope := e.Scopes.Open(s, false)

	rangeCall := n.Child(0)
	rp := rangeCall.Payload.(ast.IntrinsicPayload)
	if rp.Name != "range" {
		e.errorf(report.CodeNoExitLabel, rangeCall.Span, "for loop expects a range(...) intrinsic, got %q", rp.Name)
	}
	start := e.evalExpr(loopScope, rangeCall.Child(0))
	stop := e.evalExpr(loopScope, rangeCall.Child(1))
	var step elements.ID
	if stepNode := rangeCall.Child(2); stepNode != nil {
		step = e.evalExpr(loopScope, stepNode)
	}

	inductionID := e.Builder.Declaration(elements.ScopeID(loopScope), e.module,
		common.NewSymbol(p.InductionVar), types.UnknownType{}, false, start, false)
	e.Scopes.Define(loopScope, p.InductionVar, inductionID)
	e.Queues.EnqueueUnknownType(inductionID)

	e.loopDepth++
	body := e.evalBlock(loopScope, n.Child(1))
	e.loopDepth--

	id := e.Builder.For(elements.ScopeID(s), e.module, elements.For{
		InductionVar: inductionID,
		Start:        start,
		Stop:         stop,
		Step:         step,
		Descending:   p.Descending,
		Inclusive:    p.Inclusive,
		Body:         body,
	})
	return e.finish(id, n)
}

// evalSwitch folds `switch`/`case`/`fallthrough` into a Switch element
// with Case children, keeping the scrutinee reachable from every case
// for later flow-control-stack bookkeeping at emit time (spec.md §4.4).
func (e *Evaluator) evalSwitch(s scope.ID, n *ast.Node) elements.ID {
	scrutinee := e.evalExpr(s, n.Child(0))
	switchID := e.Builder.Switch(elements.ScopeID(s), e.module, scrutinee)

	for _, caseNode := range n.Children[1:] {
		cp := caseNode.Payload.(ast.CasePayload)
		caseScope := e.Scopes.Open(s, false)

		var exprID elements.ID
		var bodyNode *ast.Node
		if cp.IsDefault {
			bodyNode = caseNode.Child(0)
		} else {
			exprID = e.evalExpr(caseScope, caseNode.Child(0))
			bodyNode = caseNode.Child(1)
		}
		body := e.evalBlock(caseScope, bodyNode)

		e.Builder.AddCase(elements.ScopeID(s), e.module, switchID, elements.Case{
			Expr:        exprID,
			IsDefault:   cp.IsDefault,
			Body:        body,
			Fallthrough: cp.Fallthrough,
		})
	}

	return e.finish(switchID, n)
}
