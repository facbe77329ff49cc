package evaluator

import (
	"testing"

	"basecodec/ast"
	"basecodec/common"
	"basecodec/elements"
	"basecodec/report"
	"basecodec/scope"
	"basecodec/types"
)

func newEvaluator() (*Evaluator, scope.ID) {
	b := elements.NewBuilder(elements.NewMap())
	scopes := scope.NewManager()
	reg := types.NewRegistry()
	sink := report.NewSink()
	return New(b, scopes, reg, sink), scopes.Root()
}

func ident(name string) *ast.Node {
	return &ast.Node{Kind: ast.KindIdentifier, Payload: ast.IdentifierPayload{Name: name}}
}

func intLit(v uint64) *ast.Node {
	return &ast.Node{Kind: ast.KindIntegerLiteral, Payload: ast.IntegerLiteralPayload{Value: v}}
}

func TestEvalDeclarationRegistersSymbolInScope(t *testing.T) {
	e, s := newEvaluator()
	decl := &ast.Node{
		Kind:     ast.KindDeclaration,
		Payload:  ast.DeclarationPayload{Name: "x"},
		Children: []*ast.Node{intLit(5)},
	}

	id := e.evalDeclaration(s, decl)
	if id == 0 {
		t.Fatalf("evalDeclaration returned zero id")
	}

	found, ok := e.Scopes.Lookup(s, "x")
	if !ok || len(found) != 1 || found[0] != id {
		t.Fatalf("declaration not visible in scope: found=%v ok=%v", found, ok)
	}
	if e.Queues.Empty() {
		t.Fatalf("declaration with no type annotation should enqueue onto the unknown-types queue")
	}
}

func TestEvalDeclarationWithKnownTypeSkipsQueue(t *testing.T) {
	e, s := newEvaluator()
	decl := &ast.Node{
		Kind: ast.KindDeclaration,
		Payload: ast.DeclarationPayload{
			Name: "x",
			Type: &ast.Node{Kind: ast.KindTypeExpr, Payload: ast.TypeExprPayload{Kind: "named", Name: "u32"}},
		},
		Children: []*ast.Node{intLit(5)},
	}

	e.evalDeclaration(s, decl)
	if !e.Queues.Empty() {
		t.Fatalf("declaration with a resolved type annotation should not enqueue")
	}
}

func TestEvalExprBinaryOpOwnsOperandsAndEnqueues(t *testing.T) {
	e, s := newEvaluator()
	n := &ast.Node{
		Kind:     ast.KindBinaryOp,
		Payload:  ast.BinaryOpPayload{Op: common.OperatorID(1)},
		Children: []*ast.Node{intLit(1), intLit(2)},
	}

	id := e.evalExpr(s, n)
	el := e.Elems.Get(id)
	if len(el.Children) != 2 {
		t.Fatalf("BinaryOp should own both operands, got %d children", len(el.Children))
	}
	if e.Queues.Empty() {
		t.Fatalf("BinaryOp should enqueue onto the unknown-types queue")
	}
}

func TestEvalIfFoldsElseIntoNestedIf(t *testing.T) {
	e, s := newEvaluator()
	innerIf := &ast.Node{
		Kind: ast.KindIf,
		Children: []*ast.Node{
			intLit(0),
			{Kind: ast.KindBlock},
		},
	}
	outerIf := &ast.Node{
		Kind: ast.KindIf,
		Children: []*ast.Node{
			intLit(1),
			{Kind: ast.KindBlock},
			innerIf,
		},
	}

	id := e.evalStmt(s, outerIf)
	payload := e.Elems.Get(id).Payload.(*elements.If)
	if payload.Else == 0 {
		t.Fatalf("outer if should have an Else branch")
	}
	elseEl := e.Elems.Get(payload.Else)
	if _, ok := elseEl.Payload.(*elements.If); !ok {
		t.Fatalf("elif should fold into a nested If element, got %T", elseEl.Payload)
	}
}

func TestEvalWhileTracksLoopDepthForBreak(t *testing.T) {
	e, s := newEvaluator()
	body := &ast.Node{
		Kind: ast.KindBlock,
		Children: []*ast.Node{
			{Kind: ast.KindBreak, Payload: ast.BreakContinuePayload{}},
		},
	}
	whileNode := &ast.Node{
		Kind:     ast.KindWhile,
		Children: []*ast.Node{intLit(1), body},
	}

	id := e.evalStmt(s, whileNode)
	if id == 0 {
		t.Fatalf("evalStmt(while) returned zero id")
	}
	if e.loopDepth != 0 {
		t.Fatalf("loopDepth should be restored to 0 after the loop body, got %d", e.loopDepth)
	}
}

func TestEvalIntrinsicSizeOfResolvesImmediately(t *testing.T) {
	e, s := newEvaluator()
	n := &ast.Node{
		Kind:    ast.KindIntrinsic,
		Payload: ast.IntrinsicPayload{Name: "size_of"},
		Children: []*ast.Node{
			{Kind: ast.KindTypeExpr, Payload: ast.TypeExprPayload{Kind: "named", Name: "u32"}},
		},
	}

	id := e.evalIntrinsic(s, n)
	call := e.Elems.Get(id).Payload.(*elements.IntrinsicCall)
	if call.Type != types.U64 {
		t.Fatalf("size_of should resolve to u64 immediately, got %v", call.Type)
	}
}

func TestEvalIntrinsicArityMismatchReportsError(t *testing.T) {
	e, s := newEvaluator()
	n := &ast.Node{
		Kind:    ast.KindIntrinsic,
		Payload: ast.IntrinsicPayload{Name: "free"},
	}

	func() {
		defer e.Sink.Catch()
		e.evalIntrinsic(s, n)
	}()

	if !e.Sink.HasErrors() {
		t.Fatalf("arity mismatch on free() should report a diagnostic")
	}
}

func TestEvalModuleRecoversFromOneBadTopLevelItem(t *testing.T) {
	e, s := newEvaluator()
	b := e.Builder
	programID := b.Program(0)

	bad := &ast.Node{Kind: ast.KindIntrinsic, Payload: ast.IntrinsicPayload{Name: "not_a_real_intrinsic"}}
	good := &ast.Node{
		Kind:     ast.KindDeclaration,
		Payload:  ast.DeclarationPayload{Name: "ok"},
		Children: []*ast.Node{intLit(1)},
	}
	module := &ast.Node{
		Kind:     ast.KindModule,
		Payload:  ast.IdentifierPayload{Name: "main"},
		Children: []*ast.Node{{Kind: ast.KindExpressionStmt, Children: []*ast.Node{bad}}, good},
	}

	modID := e.EvalModule(programID, s, 1, module)
	mp := e.Elems.Get(modID).Payload.(*elements.Module)
	if len(mp.Items) != 1 {
		t.Fatalf("expected exactly one surviving top-level item, got %d", len(mp.Items))
	}
	if !e.Sink.HasErrors() {
		t.Fatalf("the bad intrinsic should have reported a diagnostic")
	}
}

func TestEvalForDeclaresInductionVariableInLoopScope(t *testing.T) {
	e, s := newEvaluator()
	forNode := &ast.Node{
		Kind:    ast.KindFor,
		Payload: ast.ForPayload{InductionVar: "i"},
		Children: []*ast.Node{
			{
				Kind:     ast.KindIntrinsic,
				Payload:  ast.IntrinsicPayload{Name: "range"},
				Children: []*ast.Node{intLit(0), intLit(10)},
			},
			{Kind: ast.KindBlock},
		},
	}

	id := e.evalStmt(s, forNode)
	if id == 0 {
		t.Fatalf("evalStmt(for) returned zero id")
	}
	payload := e.Elems.Get(id).Payload.(*elements.For)
	if payload.InductionVar == 0 {
		t.Fatalf("for loop should declare an induction variable element")
	}
}
