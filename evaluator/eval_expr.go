package evaluator

import (
	"basecodec/ast"
	"basecodec/common"
	"basecodec/elements"
	"basecodec/report"
	"basecodec/scope"
	"basecodec/types"
)

// evalExpr dispatches an expression-position AST node to its matching
// element constructor (spec.md §4.4 "map each AST node kind to one
// element-construction routine").
func (e *Evaluator) evalExpr(s scope.ID, n *ast.Node) elements.ID {
	switch n.Kind {
	case ast.KindIntegerLiteral:
		p := n.Payload.(ast.IntegerLiteralPayload)
		guess := types.NarrowestUnsignedFor(p.Value)
		if p.Negative {
			guess = types.NarrowestSignedFor(p.Value)
		}
		id := e.Builder.IntegerLiteral(elements.ScopeID(s), e.module, p.Value, p.Negative, guess)
		return e.finish(id, n)

	case ast.KindFloatLiteral:
		p := n.Payload.(ast.FloatLiteralPayload)
		id := e.Builder.FloatLiteral(elements.ScopeID(s), e.module, p.Value, types.F64)
		return e.finish(id, n)

	case ast.KindStringLiteral:
		p := n.Payload.(ast.StringLiteralPayload)
		id := e.Builder.StringLiteral(elements.ScopeID(s), e.module, p.Value, -1)
		return e.finish(id, n)

	case ast.KindBoolLiteral:
		p := n.Payload.(ast.BoolLiteralPayload)
		id := e.Builder.BoolLiteral(elements.ScopeID(s), e.module, p.Value)
		return e.finish(id, n)

	case ast.KindCharLiteral:
		p := n.Payload.(ast.CharLiteralPayload)
		id := e.Builder.CharLiteral(elements.ScopeID(s), e.module, p.Value)
		return e.finish(id, n)

	case ast.KindNilLiteral:
		id := e.Builder.NilLiteral(elements.ScopeID(s), e.module, types.UnknownType{})
		return e.finish(id, n)

	case ast.KindUninitLiteral:
		id := e.Builder.Uninitialized(elements.ScopeID(s), e.module, types.UnknownType{})
		return e.finish(id, n)

	case ast.KindIdentifier:
		p := n.Payload.(ast.IdentifierPayload)
		symbol := common.NewSymbol(p.Name)
		id := e.Builder.IdentifierRef(elements.ScopeID(s), e.module, symbol)
		e.Queues.EnqueueUnresolvedRef(id)
		return e.finish(id, n)

	case ast.KindBinaryOp:
		p := n.Payload.(ast.BinaryOpPayload)
		lhs := e.evalExpr(s, n.Child(0))
		rhs := e.evalExpr(s, n.Child(1))
		id := e.Builder.BinaryOp(elements.ScopeID(s), e.module, p.Op, lhs, rhs)
		e.Queues.EnqueueUnknownType(id)
		return e.finish(id, n)

	case ast.KindUnaryOp:
		p := n.Payload.(ast.UnaryOpPayload)
		operand := e.evalExpr(s, n.Child(0))
		id := e.Builder.UnaryOp(elements.ScopeID(s), e.module, p.Op, operand)
		e.Queues.EnqueueUnknownType(id)
		return e.finish(id, n)

	case ast.KindMemberAccess:
		base := e.evalExpr(s, n.Child(0))
		field := n.Child(1).Payload.(ast.IdentifierPayload).Name
		id := e.Builder.MemberAccess(elements.ScopeID(s), e.module, base, field)
		e.Queues.EnqueueUnknownType(id)
		return e.finish(id, n)

	case ast.KindSubscript:
		base := e.evalExpr(s, n.Child(0))
		index := e.evalExpr(s, n.Child(1))
		id := e.Builder.Subscript(elements.ScopeID(s), e.module, base, index)
		e.Queues.EnqueueUnknownType(id)
		return e.finish(id, n)

	case ast.KindCast:
		expr := e.evalExpr(s, n.Child(0))
		target, ok := e.resolveType(n.Child(1))
		if !ok {
			e.errorf(report.CodeUnresolvedSymbol, n.Span, "cast target type is not yet resolved")
		}
		id := e.Builder.Cast(elements.ScopeID(s), e.module, expr, target)
		return e.finish(id, n)

	case ast.KindTransmute:
		expr := e.evalExpr(s, n.Child(0))
		target, ok := e.resolveType(n.Child(1))
		if !ok {
			e.errorf(report.CodeUnresolvedSymbol, n.Span, "transmute target type is not yet resolved")
		}
		id := e.Builder.Transmute(elements.ScopeID(s), e.module, expr, target)
		return e.finish(id, n)

	case ast.KindProcCall:
		callee := e.evalExpr(s, n.Child(0))
		argsID := e.evalArgumentList(s, n.Child(1))
		id := e.Builder.ProcedureCall(elements.ScopeID(s), e.module, callee, argsID)
		e.Queues.EnqueueUnknownType(id)
		return e.finish(id, n)

	case ast.KindIntrinsic:
		return e.evalIntrinsic(s, n)

	case ast.KindAssignment:
		target := e.evalExpr(s, n.Child(0))
		value := e.evalExpr(s, n.Child(1))
		id := e.Builder.Assignment(elements.ScopeID(s), e.module, target, value)
		return e.finish(id, n)
	}

	e.errorf(report.CodeUnresolvedSymbol, n.Span, "unhandled expression node kind %d", n.Kind)
	return 0
}

func (e *Evaluator) evalArgumentList(s scope.ID, n *ast.Node) elements.ID {
	args := make([]elements.ID, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == ast.KindArgumentPair {
			value := e.evalExpr(s, c.Child(0))
			args = append(args, value)
			continue
		}
		args = append(args, e.evalExpr(s, c))
	}
	id := e.Builder.ArgumentList(elements.ScopeID(s), e.module, args)
	return e.finish(id, n)
}
