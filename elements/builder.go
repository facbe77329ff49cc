package elements

import (
	"basecodec/common"
	"basecodec/types"
)

// Builder exposes one constructor per element kind (spec.md §4.1), each
// stamping a fresh id into the underlying Map. It is a thin, stateless
// wrapper: all real storage lives in Map so multiple evaluator contexts
// can share one builder.
type Builder struct {
	Map *Map
}

// NewBuilder wraps an element map with the one-constructor-per-kind API.
func NewBuilder(m *Map) *Builder {
	return &Builder{Map: m}
}

func (b *Builder) IntegerLiteral(scope ScopeID, mod ModuleID, v uint64, negative bool, t types.Type) ID {
	return b.Map.New(KindIntegerLiteral, scope, mod, &IntegerLiteral{Value: v, Negative: negative, Type: t})
}

func (b *Builder) FloatLiteral(scope ScopeID, mod ModuleID, v float64, t types.Type) ID {
	return b.Map.New(KindFloatLiteral, scope, mod, &FloatLiteral{Value: v, Type: t})
}

func (b *Builder) StringLiteral(scope ScopeID, mod ModuleID, s string, intern int) ID {
	return b.Map.New(KindStringLiteral, scope, mod, &StringLiteral{Value: s, Intern: intern})
}

func (b *Builder) BoolLiteral(scope ScopeID, mod ModuleID, v bool) ID {
	return b.Map.New(KindBoolLiteral, scope, mod, &BoolLiteral{Value: v})
}

func (b *Builder) CharLiteral(scope ScopeID, mod ModuleID, v rune) ID {
	return b.Map.New(KindCharLiteral, scope, mod, &CharLiteral{Value: v})
}

func (b *Builder) NilLiteral(scope ScopeID, mod ModuleID, t types.Type) ID {
	return b.Map.New(KindNilLiteral, scope, mod, &NilLiteral{Type: t})
}

func (b *Builder) Uninitialized(scope ScopeID, mod ModuleID, t types.Type) ID {
	return b.Map.New(KindUninitialized, scope, mod, &Uninitialized{Type: t})
}

func (b *Builder) TypeLiteral(scope ScopeID, mod ModuleID, t types.Type) ID {
	return b.Map.New(KindTypeLiteral, scope, mod, &TypeLiteral{Type: t})
}

func (b *Builder) IdentifierRef(scope ScopeID, mod ModuleID, symbol common.QualifiedSymbol) ID {
	return b.Map.New(KindIdentifierRef, scope, mod, &IdentifierRef{Symbol: symbol, Type: types.UnknownType{}})
}

func (b *Builder) LabelRef(scope ScopeID, mod ModuleID, name string) ID {
	return b.Map.New(KindLabelRef, scope, mod, &LabelRef{Name: name})
}

func (b *Builder) ModuleRef(scope ScopeID, mod ModuleID, path string) ID {
	return b.Map.New(KindModuleRef, scope, mod, &ModuleRef{Path: path})
}

func (b *Builder) AssemblyLabel(scope ScopeID, mod ModuleID, name string) ID {
	return b.Map.New(KindAssemblyLabel, scope, mod, &AssemblyLabel{Name: name})
}

func (b *Builder) UnaryOp(scope ScopeID, mod ModuleID, op common.OperatorID, operand ID) ID {
	id := b.Map.New(KindUnaryOp, scope, mod, &UnaryOp{Op: op, Operand: operand, Type: types.UnknownType{}})
	b.Map.AddChild(id, operand)
	return id
}

func (b *Builder) BinaryOp(scope ScopeID, mod ModuleID, op common.OperatorID, lhs, rhs ID) ID {
	id := b.Map.New(KindBinaryOp, scope, mod, &BinaryOp{Op: op, LHS: lhs, RHS: rhs, Type: types.UnknownType{}})
	b.Map.AddChild(id, lhs)
	b.Map.AddChild(id, rhs)
	return id
}

func (b *Builder) MemberAccess(scope ScopeID, mod ModuleID, base ID, field string) ID {
	id := b.Map.New(KindMemberAccess, scope, mod, &MemberAccess{Base: base, Field: field, Type: types.UnknownType{}})
	b.Map.AddChild(id, base)
	return id
}

func (b *Builder) Subscript(scope ScopeID, mod ModuleID, base, index ID) ID {
	id := b.Map.New(KindSubscript, scope, mod, &Subscript{Base: base, Index: index, Type: types.UnknownType{}})
	b.Map.AddChild(id, base)
	b.Map.AddChild(id, index)
	return id
}

func (b *Builder) Assignment(scope ScopeID, mod ModuleID, target, value ID) ID {
	id := b.Map.New(KindAssignment, scope, mod, &Assignment{Target: target, Value: value})
	b.Map.AddChild(id, target)
	b.Map.AddChild(id, value)
	return id
}

func (b *Builder) If(scope ScopeID, mod ModuleID, cond, then, els ID) ID {
	id := b.Map.New(KindIf, scope, mod, &If{Cond: cond, Then: then, Else: els})
	b.Map.AddChild(id, cond)
	b.Map.AddChild(id, then)
	if els != 0 {
		b.Map.AddChild(id, els)
	}
	return id
}

func (b *Builder) While(scope ScopeID, mod ModuleID, cond, body ID) ID {
	id := b.Map.New(KindWhile, scope, mod, &While{Cond: cond, Body: body})
	b.Map.AddChild(id, cond)
	b.Map.AddChild(id, body)
	return id
}

func (b *Builder) For(scope ScopeID, mod ModuleID, f For) ID {
	id := b.Map.New(KindFor, scope, mod, &f)
	for _, child := range []ID{f.InductionVar, f.Start, f.Stop, f.Step, f.Body} {
		if child != 0 {
			b.Map.AddChild(id, child)
		}
	}
	return id
}

func (b *Builder) Switch(scope ScopeID, mod ModuleID, scrutinee ID) ID {
	id := b.Map.New(KindSwitch, scope, mod, &Switch{Scrutinee: scrutinee})
	b.Map.AddChild(id, scrutinee)
	return id
}

// AddCase appends a new Case as a child of switchID and records it on
// the Switch payload's Cases list.
func (b *Builder) AddCase(scope ScopeID, mod ModuleID, switchID ID, c Case) ID {
	id := b.Map.New(KindCase, scope, mod, &c)
	if c.Expr != 0 {
		b.Map.AddChild(id, c.Expr)
	}
	b.Map.AddChild(id, c.Body)
	b.Map.AddChild(switchID, id)
	sw := b.Map.Get(switchID).Payload.(*Switch)
	sw.Cases = append(sw.Cases, id)
	return id
}

func (b *Builder) Break(scope ScopeID, mod ModuleID, label string) ID {
	return b.Map.New(KindBreak, scope, mod, &Break{Label: label})
}

func (b *Builder) Continue(scope ScopeID, mod ModuleID, label string) ID {
	return b.Map.New(KindContinue, scope, mod, &Continue{Label: label})
}

func (b *Builder) Return(scope ScopeID, mod ModuleID, value ID) ID {
	id := b.Map.New(KindReturn, scope, mod, &Return{Value: value})
	if value != 0 {
		b.Map.AddChild(id, value)
	}
	return id
}

func (b *Builder) Defer(scope ScopeID, mod ModuleID, expr ID) ID {
	id := b.Map.New(KindDefer, scope, mod, &Defer{Expr: expr})
	b.Map.AddChild(id, expr)
	return id
}

func (b *Builder) With(scope ScopeID, mod ModuleID, binding, body ID) ID {
	id := b.Map.New(KindWith, scope, mod, &With{Binding: binding, Body: body})
	b.Map.AddChild(id, binding)
	b.Map.AddChild(id, body)
	return id
}

func (b *Builder) Fallthrough(scope ScopeID, mod ModuleID) ID {
	return b.Map.New(KindFallthrough, scope, mod, &Fallthrough{})
}

func (b *Builder) Label(scope ScopeID, mod ModuleID, name string) ID {
	return b.Map.New(KindLabel, scope, mod, &Label{Name: name})
}

func (b *Builder) Program(mod ModuleID) ID {
	return b.Map.New(KindProgram, 0, mod, &Program{})
}

func (b *Builder) Module(programID ID, scope ScopeID, mod ModuleID, path string) ID {
	id := b.Map.New(KindModule, scope, mod, &Module{Path: path})
	b.Map.AddChild(programID, id)
	prog := b.Map.Get(programID).Payload.(*Program)
	prog.Modules = append(prog.Modules, id)
	return id
}

func (b *Builder) Namespace(scope ScopeID, mod ModuleID, name string) ID {
	return b.Map.New(KindNamespace, scope, mod, &Namespace{Name: name})
}

func (b *Builder) Block(scope ScopeID, mod ModuleID, blockScope ScopeID) ID {
	return b.Map.New(KindBlock, scope, mod, &Block{Scope: blockScope})
}

// AddStmt appends stmt to blockID's statement list and records the
// ownership edge.
func (b *Builder) AddStmt(blockID, stmt ID) {
	b.Map.AddChild(blockID, stmt)
	blk := b.Map.Get(blockID).Payload.(*Block)
	blk.Stmts = append(blk.Stmts, stmt)
}

func (b *Builder) ExpressionStmt(scope ScopeID, mod ModuleID, expr ID) ID {
	id := b.Map.New(KindExpressionStmt, scope, mod, &ExpressionStmt{Expr: expr})
	b.Map.AddChild(id, expr)
	return id
}

func (b *Builder) Declaration(scope ScopeID, mod ModuleID, symbol common.QualifiedSymbol, t types.Type, typeKnown bool, init ID, isConst bool) ID {
	id := b.Map.New(KindDeclaration, scope, mod, &Declaration{
		Symbol: symbol, Type: t, TypeKnown: typeKnown, Init: init, IsConst: isConst,
	})
	if init != 0 {
		b.Map.AddChild(id, init)
	}
	b.Map.DefineSymbol(symbol, id)
	return id
}

func (b *Builder) ArgumentList(scope ScopeID, mod ModuleID, args []ID) ID {
	id := b.Map.New(KindArgumentList, scope, mod, &ArgumentList{Args: args})
	for _, a := range args {
		b.Map.AddChild(id, a)
	}
	return id
}

func (b *Builder) Field(scope ScopeID, mod ModuleID, name string, t types.Type) ID {
	return b.Map.New(KindField, scope, mod, &Field{Name: name, Type: t})
}

func (b *Builder) Import(scope ScopeID, mod ModuleID, path, alias string) ID {
	return b.Map.New(KindImport, scope, mod, &Import{Path: path, Alias: alias})
}

func (b *Builder) Cast(scope ScopeID, mod ModuleID, expr ID, target types.Type) ID {
	id := b.Map.New(KindCast, scope, mod, &Cast{Expr: expr, Target: target})
	b.Map.AddChild(id, expr)
	return id
}

func (b *Builder) Transmute(scope ScopeID, mod ModuleID, expr ID, target types.Type) ID {
	id := b.Map.New(KindTransmute, scope, mod, &Transmute{Expr: expr, Target: target})
	b.Map.AddChild(id, expr)
	return id
}

func (b *Builder) Intrinsic(scope ScopeID, mod ModuleID, kind IntrinsicKind, args []ID, typeArg, resultType types.Type) ID {
	id := b.Map.New(KindIntrinsic, scope, mod, &IntrinsicCall{Kind: kind, Args: args, TypeArg: typeArg, Type: resultType})
	for _, a := range args {
		b.Map.AddChild(id, a)
	}
	return id
}

func (b *Builder) ProcedureType(scope ScopeID, mod ModuleID, t *types.ProcType) ID {
	return b.Map.New(KindProcedureType, scope, mod, &ProcedureType{Type: t})
}

func (b *Builder) ProcedureInstance(scope ScopeID, mod ModuleID, p ProcedureInstance) ID {
	id := b.Map.New(KindProcedureInstance, scope, mod, &p)
	for _, param := range p.Params {
		b.Map.AddChild(id, param)
	}
	if p.Body != 0 {
		b.Map.AddChild(id, p.Body)
	}
	b.Map.DefineSymbol(p.Symbol, id)
	return id
}

func (b *Builder) ProcedureCall(scope ScopeID, mod ModuleID, callee, args ID) ID {
	id := b.Map.New(KindProcedureCall, scope, mod, &ProcedureCall{Callee: callee, Args: args, Type: types.UnknownType{}})
	b.Map.AddChild(id, callee)
	b.Map.AddChild(id, args)
	return id
}

func (b *Builder) SymbolElement(scope ScopeID, mod ModuleID, symbol common.QualifiedSymbol, target ID) ID {
	id := b.Map.New(KindSymbolElement, scope, mod, &SymbolElement{Symbol: symbol, Target: target})
	b.Map.DefineSymbol(symbol, id)
	return id
}

func (b *Builder) TypeReference(scope ScopeID, mod ModuleID, symbol common.QualifiedSymbol, t types.Type) ID {
	return b.Map.New(KindTypeReference, scope, mod, &TypeReference{Symbol: symbol, Type: t})
}

// SyntheticBinaryOp builds a non-owning BinaryOp for a throwaway helper
// computation. It is identical in shape to BinaryOp but marks NonOwning
// so callers know to Remove it once used, per spec.md §7 "Synthetic
// helper elements ... mark as non-owning and remove from the element map
// on scope exit." The emitter does not call it; its `for` lowering emits
// the induction step without a helper element.
func (b *Builder) SyntheticBinaryOp(scope ScopeID, mod ModuleID, op common.OperatorID, lhs, rhs ID) ID {
	id := b.BinaryOp(scope, mod, op, lhs, rhs)
	b.Map.Get(id).NonOwning = true
	return id
}
