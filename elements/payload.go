package elements

import (
	"basecodec/common"
	"basecodec/types"
)

// IntegerLiteral holds an integer literal's raw bit pattern and whether
// the source text carried a leading minus sign (spec.md §4.3 "integer
// literals pick the narrowest unsigned that fits, unless syntactically
// negative").
type IntegerLiteral struct {
	Value    uint64
	Negative bool
	Type     types.Type
}

// FloatLiteral holds a floating-point literal.
type FloatLiteral struct {
	Value float64
	Type  types.Type
}

// StringLiteral holds a string literal; Intern is the id this literal
// was assigned in the intern table.
type StringLiteral struct {
	Value  string
	Intern int
}

// BoolLiteral holds a boolean literal.
type BoolLiteral struct {
	Value bool
}

// CharLiteral holds a rune literal.
type CharLiteral struct {
	Value rune
}

// NilLiteral is the `nil` pointer literal; Type is filled by inference
// from context (spec.md §4.3).
type NilLiteral struct {
	Type types.Type
}

// Uninitialized is the `---` uninitialized-value marker.
type Uninitialized struct {
	Type types.Type
}

// TypeLiteral wraps a type used as a first-class value (spec.md §3.2
// "type-literal").
type TypeLiteral struct {
	Type types.Type
}

// IdentifierRef is an unresolved-or-resolved reference to a named
// declaration. Decl is 0 until the scope manager resolves it (spec.md
// §4.2).
type IdentifierRef struct {
	Symbol common.QualifiedSymbol
	Decl   ID
	Type   types.Type
}

// LabelRef references a label element by name within the current
// procedure (spec.md §3.2 "label-reference").
type LabelRef struct {
	Name  string
	Label ID
}

// ModuleRef references another module by qualified path.
type ModuleRef struct {
	Path string
}

// AssemblyLabel names a raw emitted label, used by inline-assembly style
// constructs that reference VM labels directly.
type AssemblyLabel struct {
	Name string
}

// UnaryOp is a prefix operator applied to a single operand (spec.md
// §3.2 "Operators").
type UnaryOp struct {
	Op      common.OperatorID
	Operand ID
	Type    types.Type
}

// BinaryOp is an arithmetic/relational/logical/bitwise/rotate/shift
// operator over two operands (spec.md §4.3 "binary arithmetic takes the
// lhs type; relational/logical returns bool").
type BinaryOp struct {
	Op    common.OperatorID
	LHS   ID
	RHS   ID
	Type  types.Type
}

// MemberAccess is `base.field`; Field is resolved once the base's
// composite type is known (spec.md §4.3 "member-access returns the
// field type of the composite base").
type MemberAccess struct {
	Base  ID
	Field string
	Type  types.Type
}

// Subscript is `base[index]`, used for array element access.
type Subscript struct {
	Base  ID
	Index ID
	Type  types.Type
}

// Assignment is `target = value` or a compound-assignment desugared to
// it by the evaluator.
type Assignment struct {
	Target ID
	Value  ID
}

// If is an `if/elif/else` chain folded into nested If elements: Else
// holds either a Block id or another If id, per spec.md §4.4 "if/elif/
// else chains fold into nested if elements with each else-branch
// containing the next."
type If struct {
	Cond ID
	Then ID
	Else ID // 0 if absent
}

// While is a conditional loop.
type While struct {
	Cond ID
	Body ID
}

// For is the structured range-for described by spec.md §4.4 "for x in
// range(start, stop, step, dir, kind) lowers to a structured for element
// whose predicate/step are synthesised by the emitter."
type For struct {
	InductionVar ID
	Start        ID
	Stop         ID
	Step         ID
	Descending   bool
	Inclusive    bool
	Body         ID
}

// Switch keeps the scrutinee; Cases lists child Case element ids in
// source order (spec.md §4.4 "Switch/case").
type Switch struct {
	Scrutinee ID
	Cases     []ID
}

// Case is one switch arm. IsDefault cases have no predicate and always
// fall through to their body (spec.md §4.4).
type Case struct {
	Expr        ID // 0 if IsDefault
	IsDefault   bool
	Body        ID
	Fallthrough bool
}

// Break and Continue optionally name an enclosing label.
type Break struct{ Label string }
type Continue struct{ Label string }

// Return carries an optional result expression (u0 procedures return
// none).
type Return struct{ Value ID }

// Defer captures a deferred expression (spec.md §3.4 "Lifecycle"). The
// emitter keeps one list of defers per procedure and fires it in reverse
// order at each return and at the procedure's implicit end; leaving an
// inner block does not fire its defers.
type Defer struct{ Expr ID }

// With binds a resource for the duration of a block, per Basecode's
// `with` construct.
type With struct {
	Binding ID
	Body    ID
}

// Fallthrough and Label are control markers.
type Fallthrough struct{}
type Label struct{ Name string }

// Program is the single root element anchoring the owned-children
// forest (spec.md §3.2 "Invariants").
type Program struct{ Modules []ID }

// Module groups one source file's top-level declarations.
type Module struct {
	Path  string
	Items []ID
}

// Namespace groups declarations under a nested name.
type Namespace struct {
	Name  string
	Items []ID
}

// Block is an ordered sequence of statements sharing one scope.
type Block struct {
	Scope ScopeID
	Stmts []ID
}

// Statement wraps a bare statement-level construct with no result.
type Statement struct{ Inner ID }

// ExpressionStmt is an expression evaluated for its side effects only.
type ExpressionStmt struct{ Expr ID }

// Declaration is `name[:type][=init]` (spec.md §4.4). If Type was absent
// in source, TypeKnown is false and the identifier enters the unknown-
// types queue (spec.md §4.4).
type Declaration struct {
	Symbol    common.QualifiedSymbol
	Type      types.Type
	TypeKnown bool
	Init      ID // 0 if absent
	IsConst   bool
}

// Initializer wraps a declaration's initializer expression, distinct
// from Declaration.Init so the evaluator can attach comments/attributes
// to it independently.
type Initializer struct{ Expr ID }

// ArgumentList is an ordered call-argument or parameter-list element.
type ArgumentList struct{ Args []ID }

// ArgumentPair is a named argument `name: value` inside an ArgumentList.
type ArgumentPair struct {
	Name  string
	Value ID
}

// Field is one struct/union member or procedure parameter declaration
// prior to being folded into a types.FieldMap.
type Field struct {
	Name string
	Type types.Type
}

// Attribute and Directive are metadata attached to the next
// non-comment element by the evaluator context (spec.md §4.4).
type Attribute struct{ Name string; Args []string }
type Directive struct{ Name string; Args []string }

// RawBlock carries an opaque, unanalyzed block of text (e.g. inline
// assembly) straight through to the emitter.
type RawBlock struct{ Text string }

// Import references another module to be linked into scope.
type Import struct {
	Path  string
	Alias string
}

// Cast and Transmute both return the target type (spec.md §4.3); Cast
// is checked by types.ClassifyCast, Transmute by types.CanTransmute.
type Cast struct {
	Expr   ID
	Target types.Type
}
type Transmute struct {
	Expr   ID
	Target types.Type
}

// IntrinsicKind enumerates the recognised compiler intrinsics (spec.md
// §3.2 "intrinsic (address_of, alloc, free, fill, copy, size_of,
// type_of, range)").
type IntrinsicKind int

const (
	IntrinsicAddressOf IntrinsicKind = iota
	IntrinsicAlloc
	IntrinsicFree
	IntrinsicFill
	IntrinsicCopy
	IntrinsicSizeOf
	IntrinsicTypeOf
	IntrinsicRange
)

// IntrinsicCall is a recognised-by-name compiler builtin call; arity and
// argument kinds are validated at evaluation time (spec.md §4.4
// "Intrinsics are recognised by name ... arity and argument kinds are
// validated at this stage").
type IntrinsicCall struct {
	Kind IntrinsicKind
	Args []ID
	// TypeArg holds the operand type for size_of/type_of, which take a
	// type rather than a value expression.
	TypeArg types.Type
	Type    types.Type
}

// ProcedureType is a first-class procedure-type value.
type ProcedureType struct {
	Type *types.ProcType
}

// ProcedureInstance is one concrete procedure definition: its signature,
// parameter declarations, and body block (spec.md §4.5.2 "Procedure
// call").
type ProcedureInstance struct {
	Symbol   common.QualifiedSymbol
	Type     *types.ProcType
	Params   []ID
	Body     ID
	Foreign  bool
	ExternalName string
	Variadic bool
}

// ProcedureCall applies a callee to an argument list.
type ProcedureCall struct {
	Callee ID
	Args   ID // ArgumentList id
	Type   types.Type
}

// SymbolElement wraps a resolved declaration reachable by qualified
// symbol, used by the scope manager's by-kind lookups (spec.md §4.1).
type SymbolElement struct {
	Symbol common.QualifiedSymbol
	Target ID
}

// TypeReference is a reference to a named type used in a type position
// (as opposed to TypeLiteral, which is a type used as a value).
type TypeReference struct {
	Symbol common.QualifiedSymbol
	Type   types.Type
}
