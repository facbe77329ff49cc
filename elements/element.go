// Package elements implements the element graph, the semantic
// intermediate representation built from the AST (spec.md §3.2, §4.1).
// There is no direct teacher analog: the teacher attaches types straight
// onto its AST nodes. This package is grounded on the arena-and-payload
// shape of itsfuad-Ferret's `internal/hir` package, generalized from its
// interface-per-node-kind dispatch into a single tagged-variant struct
// with an exhaustive switch on Kind, per spec.md §7 "Polymorphic element
// kind with ~60 variants: use a tagged variant with a common header ...
// Dispatch is via exhaustive match on kind; never via virtual-method
// chains."
package elements

import "basecodec/report"

// ID is a stable, monotonic element identifier, unique and immutable for
// the compilation's lifetime (spec.md §3.2 "Invariants").
type ID int

// ScopeID identifies a scope owned by package scope; elements hold only
// the id, never a direct pointer, per spec.md §3.5 "Ownership model:
// ... non-owning references keyed by identifier."
type ScopeID int

// ModuleID identifies the owning module of an element.
type ModuleID int

// Kind tags which variant an Element's Payload holds (spec.md §3.2).
type Kind int

const (
	KindInvalid Kind = iota

	// Literals
	KindIntegerLiteral
	KindFloatLiteral
	KindStringLiteral
	KindBoolLiteral
	KindCharLiteral
	KindNilLiteral
	KindUninitialized
	KindTypeLiteral

	// References
	KindIdentifierRef
	KindLabelRef
	KindModuleRef
	KindAssemblyLabel

	// Operators
	KindUnaryOp
	KindBinaryOp
	KindMemberAccess
	KindSubscript
	KindAssignment

	// Control
	KindIf
	KindWhile
	KindFor
	KindSwitch
	KindCase
	KindBreak
	KindContinue
	KindReturn
	KindDefer
	KindWith
	KindFallthrough
	KindLabel

	// Structural
	KindProgram
	KindModule
	KindNamespace
	KindBlock
	KindStatement
	KindExpressionStmt
	KindDeclaration
	KindInitializer
	KindArgumentList
	KindArgumentPair
	KindField
	KindAttribute
	KindDirective
	KindRawBlock
	KindImport
	KindCast
	KindTransmute
	KindIntrinsic

	// Procedures
	KindProcedureType
	KindProcedureInstance
	KindProcedureCall
	KindSymbolElement
	KindTypeReference
)

var kindNames = [...]string{
	"invalid",
	"integer_literal", "float_literal", "string_literal", "bool_literal",
	"char_literal", "nil_literal", "uninitialized", "type_literal",
	"identifier_ref", "label_ref", "module_ref", "assembly_label",
	"unary_op", "binary_op", "member_access", "subscript", "assignment",
	"if", "while", "for", "switch", "case", "break", "continue", "return",
	"defer", "with", "fallthrough", "label",
	"program", "module", "namespace", "block", "statement",
	"expression_stmt", "declaration", "initializer", "argument_list",
	"argument_pair", "field", "attribute", "directive", "raw_block",
	"import", "cast", "transmute", "intrinsic",
	"procedure_type", "procedure_instance", "procedure_call",
	"symbol_element", "type_reference",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown_kind"
	}
	return kindNames[k]
}

// Element is the tagged variant described by spec.md §3.2: a common
// header plus a kind-specific Payload. NonOwning marks synthetic helper
// elements built by Builder.SyntheticBinaryOp, which their creator
// removes from the map with Map.Remove and which must never be
// double-counted as live (spec.md §7 "Synthetic helper elements"). The
// emitter creates none: its `for` lowering emits the induction step
// directly from the For payload.
type Element struct {
	ID          ID
	Kind        Kind
	Module      ModuleID
	ParentScope ScopeID
	Attributes  []string
	Comments    []string
	Location    report.TextSpan
	NonOwning   bool

	// Children lists the ids of elements this element owns, forming the
	// forest anchored at the program element (spec.md §3.2).
	Children []ID

	Payload any
}
