package ast

import "basecodec/common"

// IntegerLiteralPayload carries a parsed integer literal's bit pattern
// and syntactic sign.
type IntegerLiteralPayload struct {
	Value    uint64
	Negative bool
}

// FloatLiteralPayload carries a parsed float literal.
type FloatLiteralPayload struct{ Value float64 }

// StringLiteralPayload carries a parsed string literal's text.
type StringLiteralPayload struct{ Value string }

// BoolLiteralPayload carries a parsed boolean literal.
type BoolLiteralPayload struct{ Value bool }

// CharLiteralPayload carries a parsed rune literal.
type CharLiteralPayload struct{ Value rune }

// IdentifierPayload names an identifier reference or binding site.
type IdentifierPayload struct{ Name string }

// TypeExprPayload names a type reference used in a type position, e.g.
// `^u32`, `[]string`, `MyStruct`. Kind distinguishes the shape so the
// evaluator doesn't need to re-parse the text.
type TypeExprPayload struct {
	// Kind is one of "named", "pointer", "array", "tuple", "proc".
	Kind string
	Name string // for "named"
	// Elem is the pointee/element type node for "pointer"/"array".
	Elem *Node
}

// BinaryOpPayload names the operator of a KindBinaryOp node.
type BinaryOpPayload struct{ Op common.OperatorID }

// UnaryOpPayload names the operator of a KindUnaryOp node.
type UnaryOpPayload struct{ Op common.OperatorID }

// DeclarationPayload carries a `name[:type][=init]` declaration's
// static shape; Type is nil when the type annotation was omitted
// (spec.md §4.4 "if type is absent, the identifier enters the unknown
// types queue").
type DeclarationPayload struct {
	Name    string
	Type    *Node // KindTypeExpr, or nil
	IsConst bool
}

// ForPayload carries the static shape of `for x in range(start, stop,
// step, dir, kind)` (spec.md §4.4).
type ForPayload struct {
	InductionVar string
	Descending   bool
	Inclusive    bool
}

// CasePayload marks whether a switch arm is the default case and
// whether its body ends in `fallthrough` (spec.md §4.4 "Switch/case").
type CasePayload struct {
	IsDefault   bool
	Fallthrough bool
}

// BreakContinuePayload optionally names an enclosing label to break or
// continue.
type BreakContinuePayload struct{ Label string }

// ImportPayload names an imported module path and optional alias.
type ImportPayload struct {
	Path  string
	Alias string
}

// IntrinsicPayload names a recognised compiler intrinsic by its source
// spelling; the evaluator maps this to elements.IntrinsicKind (spec.md
// §4.4 "Intrinsics are recognised by name").
type IntrinsicPayload struct{ Name string }

// DirectiveAttributePayload carries a directive or attribute's name and
// raw argument list.
type DirectiveAttributePayload struct {
	Name string
	Args []string
}

// ProcDefPayload carries a procedure definition's static shape: its
// name, parameter nodes (KindParam), return type (nil for u0), and
// whether it is declared foreign/variadic (spec.md §4.5.2 "foreign/
// variadic FFI call signature registry").
type ProcDefPayload struct {
	Name         string
	ReturnType   *Node
	Foreign      bool
	Variadic     bool
	ExternalName string
}

// ParamPayload carries one parameter's name and type node.
type ParamPayload struct {
	Name string
	Type *Node
}

// FieldPayload carries one struct/union field's name and type node.
type FieldPayload struct {
	Name string
	Type *Node
}

// RawBlockPayload carries an opaque, unanalyzed block of text.
type RawBlockPayload struct{ Text string }
