package common

// OperatorID enumerates the intrinsic binary/unary operators (spec.md
// §3.2 "Operators"), adapted unchanged in shape from the teacher's
// `common/operator.go` OP_ID_* enumeration. It is the dispatch key
// `infer` uses to pick result types and `emit` uses to pick the signed,
// unsigned, or floating VM opcode variant (spec.md §4.5.2).
type OperatorID int

const (
	OpIDIAdd OperatorID = iota
	OpIDISub
	OpIDIMul
	OpIDSDiv
	OpIDUDiv
	OpIDSMod
	OpIDUMod
	OpIDFAdd
	OpIDFSub
	OpIDFMul
	OpIDFDiv
	OpIDFMod

	OpIDINeg
	OpIDFNeg

	OpIDBWAnd
	OpIDBWOr
	OpIDBWXor
	OpIDBWCompl
	OpIDBWShl
	OpIDBWShr
	OpIDBWRol
	OpIDBWRor

	OpIDEq
	OpIDNeq
	OpIDSLt
	OpIDULt
	OpIDFLt
	OpIDSGt
	OpIDUGt
	OpIDFGt
	OpIDSLtEq
	OpIDULtEq
	OpIDFLtEq
	OpIDSGtEq
	OpIDUGtEq
	OpIDFGtEq

	OpIDLAnd
	OpIDLOr
	OpIDLNot

	OpIDUnknown // not yet determined (operand still untyped)
)
