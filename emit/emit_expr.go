package emit

import (
	"fmt"
	"math"

	"basecodec/common"
	"basecodec/elements"
	"basecodec/intern"
	"basecodec/isa"
	"basecodec/report"
	"basecodec/types"
	"basecodec/varplan"
)

// arithmeticOp maps an intrinsic operator to the single VM opcode that
// implements every signed/unsigned/float variant of it: the ISA's
// arithmetic ops are single-variant (spec.md §4.5.2 "choosing signed vs
// unsigned" only matters for comparisons, see comparisonSet below).
var arithmeticOp = map[common.OperatorID]isa.OpCode{
	common.OpIDIAdd: isa.OpAdd, common.OpIDFAdd: isa.OpAdd,
	common.OpIDISub: isa.OpSub, common.OpIDFSub: isa.OpSub,
	common.OpIDIMul: isa.OpMul, common.OpIDFMul: isa.OpMul,
	common.OpIDSDiv: isa.OpDiv, common.OpIDUDiv: isa.OpDiv, common.OpIDFDiv: isa.OpDiv,
	common.OpIDSMod: isa.OpMod, common.OpIDUMod: isa.OpMod, common.OpIDFMod: isa.OpMod,
	common.OpIDBWAnd: isa.OpAnd,
	common.OpIDBWOr:  isa.OpOr,
	common.OpIDBWXor: isa.OpXor,
	common.OpIDBWShl: isa.OpShl,
	common.OpIDBWShr: isa.OpShr,
	common.OpIDBWRol: isa.OpRol,
	common.OpIDBWRor: isa.OpRor,
}

// comparisonSet maps a relational operator to the VM's conditional-set
// opcode emitted right after OpCmp. Unsigned comparisons pick the
// above/below family, signed and floating-point comparisons pick the
// greater/less family (spec.md §4.5.2).
var comparisonSet = map[common.OperatorID]isa.OpCode{
	common.OpIDEq:  isa.OpSetZ,
	common.OpIDNeq: isa.OpSetNZ,

	common.OpIDSLt: isa.OpSetL, common.OpIDFLt: isa.OpSetL,
	common.OpIDULt: isa.OpSetB,
	common.OpIDSGt: isa.OpSetG, common.OpIDFGt: isa.OpSetG,
	common.OpIDUGt: isa.OpSetA,

	common.OpIDSLtEq: isa.OpSetLE, common.OpIDFLtEq: isa.OpSetLE,
	common.OpIDULtEq: isa.OpSetBE,
	common.OpIDSGtEq: isa.OpSetGE, common.OpIDFGtEq: isa.OpSetGE,
	common.OpIDUGtEq: isa.OpSetAE,
}

var unaryOp = map[common.OperatorID]isa.OpCode{
	common.OpIDINeg:    isa.OpNeg,
	common.OpIDFNeg:    isa.OpNeg,
	common.OpIDBWCompl: isa.OpNot,
	common.OpIDLNot:    isa.OpNot,
}

// curPlanner returns the register allocator in scope: the current
// procedure's frame planner if one is open, otherwise the module-level
// planner (used while emitting ro_data/data initializers and the
// synthesized module-init body).
func (e *Emitter) curPlanner() *varplan.Planner {
	if e.plan != nil {
		return e.plan
	}
	return e.modPlan
}

// plannerFor returns the planner that owns declID's Variable, trying the
// current procedure's frame before falling back to module scope.
func (e *Emitter) plannerFor(declID elements.ID) (*varplan.Planner, *varplan.Variable) {
	if e.plan != nil {
		if v := e.plan.Lookup(declID); v != nil {
			return e.plan, v
		}
	}
	if v := e.modPlan.Lookup(declID); v != nil {
		return e.modPlan, v
	}
	return nil, nil
}

func localName(v *varplan.Variable) string {
	if v.Symbol != "" {
		return v.Symbol
	}
	return fmt.Sprintf("_local_%d", v.Decl)
}

// locationOf returns the operand referencing v's storage: a frame-local
// reference for text-section variables, a label for module-level ones.
func (e *Emitter) locationOf(v *varplan.Variable) isa.Operand {
	size := isa.SizeForBytes(v.Type.Size())
	if v.Section == isa.SectionText {
		return isa.Local(size, localName(v))
	}
	return isa.Label(v.Label)
}

// loadVariable emits a load of declID's current value into a fresh value
// register (spec.md §3.5).
func (e *Emitter) loadVariable(declID elements.ID, t types.Type) isa.Operand {
	plan, v := e.plannerFor(declID)
	if v == nil {
		report.ReportICE("emit: reference to an unplanned variable (decl %d)", declID)
	}
	size := isa.SizeForBytes(t.Size())
	reg := plan.Activate(v, isa.RegValue)
	e.emit(isa.InstrSized(isa.OpLoad, size, isa.Reg(size, reg), e.locationOf(v)))
	plan.MarkRead(v)
	return isa.Reg(size, reg)
}

// storeVariable emits a store of value into declID's storage.
func (e *Emitter) storeVariable(declID elements.ID, t types.Type, value isa.Operand) {
	plan, v := e.plannerFor(declID)
	if v == nil {
		report.ReportICE("emit: assignment to an unplanned variable (decl %d)", declID)
	}
	size := isa.SizeForBytes(t.Size())
	e.emit(isa.InstrSized(isa.OpStore, size, e.locationOf(v), value))
	plan.MarkWritten(v)
}

// emitExpr lowers an expression element to the operand holding its value
// (an immediate or a freshly loaded register), per spec.md §4.5.2.
func (e *Emitter) emitExpr(id elements.ID) isa.Operand {
	el := e.Elems.Get(id)

	switch p := el.Payload.(type) {
	case *elements.IntegerLiteral:
		v := p.Value
		if p.Negative {
			v = uint64(-int64(p.Value))
		}
		return isa.Imm(isa.SizeForBytes(sizeOf(p.Type)), v)

	case *elements.FloatLiteral:
		return isa.Imm(isa.SizeForBytes(sizeOf(p.Type)), floatBits(p.Value, p.Type))

	case *elements.BoolLiteral:
		v := uint64(0)
		if p.Value {
			v = 1
		}
		return isa.Imm(isa.SizeByte, v)

	case *elements.CharLiteral:
		return isa.Imm(isa.SizeDword, uint64(p.Value))

	case *elements.NilLiteral:
		return isa.Imm(isa.SizeQword, 0)

	case *elements.StringLiteral:
		return isa.Label(intern.Label(intern.ID(p.Intern)))

	case *elements.TypeLiteral:
		// Type-literals are only ever consumed by size_of/type_of, which
		// resolve to an immediate at evaluation time; a bare type-literal
		// reaching emission has no runtime representation.
		return isa.Imm(isa.SizeQword, 0)

	case *elements.IdentifierRef:
		return e.loadVariable(p.Decl, p.Type)

	case *elements.UnaryOp:
		return e.emitUnary(p)

	case *elements.BinaryOp:
		return e.emitBinary(p)

	case *elements.MemberAccess:
		return e.emitMemberAccess(p)

	case *elements.Subscript:
		return e.emitSubscript(p)

	case *elements.Cast:
		return e.emitCast(p)

	case *elements.Transmute:
		// Same bit pattern under a different static type; no instruction
		// is needed beyond the operand's size already matching Target
		// (spec.md §4.3 "transmute never changes bit width").
		return e.emitExpr(p.Expr)

	case *elements.IntrinsicCall:
		return e.emitIntrinsicExpr(p)

	case *elements.ProcedureCall:
		return e.emitCall(p)
	}

	report.ReportICE("emit: unhandled expression payload %T", el.Payload)
	return isa.Operand{}
}

func (e *Emitter) emitUnary(p *elements.UnaryOp) isa.Operand {
	operand := e.emitExpr(p.Operand)
	op, ok := unaryOp[p.Op]
	if !ok {
		report.ReportICE("emit: unary operator %d has no opcode mapping", p.Op)
	}

	size := isa.SizeForBytes(sizeOf(p.Type))
	plan := e.curPlanner()
	reg := plan.ActivateTemp(isa.RegValue)
	e.emit(isa.InstrSized(op, size, isa.Reg(size, reg), operand))
	return isa.Reg(size, reg)
}

func (e *Emitter) emitBinary(p *elements.BinaryOp) isa.Operand {
	if p.Op == common.OpIDLAnd || p.Op == common.OpIDLOr {
		return e.emitShortCircuit(p)
	}

	lhs := e.emitExpr(p.LHS)
	rhs := e.emitExpr(p.RHS)
	plan := e.curPlanner()

	if setOp, ok := comparisonSet[p.Op]; ok {
		cmpSize := isa.SizeForBytes(sizeOf(e.typeOf(p.LHS)))
		e.emit(isa.InstrSized(isa.OpCmp, cmpSize, lhs, rhs))
		reg := plan.ActivateTemp(isa.RegValue)
		e.emit(isa.InstrSized(setOp, isa.SizeByte, isa.Reg(isa.SizeByte, reg)))
		return isa.Reg(isa.SizeByte, reg)
	}

	op, ok := arithmeticOp[p.Op]
	if !ok {
		report.ReportICE("emit: binary operator %d has no opcode mapping", p.Op)
	}
	size := isa.SizeForBytes(sizeOf(p.Type))
	reg := plan.ActivateTemp(isa.RegValue)
	e.emit(isa.InstrSized(op, size, isa.Reg(size, reg), lhs, rhs))
	return isa.Reg(size, reg)
}

// emitShortCircuit lowers `&&`/`||` to a branch around the right operand,
// since the VM has no lazily-evaluated boolean opcode (spec.md §4.5.2
// "Logical short-circuit").
func (e *Emitter) emitShortCircuit(p *elements.BinaryOp) isa.Operand {
	plan := e.curPlanner()
	reg := plan.ActivateTemp(isa.RegValue)

	lhs := e.emitExpr(p.LHS)
	e.emit(isa.Instr(isa.OpMove, isa.Reg(isa.SizeByte, reg), lhs))

	skip := e.newLabel("shortcircuit")
	branch := isa.OpBZ
	if p.Op == common.OpIDLOr {
		branch = isa.OpBNZ
	}
	e.emit(isa.Instr(branch, isa.Reg(isa.SizeByte, reg), isa.Label(skip)))

	rhs := e.emitExpr(p.RHS)
	e.emit(isa.Instr(isa.OpMove, isa.Reg(isa.SizeByte, reg), rhs))
	e.emit(isa.Instr(isa.OpJumpDirect, isa.Label(skip)))

	e.openBlock(skip, isa.SectionText)
	return isa.Reg(isa.SizeByte, reg)
}

func sizeOf(t types.Type) int {
	if t == nil {
		return 8
	}
	if n := t.Size(); n > 0 {
		return n
	}
	return 1
}

// floatBits renders a Go float64 literal value as the raw bit pattern of
// its static width (spec.md §4.3 "f32/f64").
func floatBits(v float64, t types.Type) uint64 {
	if ft, ok := t.(types.FloatType); ok && ft.Bits == 32 {
		return uint64(math.Float32bits(float32(v)))
	}
	return math.Float64bits(v)
}

// typeOf returns the static type of an already-evaluated expression
// element, reading it straight off the payload infer/fold already
// settled rather than re-deriving it.
func (e *Emitter) typeOf(id elements.ID) types.Type {
	switch p := e.Elems.Get(id).Payload.(type) {
	case *elements.IntegerLiteral:
		return p.Type
	case *elements.FloatLiteral:
		return p.Type
	case *elements.BoolLiteral:
		return types.BoolType{}
	case *elements.CharLiteral:
		return types.RuneType{}
	case *elements.NilLiteral:
		return p.Type
	case *elements.StringLiteral:
		if t, ok := e.Registry.Lookup(common.NewSymbol("string")); ok {
			return t
		}
		return types.UnknownType{}
	case *elements.IdentifierRef:
		return p.Type
	case *elements.UnaryOp:
		return p.Type
	case *elements.BinaryOp:
		return p.Type
	case *elements.MemberAccess:
		return p.Type
	case *elements.Subscript:
		return p.Type
	case *elements.Cast:
		return p.Target
	case *elements.Transmute:
		return p.Target
	case *elements.IntrinsicCall:
		return p.Type
	case *elements.ProcedureCall:
		return p.Type
	case *elements.TypeLiteral:
		return types.TypeMetaType{}
	}
	return types.UnknownType{}
}
