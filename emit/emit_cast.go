package emit

import (
	"basecodec/elements"
	"basecodec/isa"
	"basecodec/report"
	"basecodec/types"
)

// emitCast lowers an explicit cast to the instruction its CastMode
// requires (spec.md §4.3, §4.5.2). The source type is read off the
// operand expression, not re-inferred.
func (e *Emitter) emitCast(p *elements.Cast) isa.Operand {
	srcType := e.typeOf(p.Expr)
	src := e.emitExpr(p.Expr)

	mode := types.ClassifyCast(srcType, p.Target)
	destSize := isa.SizeForBytes(p.Target.Size())

	if mode == types.CastInvalid {
		report.ReportICE("emit: cast from %s to %s has no lowering (should have been rejected earlier)", srcType.Repr(), p.Target.Repr())
	}
	if mode == types.CastIdentity {
		return src
	}

	plan := e.curPlanner()
	reg := plan.ActivateTemp(isa.RegValue)
	dst := isa.Reg(destSize, reg)

	switch mode {
	case types.CastTruncate:
		e.emit(isa.InstrSized(isa.OpMove, destSize, dst, src))
	case types.CastZeroExtend:
		e.emit(isa.InstrSized(isa.OpMovez, destSize, dst, src))
	case types.CastSignExtend:
		e.emit(isa.InstrSized(isa.OpMoves, destSize, dst, src))
	case types.CastIntToFloat, types.CastFloatToInt, types.CastFloatWiden, types.CastFloatNarrow, types.CastPointerBitcast:
		e.emit(isa.InstrSized(isa.OpConvert, destSize, dst, src))
	default:
		report.ReportICE("emit: unhandled cast mode %d", mode)
	}

	return dst
}
