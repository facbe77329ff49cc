package types

// CastMode classifies how an explicit numeric cast must be lowered by the
// emitter (spec.md §4.3 "Explicit casts"). The fold/emit phases switch on
// this instead of re-deriving it from the two types every time.
type CastMode int

const (
	// CastInvalid means src cannot be cast to dest at all.
	CastInvalid CastMode = iota
	// CastIdentity means src and dest are the same type; no instruction
	// needed.
	CastIdentity
	// CastTruncate narrows an integer to fewer bits, dropping high bits.
	CastTruncate
	// CastSignExtend widens a signed integer, replicating the sign bit.
	CastSignExtend
	// CastZeroExtend widens an unsigned integer (or bool/rune) with zero
	// bits.
	CastZeroExtend
	// CastIntToFloat converts an integer bit pattern to its nearest float
	// value.
	CastIntToFloat
	// CastFloatToInt truncates a float toward zero into an integer.
	CastFloatToInt
	// CastFloatWiden converts f32 to f64.
	CastFloatWiden
	// CastFloatNarrow converts f64 to f32, losing precision.
	CastFloatNarrow
	// CastPointerBitcast reinterprets one pointer type as another without
	// touching the bits (spec.md §4.3 "pointer-to-pointer casts always
	// succeed").
	CastPointerBitcast
)

// ClassifyCast determines the CastMode for an explicit cast of src to
// dest, following the table in spec.md §4.3. It does not consult
// `Accepts`: casts are a strictly wider relation than implicit
// acceptance.
func ClassifyCast(src, dest Type) CastMode {
	if Equals(src, dest) {
		return CastIdentity
	}

	switch d := dest.(type) {
	case IntegerType:
		return classifyCastToInt(src, d)
	case FloatType:
		return classifyCastToFloat(src, d)
	case BoolType:
		if _, ok := src.(IntegerType); ok {
			return CastTruncate
		}
	case RuneType:
		if si, ok := src.(IntegerType); ok && si.Bits <= 32 {
			return CastZeroExtend
		}
		if si, ok := src.(IntegerType); ok && si.Bits > 32 {
			return CastTruncate
		}
	case *PointerType:
		if _, ok := src.(*PointerType); ok {
			return CastPointerBitcast
		}
	}

	return CastInvalid
}

func classifyCastToInt(src Type, dest IntegerType) CastMode {
	switch s := src.(type) {
	case IntegerType:
		if s.Bits == dest.Bits {
			// Same width, sign flips (e.g. s32 -> u32): bit pattern is
			// unchanged.
			return CastIdentity
		}
		if s.Bits > dest.Bits {
			return CastTruncate
		}
		if s.Signed {
			return CastSignExtend
		}
		return CastZeroExtend
	case FloatType:
		return CastFloatToInt
	case BoolType:
		return CastZeroExtend
	case RuneType:
		if dest.Bits >= 32 {
			return CastZeroExtend
		}
		return CastTruncate
	}
	return CastInvalid
}

func classifyCastToFloat(src Type, dest FloatType) CastMode {
	switch s := src.(type) {
	case IntegerType:
		return CastIntToFloat
	case FloatType:
		if s.Bits == dest.Bits {
			return CastIdentity
		}
		if dest.Bits > s.Bits {
			return CastFloatWiden
		}
		return CastFloatNarrow
	}
	return CastInvalid
}

// CanCast reports whether an explicit cast from src to dest is legal at
// all (spec.md §4.3).
func CanCast(src, dest Type) bool {
	return ClassifyCast(src, dest) != CastInvalid
}

// CanTransmute reports whether src and dest may be reinterpreted bit for
// bit via `transmute` (spec.md §4.3 "transmute requires equal size,
// unlike cast"): any two types of identical size qualify.
func CanTransmute(src, dest Type) bool {
	return src.Size() == dest.Size()
}
