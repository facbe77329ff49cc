package types

import "fmt"

// BoolType is the built-in `bool`.
type BoolType struct{}

func (BoolType) Kind() Kind               { return KindBool }
func (BoolType) Repr() string             { return "bool" }
func (BoolType) Size() int                { return 1 }
func (BoolType) Align() int               { return 1 }
func (BoolType) NumberClass() NumberClass { return NumberClassNone }
func (BoolType) AccessModel() AccessModel { return AccessValue }
func (bt BoolType) equals(other Type) bool {
	_, ok := other.(BoolType)
	return ok
}

// RuneType is the built-in `rune` (a 32-bit code point), distinct from the
// numeric family so relational operators on runes don't silently widen.
type RuneType struct{}

func (RuneType) Kind() Kind               { return KindRune }
func (RuneType) Repr() string             { return "rune" }
func (RuneType) Size() int                { return 4 }
func (RuneType) Align() int               { return 4 }
func (RuneType) NumberClass() NumberClass { return NumberClassInteger }
func (RuneType) AccessModel() AccessModel { return AccessValue }
func (rt RuneType) equals(other Type) bool {
	_, ok := other.(RuneType)
	return ok
}

// IntegerType is one of u0/u8/u16/u32/u64/s8/s16/s32/s64 (spec.md §4.3).
// u0 ("nothing") is the zero-size unsigned unit used for procedures
// without a return value.
type IntegerType struct {
	Bits   int // 0, 8, 16, 32, or 64
	Signed bool
}

func (it IntegerType) Kind() Kind               { return KindInteger }
func (it IntegerType) NumberClass() NumberClass { return NumberClassInteger }
func (it IntegerType) AccessModel() AccessModel { return AccessValue }

func (it IntegerType) Size() int {
	switch it.Bits {
	case 0:
		return 0
	case 8:
		return 1
	case 16:
		return 2
	case 32:
		return 4
	default:
		return 8
	}
}

func (it IntegerType) Align() int {
	if it.Bits == 0 {
		return 1
	}
	return it.Size()
}

func (it IntegerType) Repr() string {
	prefix := "u"
	if it.Signed {
		prefix = "s"
	}
	if it.Bits == 0 {
		return "u0"
	}
	return fmt.Sprintf("%s%d", prefix, it.Bits)
}

func (it IntegerType) equals(other Type) bool {
	oit, ok := other.(IntegerType)
	return ok && oit.Bits == it.Bits && oit.Signed == it.Signed
}

// InRange reports whether the unsigned bit pattern v, interpreted per
// the literal's syntactic sign, fits within it.
func (it IntegerType) InRange(v uint64, negative bool) bool {
	if it.Bits == 0 {
		return v == 0 && !negative
	}

	if negative {
		if !it.Signed {
			return false
		}
		limit := uint64(1) << (it.Bits - 1)
		return v <= limit
	}

	if it.Signed {
		limit := uint64(1)<<(it.Bits-1) - 1
		return v <= limit
	}

	if it.Bits == 64 {
		return true
	}
	limit := uint64(1)<<it.Bits - 1
	return v <= limit
}

// Built-in integer types (spec.md §4.3).
var (
	U0  = IntegerType{Bits: 0, Signed: false}
	U8  = IntegerType{Bits: 8, Signed: false}
	U16 = IntegerType{Bits: 16, Signed: false}
	U32 = IntegerType{Bits: 32, Signed: false}
	U64 = IntegerType{Bits: 64, Signed: false}
	S8  = IntegerType{Bits: 8, Signed: true}
	S16 = IntegerType{Bits: 16, Signed: true}
	S32 = IntegerType{Bits: 32, Signed: true}
	S64 = IntegerType{Bits: 64, Signed: true}
)

// unsignedIntegerLadder and signedIntegerLadder are consulted in widening
// order by NarrowestUnsignedFor and NarrowestSignedFor.
var unsignedIntegerLadder = []IntegerType{U8, U16, U32, U64}
var signedIntegerLadder = []IntegerType{S8, S16, S32, S64}

// NarrowestUnsignedFor returns the smallest unsigned built-in integer type
// whose range contains v (spec.md §3.3: "preferring unsigned for
// non-negative values").
func NarrowestUnsignedFor(v uint64) IntegerType {
	for _, it := range unsignedIntegerLadder {
		if it.InRange(v, false) {
			return it
		}
	}
	return U64
}

// NarrowestSignedFor returns the smallest signed built-in integer type
// whose range contains the negative value -v.
func NarrowestSignedFor(v uint64) IntegerType {
	for _, it := range signedIntegerLadder {
		if it.InRange(v, true) {
			return it
		}
	}
	return S64
}

// FloatType is f32 or f64.
type FloatType struct {
	Bits int // 32 or 64
}

func (ft FloatType) Kind() Kind               { return KindFloat }
func (ft FloatType) NumberClass() NumberClass { return NumberClassFloat }
func (ft FloatType) AccessModel() AccessModel { return AccessValue }
func (ft FloatType) Size() int                { return ft.Bits / 8 }
func (ft FloatType) Align() int               { return ft.Size() }
func (ft FloatType) Repr() string             { return fmt.Sprintf("f%d", ft.Bits) }
func (ft FloatType) equals(other Type) bool {
	oft, ok := other.(FloatType)
	return ok && oft.Bits == ft.Bits
}

// Built-in floating-point types.
var (
	F32 = FloatType{Bits: 32}
	F64 = FloatType{Bits: 64}
)
