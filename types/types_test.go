package types

import (
	"testing"

	"basecodec/common"
)

func TestIntegerNarrowing(t *testing.T) {
	if got := NarrowestUnsignedFor(200); got != U8 {
		t.Errorf("NarrowestUnsignedFor(200) = %v, want u8", got)
	}
	if got := NarrowestUnsignedFor(70000); got != U32 {
		t.Errorf("NarrowestUnsignedFor(70000) = %v, want u32", got)
	}
	if got := NarrowestSignedFor(200); got != S16 {
		t.Errorf("NarrowestSignedFor(200) = %v, want s16 (-200 doesn't fit s8)", got)
	}
}

func TestCompositeSizeStructPadding(t *testing.T) {
	ct := NewComposite(CompositeStruct, "pair")
	ct.Fields.Append("a", U8)
	ct.Fields.Append("b", U32)

	if got := ct.Size(); got != 8 {
		t.Errorf("Size() = %d, want 8 (u8 at 0, pad to 4, u32 at 4..8)", got)
	}
	if got := ct.Align(); got != 4 {
		t.Errorf("Align() = %d, want 4", got)
	}
}

func TestCompositeSizePacked(t *testing.T) {
	ct := NewComposite(CompositeStruct, "packed_pair")
	ct.Packed = true
	ct.Fields.Append("a", U8)
	ct.Fields.Append("b", U32)

	if got := ct.Size(); got != 5 {
		t.Errorf("Size() = %d, want 5 (no padding when packed)", got)
	}
}

func TestCompositeUnionSize(t *testing.T) {
	ct := NewComposite(CompositeUnion, "either")
	ct.Fields.Append("small", U8)
	ct.Fields.Append("big", U64)

	if got := ct.Size(); got != 8 {
		t.Errorf("Size() = %d, want 8 (max field size)", got)
	}
}

func TestCompositeEqualsNominal(t *testing.T) {
	a := NewComposite(CompositeStruct, "point")
	a.Fields.Append("x", S32)
	b := NewComposite(CompositeStruct, "point")
	b.Fields.Append("x", S32)
	b.Fields.Append("y", S32)

	if !Equals(a, b) {
		t.Errorf("two composites with the same symbol and kind should be equal regardless of field shape (nominal typing)")
	}

	c := NewComposite(CompositeStruct, "vector")
	if Equals(a, c) {
		t.Errorf("composites with different symbols must not be equal")
	}
}

func TestRegistryPointerDedup(t *testing.T) {
	r := NewRegistry()
	p1 := r.PointerTo(U32)
	p2 := r.PointerTo(U32)
	if p1 != p2 {
		t.Errorf("PointerTo(u32) should return the same canonical pointer on repeat calls")
	}
}

func TestRegistryLookupBuiltins(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"u0", "u64", "s32", "f64", "bool", "rune", "any", "string"} {
		if _, ok := r.Lookup(common.NewSymbol(name)); !ok {
			t.Errorf("Lookup(%q) missing from registry", name)
		}
	}
}

func TestPointerVoidWildcardAccepts(t *testing.T) {
	r := NewRegistry()
	voidPtr := r.PointerTo(U0)
	u32Ptr := r.PointerTo(U32)

	if !Accepts(voidPtr, u32Ptr) {
		t.Errorf("^void should accept ^u32")
	}
	if !Accepts(u32Ptr, voidPtr) {
		t.Errorf("^u32 should accept ^void")
	}
}

func TestAcceptsIntegerNarrowing(t *testing.T) {
	if !Accepts(U32, U8) {
		t.Errorf("u32 should accept u8 (widening, same sign)")
	}
	if Accepts(U8, U32) {
		t.Errorf("u8 should not accept u32 (narrowing)")
	}
	if Accepts(U32, S32) {
		t.Errorf("u32 should not accept s32 (sign mismatch)")
	}
}

func TestAcceptsUnknownNever(t *testing.T) {
	if Accepts(U32, UnknownType{}) {
		t.Errorf("nothing should accept unknown")
	}
	if Accepts(UnknownType{}, U32) {
		t.Errorf("unknown should accept nothing")
	}
}

func TestClassifyCast(t *testing.T) {
	tests := []struct {
		name string
		src  Type
		dest Type
		want CastMode
	}{
		{"identity", U32, U32, CastIdentity},
		{"truncate", U32, U8, CastTruncate},
		{"zero extend", U8, U32, CastZeroExtend},
		{"sign extend", S8, S32, CastSignExtend},
		{"int to float", S32, F64, CastIntToFloat},
		{"float to int", F64, S32, CastFloatToInt},
		{"float widen", F32, F64, CastFloatWiden},
		{"float narrow", F64, F32, CastFloatNarrow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCast(tt.src, tt.dest); got != tt.want {
				t.Errorf("ClassifyCast(%v, %v) = %v, want %v", tt.src, tt.dest, got, tt.want)
			}
		})
	}
}

func TestCastPointerBitcastAlwaysLegal(t *testing.T) {
	r := NewRegistry()
	a := r.PointerTo(U8)
	b := r.PointerTo(S64)
	if !CanCast(a, b) {
		t.Errorf("pointer-to-pointer casts should always succeed")
	}
}

func TestTransmuteRequiresEqualSize(t *testing.T) {
	if !CanTransmute(U32, F32) {
		t.Errorf("u32 and f32 are both 4 bytes, transmute should be legal")
	}
	if CanTransmute(U32, U64) {
		t.Errorf("u32 and u64 differ in size, transmute should be illegal")
	}
}

func TestProcTypeEqualsRequiresForeignMatch(t *testing.T) {
	params := NewFieldMap()
	params.Append("x", S32)
	results := NewFieldMap()
	results.Append("ret", S32)

	a := &ProcType{Params: params, Results: results, Foreign: false}
	b := &ProcType{Params: params, Results: results, Foreign: true}
	if Equals(a, b) {
		t.Errorf("proc types with mismatched Foreign markers must not be equal")
	}
}
