package types

// PointerType represents `^T` (spec.md §3.2). Pointer types are
// deduplicated by base type within a Registry (spec.md §8.1 "type
// canonicalisation").
type PointerType struct {
	Elem Type
}

func (pt *PointerType) Kind() Kind               { return KindPointer }
func (pt *PointerType) Size() int                { return PointerSize }
func (pt *PointerType) Align() int                { return PointerSize }
func (pt *PointerType) NumberClass() NumberClass  { return NumberClassNone }
func (pt *PointerType) AccessModel() AccessModel  { return AccessValue }
func (pt *PointerType) Repr() string              { return "^" + pt.Elem.Repr() }

func (pt *PointerType) equals(other Type) bool {
	opt, ok := other.(*PointerType)
	return ok && Equals(pt.Elem, opt.Elem)
}

// IsVoidPointer reports whether pt points at u0, the `^void` wildcard that
// accepts and is accepted by any other pointer (spec.md §4.3).
func (pt *PointerType) IsVoidPointer() bool {
	_, ok := pt.Elem.(IntegerType)
	return ok && pt.Elem.(IntegerType).Bits == 0
}

// -----------------------------------------------------------------------------

// ArrayType represents a homogeneous run-time sized array. Its runtime
// representation is `(length:u32, capacity:u32, data:^T)`, the same shape
// as the built-in `string` composite (spec.md §4.3), so it is sized and
// aligned like a pointer-sized header, not like ElemType.
type ArrayType struct {
	Elem Type
}

func (at *ArrayType) Kind() Kind              { return KindArray }
func (at *ArrayType) Size() int               { return 8 + PointerSize } // length:u32, capacity:u32, data:^T
func (at *ArrayType) Align() int              { return PointerSize }
func (at *ArrayType) NumberClass() NumberClass { return NumberClassNone }
func (at *ArrayType) AccessModel() AccessModel { return AccessPointer }
func (at *ArrayType) Repr() string            { return "[]" + at.Elem.Repr() }

func (at *ArrayType) equals(other Type) bool {
	oat, ok := other.(*ArrayType)
	return ok && Equals(at.Elem, oat.Elem)
}

// -----------------------------------------------------------------------------

// TupleType represents a fixed-size, heterogeneous sequence of types.
type TupleType struct {
	Elems []Type

	size, align int
}

func (tt *TupleType) Kind() Kind              { return KindTuple }
func (tt *TupleType) NumberClass() NumberClass { return NumberClassNone }
func (tt *TupleType) AccessModel() AccessModel { return AccessValue }

func (tt *TupleType) Size() int {
	if tt.size != 0 {
		return tt.size
	}
	size := 0
	for _, elem := range tt.Elems {
		align := elem.Align()
		if size%align != 0 {
			size += align - size%align
		}
		size += elem.Size()
	}
	tt.size = size
	return size
}

func (tt *TupleType) Align() int {
	if tt.align != 0 {
		return tt.align
	}
	maxAlign := 1
	for _, elem := range tt.Elems {
		if a := elem.Align(); a > maxAlign {
			maxAlign = a
		}
	}
	tt.align = maxAlign
	return maxAlign
}

func (tt *TupleType) Repr() string {
	s := "("
	for i, elem := range tt.Elems {
		if i > 0 {
			s += ", "
		}
		s += elem.Repr()
	}
	return s + ")"
}

func (tt *TupleType) equals(other Type) bool {
	ott, ok := other.(*TupleType)
	if !ok || len(tt.Elems) != len(ott.Elems) {
		return false
	}
	for i, elem := range tt.Elems {
		if !Equals(elem, ott.Elems[i]) {
			return false
		}
	}
	return true
}

// -----------------------------------------------------------------------------

// ProcType represents a procedure's signature (spec.md §3.2
// "procedure-type"). Parameters and return values are field maps so
// named-argument resolution and calling-convention layout share one
// representation (spec.md §4.5.2 "Procedure call").
type ProcType struct {
	Params  *FieldMap
	Results *FieldMap
	Foreign bool
}

func (pt *ProcType) Kind() Kind              { return KindProc }
func (pt *ProcType) Size() int               { return PointerSize }
func (pt *ProcType) Align() int              { return PointerSize }
func (pt *ProcType) NumberClass() NumberClass { return NumberClassNone }
func (pt *ProcType) AccessModel() AccessModel { return AccessValue }

func (pt *ProcType) Repr() string {
	s := "proc("
	for i, f := range pt.Params.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.Type.Repr()
	}
	s += ")"
	if pt.Results != nil && len(pt.Results.Fields) > 0 {
		s += ": " + pt.Results.Fields[0].Type.Repr()
	}
	if pt.Foreign {
		s += " #foreign"
	}
	return s
}

// equals checks parameters and returns pairwise and requires the
// foreign-call marker to match exactly (spec.md §4.3 "Procedures").
func (pt *ProcType) equals(other Type) bool {
	opt, ok := other.(*ProcType)
	if !ok || pt.Foreign != opt.Foreign {
		return false
	}
	return pt.Params.equalTypes(opt.Params) && pt.Results.equalTypes(opt.Results)
}
