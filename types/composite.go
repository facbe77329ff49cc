package types

// CompositeType is a struct, union, or enum type (spec.md §3.2, §3.3).
// Composites are nominal: two composites are equal iff they share a
// canonical symbol, never by structural comparison (spec.md §4.3).
type CompositeType struct {
	CompositeKind CompositeKind
	Symbol        string
	Fields        *FieldMap
	Packed        bool
	Access        AccessModel

	// EnumStorage is the discriminant's backing integer type; only set
	// when CompositeKind == CompositeEnum.
	EnumStorage IntegerType

	size, align int
	sized       bool
}

// NewComposite creates a composite whose fields are filled in afterward
// via Fields.Append, then finalized with a call to Size()/Align() once
// all fields are resolved (spec.md §3.3 invariant: "size and alignment of
// every composite are computed exactly once, after all fields have been
// resolved").
func NewComposite(kind CompositeKind, symbol string) *CompositeType {
	return &CompositeType{
		CompositeKind: kind,
		Symbol:        symbol,
		Fields:        NewFieldMap(),
		Access:        AccessValue,
		EnumStorage:   U32,
	}
}

func (ct *CompositeType) Kind() Kind              { return KindComposite }
func (ct *CompositeType) NumberClass() NumberClass { return NumberClassNone }
func (ct *CompositeType) AccessModel() AccessModel { return ct.Access }
func (ct *CompositeType) Repr() string            { return ct.Symbol }

func (ct *CompositeType) Size() int {
	if ct.sized {
		return ct.size
	}

	switch ct.CompositeKind {
	case CompositeEnum:
		ct.size = ct.EnumStorage.Size()
	case CompositeUnion:
		max := 0
		for _, f := range ct.Fields.Fields {
			if f.Size > max {
				max = f.Size
			}
		}
		ct.size = max
	default: // CompositeStruct
		if ct.Packed {
			// No inter-field padding either: lay the fields out back to
			// back, replacing the aligned offsets Append assigned.
			offset := 0
			for i := range ct.Fields.Fields {
				ct.Fields.Fields[i].StartOffset = offset
				offset += ct.Fields.Fields[i].Size
			}
		}
		size := ct.Fields.runningSize()
		if align := ct.structAlign(); !ct.Packed && align > 0 && size%align != 0 {
			size += align - size%align
		}
		ct.size = size
	}

	ct.sized = true
	return ct.size
}

func (ct *CompositeType) Align() int {
	if ct.align != 0 {
		return ct.align
	}

	switch ct.CompositeKind {
	case CompositeEnum:
		ct.align = ct.EnumStorage.Align()
	default:
		ct.align = ct.structAlign()
	}

	return ct.align
}

func (ct *CompositeType) structAlign() int {
	if ct.Packed {
		return 1
	}
	maxAlign := 1
	for _, f := range ct.Fields.Fields {
		if a := f.Type.Align(); a > maxAlign {
			maxAlign = a
		}
	}
	return maxAlign
}

// equals is nominal: same kind and canonical symbol (spec.md §4.3
// "Composites: accepted iff same type identity (by canonical symbol, not
// structurally)").
func (ct *CompositeType) equals(other Type) bool {
	oct, ok := other.(*CompositeType)
	return ok && ct.Symbol == oct.Symbol && ct.CompositeKind == oct.CompositeKind
}

// GetField looks up a struct/union member by name (spec.md §4.3
// "member-access returns the field type of the composite base").
func (ct *CompositeType) GetField(name string) (Field, bool) {
	return ct.Fields.ByName(name)
}
