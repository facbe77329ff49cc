package types

// Type is the common interface implemented by every Basecode type (spec.md
// §3.3). Equality is structural for synthesized shapes (pointer, array,
// tuple, proc) and nominal (by canonical symbol) for user composites, per
// spec.md §4.3.
type Type interface {
	Kind() Kind
	Repr() string
	Size() int
	Align() int
	NumberClass() NumberClass
	AccessModel() AccessModel

	// equals is the type-specific identity check; callers should use the
	// package-level Equals, which knows how to unwrap Unknown.
	equals(other Type) bool
}

// Equals reports whether a and b are the same type. Unknown never equals
// anything, including another Unknown (spec.md §4.3: "unknown accepts
// nothing").
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind() == KindUnknown || b.Kind() == KindUnknown {
		return false
	}
	return a.equals(b)
}

// -----------------------------------------------------------------------------

// UnknownType marks a not-yet-resolved type slot (spec.md §4.2, §4.4). It
// is a sentinel value, not a real type: Size/Align/Repr are only ever
// called on it by diagnostic code, never by the emitter.
type UnknownType struct{}

func (UnknownType) Kind() Kind                { return KindUnknown }
func (UnknownType) Repr() string              { return "<unknown>" }
func (UnknownType) Size() int                 { return 0 }
func (UnknownType) Align() int                { return 1 }
func (UnknownType) NumberClass() NumberClass  { return NumberClassNone }
func (UnknownType) AccessModel() AccessModel  { return AccessValue }
func (UnknownType) equals(other Type) bool    { return false }

// AnyType is the built-in `any`: it accepts every type implicitly (spec.md
// §4.3) but is itself opaque (boxed, two pointers wide).
type AnyType struct{}

func (AnyType) Kind() Kind               { return KindAny }
func (AnyType) Repr() string             { return "any" }
func (AnyType) Size() int                { return PointerSize * 2 }
func (AnyType) Align() int               { return PointerSize }
func (AnyType) NumberClass() NumberClass { return NumberClassNone }
func (AnyType) AccessModel() AccessModel { return AccessPointer }
func (at AnyType) equals(other Type) bool {
	_, ok := other.(AnyType)
	return ok
}

// ModuleType is the built-in `module` meta-type, used for module
// references (spec.md §3.2 "module-reference").
type ModuleType struct{}

func (ModuleType) Kind() Kind               { return KindModule }
func (ModuleType) Repr() string             { return "module" }
func (ModuleType) Size() int                { return 0 }
func (ModuleType) Align() int               { return 1 }
func (ModuleType) NumberClass() NumberClass { return NumberClassNone }
func (ModuleType) AccessModel() AccessModel { return AccessValue }
func (mt ModuleType) equals(other Type) bool {
	_, ok := other.(ModuleType)
	return ok
}

// TypeMetaType is the built-in `type` meta-type: the type of a
// type-literal element (spec.md §3.2 "type-literal").
type TypeMetaType struct{}

func (TypeMetaType) Kind() Kind               { return KindTypeMeta }
func (TypeMetaType) Repr() string             { return "type" }
func (TypeMetaType) Size() int                { return PointerSize }
func (TypeMetaType) Align() int               { return PointerSize }
func (TypeMetaType) NumberClass() NumberClass { return NumberClassNone }
func (TypeMetaType) AccessModel() AccessModel { return AccessValue }
func (tt TypeMetaType) equals(other Type) bool {
	_, ok := other.(TypeMetaType)
	return ok
}

// NamespaceType tags a namespace element referenced as a value (spec.md
// §3.2 "namespace").
type NamespaceType struct {
	Symbol string
}

func (NamespaceType) Kind() Kind               { return KindNamespace }
func (nt NamespaceType) Repr() string          { return nt.Symbol }
func (NamespaceType) Size() int                { return 0 }
func (NamespaceType) Align() int               { return 1 }
func (NamespaceType) NumberClass() NumberClass { return NumberClassNone }
func (NamespaceType) AccessModel() AccessModel { return AccessValue }
func (nt NamespaceType) equals(other Type) bool {
	ont, ok := other.(NamespaceType)
	return ok && ont.Symbol == nt.Symbol
}

// PointerSize is the target pointer width in bytes. The VM is 64-bit only.
const PointerSize = 8
