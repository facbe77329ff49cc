package types

import (
	"basecodec/common"
)

// Registry holds built-in and user-declared types and synthesizes
// pointer/array/tuple/proc types with canonicalised dedup (spec.md §2
// step 3, §8.1 "type canonicalisation").
type Registry struct {
	byName map[string]Type

	pointers map[Type]*PointerType
	arrays   map[Type]*ArrayType
	tuples   map[string]*TupleType
	procs    map[string]*ProcType

	composites map[string]*CompositeType
}

// NewRegistry creates a registry with every built-in type pre-populated
// (spec.md §4.3 "Built-in types are created once at initialization").
func NewRegistry() *Registry {
	r := &Registry{
		byName:     make(map[string]Type),
		pointers:   make(map[Type]*PointerType),
		arrays:     make(map[Type]*ArrayType),
		tuples:     make(map[string]*TupleType),
		procs:      make(map[string]*ProcType),
		composites: make(map[string]*CompositeType),
	}

	builtins := map[string]Type{
		"u0": U0, "u8": U8, "u16": U16, "u32": U32, "u64": U64,
		"s8": S8, "s16": S16, "s32": S32, "s64": S64,
		"f32": F32, "f64": F64,
		"bool":   BoolType{},
		"rune":   RuneType{},
		"type":   TypeMetaType{},
		"any":    AnyType{},
		"module": ModuleType{},
	}
	for name, t := range builtins {
		r.byName[name] = t
	}

	r.byName["string"] = r.buildStringType()

	return r
}

// buildStringType constructs the built-in `string` composite: a view over
// (length:u32, capacity:u32, data:^u8), per spec.md §4.3.
func (r *Registry) buildStringType() *CompositeType {
	str := NewComposite(CompositeStruct, "string")
	str.Fields.Append("length", U32)
	str.Fields.Append("capacity", U32)
	str.Fields.Append("data", r.PointerTo(U8))
	str.Access = AccessPointer
	str.Size()
	str.Align()
	r.composites["string"] = str
	return str
}

// Lookup resolves a qualified symbol against the registry. Built-ins and
// module-level composites/proc-types are stored flattened by their
// dotted-symbol string; namespacing is the scope manager's concern, not
// the registry's (spec.md §4.1 "Lookups supported: ... by qualified
// symbol").
func (r *Registry) Lookup(symbol common.QualifiedSymbol) (Type, bool) {
	t, ok := r.byName[symbol.String()]
	return t, ok
}

// Define registers a user-declared named type (composite, generally).
// Returns false if the symbol is already taken.
func (r *Registry) Define(symbol common.QualifiedSymbol, t Type) bool {
	key := symbol.String()
	if _, exists := r.byName[key]; exists {
		return false
	}
	r.byName[key] = t
	if ct, ok := t.(*CompositeType); ok {
		r.composites[key] = ct
	}
	return true
}

// PointerTo returns the canonical pointer-to-elem type, creating and
// caching it on first request (spec.md §3.3 "Pointer ... types are
// deduplicated by base-type+shape").
func (r *Registry) PointerTo(elem Type) *PointerType {
	if pt, ok := r.pointers[elem]; ok {
		return pt
	}
	pt := &PointerType{Elem: elem}
	r.pointers[elem] = pt
	return pt
}

// ArrayOf returns the canonical array-of-elem type.
func (r *Registry) ArrayOf(elem Type) *ArrayType {
	if at, ok := r.arrays[elem]; ok {
		return at
	}
	at := &ArrayType{Elem: elem}
	r.arrays[elem] = at
	return at
}

// TupleOf returns the canonical tuple type for the given element list.
func (r *Registry) TupleOf(elems []Type) *TupleType {
	key := reprKey(elems)
	if tt, ok := r.tuples[key]; ok {
		return tt
	}
	tt := &TupleType{Elems: append([]Type(nil), elems...)}
	r.tuples[key] = tt
	return tt
}

// ProcTypeOf returns the canonical procedure type for the given
// parameter/result field maps and foreign-call marker.
func (r *Registry) ProcTypeOf(params, results *FieldMap, foreign bool) *ProcType {
	key := fieldMapKey(params) + "->" + fieldMapKey(results)
	if foreign {
		key += "#foreign"
	}
	if pt, ok := r.procs[key]; ok {
		return pt
	}
	pt := &ProcType{Params: params, Results: results, Foreign: foreign}
	r.procs[key] = pt
	return pt
}

func reprKey(types []Type) string {
	s := ""
	for i, t := range types {
		if i > 0 {
			s += ","
		}
		s += t.Repr()
	}
	return s
}

func fieldMapKey(fm *FieldMap) string {
	if fm == nil {
		return ""
	}
	s := ""
	for i, f := range fm.Fields {
		if i > 0 {
			s += ","
		}
		s += f.Type.Repr()
	}
	return s
}
