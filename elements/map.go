package elements

import (
	"basecodec/common"
	"basecodec/report"
)

// Map owns every element's lifetime (spec.md §3.5 "Ownership model: the
// element map owns every element"). All other components hold ids, not
// pointers.
type Map struct {
	elems  map[ID]*Element
	nextID ID

	// bySymbol indexes declaration-bearing elements for by-qualified-
	// symbol lookup (spec.md §4.1 "Lookups supported: ... by qualified
	// symbol within a scope").
	bySymbol map[string][]ID
	byKind   map[Kind][]ID
}

// NewMap creates an empty element map.
func NewMap() *Map {
	return &Map{
		elems:    make(map[ID]*Element),
		nextID:   1,
		bySymbol: make(map[string][]ID),
		byKind:   make(map[Kind][]ID),
	}
}

// insert stamps a fresh id onto e, stores it, and returns the id. It is
// the one path every New* constructor funnels through (spec.md §4.1
// "stamps a fresh id, attaches parent-scope and module, and returns a
// handle").
func (m *Map) insert(kind Kind, parent ScopeID, mod ModuleID, payload any) ID {
	id := m.nextID
	m.nextID++

	e := &Element{
		ID:          id,
		Kind:        kind,
		Module:      mod,
		ParentScope: parent,
		Payload:     payload,
	}
	m.elems[id] = e
	m.byKind[kind] = append(m.byKind[kind], id)
	return id
}

// New is the generic constructor used by New<Kind> helpers below; it is
// exported so the evaluator can construct any element kind uniformly
// while still calling the specific New* for type safety where a payload
// shape is well known.
func (m *Map) New(kind Kind, parent ScopeID, mod ModuleID, payload any) ID {
	return m.insert(kind, parent, mod, payload)
}

// Get looks up an element by id. Looking up an unknown id is a
// programming error and is fatal, never a recoverable diagnostic (spec.md
// §4.1 "attempting to look up an unknown id is fatal").
func (m *Map) Get(id ID) *Element {
	e, ok := m.elems[id]
	if !ok {
		report.ReportICE("elements: lookup of unknown element id %d", id)
	}
	return e
}

// TryGet is the non-fatal counterpart used where the caller genuinely
// expects a possibly-absent id (e.g. Declaration.Init == 0).
func (m *Map) TryGet(id ID) (*Element, bool) {
	if id == 0 {
		return nil, false
	}
	e, ok := m.elems[id]
	return e, ok
}

// SetLocation and SetComments/SetAttributes are used by the evaluator to
// attach source-location and pending-comment/attribute bookkeeping after
// an element is constructed (spec.md §4.4 "threads an evaluator context
// carrying: pending comments ... pending attributes").
func (m *Map) SetLocation(id ID, span report.TextSpan) {
	m.Get(id).Location = span
}

func (m *Map) SetComments(id ID, comments []string) {
	m.Get(id).Comments = comments
}

func (m *Map) SetAttributes(id ID, attrs []string) {
	m.Get(id).Attributes = attrs
}

// AddChild records a parent/child ownership edge so the owned-children
// relation forms a forest anchored at the program element (spec.md
// §3.2).
func (m *Map) AddChild(parent, child ID) {
	p := m.Get(parent)
	p.Children = append(p.Children, child)
}

// DefineSymbol indexes id under symbol for later by-qualified-symbol
// lookup. Declarations, procedure instances, and composite type
// definitions all call this.
func (m *Map) DefineSymbol(symbol common.QualifiedSymbol, id ID) {
	key := symbol.String()
	m.bySymbol[key] = append(m.bySymbol[key], id)
}

// LookupSymbol returns every element registered under symbol, in
// definition order (overloaded procedure symbols may have more than
// one).
func (m *Map) LookupSymbol(symbol common.QualifiedSymbol) []ID {
	return m.bySymbol[symbol.String()]
}

// ByKind returns every element id of the given kind, in construction
// order — used by the emitter to find all procedure calls, all string
// literals, all module references (spec.md §4.1).
func (m *Map) ByKind(kind Kind) []ID {
	return m.byKind[kind]
}

// Len reports how many elements are currently live in the map. Tests
// assert this is unchanged after a synthetic helper element is created
// and then removed (spec.md §7 "tests must assert the map size is
// unchanged after emitting a for loop").
func (m *Map) Len() int {
	return len(m.elems)
}

// Remove detaches id and every element it owns (its Children closure)
// from the map (spec.md §4.1, §4.4). Package fold uses it to detach the
// operands of a folded operator; it is also the way to drop a
// SyntheticBinaryOp helper once used.
func (m *Map) Remove(id ID) {
	e, ok := m.elems[id]
	if !ok {
		return
	}
	for _, child := range e.Children {
		m.Remove(child)
	}
	m.removeFromKindIndex(e.Kind, id)
	delete(m.elems, id)
}

func (m *Map) removeFromKindIndex(kind Kind, id ID) {
	ids := m.byKind[kind]
	for i, other := range ids {
		if other == id {
			m.byKind[kind] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}
