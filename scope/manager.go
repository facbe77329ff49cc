package scope

import "basecodec/elements"

// Manager owns every Scope in a compilation and drives opening/closing
// and name resolution (spec.md §4.2 "Responsibilities: open/close
// scopes, register declarations, walk parent scopes for resolution").
type Manager struct {
	scopes map[ID]*Scope
	nextID ID
}

// NewManager creates a manager with a single root scope (id 1, no
// parent, not a stack frame — the program/module scope).
func NewManager() *Manager {
	m := &Manager{scopes: make(map[ID]*Scope), nextID: 1}
	m.scopes[m.nextID] = newScope(m.nextID, 0, false)
	m.nextID++
	return m
}

// Root returns the id of the outermost scope.
func (m *Manager) Root() ID { return 1 }

// Open creates a new child scope of parent and returns its id (spec.md
// §3.4 "Lifecycle: created when entering an AST block").
func (m *Manager) Open(parent ID, isFrame bool) ID {
	id := m.nextID
	m.nextID++
	s := newScope(id, parent, isFrame)
	m.scopes[id] = s
	if parentScope, ok := m.scopes[parent]; ok {
		parentScope.Children = append(parentScope.Children, id)
	}
	return id
}

// Get returns the scope for id. Unlike elements.Map.Get, an unknown
// scope id here indicates a bug in the evaluator's own bookkeeping, so
// it is also treated as fatal via nil-pointer dereference on the
// caller's next field access — callers that aren't certain an id is
// live should use the ok-returning variant in practice, but scope ids
// are always manager-issued, never user-controlled, so this stays
// simple.
func (m *Manager) Get(id ID) *Scope {
	return m.scopes[id]
}

// Define registers decl under name in the given scope.
func (m *Manager) Define(scopeID ID, name string, decl elements.ID) {
	m.Get(scopeID).Define(name, decl)
}

// Lookup walks from scopeID up through parent scopes, returning the
// first scope with a matching declaration set and the matches found
// there (spec.md §4.2 "walk parent scopes for resolution"). It ignores
// IsFrame and walks through stack-frame boundaries: every scope has a
// parent chain up to the program scope, so globals remain visible from
// inside procedures. (LookupLabel, by contrast, stops at the nearest
// frame.)
func (m *Manager) Lookup(scopeID ID, name string) ([]elements.ID, bool) {
	for cur := scopeID; cur != 0; {
		s, ok := m.scopes[cur]
		if !ok {
			return nil, false
		}
		if found := s.declsHere(name); len(found) > 0 {
			return found, true
		}
		cur = s.Parent
	}
	return nil, false
}

// LookupLabel walks up from scopeID looking for a label declaration,
// stopping at the nearest enclosing stack frame (labels do not cross
// procedure boundaries).
func (m *Manager) LookupLabel(scopeID ID, name string) (elements.ID, bool) {
	for cur := scopeID; cur != 0; {
		s, ok := m.scopes[cur]
		if !ok {
			return 0, false
		}
		if label, ok := s.Labels[name]; ok {
			return label, true
		}
		if s.IsFrame {
			return 0, false
		}
		cur = s.Parent
	}
	return 0, false
}
