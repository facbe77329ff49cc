// Package scope implements the lexical scope tree and two-queue
// identifier/type resolution fixpoint described by spec.md §3.4/§4.2.
// It is grounded on the teacher's `depm/symbol_table.go` (the declared-
// by-usage symbol pattern: looking up a name before its definition is
// seen records a placeholder that later definition completes) and
// `depm/resolver.go`/`depm/universe.go` (generalized here from one
// symbol table per package into a full parent-linked scope tree).
package scope

import "basecodec/elements"

// ID identifies a scope. The zero value means "no scope" (used by the
// program root, per spec.md §3.2 "every element has exactly one parent
// scope, except the program root").
type ID int

// Scope owns a parent link, an overload-aware declarations multimap,
// ordered child scopes, a defer stack, a stack-frame flag, and the set
// of labels defined inside (spec.md §3.4).
type Scope struct {
	ID       ID
	Parent   ID
	IsFrame  bool // true for scopes that open a new stack frame (procedure bodies)
	Children []ID

	// decls maps a bare name to every declaration-bearing element
	// registered under it in this scope, in declaration order — a
	// multimap so overloaded procedure symbols can coexist (spec.md §3.4
	// "declarations-by-name (multimap to allow overloaded procedure
	// symbols)").
	decls map[string][]elements.ID

	// Defers is the LIFO stack of deferred expressions captured in AST
	// order; DefersReversed gives their fire order (spec.md §3.4
	// "Lifecycle"). The emitter does not read it: it fires defers from its
	// own per-procedure list at return, not at block exit.
	Defers []elements.ID

	// Labels maps label names declared directly inside this scope to
	// their Label element.
	Labels map[string]elements.ID
}

func newScope(id, parent ID, isFrame bool) *Scope {
	return &Scope{
		ID:      id,
		Parent:  parent,
		IsFrame: isFrame,
		decls:   make(map[string][]elements.ID),
		Labels:  make(map[string]elements.ID),
	}
}

// Define registers decl under name in this scope only (no parent walk).
func (s *Scope) Define(name string, decl elements.ID) {
	s.decls[name] = append(s.decls[name], decl)
}

// declsHere returns every declaration registered under name in this
// scope alone.
func (s *Scope) declsHere(name string) []elements.ID {
	return s.decls[name]
}

// PushDefer records a deferred expression in AST order.
func (s *Scope) PushDefer(expr elements.ID) {
	s.Defers = append(s.Defers, expr)
}

// DefersReversed returns the defer stack in fire order (LIFO).
func (s *Scope) DefersReversed() []elements.ID {
	out := make([]elements.ID, len(s.Defers))
	for i, d := range s.Defers {
		out[len(s.Defers)-1-i] = d
	}
	return out
}

// DefineLabel registers a label name in this scope.
func (s *Scope) DefineLabel(name string, label elements.ID) {
	s.Labels[name] = label
}
