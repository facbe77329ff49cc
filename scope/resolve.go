package scope

import (
	"basecodec/elements"
	"basecodec/report"
)

// Queues holds the two resolution work-queues spec.md §4.2 names:
// identifiers with unknown types, and unresolved identifier references.
// Entries are element ids; the scope manager itself doesn't know how to
// infer a type or resolve a name — that's package infer's job — so
// Queues only drives the fixpoint loop over caller-supplied attempt
// functions, mirroring the run-to-fixpoint shape of the teacher's
// `depm/resolver.go` Resolve method.
type Queues struct {
	unknownTypes   []elements.ID
	unresolvedRefs []elements.ID
}

// NewQueues creates empty work-queues.
func NewQueues() *Queues {
	return &Queues{}
}

// EnqueueUnknownType records a declaration whose type slot is still
// `unknown` and needs another inference pass (spec.md §4.4 "if type is
// absent, the identifier enters the unknown types queue").
func (q *Queues) EnqueueUnknownType(id elements.ID) {
	q.unknownTypes = append(q.unknownTypes, id)
}

// EnqueueUnresolvedRef records an identifier-reference element that
// hasn't yet found its declaration.
func (q *Queues) EnqueueUnresolvedRef(id elements.ID) {
	q.unresolvedRefs = append(q.unresolvedRefs, id)
}

// Empty reports whether both queues have drained.
func (q *Queues) Empty() bool {
	return len(q.unknownTypes) == 0 && len(q.unresolvedRefs) == 0
}

// AttemptFunc tries to resolve one queued id, returning true on success
// (the id is removed from its queue) or false if it should be retried
// on a later pass.
type AttemptFunc func(id elements.ID) bool

// Run drains both queues to a fixpoint: each pass attempts every
// remaining entry; entries that succeed are removed; the loop stops
// when both queues are empty, or when a pass makes no progress at all
// (spec.md §4.2 "run until both queues are empty or a fixpoint with no
// progress is reached. ... A no-progress pass with items still present
// is reported as a type-resolution error citing the first unresolved
// name").
//
// nameOf is used only to build the no-progress diagnostic.
func (q *Queues) Run(sink *report.Sink, attemptType, attemptRef AttemptFunc, nameOf func(elements.ID) string) {
	for !q.Empty() {
		progressed := false

		q.unknownTypes, progressed = drain(q.unknownTypes, attemptType, progressed)
		q.unresolvedRefs, progressed = drain(q.unresolvedRefs, attemptRef, progressed)

		if !progressed {
			first := firstOf(q.unknownTypes, q.unresolvedRefs)
			sink.Error(report.CodeUnresolvedSymbol, nil, "could not resolve %q: no progress made on remaining %d item(s)", nameOf(first), len(q.unknownTypes)+len(q.unresolvedRefs))
			return
		}
	}
}

func drain(ids []elements.ID, attempt AttemptFunc, progressed bool) ([]elements.ID, bool) {
	if attempt == nil {
		return ids, progressed
	}
	remaining := ids[:0]
	for _, id := range ids {
		if attempt(id) {
			progressed = true
		} else {
			remaining = append(remaining, id)
		}
	}
	return remaining, progressed
}

func firstOf(a, b []elements.ID) elements.ID {
	if len(a) > 0 {
		return a[0]
	}
	if len(b) > 0 {
		return b[0]
	}
	return 0
}
