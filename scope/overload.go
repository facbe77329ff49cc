package scope

import (
	"basecodec/elements"
	"basecodec/types"
)

// Candidate is one overload choice at a call site: the procedure
// element id and its signature.
type Candidate struct {
	ID   elements.ID
	Type *types.ProcType
}

// ResolveOverload selects the procedure instance whose parameter arity
// matches argTypes and whose parameter types each accept the
// corresponding argument type, per spec.md §4.2 "Overload resolution":
// ties are broken by preferring instances requiring no implicit
// widening; remaining ties are an ambiguity error (ok=false, ambiguous
// candidates returned).
func ResolveOverload(candidates []Candidate, argTypes []types.Type) (best Candidate, ambiguous []Candidate, ok bool) {
	var matches []Candidate

	for _, c := range candidates {
		if c.Type.Params.Arity() != len(argTypes) {
			continue
		}
		if acceptsAll(c.Type, argTypes) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return Candidate{}, nil, false
	case 1:
		return matches[0], nil, true
	}

	// Prefer the candidate(s) requiring no implicit widening, i.e. every
	// parameter type is identical to the argument type (spec.md §4.2
	// "preferring instances requiring no implicit widening").
	var exact []Candidate
	for _, c := range matches {
		if isExactMatch(c.Type, argTypes) {
			exact = append(exact, c)
		}
	}
	if len(exact) == 1 {
		return exact[0], nil, true
	}
	if len(exact) > 1 {
		return Candidate{}, exact, false
	}

	return Candidate{}, matches, false
}

func acceptsAll(pt *types.ProcType, argTypes []types.Type) bool {
	for i, f := range pt.Params.Fields {
		if !types.Accepts(f.Type, argTypes[i]) {
			return false
		}
	}
	return true
}

func isExactMatch(pt *types.ProcType, argTypes []types.Type) bool {
	for i, f := range pt.Params.Fields {
		if !types.Equals(f.Type, argTypes[i]) {
			return false
		}
	}
	return true
}
