package report

import (
	"fmt"
	"sort"
)

// Sink accumulates diagnostics for a single compilation. Phases keep
// processing sibling elements after an error is appended (§7 propagation
// policy) but the caller consults HasErrors to decide whether to run the
// next phase.
type Sink struct {
	diags []Diagnostic
}

// Diagnostic is a single recorded compilation message.
type Diagnostic struct {
	Code     Code
	Span     *TextSpan
	Message  string
	Severity Severity
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Error appends an error-severity diagnostic.
func (s *Sink) Error(code Code, span *TextSpan, format string, args ...interface{}) {
	s.add(code, span, SeverityError, format, args...)
}

// Warning appends a warning-severity diagnostic.
func (s *Sink) Warning(code Code, span *TextSpan, format string, args ...interface{}) {
	s.add(code, span, SeverityWarning, format, args...)
}

func (s *Sink) add(code Code, span *TextSpan, sev Severity, format string, args ...interface{}) {
	s.diags = append(s.diags, Diagnostic{
		Code:     code,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
	})
}

// HasErrors reports whether any error-severity diagnostic has been recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Diagnostics returns all recorded diagnostics in source order.
func (s *Sink) Diagnostics() []Diagnostic {
	sorted := make([]Diagnostic, len(s.diags))
	copy(sorted, s.diags)

	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].Span, sorted[j].Span
		if si == nil || sj == nil {
			return si != nil
		}
		if si.StartLine != sj.StartLine {
			return si.StartLine < sj.StartLine
		}
		return si.StartCol < sj.StartCol
	})

	return sorted
}

// Catch recovers a *CompileError thrown via panic within a phase and
// appends it to the sink so sibling elements keep being processed. Any
// other panic value (including *ICError) is re-raised: internal invariant
// violations are always fatal.
//
// NB: must always be deferred.
func (s *Sink) Catch() {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			s.add(cerr.Code, cerr.Span, SeverityError, "%s", cerr.Message)
			return
		}
		panic(x)
	}
}
