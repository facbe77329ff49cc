package report

import "fmt"

// Code is a stable diagnostic code. Codes are part of the external
// contract tools key on: an existing code is never repurposed.
type Code string

// The diagnostic code taxonomy from spec §6.5/§7.
const (
	// Parse-adjacent (resolution) errors.
	CodeUnresolvedSymbol  Code = "P081"
	CodeNoExitLabel       Code = "P091"
	CodeIntrinsicArity    Code = "P073"
	CodeAmbiguousOverload Code = "P082"

	// Type errors.
	CodeBadCast         Code = "C073"
	CodeBadAssign       Code = "C074"
	CodeBadDeref        Code = "C075"
	CodeUnknownField    Code = "C076"
	CodeArgTypeMismatch Code = "C077"

	// Codegen errors.
	CodeCodegen Code = "X000"
)

// Severity distinguishes errors, which cause downstream phases to be
// skipped, from warnings, which do not.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// CompileError is a compilation diagnostic raised during a phase. It is
// thrown via panic and caught by Catch at the phase boundary so that
// sibling elements keep being processed (§7 propagation policy).
type CompileError struct {
	Code    Code
	Span    *TextSpan
	Message string
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise creates a CompileError ready to be thrown with panic.
func Raise(code Code, span *TextSpan, format string, args ...interface{}) *CompileError {
	return &CompileError{Code: code, Span: span, Message: fmt.Sprintf(format, args...)}
}

// ICError is an internal invariant violation: a programming error in the
// compiler, never a user diagnostic. Raising one terminates the
// compilation and discards any partial output (§7).
type ICError struct {
	Message string
}

func (e *ICError) Error() string {
	return "internal compiler error: " + e.Message
}

// ReportICE panics with an ICError. It must never be recovered by Catch;
// the caller of the whole compilation is expected to let it propagate.
func ReportICE(format string, args ...interface{}) {
	panic(&ICError{Message: fmt.Sprintf(format, args...)})
}
