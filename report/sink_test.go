package report

import "testing"

func TestSinkHasErrors(t *testing.T) {
	s := NewSink()
	if s.HasErrors() {
		t.Fatal("empty sink reports errors")
	}

	s.Warning(CodeUnresolvedSymbol, nil, "just a warning")
	if s.HasErrors() {
		t.Fatal("sink with only a warning reports errors")
	}

	s.Error(CodeBadCast, nil, "cannot cast %s to %s", "u8", "bool")
	if !s.HasErrors() {
		t.Fatal("sink with an error does not report errors")
	}
}

func TestSinkDiagnosticsSourceOrder(t *testing.T) {
	s := NewSink()
	s.Error(CodeBadCast, &TextSpan{StartLine: 5, StartCol: 0}, "second")
	s.Error(CodeBadCast, &TextSpan{StartLine: 1, StartCol: 4}, "first")
	s.Error(CodeBadCast, nil, "no span sorts last")

	diags := s.Diagnostics()
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(diags))
	}
	if diags[0].Message != "first" || diags[1].Message != "second" {
		t.Fatalf("diagnostics not sorted by span: %+v", diags)
	}
	if diags[2].Span != nil {
		t.Fatalf("expected the no-span diagnostic last, got %+v", diags[2])
	}
}

func TestSinkCatchRecoversCompileError(t *testing.T) {
	s := NewSink()

	func() {
		defer s.Catch()
		panic(Raise(CodeNoExitLabel, nil, "no valid exit label on stack"))
	}()

	if !s.HasErrors() {
		t.Fatal("Catch did not record the panicked CompileError")
	}
}

func TestSinkCatchRepanicsOnICE(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Catch should not swallow an ICError")
		}
	}()

	s := NewSink()
	defer s.Catch()
	ReportICE("element map corrupted")
}
