package report

import "fmt"

// TextSpan represents a range of source text. Spans are inclusive on both
// ends and zero-indexed on both line and column.
type TextSpan struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// SpanOver returns a new span covering the full range between start and end.
func SpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func (s *TextSpan) String() string {
	if s == nil {
		return "<no position>"
	}
	return fmt.Sprintf("%d:%d", s.StartLine+1, s.StartCol+1)
}
