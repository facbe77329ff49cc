package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// SourceLoader reads the full text of a file by absolute path, so that
// Render can print a source-text snippet under a diagnostic. Implemented
// by the file-I/O collaborator outside this module's scope.
type SourceLoader interface {
	Open(absPath string) (io.ReadCloser, error)
}

// Render writes every diagnostic in the sink, in source order, to w. path
// is the representative path printed in each message; loader, if non-nil,
// is used to print an underlined source snippet beneath diagnostics that
// carry a span.
func Render(w io.Writer, sink *Sink, path string, loader SourceLoader, absPath string) {
	for _, d := range sink.Diagnostics() {
		if d.Span == nil {
			fmt.Fprintf(w, "%s: %s %s: %s\n\n", path, d.Severity, d.Code, d.Message)
			continue
		}

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n\n", path, d.Span.StartLine+1, d.Span.StartCol+1, d.Severity, d.Code, d.Message)

		if loader != nil {
			if rc, err := loader.Open(absPath); err == nil {
				displaySourceText(w, rc, d.Span)
				rc.Close()
			}
		}
	}
}

// displaySourceText prints the source lines covered by span, underlined
// with carets, matching the original bootstrap compiler's presentation.
func displaySourceText(w io.Writer, r io.Reader, span *TextSpan) {
	var lines []string
	sc := bufio.NewScanner(r)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if len(lines) == 0 {
		return
	}

	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := 0
		for _, c := range line {
			if c == ' ' {
				lineIndent++
			} else {
				break
			}
		}
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}
	if minIndent == math.MaxInt {
		minIndent = 0
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Fprintf(w, lineNumFmtStr, i+span.StartLine+1)

		trimmed := line
		if minIndent <= len(line) {
			trimmed = line[minIndent:]
		}
		fmt.Fprintln(w, trimmed)

		fmt.Fprint(w, strings.Repeat(" ", maxLineNumLen), " | ")

		var caretPrefixCount int
		if i == 0 {
			caretPrefixCount = span.StartCol - minIndent
		}

		var caretSuffixCount int
		if i == len(lines)-1 {
			caretSuffixCount = len(line) - span.EndCol
		}

		caretCount := len(line) - caretSuffixCount - caretPrefixCount - minIndent
		if caretCount < 1 {
			caretCount = 1
		}

		fmt.Fprint(w, strings.Repeat(" ", max(caretPrefixCount, 0)))
		fmt.Fprintln(w, strings.Repeat("^", caretCount))
	}

	fmt.Fprintln(w)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
