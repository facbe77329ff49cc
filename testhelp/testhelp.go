// Package testhelp holds small assertion helpers shared by this module's
// package tests, grounded on the teacher's habit of a thin `testutil`-style
// package rather than reimplementing diffing per package.
package testhelp

import (
	"strings"

	"github.com/kr/pretty"
)

// Diff renders the structural differences between want and got, one per
// line, for use in a t.Fatalf message when a plain %+v would bury the
// mismatched field in an otherwise-identical struct dump.
func Diff(want, got interface{}) string {
	d := pretty.Diff(want, got)
	if len(d) == 0 {
		return "(no structural difference found)"
	}
	return strings.Join(d, "\n")
}
