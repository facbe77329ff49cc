// Package intern canonicalises string literals reachable from a program so
// that identical literals share one data label in the emitted ro_data
// section (spec.md §4.5.1 step 1, §6.3).
package intern

import "fmt"

// ID identifies one interned string. IDs are assigned in first-seen order
// and are stable for the lifetime of a compilation.
type ID int

// Table canonicalises string literals and assigns them stable IDs.
type Table struct {
	byValue map[string]ID
	values  []string
}

// NewTable creates an empty interned string table.
func NewTable() *Table {
	return &Table{byValue: make(map[string]ID)}
}

// Intern records s if it has not been seen before and returns its ID. The
// same value always yields the same ID.
func (t *Table) Intern(s string) ID {
	if id, ok := t.byValue[s]; ok {
		return id
	}

	id := ID(len(t.values))
	t.byValue[s] = id
	t.values = append(t.values, s)
	return id
}

// Lookup returns the string for an ID. It is an internal invariant
// violation to request an ID this table never issued.
func (t *Table) Lookup(id ID) string {
	if int(id) < 0 || int(id) >= len(t.values) {
		panic(fmt.Sprintf("intern: lookup of unknown id %d", id))
	}
	return t.values[id]
}

// Len returns the number of distinct interned strings.
func (t *Table) Len() int {
	return len(t.values)
}

// Label returns the data label emitted for an interned string, matching
// the `_intern_str_lit_<n>` convention of spec.md §4.5.1 step 4.
func Label(id ID) string {
	return fmt.Sprintf("_intern_str_lit_%d", id)
}

// DataLabel returns the label of the interned string's byte data, nested
// under Label per spec.md §4.5.1 step 4.
func DataLabel(id ID) string {
	return Label(id) + "_data"
}

// All returns every interned string in assignment order, suitable for a
// deterministic walk when emitting the string table section.
func (t *Table) All() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}
