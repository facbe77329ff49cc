package intern

import "testing"

func TestInternDeduplicates(t *testing.T) {
	tbl := NewTable()

	a := tbl.Intern("hello")
	b := tbl.Intern("world")
	c := tbl.Intern("hello")

	if a != c {
		t.Fatalf("expected repeated literal to reuse id: %d != %d", a, c)
	}
	if a == b {
		t.Fatalf("expected distinct literals to get distinct ids")
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 distinct strings, got %d", tbl.Len())
	}
}

func TestInternLookupRoundTrips(t *testing.T) {
	tbl := NewTable()
	id := tbl.Intern("basecode")

	if got := tbl.Lookup(id); got != "basecode" {
		t.Fatalf("Lookup(%d) = %q, want %q", id, got, "basecode")
	}
}

func TestLabelConvention(t *testing.T) {
	if got := Label(3); got != "_intern_str_lit_3" {
		t.Fatalf("Label(3) = %q", got)
	}
	if got := DataLabel(3); got != "_intern_str_lit_3_data" {
		t.Fatalf("DataLabel(3) = %q", got)
	}
}

func TestInternLookupUnknownIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unknown id")
		}
	}()

	NewTable().Lookup(42)
}
