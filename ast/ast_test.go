package ast

import "testing"

func TestChildOutOfRangeReturnsNil(t *testing.T) {
	n := &Node{Kind: KindBlock}
	if n.Child(0) != nil {
		t.Fatalf("Child(0) on an empty node should be nil")
	}
}

func TestChildReturnsOrderedEntry(t *testing.T) {
	a := &Node{Kind: KindIdentifier, Payload: IdentifierPayload{Name: "a"}}
	b := &Node{Kind: KindIdentifier, Payload: IdentifierPayload{Name: "b"}}
	parent := &Node{Kind: KindBlock, Children: []*Node{a, b}}

	if got := parent.Child(1); got != b {
		t.Fatalf("Child(1) = %v, want node b", got)
	}
}
