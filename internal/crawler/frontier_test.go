package crawler

import "testing"

func TestFrontierFIFO(t *testing.T) {
	f := NewFrontier("a", "b")
	f.Push("c")

	for _, want := range []string{"a", "b", "c"} {
		got, ok := f.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = %q, %v; want %q", got, ok, want)
		}
	}
	if _, ok := f.Pop(); ok {
		t.Fatal("Pop() on empty frontier should report false")
	}
}

func TestFrontierToleratesDuplicates(t *testing.T) {
	f := NewFrontier()
	f.Push("x")
	f.Push("x")
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (dedup happens at dequeue, not enqueue)", f.Len())
	}
}
