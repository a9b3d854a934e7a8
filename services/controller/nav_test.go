package controller

import "testing"

func TestNavEmptyListRejected(t *testing.T) {
	if _, err := NewNav(nil); err == nil {
		t.Fatal("expected error for empty list")
	}
}

func TestNavFullCycleReturnsToStart(t *testing.T) {
	for _, products := range [][]string{
		{"solo"},
		{"A", "B"},
		{"A", "B", "C", "D", "E"},
	} {
		nav, err := NewNav(products)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < len(products); i++ {
			nav.Next()
		}
		if nav.Index() != 0 {
			t.Errorf("len=%d: %d x Next ended at %d, want 0", len(products), len(products), nav.Index())
		}
		for i := 0; i < len(products); i++ {
			nav.Prev()
		}
		if nav.Index() != 0 {
			t.Errorf("len=%d: %d x Prev ended at %d, want 0", len(products), len(products), nav.Index())
		}
	}
}

func TestNavPrevNextIdentity(t *testing.T) {
	nav, _ := NewNav([]string{"A", "B", "C"})
	for start := 0; start < nav.Len(); start++ {
		before := nav.Index()
		nav.Prev()
		nav.Next()
		if nav.Index() != before {
			t.Errorf("Prev,Next from %d ended at %d", before, nav.Index())
		}
		nav.Next()
		nav.Prev()
		if nav.Index() != before {
			t.Errorf("Next,Prev from %d ended at %d", before, nav.Index())
		}
		nav.Next() // move to the next start position
	}
}

func TestNavScenario(t *testing.T) {
	// list = A,B,C starting at 0: DOWN x3 wraps to 0, UP from 0 lands on 2.
	nav, _ := NewNav([]string{"A", "B", "C"})

	nav.Next()
	nav.Next()
	nav.Next()
	if nav.Index() != 0 {
		t.Errorf("after 3x Next index = %d, want 0", nav.Index())
	}

	nav.Prev()
	if nav.Index() != 2 || nav.Current() != "C" {
		t.Errorf("after Prev from 0: index=%d current=%q", nav.Index(), nav.Current())
	}
}

func TestNavSingleEntry(t *testing.T) {
	nav, _ := NewNav([]string{"only"})
	nav.Next()
	nav.Prev()
	if nav.Index() != 0 || nav.Current() != "only" {
		t.Errorf("index=%d current=%q", nav.Index(), nav.Current())
	}
}
