package search

import (
	"testing"

	"github.com/dshills/findstorm/internal/search/scan"
)

func setOf(n int) *scan.MatchSet {
	set := scan.NewMatchSet()
	for i := 0; i < n; i++ {
		start := int64(i * 10)
		set.Matches = append(set.Matches, scan.MatchRecord{
			Start: start,
			End:   start + 3,
			Text:  "abc",
		})
	}
	return set
}

func TestNavigatorEmptySet(t *testing.T) {
	n := NewNavigator(scan.NewMatchSet())

	if _, ok := n.Next(); ok {
		t.Error("Next on empty set should return false")
	}

	if _, ok := n.Previous(); ok {
		t.Error("Previous on empty set should return false")
	}

	if _, ok := n.Current(); ok {
		t.Error("Current on empty set should return false")
	}
}

func TestNavigatorNextWraps(t *testing.T) {
	n := NewNavigator(setOf(3))

	for want := 0; want < 3; want++ {
		m, ok := n.Next()
		if !ok {
			t.Fatal("Next failed on non-empty set")
		}
		if m.Start != int64(want*10) {
			t.Errorf("expected match at %d, got %d", want*10, m.Start)
		}
	}

	m, ok := n.Next()
	if !ok || m.Start != 0 {
		t.Errorf("expected wrap to first match, got %v ok=%v", m.Start, ok)
	}
}

func TestNavigatorPreviousWraps(t *testing.T) {
	n := NewNavigator(setOf(3))

	m, ok := n.Previous()
	if !ok || m.Start != 20 {
		t.Errorf("expected wrap to last match, got %v ok=%v", m.Start, ok)
	}

	m, ok = n.Previous()
	if !ok || m.Start != 10 {
		t.Errorf("expected second match, got %v ok=%v", m.Start, ok)
	}
}

func TestNavigatorGoTo(t *testing.T) {
	n := NewNavigator(setOf(3))

	m, ok := n.GoTo(2)
	if !ok || m.Start != 20 {
		t.Errorf("expected match at 20, got %v ok=%v", m.Start, ok)
	}

	cur, ok := n.Current()
	if !ok || cur.Start != 20 {
		t.Error("Current should reflect GoTo")
	}
}

func TestNavigatorGoToOutOfRangeFailsSilently(t *testing.T) {
	n := NewNavigator(setOf(3))
	n.GoTo(1)

	if _, ok := n.GoTo(-1); ok {
		t.Error("GoTo(-1) should fail")
	}

	if _, ok := n.GoTo(3); ok {
		t.Error("GoTo past end should fail")
	}

	// Failed navigation leaves the current position untouched.
	cur, ok := n.Current()
	if !ok || cur.Start != 10 {
		t.Error("failed GoTo should not move the current position")
	}
}
