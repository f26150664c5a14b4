package search

import "github.com/dshills/findstorm/internal/search/scan"

// Navigator tracks the current position within a match set for
// next/previous/go-to navigation. It never rescans; edits that shrink or
// shift the set are the reconciler's concern.
type Navigator struct {
	set *scan.MatchSet
}

// NewNavigator creates a navigator over the given set.
func NewNavigator(set *scan.MatchSet) *Navigator {
	return &Navigator{set: set}
}

// Next advances to the next match, wrapping to the first after the last.
// Returns false when the set is empty.
func (n *Navigator) Next() (scan.MatchRecord, bool) {
	if n.set == nil || n.set.IsEmpty() {
		return scan.MatchRecord{}, false
	}

	n.set.CurrentIndex = (n.set.CurrentIndex + 1) % n.set.Len()
	return n.set.Matches[n.set.CurrentIndex], true
}

// Previous moves to the previous match, wrapping to the last from the first.
// Returns false when the set is empty.
func (n *Navigator) Previous() (scan.MatchRecord, bool) {
	if n.set == nil || n.set.IsEmpty() {
		return scan.MatchRecord{}, false
	}

	if n.set.CurrentIndex <= 0 {
		n.set.CurrentIndex = n.set.Len() - 1
	} else {
		n.set.CurrentIndex--
	}
	return n.set.Matches[n.set.CurrentIndex], true
}

// GoTo selects the match at index i.
// Out-of-range navigation fails silently: UI-driven races are expected, so
// it returns false rather than panicking.
func (n *Navigator) GoTo(i int) (scan.MatchRecord, bool) {
	if n.set == nil || i < 0 || i >= n.set.Len() {
		return scan.MatchRecord{}, false
	}

	n.set.CurrentIndex = i
	return n.set.Matches[i], true
}

// Current returns the currently selected match, if any.
func (n *Navigator) Current() (scan.MatchRecord, bool) {
	if n.set == nil {
		return scan.MatchRecord{}, false
	}
	return n.set.Current()
}
