package scan

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/findstorm/internal/engine/buffer"
)

// Group holds the text of one capture group. Present is false when the
// optional group did not participate in the match.
type Group struct {
	Text    string
	Present bool
}

// MatchRecord is one accepted match within the scanned text.
// Start and End are byte offsets valid against the snapshot the scan ran
// over; Line and Column are 1-based, with Column counting runes from the
// start of the line.
type MatchRecord struct {
	Start       buffer.ByteOffset
	End         buffer.ByteOffset
	Text        string
	Line        int
	Column      int
	Groups      []Group
	NamedGroups map[string]string
}

// Range returns the byte range covered by the match.
func (m MatchRecord) Range() buffer.Range {
	return buffer.NewRange(m.Start, m.End)
}

// String returns a human-readable representation of the match.
func (m MatchRecord) String() string {
	return fmt.Sprintf("%d:%d %s %q", m.Line, m.Column, m.Range(), m.Text)
}

// MatchSet is an ordered sequence of matches, sorted ascending by Start and
// non-overlapping. A set is valid only against the buffer state it was
// scanned from; any later edit requires reconciliation or a fresh scan.
type MatchSet struct {
	// ID uniquely identifies the scan that produced this set.
	ID string

	// Matches in ascending offset order.
	Matches []MatchRecord

	// Truncated is true when the scan stopped at the match cap.
	Truncated bool

	// CurrentIndex is the navigator position within the set, -1 when the
	// set is empty or navigation has not started.
	CurrentIndex int
}

// NewMatchSet creates an empty match set with a fresh identity.
func NewMatchSet() *MatchSet {
	return &MatchSet{
		ID:           uuid.NewString(),
		CurrentIndex: -1,
	}
}

// Len returns the number of matches.
func (s *MatchSet) Len() int {
	return len(s.Matches)
}

// IsEmpty returns true if the set has no matches.
func (s *MatchSet) IsEmpty() bool {
	return len(s.Matches) == 0
}

// Current returns the match at CurrentIndex.
func (s *MatchSet) Current() (MatchRecord, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Matches) {
		return MatchRecord{}, false
	}
	return s.Matches[s.CurrentIndex], true
}
