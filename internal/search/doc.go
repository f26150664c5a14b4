// Package search provides the search-and-replace engine for Findstorm.
//
// The engine compiles a query into a matcher, scans a buffer snapshot for
// non-overlapping matches, and tracks a current position for next/previous
// navigation. Replacement comes in two forms:
//
//   - ReplaceCurrent applies one replacement and reconciles the remaining
//     match offsets against the edit delta, so "replace and move on" costs
//     O(remaining matches) instead of a rescan.
//   - ReplaceAll applies the whole set rightmost-first; each edit only
//     touches text to the right of the not-yet-processed matches, so no
//     reconciliation is needed during the pass. One fresh scan afterwards
//     produces the new authoritative set.
//
// The engine owns no buffer. It operates on any TextBuffer implementation
// and assumes serialized access during a scan-then-edit sequence; when that
// assumption is violated it reports ErrStaleOffset for the affected match
// rather than corrupting text.
//
// Sub-packages:
//
//   - pattern: query + options compilation
//   - scan: snapshot scanning, MatchRecord/MatchSet
//   - template: replacement template parsing and resolution
package search
