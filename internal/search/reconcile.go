package search

import (
	"github.com/dshills/findstorm/internal/engine/buffer"
	"github.com/dshills/findstorm/internal/search/scan"
)

// Reconcile updates a match set in place after a single edit of
// [editStart, editEnd) whose replacement changed the buffer length by delta.
//
// Records entirely before the edit are unchanged; records entirely after it
// are shifted by delta; records overlapping the edited range no longer
// correspond to current text and are dropped. The set stays sorted and
// non-overlapping without a rescan.
//
// CurrentIndex is remapped to the surviving position of the record it
// pointed at, or reset to -1 if that record was dropped.
func Reconcile(set *scan.MatchSet, editStart, editEnd buffer.ByteOffset, delta int64) {
	if set == nil || set.IsEmpty() {
		return
	}

	kept := set.Matches[:0]
	newIndex := -1

	for i, rec := range set.Matches {
		switch {
		case rec.End <= editStart:
			// Entirely before the edit.
		case rec.Start >= editEnd:
			rec.Start += delta
			rec.End += delta
		default:
			// Overlaps the edited range; no longer valid.
			continue
		}

		if i == set.CurrentIndex {
			newIndex = len(kept)
		}
		kept = append(kept, rec)
	}

	set.Matches = kept
	set.CurrentIndex = newIndex
}
