// Package scan runs a compiled pattern over a text snapshot and produces an
// ordered, non-overlapping match set with line/column metadata and capture
// data.
package scan

import (
	"unicode/utf8"

	"github.com/dshills/findstorm/internal/engine/buffer"
	"github.com/dshills/findstorm/internal/search/pattern"
)

// DefaultMaxMatches bounds scan cost against pathological patterns/inputs.
const DefaultMaxMatches = 10000

// Option configures a single scan.
type Option func(*scanner)

// WithMaxMatches caps the number of matches collected before the set is
// flagged as truncated. Non-positive values keep the default.
func WithMaxMatches(n int) Option {
	return func(s *scanner) {
		if n > 0 {
			s.maxMatches = n
		}
	}
}

// WithRegion restricts matching to the byte range [from, to) of the text.
// Reported offsets and line/column positions remain relative to the full
// text.
func WithRegion(from, to buffer.ByteOffset) Option {
	return func(s *scanner) {
		s.from = from
		s.to = to
		s.hasRegion = true
	}
}

type scanner struct {
	maxMatches int
	from, to   buffer.ByteOffset
	hasRegion  bool
}

// Scan finds all non-overlapping matches of p in text.
// Zero matches yields an empty, valid MatchSet.
func Scan(text string, p *pattern.Compiled, opts ...Option) *MatchSet {
	s := &scanner{maxMatches: DefaultMaxMatches}
	for _, opt := range opts {
		opt(s)
	}

	from, to := buffer.ByteOffset(0), buffer.ByteOffset(len(text))
	if s.hasRegion {
		if s.from > from {
			from = s.from
		}
		if s.to < to {
			to = s.to
		}
		if from > to {
			from = to
		}
	}

	set := NewMatchSet()
	re := p.Regexp()
	names := re.SubexpNames()
	region := text[from:to]

	// Matching the whole region in one call keeps anchor semantics intact;
	// re-matching a suffix would let ^ fire mid-line. FindAll is already
	// non-overlapping and steps one rune past each zero-width match. Word
	// boundary rejections shrink the result below the request limit, so
	// those scans run uncapped.
	limit := -1
	if !p.NeedsBoundaryCheck() {
		limit = s.maxMatches + 1
	}
	raw := re.FindAllStringSubmatchIndex(region, limit)

	// Walker state for incremental line/column computation. Lines and
	// columns are 1-based; columns count runes from the line start.
	walkOff := 0
	line := 1
	lineStart := 0

	for _, idx := range raw {
		absStart := from + buffer.ByteOffset(idx[0])
		absEnd := from + buffer.ByteOffset(idx[1])

		if p.NeedsBoundaryCheck() && !atWordBoundary(text, absStart, absEnd) {
			continue
		}

		if len(set.Matches) >= s.maxMatches {
			set.Truncated = true
			break
		}

		// Advance the line walker to the match start without rescanning
		// the prefix.
		for walkOff < int(absStart) {
			if text[walkOff] == '\n' {
				line++
				lineStart = walkOff + 1
			}
			walkOff++
		}

		rec := MatchRecord{
			Start:  absStart,
			End:    absEnd,
			Text:   text[absStart:absEnd],
			Line:   line,
			Column: utf8.RuneCountInString(text[lineStart:absStart]) + 1,
		}

		groupCount := len(idx)/2 - 1
		if groupCount > 0 {
			rec.Groups = make([]Group, groupCount)
			for k := 1; k <= groupCount; k++ {
				lo, hi := idx[2*k], idx[2*k+1]
				if lo < 0 {
					continue
				}
				g := Group{Text: region[lo:hi], Present: true}
				rec.Groups[k-1] = g
				if k < len(names) && names[k] != "" {
					if rec.NamedGroups == nil {
						rec.NamedGroups = make(map[string]string)
					}
					rec.NamedGroups[names[k]] = g.Text
				}
			}
		}

		set.Matches = append(set.Matches, rec)
	}

	return set
}

// atWordBoundary reports whether the characters adjacent to [start, end) are
// both non-word. Out-of-bounds positions satisfy the boundary.
func atWordBoundary(text string, start, end buffer.ByteOffset) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if int(end) < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

// isWordRune returns true if the rune is a word character.
func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '_'
}
