// Package template parses and resolves replacement templates for regex
// replacement operations.
//
// Template syntax:
//   - $0 or $&: the whole match
//   - $1, $2, ... $N: capture group by index
//   - $`: the text before the match start
//   - $': the text after the match end
//   - everything else, including $ followed by anything unrecognized, is
//     literal text
//
// A numeric token referencing a group beyond the pattern's group count is
// emitted literally rather than erroring.
package template

import (
	"strconv"
	"strings"

	"github.com/dshills/findstorm/internal/search/scan"
)

// SegmentType indicates the type of segment in a replacement template.
type SegmentType int

const (
	// SegmentLiteral represents literal text.
	SegmentLiteral SegmentType = iota
	// SegmentFullMatch represents a reference to the full match ($0, $&).
	SegmentFullMatch
	// SegmentGroup represents a reference to a capture group by index.
	SegmentGroup
	// SegmentPrefix represents the text before the match start ($`).
	SegmentPrefix
	// SegmentSuffix represents the text after the match end ($').
	SegmentSuffix
)

// Segment represents a parsed segment of a replacement template.
type Segment struct {
	Type    SegmentType
	Literal string // literal text; for SegmentGroup, the raw token for overflow fallback
	Group   int    // for SegmentGroup: 1-based index
}

// Template represents a fully parsed replacement template.
type Template struct {
	Original string
	Segments []Segment
}

// Parse parses a replacement template string into segments.
// Parsing never fails; unrecognized tokens are kept as literal text.
func Parse(tmpl string) *Template {
	result := &Template{Original: tmpl}

	i := 0
	literalStart := 0

	flush := func(end int) {
		if end > literalStart {
			result.Segments = append(result.Segments, Segment{
				Type:    SegmentLiteral,
				Literal: tmpl[literalStart:end],
			})
		}
	}

	for i < len(tmpl) {
		if tmpl[i] != '$' || i+1 >= len(tmpl) {
			i++
			continue
		}

		switch c := tmpl[i+1]; {
		case c == '&':
			flush(i)
			result.Segments = append(result.Segments, Segment{Type: SegmentFullMatch})
			i += 2
			literalStart = i
		case c == '`':
			flush(i)
			result.Segments = append(result.Segments, Segment{Type: SegmentPrefix})
			i += 2
			literalStart = i
		case c == '\'':
			flush(i)
			result.Segments = append(result.Segments, Segment{Type: SegmentSuffix})
			i += 2
			literalStart = i
		case c >= '0' && c <= '9':
			j := i + 1
			for j < len(tmpl) && tmpl[j] >= '0' && tmpl[j] <= '9' {
				j++
			}
			n, err := strconv.Atoi(tmpl[i+1 : j])
			if err != nil {
				// Digit run too large to represent; keep it literal.
				i = j
				continue
			}
			flush(i)
			if n == 0 {
				result.Segments = append(result.Segments, Segment{Type: SegmentFullMatch})
			} else {
				result.Segments = append(result.Segments, Segment{
					Type:    SegmentGroup,
					Group:   n,
					Literal: tmpl[i:j],
				})
			}
			i = j
			literalStart = i
		default:
			// Not a recognized token; the $ is literal.
			i++
		}
	}

	flush(len(tmpl))
	return result
}

// Resolve produces the replacement text for one match.
// groupCount is the pattern's capture group count; fullText is the complete
// buffer content the prefix/suffix tokens resolve against.
func (t *Template) Resolve(m scan.MatchRecord, groupCount int, fullText string) string {
	var sb strings.Builder

	for _, seg := range t.Segments {
		switch seg.Type {
		case SegmentLiteral:
			sb.WriteString(seg.Literal)
		case SegmentFullMatch:
			sb.WriteString(m.Text)
		case SegmentGroup:
			if seg.Group > groupCount {
				// Beyond the pattern's groups: the token stays literal.
				sb.WriteString(seg.Literal)
				break
			}
			if seg.Group-1 < len(m.Groups) && m.Groups[seg.Group-1].Present {
				sb.WriteString(m.Groups[seg.Group-1].Text)
			}
		case SegmentPrefix:
			if int(m.Start) <= len(fullText) {
				sb.WriteString(fullText[:m.Start])
			}
		case SegmentSuffix:
			if int(m.End) <= len(fullText) {
				sb.WriteString(fullText[m.End:])
			}
		}
	}

	return sb.String()
}
