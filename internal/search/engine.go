package search

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dshills/findstorm/internal/engine/buffer"
	"github.com/dshills/findstorm/internal/search/pattern"
	"github.com/dshills/findstorm/internal/search/scan"
	"github.com/dshills/findstorm/internal/search/template"
)

// Re-export commonly used types for convenience.
type (
	// Options describes the semantics of one query.
	Options = pattern.Options

	// MatchRecord is one accepted match.
	MatchRecord = scan.MatchRecord

	// MatchSet is an ordered, non-overlapping sequence of matches.
	MatchSet = scan.MatchSet

	// Range is a byte range in the buffer.
	Range = buffer.Range
)

// TextBuffer is the external collaborator the engine searches and edits.
// The engine never owns the buffer; it owns only match sets computed
// against a past state of it.
type TextBuffer interface {
	Len() buffer.ByteOffset
	Text() string
	TextRange(start, end buffer.ByteOffset) string
	Replace(start, end buffer.ByteOffset, text string) (buffer.ByteOffset, error)
}

// EngineOption configures an Engine during creation.
type EngineOption func(*Engine)

// WithMaxMatches caps the number of matches collected per scan.
func WithMaxMatches(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxMatches = n
		}
	}
}

// Engine is the search-and-replace engine facade.
// All methods are safe for concurrent use, though the engine assumes no
// external buffer edits interleave with a scan-then-edit sequence.
type Engine struct {
	mu         sync.Mutex
	buf        TextBuffer
	maxMatches int

	// Active query state. Replaced wholesale by each new search; never
	// mutated by option toggles.
	pat *pattern.Compiled
	set *scan.MatchSet
	nav *Navigator

	// Generation counter for supersede semantics on async scans.
	generation atomic.Uint64
}

// New creates an engine operating on the given buffer.
func New(buf TextBuffer, opts ...EngineOption) *Engine {
	e := &Engine{
		buf:        buf,
		maxMatches: scan.DefaultMaxMatches,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Search scans the whole buffer for the query and installs the result as
// the active match set. An empty query or invalid pattern installs an empty
// set and returns the diagnostic error alongside it; no failure escapes as
// a panic.
func (e *Engine) Search(query string, opts Options) (*scan.MatchSet, error) {
	return e.search(query, opts, nil)
}

// SearchRange is Search restricted to the byte range [start, end), for
// selection-only search. Reported offsets remain buffer-absolute.
func (e *Engine) SearchRange(query string, opts Options, start, end buffer.ByteOffset) (*scan.MatchSet, error) {
	r := buffer.NewRange(start, end)
	return e.search(query, opts, &r)
}

func (e *Engine) search(query string, opts Options, region *buffer.Range) (*scan.MatchSet, error) {
	// A synchronous search supersedes any in-flight async scan.
	e.generation.Add(1)

	p, err := pattern.Compile(query, opts)
	if err != nil {
		empty := scan.NewMatchSet()
		e.install(nil, empty)
		return empty, err
	}

	scanOpts := []scan.Option{scan.WithMaxMatches(e.maxMatches)}
	if region != nil {
		scanOpts = append(scanOpts, scan.WithRegion(region.Start, region.End))
	}

	set := scan.Scan(e.buf.Text(), p, scanOpts...)
	e.install(p, set)
	return set, nil
}

func (e *Engine) install(p *pattern.Compiled, set *scan.MatchSet) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pat = p
	e.set = set
	e.nav = NewNavigator(set)
}

// installIfCurrent installs scan results only when gen is still the latest
// issued generation. Used by async scans for supersede semantics.
func (e *Engine) installIfCurrent(gen uint64, p *pattern.Compiled, set *scan.MatchSet) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation.Load() != gen {
		return false
	}
	e.pat = p
	e.set = set
	e.nav = NewNavigator(set)
	return true
}

// CountMatches scans for the query without disturbing the active match set.
func (e *Engine) CountMatches(query string, opts Options) (int, error) {
	p, err := pattern.Compile(query, opts)
	if err != nil {
		return 0, err
	}

	set := scan.Scan(e.buf.Text(), p, scan.WithMaxMatches(e.maxMatches))
	return set.Len(), nil
}

// MatchSet returns the active match set, or nil before any search.
func (e *Engine) MatchSet() *scan.MatchSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set
}

// Navigation

// Next advances to the next match, wrapping around.
func (e *Engine) Next() (scan.MatchRecord, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.nav == nil {
		return scan.MatchRecord{}, false
	}
	return e.nav.Next()
}

// Previous moves to the previous match, wrapping around.
func (e *Engine) Previous() (scan.MatchRecord, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.nav == nil {
		return scan.MatchRecord{}, false
	}
	return e.nav.Previous()
}

// GoTo selects the match at index i; out-of-range indexes fail silently.
func (e *Engine) GoTo(i int) (scan.MatchRecord, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.nav == nil {
		return scan.MatchRecord{}, false
	}
	return e.nav.GoTo(i)
}

// Current returns the currently selected match, if any.
func (e *Engine) Current() (scan.MatchRecord, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.nav == nil {
		return scan.MatchRecord{}, false
	}
	return e.nav.Current()
}

// Replacement

// ReplaceCurrent replaces the currently selected match with the resolved
// template, reconciles the remaining matches against the edit delta, and
// moves the current position to the following match. The replaced record
// (as matched, pre-edit) is returned.
func (e *Engine) ReplaceCurrent(tmpl string) (scan.MatchRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.set == nil || e.pat == nil {
		return scan.MatchRecord{}, ErrNoSearch
	}
	if e.set.IsEmpty() {
		return scan.MatchRecord{}, ErrNoMatch
	}

	idx := e.set.CurrentIndex
	if idx < 0 {
		return scan.MatchRecord{}, ErrNoCurrentMatch
	}

	m := e.set.Matches[idx]
	if err := e.verifyFresh(m); err != nil {
		return scan.MatchRecord{}, err
	}

	resolved := e.resolve(tmpl, nil, m)
	newEnd, err := e.buf.Replace(m.Start, m.End, resolved)
	if err != nil {
		return scan.MatchRecord{}, fmt.Errorf("%w: %v", ErrStaleOffset, err)
	}
	delta := newEnd - m.End

	// The consumed record leaves the set; the following match (wrapping)
	// becomes current.
	e.set.Matches = append(e.set.Matches[:idx], e.set.Matches[idx+1:]...)
	if e.set.Len() == 0 {
		e.set.CurrentIndex = -1
	} else {
		e.set.CurrentIndex = idx % e.set.Len()
	}

	Reconcile(e.set, m.Start, m.End, delta)
	return m, nil
}

// ReplaceAll replaces every match in the active set, rightmost first, so
// earlier offsets stay valid by construction. A scope restricts the batch
// to matches lying entirely within it. Stale matches are skipped and
// counted; the batch continues. One fresh scan afterwards installs the new
// authoritative match set.
func (e *Engine) ReplaceAll(tmpl string, scope *Range) (succeeded, failed int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.set == nil || e.pat == nil {
		return 0, 0
	}

	var parsed *template.Template
	if e.pat.Options().Regex {
		parsed = template.Parse(tmpl)
	}

	for i := e.set.Len() - 1; i >= 0; i-- {
		m := e.set.Matches[i]
		if scope != nil && !scope.ContainsRange(m.Range()) {
			continue
		}

		if err := e.verifyFresh(m); err != nil {
			failed++
			continue
		}

		// Prefix/suffix tokens resolve against the buffer as currently
		// edited, so matches processed earlier (rightmost) see the
		// replacements already applied to their right.
		resolved := e.resolve(tmpl, parsed, m)
		if _, err := e.buf.Replace(m.Start, m.End, resolved); err != nil {
			failed++
			continue
		}
		succeeded++
	}

	e.set = scan.Scan(e.buf.Text(), e.pat, scan.WithMaxMatches(e.maxMatches))
	e.nav = NewNavigator(e.set)
	return succeeded, failed
}

// resolve produces the replacement text for one match. In non-regex mode
// the template is used verbatim. Caller must hold the lock.
func (e *Engine) resolve(tmpl string, parsed *template.Template, m scan.MatchRecord) string {
	if !e.pat.Options().Regex {
		return tmpl
	}
	if parsed == nil {
		parsed = template.Parse(tmpl)
	}
	return parsed.Resolve(m, e.pat.GroupCount(), e.buf.Text())
}

// verifyFresh checks that the buffer content under the match still equals
// the recorded match text. Caller must hold the lock.
func (e *Engine) verifyFresh(m scan.MatchRecord) error {
	if m.Start < 0 || m.End > e.buf.Len() {
		return ErrStaleOffset
	}
	if e.buf.TextRange(m.Start, m.End) != m.Text {
		return ErrStaleOffset
	}
	return nil
}
