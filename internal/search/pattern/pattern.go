// Package pattern compiles user search queries into executable matchers.
//
// A query is either a literal string or a regular expression, qualified by
// an immutable Options value. Option toggles never mutate compiler state;
// "toggle and re-search" means building a new Options and compiling again.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrEmptyQuery indicates a search was requested with an empty query string.
var ErrEmptyQuery = errors.New("empty search query")

// PatternError indicates the query is not a valid regular expression.
type PatternError struct {
	Query string
	Err   error
}

// Error returns the diagnostic message.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Query, e.Err)
}

// Unwrap returns the underlying regexp error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// Options describes the semantics of one query.
// The zero value is a case-insensitive literal search.
type Options struct {
	// CaseSensitive disables case folding.
	CaseSensitive bool

	// Regex interprets the query as a regular expression.
	Regex bool

	// WholeWord only accepts matches bounded by non-word characters.
	WholeWord bool

	// Multiline makes ^ and $ match at line boundaries (regex mode).
	Multiline bool

	// DotAll makes . match line separators (regex mode).
	DotAll bool
}

// Compiled is an executable matcher produced from a query and options.
type Compiled struct {
	query   string
	opts    Options
	re      *regexp.Regexp
	literal bool
}

// Compile builds a matcher from a query string and options.
// Returns ErrEmptyQuery for an empty query, or a *PatternError when the
// query is regex mode and not syntactically valid.
func Compile(query string, opts Options) (*Compiled, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	body := query
	if !opts.Regex {
		body = regexp.QuoteMeta(query)
	} else if opts.WholeWord {
		body = `\b(?:` + body + `)\b`
	}

	flags := ""
	if !opts.CaseSensitive {
		flags += "i"
	}
	if opts.Regex && opts.Multiline {
		flags += "m"
	}
	if opts.Regex && opts.DotAll {
		flags += "s"
	}
	if flags != "" {
		body = "(?" + flags + ")" + body
	}

	re, err := regexp.Compile(body)
	if err != nil {
		// QuoteMeta output always compiles; only regex mode can get here.
		return nil, &PatternError{Query: query, Err: err}
	}

	return &Compiled{
		query:   query,
		opts:    opts,
		re:      re,
		literal: !opts.Regex,
	}, nil
}

// Query returns the original query string.
func (c *Compiled) Query() string {
	return c.query
}

// Options returns the options the pattern was compiled with.
func (c *Compiled) Options() Options {
	return c.opts
}

// Regexp returns the underlying compiled expression.
func (c *Compiled) Regexp() *regexp.Regexp {
	return c.re
}

// GroupCount returns the number of capture groups in the pattern.
func (c *Compiled) GroupCount() int {
	return c.re.NumSubexp()
}

// NeedsBoundaryCheck reports whether the scanner must verify word
// boundaries itself. A literal whose edges are non-word characters would
// invert the meaning of an embedded \b assertion, so literal whole-word
// queries check their neighbors after matching instead.
func (c *Compiled) NeedsBoundaryCheck() bool {
	return c.literal && c.opts.WholeWord
}
