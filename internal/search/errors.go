package search

import (
	"errors"

	"github.com/dshills/findstorm/internal/search/pattern"
)

// Errors returned by engine operations.
var (
	// ErrStaleOffset indicates a replace was attempted against offsets that
	// no longer correspond to current buffer content.
	ErrStaleOffset = errors.New("match offsets are stale")

	// ErrNoMatch indicates the active match set is empty.
	ErrNoMatch = errors.New("no matches")

	// ErrNoCurrentMatch indicates navigation has not selected a match yet.
	ErrNoCurrentMatch = errors.New("no current match")

	// ErrNoSearch indicates no search has been performed.
	ErrNoSearch = errors.New("no active search")

	// ErrEmptyQuery indicates a search was requested with an empty query.
	ErrEmptyQuery = pattern.ErrEmptyQuery
)

// PatternError indicates an invalid regular expression query.
type PatternError = pattern.PatternError
