package search

import (
	"context"

	"github.com/dshills/findstorm/internal/search/pattern"
	"github.com/dshills/findstorm/internal/search/scan"
)

// AsyncResult is the outcome of a background scan.
type AsyncResult struct {
	// Set is the scanned match set. Nil when the scan failed or was
	// cancelled.
	Set *scan.MatchSet

	// Err carries compile or cancellation failure.
	Err error

	// Generation is the request's generation token.
	Generation uint64

	// Superseded is true when a newer search was issued before this scan
	// completed. Superseded results are never installed as the active set.
	Superseded bool
}

// SearchAsync scans the buffer on a background goroutine so an interactive
// caller stays responsive. Each request takes a monotonically increasing
// generation token; last query wins. A scan whose token is no longer the
// latest on completion is delivered flagged Superseded and is not installed
// as the active match set.
//
// The result channel is buffered and always receives exactly one value.
func (e *Engine) SearchAsync(ctx context.Context, query string, opts Options) <-chan AsyncResult {
	gen := e.generation.Add(1)
	ch := make(chan AsyncResult, 1)

	go func() {
		defer close(ch)

		p, err := pattern.Compile(query, opts)
		if err != nil {
			ch <- AsyncResult{Err: err, Generation: gen}
			return
		}

		// Snapshot before scanning; the scan runs lock-free over it.
		text := e.buf.Text()

		if err := ctx.Err(); err != nil {
			ch <- AsyncResult{Err: err, Generation: gen}
			return
		}

		set := scan.Scan(text, p, scan.WithMaxMatches(e.maxMatches))

		if err := ctx.Err(); err != nil {
			ch <- AsyncResult{Err: err, Generation: gen}
			return
		}

		if !e.installIfCurrent(gen, p, set) {
			ch <- AsyncResult{Set: set, Generation: gen, Superseded: true}
			return
		}

		ch <- AsyncResult{Set: set, Generation: gen}
	}()

	return ch
}
