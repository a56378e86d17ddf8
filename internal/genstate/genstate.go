// Package genstate implements the monotonic generation counter used to
// discard stale asynchronous load completions against a managed panel.
package genstate

import "sync/atomic"

// State identifies a single load request: the path it was issued for and
// the generation assigned at issue time. A completion is only applied if
// its State still matches the slot's current State.
type State struct {
	Path       string
	Generation uint64
}

// Equal reports whether two states refer to the same load.
func (s State) Equal(o State) bool {
	return s.Path == o.Path && s.Generation == o.Generation
}

// Counter hands out strictly increasing generation numbers for one slot.
// Safe for concurrent use: the foreground advances it on every load
// request, workers only read the value they were handed.
type Counter struct {
	n uint64
}

// Next advances the counter and returns the new generation.
func (c *Counter) Next() uint64 {
	return atomic.AddUint64(&c.n, 1)
}

// Current returns the generation most recently handed out without
// advancing it.
func (c *Counter) Current() uint64 {
	return atomic.LoadUint64(&c.n)
}
