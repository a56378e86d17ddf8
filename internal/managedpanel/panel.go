// Package managedpanel implements the versioned panel slot shared by the
// left/center (directory) and right (preview) columns of the Miller-column
// layout. It tracks a generation per slot so that asynchronous load
// completions arriving out of order can be discarded, and it supports
// freezing a slot while an external process has control of the terminal.
//
// The load/completion machinery rides on bubbletea's tea.Cmd/tea.Msg
// convention rather than a literal channel pair: every load request is a
// goroutine-backed tea.Cmd whose result message carries the genstate.State
// it was issued for, which is bubbletea's idiomatic analogue of a worker
// completion channel.
package managedpanel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/rfm/internal/genstate"
)

// Loader produces a tea.Cmd that will eventually deliver the panel content
// for path, tagged with state so the caller can discard it if stale.
type Loader[P any] func(path string, state genstate.State) tea.Cmd

// Completion is the payload a Loader's resulting message must carry.
type Completion[P any] struct {
	State genstate.State
	Value P
}

// Panel is a versioned slot holding the current value of type P (a
// DirPanel or a PreviewPanel).
type Panel[P any] struct {
	current P
	state   genstate.State
	counter genstate.Counter
	frozen  bool
	cache   *Cache[P]
	debounce time.Duration
}

// New creates a panel slot with the given zero/initial value, a shared
// cache, and a debounce duration used by NewPanelDelayed (pass 0 to disable
// coalescing, as is appropriate for the left/center directory slots).
func New[P any](initial P, cache *Cache[P], debounce time.Duration) *Panel[P] {
	return &Panel[P]{current: initial, cache: cache, debounce: debounce}
}

// Current returns the slot's present value.
func (p *Panel[P]) Current() P { return p.current }

// State returns the slot's current identity.
func (p *Panel[P]) State() genstate.State { return p.state }

// Frozen reports whether the slot currently ignores completions.
func (p *Panel[P]) Frozen() bool { return p.frozen }

// Freeze suspends completion acceptance, used to bracket an external
// process invocation so a racing background reload cannot clobber the
// panel while the user's editor (or other tool) has the file open.
func (p *Panel[P]) Freeze() { p.frozen = true }

// Unfreeze resumes completion acceptance.
func (p *Panel[P]) Unfreeze() { p.frozen = false }

// NewPanelInstant switches the slot to path: if the cache holds a value
// for it, install it immediately (optimistic display while the fresh load
// runs); regardless, issue a new load at a freshly advanced generation.
func (p *Panel[P]) NewPanelInstant(path string, load Loader[P]) tea.Cmd {
	gen := p.counter.Next()
	p.state = genstate.State{Path: path, Generation: gen}
	if v, ok := p.cache.Get(path); ok {
		p.current = v
	}
	return load(path, p.state)
}

// NewPanelDelayed advances the slot's generation synchronously (so any
// earlier in-flight request for this slot is already invalid) but defers
// the actual load behind a short quiet period. Bursts of calls in quick
// succession therefore only ever perform the last one: every earlier
// scheduled tick finds its captured generation no longer current and
// no-ops instead of issuing a load.
func (p *Panel[P]) NewPanelDelayed(path string, load Loader[P]) tea.Cmd {
	gen := p.counter.Next()
	state := genstate.State{Path: path, Generation: gen}
	p.state = state
	if v, ok := p.cache.Get(path); ok {
		p.current = v
	}
	if p.debounce <= 0 {
		return load(path, state)
	}
	return tea.Tick(p.debounce, func(time.Time) tea.Msg {
		return delayedFireMsg[P]{state: state, path: path, load: load}
	})
}

// delayedFireMsg is handled by the caller's Update loop (see
// internal/panel) by calling Panel.FireDelayed, which re-checks staleness
// before actually invoking the loader.
type delayedFireMsg[P any] struct {
	state genstate.State
	path  string
	load  Loader[P]
}

// FireDelayed resolves a scheduled delayed load: if the slot has since
// moved on (a newer request superseded this one), it is dropped; otherwise
// the load is issued now.
func (p *Panel[P]) FireDelayed(msg any) tea.Cmd {
	m, ok := msg.(delayedFireMsg[P])
	if !ok {
		return nil
	}
	if !p.state.Equal(m.state) {
		return nil
	}
	return m.load(m.path, m.state)
}

// IsDelayedFire reports whether msg is this panel's delayed-fire message,
// for dispatch in the caller's type switch.
func IsDelayedFire[P any](msg any) bool {
	_, ok := msg.(delayedFireMsg[P])
	return ok
}

// UpdatePanel synchronously replaces the slot's value, advancing the
// generation so any outstanding load becomes stale.
func (p *Panel[P]) UpdatePanel(v P) {
	gen := p.counter.Next()
	p.state = genstate.State{Path: p.state.Path, Generation: gen}
	p.current = v
	p.cache.Put(p.state.Path, v)
}

// CheckUpdate reports whether a completion for state should be applied:
// true iff the slot is not frozen and state matches the slot's current
// identity exactly.
func (p *Panel[P]) CheckUpdate(state genstate.State) bool {
	return !p.frozen && p.state.Equal(state)
}

// Apply installs the completion's value if CheckUpdate approves it,
// caching the result either way so a later NewPanelInstant can reuse it.
// Returns whether the value was installed.
func (p *Panel[P]) Apply(c Completion[P]) bool {
	p.cache.Put(c.State.Path, c.Value)
	if !p.CheckUpdate(c.State) {
		return false
	}
	p.current = c.Value
	return true
}

// Reload reissues the load for the slot's current path at a fresh
// generation, discarding any in-flight request.
func (p *Panel[P]) Reload(load Loader[P]) tea.Cmd {
	return p.NewPanelInstant(p.state.Path, load)
}

// MutateCurrent applies f to the slot's present value in place, without
// advancing the generation. Used for presentation-only adjustments to a
// just-installed (possibly cache-hit) value — e.g. clearing marks a cached
// panel carried over — that must not invalidate a load already in flight
// for this slot.
func (p *Panel[P]) MutateCurrent(f func(*P)) {
	f(&p.current)
	p.cache.Put(p.state.Path, p.current)
}
