// Package clickgate distinguishes single clicks from rapid double
// clicks on the same surface without relying on a native double-click
// event. The first click on an id arms a short timer; if the timer
// fires before a second click arrives, the single-click action runs.
// A second click within the window cancels the timer and runs the
// double-click action instead, so the single-click action never fires
// for a double click. Every single click pays the timer delay as
// latency.
package clickgate

import (
	"sync"
	"time"
)

// DefaultDelay is the window within which a second click counts as a
// double click.
const DefaultDelay = 300 * time.Millisecond

// Gate classifies clicks per id. Timers are keyed independently per
// id, so interactions on different ids never interfere.
type Gate struct {
	mu       sync.Mutex
	delay    time.Duration
	pending  map[int64]*time.Timer
	disabled map[int64]bool
	onSingle func(id int64)
	onDouble func(id int64)
}

// New creates a Gate firing onSingle for lone clicks and onDouble for
// two clicks within delay. A non-positive delay falls back to
// DefaultDelay.
func New(delay time.Duration, onSingle, onDouble func(id int64)) *Gate {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Gate{
		delay:    delay,
		pending:  make(map[int64]*time.Timer),
		disabled: make(map[int64]bool),
		onSingle: onSingle,
		onDouble: onDouble,
	}
}

// Click records a click on id and either arms the timer or, when one
// is already pending for this id, cancels it and fires the
// double-click action. Clicks on disabled ids are ignored entirely.
func (g *Gate) Click(id int64) {
	g.mu.Lock()
	if g.disabled[id] {
		g.mu.Unlock()
		return
	}

	if timer, ok := g.pending[id]; ok {
		delete(g.pending, id)
		g.mu.Unlock()
		timer.Stop()
		g.onDouble(id)
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(g.delay, func() {
		g.mu.Lock()
		// A second click may have claimed the timer between firing
		// and acquiring the lock; in that case the double-click
		// action owns this id.
		if g.pending[id] != timer {
			g.mu.Unlock()
			return
		}
		delete(g.pending, id)
		g.mu.Unlock()
		g.onSingle(id)
	})
	g.pending[id] = timer
	g.mu.Unlock()
}

// SetDisabled disables or re-enables an id. Disabling cancels any
// pending timer, so neither action fires. Closed posts disable their
// surface this way.
func (g *Gate) SetDisabled(id int64, disabled bool) {
	g.mu.Lock()
	if disabled {
		g.disabled[id] = true
		if timer, ok := g.pending[id]; ok {
			delete(g.pending, id)
			timer.Stop()
		}
	} else {
		delete(g.disabled, id)
	}
	g.mu.Unlock()
}

// Reset cancels all pending timers without firing either action.
func (g *Gate) Reset() {
	g.mu.Lock()
	for id, timer := range g.pending {
		delete(g.pending, id)
		timer.Stop()
	}
	g.mu.Unlock()
}
