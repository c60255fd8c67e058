/*
recalc.go - Debounced pricing recomputation

PURPOSE:
  As a user edits pricing inputs, every keystroke is a candidate
  recomputation. The Recalculator collapses rapid edits to the same
  pricing state within a short window into a single emitted
  recomputation. The emitted state reflects only the last-applied
  inputs: a superseded edit is simply never observed downstream.

SEMANTICS:
  - Last write wins: Update replaces any pending state wholesale.
  - Cancellation is implicit: a superseded timer never fires; there is
    no cleanup obligation.
  - No stale reads: the sink sees either nothing yet or the latest
    derived state, never an intermediate one.
  - Idempotence guard: if the derived state is equivalent to the last
    emitted one, nothing is emitted.

USAGE:
  rc := pricing.NewRecalculator(sink, 250*time.Millisecond)
  rc.Update(state) // repeatedly, as the form changes
  ...
  rc.Close()

SEE ALSO:
  - split.go: Rederive, the computation this schedules
  - status.go: the status emitted alongside the state
*/
package pricing

import (
	"sync"
	"time"
)

// DefaultDebounce is the edit-collapse window used when none is given.
const DefaultDebounce = 250 * time.Millisecond

// Sink receives the outcome of a debounced recomputation. It is called
// with the full current pricing state, not a diff.
type Sink interface {
	PricingRecomputed(state State, status PaymentStatus, warnings []Warning)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(state State, status PaymentStatus, warnings []Warning)

func (f SinkFunc) PricingRecomputed(state State, status PaymentStatus, warnings []Warning) {
	f(state, status, warnings)
}

// Recalculator debounces pricing-state edits and emits derived results.
type Recalculator struct {
	sink   Sink
	window time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *State
	last    *State // last emitted derived state
	closed  bool
}

// NewRecalculator creates a recalculator emitting to sink. A window of
// zero falls back to DefaultDebounce.
func NewRecalculator(sink Sink, window time.Duration) *Recalculator {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Recalculator{sink: sink, window: window}
}

// Update records an edited pricing state and (re)arms the debounce
// timer. Earlier pending states within the window are discarded.
func (r *Recalculator) Update(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	s = s.Normalize()
	r.pending = &s

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.window, r.fire)
}

// Flush forces any pending recomputation to emit immediately.
func (r *Recalculator) Flush() {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()
	r.fire()
}

// Close discards any pending recomputation and stops the timer.
func (r *Recalculator) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.pending = nil
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// fire runs the recomputation for the latest pending state. The sink is
// invoked outside the lock so it may call back into the recalculator.
func (r *Recalculator) fire() {
	r.mu.Lock()
	if r.closed || r.pending == nil {
		r.mu.Unlock()
		return
	}
	input := *r.pending
	r.pending = nil

	derived, result, _ := Rederive(input)
	status := derived.Status()

	if r.last != nil && r.last.Equivalent(derived) {
		// Unchanged outcome: no redundant downstream notification.
		r.mu.Unlock()
		return
	}
	emitted := derived
	r.last = &emitted
	sink := r.sink
	r.mu.Unlock()

	if sink != nil {
		sink.PricingRecomputed(derived, status, result.Warnings)
	}
}
