// Package searchctl coordinates running a search: time budgeting and
// launching/stopping a pool of worker goroutines that share a
// transposition table.
package searchctl

import (
	"time"

	"go.uber.org/atomic"
)

// TimeControl budgets a single search by wall-clock deadline. Safe for
// concurrent use: Stop and Stopped may be called from any goroutine.
type TimeControl struct {
	deadline time.Time
	stopped  atomic.Bool
}

// NewTimeControl returns a control with no deadline; only an explicit
// Stop call or depth limit ends the search.
func NewTimeControl() *TimeControl {
	return &TimeControl{}
}

// NewDeadlineTimeControl returns a control that stops itself once budget
// elapses from now.
func NewDeadlineTimeControl(budget time.Duration) *TimeControl {
	return &TimeControl{deadline: time.Now().Add(budget)}
}

// Stop marks the search as halted. Idempotent.
func (tc *TimeControl) Stop() {
	tc.stopped.Store(true)
}

// Stopped reports whether the search should halt now, latching true once
// the deadline passes so repeated calls don't keep re-checking the clock
// after expiry.
func (tc *TimeControl) Stopped() bool {
	if tc.stopped.Load() {
		return true
	}
	if !tc.deadline.IsZero() && time.Now().After(tc.deadline) {
		tc.stopped.Store(true)
		return true
	}
	return false
}
