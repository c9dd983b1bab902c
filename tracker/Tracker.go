// Package tracker implements Trackers, which observe the sweeps of
// dynamic programming solvers
package tracker

import "github.com/samuelfneumann/gridmdp/sweep"

// Tracker observes every sweep a solver performs. Trackers must not
// modify the sweeps they observe.
type Tracker interface {
	Track(s sweep.Sweep)
}

// Func adapts an ordinary function to the Tracker interface
type Func func(s sweep.Sweep)

// Track calls f(s)
func (f Func) Track(s sweep.Sweep) {
	f(s)
}
