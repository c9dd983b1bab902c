// Package dp implements dynamic programming solvers for deterministic
// gridworlds: policy evaluation, policy improvement, policy iteration,
// and value iteration
package dp

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/gridmdp/environment/gridworld"
	"github.com/samuelfneumann/gridmdp/sweep"
	"github.com/samuelfneumann/gridmdp/tracker"
	"github.com/samuelfneumann/gridmdp/utils/floatutils"
	"github.com/samuelfneumann/gridmdp/utils/matutils"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Solver runs dynamic programming algorithms in a single GridWorld
//
// A Solver only reads its GridWorld, and every run allocates its own
// value buffers. Trackers must be registered before runs start.
type Solver struct {
	env      *gridworld.GridWorld
	config   Config
	trackers []tracker.Tracker
	logger   log.FieldLogger
}

// New creates a new Solver for env
func New(env *gridworld.GridWorld, config Config) (*Solver, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %w", err)
	}

	return &Solver{
		env:    env,
		config: config,
		logger: log.StandardLogger(),
	}, nil
}

// Env returns the GridWorld the Solver works in
func (s *Solver) Env() *gridworld.GridWorld {
	return s.env
}

// Config returns the configuration of the Solver
func (s *Solver) Config() Config {
	return s.config
}

// SetLogger sets the logger convergence messages are written to
func (s *Solver) SetLogger(logger log.FieldLogger) {
	s.logger = logger
}

// Register adds a Tracker which observes every subsequent sweep
func (s *Solver) Register(t tracker.Tracker) {
	s.trackers = append(s.trackers, t)
}

// outcome describes how a run of sweeps ended
type outcome struct {
	converged bool
	sweeps    int
	delta     float64 // largest value change of the final sweep
}

// backup computes the new value of a single state given the values of
// the previous sweep
type backup func(cell gridworld.Cell, vOld []float64) float64

// iterate performs synchronous sweeps of update over states until no
// value changes by Theta or more, or until MaxIterations sweeps have
// been done. Values of states not listed stay at zero. It returns the
// final values and the outcome of the run.
func (s *Solver) iterate(proc sweep.Procedure, round int,
	states []gridworld.Cell, update backup) ([]float64, outcome) {
	vNew := make([]float64, s.env.NumStates())
	vOld := make([]float64, s.env.NumStates())

	for i := 1; ; i++ {
		copy(vOld, vNew)
		s.sweep(states, vOld, vNew, update)

		delta := floats.Distance(vNew, vOld, math.Inf(1))
		converged := delta < s.config.Theta
		last := converged || i >= s.config.MaxIterations
		s.track(proc, round, i, delta, converged, last, vNew)

		if last {
			return vNew, outcome{converged: converged, sweeps: i,
				delta: delta}
		}
	}
}

// sweep writes update(cell, vOld) into vNew for every cell in states.
// Each state's backup reads only vOld, so the states can be split into
// disjoint ranges which are updated concurrently.
func (s *Solver) sweep(states []gridworld.Cell, vOld, vNew []float64,
	update backup) {
	workers := s.config.Workers
	if workers < 2 || len(states) < workers {
		for _, cell := range states {
			vNew[cell.Index()] = update(cell, vOld)
		}
		return
	}

	var g errgroup.Group
	chunk := (len(states) + workers - 1) / workers
	for start := 0; start < len(states); start += chunk {
		part := states[start:min(start+chunk, len(states))]
		g.Go(func() error {
			for _, cell := range part {
				vNew[cell.Index()] = update(cell, vOld)
			}
			return nil
		})
	}
	g.Wait()
}

// track sends a sweep to all registered Trackers
func (s *Solver) track(proc sweep.Procedure, round, number int,
	delta float64, converged, last bool, values []float64) {
	if len(s.trackers) == 0 {
		return
	}

	stepType := sweep.Mid
	switch {
	case last:
		stepType = sweep.Last
	case number == 1:
		stepType = sweep.First
	}

	step := sweep.New(stepType, proc, round, number, delta, converged,
		slices.Clone(values))
	for _, t := range s.trackers {
		t.Track(step)
	}
}

// actionValue returns the one-step lookahead value of taking action in
// cell given state values
func (s *Solver) actionValue(cell gridworld.Cell, action gridworld.Action,
	values []float64) float64 {
	next := s.env.ProposeMove(cell, action)
	return s.env.Reward(cell, next, action) +
		s.config.Gamma*values[next.Index()]
}

// greedy returns the movement action with the largest one-step
// lookahead value in cell, along with that value. Actions are tried in
// the order North, East, South, West, and the first maximum is kept.
func (s *Solver) greedy(cell gridworld.Cell,
	values []float64) (gridworld.Action, float64) {
	var q [len(gridworld.Moves)]float64
	for i, action := range gridworld.Moves {
		q[i] = s.actionValue(cell, action, values)
	}

	best, i := floatutils.ArgMax(q[:])
	return gridworld.Moves[i], best
}

// states returns the cells swept by a solver: every non-goal cell, and
// walls only if includeWalls is set
func (s *Solver) states(includeWalls bool) []gridworld.Cell {
	cells := make([]gridworld.Cell, 0, s.env.NumStates())
	for _, cell := range s.env.Cells() {
		if cell.IsGoal() || (cell.IsWall() && !includeWalls) {
			continue
		}
		cells = append(cells, cell)
	}
	return cells
}

// report logs the outcome of a run
func (s *Solver) report(name string, round int, out outcome,
	values []float64) {
	fields := log.Fields{"iterations": out.sweeps, "delta": out.delta}
	if round > 0 {
		fields["round"] = round
	}
	logger := s.logger.WithFields(fields)

	if out.converged {
		logger.Infof("%s converged", name)
	} else {
		logger.Warnf("%s reached max iterations (%d)", name,
			s.config.MaxIterations)
	}

	r, c := s.env.Dims()
	logger.Debugf("%s values:\n%s", name,
		matutils.Format(matutils.Grid(values, r, c)))
}
