package dp

import (
	"github.com/samuelfneumann/gridmdp/environment/gridworld"
	"github.com/samuelfneumann/gridmdp/policy"
	"github.com/samuelfneumann/gridmdp/sweep"
)

// ValueIteration computes the optimal state values directly and returns
// the policy which is greedy with respect to them
//
// Values start at zero. Each sweep backs up every state which is neither
// a wall nor a goal with the best one-step lookahead value over the four
// movement actions. Sweeping stops when no value changes by Theta or
// more, or after MaxIterations sweeps.
//
// In the returned policy walls select None, goals select Terminal, and
// every other state selects the first action, in the order North, East,
// South, West, which achieves the best lookahead value.
func (s *Solver) ValueIteration() *policy.Policy {
	values, out := s.iterate(sweep.ValueIteration, 0,
		s.states(false), func(cell gridworld.Cell, vOld []float64) float64 {
			_, best := s.greedy(cell, vOld)
			return best
		})
	s.report("value iteration", 0, out, values)

	actions := make([]gridworld.Action, s.env.NumStates())
	for _, cell := range s.env.Cells() {
		switch {
		case cell.IsWall():
			actions[cell.Index()] = gridworld.None
		case cell.IsGoal():
			actions[cell.Index()] = gridworld.Terminal
		default:
			actions[cell.Index()], _ = s.greedy(cell, values)
		}
	}

	optimal := policy.New(actions, s.env.Width(), s.env.Height())
	optimal.SetValues(values)
	return optimal
}
