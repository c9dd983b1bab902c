package dp

import (
	"github.com/samuelfneumann/gridmdp/environment/gridworld"
	"github.com/samuelfneumann/gridmdp/policy"
	"github.com/samuelfneumann/gridmdp/sweep"
)

// Evaluate computes the value of each state when following p. The
// values are written into p and also returned.
//
// Every state except goals is swept, walls included, using the action p
// selects for it. Goal values stay at zero. Evaluation always starts
// from all-zero values, and stops when no value changes by Theta or more
// in a sweep or after MaxIterations sweeps. Reaching the sweep cap is
// logged but is not an error.
//
// A *DimensionError is returned if p does not cover exactly the states
// of the Solver's GridWorld.
func (s *Solver) Evaluate(p *policy.Policy) ([]float64, error) {
	return s.evaluate(p, 0)
}

func (s *Solver) evaluate(p *policy.Policy, round int) ([]float64, error) {
	if p.Len() != s.env.NumStates() {
		return nil, &DimensionError{Op: "evaluate", Policy: p.Len(),
			States: s.env.NumStates()}
	}

	values, out := s.iterate(sweep.Evaluation, round,
		s.states(true), func(cell gridworld.Cell, vOld []float64) float64 {
			return s.actionValue(cell, p.ActionFor(cell), vOld)
		})
	s.report("policy evaluation", round, out, values)

	p.SetValues(values)
	return values, nil
}
