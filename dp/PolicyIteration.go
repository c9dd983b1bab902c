package dp

import "github.com/samuelfneumann/gridmdp/policy"

// PolicyIteration alternates policy evaluation and policy improvement,
// starting from a copy of initial, until improvement no longer changes
// any action. The returned policy carries the values of its final
// evaluation.
//
// There is no limit on the number of rounds; each evaluation is still
// bounded by MaxIterations sweeps. Sweeps reported to Trackers carry
// their 1-based round number.
func (s *Solver) PolicyIteration(initial *policy.Policy) (*policy.Policy,
	error) {
	current := initial.Clone()

	for round := 1; ; round++ {
		s.logger.WithField("round", round).Debug("policy iteration round")

		if _, err := s.evaluate(current, round); err != nil {
			return nil, err
		}

		improved, err := s.Improve(current)
		if err != nil {
			return nil, err
		}

		if improved.Equal(current) {
			s.logger.WithField("rounds", round).Info(
				"policy iteration converged")
			return improved, nil
		}
		current = improved
	}
}
