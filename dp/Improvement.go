package dp

import "github.com/samuelfneumann/gridmdp/policy"

// Improve returns a new policy which is greedy with respect to the
// values stored in p
//
// For each state which is neither a wall nor a goal, the new policy
// selects the movement action with the largest one-step lookahead value,
// preferring North, then East, South, and West on ties. Walls and goals
// keep the action p selects. The new policy carries a copy of p's
// values; they are not recomputed.
func (s *Solver) Improve(p *policy.Policy) (*policy.Policy, error) {
	if p.Len() != s.env.NumStates() {
		return nil, &DimensionError{Op: "improve", Policy: p.Len(),
			States: s.env.NumStates()}
	}

	improved := p.Clone()
	for _, cell := range s.states(false) {
		action, _ := s.greedy(cell, p.Values())
		improved.SetAction(cell.Index(), action)
	}
	return improved, nil
}
