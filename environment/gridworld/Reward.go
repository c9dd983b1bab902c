package gridworld

const (
	// GoalReward is received when a transition ends in a goal cell
	GoalReward float64 = 1.0

	// StepReward is received for every other transition, including
	// bumping into a wall
	StepReward float64 = -1.0
)

// Reward returns the reward for the transition (from, action, to). The
// reward depends only on the kind of the destination cell.
func (g *GridWorld) Reward(from, to Cell, action Action) float64 {
	if to.IsGoal() {
		return GoalReward
	}
	return StepReward
}
