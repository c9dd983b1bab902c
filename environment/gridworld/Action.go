package gridworld

// Action is a directive an agent can follow in a GridWorld. The four
// movement actions are enumerated in the order North, East, South, West,
// which is also the tie-breaking order used by the greedy solvers.
type Action int

const (
	// None is the absence of an action, the agent stays where it is
	None Action = iota
	GoNorth
	GoEast
	GoSouth
	GoWest

	// Terminal marks goal states in extracted policies. It causes no
	// movement, just like None.
	Terminal
)

// Moves lists the movement actions in tie-breaking order
var Moves = [...]Action{GoNorth, GoEast, GoSouth, GoWest}

// Delta returns the (row, col) displacement of the action
func (a Action) Delta() (int, int) {
	switch a {
	case GoNorth:
		return -1, 0
	case GoEast:
		return 0, 1
	case GoSouth:
		return 1, 0
	case GoWest:
		return 0, -1
	default:
		return 0, 0
	}
}

// IsMove returns whether the action moves the agent
func (a Action) IsMove() bool {
	return a >= GoNorth && a <= GoWest
}

func (a Action) String() string {
	switch a {
	case GoNorth:
		return "GoNorth"
	case GoEast:
		return "GoEast"
	case GoSouth:
		return "GoSouth"
	case GoWest:
		return "GoWest"
	case Terminal:
		return "Terminal"
	default:
		return "None"
	}
}

// Rune returns the policy file character for the action
func (a Action) Rune() rune {
	switch a {
	case GoNorth:
		return 'N'
	case GoEast:
		return 'E'
	case GoSouth:
		return 'S'
	case GoWest:
		return 'W'
	case Terminal:
		return 'X'
	default:
		return '.'
	}
}

// ActionOf maps a policy file character to an Action. Characters other
// than N, E, S, and W map to None, including those marking walls and
// goals.
func ActionOf(r rune) Action {
	switch r {
	case 'N':
		return GoNorth
	case 'E':
		return GoEast
	case 'S':
		return GoSouth
	case 'W':
		return GoWest
	default:
		return None
	}
}
