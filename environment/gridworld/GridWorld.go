// Package gridworld implements deterministic 2D gridworld environments
// built from text maps
package gridworld

import (
	"fmt"
	"strings"
)

// GridWorld represents a deterministic gridworld environment
//
// The GridWorld wraps an immutable Map and derives from it the
// transition and reward functions used by dynamic programming solvers.
// It holds no state besides the Map and is safe for concurrent use.
type GridWorld struct {
	*Map
}

// New creates a new gridworld over map m
func New(m *Map) *GridWorld {
	return &GridWorld{m}
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.height, g.width
}

// NumStates returns the number of states, one per cell
func (g *GridWorld) NumStates() int {
	return len(g.cells)
}

// Goals returns the goal cells of the GridWorld
func (g *GridWorld) Goals() []Cell {
	var goals []Cell
	for _, cell := range g.cells {
		if cell.IsGoal() {
			goals = append(goals, cell)
		}
	}
	return goals
}

// ProposeMove returns the cell reached by taking action from cell
//
// Goal cells are absorbing. A move which would leave the map or enter a
// wall is illegal, and the agent stays in its current cell. Actions
// which are not movements leave the agent where it is.
func (g *GridWorld) ProposeMove(cell Cell, action Action) Cell {
	if cell.IsGoal() {
		return cell
	}

	dRow, dCol := action.Delta()
	if dRow == 0 && dCol == 0 {
		return cell
	}

	next, ok := g.CellAt(cell.row+dRow, cell.col+dCol)
	if !ok || next.IsWall() {
		return cell
	}
	return next
}

// TransitionProbability returns the probability of moving from cell from
// to cell to when taking action. Since the GridWorld is deterministic,
// this is always either 0 or 1.
//
// Transitions out of a goal are decided before any move is proposed: a
// goal only ever transitions to itself.
func (g *GridWorld) TransitionProbability(from, to Cell, action Action) float64 {
	if from.IsGoal() {
		if to.index == from.index {
			return 1.0
		}
		return 0.0
	}

	if g.ProposeMove(from, action).index == to.index {
		return 1.0
	}
	return 0.0
}

func (g *GridWorld) String() string {
	goals := make([]string, 0)
	for _, goal := range g.Goals() {
		goals = append(goals, fmt.Sprintf("(%d, %d)", goal.row, goal.col))
	}

	str := "GridWorld | Goals: [%v]  |  Bounds: (%d, %d)"
	return fmt.Sprintf(str, strings.Join(goals, " "), g.height, g.width)
}
