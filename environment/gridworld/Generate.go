package gridworld

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Generate returns a random rows x cols map holding exactly one goal.
// The goal is placed uniformly at random, and every other cell is a wall
// with probability wallProb. Maps generated with the same arguments are
// identical.
func Generate(rows, cols int, wallProb float64, seed uint64) (*Map, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("generate: dimensions must be positive, "+
			"have (%d, %d)", rows, cols)
	}
	if wallProb < 0 || wallProb >= 1 {
		return nil, fmt.Errorf("generate: wall probability must be in "+
			"[0, 1), have %v", wallProb)
	}

	source := rand.NewSource(seed)
	goal := rand.New(source).Intn(rows * cols)
	walls := distuv.Bernoulli{P: wallProb, Src: source}

	kinds := make([][]CellKind, rows)
	for r := range kinds {
		kinds[r] = make([]CellKind, cols)
		for c := range kinds[r] {
			switch {
			case r*cols+c == goal:
				kinds[r][c] = Goal
			case walls.Rand() == 1:
				kinds[r][c] = Wall
			}
		}
	}

	return NewMap(kinds)
}
