// Package sweep implements records of the sweeps performed by dynamic
// programming solvers
package sweep

import (
	"fmt"
)

// StepType denotes the position of a Sweep in a run, either the first
// sweep, a middle sweep, or the last sweep. A run which stops after a
// single sweep reports that sweep as Last.
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// Procedure denotes which solver performed a Sweep
type Procedure int

const (
	Evaluation Procedure = iota
	ValueIteration
)

func (p Procedure) String() string {
	if p == ValueIteration {
		return "ValueIteration"
	}
	return "Evaluation"
}

// Sweep packages together a single sweep over all states
type Sweep struct {
	stepType StepType
	Procedure

	// Round is the policy iteration round the sweep belongs to, or 0
	// if the sweep was not part of policy iteration
	Round int

	Number    int     // 1-based sweep number within the run
	Delta     float64 // largest change of any state value
	Converged bool    // whether Delta fell below the threshold
	Values    []float64
}

// New returns a new Sweep. The Sweep takes ownership of values.
func New(t StepType, p Procedure, round, number int, delta float64,
	converged bool, values []float64) Sweep {
	return Sweep{t, p, round, number, delta, converged, values}
}

// Type returns the position of the Sweep in its run
func (s Sweep) Type() StepType {
	return s.stepType
}

// First returns whether a Sweep is the first of a run
func (s Sweep) First() bool {
	return s.stepType == First
}

// Mid returns whether a Sweep is a middle sweep of a run
func (s Sweep) Mid() bool {
	return s.stepType == Mid
}

// Last returns whether a Sweep is the last of a run
func (s Sweep) Last() bool {
	return s.stepType == Last
}

func (s Sweep) String() string {
	str := "Sweep | Procedure: %v  |  Round: %d  |  Type: %v  |  " +
		"Number: %d  |  Delta: %.4f"

	return fmt.Sprintf(str, s.Procedure, s.Round, s.stepType, s.Number,
		s.Delta)
}
