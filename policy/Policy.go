// Package policy implements deterministic gridworld policies together
// with the state value estimates computed for them
package policy

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/gridmdp/environment/gridworld"
	"github.com/samuelfneumann/gridmdp/utils/matutils"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// Policy maps each state index to a single action and stores a value
// estimate for each state. Two policies are equal if they select the
// same actions; values are not compared.
type Policy struct {
	actions []gridworld.Action
	values  []float64
	width   int
	height  int
}

// New creates a new Policy for a width x height grid. The actions are
// copied, and all values start at zero.
func New(actions []gridworld.Action, width, height int) *Policy {
	if len(actions) != width*height {
		panic(fmt.Sprintf("new: %d actions cannot fill a (%d, %d) grid",
			len(actions), height, width))
	}

	return &Policy{
		actions: slices.Clone(actions),
		values:  make([]float64, len(actions)),
		width:   width,
		height:  height,
	}
}

// NewUniform creates a Policy which selects action in every state of env
func NewUniform(env *gridworld.GridWorld, action gridworld.Action) *Policy {
	actions := make([]gridworld.Action, env.NumStates())
	for i := range actions {
		actions[i] = action
	}
	return New(actions, env.Width(), env.Height())
}

// Len returns the number of states the Policy covers
func (p *Policy) Len() int {
	return len(p.actions)
}

// Dims returns the rows and columns of the grid the Policy was built for
func (p *Policy) Dims() (r, c int) {
	return p.height, p.width
}

// Width returns the number of columns of the Policy's grid
func (p *Policy) Width() int {
	return p.width
}

// Height returns the number of rows of the Policy's grid
func (p *Policy) Height() int {
	return p.height
}

// Action returns the action selected in state index
func (p *Policy) Action(index int) gridworld.Action {
	return p.actions[index]
}

// ActionFor returns the action selected in cell
func (p *Policy) ActionFor(cell gridworld.Cell) gridworld.Action {
	return p.actions[cell.Index()]
}

// SetAction sets the action selected in state index
func (p *Policy) SetAction(index int, action gridworld.Action) {
	p.actions[index] = action
}

// Actions returns a copy of the actions selected in each state
func (p *Policy) Actions() []gridworld.Action {
	return slices.Clone(p.actions)
}

// Values returns the state value estimates of the Policy. The returned
// slice is owned by the Policy.
func (p *Policy) Values() []float64 {
	return p.values
}

// ValueFor returns the value estimate of cell
func (p *Policy) ValueFor(cell gridworld.Cell) float64 {
	return p.values[cell.Index()]
}

// SetValues replaces the value estimates of the Policy with values,
// which the Policy takes ownership of
func (p *Policy) SetValues(values []float64) {
	if len(values) != len(p.actions) {
		panic(fmt.Sprintf("setValues: have %d values for %d states",
			len(values), len(p.actions)))
	}
	p.values = values
}

// ResetValues sets all value estimates to zero
func (p *Policy) ResetValues() {
	p.values = make([]float64, len(p.actions))
}

// ValueGrid returns the value estimates reshaped to the Policy's grid
func (p *Policy) ValueGrid() *mat.Dense {
	return matutils.Grid(p.values, p.height, p.width)
}

// Equal returns whether p and other select the same action in every
// state
func (p *Policy) Equal(other *Policy) bool {
	if other == nil {
		return false
	}
	return slices.Equal(p.actions, other.actions)
}

// Clone returns a deep copy of the Policy
func (p *Policy) Clone() *Policy {
	return &Policy{
		actions: slices.Clone(p.actions),
		values:  slices.Clone(p.values),
		width:   p.width,
		height:  p.height,
	}
}

// String returns the Policy in the policy file format. Terminal actions
// are written as 'X' and the absence of an action as '.'.
func (p *Policy) String() string {
	var b strings.Builder
	for i, action := range p.actions {
		b.WriteRune(action.Rune())
		if (i+1)%p.width == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
