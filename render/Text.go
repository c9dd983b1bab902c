// Package render draws solved gridworlds, either as text for a terminal
// or as a PNG heatmap
package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/gridmdp/environment/gridworld"
	"github.com/samuelfneumann/gridmdp/policy"
)

// cellWidth is the number of characters each cell takes up in Text
const cellWidth = 8

// Arrow returns the arrow drawn for an action, or a space if the action
// does not move
func Arrow(action gridworld.Action) string {
	switch action {
	case gridworld.GoNorth:
		return "↑"
	case gridworld.GoEast:
		return "→"
	case gridworld.GoSouth:
		return "↓"
	case gridworld.GoWest:
		return "←"
	default:
		return " "
	}
}

// Text writes one line per row of env to w. Walls are drawn as '#' and
// goals as 'X'. Every other cell shows its value followed by the arrow
// of the action p selects there. If p is nil, no arrows are drawn. If
// colour is set, walls are grey, goals green, and negative values red.
func Text(w io.Writer, env *gridworld.GridWorld, values []float64,
	p *policy.Policy, colour bool) error {
	if err := checkDims("text", env, values, p); err != nil {
		return err
	}
	au := aurora.NewAurora(colour)

	buf := bufio.NewWriter(w)
	for _, cell := range env.Cells() {
		switch {
		case cell.IsWall():
			fmt.Fprint(buf, au.BrightBlack(fmt.Sprintf("%*s", cellWidth, "#")))

		case cell.IsGoal():
			fmt.Fprint(buf, au.Green(fmt.Sprintf("%*s", cellWidth, "X")))

		default:
			arrow := " "
			if p != nil {
				arrow = Arrow(p.ActionFor(cell))
			}
			label := fmt.Sprintf("%6.1f %s", values[cell.Index()], arrow)
			if values[cell.Index()] < 0 {
				fmt.Fprint(buf, au.Red(label))
			} else {
				fmt.Fprint(buf, label)
			}
		}

		if cell.Col() == env.Width()-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.Flush()
}

// checkDims ensures values and p, if given, cover the states of env
func checkDims(op string, env *gridworld.GridWorld, values []float64,
	p *policy.Policy) error {
	if len(values) != env.NumStates() {
		return fmt.Errorf("%s: have %d values for %d states", op,
			len(values), env.NumStates())
	}
	if p != nil && p.Len() != env.NumStates() {
		return fmt.Errorf("%s: have policy over %d states for %d states", op,
			p.Len(), env.NumStates())
	}
	return nil
}
