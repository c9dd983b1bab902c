package policy

import (
	"errors"
	"testing"

	"github.com/samuelfneumann/gridmdp/environment/gridworld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := ParseString("###\n#NE\n\n#SW\n#X?\n")
	require.NoError(t, err)

	r, c := p.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 12, p.Len())

	want := []gridworld.Action{
		gridworld.None, gridworld.None, gridworld.None,
		gridworld.None, gridworld.GoNorth, gridworld.GoEast,
		gridworld.None, gridworld.GoSouth, gridworld.GoWest,
		gridworld.None, gridworld.None, gridworld.None,
	}
	assert.Equal(t, want, p.Actions())
	assert.Equal(t, make([]float64, 12), p.Values())
}

func TestParseErrors(t *testing.T) {
	_, err := ParseString("")
	assert.True(t, gridworld.IsFormatError(err))
	assert.True(t, errors.Is(err, gridworld.ErrEmptyMap))

	_, err = ParseString("NN\nNNN\n")
	assert.True(t, gridworld.IsFormatError(err))
	assert.True(t, errors.Is(err, gridworld.ErrInconsistentWidth))
	assert.Contains(t, err.Error(), "parse policy")
}

func TestEqualIgnoresValues(t *testing.T) {
	a, err := ParseString("NES\n")
	require.NoError(t, err)
	b := a.Clone()
	b.SetValues([]float64{1, 2, 3})

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))

	b.SetAction(1, gridworld.GoWest)
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
}

func TestCloneDoesNotAlias(t *testing.T) {
	a, err := ParseString("NE\n")
	require.NoError(t, err)
	a.SetValues([]float64{-1, 4})

	b := a.Clone()
	b.SetAction(0, gridworld.GoSouth)
	b.Values()[1] = 10

	assert.Equal(t, gridworld.GoNorth, a.Action(0))
	assert.Equal(t, []float64{-1, 4}, a.Values())
}

func TestNewCopiesActions(t *testing.T) {
	actions := []gridworld.Action{gridworld.GoEast, gridworld.GoWest}
	p := New(actions, 2, 1)
	actions[0] = gridworld.GoNorth

	assert.Equal(t, gridworld.GoEast, p.Action(0))
	assert.Panics(t, func() { New(actions, 3, 1) })
}

func TestStringRoundTrip(t *testing.T) {
	text := "NEEN\nSWWS\n"
	p, err := ParseString(text)
	require.NoError(t, err)
	assert.Equal(t, text, p.String())

	again, err := ParseString(p.String())
	require.NoError(t, err)
	assert.True(t, p.Equal(again))
}

func TestStringMarksTerminalAndNone(t *testing.T) {
	p := New([]gridworld.Action{gridworld.None, gridworld.Terminal,
		gridworld.GoWest}, 3, 1)
	assert.Equal(t, ".XW\n", p.String())
}

func TestValueGrid(t *testing.T) {
	p, err := ParseString("NNN\nSSS\n")
	require.NoError(t, err)
	p.SetValues([]float64{0, 1, 2, 3, 4, 5})

	grid := p.ValueGrid()
	r, c := grid.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 5.0, grid.At(1, 2))
	assert.Equal(t, 1.0, grid.At(0, 1))
}

func TestActionForCell(t *testing.T) {
	m, err := gridworld.ParseString("# X\n")
	require.NoError(t, err)
	env := gridworld.New(m)

	p := NewUniform(env, gridworld.GoEast)
	cell, ok := env.CellAt(0, 1)
	require.True(t, ok)
	assert.Equal(t, gridworld.GoEast, p.ActionFor(cell))
	assert.Equal(t, 0.0, p.ValueFor(cell))
}
