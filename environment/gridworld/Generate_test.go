package gridworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	m, err := Generate(6, 9, 0.3, 42)
	require.NoError(t, err)

	assert.Equal(t, 9, m.Width())
	assert.Equal(t, 6, m.Height())
	assert.Len(t, New(m).Goals(), 1)
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(8, 8, 0.25, 7)
	require.NoError(t, err)
	b, err := Generate(8, 8, 0.25, 7)
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
}

func TestGenerateWithoutWalls(t *testing.T) {
	m, err := Generate(4, 5, 0, 1)
	require.NoError(t, err)

	for _, cell := range m.Cells() {
		assert.False(t, cell.IsWall())
	}

	again, err := ParseString(m.String())
	require.NoError(t, err)
	assert.Equal(t, m.Cells(), again.Cells())
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(0, 3, 0.1, 1)
	assert.Error(t, err)

	_, err = Generate(3, 3, 1.0, 1)
	assert.Error(t, err)

	_, err = Generate(3, 3, -0.1, 1)
	assert.Error(t, err)
}
