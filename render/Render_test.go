package render

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/gridmdp/environment/gridworld"
	"github.com/samuelfneumann/gridmdp/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corridor(t *testing.T) (*gridworld.GridWorld, *policy.Policy) {
	t.Helper()
	m, err := gridworld.ParseString("#  X")
	require.NoError(t, err)
	p, err := policy.ParseString(".EEX")
	require.NoError(t, err)
	p.SetValues([]float64{0, 0, 1, 0})
	return gridworld.New(m), p
}

func TestArrow(t *testing.T) {
	assert.Equal(t, "↑", Arrow(gridworld.GoNorth))
	assert.Equal(t, "→", Arrow(gridworld.GoEast))
	assert.Equal(t, "↓", Arrow(gridworld.GoSouth))
	assert.Equal(t, "←", Arrow(gridworld.GoWest))
	assert.Equal(t, " ", Arrow(gridworld.None))
	assert.Equal(t, " ", Arrow(gridworld.Terminal))
}

func TestText(t *testing.T) {
	env, p := corridor(t)

	var b bytes.Buffer
	require.NoError(t, Text(&b, env, p.Values(), p, false))
	assert.Equal(t, "       #   0.0 →   1.0 →       X\n", b.String())
}

func TestTextWithoutPolicy(t *testing.T) {
	env, _ := corridor(t)

	var b bytes.Buffer
	require.NoError(t, Text(&b, env, []float64{0, -2, 1, 0}, nil, false))
	assert.Equal(t, "       #  -2.0     1.0         X\n", b.String())
}

func TestTextColour(t *testing.T) {
	env, p := corridor(t)

	var b bytes.Buffer
	require.NoError(t, Text(&b, env, []float64{0, -2, 1, 0}, p, true))
	assert.Contains(t, b.String(), "\x1b[")
	assert.Contains(t, b.String(), "-2.0")
}

func TestTextRows(t *testing.T) {
	m, err := gridworld.ParseString("###\n# X\n###")
	require.NoError(t, err)
	env := gridworld.New(m)

	var b bytes.Buffer
	require.NoError(t, Text(&b, env, make([]float64, 9), nil, false))
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestTextDimensionMismatch(t *testing.T) {
	env, p := corridor(t)

	var b bytes.Buffer
	assert.Error(t, Text(&b, env, []float64{0, 1}, p, false))
	assert.Error(t, Text(&b, env, make([]float64, 4),
		policy.New(make([]gridworld.Action, 2), 2, 1), false))
}

func TestImage(t *testing.T) {
	env, p := corridor(t)

	img, err := Image(env, p.Values(), p, "corridor")
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 4*CellSize, bounds.Dx())
	assert.Equal(t, CellSize+TitleHeight, bounds.Dy())

	// Walls are filled black
	r, g, b, _ := img.At(CellSize/4, TitleHeight+CellSize/4).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{r, g, b})
}

func TestSavePNG(t *testing.T) {
	env, p := corridor(t)
	path := filepath.Join(t.TempDir(), "values.png")

	require.NoError(t, SavePNG(path, env, p.Values(), p, "corridor"))
	assert.FileExists(t, path)
}

func TestHeat(t *testing.T) {
	assert.Equal(t, heatGradient[0], heat(-3, -3, 1))
	assert.Equal(t, heatGradient[len(heatGradient)-1], heat(1, -3, 1))
	assert.Equal(t, heatGradient[len(heatGradient)-1], heat(5, 5, 5))
	assert.Equal(t, heatGradient[2], heat(-1, -3, 1))
}
