package render

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/gridmdp/environment/gridworld"
	"github.com/samuelfneumann/gridmdp/policy"
	"gonum.org/v1/gonum/floats"
)

const (
	// CellSize is the side length of a cell in pixels
	CellSize = 64

	// TitleHeight is the height in pixels of the title bar
	TitleHeight = 32
)

var (
	wallColour   = color.RGBA{0, 0, 0, 255}
	goalColour   = color.RGBA{46, 160, 67, 255}
	labelColour  = color.RGBA{255, 255, 255, 255}
	titleColour  = color.RGBA{20, 20, 20, 255}
	background   = color.RGBA{245, 245, 245, 255}
	gridColour   = color.RGBA{90, 90, 90, 255}
	heatGradient = []color.RGBA{
		{68, 1, 84, 255},
		{59, 82, 139, 255},
		{33, 145, 140, 255},
		{94, 201, 98, 255},
		{253, 231, 37, 255},
	}
)

// Image draws a heatmap of values over env with the action of p drawn
// as an arrow in each cell. Colours are scaled between the smallest and
// largest value of cells which are neither walls nor goals. Walls are
// black and goals green. If p is nil, no arrows are drawn.
func Image(env *gridworld.GridWorld, values []float64, p *policy.Policy,
	title string) (image.Image, error) {
	if err := checkDims("image", env, values, p); err != nil {
		return nil, err
	}

	width := env.Width() * CellSize
	height := env.Height()*CellSize + TitleHeight
	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()

	dc.SetColor(titleColour)
	dc.DrawStringAnchored(title, float64(width)/2, TitleHeight/2, 0.5, 0.5)

	lo, hi := valueRange(env, values)
	for _, cell := range env.Cells() {
		x := float64(cell.Col() * CellSize)
		y := float64(cell.Row()*CellSize + TitleHeight)

		dc.DrawRectangle(x, y, CellSize, CellSize)
		switch {
		case cell.IsWall():
			dc.SetColor(wallColour)
		case cell.IsGoal():
			dc.SetColor(goalColour)
		default:
			dc.SetColor(heat(values[cell.Index()], lo, hi))
		}
		dc.FillPreserve()
		dc.SetColor(gridColour)
		dc.SetLineWidth(1)
		dc.Stroke()

		if cell.IsWall() {
			continue
		}

		cx, cy := x+CellSize/2, y+CellSize/2
		dc.SetColor(labelColour)
		if cell.IsGoal() {
			dc.DrawStringAnchored("X", cx, cy, 0.5, 0.5)
			continue
		}
		dc.DrawStringAnchored(formatValue(values[cell.Index()]), cx,
			y+CellSize*0.8, 0.5, 0.5)
		if p != nil {
			drawArrow(dc, p.ActionFor(cell), cx, y+CellSize*0.4)
		}
	}

	return dc.Image(), nil
}

// SavePNG draws the heatmap of Image and saves it to path
func SavePNG(path string, env *gridworld.GridWorld, values []float64,
	p *policy.Policy, title string) error {
	img, err := Image(env, values, p, title)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}

// valueRange returns the smallest and largest values of cells which are
// neither walls nor goals
func valueRange(env *gridworld.GridWorld, values []float64) (lo, hi float64) {
	open := make([]float64, 0, len(values))
	for _, cell := range env.Cells() {
		if cell.IsEmpty() {
			open = append(open, values[cell.Index()])
		}
	}
	if len(open) == 0 {
		return 0, 0
	}
	return floats.Min(open), floats.Max(open)
}

// heat linearly interpolates the heat gradient at value, scaled between
// lo and hi
func heat(value, lo, hi float64) color.RGBA {
	t := 1.0
	if hi > lo {
		t = (value - lo) / (hi - lo)
	}
	t = math.Max(0, math.Min(1, t))

	pos := t * float64(len(heatGradient)-1)
	i := int(pos)
	if i >= len(heatGradient)-1 {
		return heatGradient[len(heatGradient)-1]
	}
	frac := pos - float64(i)
	from, to := heatGradient[i], heatGradient[i+1]
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + frac*(float64(b)-float64(a))))
	}
	return color.RGBA{mix(from.R, to.R), mix(from.G, to.G), mix(from.B, to.B),
		255}
}

// formatValue formats a value label for a cell
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// drawArrow draws the arrow of a movement action centred at (cx, cy)
func drawArrow(dc *gg.Context, action gridworld.Action, cx, cy float64) {
	if !action.IsMove() {
		return
	}
	dRow, dCol := action.Delta()
	dx, dy := float64(dCol), float64(dRow)

	const length, head = CellSize * 0.3, CellSize * 0.1
	tipX, tipY := cx+dx*length/2, cy+dy*length/2
	tailX, tailY := cx-dx*length/2, cy-dy*length/2

	dc.SetLineWidth(2)
	dc.DrawLine(tailX, tailY, tipX, tipY)
	dc.Stroke()

	// Perpendicular to the arrow
	px, py := -dy, dx
	dc.MoveTo(tipX+dx*head, tipY+dy*head)
	dc.LineTo(tipX+px*head, tipY+py*head)
	dc.LineTo(tipX-px*head, tipY-py*head)
	dc.ClosePath()
	dc.Fill()
}
