package gridworld

import "fmt"

// CellKind denotes what occupies a single position of a Map
type CellKind int

const (
	Empty CellKind = iota
	Wall
	Goal
)

func (k CellKind) String() string {
	switch k {
	case Wall:
		return "Wall"
	case Goal:
		return "Goal"
	default:
		return "Empty"
	}
}

// Rune returns the map file character which encodes the kind. Empty
// cells are written as '.' rather than a space so that rows holding only
// empty cells are not dropped as blank lines when read back.
func (k CellKind) Rune() rune {
	switch k {
	case Wall:
		return '#'
	case Goal:
		return 'X'
	default:
		return '.'
	}
}

// kindOf maps a map file character to a CellKind. Any character other
// than a wall or goal marker is an empty cell.
func kindOf(r rune) CellKind {
	switch r {
	case '#':
		return Wall
	case 'X':
		return Goal
	default:
		return Empty
	}
}

// Cell is a single position in a Map. A Cell's index is its position in
// the flattened map, row*width + col, and is used as the state index by
// all solvers.
type Cell struct {
	row, col int
	kind     CellKind
	index    int
}

// Row returns the row of the cell
func (c Cell) Row() int {
	return c.row
}

// Col returns the column of the cell
func (c Cell) Col() int {
	return c.col
}

// Coords returns the (row, col) coordinates of the cell
func (c Cell) Coords() (int, int) {
	return c.row, c.col
}

// Index returns the state index of the cell
func (c Cell) Index() int {
	return c.index
}

// Kind returns what occupies the cell
func (c Cell) Kind() CellKind {
	return c.kind
}

func (c Cell) IsWall() bool  { return c.kind == Wall }
func (c Cell) IsGoal() bool  { return c.kind == Goal }
func (c Cell) IsEmpty() bool { return c.kind == Empty }

func (c Cell) String() string {
	return fmt.Sprintf("Cell | Index: %d  |  Coords: (%d, %d)  |  Kind: %v",
		c.index, c.row, c.col, c.kind)
}
