package gridworld

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// MaxRowBytes is the longest row, in bytes, which ScanRows accepts
const MaxRowBytes = 1 << 20

// Map is an immutable rectangular grid of cells. Cells are stored
// flattened in row-major order so that the cell at (row, col) lives at
// index row*width + col.
type Map struct {
	cells  []Cell
	width  int
	height int
}

// NewMap creates a Map from rows of cell kinds. All rows must have the
// same, non-zero length.
func NewMap(rows [][]CellKind) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &FormatError{Op: "new map", Err: ErrEmptyMap}
	}

	width, height := len(rows[0]), len(rows)
	cells := make([]Cell, 0, width*height)
	for r, row := range rows {
		if len(row) != width {
			return nil, &FormatError{Op: "new map", Line: r + 1,
				Err: ErrInconsistentWidth}
		}
		for c, kind := range row {
			cells = append(cells, Cell{r, c, kind, len(cells)})
		}
	}

	return &Map{cells, width, height}, nil
}

// ScanRows splits grid text into its retained rows. Lines which are
// blank after trimming whitespace are discarded; retained lines keep all
// of their characters. Every retained row must have as many characters
// as the first, otherwise a *FormatError with the given op is returned.
// A row longer than MaxRowBytes is also reported as a *FormatError.
func ScanRows(r io.Reader, op string) ([][]rune, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxRowBytes)
	scanner.Split(bufio.ScanLines)

	var rows [][]rune
	width, line := 0, 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		if len(rows) == 0 {
			width = utf8.RuneCountInString(text)
		} else if n := utf8.RuneCountInString(text); n != width {
			return nil, &FormatError{Op: op, Line: line,
				Err: fmt.Errorf("%w: want %d, have %d", ErrInconsistentWidth,
					width, n)}
		}
		rows = append(rows, []rune(text))
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &FormatError{Op: op, Line: line + 1, Err: err}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(rows) == 0 {
		return nil, &FormatError{Op: op, Err: ErrEmptyMap}
	}
	return rows, nil
}

// Parse reads a map. Each character of a retained row is a cell: '#' is
// a wall, 'X' is a goal, and anything else is empty.
func Parse(r io.Reader) (*Map, error) {
	rows, err := ScanRows(r, "parse map")
	if err != nil {
		return nil, err
	}

	kinds := make([][]CellKind, len(rows))
	for i, row := range rows {
		kinds[i] = make([]CellKind, len(row))
		for j, char := range row {
			kinds[i][j] = kindOf(char)
		}
	}
	return NewMap(kinds)
}

// ParseString parses a map from a string
func ParseString(s string) (*Map, error) {
	return Parse(strings.NewReader(s))
}

// LoadMap parses the map stored in a file
func LoadMap(path string) (*Map, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// CellAt returns the cell at (row, col). If the coordinates fall outside
// the map, ok is false.
func (m *Map) CellAt(row, col int) (cell Cell, ok bool) {
	if row < 0 || row >= m.height || col < 0 || col >= m.width {
		return Cell{}, false
	}
	return m.cells[row*m.width+col], true
}

// Cell returns the cell with the given state index
func (m *Map) Cell(index int) Cell {
	return m.cells[index]
}

// Cells returns all cells in index order. The returned slice must not be
// modified.
func (m *Map) Cells() []Cell {
	return m.cells
}

// Width returns the number of columns in the map
func (m *Map) Width() int {
	return m.width
}

// Height returns the number of rows in the map
func (m *Map) Height() int {
	return m.height
}

// NumCells returns the number of cells in the map
func (m *Map) NumCells() int {
	return len(m.cells)
}

// String returns the map in the map file format
func (m *Map) String() string {
	var b strings.Builder
	for i, cell := range m.cells {
		b.WriteRune(cell.kind.Rune())
		if (i+1)%m.width == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
