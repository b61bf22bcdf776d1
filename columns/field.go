package columns

import "slices"

// Color identifies a jewel color. The empty string is an empty cell.
type Color string

// Colors is the alphabet the spawner draws from.
var Colors = []Color{"S", "T", "V", "W", "X", "Y", "Z"}

// Cell is a field coordinate. Row 0 is the top of the hidden buffer.
type Cell struct {
	Row, Col int
}

// Field is the persistent matrix of settled jewels. Rows [0,bufferSize)
// are the hidden buffer above the visible play area; a jewel left there
// after the board settles loses the game.
type Field struct {
	rows       int // includes the buffer
	cols       int
	bufferSize int
	cells      [][]Color
	matching   []Cell
}

func newField(rows, cols, bufferSize int) *Field {
	f := &Field{
		rows:       rows + bufferSize,
		cols:       cols,
		bufferSize: bufferSize,
	}
	f.cells = make([][]Color, f.rows)
	for row := range f.cells {
		f.cells[row] = make([]Color, f.cols)
	}
	return f
}

func (f *Field) colorAt(row, col int) Color     { return f.cells[row][col] }
func (f *Field) setColor(row, col int, c Color) { f.cells[row][col] = c }

// columnFull reports whether every visible cell of the column is occupied.
func (f *Field) columnFull(col int) bool {
	for row := f.bufferSize; row < f.rows; row++ {
		if f.cells[row][col] == "" {
			return false
		}
	}
	return true
}

// emptyBuffer reports whether the hidden rows hold no jewels.
func (f *Field) emptyBuffer() bool {
	for row := range f.bufferSize {
		for col := range f.cols {
			if f.cells[row][col] != "" {
				return false
			}
		}
	}
	return true
}

// emptyRows reports whether the column is in bounds and empty at every
// given row. Validates lateral faller moves.
func (f *Field) emptyRows(col int, rows []int) bool {
	if col < 0 || col > f.cols-1 {
		return false
	}
	for _, row := range rows {
		if f.cells[row][col] != "" {
			return false
		}
	}
	return true
}

// isLanded reports whether a cell sits on the floor or on a jewel.
func (f *Field) isLanded(row, col int) bool {
	return row == f.rows-1 || f.cells[row+1][col] != ""
}

// freeze commits every jewel of the faller into the field.
func (f *Field) freeze(fl *Faller) {
	for _, row := range fl.rows {
		f.cells[row][fl.col] = fl.color(row)
	}
}

// clearMatching empties every matched cell and resets the matching list.
func (f *Field) clearMatching() {
	for _, c := range f.matching {
		f.cells[c.Row][c.Col] = ""
	}
	f.matching = nil
}

// dropAll compacts every column toward the bottom, keeping the relative
// order of its jewels and leaving the empties on top. Runs after every
// clear so that cascades are possible.
func (f *Field) dropAll() {
	for col := range f.cols {
		write := f.rows - 1
		for row := f.rows - 1; row >= 0; row-- {
			if f.cells[row][col] != "" {
				f.cells[write][col] = f.cells[row][col]
				write--
			}
		}
		for row := write; row >= 0; row-- {
			f.cells[row][col] = ""
		}
	}
}

// locateMatching rescans the whole field and records every run of
// MatchingLength or more same-colored jewels. Every cell is tried as a
// run start, so four direction vectors cover both ways along each axis.
func (f *Field) locateMatching() {
	for row := range f.rows {
		for col := range f.cols {
			if f.cells[row][col] == "" {
				continue
			}
			f.addMatching(row, col, 0, 1)  // right
			f.addMatching(row, col, 1, 0)  // down
			f.addMatching(row, col, 1, 1)  // down-right
			f.addMatching(row, col, 1, -1) // down-left
		}
	}
}

// addMatching walks one direction from a starting cell while the color
// holds and the walk stays in bounds and below the buffer, recording
// the run if it is long enough.
func (f *Field) addMatching(row, col, dRow, dCol int) {
	var run []Cell
	base := f.cells[row][col]
	for row >= f.bufferSize && row < f.rows && col >= 0 && col < f.cols {
		if f.cells[row][col] != base {
			break
		}
		run = append(run, Cell{row, col})
		row += dRow
		col += dCol
	}
	if len(run) < MatchingLength {
		return
	}
	for _, c := range run {
		if !f.matchingContains(c.Row, c.Col) {
			f.matching = append(f.matching, c)
		}
	}
}

func (f *Field) matchingContains(row, col int) bool {
	return slices.Contains(f.matching, Cell{Row: row, Col: col})
}

func (f *Field) noMatching() bool { return len(f.matching) == 0 }
