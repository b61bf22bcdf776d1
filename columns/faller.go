package columns

// Directions a faller can move in.
const (
	Left  = -1
	Right = 1
)

const (
	// FallerLength is the number of jewels in a faller.
	FallerLength = 3
	// BufferSize is the number of hidden rows above the visible field.
	// A freshly spawned faller fits all but its bottom jewel in there.
	BufferSize = FallerLength - 1
	// MatchingLength is the minimum run of same-colored jewels that clears.
	MatchingLength = 3
)

// Faller is the active three-jewel piece under player control.
// rows holds the occupied rows top to bottom, always contiguous and
// increasing by one. colors is index-aligned with rows and cycles
// independently of them on rotation.
type Faller struct {
	col    int
	rows   [FallerLength]int
	colors [FallerLength]Color
}

func newFaller(col int, colors [FallerLength]Color) *Faller {
	f := &Faller{col: col, colors: colors}
	for i := range f.rows {
		f.rows[i] = i
	}
	return f
}

// move shifts the faller one column. Bounds and occupancy are the
// caller's job, see GameState.MoveFaller.
func (f *Faller) move(direction int) {
	f.col += direction
}

// drop moves the faller down one row.
func (f *Faller) drop() {
	for i := range f.rows {
		f.rows[i]++
	}
}

// rotate cycles the colors so the bottom jewel moves to the top.
// The occupied rows don't change.
func (f *Faller) rotate() {
	f.colors[0], f.colors[1], f.colors[2] = f.colors[2], f.colors[0], f.colors[1]
}

// bottom returns the row of the lowest jewel, the piece's leading edge.
func (f *Faller) bottom() int {
	return f.rows[FallerLength-1]
}

// color returns the color of the jewel occupying the given row.
func (f *Faller) color(row int) Color {
	return f.colors[row-f.rows[0]]
}

func (f *Faller) containsCell(row, col int) bool {
	return col == f.col && row >= f.rows[0] && row <= f.rows[FallerLength-1]
}
