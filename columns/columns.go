// Package columns contains the logic of the Columns game: a grid of
// settled jewels, a three-jewel faller under player control, and the
// turn state machine that drops, freezes, matches and cascades them.
package columns

// CellType classifies a cell for the presentation layer.
type CellType int

const (
	CellNone     CellType = iota // empty cell
	CellJewel                    // settled jewel
	CellFaller                   // jewel of the active faller
	CellLanded                   // faller jewel about to freeze
	CellMatching                 // jewel flagged for clearing
)

// GameState orchestrates the faller and the field across turns. It owns
// at most one active faller and exactly one field. gameOver is monotonic;
// a new game starts from a fresh GameState.
type GameState struct {
	faller   *Faller
	field    *Field
	gameOver bool
}

func NewGameState() *GameState { return &GameState{} }

// InitializeField gives the state a rows x cols field plus the hidden
// buffer rows above it. Must be called before any other operation.
func (g *GameState) InitializeField(rows, cols int) {
	g.field = newField(rows, cols, BufferSize)
}

// InitializeContents seeds the visible field from a grid of colors and
// resolves any matches the seed already contains.
func (g *GameState) InitializeContents(contents [][]Color) {
	for row := range contents {
		for col := range contents[row] {
			g.field.setColor(row+BufferSize, col, contents[row][col])
		}
	}
	g.updateMatching()
}

func (g *GameState) Rows() int       { return g.field.rows }
func (g *GameState) Cols() int       { return g.field.cols }
func (g *GameState) BufferSize() int { return g.field.bufferSize }

// Matching returns the cells flagged as matched but not yet cleared.
func (g *GameState) Matching() []Cell { return g.field.matching }

func (g *GameState) NoFaller() bool { return g.faller == nil }

func (g *GameState) GameOver() bool { return g.gameOver }

// GetType classifies a cell for drawing, composing faller presence,
// landed state, match membership and occupancy.
func (g *GameState) GetType(row, col int) CellType {
	switch {
	case g.faller != nil && g.faller.containsCell(row, col):
		if g.fallerLanded() {
			return CellLanded
		}
		return CellFaller
	case g.field.matchingContains(row, col):
		return CellMatching
	case g.field.colorAt(row, col) == "":
		return CellNone
	default:
		return CellJewel
	}
}

// Get returns the color of a cell, from the faller if it covers it.
func (g *GameState) Get(row, col int) Color {
	if g.faller != nil && g.faller.containsCell(row, col) {
		return g.faller.color(row)
	}
	return g.field.colorAt(row, col)
}

// Update advances the game one turn: the faller drops or freezes, the
// previous matches are cleared, the field compacts, matches are located
// again, and the loss condition is checked. Clearing must happen before
// compaction and compaction before the rescan or cascades break. A board
// whose buffer is occupied only loses once no match is pending, so a
// cascade in flight can still rescue it.
func (g *GameState) Update() {
	if g.faller != nil {
		if g.fallerLanded() {
			g.field.freeze(g.faller)
			g.faller = nil
		} else {
			g.faller.drop()
		}
	}
	g.updateMatching()
	if g.field.noMatching() && !g.field.emptyBuffer() {
		g.loseGame()
	}
}

// InitializeFaller spawns a faller in the given column. It only takes
// effect when no faller exists and no match is pending. Spawning into a
// full column loses the game instead.
func (g *GameState) InitializeFaller(col int, colors [FallerLength]Color) {
	if g.faller != nil || !g.field.noMatching() {
		return
	}
	if g.field.columnFull(col) {
		g.loseGame()
		return
	}
	g.faller = newFaller(col, colors)
}

// RotateFaller cycles the faller's colors if one exists.
func (g *GameState) RotateFaller() {
	if g.faller != nil && !g.gameOver {
		g.faller.rotate()
	}
}

// MoveFaller shifts the faller one column left or right. An illegal
// move is silently ignored.
func (g *GameState) MoveFaller(direction int) {
	if g.faller == nil || g.gameOver {
		return
	}
	if g.field.emptyRows(g.faller.col+direction, g.faller.rows[:]) {
		g.faller.move(direction)
	}
}

// EmptyColumns returns the columns that still have room in the visible
// field. The spawner picks the next faller's column from these.
func (g *GameState) EmptyColumns() []int {
	var cols []int
	for col := range g.field.cols {
		if !g.field.columnFull(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

func (g *GameState) fallerLanded() bool {
	return g.field.isLanded(g.faller.bottom(), g.faller.col)
}

// updateMatching runs one clear -> compact -> relocate cycle.
func (g *GameState) updateMatching() {
	g.field.clearMatching()
	g.field.dropAll()
	g.field.locateMatching()
}

func (g *GameState) loseGame() { g.gameOver = true }
