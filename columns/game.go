package columns

import (
	"math"
	"math/rand/v2"
	"time"
)

// Action is a discrete player command forwarded into the game loop.
type Action string

const (
	MoveLeft  Action = "left"   // Moves the faller one column to the left.
	MoveRight Action = "right"  // Moves the faller one column to the right.
	SoftDrop  Action = "down"   // Advances the turn without waiting for the tick.
	Rotate    Action = "rotate" // Cycles the faller's colors bottom to top.
)

// Dimensions of the standard board.
const (
	VisibleRows = 13
	Cols        = 6
)

// Turn speed parameters. The interval is a frame budget at a nominal
// frame rate and shrinks logarithmically as the score grows, down to a
// floor of two frames.
const (
	framesPerSecond   = 30
	defaultSpeed      = 15
	accelerationSpeed = 0.2
)

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// CellView is one rendered cell of a Snapshot.
type CellView struct {
	Type  CellType
	Color Color
}

// Snapshot is a copy of the visible game state that is safe to read
// while the loop keeps running. Board row 0 is the top visible row; the
// hidden buffer is not included.
type Snapshot struct {
	Board      [][]CellView
	NextColors [FallerLength]Color
	Score      int
	HighScore  int
	Matched    int
	GameOver   bool
}

// Game drives a GameState from its own goroutine, turning ticker ticks
// and player actions into engine turns. It owns the score, the high
// score of the running process, and the next faller's colors.
type Game struct {
	updateCh chan *Snapshot
	actionCh chan Action
	doneCh   chan bool

	state      *GameState
	ticker     Ticker
	loopDone   chan struct{}
	score      int
	highScore  int
	nextColors [FallerLength]Color
}

func NewGame() *Game {
	return NewConfigurableGame(newWrappedTicker(1 * time.Hour))
}

func NewConfigurableGame(ticker Ticker) *Game {
	return &Game{
		updateCh: make(chan *Snapshot),
		actionCh: make(chan Action),
		doneCh:   make(chan bool, 1),
		ticker:   ticker,
	}
}

// Start resets the board and score and begins a new round. The caller
// consumes GetUpdate until a snapshot arrives with GameOver set.
// Restarting is safe: Start waits for the previous round's loop to
// exit before touching the state, so only one loop ever owns it.
func (g *Game) Start() {
	if g.loopDone != nil {
		<-g.loopDone
	}
	select {
	case <-g.doneCh: // a stop left over from a round that ended on its own
	default:
	}
	g.state = NewGameState()
	g.state.InitializeField(VisibleRows, Cols)
	g.score = 0
	g.queueNextFaller()
	g.loopDone = make(chan struct{})
	g.updateCh <- g.snapshot()
	go g.listen()
}

func (g *Game) Stop() {
	g.ticker.Stop()
	g.doneCh <- true
}

func (g *Game) Action(a Action) {
	g.actionCh <- a
}

// GetUpdate returns the channel the loop publishes snapshots on.
func (g *Game) GetUpdate() <-chan *Snapshot {
	return g.updateCh
}

func (g *Game) listen() {
	defer close(g.loopDone)
	g.ticker.Reset(g.setTime())
	for {
		select {
		case <-g.ticker.C():
			g.step()
		case a := <-g.actionCh:
			switch a {
			case MoveLeft:
				g.state.MoveFaller(Left)
			case MoveRight:
				g.state.MoveFaller(Right)
			case Rotate:
				g.state.RotateFaller()
			case SoftDrop: // doesn't wait for the tick to finish the turn
				g.step()
			}
		case <-g.doneCh:
			return
		}
		g.updateCh <- g.snapshot()
		if g.state.GameOver() {
			g.ticker.Stop()
			return
		}
	}
}

// step advances one turn: updates the engine, scores the newly located
// matches, and spawns the next faller once the board has settled.
func (g *Game) step() {
	g.state.Update()
	g.score += len(g.state.Matching())
	if g.score > g.highScore {
		g.highScore = g.score
	}
	if g.state.NoFaller() && len(g.state.Matching()) == 0 && !g.state.GameOver() {
		g.spawnFaller()
	}
	g.ticker.Reset(g.setTime())
}

func (g *Game) spawnFaller() {
	empty := g.state.EmptyColumns()
	if len(empty) == 0 {
		// nowhere to spawn; any column triggers the loss path.
		g.state.InitializeFaller(0, g.nextColors)
		return
	}
	g.state.InitializeFaller(empty[rand.IntN(len(empty))], g.nextColors)
	g.queueNextFaller()
}

func (g *Game) queueNextFaller() {
	for i := range g.nextColors {
		g.nextColors[i] = Colors[rand.IntN(len(Colors))]
	}
}

// setTime sets the duration for the ticker that advances the turn:
// frames = max(2, 15/ln(score*0.2+3)) at 30 frames per second.
func (g *Game) setTime() time.Duration {
	frames := math.Max(2, defaultSpeed/math.Log(float64(g.score)*accelerationSpeed+3))
	return time.Duration(frames * float64(time.Second) / framesPerSecond)
}

func (g *Game) snapshot() *Snapshot {
	board := make([][]CellView, g.state.Rows()-g.state.BufferSize())
	for row := range board {
		board[row] = make([]CellView, g.state.Cols())
		for col := range board[row] {
			fieldRow := row + g.state.BufferSize()
			board[row][col] = CellView{
				Type:  g.state.GetType(fieldRow, col),
				Color: g.state.Get(fieldRow, col),
			}
		}
	}
	return &Snapshot{
		Board:      board,
		NextColors: g.nextColors,
		Score:      g.score,
		HighScore:  g.highScore,
		Matched:    len(g.state.Matching()),
		GameOver:   g.state.GameOver(),
	}
}
