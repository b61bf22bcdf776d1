package columns

import (
	"sync"
	"time"
)

// MockTicker is a manual implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}

// NewTestGame creates a game around an existing state with a manual
// ticker and a fixed next-faller queue, so turns only advance when the
// test says so.
func NewTestGame(state *GameState) (*Game, *MockTicker) {
	ticker := NewMockTicker()
	return &Game{
		updateCh:   make(chan *Snapshot),
		actionCh:   make(chan Action),
		doneCh:     make(chan bool, 1),
		loopDone:   make(chan struct{}),
		state:      state,
		ticker:     ticker,
		nextColors: [FallerLength]Color{"S", "T", "V"},
	}, ticker
}

// NewTestState creates a GameState with a standard empty field.
func NewTestState() *GameState {
	g := NewGameState()
	g.InitializeField(VisibleRows, Cols)
	return g
}

// NewTestSnapshot returns a deterministic snapshot with a few settled
// jewels, for renderer tests.
func NewTestSnapshot() *Snapshot {
	state := NewTestState()
	state.InitializeContents([][]Color{
		{"", "", "", "", "", ""},
		{"S", "", "", "", "", "T"},
	})
	state.InitializeFaller(2, [FallerLength]Color{"V", "W", "X"})
	g := &Game{state: state, nextColors: [FallerLength]Color{"S", "T", "V"}, score: 42, highScore: 99}
	return g.snapshot()
}
