package client

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"columns/columns"

	"github.com/eiannone/keyboard"
)

// the mocks are written to by the client's goroutines and read by the
// test, so every field sits behind the mutex.
type mockGame struct {
	updateCh chan *columns.Snapshot

	mu     sync.Mutex
	start  bool
	stop   bool
	action columns.Action
}

func (m *mockGame) GetUpdate() <-chan *columns.Snapshot { return m.updateCh }
func (m *mockGame) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *mockGame) Start() {
	m.mu.Lock()
	m.start = true
	m.mu.Unlock()
	m.updateCh <- &columns.Snapshot{}
}
func (m *mockGame) Action(a columns.Action) {
	m.mu.Lock()
	m.action = a
	m.mu.Unlock()
	m.updateCh <- &columns.Snapshot{}
}
func (m *mockGame) sendGameOver() { m.updateCh <- &columns.Snapshot{GameOver: true} }
func (m *mockGame) started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.start
}
func (m *mockGame) stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}
func (m *mockGame) lastAction() columns.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.action
}
func (m *mockGame) clearStart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.start = false
}

type mockRender struct {
	mu            sync.Mutex
	localCount    int
	lobbyCount    int
	gameOverCount int
	resetCount    int
}

func (m *mockRender) local(*columns.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.localCount++
}
func (m *mockRender) lobby() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lobbyCount++
}
func (m *mockRender) gameOver() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gameOverCount++
}
func (m *mockRender) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetCount++
}
func (m *mockRender) locals() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.localCount
}
func (m *mockRender) lobbies() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbyCount
}
func (m *mockRender) gameOvers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gameOverCount
}

func TestClient(t *testing.T) {
	render := &mockRender{}
	game := &mockGame{updateCh: make(chan *columns.Snapshot)}
	kCh := make(chan keyboard.KeyEvent)
	cl := &Client{
		game:   game,
		render: render,
		logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})),
		kbCh:   kCh,
		lobby:  atomic.Bool{},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { cl.Start(); wg.Done() }()
	time.Sleep(10 * time.Millisecond)

	// the lobby is drawn over the empty frame on startup.
	if render.locals() != 1 || render.lobbies() != 1 {
		t.Errorf("wanted one frame and one lobby overlay on startup, got %d and %d", render.locals(), render.lobbies())
	}
	if !cl.lobby.Load() {
		t.Errorf("wanted the client to start in the lobby")
	}

	// spacebar starts a round and renders its first snapshot.
	wantLocalCount := 2
	kCh <- keyboard.KeyEvent{Key: keyboard.KeySpace}
	time.Sleep(10 * time.Millisecond)
	if !game.started() {
		t.Errorf("wanted game.Start() to be called")
	}
	if cl.lobby.Load() {
		t.Errorf("wanted lobby to be false after spacebar")
	}
	if render.locals() != wantLocalCount {
		t.Errorf("wanted render.local() to be called %d times, got %d", wantLocalCount, render.locals())
	}

	// while in game, keys map to engine actions.
	actions := []struct {
		key    keyboard.KeyEvent
		action columns.Action
	}{
		{key: keyboard.KeyEvent{Rune: 'a'}, action: columns.MoveLeft},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, action: columns.MoveLeft},
		{key: keyboard.KeyEvent{Rune: 'd'}, action: columns.MoveRight},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowRight}, action: columns.MoveRight},
		{key: keyboard.KeyEvent{Rune: 's'}, action: columns.SoftDrop},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowDown}, action: columns.SoftDrop},
		{key: keyboard.KeyEvent{Key: keyboard.KeySpace}, action: columns.Rotate},
	}
	for _, a := range actions {
		wantLocalCount++
		t.Run(fmt.Sprintf("key %v", a.key), func(t *testing.T) {
			kCh <- a.key
			time.Sleep(10 * time.Millisecond)
			if render.locals() != wantLocalCount {
				t.Errorf("wanted render.local() to be called %d times, got %d", wantLocalCount, render.locals())
			}
			if game.lastAction() != a.action {
				t.Errorf("wanted action %v, got %v", a.action, game.lastAction())
			}
		})
	}

	// 'r' restarts the round.
	game.clearStart()
	kCh <- keyboard.KeyEvent{Rune: 'r'}
	time.Sleep(10 * time.Millisecond)
	if !game.stopped() || !game.started() {
		t.Errorf("wanted a restart to stop and start the game, got stop %t start %t", game.stopped(), game.started())
	}
	wantLocalCount++

	// a game over snapshot drops the client back into the lobby.
	game.sendGameOver()
	time.Sleep(10 * time.Millisecond)
	wantLocalCount++
	if render.locals() != wantLocalCount {
		t.Errorf("wanted render.local() to be called %d times, got %d", wantLocalCount, render.locals())
	}
	if render.gameOvers() != 1 {
		t.Errorf("wanted the game over overlay drawn once, got %d", render.gameOvers())
	}
	if !cl.lobby.Load() {
		t.Errorf("wanted the client back in the lobby")
	}

	// 'q' quits from the lobby.
	kCh <- keyboard.KeyEvent{Rune: 'q'}
	wgDone := make(chan struct{})
	go func() { wg.Wait(); close(wgDone) }()
	select {
	case <-time.After(time.Second):
		t.Errorf("timeout waiting for quit")
	case <-wgDone:
	}
}
