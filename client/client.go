// Package client runs the terminal front end of the game: it forwards
// keyboard events into the engine and draws the snapshots the engine
// publishes back.
package client

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"columns/columns"

	"github.com/eiannone/keyboard"
)

type columnsGame interface {
	Start()
	Stop()
	Action(columns.Action)
	GetUpdate() <-chan *columns.Snapshot
}

type renderer interface {
	local(*columns.Snapshot)
	lobby()
	gameOver()
	reset()
}

type Client struct {
	game   columnsGame
	render renderer
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
	lobby  atomic.Bool
}

func New(l *slog.Logger) (*Client, error) {
	r, err := newRender(l)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		game:   columns.NewGame(),
		render: r,
		logger: l,
		kbCh:   kb,
	}, nil
}

// Start draws the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.lobby.Store(true)
	c.render.local(nil)
	c.render.lobby()
	go c.listenGame()
	var wg sync.WaitGroup
	wg.Add(1)
	go c.listenKB(&wg)
	wg.Wait()
}

// listenGame draws every snapshot the engine publishes. It serves every
// round the player starts, dropping back to the lobby on game over.
func (c *Client) listenGame() {
	for u := range c.game.GetUpdate() {
		c.render.local(u)
		if u.GameOver {
			c.lobby.Store(true)
			c.render.gameOver()
			c.logger.Info("game over", slog.Int("score", u.Score), slog.Int("highScore", u.HighScore))
		}
	}
}

func (c *Client) listenKB(wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		if c.lobby.Load() {
			switch {
			case event.Key == keyboard.KeySpace:
				c.lobby.Store(false)
				c.render.reset()
				go c.game.Start()
			case event.Rune == 'q':
				return
			}
			continue
		}
		switch {
		case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
			c.game.Action(columns.MoveLeft)
		case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
			c.game.Action(columns.MoveRight)
		case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
			c.game.Action(columns.SoftDrop)
		case event.Key == keyboard.KeySpace:
			c.game.Action(columns.Rotate)
		case event.Rune == 'r':
			c.game.Stop()
			c.render.reset()
			go c.game.Start()
		}
	}
}
