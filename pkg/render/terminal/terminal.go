// Package terminal is the full-screen text client. It draws frames on a
// tcell screen and turns key presses into intents.
package terminal

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-spacerun/pkg/config"
	"github.com/opd-ai/go-spacerun/pkg/engine"
	"github.com/opd-ai/go-spacerun/pkg/logging"
	"github.com/opd-ai/go-spacerun/pkg/physics"
	"github.com/opd-ai/go-spacerun/pkg/render"
)

// Controller is the part of the game runner the client drives
type Controller interface {
	Submit(intent engine.Intent) bool
	Restart() bool
}

var (
	styleField    = tcell.StyleDefault
	styleShip     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleCrashed  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleMissile  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleRock     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleRockHit  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWarning  = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	styleGameOver = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// Client draws on screen and implements engine.Sink. The bottom row holds
// the HUD; the rest shows the whole field scaled to fit.
type Client struct {
	screen      tcell.Screen
	controller  Controller
	fieldWidth  float64
	fieldHeight float64
	logger      *logging.Logger

	mu      sync.Mutex
	frame   engine.Frame
	hud     engine.HUD
	summary *engine.Summary
}

// New creates a client on an initialized screen
func New(screen tcell.Screen, controller Controller, field config.FieldConfig, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	screen.SetStyle(styleField)
	screen.HideCursor()
	return &Client{
		screen:      screen,
		controller:  controller,
		fieldWidth:  field.Width,
		fieldHeight: field.Height,
		logger:      logger,
	}
}

// Frame implements engine.Sink
func (c *Client) Frame(frame engine.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.summary != nil && frame.SessionID != c.summary.SessionID {
		c.summary = nil
	}
	c.frame = frame
	c.draw()
	return nil
}

// HUD implements engine.Sink
func (c *Client) HUD(hud engine.HUD) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hud = hud
	return nil
}

// GameOver implements engine.Sink
func (c *Client) GameOver(summary engine.Summary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = &summary
	c.draw()
	return nil
}

// cell maps a field position to a screen cell
func (c *Client) cell(pos physics.Vector2D) (int, int) {
	cols, rows := c.screen.Size()
	rows--
	if cols <= 0 || rows <= 0 {
		return -1, -1
	}
	return int(pos.X * float64(cols) / c.fieldWidth), int(pos.Y * float64(rows) / c.fieldHeight)
}

func (c *Client) put(x, y int, r rune, style tcell.Style) {
	cols, rows := c.screen.Size()
	if x >= 0 && x < cols && y >= 0 && y < rows-1 {
		c.screen.SetContent(x, y, r, nil, style)
	}
}

func (c *Client) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// draw repaints the screen. The caller holds c.mu.
func (c *Client) draw() {
	c.screen.Clear()

	for _, o := range c.frame.Obstacles {
		if !o.Alive && !o.Hit {
			continue
		}
		style := styleRock
		if o.Hit {
			style = styleRockHit
		}
		x0, y0 := c.cell(o.Bounds.Position())
		x1, y1 := c.cell(physics.Vector2D{X: o.Bounds.Right(), Y: o.Bounds.Bottom()})
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c.put(x, y, '#', style)
			}
		}
	}

	for _, p := range c.frame.Projectiles {
		x, y := c.cell(p.Position)
		c.put(x, y, '|', styleMissile)
	}

	ship := c.frame.Ship
	x, y := c.cell(ship.Position.Add(physics.Vector2D{X: ship.Width / 2, Y: ship.Height / 2}))
	if ship.Crashed {
		c.put(x, y, '*', styleCrashed)
	} else {
		c.put(x, y, render.HeadingGlyph(ship.Heading), styleShip)
	}

	cols, rows := c.screen.Size()
	hudStyle := styleHUD
	if c.hud.OutOfFuel {
		hudStyle = styleWarning
	}
	c.text(0, rows-1, render.FormatHUD(c.hud), hudStyle)

	if c.summary != nil {
		lines := []string{render.FormatSummary(*c.summary), "r: play again   q: quit"}
		for i, line := range lines {
			c.text(max((cols-len(line))/2, 0), (rows-1)/2+i, line, styleGameOver)
		}
	}

	c.screen.Show()
}

type action int

const (
	actionNone action = iota
	actionIntent
	actionRestart
	actionQuit
)

// keyAction maps a key press to what the client should do
func keyAction(key tcell.Key, r rune) (action, engine.Intent) {
	switch key {
	case tcell.KeyUp:
		return actionIntent, engine.ThrustUp
	case tcell.KeyDown:
		return actionIntent, engine.ThrustDown
	case tcell.KeyLeft:
		return actionIntent, engine.RotateLeft
	case tcell.KeyRight:
		return actionIntent, engine.RotateRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, 0
	case tcell.KeyRune:
		switch r {
		case ' ':
			return actionIntent, engine.Fire
		case 'w':
			return actionIntent, engine.ThrustUp
		case 's':
			return actionIntent, engine.ThrustDown
		case 'a':
			return actionIntent, engine.RotateLeft
		case 'd':
			return actionIntent, engine.RotateRight
		case 'r':
			return actionRestart, 0
		case 'q':
			return actionQuit, 0
		}
	}
	return actionNone, 0
}

// handleKey applies a key press and reports whether the client should quit
func (c *Client) handleKey(key tcell.Key, r rune) bool {
	act, intent := keyAction(key, r)
	switch act {
	case actionIntent:
		if !c.controller.Submit(intent) {
			c.logger.Debug(context.Background(), "intent dropped", "intent", intent.String())
		}
	case actionRestart:
		c.controller.Restart()
	case actionQuit:
		return true
	}
	return false
}

// Run reads input until the player quits or ctx is cancelled
func (c *Client) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if c.handleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				c.mu.Lock()
				c.screen.Sync()
				c.draw()
				c.mu.Unlock()
			}
		}
	}
}
