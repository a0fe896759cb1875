// Package client renders the shared rink for one terminal connection and
// forwards its key state to the server.
package client

import (
	"bufio"
	"errors"
	"io"
	"time"

	"github.com/tomz197/shootout/internal/draw"
	"github.com/tomz197/shootout/internal/input"
	"github.com/tomz197/shootout/internal/loop/config"
	"github.com/tomz197/shootout/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	frame        *draw.FrameWriter // Queues one frame of output for chunked sends
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.StdoutSize
	}

	username := SanitizeUsername(opts.Username)
	handle := gs.RegisterClient(username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	// The canvas works in rink units; the rink never changes size.
	rk := gs.GetSnapshot().Rink
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := fitRink(termWidth, termHeight, rk.Length(), rk.Height())
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, rk.Length(), rk.Height())
	canvas.SetOffset(offsetCol, offsetRow)
	frame := draw.NewFrameWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		frame:        frame,
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     username,
		termSizeFunc: termSizeFunc,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle game state
		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if c.state.banner.remaining > 0 {
			c.state.banner.remaining -= c.state.delta.Seconds()
		}

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and sends it to the server.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}

	// Send input to server if playing
	if c.state.GameState == GameStatePlaying {
		c.server.SendInput(c.handle.ID, c.state.Input)
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventGoal:
				c.state.banner = goalBanner{
					side:      event.Side,
					scorer:    event.Scorer,
					remaining: config.GoalBannerSeconds,
				}
			case server.EventFaceoff:
				// Keys held through the pause would fire straight after the drop.
				input.ResetKeyInput(c.inputStream)
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, keeping the rink's aspect ratio.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := fitRink(termWidth, termHeight,
		c.canvas.LogicalWidth(), c.canvas.LogicalHeight())

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.frame.SetOffset(offsetCol, offsetRow)
}

// fitRink picks the largest canvas that shows a length x height rink
// undistorted, leaving config.HUDRows free below it. Terminal cells are
// about twice as tall as wide, and the canvas has two pixels per row.
// The render area is centered in the terminal.
func fitRink(termWidth, termHeight int, length, height float64) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	availWidth := min(termWidth, config.MaxTermWidth)
	availRows := min(termHeight, config.MaxTermHeight) - config.HUDRows

	scale := min(float64(availWidth)/length, float64(availRows*2)/height)
	renderWidth = max(int(length*scale), 1)
	renderHeight = max(int(height*scale/2), 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight-config.HUDRows)/2, 0)
	return
}

// updateStartState handles the title screen. The rink keeps playing behind
// it, so the client spectates until it joins.
func (c *Client) updateStartState() {
	if c.state.Input.Shoot || c.state.Input.Enter {
		c.joinRink()
	}
}

// joinRink asks the server for a skater.
func (c *Client) joinRink() {
	input.ResetKeyInput(c.inputStream)

	if err := c.server.JoinRink(c.handle.ID); err != nil {
		if errors.Is(err, server.ErrRinkFull) {
			c.state.JoinError = "The rink is full, try again in a moment"
		} else {
			c.state.JoinError = "Could not join the rink"
		}
		return
	}
	c.state.JoinError = ""
	c.state.GameState = GameStatePlaying
}

// updatePlayingState handles the playing state. ESC goes back to watching.
func (c *Client) updatePlayingState() {
	if c.state.Input.Escape {
		c.server.LeaveRink(c.handle.ID)
		input.ResetKeyInput(c.inputStream)
		c.state.GameState = GameStateStart
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
