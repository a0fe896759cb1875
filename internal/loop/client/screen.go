package client

import (
	"fmt"
	"time"

	"github.com/tomz197/shootout/internal/draw"
	"github.com/tomz197/shootout/internal/loop/config"
	"github.com/tomz197/shootout/internal/loop/server"
	"github.com/tomz197/shootout/internal/object"
	"github.com/tomz197/shootout/internal/rink"
)

// statusWidth is the field reserved for the faceoff notice at the right of
// the scoreboard row.
const statusWidth = 10

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On state, inactivity or banner transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	showBanner := c.state.banner.remaining > 0
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged || showBanner != c.state.hadBanner {
		c.frame.Clear()
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
		c.state.hadBanner = showBanner
	}

	c.canvas.Clear()

	snapshot := c.server.GetSnapshot()
	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.frame,
		Height: snapshot.Rink.Height(),
	}

	drawRink(ctx, snapshot.Rink)
	if err := drawAll(ctx, bodies(snapshot)); err != nil {
		return err
	}

	// Render canvas to terminal
	c.canvas.Render(c.frame)

	// Draw border when the rink doesn't fill the terminal
	c.canvas.RenderBorder(c.frame)

	// Text goes on top of the rendered canvas.
	if err := drawAll(ctx, c.labels(ctx, snapshot)); err != nil {
		return err
	}
	c.drawUI(snapshot)

	return c.frame.Flush()
}

// drawAll draws objects in order, stopping at the first error.
func drawAll(ctx object.DrawContext, objects []object.Object) error {
	for _, o := range objects {
		if err := o.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

func bodies(snapshot *server.Snapshot) []object.Object {
	objects := make([]object.Object, 0, len(snapshot.Bodies))
	for _, b := range snapshot.Bodies {
		objects = append(objects, b)
	}
	return objects
}

// labels returns skater names placed above their bodies, highlighting this
// client's own. Their cells are marked dirty so the canvas cleans them up
// next frame once the skater moves on, so call it after Render.
func (c *Client) labels(ctx object.DrawContext, snapshot *server.Snapshot) []object.Object {
	width := c.canvas.TerminalWidth()
	var objects []object.Object
	for i, body := range snapshot.Bodies {
		label, ok := body.LabelText(ctx)
		if !ok || label.Y < 1 {
			continue
		}
		n := label.Width()
		label.X = max(1, min(label.X, width-n+1))
		if snapshot.Owners[i] == c.handle.ID {
			label.Style = draw.ColorBrightCyan
		}
		c.canvas.MarkTextDirty(label.X, label.Y, n)
		objects = append(objects, label)
	}
	return objects
}

// drawUI draws the overlay screens and the scoreboard.
func (c *Client) drawUI(snapshot *server.Snapshot) {
	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(width, height)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(width, height)
		return
	}

	c.drawHUD(width, height, snapshot)
	if c.state.banner.remaining > 0 {
		c.drawGoalBanner(width, height)
		return
	}
	if c.state.GameState == GameStateStart {
		c.drawStartScreen(width, height)
	}
}

// writeCentered writes plain lines centered horizontally, starting at row.
func (c *Client) writeCentered(width, row int, lines ...string) {
	c.frame.WriteCentered(width, row, "", lines...)
}

// drawHUD draws the scoreboard and hints in the rows under the rink.
// Fields are fixed width or padded so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(width, height int, snapshot *server.Snapshot) {
	f := c.frame
	row := height + 1

	left, right := snapshot.Goals[rink.Left], snapshot.Goals[rink.Right]
	plain := fmt.Sprintf("%s net %2d  :  %2d %s net", rink.Left, left, right, rink.Right)
	score := fmt.Sprintf("%s%s net %2d%s  :  %s%2d %s net%s",
		draw.ColorRed, rink.Left, left, draw.ColorReset,
		draw.ColorBlue, right, rink.Right, draw.ColorReset)
	f.WriteAt((width-len(plain))/2+1, row, score)

	players := fmt.Sprintf("Skaters: %2d/%-2d Watching: %-3d",
		snapshot.Skaters, config.MaxSkaters, snapshot.Players-snapshot.Skaters)
	f.WriteAt(1, row, players)

	status := ""
	if snapshot.Paused {
		status = "FACEOFF.."
	}
	f.WritePadded(width-statusWidth+1, row, statusWidth, draw.ColorYellow, status)

	hint := "SPACE hold to charge, release to shoot   F poke check   ESC leave   Q quit"
	if c.state.GameState != GameStatePlaying {
		hint = "SPACE join   Q quit"
	}
	f.WritePadded(1, row+1, width, draw.ColorDim, hint)
}

// drawGoalBanner draws the goal announcement over the rink.
func (c *Client) drawGoalBanner(width, height int) {
	// ASCII art (figlet "small" font)
	art := []string{
		`   ___  ___    _   _      _ `,
		`  / __|/ _ \  /_\ | |    | |`,
		` | (_ | (_) |/ _ \| |__  |_|`,
		`  \___|\___//_/ \_\____| (_)`,
	}
	row := height/2 - len(art)
	c.frame.WriteCentered(width, row, draw.ColorYellow, art...)

	who := fmt.Sprintf("into the %s net", c.state.banner.side)
	if c.state.banner.scorer != "" {
		who = fmt.Sprintf("%s scores %s", c.state.banner.scorer, who)
	}
	c.writeCentered(width, row+len(art)+1, who)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(width, height int) {
	centerY := height / 2
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(width, centerY-2, "INACTIVITY WARNING")
	c.writeCentered(width, centerY, msg)
	c.writeCentered(width, centerY+2, "Press any key to continue")
}

// drawStartScreen draws the title screen over the live rink.
func (c *Client) drawStartScreen(width, height int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___ _  _  ___   ___ _____ ___  _   _ _____ `,
		` / __| || |/ _ \ / _ \_   _/ _ \| | | |_   _|`,
		` \__ \ __ | (_) | (_) || || (_) | |_| | | |  `,
		` |___/_||_|\___/ \___/ |_| \___/ \___/  |_|  `,
	}

	titleStartY := height/2 - 7
	c.frame.WriteCentered(width, titleStartY, draw.ColorBold, titleArt...)

	subtitle := "~ Hockey on a shared rink over SSH ~"
	c.writeCentered(width, titleStartY+len(titleArt)+1, subtitle)

	// Controls section
	controlsY := titleStartY + len(titleArt) + 3
	controlLines := []string{
		"Controls",
		"W A S D / arrows . . . . Skate",
		"SPACE (hold)  . . . Charge shot",
		"F  . . . . . . . . . Poke check",
		"ESC  . . . . . . . .  Leave ice",
		"Q  . . . . . . . . . . . . Quit",
	}
	c.writeCentered(width, controlsY, controlLines...)

	promptY := controlsY + len(controlLines) + 1
	if c.state.JoinError != "" {
		c.writeCentered(width, promptY, c.state.JoinError)
	} else if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(width, promptY, ">>  Press SPACE to Join  <<")
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(width, height int) {
	centerY := height / 2
	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(width, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(width, centerY-1,
		"The rink is closing for maintenance.",
		"Please reconnect in a moment.",
	)
	c.writeCentered(width, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(width, centerY+4, "Press Q to disconnect now")
}
