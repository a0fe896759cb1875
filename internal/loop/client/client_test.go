package client

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	gameconfig "github.com/tomz197/shootout/internal/config"
	"github.com/tomz197/shootout/internal/draw"
	"github.com/tomz197/shootout/internal/input"
	"github.com/tomz197/shootout/internal/loop/config"
	"github.com/tomz197/shootout/internal/loop/server"
	"github.com/tomz197/shootout/internal/rink"
)

func newTestClient(t *testing.T) (*Client, *server.Server, *bytes.Buffer) {
	t.Helper()
	srv, err := server.NewServer(server.Options{Tuning: gameconfig.Default(), Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	out := &bytes.Buffer{}
	c := NewClient(srv, bufio.NewReader(strings.NewReader("")), out, ClientOptions{
		Username:     "ann",
		TermSizeFunc: func() (int, int, error) { return 100, 24, nil },
	})
	return c, srv, out
}

func TestFitRink(t *testing.T) {
	tests := []struct {
		name                       string
		termWidth, termHeight      int
		wantW, wantH, wantC, wantR int
	}{
		{"width bound", 100, 24, 100, 21, 0, 0},
		{"max size", 220, 60, 220, 46, 0, 6},
		{"oversized terminal", 300, 100, 220, 46, 40, 26},
	}
	for _, tt := range tests {
		w, h, col, row := fitRink(tt.termWidth, tt.termHeight, 200, 85)
		if w != tt.wantW || h != tt.wantH || col != tt.wantC || row != tt.wantR {
			t.Errorf("%s: got %dx%d at (%d, %d), want %dx%d at (%d, %d)",
				tt.name, w, h, col, row, tt.wantW, tt.wantH, tt.wantC, tt.wantR)
		}
	}
}

func TestFitRinkKeepsAspect(t *testing.T) {
	w, h, _, row := fitRink(220, 30, 200, 85)
	if h+config.HUDRows+row > 30 {
		t.Errorf("got %d rows at offset %d, does not fit 30", h, row)
	}
	// Two canvas pixels per row; allow one row of truncation.
	got := float64(h*2) / float64(w)
	if want := 85.0 / 200.0; math.Abs(got-want) > 2.0/float64(w) {
		t.Errorf("got aspect %g, want %g", got, want)
	}
}

func TestJoinAndLeave(t *testing.T) {
	c, srv, _ := newTestClient(t)

	c.state.Input = input.Input{Shoot: true}
	c.updateStartState()
	if c.state.GameState != GameStatePlaying {
		t.Fatalf("got state %d, want playing", c.state.GameState)
	}
	if err := srv.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if _, ok := srv.GetSnapshot().BodyOf(c.handle.ID); !ok {
		t.Fatal("joined client has no skater")
	}

	c.state.Input = input.Input{Escape: true}
	c.updatePlayingState()
	if c.state.GameState != GameStateStart {
		t.Fatalf("got state %d, want start", c.state.GameState)
	}
	if err := srv.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if _, ok := srv.GetSnapshot().BodyOf(c.handle.ID); ok {
		t.Error("client still skating after leaving")
	}
}

func TestServerEvents(t *testing.T) {
	c, _, out := newTestClient(t)

	c.handle.EventsCh <- server.ClientEvent{Type: server.EventGoal, Side: rink.Right, Scorer: "ann"}
	c.processServerEvents()
	if c.state.banner.remaining != config.GoalBannerSeconds {
		t.Errorf("got banner time %g, want %g", c.state.banner.remaining, config.GoalBannerSeconds)
	}

	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if !strings.Contains(out.String(), "ann scores into the right net") {
		t.Error("goal banner not drawn")
	}

	c.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()
	if c.state.GameState != GameStateShutdown {
		t.Errorf("got state %d, want shutdown", c.state.GameState)
	}
}

func TestDrawFrameShowsScoreboard(t *testing.T) {
	c, _, out := newTestClient(t)
	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	for _, want := range []string{"left net", "right net", "Skaters:", "Controls"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("frame missing %q", want)
		}
	}
	if !strings.ContainsRune(out.String(), '▀') && !strings.ContainsRune(out.String(), '▄') &&
		!strings.ContainsRune(out.String(), '█') {
		t.Error("rink not drawn")
	}
}

func TestDrawFrameHighlightsOwnLabel(t *testing.T) {
	c, srv, out := newTestClient(t)
	other := srv.RegisterClient("bob")
	for _, id := range []int{c.handle.ID, other.ID} {
		if err := srv.JoinRink(id); err != nil {
			t.Fatalf("JoinRink: %v", err)
		}
	}
	if err := srv.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	c.state.GameState = GameStatePlaying

	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	frame := out.String()
	if own := draw.ColorBrightCyan + "ann" + draw.ColorReset; !strings.Contains(frame, own) {
		t.Errorf("frame missing highlighted %q", own)
	}
	if !strings.Contains(frame, "bob") {
		t.Error("frame missing the other skater's label")
	}
	if strings.Contains(frame, draw.ColorBrightCyan+"bob") {
		t.Error("other skater's label is highlighted")
	}
}

func TestSanitizeUsername(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ann", "ann"},
		{"", "skater"},
		{"a b\tc", "abc"},
		{"\x1b[31mred", "[31mred"},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnop"},
	}
	for _, tt := range tests {
		if got := SanitizeUsername(tt.in); got != tt.want {
			t.Errorf("SanitizeUsername(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
