package client

import (
	"time"
	"unicode"

	"github.com/tomz197/shootout/internal/draw"
	"github.com/tomz197/shootout/internal/input"
	"github.com/tomz197/shootout/internal/loop/config"
	"github.com/tomz197/shootout/internal/rink"
)

// GameState represents the current phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen, watching
	GameStatePlaying                   // Skating on the rink
	GameStateShutdown                  // Server is shutting down
)

// goalBanner is the most recent goal, shown over the rink for a while.
type goalBanner struct {
	side      rink.Side
	scorer    string
	remaining float64 // Seconds left on screen
}

// ClientState holds per-connection state (input, phase, timers).
// Each client has its own instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	GameState     GameState         // This client's phase
	Running       bool              // Client loop running
	JoinError     string            // Why the last join attempt failed
	banner        goalBanner        // Last goal, while remaining > 0
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	delta         time.Duration     // Frame delta time (client-side)
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state

	// Previous-frame values, to clear the terminal on transitions.
	prevGameState GameState
	wasInactive   bool
	hadBanner     bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}

// SanitizeUsername keeps the printable runes of name, trimmed to
// config.MaxUsernameLength. An empty result falls back to "skater".
func SanitizeUsername(name string) string {
	runes := make([]rune, 0, config.MaxUsernameLength)
	for _, r := range name {
		if len(runes) == config.MaxUsernameLength {
			break
		}
		if unicode.IsPrint(r) && !unicode.IsSpace(r) {
			runes = append(runes, r)
		}
	}
	if len(runes) == 0 {
		return "skater"
	}
	return string(runes)
}
