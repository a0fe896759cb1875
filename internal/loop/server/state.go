package server

import (
	"github.com/oklog/ulid/v2"

	"github.com/tomz197/shootout/internal/input"
	"github.com/tomz197/shootout/internal/object"
	"github.com/tomz197/shootout/internal/rink"
)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Key      ulid.ULID // Stable identifier for log correlation
	Username string
	Skater   *object.Actor // nil while watching
	Input    input.Input
	EventsCh chan ClientEvent

	charge   float64 // Shot strength built up while SPACE is held
	charging bool
	poked    bool // Poke key was down last tick
}

// ClientInput represents input from a specific client.
type ClientInput struct {
	ClientID int
	Input    input.Input
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type   ClientEventType
	Side   rink.Side // Net scored on, for EventGoal
	Scorer string    // Username of the scorer, empty if unknown
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventGoal ClientEventType = iota
	EventFaceoff
	EventServerShutdown
)

// Snapshot is an immutable view of the rink for rendering.
type Snapshot struct {
	Bodies []object.Body
	Owners []int // Client ID per body, 0 for goalies and the puck
	Goals  [2]int
	Scored [2]bool

	Rink      *rink.Rink // Static geometry only
	Players   int
	Skaters   int
	AttemptID string
	Paused    bool // Goal scored, waiting for the faceoff
	LastGoal  string
	Tick      uint64
}

// BodyOf returns the body controlled by clientID.
func (s *Snapshot) BodyOf(clientID int) (object.Body, bool) {
	for i, owner := range s.Owners {
		if owner == clientID {
			return s.Bodies[i], true
		}
	}
	return object.Body{}, false
}
