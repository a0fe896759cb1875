// Package server runs the shared rink: one session ticked on its own
// goroutine, fed by client inputs and read back through snapshots.
package server

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/r2"
	"github.com/oklog/ulid/v2"

	gameconfig "github.com/tomz197/shootout/internal/config"
	"github.com/tomz197/shootout/internal/input"
	"github.com/tomz197/shootout/internal/loop/config"
	"github.com/tomz197/shootout/internal/object"
	"github.com/tomz197/shootout/internal/rink"
	"github.com/tomz197/shootout/internal/session"
)

// ErrRinkFull is returned by JoinRink when every skater slot is taken.
var ErrRinkFull = errors.New("rink is full")

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendInput(clientID int, in input.Input)
	GetSnapshot() *Snapshot
	JoinRink(clientID int) error
	LeaveRink(clientID int)
}

// Options configures a Server.
type Options struct {
	Tuning gameconfig.Tuning
	Logger *log.Logger
}

// Server manages the shared session and processes inputs from all clients.
type Server struct {
	session *session.Session
	tuning  gameconfig.Tuning
	logger  *log.Logger

	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	order        []int // Client IDs in registration order
	nextClientID int
	inputChan    chan ClientInput
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex

	attemptID ulid.ULID
	pause     float64 // Seconds left before the faceoff after a goal
	lastGoal  string
	tick      uint64
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer builds the rink and session. It fails if the tuning does not
// describe a valid rink.
func NewServer(opts Options) (*Server, error) {
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}
	r, err := rink.New(opts.Tuning)
	if err != nil {
		return nil, fmt.Errorf("build rink: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		session:      session.New(r, opts.Tuning),
		tuning:       opts.Tuning,
		logger:       logger,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		inputChan:    make(chan ClientInput, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		attemptID:    ulid.Make(),
	}
	s.createSnapshot()
	return s, nil
}

// Run ticks the session until the context is cancelled. A physics error
// stops the loop and is returned; the rink is never simulated past one.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("rink open", "attempt", s.attemptID, "tick", config.ServerTickTime)
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := s.Step(delta); err != nil {
			s.logger.Error("simulation stopped", "attempt", s.attemptID, "err", err)
			s.notifyAll(ClientEvent{Type: EventServerShutdown})
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// Step runs one server frame: registrations, inputs, one session tick and a
// new snapshot. A zero delta is skipped.
func (s *Server) Step(delta time.Duration) error {
	s.processRegistrations()
	s.collectInputs()
	if delta > 0 {
		if err := s.updateWorld(delta.Seconds()); err != nil {
			return err
		}
	}
	s.createSnapshot()
	return nil
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.notifyAll(ClientEvent{Type: EventServerShutdown})

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

func (s *Server) notifyAll(ev ClientEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Key:      ulid.Make(),
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendInput sends input from a client to the server.
func (s *Server) SendInput(clientID int, in input.Input) {
	select {
	case s.inputChan <- ClientInput{ClientID: clientID, Input: in}:
	default:
		// Input channel full, drop input
	}
}

// GetSnapshot returns the current rink snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// JoinRink puts a skater on the ice for the client. Joining twice is a no-op.
func (s *Server) JoinRink(clientID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		// Registration not processed yet; pull it in.
		s.drainRegistrationsLocked()
		if handle, ok = s.clients[clientID]; !ok {
			return fmt.Errorf("client %d not registered", clientID)
		}
	}
	if handle.Skater != nil {
		return nil
	}
	if len(s.session.Skaters()) >= config.MaxSkaters {
		return ErrRinkFull
	}

	handle.Skater = s.session.AddSkater(s.spawnPoint(clientID))
	s.logger.Info("skater joined", "client", handle.Key, "user", handle.Username, "attempt", s.attemptID)
	return nil
}

// spawnPoint spreads skaters across the neutral zone, alternating ends.
func (s *Server) spawnPoint(clientID int) r2.Point {
	r := s.session.Rink()
	c := r.Center()
	dx := r.Length() / 8
	if clientID%2 == 0 {
		dx = -dx
	}
	lane := float64(clientID%5-2) * r.Height() / 6
	return r2.Point{X: c.X + dx, Y: c.Y + lane}
}

// LeaveRink takes the client's skater off the ice.
func (s *Server) LeaveRink(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if handle, ok := s.clients[clientID]; ok {
		s.leaveLocked(handle)
	}
}

func (s *Server) leaveLocked(handle *ClientHandle) {
	if handle.Skater == nil {
		return
	}
	s.session.RemoveSkater(handle.Skater)
	handle.Skater = nil
	handle.charge, handle.charging, handle.poked = 0, false, false
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drainRegistrationsLocked()
}

func (s *Server) drainRegistrationsLocked() {
	for {
		select {
		case handle := <-s.registerCh:
			s.clients[handle.ID] = handle
			s.order = append(s.order, handle.ID)
			s.logger.Info("client connected", "client", handle.Key, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			handle, ok := s.clients[clientID]
			if !ok {
				continue
			}
			s.leaveLocked(handle)
			close(handle.EventsCh)
			delete(s.clients, clientID)
			s.order = slices.DeleteFunc(s.order, func(id int) bool { return id == clientID })
			s.logger.Info("client disconnected", "client", handle.Key, "user", handle.Username)
		default:
			return
		}
	}
}

// collectInputs gathers all pending inputs from clients.
func (s *Server) collectInputs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case ci := <-s.inputChan:
			if handle, ok := s.clients[ci.ClientID]; ok {
				handle.Input = ci.Input
			}
		default:
			return
		}
	}
}

// updateWorld applies inputs and advances the session by dt seconds.
func (s *Server) updateWorld(dt float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick++

	if s.pause > 0 {
		s.pause -= dt
		if s.pause <= 0 {
			s.faceoffLocked()
		}
		return nil
	}

	for _, id := range s.order {
		if handle := s.clients[id]; handle.Skater != nil {
			s.applyInput(handle, dt)
		}
	}

	events, err := s.session.Tick(dt)
	if err != nil {
		return fmt.Errorf("tick %d: %w", s.tick, err)
	}
	for _, ev := range events {
		s.goalLocked(ev)
	}
	return nil
}

// applyInput maps held keys onto the client's skater. SPACE charges a shot
// that fires on release; the poke check fires once per key press.
func (s *Server) applyInput(handle *ClientHandle, dt float64) {
	in := handle.Input
	sk := handle.Skater
	sk.SetPressed(object.Up, in.Up)
	sk.SetPressed(object.Down, in.Down)
	sk.SetPressed(object.Left, in.Left)
	sk.SetPressed(object.Right, in.Right)

	switch {
	case in.Shoot:
		handle.charging = true
		handle.charge = min(handle.charge+dt*config.ShotChargeRate, s.tuning.MaxShotStrength)
	case handle.charging:
		strength := min(max(handle.charge, config.MinShotCharge), s.tuning.MaxShotStrength)
		handle.charge, handle.charging = 0, false
		if err := s.session.Shoot(sk, strength); err != nil && !errors.Is(err, session.ErrNoPossession) {
			s.logger.Warn("shot rejected", "client", handle.Key, "err", err)
		}
	}

	if in.Poke && !handle.poked {
		if err := s.session.PokeCheck(sk); err != nil && !errors.Is(err, session.ErrOutOfReach) {
			s.logger.Warn("poke check rejected", "client", handle.Key, "err", err)
		}
	}
	handle.poked = in.Poke
}

func (s *Server) goalLocked(ev session.GoalEvent) {
	scorer := ""
	for _, handle := range s.clients {
		if ev.Scorer != nil && handle.Skater == ev.Scorer {
			scorer = handle.Username
			break
		}
	}
	s.pause = config.GoalPauseSeconds
	s.lastGoal = scorer
	s.logger.Info("goal",
		"attempt", s.attemptID,
		"net", ev.Side,
		"scorer", scorer,
		"left", s.session.Goals(rink.Left),
		"right", s.session.Goals(rink.Right),
	)

	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventGoal, Side: ev.Side, Scorer: scorer}:
		default:
		}
	}
}

func (s *Server) faceoffLocked() {
	s.pause = 0
	s.session.ResetAttempt()
	s.attemptID = ulid.Make()
	s.logger.Debug("faceoff", "attempt", s.attemptID)
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventFaceoff}:
		default:
		}
	}
}

// createSnapshot creates an immutable snapshot of the rink state.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	labels := make(map[*object.Actor]string, len(s.clients))
	owners := make(map[*object.Actor]int, len(s.clients))
	for _, handle := range s.clients {
		if handle.Skater != nil {
			labels[handle.Skater] = handle.Username
			owners[handle.Skater] = handle.ID
		}
	}

	ss := s.session.Snapshot(labels)
	ownerIDs := make([]int, len(ss.Bodies))
	for i, sk := range s.session.Skaters() {
		ownerIDs[i] = owners[sk]
	}

	s.snapshot.Store(&Snapshot{
		Bodies:    ss.Bodies,
		Owners:    ownerIDs,
		Goals:     ss.Goals,
		Scored:    ss.Scored,
		Rink:      s.session.Rink(),
		Players:   len(s.clients),
		Skaters:   ss.Skaters,
		AttemptID: s.attemptID.String(),
		Paused:    s.pause > 0,
		LastGoal:  s.lastGoal,
		Tick:      s.tick,
	})
}
