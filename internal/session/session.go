// Package session composes a rink, a puck, two goalies and any number of
// skaters into one simulation advanced by a single Tick.
//
// A Session is not safe for concurrent use; callers serialize access.
package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/golang/geo/r2"

	"github.com/tomz197/shootout/internal/config"
	"github.com/tomz197/shootout/internal/object"
	"github.com/tomz197/shootout/internal/physics"
	"github.com/tomz197/shootout/internal/rink"
)

var (
	// ErrInvalidDelta is returned by Tick for a non-positive step.
	ErrInvalidDelta = errors.New("tick delta must be positive")
	// ErrNoPossession is returned when a skater shoots without the puck.
	ErrNoPossession = errors.New("skater does not have the puck")
	// ErrOutOfReach is returned for a poke check too far from the puck.
	ErrOutOfReach = errors.New("puck out of reach")
	// ErrUnknownSkater is returned for a skater not in the session.
	ErrUnknownSkater = errors.New("skater not in session")
)

// pokeReach is how far past touching a poke check can reach the puck.
const pokeReach = 3.0

// GoalEvent reports a goal. Side is the net the puck went into.
type GoalEvent struct {
	Side   rink.Side
	Scorer *object.Actor // Last skater to carry or shoot the puck, may be nil
}

type skaterSlot struct {
	actor *object.Actor
	spawn r2.Point
}

// Session owns every actor on one rink.
type Session struct {
	rink   *rink.Rink
	tuning config.Tuning

	puck    *object.Actor
	goalies [2]*object.Actor
	skaters []skaterSlot

	goalieSpawn [2]r2.Point
	autopilot   [2]bool

	goals [2]int // Indexed by the net scored on

	lastTouch   *object.Actor
	lastShooter *object.Actor
	cooldown    float64 // Seconds until lastShooter may pick the puck up again
}

// New creates a session with the puck at center ice and one goalie in front
// of each net. Both goalies start on autopilot.
func New(r *rink.Rink, t config.Tuning) *Session {
	s := &Session{
		rink:      r,
		tuning:    t,
		puck:      object.NewPuck(r.Center(), r, t),
		autopilot: [2]bool{true, true},
	}
	for _, net := range r.Nets() {
		spawn := goalieHome(net, t.Goalie.Radius)
		s.goalieSpawn[net.Side] = spawn
		s.goalies[net.Side] = object.NewGoalie(spawn, net, r, t)
	}
	return s
}

// goalieHome is the spot just in front of the goal line, centered on the
// opening.
func goalieHome(net *rink.Net, radius float64) r2.Point {
	out := radius + 1
	if net.Side == rink.Right {
		out = -out
	}
	return net.OpeningMidpoint().Add(r2.Point{X: out})
}

// AddSkater joins a new skater at pos. Skaters tick in join order.
func (s *Session) AddSkater(pos r2.Point) *object.Actor {
	a := object.NewSkater(pos, s.rink, s.tuning)
	s.skaters = append(s.skaters, skaterSlot{actor: a, spawn: pos})
	return a
}

// RemoveSkater takes a skater off the ice, dropping the puck if it carried it.
func (s *Session) RemoveSkater(a *object.Actor) {
	i := slices.IndexFunc(s.skaters, func(sl skaterSlot) bool { return sl.actor == a })
	if i < 0 {
		return
	}
	s.skaters = slices.Delete(s.skaters, i, i+1)
	if s.puck.Possessor() == a {
		s.puck.SetPossession(nil)
	}
	if s.lastTouch == a {
		s.lastTouch = nil
	}
	if s.lastShooter == a {
		s.lastShooter = nil
	}
}

// Tick advances the whole simulation by dt seconds. Skaters move first in
// join order, then the left and right goalies, then the puck. Possession,
// saves and goals are evaluated after everything has moved. A goal is
// reported once, on the tick its net first registers it.
func (s *Session) Tick(dt float64) ([]GoalEvent, error) {
	if !(dt > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidDelta, dt)
	}

	for side, g := range s.goalies {
		if s.autopilot[side] {
			TrackPuck(g, s.puck, s.rink.Net(rink.Side(side)))
		}
	}

	for _, sl := range s.skaters {
		if err := sl.actor.Tick(dt); err != nil {
			return nil, fmt.Errorf("tick skater: %w", err)
		}
	}
	for _, g := range s.goalies {
		if err := g.Tick(dt); err != nil {
			return nil, fmt.Errorf("tick goalie: %w", err)
		}
	}
	if err := s.puck.Tick(dt); err != nil {
		return nil, fmt.Errorf("tick puck: %w", err)
	}

	s.cooldown = max(0, s.cooldown-dt)
	s.restoreOutOfPlay()
	s.pickup()
	s.saves()
	return s.detectGoals(), nil
}

// restoreOutOfPlay returns a free puck or a skater whose center has left the
// ice to its spawn, at rest.
func (s *Session) restoreOutOfPlay() {
	r := s.rink
	if !s.puck.Possessed() && !r.Contains(s.puck.Position()) {
		s.puck.SetPosition(r.Center())
		s.puck.SetVelocity(r2.Point{})
	}
	for _, sl := range s.skaters {
		if !r.Contains(sl.actor.Position()) {
			sl.actor.SetPosition(sl.spawn)
			sl.actor.SetVelocity(r2.Point{})
		}
	}
}

// pickup gives a free puck to the first skater touching it.
func (s *Session) pickup() {
	if s.puck.Possessed() {
		return
	}
	for _, sl := range s.skaters {
		a := sl.actor
		if a == s.lastShooter && s.cooldown > 0 {
			continue
		}
		if physics.CirclesOverlap(a.Position(), a.Radius(), s.puck.Position(), s.puck.Radius()) {
			s.puck.SetPossession(a)
			s.lastTouch = a
			return
		}
	}
}

// saves turns a free puck away from any goalie it runs into. The puck's
// velocity is mirrored about the line from the goalie's center to the puck's,
// so a shot straight at either goalie comes straight back out.
func (s *Session) saves() {
	if s.puck.Possessed() {
		return
	}
	p := s.puck.Perimeter()
	for _, g := range s.goalies {
		away := s.puck.Position().Sub(g.Position())
		if s.puck.Velocity().Dot(away) >= 0 {
			continue
		}
		hits := p.Matching(func(pt r2.Point) bool {
			return physics.PointInCircle(pt, g.Position(), g.Radius())
		})
		if len(hits) == 0 {
			continue
		}
		s.puck.SetVelocity(physics.Mirror(s.puck.Velocity(), away))
	}
}

func (s *Session) detectGoals() []GoalEvent {
	var events []GoalEvent
	for _, net := range s.rink.Nets() {
		was := net.Scored()
		net.CheckGoal(s.puck.Position())
		if !was && net.Scored() {
			s.goals[net.Side]++
			events = append(events, GoalEvent{Side: net.Side, Scorer: s.lastTouch})
		}
	}
	return events
}

// Shoot fires the puck from shooter's stick in the direction it faces.
func (s *Session) Shoot(shooter *object.Actor, strength float64) error {
	if s.puck.Possessor() != shooter {
		return ErrNoPossession
	}
	if err := s.puck.Shoot(shooter.Angle(), strength); err != nil {
		return err
	}
	s.lastShooter = shooter
	s.lastTouch = shooter
	s.cooldown = s.tuning.PickupCooldown
	return nil
}

// PokeCheck knocks the puck toward where checker faces when the puck is
// within reach. Checking a puck the checker already carries is a no-op.
func (s *Session) PokeCheck(checker *object.Actor) error {
	if !s.isSkater(checker) {
		return ErrUnknownSkater
	}
	if s.puck.Possessor() == checker {
		return nil
	}
	reach := checker.Radius() + s.puck.Radius() + pokeReach
	if !physics.PointInCircle(s.puck.Position(), checker.Position(), reach) {
		return ErrOutOfReach
	}
	if err := s.puck.PokeCheck(checker.Angle()); err != nil {
		return err
	}
	s.lastShooter = checker
	s.lastTouch = checker
	s.cooldown = s.tuning.PickupCooldown
	return nil
}

func (s *Session) isSkater(a *object.Actor) bool {
	return slices.ContainsFunc(s.skaters, func(sl skaterSlot) bool { return sl.actor == a })
}

// IsGoal reports whether the net at side has registered a goal this attempt.
func (s *Session) IsGoal(side rink.Side) bool {
	return s.rink.Net(side).Scored()
}

// Goals returns how many goals went into the net at side.
func (s *Session) Goals(side rink.Side) int { return s.goals[side] }

// ResetAttempt puts the puck back at center ice, every actor back on its
// spawn at rest, and clears both nets.
func (s *Session) ResetAttempt() {
	s.puck.SetPossession(nil)
	s.puck.SetPosition(s.rink.Center())
	s.puck.SetVelocity(r2.Point{})
	s.puck.SetAngle(0)

	for side, g := range s.goalies {
		g.SetPosition(s.goalieSpawn[side])
		g.SetVelocity(r2.Point{})
		g.ReleaseAll()
	}
	for _, sl := range s.skaters {
		sl.actor.SetPosition(sl.spawn)
		sl.actor.SetVelocity(r2.Point{})
		sl.actor.ReleaseAll()
	}
	for _, net := range s.rink.Nets() {
		net.Reset()
	}

	s.lastTouch = nil
	s.lastShooter = nil
	s.cooldown = 0
}

// SetAutopilot switches the goalie at side between autopilot and external
// control through SetPressed.
func (s *Session) SetAutopilot(side rink.Side, on bool) {
	s.autopilot[side] = on
	if !on {
		s.goalies[side].ReleaseAll()
	}
}

func (s *Session) Rink() *rink.Rink { return s.rink }

func (s *Session) Puck() *object.Actor { return s.puck }

func (s *Session) Goalie(side rink.Side) *object.Actor { return s.goalies[side] }

func (s *Session) Goalies() [2]*object.Actor { return s.goalies }

// Skaters returns the skaters in join order.
func (s *Session) Skaters() []*object.Actor {
	out := make([]*object.Actor, len(s.skaters))
	for i, sl := range s.skaters {
		out[i] = sl.actor
	}
	return out
}
