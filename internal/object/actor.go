// Package object holds the rink's moving bodies. Every body is an Actor; the
// kind-specific part of its motion is delegated to a MotionPolicy.
package object

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/tomz197/shootout/internal/config"
	"github.com/tomz197/shootout/internal/physics"
	"github.com/tomz197/shootout/internal/rink"
)

var (
	// ErrInvalidStrength is returned by Shoot for a strength outside [0, MaxShotStrength].
	ErrInvalidStrength = errors.New("invalid shot strength")
	// ErrNotPuck is returned when a puck-only operation is called on a player.
	ErrNotPuck = errors.New("actor is not a puck")
)

// Kind tags the variant of an Actor.
type Kind int

const (
	KindPuck Kind = iota
	KindSkater
	KindGoalie
)

func (k Kind) String() string {
	switch k {
	case KindPuck:
		return "puck"
	case KindSkater:
		return "skater"
	case KindGoalie:
		return "goalie"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Direction is one of the four movement keys a player can hold.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right

	directionCount
)

// Actor is a circular body on the rink. Position and perimeter are only
// mutated through the actor's own methods.
type Actor struct {
	kind     Kind
	radius   float64
	angle    float64 // Degrees, counter-clockwise from +X
	position r2.Point
	velocity r2.Point

	perimeter physics.Perimeter
	pressed   [directionCount]bool

	// Puck only.
	possessor *Actor

	policy MotionPolicy
	rink   *rink.Rink
	tuning config.Tuning
}

func newActor(pos r2.Point, radius float64, policy MotionPolicy, r *rink.Rink, t config.Tuning) *Actor {
	return &Actor{
		kind:      policy.Kind(),
		radius:    radius,
		position:  pos,
		perimeter: physics.SamplePerimeter(pos, radius),
		policy:    policy,
		rink:      r,
		tuning:    t,
	}
}

// NewPuck creates a puck at rest at pos.
func NewPuck(pos r2.Point, r *rink.Rink, t config.Tuning) *Actor {
	return newActor(pos, t.Puck.Radius, newPuckPolicy(t), r, t)
}

// NewSkater creates a player-controlled skater at pos.
func NewSkater(pos r2.Point, r *rink.Rink, t config.Tuning) *Actor {
	return newActor(pos, t.Skater.Radius, newSkaterPolicy(t), r, t)
}

// NewGoalie creates a goalie confined to the crease of net. The goalie
// faces center ice.
func NewGoalie(pos r2.Point, net *rink.Net, r *rink.Rink, t config.Tuning) *Actor {
	a := newActor(pos, t.Goalie.Radius, newGoaliePolicy(t, net.Crease()), r, t)
	if net.Side == rink.Right {
		a.angle = 180
	}
	return a
}

// Tick advances the actor by dt seconds: forces, friction and damping,
// board then net collision response, velocity clamp and finally position.
// A vetoed move leaves both position and facing untouched.
// A possessed puck is carried by its possessor instead.
func (a *Actor) Tick(dt float64) error {
	if a.possessor != nil {
		a.carry()
		return nil
	}

	a.policy.ApplyForces(a, dt)
	a.policy.ApplyDrag(a, dt)

	if err := a.resolveCollisions(); err != nil {
		return err
	}

	a.velocity = physics.ClampComponents(a.velocity, a.policy.MaxVelocity())

	step := a.velocity.Mul(dt)
	candidate := a.position.Add(step)
	if !a.policy.Admit(a, candidate) {
		return nil
	}
	a.position = candidate
	a.perimeter.Translate(step)
	// Players face the way they actually moved.
	if a.kind != KindPuck && (step.X != 0 || step.Y != 0) {
		a.angle = physics.AngleOf(step)
	}
	return nil
}

func (a *Actor) resolveCollisions() error {
	v, err := physics.ResolveCollision(a.rink.ViolatedSamples(&a.perimeter), a.velocity)
	if err != nil {
		return fmt.Errorf("%s board collision: %w", a.kind, err)
	}
	isPuck := a.kind == KindPuck
	for _, n := range a.rink.Nets() {
		v, err = physics.ResolveCollision(n.CollidingSamples(&a.perimeter, isPuck), v)
		if err != nil {
			return fmt.Errorf("%s %s net collision: %w", a.kind, n.Side, err)
		}
	}
	a.velocity = v
	return nil
}

// carry places a possessed puck just in front of its possessor.
func (a *Actor) carry() {
	h := a.possessor
	reach := h.radius + a.radius
	a.position = h.position.Add(physics.FromAngle(h.angle, reach))
	a.perimeter = physics.SamplePerimeter(a.position, a.radius)
	a.velocity = h.velocity
	a.angle = h.angle
}

// Shoot releases the puck and fires it at angleDeg with the given strength.
// An out-of-range strength is rejected and leaves the puck untouched.
func (a *Actor) Shoot(angleDeg, strength float64) error {
	if a.kind != KindPuck {
		return fmt.Errorf("shoot %s: %w", a.kind, ErrNotPuck)
	}
	if !(strength >= 0 && strength <= a.tuning.MaxShotStrength) {
		return fmt.Errorf("%w: %g not in [0, %g]", ErrInvalidStrength, strength, a.tuning.MaxShotStrength)
	}
	a.impulse(angleDeg, strength*a.tuning.ShotFactor)
	return nil
}

// PokeCheck knocks the puck loose toward angleDeg with the fixed poke-check
// force.
func (a *Actor) PokeCheck(angleDeg float64) error {
	if a.kind != KindPuck {
		return fmt.Errorf("poke check %s: %w", a.kind, ErrNotPuck)
	}
	a.impulse(angleDeg, a.tuning.PokeCheckFactor)
	return nil
}

func (a *Actor) impulse(angleDeg, force float64) {
	a.possessor = nil
	a.angle = angleDeg
	a.velocity = a.velocity.Add(physics.FromAngle(angleDeg, force))
	a.velocity = physics.ClampComponents(a.velocity, a.policy.MaxVelocity())
}

// SetPossession hands the puck to holder. A nil holder releases it in place.
func (a *Actor) SetPossession(holder *Actor) {
	if a.kind != KindPuck {
		return
	}
	a.possessor = holder
	if holder != nil {
		a.carry()
	}
}

// Possessed reports whether the puck is being carried.
func (a *Actor) Possessed() bool { return a.possessor != nil }

// Possessor returns the carrier of the puck, or nil.
func (a *Actor) Possessor() *Actor { return a.possessor }

// SetPressed records whether dir is held.
func (a *Actor) SetPressed(dir Direction, pressed bool) {
	if dir >= 0 && dir < directionCount {
		a.pressed[dir] = pressed
	}
}

// Pressed reports whether dir is held.
func (a *Actor) Pressed(dir Direction) bool {
	if dir < 0 || dir >= directionCount {
		return false
	}
	return a.pressed[dir]
}

// ReleaseAll clears every held direction.
func (a *Actor) ReleaseAll() {
	a.pressed = [directionCount]bool{}
}

// SetPosition teleports the actor and resamples its perimeter.
func (a *Actor) SetPosition(p r2.Point) {
	a.position = p
	a.perimeter = physics.SamplePerimeter(p, a.radius)
}

// SetVelocity replaces the velocity.
func (a *Actor) SetVelocity(v r2.Point) { a.velocity = v }

// SetAngle sets the facing in degrees.
func (a *Actor) SetAngle(deg float64) { a.angle = deg }

// Read-only accessors for rendering and scoring.

func (a *Actor) Kind() Kind { return a.kind }
func (a *Actor) Position() r2.Point { return a.position }
func (a *Actor) Velocity() r2.Point { return a.velocity }
func (a *Actor) Radius() float64 { return a.radius }
func (a *Actor) Angle() float64 { return a.angle }
func (a *Actor) Perimeter() physics.Perimeter { return a.perimeter }
func (a *Actor) MaxVelocity() float64 { return a.policy.MaxVelocity() }
