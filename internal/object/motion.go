package object

import (
	"github.com/golang/geo/r2"

	"github.com/tomz197/shootout/internal/config"
	"github.com/tomz197/shootout/internal/rink"
)

// MotionPolicy is the kind-specific part of an actor's tick.
type MotionPolicy interface {
	Kind() Kind
	// ApplyForces adds this tick's self-propelled acceleration.
	ApplyForces(a *Actor, dt float64)
	// ApplyDrag applies friction and any extra damping.
	ApplyDrag(a *Actor, dt float64)
	// MaxVelocity is the per-component speed cap.
	MaxVelocity() float64
	// Admit reports whether the actor may move its center to candidate.
	Admit(a *Actor, candidate r2.Point) bool
}

// frictionFactor returns the linear friction multiplier for one step.
// Large steps stop the body instead of reversing it.
func frictionFactor(friction, dt float64) float64 {
	return max(0, 1-friction*dt)
}

// pushFromKeys adds accel*dt along each held direction. Opposite keys cancel.
func pushFromKeys(a *Actor, accel, dt float64) {
	dv := accel * dt
	if a.pressed[Up] {
		a.velocity.Y += dv
	}
	if a.pressed[Down] {
		a.velocity.Y -= dv
	}
	if a.pressed[Right] {
		a.velocity.X += dv
	}
	if a.pressed[Left] {
		a.velocity.X -= dv
	}
}

type skaterPolicy struct {
	accel, maxVelocity float64
	friction, damping  float64
}

func newSkaterPolicy(t config.Tuning) *skaterPolicy {
	return &skaterPolicy{
		accel:       t.Skater.Acceleration,
		maxVelocity: t.Skater.MaxVelocity,
		friction:    t.Friction,
		damping:     t.SkaterDamping,
	}
}

func (p *skaterPolicy) Kind() Kind { return KindSkater }

func (p *skaterPolicy) ApplyForces(a *Actor, dt float64) { pushFromKeys(a, p.accel, dt) }

func (p *skaterPolicy) ApplyDrag(a *Actor, dt float64) {
	a.velocity = a.velocity.Mul(frictionFactor(p.friction, dt))
	// Damping is per tick, independent of dt.
	a.velocity = a.velocity.Mul(p.damping)
}

func (p *skaterPolicy) MaxVelocity() float64 { return p.maxVelocity }

func (p *skaterPolicy) Admit(*Actor, r2.Point) bool { return true }

type goaliePolicy struct {
	accel, maxVelocity float64
	friction           float64
	crease             rink.GoalieCrease
}

func newGoaliePolicy(t config.Tuning, crease rink.GoalieCrease) *goaliePolicy {
	return &goaliePolicy{
		accel:       t.Goalie.Acceleration,
		maxVelocity: t.Goalie.MaxVelocity,
		friction:    t.Friction,
		crease:      crease,
	}
}

func (p *goaliePolicy) Kind() Kind { return KindGoalie }

func (p *goaliePolicy) ApplyForces(a *Actor, dt float64) { pushFromKeys(a, p.accel, dt) }

func (p *goaliePolicy) ApplyDrag(a *Actor, dt float64) {
	a.velocity = a.velocity.Mul(frictionFactor(p.friction, dt))
}

func (p *goaliePolicy) MaxVelocity() float64 { return p.maxVelocity }

// Admit keeps the goalie's center inside its crease.
func (p *goaliePolicy) Admit(_ *Actor, candidate r2.Point) bool {
	return p.crease.Contains(candidate)
}

// puckPolicy has no self-propulsion: the puck moves only from shots and
// poke checks.
type puckPolicy struct {
	maxVelocity float64
	friction    float64
}

func newPuckPolicy(t config.Tuning) *puckPolicy {
	return &puckPolicy{maxVelocity: t.Puck.MaxVelocity, friction: t.Friction}
}

func (p *puckPolicy) Kind() Kind { return KindPuck }

func (p *puckPolicy) ApplyForces(*Actor, float64) {}

func (p *puckPolicy) ApplyDrag(a *Actor, dt float64) {
	a.velocity = a.velocity.Mul(frictionFactor(p.friction, dt))
}

func (p *puckPolicy) MaxVelocity() float64 { return p.maxVelocity }

func (p *puckPolicy) Admit(*Actor, r2.Point) bool { return true }

// Crease returns the crease a goalie is confined to.
func (a *Actor) Crease() (rink.GoalieCrease, bool) {
	if gp, ok := a.policy.(*goaliePolicy); ok {
		return gp.crease, true
	}
	return rink.GoalieCrease{}, false
}
