package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTuning is returned by Tuning.Validate.
var ErrInvalidTuning = errors.New("invalid tuning")

// Rink describes the playing surface. Fractions are of Length and must sum
// to 1 across the five zones (two end zones, two attacking zones, neutral ice).
type Rink struct {
	Length float64
	Height float64

	EndZoneFraction    float64 // Behind the goal line, rounded corners
	AttackZoneFraction float64 // Goal line to the blue line
	NeutralFraction    float64

	CornerRadius float64
}

// Net describes one goal structure and its crease.
type Net struct {
	OpeningLength float64 // Post to post
	SideLength    float64 // Depth behind the goal line
	Thickness     float64
	CreaseRadius  float64
}

// Motion holds the per-kind integration parameters.
type Motion struct {
	Radius       float64
	Acceleration float64 // Per pressed direction, units/s²
	MaxVelocity  float64 // Component-wise cap
}

// Tuning is the read-only set of constants the engine is built from.
// The engine packages never load it themselves; it is passed in.
type Tuning struct {
	Rink Rink
	Net  Net

	Skater Motion
	Goalie Motion
	Puck   Motion

	Friction      float64 // velocity *= 1 - Friction*dt
	SkaterDamping float64 // Extra per-tick factor for skaters

	ShotFactor      float64 // Impulse per unit of shot strength
	PokeCheckFactor float64
	MaxShotStrength float64

	PickupCooldown float64 // Seconds before the shooter may regain the puck
}

// Default returns tuned values for a 200 x 85 rink.
func Default() Tuning {
	return Tuning{
		Rink: Rink{
			Length:             200,
			Height:             85,
			EndZoneFraction:    0.055,
			AttackZoneFraction: 0.32,
			NeutralFraction:    0.25,
			CornerRadius:       11,
		},
		Net: Net{
			OpeningLength: 9,
			SideLength:    5,
			Thickness:     1,
			CreaseRadius:  8,
		},
		Skater: Motion{Radius: 2.5, Acceleration: 60, MaxVelocity: 50},
		Goalie: Motion{Radius: 3, Acceleration: 45, MaxVelocity: 25},
		Puck:   Motion{Radius: 1, MaxVelocity: 80},

		Friction:      0.5,
		SkaterDamping: 0.98,

		ShotFactor:      14,
		PokeCheckFactor: 10,
		MaxShotStrength: 5,

		PickupCooldown: 0.4,
	}
}

// FromEnv overrides fields of base from SHOOTOUT_* environment variables.
func FromEnv(base Tuning) Tuning {
	t := base
	t.Rink.Length = GetEnvFloat("SHOOTOUT_RINK_LENGTH", t.Rink.Length)
	t.Rink.Height = GetEnvFloat("SHOOTOUT_RINK_HEIGHT", t.Rink.Height)
	t.Rink.CornerRadius = GetEnvFloat("SHOOTOUT_CORNER_RADIUS", t.Rink.CornerRadius)
	t.Net.OpeningLength = GetEnvFloat("SHOOTOUT_NET_LENGTH", t.Net.OpeningLength)
	t.Net.SideLength = GetEnvFloat("SHOOTOUT_NET_SIDE_LENGTH", t.Net.SideLength)
	t.Net.Thickness = GetEnvFloat("SHOOTOUT_NET_THICKNESS", t.Net.Thickness)
	t.Net.CreaseRadius = GetEnvFloat("SHOOTOUT_CREASE_RADIUS", t.Net.CreaseRadius)
	t.Skater.Acceleration = GetEnvFloat("SHOOTOUT_SKATER_ACCELERATION", t.Skater.Acceleration)
	t.Skater.MaxVelocity = GetEnvFloat("SHOOTOUT_SKATER_MAX_VELOCITY", t.Skater.MaxVelocity)
	t.Goalie.Acceleration = GetEnvFloat("SHOOTOUT_GOALIE_ACCELERATION", t.Goalie.Acceleration)
	t.Goalie.MaxVelocity = GetEnvFloat("SHOOTOUT_GOALIE_MAX_VELOCITY", t.Goalie.MaxVelocity)
	t.Puck.Radius = GetEnvFloat("SHOOTOUT_PUCK_RADIUS", t.Puck.Radius)
	t.Puck.MaxVelocity = GetEnvFloat("SHOOTOUT_PUCK_MAX_VELOCITY", t.Puck.MaxVelocity)
	t.Friction = GetEnvFloat("SHOOTOUT_FRICTION", t.Friction)
	t.SkaterDamping = GetEnvFloat("SHOOTOUT_SKATER_DAMPING", t.SkaterDamping)
	t.ShotFactor = GetEnvFloat("SHOOTOUT_SHOT_FACTOR", t.ShotFactor)
	t.PokeCheckFactor = GetEnvFloat("SHOOTOUT_POKE_CHECK_FACTOR", t.PokeCheckFactor)
	return t
}

// Validate rejects tunings the rink and motion code cannot be built from.
func (t Tuning) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"rink length", t.Rink.Length},
		{"rink height", t.Rink.Height},
		{"corner radius", t.Rink.CornerRadius},
		{"net opening length", t.Net.OpeningLength},
		{"net side length", t.Net.SideLength},
		{"net thickness", t.Net.Thickness},
		{"crease radius", t.Net.CreaseRadius},
		{"skater radius", t.Skater.Radius},
		{"goalie radius", t.Goalie.Radius},
		{"puck radius", t.Puck.Radius},
		{"skater max velocity", t.Skater.MaxVelocity},
		{"goalie max velocity", t.Goalie.MaxVelocity},
		{"puck max velocity", t.Puck.MaxVelocity},
		{"shot factor", t.ShotFactor},
		{"poke check factor", t.PokeCheckFactor},
		{"max shot strength", t.MaxShotStrength},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidTuning, p.name, p.value)
		}
	}
	if t.Friction < 0 {
		return fmt.Errorf("%w: friction must not be negative, got %g", ErrInvalidTuning, t.Friction)
	}
	if t.SkaterDamping <= 0 || t.SkaterDamping > 1 {
		return fmt.Errorf("%w: skater damping must be in (0, 1], got %g", ErrInvalidTuning, t.SkaterDamping)
	}
	if t.PickupCooldown < 0 {
		return fmt.Errorf("%w: pickup cooldown must not be negative, got %g", ErrInvalidTuning, t.PickupCooldown)
	}

	r := t.Rink
	if sum := 2*r.EndZoneFraction + 2*r.AttackZoneFraction + r.NeutralFraction; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("%w: zone fractions sum to %g, want 1", ErrInvalidTuning, sum)
	}
	// The net body sits in the end zone, behind the goal line.
	if depth, end := t.Net.SideLength+t.Net.Thickness, r.EndZoneFraction*r.Length; depth >= end {
		return fmt.Errorf("%w: net depth %g does not fit the %g end zone", ErrInvalidTuning, depth, end)
	}
	if span := t.Net.OpeningLength + 2*t.Net.Thickness; span >= r.Height {
		return fmt.Errorf("%w: net span %g does not fit the rink height %g", ErrInvalidTuning, span, r.Height)
	}
	// Goalies spawn one unit plus their radius in front of the goal line.
	if spawn := t.Goalie.Radius + 1; t.Net.CreaseRadius <= spawn {
		return fmt.Errorf("%w: crease radius %g must exceed %g to hold a goalie", ErrInvalidTuning, t.Net.CreaseRadius, spawn)
	}
	return nil
}
