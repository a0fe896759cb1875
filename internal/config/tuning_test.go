package config

import (
	"errors"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *Tuning)
	}{
		{"zero rink length", func(t *Tuning) { t.Rink.Length = 0 }},
		{"negative puck radius", func(t *Tuning) { t.Puck.Radius = -1 }},
		{"negative friction", func(t *Tuning) { t.Friction = -0.1 }},
		{"damping above one", func(t *Tuning) { t.SkaterDamping = 1.5 }},
		{"zero damping", func(t *Tuning) { t.SkaterDamping = 0 }},
		{"zero shot factor", func(t *Tuning) { t.ShotFactor = 0 }},
		{"negative poke check factor", func(t *Tuning) { t.PokeCheckFactor = -2 }},
		{"zero max shot strength", func(t *Tuning) { t.MaxShotStrength = 0 }},
		{"negative pickup cooldown", func(t *Tuning) { t.PickupCooldown = -0.1 }},
		{"fractions past one", func(t *Tuning) { t.Rink.NeutralFraction = 0.3 }},
		{"back post through the boards", func(t *Tuning) { t.Net.SideLength = 10 }},
		{"net wider than the rink", func(t *Tuning) { t.Net.OpeningLength = 84 }},
		{"crease too small for the goalie", func(t *Tuning) { t.Net.CreaseRadius = 4 }},
	}
	for _, tt := range tests {
		tun := Default()
		tt.mutate(&tun)
		if err := tun.Validate(); !errors.Is(err, ErrInvalidTuning) {
			t.Errorf("%s: got %v, want ErrInvalidTuning", tt.name, err)
		}
	}
}

func TestValidateAcceptsZeroCooldownAndFriction(t *testing.T) {
	tun := Default()
	tun.PickupCooldown = 0
	tun.Friction = 0
	if err := tun.Validate(); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}
