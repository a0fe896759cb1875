package object

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/tomz197/shootout/internal/config"
	"github.com/tomz197/shootout/internal/physics"
	"github.com/tomz197/shootout/internal/rink"
)

const tol = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= tol }

func newTestRink(t *testing.T, tun config.Tuning) *rink.Rink {
	t.Helper()
	r, err := rink.New(tun)
	if err != nil {
		t.Fatalf("rink.New: %v", err)
	}
	return r
}

func TestSkaterSingleTickScenario(t *testing.T) {
	tun := config.Default()
	tun.Skater.Acceleration = 6
	r := newTestRink(t, tun)

	s := NewSkater(r.Center(), r, tun)
	s.SetPressed(Right, true)
	if err := s.Tick(1.0); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	want := 6.0 * (1 - tun.Friction*1.0) * tun.SkaterDamping
	v := s.Velocity()
	if !near(v.X, want) || v.Y != 0 {
		t.Fatalf("velocity = %v, want (%v, 0)", v, want)
	}
	if got := s.Position().X - r.Center().X; !near(got, want) {
		t.Fatalf("moved %v, want %v", got, want)
	}
}

func TestOppositeKeysCancel(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	s := NewSkater(r.Center(), r, tun)
	s.SetPressed(Left, true)
	s.SetPressed(Right, true)
	s.SetPressed(Up, true)
	if err := s.Tick(0.1); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	v := s.Velocity()
	if v.X != 0 {
		t.Errorf("vx = %v, want 0", v.X)
	}
	if v.Y <= 0 {
		t.Errorf("vy = %v, want > 0", v.Y)
	}
}

func TestPerimeterFollowsPosition(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	net := r.Net(rink.Left)

	actors := []*Actor{
		NewPuck(r.Center(), r, tun),
		NewSkater(r2.Point{X: 60, Y: 30}, r, tun),
		NewGoalie(net.OpeningMidpoint().Add(r2.Point{X: 4}), net, r, tun),
	}
	actors[0].SetVelocity(r2.Point{X: 37, Y: -21})
	actors[1].SetPressed(Up, true)
	actors[1].SetPressed(Left, true)
	actors[2].SetPressed(Down, true)

	for i := 0; i < 200; i++ {
		for _, a := range actors {
			if err := a.Tick(1.0 / 60); err != nil {
				t.Fatalf("%s tick %d: %v", a.Kind(), i, err)
			}
			want := physics.SamplePerimeter(a.Position(), a.Radius())
			got := a.Perimeter()
			for j := range got {
				if physics.Distance(got[j], want[j]) > 1e-6 {
					t.Fatalf("%s tick %d sample %d = %v, want %v", a.Kind(), i, j, got[j], want[j])
				}
			}
		}
	}
}

func TestVelocityClampedPerKind(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	net := r.Net(rink.Right)

	tests := []struct {
		a   *Actor
		max float64
	}{
		{NewPuck(r.Center(), r, tun), tun.Puck.MaxVelocity},
		{NewSkater(r.Center(), r, tun), tun.Skater.MaxVelocity},
		{NewGoalie(net.OpeningMidpoint().Add(r2.Point{X: -4}), net, r, tun), tun.Goalie.MaxVelocity},
	}
	for _, tt := range tests {
		tt.a.SetVelocity(r2.Point{X: 1e4, Y: -1e4})
		if err := tt.a.Tick(1e-4); err != nil {
			t.Fatalf("%s: Tick: %v", tt.a.Kind(), err)
		}
		v := tt.a.Velocity()
		if math.Abs(v.X) > tt.max || math.Abs(v.Y) > tt.max {
			t.Errorf("%s velocity %v exceeds %v", tt.a.Kind(), v, tt.max)
		}
	}
}

func TestGoalieVetoedOutsideCrease(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	net := r.Net(rink.Left)
	start := net.OpeningMidpoint().Add(r2.Point{X: 4})

	g := NewGoalie(start, net, r, tun)
	g.SetVelocity(r2.Point{X: 20})
	if err := g.Tick(0.5); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if g.Position() != start {
		t.Fatalf("position = %v, want %v", g.Position(), start)
	}
	if want := 20 * (1 - tun.Friction*0.5); !near(g.Velocity().X, want) {
		t.Fatalf("vx = %v, want %v", g.Velocity().X, want)
	}
	if g.Perimeter() != physics.SamplePerimeter(start, g.Radius()) {
		t.Fatal("perimeter moved while the position was vetoed")
	}
}

func TestGoalieMovesInsideCrease(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	net := r.Net(rink.Right)
	start := net.OpeningMidpoint().Add(r2.Point{X: -4})

	g := NewGoalie(start, net, r, tun)
	g.SetVelocity(r2.Point{Y: 4})
	if err := g.Tick(0.1); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Position().Y <= start.Y {
		t.Fatalf("goalie did not move: %v", g.Position())
	}
	crease, ok := g.Crease()
	if !ok || !crease.Contains(g.Position()) {
		t.Fatalf("goalie left the crease: %v", g.Position())
	}
	if !near(g.Angle(), 90) {
		t.Fatalf("angle = %v, want 90", g.Angle())
	}
}

func TestVetoedGoalieKeepsFacing(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	net := r.Net(rink.Left)
	start := net.OpeningMidpoint().Add(r2.Point{X: 4})

	g := NewGoalie(start, net, r, tun)
	g.SetVelocity(r2.Point{Y: 30})
	if err := g.Tick(0.5); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Position() != start {
		t.Fatalf("position = %v, want %v", g.Position(), start)
	}
	if g.Angle() != 0 {
		t.Fatalf("angle = %v, want 0", g.Angle())
	}
}

func TestPuckReflectsOffTopBoards(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)

	// Only the top sample is past the boards.
	p := NewPuck(r2.Point{X: 100, Y: r.Height() - 0.8}, r, tun)
	p.SetVelocity(r2.Point{X: 10, Y: 20})
	if err := p.Tick(0.1); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	f := 1 - tun.Friction*0.1
	v := p.Velocity()
	if v.X != 0 || !near(v.Y, -20*f) {
		t.Fatalf("velocity = %v, want (0, %v)", v, -20*f)
	}
}

func TestShootRejectsStrength(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	s := NewSkater(r.Center(), r, tun)
	p := NewPuck(r.Center(), r, tun)
	p.SetPossession(s)
	before := p.Velocity()

	for _, strength := range []float64{6.0, -0.1, math.NaN()} {
		err := p.Shoot(0, strength)
		if !errors.Is(err, ErrInvalidStrength) {
			t.Fatalf("Shoot(0, %v) err = %v, want ErrInvalidStrength", strength, err)
		}
		if p.Velocity() != before {
			t.Fatalf("velocity changed to %v", p.Velocity())
		}
		if p.Possessor() != s {
			t.Fatal("possession released by a rejected shot")
		}
	}
}

func TestShootReleasesAndFires(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	s := NewSkater(r.Center(), r, tun)
	p := NewPuck(r.Center(), r, tun)
	p.SetPossession(s)

	if err := p.Shoot(90, 2); err != nil {
		t.Fatalf("Shoot: %v", err)
	}
	if p.Possessed() {
		t.Fatal("puck still possessed after the shot")
	}
	if p.Angle() != 90 {
		t.Fatalf("angle = %v, want 90", p.Angle())
	}
	v := p.Velocity()
	if math.Abs(v.X) > 1e-9 || !near(v.Y, 2*tun.ShotFactor) {
		t.Fatalf("velocity = %v, want (0, %v)", v, 2*tun.ShotFactor)
	}

	// Max strength stays within the cap.
	if err := p.Shoot(0, tun.MaxShotStrength); err != nil {
		t.Fatalf("Shoot max: %v", err)
	}
	if got := p.Velocity().X; got > tun.Puck.MaxVelocity {
		t.Fatalf("vx = %v exceeds cap %v", got, tun.Puck.MaxVelocity)
	}
}

func TestShootOnPlayerFails(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	s := NewSkater(r.Center(), r, tun)
	if err := s.Shoot(0, 1); !errors.Is(err, ErrNotPuck) {
		t.Fatalf("err = %v, want ErrNotPuck", err)
	}
	if err := s.PokeCheck(0); !errors.Is(err, ErrNotPuck) {
		t.Fatalf("err = %v, want ErrNotPuck", err)
	}
}

func TestPokeCheckImpulse(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	s := NewSkater(r.Center(), r, tun)
	p := NewPuck(r.Center(), r, tun)
	p.SetPossession(s)

	if err := p.PokeCheck(180); err != nil {
		t.Fatalf("PokeCheck: %v", err)
	}
	if p.Possessed() {
		t.Fatal("puck still possessed after a poke check")
	}
	if v := p.Velocity(); !near(v.X, -tun.PokeCheckFactor) || math.Abs(v.Y) > 1e-9 {
		t.Fatalf("velocity = %v, want (%v, 0)", v, -tun.PokeCheckFactor)
	}
}

func TestPossessedPuckIsCarried(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	s := NewSkater(r.Center(), r, tun)
	p := NewPuck(r.Center(), r, tun)
	p.SetPossession(s)

	s.SetPressed(Right, true)
	for i := 0; i < 10; i++ {
		if err := s.Tick(0.05); err != nil {
			t.Fatalf("skater Tick: %v", err)
		}
		if err := p.Tick(0.05); err != nil {
			t.Fatalf("puck Tick: %v", err)
		}
	}

	reach := s.Radius() + p.Radius()
	want := s.Position().Add(r2.Point{X: reach})
	if physics.Distance(p.Position(), want) > 1e-6 {
		t.Fatalf("puck at %v, want %v", p.Position(), want)
	}
	if p.Velocity() != s.Velocity() {
		t.Fatalf("puck velocity %v, want carrier's %v", p.Velocity(), s.Velocity())
	}

	p.SetPossession(nil)
	if p.Possessed() {
		t.Fatal("SetPossession(nil) did not release")
	}
}

func TestPressedRoundTrip(t *testing.T) {
	tun := config.Default()
	r := newTestRink(t, tun)
	s := NewSkater(r.Center(), r, tun)

	s.SetPressed(Down, true)
	if !s.Pressed(Down) || s.Pressed(Up) {
		t.Fatal("pressed state mismatch after SetPressed(Down)")
	}
	s.ReleaseAll()
	for d := Up; d <= Right; d++ {
		if s.Pressed(d) {
			t.Errorf("direction %d still pressed after ReleaseAll", d)
		}
	}
	if s.Pressed(Direction(9)) {
		t.Error("unknown direction reported pressed")
	}
}
