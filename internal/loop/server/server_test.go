package server

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	gameconfig "github.com/tomz197/shootout/internal/config"
	"github.com/tomz197/shootout/internal/input"
	"github.com/tomz197/shootout/internal/loop/config"
	"github.com/tomz197/shootout/internal/object"
	"github.com/tomz197/shootout/internal/rink"
)

const frame = time.Second / 60

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(Options{Tuning: gameconfig.Default(), Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func joinClient(t *testing.T, srv *Server, name string) *ClientHandle {
	t.Helper()
	h := srv.RegisterClient(name)
	if err := srv.JoinRink(h.ID); err != nil {
		t.Fatalf("JoinRink(%s): %v", name, err)
	}
	if err := srv.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	return h
}

func TestNewServerRejectsBadTuning(t *testing.T) {
	tuning := gameconfig.Default()
	tuning.Rink.Length = 0
	if _, err := NewServer(Options{Tuning: tuning, Logger: log.New(io.Discard)}); !errors.Is(err, gameconfig.ErrInvalidTuning) {
		t.Errorf("got %v, want ErrInvalidTuning", err)
	}
}

func TestJoinRinkAddsLabeledSkater(t *testing.T) {
	srv := newTestServer(t)
	h := joinClient(t, srv, "ann")

	snap := srv.GetSnapshot()
	if snap.Skaters != 1 {
		t.Fatalf("got %d skaters, want 1", snap.Skaters)
	}
	body, ok := snap.BodyOf(h.ID)
	if !ok {
		t.Fatal("client body missing from snapshot")
	}
	if body.Kind != object.KindSkater || body.Label != "ann" {
		t.Errorf("got %s %q, want skater \"ann\"", body.Kind, body.Label)
	}
	if !snap.Rink.Contains(body.Position) {
		t.Errorf("spawn %v is off the ice", body.Position)
	}

	// Joining twice keeps a single skater.
	if err := srv.JoinRink(h.ID); err != nil {
		t.Fatalf("second JoinRink: %v", err)
	}
	if got := len(srv.session.Skaters()); got != 1 {
		t.Errorf("got %d skaters after rejoin, want 1", got)
	}
}

func TestJoinRinkFull(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < config.MaxSkaters; i++ {
		h := srv.RegisterClient("p")
		if err := srv.JoinRink(h.ID); err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
	}
	h := srv.RegisterClient("late")
	if err := srv.JoinRink(h.ID); !errors.Is(err, ErrRinkFull) {
		t.Errorf("got %v, want ErrRinkFull", err)
	}
}

func TestInputMovesSkater(t *testing.T) {
	srv := newTestServer(t)
	h := joinClient(t, srv, "ann")
	before, _ := srv.GetSnapshot().BodyOf(h.ID)

	for i := 0; i < 10; i++ {
		srv.SendInput(h.ID, input.Input{Right: true})
		if err := srv.Step(frame); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	after, _ := srv.GetSnapshot().BodyOf(h.ID)
	if after.Position.X <= before.Position.X {
		t.Errorf("got x %g, want more than %g", after.Position.X, before.Position.X)
	}
	if after.Position.Y != before.Position.Y {
		t.Errorf("got y %g, want %g", after.Position.Y, before.Position.Y)
	}
}

func TestShotFiresOnRelease(t *testing.T) {
	srv := newTestServer(t)
	h := joinClient(t, srv, "ann")
	puck := srv.session.Puck()
	puck.SetPossession(h.Skater)

	for i := 0; i < 30; i++ {
		srv.SendInput(h.ID, input.Input{Shoot: true})
		if err := srv.Step(frame); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if puck.Possessor() != h.Skater {
		t.Fatal("puck left the stick while charging")
	}
	if h.charge <= config.MinShotCharge {
		t.Errorf("got charge %g, want more than %g", h.charge, config.MinShotCharge)
	}

	srv.SendInput(h.ID, input.Input{})
	if err := srv.Step(frame); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if puck.Possessed() {
		t.Fatal("puck still possessed after release")
	}
	if v := puck.Velocity(); v.X <= 0 {
		t.Errorf("got puck velocity %v, want moving +x", v)
	}
	if h.charge != 0 || h.charging {
		t.Errorf("got charge %g charging %v, want reset", h.charge, h.charging)
	}
}

func TestGoalPausesThenFaceoff(t *testing.T) {
	srv := newTestServer(t)
	h := joinClient(t, srv, "ann")

	net := srv.session.Rink().Net(rink.Right)
	srv.session.Puck().SetPosition(net.Opening().Center())
	if err := srv.Step(frame); err != nil {
		t.Fatalf("Step: %v", err)
	}

	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventGoal || ev.Side != rink.Right {
			t.Errorf("got event %+v, want goal on right", ev)
		}
	default:
		t.Fatal("no goal event")
	}

	snap := srv.GetSnapshot()
	if !snap.Paused || snap.Goals[rink.Right] != 1 || !snap.Scored[rink.Right] {
		t.Errorf("got paused %v goals %v scored %v, want paused with one right goal",
			snap.Paused, snap.Goals, snap.Scored)
	}
	attempt := snap.AttemptID

	if err := srv.Step(time.Duration(config.GoalPauseSeconds*float64(time.Second)) + frame); err != nil {
		t.Fatalf("Step: %v", err)
	}
	snap = srv.GetSnapshot()
	if snap.Paused || snap.Scored[rink.Right] {
		t.Errorf("got paused %v scored %v, want a fresh attempt", snap.Paused, snap.Scored)
	}
	if snap.AttemptID == attempt {
		t.Error("attempt ID unchanged after faceoff")
	}
	puck := snap.Bodies[len(snap.Bodies)-1]
	if puck.Position != snap.Rink.Center() {
		t.Errorf("got puck at %v, want center %v", puck.Position, snap.Rink.Center())
	}
	if ev := <-h.EventsCh; ev.Type != EventFaceoff {
		t.Errorf("got event %v, want faceoff", ev.Type)
	}
}

func TestUnregisterRemovesSkater(t *testing.T) {
	srv := newTestServer(t)
	h := joinClient(t, srv, "ann")

	srv.UnregisterClient(h.ID)
	if err := srv.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}

	snap := srv.GetSnapshot()
	if snap.Skaters != 0 || snap.Players != 0 {
		t.Errorf("got %d skaters %d players, want none", snap.Skaters, snap.Players)
	}
	if _, open := <-h.EventsCh; open {
		t.Error("events channel still open")
	}
}

func TestLeaveRinkKeepsClient(t *testing.T) {
	srv := newTestServer(t)
	h := joinClient(t, srv, "ann")

	srv.LeaveRink(h.ID)
	if err := srv.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	snap := srv.GetSnapshot()
	if snap.Skaters != 0 || snap.Players != 1 {
		t.Errorf("got %d skaters %d players, want 0 and 1", snap.Skaters, snap.Players)
	}
	if _, ok := snap.BodyOf(h.ID); ok {
		t.Error("spectator still has a body")
	}
}
