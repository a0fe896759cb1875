package session

import (
	"github.com/tomz197/shootout/internal/object"
)

// Snapshot is a copy of everything a renderer needs, detached from the live
// actors.
type Snapshot struct {
	Bodies  []object.Body // Skaters, then goalies, then the puck
	Scored  [2]bool
	Goals   [2]int
	Skaters int
}

// Snapshot copies the current state. labels names skaters for display and
// may be nil.
func (s *Session) Snapshot(labels map[*object.Actor]string) *Snapshot {
	snap := &Snapshot{
		Bodies:  make([]object.Body, 0, len(s.skaters)+3),
		Goals:   s.goals,
		Skaters: len(s.skaters),
	}
	for _, sl := range s.skaters {
		b := sl.actor.Body()
		b.Label = labels[sl.actor]
		snap.Bodies = append(snap.Bodies, b)
	}
	for _, g := range s.goalies {
		snap.Bodies = append(snap.Bodies, g.Body())
	}
	snap.Bodies = append(snap.Bodies, s.puck.Body())
	for _, net := range s.rink.Nets() {
		snap.Scored[net.Side] = net.Scored()
	}
	return snap
}
