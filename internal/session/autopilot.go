package session

import (
	"github.com/tomz197/shootout/internal/object"
	"github.com/tomz197/shootout/internal/rink"
)

// trackDeadband is how close the goalie gets before it stops pushing.
const trackDeadband = 0.5

// TrackPuck steers goalie toward the point on its home line level with the
// puck, never past the posts. It only sets held directions; the goalie's own
// tick does the moving.
func TrackPuck(goalie, puck *object.Actor, net *rink.Net) {
	home := goalieHome(net, goalie.Radius())
	lo := net.Origin.Y
	hi := net.Origin.Y + net.OpeningLength
	target := home
	target.Y = min(max(puck.Position().Y, lo), hi)

	d := target.Sub(goalie.Position())
	goalie.SetPressed(object.Up, d.Y > trackDeadband)
	goalie.SetPressed(object.Down, d.Y < -trackDeadband)
	goalie.SetPressed(object.Right, d.X > trackDeadband)
	goalie.SetPressed(object.Left, d.X < -trackDeadband)
}
