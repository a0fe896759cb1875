// Package config holds the timing, view and session limits of the game loop.
// Physics tuning lives in internal/config.
package config

import "time"

// Render area limits. The rink is letterboxed inside the terminal.
const (
	MaxTermWidth  = 220
	MaxTermHeight = 60
	HUDRows       = 2 // Rows reserved under the rink for the scoreboard
)

// Player
const (
	MaxUsernameLength = 16
	MaxSkaters        = 10
)

// Shooting. Holding SPACE charges the shot; releasing fires it.
const (
	ShotChargeRate = 4.0 // Strength gained per second held
	MinShotCharge  = 0.5 // Strength of a tap
)

// Goals
const (
	GoalPauseSeconds  = 3.0 // Play freezes this long before the faceoff
	GoalBannerSeconds = 2.5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)
