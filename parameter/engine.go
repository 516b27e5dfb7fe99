package parameter

import "time"

// Frame Loop
const (
	// FrameInterval is the target frame interval (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// StatusRefreshInterval throttles overlay text updates
	StatusRefreshInterval = 250 * time.Millisecond
)

// Terminal Geometry
// Scenes work in logical pixels; one terminal cell spans CellWidthPx × CellHeightPx
// and holds two canvas pixels stacked vertically
const (
	CellWidthPx  = 8
	CellHeightPx = 16
	PixelSize    = 8
)

// Performance Governor
const (
	GovernorWindow       = 10
	GovernorLowFPS       = 30.0
	GovernorHighFPS      = 50.0
	GovernorLowFrameSkip = 1
)

// Pulses
const (
	// PulsePeakActivity is the activity set on a pulse's target when it arrives
	PulsePeakActivity = 0.8
)
