package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Chime played when a pulse reaches a special point
const (
	ChimeFrequency = 660.0
	ChimeDuration  = 180 * time.Millisecond
	ChimeAttack    = 8 * time.Millisecond
	ChimeVolume    = -1.5 // beep volume, base 2
	// ChimeGap is the minimum spacing between chimes
	ChimeGap = 250 * time.Millisecond
)
