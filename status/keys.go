package status

// Metric keys written by the frame loop
const (
	KeyFrames        = "engine.frames"
	KeyFramesSkipped = "engine.frames_skipped"
	KeyFPS           = "engine.fps"
	KeyActive        = "engine.active"

	KeyScenes      = "scene.count"
	KeyPoints      = "scene.points"
	KeyEdges       = "scene.edges"
	KeyEdgesDrawn  = "scene.edges_drawn"
	KeyPulses      = "scene.pulses"
	KeyRebuilds    = "scene.rebuilds"
	KeyRuntimeLink = "scene.runtime_links"

	KeyLowMode     = "governor.low"
	KeyForced      = "governor.forced"
	KeyAutoAdjust  = "governor.auto"
	KeyTransitions = "governor.transitions"
	KeyMode        = "governor.mode"

	KeyPage       = "page.current"
	KeySignatures = "signature.count"
	KeyChimes     = "audio.chimes"
)
