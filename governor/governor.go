// Package governor samples frame rate and switches scenes between normal and low quality
package governor

import (
	"math"
	"time"

	"github.com/rs/zerolog"
)

// Mode is the quality state
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeLow
)

func (m Mode) String() string {
	if m == ModeLow {
		return "low"
	}
	return "normal"
}

// Quality is the snapshot scenes are rebuilt with
type Quality struct {
	Low bool
	// FrameSkip frames are skipped after each drawn frame
	FrameSkip int
}

// Config holds the sampling window and hysteresis thresholds
type Config struct {
	Window       int
	LowFPS       float64
	HighFPS      float64
	LowFrameSkip int
}

// DefaultConfig matches the landing page tuning
func DefaultConfig() Config {
	return Config{Window: 10, LowFPS: 30, HighFPS: 50, LowFrameSkip: 1}
}

// Reason explains why a rebuild was requested
type Reason string

const (
	ReasonSampled Reason = "sampled"
	ReasonForced  Reason = "forced"
	ReasonManual  Reason = "manual"
)

// RebuildFunc tears down and rebuilds every active scene with q
type RebuildFunc func(q Quality, reason Reason)

// Governor is the process-wide quality state machine
// All methods run on the frame goroutine
type Governor struct {
	cfg       Config
	onRebuild RebuildFunc
	log       zerolog.Logger

	window []float64
	next   int
	filled bool

	mode        Mode
	forced      bool
	auto        bool
	transitions int

	last time.Time
}

// New creates a governor in normal mode with auto adjust on
func New(cfg Config, onRebuild RebuildFunc, log zerolog.Logger) *Governor {
	def := DefaultConfig()
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.LowFPS <= 0 {
		cfg.LowFPS = def.LowFPS
	}
	if cfg.HighFPS <= cfg.LowFPS {
		cfg.HighFPS = math.Max(def.HighFPS, cfg.LowFPS)
	}
	if cfg.LowFrameSkip < 0 {
		cfg.LowFrameSkip = 0
	}
	return &Governor{
		cfg:       cfg,
		onRebuild: onRebuild,
		log:       log,
		window:    make([]float64, cfg.Window),
		auto:      true,
	}
}

// Config returns the thresholds in effect
func (g *Governor) Config() Config {
	return g.cfg
}

// Mode returns the current mode
func (g *Governor) Mode() Mode {
	return g.mode
}

// Low reports low quality mode
func (g *Governor) Low() bool {
	return g.mode == ModeLow
}

// Forced reports whether low mode is manually forced
func (g *Governor) Forced() bool {
	return g.forced
}

// AutoAdjust reports whether sampling may change the mode
func (g *Governor) AutoAdjust() bool {
	return g.auto
}

// Transitions counts mode changes since creation
func (g *Governor) Transitions() int {
	return g.transitions
}

// Quality returns the snapshot for the current mode
func (g *Governor) Quality() Quality {
	if g.mode == ModeLow {
		return Quality{Low: true, FrameSkip: g.cfg.LowFrameSkip}
	}
	return Quality{}
}

// SkipFrame reports whether frame n is skipped under the current frame skip
func (g *Governor) SkipFrame(n uint64) bool {
	skip := g.Quality().FrameSkip
	return skip > 0 && n%uint64(skip+1) != 0
}

// Observe derives an FPS sample from the interval since the previous call
func (g *Governor) Observe(now time.Time) bool {
	prev := g.last
	g.last = now
	if prev.IsZero() {
		return false
	}
	dt := now.Sub(prev).Seconds()
	return g.Sample(1 / dt)
}

// Sample records one FPS measurement and reports whether the mode changed
// Non-finite and non-positive samples are discarded
func (g *Governor) Sample(fps float64) bool {
	if !g.auto || math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
		return false
	}
	g.window[g.next] = fps
	g.next = (g.next + 1) % len(g.window)
	if g.next == 0 {
		g.filled = true
	}
	if !g.filled {
		return false
	}

	avg, _ := g.Average()
	switch {
	case g.mode == ModeNormal && avg < g.cfg.LowFPS:
		g.log.Info().Float64("avg_fps", avg).Msg("entering low performance mode")
		g.setMode(ModeLow, ReasonSampled)
		return true
	case g.mode == ModeLow && !g.forced && avg > g.cfg.HighFPS:
		g.log.Info().Float64("avg_fps", avg).Msg("leaving low performance mode")
		g.setMode(ModeNormal, ReasonSampled)
		return true
	}
	return false
}

// Average returns the mean of the full window, false until it fills
func (g *Governor) Average() (float64, bool) {
	if !g.filled {
		return 0, false
	}
	sum := 0.0
	for _, v := range g.window {
		sum += v
	}
	return sum / float64(len(g.window)), true
}

// ForceLowPerformance pins low mode on, or releases it back to normal
func (g *Governor) ForceLowPerformance(on bool) {
	if g.forced == on {
		return
	}
	g.forced = on
	g.log.Info().Bool("forced", on).Msg("low performance override")
	if on {
		if g.mode != ModeLow {
			g.setMode(ModeLow, ReasonForced)
		}
		return
	}
	if g.mode != ModeNormal {
		g.setMode(ModeNormal, ReasonForced)
	}
}

// SetAutoAdjust enables or disables the sampling loop
func (g *Governor) SetAutoAdjust(on bool) {
	if g.auto == on {
		return
	}
	g.auto = on
	g.clearWindow()
	g.log.Info().Bool("auto", on).Msg("auto adjust toggled")
}

// ResetNow rebuilds every scene without changing mode
func (g *Governor) ResetNow() {
	g.clearWindow()
	g.log.Info().Str("mode", g.mode.String()).Msg("manual reset")
	if g.onRebuild != nil {
		g.onRebuild(g.Quality(), ReasonManual)
	}
}

func (g *Governor) setMode(m Mode, reason Reason) {
	g.mode = m
	g.transitions++
	g.clearWindow()
	if g.onRebuild != nil {
		g.onRebuild(g.Quality(), reason)
	}
}

func (g *Governor) clearWindow() {
	clear(g.window)
	g.next = 0
	g.filled = false
	g.last = time.Time{}
}
