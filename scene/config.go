package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/governor"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// SignalConfig describes an expanding ring emitted by a point
type SignalConfig struct {
	Start  float64
	Growth float64
	Decay  float64
	// End stops the signal once its strength falls below it
	End float64
	// Band is how close a point's distance must be to the ring radius to be reached
	Band        float64
	MinStrength float64
	// Fill paints a translucent disc, otherwise the ring is stroked
	Fill  bool
	Width float64
	Color palette.RGB
}

// Config is the immutable setup of one scene at one quality level
// A running scene never observes a changed Config; changes arrive through a rebuild
type Config struct {
	Variant Variant
	Low     bool
	Count   int

	Field   field.Config
	Links   linker.Config
	Runtime linker.RuntimeConfig
	Stars   linker.ConstellationConfig

	// Threshold gates edge rendering by distance, 0 draws every edge
	Threshold float64
	Falloff   linker.Falloff

	// FireChance is the per-tick probability of a spontaneous event
	FireChance float64
	// FireBoost is added to FireChance for edges touching a special point
	FireBoost  float64
	PulseSpeed field.Range
	// PulseCount bounds pulses sent per firing, Max 0 sends one per link
	PulseCount field.IntRange
	PulseSize  float64
	PulseFade  float64
	// Integrate is the chance a pulse arriving from a different class converts its target
	Integrate float64

	Signal SignalConfig

	Flash       time.Duration
	FlashJitter time.Duration
	HubFlash    time.Duration

	Glow          bool
	AmbientRadius float64
	MeshGap       int

	Opacity float64
	Peak    float64
}

// Override replaces tuning constants of one variant; zero values keep the default
type Override struct {
	Count         int     `toml:"count"`
	CountLow      int     `toml:"count_low"`
	FireChance    float64 `toml:"fire_chance"`
	FireChanceLow float64 `toml:"fire_chance_low"`
	Opacity       float64 `toml:"opacity"`
}

// Tuning holds overrides by variant
type Tuning map[Variant]Override

// apply folds the override for cfg.Variant into cfg
func (t Tuning) apply(cfg *Config) {
	o, ok := t[cfg.Variant]
	if !ok {
		return
	}
	if cfg.Low {
		if o.CountLow > 0 {
			cfg.Count = o.CountLow
		}
		if o.FireChanceLow > 0 {
			cfg.FireChance = o.FireChanceLow
		}
	} else {
		if o.Count > 0 {
			cfg.Count = o.Count
		}
		if o.FireChance > 0 {
			cfg.FireChance = o.FireChance
		}
	}
	if o.Opacity > 0 {
		cfg.Opacity = vmath.Clamp01(o.Opacity)
	}
}

func pick[T any](low bool, normal, reduced T) T {
	if low {
		return reduced
	}
	return normal
}

func span(min, max float64) field.Range {
	return field.Range{Min: min, Max: max}
}

func solid(c palette.RGB, alphaMin, alphaMax float64) palette.Palette {
	return palette.Palette{{Color: c, Weight: 1, AlphaMin: alphaMin, AlphaMax: alphaMax}}
}

// brainAnchors places five regions in a brain-like cross
var brainAnchors = []vmath.Vec2{
	{X: 0.3, Y: 0.3},
	{X: 0.7, Y: 0.3},
	{X: 0.5, Y: 0.5},
	{X: 0.3, Y: 0.7},
	{X: 0.7, Y: 0.7},
}

// ConfigFor builds the configuration of variant v at quality q
func ConfigFor(v Variant, q governor.Quality, tune Tuning) (Config, error) {
	low := q.Low
	cfg := Config{
		Variant: v,
		Low:     low,
		Falloff: linker.FalloffLinear,
		Opacity: 1,
		Peak:    parameter.PulsePeakActivity,
	}

	switch v {
	case VariantBackdrop:
		cfg.Count = pick(low, parameter.BackdropCount, parameter.BackdropCountLow)
		cfg.Field = field.Config{
			Motion:        field.MotionLinear,
			Radius:        span(parameter.BackdropRadiusMin, parameter.BackdropRadiusMax),
			Velocity:      span(-parameter.BackdropVelocity, parameter.BackdropVelocity),
			MaxSpeed:      parameter.BackdropMaxSpeed,
			PerturbChance: parameter.BackdropPerturbChance,
			PerturbAmount: parameter.BackdropPerturbAmount,
			Palette: palette.Palette{{
				Color: palette.Teal, Weight: 1, AlphaMin: 0.3, AlphaMax: 0.8,
				Jitter: palette.RGB{R: 100, G: 25, B: 45},
			}},
			FollowEase:    parameter.BackdropFollowEase,
			FollowEpsilon: parameter.BackdropFollowEpsilon,
		}
		cfg.Links = linker.Config{
			FanOut:     field.IntRange{Min: parameter.BackdropFanOutMin, Max: parameter.BackdropFanOutMax},
			Dedup:      true,
			Symmetric:  true,
			SpecialMin: parameter.BackdropUserMinLinks,
			Alpha:      span(1, 1),
		}
		cfg.Runtime = linker.RuntimeConfig{
			Cooldown:      parameter.BackdropLinkCooldown,
			MaxDistance:   parameter.BackdropLinkDistance,
			ExcludeLinked: true,
			Alpha:         span(1, 1),
		}
		cfg.Threshold = parameter.BackdropThreshold
		cfg.FireChance = pick(low, parameter.BackdropPulseChance, parameter.BackdropPulseChanceLow)
		cfg.FireBoost = parameter.BackdropPulseChance * parameter.BackdropUserPulseBoost
		cfg.PulseSpeed = span(parameter.BackdropPulseSpeedMin, parameter.BackdropPulseSpeedMax)
		cfg.PulseSize = 3
		cfg.Glow = !low
		cfg.Opacity = parameter.BackdropOpacity

	case VariantSignatures:
		cfg.Count = pick(low, parameter.SignatureParticleCount, parameter.SignatureParticleLow)
		cfg.Field = field.Config{
			Motion:  field.MotionHeading,
			Radius:  span(parameter.SignatureDustRadiusMin, parameter.SignatureDustRadiusMax),
			Speed:   span(parameter.SignatureDustSpeedMin, parameter.SignatureDustSpeedMax),
			Spin:    span(-parameter.SignatureDustSpin, parameter.SignatureDustSpin),
			Palette: solid(palette.White, 0.1, 0.4),
		}
		cfg.Links = linker.Config{
			FanOut: field.IntRange{Min: parameter.SignatureFanOutMin, Max: parameter.SignatureFanOutMax},
			Alpha:  span(0.1, 0.3),
		}
		cfg.Runtime = linker.RuntimeConfig{
			Cooldown:    parameter.SignatureLinkCooldown,
			MaxDistance: parameter.SignatureLinkDistance,
			Chance:      parameter.SignatureLinkChance,
			Alpha:       span(0.3, 0.6),
		}
		cfg.Threshold = parameter.SignatureThreshold
		cfg.FireChance = pick(low, parameter.SignatureEdgePulse, parameter.SignatureEdgePulse/2)
		cfg.PulseSpeed = span(parameter.SignaturePulseSpeed, parameter.SignaturePulseSpeed)
		cfg.PulseSize = 2
		cfg.PulseFade = parameter.SignaturePulseFade
		cfg.Glow = !low
		cfg.Signal = SignalConfig{
			Start:  1,
			Growth: parameter.SignatureBurstGrowth,
			Decay:  parameter.SignatureBurstFade,
			End:    parameter.SignatureBurstEnd,
			Fill:   true,
		}

	case VariantCell:
		cfg.Count = pick(low, parameter.CellCount, parameter.CellCountLow)
		cfg.Field = field.Config{
			Motion:  field.MotionBounce,
			Radius:  span(parameter.CellRadiusMin, parameter.CellRadiusMax),
			Speed:   span(parameter.CellSpeedMin, parameter.CellSpeedMax),
			Palette: solid(palette.Teal, 0.2, 0.5),
		}
		cfg.FireChance = pick(low, parameter.CellEmitChance, parameter.CellEmitChanceLow)
		cfg.Signal = SignalConfig{
			Start:       parameter.CellSignalStart,
			Growth:      parameter.CellSignalGrowth,
			Decay:       parameter.CellSignalDecay,
			End:         parameter.CellSignalEnd,
			Band:        parameter.CellSignalBand,
			MinStrength: parameter.CellSignalMinStrong,
			Fill:        true,
			Color:       palette.Teal,
		}
		cfg.Flash = parameter.CellFlash

	case VariantNeural:
		cfg.Count = pick(low, parameter.NeuronCount, parameter.NeuronCountLow)
		cfg.Field = field.Config{
			Motion:  field.MotionStatic,
			Radius:  span(parameter.NeuronRadiusMin, parameter.NeuronRadiusMax),
			Palette: solid(palette.Teal, 0.5, 0.8),
		}
		cfg.Links = linker.Config{
			FanOut: field.IntRange{Min: 1, Max: pick(low, parameter.NeuronFanOutMax, parameter.NeuronFanOutMaxLow)},
			Dedup:  true,
			Alpha:  span(0.2, 0.2),
		}
		cfg.FireChance = pick(low, parameter.NeuronFireChance, parameter.NeuronFireChanceLow)
		cfg.PulseSpeed = span(parameter.NeuronPulseSpeed, parameter.NeuronPulseSpeed)
		cfg.PulseCount = field.IntRange{Min: 1, Max: 1}
		cfg.PulseSize = 3
		cfg.Flash = parameter.NeuronFlash

	case VariantNetwork:
		cfg.Count = pick(low, parameter.NetworkNodeCount, parameter.NetworkNodeCountLow)
		cfg.Field = field.Config{
			Motion:       field.MotionStatic,
			Layout:       field.LayoutRing,
			RingDistance: span(parameter.NetworkRingMin, parameter.NetworkRingMax),
			Radius:       span(parameter.NetworkNodeRadiusMin, parameter.NetworkNodeRadiusMax),
			Palette:      solid(palette.Teal, 0.5, 0.8),
		}
		cfg.Links = linker.Config{Alpha: span(0.2, 0.2)}
		cfg.FireChance = pick(low, parameter.NetworkBroadcastChance, parameter.NetworkBroadcastChanceLo)
		cfg.Signal = SignalConfig{
			Start:       parameter.NetworkSignalStart,
			Growth:      pick(low, parameter.NetworkExpansion, parameter.NetworkExpansionLow),
			Decay:       parameter.NetworkSignalDecay,
			End:         0.05,
			Band:        parameter.NetworkSignalBand,
			MinStrength: parameter.NetworkSignalMinStrong,
			Width:       2,
			Color:       palette.Gold,
		}
		cfg.Flash = parameter.NetworkNodeFlashMin
		cfg.FlashJitter = parameter.NetworkNodeFlashMax - parameter.NetworkNodeFlashMin
		cfg.HubFlash = parameter.NetworkHubFlash

	case VariantBrain:
		cfg.Count = len(brainAnchors)
		cfg.Field = field.Config{
			Motion:        field.MotionStatic,
			Layout:        field.LayoutFixed,
			Anchors:       brainAnchors,
			Radius:        span(parameter.BrainRegionRadius, parameter.BrainRegionRadius),
			Palette:       solid(palette.Teal, 0.5, 0.8),
			ActivityDecay: parameter.BrainActivityDecay,
		}
		cfg.Links = linker.Config{Alpha: span(0.2, 0.2)}
		cfg.MeshGap = pick(low, 0, parameter.BrainMeshGapLow)
		cfg.FireChance = pick(low, parameter.BrainFireChance, parameter.BrainFireChanceLow)
		cfg.PulseSpeed = span(parameter.BrainPulseSpeed, parameter.BrainPulseSpeed)
		cfg.PulseCount = field.IntRange{Min: pick(low, 0, parameter.BrainPulseLinksLow), Max: pick(low, 0, parameter.BrainPulseLinksLow)}
		cfg.PulseSize = 3
		cfg.Peak = parameter.BrainFireActivity

	case VariantAstrorganism:
		cfg.Count = pick(low, parameter.ElementCount, parameter.ElementCountLow)
		cfg.Field = field.Config{
			Motion:       field.MotionStatic,
			Layout:       field.LayoutRing,
			RingDistance: span(parameter.ElementRingMin, parameter.ElementRingMax),
			Radius:       span(parameter.ElementRadiusMin, parameter.ElementRadiusMax),
			Palette: palette.Palette{
				{Color: palette.Gold, Weight: parameter.ElementGoldWeight, AlphaMin: 0.5, AlphaMax: 1},
				{Color: palette.Teal, Weight: 1 - parameter.ElementGoldWeight, AlphaMin: 0.5, AlphaMax: 1},
			},
			Classes: []field.ClassWeight{
				{Class: field.ClassOrganic, Weight: 0.5},
				{Class: field.ClassDigital, Weight: 0.5},
			},
			Activity: span(0.2, 0.5),
		}
		cfg.Links = linker.Config{
			FanOut: pick(low,
				field.IntRange{Min: parameter.ElementFanOutMin, Max: parameter.ElementFanOutMax},
				field.IntRange{Min: parameter.ElementFanOutMinLow, Max: parameter.ElementFanOutMaxLow}),
			Dedup: true,
			Alpha: span(0.3, 0.3),
		}
		cfg.FireChance = pick(low, parameter.ElementFireChance, parameter.ElementFireChanceLow)
		cfg.PulseCount = field.IntRange{Min: 1, Max: pick(low, parameter.ElementPulsesMax, parameter.ElementPulsesMaxLow)}
		cfg.PulseSpeed = span(parameter.ElementPulseSpeedMin, parameter.ElementPulseSpeedMax)
		cfg.PulseSize = 3
		cfg.Integrate = pick(low, parameter.ElementIntegrate, parameter.ElementIntegrateLow)
		cfg.Glow = !low
		cfg.AmbientRadius = pick(low, parameter.ElementAmbientRadius, parameter.ElementAmbientLow)

	case VariantConstellation:
		cfg.Count = pick(low, parameter.StarCount, parameter.StarCountLow)
		cfg.Field = field.Config{
			Motion:  field.MotionStatic,
			Radius:  span(parameter.StarRadiusMin, parameter.StarRadiusMax),
			Palette: solid(palette.White, 0.6, 1),
		}
		cfg.Stars = linker.ConstellationConfig{
			Reach:      parameter.StarReach,
			LinkRadius: parameter.StarLinkRadius,
			MaxLinks:   parameter.StarMaxLinks,
			MinAngle:   linker.DefaultMinAngle,
		}

	case VariantRing:
		cfg.Count = pick(low, parameter.RingPointCount, parameter.RingPointCountLow)
		cfg.Field = field.Config{
			Motion:         field.MotionOrbital,
			Radius:         span(parameter.RingSizeMin, parameter.RingSizeMax),
			AngularSpeed:   span(parameter.RingAngularMin, parameter.RingAngularMax),
			OrbitAmplitude: parameter.RingOscillation,
			OrbitFrequency: span(parameter.RingFrequencyMin, parameter.RingFrequencyMax),
			Palette:        solid(palette.White, 0.9, 0.9),
		}
		cfg.Threshold = parameter.RingConnectRadius
		cfg.Falloff = linker.FalloffSquared
		cfg.Glow = !low
		cfg.AmbientRadius = parameter.RingEmanation

	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}

	tune.apply(&cfg)
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	cfg.FireChance = vmath.Clamp01(cfg.FireChance)
	if math.IsNaN(cfg.Opacity) {
		cfg.Opacity = 1
	}
	return cfg, nil
}
