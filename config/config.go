// Package config loads the optional TOML settings file
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/luna-scenes/audio"
	"github.com/lixenwraith/luna-scenes/governor"
	"github.com/lixenwraith/luna-scenes/page"
	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/scene"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Duration reads TOML strings such as "250ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Engine holds frame loop settings
type Engine struct {
	FrameInterval Duration `toml:"frame_interval"`
	// Seed fixes every scene's randomness, 0 seeds from the clock
	Seed int64 `toml:"seed"`
}

// Governor holds quality hysteresis settings
type Governor struct {
	Window       int     `toml:"window"`
	LowFPS       float64 `toml:"low_fps"`
	HighFPS      float64 `toml:"high_fps"`
	LowFrameSkip int     `toml:"low_frame_skip"`
	AutoAdjust   bool    `toml:"auto_adjust"`
	ForceLow     bool    `toml:"force_low"`
}

// Audio holds chime settings
type Audio struct {
	Enabled   bool     `toml:"enabled"`
	Frequency float64  `toml:"frequency"`
	Volume    float64  `toml:"volume"`
	Gap       Duration `toml:"gap"`
}

// Signatures holds contributor persistence settings
type Signatures struct {
	Path string `toml:"path"`
	Keep int    `toml:"keep"`
}

// Page holds navigation settings
type Page struct {
	Start string `toml:"start"`
	// Omit lists selectors treated as absent from every page
	Omit []string `toml:"omit"`
}

// Metrics holds the Prometheus endpoint
type Metrics struct {
	Addr string `toml:"addr"`
}

// File is the whole settings file
type File struct {
	Engine     Engine                           `toml:"engine"`
	Governor   Governor                         `toml:"governor"`
	Audio      Audio                            `toml:"audio"`
	Signatures Signatures                       `toml:"signatures"`
	Page       Page                             `toml:"page"`
	Metrics    Metrics                          `toml:"metrics"`
	Tuning     map[scene.Variant]scene.Override `toml:"tuning"`
}

// Default returns the settings used when no file is given
func Default() File {
	return File{
		Engine: Engine{FrameInterval: Duration{parameter.FrameInterval}},
		Governor: Governor{
			Window:       parameter.GovernorWindow,
			LowFPS:       parameter.GovernorLowFPS,
			HighFPS:      parameter.GovernorHighFPS,
			LowFrameSkip: parameter.GovernorLowFrameSkip,
			AutoAdjust:   true,
		},
		Audio: Audio{
			Frequency: parameter.ChimeFrequency,
			Volume:    parameter.ChimeVolume,
			Gap:       Duration{parameter.ChimeGap},
		},
		Signatures: Signatures{Path: "signatures.toml", Keep: parameter.SignatureKeep},
		Page:       Page{Start: string(page.Landing)},
	}
}

// Parse decodes data over the defaults and validates the result
// Keys absent from data keep their default
func Parse(data []byte) (File, error) {
	f := Default()
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("config parse: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads path; an empty path returns the defaults
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config read: %w", err)
	}
	return Parse(data)
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, fmt.Sprintf(format, args...))
}

// Validate checks ranges and names
func (f File) Validate() error {
	if f.Engine.FrameInterval.Duration <= 0 {
		return invalid("engine.frame_interval", "must be positive, got %s", f.Engine.FrameInterval.Duration)
	}
	g := f.Governor
	if g.Window < 1 {
		return invalid("governor.window", "must be at least 1, got %d", g.Window)
	}
	if g.LowFPS <= 0 || g.HighFPS <= g.LowFPS {
		return invalid("governor", "need 0 < low_fps < high_fps, got %g and %g", g.LowFPS, g.HighFPS)
	}
	if g.LowFrameSkip < 0 {
		return invalid("governor.low_frame_skip", "must not be negative, got %d", g.LowFrameSkip)
	}
	if f.Audio.Frequency <= 0 {
		return invalid("audio.frequency", "must be positive, got %g", f.Audio.Frequency)
	}
	if f.Audio.Gap.Duration < 0 {
		return invalid("audio.gap", "must not be negative, got %s", f.Audio.Gap.Duration)
	}
	if f.Signatures.Keep < 1 {
		return invalid("signatures.keep", "must be at least 1, got %d", f.Signatures.Keep)
	}
	if _, err := page.Lookup(page.Default(), page.Name(f.Page.Start)); err != nil {
		return invalid("page.start", "%v", err)
	}
	for v, o := range f.Tuning {
		if !v.Valid() {
			return invalid("tuning", "unknown variant %q", string(v))
		}
		if o.Count < 0 || o.CountLow < 0 {
			return invalid("tuning."+string(v), "counts must not be negative")
		}
		if o.FireChance < 0 || o.FireChance > 1 || o.FireChanceLow < 0 || o.FireChanceLow > 1 {
			return invalid("tuning."+string(v), "chances must be within [0,1]")
		}
		if o.Opacity < 0 || o.Opacity > 1 {
			return invalid("tuning."+string(v), "opacity must be within [0,1]")
		}
	}
	return nil
}

// GovernorConfig converts the governor section
func (f File) GovernorConfig() governor.Config {
	g := f.Governor
	return governor.Config{Window: g.Window, LowFPS: g.LowFPS, HighFPS: g.HighFPS, LowFrameSkip: g.LowFrameSkip}
}

// AudioConfig converts the audio section
func (f File) AudioConfig() audio.Config {
	cfg := audio.DefaultConfig()
	cfg.Tone.Frequency = f.Audio.Frequency
	cfg.Tone.Volume = f.Audio.Volume
	cfg.Gap = f.Audio.Gap.Duration
	return cfg
}

// SceneTuning returns the scene overrides
func (f File) SceneTuning() scene.Tuning {
	return scene.Tuning(f.Tuning)
}
