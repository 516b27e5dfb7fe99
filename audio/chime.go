package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/luna-scenes/parameter"
)

// Config holds the chime device and tone settings
type Config struct {
	SampleRate int
	Buffer     time.Duration
	Tone       Tone
	// Gap is the minimum spacing between two chimes
	Gap time.Duration
}

// DefaultConfig returns the stock chime
func DefaultConfig() Config {
	return Config{
		SampleRate: parameter.AudioSampleRate,
		Buffer:     parameter.AudioBufferDuration,
		Tone: Tone{
			Frequency: parameter.ChimeFrequency,
			Duration:  parameter.ChimeDuration,
			Attack:    parameter.ChimeAttack,
			Volume:    parameter.ChimeVolume,
		},
		Gap: parameter.ChimeGap,
	}
}

// Chimer mixes rate-limited chimes into one output stream
// Methods are safe for concurrent use; an unopened chimer drops every chime
type Chimer struct {
	mu      sync.Mutex
	cfg     Config
	rate    beep.SampleRate
	mixer   *beep.Mixer
	limiter *rate.Limiter
	open    bool
	device  bool
	played  atomic.Int64
	log     zerolog.Logger
}

// New creates a closed chimer
func New(cfg Config, log zerolog.Logger) *Chimer {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	return &Chimer{
		cfg:     cfg,
		rate:    beep.SampleRate(cfg.SampleRate),
		mixer:   &beep.Mixer{},
		limiter: rate.NewLimiter(rate.Every(cfg.Gap), 1),
		log:     log,
	}
}

// Open starts the speaker and plays the mixer on it
func (c *Chimer) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open {
		return nil
	}
	if err := speaker.Init(c.rate, c.rate.N(c.cfg.Buffer)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.open, c.device = true, true
	c.log.Info().Int("sample_rate", c.cfg.SampleRate).Msg("audio opened")
	return nil
}

// Attach opens the chimer without a device; the caller streams Mixer itself
func (c *Chimer) Attach() *beep.Mixer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	return c.mixer
}

// Close silences pending chimes; the chimer drops chimes until reopened
func (c *Chimer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return
	}
	if c.device {
		speaker.Lock()
		c.mixer.Clear()
		speaker.Unlock()
	} else {
		c.mixer.Clear()
	}
	c.open = false
	c.log.Info().Int64("chimes", c.played.Load()).Msg("audio closed")
}

// Chime queues one tone at now unless the previous chime is closer than Gap
// pitch scales the configured frequency, 0 keeps it
func (c *Chimer) Chime(now time.Time, pitch float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open || !c.limiter.AllowN(now, 1) {
		return false
	}
	tone := c.cfg.Tone
	if pitch > 0 {
		tone.Frequency *= pitch
	}
	s := tone.Streamer(c.rate)
	if c.device {
		speaker.Lock()
		c.mixer.Add(s)
		speaker.Unlock()
	} else {
		c.mixer.Add(s)
	}
	c.played.Add(1)
	return true
}

// Played counts chimes queued since creation
func (c *Chimer) Played() int64 {
	return c.played.Load()
}
