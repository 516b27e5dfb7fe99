package scene

import (
	"image"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/luna-scenes/engine"
	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/pulse"
	"github.com/lixenwraith/luna-scenes/render"
	"github.com/lixenwraith/luna-scenes/signature"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// Mount places a scene variant on a screen rectangle measured in cells
type Mount struct {
	Selector string
	Variant  Variant
	Rect     image.Rectangle
	// Opacity overrides the variant's compositing opacity when positive
	Opacity float64
}

// Hooks are callbacks a scene raises on the frame goroutine
type Hooks struct {
	// OnSpecialArrival runs when a pulse reaches a user or signature point
	OnSpecialArrival func(v Variant)
}

// env is what every scene of one stage shares
type env struct {
	timers     *engine.Timers
	log        zerolog.Logger
	hooks      Hooks
	signatures func() []signature.Signature
}

// Stats describes the last frame of one scene
type Stats struct {
	Points       int
	Edges        int
	EdgesDrawn   int
	Pulses       int
	RuntimeLinks int
}

// behavior is the per-variant part of a scene
type behavior interface {
	build(s *Scene)
	step(s *Scene)
	style(s *Scene) render.Style
}

// arriver reacts to pulses reaching their target
type arriver interface {
	arrive(s *Scene, p pulse.Pulse, target *field.Point)
}

// tracker reacts to pointer movement in scene coordinates
type tracker interface {
	pointer(s *Scene, pos vmath.Vec2)
}

// signer accepts signatures added while running
type signer interface {
	sign(s *Scene, sig signature.Signature, effects bool)
}

// flarer shows a one-off burst when the scene is emphasized
type flarer interface {
	flare()
}

func newBehavior(v Variant) behavior {
	switch v {
	case VariantBackdrop:
		return &backdrop{}
	case VariantSignatures:
		return &signatures{}
	case VariantCell:
		return &cells{}
	case VariantNeural:
		return &neural{}
	case VariantNetwork:
		return &network{}
	case VariantBrain:
		return &brain{}
	case VariantAstrorganism:
		return &astrorganism{}
	case VariantConstellation:
		return &constellation{}
	case VariantRing:
		return &ring{}
	}
	return nil
}

// Scene is one running animation bound to a mount
// All methods run on the frame goroutine
type Scene struct {
	mount    Mount
	cfg      Config
	env      *env
	rng      *rand.Rand
	behavior behavior

	field    *field.Field
	graph    *linker.Graph
	pulses   *pulse.Tracker
	runtime  *linker.Runtime
	pairs    []linker.Pair
	canvas   *render.Canvas
	renderer render.FrameRenderer

	alive bool
	built bool
	now   time.Time

	pointer    vmath.Vec2
	hasPointer bool

	// flashes holds the latest flash token per point so older reverts no-op
	flashes  map[int]uint64
	flashSeq uint64

	opacity      float64
	emphasisSeq  uint64
	runtimeLinks int
}

func newScene(m Mount, cfg Config, e *env, seed int64) *Scene {
	s := &Scene{
		mount:    m,
		cfg:      cfg,
		env:      e,
		rng:      rand.New(rand.NewSource(seed)),
		behavior: newBehavior(cfg.Variant),
		graph:    linker.NewGraph(cfg.Links.Symmetric),
		pulses:   pulse.NewTracker(cfg.Peak),
		runtime:  linker.NewRuntime(cfg.Runtime),
		canvas:   render.NewCanvas(0, 0, parameter.PixelSize),
		alive:    true,
		flashes:  make(map[int]uint64),
		opacity:  cfg.Opacity,
	}
	if m.Opacity > 0 {
		s.opacity = vmath.Clamp01(m.Opacity)
	}
	s.Resize(m.Rect)
	return s
}

// Config returns the snapshot the scene was built with
func (s *Scene) Config() Config {
	return s.cfg
}

// Mount returns where the scene is placed
func (s *Scene) Mount() Mount {
	return s.mount
}

// Alive reports whether Stop has not been called
func (s *Scene) Alive() bool {
	return s.alive
}

// Built reports whether points exist; scenes build on their first frame with a non-empty canvas
func (s *Scene) Built() bool {
	return s.built
}

// Field returns the point field, nil before the scene is built
func (s *Scene) Field() *field.Field {
	return s.field
}

// Graph returns the connection graph
func (s *Scene) Graph() *linker.Graph {
	return s.graph
}

// Pulses returns the pulse tracker
func (s *Scene) Pulses() *pulse.Tracker {
	return s.pulses
}

// Canvas returns the drawing surface, nil once stopped
func (s *Scene) Canvas() *render.Canvas {
	return s.canvas
}

// Opacity returns the compositing opacity
func (s *Scene) Opacity() float64 {
	return s.opacity
}

// Stats reports the last rendered frame
func (s *Scene) Stats() Stats {
	st := Stats{
		Edges:        s.graph.Len(),
		EdgesDrawn:   s.renderer.Stats.Edges,
		Pulses:       s.pulses.Len(),
		RuntimeLinks: s.runtimeLinks,
	}
	if s.field != nil {
		st.Points = s.field.Len()
	}
	return st
}

// Resize follows a new container rectangle; points keep their positions
func (s *Scene) Resize(r image.Rectangle) {
	if !s.alive {
		return
	}
	s.mount.Rect = r.Canon()
	s.canvas.Resize(s.mount.Rect.Dx(), s.mount.Rect.Dy()*2)
	if s.built {
		s.field.SetBounds(s.canvas.Bounds())
	}
}

// Stop tears the scene down; further calls and pending callbacks do nothing
func (s *Scene) Stop() {
	if !s.alive {
		return
	}
	s.alive = false
	s.pulses.Reset(s.graph)
	s.pairs = nil
	s.canvas = nil
}

// build creates the points once the canvas has an area
func (s *Scene) build() bool {
	if s.built {
		return true
	}
	if s.canvas.Empty() || s.behavior == nil {
		return false
	}
	s.field = field.Initialize(s.cfg.Count, s.canvas.Bounds(), s.cfg.Field, s.rng)
	s.behavior.build(s)
	s.built = true
	if s.hasPointer {
		s.PointerMoved(s.pointer, s.now)
	}
	s.env.log.Debug().
		Str("selector", s.mount.Selector).
		Str("variant", string(s.cfg.Variant)).
		Bool("low", s.cfg.Low).
		Int("points", s.field.Len()).
		Int("edges", s.graph.Len()).
		Msg("scene built")
	return true
}

// Frame advances and renders one frame
// A zero-sized canvas skips the frame without mutating state
func (s *Scene) Frame(now time.Time) {
	if !s.alive {
		return
	}
	s.now = now
	if !s.build() {
		return
	}
	s.field.Tick()
	s.behavior.step(s)
	s.pulses.Advance(s.field, s.graph, s.arrive)

	s.renderer.Render(s.canvas, render.Frame{
		Field:  s.field,
		Graph:  s.graph,
		Pulses: s.pulses.Active(),
		Pairs:  s.pairs,
	}, s.behavior.style(s))
}

// PointerMoved passes a pointer position in scene coordinates
func (s *Scene) PointerMoved(pos vmath.Vec2, now time.Time) {
	if !s.alive || !pos.IsFinite() {
		return
	}
	s.now = now
	s.pointer, s.hasPointer = pos, true
	if !s.built {
		return
	}
	if t, ok := s.behavior.(tracker); ok {
		t.pointer(s, pos)
	}
}

// AddSignature shows a newly added signature; other variants ignore it
func (s *Scene) AddSignature(sig signature.Signature) {
	if !s.alive || !s.built {
		return
	}
	if sg, ok := s.behavior.(signer); ok {
		sg.sign(s, sig, true)
	}
}

// Emphasize raises the opacity for d, the latest call wins
// With burst set, variants that have one also start their burst effect
func (s *Scene) Emphasize(opacity float64, d time.Duration, burst bool, now time.Time) {
	if !s.alive {
		return
	}
	s.now = now
	base := s.cfg.Opacity
	if s.mount.Opacity > 0 {
		base = s.mount.Opacity
	}
	s.emphasisSeq++
	seq := s.emphasisSeq
	s.opacity = vmath.Clamp01(opacity)
	if f, ok := s.behavior.(flarer); ok && burst && s.built {
		f.flare()
	}
	s.after(d, func() {
		if s.emphasisSeq == seq {
			s.opacity = base
		}
	})
}

func (s *Scene) arrive(p pulse.Pulse, target *field.Point) {
	if target != nil && (target.Kind == field.KindUser || target.Kind == field.KindSignature) {
		if fn := s.env.hooks.OnSpecialArrival; fn != nil {
			fn(s.cfg.Variant)
		}
	}
	if a, ok := s.behavior.(arriver); ok {
		a.arrive(s, p, target)
	}
}

// after runs fn once d has elapsed, unless the scene was stopped meanwhile
func (s *Scene) after(d time.Duration, fn func()) {
	s.env.timers.At(s.now.Add(d), func() {
		if s.alive {
			fn()
		}
	})
}

// flash recolours point id and restores its base colour after d
// Only the latest flash of a point reverts it
func (s *Scene) flash(id int, col palette.Color, d time.Duration) {
	p, ok := s.field.Get(id)
	if !ok {
		return
	}
	s.flashSeq++
	token := s.flashSeq
	s.flashes[id] = token
	p.Color = col
	s.after(d, func() {
		if s.flashes[id] != token {
			return
		}
		delete(s.flashes, id)
		if p, ok := s.field.Get(id); ok {
			p.Color = p.Base
		}
	})
}

// chance rolls a probability
func (s *Scene) chance(p float64) bool {
	return p > 0 && s.rng.Float64() < p
}

// fire spawns a free pulse from→to using the scene's pulse settings
func (s *Scene) fire(from, to int, col palette.Color) uint64 {
	return s.pulses.Spawn(s.field, from, to, s.pulseSpec(col))
}

func (s *Scene) pulseSpec(col palette.Color) pulse.Spec {
	return pulse.Spec{
		Speed: s.cfg.PulseSpeed.Sample(s.rng),
		Fade:  s.cfg.PulseFade,
		Color: col,
		Size:  s.cfg.PulseSize,
	}
}

// shuffledLinks returns a shuffled copy of a point's adjacency
func (s *Scene) shuffledLinks(p *field.Point) []int {
	out := append([]int(nil), p.Links...)
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// baseStyle carries the distance gating shared by every variant
func (s *Scene) baseStyle() render.Style {
	return render.Style{
		Background: palette.Black,
		Threshold:  s.cfg.Threshold,
		Falloff:    s.cfg.Falloff,
	}
}

// expand advances an expanding signal and reports whether it is still running
func expand(sig *field.Signal, cfg SignalConfig) bool {
	if !sig.Active {
		return false
	}
	sig.Radius += cfg.Growth
	sig.Strength *= cfg.Decay
	if sig.Strength < cfg.End {
		*sig = field.Signal{}
		return false
	}
	return true
}

// reached reports whether a signal ring of origin touches pos
func reached(sig field.Signal, origin, pos vmath.Vec2, cfg SignalConfig) bool {
	if !sig.Active || sig.Strength <= cfg.MinStrength {
		return false
	}
	d := origin.Dist(pos)
	return d-sig.Radius < cfg.Band && sig.Radius-d < cfg.Band
}
