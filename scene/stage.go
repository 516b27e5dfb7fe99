package scene

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/luna-scenes/engine"
	"github.com/lixenwraith/luna-scenes/governor"
	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/render"
	"github.com/lixenwraith/luna-scenes/signature"
	"github.com/lixenwraith/luna-scenes/status"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// Options configures a Stage
type Options struct {
	Clock    engine.Clock
	Governor governor.Config
	Tuning   Tuning
	Hooks    Hooks
	// Signatures lists contributors shown when a signatures scene builds
	Signatures func() []signature.Signature
	// Registry receives frame figures, nil disables publishing
	Registry *status.Registry
	// Seed makes every scene deterministic; scenes draw their own seeds from it
	Seed int64
	Log  zerolog.Logger
}

// Stage is the registry of running scenes and the single frame step that drives them
// All methods run on the frame goroutine
type Stage struct {
	clock  engine.Clock
	log    zerolog.Logger
	gov    *governor.Governor
	tune   Tuning
	timers engine.Timers
	env    *env
	reg    *status.Registry
	seeds  *rand.Rand

	order  []string
	scenes map[string]*Scene

	active   bool
	viewport image.Rectangle

	frame    uint64
	skipped  uint64
	rebuilds int
}

// NewStage creates an empty, active stage
func NewStage(opts Options) *Stage {
	if opts.Clock == nil {
		opts.Clock = engine.NewTimeProvider()
	}
	s := &Stage{
		clock:  opts.Clock,
		log:    opts.Log,
		tune:   opts.Tuning,
		reg:    opts.Registry,
		seeds:  rand.New(rand.NewSource(opts.Seed)),
		scenes: make(map[string]*Scene),
		active: true,
	}
	s.env = &env{
		timers:     &s.timers,
		log:        opts.Log,
		hooks:      opts.Hooks,
		signatures: opts.Signatures,
	}
	s.gov = governor.New(opts.Governor, s.rebuild, opts.Log)
	return s
}

// Governor exposes the quality state machine for manual controls
func (s *Stage) Governor() *governor.Governor {
	return s.gov
}

// Start registers a scene for m
// A selector that is already running is left untouched
func (s *Stage) Start(m Mount) error {
	if !m.Variant.Valid() {
		return fmt.Errorf("start %q: %w: %q", m.Selector, ErrUnknownVariant, string(m.Variant))
	}
	if m.Selector == "" {
		m.Selector = m.Variant.Selector()
	}
	if _, running := s.scenes[m.Selector]; running {
		return nil
	}
	sc, err := s.spawn(m)
	if err != nil {
		return err
	}
	s.order = append(s.order, m.Selector)
	s.scenes[m.Selector] = sc
	s.log.Info().Str("selector", m.Selector).Str("variant", string(m.Variant)).Msg("scene started")
	return nil
}

func (s *Stage) spawn(m Mount) (*Scene, error) {
	cfg, err := ConfigFor(m.Variant, s.gov.Quality(), s.tune)
	if err != nil {
		return nil, fmt.Errorf("start %q: %w", m.Selector, err)
	}
	return newScene(m, cfg, s.env, s.seeds.Int63()), nil
}

// Stop removes the scene at selector; unknown selectors are ignored
func (s *Stage) Stop(selector string) {
	sc, ok := s.scenes[selector]
	if !ok {
		return
	}
	sc.Stop()
	delete(s.scenes, selector)
	for i, sel := range s.order {
		if sel == selector {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log.Info().Str("selector", selector).Msg("scene stopped")
}

// StopAll removes every scene
func (s *Stage) StopAll() {
	for len(s.order) > 0 {
		s.Stop(s.order[len(s.order)-1])
	}
}

// Scene returns the running scene at selector
func (s *Stage) Scene(selector string) (*Scene, bool) {
	sc, ok := s.scenes[selector]
	return sc, ok
}

// Scenes returns running scenes in registration order
func (s *Stage) Scenes() []*Scene {
	out := make([]*Scene, 0, len(s.order))
	for _, sel := range s.order {
		out = append(out, s.scenes[sel])
	}
	return out
}

// Len returns the number of running scenes
func (s *Stage) Len() int {
	return len(s.order)
}

// Rebuilds counts quality resets since creation
func (s *Stage) Rebuilds() int {
	return s.rebuilds
}

// rebuild discards every scene and recreates it from its mount at quality q
func (s *Stage) rebuild(q governor.Quality, reason governor.Reason) {
	for _, sel := range s.order {
		old := s.scenes[sel]
		old.Stop()
		sc, err := s.spawn(old.Mount())
		if err != nil {
			s.log.Error().Err(err).Str("selector", sel).Msg("scene rebuild failed")
			continue
		}
		s.scenes[sel] = sc
	}
	// Selectors whose rebuild failed are dropped
	kept := s.order[:0]
	for _, sel := range s.order {
		if s.scenes[sel].Alive() {
			kept = append(kept, sel)
		} else {
			delete(s.scenes, sel)
		}
	}
	s.order = kept
	s.rebuilds++
	s.log.Info().
		Bool("low", q.Low).
		Int("frame_skip", q.FrameSkip).
		Str("reason", string(reason)).
		Int("scenes", len(s.order)).
		Msg("scenes rebuilt")
}

// SetActive pauses or resumes every scene; paused frames mutate nothing
func (s *Stage) SetActive(on bool) {
	if s.active != on {
		s.log.Debug().Bool("active", on).Msg("animations toggled")
	}
	s.active = on
}

// Active reports the animations-active flag
func (s *Stage) Active() bool {
	return s.active
}

// SetViewport sets the visible screen area in cells; an empty rectangle disables culling
func (s *Stage) SetViewport(r image.Rectangle) {
	s.viewport = r.Canon()
}

// Resize moves a scene to a new rectangle
func (s *Stage) Resize(selector string, r image.Rectangle) {
	if sc, ok := s.scenes[selector]; ok {
		sc.Resize(r)
	}
}

func (s *Stage) visible(sc *Scene) bool {
	if s.viewport.Empty() {
		return true
	}
	return sc.Mount().Rect.Overlaps(s.viewport)
}

// Frame runs one frame at now: sample, fire deferred callbacks, then step visible scenes
func (s *Stage) Frame(now time.Time) {
	s.gov.Observe(now)
	s.frame++
	s.timers.Fire(now)

	if s.gov.SkipFrame(s.frame) {
		s.skipped++
		s.publish()
		return
	}
	if s.active {
		for _, sel := range s.order {
			if sc := s.scenes[sel]; s.visible(sc) {
				sc.Frame(now)
			}
		}
	}
	s.publish()
}

// Draw composites every visible scene onto comp in registration order
func (s *Stage) Draw(comp *render.Compositor) {
	for _, sel := range s.order {
		sc := s.scenes[sel]
		if !sc.Alive() || !s.visible(sc) {
			continue
		}
		r := sc.Mount().Rect
		comp.Draw(sc.Canvas(), r.Min.X, r.Min.Y, sc.Opacity())
	}
}

// PointerMoved forwards a pointer cell position to every scene in its own coordinates
func (s *Stage) PointerMoved(cellX, cellY int, now time.Time) {
	for _, sel := range s.order {
		sc := s.scenes[sel]
		r := sc.Mount().Rect
		pos := vmath.V(
			(float64(cellX-r.Min.X)+0.5)*parameter.CellWidthPx,
			(float64(cellY-r.Min.Y)+0.5)*parameter.CellHeightPx,
		)
		sc.PointerMoved(pos, now)
	}
}

// AddSignature shows sig on every signatures scene
func (s *Stage) AddSignature(sig signature.Signature) {
	for _, sel := range s.order {
		s.scenes[sel].AddSignature(sig)
	}
}

// Emphasize brightens the backdrop while the access form is used; submit also flares it
func (s *Stage) Emphasize(submit bool, now time.Time) {
	opacity := parameter.BackdropFocusOpacity
	if submit {
		opacity = parameter.BackdropSubmitOpacity
	}
	for _, sel := range s.order {
		if sc := s.scenes[sel]; sc.Config().Variant == VariantBackdrop {
			sc.Emphasize(opacity, parameter.BackdropEmphasis, submit, now)
		}
	}
}

// publish writes frame figures to the registry
func (s *Stage) publish() {
	if s.reg == nil {
		return
	}
	var total Stats
	for _, sel := range s.order {
		st := s.scenes[sel].Stats()
		total.Points += st.Points
		total.Edges += st.Edges
		total.EdgesDrawn += st.EdgesDrawn
		total.Pulses += st.Pulses
		total.RuntimeLinks += st.RuntimeLinks
	}

	r := s.reg
	r.Ints.Get(status.KeyFrames).Store(int64(s.frame))
	r.Ints.Get(status.KeyFramesSkipped).Store(int64(s.skipped))
	r.Bools.Get(status.KeyActive).Store(s.active)
	if fps, ok := s.gov.Average(); ok {
		r.Floats.Get(status.KeyFPS).Set(fps)
	}

	r.Ints.Get(status.KeyScenes).Store(int64(len(s.order)))
	r.Ints.Get(status.KeyPoints).Store(int64(total.Points))
	r.Ints.Get(status.KeyEdges).Store(int64(total.Edges))
	r.Ints.Get(status.KeyEdgesDrawn).Store(int64(total.EdgesDrawn))
	r.Ints.Get(status.KeyPulses).Store(int64(total.Pulses))
	r.Ints.Get(status.KeyRuntimeLink).Store(int64(total.RuntimeLinks))
	r.Ints.Get(status.KeyRebuilds).Store(int64(s.rebuilds))

	r.Bools.Get(status.KeyLowMode).Store(s.gov.Low())
	r.Bools.Get(status.KeyForced).Store(s.gov.Forced())
	r.Bools.Get(status.KeyAutoAdjust).Store(s.gov.AutoAdjust())
	r.Ints.Get(status.KeyTransitions).Store(int64(s.gov.Transitions()))
	r.Strings.Get(status.KeyMode).Store(s.gov.Mode().String())
}

// Step runs one frame at the stage clock's current time
func (s *Stage) Step() {
	s.Frame(s.clock.Now())
}
