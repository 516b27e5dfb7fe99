// Package terminal hosts the scene stage on a tcell screen
// It translates terminal events into stage operations and composites every frame
package terminal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/luna-scenes/audio"
	"github.com/lixenwraith/luna-scenes/config"
	"github.com/lixenwraith/luna-scenes/core"
	"github.com/lixenwraith/luna-scenes/engine"
	"github.com/lixenwraith/luna-scenes/metrics"
	"github.com/lixenwraith/luna-scenes/page"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/render"
	"github.com/lixenwraith/luna-scenes/scene"
	"github.com/lixenwraith/luna-scenes/signature"
	"github.com/lixenwraith/luna-scenes/status"
)

// maxNameLen caps a typed signature name in runes
const maxNameLen = 24

// chimePitch tunes the arrival chime per variant; unlisted variants stay silent
var chimePitch = map[scene.Variant]float64{
	scene.VariantBackdrop:   1,
	scene.VariantSignatures: 1.5,
}

// Options wires an App
type Options struct {
	Screen tcell.Screen
	Config config.File
	// Clock defaults to wall time
	Clock    engine.Clock
	Store    *signature.Store
	Registry *status.Registry
	// Chimer plays arrival chimes, nil keeps the app silent
	Chimer *audio.Chimer
	// Exporter records frame timings, nil disables it
	Exporter *metrics.Exporter
	Log      zerolog.Logger
}

// App owns the screen, the stage and everything that feeds them
// Handle and Frame run on the scheduler goroutine only
type App struct {
	screen tcell.Screen
	clock  engine.Clock
	log    zerolog.Logger

	stage    *scene.Stage
	pages    *page.Manager
	sched    *engine.Scheduler
	comp     *render.Compositor
	keys     *KeyTable
	store    *signature.Store
	reg      *status.Registry
	chimer   *audio.Chimer
	exporter *metrics.Exporter

	overlay    bool
	statusText string
	statusAt   time.Time

	typing   bool
	name     []rune
	colorIdx int

	quit chan struct{}
}

// New builds the stage and opens the configured start page
func New(opts Options) (*App, error) {
	if opts.Clock == nil {
		opts.Clock = engine.NewTimeProvider()
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}
	if opts.Store == nil {
		opts.Store = signature.NewStore("", opts.Config.Signatures.Keep, opts.Clock.Now, opts.Log)
	}

	a := &App{
		screen:   opts.Screen,
		clock:    opts.Clock,
		log:      opts.Log,
		keys:     DefaultKeyTable(),
		store:    opts.Store,
		reg:      opts.Registry,
		chimer:   opts.Chimer,
		exporter: opts.Exporter,
		quit:     make(chan struct{}),
	}

	cfg := opts.Config
	a.stage = scene.NewStage(scene.Options{
		Clock:      a.clock,
		Governor:   cfg.GovernorConfig(),
		Tuning:     cfg.SceneTuning(),
		Hooks:      scene.Hooks{OnSpecialArrival: a.onArrival},
		Signatures: a.store.All,
		Registry:   a.reg,
		Seed:       cfg.Engine.Seed,
		Log:        a.log,
	})
	gov := a.stage.Governor()
	gov.SetAutoAdjust(cfg.Governor.AutoAdjust)
	if cfg.Governor.ForceLow {
		gov.ForceLowPerformance(true)
	}

	cols, rows := a.screen.Size()
	a.comp = render.NewCompositor(cols, rows)
	a.pages = page.NewManager(a.stage, page.Default(), cfg.Page.Omit, a.reg, a.log)
	a.pages.Resize(cols, rows)
	if err := a.pages.Switch(page.Name(cfg.Page.Start)); err != nil {
		return nil, err
	}

	a.sched = engine.NewScheduler(a.clock, cfg.Engine.FrameInterval.Duration, a.Frame, a.log)
	a.reg.Ints.Get(status.KeySignatures).Store(int64(a.store.Len()))
	return a, nil
}

// Stage exposes the scene stage
func (a *App) Stage() *scene.Stage {
	return a.stage
}

// Pages exposes the page manager
func (a *App) Pages() *page.Manager {
	return a.pages
}

// Scheduler exposes the frame scheduler
func (a *App) Scheduler() *engine.Scheduler {
	return a.sched
}

// Typing reports whether a signature name is being entered
func (a *App) Typing() bool {
	return a.typing
}

// Quit is closed once a quit key was handled
func (a *App) Quit() <-chan struct{} {
	return a.quit
}

func (a *App) requestQuit() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

// Run drives frames and polls the screen until ctx ends or a quit key arrives
func (a *App) Run(ctx context.Context) {
	a.sched.Start()

	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			a.sched.Post(func() { a.Handle(ev) })
		}
	})

	select {
	case <-ctx.Done():
	case <-a.quit:
	}
	a.sched.Stop()
	a.stage.StopAll()
	a.log.Info().Uint64("frames", a.sched.Frames()).Msg("host stopped")
}

// Handle applies one terminal event; it returns false once the app should quit
func (a *App) Handle(ev tcell.Event) bool {
	now := a.clock.Now()
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ev, now)

	case *tcell.EventMouse:
		x, y := ev.Position()
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			a.pages.ScrollBy(-1)
		case ev.Buttons()&tcell.WheelDown != 0:
			a.pages.ScrollBy(1)
		default:
			a.stage.PointerMoved(x, y, now)
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.comp.Resize(cols, rows)
		a.pages.Resize(cols, rows)
		a.screen.Sync()

	case *tcell.EventFocus:
		a.stage.SetActive(ev.Focused)
	}

	select {
	case <-a.quit:
		return false
	default:
		return true
	}
}

func (a *App) handleKey(ev *tcell.EventKey, now time.Time) {
	in := a.keys.Translate(ev, a.typing)
	switch in {
	case IntentQuit:
		a.requestQuit()
	case IntentTogglePause:
		a.stage.SetActive(!a.stage.Active())
	case IntentForceLow:
		gov := a.stage.Governor()
		gov.ForceLowPerformance(!gov.Forced())
	case IntentAutoAdjust:
		gov := a.stage.Governor()
		gov.SetAutoAdjust(!gov.AutoAdjust())
	case IntentResetRate:
		a.stage.Governor().ResetNow()
	case IntentOverlay:
		a.overlay = !a.overlay
		a.statusAt = time.Time{}

	case IntentLanding:
		a.switchPage(page.Landing)
	case IntentConvergence:
		a.switchPage(page.Convergence)
	case IntentSignatures:
		a.switchPage(page.Signatures)
	case IntentNextPage:
		if err := a.pages.Next(); err != nil {
			a.log.Warn().Err(err).Msg("page switch failed")
		}

	case IntentScrollUp:
		a.pages.ScrollBy(-1)
	case IntentScrollDown:
		a.pages.ScrollBy(1)
	case IntentScrollPageUp:
		_, rows := a.screen.Size()
		a.pages.ScrollBy(-max(rows/2, 1))
	case IntentScrollPageDown:
		_, rows := a.screen.Size()
		a.pages.ScrollBy(max(rows/2, 1))

	case IntentSign:
		a.typing = true
		a.name = a.name[:0]
		a.stage.Emphasize(false, now)

	case IntentTextChar:
		if len(a.name) < maxNameLen {
			a.name = append(a.name, ev.Rune())
		}
		a.stage.Emphasize(false, now)
	case IntentTextBackspace:
		if len(a.name) > 0 {
			a.name = a.name[:len(a.name)-1]
		}
	case IntentTextColor:
		a.colorIdx = (a.colorIdx + 1) % len(palette.SignatureColors)
	case IntentTextCancel:
		a.typing = false
		a.name = a.name[:0]
	case IntentTextConfirm:
		a.submit(now)
	}
}

func (a *App) switchPage(name page.Name) {
	if err := a.pages.Switch(name); err != nil {
		a.log.Warn().Err(err).Str("page", string(name)).Msg("page switch failed")
	}
}

// submit stores the typed signature and shows it in the running scenes
func (a *App) submit(now time.Time) {
	name := strings.TrimSpace(string(a.name))
	sig, err := a.store.Add(name, palette.SignatureColors[a.colorIdx])
	if errors.Is(err, signature.ErrEmptyName) {
		// A blank name keeps the prompt open
		return
	}
	if err != nil {
		a.log.Warn().Err(err).Msg("signature not persisted")
	}
	a.typing = false
	a.name = a.name[:0]
	a.stage.AddSignature(sig)
	a.stage.Emphasize(true, now)
	a.reg.Ints.Get(status.KeySignatures).Store(int64(a.store.Len()))
}

// onArrival runs on the frame goroutine when a pulse reaches a special point
func (a *App) onArrival(v scene.Variant) {
	pitch, ok := chimePitch[v]
	if !ok || a.chimer == nil {
		return
	}
	if a.chimer.Chime(a.clock.Now(), pitch) {
		a.reg.Ints.Get(status.KeyChimes).Add(1)
	}
}

// Frame steps the stage and presents the composited result
func (a *App) Frame(now time.Time) {
	a.stage.Frame(now)

	a.comp.Begin(palette.Black)
	a.stage.Draw(a.comp)
	a.comp.Flush(a.screen)
	a.drawOverlay(now)
	a.drawPrompt()
	a.screen.Show()

	if a.exporter != nil {
		a.exporter.ObserveFrame(a.clock.Now().Sub(now))
	}
}

func (a *App) drawOverlay(now time.Time) {
	if !a.overlay {
		return
	}
	if now.Sub(a.statusAt) >= parameter.StatusRefreshInterval {
		a.statusText = statusLine(a.reg.Snapshot())
		a.statusAt = now
	}
	x := drawText(a.screen, 0, 0, a.statusText, overlayStyle)
	fillRow(a.screen, x, 0, overlayStyle)
}

func (a *App) drawPrompt() {
	if !a.typing {
		return
	}
	_, rows := a.screen.Size()
	y := rows - 1
	if y < 0 {
		return
	}
	col := palette.SignatureColors[a.colorIdx]
	x := drawText(a.screen, 0, y, " sign: ", promptStyle.Foreground(render.Color(palette.White)))
	x = drawText(a.screen, x, y, string(a.name)+"_", promptStyle.Foreground(render.Color(col)))
	x = drawText(a.screen, x, y, "  [tab colour, enter save, esc cancel]", promptStyle.Foreground(render.Color(palette.RGB{R: 120, G: 120, B: 140})))
	fillRow(a.screen, x, y, promptStyle)
}
