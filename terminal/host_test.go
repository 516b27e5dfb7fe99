package terminal

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/luna-scenes/audio"
	"github.com/lixenwraith/luna-scenes/config"
	"github.com/lixenwraith/luna-scenes/engine"
	"github.com/lixenwraith/luna-scenes/page"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/render"
	"github.com/lixenwraith/luna-scenes/scene"
	"github.com/lixenwraith/luna-scenes/signature"
	"github.com/lixenwraith/luna-scenes/status"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	app    *App
	screen tcell.SimulationScreen
	clock  *engine.MockClock
	store  *signature.Store
	reg    *status.Registry
}

func newHarness(t *testing.T, mutate func(*config.File)) *harness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(60, 20)

	cfg := config.Default()
	cfg.Engine.Seed = 11
	if mutate != nil {
		mutate(&cfg)
	}

	clock := engine.NewMockClock(t0)
	reg := status.NewRegistry()
	store := signature.NewStore(filepath.Join(t.TempDir(), "signatures.toml"), cfg.Signatures.Keep, clock.Now, zerolog.Nop())
	app, err := New(Options{
		Screen:   screen,
		Config:   cfg,
		Clock:    clock,
		Store:    store,
		Registry: reg,
		Log:      zerolog.Nop(),
	})
	require.NoError(t, err)
	return &harness{app: app, screen: screen, clock: clock, store: store, reg: reg}
}

func (h *harness) frames(n int) {
	for i := 0; i < n; i++ {
		h.clock.Advance(16 * time.Millisecond)
		h.app.Frame(h.clock.Now())
	}
}

func (h *harness) key(r rune) bool {
	return h.app.Handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func (h *harness) special(k tcell.Key) bool {
	return h.app.Handle(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (h *harness) row(y int) string {
	w, _ := h.screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := h.screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestTranslate(t *testing.T) {
	keys := DefaultKeyTable()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		text bool
		want Intent
	}{
		{"quit rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false, IntentQuit},
		{"ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false, IntentQuit},
		{"page", tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone), false, IntentConvergence},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), false, IntentNextPage},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), false, IntentNone},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModAlt), false, IntentNone},
		{"text rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true, IntentTextChar},
		{"text tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), true, IntentTextColor},
		{"text escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true, IntentTextCancel},
		{"text ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true, IntentQuit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys.Translate(tt.ev, tt.text))
		})
	}
}

func TestNewOpensStartPage(t *testing.T) {
	h := newHarness(t, func(f *config.File) { f.Page.Start = string(page.Signatures) })
	assert.Equal(t, page.Signatures, h.app.Pages().Current())
	_, ok := h.app.Stage().Scene(".signature-canvas")
	assert.True(t, ok)
}

func TestNewAppliesGovernorSettings(t *testing.T) {
	h := newHarness(t, func(f *config.File) {
		f.Governor.ForceLow = true
		f.Governor.AutoAdjust = false
	})
	gov := h.app.Stage().Governor()
	assert.True(t, gov.Forced())
	assert.True(t, gov.Low())
	assert.False(t, gov.AutoAdjust())
}

func TestFrameDrawsScenes(t *testing.T) {
	h := newHarness(t, nil)
	h.frames(5)

	lit := false
	for y := 0; y < 20 && !lit; y++ {
		for x := 0; x < 60; x++ {
			mainc, _, style, _ := h.screen.GetContent(x, y)
			fg, bg, _ := style.Decompose()
			if mainc == render.HalfBlock && (fg != render.Color(palette.Black) || bg != render.Color(palette.Black)) {
				lit = true
				break
			}
		}
	}
	assert.True(t, lit)
	assert.Equal(t, int64(5), h.reg.Snapshot().Ints[status.KeyFrames])
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t, nil)
	assert.True(t, h.key('x'))
	assert.False(t, h.key('q'))
	select {
	case <-h.app.Quit():
	default:
		t.Fatal("quit channel open")
	}
	// Repeated quit does not panic on the closed channel
	assert.False(t, h.special(tcell.KeyEscape))
}

func TestGovernorKeys(t *testing.T) {
	h := newHarness(t, nil)
	gov := h.app.Stage().Governor()

	h.key('l')
	assert.True(t, gov.Forced())
	h.key('l')
	assert.False(t, gov.Forced())

	h.key('a')
	assert.False(t, gov.AutoAdjust())
	h.key('a')
	assert.True(t, gov.AutoAdjust())

	h.key('p')
	assert.False(t, h.app.Stage().Active())
	h.key('p')
	assert.True(t, h.app.Stage().Active())
}

func TestPageKeys(t *testing.T) {
	h := newHarness(t, nil)
	h.key('2')
	assert.Equal(t, page.Convergence, h.app.Pages().Current())
	h.key('3')
	assert.Equal(t, page.Signatures, h.app.Pages().Current())
	h.special(tcell.KeyTab)
	assert.Equal(t, page.Landing, h.app.Pages().Current())
}

func TestScrollKeysAndWheel(t *testing.T) {
	h := newHarness(t, nil)
	h.special(tcell.KeyDown)
	h.key('j')
	assert.Equal(t, 2, h.app.Pages().Scroll())

	h.app.Handle(tcell.NewEventMouse(3, 3, tcell.WheelDown, tcell.ModNone))
	assert.Equal(t, 3, h.app.Pages().Scroll())
	h.app.Handle(tcell.NewEventMouse(3, 3, tcell.WheelUp, tcell.ModNone))
	assert.Equal(t, 2, h.app.Pages().Scroll())

	h.special(tcell.KeyPgDn)
	assert.Equal(t, 12, h.app.Pages().Scroll())
	h.special(tcell.KeyPgUp)
	h.special(tcell.KeyUp)
	assert.Equal(t, 1, h.app.Pages().Scroll())
}

func TestResizeFollowsTerminal(t *testing.T) {
	h := newHarness(t, nil)
	h.screen.SetSize(40, 12)
	h.app.Handle(tcell.NewEventResize(40, 12))
	assert.Equal(t, 40, h.app.Pages().Viewport().Dx())
	assert.Equal(t, 12, h.app.Pages().Viewport().Dy())
	h.frames(1)
}

func TestFocusPausesStage(t *testing.T) {
	h := newHarness(t, nil)
	h.app.Handle(tcell.NewEventFocus(false))
	assert.False(t, h.app.Stage().Active())
	h.app.Handle(tcell.NewEventFocus(true))
	assert.True(t, h.app.Stage().Active())
}

func TestSignatureEntry(t *testing.T) {
	h := newHarness(t, func(f *config.File) { f.Page.Start = string(page.Signatures) })
	h.frames(1)
	before := h.store.Len()

	h.key('s')
	require.True(t, h.app.Typing())
	for _, r := range "Selene" {
		h.key(r)
	}
	h.special(tcell.KeyBackspace2)
	h.key('e')
	h.special(tcell.KeyTab)

	h.frames(1)
	assert.Contains(t, h.row(19), "sign: Selene_")

	h.special(tcell.KeyEnter)
	assert.False(t, h.app.Typing())
	require.Equal(t, before+1, h.store.Len())
	sigs := h.store.All()
	last := sigs[len(sigs)-1]
	assert.Equal(t, "Selene", last.Name)
	assert.Equal(t, palette.Gold, last.Color)
	assert.Equal(t, int64(before+1), h.reg.Snapshot().Ints[status.KeySignatures])

	// Typed letters never reach the page bindings
	assert.Equal(t, page.Signatures, h.app.Pages().Current())
}

func TestBlankSignatureKeepsPrompt(t *testing.T) {
	h := newHarness(t, nil)
	before := h.store.Len()
	h.key('s')
	h.key(' ')
	h.special(tcell.KeyEnter)
	assert.True(t, h.app.Typing())
	assert.Equal(t, before, h.store.Len())

	h.special(tcell.KeyEscape)
	assert.False(t, h.app.Typing())
	// Escape while typing cancels instead of quitting
	select {
	case <-h.app.Quit():
		t.Fatal("escape quit while typing")
	default:
	}
}

func TestOverlayShowsStatus(t *testing.T) {
	h := newHarness(t, nil)
	h.key('o')
	h.frames(2)
	line := h.row(0)
	assert.Contains(t, line, "landing")
	assert.Contains(t, line, "normal")

	h.key('l')
	h.frames(1)
	// Text refreshes on its own interval
	assert.NotContains(t, h.row(0), "forced")
	h.clock.Advance(300 * time.Millisecond)
	h.frames(1)
	assert.Contains(t, h.row(0), "(forced)")
}

func TestArrivalChimes(t *testing.T) {
	h := newHarness(t, nil)
	chimer := audio.New(audio.DefaultConfig(), zerolog.Nop())
	mixer := chimer.Attach()
	h.app.chimer = chimer

	h.app.onArrival(scene.VariantBackdrop)
	h.app.onArrival(scene.VariantBackdrop)
	h.app.onArrival(scene.VariantCell)

	assert.Equal(t, int64(1), chimer.Played())
	assert.Equal(t, 1, mixer.Len())
	assert.Equal(t, int64(1), h.reg.Snapshot().Ints[status.KeyChimes])
}

func TestRunStopsOnContext(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.app.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return")
	}
	assert.Zero(t, h.app.Stage().Len())
}
