package governor

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rebuilds struct {
	calls []Quality
	why   []Reason
}

func (r *rebuilds) fn(q Quality, why Reason) {
	r.calls = append(r.calls, q)
	r.why = append(r.why, why)
}

func newGov(r *rebuilds) *Governor {
	return New(DefaultConfig(), r.fn, zerolog.Nop())
}

func feed(g *Governor, fps float64, n int) int {
	changes := 0
	for i := 0; i < n; i++ {
		if g.Sample(fps) {
			changes++
		}
	}
	return changes
}

func TestEnterLowExactlyOnce(t *testing.T) {
	var r rebuilds
	g := newGov(&r)

	for i := 0; i < 9; i++ {
		assert.False(t, g.Sample(20))
	}
	assert.True(t, g.Sample(20))
	assert.Equal(t, ModeLow, g.Mode())
	assert.Zero(t, feed(g, 20, 30))

	require.Len(t, r.calls, 1)
	assert.Equal(t, Quality{Low: true, FrameSkip: 1}, r.calls[0])
	assert.Equal(t, ReasonSampled, r.why[0])
	assert.Equal(t, 1, g.Transitions())
}

func TestLeaveLowExactlyOnce(t *testing.T) {
	var r rebuilds
	g := newGov(&r)
	feed(g, 10, 10)
	require.True(t, g.Low())

	assert.Equal(t, 1, feed(g, 60, 10))
	assert.Equal(t, ModeNormal, g.Mode())
	assert.Zero(t, feed(g, 60, 30))
	require.Len(t, r.calls, 2)
	assert.Equal(t, Quality{}, r.calls[1])
}

func TestHysteresisBand(t *testing.T) {
	var r rebuilds
	g := newGov(&r)
	assert.Zero(t, feed(g, 40, 50))
	feed(g, 10, 10)
	require.True(t, g.Low())
	assert.Zero(t, feed(g, 40, 50))
	assert.True(t, g.Low())
}

func TestWindowNeedsFullAverage(t *testing.T) {
	g := newGov(&rebuilds{})
	feed(g, 60, 9)
	_, ok := g.Average()
	assert.False(t, ok)
	// One slow frame among fast ones keeps the average high
	assert.False(t, g.Sample(1))
	avg, ok := g.Average()
	require.True(t, ok)
	assert.InDelta(t, 54.1, avg, 1e-9)
}

func TestDiscardInvalidSamples(t *testing.T) {
	g := newGov(&rebuilds{})
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -5} {
		for i := 0; i < 10; i++ {
			assert.False(t, g.Sample(v))
		}
	}
	_, ok := g.Average()
	assert.False(t, ok)
	assert.Equal(t, ModeNormal, g.Mode())
}

func TestObserveConvertsIntervals(t *testing.T) {
	g := newGov(&rebuilds{})
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	assert.False(t, g.Observe(now))
	// Zero interval is an infinite rate and dropped
	assert.False(t, g.Observe(now))

	changed := false
	for i := 0; i < 10; i++ {
		now = now.Add(50 * time.Millisecond)
		changed = g.Observe(now) || changed
	}
	assert.True(t, changed)
	assert.True(t, g.Low())
}

// TestForcedLowIgnoresSampling keeps low mode while the measured rate is high
func TestForcedLowIgnoresSampling(t *testing.T) {
	var r rebuilds
	g := newGov(&r)
	g.ForceLowPerformance(true)
	g.ForceLowPerformance(true)
	require.Len(t, r.calls, 1)
	assert.Equal(t, ReasonForced, r.why[0])
	assert.True(t, r.calls[0].Low)

	assert.Zero(t, feed(g, 120, 40))
	assert.True(t, g.Low())

	g.ForceLowPerformance(false)
	assert.False(t, g.Low())
	require.Len(t, r.calls, 2)
}

func TestForceWhileAlreadyLow(t *testing.T) {
	var r rebuilds
	g := newGov(&r)
	feed(g, 10, 10)
	g.ForceLowPerformance(true)
	assert.Len(t, r.calls, 1)
	assert.True(t, g.Forced())
}

func TestAutoAdjustOff(t *testing.T) {
	var r rebuilds
	g := newGov(&r)
	g.SetAutoAdjust(false)
	assert.False(t, g.AutoAdjust())
	assert.Zero(t, feed(g, 5, 100))
	assert.Equal(t, ModeNormal, g.Mode())

	g.SetAutoAdjust(true)
	assert.Equal(t, 1, feed(g, 5, 10))
}

func TestResetNowKeepsMode(t *testing.T) {
	var r rebuilds
	g := newGov(&r)
	feed(g, 60, 5)
	g.ResetNow()
	require.Len(t, r.calls, 1)
	assert.Equal(t, ReasonManual, r.why[0])
	assert.Equal(t, ModeNormal, g.Mode())
	assert.Zero(t, g.Transitions())
	_, ok := g.Average()
	assert.False(t, ok)
}

func TestSkipFrame(t *testing.T) {
	g := newGov(&rebuilds{})
	for n := uint64(0); n < 4; n++ {
		assert.False(t, g.SkipFrame(n))
	}
	g.ForceLowPerformance(true)
	assert.False(t, g.SkipFrame(0))
	assert.True(t, g.SkipFrame(1))
	assert.False(t, g.SkipFrame(2))
}

func TestConfigDefaults(t *testing.T) {
	g := New(Config{LowFPS: 40, HighFPS: 20}, nil, zerolog.Nop())
	cfg := g.Config()
	assert.Equal(t, 10, cfg.Window)
	assert.Equal(t, 50.0, cfg.HighFPS)
	g.ResetNow()
	assert.Equal(t, "normal", g.Mode().String())
}
