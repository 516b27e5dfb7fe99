package page

import (
	"image"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/luna-scenes/governor"
	"github.com/lixenwraith/luna-scenes/scene"
	"github.com/lixenwraith/luna-scenes/status"
)

func newManager(t *testing.T, omit ...string) (*Manager, *scene.Stage, *status.Registry) {
	t.Helper()
	reg := status.NewRegistry()
	stage := scene.NewStage(scene.Options{Governor: governor.DefaultConfig(), Seed: 7, Log: zerolog.Nop()})
	m := NewManager(stage, Default(), omit, reg, zerolog.Nop())
	m.Resize(100, 30)
	return m, stage, reg
}

func TestBoxRounding(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 100, 30), Full.rect(100, 30))
	assert.Equal(t, image.Rect(25, 1, 75, 14), Box{0.25, 0.02, 0.5, 0.46}.rect(100, 30))
}

func TestSwitchStartsPageScenes(t *testing.T) {
	m, stage, reg := newManager(t)
	require.NoError(t, m.Switch(Convergence))

	assert.Equal(t, Convergence, m.Current())
	assert.Equal(t, 6, stage.Len())
	_, ok := stage.Scene(".brain-simulation")
	assert.True(t, ok)
	assert.Equal(t, "convergence", reg.Snapshot().Strings[status.KeyPage])
}

func TestSwitchStopsPreviousScenes(t *testing.T) {
	m, stage, _ := newManager(t)
	require.NoError(t, m.Switch(Convergence))
	brain, _ := stage.Scene(".brain-simulation")

	require.NoError(t, m.Switch(Signatures))
	assert.False(t, brain.Alive())
	_, ok := stage.Scene(".brain-simulation")
	assert.False(t, ok)
	assert.Equal(t, 2, stage.Len())
}

func TestSwitchUnknownPage(t *testing.T) {
	m, _, _ := newManager(t)
	err := m.Switch("about")
	assert.ErrorIs(t, err, ErrUnknownPage)
	assert.Empty(t, m.Current())
}

func TestAbsentContainerIsSkipped(t *testing.T) {
	m, stage, _ := newManager(t, ".neural-simulation")
	require.NoError(t, m.Switch(Convergence))
	_, ok := stage.Scene(".neural-simulation")
	assert.False(t, ok)
	assert.Equal(t, 5, stage.Len())
}

func TestNextWraps(t *testing.T) {
	m, _, _ := newManager(t)
	require.NoError(t, m.Next())
	assert.Equal(t, Landing, m.Current())
	require.NoError(t, m.Next())
	assert.Equal(t, Convergence, m.Current())
	require.NoError(t, m.Next())
	require.NoError(t, m.Next())
	assert.Equal(t, Landing, m.Current())
}

func TestScrollMovesOnlyFlowingContainers(t *testing.T) {
	m, stage, _ := newManager(t)
	require.NoError(t, m.Switch(Landing))

	before, _ := m.Rect(".constellation")
	m.ScrollBy(10)
	assert.Equal(t, 10, m.Scroll())

	after, _ := m.Rect(".constellation")
	assert.Equal(t, before.Sub(image.Pt(0, 10)), after)

	sc, _ := stage.Scene(".constellation")
	assert.Equal(t, after, sc.Mount().Rect)

	bg, _ := m.Rect(".astrorganism-visualization")
	assert.Equal(t, image.Rect(0, 0, 100, 30), bg)
}

func TestScrollClamped(t *testing.T) {
	m, _, _ := newManager(t)
	require.NoError(t, m.Switch(Landing))
	m.ScrollBy(1000)
	assert.Equal(t, 30, m.Scroll())
	m.ScrollBy(-1000)
	assert.Zero(t, m.Scroll())

	require.NoError(t, m.Switch(Signatures))
	m.ScrollBy(5)
	assert.Zero(t, m.Scroll())
}

func TestResizeMovesScenes(t *testing.T) {
	m, stage, _ := newManager(t)
	require.NoError(t, m.Switch(Signatures))
	m.Resize(50, 20)

	sc, _ := stage.Scene(".signature-canvas")
	assert.Equal(t, image.Rect(5, 2, 45, 17), sc.Mount().Rect)
	assert.Equal(t, image.Rect(0, 0, 50, 20), m.Viewport())
}

func TestOffscreenScenesStayUnbuilt(t *testing.T) {
	m, stage, _ := newManager(t)
	require.NoError(t, m.Switch(Convergence))
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		now = now.Add(16 * time.Millisecond)
		stage.Frame(now)
	}

	cell, _ := stage.Scene(".cell-simulation")
	astro, _ := stage.Scene(".astrorganism-simulation")
	assert.True(t, cell.Built())
	assert.False(t, astro.Built())
}
