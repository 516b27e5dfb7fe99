package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/scene"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseOverridesOnlyGivenKeys(t *testing.T) {
	f, err := Parse([]byte(`
[engine]
seed = 99

[governor]
low_fps = 25.0
auto_adjust = false

[audio]
enabled = true
gap = "400ms"

[page]
start = "convergence"
omit = [".neural-simulation"]

[tuning.cell]
count = 12
fire_chance_low = 0.002
`))
	require.NoError(t, err)

	assert.Equal(t, int64(99), f.Engine.Seed)
	assert.Equal(t, parameter.FrameInterval, f.Engine.FrameInterval.Duration)
	assert.Equal(t, 25.0, f.Governor.LowFPS)
	assert.Equal(t, parameter.GovernorHighFPS, f.Governor.HighFPS)
	assert.False(t, f.Governor.AutoAdjust)
	assert.True(t, f.Audio.Enabled)
	assert.Equal(t, 400*time.Millisecond, f.Audio.Gap.Duration)
	assert.Equal(t, "convergence", f.Page.Start)
	assert.Equal(t, []string{".neural-simulation"}, f.Page.Omit)

	tune := f.SceneTuning()
	require.Contains(t, tune, scene.VariantCell)
	assert.Equal(t, 12, tune[scene.VariantCell].Count)
	assert.Equal(t, 0.002, tune[scene.VariantCell].FireChanceLow)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"hysteresis", "[governor]\nlow_fps = 60.0\nhigh_fps = 50.0\n"},
		{"window", "[governor]\nwindow = 0\n"},
		{"page", "[page]\nstart = \"about\"\n"},
		{"variant", "[tuning.galaxy]\ncount = 3\n"},
		{"chance", "[tuning.neural]\nfire_chance = 1.5\n"},
		{"keep", "[signatures]\nkeep = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[engine\nseed = 1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestParseBadDuration(t *testing.T) {
	_, err := Parse([]byte("[audio]\ngap = \"soon\"\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Page, f.Page)

	path := filepath.Join(t.TempDir(), "luna.toml")
	require.NoError(t, os.WriteFile(path, []byte("[metrics]\naddr = \":9108\"\n"), 0o644))
	f, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9108", f.Metrics.Addr)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestConversions(t *testing.T) {
	f := Default()
	f.Audio.Frequency = 440
	f.Governor.LowFrameSkip = 2

	assert.Equal(t, 440.0, f.AudioConfig().Tone.Frequency)
	assert.Equal(t, parameter.ChimeGap, f.AudioConfig().Gap)
	assert.Equal(t, 2, f.GovernorConfig().LowFrameSkip)
	assert.Equal(t, parameter.GovernorWindow, f.GovernorConfig().Window)
}
