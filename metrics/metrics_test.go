package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/luna-scenes/status"
)

func TestMetricName(t *testing.T) {
	assert.Equal(t, "luna_scene_edges_drawn", MetricName(status.KeyEdgesDrawn))
	assert.Equal(t, "luna_governor_low", MetricName(status.KeyLowMode))
}

func TestGatherStatusFigures(t *testing.T) {
	st := status.NewRegistry()
	st.Ints.Get(status.KeyPulses).Store(12)
	st.Floats.Get(status.KeyFPS).Set(58.5)
	st.Bools.Get(status.KeyLowMode).Store(true)
	st.Strings.Get(status.KeyMode).Store("low")

	e := NewExporter(st, zerolog.Nop())
	e.ObserveFrame(3 * time.Millisecond)

	families, err := e.Gatherer().Gather()
	require.NoError(t, err)
	byName := make(map[string]float64)
	labels := make(map[string]string)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if g := m.GetGauge(); g != nil {
				byName[mf.GetName()] = g.GetValue()
			}
			for _, l := range m.GetLabel() {
				labels[mf.GetName()] = l.GetValue()
			}
			if h := m.GetHistogram(); h != nil {
				byName[mf.GetName()] = float64(h.GetSampleCount())
			}
		}
	}

	assert.Equal(t, 12.0, byName["luna_scene_pulses"])
	assert.Equal(t, 58.5, byName["luna_engine_fps"])
	assert.Equal(t, 1.0, byName["luna_governor_low"])
	assert.Equal(t, "low", labels["luna_governor_mode"])
	assert.Equal(t, 1.0, byName["luna_engine_frame_duration_seconds"])
}

func TestHandlerServesText(t *testing.T) {
	st := status.NewRegistry()
	st.Ints.Get(status.KeyScenes).Store(3)
	e := NewExporter(st, zerolog.Nop())

	rec := httptest.NewRecorder()
	e.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "luna_scene_count 3")
}
