// Package metrics exposes the status registry and frame timings to Prometheus
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/luna-scenes/status"
)

const namespace = "luna"

// statusCollector reads a registry snapshot on every scrape
// Keys are discovered at scrape time, so the collector is unchecked
type statusCollector struct {
	reg *status.Registry
}

func (c statusCollector) Describe(chan<- *prometheus.Desc) {}

func (c statusCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.reg.Snapshot()
	for k, v := range snap.Ints {
		ch <- gauge(k, float64(v))
	}
	for k, v := range snap.Floats {
		ch <- gauge(k, v)
	}
	for k, v := range snap.Bools {
		f := 0.0
		if v {
			f = 1
		}
		ch <- gauge(k, f)
	}
	for k, v := range snap.Strings {
		desc := prometheus.NewDesc(MetricName(k), "Status value "+k+" as an info label.", []string{"value"}, nil)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, 1, v)
	}
}

func gauge(key string, v float64) prometheus.Metric {
	desc := prometheus.NewDesc(MetricName(key), "Status value "+key+".", nil, nil)
	return prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, v)
}

// MetricName maps a registry key such as "scene.edges_drawn" to "luna_scene_edges_drawn"
func MetricName(key string) string {
	return namespace + "_" + strings.NewReplacer(".", "_", "-", "_").Replace(key)
}

// Exporter owns a Prometheus registry fed by the status registry and frame timings
type Exporter struct {
	reg   *prometheus.Registry
	frame prometheus.Histogram
	log   zerolog.Logger
}

// NewExporter registers status figures, frame timings and the Go runtime collector
func NewExporter(st *status.Registry, log zerolog.Logger) *Exporter {
	e := &Exporter{
		reg: prometheus.NewRegistry(),
		frame: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "frame_duration_seconds",
			Help:      "Time spent stepping and drawing one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
		log: log,
	}
	e.reg.MustRegister(
		statusCollector{reg: st},
		e.frame,
		prometheus.NewGoCollector(),
	)
	return e
}

// ObserveFrame records the duration of one frame
func (e *Exporter) ObserveFrame(d time.Duration) {
	e.frame.Observe(d.Seconds())
}

// Gatherer exposes the registry for tests and embedding
func (e *Exporter) Gatherer() prometheus.Gatherer {
	return e.reg
}

// Handler serves the registry in the Prometheus text format
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.reg, promhttp.HandlerOpts{})
}

// Serve listens on addr until ctx is done
func (e *Exporter) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	e.log.Info().Str("addr", addr).Msg("metrics endpoint listening")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		e.log.Info().Msg("metrics endpoint stopped")
		return nil
	}
}
