// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"

	"github.com/siemens/urlcheck/types"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder records probe verdicts as Prometheus metrics in its own registry,
// so that multiple runs (and tests) never step on each other's toes.
type Recorder struct {
	registry *prometheus.Registry

	probes   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	statuses *prometheus.CounterVec
	workers  prometheus.Gauge
	capacity prometheus.Gauge
}

// New returns a new Recorder with all its metrics registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		probes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urlcheck_probes_total",
				Help: "Total number of probed URLs by classification",
			},
			[]string{"class"}, // reachable|failed|indeterminate
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "urlcheck_probe_duration_seconds",
				Help:    "Duration of URL probes in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2, 4, 8},
			},
			[]string{"class"},
		),
		statuses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urlcheck_http_responses_total",
				Help: "Total number of HTTP responses received by status code class",
			},
			[]string{"code"}, // 1xx|2xx|3xx|4xx|5xx
		),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "urlcheck_workers",
			Help: "Number of concurrent probe workers",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "urlcheck_queue_capacity",
			Help: "Capacity of the URL hand-off queue",
		}),
	}
	r.registry.MustRegister(r.probes, r.latency, r.statuses, r.workers, r.capacity)
	// Make all classification series show up, even with zero counts.
	for _, c := range []types.Classification{types.Reachable, types.Failed, types.Indeterminate} {
		r.probes.WithLabelValues(c.String())
	}
	return r
}

// Registry returns the registry holding the recorded metrics.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// SetRunParameters records the number of workers and the queue capacity.
func (r *Recorder) SetRunParameters(workers, capacity int) {
	r.workers.Set(float64(workers))
	r.capacity.Set(float64(capacity))
}

// Observe records a single verdict. Observe is safe for concurrent use.
func (r *Recorder) Observe(v types.Verdict) {
	class := v.Class.String()
	r.probes.WithLabelValues(class).Inc()
	r.latency.WithLabelValues(class).Observe(v.Latency.Seconds())
	if v.StatusCode >= 100 && v.StatusCode < 600 {
		r.statuses.WithLabelValues(fmt.Sprintf("%dxx", v.StatusCode/100)).Inc()
	}
}

// WriteTextfile writes the recorded metrics in the Prometheus text format to
// the specified file, such as for picking up by node_exporter's textfile
// collector. The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
