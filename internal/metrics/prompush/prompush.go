// Package prompush implements a Prometheus Pushgateway metrics recorder.
// A batch job has no scrape endpoint to expose, so metrics are collected in
// a private registry and pushed once at the end of the run.
//
// All Prometheus-specific dependencies live here; the rest of the project
// sees only metrics.Recorder.
package prompush

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rotisserie/eris"

	"catalogetl/internal/metrics"
)

// Recorder is a Pushgateway-backed metrics.Recorder.
type Recorder struct {
	gatewayURL string
	jobName    string
	reg        *prometheus.Registry

	stepCounter  *prometheus.CounterVec // catalog_etl_step_total
	stepDuration *prometheus.SummaryVec // catalog_etl_step_duration_seconds
	rowCounter   *prometheus.CounterVec // catalog_etl_rows_total
}

// New constructs a Recorder pushing to gatewayURL under the given job name.
func New(jobName, gatewayURL string) (*Recorder, error) {
	if gatewayURL == "" {
		return nil, eris.New("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "catalog_etl"
	}

	reg := prometheus.NewRegistry()

	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_etl_step_total",
			Help: "Pipeline stage executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "catalog_etl_step_duration_seconds",
			Help:       "Pipeline stage durations in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_etl_rows_total",
			Help: "Row counts per kind (fetched, loaded).",
		},
		[]string{"kind"},
	)

	for _, c := range []prometheus.Collector{stepCounter, stepDuration, rowCounter} {
		if err := reg.Register(c); err != nil {
			return nil, eris.Wrap(err, "prompush: register collector")
		}
	}

	return &Recorder{
		gatewayURL:   gatewayURL,
		jobName:      jobName,
		reg:          reg,
		stepCounter:  stepCounter,
		stepDuration: stepDuration,
		rowCounter:   rowCounter,
	}, nil
}

// RecordStep implements metrics.Recorder.
func (r *Recorder) RecordStep(step string, err error, d time.Duration) {
	status := metrics.StatusLabel(err)
	r.stepCounter.WithLabelValues(step, status).Inc()
	r.stepDuration.WithLabelValues(step, status).Observe(d.Seconds())
}

// RecordRows implements metrics.Recorder.
func (r *Recorder) RecordRows(kind string, n int) {
	r.rowCounter.WithLabelValues(kind).Add(float64(n))
}

// Flush pushes the registry to the Pushgateway.
func (r *Recorder) Flush() error {
	if err := push.New(r.gatewayURL, r.jobName).Gatherer(r.reg).Push(); err != nil {
		return eris.Wrap(err, "prompush: push")
	}
	return nil
}
