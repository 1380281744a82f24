package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
)

// Recorder exports run and path counters.
type Recorder struct {
	runs     *prometheus.CounterVec
	paths    prometheus.Counter
	duration *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		runs: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratesim_runs_total",
				Help: "Simulation runs by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		paths: f.NewCounter(
			prometheus.CounterOpts{
				Name: "ratesim_paths_total",
				Help: "Sample paths delivered by successful runs",
			},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ratesim_run_duration_seconds",
				Help:    "Wall time of a simulation run",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"source"},
		),
	}
}

// ObserveRun records one finished run. Paths count only when err is nil.
func (r *Recorder) ObserveRun(source string, elapsed time.Duration, paths int, err error) {
	if err == nil {
		r.paths.Add(float64(paths))
	}
	r.runs.WithLabelValues(source, Outcome(err)).Inc()
	r.duration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// Outcome maps a run error to a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrConfig):
		return "config_error"
	case errors.Is(err, model.ErrEvaluation):
		return "evaluation_error"
	case errors.Is(err, model.ErrNumeric):
		return "numeric_error"
	case errors.Is(err, model.ErrCanceled):
		return "canceled"
	default:
		return "error"
	}
}
