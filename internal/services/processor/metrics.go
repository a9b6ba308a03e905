package processor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	observationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cwsi_observations_processed_total",
		Help: "Observations that completed the pipeline.",
	}, []string{"field_id"})

	domainErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cwsi_domain_errors_total",
		Help: "Observations rejected by a pipeline stage, by stage.",
	}, []string{"stage"})

	rangeWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cwsi_range_warnings_total",
		Help: "Derived quantities clamped back into their physical interval.",
	})

	weatherFillsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cwsi_weather_fills_total",
		Help: "Observations whose Ta/RH/ETc came from the station client.",
	})

	processSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cwsi_process_duration_seconds",
		Help:    "Wall time per observation, weather fill included.",
		Buckets: prometheus.DefBuckets,
	})
)
