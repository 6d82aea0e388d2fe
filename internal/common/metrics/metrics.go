package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ImagesRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "render_images_total",
			Help: "Feed images composed, by output format and theme",
		},
		[]string{"format", "theme"},
	)

	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "render_compose_duration_seconds",
			Help:    "Time spent composing a feed image",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4},
		},
		[]string{"format"},
	)

	LogoFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "render_logo_failures_total",
			Help: "Logos that failed to decode and were left out of the render",
		},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Collaborator calls by service and outcome",
		},
		[]string{"service", "outcome"},
	)
)
