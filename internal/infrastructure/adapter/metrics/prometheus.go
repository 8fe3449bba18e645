package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
)

const namespace = "polaroid_studio"

// Prometheus implements core.MetricsRecorder on its own registry
type Prometheus struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	generations      *prometheus.CounterVec
	generationTime   *prometheus.HistogramVec
	creditsCharged   prometheus.Counter
	rateLimitDenials *prometheus.CounterVec
}

var _ core.MetricsRecorder = (*Prometheus)(nil)

// NewPrometheus creates the collectors and registers them with a fresh registry
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"method", "route"},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "generation",
				Name:      "total",
				Help:      "Generations by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		generationTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "generation",
				Name:      "duration_seconds",
				Help:      "Time spent waiting on the image vendor.",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s to ~64s
			},
			[]string{"kind"},
		),
		creditsCharged: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "credit",
				Name:      "charged_total",
				Help:      "Credits deducted by settled generations.",
			},
		),
		rateLimitDenials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ratelimit",
				Name:      "denied_total",
				Help:      "Requests rejected by a rate limit rule.",
			},
			[]string{"rule"},
		),
	}

	p.registry.MustRegister(
		p.httpRequests,
		p.httpDuration,
		p.generations,
		p.generationTime,
		p.creditsCharged,
		p.rateLimitDenials,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return p
}

// Registry exposes the registry for additional collectors
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the prometheus text format
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Prometheus) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (p *Prometheus) RecordGeneration(kind, outcome string, duration time.Duration) {
	p.generations.WithLabelValues(kind, outcome).Inc()
	if duration > 0 {
		p.generationTime.WithLabelValues(kind).Observe(duration.Seconds())
	}
}

func (p *Prometheus) RecordCreditCharge(amount int64) {
	if amount > 0 {
		p.creditsCharged.Add(float64(amount))
	}
}

func (p *Prometheus) RecordRateLimitDenied(rule string) {
	p.rateLimitDenials.WithLabelValues(rule).Inc()
}
