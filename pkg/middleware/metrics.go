package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/axon/pkg/reactive"
	"github.com/vango-dev/axon/pkg/server"
)

// MetricsPath is where Instrument serves metrics.
const MetricsPath = "/metrics"

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "axon").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registerer registers the metrics.
	// Default: prometheus.DefaultRegisterer
	Registerer prometheus.Registerer

	// Gatherer is served by Handler.
	// Default: prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry registers and serves metrics from registry.
func WithRegistry(registry *prometheus.Registry) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registerer = registry
		c.Gatherer = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:  "axon",
		Buckets:    prometheus.DefBuckets,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	}
}

// Metrics holds the Prometheus collectors for one server.
type Metrics struct {
	gatherer prometheus.Gatherer

	eventsTotal     *prometheus.CounterVec
	eventDuration   *prometheus.HistogramVec
	eventErrors     *prometheus.CounterVec
	patchesSent     prometheus.Counter
	activeSessions  prometheus.Gauge
	sessionDuration prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registerer)

	return &Metrics{
		gatherer: config.Gatherer,

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of client events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"type"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of event processing errors",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "error_type"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of patches sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		sessionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "session_duration_seconds",
			Help:        "Session lifetime in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 10, 60, 300, 1800, 3600, 14400},
		}),
	}
}

// Middleware returns event middleware that counts and times events.
func (m *Metrics) Middleware() server.Middleware {
	return server.MiddlewareFunc(func(c *server.EventContext, next func() error) error {
		typ := c.Event.Type

		start := time.Now()
		err := next()
		m.eventDuration.WithLabelValues(typ).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.eventErrors.WithLabelValues(typ, categorizeError(err)).Inc()
		}
		m.eventsTotal.WithLabelValues(typ, status).Inc()

		return err
	})
}

// Hooks returns session hooks that track sessions and patches.
func (m *Metrics) Hooks() server.Hooks {
	return server.Hooks{
		OnSessionStart: func(*server.Session) {
			m.activeSessions.Inc()
		},
		OnSessionClose: func(s *server.Session) {
			m.activeSessions.Dec()
			m.sessionDuration.Observe(time.Since(s.Stats().CreatedAt).Seconds())
		},
		OnPatches: func(_ *server.Session, n int) {
			m.patchesSent.Add(float64(n))
		},
	}
}

// Handler serves the gathered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Instrument installs the middleware and hooks on srv and serves metrics
// at MetricsPath.
func (m *Metrics) Instrument(srv *server.Server) {
	srv.Use(m.Middleware())
	srv.Observe(m.Hooks())
	srv.Handle(MetricsPath, m.Handler())
}

// categorizeError returns a low-cardinality label for err.
func categorizeError(err error) string {
	var he *server.HandlerError
	switch {
	case errors.Is(err, reactive.ErrCascadeTooDeep):
		return "cascade"
	case errors.Is(err, server.ErrUnknownNode):
		return "unknown_node"
	case errors.As(err, &he):
		return "panic"
	default:
		return "internal"
	}
}
