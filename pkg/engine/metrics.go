package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the bridge's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "kestrel").
	Namespace string

	// Subsystem is the metrics subsystem (default: "bridge").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for boundary call duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the bridge metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
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

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "kestrel",
		Subsystem: "bridge",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// bridgeMetrics holds the Prometheus instruments for one bridge.
type bridgeMetrics struct {
	commandsSubmitted  prometheus.Counter
	responsesTotal     *prometheus.CounterVec
	unmatchedResponses prometheus.Counter
	eventsReceived     *prometheus.CounterVec
	entriesSkipped     prometheus.Counter
	callDuration       *prometheus.HistogramVec
	ticksTotal         prometheus.Counter
	bufferBytes        *prometheus.CounterVec
	liveBuffers        prometheus.Gauge
}

// newBridgeMetrics registers the bridge instruments.
func newBridgeMetrics(opts ...MetricsOption) *bridgeMetrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &bridgeMetrics{
		commandsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commands_submitted_total",
			Help:        "Total commands submitted to the core",
			ConstLabels: config.ConstLabels,
		}),

		responsesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "responses_total",
			Help:        "Total responses received from the core",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		unmatchedResponses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unmatched_responses_total",
			Help:        "Responses whose identifier matched no in-flight command",
			ConstLabels: config.ConstLabels,
		}),

		eventsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_received_total",
			Help:        "Events received from the core by category",
			ConstLabels: config.ConstLabels,
		}, []string{"category"}),

		entriesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "entries_skipped_total",
			Help:        "Batch entries skipped for unrecognized variants",
			ConstLabels: config.ConstLabels,
		}),

		callDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "call_duration_seconds",
			Help:        "Native boundary call duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),

		ticksTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ticks_total",
			Help:        "Total frame ticks driven through the core",
			ConstLabels: config.ConstLabels,
		}),

		bufferBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "buffer_bytes_total",
			Help:        "Bytes moved through exchange buffers by direction",
			ConstLabels: config.ConstLabels,
		}, []string{"direction"}),

		liveBuffers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_buffers",
			Help:        "Exchange buffer handles currently holding data",
			ConstLabels: config.ConstLabels,
		}),
	}
}
