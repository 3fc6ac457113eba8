package updater

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultNamespace   = "patchwork"
	defaultTracerName  = "patchwork"
	defaultHistorySize = 100
)

type options struct {
	logger      *slog.Logger
	registry    prometheus.Registerer
	namespace   string
	buckets     []float64
	provider    trace.TracerProvider
	tracerName  string
	historySize int
}

// Option configures an Updater.
type Option func(*options)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry registers the updater's metrics with registry. Without it
// metrics are still collected but not exported.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(o *options) {
		o.namespace = namespace
	}
}

// WithBuckets sets the update duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(o *options) {
		o.buckets = buckets
	}
}

// WithTracerProvider sets the tracer provider. Default: the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.provider = tp
	}
}

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(o *options) {
		o.tracerName = name
	}
}

// WithHistorySize sets how many patch frames are kept for resync.
func WithHistorySize(n int) Option {
	return func(o *options) {
		o.historySize = n
	}
}

func defaultOptions() options {
	return options{
		logger:      slog.Default(),
		namespace:   defaultNamespace,
		buckets:     prometheus.DefBuckets,
		tracerName:  defaultTracerName,
		historySize: defaultHistorySize,
	}
}

func (o *options) tracer() trace.Tracer {
	tp := o.provider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(o.tracerName)
}
