package updater

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

type metrics struct {
	updatesTotal   prometheus.Counter
	patchesTotal   *prometheus.CounterVec
	updateDuration prometheus.Histogram
	applyErrors    prometheus.Counter
	subscribers    prometheus.Gauge
}

// newMetrics creates the updater metrics. A nil registry leaves them
// unregistered.
func newMetrics(o options) *metrics {
	factory := promauto.With(o.registry)

	return &metrics{
		updatesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "updates_total",
			Help:      "Total number of view updates that produced patches",
		}),

		patchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "patches_total",
			Help:      "Total number of patches emitted by operation",
		}, []string{"op"}),

		updateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "update_duration_seconds",
			Help:      "Diff and apply duration in seconds",
			Buckets:   o.buckets,
		}),

		applyErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "apply_errors_total",
			Help:      "Total number of failed patch applications",
		}),

		subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Name:      "subscribers",
			Help:      "Number of active patch subscribers",
		}),
	}
}

func (m *metrics) recordPatches(patches []vdom.Patch) {
	for _, p := range patches {
		m.patchesTotal.WithLabelValues(p.Op.String()).Inc()
	}
}
