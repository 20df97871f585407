package server

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/proptree/proptree/pkg/compose"
)

// MetricsConfig configures the Prometheus collectors of a Server.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "proptree").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for composition duration.
	// Default: prometheus.DefBuckets
	Buckets []float64
}

type metrics struct {
	compositions        *prometheus.CounterVec
	compositionDuration *prometheus.HistogramVec
	compositionErrors   *prometheus.CounterVec
	mounts              *prometheus.CounterVec
	dispatches          *prometheus.CounterVec
	alerts              prometheus.Counter
	liveClients         prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer, config MetricsConfig) *metrics {
	if config.Namespace == "" {
		config.Namespace = "proptree"
	}
	if len(config.Buckets) == 0 {
		config.Buckets = prometheus.DefBuckets
	}
	factory := promauto.With(reg)

	return &metrics{
		compositions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "compositions_total",
			Help:        "Total number of compositions by page and status",
			ConstLabels: config.ConstLabels,
		}, []string{"page", "status"}),

		compositionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "composition_duration_seconds",
			Help:        "Composition duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"page"}),

		compositionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "composition_errors_total",
			Help:        "Total number of failed compositions by error kind",
			ConstLabels: config.ConstLabels,
		}, []string{"page", "kind"}),

		mounts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "mounts_total",
			Help:        "Total number of trees mounted by target",
			ConstLabels: config.ConstLabels,
		}, []string{"target"}),

		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "dispatches_total",
			Help:        "Total number of dispatched events by target, event and status",
			ConstLabels: config.ConstLabels,
		}, []string{"target", "event", "status"}),

		alerts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "alerts_total",
			Help:        "Total number of alerts raised by callbacks",
			ConstLabels: config.ConstLabels,
		}),

		liveClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "live_clients",
			Help:        "Number of connected live clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// recordComposition records the outcome of one composition.
func (m *metrics) recordComposition(page string, d time.Duration, err error) {
	m.compositionDuration.WithLabelValues(page).Observe(d.Seconds())
	if err == nil {
		m.compositions.WithLabelValues(page, "ok").Inc()
		return
	}
	m.compositions.WithLabelValues(page, "error").Inc()
	m.compositionErrors.WithLabelValues(page, errorKind(err)).Inc()
}

// errorKind names the failure class of a composition error.
func errorKind(err error) string {
	var ce *compose.Error
	if errors.As(err, &ce) {
		return ce.Kind.String()
	}
	return "other"
}
