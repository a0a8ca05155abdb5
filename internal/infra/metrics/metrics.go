// Package metrics exposes player metrics in the prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "negativespace"

// Outcome labels of control requests.
const (
	OutcomeAccepted = "accepted"
	OutcomeIgnored  = "ignored"
)

// Metrics holds the player collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Requests      *prometheus.CounterVec
	Events        *prometheus.CounterVec
	TrackSwitches prometheus.Counter
	RPCs          *prometheus.CounterVec
	Subscribers   prometheus.Gauge
	Volume        prometheus.Gauge
	Playing       prometheus.Gauge
}

// New creates the collectors. Process and Go runtime collectors are
// registered as well.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Control requests by action and outcome.",
		}, []string{"action", "outcome", "reason"}),
		Events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_events_total",
			Help:      "Playback events by type.",
		}, []string{"type"}),
		TrackSwitches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "track_switches_total",
			Help:      "Completed source swaps.",
		}),
		RPCs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and status code.",
		}, []string{"procedure", "code"}),
		Subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subscribers",
			Help:      "Active notification subscribers.",
		}),
		Volume: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "volume",
			Help:      "Output volume in [0,1].",
		}),
		Playing: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playing",
			Help:      "1 while the output is playing.",
		}),
	}
}

// ObserveRequest counts a control request. reason is empty for accepted requests.
func (m *Metrics) ObserveRequest(action, reason string) {
	outcome := OutcomeAccepted
	if reason != "" {
		outcome = OutcomeIgnored
	}
	m.Requests.WithLabelValues(action, outcome, reason).Inc()
}

// SetPlaying records the play state.
func (m *Metrics) SetPlaying(playing bool) {
	if playing {
		m.Playing.Set(1)
		return
	}
	m.Playing.Set(0)
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
