package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"stride/internal/session"
	"stride/internal/telemetry"
)

// Metrics represents the collection of session Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	SegmentsStarted *prometheus.CounterVec
	StepsTotal      *prometheus.CounterVec
	DistanceKm      *prometheus.CounterVec
	GoalsReached    *prometheus.CounterVec
	InputsDropped   *prometheus.CounterVec
	SessionState    *prometheus.GaugeVec
}

// NewMetrics creates the session metrics on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.SegmentsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stride_segments_started_total",
			Help: "Total number of run segments started",
		},
		[]string{"mode"},
	)

	m.StepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stride_steps_total",
			Help: "Total number of detected steps",
		},
		[]string{"mode"},
	)

	m.DistanceKm = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stride_distance_km_total",
			Help: "Accumulated great-circle distance in kilometers",
		},
		[]string{"mode"},
	)

	m.GoalsReached = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stride_goals_reached_total",
			Help: "Total number of goal-reached notifications",
		},
		[]string{"mode"},
	)

	m.InputsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stride_inputs_dropped_total",
			Help: "Samples or fixes ignored because they were malformed",
		},
		[]string{"mode", "reason"},
	)

	m.SessionState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stride_session_state",
			Help: "Current session state (1 for the active state, 0 otherwise)",
		},
		[]string{"mode", "state"},
	)

	m.registry.MustRegister(
		m.SegmentsStarted,
		m.StepsTotal,
		m.DistanceKm,
		m.GoalsReached,
		m.InputsDropped,
		m.SessionState,
	)

	return m
}

// Registry exposes the registry for the metrics server
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return telemetry.MetricsHandler(m.registry)
}

func (m *Metrics) SegmentStarted(mode string) {
	m.SegmentsStarted.WithLabelValues(mode).Inc()
}

func (m *Metrics) StepCounted(mode string) {
	m.StepsTotal.WithLabelValues(mode).Inc()
}

func (m *Metrics) DistanceAdded(mode string, km float64) {
	if km > 0 {
		m.DistanceKm.WithLabelValues(mode).Add(km)
	}
}

func (m *Metrics) GoalReached(mode string) {
	m.GoalsReached.WithLabelValues(mode).Inc()
}

func (m *Metrics) SampleDropped(mode, reason string) {
	m.InputsDropped.WithLabelValues(mode, reason).Inc()
}

// StateChanged sets the gauge for the new state and clears the others
func (m *Metrics) StateChanged(mode string, state session.State) {
	for _, s := range []session.State{session.Idle, session.Running, session.Paused, session.Blocked} {
		v := 0.0
		if s == state {
			v = 1
		}
		m.SessionState.WithLabelValues(mode, s.String()).Set(v)
	}
}

var _ session.Recorder = (*Metrics)(nil)
