// SPDX-License-Identifier: EPL-2.0

// Package metrics exposes the renderer's prometheus instruments. A nil
// *Metrics is valid and records nothing.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "hoapbx"

type Metrics struct {
	orientationUpdates prometheus.Counter
	transitions        *prometheus.CounterVec
	loadFailures       *prometheus.CounterVec
	yaw                prometheus.Gauge
	pitch              prometheus.Gauge
	framesRendered     prometheus.Counter
}

// New registers every instrument on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		orientationUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orientation_updates_total",
			Help:      "Look directions applied to the rotation stage.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Playback state transitions by target state.",
		}, []string{"state"}),
		loadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures_total",
			Help:      "Failed decode matrix and sample loads.",
		}, []string{"kind"}),
		yaw: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "yaw_degrees",
			Help:      "Current soundfield yaw.",
		}),
		pitch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pitch_degrees",
			Help:      "Current soundfield pitch.",
		}),
		framesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_rendered_total",
			Help:      "Frames produced by the renderer.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.orientationUpdates, m.transitions, m.loadFailures, m.yaw, m.pitch, m.framesRendered,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Orientation records one applied yaw/pitch pair.
func (m *Metrics) Orientation(yaw, pitch float64) {
	if m == nil {
		return
	}
	m.orientationUpdates.Inc()
	m.yaw.Set(yaw)
	m.pitch.Set(pitch)
}

func (m *Metrics) Transition(state string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(state).Inc()
}

// LoadFailure counts a failed load; kind is "decoder" or "sample".
func (m *Metrics) LoadFailure(kind string) {
	if m == nil {
		return
	}
	m.loadFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) FramesRendered(n int) {
	if m == nil {
		return
	}
	m.framesRendered.Add(float64(n))
}
