// Package metrics exports toast lifecycle counters to Prometheus.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jmylchreest/toaststack/internal/toast"
)

// Stack is the part of a toast registry the gauges read.
type Stack interface {
	VisibleCount() int
	QueuedCount() int
}

// ToastMetrics counts toast lifecycle events. It implements toast.Observer
// and prometheus.Collector.
type ToastMetrics struct {
	ShownTotal    *prometheus.CounterVec   // Toasts admitted to the stack by preset
	QueuedTotal   *prometheus.CounterVec   // Toasts that had to wait for a slot by preset
	ClosedTotal   *prometheus.CounterVec   // Toasts that left the stack or queue by preset
	ResetsTotal   prometheus.Counter       // Registry resets
	DisplayTime   *prometheus.HistogramVec // Configured display duration of shown toasts
	VisibleToasts prometheus.Gauge         // Toasts currently on screen
	QueuedToasts  prometheus.Gauge         // Toasts currently waiting

	stack Stack
}

// NewToastMetrics creates and registers the toast metrics. stack, if
// non-nil, is read after every event to update the gauges.
func NewToastMetrics(registry prometheus.Registerer, stack Stack) (*ToastMetrics, error) {
	m := &ToastMetrics{stack: stack}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register toast metrics: %w", err)
	}
	return m, nil
}

func (m *ToastMetrics) initMetrics() {
	m.ShownTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toaststack_toasts_shown_total",
			Help: "Total number of toasts admitted to the stack by preset",
		},
		[]string{"preset"},
	)

	m.QueuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toaststack_toasts_queued_total",
			Help: "Total number of toasts that waited for a free slot by preset",
		},
		[]string{"preset"},
	)

	m.ClosedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toaststack_toasts_closed_total",
			Help: "Total number of toasts closed by preset",
		},
		[]string{"preset"},
	)

	m.ResetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "toaststack_resets_total",
			Help: "Total number of registry resets",
		},
	)

	m.DisplayTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toaststack_toast_display_duration_seconds",
			Help:    "Configured auto-dismiss duration of shown toasts, 0 for sticky toasts",
			Buckets: []float64{0, 1, 2.5, 5, 10, 30, 60}, // sticky to one minute
		},
		[]string{"preset"},
	)

	m.VisibleToasts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "toaststack_visible_toasts",
			Help: "Number of toasts currently on screen",
		},
	)

	m.QueuedToasts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "toaststack_queued_toasts",
			Help: "Number of toasts currently waiting for a slot",
		},
	)
}

// ToastEvent implements toast.Observer.
func (m *ToastMetrics) ToastEvent(e toast.Event, t *toast.Toast) {
	switch e {
	case toast.EventShown:
		preset := presetLabel(t)
		m.ShownTotal.WithLabelValues(preset).Inc()
		m.DisplayTime.WithLabelValues(preset).Observe(float64(t.Duration()) / 1000)
	case toast.EventQueued:
		m.QueuedTotal.WithLabelValues(presetLabel(t)).Inc()
	case toast.EventClosed:
		m.ClosedTotal.WithLabelValues(presetLabel(t)).Inc()
	case toast.EventReset:
		m.ResetsTotal.Inc()
	}

	if m.stack != nil {
		m.VisibleToasts.Set(float64(m.stack.VisibleCount()))
		m.QueuedToasts.Set(float64(m.stack.QueuedCount()))
	}
}

func presetLabel(t *toast.Toast) string {
	if t == nil {
		return "none"
	}
	p := t.Style().Preset
	if !p.Valid() {
		return "none"
	}
	return p.String()
}

// Collect implements the prometheus.Collector interface.
func (m *ToastMetrics) Collect(ch chan<- prometheus.Metric) {
	m.ShownTotal.Collect(ch)
	m.QueuedTotal.Collect(ch)
	m.ClosedTotal.Collect(ch)
	m.ResetsTotal.Collect(ch)
	m.DisplayTime.Collect(ch)
	m.VisibleToasts.Collect(ch)
	m.QueuedToasts.Collect(ch)
}

// Describe implements the prometheus.Collector interface.
func (m *ToastMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.ShownTotal.Describe(ch)
	m.QueuedTotal.Describe(ch)
	m.ClosedTotal.Describe(ch)
	m.ResetsTotal.Describe(ch)
	m.DisplayTime.Describe(ch)
	m.VisibleToasts.Describe(ch)
	m.QueuedToasts.Describe(ch)
}
