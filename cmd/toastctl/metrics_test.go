package main

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	shown := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "shown_total", Help: "shown"}, []string{"preset"})
	visible := prometheus.NewGauge(prometheus.GaugeOpts{Name: "visible", Help: "visible"})
	display := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "display_seconds", Help: "display"})
	reg.MustRegister(shown, visible, display)

	shown.WithLabelValues("success").Add(1200)
	visible.Set(2)
	display.Observe(2.5)
	display.Observe(5)

	var buf bytes.Buffer
	require.NoError(t, writeMetrics(&buf, reg))

	out := buf.String()
	assert.Contains(t, out, `shown_total{preset="success"} 1,200`)
	assert.Contains(t, out, "visible 2\n")
	assert.Contains(t, out, "display_seconds count=2 sum=7.5s")
}

func TestLabelString(t *testing.T) {
	name, value := "preset", "error-dark"
	other, v2 := "host", "a"

	tests := []struct {
		name   string
		labels []*dto.LabelPair
		want   string
	}{
		{"none", nil, ""},
		{"one", []*dto.LabelPair{{Name: &name, Value: &value}}, `{preset="error-dark"}`},
		{"two", []*dto.LabelPair{{Name: &other, Value: &v2}, {Name: &name, Value: &value}}, `{host="a",preset="error-dark"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labelString(tt.labels))
		})
	}
}
