package core_test

import (
	"strings"
	"testing"
	"time"

	"github.com/drfreeman816/VulkanTest/engine/core"
)

func TestMetricsRecordAndTotal(t *testing.T) {
	m := core.NewMetrics()

	m.Record("instance", 2*time.Millisecond)
	m.Record("surface", 3*time.Millisecond)

	if got := m.Total(); got != 5*time.Millisecond {
		t.Errorf("expected total 5ms, got %s", got)
	}
	samples := m.Samples()
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Name != "instance" || samples[1].Name != "surface" {
		t.Errorf("samples out of completion order: %+v", samples)
	}
}

func TestMetricsSummary(t *testing.T) {
	m := core.NewMetrics()
	if m.Summary() != "" {
		t.Errorf("empty metrics should render an empty summary, got %q", m.Summary())
	}

	m.Record("instance", 1500*time.Microsecond)
	m.Record("device", 250*time.Microsecond)

	s := m.Summary()
	if !strings.Contains(s, "instance=1.5ms") {
		t.Errorf("summary missing instance sample: %q", s)
	}
	if !strings.Contains(s, "device=250µs") {
		t.Errorf("summary missing device sample: %q", s)
	}
	if !strings.Contains(s, ", ") {
		t.Errorf("samples should be comma separated: %q", s)
	}
}
