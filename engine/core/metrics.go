package core

import (
	"fmt"
	"strings"
	"time"
)

type StageSample struct {
	Name     string
	Duration time.Duration
}

// Metrics accumulates wall-clock timings for the startup stages of a single
// session. Main-thread only.
type Metrics struct {
	samples []StageSample
	total   time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record appends one stage sample in completion order.
func (m *Metrics) Record(name string, d time.Duration) {
	m.samples = append(m.samples, StageSample{Name: name, Duration: d})
	m.total += d
}

func (m *Metrics) Total() time.Duration {
	return m.total
}

func (m *Metrics) Samples() []StageSample {
	return m.samples
}

// Summary renders the recorded stages as a single line, in the order they
// completed.
func (m *Metrics) Summary() string {
	var sb strings.Builder
	for i, s := range m.samples {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%s", s.Name, s.Duration.Round(time.Microsecond))
	}
	return sb.String()
}
