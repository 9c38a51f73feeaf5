package metrics

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestTimingMetricRecord(t *testing.T) {
	m := newTimingMetric("test_op")
	m.Record(10 * time.Millisecond)
	m.Record(30 * time.Millisecond)
	m.Record(20 * time.Millisecond)

	if m.Count() != 3 {
		t.Errorf("Count = %d, want 3", m.Count())
	}
	if m.MaxNs() != (30 * time.Millisecond).Nanoseconds() {
		t.Errorf("MaxNs = %d", m.MaxNs())
	}
	if m.MinNs() != (10 * time.Millisecond).Nanoseconds() {
		t.Errorf("MinNs = %d", m.MinNs())
	}
	if m.AvgNs() != (20 * time.Millisecond).Nanoseconds() {
		t.Errorf("AvgNs = %d", m.AvgNs())
	}
}

func TestTimingMetricReset(t *testing.T) {
	m := newTimingMetric("test_op")
	m.Record(time.Millisecond)
	m.Reset()

	if m.Count() != 0 || m.TotalNs() != 0 || m.MinNs() != 0 {
		t.Errorf("reset left data: count=%d total=%d min=%d", m.Count(), m.TotalNs(), m.MinNs())
	}
}

func TestTimerRecordsElapsed(t *testing.T) {
	m := newTimingMetric("test_op")
	done := Timer(m)
	time.Sleep(5 * time.Millisecond)
	done()

	if m.Count() != 1 {
		t.Fatalf("Count = %d, want 1", m.Count())
	}
	if m.TotalNs() < (5 * time.Millisecond).Nanoseconds() {
		t.Errorf("TotalNs = %d, want >= 5ms", m.TotalNs())
	}
}

func TestDisabledCollection(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	m := newTimingMetric("test_op")
	m.Record(time.Millisecond)
	Timer(m)()

	if m.Count() != 0 {
		t.Errorf("disabled metric recorded %d measurements", m.Count())
	}
}

func TestAllTimingStatsSkipsEmpty(t *testing.T) {
	ResetAll()
	JSONParse.Record(time.Millisecond)

	stats := AllTimingStats()
	if len(stats) != 1 || stats[0].Name != "json_parse" {
		t.Errorf("stats = %+v", stats)
	}
	ResetAll()
}

func TestLogTimings(t *testing.T) {
	ResetAll()
	defer ResetAll()
	JSONParse.Record(2 * time.Millisecond)
	UIRender.Record(time.Millisecond)

	var lines []string
	LogTimings(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})

	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "json_parse") || !strings.Contains(lines[0], "count=1") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "ui_render") {
		t.Errorf("second line = %q", lines[1])
	}
}
