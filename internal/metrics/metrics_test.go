package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// getMetricValue reads the current value of a gauge or counter.
func getMetricValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	m := <-ch

	pb := &dto.Metric{}
	if err := m.Write(pb); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	switch {
	case pb.Gauge != nil:
		return pb.Gauge.GetValue()
	case pb.Counter != nil:
		return pb.Counter.GetValue()
	}
	t.Fatal("metric is neither a gauge nor a counter")
	return 0
}

func TestObserveLoad(t *testing.T) {
	r := New()
	r.ObserveLoad(1500*time.Millisecond, 42)

	if got := getMetricValue(t, r.ScheduleLoadSeconds); got != 1.5 {
		t.Errorf("load seconds = %v, want 1.5", got)
	}
	if got := getMetricValue(t, r.ScheduleStops); got != 42 {
		t.Errorf("stops = %v, want 42", got)
	}
}

func TestObserveFetch(t *testing.T) {
	r := New()
	r.ObserveFetch(nil, 7)
	r.ObserveFetch(nil, 3)
	r.ObserveFetch(errors.New("timeout"), 0)

	if got := getMetricValue(t, r.RealtimeFetches.WithLabelValues("ok")); got != 2 {
		t.Errorf("ok fetches = %v, want 2", got)
	}
	if got := getMetricValue(t, r.RealtimeFetches.WithLabelValues("error")); got != 1 {
		t.Errorf("error fetches = %v, want 1", got)
	}
	if got := getMetricValue(t, r.RealtimeDelays); got != 0 {
		t.Errorf("delays after a failed fetch = %v, want 0", got)
	}
}

func TestWriteFile(t *testing.T) {
	r := New()
	r.ObserveLoad(time.Second, 2)
	r.DeparturesListed.Set(4)

	path := filepath.Join(t.TempDir(), "nextbus.prom")
	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	if err := r.WriteFile(path, now); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"nextbus_schedule_stops 2",
		"nextbus_departures_listed 4",
		"nextbus_last_run_timestamp_seconds 1.7174016e+09",
		"# TYPE nextbus_schedule_load_seconds gauge",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics file missing %q:\n%s", want, out)
		}
	}
}

func TestWriteFile_NoPath(t *testing.T) {
	if err := New().WriteFile("", time.Now()); err != nil {
		t.Errorf("WriteFile(\"\") = %v, want nil", err)
	}
}
