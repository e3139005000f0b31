// Package metrics records what a single nextbus run did and writes it in
// the Prometheus text format for node_exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the metrics of one run in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	ScheduleLoadSeconds prometheus.Gauge
	ScheduleStops       prometheus.Gauge
	RealtimeFetches     *prometheus.CounterVec
	RealtimeDelays      prometheus.Gauge
	DeparturesListed    prometheus.Gauge
	LastRun             prometheus.Gauge
}

// New creates a Recorder with every metric registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		ScheduleLoadSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nextbus_schedule_load_seconds",
			Help: "Time spent loading the static schedule",
		}),
		ScheduleStops: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nextbus_schedule_stops",
			Help: "Number of stops in the loaded schedule",
		}),
		RealtimeFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nextbus_realtime_fetches_total",
			Help: "Real-time feed fetches by result (ok, error)",
		}, []string{"result"}),
		RealtimeDelays: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nextbus_realtime_delays",
			Help: "Number of (stop, trip) delays taken from the real-time feed",
		}),
		DeparturesListed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nextbus_departures_listed",
			Help: "Number of departures printed by the last stop query",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nextbus_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
	}

	r.registry.MustRegister(
		r.ScheduleLoadSeconds,
		r.ScheduleStops,
		r.RealtimeFetches,
		r.RealtimeDelays,
		r.DeparturesListed,
		r.LastRun,
	)
	return r
}

// ObserveLoad records how long the schedule took to load and its size.
func (r *Recorder) ObserveLoad(d time.Duration, stops int) {
	r.ScheduleLoadSeconds.Set(d.Seconds())
	r.ScheduleStops.Set(float64(stops))
}

// ObserveFetch records a real-time feed fetch.
func (r *Recorder) ObserveFetch(err error, delays int) {
	if err != nil {
		r.RealtimeFetches.WithLabelValues("error").Inc()
		r.RealtimeDelays.Set(0)
		return
	}
	r.RealtimeFetches.WithLabelValues("ok").Inc()
	r.RealtimeDelays.Set(float64(delays))
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile stamps the run time and writes every metric to path. The file
// is replaced atomically. An empty path does nothing.
func (r *Recorder) WriteFile(path string, now time.Time) error {
	if path == "" {
		return nil
	}
	r.LastRun.Set(float64(now.Unix()))
	return prometheus.WriteToTextfile(path, r.registry)
}
