package schedule

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// feedFS builds an in-memory schedule. Tables not given get a header only.
func feedFS(tables map[string][]string) fstest.MapFS {
	defaults := map[string]string{
		"calendar.txt":       "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
		"calendar_dates.txt": "service_id,date,exception_type",
		"stop_times.txt":     "trip_id,arrival_time,departure_time,stop_id,stop_sequence",
		"trips.txt":          "route_id,route_short_name,service_id,trip_id,trip_headsign",
		"stops.txt":          "stop_id,stop_code,stop_name",
	}
	fsys := fstest.MapFS{}
	for name, header := range defaults {
		lines, ok := tables[name]
		if !ok {
			lines = []string{header}
		}
		fsys[name] = &fstest.MapFile{Data: []byte(strings.Join(lines, "\n") + "\n")}
	}
	return fsys
}

func mustLoad(t *testing.T, tables map[string][]string) *Store {
	t.Helper()
	s, err := LoadFS(feedFS(tables), discardLogger())
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	return s
}

// weekdayFeed is a single stop served by routes A and B on a weekday
// service valid through 2024.
func weekdayFeed() map[string][]string {
	return map[string][]string{
		"calendar.txt": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"WK,1,1,1,1,1,0,0,20240101,20241231",
		},
		"trips.txt": {
			"route_id,route_short_name,service_id,trip_id,trip_headsign",
			"r1,A,WK,T1,Downtown",
			"r1,A,WK,T2,Downtown",
			"r2,B,WK,T3,Airport",
			"r2,a,WK,T4,Lakeside",
		},
		"stops.txt": {
			"stop_id,stop_code,stop_name",
			"S1,1001,Main & 1st",
			"S2,1002,Empty Corner",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			"T2,08:10:00,08:10:00,S1,1",
			"T1,08:00:00,08:00:00,S1,1",
			"T3,08:05:00,08:05:00,S1,1",
			"T4, 9:15:00, 9:15:00,S1,1",
		},
	}
}

// monday is 2024-06-03, a Monday.
func monday(h, m int) time.Time {
	return time.Date(2024, time.June, 3, h, m, 0, 0, time.UTC)
}

type delayMap map[[2]string]float64

func (d delayMap) Lookup(stopID, tripID string) (float64, bool) {
	v, ok := d[[2]string{stopID, tripID}]
	return v, ok
}
