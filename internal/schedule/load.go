package schedule

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"maps"
	"os"
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrUnknownService = errors.New("unknown service")
)

// LoadError reports a schedule table that could not be loaded. Line and
// Column are set when the problem is tied to a single field.
type LoadError struct {
	File   string
	Column string
	Line   int
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Store holds a static schedule in memory. It is built once by Load and
// never modified afterwards, so it may be shared between goroutines.
type Store struct {
	trips     map[string]*Trip       // by trip_id
	stops     map[string]*Stop       // by stop_id
	calendars map[string]*Calendar   // by service_id
	stopTimes map[string][]*StopTime // by stop_id, in file order
}

// Load reads a schedule from a directory or a zip archive.
func Load(path string, logger *slog.Logger) (*Store, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule: %w", err)
	}
	if stat.IsDir() {
		return LoadFS(os.DirFS(path), logger)
	}

	arch, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer arch.Close()
	return LoadFS(arch, logger)
}

// LoadFS reads calendar.txt, calendar_dates.txt, stop_times.txt, trips.txt
// and stops.txt from fsys.
//
// Dates must be 8-digit YYYYMMDD and fail the load otherwise. Time fields
// that cannot be parsed load as midnight.
func LoadFS(fsys fs.FS, logger *slog.Logger) (*Store, error) {
	s := &Store{
		trips:     make(map[string]*Trip),
		stops:     make(map[string]*Stop),
		calendars: make(map[string]*Calendar),
		stopTimes: make(map[string][]*StopTime),
	}

	if err := readTable(fsys, "calendar.txt", s.addCalendar); err != nil {
		return nil, err
	}
	if err := readTable(fsys, "calendar_dates.txt", s.addException); err != nil {
		return nil, err
	}
	if err := readTable(fsys, "stop_times.txt", s.addStopTime); err != nil {
		return nil, err
	}
	if err := readTable(fsys, "trips.txt", s.addTrip); err != nil {
		return nil, err
	}
	if err := readTable(fsys, "stops.txt", s.addStop); err != nil {
		return nil, err
	}

	logger.Info("schedule loaded",
		"calendars", len(s.calendars),
		"trips", len(s.trips),
		"stops", len(s.stops),
		"stops_served", len(s.stopTimes),
	)
	return s, nil
}

func readTable[T any](fsys fs.FS, name string, add func(row T, line int) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return &LoadError{File: name, Err: err}
	}
	defer f.Close()

	err = decodeCSV(f, add)
	if err == nil {
		return nil
	}
	var le *LoadError
	if errors.As(err, &le) {
		le.File = name
		return le
	}
	return &LoadError{File: name, Err: err}
}

func (s *Store) addCalendar(row calendarRow, line int) error {
	start, err := ParseDate(row.StartDate)
	if err != nil {
		return &LoadError{Column: "start_date", Line: line, Err: err}
	}
	end, err := ParseDate(row.EndDate)
	if err != nil {
		return &LoadError{Column: "end_date", Line: line, Err: err}
	}

	s.calendars[row.ServiceID] = &Calendar{
		ServiceID:   row.ServiceID,
		ServiceName: row.ServiceName,
		Days: NewWeekdays(
			row.Monday == "1", row.Tuesday == "1", row.Wednesday == "1",
			row.Thursday == "1", row.Friday == "1", row.Saturday == "1",
			row.Sunday == "1",
		),
		StartDate: start,
		EndDate:   end,
	}
	return nil
}

func (s *Store) addException(row calendarDateRow, line int) error {
	date, err := ParseDate(row.Date)
	if err != nil {
		return &LoadError{Column: "date", Line: line, Err: err}
	}

	cal, ok := s.calendars[row.ServiceID]
	if !ok {
		return &LoadError{Column: "service_id", Line: line, Err: fmt.Errorf("%w: %q", ErrUnknownService, row.ServiceID)}
	}

	kind := ExceptionRemoved
	if row.ExceptionType == "1" {
		kind = ExceptionAdded
	}
	cal.Exceptions = append(cal.Exceptions, Exception{
		ServiceID: row.ServiceID,
		Date:      date,
		Kind:      kind,
	})
	return nil
}

func (s *Store) addStopTime(row stopTimeRow, _ int) error {
	st := &StopTime{
		TripID:       row.TripID,
		StopID:       row.StopID,
		StopSequence: row.StopSequence,
		Arrival:      parseClockOrMidnight(row.ArrivalTime),
		Departure:    parseClockOrMidnight(row.DepartureTime),
	}
	s.stopTimes[st.StopID] = append(s.stopTimes[st.StopID], st)
	return nil
}

func (s *Store) addTrip(row tripRow, _ int) error {
	s.trips[row.TripID] = &Trip{
		TripID:      row.TripID,
		RouteID:     row.RouteID,
		RouteShort:  row.RouteShortName,
		ServiceID:   row.ServiceID,
		Headsign:    row.TripHeadsign,
		DirectionID: row.DirectionID,
	}
	return nil
}

func (s *Store) addStop(row stopRow, _ int) error {
	s.stops[row.StopID] = &Stop{
		StopID: row.StopID,
		Code:   row.StopCode,
		Name:   row.StopName,
	}
	return nil
}

// Stop returns the stop with the given id.
func (s *Store) Stop(id string) (*Stop, bool) {
	st, ok := s.stops[id]
	return st, ok
}

// Trip returns the trip with the given id.
func (s *Store) Trip(id string) (*Trip, bool) {
	t, ok := s.trips[id]
	return t, ok
}

// Calendar returns the calendar of a service.
func (s *Store) Calendar(serviceID string) (*Calendar, bool) {
	c, ok := s.calendars[serviceID]
	return c, ok
}

// StopTimes returns the scheduled visits to a stop in file order.
func (s *Store) StopTimes(stopID string) []*StopTime {
	return s.stopTimes[stopID]
}

// Stops iterates over every stop in no particular order.
func (s *Store) Stops() iter.Seq[*Stop] {
	return maps.Values(s.stops)
}

// NumStops returns the number of stops in the schedule.
func (s *Store) NumStops() int {
	return len(s.stops)
}
