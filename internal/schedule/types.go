package schedule

// Rows as they appear in the schedule tables. Only the columns the store
// uses are mapped; extra columns are ignored.

type tripRow struct {
	TripID         string `csv:"trip_id"`
	RouteID        string `csv:"route_id"`
	RouteShortName string `csv:"route_short_name"`
	ServiceID      string `csv:"service_id"`
	TripHeadsign   string `csv:"trip_headsign"`
	DirectionID    string `csv:"direction_id"`
}

type stopRow struct {
	StopID   string `csv:"stop_id"`
	StopCode string `csv:"stop_code"`
	StopName string `csv:"stop_name"`
}

type stopTimeRow struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	StopSequence  string `csv:"stop_sequence"`
}

type calendarRow struct {
	ServiceID   string `csv:"service_id"`
	ServiceName string `csv:"service_name"`
	Monday      string `csv:"monday"`
	Tuesday     string `csv:"tuesday"`
	Wednesday   string `csv:"wednesday"`
	Thursday    string `csv:"thursday"`
	Friday      string `csv:"friday"`
	Saturday    string `csv:"saturday"`
	Sunday      string `csv:"sunday"`
	StartDate   string `csv:"start_date"`
	EndDate     string `csv:"end_date"`
}

type calendarDateRow struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType string `csv:"exception_type"`
}

// Trip is one scheduled run of a route.
type Trip struct {
	TripID      string
	RouteID     string
	RouteShort  string // display label, not unique
	ServiceID   string
	Headsign    string
	DirectionID string
}

// Stop is a boarding location.
type Stop struct {
	StopID string
	Code   string
	Name   string
}

// StopTime is one scheduled visit of a trip to a stop.
type StopTime struct {
	TripID       string
	StopID       string
	StopSequence string
	Arrival      Clock
	Departure    Clock
}
