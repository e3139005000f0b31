package schedule

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrNoSuchStop is returned by Rank when the stop id is not in the schedule.
var ErrNoSuchStop = errors.New("no such stop")

// DelayIndex looks up the real-time delay, in seconds, of a trip at a stop.
type DelayIndex interface {
	Lookup(stopID, tripID string) (float64, bool)
}

// Query selects departures at one stop. The zero value is not useful; start
// from NewQuery. Every method returns a modified copy.
type Query struct {
	stopID   string
	asOf     time.Time
	howMany  int
	limited  bool
	route    string
	hasRoute bool
}

// NewQuery returns a query for stopID as of now, with no cap and no route filter.
func NewQuery(stopID string) Query {
	return Query{stopID: stopID, asOf: time.Now()}
}

// After sets the instant departures are listed from. Its location decides
// what "today" is.
func (q Query) After(t time.Time) Query {
	q.asOf = t
	return q
}

// HowMany caps the result to the next n departures.
func (q Query) HowMany(n int) Query {
	q.howMany = n
	q.limited = true
	return q
}

// Route keeps only trips whose route label equals name exactly.
func (q Query) Route(name string) Query {
	q.route = name
	q.hasRoute = true
	return q
}

func (q Query) StopID() string  { return q.stopID }
func (q Query) AsOf() time.Time { return q.asOf }

// Departure is one upcoming bus at a stop.
type Departure struct {
	Scheduled Clock
	Delay     time.Duration // zero when no real-time information is known
	Route     string
	Headsign  string
	TripID    string
}

// HasDelay reports whether a real-time delay is attached.
func (d Departure) HasDelay() bool {
	return d.Delay > 0
}

// Effective is the scheduled time plus any known delay.
func (d Departure) Effective() Clock {
	return d.Scheduled.Add(d.Delay)
}

// StopResult is the ranked board for one stop.
type StopResult struct {
	StopID     string
	StopName   string
	Departures []Departure
}

// Rank lists the departures at q's stop that run today, have not yet left,
// and match the route filter, ordered by delay-adjusted time.
//
// The schedule must be referentially intact: a stop time whose trip or
// service is missing panics.
func (s *Store) Rank(delays DelayIndex, q Query) (StopResult, error) {
	stop, ok := s.stops[q.stopID]
	if !ok {
		return StopResult{}, fmt.Errorf("%w: %s", ErrNoSuchStop, q.stopID)
	}

	today := DateOf(q.asOf)
	now := ClockOf(q.asOf)

	var deps []Departure
	for _, st := range s.stopTimes[q.stopID] {
		trip, ok := s.trips[st.TripID]
		if !ok {
			panic(fmt.Sprintf("schedule: stop time at %s references unknown trip %q", st.StopID, st.TripID))
		}
		cal, ok := s.calendars[trip.ServiceID]
		if !ok {
			panic(fmt.Sprintf("schedule: trip %s references unknown service %q", trip.TripID, trip.ServiceID))
		}

		if q.hasRoute && trip.RouteShort != q.route {
			continue
		}
		if !cal.ActiveOn(today) {
			continue
		}
		if st.Departure < now {
			continue
		}

		dep := Departure{
			Scheduled: st.Departure,
			Route:     trip.RouteShort,
			Headsign:  trip.Headsign,
			TripID:    trip.TripID,
		}
		if delays != nil {
			if secs, ok := delays.Lookup(q.stopID, st.TripID); ok && secs > 0 {
				dep.Delay = time.Duration(secs * float64(time.Second))
			}
		}
		deps = append(deps, dep)
	}

	// Stable so that equal effective times keep schedule order.
	slices.SortStableFunc(deps, func(a, b Departure) int {
		return cmp.Compare(a.Effective(), b.Effective())
	})

	if q.limited && len(deps) > q.howMany {
		deps = deps[:max(q.howMany, 0)]
	}

	return StopResult{
		StopID:     stop.StopID,
		StopName:   stop.Name,
		Departures: deps,
	}, nil
}

// Rank is Store.Rank as a plain function.
func Rank(s *Store, delays DelayIndex, q Query) (StopResult, error) {
	return s.Rank(delays, q)
}
