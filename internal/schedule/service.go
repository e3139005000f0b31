package schedule

import "time"

// Weekdays is a set of days of the week, one bit per day.
type Weekdays uint8

const (
	Monday Weekdays = 1 << iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeek is the set of every day.
const AllWeek = Monday | Tuesday | Wednesday | Thursday | Friday | Saturday | Sunday

// WeekdayOf maps a time.Weekday to its bit.
func WeekdayOf(wd time.Weekday) Weekdays {
	switch wd {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// NewWeekdays builds the set from seven flags, Monday first.
func NewWeekdays(mon, tue, wed, thu, fri, sat, sun bool) Weekdays {
	var w Weekdays
	for i, on := range []bool{mon, tue, wed, thu, fri, sat, sun} {
		if on {
			w |= 1 << i
		}
	}
	return w
}

// Has reports whether wd is in the set.
func (w Weekdays) Has(wd time.Weekday) bool {
	return w&WeekdayOf(wd) != 0
}

// ExceptionKind tells whether a calendar exception adds or removes service.
type ExceptionKind int

const (
	ExceptionAdded ExceptionKind = iota + 1
	ExceptionRemoved
)

func (k ExceptionKind) String() string {
	switch k {
	case ExceptionAdded:
		return "added"
	case ExceptionRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Exception overrides a calendar on a single date.
type Exception struct {
	ServiceID string
	Date      Date
	Kind      ExceptionKind
}

// Calendar describes the dates a service runs on.
type Calendar struct {
	ServiceID   string
	ServiceName string
	Days        Weekdays
	StartDate   Date
	EndDate     Date
	Exceptions  []Exception
}

// ActiveOn reports whether the service runs on d: inside the date range, on
// one of its weekdays, and not removed by an exception.
//
// Added exceptions are kept on the calendar but do not reactivate a date
// that fails the range or weekday checks.
func (c *Calendar) ActiveOn(d Date) bool {
	if d.Before(c.StartDate) || d.After(c.EndDate) {
		return false
	}
	if !c.Days.Has(d.Weekday()) {
		return false
	}
	for _, ex := range c.Exceptions {
		if ex.Date == d && ex.Kind == ExceptionRemoved {
			return false
		}
	}
	return true
}

// IsActive is ActiveOn as a plain function.
func IsActive(c *Calendar, d Date) bool {
	return c.ActiveOn(d)
}
