// Package render writes departure boards and stop search results as plain
// text for the terminal.
package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"nextbus/internal/schedule"
	"nextbus/internal/storage"
)

// TimeLayout is a 12-hour clock. FormatTime pads it to match strftime's
// "%l:%M %p".
const TimeLayout = "3:04 PM"

// NoMoreBuses is printed in place of an empty board.
const NoMoreBuses = "[No more buses today]"

// StopBoard renders the stop name followed by one line per departure.
func StopBoard(res schedule.StopResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintln(w, res.StopName); err != nil {
			return err
		}
		if len(res.Departures) == 0 {
			_, err := fmt.Fprintln(w, NoMoreBuses)
			return err
		}
		for _, d := range res.Departures {
			if err := DepartureLine(d).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// DepartureLine renders the scheduled time, the delay if known, the route
// and the headsign.
func DepartureLine(d schedule.Departure) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fields := []string{FormatTime(d.Scheduled)}
		if delay := FormatDelay(d.Delay); d.HasDelay() && delay != "" {
			fields = append(fields, delay)
		}
		fields = append(fields, d.Route, d.Headsign)
		_, err := fmt.Fprintln(w, strings.Join(fields, " "))
		return err
	})
}

// SearchResults renders one "id name" line per stop.
func SearchResults(results []storage.StopSearchResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s %s\n", r.StopID, r.StopName); err != nil {
				return err
			}
		}
		return nil
	})
}

// FormatTime renders c as " 8:05 AM" or "12:40 PM".
func FormatTime(c schedule.Clock) string {
	return fmt.Sprintf("%8s", c.Format(TimeLayout))
}

// FormatDelay renders d to the second with a leading plus, dropping zero
// trailing units: "+3m", "+45s", "+1m30s", "+1h". Delays that round to
// zero render as "".
func FormatDelay(d time.Duration) string {
	d = d.Round(time.Second)
	if d <= 0 {
		return ""
	}
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return "+" + s
}
