package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nextbus/internal/realtime"
	"nextbus/internal/render"
	"nextbus/internal/schedule"
)

func newStopCmd(a *app) *cobra.Command {
	var (
		after string
		next  int
		route string
	)

	cmd := &cobra.Command{
		Use:   "stop STOP",
		Short: "Lists the next scheduled buses at the given stop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := a.cfg.Location
			asOf := now().In(loc)

			q := schedule.NewQuery(args[0]).After(asOf)
			if cmd.Flags().Changed("after") {
				t, err := parseAfter(after, schedule.DateOf(asOf), loc)
				if err != nil {
					return err
				}
				q = q.After(t)
			}

			n := a.cfg.DefaultCount
			if cmd.Flags().Changed("next") {
				if next < 0 {
					return fmt.Errorf("invalid --next %d: must not be negative", next)
				}
				n = next
			}
			if n > 0 {
				q = q.HowMany(n)
			}
			if cmd.Flags().Changed("route") {
				q = q.Route(route)
			}

			store, err := a.loadSchedule()
			if err != nil {
				return err
			}

			fetcher := realtime.NewFetcher(a.cfg.RealtimeTimeout, a.logger)
			fetcher.SetObserver(a.metrics)
			delays := fetcher.FetchOrEmpty(cmd.Context(), a.cfg.RealtimeURL)

			res, err := store.Rank(delays, q)
			if err != nil {
				return err
			}
			a.metrics.DeparturesListed.Set(float64(len(res.Departures)))

			return render.StopBoard(res).Render(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&after, "after", "a", "", "List buses at or after the given time today (HH:MM, 24-hour clock)")
	cmd.Flags().IntVarP(&next, "next", "n", 0, "List the next N buses (default $NEXTBUS_COUNT or 10, 0 for all)")
	cmd.Flags().StringVarP(&route, "route", "r", "", "Only list buses on this route")
	return cmd
}

// parseAfter turns an HH:MM wall-clock time on day into an instant in loc.
// Times that do not exist or occur twice on that day are rejected.
func parseAfter(s string, day schedule.Date, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --after %q: want HH:MM", s)
	}
	at, err := schedule.LocalTime(day, schedule.NewClock(t.Hour(), t.Minute(), 0), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --after %q: %w", s, err)
	}
	return at, nil
}
