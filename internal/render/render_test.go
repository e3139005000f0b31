package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"nextbus/internal/schedule"
	"nextbus/internal/storage"
)

func TestStopBoard(t *testing.T) {
	res := schedule.StopResult{
		StopID:   "S1",
		StopName: "Main & 1st",
		Departures: []schedule.Departure{
			{Scheduled: schedule.NewClock(8, 2, 0), Route: "B", Headsign: "Airport"},
			{Scheduled: schedule.NewClock(8, 0, 0), Delay: 3 * time.Minute, Route: "A", Headsign: "Downtown"},
			{Scheduled: schedule.NewClock(13, 45, 0), Delay: 45 * time.Second, Route: "80", Headsign: "Eagle Heights"},
		},
	}

	var b strings.Builder
	if err := StopBoard(res).Render(context.Background(), &b); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "Main & 1st\n" +
		" 8:02 AM B Airport\n" +
		" 8:00 AM +3m A Downtown\n" +
		" 1:45 PM +45s 80 Eagle Heights\n"
	if b.String() != want {
		t.Errorf("StopBoard =\n%q\nwant\n%q", b.String(), want)
	}
}

func TestStopBoard_Empty(t *testing.T) {
	var b strings.Builder
	err := StopBoard(schedule.StopResult{StopID: "S2", StopName: "Empty Corner"}).Render(context.Background(), &b)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "Empty Corner\n[No more buses today]\n"; b.String() != want {
		t.Errorf("StopBoard = %q, want %q", b.String(), want)
	}
}

func TestDepartureLine_MidnightAndNoon(t *testing.T) {
	tests := []struct {
		clock schedule.Clock
		want  string
	}{
		{schedule.Midnight, "12:00 AM 2 West\n"},
		{schedule.NewClock(12, 0, 0), "12:00 PM 2 West\n"},
		{schedule.NewClock(23, 59, 0), "11:59 PM 2 West\n"},
	}

	for _, tt := range tests {
		var b strings.Builder
		d := schedule.Departure{Scheduled: tt.clock, Route: "2", Headsign: "West"}
		if err := DepartureLine(d).Render(context.Background(), &b); err != nil {
			t.Fatalf("Render: %v", err)
		}
		if b.String() != tt.want {
			t.Errorf("DepartureLine(%s) = %q, want %q", tt.clock, b.String(), tt.want)
		}
	}
}

func TestDepartureLine_SubSecondDelay(t *testing.T) {
	d := schedule.Departure{
		Scheduled: schedule.NewClock(9, 5, 0),
		Delay:     400 * time.Millisecond,
		Route:     "6",
		Headsign:  "East Towne",
	}
	if !d.HasDelay() {
		t.Fatal("a positive delay should be attached")
	}

	var b strings.Builder
	if err := DepartureLine(d).Render(context.Background(), &b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := " 9:05 AM 6 East Towne\n"; b.String() != want {
		t.Errorf("DepartureLine = %q, want %q", b.String(), want)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		clock schedule.Clock
		want  string
	}{
		{schedule.NewClock(8, 2, 0), " 8:02 AM"},
		{schedule.NewClock(10, 30, 0), "10:30 AM"},
		{schedule.Midnight, "12:00 AM"},
		{schedule.NewClock(12, 40, 0), "12:40 PM"},
		{schedule.NewClock(21, 5, 0), " 9:05 PM"},
	}

	for _, tt := range tests {
		if got := FormatTime(tt.clock); got != tt.want {
			t.Errorf("FormatTime(%s) = %q, want %q", tt.clock, got, tt.want)
		}
	}
}

func TestSearchResults(t *testing.T) {
	var b strings.Builder
	err := SearchResults([]storage.StopSearchResult{
		{StopID: "0104", StopName: "Park & Main"},
		{StopID: "0877", StopName: "Johnson & Park"},
	}).Render(context.Background(), &b)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "0104 Park & Main\n0877 Johnson & Park\n"; b.String() != want {
		t.Errorf("SearchResults = %q, want %q", b.String(), want)
	}
}

func TestFormatDelay(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{3 * time.Minute, "+3m"},
		{45 * time.Second, "+45s"},
		{90 * time.Second, "+1m30s"},
		{1500 * time.Millisecond, "+2s"},
		{time.Hour + 2*time.Minute, "+1h2m"},
		{time.Hour, "+1h"},
		{2*time.Hour + 5*time.Second, "+2h0m5s"},
		{400 * time.Millisecond, ""},
	}

	for _, tt := range tests {
		if got := FormatDelay(tt.in); got != tt.want {
			t.Errorf("FormatDelay(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
