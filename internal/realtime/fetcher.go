package realtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/getsentry/sentry-go"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"nextbus/internal/report"
)

// Fetcher reads a GTFS-Realtime trip updates feed and turns it into Delays.
// The feed may be served over HTTP or read from a local file, encoded as
// protobuf or as JSON.
type Fetcher struct {
	client   *http.Client
	logger   *slog.Logger
	observer Observer
}

// Observer is told the outcome of each FetchOrEmpty call that has a source.
type Observer interface {
	ObserveFetch(err error, delays int)
}

// NewFetcher creates a feed fetcher whose HTTP requests give up after timeout.
func NewFetcher(timeout time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// SetObserver registers o to receive fetch outcomes.
func (f *Fetcher) SetObserver(o Observer) {
	f.observer = o
}

// Fetch reads and decodes the feed at source, a URL or a file path.
func (f *Fetcher) Fetch(ctx context.Context, source string) (Delays, error) {
	body, contentType, err := f.read(ctx, source)
	if err != nil {
		return nil, err
	}

	feed, err := Decode(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}

	delays := FromFeed(feed)
	f.logger.Info("realtime delays loaded", "source", source, "entities", len(feed.GetEntity()), "delays", delays.Len())
	return delays, nil
}

// FetchOrEmpty is Fetch for callers that can do without real-time data:
// on any failure it logs a warning and returns an empty index.
func (f *Fetcher) FetchOrEmpty(ctx context.Context, source string) Delays {
	if source == "" {
		return NewDelays()
	}
	delays, err := f.Fetch(ctx, source)
	if f.observer != nil {
		f.observer.ObserveFetch(err, delays.Len())
	}
	if err != nil {
		f.logger.Warn("realtime feed unavailable, using schedule only", "source", source, "error", err)
		report.Report(err, report.Event{
			Component: "realtime",
			Level:     sentry.LevelWarning,
			Extra:     map[string]any{"source": source},
		})
		return NewDelays()
	}
	return delays
}

func (f *Fetcher) read(ctx context.Context, source string) ([]byte, string, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		body, err := os.ReadFile(source)
		if err != nil {
			return nil, "", fmt.Errorf("read feed: %w", err)
		}
		contentType := "application/x-protobuf"
		if strings.EqualFold(filepath.Ext(source), ".json") {
			contentType = "application/json"
		}
		return body, contentType, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read feed body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// Decode parses a FeedMessage. JSON is recognised by content type or by a
// leading '{'; anything else is treated as protobuf.
func Decode(data []byte, contentType string) (*gtfs.FeedMessage, error) {
	feed := &gtfs.FeedMessage{}
	if strings.Contains(contentType, "json") || bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		opts := protojson.UnmarshalOptions{AllowPartial: true, DiscardUnknown: true}
		if err := opts.Unmarshal(data, feed); err != nil {
			return nil, fmt.Errorf("parse json feed: %w", err)
		}
		return feed, nil
	}

	opts := proto.UnmarshalOptions{AllowPartial: true, DiscardUnknown: true}
	if err := opts.Unmarshal(data, feed); err != nil {
		return nil, fmt.Errorf("parse protobuf feed: %w", err)
	}
	return feed, nil
}

// FromFeed collects the delay of every stop time update that names a stop.
// The departure delay is preferred over the arrival delay. Later entities
// overwrite earlier ones for the same stop and trip.
func FromFeed(feed *gtfs.FeedMessage) Delays {
	delays := NewDelays()
	for _, entity := range feed.GetEntity() {
		tu := entity.GetTripUpdate()
		if tu == nil {
			continue
		}
		tripID := tu.GetTrip().GetTripId()
		if tripID == "" {
			continue
		}

		for _, stu := range tu.GetStopTimeUpdate() {
			stopID := stu.GetStopId()
			if stopID == "" {
				continue
			}
			if delay, ok := eventDelay(stu.GetDeparture()); ok {
				delays.Set(stopID, tripID, float64(delay))
			} else if delay, ok := eventDelay(stu.GetArrival()); ok {
				delays.Set(stopID, tripID, float64(delay))
			}
		}
	}
	return delays
}

func eventDelay(ev *gtfs.TripUpdate_StopTimeEvent) (int32, bool) {
	if ev == nil || ev.Delay == nil {
		return 0, false
	}
	return ev.GetDelay(), true
}
