package report

import "github.com/getsentry/sentry-go"

// Event describes where an error came from. The zero value reports at
// error level with no extra data.
type Event struct {
	// Component is sent as the "component" tag.
	Component string
	Level     sentry.Level
	Tags      map[string]string
	Extra     map[string]any
}

// Report sends err to Sentry, described by ev. A nil err is ignored.
func Report(err error, ev Event) {
	if err == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		level := ev.Level
		if level == "" {
			level = sentry.LevelError
		}
		scope.SetLevel(level)

		if ev.Component != "" {
			scope.SetTag("component", ev.Component)
		}
		for k, v := range ev.Tags {
			scope.SetTag(k, v)
		}
		if len(ev.Extra) > 0 {
			scope.SetContext("nextbus", ev.Extra)
		}
		sentry.CaptureException(err)
	})
}
