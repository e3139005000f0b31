// Package report sends errors worth an operator's attention to Sentry.
// Without a DSN every call is a no-op.
package report

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
)

// Setup initialises Sentry and tags every event with the environment,
// release, Go runtime and host.
func Setup(dsn, env, version string) error {
	return setup(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     version,
	})
}

func setup(opts sentry.ClientOptions) error {
	if err := sentry.Init(opts); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("host", host)
	})
	return nil
}

// Flush waits briefly for queued events to be sent.
func Flush() {
	sentry.Flush(2 * time.Second)
}
