// Package sentry reports verror errors to Sentry.
package sentry

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/shiwano/verror"
)

// LevelKey carries the Sentry severity level in the error info,
// so that wrapping errors inherit it.
var LevelKey = verror.DefineInfoKey[sentry.Level]("sentry.level")

// Level returns an option that sets the Sentry severity level of the error.
func Level(level sentry.Level) verror.Option {
	return LevelKey.With(level)
}

// CaptureError reports an error to Sentry with context from its cause chain.
//
// This function:
//   - Returns false if the error is nil
//   - Retrieves the Sentry hub from the context
//   - Configures a scope for this event only:
//   - Level (from Level in the error info, defaults to sentry.LevelError)
//   - Name as the "error.name" tag
//   - Info (except the level) as the "error.info" context
//   - The chain as the "error.chain" context, outermost first
//   - Captures the error exception
func CaptureError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(LevelKey.OrDefault(err, sentry.LevelError))

		info := verror.Info(err)
		delete(info, LevelKey.Name())
		if len(info) > 0 {
			scope.SetContext("error.info", sentry.Context(info))
		}
		scope.SetTag("error.name", verror.NameOf(err))

		var chain []string
		for e := range verror.Chain(err) {
			chain = append(chain, verror.NameOf(e)+": "+e.Error())
		}
		scope.SetContext("error.chain", sentry.Context{"errors": chain})

		hub.CaptureException(err)
	})
	return true
}
