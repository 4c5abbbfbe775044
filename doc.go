/*
Package verror provides chainable errors with causes, informational
properties, printf-style messages and multi-error aggregation.

It keeps the context of a failure as it travels up through layers of code:
"request failed" caused by "cannot open config" caused by "permission denied".

# Basic Usage

Errors are built by a Variant. VError formats its annotation with printf and
appends the message of its cause.

	f, err := os.Open(path)
	if err != nil {
		return verror.Wrap(err, "cannot open config %q", path)
	}

The message of the returned error is

	cannot open config "app.yaml": open app.yaml: permission denied

The other variants differ only in policy:

  - SError fails with ErrFormat when %s or %q is given a nil operand.
  - PError uses the format verbatim and rejects any argument.
  - WError leaves the cause out of the message. String and FullStack still show it.

# Options

Variants are configured with functional options. WithOptions never changes
the receiver.

	err := verror.VError.WithOptions(
		verror.WithName("ConfigError"),
		verror.WithCause(cause),
		verror.WithInfo(map[string]any{"path": path}),
	).New("cannot load %s", path)

Custom error types are derived variants. Errors built by a derived variant
match both the derived and the base variant with errors.Is.

	var ErrNotFound = verror.VError.Derive("NotFoundError")

	if errors.Is(err, ErrNotFound) { ... }

# Walking the Chain

Cause, Chain, FindCauseByName and HasCauseWithName walk the cause links,
which are followed through library errors, pkg/errors style Cause methods
and Unwrap. Info merges the informational properties of the whole chain,
letting closer errors win. FullStack renders each error of the chain with its
stack trace.

	if verror.HasCauseWithName(err, "NotFoundError") {
		info := verror.Info(err)
		...
	}

# Multiple Errors

ErrorFromList turns the errors of a batch into nil, the only error, or a
MultiError. ErrorForEach visits them back.

	err := verror.ErrorFromList(errs)
	verror.ErrorForEach(err, func(e error) {
		log.Println(e)
	})

# Context Integration

ContextWithOptions carries options in a context.Context, applied by
Variant.With.

	ctx = verror.ContextWithOptions(ctx, verror.WithInfo(map[string]any{"request_id": reqID}))
	return ErrRateLimited.With(ctx).New("too many requests")
*/
package verror
