package verror

import "context"

// New creates a VError from a printf-style annotation.
// It panics under the same conditions as Variant.New.
func New(format string, args ...any) Error {
	return VError.WithOptions(StackSkip(1)).New(format, args...)
}

// Wrap creates a VError caused by cause. A nil cause means no cause.
// It panics under the same conditions as Variant.New.
func Wrap(cause error, format string, args ...any) Error {
	return VError.WithOptions(StackSkip(1)).Wrap(cause, format, args...)
}

// With returns VError configured with the options carried by ctx and opts.
func With(ctx context.Context, opts ...Option) *Variant {
	return VError.With(ctx, opts...)
}
