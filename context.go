package verror

import (
	"context"
	"slices"
)

type optionsKey struct{}

// ContextWithOptions returns a copy of ctx carrying opts after the options
// it already carries. Variant.With applies them before its own options,
// so request-scoped info such as a request ID reaches every error built
// while handling the request.
func ContextWithOptions(ctx context.Context, opts ...Option) context.Context {
	if len(opts) == 0 {
		return ctx
	}
	return context.WithValue(ctx, optionsKey{}, slices.Concat(optionsFromContext(ctx), opts))
}

func optionsFromContext(ctx context.Context) []Option {
	if ctx == nil {
		return nil
	}
	opts, _ := ctx.Value(optionsKey{}).([]Option)
	return opts
}
