package verror

import "maps"

// WithName overrides the display name of the error.
func WithName(n string) Option {
	return &name{name: n}
}

// WithCause sets the cause of the error. A nil cause means no cause.
func WithCause(err error) Option {
	return &cause{cause: err}
}

// WithInfo merges m into the informational properties of the error.
// The map is copied.
func WithInfo(m map[string]any) Option {
	return &info{info: maps.Clone(m)}
}

// Strict makes printing a nil operand with %s or %q a formatting failure.
func Strict() Option {
	return &strict{}
}

// SkipPrintf uses the format verbatim. Supplying any argument with it fails.
func SkipPrintf() Option {
	return &skipPrintf{}
}

// ConstructorOpt drops the stack frames up to and including fn, so that
// helpers building errors on behalf of their callers are not part of the trace.
// Anything other than a non-nil func is ignored.
func ConstructorOpt(fn any) Option {
	return &constructorOpt{funcName: funcName(fn)}
}

// NoTrace disables stack trace collection.
func NoTrace() Option {
	return &noTrace{}
}

// StackSkip adds to the number of frames to skip during stack trace collection.
func StackSkip(skip int) Option {
	return &stackSkip{skip: skip}
}
