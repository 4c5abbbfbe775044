package verror

import (
	"encoding/json"
	"log/slog"
)

type (
	// MultiError is an Error aggregating several errors.
	// Its cause is the first error, and its message reports how many there are.
	MultiError interface {
		Error
		// Errors returns the aggregated errors in order.
		Errors() []error
		// Unwrap returns the aggregated errors for errors.Is and errors.As.
		Unwrap() []error
	}

	multiError struct {
		*chainedError
		errs []error
	}
)

var (
	_ MultiError     = (*multiError)(nil)
	_ slog.LogValuer = (*multiError)(nil)
	_ json.Marshaler = (*multiError)(nil)
)

// NewMultiError creates a MultiError from errs, which is copied.
// It panics with ErrAggregate if errs is nil, empty or holds a nil error.
func NewMultiError(errs []error) MultiError {
	if errs == nil {
		panic(ErrAggregate.failuref(nil, "list of errors (slice) is required"))
	}
	return newMultiError(errs)
}

func newMultiError(errs []error) *multiError {
	if len(errs) == 0 {
		panic(ErrAggregate.failuref(nil, "must be at least one error"))
	}
	for i, err := range errs {
		if err == nil || isNilValue(err) {
			panic(ErrAggregate.failuref(nil, "all errors must be an Error: errs[%d] is nil", i))
		}
	}

	plural := "s"
	if len(errs) == 1 {
		plural = ""
	}
	r, err := multi.resolve(call{
		wrapping: true,
		cause:    errs[0],
		format:   "first of %d error%s",
		args:     []any{len(errs), plural},
	})
	if err != nil {
		panic(err)
	}

	return &multiError{
		chainedError: &chainedError{
			variant: multi,
			name:    r.name,
			message: r.message,
			cause:   r.cause,
			stack:   newStack(callersSkip, ""),
		},
		errs: append([]error(nil), errs...),
	}
}

func (e *multiError) Errors() []error {
	return append([]error(nil), e.errs...)
}

func (e *multiError) Unwrap() []error {
	return e.errs
}

func (e *multiError) LogValue() slog.Value {
	return slog.GroupValue(append(e.logAttrs(), slog.Any("errors", e.messages()))...)
}

func (e *multiError) MarshalJSON() ([]byte, error) {
	v := e.jsonValue()
	v.Errors = e.messages()
	return json.Marshal(v)
}

func (e *multiError) messages() []string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return msgs
}

// ErrorFromList reduces errs to a single error: nil for none, the error
// itself for one, and a MultiError for more.
// It panics with ErrArgument if errs holds a nil error.
func ErrorFromList(errs []error) error {
	for i, err := range errs {
		if err == nil || isNilValue(err) {
			panic(ErrArgument.failuref(nil, "all errors must be an Error: errs[%d] is nil", i))
		}
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return newMultiError(errs)
	}
}

// ErrorForEach calls fn with each error aggregated by err if it is a
// MultiError, or with err itself otherwise.
// It panics with ErrArgument if err or fn is nil.
func ErrorForEach(err error, fn func(error)) {
	if err == nil {
		panic(ErrArgument.failuref(nil, "err must be an error but got <nil>"))
	}
	if fn == nil {
		panic(ErrArgument.failuref(nil, "fn (func) is required"))
	}

	if m, ok := err.(MultiError); ok {
		for _, e := range m.Errors() {
			fn(e)
		}
		return
	}
	fn(err)
}
