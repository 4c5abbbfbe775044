package verror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
)

type (
	// Error is the interface implemented by every error built by a Variant.
	Error interface {
		error
		// Name returns the display name of this error.
		Name() string
		// Message returns the message resolved at construction.
		Message() string
		// Cause returns the direct cause of this error, or nil.
		Cause() error
		// Info returns the informational properties of this error merged
		// with those of its causes, deepest cause first.
		Info() map[string]any
		// AssignInfo shallow-merges m into this error's own properties.
		AssignInfo(m map[string]any)
		// Stack returns the stack trace where this error was created.
		Stack() Stack
		// String returns "name: message", followed by the cause for WError.
		String() string
		// Variant returns the variant that built this error.
		Variant() *Variant

		base() *chainedError
	}

	// stackTracer is used by Sentry SDK to extract stack traces from errors.
	// See: https://github.com/getsentry/sentry-go/blob/54a69e05ea609d3fc32fb1393770258dde6796c1/stacktrace.go#L84-L87
	stackTracer interface {
		StackTrace() []uintptr
	}

	// causer is used by pkg/errors to extract the cause of an error.
	// See: https://github.com/golang/go/issues/31778
	causer interface {
		Cause() error
	}

	namer interface {
		Name() string
	}

	chainedError struct {
		variant *Variant
		name    string
		message string
		cause   error
		info    map[string]any
		stack   stack
		// origin is the foreign error adopted by Upcast.
		origin error
	}

	jsonError struct {
		Name    string         `json:"name"`
		Message string         `json:"message"`
		Info    map[string]any `json:"info,omitempty"`
		Stack   []Frame        `json:"stack,omitempty"`
		Causes  []jsonCause    `json:"causes,omitempty"`
		Errors  []string       `json:"errors,omitempty"`
	}

	jsonCause struct {
		Name    string  `json:"name"`
		Message string  `json:"message"`
		Stack   []Frame `json:"stack,omitempty"`
	}
)

var (
	_ Error          = (*chainedError)(nil)
	_ fmt.Formatter  = (*chainedError)(nil)
	_ fmt.Stringer   = (*chainedError)(nil)
	_ slog.LogValuer = (*chainedError)(nil)
	_ stackTracer    = (*chainedError)(nil)
	_ causer         = (*chainedError)(nil)
	_ json.Marshaler = (*chainedError)(nil)
)

func (e *chainedError) Error() string {
	return e.message
}

func (e *chainedError) Name() string {
	return e.name
}

func (e *chainedError) Message() string {
	return e.message
}

func (e *chainedError) Cause() error {
	return e.cause
}

func (e *chainedError) Unwrap() error {
	return e.cause
}

func (e *chainedError) Info() map[string]any {
	return Info(e)
}

func (e *chainedError) AssignInfo(m map[string]any) {
	if len(m) == 0 {
		return
	}
	if e.info == nil {
		e.info = make(map[string]any, len(m))
	}
	maps.Copy(e.info, m)
}

func (e *chainedError) Stack() Stack {
	return e.stack
}

func (e *chainedError) StackTrace() []uintptr {
	return e.stack.StackTrace()
}

func (e *chainedError) Variant() *Variant {
	return e.variant
}

func (e *chainedError) base() *chainedError {
	return e
}

func (e *chainedError) String() string {
	s := e.name
	if e.message != "" {
		s += ": " + e.message
	}
	if e.cause != nil && policies[e.variant.kind].wrapped {
		s += "; caused by " + stringOf(e.cause)
	}
	return s
}

func (e *chainedError) Is(target error) bool {
	if v, ok := target.(*Variant); ok {
		return e.variant.derivesFrom(v)
	}
	return e.origin != nil && errors.Is(e.origin, target)
}

func (e *chainedError) As(target any) bool {
	return e.origin != nil && errors.As(e.origin, target)
}

func (e *chainedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		switch {
		case s.Flag('+'):
			_, _ = io.WriteString(s, FullStack(e))
		case s.Flag('#'):
			// Avoid infinite recursion in case someone does %#v on chainedError.
			type chainedError struct {
				variant *Variant
				name    string
				message string
				cause   error
				info    map[string]any
				stack   stack
				origin  error
			}
			var tmp = chainedError(*e)
			_, _ = fmt.Fprintf(s, "%#v", &tmp)
		default:
			_, _ = io.WriteString(s, e.Error())
		}
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

func (e *chainedError) LogValue() slog.Value {
	return slog.GroupValue(e.logAttrs()...)
}

func (e *chainedError) logAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("name", e.name),
		slog.String("message", e.message),
	}

	if info := Info(e); len(info) > 0 {
		infoAttrs := make([]any, 0, len(info))
		for _, k := range slices.Sorted(maps.Keys(info)) {
			infoAttrs = append(infoAttrs, slog.Any(k, info[k]))
		}
		attrs = append(attrs, slog.Group("info", infoAttrs...))
	}

	if frame, ok := e.stack.HeadFrame(); ok {
		attrs = append(attrs, slog.Any("origin", frame))
	}

	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", stringOf(e.cause)))
	}
	return attrs
}

func (e *chainedError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.jsonValue())
}

func (e *chainedError) jsonValue() jsonError {
	v := jsonError{
		Name:    e.name,
		Message: e.message,
		Stack:   e.stack.Frames(),
	}
	if info := Info(e); len(info) > 0 {
		v.Info = info
	}
	for c := range Chain(e.cause) {
		jc := jsonCause{Name: NameOf(c), Message: c.Error()}
		if st, ok := stackOf(c); ok {
			jc.Stack = st.Frames()
		}
		v.Causes = append(v.Causes, jc)
	}
	return v
}
