package verror

import (
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

const redactedStr = "[REDACTED]"

// Redacted holds an info value that must not leak into messages or logs.
// Every text, JSON and slog rendering of it is "[REDACTED]"; the value is
// only reachable through Value.
//
//	verror.WithInfo(map[string]any{"email": verror.Redact(email)})
type Redacted[T any] struct {
	value T
}

var (
	_ fmt.Stringer           = Redacted[any]{}
	_ fmt.GoStringer         = Redacted[any]{}
	_ fmt.Formatter          = Redacted[any]{}
	_ json.Marshaler         = Redacted[any]{}
	_ encoding.TextMarshaler = Redacted[any]{}
	_ slog.LogValuer         = Redacted[any]{}
)

// Redact wraps value so that it is never rendered.
func Redact[T any](value T) Redacted[T] {
	return Redacted[T]{value: value}
}

// Value returns the wrapped value.
func (r Redacted[T]) Value() T {
	return r.value
}

func (r Redacted[T]) String() string {
	return redactedStr
}

func (r Redacted[T]) GoString() string {
	return redactedStr
}

func (r Redacted[T]) Format(s fmt.State, verb rune) {
	if verb == 'q' {
		_, _ = fmt.Fprintf(s, "%q", redactedStr)
		return
	}
	_, _ = io.WriteString(s, redactedStr)
}

func (r Redacted[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(redactedStr)
}

func (r Redacted[T]) MarshalText() ([]byte, error) {
	return []byte(redactedStr), nil
}

func (r Redacted[T]) LogValue() slog.Value {
	return slog.StringValue(redactedStr)
}
