package verror

import (
	"iter"
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const causedBySeparator = "\ncaused by: "

// Chain returns an iterator over err and its causes, outermost first.
// An error reachable twice through the cause links ends the iteration,
// so a cyclic chain terminates.
func Chain(err error) iter.Seq[error] {
	return func(yield func(error) bool) {
		var visited map[uintptr]struct{}
		for cur := err; cur != nil; cur = Cause(cur) {
			if ptr, ok := pointerOf(cur); ok {
				if _, seen := visited[ptr]; seen {
					return
				}
				if visited == nil {
					visited = make(map[uintptr]struct{})
				}
				visited[ptr] = struct{}{}
			}
			if !yield(cur) {
				return
			}
		}
	}
}

// Cause returns the direct cause of err, or nil.
// It understands both the pkg/errors Cause convention and Unwrap.
func Cause(err error) error {
	var cause error
	switch e := err.(type) {
	case nil:
		return nil
	case causer:
		cause = e.Cause()
	case interface{ Unwrap() error }:
		cause = e.Unwrap()
	}
	if cause == nil || isNilValue(cause) {
		return nil
	}
	return cause
}

// Info returns the informational properties of err merged over its causes,
// deepest cause first, so a closer error wins on conflicting keys.
// The result is a fresh map. It panics if err is nil.
func Info(err error) map[string]any {
	if err == nil {
		panic(ErrArgument.failuref(nil, "err must be an error but got <nil>"))
	}

	var overlays []map[string]any
	for e := range Chain(err) {
		if ve, ok := e.(Error); ok {
			if m := ve.base().info; len(m) > 0 {
				overlays = append(overlays, m)
			}
		}
	}

	merged := make(map[string]any)
	for _, m := range slices.Backward(overlays) {
		maps.Copy(merged, m)
	}
	return merged
}

// AssignInfo shallow-merges m into the own properties of err.
// It panics if err was not built by this package.
func AssignInfo(err error, m map[string]any) {
	ve, ok := err.(Error)
	if !ok {
		panic(ErrArgument.failuref(nil, "err must be an instance of VError"))
	}
	ve.AssignInfo(m)
}

// FullStack renders err and each of its causes as "name: message" followed by
// its stack frames, joined by "caused by: " lines. It panics if err is nil.
func FullStack(err error) string {
	if err == nil {
		panic(ErrArgument.failuref(nil, "err must be an error but got <nil>"))
	}

	var b strings.Builder
	first := true
	for e := range Chain(err) {
		if !first {
			b.WriteString(causedBySeparator)
		}
		first = false

		b.WriteString(headerOf(e))
		if st, ok := stackOf(e); ok && st.Len() > 0 {
			b.WriteByte('\n')
			b.WriteString(st.String())
		}
	}
	return b.String()
}

// FindCauseByName returns the first error in the chain of err, err included,
// whose name is name, or nil if there is none.
// It panics if err is nil or name is empty.
func FindCauseByName(err error, name string) error {
	if err == nil {
		panic(ErrArgument.failuref(nil, "err must be an error but got <nil>"))
	}
	if name == "" {
		panic(ErrArgument.failuref(nil, "name (string) is required"))
	}

	for e := range Chain(err) {
		if NameOf(e) == name {
			return e
		}
	}
	return nil
}

// HasCauseWithName reports whether FindCauseByName finds an error.
func HasCauseWithName(err error, name string) bool {
	return FindCauseByName(err, name) != nil
}

// IsVError reports whether err was built by this package.
func IsVError(err error) bool {
	_, ok := err.(Error)
	return ok
}

// NameOf returns the display name of err: its Name method if it has one,
// else the name of its exported dynamic type, else "Error".
func NameOf(err error) string {
	if n, ok := err.(namer); ok {
		return n.Name()
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil {
		if r, _ := utf8.DecodeRuneInString(t.Name()); unicode.IsUpper(r) {
			return t.Name()
		}
	}
	return "Error"
}

// Upcast adopts err as an Error. Errors built by this package are returned
// as is. Any other error is wrapped so that errors.Is and errors.As still
// reach it, with NameOf(err) as name, err.Error() as message and Cause(err)
// as cause. It panics if err is nil.
func Upcast(err error) Error {
	if err == nil {
		panic(ErrArgument.failuref(nil, "err must be an error but got <nil>"))
	}
	if ve, ok := err.(Error); ok {
		return ve
	}

	var st stack
	if t, ok := err.(stackTracer); ok {
		st = stack(t.StackTrace())
	} else {
		st = newStack(3, "")
	}

	return &chainedError{
		variant: VError,
		name:    NameOf(err),
		message: err.Error(),
		cause:   Cause(err),
		stack:   st,
		origin:  err,
	}
}

func messageOf(err error) string {
	return err.Error()
}

// stringOf renders err the way String renders library errors.
func stringOf(err error) string {
	if s, ok := err.(interface{ String() string }); ok && IsVError(err) {
		return s.String()
	}
	return headerOf(err)
}

func headerOf(err error) string {
	name, msg := NameOf(err), messageOf(err)
	if msg == "" {
		return name
	}
	return name + ": " + msg
}

func stackOf(err error) (Stack, bool) {
	switch e := err.(type) {
	case Error:
		return e.Stack(), true
	case stackTracer:
		return stack(e.StackTrace()), true
	default:
		return nil, false
	}
}

func pointerOf(err error) (uintptr, bool) {
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return 0, false
	}
	return v.Pointer(), true
}
