package verror

import (
	"fmt"
	"io"
)

type (
	// PanicError is the cause of the errors built by CapturePanic.
	PanicError interface {
		error

		// PanicValue returns the value recovered from the panic.
		PanicValue() any
		// Unwrap returns the panic value if it is an error.
		Unwrap() error
	}

	panicError struct {
		msg        string
		panicValue any
	}
)

var (
	_ PanicError    = (*panicError)(nil)
	_ fmt.Formatter = (*panicError)(nil)
)

// CapturePanic stores in *errPtr an error built by v, caused by the
// recovered panicValue. It does nothing if errPtr or panicValue is nil.
//
//	defer func() {
//		ErrInternal.CapturePanic(&err, recover())
//	}()
func (v *Variant) CapturePanic(errPtr *error, panicValue any) {
	if errPtr == nil || panicValue == nil {
		return
	}
	e, err := v.construct(call{wrapping: true, cause: newPanicError(panicValue), format: "panic"})
	if err != nil {
		*errPtr = err
		return
	}
	*errPtr = e
}

// CapturePanic is VError.CapturePanic.
func CapturePanic(errPtr *error, panicValue any) {
	VError.WithOptions(StackSkip(1)).CapturePanic(errPtr, panicValue)
}

func newPanicError(panicValue any) *panicError {
	return &panicError{
		msg:        fmt.Sprintf("%v", panicValue),
		panicValue: panicValue,
	}
}

func (e *panicError) Error() string {
	return e.msg
}

func (e *panicError) Name() string {
	return "PanicError"
}

func (e *panicError) PanicValue() any {
	return e.panicValue
}

func (e *panicError) Unwrap() error {
	if err, ok := e.panicValue.(error); ok {
		return err
	}
	return nil
}

func (e *panicError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		switch {
		case s.Flag('+'):
			_, _ = io.WriteString(s, FullStack(e))
		case s.Flag('#'):
			type (
				panicError_ panicError
				panicError  panicError_
			)
			_, _ = fmt.Fprintf(s, "%#v", (*panicError)(e))
		default:
			_, _ = io.WriteString(s, e.Error())
		}
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}
