package verror

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Kind identifies the construction policy of a Variant.
type Kind int

const (
	// KindVError formats its annotation with printf and appends the cause message.
	KindVError Kind = iota
	// KindSError is KindVError with strict nil interpolation.
	KindSError
	// KindPError is KindVError with printf disabled.
	KindPError
	// KindWError keeps the cause message out of Message and shows it in String.
	KindWError
	// KindMultiError aggregates several errors.
	KindMultiError
)

type policy struct {
	name       string
	strict     bool
	skipPrintf bool
	wrapped    bool
}

var policies = [...]policy{
	KindVError:     {name: "VError"},
	KindSError:     {name: "VError", strict: true},
	KindPError:     {name: "VError", skipPrintf: true},
	KindWError:     {name: "WError", wrapped: true},
	KindMultiError: {name: "MultiError"},
}

func (k Kind) String() string {
	switch k {
	case KindVError:
		return "VError"
	case KindSError:
		return "SError"
	case KindPError:
		return "PError"
	case KindWError:
		return "WError"
	case KindMultiError:
		return "MultiError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Variant is an error constructor configured by a Kind and a set of options.
// Variants implement error, so they can be used as sentinels with errors.Is.
type Variant struct {
	kind       Kind
	name       string
	parent     *Variant
	cause      error
	info       map[string]any
	strict     bool
	skipPrintf bool
	noTrace    bool
	stackSkip  int
	rewindTo   string
}

var (
	// VError builds errors whose message is the formatted annotation followed
	// by the cause's message.
	VError = newVariant(KindVError, nil)

	// SError is VError with strict interpolation: printing nil with %s or %q fails.
	SError = newVariant(KindSError, VError)

	// PError is VError with printf disabled: the format is used verbatim.
	PError = newVariant(KindPError, VError)

	// WError builds errors whose message leaves the cause out.
	// The cause is shown by String and FullStack.
	WError = newVariant(KindWError, VError)

	multi = newVariant(KindMultiError, VError)
)

var (
	// ErrValidation is reported when the options given to a constructor conflict.
	ErrValidation = VError.Derive("ValidationError")
	// ErrFormat is reported when an annotation cannot be formatted.
	ErrFormat = VError.Derive("FormatError")
	// ErrArgument is reported when a function is called with an invalid argument.
	ErrArgument = VError.Derive("ArgumentError")
	// ErrAggregate is reported when a MultiError cannot be built.
	ErrAggregate = VError.Derive("AggregateError")
)

// newVariant creates a root policy variant. The policies other than VError
// refine it, so their errors match VError too.
func newVariant(kind Kind, parent *Variant) *Variant {
	p := policies[kind]
	return &Variant{
		kind:       kind,
		name:       p.name,
		parent:     parent,
		strict:     p.strict,
		skipPrintf: p.skipPrintf,
	}
}

// Kind returns the construction policy of this variant.
func (v *Variant) Kind() Kind {
	return v.kind
}

// Name returns the default name of errors built by this variant.
func (v *Variant) Name() string {
	return v.name
}

// Error returns the string representation of this variant.
// This makes Variant implement the error interface.
func (v *Variant) Error() string {
	return "verror: " + v.name
}

// Derive creates a variant with the same policy and a new default name.
// Errors built by the derived variant match v with errors.Is.
func (v *Variant) Derive(name string) *Variant {
	d := v.clone()
	d.name = name
	return d
}

// With creates a new Variant with options from the context and additional options applied.
func (v *Variant) With(ctx context.Context, opts ...Option) *Variant {
	return v.WithOptions(slices.Concat(optionsFromContext(ctx), opts)...)
}

// WithOptions creates a new Variant with the given options applied.
func (v *Variant) WithOptions(opts ...Option) *Variant {
	if len(opts) == 0 {
		return v
	}
	d := v.clone()
	applyOptionsTo(d, opts)
	return d
}

// New creates an error from a printf-style annotation.
// A format without args is used verbatim.
// It panics with ErrValidation or ErrFormat if the annotation cannot be built;
// use Construct to get that failure as a value.
func (v *Variant) New(format string, args ...any) Error {
	e, err := v.construct(call{format: format, args: args})
	if err != nil {
		panic(err)
	}
	return e
}

// Wrap creates an error caused by cause. A nil cause means no cause.
// It panics under the same conditions as New.
func (v *Variant) Wrap(cause error, format string, args ...any) Error {
	e, err := v.construct(call{wrapping: true, cause: cause, format: format, args: args})
	if err != nil {
		panic(err)
	}
	return e
}

// Construct is the non-panicking constructor. A non-nil cause replaces the
// cause configured with WithCause, as with Wrap; a nil cause keeps it, as with New.
func (v *Variant) Construct(cause error, format string, args ...any) (Error, error) {
	return v.construct(call{wrapping: cause != nil, cause: cause, format: format, args: args})
}

// Matches reports whether err was built by this variant or a variant derived from it.
func (v *Variant) Matches(err error) bool {
	return err != nil && errors.Is(err, v)
}

func (v *Variant) derivesFrom(target *Variant) bool {
	for p := v; p != nil; p = p.parent {
		if p == target {
			return true
		}
	}
	return false
}

func (v *Variant) clone() *Variant {
	return &Variant{
		kind:       v.kind,
		name:       v.name,
		parent:     v,
		cause:      v.cause,
		info:       maps.Clone(v.info),
		strict:     v.strict,
		skipPrintf: v.skipPrintf,
		noTrace:    v.noTrace,
		stackSkip:  v.stackSkip,
		rewindTo:   v.rewindTo,
	}
}

// failuref builds one of the library's own failures. The message is
// formatted with fmt.Sprintf so that reporting a failure cannot fail.
func (v *Variant) failuref(cause error, format string, args ...any) Error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil && !isNilValue(cause) {
		msg += ": " + cause.Error()
	} else {
		cause = nil
	}
	return &chainedError{
		variant: v,
		name:    v.name,
		message: msg,
		cause:   cause,
		stack:   newStack(callersSkip-1, ""),
	}
}
