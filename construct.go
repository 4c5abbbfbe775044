package verror

import "maps"

// call holds the arguments of one constructor invocation.
// wrapping is set by the constructors that take an explicit cause, which
// then replaces any cause configured on the variant.
type call struct {
	wrapping bool
	cause    error
	format   string
	args     []any
}

// resolved is the state of an error before its stack is captured.
type resolved struct {
	name    string
	message string
	cause   error
	info    map[string]any
}

func (v *Variant) resolve(c call) (resolved, error) {
	cause := v.cause
	if c.wrapping {
		cause = c.cause
	}
	if cause != nil && isNilValue(cause) {
		cause = nil
	}

	annotation := c.format
	switch {
	case v.skipPrintf && len(c.args) > 0:
		return resolved{}, ErrValidation.failuref(nil, "only one argument is allowed with options.skipPrintf")
	case len(c.args) > 0:
		s, err := sprintf(v.strict, c.format, c.args...)
		if err != nil {
			return resolved{}, err
		}
		annotation = s
	}

	message := annotation
	if cause != nil && !policies[v.kind].wrapped {
		if annotation != "" {
			message = annotation + ": " + messageOf(cause)
		} else {
			message = ": " + messageOf(cause)
		}
	}

	return resolved{
		name:    v.name,
		message: message,
		cause:   cause,
		info:    maps.Clone(v.info),
	}, nil
}

// construct must be called directly by the exported constructors so that
// callersSkip stays accurate.
func (v *Variant) construct(c call) (Error, error) {
	r, err := v.resolve(c)
	if err != nil {
		return nil, err
	}

	var st stack
	if !v.noTrace {
		st = newStack(callersSkip+v.stackSkip, v.rewindTo)
	}

	return &chainedError{
		variant: v,
		name:    r.name,
		message: r.message,
		cause:   r.cause,
		info:    r.info,
		stack:   st,
	}, nil
}
