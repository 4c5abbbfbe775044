package verror

import "maps"

type (
	// Option represents a configuration option that can be applied to variants.
	Option interface {
		// ApplyOption applies this option to the given applier.
		ApplyOption(o OptionApplier)
	}

	// OptionApplier provides methods for applying options to variants.
	OptionApplier interface {
		// SetName overrides the display name of built errors.
		SetName(name string)
		// SetCause sets the cause of built errors. A nil cause clears it.
		SetCause(cause error)
		// MergeInfo shallow-merges info into the info overlay of built errors.
		MergeInfo(info map[string]any)
		// EnableStrict makes nil operands of %s and %q a formatting failure.
		EnableStrict()
		// EnableSkipPrintf makes the format be used verbatim.
		EnableSkipPrintf()
		// SetRewindTo drops every stack frame up to and including the named function.
		SetRewindTo(funcName string)
		// DisableTrace disables stack trace collection.
		DisableTrace()
		// AddStackSkip adds frames to skip during stack trace collection.
		AddStackSkip(skip int)
	}

	optionApplier struct {
		v *Variant
	}

	name struct {
		name string
	}

	cause struct {
		cause error
	}

	info struct {
		info map[string]any
	}

	strict struct{}

	skipPrintf struct{}

	constructorOpt struct {
		funcName string
	}

	noTrace struct{}

	stackSkip struct {
		skip int
	}
)

func applyOptionsTo(v *Variant, opts []Option) {
	a := &optionApplier{v: v}
	for _, opt := range opts {
		if opt != nil {
			opt.ApplyOption(a)
		}
	}
}

func (a *optionApplier) SetName(name string) {
	a.v.name = name
}

func (a *optionApplier) SetCause(cause error) {
	if cause != nil && isNilValue(cause) {
		cause = nil
	}
	a.v.cause = cause
}

func (a *optionApplier) MergeInfo(info map[string]any) {
	if len(info) == 0 {
		return
	}
	if a.v.info == nil {
		a.v.info = make(map[string]any, len(info))
	}
	maps.Copy(a.v.info, info)
}

func (a *optionApplier) EnableStrict() {
	a.v.strict = true
}

func (a *optionApplier) EnableSkipPrintf() {
	a.v.skipPrintf = true
}

func (a *optionApplier) SetRewindTo(funcName string) {
	a.v.rewindTo = funcName
}

func (a *optionApplier) DisableTrace() {
	a.v.noTrace = true
}

func (a *optionApplier) AddStackSkip(skip int) {
	a.v.stackSkip += skip
}

func (o *name) ApplyOption(a OptionApplier) {
	a.SetName(o.name)
}

func (o *cause) ApplyOption(a OptionApplier) {
	a.SetCause(o.cause)
}

func (o *info) ApplyOption(a OptionApplier) {
	a.MergeInfo(o.info)
}

func (o *strict) ApplyOption(a OptionApplier) {
	a.EnableStrict()
}

func (o *skipPrintf) ApplyOption(a OptionApplier) {
	a.EnableSkipPrintf()
}

func (o *constructorOpt) ApplyOption(a OptionApplier) {
	if o.funcName != "" {
		a.SetRewindTo(o.funcName)
	}
}

func (o *noTrace) ApplyOption(a OptionApplier) {
	a.DisableTrace()
}

func (o *stackSkip) ApplyOption(a OptionApplier) {
	a.AddStackSkip(o.skip)
}
