// Package zerolog provides zerolog object marshalers for verror errors.
package zerolog

import (
	"maps"
	"slices"

	"github.com/rs/zerolog"
	"github.com/shiwano/verror"
)

type errorMarshaler struct {
	err verror.Error
}

type stdErrorMarshaler struct {
	err error
}

// Error returns a LogObjectMarshaler for err that can be used with Object()
// or EmbedObject().
//
// The error object contains the following fields:
//   - name: The error name
//   - message: The error message
//   - info: The merged info of the chain (if present)
//   - origin: The origin stack frame (if present) with func, file, and line
//   - causes: The causes of the error as "name: message" (if present)
//
// Errors not built by verror are logged with their message only.
//
// Example with Object() (nested under "error" key):
//
//	err := ErrNotFound.New("user %s not found", id)
//	logger.Info().Object("error", Error(err)).Msg("operation failed")
//
// Example with EmbedObject() (fields at top level):
//
//	logger.Info().EmbedObject(Error(err)).Msg("operation failed")
func Error(err error) zerolog.LogObjectMarshaler {
	if e, ok := err.(verror.Error); ok {
		return &errorMarshaler{err: e}
	}
	return &stdErrorMarshaler{err: err}
}

func (m *errorMarshaler) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", m.err.Name())
	e.Str("message", m.err.Message())

	if info := m.err.Info(); len(info) > 0 {
		e.Object("info", infoMarshaler{info: info})
	}

	if frame, ok := m.err.Stack().HeadFrame(); ok {
		e.Object("origin", frameMarshaler{frame: frame})
	}

	var causes []error
	for c := range verror.Chain(m.err.Cause()) {
		causes = append(causes, c)
	}
	if len(causes) > 0 {
		e.Array("causes", causesMarshaler{causes: causes})
	}
}

type infoMarshaler struct {
	info map[string]any
}

func (m infoMarshaler) MarshalZerologObject(e *zerolog.Event) {
	for _, k := range slices.Sorted(maps.Keys(m.info)) {
		e.Interface(k, m.info[k])
	}
}

type frameMarshaler struct {
	frame verror.Frame
}

func (m frameMarshaler) MarshalZerologObject(e *zerolog.Event) {
	e.Str("func", m.frame.Func)
	e.Str("file", m.frame.File)
	e.Int("line", m.frame.Line)
}

type causesMarshaler struct {
	causes []error
}

func (m causesMarshaler) MarshalZerologArray(a *zerolog.Array) {
	for _, cause := range m.causes {
		a.Str(verror.NameOf(cause) + ": " + cause.Error())
	}
}

func (m *stdErrorMarshaler) MarshalZerologObject(e *zerolog.Event) {
	e.Str("message", m.err.Error())
}
