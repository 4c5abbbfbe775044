// Package zap provides zap fields for verror errors.
package zap

import (
	"maps"
	"slices"

	"github.com/shiwano/verror"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type errorMarshaler struct {
	err verror.Error
}

// Error returns a Field that nests the information of err under the "error" key.
//
// The error object contains the following fields:
//   - name: The error name
//   - message: The error message
//   - info: The merged info of the chain (if present)
//   - origin: The origin stack frame (if present) with func, file, and line
//   - causes: The causes of the error as "name: message" (if present)
//
// Errors not built by verror are logged with their message only.
// For top-level field expansion, use ErrorInline instead.
//
// Example:
//
//	err := ErrNotFound.With(ctx, verror.WithInfo(map[string]any{"user_id": "u123"})).New("user not found")
//	logger.Info("operation failed", Error(err))
func Error(err error) zapcore.Field {
	if e, ok := err.(verror.Error); ok {
		return zap.Object("error", &errorMarshaler{err: e})
	}
	return zap.Object("error", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("message", err.Error())
		return nil
	}))
}

// ErrorInline returns a Field that expands the information of err at the top
// level of the log entry. The fields are the same as those of Error.
//
// Example:
//
//	err := ErrNotFound.New("user not found")
//	logger.Info("operation failed", ErrorInline(err))
func ErrorInline(err error) zapcore.Field {
	if e, ok := err.(verror.Error); ok {
		return zap.Inline(&errorMarshaler{err: e})
	}
	return zap.Inline(zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("message", err.Error())
		return nil
	}))
}

func (m *errorMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("name", m.err.Name())
	enc.AddString("message", m.err.Message())

	if info := m.err.Info(); len(info) > 0 {
		_ = enc.AddObject("info", infoMarshaler{info: info})
	}

	if frame, ok := m.err.Stack().HeadFrame(); ok {
		_ = enc.AddObject("origin", frameMarshaler{frame: frame})
	}

	var causes []error
	for c := range verror.Chain(m.err.Cause()) {
		causes = append(causes, c)
	}
	if len(causes) > 0 {
		_ = enc.AddArray("causes", causesMarshaler{causes: causes})
	}

	return nil
}

type infoMarshaler struct {
	info map[string]any
}

func (m infoMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, k := range slices.Sorted(maps.Keys(m.info)) {
		_ = enc.AddReflected(k, m.info[k])
	}
	return nil
}

type frameMarshaler struct {
	frame verror.Frame
}

func (m frameMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("func", m.frame.Func)
	enc.AddString("file", m.frame.File)
	enc.AddInt("line", m.frame.Line)
	return nil
}

type causesMarshaler struct {
	causes []error
}

func (m causesMarshaler) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, cause := range m.causes {
		enc.AppendString(verror.NameOf(cause) + ": " + cause.Error())
	}
	return nil
}
