package verror_test

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/shiwano/verror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCause(t *testing.T) {
	root := errors.New("root")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no cause", root, nil},
		{"verror cause", verror.Wrap(root, "top"), root},
		{"Unwrap", fmt.Errorf("top: %w", root), root},
		{"Cause method", &causeError{cause: root}, root},
		{"typed nil cause", &causeError{cause: (*fsError)(nil)}, nil},
		{"joined errors have no single cause", errors.Join(root, root), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, verror.Cause(tt.err))
		})
	}
}

func TestChain(t *testing.T) {
	t.Run("outermost first", func(t *testing.T) {
		root := errors.New("root")
		mid := fmt.Errorf("mid: %w", root)
		top := verror.Wrap(mid, "top")

		got := slices.Collect(verror.Chain(top))
		assert.Equal(t, []error{top, mid, root}, got)
	})

	t.Run("reusable", func(t *testing.T) {
		seq := verror.Chain(verror.Wrap(errors.New("root"), "top"))
		assert.Len(t, slices.Collect(seq), 2)
		assert.Len(t, slices.Collect(seq), 2)
	})

	t.Run("early break", func(t *testing.T) {
		var n int
		for range verror.Chain(verror.Wrap(verror.New("mid"), "top")) {
			n++
			break
		}
		assert.Equal(t, 1, n)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, slices.Collect(verror.Chain(nil)))
	})

	t.Run("cycle terminates", func(t *testing.T) {
		a := &loopError{msg: "a"}
		b := &loopError{msg: "b", next: a}
		a.next = b

		assert.Equal(t, []error{a, b}, slices.Collect(verror.Chain(a)))
		assert.Nil(t, verror.FindCauseByName(a, "Missing"))
		assert.Empty(t, verror.Info(verror.Wrap(a, "top")))
		assert.Equal(t, 3, len(strings.Split(verror.FullStack(verror.Wrap(a, "top")), "\ncaused by: ")))
	})
}

func TestInfo(t *testing.T) {
	t.Run("foreign cause has no info", func(t *testing.T) {
		err1 := errors.New("bad")
		err2 := verror.VError.WithOptions(verror.WithCause(err1)).New("worse")
		assert.Same(t, err1, err2.Cause())
		assert.Equal(t, "worse: bad", err2.Message())
		assert.Equal(t, map[string]any{}, verror.Info(err2))
	})

	err1 := verror.VError.WithOptions(
		verror.WithName("MyError"),
		verror.WithInfo(map[string]any{
			"errno":    "EDEADLK",
			"anobject": map[string]any{"hello": "world"},
		}),
	).New("bad")

	t.Run("simple", func(t *testing.T) {
		assert.Equal(t, "MyError", err1.Name())
		assert.Equal(t, map[string]any{
			"errno":    "EDEADLK",
			"anobject": map[string]any{"hello": "world"},
		}, verror.Info(err1))
	})

	t.Run("propagation", func(t *testing.T) {
		err2 := verror.VError.Wrap(err1, "worse")
		assert.Equal(t, "worse: bad", err2.Message())
		assert.Equal(t, verror.Info(err1), verror.Info(err2))
	})

	err2 := verror.VError.WithOptions(
		verror.WithCause(err1),
		verror.WithInfo(map[string]any{"anobject": map[string]any{"hello": "moon"}}),
	).New("worse")

	t.Run("override", func(t *testing.T) {
		assert.Equal(t, map[string]any{
			"errno":    "EDEADLK",
			"anobject": map[string]any{"hello": "moon"},
		}, verror.Info(err2))
	})

	t.Run("third level", func(t *testing.T) {
		err3 := verror.VError.WithOptions(
			verror.WithCause(err2),
			verror.WithName("BigError"),
			verror.WithInfo(map[string]any{"remote_ip": "127.0.0.1"}),
		).New("what next")

		assert.Equal(t, "BigError", err3.Name())
		assert.Equal(t, "what next: worse: bad", err3.Message())
		assert.Equal(t, map[string]any{
			"errno":     "EDEADLK",
			"anobject":  map[string]any{"hello": "moon"},
			"remote_ip": "127.0.0.1",
		}, err3.Info())
		assert.Equal(t, verror.Info(err3), err3.Info())
	})

	t.Run("through foreign links", func(t *testing.T) {
		err := verror.Wrap(fmt.Errorf("wrapped: %w", err1), "top")
		assert.Equal(t, "EDEADLK", verror.Info(err)["errno"])
	})

	t.Run("idempotent and fresh", func(t *testing.T) {
		info := verror.Info(err2)
		info["errno"] = "changed"
		assert.Equal(t, "EDEADLK", verror.Info(err2)["errno"])
		assert.Equal(t, verror.Info(err2), verror.Info(err2))
	})

	t.Run("option map is copied", func(t *testing.T) {
		m := map[string]any{"a": 1}
		err := verror.VError.WithOptions(verror.WithInfo(m)).New("x")
		m["a"] = 2
		assert.Equal(t, 1, err.Info()["a"])
	})

	t.Run("nil panics", func(t *testing.T) {
		assert.PanicsWithError(t, "err must be an error but got <nil>", func() {
			verror.Info(nil)
		})
	})
}

func TestAssignInfo(t *testing.T) {
	t.Run("merges into own info", func(t *testing.T) {
		cause := verror.VError.WithOptions(verror.WithInfo(map[string]any{"a": 1, "b": 1})).New("cause")
		err := verror.Wrap(cause, "top")

		verror.AssignInfo(err, map[string]any{"b": 2})
		err.AssignInfo(map[string]any{"c": 3})

		assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 3}, verror.Info(err))
		assert.Equal(t, map[string]any{"a": 1, "b": 1}, verror.Info(cause))
	})

	t.Run("rejects foreign errors", func(t *testing.T) {
		assert.PanicsWithError(t, "err must be an instance of VError", func() {
			verror.AssignInfo(errors.New("foreign"), map[string]any{"a": 1})
		})
		assert.PanicsWithError(t, "err must be an instance of VError", func() {
			verror.AssignInfo(nil, map[string]any{"a": 1})
		})
	})
}

func TestFullStack(t *testing.T) {
	t.Run("chain", func(t *testing.T) {
		err1 := verror.New("inner")
		err2 := verror.WError.Wrap(err1, "middle")
		err3 := verror.Wrap(err2, "outer")

		fs := verror.FullStack(err3)
		assert.Equal(t, 2, strings.Count(fs, "caused by: "))

		blocks := strings.Split(fs, "\ncaused by: ")
		require.Len(t, blocks, 3)
		assert.True(t, strings.HasPrefix(blocks[0], "VError: outer: middle\n    at "), blocks[0])
		assert.True(t, strings.HasPrefix(blocks[1], "WError: middle\n    at "), blocks[1])
		assert.True(t, strings.HasPrefix(blocks[2], "VError: inner\n    at "), blocks[2])
		for _, b := range blocks {
			assert.Contains(t, b, "chain_test.go:")
		}
	})

	t.Run("foreign cause", func(t *testing.T) {
		fs := verror.FullStack(verror.Wrap(errors.New("root"), "top"))
		assert.True(t, strings.HasSuffix(fs, "\ncaused by: Error: root"), fs)
	})

	t.Run("without trace", func(t *testing.T) {
		err := verror.VError.WithOptions(verror.NoTrace()).New("x")
		assert.Equal(t, "VError: x", verror.FullStack(err))
	})

	t.Run("foreign error", func(t *testing.T) {
		assert.Equal(t, "FSError: open failed", verror.FullStack(&FSError{Op: "open"}))
	})

	t.Run("nil panics", func(t *testing.T) {
		assert.PanicsWithError(t, "err must be an error but got <nil>", func() {
			verror.FullStack(nil)
		})
	})
}

func TestFindCauseByName(t *testing.T) {
	fsErr := &FSError{Op: "open"}
	err1 := verror.VError.WithOptions(verror.WithName("MyError"), verror.WithCause(fsErr)).New("my error")
	err2 := verror.VError.Wrap(err1, "next error")

	assert.Equal(t, err2, verror.FindCauseByName(err2, "VError"))
	assert.Equal(t, err1, verror.FindCauseByName(err2, "MyError"))
	assert.Equal(t, fsErr, verror.FindCauseByName(err2, "FSError"))
	assert.Nil(t, verror.FindCauseByName(err2, "FooError"))
	assert.Equal(t, err1, verror.FindCauseByName(err1, err1.Name()))

	assert.True(t, verror.HasCauseWithName(err2, "MyError"))
	assert.False(t, verror.HasCauseWithName(err2, "FooError"))

	t.Run("invalid arguments", func(t *testing.T) {
		assert.PanicsWithError(t, "err must be an error but got <nil>", func() {
			verror.FindCauseByName(nil, "VError")
		})
		assert.PanicsWithError(t, "name (string) is required", func() {
			verror.FindCauseByName(err2, "")
		})
		assert.PanicsWithError(t, "name (string) is required", func() {
			verror.HasCauseWithName(err2, "")
		})

		var perr error
		func() {
			defer func() { perr, _ = recover().(error) }()
			verror.FindCauseByName(nil, "VError")
		}()
		assert.ErrorIs(t, perr, verror.ErrArgument)
	})
}

func TestIsVError(t *testing.T) {
	assert.True(t, verror.IsVError(verror.New("x")))
	assert.True(t, verror.IsVError(verror.WError.New("x")))
	assert.True(t, verror.IsVError(verror.VError.Derive("CustomError").New("x")))
	assert.True(t, verror.IsVError(verror.NewMultiError([]error{errors.New("x")})))
	assert.True(t, verror.IsVError(verror.Upcast(errors.New("x"))))
	assert.False(t, verror.IsVError(errors.New("x")))
	assert.False(t, verror.IsVError(verror.VError))
	assert.False(t, verror.IsVError(nil))
}

func TestNameOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"verror", verror.New("x"), "VError"},
		{"named verror", verror.VError.WithOptions(verror.WithName("MyError")).New("x"), "MyError"},
		{"multi error", verror.NewMultiError([]error{errors.New("x")}), "MultiError"},
		{"exported pointer type", &FSError{}, "FSError"},
		{"exported value type", ValueError{}, "ValueError"},
		{"unexported type", errors.New("x"), "Error"},
		{"fmt wrap", fmt.Errorf("x: %w", errors.New("y")), "Error"},
		{"Name method", &causeError{}, "CauseError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, verror.NameOf(tt.err))
		})
	}
}

func TestUpcast(t *testing.T) {
	t.Run("foreign error", func(t *testing.T) {
		orig := &FSError{Op: "open"}
		up := verror.Upcast(orig)

		assert.Equal(t, "FSError", up.Name())
		assert.Equal(t, "open failed", up.Message())
		assert.Equal(t, "FSError: open failed", up.String())
		assert.Nil(t, up.Cause())
		assert.True(t, verror.IsVError(up))
		assert.ErrorIs(t, up, orig)
		assert.ErrorIs(t, up, verror.VError)

		var target *FSError
		require.ErrorAs(t, up, &target)
		assert.Same(t, orig, target)

		frame, ok := up.Stack().HeadFrame()
		require.True(t, ok)
		assert.Contains(t, frame.Func, "TestUpcast")

		up.AssignInfo(map[string]any{"remote_ip": "127.0.0.1"})
		assert.Equal(t, map[string]any{"remote_ip": "127.0.0.1"}, up.Info())
	})

	t.Run("keeps the cause", func(t *testing.T) {
		root := errors.New("root")
		up := verror.Upcast(fmt.Errorf("top: %w", root))
		assert.Equal(t, "Error", up.Name())
		assert.Equal(t, "top: root", up.Message())
		assert.Same(t, root, up.Cause())
		assert.ErrorIs(t, up, root)
	})

	t.Run("library error is returned as is", func(t *testing.T) {
		err := verror.New("x")
		assert.Same(t, err, verror.Upcast(err))
	})

	t.Run("nil panics", func(t *testing.T) {
		assert.PanicsWithError(t, "err must be an error but got <nil>", func() {
			verror.Upcast(nil)
		})
	})
}

type loopError struct {
	msg  string
	next error
}

func (e *loopError) Error() string { return e.msg }
func (e *loopError) Unwrap() error { return e.next }

type causeError struct {
	cause error
}

func (e *causeError) Error() string { return "cause error" }
func (e *causeError) Cause() error  { return e.cause }
func (e *causeError) Name() string  { return "CauseError" }

type ValueError struct{}

func (ValueError) Error() string { return "value error" }
