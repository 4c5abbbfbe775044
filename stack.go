package verror

import (
	"log/slog"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

type (
	// Stack represents a stack trace captured when an error was created.
	Stack interface {
		// StackTrace returns the raw stack trace as program counters.
		StackTrace() []uintptr
		// Frames returns the stack trace as structured frame information.
		Frames() []Frame
		// HeadFrame returns the frame where the error was created.
		HeadFrame() (Frame, bool)
		// Len returns the number of frames in the stack trace.
		Len() int
		// String renders the frames one per line, each as "    at func (file:line)".
		String() string
	}

	// Frame represents a single frame in a stack trace.
	Frame struct {
		Func string `json:"func"`
		File string `json:"file"`
		Line int    `json:"line"`
	}

	stack []uintptr
)

var (
	_ Stack          = (*stack)(nil)
	_ slog.LogValuer = (*stack)(nil)
)

const (
	maxStackDepth = 32

	// callersSkip is the number of skip frames when using the Variant methods.
	// 4 frames: runtime.Callers, newStack, construct, and the Variant methods.
	callersSkip = 4
)

// newStack captures the current goroutine's stack. When rewindTo names a
// function, every frame up to and including that function's frame is dropped.
func newStack(skip int, rewindTo string) stack {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	s := stack(pcs[:n])
	if rewindTo != "" {
		s = s.rewind(rewindTo)
	}
	return s
}

func (s stack) rewind(funcName string) stack {
	for i := range s {
		fs := runtime.CallersFrames(s[i : i+1])
		for {
			f, more := fs.Next()
			if f.Function == funcName {
				return s[i+1:]
			}
			if !more {
				break
			}
		}
	}
	// The function is not on the stack; keep the trace as captured.
	return s
}

func (s stack) StackTrace() []uintptr {
	if len(s) == 0 {
		return nil
	}
	return s[:]
}

func (s stack) Frames() []Frame {
	if len(s) == 0 {
		return nil
	}
	fs := runtime.CallersFrames(s)
	frames := make([]Frame, 0, len(s))
	for {
		f, more := fs.Next()
		frames = append(frames, Frame{
			Func: f.Function,
			File: f.File,
			Line: f.Line,
		})
		if !more {
			break
		}
	}
	return frames
}

func (s stack) HeadFrame() (Frame, bool) {
	if len(s) == 0 {
		return Frame{}, false
	}
	f, _ := runtime.CallersFrames(s[:1]).Next()
	return Frame{
		Func: f.Function,
		File: f.File,
		Line: f.Line,
	}, true
}

func (s stack) Len() int {
	return len(s)
}

func (s stack) String() string {
	var b strings.Builder
	for i, f := range s.Frames() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("    at ")
		b.WriteString(f.Func)
		b.WriteString(" (")
		b.WriteString(f.File)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Line))
		b.WriteByte(')')
	}
	return b.String()
}

func (s stack) LogValue() slog.Value {
	return slog.AnyValue(s.Frames())
}

// funcName returns the fully-qualified name of fn, or "" if fn is not a non-nil func.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return ""
}
