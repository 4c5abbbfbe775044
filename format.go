package verror

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

const (
	// directiveFlags holds every byte that may appear between '%' and the verb.
	directiveFlags = "+-# 0123456789.*[]"

	nilString = "<nil>"
)

// sprintf formats like fmt.Sprintf with two additions: the %j verb renders
// its operand as JSON, and nil operands of string verbs (%s, %q) are printed
// as "<nil>" or, in strict mode, rejected with an ErrFormat error.
//
// Formats using explicit argument indexes or '*' widths are handed to
// fmt.Sprintf unchanged.
func sprintf(strict bool, format string, args ...any) (string, error) {
	var (
		out   strings.Builder
		oargs = make([]any, 0, len(args))
		argi  int
	)

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}

		j := i + 1
		for j < len(format) && strings.IndexByte(directiveFlags, format[j]) >= 0 {
			j++
		}
		if j >= len(format) {
			out.WriteString(format[i:])
			break
		}

		flags, verb := format[i+1:j], format[j]
		if verb == '%' {
			out.WriteString(format[i : j+1])
			i = j
			continue
		}
		if strings.ContainsAny(flags, "[*") {
			// Operands cannot be matched to verbs here, so strict mode
			// rejects any nil operand.
			if strict {
				for n, a := range args {
					if isNilValue(a) {
						return "", ErrFormat.failuref(nil, "attempted to print nil as a string (operand %d)", n+1)
					}
				}
			}
			return fmt.Sprintf(format, args...), nil
		}

		arg, ok := any(nil), argi < len(args)
		if ok {
			arg = args[argi]
			argi++
		}

		switch {
		case !ok:
			out.WriteString(format[i : j+1])
		case verb == 'j':
			b, err := json.Marshal(arg)
			if err != nil {
				return "", ErrFormat.failuref(err, "cannot format operand %d as JSON", argi)
			}
			out.WriteString("%" + flags + "s")
			oargs = append(oargs, string(b))
		case (verb == 's' || verb == 'q') && isNilValue(arg):
			if strict {
				return "", ErrFormat.failuref(nil, "attempted to print nil as a string (operand %d)", argi)
			}
			out.WriteString("%" + flags + string(verb))
			oargs = append(oargs, nilString)
		default:
			out.WriteString(format[i : j+1])
			oargs = append(oargs, arg)
		}
		i = j
	}

	if argi < len(args) {
		oargs = append(oargs, args[argi:]...)
	}
	return fmt.Sprintf(out.String(), oargs...), nil
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
